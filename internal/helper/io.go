package helper

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// ReadCandidates reads one candidate per line. Empty lines are skipped and
// a missing final newline is tolerated.
func ReadCandidates(r io.Reader) ([]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	return splitLines(string(b)), nil
}

// WriteCandidates prints one candidate per line
func WriteCandidates(w io.Writer, candidates []string) error {
	bw := bufio.NewWriter(w)
	for _, c := range candidates {
		if _, err := bw.WriteString(c + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Serve reads readline's candidates from in, answers req and writes the
// answer to out. req.Candidates is filled from in.
func (e *Engine) Serve(ctx context.Context, req Request, in io.Reader, out io.Writer) (Result, error) {
	candidates, err := ReadCandidates(in)
	if err != nil {
		return Result{}, err
	}
	req.Candidates = candidates

	res, err := e.Complete(ctx, req)
	if err != nil {
		return res, err
	}
	return res, WriteCandidates(out, res.Candidates)
}
