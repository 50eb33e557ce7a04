package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/NikitaCOEUR/rlcomplete/internal/helper"
	"github.com/NikitaCOEUR/rlcomplete/internal/logger"
	"github.com/NikitaCOEUR/rlcomplete/internal/trace"
)

// HelperParams holds parameters for the Helper function
type HelperParams struct {
	ConfigDir string
	CachePath string
	Text      string
	Stdin     io.Reader
	Stdout    io.Writer
	// Stderr receives rule command stderr (default os.Stderr)
	Stderr io.Writer
}

// Helper answers one completion request as rl_custom_complete. A non-nil
// error means "no candidates": the caller exits non-zero.
func Helper(ctx context.Context, params HelperParams) error {
	settings := loadSettings(params.ConfigDir)

	// Never log to the terminal the host is drawing on
	log, closeLog, err := logger.Open(settings.LogLevel, settings.LogFile)
	if err != nil {
		log = logger.Discard()
	}
	defer func() { _ = closeLog() }()

	endLoad := trace.Region(ctx, "load")
	comps := initializeComponents(params.ConfigDir, params.CachePath, log)
	endLoad()

	stderr := params.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	engine := helper.New(helper.Options{
		Rules:  comps.rules,
		Cache:  comps.cache,
		Logger: log,
		Stderr: stderr,
	})

	req := helper.Request{
		App:  os.Getenv(settings.NameVar),
		Text: params.Text,
		Dir:  currentDir(),
	}

	endServe := trace.Region(ctx, "serve")
	res, err := engine.Serve(ctx, req, params.Stdin, params.Stdout)
	endServe()
	trace.Log(ctx, "rule", res.Rule)
	if err != nil {
		if errors.Is(err, helper.ErrRejected) {
			log.Debug().Str("rule", res.Rule).Str("text", params.Text).Msg("Completion rejected")
		} else {
			log.Error().Str("app", req.App).Str("text", params.Text).Err(err).Msg("Completion failed")
		}
		return err
	}

	log.Debug().
		Str("app", req.App).
		Str("rule", res.Rule).
		Int("candidates", len(res.Candidates)).
		Msg("Completion answered")
	return nil
}
