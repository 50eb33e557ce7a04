package cli

import (
	"fmt"
	"time"

	"github.com/NikitaCOEUR/rlcomplete/internal/cache"
	"github.com/NikitaCOEUR/rlcomplete/internal/logger"
)

// CleanParams holds parameters for the Clean function
type CleanParams struct {
	CachePath string
	LogLevel  string
	// OlderThan keeps entries younger than this; zero clears everything
	OlderThan time.Duration
}

// Clean removes cached command output
func Clean(params CleanParams) error {
	log := logger.New(params.LogLevel, nil)

	c, err := cache.New(params.CachePath)
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	if params.OlderThan <= 0 {
		if err := c.Clear(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		log.Info().Str("path", params.CachePath).Msg("All cache entries cleared")
		fmt.Println("✓ All cache entries cleared")
		return nil
	}

	removed, err := c.Prune(params.OlderThan)
	if err != nil {
		return fmt.Errorf("failed to prune cache: %w", err)
	}
	log.Info().Int("removed", removed).Dur("older_than", params.OlderThan).Msg("Cache pruned")
	fmt.Printf("✓ Removed %d cache entries older than %s\n", removed, params.OlderThan)
	return nil
}
