package cli

import (
	"fmt"

	"github.com/NikitaCOEUR/rlcomplete/internal/status"
)

// StatusParams contains parameters for the Status command
type StatusParams struct {
	ConfigDir   string
	CachePath   string
	LibraryPath string
}

// Status displays settings, installation and rules
func Status(params StatusParams) error {
	data := status.Collect(status.Options{
		ConfigDir:   params.ConfigDir,
		CachePath:   params.CachePath,
		LibraryPath: params.LibraryPath,
	})

	fmt.Println(status.Render(data))
	return nil
}
