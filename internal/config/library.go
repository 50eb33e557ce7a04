package config

import (
	"os"
	"path/filepath"
	"strings"
)

// LibraryName is the file name of the preloadable shim
const LibraryName = "librlcomplete.so"

// LibraryCandidates lists where the shim is looked for, in order: next to
// the running executable, $XDG_DATA_HOME/rlcomplete, then the usual system
// library directories.
func LibraryCandidates() []string {
	var dirs []string

	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, AppName))
	}

	dirs = append(dirs, "/usr/local/lib", "/usr/lib")

	paths := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		paths = append(paths, filepath.Join(dir, LibraryName))
	}
	return paths
}

// FindLibrary returns explicit when set, otherwise the first existing
// candidate. The second result reports whether the file exists.
func FindLibrary(explicit string) (string, bool) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			abs = explicit
		}
		_, err = os.Stat(abs)
		return abs, err == nil
	}

	candidates := LibraryCandidates()
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return candidates[0], false
}

// Preloaded reports whether an LD_PRELOAD value names the shim
func Preloaded(ldPreload string) bool {
	for _, entry := range strings.FieldsFunc(ldPreload, func(r rune) bool { return r == ':' || r == ' ' }) {
		if filepath.Base(entry) == LibraryName {
			return true
		}
	}
	return false
}
