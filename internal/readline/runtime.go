package readline

import (
	"sync"

	"github.com/NikitaCOEUR/rlcomplete/internal/bridge"
	"github.com/NikitaCOEUR/rlcomplete/internal/config"
	"github.com/NikitaCOEUR/rlcomplete/internal/hook"
	"github.com/NikitaCOEUR/rlcomplete/internal/logger"
	"github.com/NikitaCOEUR/rlcomplete/internal/shim"
	"github.com/NikitaCOEUR/rlcomplete/internal/symbol"
)

// runtime is everything the exported entry points share for the life of
// the host process
type runtime struct {
	settings   *config.Settings
	log        *logger.Logger
	lib        Library
	original   hook.Delegate
	trampoline *hook.Trampoline
	completer  *shim.Completer
}

var current = sync.OnceValue(func() *runtime {
	settings, path, err := config.LoadSettings()
	if err != nil {
		// A broken settings file must not break the host
		settings = &config.Settings{}
	}

	// The log file stays open until the host exits
	log, _, logErr := logger.Open(settings.LogLevel, settings.LogFile)
	if logErr != nil {
		log = logger.Discard()
	}
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("Ignoring settings, using defaults")
	}

	original := symbol.Lazy("rl_complete")
	return newRuntime(settings, log, func(ignore, key int) int {
		return call(original(), ignore, key)
	})
})

func newRuntime(settings *config.Settings, log *logger.Logger, original hook.Delegate) *runtime {
	rt := &runtime{
		settings: settings,
		log:      log,
		original: original,
	}

	rt.trampoline = hook.New(rt.lib, original)

	b := bridge.New(bridge.Options{
		Program: settings.Program,
		NameVar: settings.NameVar,
		Name:    rt.lib.Name,
		Refresh: rt.lib.RefreshLine,
		Logger:  log,
	})
	rt.completer = shim.New(rt.lib, rt.trampoline.Saved, b, log)

	log.Debug().
		Str("program", b.Program()).
		Bool("disabled", settings.Disable).
		Msg("Completion shim ready")

	return rt
}

// Complete is the body of the exported rl_complete. It runs the original
// rl_complete with the shim's callback installed in
// rl_attempted_completion_function, then restores whatever was there.
func Complete(ignore, key int) int {
	return current().complete(ignore, key)
}

func (rt *runtime) complete(ignore, key int) int {
	// A host re-entering rl_complete from its own callback already has ours
	// installed
	if rt.settings.Disable || rt.trampoline.Active() {
		return rt.original(ignore, key)
	}
	return rt.trampoline.Hijack(ignore, key, rt.lib.Replacement())
}
