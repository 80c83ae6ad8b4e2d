package docstudio

import (
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/pflag"
)

type AllFlags struct {
	GeneratorOptions
	OutputOptions
	logger.Flags
}

type GeneratorOptions struct {
	CacheTTL      time.Duration // TTL for the generation cache
	NoCache       bool          // disable caching (equivalent to --cache-ttl=0)
	ScriptTimeout time.Duration // timeout for custom template scripts
}

// GetEffectiveTTL returns the cache TTL considering the no-cache flag.
func (g GeneratorOptions) GetEffectiveTTL() time.Duration {
	if g.NoCache {
		return 0
	}
	return g.CacheTTL
}

type OutputOptions struct {
	JSON    bool // machine-readable output
	NoColor bool
}

var Flags = AllFlags{
	GeneratorOptions: GeneratorOptions{
		CacheTTL:      24 * time.Hour,
		ScriptTimeout: 2 * time.Minute,
	},
	Flags: logger.Flags{
		Level:       "info",
		LogToStderr: true,
	},
}

// BindAllFlags adds the global flags to a pflag set (for Cobra).
func BindAllFlags(flags *pflag.FlagSet) AllFlags {
	flags.CountVarP(&Flags.Flags.LevelCount, "loglevel", "v", "Increase logging level")
	flags.StringVar(&Flags.Flags.Level, "log-level", "info", "Set the default log level")
	flags.BoolVar(&Flags.Flags.JsonLogs, "json-logs", false, "Print logs in json format to stderr")
	flags.BoolVar(&Flags.Flags.LogToStderr, "log-to-stderr", true, "Log to stderr instead of stdout")

	flags.DurationVar(&Flags.GeneratorOptions.CacheTTL, "cache-ttl", Flags.GeneratorOptions.CacheTTL,
		"TTL for the generation cache")
	flags.BoolVar(&Flags.GeneratorOptions.NoCache, "no-cache", false,
		"Disable the generation cache (equivalent to --cache-ttl=0)")
	flags.DurationVar(&Flags.GeneratorOptions.ScriptTimeout, "script-timeout", Flags.GeneratorOptions.ScriptTimeout,
		"Timeout for custom template scripts")

	flags.BoolVar(&Flags.OutputOptions.JSON, "json", false, "Machine-readable JSON output")
	flags.BoolVar(&Flags.OutputOptions.NoColor, "no-color", false, "Disable colored output")

	return Flags
}

func (a AllFlags) UseFlags() {
	logger.Configure(a.Flags)
}
