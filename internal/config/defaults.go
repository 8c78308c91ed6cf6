package config

const (
	defaultHomeDir          = "~/.claude/homunculus"
	defaultObservationsFile = "observations.jsonl"
	defaultImportRoot       = "inherited"
	defaultImportTimeout    = 30
	defaultImportUserAgent  = "instinct-cli"
	defaultLogFormat        = "console"
	defaultLogLevel         = "warn"
)

// defaultRoots is the layout used when no [[storage.roots]] are configured.
func defaultRoots() []Root {
	return []Root{
		{Name: "personal", Dir: "instincts/personal"},
		{Name: "inherited", Dir: "instincts/inherited"},
	}
}

// Default returns a Config populated with repository defaults. Storage roots
// are filled in during normalization so a config file can replace them.
func Default() Config {
	return Config{
		Paths: Paths{
			HomeDir:          defaultHomeDir,
			ObservationsFile: defaultObservationsFile,
		},
		Storage: Storage{
			ImportRoot: defaultImportRoot,
		},
		Import: Import{
			TimeoutSeconds: defaultImportTimeout,
			UserAgent:      defaultImportUserAgent,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
