package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Firefox: FirefoxConfig{
			ProfilePath:    "auto",
			ExcludePrivate: true,
			Timezone:       "local",
		},
		Journal: JournalConfig{
			OutputDirectory: "~/.config/daybook/journals",
			TemplatePath:    "",
		},
		Database: DatabaseConfig{
			Path:          "~/.config/daybook/daybook.db",
			RetentionDays: 365,
		},
		Scheduler: SchedulerConfig{
			Enabled: true,
			Time:    "23:30",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
