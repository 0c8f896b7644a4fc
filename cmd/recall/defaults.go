package main

import (
	"github.com/spf13/viper"
)

func initViperDefaults() {
	// Global
	viper.SetDefault("file_state_dir", "~/.recall")
	viper.SetDefault("memory.dir_name", "memory")
	viper.SetDefault("memory.dir", "")

	// Search
	viper.SetDefault("search.threshold", 0.65)
	viper.SetDefault("search.max_results", 5)
	viper.SetDefault("search.cascade", true)

	// Snapshot
	viper.SetDefault("snapshot.ttl_seconds", 3600)

	// Persona classifier
	viper.SetDefault("persona.confidence_threshold", 0.6)
	viper.SetDefault("persona.patterns_file", "")
}
