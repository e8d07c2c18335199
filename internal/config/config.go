package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the stat simulator
type Config struct {
	Simulation SimulationConfig
}

// SimulationConfig controls which scenarios run and how
type SimulationConfig struct {
	// Scenarios are YAML scenario files; empty runs the built-in scenario
	Scenarios   []string
	Verbose     bool
	Parallelism int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Simulation: SimulationConfig{
			Scenarios:   getEnvAsListOrDefault("STATSIM_SCENARIOS", nil),
			Verbose:     getEnvAsBoolOrDefault("STATSIM_VERBOSE", false),
			Parallelism: getEnvAsIntOrDefault("STATSIM_PARALLELISM", 4),
		},
	}

	if cfg.Simulation.Parallelism < 1 {
		return nil, fmt.Errorf("STATSIM_PARALLELISM must be at least 1, got %d", cfg.Simulation.Parallelism)
	}

	return cfg, nil
}

func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
