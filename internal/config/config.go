// Package config loads training hyperparameters from INI files.
package config

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// Config groups the tunable parameters for a training run.
type Config struct {
	Network         NetworkConfig
	Training        TrainingConfig
	Backpropagation BackpropagationConfig
	Resilient       ResilientConfig
	Genetic         GeneticConfig
}

// NetworkConfig declares the network topology.
type NetworkConfig struct {
	LayerSizes []int  `ini:"layer_sizes" delim:" "` // input first, output last
	Activation string `ini:"activation"`            // "sigmoid" or "tanh"
}

// TrainingConfig holds the exit conditions shared by the trainers.
type TrainingConfig struct {
	AcceptedError float64 `ini:"accepted_error"`
	MaxEpochs     int     `ini:"max_epochs"`
}

// BackpropagationConfig holds the gradient descent parameters.
type BackpropagationConfig struct {
	LearningRate float64 `ini:"learning_rate"`
	Momentum     float64 `ini:"momentum"`
	DecayRate    float64 `ini:"decay_rate"`
	BatchSize    int     `ini:"batch_size"`
}

// ResilientConfig holds the resilient propagation parameters.
type ResilientConfig struct {
	BatchSize int `ini:"batch_size"` // 0 means the full dataset
}

// GeneticConfig holds the breeding parameters.
type GeneticConfig struct {
	PopulationSize      int     `ini:"population_size"`
	MutationProbability float64 `ini:"mutation_probability"` // percent
	EliteBreeding       bool    `ini:"elite_breeding"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Network:         NetworkConfig{LayerSizes: []int{2, 2, 1}, Activation: "sigmoid"},
		Training:        TrainingConfig{AcceptedError: 0.0001, MaxEpochs: 100000},
		Backpropagation: BackpropagationConfig{LearningRate: 0.45, Momentum: 1.0, BatchSize: 1},
		Genetic:         GeneticConfig{PopulationSize: 30, MutationProbability: 20},
	}
}

// Load reads a configuration file and validates it.
func Load(path string) (*Config, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %q: %w", path, err)
	}

	cfg := Default()
	if err := file.Section("Network").MapTo(&cfg.Network); err != nil {
		return nil, fmt.Errorf("failed to map [Network] section: %w", err)
	}
	if err := file.Section("Training").MapTo(&cfg.Training); err != nil {
		return nil, fmt.Errorf("failed to map [Training] section: %w", err)
	}
	if err := file.Section("Backpropagation").MapTo(&cfg.Backpropagation); err != nil {
		return nil, fmt.Errorf("failed to map [Backpropagation] section: %w", err)
	}
	if err := file.Section("ResilientPropagation").MapTo(&cfg.Resilient); err != nil {
		return nil, fmt.Errorf("failed to map [ResilientPropagation] section: %w", err)
	}
	if err := file.Section("Genetic").MapTo(&cfg.Genetic); err != nil {
		return nil, fmt.Errorf("failed to map [Genetic] section: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Network.LayerSizes) < 2 {
		return fmt.Errorf("config error: layer_sizes needs at least an input and an output layer")
	}
	for _, size := range c.Network.LayerSizes {
		if size <= 0 {
			return fmt.Errorf("config error: layer size %d must be positive", size)
		}
	}
	switch strings.ToLower(c.Network.Activation) {
	case "sigmoid", "tanh":
	default:
		return fmt.Errorf("config error: invalid activation %q, must be 'sigmoid' or 'tanh'", c.Network.Activation)
	}
	if c.Training.AcceptedError < 0 {
		return fmt.Errorf("config error: accepted_error cannot be negative")
	}
	if c.Training.MaxEpochs <= 0 {
		return fmt.Errorf("config error: max_epochs must be positive")
	}
	if c.Backpropagation.LearningRate <= 0 {
		return fmt.Errorf("config error: learning_rate must be positive")
	}
	if c.Backpropagation.Momentum < 0 {
		return fmt.Errorf("config error: momentum cannot be negative")
	}
	if c.Backpropagation.DecayRate < 0 {
		return fmt.Errorf("config error: decay_rate cannot be negative")
	}
	if c.Resilient.BatchSize < 0 {
		return fmt.Errorf("config error: batch_size cannot be negative")
	}
	if c.Genetic.PopulationSize < 2 {
		return fmt.Errorf("config error: population_size must be at least 2")
	}
	if c.Genetic.MutationProbability < 0 || c.Genetic.MutationProbability > 100 {
		return fmt.Errorf("config error: mutation_probability must be between 0 and 100")
	}
	return nil
}
