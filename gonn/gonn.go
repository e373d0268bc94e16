// Package gonn is the public surface of the feed forward network engine.
// It re-exports the internal packages: the network structure, the three
// training algorithms and the dataset tooling.
package gonn

import (
	"github.com/croftmark/gonn/internal/activations"
	"github.com/croftmark/gonn/internal/config"
	"github.com/croftmark/gonn/internal/dataset"
	"github.com/croftmark/gonn/internal/network"
	"github.com/croftmark/gonn/internal/trainer"
)

// Re-export common types for easier access
type (
	Network                  = network.Network
	Layer                    = network.Layer
	Neuron                   = network.Neuron
	Activation               = activations.Activation
	Trainer                  = trainer.Trainer
	Backpropagation          = trainer.Backpropagation
	ResilientPropagation     = trainer.ResilientPropagation
	GeneticAlgorithm         = trainer.GeneticAlgorithm
	Population               = trainer.Population
	Dataset                  = dataset.Dataset
	ClassificationNormalizer = dataset.ClassificationNormalizer
	AccuracyTester           = dataset.AccuracyTester
	Config                   = config.Config
)

// Error taxonomy
var (
	ErrNotReady          = network.ErrNotReady
	ErrInvalidTopology   = network.ErrInvalidTopology
	ErrDimensionMismatch = network.ErrDimensionMismatch
	ErrStructureMismatch = network.ErrStructureMismatch
	ErrUnknownCategory   = dataset.ErrUnknownCategory
)

// Activations
var (
	Sigmoid           = activations.Sigmoid{}
	HyperbolicTangent = activations.HyperbolicTangent{}
)

// Class column positions accepted by ClassificationNormalizer.Scan and
// NewAccuracyTester.
const (
	ClassFirst = dataset.ClassFirst
	ClassLast  = dataset.ClassLast
)

// NewNetwork creates an empty network; declare layers with AddLayer and
// finalize with Build.
func NewNetwork() *Network {
	return network.New()
}

// LoadNetwork reads a network exported with Network.Save.
func LoadNetwork(filename string) (*Network, error) {
	return network.Load(filename)
}

// Trainers
func NewBackpropagation(inputs, ideals [][]float64, learningRate, momentum float64) (*Backpropagation, error) {
	return trainer.NewBackpropagation(inputs, ideals, learningRate, momentum)
}

func NewResilientPropagation(inputs, ideals [][]float64) (*ResilientPropagation, error) {
	return trainer.NewResilientPropagation(inputs, ideals)
}

func NewGeneticAlgorithm() *GeneticAlgorithm {
	return trainer.NewGeneticAlgorithm()
}

func NewPopulation(size int, prototype *Network, mutationProbability float64) (*Population, error) {
	return trainer.NewPopulation(size, prototype, mutationProbability)
}

// Datasets
func LoadDataset(path string) (*Dataset, error) {
	return dataset.Load(path)
}

func NewClassificationNormalizer() *ClassificationNormalizer {
	return dataset.NewClassificationNormalizer()
}

func NewAccuracyTester(samples [][]string, classPosition int) (*AccuracyTester, error) {
	return dataset.NewAccuracyTester(samples, classPosition)
}

// Configuration
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

func DefaultConfig() *Config {
	return config.Default()
}

// BuildNetwork materializes a network from a configuration's topology.
func BuildNetwork(cfg *Config) (*Network, error) {
	var act Activation = Sigmoid
	if cfg.Network.Activation == "tanh" {
		act = HyperbolicTangent
	}

	n := network.New()
	for _, size := range cfg.Network.LayerSizes {
		if err := n.AddLayer(size, act); err != nil {
			return nil, err
		}
	}
	if err := n.Build(); err != nil {
		return nil, err
	}
	if err := n.Reset(); err != nil {
		return nil, err
	}
	return n, nil
}
