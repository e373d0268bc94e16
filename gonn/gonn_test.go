package gonn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNetworkFromDefaultConfig(t *testing.T) {
	n, err := BuildNetwork(DefaultConfig())
	require.NoError(t, err)
	require.True(t, n.Ready())

	output, err := n.Compute([]float64{0, 1})
	require.NoError(t, err)
	assert.Len(t, output, 1)
}

func TestBuildNetworkHonorsActivation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Network.Activation = "tanh"
	cfg.Network.LayerSizes = []int{1, 1}

	n, err := BuildNetwork(cfg)
	require.NoError(t, err)

	// Drive the single weight strongly negative; tanh goes below zero
	// where sigmoid cannot.
	require.NoError(t, n.SetWeights([]float64{-10, 0}))
	output, err := n.Compute([]float64{1})
	require.NoError(t, err)
	assert.Less(t, output[0], 0.0)
}

func TestBuildNetworkRejectsBadTopology(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Network.LayerSizes = []int{2, 0, 1}

	_, err := BuildNetwork(cfg)
	assert.ErrorIs(t, err, ErrInvalidTopology)
}

func TestEndToEndXOR(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Network.LayerSizes = []int{2, 3, 1}

	n, err := BuildNetwork(cfg)
	require.NoError(t, err)

	inputs := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	ideals := [][]float64{{0}, {1}, {1}, {0}}

	trainer, err := NewBackpropagation(inputs, ideals, 0.7, 0.9)
	require.NoError(t, err)
	require.NoError(t, trainer.Train(n, 0.01, 20000))
	assert.Less(t, trainer.MeanSquaredError(), 0.01)
}
