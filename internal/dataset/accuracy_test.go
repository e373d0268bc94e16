package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croftmark/gonn/internal/activations"
	"github.com/croftmark/gonn/internal/network"
)

func TestAccuracyTesterValidation(t *testing.T) {
	_, err := NewAccuracyTester(nil, ClassLast)
	assert.Error(t, err)

	tester, err := NewAccuracyTester([][]string{{"1.0", "low"}}, ClassLast)
	require.NoError(t, err)
	_, err = tester.TestClassification(network.New())
	assert.ErrorIs(t, err, network.ErrNotReady)
}

func TestClassificationAccuracy(t *testing.T) {
	samples := [][]string{
		{"0.0", "low"},
		{"10.0", "high"},
		{"2.0", "low"},
		{"8.0", "high"},
	}

	n := network.New()
	require.NoError(t, n.AddLayer(1, activations.Sigmoid{}))
	require.NoError(t, n.AddLayer(2, activations.Sigmoid{}))
	require.NoError(t, n.Build())

	// Output 0 fires for small inputs, output 1 for large ones, matching
	// the class order the normalizer sees (low first, high second).
	require.NoError(t, n.SetWeights([]float64{-5, 5, 2.5, -2.5}))

	tester, err := NewAccuracyTester(samples, ClassLast)
	require.NoError(t, err)

	accuracy, err := tester.TestClassification(n)
	require.NoError(t, err)
	assert.Equal(t, 100.0, accuracy)
}

func TestClassificationAccuracyCountsMisses(t *testing.T) {
	samples := [][]string{
		{"0.0", "low"},
		{"10.0", "high"},
		{"2.0", "high"},
		{"8.0", "low"},
	}

	n := network.New()
	require.NoError(t, n.AddLayer(1, activations.Sigmoid{}))
	require.NoError(t, n.AddLayer(2, activations.Sigmoid{}))
	require.NoError(t, n.Build())
	require.NoError(t, n.SetWeights([]float64{-5, 5, 2.5, -2.5}))

	tester, err := NewAccuracyTester(samples, ClassLast)
	require.NoError(t, err)

	accuracy, err := tester.TestClassification(n)
	require.NoError(t, err)
	assert.Equal(t, 50.0, accuracy)
}
