package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croftmark/gonn/internal/activations"
)

func buildNetwork(t *testing.T, sizes ...int) *Network {
	t.Helper()
	n := New()
	for _, size := range sizes {
		require.NoError(t, n.AddLayer(size, activations.Sigmoid{}))
	}
	require.NoError(t, n.Build())
	return n
}

func TestAddLayerRejectsInvalidSize(t *testing.T) {
	n := New()
	assert.ErrorIs(t, n.AddLayer(0, activations.Sigmoid{}), ErrInvalidTopology)
	assert.ErrorIs(t, n.AddLayer(-3, activations.Sigmoid{}), ErrInvalidTopology)
}

func TestBuildWithoutLayers(t *testing.T) {
	n := New()
	assert.ErrorIs(t, n.Build(), ErrInvalidTopology)
	assert.False(t, n.Ready())
}

func TestOperationsBeforeBuild(t *testing.T) {
	n := New()
	require.NoError(t, n.AddLayer(2, activations.Sigmoid{}))

	_, err := n.Compute([]float64{1, 2})
	assert.ErrorIs(t, err, ErrNotReady)
	assert.ErrorIs(t, n.Reset(), ErrNotReady)
	assert.ErrorIs(t, n.SetWeights([]float64{1}), ErrNotReady)
}

func TestBuildTopology(t *testing.T) {
	n := buildNetwork(t, 2, 3, 1)
	layers := n.Layers()
	require.Len(t, layers, 3)

	// Non-output layers get one bias neuron and one weight per normal
	// neuron in the next layer; the output layer gets neither.
	assert.Equal(t, 2, layers[0].NormalCount())
	assert.Equal(t, 1, layers[0].BiasCount())
	assert.Equal(t, 3, layers[0].WeightsPerNeuron())

	assert.Equal(t, 3, layers[1].NormalCount())
	assert.Equal(t, 1, layers[1].BiasCount())
	assert.Equal(t, 1, layers[1].WeightsPerNeuron())

	assert.Equal(t, 1, layers[2].NormalCount())
	assert.Equal(t, 0, layers[2].BiasCount())
	assert.Equal(t, 0, layers[2].WeightsPerNeuron())

	// Bias neurons output a constant 1.0.
	biasNeuron := layers[0].Neurons()[2]
	assert.Equal(t, 1.0, biasNeuron.Output)

	assert.Equal(t, 3*3+4*1, n.WeightCount())
	assert.True(t, n.Ready())
}

func TestResetRandomizesWithinRange(t *testing.T) {
	n := buildNetwork(t, 4, 5, 2)
	require.NoError(t, n.Reset())

	nonZero := 0
	for _, w := range n.Weights() {
		assert.GreaterOrEqual(t, w, -2.0)
		assert.LessOrEqual(t, w, 2.0)
		if w != 0 {
			nonZero++
		}
	}
	assert.Greater(t, nonZero, 0)
}

func TestResetClearsAccumulators(t *testing.T) {
	n := buildNetwork(t, 2, 2, 1)
	require.NoError(t, n.Reset())

	neuron := n.InputLayer().Neurons()[0]
	neuron.Gradients[0] = 3.5
	neuron.WeightChange[0] = -1.25

	require.NoError(t, n.Reset())
	assert.Zero(t, neuron.Gradients[0])
	assert.Zero(t, neuron.WeightChange[0])
}

func TestComputeDimensionMismatch(t *testing.T) {
	n := buildNetwork(t, 2, 2, 1)
	require.NoError(t, n.Reset())

	_, err := n.Compute([]float64{1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = n.Compute([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestComputeOutputLength(t *testing.T) {
	n := buildNetwork(t, 3, 4, 2)
	require.NoError(t, n.Reset())

	output, err := n.Compute([]float64{0.1, 0.2, 0.3})
	require.NoError(t, err)
	assert.Len(t, output, 2)
}

func TestComputeIsDeterministic(t *testing.T) {
	n := buildNetwork(t, 2, 3, 2)
	require.NoError(t, n.Reset())

	input := []float64{0.25, -0.75}
	first, err := n.Compute(input)
	require.NoError(t, err)
	second, err := n.Compute(input)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeUsesBiasAsAdditiveTerm(t *testing.T) {
	// 1-1 network with handpicked weights: out = sigmoid(in*w + bias*wb).
	n := buildNetwork(t, 1, 1)
	require.NoError(t, n.SetWeights([]float64{2, -1})) // neuron weight, bias weight

	act := activations.Sigmoid{}
	output, err := n.Compute([]float64{0.5})
	require.NoError(t, err)
	assert.InDelta(t, act.Activate(0.5*2-1), output[0], 1e-12)

	// With a zero input only the bias term remains.
	output, err = n.Compute([]float64{0})
	require.NoError(t, err)
	assert.InDelta(t, act.Activate(-1), output[0], 1e-12)
}

func TestWeightsRoundTrip(t *testing.T) {
	n := buildNetwork(t, 2, 2, 1)
	require.NoError(t, n.Reset())

	flat := n.Weights()
	require.Len(t, flat, n.WeightCount())

	other := buildNetwork(t, 2, 2, 1)
	require.NoError(t, other.SetWeights(flat))
	assert.Equal(t, flat, other.Weights())

	input := []float64{0.3, 0.9}
	expected, err := n.Compute(input)
	require.NoError(t, err)
	actual, err := other.Compute(input)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func TestSetWeightsLengthMismatch(t *testing.T) {
	n := buildNetwork(t, 2, 2, 1)
	assert.ErrorIs(t, n.SetWeights(make([]float64, 3)), ErrStructureMismatch)
}

func TestNeuronWeightsAliasLayerBuffer(t *testing.T) {
	// Mutating a weight through the neuron must show up in the flattened
	// view; the flatten/reconstitute contract depends on it.
	n := buildNetwork(t, 2, 2, 1)
	n.InputLayer().Neurons()[0].Weights[1] = 42

	assert.Equal(t, 42.0, n.Weights()[1])
}

func TestCloneStructure(t *testing.T) {
	n := buildNetwork(t, 3, 5, 2)
	require.NoError(t, n.Reset())

	clone, err := n.CloneStructure()
	require.NoError(t, err)
	require.True(t, clone.Ready())
	assert.Equal(t, n.WeightCount(), clone.WeightCount())

	// Structure only: weights start at zero.
	for _, w := range clone.Weights() {
		assert.Zero(t, w)
	}
}
