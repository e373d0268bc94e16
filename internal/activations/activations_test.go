package activations

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigmoid(t *testing.T) {
	s := Sigmoid{}

	assert.InDelta(t, 0.5, s.Activate(0), 1e-12)
	assert.InDelta(t, 1/(1+math.Exp(-2)), s.Activate(2), 1e-12)

	// Output stays inside (0, 1) even for extreme inputs.
	assert.Greater(t, s.Activate(-40), 0.0)
	assert.LessOrEqual(t, s.Activate(40), 1.0)
}

func TestSigmoidDerivative(t *testing.T) {
	s := Sigmoid{}

	// f'(x) = f(x)(1-f(x)), evaluated on the pre-activation value.
	for _, x := range []float64{-3, -0.5, 0, 0.5, 3} {
		sigma := s.Activate(x)
		assert.InDelta(t, sigma*(1-sigma), s.Derivative(x), 1e-12)
	}

	// Steepest at zero.
	assert.InDelta(t, 0.25, s.Derivative(0), 1e-12)
}

func TestHyperbolicTangent(t *testing.T) {
	h := HyperbolicTangent{}

	assert.Zero(t, h.Activate(0))
	assert.InDelta(t, math.Tanh(1.5), h.Activate(1.5), 1e-12)
	assert.InDelta(t, -h.Activate(1.5), h.Activate(-1.5), 1e-12)
}

func TestHyperbolicTangentDerivative(t *testing.T) {
	h := HyperbolicTangent{}

	for _, x := range []float64{-2, -0.1, 0, 0.1, 2} {
		tanh := math.Tanh(x)
		assert.InDelta(t, 1-tanh*tanh, h.Derivative(x), 1e-12)
	}
}

func TestNameRoundTrip(t *testing.T) {
	for _, act := range []Activation{Sigmoid{}, HyperbolicTangent{}} {
		name := Name(act)
		resolved, err := ByName(name)
		require.NoError(t, err)
		assert.IsType(t, act, resolved)
	}

	_, err := ByName("ReLU")
	assert.Error(t, err)
}
