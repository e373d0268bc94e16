// Package activations provides the activation functions used by network layers.
package activations

import (
	"fmt"
	"math"
)

// Activation is a scalar activation function with its derivative.
// Both methods take the neuron's pre-activation sum; the trainers rely on
// the derivative being evaluated on the sum, not on the activated output.
type Activation interface {
	// Activate computes f(x)
	Activate(x float64) float64

	// Derivative computes f'(x)
	Derivative(x float64) float64
}

// Sigmoid squashes the input into (0, 1).
type Sigmoid struct{}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Activate computes 1/(1+e^-x)
func (s Sigmoid) Activate(x float64) float64 {
	return sigmoid(x)
}

// Derivative computes sigmoid(x) * (1 - sigmoid(x))
func (s Sigmoid) Derivative(x float64) float64 {
	sigma := sigmoid(x)
	return sigma * (1 - sigma)
}

// HyperbolicTangent squashes the input into (-1, 1).
type HyperbolicTangent struct{}

// Activate computes tanh(x)
func (h HyperbolicTangent) Activate(x float64) float64 {
	return math.Tanh(x)
}

// Derivative computes 1 - tanh(x)^2
func (h HyperbolicTangent) Derivative(x float64) float64 {
	tanhX := math.Tanh(x)
	return 1 - tanhX*tanhX
}

// Name returns the stable identifier used when a network is serialized.
func Name(act Activation) string {
	switch act.(type) {
	case HyperbolicTangent:
		return "Tanh"
	default:
		return "Sigmoid"
	}
}

// ByName resolves a serialized identifier back to an activation function.
func ByName(name string) (Activation, error) {
	switch name {
	case "Sigmoid":
		return Sigmoid{}, nil
	case "Tanh":
		return HyperbolicTangent{}, nil
	default:
		return nil, fmt.Errorf("unknown activation function %q", name)
	}
}
