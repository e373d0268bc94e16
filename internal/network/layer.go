package network

import (
	"fmt"

	"github.com/croftmark/gonn/internal/activations"
)

// Layer is an ordered group of neurons sharing one activation function.
// Weights for the whole layer live in a single contiguous buffer laid out
// neuron-major, weight-index-minor; each neuron's Weights slice is a view
// into that buffer.
type Layer struct {
	neurons   []*Neuron
	biasCount int
	act       activations.Activation

	// Contiguous per-layer buffers. len = (normal+bias) * weightsPerNeuron.
	weights      []float64
	gradients    []float64
	weightChange []float64
}

// newLayer creates a layer with the given number of normal neurons, the
// number of outgoing weights per neuron and the number of bias neurons.
// Bias neurons are appended after the normal neurons and output a constant
// 1.0 which acts as the additive bias term of the next layer.
func newLayer(act activations.Activation, normal, weightsPerNeuron, biasCount int) *Layer {
	total := normal + biasCount
	l := &Layer{
		neurons:      make([]*Neuron, total),
		biasCount:    biasCount,
		act:          act,
		weights:      make([]float64, total*weightsPerNeuron),
		gradients:    make([]float64, total*weightsPerNeuron),
		weightChange: make([]float64, total*weightsPerNeuron),
	}

	for i := 0; i < total; i++ {
		lo, hi := i*weightsPerNeuron, (i+1)*weightsPerNeuron
		n := &Neuron{
			Weights:      l.weights[lo:hi:hi],
			Gradients:    l.gradients[lo:hi:hi],
			WeightChange: l.weightChange[lo:hi:hi],
		}
		if i >= normal {
			n.Output = 1.0
		}
		l.neurons[i] = n
	}
	return l
}

// Neurons returns every neuron in the layer, bias neurons last.
func (l *Layer) Neurons() []*Neuron {
	return l.neurons
}

// NormalCount returns the number of non-bias neurons.
func (l *Layer) NormalCount() int {
	return len(l.neurons) - l.biasCount
}

// BiasCount returns the number of bias neurons.
func (l *Layer) BiasCount() int {
	return l.biasCount
}

// Activation returns the layer's activation function.
func (l *Layer) Activation() activations.Activation {
	return l.act
}

// WeightsPerNeuron returns the outgoing weight count of each neuron.
func (l *Layer) WeightsPerNeuron() int {
	if len(l.neurons) == 0 {
		return 0
	}
	return len(l.neurons[0].Weights)
}

// setOutputs writes the input vector directly into the normal neurons.
// Bias neurons keep their fixed output.
func (l *Layer) setOutputs(data []float64) error {
	if len(data) != l.NormalCount() {
		return fmt.Errorf("%w: %d inputs for %d neurons", ErrDimensionMismatch, len(data), l.NormalCount())
	}
	for i, v := range data {
		l.neurons[i].Output = v
	}
	return nil
}

// outputs collects the output values of the normal neurons.
func (l *Layer) outputs() []float64 {
	out := make([]float64, l.NormalCount())
	for i := range out {
		out[i] = l.neurons[i].Output
	}
	return out
}
