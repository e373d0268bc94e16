// Package network provides the data structure of a feed forward neural
// network: layers of neurons, each fully connected to the next, with one
// activation function per layer and a fixed-output bias neuron feeding
// every non-output layer. The structure is built once and then mutated in
// place (weight values only) by the trainers.
package network

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/croftmark/gonn/internal/activations"
)

// Weights are initialized uniformly in [-weightInitRange, weightInitRange].
const weightInitRange = 2.0

const biasNeurons = 1

type layerSpec struct {
	size int
	act  activations.Activation
}

// Network is an ordered sequence of fully connected layers. Layers are
// declared with AddLayer and materialized by Build; Compute and Reset fail
// with ErrNotReady until then.
//
// A Network is not safe for concurrent use: the per-neuron sum/output
// fields are scratch state overwritten by every forward pass, so callers
// must serialize access (or use one network per concurrent worker).
type Network struct {
	pending []layerSpec
	layers  []*Layer
	ready   bool
}

// New creates an empty network. Declare layers with AddLayer and finalize
// with Build before computing.
func New() *Network {
	return &Network{}
}

// AddLayer appends a pending layer declaration. The first added layer is
// the input layer, the last the output layer.
func (n *Network) AddLayer(size int, act activations.Activation) error {
	if size <= 0 {
		return fmt.Errorf("%w: layer size %d", ErrInvalidTopology, size)
	}
	if act == nil {
		act = activations.Sigmoid{}
	}
	n.pending = append(n.pending, layerSpec{size: size, act: act})
	return nil
}

// Build materializes the declared layers. Every non-output layer gets one
// bias neuron and one outgoing weight per normal neuron in the next layer;
// the output layer gets neither. Weights start at zero until Reset is
// called or a trainer loads them.
func (n *Network) Build() error {
	if len(n.pending) == 0 {
		return fmt.Errorf("%w: no layers declared", ErrInvalidTopology)
	}

	n.layers = make([]*Layer, len(n.pending))
	for i, spec := range n.pending {
		if i < len(n.pending)-1 {
			n.layers[i] = newLayer(spec.act, spec.size, n.pending[i+1].size, biasNeurons)
		} else {
			n.layers[i] = newLayer(spec.act, spec.size, 0, 0)
		}
	}
	n.pending = nil
	n.ready = true
	return nil
}

// Reset assigns every weight an independent uniform value in the fixed
// initialization range and clears all training accumulators.
func (n *Network) Reset() error {
	if !n.ready {
		return fmt.Errorf("reset: %w", ErrNotReady)
	}

	uniform := distuv.Uniform{Min: -weightInitRange, Max: weightInitRange}
	for _, layer := range n.layers {
		for i := range layer.weights {
			layer.weights[i] = uniform.Rand()
			layer.gradients[i] = 0
			layer.weightChange[i] = 0
		}
	}
	return nil
}

// Compute feeds the input vector through the network and returns the
// output layer's values. The input length must match the input layer's
// normal neuron count.
func (n *Network) Compute(input []float64) ([]float64, error) {
	if !n.ready {
		return nil, fmt.Errorf("compute: %w", ErrNotReady)
	}
	if err := n.InputLayer().setOutputs(input); err != nil {
		return nil, fmt.Errorf("compute: %w", err)
	}

	for layerIdx := 1; layerIdx < len(n.layers); layerIdx++ {
		prev := n.layers[layerIdx-1]
		this := n.layers[layerIdx]

		for neuronIdx := 0; neuronIdx < this.NormalCount(); neuronIdx++ {
			neuron := this.neurons[neuronIdx]

			sum := 0.0
			for _, prevNeuron := range prev.neurons {
				sum += prevNeuron.Output * prevNeuron.Weights[neuronIdx]
			}
			neuron.Sum = sum
			neuron.Output = this.act.Activate(sum)
		}
	}
	return n.OutputLayer().outputs(), nil
}

// Ready reports whether the network has been built.
func (n *Network) Ready() bool {
	return n.ready
}

// Layers returns the materialized layers, input first.
func (n *Network) Layers() []*Layer {
	return n.layers
}

// InputLayer returns the first layer.
func (n *Network) InputLayer() *Layer {
	return n.layers[0]
}

// OutputLayer returns the last layer.
func (n *Network) OutputLayer() *Layer {
	return n.layers[len(n.layers)-1]
}

// WeightCount returns the total number of weights across all layers.
func (n *Network) WeightCount() int {
	count := 0
	for _, layer := range n.layers {
		count += len(layer.weights)
	}
	return count
}

// Weights flattens every weight into one ordered sequence: layer-major,
// then neuron-major (bias neurons last in their layer), then weight-index.
// This ordering is the breeding DNA contract and the persisted layout.
func (n *Network) Weights() []float64 {
	flat := make([]float64, 0, n.WeightCount())
	for _, layer := range n.layers {
		flat = append(flat, layer.weights...)
	}
	return flat
}

// SetWeights loads a flattened weight sequence back in Weights order.
func (n *Network) SetWeights(flat []float64) error {
	if !n.ready {
		return fmt.Errorf("set weights: %w", ErrNotReady)
	}
	if len(flat) != n.WeightCount() {
		return fmt.Errorf("%w: %d weights for a network of %d", ErrStructureMismatch, len(flat), n.WeightCount())
	}
	offset := 0
	for _, layer := range n.layers {
		copy(layer.weights, flat[offset:offset+len(layer.weights)])
		offset += len(layer.weights)
	}
	return nil
}

// CloneStructure creates a new built network with the same layer sizes and
// activation functions, with zeroed weights.
func (n *Network) CloneStructure() (*Network, error) {
	if !n.ready {
		return nil, fmt.Errorf("clone: %w", ErrNotReady)
	}
	clone := New()
	for _, layer := range n.layers {
		if err := clone.AddLayer(layer.NormalCount(), layer.act); err != nil {
			return nil, err
		}
	}
	if err := clone.Build(); err != nil {
		return nil, err
	}
	return clone, nil
}
