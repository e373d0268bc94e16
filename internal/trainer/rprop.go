package trainer

import (
	"fmt"
	"time"

	"github.com/croftmark/gonn/internal/network"
)

// Resilient propagation update constants. Only the sign of the gradient
// and its consistency across epochs drive the step size; the magnitude of
// the gradient never enters the weight update.
const (
	etaPlus     = 1.2  // step growth on a consistent gradient sign
	etaMinus    = 0.5  // step shrink after a sign flip
	deltaMax    = 50.0 // step size ceiling
	deltaMin    = 1e-6 // step size floor
	initialStep = 0.45 // initial step size and previous-gradient value
)

// ResilientPropagation trains a network in full-dataset batches, adapting
// a per-weight step size from the sign agreement between the current and
// previous accumulated gradient.
type ResilientPropagation struct {
	base

	nodeDelta     [][]float64
	prevGradients [][]float64 // per layer, flattened neuron-major

	squaredError float64
	totalCount   int
}

// NewResilientPropagation creates a trainer over parallel input/ideal
// matrices. The batch size defaults to the full dataset.
func NewResilientPropagation(inputs, ideals [][]float64) (*ResilientPropagation, error) {
	b, err := newBase(inputs, ideals)
	if err != nil {
		return nil, fmt.Errorf("resilient propagation: %w", err)
	}
	return &ResilientPropagation{base: b}, nil
}

// Train runs batch epochs until the mean squared error drops below
// acceptedError or maxEpochs is exhausted.
func (t *ResilientPropagation) Train(n *network.Network, acceptedError float64, maxEpochs int) error {
	if !n.Ready() {
		return fmt.Errorf("training failed: %w", network.ErrNotReady)
	}

	start := time.Now()
	if err := t.init(n); err != nil {
		return err
	}

	for t.epoch = 0; t.epoch < maxEpochs && t.meanSquaredError > acceptedError; t.epoch++ {
		if err := t.runEpoch(n); err != nil {
			return err
		}
		t.meanSquaredError = t.squaredError / float64(t.totalCount)
		t.squaredError = 0
		t.totalCount = 0
		t.reportProgress()
	}

	t.trainingTime = time.Since(start)
	return nil
}

// init randomizes the network and seeds every per-weight step size and
// previous gradient with the initial constant. The neuron WeightChange
// buffers hold the step sizes so they live beside the weights they scale.
func (t *ResilientPropagation) init(n *network.Network) error {
	if err := n.Reset(); err != nil {
		return err
	}
	if t.batchSize == 0 {
		t.batchSize = len(t.inputs)
	}

	layers := n.Layers()
	t.nodeDelta = allocNodeDeltas(n)
	t.prevGradients = make([][]float64, len(layers)-1)
	for layerIdx, layer := range layers[:len(layers)-1] {
		t.prevGradients[layerIdx] = make([]float64, len(layer.Neurons())*layer.WeightsPerNeuron())
		for i := range t.prevGradients[layerIdx] {
			t.prevGradients[layerIdx][i] = initialStep
		}
		for _, neuron := range layer.Neurons() {
			for i := range neuron.WeightChange {
				neuron.WeightChange[i] = initialStep
			}
		}
	}
	return nil
}

func (t *ResilientPropagation) runEpoch(n *network.Network) error {
	iterations := max(1, len(t.inputs)/t.batchSize)

	for i := 0; i < iterations; i++ {
		batchStart := i * t.batchSize
		batchEnd := min(len(t.inputs), (i+1)*t.batchSize)

		if err := t.accumulateGradients(n, batchStart, batchEnd); err != nil {
			return err
		}
		t.updateWeights(n)
	}
	return nil
}

// accumulateGradients runs the forward and backward passes for every
// sample in the batch, summing gradients without touching any weight.
func (t *ResilientPropagation) accumulateGradients(n *network.Network, batchStart, batchEnd int) error {
	layers := n.Layers()
	outputLayer := n.OutputLayer()
	outputNeurons := outputLayer.Neurons()
	outputAct := outputLayer.Activation()
	lastIdx := len(layers) - 1

	for sampleIdx := batchStart; sampleIdx < batchEnd; sampleIdx++ {
		actual, err := n.Compute(t.inputs[sampleIdx])
		if err != nil {
			return err
		}
		ideal := t.ideals[sampleIdx]
		count := min(len(actual), len(ideal))
		t.totalCount += count

		for i := 0; i < count; i++ {
			deltaError := actual[i] - ideal[i]
			t.squaredError += deltaError * deltaError
			t.nodeDelta[lastIdx][i] = -deltaError * outputAct.Derivative(outputNeurons[i].Sum)
		}

		for layerIdx := lastIdx - 1; layerIdx >= 0; layerIdx-- {
			layer := layers[layerIdx]
			act := layer.Activation()
			nextDelta := t.nodeDelta[layerIdx+1]
			thisDelta := t.nodeDelta[layerIdx]

			for neuronIdx, neuron := range layer.Neurons() {
				weightSum := 0.0
				for i, w := range neuron.Weights {
					weightSum += w * nextDelta[i]
				}
				thisDelta[neuronIdx] = weightSum * act.Derivative(neuron.Sum)

				for i := range neuron.Weights {
					neuron.Gradients[i] += nextDelta[i] * neuron.Output
				}
			}
		}
	}
	return nil
}

// updateWeights applies the sign-based step rule to every weight, then
// zeroes the gradient accumulators for the next batch.
func (t *ResilientPropagation) updateWeights(n *network.Network) {
	layers := n.Layers()

	for layerIdx := 0; layerIdx < len(layers)-1; layerIdx++ {
		layer := layers[layerIdx]
		weightsPerNeuron := layer.WeightsPerNeuron()
		prevGradients := t.prevGradients[layerIdx]

		for neuronIdx, neuron := range layer.Neurons() {
			offset := neuronIdx * weightsPerNeuron

			for i := range neuron.Weights {
				gradient := neuron.Gradients[i]
				prevStep := neuron.WeightChange[i]
				product := gradient * prevGradients[offset+i]
				var step float64

				switch {
				case product > 0:
					// Consistent sign: grow the step and apply it.
					step = min(prevStep*etaPlus, deltaMax)
					neuron.Weights[i] += sign(gradient) * step
				case product < 0:
					// Sign flip: the last step overshot. Shrink the step,
					// roll the weight back and neutralize the gradient so
					// the next comparison starts fresh.
					step = max(prevStep*etaMinus, deltaMin)
					neuron.Weights[i] -= prevStep
					gradient = 0
				default:
					// A zero gradient on either side keeps the step as is.
					step = prevStep
					neuron.Weights[i] += sign(gradient) * step
				}

				neuron.WeightChange[i] = step
				prevGradients[offset+i] = gradient
				neuron.Gradients[i] = 0
			}
		}
	}
}

func sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
