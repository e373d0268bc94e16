package trainer

import (
	"fmt"
	"strings"
	"time"

	"github.com/croftmark/gonn/internal/network"
)

// maxAttempts bounds the weight-reinitialization retry loop: if a full
// epoch budget fails to reach the accepted error, the weights are
// re-randomized and training starts over.
const maxAttempts = 10

// Backpropagation trains a network through online (or mini-batch) gradient
// descent with momentum and an optional learning-rate decay per epoch.
type Backpropagation struct {
	base

	learningRate float64
	momentum     float64
	decayRate    float64
	attempts     int

	nodeDelta [][]float64
}

// NewBackpropagation creates a trainer over parallel input/ideal matrices;
// row i of each is one training sample. A lower learning rate converges
// slower but damps oscillation; momentum helps escape local minima.
func NewBackpropagation(inputs, ideals [][]float64, learningRate, momentum float64) (*Backpropagation, error) {
	b, err := newBase(inputs, ideals)
	if err != nil {
		return nil, fmt.Errorf("backpropagation: %w", err)
	}
	b.batchSize = 1
	return &Backpropagation{
		base:         b,
		learningRate: learningRate,
		momentum:     momentum,
	}, nil
}

// SetDecayRate sets the per-epoch decay of the learning rate:
// alpha = learningRate / (1 + decayRate*epoch).
func (t *Backpropagation) SetDecayRate(decayRate float64) {
	t.decayRate = decayRate
}

// Attempts returns how many weight initializations the last Train used.
func (t *Backpropagation) Attempts() int {
	return t.attempts
}

// Train runs epochs until the mean squared error drops below acceptedError
// or maxEpochs is exhausted, re-randomizing the weights and retrying up to
// a fixed attempt cap if the budget runs out.
func (t *Backpropagation) Train(n *network.Network, acceptedError float64, maxEpochs int) error {
	if !n.Ready() {
		return fmt.Errorf("training failed: %w", network.ErrNotReady)
	}

	start := time.Now()
	t.nodeDelta = allocNodeDeltas(n)

	for t.attempts = 1; ; t.attempts++ {
		if err := n.Reset(); err != nil {
			return err
		}
		for t.epoch = 0; t.epoch < maxEpochs && t.meanSquaredError > acceptedError; t.epoch++ {
			mse, err := t.runEpoch(n)
			if err != nil {
				return err
			}
			t.meanSquaredError = mse
			t.reportProgress()
		}
		if t.meanSquaredError <= acceptedError || t.attempts >= maxAttempts {
			break
		}
	}

	t.trainingTime = time.Since(start)
	return nil
}

// runEpoch iterates the dataset once, adjusting weights per sample (or per
// mini-batch). Returns the squared error summed over every output unit and
// sample, divided by the total unit count.
func (t *Backpropagation) runEpoch(n *network.Network) (float64, error) {
	layers := n.Layers()
	outputLayer := n.OutputLayer()
	outputNeurons := outputLayer.Neurons()
	outputAct := outputLayer.Activation()
	lastIdx := len(layers) - 1

	squaredError := 0.0
	totalCount := 0
	alpha := t.learningRate / (1 + t.decayRate*float64(t.epoch))

	for sampleIdx := range t.inputs {
		updateWeights := sampleIdx%t.batchSize == 0 || sampleIdx == len(t.inputs)-1

		actual, err := n.Compute(t.inputs[sampleIdx])
		if err != nil {
			return 0, err
		}
		ideal := t.ideals[sampleIdx]
		count := min(len(actual), len(ideal))
		totalCount += count

		// Output node-deltas; negated so the weight update is additive.
		for i := 0; i < count; i++ {
			deltaError := actual[i] - ideal[i]
			squaredError += deltaError * deltaError
			t.nodeDelta[lastIdx][i] = -deltaError * outputAct.Derivative(outputNeurons[i].Sum)
		}

		// Backward pass from the last hidden layer to the input layer.
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
					if updateWeights {
						deltaWeight := alpha*neuron.Gradients[i] + t.momentum*neuron.WeightChange[i]
						neuron.WeightChange[i] = deltaWeight
						neuron.Weights[i] += deltaWeight
						neuron.Gradients[i] = 0
					}
				}
			}
		}
	}
	return squaredError / float64(totalCount), nil
}

// Summary returns a human readable report of the last training run.
func (t *Backpropagation) Summary() string {
	var sb strings.Builder
	sb.WriteString("------------- Training Results -------------\n")
	fmt.Fprintf(&sb, "Training samples: %d\n", len(t.inputs))
	if t.batchSize == 1 {
		sb.WriteString("Mini-batch size: 1 (stochastic)\n")
	} else {
		fmt.Fprintf(&sb, "Mini-batch size: %d\n", t.batchSize)
	}
	fmt.Fprintf(&sb, "Learning rate: %g\n", t.learningRate)
	fmt.Fprintf(&sb, "Decay rate: %g\n", t.decayRate)
	fmt.Fprintf(&sb, "Momentum: %g\n", t.momentum)
	fmt.Fprintf(&sb, "Attempts: %d\n", t.attempts)
	fmt.Fprintf(&sb, "Epochs: %d\n", t.epoch)
	fmt.Fprintf(&sb, "Training time: %v\n", t.trainingTime)
	fmt.Fprintf(&sb, "Mean squared error: %.12f", t.meanSquaredError)
	return sb.String()
}
