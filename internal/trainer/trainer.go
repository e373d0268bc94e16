// Package trainer provides the supervised and genetic training algorithms
// that mutate a network's weights: online backpropagation with momentum and
// learning-rate decay, batch resilient propagation, and genetic crossover
// breeding over flattened weight sequences.
package trainer

import (
	"fmt"
	"math"
	"time"

	"github.com/croftmark/gonn/internal/network"
)

// Trainer is a supervised training algorithm driving a network toward an
// accepted mean squared error within a bounded epoch budget. Training
// blocks the caller for its full duration; progress is reported through an
// optional wall-clock-throttled callback invoked between epochs.
type Trainer interface {
	Train(n *network.Network, acceptedError float64, maxEpochs int) error
	MeanSquaredError() float64
	Epoch() int
}

// ProgressFunc is called between epochs with the current epoch and error.
// It must not mutate the network or the training buffers.
type ProgressFunc func(epoch int, meanSquaredError float64)

const defaultCallbackInterval = time.Second

// base carries the training dataset and bookkeeping shared by the
// supervised trainers.
type base struct {
	inputs [][]float64
	ideals [][]float64

	meanSquaredError float64
	batchSize        int
	epoch            int

	progress         ProgressFunc
	callbackInterval time.Duration
	lastCallback     time.Time
	trainingTime     time.Duration
}

func newBase(inputs, ideals [][]float64) (base, error) {
	if len(inputs) == 0 || len(inputs) != len(ideals) {
		return base{}, fmt.Errorf("%w: %d input rows, %d ideal rows",
			network.ErrDimensionMismatch, len(inputs), len(ideals))
	}
	return base{
		inputs:           inputs,
		ideals:           ideals,
		meanSquaredError: math.MaxFloat64,
		callbackInterval: defaultCallbackInterval,
	}, nil
}

// SetProgressCallback registers a callback invoked synchronously between
// epochs, at most once per interval of wall-clock time.
func (b *base) SetProgressCallback(interval time.Duration, fn ProgressFunc) {
	if interval > 0 {
		b.callbackInterval = interval
	}
	b.progress = fn
}

// SetBatchSize sets the number of samples accumulated before weights are
// changed. Values below one are clamped to one.
func (b *base) SetBatchSize(size int) {
	b.batchSize = max(1, size)
}

// MeanSquaredError returns the error measured over the last epoch.
func (b *base) MeanSquaredError() float64 {
	return b.meanSquaredError
}

// Epoch returns the current training epoch.
func (b *base) Epoch() int {
	return b.epoch
}

// TrainingTime returns the wall-clock duration of the last Train call.
func (b *base) TrainingTime() time.Duration {
	return b.trainingTime
}

func (b *base) reportProgress() {
	if b.progress == nil {
		return
	}
	if now := time.Now(); now.Sub(b.lastCallback) >= b.callbackInterval {
		b.progress(b.epoch, b.meanSquaredError)
		b.lastCallback = now
	}
}

// allocNodeDeltas sizes one node-delta scratch slice per layer, covering
// bias neurons as well so backward passes can index freely.
func allocNodeDeltas(n *network.Network) [][]float64 {
	layers := n.Layers()
	deltas := make([][]float64, len(layers))
	for i, layer := range layers {
		deltas[i] = make([]float64, len(layer.Neurons()))
	}
	return deltas
}
