package network

// Neuron is the basic data container for a single unit. Its slices alias
// into the owning layer's contiguous buffers, so mutating a weight through
// the neuron and through the layer's flattened view is the same operation.
type Neuron struct {
	// Weights holds the outgoing weights, one per normal neuron in the
	// next layer. Empty in the output layer.
	Weights []float64

	// Sum and Output are scratch state overwritten by every forward pass.
	// Sum is the pre-activation weighted sum, Output the activated value.
	Sum    float64
	Output float64

	// Gradients and WeightChange are per-weight training accumulators.
	// Backpropagation uses WeightChange as the previous weight delta;
	// resilient propagation repurposes it as the previous step size.
	Gradients    []float64
	WeightChange []float64
}
