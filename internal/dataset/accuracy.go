package dataset

import (
	"fmt"

	"github.com/croftmark/gonn/internal/network"
)

// AccuracyTester measures the classification accuracy of a trained network
// against a held-out test set.
type AccuracyTester struct {
	samples  [][]string
	classPos int
}

// NewAccuracyTester wraps a test set; classPosition follows the same
// convention as ClassificationNormalizer.Scan.
func NewAccuracyTester(samples [][]string, classPosition int) (*AccuracyTester, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("empty test set")
	}
	if classPosition < 0 || classPosition >= len(samples[0]) {
		classPosition = len(samples[0]) - 1
	}
	return &AccuracyTester{samples: samples, classPos: classPosition}, nil
}

// TestClassification computes every test sample and counts how often the
// strongest output matches the sample's class. Returns the hit rate as a
// percentage.
func (a *AccuracyTester) TestClassification(n *network.Network) (float64, error) {
	if !n.Ready() {
		return 0, fmt.Errorf("accuracy test: %w", network.ErrNotReady)
	}

	normalizer := NewClassificationNormalizer()
	if err := normalizer.Scan(a.samples, a.classPos); err != nil {
		return 0, err
	}

	hits := 0
	for _, sample := range a.samples {
		correct := sample[a.classPos]

		attributes := make([]string, 0, len(sample)-1)
		for col, value := range sample {
			if col != a.classPos {
				attributes = append(attributes, value)
			}
		}

		input, err := normalizer.NormalizeAttributes(attributes...)
		if err != nil {
			return 0, err
		}
		output, err := n.Compute(input)
		if err != nil {
			return 0, err
		}
		if normalizer.BestClassMatch(output) == correct {
			hits++
		}
	}
	return float64(hits) / float64(len(a.samples)) * 100, nil
}
