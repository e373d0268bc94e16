package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var irisLike = [][]string{
	{"5.0", "red", "alpha"},
	{"6.0", "green", "beta"},
	{"7.0", "blue", "alpha"},
	{"5.5", "red", "gamma"},
}

func TestScanDetectsAttributeKinds(t *testing.T) {
	n := NewClassificationNormalizer()
	require.NoError(t, n.Scan(irisLike, ClassLast))

	assert.Equal(t, 2, n.AttributeCount())
	assert.Equal(t, 3, n.ClassCount())
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, n.Classes())

	description := n.String()
	assert.Contains(t, description, "continuous (5 - 7)")
	assert.Contains(t, description, "[red green blue]")
}

func TestScanRejectsEmptyDataset(t *testing.T) {
	n := NewClassificationNormalizer()
	assert.Error(t, n.Scan(nil, ClassLast))
}

func TestContinuousNormalizationIsLinear(t *testing.T) {
	n := NewClassificationNormalizer()
	require.NoError(t, n.Scan(irisLike, ClassLast))

	values, err := n.NormalizeAttributes("5.0", "red")
	require.NoError(t, err)
	assert.Equal(t, 0.0, values[0])

	values, err = n.NormalizeAttributes("7.0", "red")
	require.NoError(t, err)
	assert.Equal(t, 1.0, values[0])

	values, err = n.NormalizeAttributes("6.0", "red")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, values[0], 1e-12)

	// Values outside the scanned range map outside [0, 1].
	values, err = n.NormalizeAttributes("9.0", "red")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, values[0], 1e-12)
}

func TestCategoricalNormalizationUsesFirstSeenOrder(t *testing.T) {
	n := NewClassificationNormalizer()
	require.NoError(t, n.Scan(irisLike, ClassLast))

	// Three categories map to i/3 in the order red, green, blue.
	expected := map[string]float64{"red": 0, "green": 1.0 / 3, "blue": 2.0 / 3}
	for category, want := range expected {
		values, err := n.NormalizeAttributes("5.0", category)
		require.NoError(t, err)
		assert.InDelta(t, want, values[1], 1e-12, category)
	}
}

func TestUnknownCategoryIsAnError(t *testing.T) {
	n := NewClassificationNormalizer()
	require.NoError(t, n.Scan(irisLike, ClassLast))

	_, err := n.NormalizeAttributes("5.0", "purple")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestTrainingDataOneHotIdeals(t *testing.T) {
	n := NewClassificationNormalizer()
	require.NoError(t, n.Scan(irisLike, ClassLast))

	inputs, ideals, err := n.TrainingData()
	require.NoError(t, err)
	require.Len(t, inputs, 4)
	require.Len(t, ideals, 4)

	assert.Equal(t, []float64{1, 0, 0}, ideals[0])
	assert.Equal(t, []float64{0, 1, 0}, ideals[1])
	assert.Equal(t, []float64{1, 0, 0}, ideals[2])
	assert.Equal(t, []float64{0, 0, 1}, ideals[3])

	for _, input := range inputs {
		assert.Len(t, input, 2)
	}
}

func TestClassFirstPosition(t *testing.T) {
	samples := [][]string{
		{"edible", "x", "1.0"},
		{"poisonous", "y", "2.0"},
	}
	n := NewClassificationNormalizer()
	require.NoError(t, n.Scan(samples, ClassFirst))

	assert.Equal(t, []string{"edible", "poisonous"}, n.Classes())
	assert.Equal(t, 2, n.AttributeCount())

	_, ideals, err := n.TrainingData()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, ideals[0])
	assert.Equal(t, []float64{0, 1}, ideals[1])
}

func TestBestClassMatch(t *testing.T) {
	n := NewClassificationNormalizer()
	require.NoError(t, n.Scan(irisLike, ClassLast))

	assert.Equal(t, "beta", n.BestClassMatch([]float64{0.1, 0.8, 0.3}))
	assert.Equal(t, "alpha", n.BestClassMatch([]float64{0.9, 0.2, 0.1}))
	assert.Equal(t, "", n.BestClassMatch(nil))
}

func TestEqualRangeNormalizesToZero(t *testing.T) {
	samples := [][]string{
		{"3.0", "a"},
		{"3.0", "b"},
	}
	n := NewClassificationNormalizer()
	require.NoError(t, n.Scan(samples, ClassLast))

	values, err := n.NormalizeAttributes("3.0")
	require.NoError(t, err)
	assert.Equal(t, 0.0, values[0])
}
