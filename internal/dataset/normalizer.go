package dataset

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// ErrUnknownCategory is returned when a categorical value was never seen
// during the dataset scan. Unseen values are an error, never a default.
var ErrUnknownCategory = errors.New("unknown category")

// Class column positions accepted by Scan. Any non-negative value selects
// that column index directly.
const (
	ClassFirst = 0
	ClassLast  = -1
)

var numericPattern = regexp.MustCompile(`^[\d\-\.]+$`)

// attribute describes one non-class column: either a finite ordered set of
// category strings or a continuous numeric range observed in the dataset.
type attribute struct {
	categorical        bool
	minRange, maxRange float64
	categories         []string
}

// ClassificationNormalizer scans a rectangular string dataset once,
// classifying each non-class column as continuous or categorical, and maps
// raw values into [0, 1]: continuous values linearly against the observed
// range (values outside it normalize outside [0, 1], which is accepted),
// categorical value i of k to i/k in first-seen order. Class labels become
// one-hot ideal vectors.
type ClassificationNormalizer struct {
	attributes []attribute
	classes    []string
	samples    [][]string
	classPos   int
}

// NewClassificationNormalizer creates an empty normalizer; call Scan
// before normalizing.
func NewClassificationNormalizer() *ClassificationNormalizer {
	return &ClassificationNormalizer{}
}

// Scan collects the attributes and class labels from the dataset.
// classPosition selects the class column (ClassFirst, ClassLast, or any
// column index); out-of-range values are clamped to the last column.
func (c *ClassificationNormalizer) Scan(samples [][]string, classPosition int) error {
	if len(samples) == 0 || len(samples[0]) == 0 {
		return fmt.Errorf("empty dataset")
	}

	columns := len(samples[0])
	if classPosition < 0 || classPosition >= columns {
		classPosition = columns - 1
	}
	c.samples = samples
	c.classPos = classPosition
	c.attributes = c.attributes[:0]
	c.classes = nil

	seen := make([][]string, columns)
	isNumeric := make([]bool, columns)
	for i := range isNumeric {
		isNumeric[i] = true
	}

	for _, sample := range samples {
		for col, value := range sample {
			if col >= columns {
				break
			}
			if !contains(seen[col], value) {
				seen[col] = append(seen[col], value)
				if isNumeric[col] && !numericPattern.MatchString(value) {
					isNumeric[col] = false
				}
			}
		}
	}

	for col := 0; col < columns; col++ {
		switch {
		case col == classPosition:
			c.classes = seen[col]
		case isNumeric[col]:
			values := make([]float64, 0, len(seen[col]))
			for _, raw := range seen[col] {
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return fmt.Errorf("column %d: %w", col, err)
				}
				values = append(values, v)
			}
			c.attributes = append(c.attributes, attribute{
				minRange: floats.Min(values),
				maxRange: floats.Max(values),
			})
		default:
			c.attributes = append(c.attributes, attribute{
				categorical: true,
				categories:  seen[col],
			})
		}
	}
	return nil
}

// TrainingData produces the normalized input matrix and the one-hot ideal
// matrix for the scanned dataset.
func (c *ClassificationNormalizer) TrainingData() (inputs, ideals [][]float64, err error) {
	if c.samples == nil {
		return nil, nil, fmt.Errorf("no dataset scanned")
	}

	inputs = make([][]float64, len(c.samples))
	ideals = make([][]float64, len(c.samples))

	for sampleIdx, sample := range c.samples {
		input := make([]float64, len(c.attributes))
		for col, attrIdx := 0, 0; col < len(sample); col++ {
			if col == c.classPos {
				continue
			}
			v, err := c.normalizeValue(c.attributes[attrIdx], sample[col])
			if err != nil {
				return nil, nil, fmt.Errorf("sample %d: %w", sampleIdx, err)
			}
			input[attrIdx] = v
			attrIdx++
		}

		ideal := make([]float64, len(c.classes))
		classIdx := indexOf(c.classes, sample[c.classPos])
		if classIdx < 0 {
			return nil, nil, fmt.Errorf("sample %d: %w: class %q", sampleIdx, ErrUnknownCategory, sample[c.classPos])
		}
		ideal[classIdx] = 1

		inputs[sampleIdx] = input
		ideals[sampleIdx] = ideal
	}
	return inputs, ideals, nil
}

// NormalizeAttributes maps raw attribute values (class column excluded)
// to their normalized numeric form.
func (c *ClassificationNormalizer) NormalizeAttributes(values ...string) ([]float64, error) {
	count := min(len(values), len(c.attributes))
	normalized := make([]float64, count)
	for i := 0; i < count; i++ {
		v, err := c.normalizeValue(c.attributes[i], values[i])
		if err != nil {
			return nil, err
		}
		normalized[i] = v
	}
	return normalized, nil
}

func (c *ClassificationNormalizer) normalizeValue(attr attribute, value string) (float64, error) {
	if attr.categorical {
		idx := indexOf(attr.categories, value)
		if idx < 0 {
			return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, value)
		}
		return float64(idx) / float64(len(attr.categories)), nil
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("continuous attribute: %w", err)
	}
	if attr.maxRange == attr.minRange {
		return 0, nil
	}
	return (v - attr.minRange) / (attr.maxRange - attr.minRange), nil
}

// BestClassMatch returns the class label with the highest output value.
func (c *ClassificationNormalizer) BestClassMatch(output []float64) string {
	count := min(len(output), len(c.classes))
	if count == 0 {
		return ""
	}
	return c.classes[floats.MaxIdx(output[:count])]
}

// ClassMatchString formats every class with its match percentage.
func (c *ClassificationNormalizer) ClassMatchString(output []float64) string {
	var sb strings.Builder
	count := min(len(output), len(c.classes))
	for i := 0; i < count; i++ {
		fmt.Fprintf(&sb, "%s(%2d%%) ", c.classes[i], int(output[i]*100))
	}
	return sb.String()
}

// AttributeCount returns the number of non-class columns.
func (c *ClassificationNormalizer) AttributeCount() int {
	return len(c.attributes)
}

// ClassCount returns the number of distinct class labels.
func (c *ClassificationNormalizer) ClassCount() int {
	return len(c.classes)
}

// Classes returns the class labels in first-seen order.
func (c *ClassificationNormalizer) Classes() []string {
	return c.classes
}

// String describes the detected attributes and classes.
func (c *ClassificationNormalizer) String() string {
	var sb strings.Builder
	for i, attr := range c.attributes {
		if attr.categorical {
			fmt.Fprintf(&sb, "Attr %d: %v\n", i, attr.categories)
		} else {
			fmt.Fprintf(&sb, "Attr %d: continuous (%g - %g)\n", i, attr.minRange, attr.maxRange)
		}
	}
	fmt.Fprintf(&sb, "Classes: %v", c.classes)
	return sb.String()
}

func contains(values []string, v string) bool {
	return indexOf(values, v) >= 0
}

func indexOf(values []string, v string) int {
	for i, candidate := range values {
		if candidate == v {
			return i
		}
	}
	return -1
}
