// Package dataset loads comma-separated classification data and turns it
// into the normalized numeric vectors the trainers consume.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// trainingSetPercentage is the share of samples returned by
// TrainingSamples; the remainder forms the test set.
const trainingSetPercentage = 80

// Dataset holds raw string samples loaded from a file or URL. Each sample
// is one row of comma-separated attributes.
type Dataset struct {
	samples [][]string
	filter  []bool
}

// Load reads a comma-separated dataset from a local path or an HTTP URL.
// Rows with fewer than two fields are discarded.
func Load(path string) (*Dataset, error) {
	var r io.ReadCloser
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		resp, err := http.Get(path)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch dataset: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("failed to fetch dataset: status %s", resp.Status)
		}
		r = resp.Body
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open dataset: %w", err)
		}
		r = file
	}
	defer r.Close()

	return Parse(r)
}

// Parse reads comma-separated samples from a reader.
func Parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	samples := make([][]string, 0, len(records))
	for _, record := range records {
		if len(record) < 2 {
			continue
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		samples = append(samples, record)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	d := &Dataset{samples: samples, filter: make([]bool, len(samples[0]))}
	for i := range d.filter {
		d.filter[i] = true
	}
	return d, nil
}

// SetColumnFilter marks which columns are included in returned samples.
// The filter length must match the column count of the first sample.
func (d *Dataset) SetColumnFilter(keep []bool) error {
	if len(keep) != len(d.filter) {
		return fmt.Errorf("filter length %d does not match %d columns", len(keep), len(d.filter))
	}
	d.filter = keep
	return nil
}

// Samples returns every loaded sample with the column filter applied.
func (d *Dataset) Samples() [][]string {
	return d.subset(0, len(d.samples))
}

// TrainingSamples returns the first 80% of the samples.
func (d *Dataset) TrainingSamples() [][]string {
	cut := len(d.samples) * trainingSetPercentage / 100
	return d.subset(0, cut)
}

// TestSamples returns the last 20% of the samples.
func (d *Dataset) TestSamples() [][]string {
	cut := len(d.samples) * trainingSetPercentage / 100
	return d.subset(cut, len(d.samples))
}

// Len returns the number of loaded samples.
func (d *Dataset) Len() int {
	return len(d.samples)
}

func (d *Dataset) subset(from, to int) [][]string {
	active := 0
	for _, keep := range d.filter {
		if keep {
			active++
		}
	}

	subset := make([][]string, 0, to-from)
	for _, sample := range d.samples[from:to] {
		if active == len(d.filter) {
			subset = append(subset, sample)
			continue
		}
		filtered := make([]string, 0, active)
		for col, keep := range d.filter {
			if keep && col < len(sample) {
				filtered = append(filtered, sample[col])
			}
		}
		subset = append(subset, filtered)
	}
	return subset
}
