package network

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/croftmark/gonn/internal/activations"
)

// layerRecord is the serialized description of a single layer.
type layerRecord struct {
	Size       int32
	Activation string
}

// Encode writes the full layer/weight structure using gob encoding.
func (n *Network) Encode(w io.Writer) error {
	if !n.ready {
		return fmt.Errorf("encode: %w", ErrNotReady)
	}

	encoder := gob.NewEncoder(w)
	if err := encoder.Encode(int32(len(n.layers))); err != nil {
		return fmt.Errorf("failed to encode layer count: %w", err)
	}
	for _, layer := range n.layers {
		record := layerRecord{
			Size:       int32(layer.NormalCount()),
			Activation: activations.Name(layer.act),
		}
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to encode layer: %w", err)
		}
	}
	if err := encoder.Encode(n.Weights()); err != nil {
		return fmt.Errorf("failed to encode weights: %w", err)
	}
	return nil
}

// Decode reads a network serialized by Encode. Files that do not
// deserialize into the exact layer/weight shape are rejected; nothing is
// substituted with defaults.
func Decode(r io.Reader) (*Network, error) {
	decoder := gob.NewDecoder(r)

	var layerCount int32
	if err := decoder.Decode(&layerCount); err != nil {
		return nil, fmt.Errorf("failed to decode layer count: %w", err)
	}
	if layerCount <= 0 {
		return nil, fmt.Errorf("decode: %w: %d layers", ErrInvalidTopology, layerCount)
	}

	n := New()
	for i := int32(0); i < layerCount; i++ {
		var record layerRecord
		if err := decoder.Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to decode layer %d: %w", i, err)
		}
		act, err := activations.ByName(record.Activation)
		if err != nil {
			return nil, fmt.Errorf("failed to decode layer %d: %w", i, err)
		}
		if err := n.AddLayer(int(record.Size), act); err != nil {
			return nil, fmt.Errorf("failed to decode layer %d: %w", i, err)
		}
	}
	if err := n.Build(); err != nil {
		return nil, err
	}

	var weights []float64
	if err := decoder.Decode(&weights); err != nil {
		return nil, fmt.Errorf("failed to decode weights: %w", err)
	}
	if err := n.SetWeights(weights); err != nil {
		return nil, err
	}
	return n, nil
}

// Save writes the network to a file.
func (n *Network) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return n.Encode(file)
}

// Load reads a network from a file written by Save.
func Load(filename string) (*Network, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Decode(file)
}
