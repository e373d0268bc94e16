package trainer

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/croftmark/gonn/internal/network"
)

// cutLengthPercentage is the share of the DNA covered by the crossover
// region. The region is one contiguous interval, not a per-gene coin flip,
// so offspring inherit longer correlated blocks from the mother.
const cutLengthPercentage = 30

// GeneticAlgorithm combines the weights of two networks into offspring
// with a new genetic composition, using two-point crossover and an
// optional swap mutation.
type GeneticAlgorithm struct {
	rng *rand.Rand
}

// NewGeneticAlgorithm creates a breeder with its own random source.
func NewGeneticAlgorithm() *GeneticAlgorithm {
	return &GeneticAlgorithm{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Breed creates an offspring network from a mother and a father with
// identical topology. The offspring takes the father's DNA everywhere
// except strictly inside the cut region, which comes from the mother.
// With probability mutationProbability (a percentage, 0-100) two random
// genes are swapped afterwards.
func (g *GeneticAlgorithm) Breed(mother, father *network.Network, mutationProbability float64) (*network.Network, error) {
	if !mother.Ready() || !father.Ready() {
		return nil, fmt.Errorf("breeding failed: %w", network.ErrNotReady)
	}

	motherDNA := mother.Weights()
	fatherDNA := father.Weights()
	if len(motherDNA) != len(fatherDNA) {
		return nil, fmt.Errorf("breeding failed: %w: mother has %d weights, father %d",
			network.ErrStructureMismatch, len(motherDNA), len(fatherDNA))
	}

	dnaLength := len(motherDNA)
	cutLength := dnaLength * cutLengthPercentage / 100
	cutPoint1 := g.rng.Intn(dnaLength - cutLength)
	cutPoint2 := cutPoint1 + cutLength

	offspringDNA := make([]float64, dnaLength)
	for i := range offspringDNA {
		if i > cutPoint1 && i < cutPoint2 {
			offspringDNA[i] = motherDNA[i]
		} else {
			offspringDNA[i] = fatherDNA[i]
		}
	}

	if g.rng.Float64()*100 < mutationProbability {
		g.swapMutate(offspringDNA)
	}

	offspring, err := mother.CloneStructure()
	if err != nil {
		return nil, err
	}
	if err := offspring.SetWeights(offspringDNA); err != nil {
		return nil, err
	}
	return offspring, nil
}

// swapMutate transposes two uniformly random genes.
func (g *GeneticAlgorithm) swapMutate(dna []float64) {
	p1 := g.rng.Intn(len(dna))
	p2 := g.rng.Intn(len(dna))
	dna[p1], dna[p2] = dna[p2], dna[p1]
}
