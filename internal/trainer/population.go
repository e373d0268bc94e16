package trainer

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/croftmark/gonn/internal/network"
)

// eliteGroupPercentage sizes the group the best individual may be bred
// with when elite breeding is enabled.
const eliteGroupPercentage = 10

// Population evolves a fixed-size group of identically shaped networks.
// Fitness values are supplied by the caller per generation; individuals
// with higher fitness have a higher chance of producing offspring. Chance
// based breeding keeps diversity up, while breeding only the elite tends
// to converge rapidly on local minima.
type Population struct {
	networks            []*network.Network
	ga                  *GeneticAlgorithm
	mutationProbability float64
	eliteBreeding       bool
	generation          int
}

// NewPopulation creates size networks sharing the prototype's topology,
// each independently randomized. The mutation probability is a percentage
// (0-100) applied to every bred offspring.
func NewPopulation(size int, prototype *network.Network, mutationProbability float64) (*Population, error) {
	if size < 2 {
		return nil, fmt.Errorf("population needs at least two members, got %d", size)
	}
	if !prototype.Ready() {
		return nil, fmt.Errorf("population: %w", network.ErrNotReady)
	}

	networks := make([]*network.Network, size)
	for i := range networks {
		clone, err := prototype.CloneStructure()
		if err != nil {
			return nil, err
		}
		if err := clone.Reset(); err != nil {
			return nil, err
		}
		networks[i] = clone
	}
	return &Population{
		networks:            networks,
		ga:                  NewGeneticAlgorithm(),
		mutationProbability: mutationProbability,
		generation:          1,
	}, nil
}

// Members returns the current generation's networks.
func (p *Population) Members() []*network.Network {
	return p.networks
}

// Generation returns the current generation number, starting at 1.
func (p *Population) Generation() int {
	return p.generation
}

// SetEliteBreeding toggles breeding the fittest individual with a random
// member of the elite group each generation.
func (p *Population) SetEliteBreeding(enabled bool) {
	p.eliteBreeding = enabled
}

// NextGeneration replaces the population with offspring bred by
// fitness-proportionate selection. fitness[i] scores networks[i]; values
// must be non-negative and not all zero.
func (p *Population) NextGeneration(fitness []float64) error {
	size := len(p.networks)
	if len(fitness) != size {
		return fmt.Errorf("%w: %d fitness values for %d members",
			network.ErrDimensionMismatch, len(fitness), size)
	}
	fitnessSum := floats.Sum(fitness)
	if fitnessSum <= 0 {
		return fmt.Errorf("fitness sum must be positive, got %g", fitnessSum)
	}

	offspringCount := size
	if p.eliteBreeding {
		offspringCount--
	}

	next := make([]*network.Network, 0, size)
	for len(next) < offspringCount {
		mother := p.selectParent(fitness, fitnessSum)
		father := p.selectParent(fitness, fitnessSum)
		if mother == father {
			continue
		}
		child, err := p.ga.Breed(p.networks[mother], p.networks[father], p.mutationProbability)
		if err != nil {
			return err
		}
		next = append(next, child)
	}

	if p.eliteBreeding {
		child, err := p.breedElite(fitness)
		if err != nil {
			return err
		}
		next = append(next, child)
	}

	p.networks = next
	p.generation++
	return nil
}

// selectParent picks an index by roulette wheel: a fixed point on the
// cumulative fitness axis chosen uniformly at random.
func (p *Population) selectParent(fitness []float64, fitnessSum float64) int {
	point := p.ga.rng.Float64() * fitnessSum
	sum := 0.0
	for i, f := range fitness {
		sum += f
		if sum > point {
			return i
		}
	}
	return len(fitness) - 1
}

// breedElite crosses the fittest individual with a random member of the
// elite group.
func (p *Population) breedElite(fitness []float64) (*network.Network, error) {
	order := make([]int, len(fitness))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return fitness[order[a]] > fitness[order[b]]
	})

	eliteSize := max(1, len(order)*eliteGroupPercentage/100)
	mother := order[0]
	father := order[1+p.ga.rng.Intn(min(eliteSize, len(order)-1))]
	return p.ga.Breed(p.networks[mother], p.networks[father], p.mutationProbability)
}
