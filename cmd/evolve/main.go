// Evolves a population of networks toward the XOR function with genetic
// crossover breeding instead of gradient descent. Fitness is the inverse
// of each member's mean squared error over the four XOR samples.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/croftmark/gonn/gonn"
)

func main() {
	configPath := flag.String("config", "", "optional INI file with training parameters")
	generations := flag.Int("generations", 200, "number of generations to evolve")
	flag.Parse()

	cfg := gonn.DefaultConfig()
	if *configPath != "" {
		loaded, err := gonn.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if err := run(cfg, *generations); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *gonn.Config, generations int) error {
	prototype, err := gonn.BuildNetwork(cfg)
	if err != nil {
		return err
	}

	population, err := gonn.NewPopulation(cfg.Genetic.PopulationSize, prototype, cfg.Genetic.MutationProbability)
	if err != nil {
		return err
	}
	population.SetEliteBreeding(cfg.Genetic.EliteBreeding)

	inputs := [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	ideals := [][]float64{{0}, {1}, {1}, {0}}

	for g := 0; g < generations; g++ {
		members := population.Members()
		fitness := make([]float64, len(members))
		best := 0.0
		for i, member := range members {
			mse, err := meanSquaredError(member, inputs, ideals)
			if err != nil {
				return err
			}
			fitness[i] = 1 / (1 + mse)
			if fitness[i] > best {
				best = fitness[i]
			}
		}

		if g%20 == 0 {
			fmt.Printf("Generation %d, best fitness: %.6f\n", population.Generation(), best)
		}
		if err := population.NextGeneration(fitness); err != nil {
			return err
		}
	}

	// Report the fittest member of the final generation.
	bestMember := population.Members()[0]
	bestError, err := meanSquaredError(bestMember, inputs, ideals)
	if err != nil {
		return err
	}
	for _, member := range population.Members()[1:] {
		mse, err := meanSquaredError(member, inputs, ideals)
		if err != nil {
			return err
		}
		if mse < bestError {
			bestMember, bestError = member, mse
		}
	}

	fmt.Printf("\nBest member after %d generations (MSE %.6f):\n", generations, bestError)
	for _, input := range inputs {
		output, err := bestMember.Compute(input)
		if err != nil {
			return err
		}
		fmt.Printf("%g,%g = %.6f\n", input[0], input[1], output[0])
	}
	return nil
}

func meanSquaredError(n *gonn.Network, inputs, ideals [][]float64) (float64, error) {
	sum := 0.0
	count := 0
	for i, input := range inputs {
		output, err := n.Compute(input)
		if err != nil {
			return 0, err
		}
		for j := range output {
			delta := output[j] - ideals[i][j]
			sum += delta * delta
			count++
		}
	}
	return sum / float64(count), nil
}
