// The hello world of neural networks: training a 2-2-1 network to predict
// the XOR operator with backpropagation, then saving and reloading it.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/croftmark/gonn/gonn"
)

func main() {
	configPath := flag.String("config", "", "optional INI file with training parameters")
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

	network, err := gonn.BuildNetwork(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	inputs := [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	ideals := [][]float64{{0}, {1}, {1}, {0}}

	trainer, err := gonn.NewBackpropagation(inputs, ideals,
		cfg.Backpropagation.LearningRate, cfg.Backpropagation.Momentum)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	trainer.SetDecayRate(cfg.Backpropagation.DecayRate)
	trainer.SetBatchSize(cfg.Backpropagation.BatchSize)
	trainer.SetProgressCallback(time.Second, func(epoch int, mse float64) {
		fmt.Printf("Epoch %d, MSE: %.8f\n", epoch, mse)
	})

	if err := trainer.Train(network, cfg.Training.AcceptedError, cfg.Training.MaxEpochs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(trainer.Summary())
	fmt.Println()

	for _, input := range inputs {
		output, err := network.Compute(input)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("%g,%g = %.6f\n", input[0], input[1], output[0])
	}

	// Round-trip the trained network through disk.
	const filename = "xor_network.nn"
	if err := network.Save(filename); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	loaded, err := gonn.LoadNetwork(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("\nVerifying saved network:")
	for _, input := range inputs {
		original, _ := network.Compute(input)
		reloaded, err := loaded.Compute(input)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		status := "OK"
		if math.Abs(original[0]-reloaded[0]) > 1e-9 {
			status = "MISMATCH"
		}
		fmt.Printf("%g,%g = %.6f [%s]\n", input[0], input[1], reloaded[0], status)
	}
	fmt.Printf("Network saved to %s\n", filename)
}
