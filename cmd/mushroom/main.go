// Trains a classifier to distinguish poisonous from edible mushrooms on
// the UCI mushroom dataset. The class label is the first column; every
// attribute is categorical.
//
// Dataset: https://archive.ics.uci.edu/ml/datasets/mushroom
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/croftmark/gonn/gonn"
)

const defaultPath = "https://archive.ics.uci.edu/ml/machine-learning-databases/mushroom/agaricus-lepiota.data"

func main() {
	path := flag.String("data", defaultPath, "dataset file or URL")
	flag.Parse()

	if err := run(*path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string) error {
	data, err := gonn.LoadDataset(path)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d samples\n", data.Len())

	normalizer := gonn.NewClassificationNormalizer()
	if err := normalizer.Scan(data.TrainingSamples(), gonn.ClassFirst); err != nil {
		return err
	}
	fmt.Println(normalizer)

	inputNeurons := normalizer.AttributeCount()
	outputNeurons := normalizer.ClassCount()
	hiddenNeurons := inputNeurons * 3 / 2

	network := gonn.NewNetwork()
	for _, size := range []int{inputNeurons, hiddenNeurons, outputNeurons} {
		if err := network.AddLayer(size, gonn.Sigmoid); err != nil {
			return err
		}
	}
	if err := network.Build(); err != nil {
		return err
	}

	inputs, ideals, err := normalizer.TrainingData()
	if err != nil {
		return err
	}

	trainer, err := gonn.NewBackpropagation(inputs, ideals, 0.6, 0.7)
	if err != nil {
		return err
	}
	trainer.SetProgressCallback(2*time.Second, func(epoch int, mse float64) {
		fmt.Printf("Epoch %d, MSE: %.8f\n", epoch, mse)
	})
	if err := trainer.Train(network, 0.000001, 1000); err != nil {
		return err
	}
	fmt.Println(trainer.Summary())

	tester, err := gonn.NewAccuracyTester(data.TestSamples(), gonn.ClassFirst)
	if err != nil {
		return err
	}
	accuracy, err := tester.TestClassification(network)
	if err != nil {
		return err
	}
	fmt.Printf("\nAccuracy: %.2f%%\n", accuracy)

	// Classify one example mushroom.
	attributes := []string{"b", "s", "w", "t", "l", "f", "c", "b", "n", "e", "c",
		"s", "s", "w", "w", "p", "w", "o", "p", "k", "n", "g"}
	input, err := normalizer.NormalizeAttributes(attributes...)
	if err != nil {
		return err
	}
	output, err := network.Compute(input)
	if err != nil {
		return err
	}
	fmt.Printf("\nExample: %v => %s\n", attributes, normalizer.ClassMatchString(output))
	return nil
}
