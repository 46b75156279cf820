package main

import (
	"flag"
	"log"
	"os"

	"argmaxnet/internal/predictor"
)

func main() {
	modelPath := flag.String("model", "model.bin", "Path to saved parameters")
	flag.Parse()

	inputs := predictor.DemoInputs
	if flag.NArg() > 0 {
		inputs = make([][]float64, 0, flag.NArg())
		for _, arg := range flag.Args() {
			vec, err := predictor.ParseVector(arg)
			if err != nil {
				log.Fatalf("invalid input: %v", err)
			}
			inputs = append(inputs, vec)
		}
	}

	preds, err := predictor.Predict(*modelPath, inputs)
	if err != nil {
		log.Fatalf("predict failed: %v", err)
	}
	if err := predictor.Print(os.Stdout, preds); err != nil {
		log.Fatalf("print: %v", err)
	}
}
