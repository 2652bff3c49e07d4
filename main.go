package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"fuzzyreg/internal/config"
)

// Runs the built-in temperature regulator once: go run . [temperature]
func main() {
	x := 17.0
	if len(os.Args) > 1 {
		v, err := strconv.ParseFloat(os.Args[1], 64)
		if err != nil {
			log.Fatalf("Invalid temperature %q: %v", os.Args[1], err)
		}
		x = v
	}

	engine, err := config.Default().Build()
	if err != nil {
		log.Fatalf("Failed to build regulator: %v", err)
	}

	res := engine.Infer(x)
	fmt.Println("Fuzzification:", res.Degrees)
	fmt.Println("Activation:", res.Activated)
	fmt.Println("Rule scores:", res.Scores)
	fmt.Printf("Selected: %s → %s\n", res.SelectedRule.Input, res.SelectedRule.Output)
	fmt.Println("Result:", res.Output)
}
