package espalier_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/dsl"
)

// ExampleNew_library demonstrates how to use Espalier purely as a Go library,
// building the process table with the dsl package instead of reading a CSV.
func ExampleNew_library() {
	// 1. Define your table using the fluent builder
	b := dsl.New()
	b.Root("fastqc").Label("Quality Control").Module("echo").Param("word", "hello")
	b.Process("fastqc", "align").Module("join").Param("word", "world")

	loader, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	// 2. Initialize the Engine with the custom loader
	// No file path needed ("") because we are providing a loader.
	eng, err := espalier.New("", espalier.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	// 3. Render the tree; the second process keeps its default label
	ctx := context.Background()
	hierarchy, err := eng.Hierarchy(ctx, "label")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(hierarchy)
	// Output:
	// Quality Control
	// +-- align
}
