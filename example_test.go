package espalier_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/domain"
)

// ExampleNew_memory demonstrates how to use the Engine with an in-memory
// process table. This is useful for testing, embedded scenarios, or when you
// don't want to rely on the file system.
func ExampleNew_memory() {
	// 1. Define your table using NewFromRows for clean, type-safe construction.
	loader := memory.NewFromRows(
		domain.Row{Process: "-> fastqc", Label: "Quality Control", Module: "echo", Params: "word=hello"},
		domain.Row{Process: "fastqc -> align", Label: "Alignment", Module: "join", Params: "word=world"},
		domain.Row{Process: "fastqc -> multiqc", Label: "Reporting", Module: "join", Params: "word=done"},
	)

	// 2. Initialize Espalier with the custom loader
	// Note: We leave path empty ("") because we are providing a loader.
	engine, err := espalier.New("", espalier.WithLoader(loader))
	if err != nil {
		log.Fatal(err)
	}

	// 3. Render the tree
	ctx := context.Background()
	hierarchy, err := engine.Hierarchy(ctx, "label")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(hierarchy)
	// Output:
	// Quality Control
	// |-- Alignment
	// +-- Reporting
}

// ExampleEngine_GenerateFrom shows a complete generation pass for an ad hoc
// table, down to the names of the produced files.
func ExampleEngine_GenerateFrom() {
	engine, err := espalier.New("", espalier.WithLoader(memory.NewFromRows()))
	if err != nil {
		log.Fatal(err)
	}

	rows := []domain.Row{
		{Process: "-> fastqc", Label: "QC", Module: "echo", Params: "word=hello"},
		{Process: "fastqc -> align", Label: "Align", Module: "join", Params: "word=world"},
	}

	artifact, err := engine.GenerateFrom(context.Background(), rows)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(artifact.Name)
	for _, name := range artifact.FileNames() {
		fmt.Println(name)
	}
	// Output:
	// workflow
	// workflow.config
	// workflow.nf
}
