/*
Package espalier turns flat CSV process tables into runnable Nextflow
pipelines.

An espalier is a tree trained onto a trellis. In the same spirit, this library
takes rows of "parent -> child" relations and trains them into a single-rooted
process tree, which it can render as an ascii hierarchy or expand into a
complete workflow script plus configuration.

# Concept

Each CSV row declares one process: its position in the tree ("fastqc ->
align"), a human label, the module template that renders it, and "key=value"
parameters separated by "|". The engine builds the tree in two passes
(linking, then describing), so row order never matters for structure. A row
whose parent side is empty declares the root.

Modules are small text templates. Espalier ships with demonstration modules
(echo, join) and lets you register your own via configuration or code. The
Hexagonal Architecture keeps the core decoupled from adapters, so the same
engine drives the CLI, the HTTP API and the MCP server.

# Usage

Point the engine at a CSV file and generate:

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/aretw0/espalier"
	)

	func main() {
		eng, err := espalier.New("flow.csv")
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()

		// Inspect the tree first
		hierarchy, err := eng.Hierarchy(ctx, "label")
		if err != nil {
			log.Fatal(err)
		}
		log.Println(hierarchy)

		// Generate workflow.nf + workflow.config into ./out
		runner := espalier.NewRunner("out")
		runner.Output = os.Stdout
		if _, err := runner.Run(ctx, eng); err != nil {
			log.Fatal(err)
		}
	}

For ad hoc tables, inject a loader instead of a file path:

	loader := memory.NewFromRows(rows...)
	eng, err := espalier.New("", espalier.WithLoader(loader))
*/
package espalier
