/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically
constructing Espalier process tables.

It allows developers to define pipelines using a type-safe, fluent builder
pattern instead of relying on external CSV files. This is particularly useful
for dynamic pipeline generation, unit testing, and leveraging IDE
autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/aretw0/espalier/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.Root("fastqc").
			Label("QC").
			Module("echo").
			Param("word", "hello")

		b.Process("fastqc", "align").
			Label("Align").
			Module("join").
			Param("word", "world")

		// The resulting loader can be used as a ports.RowLoader
		loader, _ := b.Build()
		// ... pass loader to espalier.New(...)
		_ = loader
	}
*/
package dsl
