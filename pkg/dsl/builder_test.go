package dsl

import (
	"context"
	"testing"

	"github.com/aretw0/espalier/pkg/tree"
)

func TestBuilder_SimpleTable(t *testing.T) {
	// 1. Build the table using DSL
	b := New()

	b.Root("fastqc").
		Label("QC").
		Module("echo").
		Param("word", "hello")

	b.Process("fastqc", "align").
		Module("join").
		Param("word", "world").
		Param("mode", "fast")

	// 2. Compile to Loader
	loader, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	rows, err := loader.LoadRows(context.Background())
	if err != nil {
		t.Fatalf("LoadRows() failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	// 3. Verify serialized cells
	if rows[0].Process != "-> fastqc" {
		t.Errorf("Expected process '-> fastqc', got %q", rows[0].Process)
	}
	if rows[0].Label != "QC" {
		t.Errorf("Expected label 'QC', got %q", rows[0].Label)
	}
	if rows[1].Label != "align" {
		t.Errorf("Expected default label 'align', got %q", rows[1].Label)
	}
	if rows[1].Params != "word=world|mode=fast" {
		t.Errorf("Expected params in declaration order, got %q", rows[1].Params)
	}

	// 4. The table must build into a valid tree
	root, err := tree.Build(rows)
	if err != nil {
		t.Fatalf("tree.Build() failed: %v", err)
	}
	if root.Name != "fastqc" {
		t.Errorf("Expected root 'fastqc', got %q", root.Name)
	}
	if len(root.Children) != 1 || root.Children[0].Name != "align" {
		t.Errorf("Expected single child 'align', got %+v", root.Children)
	}
	if root.Children[0].Kwargs["parent"] != "fastqc" {
		t.Errorf("Expected injected parent kwarg, got %+v", root.Children[0].Kwargs)
	}
}

func TestBuilder_RejectsSeparatorInParams(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"Equals In Key", "wo=rd", "hello"},
		{"Pipe In Value", "word", "a|b"},
		{"Empty Key", "", "hello"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := New()
			b.Root("fastqc").Module("echo").Param(tc.key, tc.value)

			if _, err := b.Build(); err == nil {
				t.Errorf("Expected error for key=%q value=%q, got nil", tc.key, tc.value)
			}
		})
	}
}
