package main

import (
	"strings"
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewMarkdown(t *testing.T) {
	artifact := &domain.Artifact{
		ID:        "abc123",
		Name:      "rnaseq",
		Hierarchy: "QC\n+-- Align",
		Files: map[string]string{
			"workflow.nf":     "#!/usr/bin/env nextflow\n",
			"workflow.config": "manifest {\n}\n",
		},
	}

	md := previewMarkdown(artifact)

	assert.True(t, strings.HasPrefix(md, "# rnaseq\n"))
	assert.Contains(t, md, "Artifact `abc123`")
	assert.Contains(t, md, "```\nQC\n+-- Align\n```")

	// Files render in sorted order, each under its own heading.
	cfgIdx := strings.Index(md, "## workflow.config")
	nfIdx := strings.Index(md, "## workflow.nf")
	require.NotEqual(t, -1, cfgIdx)
	require.NotEqual(t, -1, nfIdx)
	assert.Less(t, cfgIdx, nfIdx)
	assert.Contains(t, md, "```groovy\n#!/usr/bin/env nextflow\n```")
}
