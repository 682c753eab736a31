/*
Package nextflow renders a process tree into Nextflow pipeline text.

It owns the boilerplate components of a generated pipeline (config manifest,
profiles, params, workflow frame), the module template registry that maps the
table's "module" tags to process blocks, and the generator that assembles a
complete artifact (workflow.nf + workflow.config) from a built tree.

Custom module templates and the surrounding boilerplate are configured through
a project config file (espalier.yaml), see LoadConfig.
*/
package nextflow
