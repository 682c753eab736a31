package nextflow

import (
	"fmt"
	"sort"
	"strings"
)

// The component helpers below return one building block of the generated
// pipeline each, always ending in a newline. workflow.config is assembled
// from the config* components, workflow.nf from the workflow* ones.

func configManifest(cfg *Config) string {
	return Dedent(fmt.Sprintf(`
        manifest {
          description = '%s'
          nextflowVersion = '%s'
        }
        `, cfg.Manifest.Description, cfg.Manifest.NextflowVersion))
}

func configProfiles(cfg *Config) string {
	var b strings.Builder
	b.WriteString("profiles {\n")
	for _, name := range cfg.Profiles {
		fmt.Fprintf(&b, "  %s {includeConfig 'configs/%s.config'}\n", name, name)
	}
	b.WriteString("}\n")
	return b.String()
}

func configParams(cfg *Config) string {
	if len(cfg.Params) == 0 {
		return Dedent(`
        params {
          output = ''
          email = ''
        }
        `)
	}
	keys := make([]string, 0, len(cfg.Params))
	for k := range cfg.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("params {\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s = '%s'\n", k, cfg.Params[k])
	}
	b.WriteString("}\n")
	return b.String()
}

func workflowShebang() string {
	return "#!/usr/bin/env nextflow\n"
}

func workflowVersion(version string) string {
	return fmt.Sprintf("VERSION=%q\n", version)
}

func workflowHelp() string {
	return Dedent(`
        params.help = ""
        if (params.help) {
          log.info " "
          log.info "USAGE: "
          log.info " "
          log.info "nextflow run workflow.nf -c workflow.config -profile {profile}"
          log.info " "
          exit 1
        }
        `)
}

// workflowHeader frames the rendered hierarchy in the startup banner. The
// hierarchy is spliced in after dedenting, so its own indentation survives.
func workflowHeader(hierarchy string) string {
	frame := Dedent(`
        log.info """

        W O R K F L O W ~ Configuration
        ===============================
        output    : ${params.output}
        -------------------------------
        Hierarchy

        %s

        """
        `)
	return fmt.Sprintf(frame, hierarchy)
}

// workflowView taps every process channel so a bare run prints each stage.
func workflowView(channels []string) string {
	var b strings.Builder
	for _, name := range channels {
		b.WriteString(name)
		b.WriteString(".view { it }\n")
	}
	return b.String()
}

func workflowComplete() string {
	return Dedent(`
        workflow.onComplete {
          println (workflow.success ? "Success: Pipeline Done :)" : "Error: Pipeline Broke :/")
          def subject = 'Pipeline Status'
          def recipient = (params.email)
            ['mail', '-s', subject, recipient].execute() << """
            Pipeline Summary
            ---------------------------
            Timestamp    : ${workflow.complete}
            Duration     : ${workflow.duration}
            Success      : ${workflow.success}
            Work Dir     : ${workflow.workDir}
            Exit Status  : ${workflow.exitStatus}
            Error Report : ${workflow.errorReport ?: '-'}
            """
        }
        `)
}
