package domain

// Row is one record of the flat process table that describes a pipeline.
//
// Process holds a parent/child declaration such as "A -> B". An empty left
// side ("-> A") declares a root. Label, Module and Params are attributes of
// the child process named on the right side.
type Row struct {
	Process string `json:"process" yaml:"process"`
	Label   string `json:"label" yaml:"label"`
	Module  string `json:"module" yaml:"module"`

	// Params is the raw "key=value|key2=value2" attribute string.
	// It may be empty.
	Params string `json:"params,omitempty" yaml:"params,omitempty"`
}
