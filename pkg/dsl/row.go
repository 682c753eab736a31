package dsl

import (
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/relation"
)

// RowBuilder provides a fluent API for configuring one row of the table.
type RowBuilder struct {
	process string
	label   string
	module  string
	params  []relation.Param
}

// Label sets the display label of the process. It defaults to the child name.
func (r *RowBuilder) Label(label string) *RowBuilder {
	r.label = label
	return r
}

// Module sets the module tag that picks the template for this process.
func (r *RowBuilder) Module(module string) *RowBuilder {
	r.module = module
	return r
}

// Param appends one key=value attribute. Declaration order is preserved in
// the serialized params string.
func (r *RowBuilder) Param(key, value string) *RowBuilder {
	r.params = append(r.params, relation.Param{Key: key, Value: value})
	return r
}

func (r *RowBuilder) row() (domain.Row, error) {
	segments := make([]string, 0, len(r.params))
	for _, p := range r.params {
		if err := validateParamPart(p.Key); err != nil {
			return domain.Row{}, err
		}
		if err := validateParamPart(p.Value); err != nil {
			return domain.Row{}, err
		}
		segments = append(segments, p.Key+"="+p.Value)
	}
	return domain.Row{
		Process: r.process,
		Label:   r.label,
		Module:  r.module,
		Params:  strings.Join(segments, relation.ParamSeparator),
	}, nil
}
