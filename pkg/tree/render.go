package tree

import (
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/relation"
)

// Connector glyphs for the indented hierarchy listing.
const (
	glyphBranch = "|-- " // child with siblings below it
	glyphLast   = "+-- " // last child of its parent
	glyphPipe   = "|   " // continuation under an open branch
	glyphBlank  = "    " // continuation under a closed branch
)

// RenderHierarchy renders the tree as an indented listing, one node per
// line, depth-first in attachment order. attr picks what each line shows:
// one of the fixed fields ("name", "label", "module", "params") or a kwargs
// key; unknown attributes render as empty lines. The result carries no
// trailing newline.
func RenderHierarchy(root *domain.Node, attr string) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	renderAttr(&b, root, "", "", attr)
	return strings.TrimSuffix(b.String(), "\n")
}

func renderAttr(b *strings.Builder, node *domain.Node, pre, fill, attr string) {
	b.WriteString(pre)
	b.WriteString(node.Attr(attr))
	b.WriteString("\n")
	for i, child := range node.Children {
		if i == len(node.Children)-1 {
			renderAttr(b, child, fill+glyphLast, fill+glyphBlank, attr)
		} else {
			renderAttr(b, child, fill+glyphBranch, fill+glyphPipe, attr)
		}
	}
}

// RenderDetails renders the tree with one "label [module]" line per node
// and, for nodes that declare params, their key/value pairs indented
// beneath in declaration order followed by a spacer line.
func RenderDetails(root *domain.Node) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	renderDetails(&b, root, "", "")
	return b.String()
}

func renderDetails(b *strings.Builder, node *domain.Node, pre, fill string) {
	b.WriteString(pre)
	b.WriteString(node.Label)
	b.WriteString(" [")
	b.WriteString(node.Module)
	b.WriteString("]\n")

	if node.Params != "" {
		// Params were validated during the build; anything unparsable
		// here simply renders nothing.
		if pairs, err := relation.ParseParamList(node.Params); err == nil {
			for _, p := range pairs {
				b.WriteString(fill)
				b.WriteString(p.Key)
				b.WriteString(": ")
				b.WriteString(p.Value)
				b.WriteString("\n")
			}
			b.WriteString(fill)
			b.WriteString("\n")
		}
	}

	for i, child := range node.Children {
		if i == len(node.Children)-1 {
			renderDetails(b, child, fill+glyphLast, fill+glyphBlank)
		} else {
			renderDetails(b, child, fill+glyphBranch, fill+glyphPipe)
		}
	}
}
