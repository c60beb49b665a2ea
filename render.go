package hexfsm

import (
	"fmt"

	"github.com/aretw0/hexfsm/internal/presentation/codegen"
	"github.com/aretw0/hexfsm/internal/presentation/graph"
	"github.com/aretw0/hexfsm/pkg/domain"
)

// Diagram formats supported by Render.
const (
	FormatDOT     = "dot"
	FormatMermaid = "mermaid"
)

// Render draws m as a Graphviz or Mermaid diagram. title is only used by DOT.
func (c *Converter) Render(m *domain.Machine, format, title string) (string, error) {
	switch format {
	case FormatDOT, "":
		return graph.DOT(m, title), nil
	case FormatMermaid:
		return graph.Mermaid(m, nil), nil
	default:
		return "", fmt.Errorf("unknown diagram format %q", format)
	}
}

// RenderMermaid draws m as a Mermaid diagram with the given states highlighted.
// Names that are not states of m are ignored.
func (c *Converter) RenderMermaid(m *domain.Machine, highlight ...string) string {
	var overlay *graph.Overlay
	if len(highlight) > 0 {
		overlay = &graph.Overlay{Highlight: highlight}
	}
	return graph.Mermaid(m, overlay)
}

// Generate emits standalone source for m in lang ("c", "rust", "go" or "tinygo").
// NFAs are determinized first. pkg names the Go package and is ignored otherwise.
func (c *Converter) Generate(m *domain.Machine, lang, pkg string) (string, error) {
	src, err := codegen.Generate(m, lang, codegen.Options{Package: pkg})
	if err != nil {
		return "", err
	}
	c.logger.Debug("Generated code", "lang", lang, "kind", m.Kind, "bytes", len(src))
	return src, nil
}
