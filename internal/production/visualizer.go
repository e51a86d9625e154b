// Package production provides host-side tooling around table machines.
package production

import (
	"bytes"
	"fmt"

	sm "github.com/comalice/statemachine"
	"github.com/comalice/statemachine/builder"
)

// ExportDOT generates Graphviz DOT source for a Definition, highlighting the
// current state. Undefined transitions are drawn as dashed self loops so that
// rejected events are visible too.
func ExportDOT(def *builder.Definition, current sm.State) string {
	var buf bytes.Buffer
	name := def.ID
	if name == "" {
		name = "StateMachine"
	}
	fmt.Fprintf(&buf, "digraph %q {\n", name)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, fontsize=10, style=rounded];\n")
	buf.WriteString("  edge [fontsize=9];\n")

	for i, s := range def.States {
		style := ""
		if sm.State(i) == current {
			style = " style=\"rounded,filled\" fillcolor=lightgreen"
		}
		if s == def.Initial {
			style += " peripheries=2"
		}
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", s, s, style)
	}

	for _, t := range def.Transitions {
		if t.To != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", t.From, t.To, t.Event)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [label=%q style=dashed color=gray];\n", t.From, t.From, t.Event)
	}

	buf.WriteString("}\n")
	return buf.String()
}
