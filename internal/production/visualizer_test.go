// Tests for DOT export of table definitions.
package production

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/statemachine/builder"
)

func TestExportDOT_Simple(t *testing.T) {
	def, err := builder.Parse([]byte(`
id: simple
states: [S0, S1]
events: [GO, STOP]
initial: S0
transitions:
  - {from: S0, event: GO, to: S1}
  - {from: S1, event: GO, undefined: stuck}
`))
	require.NoError(t, err)

	dot := ExportDOT(def, 1)

	assert.True(t, strings.HasPrefix(dot, `digraph "simple" {`), "missing DOT header")
	assert.Contains(t, dot, `"S0" [label="S0" peripheries=2];`)
	assert.Contains(t, dot, `"S1" [label="S1" style="rounded,filled" fillcolor=lightgreen];`)
	assert.Contains(t, dot, `"S0" -> "S1" [label="GO"];`)
	assert.Contains(t, dot, `"S1" -> "S1" [label="GO" style=dashed color=gray];`)
	assert.True(t, strings.HasSuffix(dot, "}\n"))
}

func TestExportDOT_DefaultName(t *testing.T) {
	def := &builder.Definition{States: []string{"A"}, Events: []string{"E"}, Initial: "A"}
	dot := ExportDOT(def, 0)
	assert.True(t, strings.HasPrefix(dot, `digraph "StateMachine" {`))
	assert.Contains(t, dot, `"A" [label="A" style="rounded,filled" fillcolor=lightgreen peripheries=2];`)
}
