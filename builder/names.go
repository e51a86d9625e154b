package builder

import sm "github.com/comalice/statemachine"

// Unknown is the name reported for indices without a name.
const Unknown = "unknown"

// Names maps state and event indices to readable names.
type Names struct {
	States []string
	Events []string
}

// StateName returns the name of s, or Unknown.
func (n Names) StateName(s sm.State) string {
	return lookup(n.States, int(s))
}

// EventName returns the name of e, or Unknown.
func (n Names) EventName(e sm.Event) string {
	return lookup(n.Events, int(e))
}

func lookup(names []string, i int) string {
	if i < len(names) {
		return names[i]
	}
	return Unknown
}
