// Package timeline groups filtered messages by destination process and
// derives the visualization-oriented views the renderer consumes.
package timeline

import (
	"fmt"

	"github.com/antonioalberti/ng5Gdata/internal/core"
)

// Event is one timeline entry within a destination group.
type Event struct {
	Timestamp  float64      `json:"timestamp" yaml:"timestamp"`
	Command    core.Command `json:"command" yaml:"command"`
	Annotation string       `json:"annotation,omitempty" yaml:"annotation,omitempty"`
}

// Result is the builder output: the alias map and the per-destination
// ordered event groups. Pids preserves first-seen order so encoders stay
// deterministic.
type Result struct {
	Pids    []string           `json:"pids" yaml:"pids"`
	Aliases map[string]string  `json:"aliases" yaml:"aliases"`
	Groups  map[string][]Event `json:"groups" yaml:"groups"`
}

// aliaser assigns P1, P2, ... display names in first-seen order. The
// counter lives on the value, never in package state, so repeated builds
// inside one process cannot leak assignments across calls.
type aliaser struct {
	aliases map[string]string
	order   []string
	next    int
}

func newAliaser() *aliaser {
	return &aliaser{aliases: make(map[string]string)}
}

func (a *aliaser) alias(pid string) string {
	if name, ok := a.aliases[pid]; ok {
		return name
	}
	a.next++
	name := fmt.Sprintf("P%d", a.next)
	a.aliases[pid] = name
	a.order = append(a.order, pid)
	return name
}

// Build scans the already-filtered sequence once, in order. Messages
// lacking a destination pid are excluded from both the alias map and the
// groups. Alias assignment is a pure function of first-seen order within
// the given sequence, so narrower filter windows can legitimately produce
// different aliases for the same pid.
func Build(messages []core.Message) Result {
	a := newAliaser()
	groups := make(map[string][]Event)

	for _, msg := range messages {
		if msg.DestPID == "" {
			continue
		}
		a.alias(msg.DestPID)
		groups[msg.DestPID] = append(groups[msg.DestPID], Event{
			Timestamp:  msg.Timestamp,
			Command:    msg.Command,
			Annotation: msg.Annotation,
		})
	}

	return Result{Pids: a.order, Aliases: a.aliases, Groups: groups}
}
