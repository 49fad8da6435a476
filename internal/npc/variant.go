package npc

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultKey selects the fallback entry of a location-keyed Text.
const DefaultKey = "default"

// Lines is a character's dialogue source: either one rotating queue, or one
// rotating queue per location id.
type Lines struct {
	flat       []string
	byLocation map[string][]string
}

// FlatLines creates a dialogue source shared by every location.
func FlatLines(lines ...string) Lines {
	return Lines{flat: append([]string(nil), lines...)}
}

// LinesByLocation creates a dialogue source keyed by location id.
func LinesByLocation(byLocation map[string][]string) Lines {
	m := make(map[string][]string, len(byLocation))
	for k, v := range byLocation {
		m[k] = append([]string(nil), v...)
	}
	return Lines{byLocation: m}
}

// Keyed reports whether the lines depend on the location.
func (l Lines) Keyed() bool {
	return l.byLocation != nil
}

// Next returns the next line for the location and rotates it to the back
// of its queue. It returns false when the queue is empty.
func (l *Lines) Next(locationID string) (string, bool) {
	if l.byLocation != nil {
		queue := l.byLocation[locationID]
		if len(queue) == 0 {
			return "", false
		}
		line := queue[0]
		l.byLocation[locationID] = append(queue[1:], line)
		return line, true
	}
	if len(l.flat) == 0 {
		return "", false
	}
	line := l.flat[0]
	l.flat = append(l.flat[1:], line)
	return line, true
}

// Clone returns an independent copy.
func (l Lines) Clone() Lines {
	if l.byLocation != nil {
		return LinesByLocation(l.byLocation)
	}
	return FlatLines(l.flat...)
}

// UnmarshalYAML accepts a sequence (flat) or a mapping of sequences (keyed).
func (l *Lines) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var flat []string
		if err := node.Decode(&flat); err != nil {
			return err
		}
		*l = FlatLines(flat...)
	case yaml.MappingNode:
		var keyed map[string][]string
		if err := node.Decode(&keyed); err != nil {
			return err
		}
		*l = LinesByLocation(keyed)
	case yaml.ScalarNode:
		// A single line is shorthand for a one-element queue.
		*l = FlatLines(node.Value)
	default:
		return fmt.Errorf("line %d: dialogue must be a list or a mapping", node.Line)
	}
	return nil
}

// Text is a description that is either fixed or keyed by location id, with
// an optional "default" entry.
type Text struct {
	flat       string
	byLocation map[string]string
}

// FlatText creates a fixed description.
func FlatText(s string) Text {
	return Text{flat: s}
}

// TextByLocation creates a description keyed by location id.
func TextByLocation(byLocation map[string]string) Text {
	m := make(map[string]string, len(byLocation))
	for k, v := range byLocation {
		m[k] = v
	}
	return Text{byLocation: m}
}

// For returns the description to show in the location.
func (t Text) For(locationID string) string {
	if t.byLocation == nil {
		return t.flat
	}
	if s, ok := t.byLocation[locationID]; ok {
		return s
	}
	if s, ok := t.byLocation[DefaultKey]; ok {
		return s
	}
	return "..."
}

// UnmarshalYAML accepts a string (flat) or a mapping of strings (keyed).
func (t *Text) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*t = FlatText(node.Value)
	case yaml.MappingNode:
		var keyed map[string]string
		if err := node.Decode(&keyed); err != nil {
			return err
		}
		*t = TextByLocation(keyed)
	default:
		return fmt.Errorf("line %d: description must be a string or a mapping", node.Line)
	}
	return nil
}
