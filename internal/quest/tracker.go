package quest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrQuestNotFound is returned when no quest matches a title
var ErrQuestNotFound = errors.New("quest not found")

// Tracker receives progress notifications. Callers treat errors as
// non-fatal: the action that triggered the notification is never undone.
type Tracker interface {
	RecordAction(kind ActionKind, subject string) error
	RecordArrival(roomID string) error
}

// Listener is told when a quest completes
type Listener interface {
	QuestCompleted(q *Quest)
}

// Manager tracks the quests of one player
type Manager struct {
	registry *Registry
	log      *Log
	listener Listener
}

// NewManager creates a manager with fresh progress for every quest
func NewManager(registry *Registry, listener Listener) *Manager {
	return &Manager{
		registry: registry,
		log:      NewLog(registry),
		listener: listener,
	}
}

// Log returns the progress log
func (m *Manager) Log() *Log {
	return m.log
}

// RecordAction marks matching objectives as done
func (m *Manager) RecordAction(kind ActionKind, subject string) error {
	if _, err := parseActionKind(string(kind)); err != nil {
		return err
	}
	m.advance(kind, subject)
	return nil
}

// RecordArrival marks visit objectives for the room as done
func (m *Manager) RecordArrival(roomID string) error {
	m.advance(ActionVisit, roomID)
	return nil
}

// advance marks matching objectives of every unfinished quest. Locked
// quests keep the credit so that items used up early still count once the
// quest unlocks.
func (m *Manager) advance(kind ActionKind, subject string) {
	for _, q := range m.registry.All() {
		p := m.log.Entries[q.ID]
		if p.Status == StatusCompleted {
			continue
		}
		for i, o := range q.Objectives {
			if !p.Done[i] && o.Matches(kind, subject) {
				p.Done[i] = true
			}
		}
	}
	m.settle()
}

// settle completes active quests with no objectives left and unlocks quests
// whose prerequisites are done, until nothing changes.
func (m *Manager) settle() {
	for changed := true; changed; {
		changed = false
		for _, q := range m.registry.All() {
			p := m.log.Entries[q.ID]
			switch p.Status {
			case StatusLocked:
				if m.prereqsDone(q) {
					p.Status = StatusActive
					changed = true
				}
			case StatusActive:
				if p.Remaining() == 0 {
					p.Status = StatusCompleted
					changed = true
					if m.listener != nil {
						m.listener.QuestCompleted(q)
					}
				}
			}
		}
	}
}

func (m *Manager) prereqsDone(q *Quest) bool {
	for _, pre := range q.Prereqs {
		if !m.log.IsCompleted(pre) {
			return false
		}
	}
	return true
}

// Overview lists every quest with its status
func (m *Manager) Overview() string {
	if m.registry.Count() == 0 {
		return "There are no quests on this island."
	}
	lines := []string{"Quests:"}
	for _, q := range m.registry.All() {
		p := m.log.Entries[q.ID]
		var marker string
		switch p.Status {
		case StatusCompleted:
			marker = "[x]"
		case StatusActive:
			marker = "[ ]"
		default:
			marker = "[locked]"
		}
		lines = append(lines, fmt.Sprintf("  %s %s", marker, q.Title))
	}
	return strings.Join(lines, "\n")
}

// Details describes one quest, its objectives and rewards
func (m *Manager) Details(title string) (string, error) {
	q, ok := m.registry.FindByTitle(title)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrQuestNotFound, title)
	}
	p := m.log.Entries[q.ID]

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\n%s\n", q.Title, p.Status, q.Description)
	sb.WriteString("Objectives:\n")
	for i, o := range q.Objectives {
		mark := " "
		if p.Done[i] {
			mark = "x"
		}
		desc := o.Description
		if desc == "" {
			desc = fmt.Sprintf("%s %s", o.Kind, o.Target)
		}
		fmt.Fprintf(&sb, "  [%s] %s\n", mark, desc)
	}
	if len(q.Rewards) > 0 {
		sb.WriteString("Rewards:\n")
		for _, r := range q.Rewards {
			fmt.Fprintf(&sb, "  - %s\n", r.Name)
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// Fanout forwards notifications to several trackers and joins their errors
type Fanout []Tracker

func (f Fanout) RecordAction(kind ActionKind, subject string) error {
	var errs []error
	for _, t := range f {
		if err := t.RecordAction(kind, subject); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) RecordArrival(roomID string) error {
	var errs []error
	for _, t := range f {
		if err := t.RecordArrival(roomID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
