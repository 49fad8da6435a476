package quest

import "encoding/json"

// Status represents where a quest stands for the player
type Status string

const (
	StatusLocked    Status = "locked"    // Prerequisites not met
	StatusActive    Status = "active"    // Quest in progress
	StatusCompleted Status = "completed" // All objectives done
)

// Progress tracks the player's progress on a specific quest
type Progress struct {
	QuestID string `json:"quest_id"`
	Status  Status `json:"status"`
	Done    []bool `json:"done"`
}

// Remaining returns the number of objectives still open
func (p *Progress) Remaining() int {
	n := 0
	for _, done := range p.Done {
		if !done {
			n++
		}
	}
	return n
}

// Log holds the progress of every quest
type Log struct {
	Entries map[string]*Progress `json:"entries"`
}

// NewLog creates progress entries for every quest in the registry
func NewLog(r *Registry) *Log {
	l := &Log{Entries: make(map[string]*Progress)}
	for _, q := range r.All() {
		status := StatusActive
		if q.HasPrereqs() {
			status = StatusLocked
		}
		l.Entries[q.ID] = &Progress{
			QuestID: q.ID,
			Status:  status,
			Done:    make([]bool, len(q.Objectives)),
		}
	}
	return l
}

// Get returns progress for a quest
func (l *Log) Get(questID string) (*Progress, bool) {
	p, ok := l.Entries[questID]
	return p, ok
}

// IsCompleted reports whether the quest is completed
func (l *Log) IsCompleted(questID string) bool {
	p, ok := l.Entries[questID]
	return ok && p.Status == StatusCompleted
}

// ToJSON serializes the log for the journal
func (l *Log) ToJSON() string {
	data, err := json.Marshal(l)
	if err != nil {
		return "{}"
	}
	return string(data)
}
