package player

import (
	"encoding/json"
	"fmt"
)

// Statistics tracks what the player did during a session.
type Statistics struct {
	Moves           int            `json:"moves"`
	Backtracks      int            `json:"backtracks"`
	Teleports       int            `json:"teleports"`
	ItemsTaken      int            `json:"items_taken"`
	ItemsDropped    int            `json:"items_dropped"`
	ItemsGiven      int            `json:"items_given"`
	Conversations   map[string]int `json:"conversations"` // character name -> count
	RoomsVisited    map[string]int `json:"rooms_visited"` // room id -> entries
	QuestsCompleted int            `json:"quests_completed"`
}

// NewStatistics creates an empty statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{
		Conversations: make(map[string]int),
		RoomsVisited:  make(map[string]int),
	}
}

// RecordEntry counts an arrival in a room.
func (s *Statistics) RecordEntry(roomID string) {
	s.RoomsVisited[roomID]++
}

// RecordConversation counts a talk with a character.
func (s *Statistics) RecordConversation(name string) {
	s.Conversations[name]++
}

// RecordQuestCompleted increments quest completion count.
func (s *Statistics) RecordQuestCompleted() {
	s.QuestsCompleted++
}

// Summary returns a one-line recap for the end of a session.
func (s *Statistics) Summary() string {
	return fmt.Sprintf("Moves: %d, rooms discovered: %d, items taken: %d, quests completed: %d",
		s.Moves+s.Backtracks+s.Teleports, len(s.RoomsVisited), s.ItemsTaken, s.QuestsCompleted)
}

// ToJSON serializes statistics to JSON.
func (s *Statistics) ToJSON() string {
	data, err := json.Marshal(s)
	if err != nil {
		return "{}"
	}
	return string(data)
}
