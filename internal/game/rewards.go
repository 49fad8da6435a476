package game

import (
	"github.com/lawnchairsociety/castaway/internal/items"
	"github.com/lawnchairsociety/castaway/internal/quest"
)

// QuestCompleted implements quest.Listener: it announces the quest and
// hands out its rewards.
func (s *Session) QuestCompleted(q *quest.Quest) {
	p := s.ctx.Player
	p.Stats.RecordQuestCompleted()
	s.ctx.Sayf("*** Quest completed: %s ***", q.Title)
	s.log.Info("Quest completed", "quest", q.ID)

	for _, r := range q.Rewards {
		s.applyReward(r)
	}
}

func (s *Session) applyReward(r quest.Reward) {
	p := s.ctx.Player
	p.AddReward(r.Name)
	s.ctx.Sayf("You received: %s", r.Name)

	if r.CapacityBonus != 0 {
		p.AddCapacity(r.CapacityBonus)
		s.ctx.Sayf("Your carrying capacity increases by %g kg! (Total: %g kg)", r.CapacityBonus, p.Capacity())
	}

	item := s.rewardItem(r)
	if item == nil {
		return
	}
	p.Grant(item)
	if item.Teleporter && item.FixedDestination != "" {
		dest := item.FixedDestination
		if room := s.ctx.World.GetRoom(dest); room != nil {
			dest = room.Name
		}
		s.ctx.Sayf("You obtain the %s! It will always bring you back to %s.", item.Name, dest)
		return
	}
	s.ctx.Sayf("You obtain the %s!", item.Name)
}

// rewardItem instantiates the item a reward grants, if any. Teleporters
// handed out as rewards without a destination are bound to the start room.
func (s *Session) rewardItem(r quest.Reward) *items.Item {
	var def items.ItemDefinition
	switch {
	case r.Item != nil:
		def = *r.Item
	case r.ItemID != "":
		d, ok := s.content.ItemDefinition(r.ItemID)
		if !ok {
			s.log.Warn("Reward refers to an unknown item", "item", r.ItemID)
			return nil
		}
		def = d
	default:
		return nil
	}

	item := def.Instantiate(r.ItemID)
	if item.Teleporter && item.FixedDestination == "" {
		item.FixedDestination = s.ctx.World.Start.ID
	}
	return item
}
