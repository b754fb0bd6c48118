// Package sessions builds the timed session grid for each block.
package sessions

import (
	"fmt"
	"sort"

	"github.com/javiermolinar/matchmaker/internal/event"
)

// Build returns the sessions of one block: Count back-to-back sessions of
// DurationMinutes separated by BreakMinutes, starting at the block's start time.
// Times past midnight are not wrapped.
func Build(settings event.Settings, block event.Block) []event.Session {
	if settings.Count <= 0 {
		return nil
	}

	prefix := block.Prefix()
	current := event.TimeToMinutes(settings.StartOf(block))
	result := make([]event.Session, 0, settings.Count)

	for i := 1; i <= settings.Count; i++ {
		end := current + settings.DurationMinutes
		result = append(result, event.Session{
			ID:    fmt.Sprintf("%s_s%d", prefix, i),
			Name:  fmt.Sprintf("%s-Session %d", prefix, i),
			Block: block,
			Index: i,
			Start: event.MinutesToTime(current),
			End:   event.MinutesToTime(end),
		})
		current = end + settings.BreakMinutes
	}
	return result
}

// All returns both blocks' sessions sorted by block, then start time.
func All(settings event.Settings) []event.Session {
	all := append(Build(settings, event.BlockMorning), Build(settings, event.BlockAfternoon)...)
	Sort(all)
	return all
}

// Sort orders sessions by block (morning first), then start time.
func Sort(list []event.Session) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Block != list[j].Block {
			return list[i].Block.Order() < list[j].Block.Order()
		}
		return event.TimeToMinutes(list[i].Start) < event.TimeToMinutes(list[j].Start)
	})
}

// InBlock filters sessions belonging to block, keeping their order.
func InBlock(list []event.Session, block event.Block) []event.Session {
	out := make([]event.Session, 0, len(list))
	for _, s := range list {
		if s.Block == block {
			out = append(out, s)
		}
	}
	return out
}
