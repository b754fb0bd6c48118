// Package summary computes fill statistics for a schedule.
package summary

import (
	"github.com/javiermolinar/matchmaker/internal/event"
	"github.com/javiermolinar/matchmaker/internal/schedule"
)

// BlockStats counts the slots of one block.
type BlockStats struct {
	Block  event.Block
	Buyers int
	Slots  int // buyers x sessions of the block
	Filled int
}

// Summary aggregates a schedule.
type Summary struct {
	Blocks []BlockStats

	// Filled in-block cells by the tier the seller holds in the buyer's list.
	PrimaryHits int
	BackupHits  int
	Unrequested int

	// BuyersWithGaps lists, by name, buyers with at least one empty in-block slot.
	BuyersWithGaps []string

	Conflicts int
}

// Input is what Summarize reads.
type Input struct {
	Schedule    *schedule.Schedule
	Buyers      []event.Buyer
	Sessions    []event.Session
	Preferences map[string]event.Preferences
	Conflicts   schedule.Conflicts
}

// Summarize walks every in-block cell once. Cells outside a buyer's block
// are ignored.
func Summarize(in Input) Summary {
	perBlock := make(map[event.Block][]event.Session)
	for _, sess := range in.Sessions {
		perBlock[sess.Block] = append(perBlock[sess.Block], sess)
	}

	stats := make(map[event.Block]*BlockStats, len(event.Blocks))
	out := Summary{Conflicts: in.Conflicts.Len()}
	for _, b := range event.Blocks {
		out.Blocks = append(out.Blocks, BlockStats{Block: b})
	}
	for i := range out.Blocks {
		stats[out.Blocks[i].Block] = &out.Blocks[i]
	}

	for _, buyer := range in.Buyers {
		st, ok := stats[buyer.Block]
		if !ok {
			continue
		}
		st.Buyers++
		prefs := in.Preferences[buyer.ID]
		gap := false
		for _, sess := range perBlock[buyer.Block] {
			st.Slots++
			seller, _ := in.Schedule.Get(buyer.ID, sess.ID)
			if seller == schedule.Empty {
				gap = true
				continue
			}
			st.Filled++
			switch prefs.Tier(seller) {
			case 1:
				out.PrimaryHits++
			case 2:
				out.BackupHits++
			default:
				out.Unrequested++
			}
		}
		if gap {
			out.BuyersWithGaps = append(out.BuyersWithGaps, buyer.Name)
		}
	}
	return out
}

// Slots returns the number of in-block slots over both blocks.
func (s Summary) Slots() int {
	n := 0
	for _, b := range s.Blocks {
		n += b.Slots
	}
	return n
}

// Filled returns the number of filled in-block slots over both blocks.
func (s Summary) Filled() int {
	n := 0
	for _, b := range s.Blocks {
		n += b.Filled
	}
	return n
}

// FillRate returns Filled/Slots as a percentage, 0 when there are no slots.
func (s Summary) FillRate() float64 {
	slots := s.Slots()
	if slots == 0 {
		return 0
	}
	return float64(s.Filled()) * 100 / float64(slots)
}
