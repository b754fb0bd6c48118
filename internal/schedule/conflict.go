package schedule

import (
	"sort"

	"github.com/javiermolinar/matchmaker/internal/event"
)

// Conflicts lists, per session, the sellers booked by more than one buyer.
type Conflicts struct {
	bySession map[string][]string
}

// DetectConflicts counts, for every session, how many buyers of the session's
// block hold each seller. Sellers counted more than once are conflicting.
// Manual edits can create conflicts; the allocator never does.
func DetectConflicts(s *Schedule, buyers []event.Buyer, sessions []event.Session) Conflicts {
	out := Conflicts{bySession: make(map[string][]string)}
	if s == nil {
		return out
	}

	for _, session := range sessions {
		counts := make(map[string]int)
		for _, buyer := range buyers {
			if buyer.Block != session.Block {
				continue
			}
			seller, ok := s.Get(buyer.ID, session.ID)
			if !ok || seller == Empty {
				continue
			}
			counts[seller]++
		}

		var dup []string
		for seller, n := range counts {
			if n > 1 {
				dup = append(dup, seller)
			}
		}
		if len(dup) > 0 {
			sort.Strings(dup)
			out.bySession[session.ID] = dup
		}
	}
	return out
}

// Has reports whether seller is double-booked in session.
func (c Conflicts) Has(sessionID, sellerID string) bool {
	for _, s := range c.bySession[sessionID] {
		if s == sellerID {
			return true
		}
	}
	return false
}

// Sellers returns the conflicting sellers of one session.
func (c Conflicts) Sellers(sessionID string) []string {
	return append([]string(nil), c.bySession[sessionID]...)
}

// Sessions returns the IDs of sessions with at least one conflict, sorted.
func (c Conflicts) Sessions() []string {
	ids := make([]string, 0, len(c.bySession))
	for id := range c.bySession {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of (session, seller) conflicts.
func (c Conflicts) Len() int {
	n := 0
	for _, sellers := range c.bySession {
		n += len(sellers)
	}
	return n
}

// Empty returns true if nothing is double-booked.
func (c Conflicts) Empty() bool {
	return len(c.bySession) == 0
}
