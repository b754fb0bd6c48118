// Package scheduler fills a schedule from buyer preferences using a
// randomized two-tier greedy pass.
package scheduler

import (
	"github.com/javiermolinar/matchmaker/internal/event"
	"github.com/javiermolinar/matchmaker/internal/schedule"
	"github.com/javiermolinar/matchmaker/internal/sessions"
)

// Shuffler permutes n elements through swap. *rand.Rand from math/rand/v2
// satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// InOrder is a Shuffler that leaves every sequence as given.
// Tests use it to assert exact placements.
var InOrder Shuffler = inOrder{}

type inOrder struct{}

func (inOrder) Shuffle(int, func(i, j int)) {}

// Input is everything one allocation run reads. Nothing in it is modified.
type Input struct {
	Buyers      []event.Buyer
	Sessions    []event.Session
	Preferences map[string]event.Preferences // keyed by buyer ID

	// Sellers, when non-nil, restricts placement to known seller IDs.
	// Preferences naming anyone else are ignored.
	Sellers []event.Seller
}

// Result is a freshly built schedule plus the advisories raised on the way.
type Result struct {
	Schedule *schedule.Schedule
	Warnings []event.Warning
}

// Scheduler runs allocations with an injected source of randomness.
type Scheduler struct {
	shuffler Shuffler
}

// New creates a Scheduler. A nil shuffler falls back to InOrder.
func New(shuffler Shuffler) *Scheduler {
	if shuffler == nil {
		shuffler = InOrder
	}
	return &Scheduler{shuffler: shuffler}
}

// allocation holds the lookup sets of a single Run.
type allocation struct {
	out      *schedule.Schedule
	occupied map[string]map[string]bool // session ID -> seller IDs
	used     map[string]map[string]bool // buyer ID -> seller IDs
}

func (a *allocation) free(sessionID, buyerID, sellerID string) bool {
	return !a.occupied[sessionID][sellerID] && !a.used[buyerID][sellerID]
}

func (a *allocation) place(buyerID, sessionID, sellerID string) {
	a.out.Assign(buyerID, sessionID, sellerID)
	if a.occupied[sessionID] == nil {
		a.occupied[sessionID] = make(map[string]bool)
	}
	a.occupied[sessionID][sellerID] = true
	if a.used[buyerID] == nil {
		a.used[buyerID] = make(map[string]bool)
	}
	a.used[buyerID][sellerID] = true
}

// Run builds a new schedule for in.
//
// Buyers are visited in shuffled order. For each buyer the sessions of its
// own block and its primary sellers are shuffled, then every session takes
// the first primary seller that is neither busy in that session nor already
// met by the buyer. A second pass does the same with the shuffled backup
// sellers on the sessions still empty. No step is ever undone, so the result
// can leave gaps but never books a seller twice in one session.
func (s *Scheduler) Run(in Input) (Result, error) {
	if len(in.Buyers) == 0 {
		return Result{}, event.ErrNoBuyers
	}

	known := map[string]bool(nil)
	if in.Sellers != nil {
		known = make(map[string]bool, len(in.Sellers))
		for _, seller := range in.Sellers {
			known[seller.ID] = true
		}
	}

	a := &allocation{
		out:      schedule.New(in.Buyers, in.Sessions),
		occupied: make(map[string]map[string]bool),
		used:     make(map[string]map[string]bool),
	}
	var warnings []event.Warning

	buyers := append([]event.Buyer(nil), in.Buyers...)
	shuffle(s.shuffler, buyers)

	for _, buyer := range buyers {
		slots := sessions.InBlock(in.Sessions, buyer.Block)
		if len(slots) == 0 {
			warnings = append(warnings, warn(event.WarnNoSessions, buyer))
			continue
		}

		prefs := in.Preferences[buyer.ID]
		primary := usable(prefs.Primary(), known)
		backup := usable(prefs.Backup(), known)
		if len(primary) == 0 && len(backup) == 0 {
			warnings = append(warnings, warn(event.WarnNoPreferences, buyer))
			continue
		}
		if len(primary) == 0 {
			warnings = append(warnings, warn(event.WarnNoPrimary, buyer))
		}

		shuffle(s.shuffler, slots)
		shuffle(s.shuffler, primary)
		shuffle(s.shuffler, backup)

		filled := fill(a, buyer.ID, slots, primary, 0)
		if filled < len(slots) {
			fill(a, buyer.ID, slots, backup, filled)
		}
	}

	return Result{Schedule: a.out, Warnings: warnings}, nil
}

// fill places sellers from candidates into the empty sessions of one buyer
// and returns the running count of filled sessions.
func fill(a *allocation, buyerID string, slots []event.Session, candidates []string, filled int) int {
	for _, session := range slots {
		if filled >= len(slots) || len(candidates) == 0 {
			break
		}
		if v, _ := a.out.Get(buyerID, session.ID); v != schedule.Empty {
			continue
		}
		for i, sellerID := range candidates {
			if !a.free(session.ID, buyerID, sellerID) {
				continue
			}
			a.place(buyerID, session.ID, sellerID)
			candidates = append(candidates[:i], candidates[i+1:]...)
			filled++
			break
		}
	}
	return filled
}

func shuffle[T any](r Shuffler, list []T) {
	r.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })
}

// usable drops sellers missing from known. A nil known keeps everything.
func usable(ids []string, known map[string]bool) []string {
	if known == nil {
		return ids
	}
	out := ids[:0]
	for _, id := range ids {
		if known[id] {
			out = append(out, id)
		}
	}
	return out
}

func warn(kind event.WarningKind, b event.Buyer) event.Warning {
	return event.Warning{Kind: kind, BuyerID: b.ID, BuyerName: b.Name, Block: b.Block}
}
