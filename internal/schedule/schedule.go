// Package schedule holds the buyer x session assignment table and the
// operations that read, edit and version it.
package schedule

import (
	"github.com/javiermolinar/matchmaker/internal/event"
)

// Empty is the value of a cell with no seller assigned.
const Empty = ""

// Cell addresses one (buyer, session) slot.
type Cell struct {
	BuyerID   string
	SessionID string
}

// Schedule is a total table from (buyer, session) to a seller ID or Empty.
// A pair exists iff both the buyer and the session were present when the
// table was built; Reconcile is the only way rows and columns change.
type Schedule struct {
	buyers   []string
	sessions []string
	rows     map[string]int
	cols     map[string]int
	cells    [][]string
}

// New returns a schedule with every (buyer, session) pair present and empty.
func New(buyers []event.Buyer, sessions []event.Session) *Schedule {
	s := &Schedule{
		buyers:   make([]string, 0, len(buyers)),
		sessions: make([]string, 0, len(sessions)),
		rows:     make(map[string]int, len(buyers)),
		cols:     make(map[string]int, len(sessions)),
	}
	for _, sess := range sessions {
		if _, dup := s.cols[sess.ID]; dup {
			continue
		}
		s.cols[sess.ID] = len(s.sessions)
		s.sessions = append(s.sessions, sess.ID)
	}
	for _, b := range buyers {
		if _, dup := s.rows[b.ID]; dup {
			continue
		}
		s.rows[b.ID] = len(s.buyers)
		s.buyers = append(s.buyers, b.ID)
		s.cells = append(s.cells, make([]string, len(s.sessions)))
	}
	return s
}

// Reconcile builds a schedule for the given roster and grid, keeping every
// assignment of old whose buyer and session still exist. Rows of removed
// buyers are dropped and new pairs start empty.
func Reconcile(old *Schedule, buyers []event.Buyer, sessions []event.Session) *Schedule {
	next := New(buyers, sessions)
	if old == nil {
		return next
	}
	for r, buyerID := range next.buyers {
		for c, sessionID := range next.sessions {
			if seller, ok := old.Get(buyerID, sessionID); ok {
				next.cells[r][c] = seller
			}
		}
	}
	return next
}

// Get returns the seller in a cell. ok is false when the pair does not exist,
// which is distinct from an existing Empty cell.
func (s *Schedule) Get(buyerID, sessionID string) (sellerID string, ok bool) {
	if s == nil {
		return Empty, false
	}
	r, rok := s.rows[buyerID]
	c, cok := s.cols[sessionID]
	if !rok || !cok {
		return Empty, false
	}
	return s.cells[r][c], true
}

// Has reports whether the pair exists.
func (s *Schedule) Has(cell Cell) bool {
	_, ok := s.Get(cell.BuyerID, cell.SessionID)
	return ok
}

// Assign writes a cell in place and reports whether the pair exists.
// It is meant for freshly built or cloned schedules that nobody else holds.
func (s *Schedule) Assign(buyerID, sessionID, sellerID string) bool {
	if s == nil {
		return false
	}
	r, rok := s.rows[buyerID]
	c, cok := s.cols[sessionID]
	if !rok || !cok {
		return false
	}
	s.cells[r][c] = sellerID
	return true
}

// Clone returns a deep copy.
func (s *Schedule) Clone() *Schedule {
	if s == nil {
		return nil
	}
	out := &Schedule{
		buyers:   append([]string(nil), s.buyers...),
		sessions: append([]string(nil), s.sessions...),
		rows:     make(map[string]int, len(s.rows)),
		cols:     make(map[string]int, len(s.cols)),
		cells:    make([][]string, len(s.cells)),
	}
	for k, v := range s.rows {
		out.rows[k] = v
	}
	for k, v := range s.cols {
		out.cols[k] = v
	}
	for i, row := range s.cells {
		out.cells[i] = append([]string(nil), row...)
	}
	return out
}

// Equal reports whether both schedules hold the same pairs with the same sellers.
func (s *Schedule) Equal(other *Schedule) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.buyers) != len(other.buyers) || len(s.sessions) != len(other.sessions) {
		return false
	}
	for r, buyerID := range s.buyers {
		for c, sessionID := range s.sessions {
			seller, ok := other.Get(buyerID, sessionID)
			if !ok || seller != s.cells[r][c] {
				return false
			}
		}
	}
	return true
}

// BuyerIDs returns the row identities in table order.
func (s *Schedule) BuyerIDs() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.buyers...)
}

// SessionIDs returns the column identities in table order.
func (s *Schedule) SessionIDs() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.sessions...)
}

// Filled returns the number of non-empty cells.
func (s *Schedule) Filled() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, row := range s.cells {
		for _, v := range row {
			if v != Empty {
				n++
			}
		}
	}
	return n
}

// SellersOf returns the sellers assigned to a buyer keyed by session ID.
func (s *Schedule) SellersOf(buyerID string) map[string]string {
	out := make(map[string]string)
	if s == nil {
		return out
	}
	r, ok := s.rows[buyerID]
	if !ok {
		return out
	}
	for c, seller := range s.cells[r] {
		if seller != Empty {
			out[s.sessions[c]] = seller
		}
	}
	return out
}

// ClearSeller returns a copy with sellerID removed from every cell and
// whether any cell changed. The receiver is left untouched.
func (s *Schedule) ClearSeller(sellerID string) (*Schedule, bool) {
	out := s.Clone()
	if out == nil || sellerID == Empty {
		return out, false
	}
	changed := false
	for _, row := range out.cells {
		for c, v := range row {
			if v == sellerID {
				row[c] = Empty
				changed = true
			}
		}
	}
	return out, changed
}
