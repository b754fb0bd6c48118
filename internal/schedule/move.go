package schedule

import (
	"github.com/javiermolinar/matchmaker/internal/event"
)

// Move drags the seller in from onto to and returns the resulting schedule.
//
// The dragged seller takes the target cell and whatever the target held
// (possibly Empty) takes the source cell. Both legs must respect block
// membership. Seller occupancy within a session is deliberately not checked;
// DetectConflicts reports double bookings created this way.
//
// A rejected move returns a *event.ValidationError and leaves s untouched.
func Move(s *Schedule, buyers []event.Buyer, sessions []event.Session, from, to Cell) (*Schedule, error) {
	const op = "move"

	dragged, ok := s.Get(from.BuyerID, from.SessionID)
	if !ok {
		return s, event.Reject(op, event.ErrUnknownCell)
	}
	if dragged == Empty {
		return s, event.Reject(op, event.ErrEmptySource)
	}
	displaced, ok := s.Get(to.BuyerID, to.SessionID)
	if !ok {
		return s, event.Reject(op, event.ErrUnknownCell)
	}

	buyerIdx := event.BuyerIndex(buyers)
	sessionIdx := event.SessionIndex(sessions)

	targetBuyer, bok := buyerIdx[to.BuyerID]
	targetSession, sok := sessionIdx[to.SessionID]
	if !bok || !sok {
		return s, event.Reject(op, event.ErrUnknownCell)
	}
	if targetSession.Block != targetBuyer.Block {
		return s, event.Reject(op, event.ErrBlockMismatch)
	}

	if displaced != Empty {
		sourceBuyer, bok := buyerIdx[from.BuyerID]
		sourceSession, sok := sessionIdx[from.SessionID]
		if bok && sok && sourceSession.Block != sourceBuyer.Block {
			return s, event.Reject(op, event.ErrSwapBlockMismatch)
		}
	}

	next := s.Clone()
	next.Assign(to.BuyerID, to.SessionID, dragged)
	next.Assign(from.BuyerID, from.SessionID, displaced)
	return next, nil
}
