// Package event defines the core domain types for matchmaker.
package event

import (
	"strings"

	"github.com/google/uuid"
)

// Block is the half of the day a buyer or session belongs to.
type Block string

const (
	BlockMorning   Block = "morning"
	BlockAfternoon Block = "afternoon"
)

// Blocks lists the blocks in display order.
var Blocks = []Block{BlockMorning, BlockAfternoon}

// ParseBlock converts a user supplied block name. Matching is case-insensitive.
func ParseBlock(s string) (Block, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "morning", "m", "am":
		return BlockMorning, nil
	case "afternoon", "a", "pm":
		return BlockAfternoon, nil
	default:
		return "", ErrInvalidBlock
	}
}

// Valid returns true if b is one of the known blocks.
func (b Block) Valid() bool {
	return b == BlockMorning || b == BlockAfternoon
}

// Order returns the sort position of the block (morning first).
func (b Block) Order() int {
	if b == BlockMorning {
		return 0
	}
	return 1
}

// Prefix returns the single letter used in session identities.
func (b Block) Prefix() string {
	if b == BlockMorning {
		return "M"
	}
	return "A"
}

// Buyer is a party that meets sellers during one block of the day.
type Buyer struct {
	ID      string
	Name    string
	Country string
	Block   Block
}

// Seller is a party buyers want to meet. Sellers are not bound to a block.
type Seller struct {
	ID   string
	Name string
}

// Session is one timed meeting slot inside a block.
type Session struct {
	ID    string // e.g. "M_s1"
	Name  string // e.g. "M-Session 1"
	Block Block
	Index int    // 1-based position inside the block
	Start string // "HH:MM"
	End   string // "HH:MM"
}

// Label returns the session name followed by its time range.
func (s Session) Label() string {
	return s.Name + " (" + s.Start + "-" + s.End + ")"
}

// NewID returns a fresh random identity for buyers and sellers.
func NewID() string {
	return uuid.NewString()
}

// BuyerIndex maps buyer IDs to buyers.
func BuyerIndex(buyers []Buyer) map[string]Buyer {
	idx := make(map[string]Buyer, len(buyers))
	for _, b := range buyers {
		idx[b.ID] = b
	}
	return idx
}

// SessionIndex maps session IDs to sessions.
func SessionIndex(sessions []Session) map[string]Session {
	idx := make(map[string]Session, len(sessions))
	for _, s := range sessions {
		idx[s.ID] = s
	}
	return idx
}

// SellerNames maps seller IDs to display names.
func SellerNames(sellers []Seller) map[string]string {
	names := make(map[string]string, len(sellers))
	for _, s := range sellers {
		names[s.ID] = s.Name
	}
	return names
}
