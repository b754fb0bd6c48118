// Package roster holds the buyers, sellers and preference lists of an event
// and enforces the rules on who may join a block.
package roster

import (
	"strings"

	"github.com/javiermolinar/matchmaker/internal/event"
)

// Default roster limits.
const (
	DefaultMaxBuyersPerBlock    = 20
	DefaultMaxCountriesPerBlock = 2
)

// Rules bounds the composition of each block.
type Rules struct {
	MaxBuyersPerBlock    int
	MaxCountriesPerBlock int
}

// DefaultRules returns the standard limits.
func DefaultRules() Rules {
	return Rules{
		MaxBuyersPerBlock:    DefaultMaxBuyersPerBlock,
		MaxCountriesPerBlock: DefaultMaxCountriesPerBlock,
	}
}

// Roster is the mutable list of participants. It is not safe for concurrent use.
type Roster struct {
	rules    Rules
	buyers   []event.Buyer
	sellers  []event.Seller
	prefs    map[string]event.Preferences
	revision int
}

// New creates an empty roster. Non-positive limits fall back to the defaults.
func New(rules Rules) *Roster {
	if rules.MaxBuyersPerBlock < 1 {
		rules.MaxBuyersPerBlock = DefaultMaxBuyersPerBlock
	}
	if rules.MaxCountriesPerBlock < 1 {
		rules.MaxCountriesPerBlock = DefaultMaxCountriesPerBlock
	}
	return &Roster{rules: rules, prefs: make(map[string]event.Preferences)}
}

// Rules returns the limits in force.
func (r *Roster) Rules() Rules {
	return r.rules
}

// Revision increases on every successful change.
func (r *Roster) Revision() int {
	return r.revision
}

// CheckBuyer reports whether a buyer with these fields could join its block.
func (r *Roster) CheckBuyer(name, country string, block event.Block) error {
	const op = "add buyer"
	if strings.TrimSpace(name) == "" {
		return event.Reject(op, event.ErrEmptyName)
	}
	if strings.TrimSpace(country) == "" {
		return event.Reject(op, event.ErrEmptyCountry)
	}
	if !block.Valid() {
		return event.Reject(op, event.ErrInvalidBlock)
	}

	inBlock := 0
	countries := make(map[string]bool)
	for _, b := range r.buyers {
		if b.Block != block {
			continue
		}
		inBlock++
		countries[countryKey(b.Country)] = true
	}
	if inBlock >= r.rules.MaxBuyersPerBlock {
		return event.Reject(op, event.ErrBlockFull)
	}
	if !countries[countryKey(country)] && len(countries) >= r.rules.MaxCountriesPerBlock {
		return event.Reject(op, event.ErrTooManyCountries)
	}
	return nil
}

// AddBuyer validates and appends a buyer with a fresh ID.
func (r *Roster) AddBuyer(name, country string, block event.Block) (event.Buyer, error) {
	if err := r.CheckBuyer(name, country, block); err != nil {
		return event.Buyer{}, err
	}
	b := event.Buyer{
		ID:      event.NewID(),
		Name:    strings.TrimSpace(name),
		Country: strings.TrimSpace(country),
		Block:   block,
	}
	r.buyers = append(r.buyers, b)
	r.revision++
	return b, nil
}

// RemoveBuyer deletes a buyer and its preference list.
func (r *Roster) RemoveBuyer(id string) error {
	for i, b := range r.buyers {
		if b.ID == id {
			r.buyers = append(r.buyers[:i:i], r.buyers[i+1:]...)
			delete(r.prefs, id)
			r.revision++
			return nil
		}
	}
	return event.Reject("remove buyer", event.ErrBuyerNotFound)
}

// AddSeller appends a seller. Names are trimmed and must be unique.
func (r *Roster) AddSeller(name string) (event.Seller, error) {
	const op = "add seller"
	name = strings.TrimSpace(name)
	if name == "" {
		return event.Seller{}, event.Reject(op, event.ErrEmptyName)
	}
	if _, ok := r.sellerNamed(name); ok {
		return event.Seller{}, event.Reject(op, event.ErrDuplicateSeller)
	}
	s := event.Seller{ID: event.NewID(), Name: name}
	r.sellers = append(r.sellers, s)
	r.revision++
	return s, nil
}

// RemoveSeller deletes a seller and unsets it in every preference list.
// It reports whether any preference list changed.
func (r *Roster) RemoveSeller(id string) (prefsChanged bool, err error) {
	idx := -1
	for i, s := range r.sellers {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, event.Reject("remove seller", event.ErrSellerNotFound)
	}
	r.sellers = append(r.sellers[:idx:idx], r.sellers[idx+1:]...)
	for buyerID, p := range r.prefs {
		if next, changed := p.Without(id); changed {
			r.prefs[buyerID] = next
			prefsChanged = true
		}
	}
	r.revision++
	return prefsChanged, nil
}

// MergeNames adds every name not already in the roster, in order. Names
// repeated within the batch are added once. It returns the new sellers and
// the number of names skipped as duplicates.
func (r *Roster) MergeNames(names []string) (added []event.Seller, duplicates int) {
	for _, name := range names {
		s, err := r.AddSeller(name)
		if err != nil {
			duplicates++
			continue
		}
		added = append(added, s)
	}
	return added, duplicates
}

// SetPreferences replaces a buyer's preference list. Every filled slot must
// name a known seller and no seller may appear twice.
func (r *Roster) SetPreferences(buyerID string, p event.Preferences) error {
	const op = "save preferences"
	if _, ok := r.Buyer(buyerID); !ok {
		return event.Reject(op, event.ErrBuyerNotFound)
	}
	if err := p.Validate(); err != nil {
		return event.Reject(op, err)
	}
	for _, id := range p {
		if id == "" {
			continue
		}
		if _, ok := r.Seller(id); !ok {
			return event.Reject(op, event.ErrSellerNotFound)
		}
	}
	r.prefs[buyerID] = p
	r.revision++
	return nil
}

// Preferences returns a buyer's list. Buyers without one get an empty list.
func (r *Roster) Preferences(buyerID string) event.Preferences {
	return r.prefs[buyerID]
}

// AllPreferences returns a copy of every stored list keyed by buyer ID.
func (r *Roster) AllPreferences() map[string]event.Preferences {
	out := make(map[string]event.Preferences, len(r.prefs))
	for k, v := range r.prefs {
		out[k] = v
	}
	return out
}

// Buyers returns a copy of the buyers in insertion order.
func (r *Roster) Buyers() []event.Buyer {
	return append([]event.Buyer(nil), r.buyers...)
}

// Sellers returns a copy of the sellers in insertion order.
func (r *Roster) Sellers() []event.Seller {
	return append([]event.Seller(nil), r.sellers...)
}

// Buyer looks a buyer up by ID.
func (r *Roster) Buyer(id string) (event.Buyer, bool) {
	for _, b := range r.buyers {
		if b.ID == id {
			return b, true
		}
	}
	return event.Buyer{}, false
}

// Seller looks a seller up by ID.
func (r *Roster) Seller(id string) (event.Seller, bool) {
	for _, s := range r.sellers {
		if s.ID == id {
			return s, true
		}
	}
	return event.Seller{}, false
}

// FindBuyer looks a buyer up by name, ignoring case and surrounding spaces.
func (r *Roster) FindBuyer(name string) (event.Buyer, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, b := range r.buyers {
		if strings.ToLower(b.Name) == key {
			return b, true
		}
	}
	return event.Buyer{}, false
}

// FindSeller looks a seller up by name, ignoring case and surrounding spaces.
func (r *Roster) FindSeller(name string) (event.Seller, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, s := range r.sellers {
		if strings.ToLower(s.Name) == key {
			return s, true
		}
	}
	return event.Seller{}, false
}

// sellerNamed matches names exactly, as seller uniqueness does.
func (r *Roster) sellerNamed(name string) (event.Seller, bool) {
	for _, s := range r.sellers {
		if s.Name == name {
			return s, true
		}
	}
	return event.Seller{}, false
}

func countryKey(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
