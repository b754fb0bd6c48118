package roster

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/matchmaker/internal/event"
)

// ErrNoEventFile is returned when a command needs an event file and none was given.
var ErrNoEventFile = errors.New("no event file given")

// File is the on-disk event description written by the organiser.
//
//	[[buyers]]
//	name = "Acme Co"
//	country = "FR"
//	block = "morning"
//
//	[[sellers]]
//	name = "Globex"
//
//	[preferences]
//	"Acme Co" = ["Globex", "", "Initech"]
type File struct {
	Buyers      []BuyerEntry        `toml:"buyers"`
	Sellers     []SellerEntry       `toml:"sellers"`
	Preferences map[string][]string `toml:"preferences,omitempty"`
}

// BuyerEntry is one buyer in an event file.
type BuyerEntry struct {
	Name    string `toml:"name"`
	Country string `toml:"country"`
	Block   string `toml:"block"`
}

// SellerEntry is one seller in an event file.
type SellerEntry struct {
	Name string `toml:"name"`
}

// LoadFile reads and parses an event file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading event file: %w", err)
	}
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing event file: %w", err)
	}
	return &f, nil
}

// SaveFile writes f as TOML, creating the parent directory if needed.
func SaveFile(path string, f *File) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating event directory: %w", err)
		}
	}
	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling event file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing event file: %w", err)
	}
	return nil
}

// Apply adds the file's sellers, buyers and preferences to r, in that order.
// Names are resolved case-insensitively. The first rejected entry stops the
// load and is returned with the entry that caused it.
func (f *File) Apply(r *Roster) error {
	for _, s := range f.Sellers {
		if _, err := r.AddSeller(s.Name); err != nil {
			return fmt.Errorf("seller %q: %w", s.Name, err)
		}
	}
	for _, b := range f.Buyers {
		block, err := event.ParseBlock(b.Block)
		if err != nil {
			return fmt.Errorf("buyer %q: %w", b.Name, err)
		}
		if _, err := r.AddBuyer(b.Name, b.Country, block); err != nil {
			return fmt.Errorf("buyer %q: %w", b.Name, err)
		}
	}
	buyerNames := make([]string, 0, len(f.Preferences))
	for name := range f.Preferences {
		buyerNames = append(buyerNames, name)
	}
	sort.Strings(buyerNames)
	for _, buyerName := range buyerNames {
		sellerNames := f.Preferences[buyerName]
		buyer, ok := r.FindBuyer(buyerName)
		if !ok {
			return fmt.Errorf("preferences for %q: %w", buyerName, event.ErrBuyerNotFound)
		}
		if len(sellerNames) > event.TotalPreferences {
			return fmt.Errorf("preferences for %q: %w", buyerName, event.ErrTooManyPreferences)
		}
		var p event.Preferences
		for i, name := range sellerNames {
			if name == "" {
				continue
			}
			seller, ok := r.FindSeller(name)
			if !ok {
				return fmt.Errorf("preferences for %q: %w: %s", buyerName, event.ErrSellerNotFound, name)
			}
			p[i] = seller.ID
		}
		if err := r.SetPreferences(buyer.ID, p); err != nil {
			return fmt.Errorf("preferences for %q: %w", buyerName, err)
		}
	}
	return nil
}

// ToFile captures r as an event file. Preference slots are written by
// seller name, with trailing unset slots trimmed.
func ToFile(r *Roster) *File {
	f := &File{Preferences: make(map[string][]string)}
	for _, s := range r.sellers {
		f.Sellers = append(f.Sellers, SellerEntry{Name: s.Name})
	}
	names := event.SellerNames(r.sellers)
	for _, b := range r.buyers {
		f.Buyers = append(f.Buyers, BuyerEntry{Name: b.Name, Country: b.Country, Block: string(b.Block)})

		p := r.prefs[b.ID]
		last := -1
		for i, id := range p {
			if id != "" {
				last = i
			}
		}
		if last < 0 {
			continue
		}
		slots := make([]string, last+1)
		for i := range slots {
			slots[i] = names[p[i]]
		}
		f.Preferences[b.Name] = slots
	}
	return f
}
