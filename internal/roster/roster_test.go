package roster

import (
	"errors"
	"fmt"
	"testing"

	"github.com/javiermolinar/matchmaker/internal/event"
)

func TestAddBuyer(t *testing.T) {
	r := New(DefaultRules())

	b, err := r.AddBuyer("  Acme  ", " FR ", event.BlockMorning)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Name != "Acme" || b.Country != "FR" {
		t.Errorf("expected trimmed fields, got %q %q", b.Name, b.Country)
	}
	if b.ID == "" {
		t.Error("expected an ID")
	}
	if r.Revision() != 1 {
		t.Errorf("expected revision 1, got %d", r.Revision())
	}
}

func TestAddBuyer_Validation(t *testing.T) {
	tests := []struct {
		name    string
		buyer   string
		country string
		block   event.Block
		want    error
	}{
		{"empty name", " ", "FR", event.BlockMorning, event.ErrEmptyName},
		{"empty country", "Acme", "", event.BlockMorning, event.ErrEmptyCountry},
		{"bad block", "Acme", "FR", event.Block("evening"), event.ErrInvalidBlock},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := New(DefaultRules())
			_, err := r.AddBuyer(tc.buyer, tc.country, tc.block)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, event.ErrRejected) {
				t.Error("expected a rejection")
			}
			if len(r.Buyers()) != 0 || r.Revision() != 0 {
				t.Error("rejected add must not change the roster")
			}
		})
	}
}

func TestAddBuyer_BlockCapacity(t *testing.T) {
	r := New(Rules{MaxBuyersPerBlock: 3, MaxCountriesPerBlock: 2})
	for i := 0; i < 3; i++ {
		if _, err := r.AddBuyer(fmt.Sprintf("B%d", i), "FR", event.BlockMorning); err != nil {
			t.Fatalf("buyer %d: %v", i, err)
		}
	}

	if _, err := r.AddBuyer("B3", "FR", event.BlockMorning); !errors.Is(err, event.ErrBlockFull) {
		t.Errorf("expected ErrBlockFull, got %v", err)
	}
	if _, err := r.AddBuyer("B3", "FR", event.BlockAfternoon); err != nil {
		t.Errorf("the other block is independent: %v", err)
	}
}

func TestAddBuyer_CountryDiversity(t *testing.T) {
	r := New(DefaultRules())
	mustAddBuyer(t, r, "A", "France", event.BlockMorning)
	mustAddBuyer(t, r, "B", "Spain", event.BlockMorning)

	if _, err := r.AddBuyer("C", "Italy", event.BlockMorning); !errors.Is(err, event.ErrTooManyCountries) {
		t.Errorf("expected ErrTooManyCountries, got %v", err)
	}
	if _, err := r.AddBuyer("D", "  FRANCE ", event.BlockMorning); err != nil {
		t.Errorf("countries compare case-insensitively after trimming: %v", err)
	}
	if _, err := r.AddBuyer("E", "Italy", event.BlockAfternoon); err != nil {
		t.Errorf("the other block is independent: %v", err)
	}
}

func TestRemoveBuyer(t *testing.T) {
	r := New(DefaultRules())
	b := mustAddBuyer(t, r, "A", "FR", event.BlockMorning)
	s, _ := r.AddSeller("S")
	p, _ := event.NewPreferences(s.ID)
	if err := r.SetPreferences(b.ID, p); err != nil {
		t.Fatalf("SetPreferences: %v", err)
	}

	if err := r.RemoveBuyer(b.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := r.Buyer(b.ID); ok {
		t.Error("buyer should be gone")
	}
	if !r.Preferences(b.ID).IsEmpty() {
		t.Error("preferences should be dropped with the buyer")
	}
	if err := r.RemoveBuyer(b.ID); !errors.Is(err, event.ErrBuyerNotFound) {
		t.Errorf("expected ErrBuyerNotFound, got %v", err)
	}
}

func TestAddSeller(t *testing.T) {
	r := New(DefaultRules())

	if _, err := r.AddSeller(" Globex "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.AddSeller("Globex"); !errors.Is(err, event.ErrDuplicateSeller) {
		t.Errorf("expected ErrDuplicateSeller, got %v", err)
	}
	// Uniqueness is exact, so a different case is a different seller.
	if _, err := r.AddSeller("globex"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := r.AddSeller("   "); !errors.Is(err, event.ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
	if len(r.Sellers()) != 2 {
		t.Errorf("expected 2 sellers, got %d", len(r.Sellers()))
	}
}

func TestRemoveSeller_ClearsPreferences(t *testing.T) {
	r := New(DefaultRules())
	b := mustAddBuyer(t, r, "A", "FR", event.BlockMorning)
	s1, _ := r.AddSeller("S1")
	s2, _ := r.AddSeller("S2")
	p, _ := event.NewPreferences(s1.ID, "", s2.ID)
	if err := r.SetPreferences(b.ID, p); err != nil {
		t.Fatalf("SetPreferences: %v", err)
	}

	changed, err := r.RemoveSeller(s1.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("expected preferences to change")
	}
	got := r.Preferences(b.ID)
	if got[0] != "" || got[2] != s2.ID {
		t.Errorf("unexpected preferences %v", got)
	}

	changed, err = r.RemoveSeller(s2.ID)
	if err != nil || !changed {
		t.Errorf("expected change without error, got %v %v", changed, err)
	}
	s3, _ := r.AddSeller("S3")
	if changed, _ := r.RemoveSeller(s3.ID); changed {
		t.Error("unreferenced seller should not change preferences")
	}
	if _, err := r.RemoveSeller("ghost"); !errors.Is(err, event.ErrSellerNotFound) {
		t.Errorf("expected ErrSellerNotFound, got %v", err)
	}
}

func TestMergeNames(t *testing.T) {
	r := New(DefaultRules())
	if _, err := r.AddSeller("Acme Co"); err != nil {
		t.Fatal(err)
	}

	added, dups := r.MergeNames([]string{"Acme Co", "O'Brien, Inc", "Initech", "Initech"})
	if len(added) != 2 {
		t.Fatalf("expected 2 added, got %d", len(added))
	}
	if added[0].Name != "O'Brien, Inc" || added[1].Name != "Initech" {
		t.Errorf("unexpected names %v", added)
	}
	if dups != 2 {
		t.Errorf("expected 2 duplicates, got %d", dups)
	}
}

func TestSetPreferences(t *testing.T) {
	r := New(DefaultRules())
	b := mustAddBuyer(t, r, "A", "FR", event.BlockMorning)
	s1, _ := r.AddSeller("S1")
	s2, _ := r.AddSeller("S2")

	dup, _ := event.NewPreferences(s1.ID, s2.ID, "", "", "", "", s1.ID)
	if err := r.SetPreferences(b.ID, dup); !errors.Is(err, event.ErrDuplicatePreference) {
		t.Errorf("expected ErrDuplicatePreference, got %v", err)
	}
	unknown, _ := event.NewPreferences("ghost")
	if err := r.SetPreferences(b.ID, unknown); !errors.Is(err, event.ErrSellerNotFound) {
		t.Errorf("expected ErrSellerNotFound, got %v", err)
	}
	ok, _ := event.NewPreferences(s1.ID, s2.ID)
	if err := r.SetPreferences("ghost", ok); !errors.Is(err, event.ErrBuyerNotFound) {
		t.Errorf("expected ErrBuyerNotFound, got %v", err)
	}
	if !r.Preferences(b.ID).IsEmpty() {
		t.Error("rejected saves must not store anything")
	}

	if err := r.SetPreferences(b.ID, ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Preferences(b.ID) != ok {
		t.Error("preferences should be stored")
	}
}

func TestFindByName(t *testing.T) {
	r := New(DefaultRules())
	mustAddBuyer(t, r, "Acme Co", "FR", event.BlockMorning)
	r.AddSeller("Globex")

	if _, ok := r.FindBuyer(" acme co "); !ok {
		t.Error("buyer lookup should ignore case and spaces")
	}
	if _, ok := r.FindSeller("GLOBEX"); !ok {
		t.Error("seller lookup should ignore case")
	}
	if _, ok := r.FindSeller("Glob"); ok {
		t.Error("lookup must be exact")
	}
}

func mustAddBuyer(t *testing.T, r *Roster, name, country string, block event.Block) event.Buyer {
	t.Helper()
	b, err := r.AddBuyer(name, country, block)
	if err != nil {
		t.Fatalf("AddBuyer(%s): %v", name, err)
	}
	return b
}
