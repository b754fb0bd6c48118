package scheduler

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/javiermolinar/matchmaker/internal/event"
	"github.com/javiermolinar/matchmaker/internal/schedule"
	"github.com/javiermolinar/matchmaker/internal/sessions"
)

func morningBuyer(id string) event.Buyer {
	return event.Buyer{ID: id, Name: "Buyer " + id, Country: "FR", Block: event.BlockMorning}
}

func prefs(t *testing.T, ids ...string) event.Preferences {
	t.Helper()
	p, err := event.NewPreferences(ids...)
	if err != nil {
		t.Fatalf("NewPreferences: %v", err)
	}
	return p
}

func grid(count int) []event.Session {
	st := event.DefaultSettings()
	st.Count = count
	return sessions.All(st)
}

func TestRun_NoBuyers(t *testing.T) {
	res, err := New(InOrder).Run(Input{Sessions: grid(2)})
	if !errors.Is(err, event.ErrNoBuyers) {
		t.Fatalf("expected ErrNoBuyers, got %v", err)
	}
	if res.Schedule != nil {
		t.Error("no schedule should be produced")
	}
}

func TestRun_ExactPlacementInOrder(t *testing.T) {
	b := morningBuyer("b1")
	in := Input{
		Buyers:   []event.Buyer{b},
		Sessions: grid(3),
		// Two primary, one backup.
		Preferences: map[string]event.Preferences{
			"b1": prefs(t, "s1", "s2", "", "", "", "", "s3"),
		},
	}

	res, err := New(InOrder).Run(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{"M_s1": "s1", "M_s2": "s2", "M_s3": "s3"}
	for sess, seller := range want {
		if got, _ := res.Schedule.Get("b1", sess); got != seller {
			t.Errorf("%s: expected %s, got %q", sess, seller, got)
		}
	}
	for _, sess := range []string{"A_s1", "A_s2", "A_s3"} {
		if got, _ := res.Schedule.Get("b1", sess); got != schedule.Empty {
			t.Errorf("out-of-block session %s should stay empty, got %q", sess, got)
		}
	}
	if len(res.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", res.Warnings)
	}
}

func TestRun_PrimaryBeforeBackup(t *testing.T) {
	in := Input{
		Buyers:   []event.Buyer{morningBuyer("b1")},
		Sessions: grid(2),
		Preferences: map[string]event.Preferences{
			"b1": prefs(t, "p1", "p2", "p3", "", "", "", "k1", "k2"),
		},
	}

	res, err := New(InOrder).Run(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := res.Schedule.SellersOf("b1")
	if got["M_s1"] != "p1" || got["M_s2"] != "p2" {
		t.Errorf("primary sellers should fill both sessions, got %v", got)
	}
}

func TestRun_OccupiedSellerIsSkipped(t *testing.T) {
	// b0 is visited first and takes S1 in session 1. b1 wants [S1, S2] and
	// must still fill both sessions.
	in := Input{
		Buyers:   []event.Buyer{morningBuyer("b0"), morningBuyer("b1")},
		Sessions: grid(2),
		Preferences: map[string]event.Preferences{
			"b0": prefs(t, "S1"),
			"b1": prefs(t, "S1", "S2"),
		},
	}

	res, err := New(InOrder).Run(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, _ := res.Schedule.Get("b0", "M_s1"); got != "S1" {
		t.Fatalf("b0 should hold S1 in session 1, got %q", got)
	}
	if got, _ := res.Schedule.Get("b1", "M_s1"); got != "S2" {
		t.Errorf("b1 should get S2 in session 1, got %q", got)
	}
	if got, _ := res.Schedule.Get("b1", "M_s2"); got != "S1" {
		t.Errorf("b1 should get S1 in session 2, got %q", got)
	}
}

func TestRun_Warnings(t *testing.T) {
	afternoonOnly := event.DefaultSettings()
	afternoonOnly.Count = 1
	sess := sessions.Build(afternoonOnly, event.BlockAfternoon)

	buyers := []event.Buyer{
		morningBuyer("nosessions"),
		{ID: "noprefs", Name: "Buyer noprefs", Country: "FR", Block: event.BlockAfternoon},
		{ID: "backuponly", Name: "Buyer backuponly", Country: "FR", Block: event.BlockAfternoon},
	}
	in := Input{
		Buyers:   buyers,
		Sessions: sess,
		Preferences: map[string]event.Preferences{
			"backuponly": prefs(t, "", "", "", "", "", "", "k1"),
		},
	}

	res, err := New(InOrder).Run(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	kinds := make(map[string]event.WarningKind)
	for _, w := range res.Warnings {
		kinds[w.BuyerID] = w.Kind
	}
	want := map[string]event.WarningKind{
		"nosessions": event.WarnNoSessions,
		"noprefs":    event.WarnNoPreferences,
		"backuponly": event.WarnNoPrimary,
	}
	for id, kind := range want {
		if kinds[id] != kind {
			t.Errorf("%s: expected warning %s, got %q", id, kind, kinds[id])
		}
	}
	if got, _ := res.Schedule.Get("backuponly", "A_s1"); got != "k1" {
		t.Errorf("backup-only buyer should still be scheduled, got %q", got)
	}
}

func TestRun_UnknownSellersIgnored(t *testing.T) {
	in := Input{
		Buyers:   []event.Buyer{morningBuyer("b1")},
		Sessions: grid(2),
		Preferences: map[string]event.Preferences{
			"b1": prefs(t, "gone", "s1"),
		},
		Sellers: []event.Seller{{ID: "s1", Name: "One"}},
	}

	res, err := New(InOrder).Run(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := res.Schedule.SellersOf("b1")
	if len(got) != 1 || got["M_s1"] != "s1" {
		t.Errorf("only s1 should be placed, got %v", got)
	}
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	buyers := []event.Buyer{morningBuyer("b1"), morningBuyer("b2"), morningBuyer("b3")}
	p := prefs(t, "s1", "s2", "s3")
	in := Input{
		Buyers:      buyers,
		Sessions:    grid(3),
		Preferences: map[string]event.Preferences{"b1": p, "b2": p, "b3": p},
	}

	if _, err := New(rand.New(rand.NewPCG(1, 2))).Run(in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buyers[0].ID != "b1" || buyers[1].ID != "b2" || buyers[2].ID != "b3" {
		t.Error("buyer slice order must be preserved")
	}
	if in.Preferences["b1"] != p {
		t.Error("preferences must be preserved")
	}
}

// TestRun_Properties checks the hard constraints over many seeded runs with
// heavily overlapping preferences.
func TestRun_Properties(t *testing.T) {
	sellers := make([]string, 12)
	for i := range sellers {
		sellers[i] = fmt.Sprintf("s%d", i)
	}

	for seed := uint64(0); seed < 50; seed++ {
		r := rand.New(rand.NewPCG(seed, seed*7+1))

		var buyers []event.Buyer
		pref := make(map[string]event.Preferences)
		for i := 0; i < 10; i++ {
			block := event.BlockMorning
			if i%2 == 1 {
				block = event.BlockAfternoon
			}
			b := event.Buyer{ID: fmt.Sprintf("b%d", i), Name: fmt.Sprintf("B%d", i), Country: "FR", Block: block}
			buyers = append(buyers, b)

			perm := r.Perm(len(sellers))
			var p event.Preferences
			for j := 0; j < event.TotalPreferences; j++ {
				p[j] = sellers[perm[j]]
			}
			pref[b.ID] = p
		}
		sess := grid(1 + int(seed%6))

		res, err := New(r).Run(Input{Buyers: buyers, Sessions: sess, Preferences: pref})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		out := res.Schedule

		for _, session := range sess {
			seen := make(map[string]string)
			for _, b := range buyers {
				seller, _ := out.Get(b.ID, session.ID)
				if seller == schedule.Empty {
					continue
				}
				if b.Block != session.Block {
					t.Fatalf("seed %d: %s filled outside its block in %s", seed, b.ID, session.ID)
				}
				if other, dup := seen[seller]; dup {
					t.Fatalf("seed %d: %s booked by %s and %s in %s", seed, seller, other, b.ID, session.ID)
				}
				seen[seller] = b.ID
			}
		}

		for _, b := range buyers {
			met := make(map[string]bool)
			for _, seller := range out.SellersOf(b.ID) {
				if met[seller] {
					t.Fatalf("seed %d: %s meets %s twice", seed, b.ID, seller)
				}
				if !pref[b.ID].Contains(seller) {
					t.Fatalf("seed %d: %s got unrequested seller %s", seed, b.ID, seller)
				}
				met[seller] = true
			}
		}

		if c := schedule.DetectConflicts(out, buyers, sess); !c.Empty() {
			t.Fatalf("seed %d: allocator output has conflicts %v", seed, c.Sessions())
		}
	}
}

func TestRun_FillsWhenCapacityAllows(t *testing.T) {
	// Every buyer has ten distinct sellers and there are only as many buyers
	// per block as sellers, so a greedy pass always fills every session.
	var buyers []event.Buyer
	pref := make(map[string]event.Preferences)
	for i := 0; i < 3; i++ {
		b := morningBuyer(fmt.Sprintf("b%d", i))
		buyers = append(buyers, b)
		var p event.Preferences
		for j := range p {
			p[j] = fmt.Sprintf("s%d", j)
		}
		pref[b.ID] = p
	}
	sess := grid(2)

	res, err := New(rand.New(rand.NewPCG(42, 42))).Run(Input{Buyers: buyers, Sessions: sess, Preferences: pref})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Schedule.Filled() != 6 {
		t.Errorf("expected all 6 morning slots filled, got %d", res.Schedule.Filled())
	}
}
