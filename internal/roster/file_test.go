package roster

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/matchmaker/internal/event"
)

const sampleEvent = `
[[buyers]]
name = "Acme Co"
country = "FR"
block = "morning"

[[buyers]]
name = "Umbrella"
country = "DE"
block = "afternoon"

[[sellers]]
name = "Globex"

[[sellers]]
name = "Initech"

[preferences]
"Acme Co" = ["Globex", "", "", "", "", "", "Initech"]
`

func writeEvent(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing event file: %v", err)
	}
	return path
}

func TestLoadFile_Apply(t *testing.T) {
	f, err := LoadFile(writeEvent(t, sampleEvent))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := New(DefaultRules())
	if err := f.Apply(r); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(r.Buyers()) != 2 || len(r.Sellers()) != 2 {
		t.Fatalf("expected 2 buyers and 2 sellers, got %d and %d", len(r.Buyers()), len(r.Sellers()))
	}
	acme, _ := r.FindBuyer("Acme Co")
	globex, _ := r.FindSeller("Globex")
	initech, _ := r.FindSeller("Initech")

	p := r.Preferences(acme.ID)
	if p[0] != globex.ID {
		t.Errorf("expected Globex first, got %q", p[0])
	}
	if p.Tier(initech.ID) != 2 {
		t.Errorf("expected Initech in the backup tier, got tier %d", p.Tier(initech.ID))
	}
	umbrella, _ := r.FindBuyer("Umbrella")
	if umbrella.Block != event.BlockAfternoon {
		t.Errorf("expected afternoon, got %s", umbrella.Block)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadFile(writeEvent(t, "[[buyers]\n")); err == nil {
		t.Error("expected parse error")
	}
}

func TestApply_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{
			name:    "unknown block",
			content: "[[buyers]]\nname = \"A\"\ncountry = \"FR\"\nblock = \"night\"\n",
			want:    event.ErrInvalidBlock,
		},
		{
			name:    "duplicate seller",
			content: "[[sellers]]\nname = \"S\"\n[[sellers]]\nname = \"S\"\n",
			want:    event.ErrDuplicateSeller,
		},
		{
			name:    "unknown seller in preferences",
			content: "[[buyers]]\nname = \"A\"\ncountry = \"FR\"\nblock = \"am\"\n[preferences]\nA = [\"Nobody\"]\n",
			want:    event.ErrSellerNotFound,
		},
		{
			name:    "unknown buyer in preferences",
			content: "[preferences]\nGhost = []\n",
			want:    event.ErrBuyerNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, err := LoadFile(writeEvent(t, tc.content))
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if err := f.Apply(New(DefaultRules())); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSaveFile_RoundTrip(t *testing.T) {
	src, err := LoadFile(writeEvent(t, sampleEvent))
	if err != nil {
		t.Fatal(err)
	}
	r := New(DefaultRules())
	if err := src.Apply(r); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "nested", "out.toml")
	if err := SaveFile(path, ToFile(r)); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	back, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	got := back.Preferences["Acme Co"]
	if len(got) != 7 || got[0] != "Globex" || got[6] != "Initech" {
		t.Errorf("unexpected preferences after round trip: %v", got)
	}
	if _, ok := back.Preferences["Umbrella"]; ok {
		t.Error("buyers without preferences should be omitted")
	}

	r2 := New(DefaultRules())
	if err := back.Apply(r2); err != nil {
		t.Fatalf("re-applying saved file: %v", err)
	}
	if len(r2.Buyers()) != 2 || len(r2.Sellers()) != 2 {
		t.Error("saved file should describe the same roster")
	}
}
