package event

import (
	"errors"
	"testing"
)

func TestParseBlock(t *testing.T) {
	tests := []struct {
		input   string
		want    Block
		wantErr bool
	}{
		{"morning", BlockMorning, false},
		{"Morning", BlockMorning, false},
		{" AM ", BlockMorning, false},
		{"afternoon", BlockAfternoon, false},
		{"pm", BlockAfternoon, false},
		{"evening", "", true},
		{"", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseBlock(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidBlock) {
					t.Fatalf("expected ErrInvalidBlock, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ParseBlock(%q) = %s, want %s", tc.input, got, tc.want)
			}
		})
	}
}

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"13:05", 785},
		{"24:05", 1445},
		{"bad", 0},
	}

	for _, tc := range tests {
		if got := TimeToMinutes(tc.input); got != tc.want {
			t.Errorf("TimeToMinutes(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestMinutesToTime_DoesNotWrap(t *testing.T) {
	if got := MinutesToTime(570); got != "09:30" {
		t.Errorf("expected 09:30, got %s", got)
	}
	if got := MinutesToTime(1445); got != "24:05" {
		t.Errorf("expected 24:05, got %s", got)
	}
	if got := MinutesToTime(-5); got != "00:00" {
		t.Errorf("expected 00:00 for negative input, got %s", got)
	}
}

func TestValidateTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, v := range valid {
		if err := ValidateTime(v); err != nil {
			t.Errorf("ValidateTime(%q) unexpected error: %v", v, err)
		}
	}
	invalid := []string{"", "9:30", "09-30", "24:00", "12:60", "ab:cd", "09:300"}
	for _, v := range invalid {
		if err := ValidateTime(v); err == nil {
			t.Errorf("ValidateTime(%q) expected error", v)
		}
	}
}

func TestSettingsValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("default settings should be valid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero count", func(s *Settings) { s.Count = 0 }},
		{"zero duration", func(s *Settings) { s.DurationMinutes = 0 }},
		{"negative break", func(s *Settings) { s.BreakMinutes = -1 }},
		{"bad morning", func(s *Settings) { s.MorningStart = "9:30" }},
		{"bad afternoon", func(s *Settings) { s.AfternoonStart = "25:00" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultSettings()
			tc.mutate(&s)
			if err := s.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestPreferencesTiers(t *testing.T) {
	p, err := NewPreferences("s1", "", "s2", "", "", "", "b1", "", "b2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	primary := p.Primary()
	if len(primary) != 2 || primary[0] != "s1" || primary[1] != "s2" {
		t.Errorf("unexpected primary tier: %v", primary)
	}
	backup := p.Backup()
	if len(backup) != 2 || backup[0] != "b1" || backup[1] != "b2" {
		t.Errorf("unexpected backup tier: %v", backup)
	}
	if p.Tier("s2") != 1 || p.Tier("b2") != 2 || p.Tier("zz") != 0 || p.Tier("") != 0 {
		t.Error("unexpected tier lookup result")
	}
}

func TestPreferencesValidate(t *testing.T) {
	p, _ := NewPreferences("s1", "s2", "", "", "", "", "s1")
	if !errors.Is(p.Validate(), ErrDuplicatePreference) {
		t.Error("expected duplicate across tiers to be rejected")
	}

	p, _ = NewPreferences("s1", "", "", "s2")
	if err := p.Validate(); err != nil {
		t.Errorf("unset slots must not count as duplicates: %v", err)
	}

	if _, err := NewPreferences("1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"); !errors.Is(err, ErrTooManyPreferences) {
		t.Errorf("expected ErrTooManyPreferences, got %v", err)
	}
}

func TestPreferencesWithout(t *testing.T) {
	p, _ := NewPreferences("s1", "s2", "", "", "", "", "s3")

	got, changed := p.Without("s2")
	if !changed {
		t.Fatal("expected change")
	}
	if got.Contains("s2") {
		t.Error("s2 should have been cleared")
	}
	if p[1] != "s2" {
		t.Error("original list must not be modified")
	}

	if _, changed := p.Without("missing"); changed {
		t.Error("removing an absent seller should report no change")
	}
}

func TestValidationErrorIsRejected(t *testing.T) {
	err := Reject("add buyer", ErrBlockFull)
	if !errors.Is(err, ErrRejected) {
		t.Error("validation errors should match ErrRejected")
	}
	if !errors.Is(err, ErrBlockFull) {
		t.Error("validation errors should unwrap to the cause")
	}
	if errors.Is(ErrBlockFull, ErrRejected) {
		t.Error("bare sentinels should not match ErrRejected")
	}
}

func TestWarningString(t *testing.T) {
	w := Warning{Kind: WarnNoSessions, BuyerName: "Acme", Block: BlockMorning}
	if got := w.String(); got != "no sessions available for buyer Acme's block (morning)" {
		t.Errorf("unexpected warning text: %q", got)
	}
}
