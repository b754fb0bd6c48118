package event

import (
	"errors"
	"fmt"
)

// Settings holds the timing parameters of both blocks.
type Settings struct {
	Count           int    // Sessions per block
	DurationMinutes int    // Length of one session
	BreakMinutes    int    // Gap between consecutive sessions
	MorningStart    string // "HH:MM"
	AfternoonStart  string // "HH:MM"
}

// DefaultSettings returns six 30 minute sessions per block with 5 minute breaks.
func DefaultSettings() Settings {
	return Settings{
		Count:           6,
		DurationMinutes: 30,
		BreakMinutes:    5,
		MorningStart:    "09:30",
		AfternoonStart:  "13:30",
	}
}

// StartOf returns the start time configured for the block.
func (s Settings) StartOf(b Block) string {
	if b == BlockAfternoon {
		return s.AfternoonStart
	}
	return s.MorningStart
}

// Validate checks the timing parameters.
func (s Settings) Validate() error {
	if s.Count < 1 {
		return errors.New("session count must be at least 1")
	}
	if s.DurationMinutes < 1 {
		return errors.New("session duration must be at least 1 minute")
	}
	if s.BreakMinutes < 0 {
		return errors.New("break cannot be negative")
	}
	if err := ValidateTime(s.MorningStart); err != nil {
		return fmt.Errorf("morning start: %w", err)
	}
	if err := ValidateTime(s.AfternoonStart); err != nil {
		return fmt.Errorf("afternoon start: %w", err)
	}
	return nil
}
