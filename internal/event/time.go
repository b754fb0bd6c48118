package event

import "fmt"

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func TimeToMinutes(t string) int {
	if len(t) < 5 {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
// Values past midnight are not wrapped: 1445 becomes "24:05".
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ValidateTime checks that t is a 24-hour "HH:MM" clock time.
func ValidateTime(t string) error {
	if len(t) != 5 || t[2] != ':' {
		return ErrInvalidTimeFormat
	}
	for _, c := range t[:2] + t[3:] {
		if c < '0' || c > '9' {
			return ErrInvalidTimeFormat
		}
	}
	if TimeToMinutes(t) >= 24*60 || t[3] > '5' {
		return ErrInvalidTimeFormat
	}
	return nil
}
