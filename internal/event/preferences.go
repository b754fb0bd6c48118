package event

const (
	// PrimaryCount is the number of slots in the primary tier.
	PrimaryCount = 6
	// BackupCount is the number of slots in the backup tier.
	BackupCount = 4
	// TotalPreferences is the length of every preference list.
	TotalPreferences = PrimaryCount + BackupCount
)

// Preferences is a buyer's ranked list of seller IDs. An empty string is an unset slot.
type Preferences [TotalPreferences]string

// NewPreferences builds a list from up to TotalPreferences seller IDs, padding with unset slots.
func NewPreferences(ids ...string) (Preferences, error) {
	var p Preferences
	if len(ids) > TotalPreferences {
		return p, ErrTooManyPreferences
	}
	copy(p[:], ids)
	return p, nil
}

// Primary returns the filled slots of the primary tier in order.
func (p Preferences) Primary() []string {
	return filled(p[:PrimaryCount])
}

// Backup returns the filled slots of the backup tier in order.
func (p Preferences) Backup() []string {
	return filled(p[PrimaryCount:])
}

// IsEmpty returns true if no slot is filled.
func (p Preferences) IsEmpty() bool {
	for _, id := range p {
		if id != "" {
			return false
		}
	}
	return true
}

// Validate rejects lists naming the same seller twice.
func (p Preferences) Validate() error {
	seen := make(map[string]bool, TotalPreferences)
	for _, id := range p {
		if id == "" {
			continue
		}
		if seen[id] {
			return ErrDuplicatePreference
		}
		seen[id] = true
	}
	return nil
}

// Without returns a copy with every slot holding sellerID unset, and whether anything changed.
func (p Preferences) Without(sellerID string) (Preferences, bool) {
	changed := false
	if sellerID == "" {
		return p, false
	}
	for i, id := range p {
		if id == sellerID {
			p[i] = ""
			changed = true
		}
	}
	return p, changed
}

// Contains returns true if sellerID is in either tier.
func (p Preferences) Contains(sellerID string) bool {
	for _, id := range p {
		if id != "" && id == sellerID {
			return true
		}
	}
	return false
}

// Tier returns 1 for a primary seller, 2 for a backup seller and 0 otherwise.
func (p Preferences) Tier(sellerID string) int {
	if sellerID == "" {
		return 0
	}
	for i, id := range p {
		if id == sellerID {
			if i < PrimaryCount {
				return 1
			}
			return 2
		}
	}
	return 0
}

func filled(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}
