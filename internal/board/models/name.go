package models

import derrors "boardkeep/pkg/domain-errors"

// Name identifies one of the fixed board categories. The set is closed:
// boards are never created with arbitrary names, so the type is a
// string-backed enum rather than an open string.
type Name string

const (
	NameWork    Name = "work"
	NameLeisure Name = "leisure"
	NameSchool  Name = "school"
)

// names also fixes the presentation order of boards.
var names = []Name{NameWork, NameLeisure, NameSchool}

// ParseName validates a raw string against the closed board set.
func ParseName(s string) (Name, error) {
	n := Name(s)
	if !n.Valid() {
		return "", derrors.New(derrors.CodeValidation, "unknown board name: "+s)
	}
	return n, nil
}

func (n Name) Valid() bool {
	for _, known := range names {
		if n == known {
			return true
		}
	}
	return false
}

func (n Name) String() string { return string(n) }

// Names returns the full board set in display order.
func Names() []Name {
	out := make([]Name, len(names))
	copy(out, names)
	return out
}
