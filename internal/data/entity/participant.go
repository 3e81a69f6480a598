package entity

import (
	"strings"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

// ParseGender maps stored values onto the closed gender set. Anything
// unrecognised, including an empty value, is unknown.
func ParseGender(s string) Gender {
	g := Gender(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return g
	default:
		return GenderUnknown
	}
}

func (g Gender) Known() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// Participant is owned by event registration; read-only here.
type Participant struct {
	ID      uuid.UUID `db:"id"`
	EventID uuid.UUID `db:"event_id"`
	Name    string    `db:"name"`
	Email   string    `db:"email"`
	Gender  Gender    `db:"gender"`
}
