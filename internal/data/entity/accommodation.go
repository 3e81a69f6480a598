package entity

import (
	"sort"

	"github.com/google/uuid"
)

type AccommodationType string

const (
	AccommodationVendor     AccommodationType = "vendor"
	AccommodationGuesthouse AccommodationType = "guesthouse"
)

type RoomType string

const (
	RoomTypeSingle RoomType = "single"
	RoomTypeDouble RoomType = "double"
)

// VendorAccommodation is an external hotel partner treated as one capacity pool.
type VendorAccommodation struct {
	Base
	VendorName       string `db:"vendor_name"`
	Location         string `db:"location"`
	Capacity         int    `db:"capacity"`
	CurrentOccupants int    `db:"current_occupants"`
}

type Guesthouse struct {
	Base
	Name     string `db:"name"`
	Location string `db:"location"`
}

// Room belongs to a guesthouse and remembers the genders of its occupants.
type Room struct {
	Base
	GuesthouseID     uuid.UUID `db:"guesthouse_id"`
	RoomNumber       string    `db:"room_number"`
	Capacity         int       `db:"capacity"`
	CurrentOccupants int       `db:"current_occupants"`
	OccupantGenders  GenderSet `db:"occupant_genders"`
}

// GenderSet is a small set of genders.
type GenderSet map[Gender]struct{}

func NewGenderSet(genders ...Gender) GenderSet {
	s := make(GenderSet, len(genders))
	for _, g := range genders {
		s[g] = struct{}{}
	}
	return s
}

func (s GenderSet) Has(g Gender) bool {
	_, ok := s[g]
	return ok
}

func (s GenderSet) Union(other GenderSet) GenderSet {
	out := make(GenderSet, len(s)+len(other))
	for g := range s {
		out[g] = struct{}{}
	}
	for g := range other {
		out[g] = struct{}{}
	}
	return out
}

// Slice returns the members in a stable order.
func (s GenderSet) Slice() []Gender {
	out := make([]Gender, 0, len(s))
	for g := range s {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s GenderSet) Strings() []string {
	genders := s.Slice()
	out := make([]string, len(genders))
	for i, g := range genders {
		out[i] = string(g)
	}
	return out
}

func GenderSetFromStrings(values []string) GenderSet {
	s := make(GenderSet, len(values))
	for _, v := range values {
		s[ParseGender(v)] = struct{}{}
	}
	return s
}
