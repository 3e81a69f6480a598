package allocation

import "event-logistics/internal/data/entity"

// CanCoexist reports whether candidates may join a unit that already holds
// occupants people with the given genders.
//
// A capacity-1 unit never shares, so any single gender fits. In a shared unit
// every person must have the same known gender, and an "other" participant
// may only be in it alone.
func CanCoexist(existing entity.GenderSet, occupants int, candidates []entity.Gender, capacity int) bool {
	if capacity <= 1 {
		return true
	}

	all := existing.Union(entity.NewGenderSet(candidates...))
	if all.Has(entity.GenderUnknown) {
		return false
	}
	if all.Has(entity.GenderOther) && occupants+len(candidates) > 1 {
		return false
	}
	return len(all) <= 1
}
