package allocation

import "event-logistics/internal/data/entity"

// Unit is anything holding a capacity and a running occupant count.
type Unit interface {
	CapacityOf() int
	OccupantsOf() int
}

type vendorUnit struct{ v *entity.VendorAccommodation }

func (u vendorUnit) CapacityOf() int  { return u.v.Capacity }
func (u vendorUnit) OccupantsOf() int { return u.v.CurrentOccupants }

type roomUnit struct{ r *entity.Room }

func (u roomUnit) CapacityOf() int  { return u.r.Capacity }
func (u roomUnit) OccupantsOf() int { return u.r.CurrentOccupants }

func VendorUnit(v *entity.VendorAccommodation) Unit { return vendorUnit{v} }
func RoomUnit(r *entity.Room) Unit                  { return roomUnit{r} }

// Remaining never goes below zero, even for inconsistent data.
func Remaining(u Unit) int {
	left := u.CapacityOf() - u.OccupantsOf()
	if left < 0 {
		return 0
	}
	return left
}

func CanFit(u Unit, count int) bool {
	return Remaining(u) >= count
}

// AggregateRemaining sums the free places across a multi-room selection.
func AggregateRemaining(rooms []entity.Room) int {
	total := 0
	for i := range rooms {
		total += Remaining(RoomUnit(&rooms[i]))
	}
	return total
}
