package allocation

import (
	"errors"
	"fmt"
	"time"

	"event-logistics/internal/data/entity"

	"github.com/google/uuid"
)

// ErrPlacementInvariant means a request that passed validation could not be
// placed. It is a programming error, never a user-facing one.
var ErrPlacementInvariant = errors.New("allocation placement invariant violated")

// Plan is everything the store must apply in one transaction.
type Plan struct {
	Allocations []entity.Allocation
	Deltas      []entity.OccupancyDelta
	Vendor      *entity.VendorAccommodation
	Rooms       []entity.Room
}

type AssignOptions struct {
	TenantID string
	Now      time.Time
	NewID    func() uuid.UUID
}

type placement struct {
	room         int
	participants []entity.Participant
}

// place fills rooms in selection order up to each room's remaining capacity.
func place(participants []entity.Participant, rooms []entity.Room) ([]placement, []entity.Participant) {
	var out []placement
	rest := participants
	for i := range rooms {
		if len(rest) == 0 {
			break
		}
		free := Remaining(RoomUnit(&rooms[i]))
		if free == 0 {
			continue
		}
		if free > len(rest) {
			free = len(rest)
		}
		out = append(out, placement{room: i, participants: rest[:free]})
		rest = rest[free:]
	}
	return out, rest
}

// Assign maps an already validated request onto allocation records and the
// occupancy changes they imply.
func Assign(req Request, participants []entity.Participant, units Units, opts AssignOptions) (*Plan, error) {
	if opts.NewID == nil {
		opts.NewID = uuid.New
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	ordered, err := orderParticipants(uniqueIDs(req.ParticipantIDs), participants)
	if err != nil {
		return nil, err
	}

	switch req.Type {
	case entity.AccommodationVendor:
		return assignVendor(req, ordered, units.Vendor, opts)
	case entity.AccommodationGuesthouse:
		return assignRooms(req, ordered, uniqueRooms(units.Rooms), opts)
	default:
		return nil, fmt.Errorf("%w: unknown accommodation type %q", ErrPlacementInvariant, req.Type)
	}
}

func assignVendor(req Request, ps []entity.Participant, vendor *entity.VendorAccommodation, opts AssignOptions) (*Plan, error) {
	if vendor == nil {
		return nil, fmt.Errorf("%w: vendor missing", ErrPlacementInvariant)
	}
	if !CanFit(VendorUnit(vendor), len(ps)) {
		return nil, fmt.Errorf("%w: vendor %s cannot take %d participants", ErrPlacementInvariant, vendor.ID, len(ps))
	}

	vendorID := vendor.ID
	alloc := newAllocation(req, opts, ps)
	alloc.VendorAccommodationID = &vendorID
	alloc.RoomType = req.RoomType

	updated := *vendor
	updated.CurrentOccupants += len(ps)

	return &Plan{
		Allocations: []entity.Allocation{alloc},
		Deltas: []entity.OccupancyDelta{{
			UnitID: vendor.ID,
			Type:   entity.AccommodationVendor,
			Added:  len(ps),
		}},
		Vendor: &updated,
	}, nil
}

func assignRooms(req Request, ps []entity.Participant, rooms []entity.Room, opts AssignOptions) (*Plan, error) {
	placements, leftover := place(ps, rooms)
	if len(leftover) > 0 {
		return nil, fmt.Errorf("%w: %d participants left after filling %d rooms", ErrPlacementInvariant, len(leftover), len(rooms))
	}

	plan := &Plan{Rooms: make([]entity.Room, len(rooms))}
	for i, r := range rooms {
		plan.Rooms[i] = r
		plan.Rooms[i].OccupantGenders = occupantGenders(&rooms[i]).Union(nil)
	}

	for _, pl := range placements {
		room := &plan.Rooms[pl.room]
		roomID := room.ID
		added := entity.NewGenderSet(gendersOf(pl.participants)...)

		alloc := newAllocation(req, opts, pl.participants)
		alloc.RoomID = &roomID
		plan.Allocations = append(plan.Allocations, alloc)

		room.CurrentOccupants += len(pl.participants)
		room.OccupantGenders = room.OccupantGenders.Union(added)

		plan.Deltas = append(plan.Deltas, entity.OccupancyDelta{
			UnitID:  roomID,
			Type:    entity.AccommodationGuesthouse,
			Added:   len(pl.participants),
			Genders: added,
		})
	}
	return plan, nil
}

func newAllocation(req Request, opts AssignOptions, ps []entity.Participant) entity.Allocation {
	ids := make([]uuid.UUID, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return entity.Allocation{
		Base: entity.Base{
			ID:        opts.NewID(),
			TenantID:  opts.TenantID,
			CreatedAt: opts.Now,
			UpdatedAt: opts.Now,
		},
		EventID:           req.EventID,
		ParticipantIDs:    ids,
		AccommodationType: req.Type,
		CheckInDate:       req.CheckInDate,
		CheckOutDate:      req.CheckOutDate,
		Status:            entity.AllocationStatusActive,
	}
}

func orderParticipants(ids []uuid.UUID, participants []entity.Participant) ([]entity.Participant, error) {
	byID := make(map[uuid.UUID]entity.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}
	out := make([]entity.Participant, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: participant %s not supplied", ErrPlacementInvariant, id)
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no participants", ErrPlacementInvariant)
	}
	return out, nil
}
