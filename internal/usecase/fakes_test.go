package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"event-logistics/internal/data/entity"
	"event-logistics/internal/data/repository"

	"github.com/google/uuid"
)

var (
	fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	eventID  = uuid.MustParse("7f1e1d2c-0000-4000-8000-000000000001")
)

const tenant = "tenant-a"

func fixedClock() time.Time { return fixedNow }

// store is an in-memory backend shared by the fake repositories. Occupancy
// changes follow the same capacity and gender guard as the SQL store.
type store struct {
	mu           sync.Mutex
	participants map[uuid.UUID]entity.Participant
	vendors      map[uuid.UUID]entity.VendorAccommodation
	rooms        map[uuid.UUID]entity.Room
	roomOrder    []uuid.UUID
	allocations  map[uuid.UUID]entity.Allocation
	bookings     map[uuid.UUID]entity.TransportBooking
	history      map[uuid.UUID][]entity.StatusUpdate
	packages     map[uuid.UUID]bool

	// beforeWrite runs once at the start of the next CreateWithOccupancy,
	// standing in for a request that commits in between.
	beforeWrite func()
}

func newStore() *store {
	return &store{
		participants: map[uuid.UUID]entity.Participant{},
		vendors:      map[uuid.UUID]entity.VendorAccommodation{},
		rooms:        map[uuid.UUID]entity.Room{},
		allocations:  map[uuid.UUID]entity.Allocation{},
		bookings:     map[uuid.UUID]entity.TransportBooking{},
		history:      map[uuid.UUID][]entity.StatusUpdate{},
		packages:     map[uuid.UUID]bool{},
	}
}

func (s *store) repository() *repository.Repository {
	return &repository.Repository{
		Participant:      fakeParticipants{s},
		Vendor:           fakeVendors{s},
		Room:             fakeRooms{s},
		Allocation:       fakeAllocations{s},
		TransportBooking: fakeBookings{s},
		WelcomePackage:   fakePackages{s},
	}
}

func (s *store) addParticipant(name string, g entity.Gender) entity.Participant {
	p := entity.Participant{ID: uuid.New(), EventID: eventID, Name: name, Email: name + "@example.org", Gender: g}
	s.participants[p.ID] = p
	return p
}

func (s *store) addVendor(capacity, occupants int) entity.VendorAccommodation {
	v := entity.VendorAccommodation{
		Base:             entity.Base{ID: uuid.New(), TenantID: tenant},
		VendorName:       "Harbour Hotel",
		Capacity:         capacity,
		CurrentOccupants: occupants,
	}
	s.vendors[v.ID] = v
	return v
}

func (s *store) addRoom(number string, capacity, occupants int, genders ...entity.Gender) entity.Room {
	r := entity.Room{
		Base:             entity.Base{ID: uuid.New(), TenantID: tenant},
		GuesthouseID:     uuid.New(),
		RoomNumber:       number,
		Capacity:         capacity,
		CurrentOccupants: occupants,
		OccupantGenders:  entity.NewGenderSet(genders...),
	}
	s.rooms[r.ID] = r
	s.roomOrder = append(s.roomOrder, r.ID)
	return r
}

func (s *store) addBooking(b entity.TransportBooking) entity.TransportBooking {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.TenantID = tenant
	s.bookings[b.ID] = b
	return b
}

type fakeParticipants struct{ s *store }

func (f fakeParticipants) FindByEvent(ctx context.Context, tenantID string, id uuid.UUID) ([]entity.Participant, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []entity.Participant
	for _, p := range f.s.participants {
		if p.EventID == id {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f fakeParticipants) FindByIDs(ctx context.Context, tenantID string, ids []uuid.UUID) ([]entity.Participant, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []entity.Participant
	for _, id := range ids {
		if p, ok := f.s.participants[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeVendors struct{ s *store }

func (f fakeVendors) List(ctx context.Context, tenantID string) ([]entity.VendorAccommodation, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	out := make([]entity.VendorAccommodation, 0, len(f.s.vendors))
	for _, v := range f.s.vendors {
		out = append(out, v)
	}
	return out, nil
}

func (f fakeVendors) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*entity.VendorAccommodation, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	v, ok := f.s.vendors[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

type fakeRooms struct{ s *store }

func (f fakeRooms) ListByGuesthouse(ctx context.Context, tenantID string, guesthouseID *uuid.UUID) ([]entity.Room, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []entity.Room
	for _, id := range f.s.roomOrder {
		r := f.s.rooms[id]
		if guesthouseID == nil || r.GuesthouseID == *guesthouseID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f fakeRooms) FindByIDs(ctx context.Context, tenantID string, ids []uuid.UUID) ([]entity.Room, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []entity.Room
	for _, id := range ids {
		if r, ok := f.s.rooms[id]; ok {
			r.OccupantGenders = r.OccupantGenders.Union(nil)
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeAllocations struct{ s *store }

func (f fakeAllocations) CreateWithOccupancy(ctx context.Context, allocs []entity.Allocation, deltas []entity.OccupancyDelta) error {
	if hook := f.s.beforeWrite; hook != nil {
		f.s.beforeWrite = nil
		hook()
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	vendors := map[uuid.UUID]entity.VendorAccommodation{}
	rooms := map[uuid.UUID]entity.Room{}
	for _, d := range deltas {
		switch d.Type {
		case entity.AccommodationVendor:
			v, ok := vendors[d.UnitID]
			if !ok {
				v = f.s.vendors[d.UnitID]
			}
			if v.CurrentOccupants+d.Added > v.Capacity {
				return repository.ErrCapacityExceeded
			}
			v.CurrentOccupants += d.Added
			vendors[d.UnitID] = v
		case entity.AccommodationGuesthouse:
			r, ok := rooms[d.UnitID]
			if !ok {
				r = f.s.rooms[d.UnitID]
			}
			if r.CurrentOccupants+d.Added > r.Capacity || !roomAccepts(r, d) {
				return repository.ErrCapacityExceeded
			}
			if r.CurrentOccupants == 0 {
				r.OccupantGenders = entity.NewGenderSet()
			}
			r.CurrentOccupants += d.Added
			r.OccupantGenders = r.OccupantGenders.Union(d.Genders)
			rooms[d.UnitID] = r
		}
	}

	for id, v := range vendors {
		f.s.vendors[id] = v
	}
	for id, r := range rooms {
		f.s.rooms[id] = r
	}
	for _, a := range allocs {
		f.s.allocations[a.ID] = a
	}
	return nil
}

// roomAccepts mirrors the gender guard of the SQL occupancy update.
func roomAccepts(r entity.Room, d entity.OccupancyDelta) bool {
	if r.Capacity <= 1 {
		return true
	}
	if len(d.Genders) > 1 || d.Genders.Has(entity.GenderUnknown) {
		return false
	}
	if d.Genders.Has(entity.GenderOther) && r.CurrentOccupants+d.Added > 1 {
		return false
	}
	if r.CurrentOccupants == 0 {
		return true
	}
	for g := range r.OccupantGenders {
		if !d.Genders.Has(g) {
			return false
		}
	}
	return true
}

func (f fakeAllocations) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*entity.Allocation, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	a, ok := f.s.allocations[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (f fakeAllocations) ListByEvent(ctx context.Context, tenantID string, id uuid.UUID) ([]entity.Allocation, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []entity.Allocation
	for _, a := range f.s.allocations {
		if a.EventID == id {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (f fakeAllocations) ListActiveByRoom(ctx context.Context, tenantID string, roomID uuid.UUID) ([]entity.Allocation, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []entity.Allocation
	for _, a := range f.s.allocations {
		if a.RoomID != nil && *a.RoomID == roomID && a.Status != entity.AllocationStatusCancelled {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f fakeAllocations) FindOverlapping(ctx context.Context, tenantID string, ids []uuid.UUID, checkIn, checkOut time.Time) ([]entity.Allocation, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	want := map[uuid.UUID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []entity.Allocation
	for _, a := range f.s.allocations {
		if a.Status == entity.AllocationStatusCancelled {
			continue
		}
		if !(a.CheckInDate.Before(checkOut) && checkIn.Before(a.CheckOutDate)) {
			continue
		}
		for _, id := range a.ParticipantIDs {
			if want[id] {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

func (f fakeAllocations) CheckIn(ctx context.Context, tenantID string, ids []uuid.UUID, at time.Time) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var n int64
	for _, id := range ids {
		a, ok := f.s.allocations[id]
		if !ok || a.Status != entity.AllocationStatusActive {
			continue
		}
		a.Status = entity.AllocationStatusCheckedIn
		a.UpdatedAt = at
		f.s.allocations[id] = a
		n++
	}
	return n, nil
}

func (f fakeAllocations) Cancel(ctx context.Context, alloc entity.Allocation, release entity.OccupancyDelta) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	stored, ok := f.s.allocations[alloc.ID]
	if !ok || stored.Status == entity.AllocationStatusCancelled {
		return repository.ErrConcurrentUpdate
	}
	f.s.allocations[alloc.ID] = alloc

	switch release.Type {
	case entity.AccommodationVendor:
		v := f.s.vendors[release.UnitID]
		v.CurrentOccupants = max(0, v.CurrentOccupants+release.Added)
		f.s.vendors[release.UnitID] = v
	case entity.AccommodationGuesthouse:
		r := f.s.rooms[release.UnitID]
		r.CurrentOccupants = max(0, r.CurrentOccupants+release.Added)
		if r.CurrentOccupants == 0 {
			r.OccupantGenders = entity.NewGenderSet()
		}
		f.s.rooms[release.UnitID] = r
	}
	return nil
}

type fakeBookings struct{ s *store }

func (f fakeBookings) Create(ctx context.Context, b *entity.TransportBooking, poolWith []uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, id := range poolWith {
		t, ok := f.s.bookings[id]
		if !ok || t.Status == entity.BookingStatusCompleted || t.Status == entity.BookingStatusCancelled {
			return repository.ErrConcurrentUpdate
		}
	}
	for _, id := range poolWith {
		t := f.s.bookings[id]
		g := *b.PoolGroupID
		t.PoolGroupID = &g
		f.s.bookings[id] = t
	}
	f.s.bookings[b.ID] = *b
	return nil
}

func (f fakeBookings) FindByID(ctx context.Context, tenantID string, id uuid.UUID) (*entity.TransportBooking, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (f fakeBookings) FindByIDs(ctx context.Context, tenantID string, ids []uuid.UUID) ([]entity.TransportBooking, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []entity.TransportBooking
	for _, id := range ids {
		if b, ok := f.s.bookings[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f fakeBookings) List(ctx context.Context, tenantID string, filter repository.BookingFilter) ([]entity.TransportBooking, int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var all []entity.TransportBooking
	for _, b := range f.s.bookings {
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.BookingType != nil && b.BookingType != *filter.BookingType {
			continue
		}
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ScheduledTime.Before(all[j].ScheduledTime) })
	total := int64(len(all))
	if filter.Offset >= len(all) {
		return nil, total, nil
	}
	end := min(len(all), filter.Offset+filter.Limit)
	return all[filter.Offset:end], total, nil
}

func (f fakeBookings) FindPoolCandidates(ctx context.Context, tenantID string, bt entity.BookingType, from, to time.Time) ([]entity.TransportBooking, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []entity.TransportBooking
	for _, b := range f.s.bookings {
		if b.BookingType == bt && !b.ScheduledTime.Before(from) && !b.ScheduledTime.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f fakeBookings) UpdateStatus(ctx context.Context, b *entity.TransportBooking, from entity.BookingStatus, update entity.StatusUpdate) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	stored, ok := f.s.bookings[b.ID]
	if !ok || stored.Status != from {
		return repository.ErrConcurrentUpdate
	}
	f.s.bookings[b.ID] = *b
	f.s.history[b.ID] = append(f.s.history[b.ID], update)
	return nil
}

func (f fakeBookings) DeletePending(ctx context.Context, tenantID string, id uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	b, ok := f.s.bookings[id]
	if !ok || b.Status != entity.BookingStatusPending {
		return repository.ErrConcurrentUpdate
	}
	delete(f.s.bookings, id)
	delete(f.s.history, id)
	return nil
}

func (f fakeBookings) History(ctx context.Context, tenantID string, id uuid.UUID) ([]entity.StatusUpdate, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return append([]entity.StatusUpdate(nil), f.s.history[id]...), nil
}

type fakePackages struct{ s *store }

func (f fakePackages) FindUncollected(ctx context.Context, tenantID string, ids []uuid.UUID) ([]entity.WelcomePackage, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var out []entity.WelcomePackage
	for _, id := range ids {
		if collected, ok := f.s.packages[id]; ok && !collected {
			out = append(out, entity.WelcomePackage{ParticipantID: id})
		}
	}
	return out, nil
}
