package receiving

import (
	"context"
	"errors"
	"time"

	"github.com/omnideploy/backend/internal/domain/inventory"
	"github.com/omnideploy/backend/internal/domain/receiving"
	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var errStorageDown = errors.New("storage down")

type fakeArrivalRepo struct {
	arrivals map[uuid.UUID]receiving.TruckArrival
	saves    int
	failNext bool
}

func newFakeArrivalRepo() *fakeArrivalRepo {
	return &fakeArrivalRepo{arrivals: make(map[uuid.UUID]receiving.TruckArrival)}
}

func (r *fakeArrivalRepo) FindByID(_ context.Context, id uuid.UUID) (*receiving.TruckArrival, error) {
	arrival, ok := r.arrivals[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &arrival, nil
}

func (r *fakeArrivalRepo) FindByWarehouse(_ context.Context, tenantID, warehouseID uuid.UUID, _ shared.Filter) ([]receiving.TruckArrival, error) {
	var out []receiving.TruckArrival
	for _, arrival := range r.arrivals {
		if arrival.TenantID == tenantID && arrival.WarehouseID == warehouseID {
			out = append(out, arrival)
		}
	}
	return out, nil
}

func (r *fakeArrivalRepo) Save(_ context.Context, arrival *receiving.TruckArrival) error {
	if r.failNext {
		r.failNext = false
		return errStorageDown
	}
	r.saves++
	r.arrivals[arrival.ID] = *arrival
	return nil
}

type fakeItemRepo struct {
	items    map[uuid.UUID]receiving.TruckItem
	saves    int
	deletes  int
	failOnN  int // 1-based save ordinal to fail on, 0 = never
	saveCall int
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]receiving.TruckItem)}
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*receiving.TruckItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &item, nil
}

func (r *fakeItemRepo) FindByArrival(_ context.Context, arrivalID uuid.UUID) ([]receiving.TruckItem, error) {
	var out []receiving.TruckItem
	for _, item := range r.items {
		if item.ArrivalID == arrivalID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) Save(_ context.Context, item *receiving.TruckItem) error {
	r.saveCall++
	if r.failOnN != 0 && r.saveCall == r.failOnN {
		return errStorageDown
	}
	r.saves++
	r.items[item.ID] = *item
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	r.deletes++
	return nil
}

type fakeQualityRepo struct {
	records  map[uuid.UUID]receiving.QualityCheckRecord // keyed by truck item
	saves    int
	failOnN  int
	saveCall int
}

func newFakeQualityRepo() *fakeQualityRepo {
	return &fakeQualityRepo{records: make(map[uuid.UUID]receiving.QualityCheckRecord)}
}

func (r *fakeQualityRepo) FindByTruckItem(_ context.Context, truckItemID uuid.UUID) (*receiving.QualityCheckRecord, error) {
	record, ok := r.records[truckItemID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &record, nil
}

func (r *fakeQualityRepo) Save(_ context.Context, record *receiving.QualityCheckRecord) error {
	r.saveCall++
	if r.failOnN != 0 && r.saveCall == r.failOnN {
		return errStorageDown
	}
	r.saves++
	r.records[record.TruckItemID] = *record
	return nil
}

type fakeSlotRepo struct {
	slots      []receiving.PutawaySlot
	batchCalls int
	occupied   []receiving.SlotCoordinate
	failNext   bool
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{}
}

func (r *fakeSlotRepo) FindByTruckItem(_ context.Context, truckItemID uuid.UUID) ([]receiving.PutawaySlot, error) {
	var out []receiving.PutawaySlot
	for _, slot := range r.slots {
		if slot.TruckItemID == truckItemID {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) Save(_ context.Context, slot *receiving.PutawaySlot) error {
	r.slots = append(r.slots, *slot)
	return nil
}

func (r *fakeSlotRepo) SaveBatch(_ context.Context, slots []receiving.PutawaySlot) error {
	r.batchCalls++
	if r.failNext {
		r.failNext = false
		return errStorageDown
	}
	r.slots = append(r.slots, slots...)
	return nil
}

func (r *fakeSlotRepo) OccupiedCoordinates(_ context.Context, _ uuid.UUID) ([]receiving.SlotCoordinate, error) {
	return r.occupied, nil
}

type fakeInventoryRepo struct {
	items    map[uuid.UUID]inventory.InventoryItem
	saves    int
	failOnN  int
	saveCall int
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{items: make(map[uuid.UUID]inventory.InventoryItem)}
}

func (r *fakeInventoryRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &item, nil
}

func (r *fakeInventoryRepo) FindByArrival(_ context.Context, arrivalID uuid.UUID) ([]inventory.InventoryItem, error) {
	var out []inventory.InventoryItem
	for _, item := range r.items {
		if item.ArrivalID == arrivalID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]inventory.InventoryItem, error) {
	var out []inventory.InventoryItem
	for _, item := range r.items {
		if item.TenantID == tenantID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) Save(_ context.Context, item *inventory.InventoryItem) error {
	r.saveCall++
	if r.failOnN != 0 && r.saveCall == r.failOnN {
		return errStorageDown
	}
	r.saves++
	// Mirror the unique index on truck_item_id: a replayed save is a no-op
	for _, existing := range r.items {
		if existing.TruckItemID == item.TruckItemID {
			return nil
		}
	}
	r.items[item.ID] = *item
	return nil
}

type fakeIdempotencyStore struct {
	seen map[string]bool
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{seen: make(map[string]bool)}
}

func (s *fakeIdempotencyStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	if s.seen[key] {
		return false, nil
	}
	s.seen[key] = true
	return true, nil
}

func (s *fakeIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	return s.seen[key], nil
}

func (s *fakeIdempotencyStore) Close() error { return nil }

type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}
