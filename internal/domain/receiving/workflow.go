package receiving

import (
	"fmt"

	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReceivingWorkflow is the aggregate root for one receiving operation.
// It owns the in-memory working set between truck arrival and putaway and
// enforces the strictly-forward stage transitions. It is deliberately split
// from persistence: Prepare* methods validate and build entities without
// mutating the working set, and the matching *Recorded/*Committed methods
// apply the mutation only after the caller has persisted the rows. A failed
// persistence call therefore leaves the machine in its pre-operation state.
type ReceivingWorkflow struct {
	shared.BaseAggregateRoot

	tenantID uuid.UUID
	actorID  uuid.UUID
	stage    Stage

	arrival *TruckArrival
	items   []TruckItem

	qualityDrafts    map[uuid.UUID]QualityDraft
	supervisorName   string
	qualityCommitted map[uuid.UUID]bool

	slotDrafts map[OrdinalKey]SlotCoordinate
}

// NewReceivingWorkflow creates a fresh workflow bound to a tenant and the
// operator driving it
func NewReceivingWorkflow(tenantID, actorID uuid.UUID) *ReceivingWorkflow {
	return &ReceivingWorkflow{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		tenantID:          tenantID,
		actorID:           actorID,
		stage:             StageArrivalPending,
		items:             make([]TruckItem, 0),
		qualityDrafts:     make(map[uuid.UUID]QualityDraft),
		qualityCommitted:  make(map[uuid.UUID]bool),
		slotDrafts:        make(map[OrdinalKey]SlotCoordinate),
	}
}

// Stage returns the current workflow stage
func (w *ReceivingWorkflow) Stage() Stage {
	return w.stage
}

// TenantID returns the owning tenant
func (w *ReceivingWorkflow) TenantID() uuid.UUID {
	return w.tenantID
}

// ActorID returns the operator bound to this workflow
func (w *ReceivingWorkflow) ActorID() uuid.UUID {
	return w.actorID
}

// Arrival returns the registered truck arrival, or nil before stage 1 closes
func (w *ReceivingWorkflow) Arrival() *TruckArrival {
	return w.arrival
}

// Items returns a copy of the working item list
func (w *ReceivingWorkflow) Items() []TruckItem {
	items := make([]TruckItem, len(w.items))
	copy(items, w.items)
	return items
}

// ItemCount returns the number of logged unloading lines
func (w *ReceivingWorkflow) ItemCount() int {
	return len(w.items)
}

// SupervisorName returns the attested supervisor name
func (w *ReceivingWorkflow) SupervisorName() string {
	return w.supervisorName
}

// QualityDraftFor returns the in-memory verdict for an item, if any
func (w *ReceivingWorkflow) QualityDraftFor(itemID uuid.UUID) (QualityDraft, bool) {
	draft, ok := w.qualityDrafts[itemID]
	return draft, ok
}

// SlotDraftFor returns the in-memory coordinate for a unit key, if any
func (w *ReceivingWorkflow) SlotDraftFor(key OrdinalKey) (SlotCoordinate, bool) {
	c, ok := w.slotDrafts[key]
	return c, ok
}

// CanAdvance reports whether the guard for leaving the current stage holds.
// Exposed for UI gating; the stage-advancing operations re-check it.
func (w *ReceivingWorkflow) CanAdvance() bool {
	switch w.stage {
	case StageUnloading:
		return len(w.items) > 0
	case StageQualityCheck:
		return w.CanFinishQualityCheck()
	case StagePutaway:
		_, err := w.PreparePutaway()
		return err == nil
	default:
		return false
	}
}

func (w *ReceivingWorkflow) requireStage(op string, stage Stage) error {
	if w.stage != stage {
		return shared.NewDomainError("INVALID_STAGE", fmt.Sprintf("Cannot %s in %s stage", op, w.stage))
	}
	return nil
}

// ==================== Stage 1: Truck Arrival ====================

// PrepareArrival validates the arrival form and builds the TruckArrival
// entity without mutating the workflow. The caller persists it and then
// confirms with ArrivalRegistered.
func (w *ReceivingWorkflow) PrepareArrival(draft ArrivalDraft) (*TruckArrival, error) {
	if err := w.requireStage("register arrival", StageArrivalPending); err != nil {
		return nil, err
	}
	arrival, err := NewTruckArrival(w.tenantID, draft)
	if err != nil {
		return nil, err
	}
	arrival.SetCreatedBy(w.actorID)
	return arrival, nil
}

// ArrivalRegistered binds the persisted arrival and advances to Unloading
func (w *ReceivingWorkflow) ArrivalRegistered(arrival *TruckArrival) error {
	if err := w.requireStage("register arrival", StageArrivalPending); err != nil {
		return err
	}
	if arrival == nil {
		return shared.NewDomainError("INVALID_ARRIVAL", "Arrival cannot be nil")
	}
	w.arrival = arrival
	w.stage = StageUnloading
	return nil
}

// ==================== Stage 2: Unloading ====================

// PrepareItem validates one unloading line and builds the TruckItem bound
// to the current arrival, without mutating the workflow
func (w *ReceivingWorkflow) PrepareItem(draft ItemDraft) (*TruckItem, error) {
	if err := w.requireStage("add items", StageUnloading); err != nil {
		return nil, err
	}
	return NewTruckItem(w.arrival.ID, draft)
}

// ItemLogged appends a persisted truck item to the working set
func (w *ReceivingWorkflow) ItemLogged(item *TruckItem) error {
	if err := w.requireStage("add items", StageUnloading); err != nil {
		return err
	}
	w.items = append(w.items, *item)
	return nil
}

// FindItem looks up a working item by ID
func (w *ReceivingWorkflow) FindItem(itemID uuid.UUID) *TruckItem {
	for idx := range w.items {
		if w.items[idx].ID == itemID {
			return &w.items[idx]
		}
	}
	return nil
}

// ItemRemovable reports whether an item may currently be deleted.
// Deletion is permitted only while the workflow has not advanced past
// Unloading.
func (w *ReceivingWorkflow) ItemRemovable(itemID uuid.UUID) error {
	if w.stage != StageUnloading {
		return shared.NewDomainError("ITEM_NOT_REMOVABLE", fmt.Sprintf("Items can only be removed during unloading, not in %s stage", w.stage))
	}
	if w.FindItem(itemID) == nil {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Truck item not found in working set")
	}
	return nil
}

// ItemRemoved drops a deleted item from the working set
func (w *ReceivingWorkflow) ItemRemoved(itemID uuid.UUID) error {
	if err := w.ItemRemovable(itemID); err != nil {
		return err
	}
	for idx := range w.items {
		if w.items[idx].ID == itemID {
			w.items = append(w.items[:idx], w.items[idx+1:]...)
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Truck item not found in working set")
}

// AdvanceToQualityCheck moves Unloading -> QualityCheck.
// Pure transition, no persistence side effect.
func (w *ReceivingWorkflow) AdvanceToQualityCheck() error {
	if err := w.requireStage("close unloading", StageUnloading); err != nil {
		return err
	}
	if len(w.items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "At least one truck item must be logged before quality check")
	}
	w.stage = StageQualityCheck
	return nil
}

// ==================== Stage 3: Quality Check ====================

// SetQualityStatus upserts the in-memory verdict draft for an item.
// Nothing is persisted until the stage is finalized.
func (w *ReceivingWorkflow) SetQualityStatus(itemID uuid.UUID, status QualityStatus, damageImageRef string) error {
	if err := w.requireStage("set quality status", StageQualityCheck); err != nil {
		return err
	}
	if w.FindItem(itemID) == nil {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Truck item not found in working set")
	}
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_QUALITY_STATUS", fmt.Sprintf("Unknown quality status %q", status))
	}
	draft := w.qualityDrafts[itemID]
	draft.Status = status
	if damageImageRef != "" {
		draft.DamageImageRef = damageImageRef
	}
	w.qualityDrafts[itemID] = draft
	return nil
}

// AttestSupervisor records the supervisor attestation
func (w *ReceivingWorkflow) AttestSupervisor(name string) error {
	if err := w.requireStage("attest supervisor", StageQualityCheck); err != nil {
		return err
	}
	if name == "" {
		return shared.NewDomainError("MISSING_SUPERVISOR", "Supervisor attestation is required")
	}
	w.supervisorName = name
	return nil
}

// CanFinishQualityCheck holds when every item has a verdict and the
// supervisor name is attested
func (w *ReceivingWorkflow) CanFinishQualityCheck() bool {
	if w.stage != StageQualityCheck || w.supervisorName == "" || len(w.items) == 0 {
		return false
	}
	for _, item := range w.items {
		if draft, ok := w.qualityDrafts[item.ID]; !ok || !draft.Status.IsValid() {
			return false
		}
	}
	return true
}

// PendingQualityItems returns, in input order, the items whose inventory
// and verdict rows have not been committed yet. After a partial commit
// failure this is the resume list.
func (w *ReceivingWorkflow) PendingQualityItems() []TruckItem {
	pending := make([]TruckItem, 0, len(w.items))
	for _, item := range w.items {
		if !w.qualityCommitted[item.ID] {
			pending = append(pending, item)
		}
	}
	return pending
}

// PrepareQualityRecord builds the persisted verdict for one item.
// Requires the stage guard to hold so half-attested stages never commit.
func (w *ReceivingWorkflow) PrepareQualityRecord(itemID uuid.UUID) (*QualityCheckRecord, error) {
	if !w.CanFinishQualityCheck() {
		return nil, shared.NewDomainError("QUALITY_CHECK_INCOMPLETE", "Every item needs a verdict and the supervisor must attest before finishing quality check")
	}
	item := w.FindItem(itemID)
	if item == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Truck item not found in working set")
	}
	return NewQualityCheckRecord(item, w.qualityDrafts[itemID], w.supervisorName)
}

// QualityCommitRecorded marks one item's inventory and verdict rows as
// durably persisted, so a retry after partial failure skips it
func (w *ReceivingWorkflow) QualityCommitRecorded(itemID uuid.UUID) {
	w.qualityCommitted[itemID] = true
}

// CommittedQualityCount returns how many items have fully committed
// quality rows
func (w *ReceivingWorkflow) CommittedQualityCount() int {
	return len(w.qualityCommitted)
}

// FinishQualityCheck moves QualityCheck -> Putaway once every item's rows
// are committed
func (w *ReceivingWorkflow) FinishQualityCheck() error {
	if err := w.requireStage("finish quality check", StageQualityCheck); err != nil {
		return err
	}
	if !w.CanFinishQualityCheck() {
		return shared.NewDomainError("QUALITY_CHECK_INCOMPLETE", "Every item needs a verdict and the supervisor must attest before finishing quality check")
	}
	if pending := w.PendingQualityItems(); len(pending) > 0 {
		return shared.NewDomainError("QUALITY_CHECK_INCOMPLETE", fmt.Sprintf("%d items still have uncommitted quality rows", len(pending)))
	}
	w.stage = StagePutaway
	w.AddDomainEvent(NewQualityCheckCompletedEvent(w))
	return nil
}

// ==================== Stage 4: Putaway ====================

// UnitKeys expands every working item into its ordinal keys, in item order.
// The sequence is deterministic so resumed putaway forms keep alignment.
func (w *ReceivingWorkflow) UnitKeys() ([]OrdinalKey, error) {
	keys := make([]OrdinalKey, 0, len(w.items))
	for idx := range w.items {
		itemKeys, err := ExpandItem(&w.items[idx])
		if err != nil {
			return nil, err
		}
		keys = append(keys, itemKeys...)
	}
	return keys, nil
}

// AssignSlot updates the in-memory coordinate draft for one unit key.
// Partial coordinates are accepted here; completeness is enforced at commit.
func (w *ReceivingWorkflow) AssignSlot(key OrdinalKey, coordinate SlotCoordinate) error {
	if err := w.requireStage("assign slots", StagePutaway); err != nil {
		return err
	}
	item := w.FindItem(key.TruckItemID)
	if item == nil {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Truck item not found in working set")
	}
	if key.Ordinal < 0 || key.Ordinal >= item.Quantity {
		return shared.NewDomainError("INVALID_ORDINAL_KEY", fmt.Sprintf("Ordinal %d out of range for item with quantity %d", key.Ordinal, item.Quantity))
	}
	w.slotDrafts[key] = coordinate
	return nil
}

// PreparePutaway assembles the full batch of slot assignments for commit.
// It first rejects any unit key lacking a complete 4-tuple, then checks the
// whole batch for coordinate collisions, all before any persistence.
func (w *ReceivingWorkflow) PreparePutaway() ([]SlotAssignment, error) {
	if err := w.requireStage("commit putaway", StagePutaway); err != nil {
		return nil, err
	}

	keys, err := w.UnitKeys()
	if err != nil {
		return nil, err
	}

	assignments := make([]SlotAssignment, 0, len(keys))
	for _, key := range keys {
		coordinate, ok := w.slotDrafts[key]
		if !ok || !coordinate.IsComplete() {
			return nil, NewIncompleteSlotAssignment(key)
		}
		assignments = append(assignments, SlotAssignment{Key: key, Coordinate: coordinate})
	}

	if err := ValidateSlotAssignments(assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// PutawayCommitted marks the batch as persisted and completes the workflow
func (w *ReceivingWorkflow) PutawayCommitted() error {
	if err := w.requireStage("commit putaway", StagePutaway); err != nil {
		return err
	}
	w.stage = StageComplete
	w.AddDomainEvent(NewPutawayCommittedEvent(w))
	return nil
}

// ==================== Terminal ====================

// IsComplete returns true once the workflow reached the terminal stage
func (w *ReceivingWorkflow) IsComplete() bool {
	return w.stage == StageComplete
}

// Reset clears all in-memory working state and returns the machine to a
// fresh ArrivalPending instance. Persisted records are untouched; they
// remain as the durable history of the completed operation.
func (w *ReceivingWorkflow) Reset() {
	w.BaseAggregateRoot = shared.NewBaseAggregateRoot()
	w.stage = StageArrivalPending
	w.arrival = nil
	w.items = w.items[:0]
	w.qualityDrafts = make(map[uuid.UUID]QualityDraft)
	w.supervisorName = ""
	w.qualityCommitted = make(map[uuid.UUID]bool)
	w.slotDrafts = make(map[OrdinalKey]SlotCoordinate)
}
