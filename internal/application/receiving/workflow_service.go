package receiving

import (
	"context"
	"fmt"
	"time"

	"github.com/omnideploy/backend/internal/domain/inventory"
	"github.com/omnideploy/backend/internal/domain/receiving"
	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompanyName is printed on putaway labels
const CompanyName = "OmniDeploy"

// WorkflowService drives receiving sessions through the four-stage flow:
// truck arrival, unloading, quality check, putaway. Each stage commit
// validates in memory first and persists only on success, so a failed
// call never leaves half a stage behind.
type WorkflowService struct {
	sessions      *SessionManager
	arrivalRepo   receiving.ArrivalRepository
	itemRepo      receiving.TruckItemRepository
	qualityRepo   receiving.QualityCheckRepository
	slotRepo      receiving.PutawaySlotRepository
	inventoryRepo inventory.Repository

	eventPublisher shared.EventPublisher
	idempotency    shared.IdempotencyStore
	idempotencyTTL time.Duration
	logger         *zap.Logger

	// When set, putaway commits also reject coordinates already occupied
	// by earlier receiving operations in the same warehouse.
	warehouseSlotCheck bool
}

// NewWorkflowService creates a new WorkflowService
func NewWorkflowService(
	arrivalRepo receiving.ArrivalRepository,
	itemRepo receiving.TruckItemRepository,
	qualityRepo receiving.QualityCheckRepository,
	slotRepo receiving.PutawaySlotRepository,
	inventoryRepo inventory.Repository,
	logger *zap.Logger,
) *WorkflowService {
	return &WorkflowService{
		sessions:       NewSessionManager(),
		arrivalRepo:    arrivalRepo,
		itemRepo:       itemRepo,
		qualityRepo:    qualityRepo,
		slotRepo:       slotRepo,
		inventoryRepo:  inventoryRepo,
		idempotencyTTL: shared.DefaultIdempotencyConfig().TTL,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *WorkflowService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetIdempotencyStore enables replay detection for stage-advancing calls
func (s *WorkflowService) SetIdempotencyStore(store shared.IdempotencyStore) {
	s.idempotency = store
}

// SetIdempotencyTTL overrides how long processed keys are remembered
func (s *WorkflowService) SetIdempotencyTTL(ttl time.Duration) {
	if ttl > 0 {
		s.idempotencyTTL = ttl
	}
}

// EnableWarehouseSlotCheck turns on the warehouse-wide occupied-slot check
// at putaway commit
func (s *WorkflowService) EnableWarehouseSlotCheck() {
	s.warehouseSlotCheck = true
}

// ==================== Sessions ====================

// CreateSession starts a fresh receiving session
func (s *WorkflowService) CreateSession(tenantID, actorID uuid.UUID) uuid.UUID {
	session := s.sessions.Create(tenantID, actorID)
	s.logger.Info("receiving session created",
		zap.String("session_id", session.ID.String()),
		zap.String("tenant_id", tenantID.String()))
	return session.ID
}

// GetState returns the observable state of one session
func (s *WorkflowService) GetState(sessionID uuid.UUID) (*WorkflowStateResponse, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return s.stateOf(session), nil
}

// Reset returns a session to a fresh arrival-pending machine.
// Durable rows from the finished operation are untouched.
func (s *WorkflowService) Reset(sessionID uuid.UUID) error {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if err := session.BeginOperation(); err != nil {
		return err
	}
	defer session.EndOperation()

	session.Workflow.Reset()
	s.logger.Info("receiving session reset", zap.String("session_id", sessionID.String()))
	return nil
}

// CloseSession drops a session from the manager
func (s *WorkflowService) CloseSession(sessionID uuid.UUID) {
	s.sessions.Remove(sessionID)
}

func (s *WorkflowService) stateOf(session *Session) *WorkflowStateResponse {
	w := session.Workflow

	state := &WorkflowStateResponse{
		SessionID:      session.ID,
		Stage:          w.Stage().String(),
		CanAdvance:     w.CanAdvance(),
		Items:          make([]ItemResponse, 0, w.ItemCount()),
		QualityDrafts:  make([]QualityDraftResponse, 0, w.ItemCount()),
		SupervisorName: w.SupervisorName(),
		Complete:       w.IsComplete(),
	}

	if arrival := w.Arrival(); arrival != nil {
		resp := ToArrivalResponse(arrival)
		state.Arrival = &resp
	}

	for _, item := range w.Items() {
		item := item
		state.Items = append(state.Items, ToItemResponse(&item))
		if draft, ok := w.QualityDraftFor(item.ID); ok {
			state.QualityDrafts = append(state.QualityDrafts, QualityDraftResponse{
				ItemID:         item.ID,
				Status:         draft.Status.String(),
				DamageImageRef: draft.DamageImageRef,
			})
		}
	}

	if w.Stage() == receiving.StagePutaway {
		state.Units = s.unitSlots(w)
	}

	return state
}

func (s *WorkflowService) unitSlots(w *receiving.ReceivingWorkflow) []UnitSlotResponse {
	keys, err := w.UnitKeys()
	if err != nil {
		return nil
	}

	units := make([]UnitSlotResponse, 0, len(keys))
	for _, key := range keys {
		unit := UnitSlotResponse{
			UnitKey: key.String(),
			Ordinal: key.Ordinal,
		}
		if item := w.FindItem(key.TruckItemID); item != nil {
			unit.Description = item.Description
		}
		if coordinate, ok := w.SlotDraftFor(key); ok {
			unit.Aisle = coordinate.Aisle
			unit.Bay = coordinate.Bay
			unit.Level = coordinate.Level
			unit.Position = coordinate.Position
			unit.Complete = coordinate.IsComplete()
		}
		units = append(units, unit)
	}
	return units
}

// ==================== Idempotency ====================

func (s *WorkflowService) idemKey(op string, sessionID uuid.UUID, key string) string {
	return fmt.Sprintf("receiving:%s:%s:%s", op, sessionID, key)
}

// replayed reports whether a stage-advancing call with this key already
// succeeded. Store failures are logged and treated as not-replayed so a
// degraded cache never blocks the floor.
func (s *WorkflowService) replayed(ctx context.Context, op string, sessionID uuid.UUID, key string) bool {
	if key == "" || s.idempotency == nil {
		return false
	}
	seen, err := s.idempotency.IsProcessed(ctx, s.idemKey(op, sessionID, key))
	if err != nil {
		s.logger.Warn("idempotency lookup failed",
			zap.String("operation", op),
			zap.Error(err))
		return false
	}
	return seen
}

func (s *WorkflowService) markProcessed(ctx context.Context, op string, sessionID uuid.UUID, key string) {
	if key == "" || s.idempotency == nil {
		return
	}
	if _, err := s.idempotency.MarkProcessed(ctx, s.idemKey(op, sessionID, key), s.idempotencyTTL); err != nil {
		s.logger.Warn("idempotency mark failed",
			zap.String("operation", op),
			zap.Error(err))
	}
}

// ==================== Stage 1: Truck Arrival ====================

// RegisterArrival validates the arrival form, persists the arrival and
// advances the session to Unloading. A replayed idempotency key returns
// the already-registered arrival without a second row.
func (s *WorkflowService) RegisterArrival(ctx context.Context, sessionID uuid.UUID, req RegisterArrivalRequest, idempotencyKey string) (*ArrivalResponse, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.BeginOperation(); err != nil {
		return nil, err
	}
	defer session.EndOperation()

	if s.replayed(ctx, "register_arrival", sessionID, idempotencyKey) {
		if arrival := session.Workflow.Arrival(); arrival != nil {
			resp := ToArrivalResponse(arrival)
			return &resp, nil
		}
	}

	arrival, err := session.Workflow.PrepareArrival(req.ToDraft())
	if err != nil {
		return nil, err
	}

	if err := s.arrivalRepo.Save(ctx, arrival); err != nil {
		return nil, newPersistenceError("register arrival", err)
	}

	if err := session.Workflow.ArrivalRegistered(arrival); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, arrival.GetDomainEvents())
	arrival.ClearDomainEvents()
	s.markProcessed(ctx, "register_arrival", sessionID, idempotencyKey)

	s.logger.Info("truck arrival registered",
		zap.String("session_id", sessionID.String()),
		zap.String("arrival_id", arrival.ID.String()),
		zap.String("vehicle_registration", arrival.VehicleRegistration))

	resp := ToArrivalResponse(arrival)
	return &resp, nil
}

// ListArrivals returns the registered arrivals for a warehouse, newest first
func (s *WorkflowService) ListArrivals(ctx context.Context, tenantID, warehouseID uuid.UUID, filter shared.Filter) ([]ArrivalResponse, error) {
	arrivals, err := s.arrivalRepo.FindByWarehouse(ctx, tenantID, warehouseID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ArrivalResponse, 0, len(arrivals))
	for idx := range arrivals {
		responses = append(responses, ToArrivalResponse(&arrivals[idx]))
	}
	return responses, nil
}

// ==================== Stage 2: Unloading ====================

// AddItem logs one manually entered unloading line
func (s *WorkflowService) AddItem(ctx context.Context, sessionID uuid.UUID, req AddItemRequest) (*ItemResponse, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.BeginOperation(); err != nil {
		return nil, err
	}
	defer session.EndOperation()

	item, err := session.Workflow.PrepareItem(req.ToDraft())
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, newPersistenceError("add item", err)
	}

	if err := session.Workflow.ItemLogged(item); err != nil {
		return nil, err
	}

	resp := ToItemResponse(item)
	return &resp, nil
}

// BulkAddItems logs a batch of normalized upload rows in order.
// On a failure partway through, rows already inserted stay in the
// working set and the returned BulkIngestError names the failing row.
func (s *WorkflowService) BulkAddItems(ctx context.Context, sessionID uuid.UUID, drafts []receiving.ItemDraft) (int, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return 0, err
	}
	if err := session.BeginOperation(); err != nil {
		return 0, err
	}
	defer session.EndOperation()

	inserted := 0
	for row, draft := range drafts {
		item, err := session.Workflow.PrepareItem(draft)
		if err != nil {
			return inserted, &BulkIngestError{Inserted: inserted, FailedRow: row, Err: err}
		}
		if err := s.itemRepo.Save(ctx, item); err != nil {
			return inserted, &BulkIngestError{Inserted: inserted, FailedRow: row, Err: newPersistenceError("bulk add items", err)}
		}
		if err := session.Workflow.ItemLogged(item); err != nil {
			return inserted, &BulkIngestError{Inserted: inserted, FailedRow: row, Err: err}
		}
		inserted++
	}

	s.logger.Info("bulk item upload ingested",
		zap.String("session_id", sessionID.String()),
		zap.Int("inserted", inserted))
	return inserted, nil
}

// RemoveItem deletes one unloading line. Only legal during Unloading.
func (s *WorkflowService) RemoveItem(ctx context.Context, sessionID, itemID uuid.UUID) error {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if err := session.BeginOperation(); err != nil {
		return err
	}
	defer session.EndOperation()

	if err := session.Workflow.ItemRemovable(itemID); err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, itemID); err != nil {
		return newPersistenceError("remove item", err)
	}

	return session.Workflow.ItemRemoved(itemID)
}

// AdvanceToQualityCheck closes the unloading stage
func (s *WorkflowService) AdvanceToQualityCheck(ctx context.Context, sessionID uuid.UUID, idempotencyKey string) error {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if err := session.BeginOperation(); err != nil {
		return err
	}
	defer session.EndOperation()

	if s.replayed(ctx, "advance_quality_check", sessionID, idempotencyKey) {
		return nil
	}

	if err := session.Workflow.AdvanceToQualityCheck(); err != nil {
		return err
	}

	s.markProcessed(ctx, "advance_quality_check", sessionID, idempotencyKey)
	return nil
}

// ==================== Stage 3: Quality Check ====================

// SetQualityStatus records one in-memory verdict
func (s *WorkflowService) SetQualityStatus(ctx context.Context, sessionID, itemID uuid.UUID, req SetQualityStatusRequest) error {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if err := session.BeginOperation(); err != nil {
		return err
	}
	defer session.EndOperation()

	return session.Workflow.SetQualityStatus(itemID, receiving.QualityStatus(req.Status), req.DamageImageRef)
}

// AttestSupervisor records the supervisor attestation
func (s *WorkflowService) AttestSupervisor(ctx context.Context, sessionID uuid.UUID, req AttestSupervisorRequest) error {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if err := session.BeginOperation(); err != nil {
		return err
	}
	defer session.EndOperation()

	return session.Workflow.AttestSupervisor(req.SupervisorName)
}

// FinishQualityCheck finalizes the quality-check stage. For each truck
// item, in input order, it creates the terminal inventory row and the
// quality verdict row. A failure partway returns QualityCheckCommitError
// and keeps the session in QualityCheck; a retry resumes with the items
// that have not committed yet.
func (s *WorkflowService) FinishQualityCheck(ctx context.Context, sessionID uuid.UUID, idempotencyKey string) error {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if err := session.BeginOperation(); err != nil {
		return err
	}
	defer session.EndOperation()

	if s.replayed(ctx, "finish_quality_check", sessionID, idempotencyKey) {
		return nil
	}

	w := session.Workflow
	committed := w.CommittedQualityCount()
	for _, item := range w.PendingQualityItems() {
		item := item
		record, err := w.PrepareQualityRecord(item.ID)
		if err != nil {
			return err
		}

		draft, _ := w.QualityDraftFor(item.ID)
		invItem, err := inventory.NewInventoryItem(
			w.TenantID(),
			item.ID,
			item.Description,
			item.Quantity,
			item.Condition,
			draft.Status.String(),
			item.ArrivalID,
		)
		if err != nil {
			return err
		}
		invItem.SetCreatedBy(w.ActorID())

		if err := s.inventoryRepo.Save(ctx, invItem); err != nil {
			return &QualityCheckCommitError{Committed: committed, FailedItemID: item.ID, Err: newPersistenceError("create inventory item", err)}
		}
		if err := s.qualityRepo.Save(ctx, record); err != nil {
			return &QualityCheckCommitError{Committed: committed, FailedItemID: item.ID, Err: newPersistenceError("save quality record", err)}
		}

		w.QualityCommitRecorded(item.ID)
		committed++
	}

	if err := w.FinishQualityCheck(); err != nil {
		return err
	}

	s.publishEvents(ctx, w.GetDomainEvents())
	w.ClearDomainEvents()
	s.markProcessed(ctx, "finish_quality_check", sessionID, idempotencyKey)

	s.logger.Info("quality check completed",
		zap.String("session_id", sessionID.String()),
		zap.Int("items", committed),
		zap.String("supervisor", w.SupervisorName()))
	return nil
}

// ==================== Stage 4: Putaway ====================

// AssignSlot pins one physical unit to a coordinate draft
func (s *WorkflowService) AssignSlot(ctx context.Context, sessionID uuid.UUID, req AssignSlotRequest) error {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if err := session.BeginOperation(); err != nil {
		return err
	}
	defer session.EndOperation()

	key, err := receiving.ParseOrdinalKey(req.UnitKey)
	if err != nil {
		return err
	}
	return session.Workflow.AssignSlot(key, req.Coordinate())
}

// CommitPutaway validates the whole slot batch and persists it in one
// transaction. Validation failure writes nothing. Success completes the
// receiving operation.
func (s *WorkflowService) CommitPutaway(ctx context.Context, sessionID uuid.UUID, idempotencyKey string) error {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return err
	}
	if err := session.BeginOperation(); err != nil {
		return err
	}
	defer session.EndOperation()

	if s.replayed(ctx, "commit_putaway", sessionID, idempotencyKey) {
		return nil
	}

	w := session.Workflow
	assignments, err := w.PreparePutaway()
	if err != nil {
		return err
	}

	if s.warehouseSlotCheck {
		if err := s.rejectOccupied(ctx, w, assignments); err != nil {
			return err
		}
	}

	slots := make([]receiving.PutawaySlot, 0, len(assignments))
	for _, assignment := range assignments {
		slot, err := receiving.NewPutawaySlot(assignment.Key, assignment.Coordinate)
		if err != nil {
			return err
		}
		slots = append(slots, *slot)
	}

	if err := s.slotRepo.SaveBatch(ctx, slots); err != nil {
		return newPersistenceError("commit putaway", err)
	}

	if err := w.PutawayCommitted(); err != nil {
		return err
	}

	s.publishEvents(ctx, w.GetDomainEvents())
	w.ClearDomainEvents()
	s.markProcessed(ctx, "commit_putaway", sessionID, idempotencyKey)

	s.logger.Info("putaway committed",
		zap.String("session_id", sessionID.String()),
		zap.Int("units", len(slots)))
	return nil
}

func (s *WorkflowService) rejectOccupied(ctx context.Context, w *receiving.ReceivingWorkflow, assignments []receiving.SlotAssignment) error {
	arrival := w.Arrival()
	if arrival == nil {
		return shared.ErrInvalidState
	}

	occupied, err := s.slotRepo.OccupiedCoordinates(ctx, arrival.WarehouseID)
	if err != nil {
		return newPersistenceError("warehouse slot check", err)
	}

	taken := make(map[receiving.SlotCoordinate]bool, len(occupied))
	for _, coordinate := range occupied {
		taken[coordinate] = true
	}
	for _, assignment := range assignments {
		if taken[assignment.Coordinate] {
			return shared.NewDomainError("SLOT_OCCUPIED", fmt.Sprintf("Slot %s is already occupied in this warehouse", assignment.Coordinate))
		}
	}
	return nil
}

// ==================== Labels ====================

// BuildLabel assembles the label payload for one physical unit.
// Available from the putaway stage on, so labels can be printed while
// shelving and reprinted after completion.
func (s *WorkflowService) BuildLabel(sessionID uuid.UUID, unitKey string) (*LabelData, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	w := session.Workflow
	if w.Stage() != receiving.StagePutaway && !w.IsComplete() {
		return nil, shared.NewDomainError("INVALID_STAGE", "Labels are available from the putaway stage on")
	}

	key, err := receiving.ParseOrdinalKey(unitKey)
	if err != nil {
		return nil, err
	}

	item := w.FindItem(key.TruckItemID)
	if item == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Truck item not found in working set")
	}
	if key.Ordinal >= item.Quantity {
		return nil, shared.NewDomainError("INVALID_ORDINAL_KEY", fmt.Sprintf("Ordinal %d out of range for item with quantity %d", key.Ordinal, item.Quantity))
	}

	label := &LabelData{
		CompanyName: CompanyName,
		PrintedAt:   time.Now(),
		Description: item.Description,
		UnitKey:     key.String(),
		Barcode:     item.ID.String(),
	}
	if arrival := w.Arrival(); arrival != nil {
		label.CustomerName = arrival.CustomerName
	}
	if coordinate, ok := w.SlotDraftFor(key); ok {
		label.Aisle = coordinate.Aisle
		label.Bay = coordinate.Bay
		label.Level = coordinate.Level
		label.Position = coordinate.Position
	}
	return label, nil
}

// ==================== Events ====================

func (s *WorkflowService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events",
			zap.Int("count", len(events)),
			zap.Error(err))
	}
}
