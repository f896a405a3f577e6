package receiving

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceivingWorkflow_StartsAtArrivalPending(t *testing.T) {
	w := createTestWorkflow(t)

	assert.Equal(t, StageArrivalPending, w.Stage())
	assert.Nil(t, w.Arrival())
	assert.Zero(t, w.ItemCount())
	assert.False(t, w.CanAdvance())
	assert.False(t, w.IsComplete())
}

func TestReceivingWorkflow_RegisterArrival(t *testing.T) {
	w := createTestWorkflow(t)

	arrival, err := w.PrepareArrival(validArrivalDraft())
	require.NoError(t, err)
	// Prepare alone does not advance the machine
	assert.Equal(t, StageArrivalPending, w.Stage())

	require.NoError(t, w.ArrivalRegistered(arrival))
	assert.Equal(t, StageUnloading, w.Stage())
	assert.Equal(t, arrival, w.Arrival())
	assert.Equal(t, w.TenantID(), arrival.TenantID)
}

func TestReceivingWorkflow_RegisterArrival_InvalidDraftKeepsStage(t *testing.T) {
	w := createTestWorkflow(t)
	draft := validArrivalDraft()
	draft.CustomerName = ""

	_, err := w.PrepareArrival(draft)
	assertDomainErrorCode(t, err, "INCOMPLETE_ARRIVAL_FORM")
	assert.Equal(t, StageArrivalPending, w.Stage())
}

func TestReceivingWorkflow_RegisterArrival_WrongStage(t *testing.T) {
	w := createTestWorkflow(t)
	advanceToUnloading(t, w)

	_, err := w.PrepareArrival(validArrivalDraft())
	assertDomainErrorCode(t, err, "INVALID_STAGE")
}

func TestReceivingWorkflow_AddItems(t *testing.T) {
	w := createTestWorkflow(t)
	arrival := advanceToUnloading(t, w)

	item := logItem(t, w, "PALLETS", 3)
	assert.Equal(t, arrival.ID, item.ArrivalID)
	assert.Equal(t, 1, w.ItemCount())

	logItem(t, w, "CARTONS", 2)
	assert.Equal(t, 2, w.ItemCount())
	assert.True(t, w.CanAdvance())
}

func TestReceivingWorkflow_AddItem_WrongStage(t *testing.T) {
	w := createTestWorkflow(t)

	_, err := w.PrepareItem(ItemDraft{Description: "PALLETS", Quantity: 1})
	assertDomainErrorCode(t, err, "INVALID_STAGE")
}

func TestReceivingWorkflow_ItemsReturnsCopy(t *testing.T) {
	w := createTestWorkflow(t)
	advanceToUnloading(t, w)
	logItem(t, w, "PALLETS", 3)

	items := w.Items()
	items[0].Quantity = 99

	assert.Equal(t, 3, w.Items()[0].Quantity)
}

func TestReceivingWorkflow_RemoveItem(t *testing.T) {
	w := createTestWorkflow(t)
	advanceToUnloading(t, w)
	keep := logItem(t, w, "PALLETS", 3)
	drop := logItem(t, w, "CARTONS", 2)

	require.NoError(t, w.ItemRemovable(drop.ID))
	require.NoError(t, w.ItemRemoved(drop.ID))

	assert.Equal(t, 1, w.ItemCount())
	assert.Nil(t, w.FindItem(drop.ID))
	assert.NotNil(t, w.FindItem(keep.ID))
}

func TestReceivingWorkflow_RemoveItem_NotFound(t *testing.T) {
	w := createTestWorkflow(t)
	advanceToUnloading(t, w)
	logItem(t, w, "PALLETS", 1)

	assertDomainErrorCode(t, w.ItemRemoved(uuid.New()), "ITEM_NOT_FOUND")
}

func TestReceivingWorkflow_RemoveItem_BlockedAfterUnloading(t *testing.T) {
	w := createTestWorkflow(t)
	advanceToUnloading(t, w)
	item := logItem(t, w, "PALLETS", 1)
	require.NoError(t, w.AdvanceToQualityCheck())

	assertDomainErrorCode(t, w.ItemRemovable(item.ID), "ITEM_NOT_REMOVABLE")
	assertDomainErrorCode(t, w.ItemRemoved(item.ID), "ITEM_NOT_REMOVABLE")
	assert.Equal(t, 1, w.ItemCount())
}

func TestReceivingWorkflow_AdvanceToQualityCheck_RequiresItems(t *testing.T) {
	w := createTestWorkflow(t)
	advanceToUnloading(t, w)

	assertDomainErrorCode(t, w.AdvanceToQualityCheck(), "NO_ITEMS")
	assert.Equal(t, StageUnloading, w.Stage())
}

func TestReceivingWorkflow_QualityCheck_GuardsFinish(t *testing.T) {
	w := createTestWorkflow(t)
	advanceToUnloading(t, w)
	a := logItem(t, w, "PALLETS", 3)
	b := logItem(t, w, "CARTONS", 2)
	require.NoError(t, w.AdvanceToQualityCheck())

	// No verdicts, no supervisor
	assert.False(t, w.CanFinishQualityCheck())
	assertDomainErrorCode(t, w.FinishQualityCheck(), "QUALITY_CHECK_INCOMPLETE")

	// Verdicts without supervisor
	require.NoError(t, w.SetQualityStatus(a.ID, QualityStatusOK, ""))
	require.NoError(t, w.SetQualityStatus(b.ID, QualityStatusDamaged, "damage/x.jpg"))
	assert.False(t, w.CanFinishQualityCheck())
	_, err := w.PrepareQualityRecord(a.ID)
	assertDomainErrorCode(t, err, "QUALITY_CHECK_INCOMPLETE")

	// Supervisor without full verdicts
	w2 := createTestWorkflow(t)
	advanceToUnloading(t, w2)
	c := logItem(t, w2, "PALLETS", 1)
	logItem(t, w2, "CARTONS", 1)
	require.NoError(t, w2.AdvanceToQualityCheck())
	require.NoError(t, w2.SetQualityStatus(c.ID, QualityStatusOK, ""))
	require.NoError(t, w2.AttestSupervisor("R. Lee"))
	assert.False(t, w2.CanFinishQualityCheck())

	// Both present
	require.NoError(t, w.AttestSupervisor("R. Lee"))
	assert.True(t, w.CanFinishQualityCheck())
}

func TestReceivingWorkflow_SetQualityStatus_Validation(t *testing.T) {
	w := createTestWorkflow(t)
	advanceToUnloading(t, w)
	item := logItem(t, w, "PALLETS", 1)
	require.NoError(t, w.AdvanceToQualityCheck())

	assertDomainErrorCode(t, w.SetQualityStatus(uuid.New(), QualityStatusOK, ""), "ITEM_NOT_FOUND")
	assertDomainErrorCode(t, w.SetQualityStatus(item.ID, "BROKEN", ""), "INVALID_QUALITY_STATUS")
	assertDomainErrorCode(t, w.AttestSupervisor(""), "MISSING_SUPERVISOR")
}

func TestReceivingWorkflow_SetQualityStatus_KeepsDamageRefOnRevisit(t *testing.T) {
	w := createTestWorkflow(t)
	advanceToUnloading(t, w)
	item := logItem(t, w, "PALLETS", 1)
	require.NoError(t, w.AdvanceToQualityCheck())

	require.NoError(t, w.SetQualityStatus(item.ID, QualityStatusDamaged, "damage/x.jpg"))
	require.NoError(t, w.SetQualityStatus(item.ID, QualityStatusOK, ""))

	draft, ok := w.QualityDraftFor(item.ID)
	require.True(t, ok)
	assert.Equal(t, QualityStatusOK, draft.Status)
	assert.Equal(t, "damage/x.jpg", draft.DamageImageRef)
}

func TestReceivingWorkflow_FinishQualityCheck_ResumesAfterPartialCommit(t *testing.T) {
	w := createTestWorkflow(t)
	advanceToUnloading(t, w)
	a := logItem(t, w, "PALLETS", 3)
	b := logItem(t, w, "CARTONS", 2)
	c := logItem(t, w, "DRUMS", 1)
	require.NoError(t, w.AdvanceToQualityCheck())
	for _, item := range []*TruckItem{a, b, c} {
		require.NoError(t, w.SetQualityStatus(item.ID, QualityStatusOK, ""))
	}
	require.NoError(t, w.AttestSupervisor("R. Lee"))

	// First attempt commits only item a before a persistence failure
	record, err := w.PrepareQualityRecord(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, record.TruckItemID)
	w.QualityCommitRecorded(a.ID)

	// Machine stays in QualityCheck; the resume list skips committed rows
	assertDomainErrorCode(t, w.FinishQualityCheck(), "QUALITY_CHECK_INCOMPLETE")
	assert.Equal(t, StageQualityCheck, w.Stage())
	pending := w.PendingQualityItems()
	require.Len(t, pending, 2)
	assert.Equal(t, b.ID, pending[0].ID)
	assert.Equal(t, c.ID, pending[1].ID)
	assert.Equal(t, 1, w.CommittedQualityCount())

	// Retry finishes the remainder and advances
	for _, item := range pending {
		_, err := w.PrepareQualityRecord(item.ID)
		require.NoError(t, err)
		w.QualityCommitRecorded(item.ID)
	}
	require.NoError(t, w.FinishQualityCheck())
	assert.Equal(t, StagePutaway, w.Stage())

	events := w.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeQualityCheckCompleted, events[0].EventType())
}

func TestReceivingWorkflow_UnitKeys(t *testing.T) {
	w := createTestWorkflow(t)
	advanceToUnloading(t, w)
	a := logItem(t, w, "PALLETS", 3)
	b := logItem(t, w, "CARTONS", 2)
	require.NoError(t, w.AdvanceToQualityCheck())
	finishQuality(t, w, "R. Lee")

	keys, err := w.UnitKeys()
	require.NoError(t, err)
	require.Len(t, keys, 5)
	// Item order, then ordinal order within each item
	assert.Equal(t, OrdinalKeyAt(a.ID, 0), keys[0])
	assert.Equal(t, OrdinalKeyAt(a.ID, 2), keys[2])
	assert.Equal(t, OrdinalKeyAt(b.ID, 0), keys[3])
	assert.Equal(t, OrdinalKeyAt(b.ID, 1), keys[4])
}

func TestReceivingWorkflow_AssignSlot_Validation(t *testing.T) {
	w := createTestWorkflow(t)
	advanceToUnloading(t, w)
	item := logItem(t, w, "PALLETS", 2)
	require.NoError(t, w.AdvanceToQualityCheck())
	finishQuality(t, w, "R. Lee")

	assertDomainErrorCode(t, w.AssignSlot(OrdinalKeyAt(uuid.New(), 0), SlotCoordinate{"A", "1", "1", "1"}), "ITEM_NOT_FOUND")
	assertDomainErrorCode(t, w.AssignSlot(OrdinalKeyAt(item.ID, 2), SlotCoordinate{"A", "1", "1", "1"}), "INVALID_ORDINAL_KEY")

	// Partial coordinates are fine until commit
	require.NoError(t, w.AssignSlot(OrdinalKeyAt(item.ID, 0), SlotCoordinate{Aisle: "A"}))
	draft, ok := w.SlotDraftFor(OrdinalKeyAt(item.ID, 0))
	require.True(t, ok)
	assert.Equal(t, "A", draft.Aisle)
}

func TestReceivingWorkflow_PreparePutaway_IncompleteAssignment(t *testing.T) {
	w := createTestWorkflow(t)
	advanceToUnloading(t, w)
	item := logItem(t, w, "PALLETS", 2)
	require.NoError(t, w.AdvanceToQualityCheck())
	finishQuality(t, w, "R. Lee")

	require.NoError(t, w.AssignSlot(OrdinalKeyAt(item.ID, 0), SlotCoordinate{"A", "1", "1", "1"}))
	// Second unit left partially filled
	require.NoError(t, w.AssignSlot(OrdinalKeyAt(item.ID, 1), SlotCoordinate{Aisle: "A", Bay: "1"}))

	_, err := w.PreparePutaway()
	assertDomainErrorCode(t, err, "INCOMPLETE_SLOT_ASSIGNMENT")
	assert.False(t, w.CanAdvance())
}

func TestReceivingWorkflow_PreparePutaway_DuplicateSlot(t *testing.T) {
	w := createTestWorkflow(t)
	advanceToUnloading(t, w)
	item := logItem(t, w, "PALLETS", 3)
	require.NoError(t, w.AdvanceToQualityCheck())
	finishQuality(t, w, "R. Lee")

	collision := SlotCoordinate{"A", "1", "1", "1"}
	require.NoError(t, w.AssignSlot(OrdinalKeyAt(item.ID, 0), collision))
	require.NoError(t, w.AssignSlot(OrdinalKeyAt(item.ID, 1), collision))
	require.NoError(t, w.AssignSlot(OrdinalKeyAt(item.ID, 2), SlotCoordinate{"B", "1", "1", "1"}))

	_, err := w.PreparePutaway()
	var dup *DuplicateSlotError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, collision, dup.Coordinate)
	assert.Equal(t, StagePutaway, w.Stage())

	// Fixing the collision unblocks the commit
	require.NoError(t, w.AssignSlot(OrdinalKeyAt(item.ID, 1), SlotCoordinate{"A", "1", "1", "2"}))
	assignments, err := w.PreparePutaway()
	require.NoError(t, err)
	assert.Len(t, assignments, 3)
	assert.True(t, w.CanAdvance())
}

func TestReceivingWorkflow_FullRun(t *testing.T) {
	w := createTestWorkflow(t)

	// Stage 1: arrival
	arrival, err := w.PrepareArrival(validArrivalDraft())
	require.NoError(t, err)
	require.NoError(t, w.ArrivalRegistered(arrival))

	// Stage 2: unloading
	item := logItem(t, w, "PALLETS", 3)
	require.NoError(t, w.AdvanceToQualityCheck())

	// Stage 3: quality check
	require.NoError(t, w.SetQualityStatus(item.ID, QualityStatusOK, ""))
	require.NoError(t, w.AttestSupervisor("R. Lee"))
	for _, pending := range w.PendingQualityItems() {
		_, err := w.PrepareQualityRecord(pending.ID)
		require.NoError(t, err)
		w.QualityCommitRecorded(pending.ID)
	}
	require.NoError(t, w.FinishQualityCheck())

	// Stage 4: putaway, one distinct slot per physical unit
	keys, err := w.UnitKeys()
	require.NoError(t, err)
	require.Len(t, keys, 3)
	coordinates := []SlotCoordinate{
		{"A", "1", "1", "1"},
		{"A", "1", "1", "2"},
		{"A", "1", "2", "1"},
	}
	for idx, key := range keys {
		require.NoError(t, w.AssignSlot(key, coordinates[idx]))
	}
	assignments, err := w.PreparePutaway()
	require.NoError(t, err)
	require.Len(t, assignments, 3)
	require.NoError(t, w.PutawayCommitted())

	assert.True(t, w.IsComplete())
	assert.Equal(t, StageComplete, w.Stage())
	assert.False(t, w.CanAdvance())

	events := w.GetDomainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, EventTypeQualityCheckCompleted, events[0].EventType())
	assert.Equal(t, EventTypePutawayCommitted, events[1].EventType())
}

func TestReceivingWorkflow_Reset(t *testing.T) {
	w := createTestWorkflow(t)
	advanceToUnloading(t, w)
	logItem(t, w, "PALLETS", 2)

	w.Reset()

	assert.Equal(t, StageArrivalPending, w.Stage())
	assert.Nil(t, w.Arrival())
	assert.Zero(t, w.ItemCount())
	assert.Empty(t, w.GetDomainEvents())

	// Machine is usable again after reset
	advanceToUnloading(t, w)
	assert.Equal(t, StageUnloading, w.Stage())
}
