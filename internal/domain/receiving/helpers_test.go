package receiving

import (
	"testing"
	"time"

	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// assertDomainErrorCode fails unless err is a DomainError with the given code
func assertDomainErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, code, domainErr.Code)
}

func validArrivalDraft() ArrivalDraft {
	return ArrivalDraft{
		VehicleRegistration: "AB12CDE",
		CustomerName:        "Acme",
		DriverName:          "J. Smith",
		VehicleSize:         VehicleSize7T5,
		LoadType:            LoadTypePalletized,
		ArrivedAt:           time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		WarehouseID:         uuid.New(),
	}
}

func createTestWorkflow(t *testing.T) *ReceivingWorkflow {
	t.Helper()
	return NewReceivingWorkflow(uuid.New(), uuid.New())
}

// advanceToUnloading registers a valid arrival and returns it
func advanceToUnloading(t *testing.T, w *ReceivingWorkflow) *TruckArrival {
	t.Helper()
	arrival, err := w.PrepareArrival(validArrivalDraft())
	require.NoError(t, err)
	require.NoError(t, w.ArrivalRegistered(arrival))
	return arrival
}

// logItem adds one item to a workflow in the Unloading stage
func logItem(t *testing.T, w *ReceivingWorkflow, description string, quantity int) *TruckItem {
	t.Helper()
	item, err := w.PrepareItem(ItemDraft{Description: description, Quantity: quantity, Condition: ConditionGood})
	require.NoError(t, err)
	require.NoError(t, w.ItemLogged(item))
	return item
}

// finishQuality drives a workflow in QualityCheck through to Putaway,
// marking every item OK
func finishQuality(t *testing.T, w *ReceivingWorkflow, supervisor string) {
	t.Helper()
	for _, item := range w.Items() {
		require.NoError(t, w.SetQualityStatus(item.ID, QualityStatusOK, ""))
	}
	require.NoError(t, w.AttestSupervisor(supervisor))
	for _, item := range w.PendingQualityItems() {
		_, err := w.PrepareQualityRecord(item.ID)
		require.NoError(t, err)
		w.QualityCommitRecorded(item.ID)
	}
	require.NoError(t, w.FinishQualityCheck())
}
