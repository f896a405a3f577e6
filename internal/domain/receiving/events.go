package receiving

import (
	"time"

	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeTruckArrival      = "TruckArrival"
	AggregateTypeReceivingWorkflow = "ReceivingWorkflow"
)

// Event type constants
const (
	EventTypeArrivalRegistered     = "ArrivalRegistered"
	EventTypeQualityCheckCompleted = "QualityCheckCompleted"
	EventTypePutawayCommitted      = "PutawayCommitted"
)

// ArrivalRegisteredEvent is raised when a truck arrival is registered
type ArrivalRegisteredEvent struct {
	shared.BaseDomainEvent
	ArrivalID           uuid.UUID `json:"arrival_id"`
	WarehouseID         uuid.UUID `json:"warehouse_id"`
	VehicleRegistration string    `json:"vehicle_registration"`
	CustomerName        string    `json:"customer_name"`
	ArrivedAt           time.Time `json:"arrived_at"`
}

// NewArrivalRegisteredEvent creates a new ArrivalRegisteredEvent
func NewArrivalRegisteredEvent(arrival *TruckArrival) *ArrivalRegisteredEvent {
	return &ArrivalRegisteredEvent{
		BaseDomainEvent:     shared.NewBaseDomainEvent(EventTypeArrivalRegistered, AggregateTypeTruckArrival, arrival.ID, arrival.TenantID),
		ArrivalID:           arrival.ID,
		WarehouseID:         arrival.WarehouseID,
		VehicleRegistration: arrival.VehicleRegistration,
		CustomerName:        arrival.CustomerName,
		ArrivedAt:           arrival.ArrivedAt,
	}
}

// EventType returns the event type name
func (e *ArrivalRegisteredEvent) EventType() string {
	return EventTypeArrivalRegistered
}

// QualityCheckCompletedEvent is raised when the quality-check stage closes
// and the terminal inventory rows exist for every truck item
type QualityCheckCompletedEvent struct {
	shared.BaseDomainEvent
	ArrivalID      uuid.UUID `json:"arrival_id"`
	ItemCount      int       `json:"item_count"`
	SupervisorName string    `json:"supervisor_name"`
}

// NewQualityCheckCompletedEvent creates a new QualityCheckCompletedEvent
func NewQualityCheckCompletedEvent(w *ReceivingWorkflow) *QualityCheckCompletedEvent {
	return &QualityCheckCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQualityCheckCompleted, AggregateTypeReceivingWorkflow, w.ID, w.TenantID()),
		ArrivalID:       w.Arrival().ID,
		ItemCount:       w.ItemCount(),
		SupervisorName:  w.SupervisorName(),
	}
}

// EventType returns the event type name
func (e *QualityCheckCompletedEvent) EventType() string {
	return EventTypeQualityCheckCompleted
}

// PutawayCommittedEvent is raised when the putaway batch is persisted and
// the receiving operation completes
type PutawayCommittedEvent struct {
	shared.BaseDomainEvent
	ArrivalID uuid.UUID `json:"arrival_id"`
	UnitCount int       `json:"unit_count"`
}

// NewPutawayCommittedEvent creates a new PutawayCommittedEvent
func NewPutawayCommittedEvent(w *ReceivingWorkflow) *PutawayCommittedEvent {
	unitCount := 0
	for _, item := range w.Items() {
		unitCount += item.Quantity
	}
	return &PutawayCommittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePutawayCommitted, AggregateTypeReceivingWorkflow, w.ID, w.TenantID()),
		ArrivalID:       w.Arrival().ID,
		UnitCount:       unitCount,
	}
}

// EventType returns the event type name
func (e *PutawayCommittedEvent) EventType() string {
	return EventTypePutawayCommitted
}
