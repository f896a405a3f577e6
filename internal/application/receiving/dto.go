package receiving

import (
	"time"

	"github.com/omnideploy/backend/internal/domain/receiving"
	"github.com/google/uuid"
)

// ==================== Requests ====================

// RegisterArrivalRequest represents the stage-1 arrival form
type RegisterArrivalRequest struct {
	VehicleRegistration string    `json:"vehicle_registration" binding:"required,min=1,max=20"`
	CustomerName        string    `json:"customer_name" binding:"required,min=1,max=200"`
	DriverName          string    `json:"driver_name" binding:"required,min=1,max=200"`
	VehicleSize         string    `json:"vehicle_size" binding:"required"`
	LoadType            string    `json:"load_type" binding:"required"`
	ArrivedAt           time.Time `json:"arrived_at" binding:"required"`
	WarehouseID         uuid.UUID `json:"warehouse_id" binding:"required"`
}

// ToDraft converts the request to a domain draft
func (r RegisterArrivalRequest) ToDraft() receiving.ArrivalDraft {
	return receiving.ArrivalDraft{
		VehicleRegistration: r.VehicleRegistration,
		CustomerName:        r.CustomerName,
		DriverName:          r.DriverName,
		VehicleSize:         receiving.VehicleSize(r.VehicleSize),
		LoadType:            receiving.LoadType(r.LoadType),
		ArrivedAt:           r.ArrivedAt,
		WarehouseID:         r.WarehouseID,
	}
}

// AddItemRequest represents one manually entered unloading line
type AddItemRequest struct {
	Description string `json:"description" binding:"required,min=1,max=500"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
	Condition   string `json:"condition" binding:"max=50"`
}

// ToDraft converts the request to a domain draft
func (r AddItemRequest) ToDraft() receiving.ItemDraft {
	return receiving.ItemDraft{
		Description: r.Description,
		Quantity:    r.Quantity,
		Condition:   r.Condition,
	}
}

// SetQualityStatusRequest represents one quality verdict
type SetQualityStatusRequest struct {
	Status         string `json:"status" binding:"required,oneof=OK DAMAGED"`
	DamageImageRef string `json:"damage_image_ref" binding:"max=500"`
}

// AttestSupervisorRequest carries the supervisor attestation
type AttestSupervisorRequest struct {
	SupervisorName string `json:"supervisor_name" binding:"required,min=1,max=200"`
}

// AssignSlotRequest pins one physical unit to a storage coordinate.
// UnitKey is the "<truck-item-id>-<ordinal>" key produced by expansion.
type AssignSlotRequest struct {
	UnitKey  string `json:"unit_key" binding:"required"`
	Aisle    string `json:"aisle" binding:"max=20"`
	Bay      string `json:"bay" binding:"max=20"`
	Level    string `json:"level" binding:"max=20"`
	Position string `json:"position" binding:"max=20"`
}

// Coordinate converts the request fields to a domain coordinate
func (r AssignSlotRequest) Coordinate() receiving.SlotCoordinate {
	return receiving.SlotCoordinate{
		Aisle:    r.Aisle,
		Bay:      r.Bay,
		Level:    r.Level,
		Position: r.Position,
	}
}

// ==================== Responses ====================

// ArrivalResponse represents a registered truck arrival
type ArrivalResponse struct {
	ID                  uuid.UUID `json:"id"`
	VehicleRegistration string    `json:"vehicle_registration"`
	CustomerName        string    `json:"customer_name"`
	DriverName          string    `json:"driver_name"`
	VehicleSize         string    `json:"vehicle_size"`
	LoadType            string    `json:"load_type"`
	ArrivedAt           time.Time `json:"arrived_at"`
	WarehouseID         uuid.UUID `json:"warehouse_id"`
	CreatedAt           time.Time `json:"created_at"`
}

// ToArrivalResponse converts a domain arrival to a response DTO
func ToArrivalResponse(arrival *receiving.TruckArrival) ArrivalResponse {
	return ArrivalResponse{
		ID:                  arrival.ID,
		VehicleRegistration: arrival.VehicleRegistration,
		CustomerName:        arrival.CustomerName,
		DriverName:          arrival.DriverName,
		VehicleSize:         arrival.VehicleSize.String(),
		LoadType:            arrival.LoadType.String(),
		ArrivedAt:           arrival.ArrivedAt,
		WarehouseID:         arrival.WarehouseID,
		CreatedAt:           arrival.CreatedAt,
	}
}

// ItemResponse represents one logged unloading line
type ItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ArrivalID   uuid.UUID `json:"arrival_id"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	Condition   string    `json:"condition"`
}

// ToItemResponse converts a domain item to a response DTO
func ToItemResponse(item *receiving.TruckItem) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		ArrivalID:   item.ArrivalID,
		Description: item.Description,
		Quantity:    item.Quantity,
		Condition:   item.Condition,
	}
}

// UnitSlotResponse represents one physical unit on the putaway form
type UnitSlotResponse struct {
	UnitKey     string `json:"unit_key"`
	Description string `json:"description"`
	Ordinal     int    `json:"ordinal"`
	Aisle       string `json:"aisle"`
	Bay         string `json:"bay"`
	Level       string `json:"level"`
	Position    string `json:"position"`
	Complete    bool   `json:"complete"`
}

// QualityDraftResponse represents one in-memory verdict
type QualityDraftResponse struct {
	ItemID         uuid.UUID `json:"item_id"`
	Status         string    `json:"status"`
	DamageImageRef string    `json:"damage_image_ref,omitempty"`
}

// WorkflowStateResponse is the full observable state of one session
type WorkflowStateResponse struct {
	SessionID      uuid.UUID              `json:"session_id"`
	Stage          string                 `json:"stage"`
	CanAdvance     bool                   `json:"can_advance"`
	Arrival        *ArrivalResponse       `json:"arrival,omitempty"`
	Items          []ItemResponse         `json:"items"`
	QualityDrafts  []QualityDraftResponse `json:"quality_drafts"`
	SupervisorName string                 `json:"supervisor_name,omitempty"`
	Units          []UnitSlotResponse     `json:"units,omitempty"`
	Complete       bool                   `json:"complete"`
}

// LabelData carries everything the putaway label renderer needs for
// one physical unit
type LabelData struct {
	CompanyName  string
	CustomerName string
	PrintedAt    time.Time
	Description  string
	UnitKey      string
	Barcode      string
	Aisle        string
	Bay          string
	Level        string
	Position     string
}
