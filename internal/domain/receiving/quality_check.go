package receiving

import (
	"fmt"

	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// QualityStatus represents the quality-check verdict for one truck item
type QualityStatus string

const (
	QualityStatusOK      QualityStatus = "OK"
	QualityStatusDamaged QualityStatus = "DAMAGED"
)

// IsValid checks if the value is a known quality status
func (s QualityStatus) IsValid() bool {
	return s == QualityStatusOK || s == QualityStatusDamaged
}

// String returns the string representation of QualityStatus
func (s QualityStatus) String() string {
	return string(s)
}

// QualityDraft is the in-memory verdict for one truck item before
// the quality-check stage is finalized. Nothing is persisted until
// the whole stage commits.
type QualityDraft struct {
	Status         QualityStatus
	DamageImageRef string
}

// QualityCheckRecord is the persisted verdict, exactly one per truck item.
// The barcode is derived from the truck item id so label reprints stay
// stable across sessions.
type QualityCheckRecord struct {
	shared.BaseEntity
	TruckItemID    uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex"`
	Status         QualityStatus `gorm:"type:varchar(10);not null"`
	DamageImageRef string        `gorm:"type:varchar(500)"`
	SupervisorName string        `gorm:"type:varchar(200);not null"`
	Barcode        string        `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (QualityCheckRecord) TableName() string {
	return "quality_checks"
}

// NewQualityCheckRecord creates the persisted verdict for one truck item
func NewQualityCheckRecord(item *TruckItem, draft QualityDraft, supervisorName string) (*QualityCheckRecord, error) {
	if item == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Truck item does not exist")
	}
	if !draft.Status.IsValid() {
		return nil, shared.NewDomainError("INVALID_QUALITY_STATUS", fmt.Sprintf("Unknown quality status %q", draft.Status))
	}
	if supervisorName == "" {
		return nil, shared.NewDomainError("MISSING_SUPERVISOR", "Supervisor attestation is required")
	}

	return &QualityCheckRecord{
		BaseEntity:     shared.NewBaseEntity(),
		TruckItemID:    item.ID,
		Status:         draft.Status,
		DamageImageRef: draft.DamageImageRef,
		SupervisorName: supervisorName,
		Barcode:        item.ID.String(),
	}, nil
}
