package receiving

import (
	"context"
	"fmt"
	"time"

	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// allowedImageTypes whitelists the content types accepted for damage
// photos. Anything else is rejected before a presigned URL is issued.
var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/heic": "heic",
}

// ObjectStorageService defines the interface for object storage operations.
// Implemented by the infrastructure layer (S3-compatible backends).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file.
	// Returns the upload URL and expiration time.
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file.
	// Returns the download URL and expiration time.
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// DamageImageServiceConfig holds configuration for the damage image service
type DamageImageServiceConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultDamageImageServiceConfig returns the default configuration
func DefaultDamageImageServiceConfig() DamageImageServiceConfig {
	return DamageImageServiceConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: time.Hour,
	}
}

// DamageImageService issues presigned URLs for quality-check damage
// photos. The browser uploads straight to object storage; only the
// storage key travels through the verdict draft.
type DamageImageService struct {
	storage ObjectStorageService
	config  DamageImageServiceConfig
}

// NewDamageImageService creates a new DamageImageService
func NewDamageImageService(storage ObjectStorageService) *DamageImageService {
	return &DamageImageService{
		storage: storage,
		config:  DefaultDamageImageServiceConfig(),
	}
}

// SetConfig sets the service configuration
func (s *DamageImageService) SetConfig(config DamageImageServiceConfig) {
	s.config = config
}

// InitiateUploadRequest asks for a presigned damage photo upload URL
type InitiateUploadRequest struct {
	TruckItemID uuid.UUID `json:"truck_item_id" binding:"required"`
	ContentType string    `json:"content_type" binding:"required"`
}

// InitiateUploadResponse carries the presigned URL and the storage key
// to record on the verdict
type InitiateUploadResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// InitiateUpload validates the content type and returns a presigned
// upload URL for one damage photo
func (s *DamageImageService) InitiateUpload(ctx context.Context, req InitiateUploadRequest) (*InitiateUploadResponse, error) {
	ext, ok := allowedImageTypes[req.ContentType]
	if !ok {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", fmt.Sprintf("Content type %q is not an accepted image type", req.ContentType))
	}
	if req.TruckItemID == uuid.Nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Truck item ID cannot be empty")
	}

	storageKey := fmt.Sprintf("damage/%s/%s.%s", req.TruckItemID, uuid.New(), ext)

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, s.config.UploadURLExpiry)
	if err != nil {
		return nil, newPersistenceError("generate upload URL", err)
	}

	return &InitiateUploadResponse{
		StorageKey: storageKey,
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// DownloadURL returns a presigned download URL for a stored damage photo
func (s *DamageImageService) DownloadURL(ctx context.Context, storageKey string) (string, error) {
	if storageKey == "" {
		return "", shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}

	exists, err := s.storage.ObjectExists(ctx, storageKey)
	if err != nil {
		return "", newPersistenceError("check damage image", err)
	}
	if !exists {
		return "", shared.ErrNotFound
	}

	url, _, err := s.storage.GenerateDownloadURL(ctx, storageKey, s.config.DownloadURLExpiry)
	if err != nil {
		return "", newPersistenceError("generate download URL", err)
	}
	return url, nil
}
