package receiving

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/omnideploy/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockObjectStorageService is a mock implementation of ObjectStorageService
type MockObjectStorageService struct {
	mock.Mock
}

func (m *MockObjectStorageService) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorageService) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorageService) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorageService) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

var _ ObjectStorageService = (*MockObjectStorageService)(nil)

func TestDamageImageService_InitiateUpload(t *testing.T) {
	storage := new(MockObjectStorageService)
	service := NewDamageImageService(storage)
	itemID := uuid.New()
	expiresAt := time.Now().Add(15 * time.Minute)

	storage.On("GenerateUploadURL", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "damage/"+itemID.String()+"/") && strings.HasSuffix(key, ".jpg")
	}), "image/jpeg", 15*time.Minute).Return("https://storage/upload", expiresAt, nil)

	resp, err := service.InitiateUpload(context.Background(), InitiateUploadRequest{
		TruckItemID: itemID,
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://storage/upload", resp.UploadURL)
	assert.Equal(t, expiresAt, resp.ExpiresAt)
	assert.Contains(t, resp.StorageKey, itemID.String())
	storage.AssertExpectations(t)
}

func TestDamageImageService_InitiateUpload_RejectsContentType(t *testing.T) {
	storage := new(MockObjectStorageService)
	service := NewDamageImageService(storage)

	_, err := service.InitiateUpload(context.Background(), InitiateUploadRequest{
		TruckItemID: uuid.New(),
		ContentType: "application/x-sh",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CONTENT_TYPE", domainErr.Code)
	storage.AssertNotCalled(t, "GenerateUploadURL")
}

func TestDamageImageService_DownloadURL(t *testing.T) {
	storage := new(MockObjectStorageService)
	service := NewDamageImageService(storage)

	storage.On("ObjectExists", mock.Anything, "damage/x/y.jpg").Return(true, nil)
	storage.On("GenerateDownloadURL", mock.Anything, "damage/x/y.jpg", time.Hour).
		Return("https://storage/download", time.Now().Add(time.Hour), nil)

	url, err := service.DownloadURL(context.Background(), "damage/x/y.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://storage/download", url)
}

func TestDamageImageService_DownloadURL_Missing(t *testing.T) {
	storage := new(MockObjectStorageService)
	service := NewDamageImageService(storage)

	storage.On("ObjectExists", mock.Anything, "damage/missing.jpg").Return(false, nil)

	_, err := service.DownloadURL(context.Background(), "damage/missing.jpg")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
