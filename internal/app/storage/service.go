package storage

import (
	"context"
)

// ServiceConfig holds the configuration required to connect to the storage service.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// BackupService defines the public interface for the backup object store.
type BackupService interface {
	// Upload stores the given payload under key, returning the object location.
	Upload(ctx context.Context, key string, contentType string, payload []byte) (string, error)

	// Download fetches the payload stored under key.
	Download(ctx context.Context, key string) ([]byte, error)

	// Delete removes the object specified by the given key.
	Delete(ctx context.Context, key string) error
}

// NewBackupService is the factory function for BackupService.
// It initializes and returns a concrete implementation based on the provided configuration.
func NewBackupService(cfg ServiceConfig) (BackupService, error) {
	// Currently, only S3 compatible implementations are supported.
	return newS3Client(cfg)
}
