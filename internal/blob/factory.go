package blob

import (
	"context"
	"fmt"

	"github.com/delciomanico/Monanji/internal/config"
)

// Open constructs the store selected by BLOB_DRIVER.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch Driver(cfg.BlobDriver) {
	case DriverFilesystem:
		return NewFilesystem(cfg.UploadPath)
	case DriverS3:
		return NewS3(ctx, S3Config{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
		})
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("blob: unknown driver %q", cfg.BlobDriver)
	}
}
