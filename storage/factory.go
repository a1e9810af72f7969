package storage

import (
	"context"
	"fmt"
	"os"
)

// Open selects a Store implementation from environment variables:
//
//	BLOB_DRIVER: local|s3|memory (default local)
//	UPLOAD_PATH: directory root when driver=local (default ./uploads)
//	PUBLIC_BASE_URL: URL prefix the local uploads dir is served under
//	(S3 variables documented in s3.go)
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("BLOB_DRIVER")
	if driver == "" {
		driver = string(DriverLocal)
	}
	switch Driver(driver) {
	case DriverLocal:
		base := os.Getenv("PUBLIC_BASE_URL")
		if base == "" {
			base = "/uploads"
		}
		return NewLocal(os.Getenv("UPLOAD_PATH"), base)
	case DriverS3:
		return OpenS3FromEnv(ctx)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
