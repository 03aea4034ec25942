package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

const assetPrefix = "task-images"

// AssetStore keeps task images in a Cloud Storage bucket. Object names are
// the locators handed back to callers.
type AssetStore struct {
	bucket *gcs.BucketHandle
}

func NewAssetStore(bucket *gcs.BucketHandle) *AssetStore {
	return &AssetStore{bucket: bucket}
}

// Upload stores the data under a fresh object name derived from nameHint and
// returns the locator.
func (a *AssetStore) Upload(ctx context.Context, data []byte, nameHint string) (string, error) {
	object := fmt.Sprintf("%s/%s-%s", assetPrefix, uuid.New().String(), sanitizeHint(nameHint))

	w := a.bucket.Object(object).NewWriter(ctx)
	w.ContentType = http.DetectContentType(data)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload asset %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to upload asset %s: %w", object, err)
	}
	return object, nil
}

// Delete removes the object behind the locator. A missing object counts as
// deleted.
func (a *AssetStore) Delete(ctx context.Context, locator string) error {
	if err := a.bucket.Object(locator).Delete(ctx); err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil
		}
		return fmt.Errorf("failed to delete asset %s: %w", locator, err)
	}
	return nil
}

func sanitizeHint(hint string) string {
	hint = path.Base(strings.TrimSpace(hint))
	if hint == "" || hint == "." || hint == "/" {
		return "image"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '-'
		}
	}, hint)
}
