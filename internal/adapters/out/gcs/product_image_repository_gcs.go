// internal/adapters/out/gcs/product_image_repository_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// ProductImageRepositoryGCS stores uploaded product images as objects under
// products/ in one bucket and returns their public URLs.
//
// Public access assumes the bucket grants allUsers object-viewer through IAM
// (uniform access); no per-object ACL is touched here.
type ProductImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string
	// Optional: if empty, uses https://storage.googleapis.com
	PublicBaseURL string
}

func NewProductImageRepositoryGCS(client *storage.Client, bucket string) *ProductImageRepositoryGCS {
	return &ProductImageRepositoryGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: "https://storage.googleapis.com",
	}
}

// Save writes one image and returns its public URL.
// Object names get a millisecond prefix so repeated filenames never collide.
func (r *ProductImageRepositoryGCS) Save(ctx context.Context, filename, contentType string, src io.Reader) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("product_image_repository_gcs: storage client is nil")
	}
	if r.Bucket == "" {
		return "", errors.New("product_image_repository_gcs: bucket is empty")
	}

	base := path.Base(strings.TrimSpace(filename))
	if base == "" || base == "." || base == "/" {
		base = "image"
	}
	objectName := fmt.Sprintf("products/%d_%s", time.Now().UnixMilli(), base)

	w := r.Client.Bucket(r.Bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, src); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("product_image_repository_gcs: write %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("product_image_repository_gcs: close %s: %w", objectName, err)
	}

	baseURL := strings.TrimRight(r.PublicBaseURL, "/")
	if baseURL == "" {
		baseURL = "https://storage.googleapis.com"
	}
	return fmt.Sprintf("%s/%s/%s", baseURL, r.Bucket, objectName), nil
}

// Delete removes one object addressed by the URL Save returned.
// Unknown objects are ignored so cleanup stays idempotent.
func (r *ProductImageRepositoryGCS) Delete(ctx context.Context, publicURL string) error {
	if r == nil || r.Client == nil {
		return errors.New("product_image_repository_gcs: storage client is nil")
	}
	marker := "/" + r.Bucket + "/"
	idx := strings.Index(publicURL, marker)
	if idx < 0 {
		return nil
	}
	objectName := publicURL[idx+len(marker):]
	err := r.Client.Bucket(r.Bucket).Object(objectName).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("product_image_repository_gcs: delete %s: %w", objectName, err)
	}
	return nil
}
