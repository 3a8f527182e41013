// internal/platform/di/container.go
package di

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	httpin "catalog/internal/adapters/in/http"
	fsadapter "catalog/internal/adapters/out/firestore"
	"catalog/internal/adapters/out/gcs"
	"catalog/internal/adapters/out/memory"
	"catalog/internal/application/docstore"
	usecase "catalog/internal/application/usecase"
	"catalog/internal/infra/config"
	firestoreinfra "catalog/internal/infra/firestore"
	"catalog/internal/infra/secrets"
)

// Container owns external clients and wires the usecases.
type Container struct {
	Config *config.Config

	Firestore *firestoreinfra.ClientWrapper
	GCS       *storage.Client
	Secrets   *secrets.ProviderSM

	Store docstore.Store

	AuthUC     *usecase.AuthUsecase
	CategoryUC *usecase.CategoryUsecase
	ProductUC  *usecase.ProductUsecase
	Images     *gcs.ProductImageRepositoryGCS
}

// NewContainer initializes the container.
// The store is strict (failure aborts boot); GCS and Secret Manager are
// best-effort (warn + degrade: no uploads / env-only secret).
func NewContainer(ctx context.Context) (*Container, error) {
	cfg := config.Load()
	c := &Container{Config: cfg}

	// 1) Document store
	switch strings.ToLower(strings.TrimSpace(cfg.StoreBackend)) {
	case "memory":
		log.Printf("[di] STORE_BACKEND=memory: using in-process store (data is not persisted)")
		c.Store = memory.NewStoreMem()
	default:
		cw, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("di: firestore init: %w", err)
		}
		c.Firestore = cw
		c.Store = fsadapter.NewStoreFS(cw.Client)
	}

	// 2) Optional: GCS client for product image uploads
	if cfg.GCSBucket != "" {
		var opts []option.ClientOption
		if cfg.GCPCreds != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.GCPCreds))
		}
		gcsClient, err := storage.NewClient(ctx, opts...)
		if err != nil {
			log.Printf("[di] WARN: gcs init failed: %v (image uploads disabled)", err)
		} else {
			c.GCS = gcsClient
			c.Images = gcs.NewProductImageRepositoryGCS(gcsClient, cfg.GCSBucket)
			log.Printf("[di] image uploads -> gs://%s/products", cfg.GCSBucket)
		}
	} else {
		log.Printf("[di] GCS_BUCKET empty: image uploads disabled")
	}

	// 3) Token signing secret: env wins, then Secret Manager
	secret := cfg.JWTSecret
	if secret == "" && cfg.JWTSecretName != "" {
		sm, err := secrets.NewProviderSM(ctx, cfg.FirestoreProjectID, cfg.GCPCreds)
		if err != nil {
			log.Printf("[di] WARN: secret manager init failed: %v", err)
		} else {
			c.Secrets = sm
			if s, err := sm.Access(ctx, cfg.JWTSecretName); err != nil {
				log.Printf("[di] WARN: secret %q not readable: %v", cfg.JWTSecretName, err)
			} else {
				secret = s
			}
		}
	}
	if secret == "" {
		return nil, fmt.Errorf("di: no token signing secret (set JWT_SECRET or JWT_SECRET_NAME)")
	}

	expiry, err := time.ParseDuration(cfg.JWTExpiresIn)
	if err != nil {
		log.Printf("[di] WARN: invalid JWT_EXPIRES_IN %q, using 168h", cfg.JWTExpiresIn)
		expiry = 168 * time.Hour
	}

	var users []usecase.Credential
	if cfg.AdminPassword != "" {
		users = append(users, usecase.Credential{
			UserID:   cfg.AdminUserID,
			Username: cfg.AdminUsername,
			Password: cfg.AdminPassword,
		})
	} else {
		log.Printf("[di] WARN: ADMIN_PASSWORD empty: login disabled")
	}
	c.AuthUC = usecase.NewAuthUsecase(users, []byte(secret), expiry)

	// 4) Usecases over the store
	ids := usecase.NewIDAllocator(c.Store)
	c.CategoryUC = usecase.NewCategoryUsecase(c.Store, ids)
	c.ProductUC = usecase.NewProductUsecase(c.Store, ids)

	return c, nil
}

// RouterDeps exposes the wired usecases to the HTTP router.
func (c *Container) RouterDeps() httpin.RouterDeps {
	deps := httpin.RouterDeps{
		AuthUC:     c.AuthUC,
		CategoryUC: c.CategoryUC,
		ProductUC:  c.ProductUC,
	}
	if c.Images != nil {
		deps.Images = c.Images
	}
	return deps
}

// AllowedOrigins returns the CORS allowlist (dev origins + configured frontend).
func (c *Container) AllowedOrigins() []string {
	origins := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if c.Config != nil && c.Config.FrontendOrigin != "" {
		origins = append(origins, c.Config.FrontendOrigin)
	}
	return origins
}

// Close releases the owned clients.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.Firestore != nil {
		if err := c.Firestore.Close(); err != nil {
			log.Printf("[di] firestore close: %v", err)
		}
	}
	if c.GCS != nil {
		if err := c.GCS.Close(); err != nil {
			log.Printf("[di] gcs close: %v", err)
		}
	}
	if c.Secrets != nil {
		if err := c.Secrets.Close(); err != nil {
			log.Printf("[di] secret manager close: %v", err)
		}
	}
}
