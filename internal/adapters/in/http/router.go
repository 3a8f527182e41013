// internal/adapters/in/http/router.go
package httpin

import (
	"encoding/json"
	"net/http"

	"catalog/internal/adapters/in/http/handlers"
	"catalog/internal/adapters/in/http/middleware"
	usecase "catalog/internal/application/usecase"
)

// RouterDeps collects all usecases (and other dependencies) injected from the
// DI container.
type RouterDeps struct {
	AuthUC     *usecase.AuthUsecase
	CategoryUC *usecase.CategoryUsecase
	ProductUC  *usecase.ProductUsecase

	// Object storage for product image uploads (nil = uploads disabled).
	Images handlers.ImageStore
}

// NewRouter sets up HTTP routing for all endpoints. Product and category
// routes sit behind the token guard; auth routes do not.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if deps.AuthUC != nil {
		mux.Handle("/api/auth/", handlers.NewAuthHandler(deps.AuthUC))
	}

	guard := &middleware.AuthMiddleware{}
	if deps.AuthUC != nil {
		guard.Verifier = deps.AuthUC
	}

	if deps.ProductUC != nil {
		h := guard.Handler(handlers.NewProductHandler(deps.ProductUC, deps.Images))
		mux.Handle("/api/products", h)
		mux.Handle("/api/products/", h)
	}

	if deps.CategoryUC != nil {
		h := guard.Handler(handlers.NewCategoryHandler(deps.CategoryUC))
		mux.Handle("/api/categories", h)
		mux.Handle("/api/categories/", h)
	}

	// Root greeting + JSON 404 for the rest.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.Method == http.MethodGet {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("Backend working perfectly!"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Route not found"})
	})

	return mux
}
