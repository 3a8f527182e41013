// internal/adapters/in/http/handlers/category_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	usecase "catalog/internal/application/usecase"
	categorydom "catalog/internal/domain/category"
)

// CategoryHandler は /api/categories 関連のエンドポイントを担当します。
type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

func NewCategoryHandler(uc *usecase.CategoryUsecase) http.Handler {
	return &CategoryHandler{uc: uc}
}

func (h *CategoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {

	// ------------------------------------------------------------
	// POST /api/categories/add
	// ------------------------------------------------------------
	case r.Method == http.MethodPost && r.URL.Path == "/api/categories/add":
		h.add(w, r)

	// ------------------------------------------------------------
	// GET /api/categories
	// ------------------------------------------------------------
	case r.Method == http.MethodGet && (r.URL.Path == "/api/categories" || r.URL.Path == "/api/categories/"):
		h.list(w, r)

	// ------------------------------------------------------------
	// PUT /api/categories/{id}
	// ------------------------------------------------------------
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/categories/"):
		id := strings.TrimPrefix(r.URL.Path, "/api/categories/")
		h.update(w, r, id)

	// ------------------------------------------------------------
	// DELETE /api/categories/{id}
	// ------------------------------------------------------------
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/categories/"):
		id := strings.TrimPrefix(r.URL.Path, "/api/categories/")
		h.delete(w, r, id)

	default:
		notFoundRoute(w)
	}
}

func (h *CategoryHandler) add(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		writeMessage(w, http.StatusBadRequest, "Category name is required")
		return
	}

	c, err := h.uc.Create(r.Context(), body.Name)
	if err != nil {
		writeCategoryErr(w, err, "Error adding category")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":    "Category added successfully",
		"categoryId": c.ID,
	})
}

func (h *CategoryHandler) list(w http.ResponseWriter, r *http.Request) {
	categories, err := h.uc.List(r.Context())
	if err != nil {
		writeCategoryErr(w, err, "Error fetching categories")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (h *CategoryHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var body struct {
		Name *string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.uc.UpdateByID(r.Context(), id, categorydom.Patch{Name: body.Name})
	if err != nil {
		writeCategoryErr(w, err, "Error updating category")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Category updated successfully",
		"category": c,
	})
}

func (h *CategoryHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.uc.DeleteByID(r.Context(), id); err != nil {
		writeCategoryErr(w, err, "Error deleting category")
		return
	}
	writeMessage(w, http.StatusOK, "Category deleted successfully")
}

func writeCategoryErr(w http.ResponseWriter, err error, context string) {
	switch {
	case errors.Is(err, categorydom.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Category not found")
	case errors.Is(err, categorydom.ErrInvalidName):
		writeMessage(w, http.StatusBadRequest, "Category name is required")
	default:
		log.Printf("[CategoryHandler] %s: %v", context, err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
