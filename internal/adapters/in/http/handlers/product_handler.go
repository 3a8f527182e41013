// internal/adapters/in/http/handlers/product_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	usecase "catalog/internal/application/usecase"
	productdom "catalog/internal/domain/product"
)

// ImageStore is the piece of object storage the product handler needs for
// multipart uploads. Satisfied by the GCS adapter; nil disables uploads.
type ImageStore interface {
	Save(ctx context.Context, filename, contentType string, src io.Reader) (string, error)
}

// Upload constraints: field "images", at most 5 files, 10MB per file, JPG/PNG only.
const (
	uploadField    = "images"
	maxUploadFiles = 5
	maxUploadBytes = 10 << 20
	maxFormMemory  = 32 << 20
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// ProductHandler は /api/products 関連のエンドポイントを担当します。
type ProductHandler struct {
	uc     *usecase.ProductUsecase
	images ImageStore
}

func NewProductHandler(uc *usecase.ProductUsecase, images ImageStore) http.Handler {
	return &ProductHandler{uc: uc, images: images}
}

func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {

	// ------------------------------------------------------------
	// POST /api/products/add  (JSON または multipart/form-data)
	// ------------------------------------------------------------
	case r.Method == http.MethodPost && r.URL.Path == "/api/products/add":
		h.add(w, r)

	// ------------------------------------------------------------
	// GET /api/products
	// ------------------------------------------------------------
	case r.Method == http.MethodGet && (r.URL.Path == "/api/products" || r.URL.Path == "/api/products/"):
		h.list(w, r)

	// ------------------------------------------------------------
	// GET /api/products/{id}
	// ------------------------------------------------------------
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/products/"):
		id := strings.TrimPrefix(r.URL.Path, "/api/products/")
		h.get(w, r, id)

	// ------------------------------------------------------------
	// PUT /api/products/{id}
	// ------------------------------------------------------------
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/products/"):
		id := strings.TrimPrefix(r.URL.Path, "/api/products/")
		h.update(w, r, id)

	// ------------------------------------------------------------
	// DELETE /api/products/{id}
	// ------------------------------------------------------------
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/products/"):
		id := strings.TrimPrefix(r.URL.Path, "/api/products/")
		h.delete(w, r, id)

	default:
		notFoundRoute(w)
	}
}

func (h *ProductHandler) add(w http.ResponseWriter, r *http.Request) {
	var (
		in       productdom.Product
		uploaded []string
	)

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		in.Name = r.FormValue("name")
		in.Description = r.FormValue("description")
		in.Status = productdom.Status(r.FormValue("status"))
		if v := r.FormValue("price"); v != "" {
			p, err := strconv.ParseFloat(v, 64)
			if err != nil {
				writeMessage(w, http.StatusBadRequest, "Price must be a valid positive number")
				return
			}
			in.Price = p
		}
		if v := r.FormValue("stock_quantity"); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err == nil {
				in.StockQuantity = n
			}
		}
		if v := r.FormValue("category_id"); v != "" {
			_ = json.Unmarshal([]byte(v), &in.CategoryIDs)
		}

		urls, ok := h.saveUploads(w, r)
		if !ok {
			return
		}
		uploaded = urls
	} else {
		var body struct {
			Name          string   `json:"name"`
			Description   string   `json:"description"`
			Price         float64  `json:"price"`
			Status        string   `json:"status"`
			CategoryIDs   []string `json:"category_id"`
			Images        []string `json:"images"`
			StockQuantity int64    `json:"stock_quantity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		in = productdom.Product{
			Name:          body.Name,
			Description:   body.Description,
			Price:         body.Price,
			Status:        productdom.Status(body.Status),
			CategoryIDs:   body.CategoryIDs,
			Images:        body.Images,
			StockQuantity: body.StockQuantity,
		}
	}

	if strings.TrimSpace(in.Name) == "" {
		writeMessage(w, http.StatusBadRequest, "Product name is required and must be a string")
		return
	}
	if in.Price < 0 {
		writeMessage(w, http.StatusBadRequest, "Price must be a valid positive number")
		return
	}
	if in.Status != "" && !in.Status.IsValid() {
		writeMessage(w, http.StatusBadRequest, "Status must be either 'active' or 'inactive'")
		return
	}
	in.Images = append(in.Images, uploaded...)

	p, err := h.uc.Create(r.Context(), in)
	if err != nil {
		writeProductErr(w, err, "Error adding product")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":   "Product added successfully",
		"productId": p.ID,
	})
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.uc.List(r.Context())
	if err != nil {
		writeProductErr(w, err, "Error fetching products")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *ProductHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.uc.GetByID(r.Context(), id)
	if err != nil {
		writeProductErr(w, err, "Error fetching product")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": p})
}

func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var (
		patch    productdom.Patch
		existing *[]string
		uploaded []string
	)

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		form := r.MultipartForm
		if v, ok := formValue(form, "name"); ok {
			patch.Name = &v
		}
		if v, ok := formValue(form, "description"); ok {
			patch.Description = &v
		}
		if v, ok := formValue(form, "price"); ok {
			p, err := strconv.ParseFloat(v, 64)
			if err != nil {
				writeMessage(w, http.StatusBadRequest, "Price must be a valid positive number")
				return
			}
			patch.Price = &p
		}
		if v, ok := formValue(form, "stock_quantity"); ok {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				patch.StockQuantity = &n
			}
		}
		if v, ok := formValue(form, "status"); ok {
			s := productdom.Status(v)
			patch.Status = &s
		}
		if v, ok := formValue(form, "category_id"); ok {
			var cats []string
			if err := json.Unmarshal([]byte(v), &cats); err == nil {
				patch.CategoryIDs = &cats
			}
		}
		if v, ok := formValue(form, "existing_images"); ok {
			var imgs []string
			if err := json.Unmarshal([]byte(v), &imgs); err == nil {
				existing = &imgs
			}
		}

		urls, ok := h.saveUploads(w, r)
		if !ok {
			return
		}
		uploaded = urls
	} else {
		var body struct {
			Name           *string            `json:"name"`
			Description    *string            `json:"description"`
			Price          *float64           `json:"price"`
			Status         *productdom.Status `json:"status"`
			CategoryIDs    *[]string          `json:"category_id"`
			StockQuantity  *int64             `json:"stock_quantity"`
			ExistingImages *[]string          `json:"existing_images"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		patch.Name = body.Name
		patch.Description = body.Description
		patch.Price = body.Price
		patch.Status = body.Status
		patch.CategoryIDs = body.CategoryIDs
		patch.StockQuantity = body.StockQuantity
		existing = body.ExistingImages
	}

	// images は既存分(existing_images) + 新規アップロード分の合成で上書き。
	// どちらも無ければ images には触らない。
	if existing != nil || len(uploaded) > 0 {
		imgs := []string{}
		if existing != nil {
			imgs = append(imgs, *existing...)
		}
		imgs = append(imgs, uploaded...)
		patch.Images = &imgs
	}

	p, err := h.uc.UpdateByID(r.Context(), id, patch)
	if err != nil {
		writeProductErr(w, err, "Error updating product")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Product updated successfully",
		"product": p,
	})
}

func (h *ProductHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.uc.DeleteByID(r.Context(), id); err != nil {
		writeProductErr(w, err, "Error deleting product")
		return
	}
	writeMessage(w, http.StatusOK, "Product deleted successfully")
}

// ------------------------------------------------------------
// upload handling
// ------------------------------------------------------------

// saveUploads validates the "images" files and stores them, writing the error
// response itself when the request violates the upload constraints.
func (h *ProductHandler) saveUploads(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	if r.MultipartForm == nil {
		return nil, true
	}
	files := r.MultipartForm.File[uploadField]
	if len(files) == 0 {
		return nil, true
	}
	if len(files) > maxUploadFiles {
		writeMessage(w, http.StatusBadRequest, "Too many files. Maximum 5 images allowed.")
		return nil, false
	}
	if h.images == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Image uploads are not configured")
		return nil, false
	}

	var urls []string
	for _, fh := range files {
		if fh.Size > maxUploadBytes {
			writeMessage(w, http.StatusBadRequest, "File size is too large. Maximum allowed size is 10MB per file.")
			return nil, false
		}
		ct := fh.Header.Get("Content-Type")
		if !allowedImageTypes[ct] {
			writeMessage(w, http.StatusBadRequest, "Invalid file type. Only JPG and PNG images are allowed.")
			return nil, false
		}

		url, err := h.saveOne(r.Context(), fh, ct)
		if err != nil {
			log.Printf("[ProductHandler] upload %s failed: %v", fh.Filename, err)
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return nil, false
		}
		urls = append(urls, url)
	}
	return urls, true
}

func (h *ProductHandler) saveOne(ctx context.Context, fh *multipart.FileHeader, contentType string) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return h.images.Save(ctx, fh.Filename, contentType, f)
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func formValue(form *multipart.Form, key string) (string, bool) {
	vs, ok := form.Value[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func writeProductErr(w http.ResponseWriter, err error, context string) {
	switch {
	case errors.Is(err, productdom.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, productdom.ErrInvalidName):
		writeMessage(w, http.StatusBadRequest, "Product name is required and must be a string")
	case errors.Is(err, productdom.ErrInvalidPrice):
		writeMessage(w, http.StatusBadRequest, "Price must be a valid positive number")
	case errors.Is(err, productdom.ErrInvalidStatus):
		writeMessage(w, http.StatusBadRequest, "Status must be either 'active' or 'inactive'")
	default:
		log.Printf("[ProductHandler] %s: %v", context, err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
