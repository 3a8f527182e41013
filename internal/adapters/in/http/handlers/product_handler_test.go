// internal/adapters/in/http/handlers/product_handler_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/adapters/in/http/handlers"
	"catalog/internal/adapters/out/memory"
	usecase "catalog/internal/application/usecase"
	productdom "catalog/internal/domain/product"
)

func productFixture() productdom.Product {
	return productdom.Product{
		Name:   "Sneaker",
		Price:  100,
		Images: []string{"https://img.example.com/orig.png"},
	}
}

// fakeImageStore records saved uploads and hands back deterministic URLs.
type fakeImageStore struct {
	saved []string
}

func (f *fakeImageStore) Save(_ context.Context, filename, _ string, src io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, src); err != nil {
		return "", err
	}
	f.saved = append(f.saved, filename)
	return "https://img.example.com/" + filename, nil
}

func newProductHandler(images handlers.ImageStore) http.Handler {
	store := memory.NewStoreMem()
	uc := usecase.NewProductUsecase(store, usecase.NewIDAllocator(store))
	return handlers.NewProductHandler(uc, images)
}

func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for name, contentType := range files {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, name))
		hdr.Set("Content-Type", contentType)
		part, err := mw.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func postMultipart(t *testing.T, h http.Handler, fields map[string]string, files map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, fields, files)
	req := httptest.NewRequest(http.MethodPost, "/api/products/add", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestProductAdd_MultipartWithUpload(t *testing.T) {
	images := &fakeImageStore{}
	h := newProductHandler(images)

	rec := postMultipart(t, h,
		map[string]string{
			"name":        "Sneaker",
			"price":       "99.5",
			"category_id": `["Shoes"]`,
		},
		map[string]string{"a.png": "image/png"})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"a.png"}, images.saved)

	var created struct {
		ProductID string `json:"productId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+created.ProductID, nil)
	getRec := httptest.NewRecorder()
	h.ServeHTTP(getRec, req)
	require.Equal(t, http.StatusOK, getRec.Code)

	var fetched struct {
		Product struct {
			Images      []string `json:"images"`
			CategoryIDs []string `json:"category_id"`
		} `json:"product"`
	}
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &fetched))
	assert.Equal(t, []string{"https://img.example.com/a.png"}, fetched.Product.Images)
	assert.Equal(t, []string{"Shoes"}, fetched.Product.CategoryIDs)
}

func TestProductAdd_RejectsBadFileType(t *testing.T) {
	h := newProductHandler(&fakeImageStore{})

	rec := postMultipart(t, h,
		map[string]string{"name": "x", "price": "1"},
		map[string]string{"doc.pdf": "application/pdf"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid file type. Only JPG and PNG images are allowed.")
}

func TestProductAdd_RejectsTooManyFiles(t *testing.T) {
	h := newProductHandler(&fakeImageStore{})

	files := make(map[string]string, 6)
	for i := 0; i < 6; i++ {
		files[fmt.Sprintf("img%d.png", i)] = "image/png"
	}
	rec := postMultipart(t, h, map[string]string{"name": "x", "price": "1"}, files)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too many files. Maximum 5 images allowed.")
}

func TestProductAdd_UploadsDisabled(t *testing.T) {
	h := newProductHandler(nil)

	rec := postMultipart(t, h,
		map[string]string{"name": "x", "price": "1"},
		map[string]string{"a.png": "image/png"})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestProductAdd_MultipartBadPrice(t *testing.T) {
	h := newProductHandler(&fakeImageStore{})

	rec := postMultipart(t, h, map[string]string{"name": "x", "price": "abc"}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Price must be a valid positive number")
}

func TestProductUpdate_MergesExistingAndUploadedImages(t *testing.T) {
	images := &fakeImageStore{}
	store := memory.NewStoreMem()
	uc := usecase.NewProductUsecase(store, usecase.NewIDAllocator(store))
	h := handlers.NewProductHandler(uc, images)

	created, err := uc.Create(context.Background(), productFixture())
	require.NoError(t, err)

	body, contentType := multipartBody(t,
		map[string]string{"existing_images": `["https://img.example.com/old.png"]`},
		map[string]string{"new.png": "image/png"})
	req := httptest.NewRequest(http.MethodPut, "/api/products/"+created.ID, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated struct {
		Product struct {
			Images []string `json:"images"`
		} `json:"product"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t,
		[]string{"https://img.example.com/old.png", "https://img.example.com/new.png"},
		updated.Product.Images)
}
