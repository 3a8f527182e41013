// internal/domain/product/entity.go
package product

import (
	"errors"
	"strings"
	"time"

	"catalog/internal/domain/common"
)

// Status は商品の公開状態
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// Product エンティティ。
//
// CategoryIDs はカテゴリ「名」の列を保持する（数値IDではない）。
// カスケード削除がこの値で照合するため、互換性重視でそのまま踏襲。
// カテゴリ名変更時は参照が残留する点に注意。
type Product struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Price         float64    `json:"price"`
	CategoryIDs   []string   `json:"category_id"`
	Images        []string   `json:"images"`
	StockQuantity int64      `json:"stock_quantity"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// Patch は部分更新のフィールドを明示的に持つ（nil = 未指定）。
type Patch struct {
	Name          *string
	Description   *string
	Price         *float64
	CategoryIDs   *[]string
	Images        *[]string
	StockQuantity *int64
	Status        *Status
}

var (
	ErrInvalidName   = errors.New("product: invalid name")
	ErrInvalidPrice  = errors.New("product: invalid price")
	ErrInvalidStatus = errors.New("product: invalid status")
	ErrNotFound      = errors.New("product: not found")
)

// Validate checks the creation invariants (ID/timestamps are assigned later).
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	if p.Status != "" && !p.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// ToDoc flattens the entity into a store document (ID is the key, not a field).
func (p Product) ToDoc() map[string]any {
	doc := map[string]any{
		"name":           p.Name,
		"description":    p.Description,
		"price":          p.Price,
		"category_id":    p.CategoryIDs,
		"images":         p.Images,
		"stock_quantity": p.StockQuantity,
		"status":         string(p.Status),
		"createdAt":      p.CreatedAt,
	}
	if p.UpdatedAt != nil {
		doc["updatedAt"] = *p.UpdatedAt
	}
	return doc
}

// FromDoc rebuilds the entity from a store document, coercing store-native values.
func FromDoc(id string, doc map[string]any) Product {
	p := Product{
		ID:            id,
		Name:          common.AsString(doc["name"]),
		Description:   common.AsString(doc["description"]),
		Price:         common.AsFloat64(doc["price"]),
		CategoryIDs:   common.AsStringSlice(doc["category_id"]),
		Images:        common.AsStringSlice(doc["images"]),
		StockQuantity: common.AsInt64(doc["stock_quantity"]),
		Status:        Status(common.AsString(doc["status"])),
		UpdatedAt:     common.AsTimePtr(doc["updatedAt"]),
	}
	if p.CategoryIDs == nil {
		p.CategoryIDs = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if t, ok := common.AsTime(doc["createdAt"]); ok {
		p.CreatedAt = t
	}
	return p
}
