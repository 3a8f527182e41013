// internal/domain/category/entity.go
package category

import (
	"errors"
	"strings"
	"time"
	"unicode"

	"catalog/internal/domain/common"
)

// Category エンティティ。ID は採番された連番を文字列化したもの。
type Category struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Patch は部分更新のフィールドを明示的に持つ（nil = 未指定）。
type Patch struct {
	Name *string
}

var (
	ErrInvalidName = errors.New("category: invalid name")
	ErrNotFound    = errors.New("category: not found")
)

// CapitalizeName normalizes a category name to first-upper/rest-lower.
// Applied at creation only; updates store the name as given.
func CapitalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	r := []rune(name)
	return string(unicode.ToUpper(r[0])) + strings.ToLower(string(r[1:]))
}

// ToDoc flattens the entity into a store document (ID is the key, not a field).
func (c Category) ToDoc() map[string]any {
	doc := map[string]any{
		"name":      c.Name,
		"createdAt": c.CreatedAt,
	}
	if c.UpdatedAt != nil {
		doc["updatedAt"] = *c.UpdatedAt
	}
	return doc
}

// FromDoc rebuilds the entity from a store document, coercing timestamps.
func FromDoc(id string, doc map[string]any) Category {
	c := Category{
		ID:        id,
		Name:      common.AsString(doc["name"]),
		UpdatedAt: common.AsTimePtr(doc["updatedAt"]),
	}
	if t, ok := common.AsTime(doc["createdAt"]); ok {
		c.CreatedAt = t
	}
	return c
}
