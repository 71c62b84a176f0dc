package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Product listing statuses. ACTIVE and AVAILABLE listings are purchasable;
// INACTIVE and SOLD are hidden from the public catalog.
const (
	StatusActive    = "ACTIVE"
	StatusAvailable = "AVAILABLE"
	StatusInactive  = "INACTIVE"
	StatusSold      = "SOLD"
)

// ID is a record identifier normalized to a string. Upstream payloads encode
// ids as strings or as bare numbers; both decode to the same value so id
// comparisons never depend on the wire type.
type ID string

// UnmarshalJSON accepts a JSON string or number. Anything else decodes to the
// empty id rather than failing the whole document.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ID(n.String())
		return nil
	}
	*id = ""
	return nil
}

// Price is a product price that tolerates malformed upstream values. Quoted
// numbers decode like bare numbers, JSON null decodes to zero, and anything
// unparseable becomes NaN so later comparisons simply exclude the record.
type Price float64

// UnmarshalJSON never returns an error; a price that cannot be parsed is NaN.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*p = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*p = Price(math.NaN())
		return nil
	}
	*p = Price(f)
	return nil
}

// MarshalJSON emits NaN as null, since NaN is not representable in JSON.
func (p Price) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(p)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(p))
}

// Category identifies a product category. Upstream payloads encode it either
// as a bare string ("tecnologia") or as an object with a "name" field; both
// normalize to the same value before any comparison happens.
type Category struct {
	Name string `json:"name"`
}

// UnmarshalJSON accepts a string or an object with a "name" field.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		c.Name = obj.Name
		return nil
	}
	c.Name = ""
	return nil
}

// Value stores the category as its plain name.
func (c Category) Value() (driver.Value, error) {
	return c.Name, nil
}

// Scan reads the category name back from the database.
func (c *Category) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		c.Name = ""
	case string:
		c.Name = v
	case []byte:
		c.Name = string(v)
	default:
		return fmt.Errorf("unsupported category column type %T", src)
	}
	return nil
}

// Product represents a listing in the marketplace catalog.
type Product struct {
	ID           ID       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string   `json:"name" validate:"required,min=3,max=100"`
	Description  string   `json:"description" validate:"omitempty,max=500"`
	Price        Price    `json:"price" validate:"required,gt=0"`
	Category     Category `json:"category" gorm:"type:varchar(100)"`
	ImageURL     string   `json:"imageUrl" validate:"omitempty,max=500"`
	Status       string   `json:"status" gorm:"type:varchar(20)" validate:"omitempty,oneof=ACTIVE AVAILABLE INACTIVE SOLD"`
	Rating       float64  `json:"rating,omitempty"`
	ReviewsCount int      `json:"reviewsCount,omitempty"`
	Stock        int      `json:"stock" validate:"gte=0"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Purchasable reports whether the listing can currently be bought.
func (p *Product) Purchasable() bool {
	return p.Status == StatusActive || p.Status == StatusAvailable
}

// ImageRef returns the image URL as a nullable reference, so persisted
// collections carry null instead of an empty string when no image is set.
func (p *Product) ImageRef() *string {
	if p.ImageURL == "" {
		return nil
	}
	url := p.ImageURL
	return &url
}
