package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers, the way the storefront UI sends them.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalog item shown on the storefront
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string          `json:"title" gorm:"type:varchar(255);not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Discount    Percent         `json:"discount" gorm:"type:int;not null;default:0"`
	Features    []string        `json:"features" gorm:"-"`
	Image       string          `json:"image,omitempty" gorm:"type:text"`
	ImageURL    string          `json:"imageUrl,omitempty" gorm:"-"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"not null"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// FinalPrice is the unit price after the product discount
func (p *Product) FinalPrice() decimal.Decimal {
	return DiscountedPrice(p.Price, p.Discount)
}

// ProductFeature is one ordered bullet point of a product
type ProductFeature struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID uint      `json:"productId" gorm:"not null"`
	Position  int       `json:"position" gorm:"not null"`
	Feature   string    `json:"feature" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductPatch carries the fields of a partial product update; nil means untouched.
// A non-nil Features replaces the whole feature list.
type ProductPatch struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Discount    *Percent
	Image       *string
	Features    *[]string
}

// IsEmpty reports whether the patch changes nothing
func (p ProductPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil &&
		p.Discount == nil && p.Image == nil && p.Features == nil
}
