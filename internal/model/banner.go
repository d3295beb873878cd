package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Banner is a promotional card, optionally linking to an external page
type Banner struct {
	ID          uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string          `json:"title" gorm:"type:varchar(255);not null"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null;default:0"`
	Discount    Percent         `json:"discount" gorm:"type:int;not null;default:0"`
	Link        *string         `json:"link" gorm:"type:text"`
	Image       string          `json:"image" gorm:"type:text;not null"`
	ImageURL    string          `json:"imageUrl,omitempty" gorm:"-"`
	CreatedAt   time.Time       `json:"createdAt" gorm:"not null"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// BannerPatch carries the fields of a partial banner update; nil means untouched
type BannerPatch struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Discount    *Percent
	Link        *string
	Image       *string
}

// IsEmpty reports whether the patch changes nothing
func (p BannerPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil &&
		p.Discount == nil && p.Link == nil && p.Image == nil
}
