package model

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer testimonial shown on the storefront
type Review struct {
	ID           uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerName string     `json:"customerName" gorm:"type:varchar(255);not null"`
	Rating       int        `json:"rating" gorm:"not null"`
	Comment      string     `json:"comment" gorm:"type:text"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"not null"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty" gorm:"autoUpdateTime:false"`
}

// ReviewPatch rewrites a review
type ReviewPatch struct {
	CustomerName string
	Rating       int
	Comment      string
	UpdatedAt    time.Time
}
