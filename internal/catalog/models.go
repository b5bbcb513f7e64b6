package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Package is an immutable catalog entry for a tour package.
type Package struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name          string    `json:"name" gorm:"not null;size:255"`
	Country       string    `json:"country" gorm:"not null;size:100;index"`
	Description   string    `json:"description" gorm:"type:text"`
	DurationLabel string    `json:"duration_label" gorm:"size:50"` // e.g. "7 days / 6 nights"
	PricePerAdult float64   `json:"price_per_adult" gorm:"not null;check:price_per_adult >= 0"`
	Rating        float64   `json:"rating" gorm:"default:0;check:rating >= 0 AND rating <= 5"`
	Includes      []string  `json:"includes" gorm:"serializer:json"`
	ImageURL      string    `json:"image_url" gorm:"size:500"`
	Active        bool      `json:"active" gorm:"default:true;index"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ExtraKind distinguishes the three add-on families the wizard knows about.
type ExtraKind string

const (
	ExtraKindInsurance ExtraKind = "INSURANCE"
	ExtraKindCarRental ExtraKind = "CAR_RENTAL"
	ExtraKindExcursion ExtraKind = "EXCURSION"
)

// Extra is a flat-priced add-on service. Prices are per booking, not per
// traveler.
type Extra struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Kind        ExtraKind `json:"kind" gorm:"type:varchar(20);not null;index"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	Price       float64   `json:"price" gorm:"not null;check:price >= 0"`
	Active      bool      `json:"active" gorm:"default:true;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for Package.
func (Package) TableName() string {
	return "packages"
}

// TableName sets the table name for Extra.
func (Extra) TableName() string {
	return "extras"
}

// PackageResponse is the public view of a package. EstimatedTotal is filled
// only when the caller supplied a party size.
type PackageResponse struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Country        string   `json:"country"`
	Description    string   `json:"description"`
	DurationLabel  string   `json:"duration_label"`
	PricePerAdult  float64  `json:"price_per_adult"`
	Rating         float64  `json:"rating"`
	Includes       []string `json:"includes"`
	ImageURL       string   `json:"image_url"`
	EstimatedTotal *float64 `json:"estimated_total,omitempty"`
}

// PackageListQuery carries the browse filters.
type PackageListQuery struct {
	Country   string  `form:"country"`
	MinRating float64 `form:"min_rating"`
	MaxPrice  float64 `form:"max_price"`
	Adults    int     `form:"adults"`
	Children  int     `form:"children"`
}

// ToResponse converts a Package to its public view.
func (p *Package) ToResponse() PackageResponse {
	return PackageResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Country:       p.Country,
		Description:   p.Description,
		DurationLabel: p.DurationLabel,
		PricePerAdult: p.PricePerAdult,
		Rating:        p.Rating,
		Includes:      p.Includes,
		ImageURL:      p.ImageURL,
	}
}
