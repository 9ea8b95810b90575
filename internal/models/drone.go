package models

import (
	"time"
)

// Category is the airframe class of a drone model
type Category string

// Supported categories
const (
	CategoryQuadcopter Category = "quadcopter"
	CategoryFixedWing  Category = "fixed-wing"
	CategoryHexacopter Category = "hexacopter"
	CategoryOctocopter Category = "octocopter"
)

// Categories lists every supported category in display order
var Categories = []Category{
	CategoryQuadcopter,
	CategoryFixedWing,
	CategoryHexacopter,
	CategoryOctocopter,
}

// IsCategory reports whether s names a supported category
func IsCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Dimensions of the airframe in centimeters
type Dimensions struct {
	Length float64 `json:"length" gorm:"column:length;not null" validate:"gt=0"`
	Width  float64 `json:"width" gorm:"column:width;not null" validate:"gt=0"`
	Height float64 `json:"height" gorm:"column:height;not null" validate:"gt=0"`
}

// Drone is the persisted shape of a drone model catalog entry
type Drone struct {
	ID              string      `gorm:"type:char(36);primaryKey" validate:"required,uuid4"`
	Name            string      `gorm:"size:100;not null;index" validate:"required,min=2,max=100"`
	Category        string      `gorm:"size:32;not null;index" validate:"required,drone_category"`
	Manufacturer    string      `gorm:"size:100" validate:"max=100"`
	MaxSpeed        float64     `gorm:"not null" validate:"gte=1,lte=500"`
	MaxRange        float64     `gorm:"not null" validate:"gte=100"`
	Weight          float64     `gorm:"not null" validate:"gte=50,lte=50000"`
	Dimensions      Dimensions  `gorm:"embedded;embeddedPrefix:dim_"`
	PayloadCapacity float64     `gorm:"not null" validate:"gte=0"`
	BatteryCapacity float64     `gorm:"not null" validate:"gte=500"`
	FirmwareVersion string      `gorm:"size:32;not null" validate:"required,firmware_version"`
	Enabled         bool        `gorm:"not null"`
	Features        FeatureList `validate:"dive,max=50"`
	Description     string      `gorm:"size:1000" validate:"max=1000"`
	CreatedAt       time.Time   `gorm:"index"`
	UpdatedAt       time.Time
}

// TableName overrides the table name for Drone
func (Drone) TableName() string {
	return "drones"
}

// Record maps the persisted shape to the wire shape
func (d Drone) Record() DroneRecord {
	features := make([]string, len(d.Features))
	copy(features, d.Features)

	return DroneRecord{
		ID:              d.ID,
		Name:            d.Name,
		Category:        d.Category,
		Manufacturer:    d.Manufacturer,
		MaxSpeed:        d.MaxSpeed,
		MaxRange:        d.MaxRange,
		Weight:          d.Weight,
		Dimensions:      d.Dimensions,
		PayloadCapacity: d.PayloadCapacity,
		BatteryCapacity: d.BatteryCapacity,
		FirmwareVersion: d.FirmwareVersion,
		Enabled:         d.Enabled,
		Features:        features,
		Description:     d.Description,
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}
}

// DroneRecord is the wire shape of a drone model returned by the API
type DroneRecord struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Category        string     `json:"category"`
	Manufacturer    string     `json:"manufacturer"`
	MaxSpeed        float64    `json:"maxSpeed"`
	MaxRange        float64    `json:"maxRange"`
	Weight          float64    `json:"weight"`
	Dimensions      Dimensions `json:"dimensions"`
	PayloadCapacity float64    `json:"payloadCapacity"`
	BatteryCapacity float64    `json:"batteryCapacity"`
	FirmwareVersion string     `json:"firmwareVersion"`
	Enabled         bool       `json:"enabled"`
	Features        []string   `json:"features"`
	Description     string     `json:"description"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// CategoryStats is one row of the per-category summary
type CategoryStats struct {
	Category    string  `json:"category"`
	Count       int64   `json:"count"`
	AvgMaxSpeed float64 `json:"avgMaxSpeed"`
	AvgWeight   float64 `json:"avgWeight"`
	AvgPayload  float64 `json:"avgPayload"`
}
