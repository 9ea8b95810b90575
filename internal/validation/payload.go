package validation

import (
	"encoding/json"
	"fmt"

	"github.com/localnerve/dronedb/internal/models"
)

// Payload is a validated, normalized write payload. Nil fields were absent.
type Payload struct {
	Name            *string            `json:"name,omitempty"`
	Category        *string            `json:"category,omitempty"`
	Manufacturer    *string            `json:"manufacturer,omitempty"`
	MaxSpeed        *float64           `json:"maxSpeed,omitempty"`
	MaxRange        *float64           `json:"maxRange,omitempty"`
	Weight          *float64           `json:"weight,omitempty"`
	Dimensions      *models.Dimensions `json:"dimensions,omitempty"`
	PayloadCapacity *float64           `json:"payloadCapacity,omitempty"`
	BatteryCapacity *float64           `json:"batteryCapacity,omitempty"`
	FirmwareVersion *string            `json:"firmwareVersion,omitempty"`
	Enabled         *bool              `json:"enabled,omitempty"`
	Features        *[]string          `json:"features,omitempty"`
	Description     *string            `json:"description,omitempty"`
}

func decodePayload(normalized map[string]interface{}) (*Payload, error) {
	raw, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to encode normalized payload: %w", err)
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("failed to decode normalized payload: %w", err)
	}
	return &p, nil
}

// Map returns the payload as a generic JSON object, suitable for Validate.
// Absent fields are left out.
func (p *Payload) Map() map[string]interface{} {
	out := make(map[string]interface{})
	putString := func(key string, v *string) {
		if v != nil {
			out[key] = *v
		}
	}
	putNumber := func(key string, v *float64) {
		if v != nil {
			out[key] = *v
		}
	}

	putString("name", p.Name)
	putString("category", p.Category)
	putString("manufacturer", p.Manufacturer)
	putNumber("maxSpeed", p.MaxSpeed)
	putNumber("maxRange", p.MaxRange)
	putNumber("weight", p.Weight)
	if p.Dimensions != nil {
		out["dimensions"] = map[string]interface{}{
			"length": p.Dimensions.Length,
			"width":  p.Dimensions.Width,
			"height": p.Dimensions.Height,
		}
	}
	putNumber("payloadCapacity", p.PayloadCapacity)
	putNumber("batteryCapacity", p.BatteryCapacity)
	putString("firmwareVersion", p.FirmwareVersion)
	if p.Enabled != nil {
		out["enabled"] = *p.Enabled
	}
	if p.Features != nil {
		features := make([]interface{}, len(*p.Features))
		for i, f := range *p.Features {
			features[i] = f
		}
		out["features"] = features
	}
	putString("description", p.Description)
	return out
}

// Fields lists the JSON names of the fields present in the payload, in schema order
func (p *Payload) Fields() []string {
	present := p.Map()
	fields := make([]string, 0, len(present))
	for _, rule := range droneRules {
		if _, ok := present[rule.Path]; ok {
			fields = append(fields, rule.Path)
		}
	}
	return fields
}

// ToModel builds a new persisted record from a create payload.
// The identifier and timestamps are left for the store to assign.
func (p *Payload) ToModel() models.Drone {
	d := models.Drone{Enabled: true, Features: models.FeatureList{}}
	p.ApplyTo(&d)
	return d
}

// ApplyTo overwrites the fields of d that are present in the payload
func (p *Payload) ApplyTo(d *models.Drone) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Category != nil {
		d.Category = *p.Category
	}
	if p.Manufacturer != nil {
		d.Manufacturer = *p.Manufacturer
	}
	if p.MaxSpeed != nil {
		d.MaxSpeed = *p.MaxSpeed
	}
	if p.MaxRange != nil {
		d.MaxRange = *p.MaxRange
	}
	if p.Weight != nil {
		d.Weight = *p.Weight
	}
	if p.Dimensions != nil {
		d.Dimensions = *p.Dimensions
	}
	if p.PayloadCapacity != nil {
		d.PayloadCapacity = *p.PayloadCapacity
	}
	if p.BatteryCapacity != nil {
		d.BatteryCapacity = *p.BatteryCapacity
	}
	if p.FirmwareVersion != nil {
		d.FirmwareVersion = *p.FirmwareVersion
	}
	if p.Enabled != nil {
		d.Enabled = *p.Enabled
	}
	if p.Features != nil {
		features := make(models.FeatureList, len(*p.Features))
		copy(features, *p.Features)
		d.Features = features
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
}
