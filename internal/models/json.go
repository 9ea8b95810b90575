package models

import (
	"database/sql/driver"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// FeatureList is an ordered list of feature labels stored as a JSON array column
type FeatureList []string

// Value delegates to datatypes.JSONSlice so every dialect gets the same encoding
func (f FeatureList) Value() (driver.Value, error) {
	if f == nil {
		f = FeatureList{}
	}
	return datatypes.JSONSlice[string](f).Value()
}

// Scan delegates to datatypes.JSONSlice
func (f *FeatureList) Scan(value interface{}) error {
	var s datatypes.JSONSlice[string]
	if err := s.Scan(value); err != nil {
		return err
	}
	*f = FeatureList(s)
	return nil
}

// GormDataType is the generic data type name
func (FeatureList) GormDataType() string {
	return "json"
}

// GormDBDataType ensures the correct data type is used for each database driver.
// MSSQL does not support the 'json' data type.
func (FeatureList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}
