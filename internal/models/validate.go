package models

import (
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// FirmwareVersionPattern matches exactly three dot separated non-negative integers
var FirmwareVersionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// RegisterWithValidator registers the custom validation tags used by the models
func RegisterWithValidator(v *validator.Validate) error {
	if err := v.RegisterValidation("firmware_version", validateFirmwareVersion); err != nil {
		return err
	}

	if err := v.RegisterValidation("drone_category", validateCategory); err != nil {
		return err
	}

	return nil
}

// NewValidator returns a validator with the model tags registered
func NewValidator() *validator.Validate {
	v := validator.New()
	if err := RegisterWithValidator(v); err != nil {
		// only fails on an empty tag name or nil func
		panic(err)
	}
	return v
}

func validateFirmwareVersion(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return FirmwareVersionPattern.MatchString(fl.Field().String())
}

func validateCategory(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return IsCategory(fl.Field().String())
}
