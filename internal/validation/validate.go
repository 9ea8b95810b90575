// Package validation checks and normalizes drone write payloads against the
// declarative rule table in rules.go.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/localnerve/dronedb/internal/models"
)

// Mode selects which rules apply to a payload
type Mode int

const (
	// ModeCreate requires every required field
	ModeCreate Mode = iota
	// ModeUpdate accepts any non-empty subset of the fields
	ModeUpdate
)

// NothingToUpdateMessage is reported when an update carries no recognized field
const NothingToUpdateMessage = "Nothing to update: provide at least one recognized field"

// ErrMalformedBody is returned by ValidateJSON when the body is not a JSON object
var ErrMalformedBody = errors.New("request body must be a JSON object")

// FieldError describes one violated constraint
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is the complete list of violations found in a payload
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		if fe.Field == "" {
			parts[i] = fe.Message
		} else {
			parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// validate is safe for concurrent use
var validate = models.NewValidator()

// ValidateJSON decodes a request body and validates it.
// On failure the error is either ErrMalformedBody or FieldErrors.
func ValidateJSON(body []byte, mode Mode) (*Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var input map[string]interface{}
	if err := dec.Decode(&input); err != nil || input == nil {
		return nil, ErrMalformedBody
	}

	payload, errs := Validate(input, mode)
	if len(errs) > 0 {
		return nil, errs
	}
	return payload, nil
}

// Validate checks input against the record schema and returns the normalized
// payload, or every violation found. Unknown fields are dropped.
func Validate(input map[string]interface{}, mode Mode) (*Payload, FieldErrors) {
	if mode == ModeUpdate && !hasRecognizedField(input) {
		return nil, FieldErrors{{Field: "", Message: NothingToUpdateMessage}}
	}

	normalized, errs := validateObject(input, droneRules, "", mode == ModeCreate)
	if len(errs) > 0 {
		return nil, errs
	}

	if mode == ModeCreate {
		for key, value := range createDefaults {
			if _, ok := normalized[key]; !ok {
				normalized[key] = value
			}
		}
	}

	payload, err := decodePayload(normalized)
	if err != nil {
		// normalized values are produced by coerce, so this is a programming error
		return nil, FieldErrors{{Field: "", Message: err.Error()}}
	}
	return payload, nil
}

func hasRecognizedField(input map[string]interface{}) bool {
	for _, rule := range droneRules {
		if _, ok := input[rule.Path]; ok {
			return true
		}
	}
	return false
}

// validateObject applies rules to input, collecting all errors.
// Nested objects are validated with requireAll set, so a partial dimensions triple is rejected.
func validateObject(input map[string]interface{}, rules []fieldRule, prefix string, requireAll bool) (map[string]interface{}, FieldErrors) {
	normalized := make(map[string]interface{})
	var errs FieldErrors

	for _, rule := range rules {
		path := joinPath(prefix, rule.Path)

		raw, present := input[rule.Path]
		if !present {
			if requireAll && rule.Required {
				errs = append(errs, FieldError{Field: path, Message: rule.message("required", fmt.Sprintf("%q is required", path))})
			}
			continue
		}

		switch rule.Kind {
		case KindObject:
			obj, ok := raw.(map[string]interface{})
			if !ok {
				errs = append(errs, FieldError{Field: path, Message: rule.message("type", fmt.Sprintf("%q must be an object", path))})
				continue
			}
			child, childErrs := validateObject(obj, rule.Children, path, true)
			if len(childErrs) > 0 {
				errs = append(errs, childErrs...)
				continue
			}
			normalized[rule.Path] = child

		case KindStringList:
			list, listErrs := validateList(raw, rule, path)
			if len(listErrs) > 0 {
				errs = append(errs, listErrs...)
				continue
			}
			normalized[rule.Path] = list

		default:
			value, ok := coerce(rule.Kind, raw)
			if !ok {
				errs = append(errs, FieldError{Field: path, Message: rule.message("type", typeMessage(rule.Kind, path))})
				continue
			}
			if s, isString := value.(string); isString && rule.Trim {
				value = strings.TrimSpace(s)
			}
			if msg, failed := rule.check(value, path); failed {
				errs = append(errs, FieldError{Field: path, Message: msg})
				continue
			}
			normalized[rule.Path] = value
		}
	}

	return normalized, errs
}

func validateList(raw interface{}, rule fieldRule, path string) ([]interface{}, FieldErrors) {
	items, ok := raw.([]interface{})
	if !ok {
		if strs, isStrings := raw.([]string); isStrings {
			items = make([]interface{}, len(strs))
			for i, s := range strs {
				items[i] = s
			}
		} else {
			return nil, FieldErrors{{Field: path, Message: rule.message("type", fmt.Sprintf("%q must be an array", path))}}
		}
	}

	var errs FieldErrors
	list := make([]interface{}, 0, len(items))
	for i, item := range items {
		itemPath := joinPath(path, strconv.Itoa(i))
		s, ok := item.(string)
		if !ok {
			errs = append(errs, FieldError{Field: itemPath, Message: fmt.Sprintf("%q must be a string", itemPath)})
			continue
		}
		if msg, failed := rule.check(s, itemPath); failed {
			errs = append(errs, FieldError{Field: itemPath, Message: msg})
			continue
		}
		list = append(list, s)
	}
	return list, errs
}

// check runs the rule's validator tag against value
func (r fieldRule) check(value interface{}, path string) (string, bool) {
	if r.Tag == "" {
		return "", false
	}

	err := validate.Var(value, r.Tag)
	if err == nil {
		return "", false
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return r.message(fe.Tag(), fmt.Sprintf("%q failed the %s=%s constraint", path, fe.Tag(), fe.Param())), true
	}
	return fmt.Sprintf("%q is invalid: %v", path, err), true
}

func (r fieldRule) message(tag, fallback string) string {
	if msg, ok := r.Messages[tag]; ok {
		return msg
	}
	return fallback
}

// coerce converts raw into the Go type of kind. Numeric strings are accepted
// for numbers and "true"/"false" for booleans; null is never accepted.
func coerce(kind Kind, raw interface{}) (interface{}, bool) {
	switch kind {
	case KindString:
		s, ok := raw.(string)
		return s, ok

	case KindNumber:
		var f float64
		switch v := raw.(type) {
		case float64:
			f = v
		case float32:
			f = float64(v)
		case int:
			f = float64(v)
		case int64:
			f = float64(v)
		case json.Number:
			parsed, err := v.Float64()
			if err != nil {
				return nil, false
			}
			f = parsed
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, false
			}
			f = parsed
		default:
			return nil, false
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false
		}
		return f, true

	case KindBool:
		switch v := raw.(type) {
		case bool:
			return v, true
		case string:
			if strings.EqualFold(v, "true") {
				return true, true
			}
			if strings.EqualFold(v, "false") {
				return false, true
			}
		}
		return nil, false
	}

	return nil, false
}

func typeMessage(kind Kind, path string) string {
	switch kind {
	case KindNumber:
		return fmt.Sprintf("%q must be a number", path)
	case KindBool:
		return fmt.Sprintf("%q must be a boolean", path)
	}
	return fmt.Sprintf("%q must be a string", path)
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
