package validation_test

import (
	"testing"

	"github.com/localnerve/dronedb/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDrone() map[string]interface{} {
	return map[string]interface{}{
		"name":            "DJI Mini 3",
		"category":        "quadcopter",
		"manufacturer":    "DJI",
		"maxSpeed":        57.0,
		"maxRange":        5000.0,
		"weight":          249.0,
		"dimensions":      map[string]interface{}{"length": 20.0, "width": 20.0, "height": 8.0},
		"payloadCapacity": 200.0,
		"batteryCapacity": 2250.0,
		"firmwareVersion": "1.0.5",
	}
}

func fieldsOf(errs validation.FieldErrors) []string {
	fields := make([]string, len(errs))
	for i, fe := range errs {
		fields[i] = fe.Field
	}
	return fields
}

func TestCreateValidPayload(t *testing.T) {
	assert := assert.New(t)

	p, errs := validation.Validate(validDrone(), validation.ModeCreate)
	require.Empty(t, errs)
	require.NotNil(t, p)

	assert.Equal("DJI Mini 3", *p.Name)
	assert.Equal(57.0, *p.MaxSpeed)
	assert.Equal(8.0, p.Dimensions.Height)
	require.NotNil(t, p.Enabled)
	assert.True(*p.Enabled, "enabled defaults to true")
	require.NotNil(t, p.Features)
	assert.Empty(*p.Features)
	assert.Nil(p.Description)
}

func TestCreateMissingRequiredFields(t *testing.T) {
	required := []string{
		"name", "category", "maxSpeed", "maxRange", "weight",
		"dimensions", "payloadCapacity", "batteryCapacity", "firmwareVersion",
	}

	for _, field := range required {
		t.Run(field, func(t *testing.T) {
			input := validDrone()
			delete(input, field)

			p, errs := validation.Validate(input, validation.ModeCreate)
			assert.Nil(t, p)
			assert.Contains(t, fieldsOf(errs), field)
		})
	}
}

func TestCreateCollectsAllErrors(t *testing.T) {
	assert := assert.New(t)

	_, errs := validation.Validate(map[string]interface{}{"name": "Test"}, validation.ModeCreate)

	fields := fieldsOf(errs)
	assert.Len(errs, 8)
	assert.NotContains(fields, "name")
	assert.Contains(fields, "category")
	assert.Contains(fields, "firmwareVersion")
}

func TestCreateIsIdempotent(t *testing.T) {
	input := validDrone()
	input["features"] = []interface{}{"Compact Design", "38min Flight Time"}
	input["name"] = "  DJI Mini 3  "

	first, errs := validation.Validate(input, validation.ModeCreate)
	require.Empty(t, errs)

	second, errs := validation.Validate(first.Map(), validation.ModeCreate)
	require.Empty(t, errs)
	assert.Equal(t, first, second)
	assert.Equal(t, "DJI Mini 3", *second.Name)
	assert.Equal(t, []string{"Compact Design", "38min Flight Time"}, *second.Features)
}

func TestFirmwareVersion(t *testing.T) {
	cases := map[string]bool{
		"1.2.3":   true,
		"0.0.1":   true,
		"10.20.3": true,
		"1.2":     false,
		"v1.2.3":  false,
		"1.2.3.4": false,
		"1.2.x":   false,
		"":        false,
	}

	for version, valid := range cases {
		t.Run(version, func(t *testing.T) {
			input := validDrone()
			input["firmwareVersion"] = version

			_, errs := validation.Validate(input, validation.ModeCreate)
			if valid {
				assert.Empty(t, errs)
			} else {
				require.Len(t, errs, 1)
				assert.Equal(t, "firmwareVersion", errs[0].Field)
				assert.Equal(t, "Firmware version must be in format X.Y.Z (e.g., 1.0.0)", errs[0].Message)
			}
		})
	}
}

func TestMaxSpeedBounds(t *testing.T) {
	cases := []struct {
		speed   float64
		valid   bool
		message string
	}{
		{1, true, ""},
		{500, true, ""},
		{0, false, "Max speed must be at least 1 km/h"},
		{501, false, "Max speed cannot exceed 500 km/h"},
	}

	for _, tc := range cases {
		input := validDrone()
		input["maxSpeed"] = tc.speed

		_, errs := validation.Validate(input, validation.ModeCreate)
		if tc.valid {
			assert.Empty(t, errs, "maxSpeed %v", tc.speed)
			continue
		}
		require.Len(t, errs, 1, "maxSpeed %v", tc.speed)
		assert.Equal(t, tc.message, errs[0].Message)
	}
}

func TestNumericBounds(t *testing.T) {
	cases := []struct {
		field string
		value float64
		valid bool
	}{
		{"maxRange", 100, true},
		{"maxRange", 99.9, false},
		{"weight", 50, true},
		{"weight", 50000, true},
		{"weight", 49, false},
		{"weight", 50001, false},
		{"payloadCapacity", 0, true},
		{"payloadCapacity", -1, false},
		{"batteryCapacity", 500, true},
		{"batteryCapacity", 499, false},
	}

	for _, tc := range cases {
		input := validDrone()
		input[tc.field] = tc.value

		_, errs := validation.Validate(input, validation.ModeCreate)
		if tc.valid {
			assert.Empty(t, errs, "%s=%v", tc.field, tc.value)
		} else {
			assert.Equal(t, []string{tc.field}, fieldsOf(errs), "%s=%v", tc.field, tc.value)
		}
	}
}

func TestDimensions(t *testing.T) {
	assert := assert.New(t)

	input := validDrone()
	input["dimensions"] = map[string]interface{}{"length": 20.0, "width": 0.0}
	_, errs := validation.Validate(input, validation.ModeCreate)
	assert.ElementsMatch([]string{"dimensions.width", "dimensions.height"}, fieldsOf(errs))

	input["dimensions"] = map[string]interface{}{"length": -1.0, "width": 1.0, "height": 1.0}
	_, errs = validation.Validate(input, validation.ModeCreate)
	require.Len(t, errs, 1)
	assert.Equal("Length must be positive", errs[0].Message)

	input["dimensions"] = "20x20x8"
	_, errs = validation.Validate(input, validation.ModeCreate)
	assert.Equal([]string{"dimensions"}, fieldsOf(errs))

	// a partial triple is rejected on update too
	_, errs = validation.Validate(map[string]interface{}{
		"dimensions": map[string]interface{}{"height": 9.0},
	}, validation.ModeUpdate)
	assert.ElementsMatch([]string{"dimensions.length", "dimensions.width"}, fieldsOf(errs))
}

func TestUnknownFieldsAreDropped(t *testing.T) {
	input := validDrone()
	input["color"] = "red"
	input["dimensions"].(map[string]interface{})["depth"] = 3.0

	p, errs := validation.Validate(input, validation.ModeCreate)
	require.Empty(t, errs)

	out := p.Map()
	assert.NotContains(t, out, "color")
	assert.NotContains(t, out["dimensions"], "depth")
}

func TestStringRules(t *testing.T) {
	assert := assert.New(t)

	input := validDrone()
	input["name"] = "  A  "
	_, errs := validation.Validate(input, validation.ModeCreate)
	require.Len(t, errs, 1)
	assert.Equal("Name must be at least 2 characters", errs[0].Message)

	input = validDrone()
	input["category"] = "helicopter"
	_, errs = validation.Validate(input, validation.ModeCreate)
	assert.Equal([]string{"category"}, fieldsOf(errs))

	input = validDrone()
	input["manufacturer"] = ""
	input["description"] = ""
	p, errs := validation.Validate(input, validation.ModeCreate)
	require.Empty(t, errs)
	assert.Equal("", *p.Manufacturer)
	assert.Equal("", *p.Description)

	input = validDrone()
	input["name"] = 42.0
	_, errs = validation.Validate(input, validation.ModeCreate)
	require.Len(t, errs, 1)
	assert.Equal(`"name" must be a string`, errs[0].Message)
}

func TestFeatures(t *testing.T) {
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'x'
	}

	input := validDrone()
	input["features"] = []interface{}{"ok", string(long), 3.0}

	_, errs := validation.Validate(input, validation.ModeCreate)
	assert.Equal(t, []string{"features.1", "features.2"}, fieldsOf(errs))
}

func TestCoercion(t *testing.T) {
	assert := assert.New(t)

	input := validDrone()
	input["maxSpeed"] = "72"
	input["enabled"] = "false"

	p, errs := validation.Validate(input, validation.ModeCreate)
	require.Empty(t, errs)
	assert.Equal(72.0, *p.MaxSpeed)
	assert.False(*p.Enabled)

	input["maxSpeed"] = "fast"
	input["weight"] = nil
	_, errs = validation.Validate(input, validation.ModeCreate)
	assert.ElementsMatch([]string{"maxSpeed", "weight"}, fieldsOf(errs))
}

func TestUpdateMode(t *testing.T) {
	assert := assert.New(t)

	p, errs := validation.Validate(map[string]interface{}{"maxSpeed": 80.0, "enabled": false}, validation.ModeUpdate)
	require.Empty(t, errs)
	assert.Equal([]string{"maxSpeed", "enabled"}, p.Fields())
	assert.Nil(p.Name)

	_, errs = validation.Validate(map[string]interface{}{"maxSpeed": 1000.0}, validation.ModeUpdate)
	assert.Equal([]string{"maxSpeed"}, fieldsOf(errs))
}

func TestPayloadMap(t *testing.T) {
	p, errs := validation.Validate(map[string]interface{}{
		"weight":     "300",
		"enabled":    false,
		"features":   []interface{}{"GPS"},
		"dimensions": map[string]interface{}{"length": 1.0, "width": 2.0, "height": 3.0},
	}, validation.ModeUpdate)
	require.Empty(t, errs)

	assert.Equal(t, map[string]interface{}{
		"weight":     300.0,
		"enabled":    false,
		"features":   []interface{}{"GPS"},
		"dimensions": map[string]interface{}{"length": 1.0, "width": 2.0, "height": 3.0},
	}, p.Map())
	assert.Equal(t, []string{"weight", "dimensions", "enabled", "features"}, p.Fields())
}

func TestUpdateNothingToUpdate(t *testing.T) {
	for _, input := range []map[string]interface{}{
		{},
		{"color": "red", "_id": "abc"},
	} {
		p, errs := validation.Validate(input, validation.ModeUpdate)
		assert.Nil(t, p)
		require.Len(t, errs, 1)
		assert.Equal(t, validation.NothingToUpdateMessage, errs[0].Message)
	}
}

func TestValidateJSON(t *testing.T) {
	assert := assert.New(t)

	_, err := validation.ValidateJSON([]byte(`[1,2]`), validation.ModeCreate)
	assert.ErrorIs(err, validation.ErrMalformedBody)

	_, err = validation.ValidateJSON([]byte(`{"name":`), validation.ModeCreate)
	assert.ErrorIs(err, validation.ErrMalformedBody)

	_, err = validation.ValidateJSON([]byte(`{"name":"X1"}`), validation.ModeCreate)
	var fieldErrs validation.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(fieldErrs, 8)

	p, err := validation.ValidateJSON([]byte(`{"weight": 300, "features": ["GPS"]}`), validation.ModeUpdate)
	require.NoError(t, err)
	assert.Equal(300.0, *p.Weight)
	assert.Equal([]string{"GPS"}, *p.Features)
}

func TestApplyTo(t *testing.T) {
	p, errs := validation.Validate(validDrone(), validation.ModeCreate)
	require.Empty(t, errs)
	d := p.ToModel()

	update, errs := validation.Validate(map[string]interface{}{"name": "DJI Mini 4", "features": []interface{}{"GPS"}}, validation.ModeUpdate)
	require.Empty(t, errs)
	update.ApplyTo(&d)

	assert.Equal(t, "DJI Mini 4", d.Name)
	assert.Equal(t, 57.0, d.MaxSpeed)
	assert.Equal(t, []string{"GPS"}, []string(d.Features))
	assert.True(t, d.Enabled)
}
