package validation

// Kind is the JSON type a field must have once coerced
type Kind int

// Field kinds understood by the validation routine
const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindStringList
	KindObject
)

// fieldRule declares the constraints of a single payload field.
// Tag is a go-playground/validator tag applied to the coerced value
// (to each element for KindStringList). Messages maps a failed validator
// tag, or one of the pseudo tags "required" and "type", to the message
// reported for this field.
type fieldRule struct {
	Path     string
	Kind     Kind
	Required bool
	Tag      string
	Trim     bool
	Messages map[string]string
	Children []fieldRule
}

var dimensionRules = []fieldRule{
	{
		Path: "length", Kind: KindNumber, Required: true, Tag: "gt=0",
		Messages: map[string]string{
			"type": "Length must be a number",
			"gt":   "Length must be positive",
		},
	},
	{
		Path: "width", Kind: KindNumber, Required: true, Tag: "gt=0",
		Messages: map[string]string{
			"type": "Width must be a number",
			"gt":   "Width must be positive",
		},
	},
	{
		Path: "height", Kind: KindNumber, Required: true, Tag: "gt=0",
		Messages: map[string]string{
			"type": "Height must be a number",
			"gt":   "Height must be positive",
		},
	},
}

// droneRules is the record schema. Order is the order errors are reported in.
var droneRules = []fieldRule{
	{
		Path: "name", Kind: KindString, Required: true, Tag: "min=2,max=100", Trim: true,
		Messages: map[string]string{
			"required": "Drone name is required",
			"min":      "Name must be at least 2 characters",
			"max":      "Name cannot exceed 100 characters",
		},
	},
	{
		Path: "category", Kind: KindString, Required: true, Tag: "drone_category",
		Messages: map[string]string{
			"required":       "Category is required",
			"drone_category": "Category must be one of: quadcopter, fixed-wing, hexacopter, octocopter",
		},
	},
	{
		Path: "manufacturer", Kind: KindString, Tag: "max=100", Trim: true,
		Messages: map[string]string{
			"max": "Manufacturer name too long",
		},
	},
	{
		Path: "maxSpeed", Kind: KindNumber, Required: true, Tag: "gte=1,lte=500",
		Messages: map[string]string{
			"required": "Max speed is required",
			"gte":      "Max speed must be at least 1 km/h",
			"lte":      "Max speed cannot exceed 500 km/h",
		},
	},
	{
		Path: "maxRange", Kind: KindNumber, Required: true, Tag: "gte=100",
		Messages: map[string]string{
			"required": "Max range is required",
			"gte":      "Max range must be at least 100 meters",
		},
	},
	{
		Path: "weight", Kind: KindNumber, Required: true, Tag: "gte=50,lte=50000",
		Messages: map[string]string{
			"required": "Weight is required",
			"gte":      "Weight must be at least 50 grams",
			"lte":      "Weight cannot exceed 50kg",
		},
	},
	{
		Path: "dimensions", Kind: KindObject, Required: true, Children: dimensionRules,
		Messages: map[string]string{
			"required": "Dimensions are required",
			"type":     "Dimensions must be an object with length, width and height",
		},
	},
	{
		Path: "payloadCapacity", Kind: KindNumber, Required: true, Tag: "gte=0",
		Messages: map[string]string{
			"required": "Payload capacity is required",
			"gte":      "Payload capacity cannot be negative",
		},
	},
	{
		Path: "batteryCapacity", Kind: KindNumber, Required: true, Tag: "gte=500",
		Messages: map[string]string{
			"required": "Battery capacity is required",
			"gte":      "Battery capacity must be at least 500 mAh",
		},
	},
	{
		Path: "firmwareVersion", Kind: KindString, Required: true, Tag: "firmware_version",
		Messages: map[string]string{
			"required":         "Firmware version is required",
			"firmware_version": "Firmware version must be in format X.Y.Z (e.g., 1.0.0)",
		},
	},
	{
		Path: "enabled", Kind: KindBool,
	},
	{
		Path: "features", Kind: KindStringList, Tag: "max=50",
		Messages: map[string]string{
			"type": "Features must be a list of strings",
			"max":  "Feature cannot exceed 50 characters",
		},
	},
	{
		Path: "description", Kind: KindString, Tag: "max=1000",
		Messages: map[string]string{
			"max": "Description too long",
		},
	},
}

// defaults applied in create mode when the field is absent
var createDefaults = map[string]interface{}{
	"enabled":  true,
	"features": []interface{}{},
}
