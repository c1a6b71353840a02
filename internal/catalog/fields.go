// Package catalog classifies identified services into known AWS service
// families and describes the configuration surface each family exposes:
// whether a count or instance-type input applies, and which
// category-specific usage fields are collected.
//
// The custom usage fields are display/collection metadata only. They are
// deliberately not consumed by the cost estimator; see internal/estimate.
package catalog

// InputKind is the input widget type for a custom usage field.
type InputKind string

const (
	// InputNumber is a numeric entry field.
	InputNumber InputKind = "number"
	// InputSelect is a fixed-option dropdown.
	InputSelect InputKind = "select"
	// InputText is a free-text entry field.
	InputText InputKind = "text"
)

// FieldSpec describes one category-specific usage field.
type FieldSpec struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Kind        InputKind `json:"kind"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty"`
}

// CategoryConfig describes the UI configuration surface for one service
// family: which standard inputs apply and which usage fields to collect.
type CategoryConfig struct {
	// Key is the stable category identifier, e.g. "ec2".
	Key string `json:"key"`

	// DisplayName is the human-readable family name.
	DisplayName string `json:"display_name"`

	// ShowCount indicates whether a resource-count input applies.
	ShowCount bool `json:"show_count"`

	// CountLabel labels the count input when shown, e.g. "Instance count".
	CountLabel string `json:"count_label,omitempty"`

	// ShowInstanceType indicates whether an instance-type selector applies.
	ShowInstanceType bool `json:"show_instance_type"`

	// InstanceTypeOptions is the fixed menu for the selector when shown.
	InstanceTypeOptions []string `json:"instance_type_options,omitempty"`

	// CustomFields are the category-specific usage fields, in display order.
	CustomFields []FieldSpec `json:"custom_fields,omitempty"`

	// PricingNote is a human-readable description of the pricing basis.
	PricingNote string `json:"pricing_note"`
}

func numberField(name, label, placeholder string) FieldSpec {
	return FieldSpec{Name: name, Label: label, Kind: InputNumber, Placeholder: placeholder}
}

func selectField(name, label string, options ...string) FieldSpec {
	return FieldSpec{Name: name, Label: label, Kind: InputSelect, Options: options}
}

func textField(name, label, placeholder string) FieldSpec {
	return FieldSpec{Name: name, Label: label, Kind: InputText, Placeholder: placeholder}
}
