package estimate

import (
	"errors"
	"fmt"

	"archcost/internal/catalog"
)

// ValidateCustomConfig checks stored custom-config values against the
// field specs of the service's category. Number fields must hold
// numeric values, select fields one of their declared options, text
// fields text. Field names the category does not declare are ignored —
// the upstream model invents keys and that is not the user's problem.
// All violations are reported together.
func ValidateCustomConfig(cfg catalog.CategoryConfig, values map[string]ConfigValue) error {
	specs := make(map[string]catalog.FieldSpec, len(cfg.CustomFields))
	for _, f := range cfg.CustomFields {
		specs[f.Name] = f
	}

	var errs []error
	for name, value := range values {
		spec, ok := specs[name]
		if !ok {
			continue
		}

		switch spec.Kind {
		case catalog.InputNumber:
			if value.Kind != NumberValue {
				errs = append(errs, fmt.Errorf("field %q expects a number, got %q", name, value.Text))
			}
		case catalog.InputSelect:
			if value.Kind != TextValue {
				errs = append(errs, fmt.Errorf("field %q expects a selection, got number %g", name, value.Number))
				continue
			}
			if !containsOption(spec.Options, value.Text) {
				errs = append(errs, fmt.Errorf("field %q has no option %q", name, value.Text))
			}
		case catalog.InputText:
			if value.Kind != TextValue {
				errs = append(errs, fmt.Errorf("field %q expects text, got number %g", name, value.Number))
			}
		}
	}

	return errors.Join(errs...)
}

func containsOption(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
