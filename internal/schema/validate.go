package schema

import (
	"fmt"
	"math"

	validatorv10 "github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
)

var validate = validatorv10.New()

// Validate checks a raw payload against the schema and returns the
// document to persist. Optional fields absent from the payload are filled
// with their declared defaults; undeclared payload fields are dropped.
// All field errors are collected before returning so a client can show
// every problem at once. Nested array elements report their errors as
// "items[i].field". Validation is a pure function of schema + payload.
func (s *Schema) Validate(payload map[string]any) (bson.M, map[string]string) {
	doc := bson.M{}
	errs := map[string]string{}

	for _, f := range s.Fields {
		raw, present := payload[f.Name]
		if !present || raw == nil {
			if f.Required {
				errs[f.Name] = "missing field " + f.Name
			} else if f.Default != nil {
				doc[f.Name] = f.Default
			}
			continue
		}

		if f.Type == Array {
			value, itemErrs := f.validateArray(raw)
			for k, msg := range itemErrs {
				errs[k] = msg
			}
			if len(itemErrs) == 0 {
				doc[f.Name] = value
			}
			continue
		}

		value, msg := f.validateScalar(raw)
		if msg != "" {
			errs[f.Name] = msg
			continue
		}
		doc[f.Name] = value
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return doc, nil
}

func (f *Field) validateArray(raw any) ([]bson.M, map[string]string) {
	errs := map[string]string{}

	items, ok := raw.([]any)
	if !ok {
		errs[f.Name] = "must be an array"
		return nil, errs
	}
	if len(items) == 0 {
		errs[f.Name] = "must contain at least one item"
		return nil, errs
	}

	out := make([]bson.M, 0, len(items))
	for i, el := range items {
		m, ok := el.(map[string]any)
		if !ok {
			errs[fmt.Sprintf("%s[%d]", f.Name, i)] = "must be an object"
			continue
		}
		sub, subErrs := f.Items.Validate(m)
		if len(subErrs) > 0 {
			for k, msg := range subErrs {
				errs[fmt.Sprintf("%s[%d].%s", f.Name, i, k)] = msg
			}
			continue
		}
		out = append(out, sub)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (f *Field) validateScalar(raw any) (any, string) {
	switch f.Type {
	case Text:
		s, ok := raw.(string)
		if !ok {
			return nil, "must be a string"
		}
		return s, ""

	case Email:
		s, ok := raw.(string)
		if !ok {
			return nil, "must be a string"
		}
		if err := validate.Var(s, "email"); err != nil {
			return nil, "must be a valid email address"
		}
		return s, ""

	case Boolean:
		b, ok := raw.(bool)
		if !ok {
			return nil, "must be a boolean"
		}
		return b, ""

	case Number:
		n, ok := toFloat(raw)
		if !ok {
			return nil, "must be a number"
		}
		if msg := f.checkBounds(n); msg != "" {
			return nil, msg
		}
		return n, ""

	case Integer:
		n, ok := toFloat(raw)
		if !ok || n != math.Trunc(n) {
			return nil, "must be an integer"
		}
		if msg := f.checkBounds(n); msg != "" {
			return nil, msg
		}
		return int64(n), ""
	}
	return nil, "unsupported field type"
}

func (f *Field) checkBounds(n float64) string {
	if f.Min != nil && n < *f.Min {
		return fmt.Sprintf("must be greater than or equal to %g", *f.Min)
	}
	if f.Max != nil && n > *f.Max {
		return fmt.Sprintf("must be less than or equal to %g", *f.Max)
	}
	return ""
}

// toFloat widens the numeric types a decoded JSON payload or a caller
// may hand us. encoding/json always produces float64.
func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
