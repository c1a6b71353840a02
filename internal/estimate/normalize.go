package estimate

import "github.com/goccy/go-json"

// NormalizeCount applies the single count policy used everywhere in the
// estimator: a missing, zero, or negative count means one resource.
// The configuration UI lets counts be cleared or typed freely, and the
// model occasionally omits them; an estimate of zero instances is never
// what the user meant.
func NormalizeCount(count int) int {
	if count < 1 {
		return 1
	}
	return count
}

// CoerceCount converts an arbitrary decoded JSON value into a count
// under the same policy. The vision model emits counts as numbers,
// numeric strings, or not at all.
func CoerceCount(raw any) int {
	switch v := raw.(type) {
	case float64:
		return NormalizeCount(int(v))
	case int:
		return NormalizeCount(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return NormalizeCount(int(n))
		}
		if f, err := v.Float64(); err == nil {
			return NormalizeCount(int(f))
		}
		return 1
	case string:
		var n json.Number = json.Number(v)
		if f, err := n.Float64(); err == nil {
			return NormalizeCount(int(f))
		}
		return 1
	default:
		return 1
	}
}

// CoerceGB converts an arbitrary decoded JSON value into a GB figure.
// Non-numeric and negative values collapse to 0, which the pricing
// rules then replace with their documented per-service defaults.
func CoerceGB(raw any) float64 {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case json.Number:
		f, _ = v.Float64()
	case string:
		n := json.Number(v)
		f, _ = n.Float64()
	default:
		return 0
	}
	if f < 0 {
		return 0
	}
	return f
}
