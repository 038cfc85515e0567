// Package jsonx maps non-finite floats in and out of JSON, which encoding/json
// rejects outright. NaN ("unknown") becomes null; infinities become the
// strings "inf" and "-inf" so an uncoupled system's R survives a round trip.
package jsonx

import "math"

// Float converts f to a JSON-encodable value: null for NaN, "inf"/"-inf"
// for infinities, the number itself otherwise.
func Float(f float64) any {
	switch {
	case math.IsNaN(f):
		return nil
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return f
	}
}

// FloatValue reverses Float for a decoded JSON value. Unknown shapes decode
// as NaN rather than erroring, matching the tolerant-parser convention.
func FloatValue(v any) float64 {
	switch t := v.(type) {
	case nil:
		return math.NaN()
	case float64:
		return t
	case string:
		switch t {
		case "inf":
			return math.Inf(1)
		case "-inf":
			return math.Inf(-1)
		}
	}
	return math.NaN()
}
