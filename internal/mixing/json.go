package mixing

import (
	"encoding/json"

	"github.com/qmat-labs/corridor-cli/internal/jsonx"
)

// MarshalJSON encodes NaN outputs as null and the zero-coupling R as "inf",
// since encoding/json rejects non-finite numbers.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"r":            jsonx.Float(r.R),
		"sin2phi":      jsonx.Float(r.Sin2Phi),
		"delta_mix_ev": jsonx.Float(r.DeltaMix),
	})
}

// MarshalJSON flattens the embedded Result and applies the same non-finite
// encoding to the thermal metrics.
func (d Diag) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"r":            jsonx.Float(d.R),
		"sin2phi":      jsonx.Float(d.Sin2Phi),
		"delta_mix_ev": jsonx.Float(d.DeltaMix),
		"t_used_k":     d.TUsed,
		"kbt_ev":       d.KBT,
		"theta_t":      jsonx.Float(d.ThetaT),
		"tau":          jsonx.Float(d.Tau),
	})
}
