package compute

import (
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/qmat-labs/corridor-cli/internal/jsonx"
	"github.com/qmat-labs/corridor-cli/internal/refdata"
)

// rowJSON is the wire shape of a Row. Float fields are `any` so NaN can be
// null and infinities can be the strings "inf"/"-inf"; encoding/json cannot
// represent either natively.
type rowJSON struct {
	Symbol    string            `json:"symbol,omitempty"`
	DMC       string            `json:"dmc"`
	DeltaEV   any               `json:"delta_ev"`
	VEV       any               `json:"v_ev"`
	DeltaOpEV any               `json:"delta_op_ev"`
	TK        any               `json:"t_k"`
	Status    string            `json:"status,omitempty"`
	Note      string            `json:"note,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	CRS       string            `json:"crs,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`

	R        any     `json:"r"`
	Sin2Phi  any     `json:"sin2phi"`
	DeltaMix any     `json:"delta_mix_ev"`
	TUsed    int     `json:"t_used_k"`
	KBT      float64 `json:"kbt_ev"`
	ThetaT   any     `json:"theta_t"`
	Tau      any     `json:"tau"`

	CRSAuto      int    `json:"crs_auto"`
	CRSLabel     string `json:"crs_label"`
	Unclassified bool   `json:"unclassified"`
}

func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(rowJSON{
		Symbol:    r.Symbol,
		DMC:       r.DMC,
		DeltaEV:   jsonx.Float(r.DeltaEV),
		VEV:       jsonx.Float(r.VEV),
		DeltaOpEV: jsonx.Float(r.DeltaOpEV),
		TK:        jsonx.Float(r.TK),
		Status:    string(r.Status),
		Note:      r.Note,
		Reason:    r.Reason,
		CRS:       r.CRS,
		Extra:     r.Extra,

		R:        jsonx.Float(r.R),
		Sin2Phi:  jsonx.Float(r.Sin2Phi),
		DeltaMix: jsonx.Float(r.DeltaMix),
		TUsed:    r.TUsed,
		KBT:      r.KBT,
		ThetaT:   jsonx.Float(r.ThetaT),
		Tau:      jsonx.Float(r.Tau),

		CRSAuto:      r.CRSAuto,
		CRSLabel:     r.CRSLabel,
		Unclassified: r.Unclassified,
	})
}

func (r *Row) UnmarshalJSON(data []byte) error {
	var w rowJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return eris.Wrap(err, "compute: unmarshal row")
	}

	r.Symbol = w.Symbol
	r.DMC = w.DMC
	r.DeltaEV = jsonx.FloatValue(w.DeltaEV)
	r.VEV = jsonx.FloatValue(w.VEV)
	r.DeltaOpEV = jsonx.FloatValue(w.DeltaOpEV)
	r.TK = jsonx.FloatValue(w.TK)
	r.Status = refdata.ParseStatus(w.Status)
	r.Note = w.Note
	r.Reason = w.Reason
	r.CRS = w.CRS
	r.Extra = w.Extra

	r.R = jsonx.FloatValue(w.R)
	r.Sin2Phi = jsonx.FloatValue(w.Sin2Phi)
	r.DeltaMix = jsonx.FloatValue(w.DeltaMix)
	r.TUsed = w.TUsed
	r.KBT = w.KBT
	r.ThetaT = jsonx.FloatValue(w.ThetaT)
	r.Tau = jsonx.FloatValue(w.Tau)

	r.CRSAuto = w.CRSAuto
	r.CRSLabel = w.CRSLabel
	r.Unclassified = w.Unclassified
	return nil
}
