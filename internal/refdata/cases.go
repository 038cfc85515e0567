// Package refdata loads the CSV reference tables: the corridor case table
// and the optional periodic-element table. Rows are typed records with named
// fields for everything the calculator and classifier consume, plus an Extra
// side table so schema drift in the files never breaks parsing.
package refdata

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/qmat-labs/corridor-cli/internal/numparse"
)

// Status tags how much confidence a case row carries. Unknown values parse
// as StatusUnset.
type Status string

const (
	StatusHigh         Status = "high"
	StatusLow          Status = "low"
	StatusInsufficient Status = "insufficient"
	StatusUnset        Status = ""
)

// ParseStatus normalizes a raw status cell.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return StatusHigh
	case "low":
		return StatusLow
	case "insufficient":
		return StatusInsufficient
	default:
		return StatusUnset
	}
}

// Case is one row of the corridor case table. Numeric fields are NaN when
// the column is absent or unparseable; the mixing engine treats NaN as
// "unknown" and propagates it.
type Case struct {
	Symbol    string
	DMC       string
	DeltaEV   float64
	VEV       float64
	DeltaOpEV float64
	TK        float64
	Status    Status
	Note      string
	Reason    string
	CRS       string
	Extra     map[string]string
}

// caseAliases maps normalized header names to canonical case fields. The
// aliases cover the column spellings seen across dataset revisions.
var caseAliases = map[string]string{
	"symbol":     "symbol",
	"dmc":        "dmc",
	"delta_ev":   "delta",
	"delta":      "delta",
	"v_ev":       "v",
	"v":          "v",
	"deltaop_ev": "dop",
	"dop_ev":     "dop",
	"dop":        "dop",
	"deltaop":    "dop",
	"t_k":        "t",
	"t":          "t",
	"status":     "status",
	"note":       "note",
	"reason":     "reason",
	"crs":        "crs",
}

// ParseCases reads the case table from r. The first row is the header;
// unknown columns land in Case.Extra under their original names. Rows that
// are entirely empty are skipped.
func ParseCases(r io.Reader) ([]Case, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "refdata: read cases csv")
	}
	if len(records) == 0 {
		return nil, eris.New("refdata: cases csv is empty")
	}

	header := records[0]
	type column struct {
		canonical string // empty for extra columns
		name      string // original header text
	}
	cols := make([]column, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		cols[i] = column{canonical: caseAliases[strings.ToLower(name)], name: name}
	}

	var cases []Case
	for _, row := range records[1:] {
		if blankRow(row) {
			continue
		}

		c := Case{
			DeltaEV:   math.NaN(),
			VEV:       math.NaN(),
			DeltaOpEV: math.NaN(),
			TK:        math.NaN(),
		}
		for i, cell := range row {
			if i >= len(cols) {
				break
			}
			cell = strings.TrimSpace(cell)
			switch cols[i].canonical {
			case "symbol":
				c.Symbol = cell
			case "dmc":
				c.DMC = cell
			case "delta":
				c.DeltaEV = numparse.Float(cell, math.NaN())
			case "v":
				c.VEV = numparse.Float(cell, math.NaN())
			case "dop":
				c.DeltaOpEV = numparse.Float(cell, math.NaN())
			case "t":
				c.TK = numparse.Float(cell, math.NaN())
			case "status":
				c.Status = ParseStatus(cell)
			case "note":
				c.Note = cell
			case "reason":
				c.Reason = cell
			case "crs":
				c.CRS = cell
			default:
				if cell != "" {
					if c.Extra == nil {
						c.Extra = make(map[string]string)
					}
					c.Extra[cols[i].name] = cell
				}
			}
		}
		cases = append(cases, c)
	}

	return cases, nil
}

// LoadCasesFile reads the case table from path. A missing case table is an
// error the caller surfaces; the calculator itself never depends on it.
func LoadCasesFile(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "refdata: open cases file")
	}
	defer f.Close()

	cases, err := ParseCases(f)
	if err != nil {
		return nil, eris.Wrapf(err, "refdata: parse %s", path)
	}
	return cases, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
