package refdata

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Element is one row of the optional periodic-element table, the alternate
// navigation surface into the case data.
type Element struct {
	Symbol   string            `json:"symbol"`
	Name     string            `json:"name,omitempty"`
	Z        int               `json:"z,omitempty"`
	Category string            `json:"category,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// ElementTable is an element list with a case-insensitive symbol index.
type ElementTable struct {
	Elements []Element

	bySymbol map[string]*Element
}

var elementAliases = map[string]string{
	"symbol":        "symbol",
	"name":          "name",
	"element":       "name",
	"z":             "z",
	"number":        "z",
	"atomic_number": "z",
	"category":      "category",
	"group":         "category",
}

// ParseElements reads the element table from r and indexes it by symbol.
func ParseElements(r io.Reader) (*ElementTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "refdata: read elements csv")
	}
	if len(records) == 0 {
		return nil, eris.New("refdata: elements csv is empty")
	}

	header := records[0]
	canon := make([]string, len(header))
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
		canon[i] = elementAliases[strings.ToLower(names[i])]
	}

	t := &ElementTable{bySymbol: make(map[string]*Element)}
	for _, row := range records[1:] {
		if blankRow(row) {
			continue
		}

		var e Element
		for i, cell := range row {
			if i >= len(canon) {
				break
			}
			cell = strings.TrimSpace(cell)
			switch canon[i] {
			case "symbol":
				e.Symbol = cell
			case "name":
				e.Name = cell
			case "z":
				if z, err := strconv.Atoi(cell); err == nil {
					e.Z = z
				}
			case "category":
				e.Category = cell
			default:
				if cell != "" {
					if e.Extra == nil {
						e.Extra = make(map[string]string)
					}
					e.Extra[names[i]] = cell
				}
			}
		}
		if e.Symbol == "" {
			continue
		}
		t.Elements = append(t.Elements, e)
	}

	for i := range t.Elements {
		e := &t.Elements[i]
		t.bySymbol[strings.ToLower(e.Symbol)] = e
	}
	return t, nil
}

// LoadElementsFile reads the element table from path. The table is optional:
// callers treat a load failure as an explicit "no data" state, not a fatal
// error.
func LoadElementsFile(path string) (*ElementTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "refdata: open elements file")
	}
	defer f.Close()

	t, err := ParseElements(f)
	if err != nil {
		return nil, eris.Wrapf(err, "refdata: parse %s", path)
	}
	return t, nil
}

// BySymbol returns the element with the given symbol (case-insensitive), or
// nil when absent or when the table failed to load.
func (t *ElementTable) BySymbol(symbol string) *Element {
	if t == nil {
		return nil
	}
	return t.bySymbol[strings.ToLower(strings.TrimSpace(symbol))]
}
