package compute

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// exportHeader is the column order of computed exports, the original input
// columns followed by the derived ones.
var exportHeader = []string{
	"symbol", "DMC", "delta_eV", "V_eV", "DeltaOp_eV", "T_K",
	"status", "note", "reason",
	"R", "sin2phi", "DeltaMix_eV", "kBT_eV", "thetaT", "tau", "CRS_auto",
}

// WriteCSV writes computed rows as CSV. NaN cells are written empty so the
// output round-trips through the same tolerant parser that read the input.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return eris.Wrap(err, "compute: write csv header")
	}
	for _, r := range rows {
		if err := cw.Write(exportRecord(r)); err != nil {
			return eris.Wrap(err, "compute: write csv row")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "compute: flush csv")
}

// WriteXLSX writes computed rows as a single-sheet workbook.
func WriteXLSX(path string, rows []Row) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("cases")
	if err != nil {
		return eris.Wrap(err, "compute: add xlsx sheet")
	}

	hr := sheet.AddRow()
	for _, h := range exportHeader {
		hr.AddCell().Value = h
	}
	for _, r := range rows {
		xr := sheet.AddRow()
		for _, cell := range exportRecord(r) {
			xr.AddCell().Value = cell
		}
	}

	return eris.Wrapf(file.Save(path), "compute: save xlsx %s", path)
}

func exportRecord(r Row) []string {
	return []string{
		r.Symbol,
		r.DMC,
		formatFloat(r.DeltaEV),
		formatFloat(r.VEV),
		formatFloat(r.DeltaOpEV),
		formatFloat(r.TK),
		string(r.Status),
		r.Note,
		r.Reason,
		formatFloat(r.R),
		formatFloat(r.Sin2Phi),
		formatFloat(r.DeltaMix),
		formatFloat(r.KBT),
		formatFloat(r.ThetaT),
		formatFloat(r.Tau),
		r.CRSLabel,
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ""
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
