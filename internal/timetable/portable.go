package timetable

import "fmt"

// Portable timetable document handling.
//
// The wire form keys each day as "d0".."d5" so the document survives stores
// that cannot hold nested arrays of arrays. The decoder is more forgiving:
// it accepts the keyed form (optionally wrapped under a "timetableByDay"
// field) as well as the plain nested form.

// EncodePortable serializes a grid into the keyed transport form.
func EncodePortable(g *Grid) map[string][]string {
	out := make(map[string][]string, NumDays)
	rows := g.Rows()
	for d, row := range rows {
		out[dayKey(d)] = row
	}
	return out
}

// DecodePortable turns a transport value back into nested rows. It accepts
// either the nested form (sequence of day sequences) or the keyed form
// ("d0".."d5"), with string values coerced from whatever the codec produced.
// Returns (nil, false) when neither shape matches the expected dimensions.
func DecodePortable(v any) ([][]string, bool) {
	switch data := v.(type) {
	case [][]string:
		return decodeNestedStrings(data)
	case []any:
		return decodeNested(data)
	case map[string][]string:
		return decodeKeyedStrings(data)
	case map[string]any:
		if wrapped, ok := data["timetableByDay"]; ok {
			if rows, ok := DecodePortable(wrapped); ok {
				return rows, true
			}
		}
		return decodeKeyed(data)
	}
	return nil, false
}

func decodeNestedStrings(data [][]string) ([][]string, bool) {
	if len(data) != NumDays {
		return nil, false
	}
	rows := make([][]string, NumDays)
	for d, row := range data {
		if len(row) != NumSlots {
			return nil, false
		}
		out := make([]string, NumSlots)
		copy(out, row)
		rows[d] = out
	}
	return rows, true
}

func decodeNested(data []any) ([][]string, bool) {
	if len(data) != NumDays {
		return nil, false
	}
	rows := make([][]string, NumDays)
	for d, rv := range data {
		row, ok := decodeRow(rv)
		if !ok {
			return nil, false
		}
		rows[d] = row
	}
	return rows, true
}

func decodeKeyedStrings(data map[string][]string) ([][]string, bool) {
	rows := make([][]string, NumDays)
	for d := 0; d < NumDays; d++ {
		row, ok := data[dayKey(d)]
		if !ok || len(row) != NumSlots {
			return nil, false
		}
		out := make([]string, NumSlots)
		copy(out, row)
		rows[d] = out
	}
	return rows, true
}

func decodeKeyed(data map[string]any) ([][]string, bool) {
	rows := make([][]string, NumDays)
	for d := 0; d < NumDays; d++ {
		rv, ok := data[dayKey(d)]
		if !ok {
			return nil, false
		}
		row, ok := decodeRow(rv)
		if !ok {
			return nil, false
		}
		rows[d] = row
	}
	return rows, true
}

func decodeRow(v any) ([]string, bool) {
	switch row := v.(type) {
	case []string:
		if len(row) != NumSlots {
			return nil, false
		}
		out := make([]string, NumSlots)
		copy(out, row)
		return out, true
	case []any:
		if len(row) != NumSlots {
			return nil, false
		}
		out := make([]string, NumSlots)
		for i, cell := range row {
			out[i] = coerceString(cell)
		}
		return out, true
	}
	return nil, false
}

func coerceString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func dayKey(d int) string {
	return fmt.Sprintf("d%d", d)
}
