package tabular

import (
	"math"
	"strconv"
	"strings"
)

// Value is a single table cell: a finite number, a piece of text, or missing.
// Numeric NaN/Inf collapse to missing so downstream consumers only ever see
// finite numbers or an explicit absence.
type Value struct {
	kind kind
	num  float64
	text string
}

type kind uint8

const (
	kindMissing kind = iota
	kindNumber
	kindText
)

func None() Value { return Value{} }

func Num(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{kind: kindNumber, num: f}
}

func Str(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}
	}
	return Value{kind: kindText, text: s}
}

// Parse builds a Value from a raw cell. Numeric coercion is a column-level
// decision (see Table.CoerceNumeric), so everything non-empty starts as text.
func Parse(raw string) Value { return Str(raw) }

func (v Value) IsMissing() bool { return v.kind == kindMissing }

func (v Value) Float() (float64, bool) {
	if v.kind != kindNumber {
		return 0, false
	}
	return v.num, true
}

func (v Value) Text() (string, bool) {
	if v.kind != kindText {
		return "", false
	}
	return v.text, true
}

// String renders the cell for export: empty for missing cells.
func (v Value) String() string {
	switch v.kind {
	case kindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case kindText:
		return v.text
	default:
		return ""
	}
}

// asNumber tries the loose numeric parse used during column coercion.
// Comma decimal separators and surrounding spaces are tolerated.
func asNumber(v Value) (float64, bool) {
	if f, ok := v.Float(); ok {
		return f, true
	}
	s, ok := v.Text()
	if !ok {
		return 0, false
	}
	s = strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
