package importqr

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/pkg/ekasa"
)

// fieldAliases maps accepted input keys (including Slovak ones) to canonical
// row fields.
var fieldAliases = map[string]string{
	"opd":       "opd",
	"date":      "date",
	"datum":     "date",
	"category":  "category",
	"kategoria": "category",
	"item":      "item",
	"polozka":   "item",
	"qnt":       "qnt",
	"qty":       "qnt",
	"price":     "price",
	"cena":      "price",
	"vat":       "vat",
	"dph":       "vat",
	"seller":    "seller",
	"predajca":  "seller",
	"unit":      "unit",
	"jednotka":  "unit",
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02", "02.01.2006"}

// Parse accepts the raw preview payload: a JSON array of objects, a JSON
// string containing such an array (or an {"items": [...]} wrapper), or
// freeform QR text. It never returns an error; whatever cannot be understood
// becomes invalid rows.
func Parse(payload json.RawMessage) []Row {
	if len(payload) == 0 {
		return nil
	}

	var objects []map[string]any
	if err := json.Unmarshal(payload, &objects); err == nil {
		return rowsFromObjects(objects)
	}

	var text string
	if err := json.Unmarshal(payload, &text); err == nil {
		return parseText(text)
	}

	var wrapper struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(payload, &wrapper); err == nil && wrapper.Items != nil {
		return rowsFromObjects(wrapper.Items)
	}

	return []Row{invalidRow(strings.TrimSpace(string(payload)))}
}

func parseText(text string) []Row {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	// Pasted JSON text goes through the structured path.
	var objects []map[string]any
	if err := json.Unmarshal([]byte(trimmed), &objects); err == nil {
		return rowsFromObjects(objects)
	}
	var wrapper struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal([]byte(trimmed), &wrapper); err == nil && wrapper.Items != nil {
		return rowsFromObjects(wrapper.Items)
	}

	var rows []Row
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, parseLine(line))
	}
	return rows
}

// parseLine understands two freeform shapes: a bare OPD code, and
// pipe-or-semicolon separated key:value pairs. Anything else is preserved as
// an invalid row.
func parseLine(line string) Row {
	if fields := splitPairs(line); len(fields) > 0 {
		return normalize(fields, line)
	}
	if looksLikeOPD(line) {
		return normalize(map[string]string{"opd": line}, line)
	}
	return invalidRow(line)
}

func splitPairs(line string) map[string]string {
	parts := strings.FieldsFunc(line, func(r rune) bool {
		return r == '|' || r == ';'
	})
	fields := map[string]string{}
	for _, part := range parts {
		key, value, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		canonical, known := fieldAliases[strings.ToLower(strings.TrimSpace(key))]
		if !known {
			continue
		}
		fields[canonical] = strings.TrimSpace(value)
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// looksLikeOPD accepts a single token long enough to be a receipt id.
func looksLikeOPD(line string) bool {
	return !strings.ContainsAny(line, " \t") && ekasa.ValidateOPD(line)
}

func rowsFromObjects(objects []map[string]any) []Row {
	rows := make([]Row, 0, len(objects))
	for _, obj := range objects {
		fields := map[string]string{}
		for key, value := range obj {
			canonical, known := fieldAliases[strings.ToLower(key)]
			if !known {
				continue
			}
			if _, taken := fields[canonical]; taken {
				continue
			}
			fields[canonical] = stringify(value)
		}
		rows = append(rows, normalize(fields, ""))
	}
	return rows
}

// normalize fills defaults and canonical formats. original is kept as the
// item text when the fields carry no description of their own.
func normalize(fields map[string]string, original string) Row {
	row := Row{
		OPD:      fields["opd"],
		Category: fields["category"],
		Item:     fields["item"],
		Seller:   fields["seller"],
		Unit:     fields["unit"],
		Qnt:      fields["qnt"],
		Price:    fields["price"],
		Vat:      fields["vat"],
	}
	if row.Category == "" {
		row.Category = defaultCategory
	}
	if row.Unit == "" {
		row.Unit = defaultUnit
	}
	if row.Qnt == "" {
		row.Qnt = defaultQnt
	}
	if row.Price == "" {
		row.Price = "0"
	}
	if row.Vat == "" {
		row.Vat = "0"
	}
	if row.Item == "" && row.OPD == "" {
		row.Item = original
	}

	if date, ok := ParseDate(fields["date"]); ok {
		row.Date = date.Format("2006-01-02")
	}
	row.Qnt = strings.ReplaceAll(row.Qnt, ",", ".")
	row.Price = normalizeDecimal(row.Price)
	row.Vat = normalizeDecimal(row.Vat)

	row.Valid = ekasa.ValidateOPD(row.OPD)
	return row
}

// ParseDate accepts ISO timestamps, plain YYYY-MM-DD, and Slovak DD.MM.YYYY.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalizeDecimal rewrites a parseable amount into its canonical two-decimal
// form and leaves unparsable text untouched for the user to fix.
func normalizeDecimal(s string) string {
	cents, err := money.Parse(s)
	if err != nil {
		return s
	}
	return cents.String()
}

func stringify(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%g", value)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", value)
	}
}

func invalidRow(original string) Row {
	return Row{
		Valid:    false,
		Category: defaultCategory,
		Item:     original,
		Qnt:      defaultQnt,
		Price:    "0",
		Vat:      "0",
		Unit:     defaultUnit,
	}
}
