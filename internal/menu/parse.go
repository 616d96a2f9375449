package menu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/farzadkfc/cafetill/internal/models"
)

// parseTable splits delimited text into rows keyed by the trimmed header
// line. Each cell is coerced to float64 if numeric, to bool if exactly
// "true"/"false" (case-insensitive), otherwise kept as a string. Cells
// missing from short lines are simply absent from the row map. Fewer than
// two lines yields zero rows, not an error.
func parseTable(text string) []map[string]any {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return nil
	}

	headers := strings.Split(lines[0], ",")
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	rows := make([]map[string]any, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := strings.Split(line, ",")
		row := make(map[string]any, len(headers))
		for i, header := range headers {
			if i >= len(values) {
				continue
			}
			row[header] = coerceCell(strings.TrimSpace(values[i]))
		}
		rows = append(rows, row)
	}
	return rows
}

func coerceCell(v string) any {
	if v == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	switch strings.ToLower(v) {
	case "true":
		return true
	case "false":
		return false
	}
	return v
}

// mapRows validates rows into menu items, tolerating alternate casing of the
// column names. It returns the surviving items plus the count of rows that
// were structurally valid (usable name and numeric price) regardless of the
// active flag, so the caller can tell "wrong columns" from "everything
// filtered out".
func mapRows(rows []map[string]any) ([]models.MenuItem, int) {
	items := make([]models.MenuItem, 0, len(rows))
	structurallyValid := 0

	for i, row := range rows {
		name := cellString(pick(row, "name", "Name"))
		price, priceOK := cellFloat(pick(row, "price", "Price"))
		if name == "" || name == "undefined" || !priceOK {
			continue
		}
		structurallyValid++

		if !cellBool(pickPresent(row, "active", "Active")) {
			continue
		}

		id := cellString(pick(row, "item_id", "id"))
		if id == "" {
			id = fmt.Sprintf("%s-%d", name, i)
		}

		items = append(items, models.MenuItem{
			ItemID:   id,
			Name:     name,
			Price:    price,
			Category: cellString(pick(row, "category", "Category")),
			Active:   true,
		})
	}
	return items, structurallyValid
}

// pick returns the first non-empty value among the named columns. Empty
// strings, zero numbers and false are skipped so that a blank lowercase cell
// falls through to its capitalized variant.
func pick(row map[string]any, keys ...string) any {
	for _, key := range keys {
		v, ok := row[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case float64:
			if t != 0 {
				return t
			}
		case bool:
			if t {
				return t
			}
		}
	}
	return nil
}

// pickPresent returns the first value that exists at all, even if falsy.
// Needed for the active flag, where an explicit false must not fall through.
func pickPresent(row map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := row[key]; ok {
			return v
		}
	}
	return nil
}

func cellString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

func cellFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	}
	return 0, false
}

// cellBool interprets the active column: a missing column defaults to true,
// anything else counts as active only when it reads exactly "true".
func cellBool(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "true")
	}
	return false
}
