package core

import "strings"

// Column is a parsed table column.
type Column struct {
	Name        string `json:"name"`
	DataType    string `json:"data_type"`
	Description string `json:"description"`
}

// ParseColumn parses a column encoded as "name (TYPE): description".
// Malformed input is parsed best-effort; missing parts are left empty.
func ParseColumn(encoded string) Column {
	name := encoded
	var dataType, description string

	if before, rest, ok := strings.Cut(encoded, " ("); ok {
		name = before
		if t, d, ok := strings.Cut(rest, "):"); ok {
			dataType, description = t, d
		} else if t, d, ok := strings.Cut(rest, ")"); ok {
			dataType, description = t, d
		} else {
			dataType = rest
		}
	}

	description = strings.TrimSpace(description)
	description = strings.TrimSpace(strings.TrimLeft(description, ":"))

	return Column{
		Name:        strings.TrimSpace(name),
		DataType:    strings.TrimSpace(dataType),
		Description: description,
	}
}

// ParseColumns parses every encoded column, preserving order.
func ParseColumns(encoded []string) []Column {
	columns := make([]Column, 0, len(encoded))
	for _, c := range encoded {
		columns = append(columns, ParseColumn(c))
	}
	return columns
}
