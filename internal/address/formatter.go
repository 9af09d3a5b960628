package address

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Output formats accepted by Format.
const (
	FormatDetailed = "detailed"
	FormatCompact  = "compact"
	FormatJSON     = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatDetailed, FormatCompact, FormatJSON}

// IsValidFormat reports whether format is one of Formats.
func IsValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Summary returns a one-line summary of the record
func (r Record) Summary() string {
	return fmt.Sprintf("%s  %s, %s - %s/%s",
		FormatPostalCode(r.PostalCode), r.Street, r.District, r.City, r.StateCode)
}

// Fields returns label/value pairs in display order, skipping empty extras.
func (r Record) Fields() [][2]string {
	fields := [][2]string{
		{"CEP", FormatPostalCode(r.PostalCode)},
		{"Street", r.Street},
		{"District", r.District},
		{"City", r.City},
		{"State", r.StateCode},
	}
	if r.Complement != "" {
		fields = append(fields, [2]string{"Complement", r.Complement})
	}
	if r.IBGE != "" {
		fields = append(fields, [2]string{"IBGE", r.IBGE})
	}
	if r.DDD != "" {
		fields = append(fields, [2]string{"DDD", r.DDD})
	}
	return fields
}

// FormatCompact returns a compact two-line format suitable for terminal display
func (r Record) FormatCompact() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s  %s\n", FormatPostalCode(r.PostalCode), r.Street))
	b.WriteString(fmt.Sprintf("          %s, %s/%s\n", r.District, r.City, r.StateCode))

	return b.String()
}

// FormatDetailed returns every field, one per line
func (r Record) FormatDetailed() string {
	var b strings.Builder

	b.WriteString("=== Address ===\n")
	for _, f := range r.Fields() {
		b.WriteString(fmt.Sprintf("%-11s %s\n", f[0]+":", f[1]))
	}

	return b.String()
}

// Format renders the record in one of the supported output formats.
func (r Record) Format(format string) (string, error) {
	switch format {
	case FormatCompact:
		return r.FormatCompact(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data) + "\n", nil
	case FormatDetailed, "":
		return r.FormatDetailed(), nil
	default:
		return "", fmt.Errorf("unknown output format %q (use %s)", format, strings.Join(Formats, ", "))
	}
}
