package address

import (
	"strings"
	"unicode"
)

// Record is one resolved postal code.
type Record struct {
	PostalCode string `json:"postalCode"`
	Street     string `json:"street"`
	City       string `json:"city"`
	District   string `json:"district"`
	StateCode  string `json:"stateCode"`

	// Display-only extras. They never affect Valid.
	Complement string `json:"complement,omitempty"`
	IBGE       string `json:"ibge,omitempty"`
	DDD        string `json:"ddd,omitempty"`
}

// Valid reports whether all five core fields are non-blank.
// Whitespace-only values count as blank.
func (r Record) Valid() bool {
	for _, field := range r.coreFields() {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

// MissingFields lists the names of the blank core fields, in display order.
func (r Record) MissingFields() []string {
	names := []string{"postal code", "street", "city", "district", "state"}
	var missing []string
	for i, field := range r.coreFields() {
		if strings.TrimSpace(field) == "" {
			missing = append(missing, names[i])
		}
	}
	return missing
}

func (r Record) coreFields() [5]string {
	return [5]string{r.PostalCode, r.Street, r.City, r.District, r.StateCode}
}

// Key identifies the record for de-duplication.
func (r Record) Key() string {
	return NormalizePostalCode(r.PostalCode)
}

// NormalizePostalCode keeps only the digits of code, so the directory's
// "01310-930" form compares equal to the "01310930" the user typed.
func NormalizePostalCode(code string) string {
	var b strings.Builder
	b.Grow(len(code))
	for _, r := range code {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPostalCode renders an 8-digit code as "01310-930". Anything else is
// returned unchanged.
func FormatPostalCode(code string) string {
	digits := NormalizePostalCode(code)
	if len(digits) != 8 || len(digits) != len(code) {
		return code
	}
	return digits[:5] + "-" + digits[5:]
}
