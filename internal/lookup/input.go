package lookup

import "unicode/utf8"

// MaxPostalCodeLength is the longest CEP, in digits.
const MaxPostalCodeLength = 8

// ApplyInput returns the text the input should hold after the user proposes
// candidate. Overlong candidates are ignored rather than truncated, so the
// current text is returned unchanged. Character class is not checked.
func ApplyInput(current, candidate string) string {
	if utf8.RuneCountInString(candidate) > MaxPostalCodeLength {
		return current
	}
	return candidate
}
