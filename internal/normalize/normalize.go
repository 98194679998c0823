package normalize

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	apperrors "empresascli/internal/errors"
)

var (
	nonDigits   = regexp.MustCompile(`[^0-9]`)
	cnaePattern = regexp.MustCompile(`^\d{4}-\d/\d{2}$`)
)

// ColumnName canonicalizes a header: NFC, trimmed, lower-case.
func ColumnName(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

// Digits removes every character that is not an ASCII digit.
func Digits(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// Phone adds the local area code to numbers exported without one.
//
//	10 chars starting "19"   -> left-padded with '1' to 11
//	9 chars starting "9"     -> left-padded with '1' to 11
//	8 chars not led by 9, 1  -> left-padded with '1' to 10
//
// Anything else is returned unchanged. The second result is false when the
// value is missing ("" or "0").
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return "", false
	}
	switch {
	case len(s) == 10 && strings.HasPrefix(s, "19"):
		return leftPad(s, 11, '1'), true
	case len(s) == 9 && strings.HasPrefix(s, "9"):
		return leftPad(s, 11, '1'), true
	case len(s) == 8 && s[0] != '9' && s[0] != '1':
		return leftPad(s, 10, '1'), true
	}
	return s, true
}

// TaxID strips formatting from a CNPJ/CPF and left-pads it with zeros to 14
// digits. Longer values are kept whole.
func TaxID(s string) string {
	return leftPad(Digits(s), 14, '0')
}

// CEP strips formatting from a postal code and restores the leading zero
// lost by spreadsheets on 7-digit values.
func CEP(s string) string {
	d := Digits(s)
	if len(d) == 7 {
		return "0" + d
	}
	return d
}

// PaddedCEP strips formatting from a postal code and left-pads it with zeros
// to 8 digits. A value with no digits stays empty.
func PaddedCEP(s string) string {
	d := Digits(s)
	if d == "" {
		return d
	}
	return leftPad(d, 8, '0')
}

// Money converts a Brazilian formatted amount ("1.234,56") to a plain
// decimal string ("1234.56").
func Money(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
}

// CompactDate rewrites YYYYMMDD as YYYY-MM-DD by position.
func CompactDate(s string) (string, error) {
	if len(s) < 8 {
		return "", apperrors.NewUnparseableValueError(s, "compact date shorter than 8 characters")
	}
	return s[:4] + "-" + s[4:6] + "-" + s[6:], nil
}

type dateShape struct {
	pattern  *regexp.Regexp
	layout   string
	fallback func(string) (time.Time, error)
}

var dateShapes = []dateShape{
	{pattern: regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), layout: "2006-01-02"},
	{pattern: regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`), layout: "02-01-2006"},
	{pattern: regexp.MustCompile(`^\d{2}-\d{2}-\d{2}$`), layout: "02-01-06"},
	{pattern: regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`), layout: "02/01/2006", fallback: monthFirst},
	{pattern: regexp.MustCompile(`^\d{2}/\d{2}/\d{2}$`), layout: "02/01/06"},
}

// monthFirst reads MM/DD/YYYY, keeping only the last two digits of the year.
func monthFirst(s string) (time.Time, error) {
	parts := strings.Split(s, "/")
	return time.Parse("02/01/06", parts[1]+"/"+parts[0]+"/"+parts[2][2:])
}

// ParseDate accepts the date shapes found in the federal registry exports:
//
//	YYYY-MM-DD, DD-MM-YYYY, DD-MM-YY, DD/MM/YYYY, DD/MM/YY
//
// A DD/MM/YYYY value that is not a valid date is retried as MM/DD/YYYY.
// Empty input is a missing value. Any other input is an UnparseableValue error.
func ParseDate(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, nil
	}
	for _, shape := range dateShapes {
		if !shape.pattern.MatchString(s) {
			continue
		}
		t, err := time.Parse(shape.layout, s)
		if err != nil && shape.fallback != nil {
			t, err = shape.fallback(s)
		}
		if err != nil {
			return time.Time{}, false, apperrors.NewUnparseableValueError(s, "invalid date")
		}
		return t, true, nil
	}
	return time.Time{}, false, apperrors.NewUnparseableValueError(s, "unrecognized date format")
}

// ParseISODate parses YYYY-MM-DD only. Empty input is a missing value.
func ParseISODate(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false, apperrors.NewUnparseableValueError(s, "invalid ISO date")
	}
	return t, true, nil
}

// CNAE formats a digit-only activity code as NNNN-N/NN ("6920601" -> "6920-6/01").
func CNAE(s string) (string, error) {
	d := Digits(s)
	if len(d) < 3 {
		return "", apperrors.NewUnparseableValueError(s, "activity code shorter than 3 digits")
	}
	n := len(d)
	return d[:n-3] + "-" + d[n-3:n-2] + "/" + d[n-2:], nil
}

// IsCNAE reports whether s is a formatted activity code (NNNN-N/NN).
func IsCNAE(s string) bool {
	return cnaePattern.MatchString(s)
}

func leftPad(s string, width int, pad byte) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(string(pad), width-len(s)) + s
}
