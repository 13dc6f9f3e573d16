package efactura

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidInvoiceNumber se întoarce de ParseNumber când stringul nu
// respectă tiparul serie + număr. Este singurul loc din nucleu în care o
// funcție eșuează direct în loc să descrie problema într-un rezultat.
var ErrInvalidInvoiceNumber = errors.New("număr de factură invalid")

var (
	fullNumberPattern = regexp.MustCompile(`^([A-Z]+)(\d+)$`)

	// Seria se limitează la litere: ParseNumber desparte seria de număr la
	// prima cifră, deci o serie cu cifre nu s-ar mai putea reface din forma
	// afișabilă ("A1" + 42 → "A1000042" → seria "A", numărul 1000042).
	seriesPattern = regexp.MustCompile(`^[A-Z]{1,10}$`)
)

// ValidSeries spune dacă seria poate fi folosită la numerotarea facturilor.
func ValidSeries(series string) bool {
	return seriesPattern.MatchString(series)
}

// FormatNumber compune numărul afișabil al facturii: seria urmată de
// numărul completat cu zerouri la 6 cifre. Ex.: ("PMT", 42) → "PMT000042".
func FormatNumber(series string, number int) string {
	return fmt.Sprintf("%s%06d", series, number)
}

// ParseNumber descompune un număr afișabil în serie și număr.
// Proprietate de dus-întors: ParseNumber(FormatNumber(s, n)) == (s, n)
// pentru orice serie din litere majuscule și n pozitiv.
func ParseNumber(s string) (series string, number int, err error) {
	m := fullNumberPattern.FindStringSubmatch(s)
	if m == nil {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidInvoiceNumber, s)
	}
	number, err = strconv.Atoi(m[2])
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidInvoiceNumber, s)
	}
	return m[1], number, nil
}
