package fiscal

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// ibanROPattern: IBAN românesc = "RO" + 2 cifre de control + 4 litere (codul
// băncii) + 16 caractere alfanumerice (contul) = 24 de caractere în total.
var ibanROPattern = regexp.MustCompile(`^RO\d{2}[A-Z]{4}[A-Z0-9]{16}$`)

var ibanModulus = big.NewInt(97)

// ValidIBAN verifică un IBAN românesc: format + testul standard ISO 13616
// modulo 97. Spațiile se ignoră și literele mici sunt acceptate.
//
// Numeralul rezultat după substituția literelor (A→10 ... Z→35, prin
// concatenare) depășește cu mult int64, de aceea verificarea folosește big.Int.
func ValidIBAN(value string) bool {
	s := strings.ToUpper(strings.Join(strings.Fields(value), ""))
	if !ibanROPattern.MatchString(s) {
		return false
	}

	// Primele 4 caractere trec la coadă, apoi fiecare literă devine valoarea
	// ei numerică (două cifre), concatenată în numeralul zecimal.
	rearranged := s[4:] + s[:4]
	var sb strings.Builder
	sb.Grow(len(rearranged) * 2)
	for i := 0; i < len(rearranged); i++ {
		c := rearranged[i]
		if c >= 'A' && c <= 'Z' {
			sb.WriteString(strconv.Itoa(int(c-'A') + 10))
		} else {
			sb.WriteByte(c)
		}
	}

	numeral, ok := new(big.Int).SetString(sb.String(), 10)
	if !ok {
		return false
	}
	return new(big.Int).Mod(numeral, ibanModulus).Int64() == 1
}
