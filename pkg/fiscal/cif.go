// Package fiscal conține validatoarele de identificatori fiscali românești
// (CIF, CNP, IBAN). Toate sunt predicate pure, fără stare: primesc un string
// și răspund valid/invalid conform algoritmului oficial de cifră de control.
package fiscal

import "strings"

// cifControl este constanta de control pentru cifra de verificare a CIF-ului
// (Ordinul MF nr. 1802/2014). Cifrele se consumă în ordine, începând cu prima,
// aplicate sarcinii aliniate la dreapta (ultima cifră a sarcinii × 7, apoi × 5 ...).
const cifControl = "753217532"

// ValidCIF verifică cifra de control a unui Cod de Identificare Fiscală.
// Acceptă prefixul opțional "RO" (plătitor de TVA) și spații; după curățare
// trebuie să rămână între 2 și 10 cifre, ultima fiind cifra de control.
func ValidCIF(value string) bool {
	s := strings.ToUpper(strings.Join(strings.Fields(value), ""))
	s = strings.TrimPrefix(s, "RO")
	if len(s) < 2 || len(s) > 10 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	payload := s[:len(s)-1]
	check := int(s[len(s)-1] - '0')

	var sum int
	for i := 0; i < len(payload); i++ {
		digit := int(payload[len(payload)-1-i] - '0')
		sum += digit * int(cifControl[i]-'0')
	}

	expected := (sum * 10) % 11
	if expected == 10 {
		expected = 0
	}
	return expected == check
}
