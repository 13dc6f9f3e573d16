package fiscal

// cnpControl este constanta de control pentru Codul Numeric Personal
// (HG nr. 1375/2006). Fiecare dintre primele 12 cifre se înmulțește cu
// cifra de control corespunzătoare, în ordine.
const cnpControl = "279146358279"

// ValidCNP verifică cifra de control a unui Cod Numeric Personal.
// CNP-ul trebuie să aibă exact 13 cifre; a 13-a este cifra de control.
// Dacă suma ponderată modulo 11 dă 10, cifra de control așteptată este 1.
func ValidCNP(value string) bool {
	if len(value) != 13 {
		return false
	}
	for i := 0; i < 13; i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}

	var sum int
	for i := 0; i < 12; i++ {
		sum += int(value[i]-'0') * int(cnpControl[i]-'0')
	}

	expected := sum % 11
	if expected == 10 {
		expected = 1
	}
	return expected == int(value[12]-'0')
}
