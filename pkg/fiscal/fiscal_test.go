package fiscal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pmt-online/magazin-api/pkg/fiscal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vectori calculați manual cu algoritmii oficiali.
//
// CIF "18547298": sarcina 1854729, aliniată la dreapta contra 753217532:
//
//	9×7 + 2×5 + 7×3 + 4×2 + 5×1 + 8×7 + 1×5 = 168
//	168 × 10 mod 11 = 8  → cifra de control 8
//
// CNP "1800101221144": primele 12 cifre contra 279146358279:
//
//	1×2+8×7+0×9+0×1+1×4+0×6+1×3+2×5+2×8+1×2+1×7+4×9 = 136
//	136 mod 11 = 4  → cifra de control 4
//
// IBAN "RO49AAAA1B31007593840000": exemplul de referință din ISO 13616.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testValidCIF  = "18547298"
	testValidCNP  = "1800101221144"
	testValidIBAN = "RO49AAAA1B31007593840000"
)

func TestValidCIF_VectorManual(t *testing.T) {
	assert.True(t, fiscal.ValidCIF(testValidCIF))
	assert.False(t, fiscal.ValidCIF("18547290"),
		"aceeași sarcină cu altă cifră de control trebuie respinsă")
}

func TestValidCIF_PrefixROIndiferent(t *testing.T) {
	assert.Equal(t, fiscal.ValidCIF(testValidCIF), fiscal.ValidCIF("RO"+testValidCIF),
		"prefixul RO nu trebuie să schimbe rezultatul")
	assert.Equal(t, fiscal.ValidCIF("18547290"), fiscal.ValidCIF("RO18547290"))
	assert.True(t, fiscal.ValidCIF("ro"+testValidCIF), "prefixul cu litere mici este acceptat")
}

func TestValidCIF_RestZeceDevineZero(t *testing.T) {
	// Sarcina "8": 8×7 = 56, 56×10 mod 11 = 10 → cifra așteptată este 0.
	assert.True(t, fiscal.ValidCIF("80"))
	assert.False(t, fiscal.ValidCIF("8"+"5"))
}

func TestValidCIF_LungimeSiCaractere(t *testing.T) {
	assert.False(t, fiscal.ValidCIF(""), "gol")
	assert.False(t, fiscal.ValidCIF("7"), "o singură cifră nu are sarcină + control")
	assert.False(t, fiscal.ValidCIF("12345678901"), "peste 10 cifre")
	assert.False(t, fiscal.ValidCIF("RO18A4729"), "caracter nenumeric după prefix")
	assert.False(t, fiscal.ValidCIF("RORO185472"), "prefixul se elimină o singură dată")
}

func TestValidCIF_ToleranteLaSpatii(t *testing.T) {
	assert.True(t, fiscal.ValidCIF(" RO 18547298 "))
}

func TestValidCNP_VectorManual(t *testing.T) {
	assert.True(t, fiscal.ValidCNP(testValidCNP))
}

func TestValidCNP_CifraDeControlFlipata(t *testing.T) {
	// Orice altă cifră pe ultima poziție invalidează CNP-ul.
	base := testValidCNP[:12]
	for c := byte('0'); c <= '9'; c++ {
		cnp := base + string(c)
		if cnp == testValidCNP {
			continue
		}
		assert.False(t, fiscal.ValidCNP(cnp), "CNP %s nu trebuie să fie valid", cnp)
	}
}

func TestValidCNP_Lungime(t *testing.T) {
	assert.False(t, fiscal.ValidCNP(testValidCNP[:12]), "12 cifre")
	assert.False(t, fiscal.ValidCNP(testValidCNP+"0"), "14 cifre")
	assert.False(t, fiscal.ValidCNP(""), "gol")
	assert.False(t, fiscal.ValidCNP("18001012X1144"), "caracter nenumeric")
}

func TestValidIBAN_VectorISO(t *testing.T) {
	assert.True(t, fiscal.ValidIBAN(testValidIBAN))
}

func TestValidIBAN_CaseInsensitiveSiSpatii(t *testing.T) {
	assert.True(t, fiscal.ValidIBAN("ro49aaaa1b31007593840000"),
		"literele mici trebuie acceptate identic")
	assert.True(t, fiscal.ValidIBAN("RO49 AAAA 1B31 0075 9384 0000"))
}

func TestValidIBAN_UnSingurCaracterAlterat(t *testing.T) {
	// Testul mod 97 detectează orice substituție de un caracter.
	assert.False(t, fiscal.ValidIBAN("RO49AAAA1B31007593840001"))
	assert.False(t, fiscal.ValidIBAN("RO48AAAA1B31007593840000"))
	assert.False(t, fiscal.ValidIBAN("RO49AAAB1B31007593840000"))
}

func TestValidIBAN_FormatRomanesc(t *testing.T) {
	assert.False(t, fiscal.ValidIBAN("DE89370400440532013000"), "doar IBAN RO")
	assert.False(t, fiscal.ValidIBAN("RO49AAAA1B3100759384000"), "23 de caractere")
	assert.False(t, fiscal.ValidIBAN("RO49AAAA1B310075938400000"), "25 de caractere")
	assert.False(t, fiscal.ValidIBAN("RO499AAA1B31007593840000"), "codul băncii trebuie să fie litere")
}
