// Package romanian transformă sume în lei în litere, pentru blocul
// "total în litere" al facturii. Ex.: 1234.56 → "o mie două sute treizeci
// și patru lei și 56 bani".
package romanian

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ones = [10]string{"", "unu", "doi", "trei", "patru", "cinci", "șase", "șapte", "opt", "nouă"}

	teens = [10]string{
		"zece", "unsprezece", "doisprezece", "treisprezece", "paisprezece",
		"cincisprezece", "șaisprezece", "șaptesprezece", "optsprezece", "nouăsprezece",
	}

	tens = [10]string{
		"", "zece", "douăzeci", "treizeci", "patruzeci",
		"cincizeci", "șaizeci", "șaptezeci", "optzeci", "nouăzeci",
	}

	hundreds = [10]string{
		"", "o sută", "două sute", "trei sute", "patru sute",
		"cinci sute", "șase sute", "șapte sute", "opt sute", "nouă sute",
	}
)

// AmountInWords scrie o sumă nenegativă în lei și bani, în litere.
// Banii se calculează ca round((suma − partea întreagă) × 100) și rămân în
// cifre ("și 56 bani"); sumele fără subdiviziuni nu primesc sufixul de bani.
func AmountInWords(amount decimal.Decimal) string {
	lei := amount.IntPart()
	bani := amount.Sub(amount.Truncate(0)).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	words := IntegerInWords(lei) + " lei"
	if bani > 0 {
		words += " și " + strconv.FormatInt(bani, 10) + " bani"
	}
	return words
}

// Scalele de grupare pe câte trei cifre, de la cea mai mare în jos.
// Fiecare are caz special pentru 1 ("o mie", "un milion").
var scales = []struct {
	value    int64
	singular string
	plural   string
}{
	{1_000_000_000_000_000_000, "un cvintilion", "cvintilioane"},
	{1_000_000_000_000_000, "un cvadrilion", "cvadrilioane"},
	{1_000_000_000_000, "un trilion", "trilioane"},
	{1_000_000_000, "un miliard", "miliarde"},
	{1_000_000, "un milion", "milioane"},
	{1_000, "o mie", "mii"},
}

// IntegerInWords scrie un întreg nenegativ în litere, pe grupe de trei
// cifre. Scalele acoperă tot int64, deci nu există sumă validă fără
// reprezentare.
func IntegerInWords(n int64) string {
	if n == 0 {
		return "zero"
	}

	var parts []string

	for _, s := range scales {
		group := n / s.value
		if group == 0 {
			continue
		}
		if group == 1 {
			parts = append(parts, s.singular)
		} else {
			parts = append(parts, scaleGroup(group)+" "+s.plural)
		}
		n %= s.value
	}
	if n > 0 {
		parts = append(parts, underThousand(n))
	}

	return strings.Join(parts, " ")
}

// scaleGroup redă grupul unei scale: substantivele scalelor cer forma
// feminină pentru 2 și 12 ("două mii", "douăsprezece milioane").
func scaleGroup(group int64) string {
	w := underThousand(group)
	if strings.HasSuffix(w, "doisprezece") {
		return strings.TrimSuffix(w, "doisprezece") + "douăsprezece"
	}
	if strings.HasSuffix(w, "doi") {
		return strings.TrimSuffix(w, "doi") + "două"
	}
	return w
}

// underThousand redă 1–999: suta din tabelul fix, apoi restul 0–99 cu
// "și" între zeci și unități când unitatea este nenulă.
func underThousand(n int64) string {
	var parts []string

	if h := n / 100; h > 0 {
		parts = append(parts, hundreds[h])
		n %= 100
	}

	switch {
	case n == 0:
	case n < 10:
		parts = append(parts, ones[n])
	case n < 20:
		parts = append(parts, teens[n-10])
	default:
		t := tens[n/10]
		if u := n % 10; u > 0 {
			t += " și " + ones[u]
		}
		parts = append(parts, t)
	}

	return strings.Join(parts, " ")
}
