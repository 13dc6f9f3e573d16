package romanian_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pmt-online/magazin-api/pkg/romanian"
)

func TestAmountInWords_ExempluFactura(t *testing.T) {
	got := romanian.AmountInWords(decimal.NewFromFloat(1234.56))
	assert.Equal(t, "o mie două sute treizeci și patru lei și 56 bani", got)
}

func TestAmountInWords_FaraBani(t *testing.T) {
	assert.Equal(t, "o sută lei", romanian.AmountInWords(decimal.NewFromInt(100)))
	assert.Equal(t, "zero lei", romanian.AmountInWords(decimal.Zero))
}

func TestAmountInWords_BaniRotunjiti(t *testing.T) {
	assert.Equal(t, "nouăsprezece lei și 99 bani",
		romanian.AmountInWords(decimal.NewFromFloat(19.99)))
	assert.Equal(t, "cinci lei și 5 bani",
		romanian.AmountInWords(decimal.NewFromFloat(5.05)))
}

func TestIntegerInWords_Tabele(t *testing.T) {
	cases := map[int64]string{
		0:      "zero",
		1:      "unu",
		9:      "nouă",
		10:     "zece",
		12:     "doisprezece",
		19:     "nouăsprezece",
		20:     "douăzeci",
		21:     "douăzeci și unu",
		60:     "șaizeci",
		99:     "nouăzeci și nouă",
		100:    "o sută",
		101:    "o sută unu",
		215:    "două sute cincisprezece",
		999:    "nouă sute nouăzeci și nouă",
		1000:   "o mie",
		1001:   "o mie unu",
		1900:   "o mie nouă sute",
		2000:   "două mii",
		3000:   "trei mii",
		12000:  "douăsprezece mii",
		40321:  "patruzeci mii trei sute douăzeci și unu",
		999999: "nouă sute nouăzeci și nouă mii nouă sute nouăzeci și nouă",
	}
	for n, want := range cases {
		assert.Equal(t, want, romanian.IntegerInWords(n), "n=%d", n)
	}
}

// TestIntegerInWords_ScaleMari: grupele peste mii au aceeași regulă de
// recurență, deci sumele oricât de mari au reprezentare.
func TestIntegerInWords_ScaleMari(t *testing.T) {
	cases := map[int64]string{
		1_000_000:         "un milion",
		2_000_000:         "două milioane",
		1_234_567:         "un milion două sute treizeci și patru mii cinci sute șaizeci și șapte",
		1_000_000_000:     "un miliard",
		7_000_002_000_000: "șapte trilioane două milioane",
	}
	for n, want := range cases {
		assert.Equal(t, want, romanian.IntegerInWords(n), "n=%d", n)
	}
}

func TestAmountInWords_FacturaPesteUnMilion(t *testing.T) {
	assert.NotPanics(t, func() {
		got := romanian.AmountInWords(decimal.NewFromFloat(1234567.89))
		assert.Equal(t, "un milion două sute treizeci și patru mii cinci sute șaizeci și șapte lei și 89 bani", got)
	})
}
