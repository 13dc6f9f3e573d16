package efactura_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmt-online/magazin-api/internal/domain/efactura"
	"github.com/pmt-online/magazin-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Factura de referință: o linie {cantitate 2, preț unitar 100, TVA 19%},
// subtotal 200, TVA 38, total 238, cu un singur rând de desfășurător
// {19%, bază 200, TVA 38}. Orice test pornește de la ea și strică exact
// un lucru.
// ──────────────────────────────────────────────────────────────────────────────

func buildValidInvoice() *entity.Invoice {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return &entity.Invoice{
		Series:  "PMT",
		Number:  42,
		Date:    date,
		DueDate: date.AddDate(0, 0, 30),
		Type:    entity.TypeFactura,
		Supplier: entity.CompanyDetails{
			Name:   "PMT Pardoseli SRL",
			CIF:    "RO18547298",
			RegCom: "J12/482/2011",
			Address: entity.Address{
				Street: "Str. Fabricii", Number: "21", City: "Cluj-Napoca",
				County: "Cluj", PostalCode: "400620", Country: "România",
			},
			BankAccounts: []entity.BankAccount{{Bank: "Banca Exemplu", IBAN: "RO49AAAA1B31007593840000"}},
			VATPayer:     true,
		},
		Customer: entity.Party{Company: &entity.CompanyDetails{
			Name: "Construct Deal SRL",
			CIF:  "18547298",
			Address: entity.Address{
				Street: "Bd. Unirii", Number: "4", City: "București",
				County: "București", PostalCode: "030167", Country: "România",
			},
			VATPayer: true,
		}},
		Items: []entity.InvoiceItem{{
			Name:      "Gresie porțelanată Beige 60x60",
			Code:      "GR-BEIGE-60",
			Quantity:  decimal.NewFromInt(2),
			Unit:      efactura.UnitSquareMetre,
			UnitPrice: decimal.NewFromInt(100),
			VATRate:   decimal.NewFromInt(19),
			Subtotal:  decimal.NewFromInt(200),
			VATAmount: decimal.NewFromInt(38),
			Total:     decimal.NewFromInt(238),
		}},
		VATBreakdown: []entity.VATSummary{{
			Rate:   decimal.NewFromInt(19),
			Base:   decimal.NewFromInt(200),
			Amount: decimal.NewFromInt(38),
		}},
		Currency:      "RON",
		Subtotal:      decimal.NewFromInt(200),
		TotalVAT:      decimal.NewFromInt(38),
		Total:         decimal.NewFromInt(238),
		PaymentMethod: entity.PaymentTransfer,
	}
}

func errorCodes(errs []efactura.FieldError) []string {
	codes := make([]string, 0, len(errs))
	for _, e := range errs {
		codes = append(codes, e.Code)
	}
	return codes
}

func TestValidateInvoice_FacturaDeReferinta(t *testing.T) {
	result := efactura.ValidateInvoice(buildValidInvoice())

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateInvoice_TotalGresit(t *testing.T) {
	inv := buildValidInvoice()
	inv.Total = decimal.NewFromInt(240)

	result := efactura.ValidateInvoice(inv)

	assert.False(t, result.Valid)
	assert.Contains(t, errorCodes(result.Errors), efactura.CodeTotalError)
}

func TestValidateInvoice_TolerantaFixa(t *testing.T) {
	// Abaterea de exact 0.005 intră în toleranța de ±0.01; 0.02 nu.
	inv := buildValidInvoice()
	inv.Items[0].Subtotal = decimal.NewFromFloat(200.005)
	inv.VATBreakdown[0].Base = decimal.NewFromFloat(200.005)
	inv.Subtotal = decimal.NewFromFloat(200.005)
	result := efactura.ValidateInvoice(inv)
	assert.True(t, result.Valid, "0.005 trebuie absorbit de toleranță: %v", result.Errors)

	inv = buildValidInvoice()
	inv.Items[0].Subtotal = decimal.NewFromFloat(200.02)
	result = efactura.ValidateInvoice(inv)
	assert.False(t, result.Valid)
	assert.Contains(t, errorCodes(result.Errors), efactura.CodeCalcError)
}

func TestValidateInvoice_TVAPeLinieGresit(t *testing.T) {
	inv := buildValidInvoice()
	inv.Items[0].VATAmount = decimal.NewFromInt(40)

	result := efactura.ValidateInvoice(inv)

	assert.False(t, result.Valid)
	codes := errorCodes(result.Errors)
	assert.Contains(t, codes, efactura.CodeVATCalcError)
	// TVA-ul schimbat pe linie dezechilibrează și desfășurătorul și antetul.
	assert.Contains(t, codes, efactura.CodeVATAmountError)
	assert.Contains(t, codes, efactura.CodeTotalVATError)
}

func TestValidateInvoice_DesfasuratorIncoerent(t *testing.T) {
	// Intrare cu bază greșită.
	inv := buildValidInvoice()
	inv.VATBreakdown[0].Base = decimal.NewFromInt(150)
	result := efactura.ValidateInvoice(inv)
	assert.False(t, result.Valid)
	assert.Contains(t, errorCodes(result.Errors), efactura.CodeVATBaseError)

	// Intrare pentru o cotă care nu apare pe linii.
	inv = buildValidInvoice()
	inv.VATBreakdown = append(inv.VATBreakdown, entity.VATSummary{
		Rate: decimal.NewFromInt(9), Base: decimal.NewFromInt(50), Amount: decimal.NewFromFloat(4.5),
	})
	result = efactura.ValidateInvoice(inv)
	assert.False(t, result.Valid)
	assert.Contains(t, errorCodes(result.Errors), efactura.CodeVATMismatch)

	// Lipsește cu totul intrarea pentru cota liniilor.
	inv = buildValidInvoice()
	inv.VATBreakdown = nil
	result = efactura.ValidateInvoice(inv)
	assert.False(t, result.Valid)
	assert.Contains(t, errorCodes(result.Errors), efactura.CodeVATMismatch)
}

func TestValidateInvoice_ScadentaInainteaEmiterii(t *testing.T) {
	inv := buildValidInvoice()
	inv.DueDate = inv.Date.AddDate(0, 0, -1)

	result := efactura.ValidateInvoice(inv)

	assert.False(t, result.Valid)
	assert.Contains(t, errorCodes(result.Errors), efactura.CodeDueDateError)
}

func TestValidateInvoice_Idempotenta(t *testing.T) {
	inv := buildValidInvoice()
	inv.Total = decimal.NewFromInt(240)

	first := efactura.ValidateInvoice(inv)
	second := efactura.ValidateInvoice(inv)

	assert.Equal(t, first, second, "a doua validare trebuie să dea exact același rezultat")
}

// ── Avertismente ──────────────────────────────────────────────────────────────

func warningFields(warns []efactura.Warning) []string {
	fields := make([]string, 0, len(warns))
	for _, w := range warns {
		fields = append(fields, w.Field)
	}
	return fields
}

func TestValidateInvoice_AvertismentFaraModalitatePlata(t *testing.T) {
	inv := buildValidInvoice()
	inv.PaymentMethod = ""

	result := efactura.ValidateInvoice(inv)

	assert.True(t, result.Valid, "avertismentele nu blochează validitatea")
	assert.Contains(t, warningFields(result.Warnings), "paymentMethod")
}

func TestValidateInvoice_AvertismentPersoanaFizicaPestePrag(t *testing.T) {
	inv := buildValidInvoice()
	inv.Customer = entity.Party{Person: &entity.PersonDetails{
		Name: "Maria Ionescu",
		CNP:  "1800101221144",
		Address: entity.Address{
			Street: "Str. Lungă", Number: "7", City: "Brașov",
			County: "Brașov", PostalCode: "500035", Country: "România",
		},
	}}
	// Scalăm factura peste pragul de 10 000: 100 mp × 100 lei.
	inv.Items[0].Quantity = decimal.NewFromInt(100)
	inv.Items[0].Subtotal = decimal.NewFromInt(10000)
	inv.Items[0].VATAmount = decimal.NewFromInt(1900)
	inv.Items[0].Total = decimal.NewFromInt(11900)
	inv.VATBreakdown[0].Base = decimal.NewFromInt(10000)
	inv.VATBreakdown[0].Amount = decimal.NewFromInt(1900)
	inv.Subtotal = decimal.NewFromInt(10000)
	inv.TotalVAT = decimal.NewFromInt(1900)
	inv.Total = decimal.NewFromInt(11900)

	result := efactura.ValidateInvoice(inv)

	require.True(t, result.Valid, "erori neașteptate: %v", result.Errors)
	assert.Contains(t, warningFields(result.Warnings), "total")
}

func TestValidateInvoice_AvertismentTermenLung(t *testing.T) {
	inv := buildValidInvoice()
	inv.DueDate = inv.Date.AddDate(0, 0, 91)

	result := efactura.ValidateInvoice(inv)

	assert.True(t, result.Valid)
	assert.Contains(t, warningFields(result.Warnings), "dueDate")
}
