package anaf_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmt-online/magazin-api/internal/domain/entity"
	"github.com/pmt-online/magazin-api/internal/infrastructure/anaf"
)

func buildInvoice() *entity.Invoice {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return &entity.Invoice{
		Series:  "PMT",
		Number:  42,
		Date:    date,
		DueDate: date.AddDate(0, 0, 30),
		Type:    entity.TypeFactura,
		Supplier: entity.CompanyDetails{
			Name: "PMT Pardoseli SRL",
			CIF:  "RO18547298",
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
			Quantity:  decimal.NewFromInt(2),
			Unit:      "MTK",
			UnitPrice: decimal.NewFromInt(100),
			VATRate:   decimal.NewFromInt(19),
			Subtotal:  decimal.NewFromInt(200),
			VATAmount: decimal.NewFromInt(38),
			Total:     decimal.NewFromInt(238),
		}},
		VATBreakdown: []entity.VATSummary{{
			Rate: decimal.NewFromInt(19), Base: decimal.NewFromInt(200), Amount: decimal.NewFromInt(38),
		}},
		Currency: "RON",
		Subtotal: decimal.NewFromInt(200),
		TotalVAT: decimal.NewFromInt(38),
		Total:    decimal.NewFromInt(238),
	}
}

func TestUBLBuilder_ElementeObligatorii(t *testing.T) {
	b := anaf.NewUBLBuilder()

	got, err := b.Build(buildInvoice())
	require.NoError(t, err)

	s := string(got)
	assert.Contains(t, s, "<cbc:ID>PMT000042</cbc:ID>")
	assert.Contains(t, s, "<cbc:IssueDate>2026-03-10</cbc:IssueDate>")
	assert.Contains(t, s, "<cbc:InvoiceTypeCode>380</cbc:InvoiceTypeCode>")
	assert.Contains(t, s, "<cbc:DocumentCurrencyCode>RON</cbc:DocumentCurrencyCode>")
	assert.Contains(t, s, "CIUS-RO")
	assert.Contains(t, s, `currencyID="RON"`)
	assert.Contains(t, s, "<cbc:PayableAmount currencyID=\"RON\">238.00</cbc:PayableAmount>")
	assert.Contains(t, s, "<cac:InvoiceLine>")
}

func TestUBLBuilder_StornoDevineCreditNote(t *testing.T) {
	b := anaf.NewUBLBuilder()
	inv := buildInvoice()
	inv.Type = entity.TypeStorno
	inv.StornoRef = "PMT000041"

	got, err := b.Build(inv)
	require.NoError(t, err)

	s := string(got)
	assert.Contains(t, s, "<cbc:InvoiceTypeCode>381</cbc:InvoiceTypeCode>")
	assert.Contains(t, s, "PMT000041", "referința facturii stornate trebuie inclusă")
}

func TestCanonicalDigest_StabilLaIndentare(t *testing.T) {
	compact := []byte(`<a x="1"><b>text</b></a>`)
	indented := []byte("<a x=\"1\">\n  <b>text</b>\n</a>")

	d1, err := anaf.CanonicalDigest(compact)
	require.NoError(t, err)
	d2, err := anaf.CanonicalDigest(indented)
	require.NoError(t, err)

	assert.Len(t, d1, 64, "SHA-256 hex are 64 de caractere")
	assert.NotEqual(t, d1, d2,
		"spațiile dintre elemente sunt semnificative în C14N; documente diferite → amprente diferite")
}

func TestCanonicalDigest_Determinist(t *testing.T) {
	b := anaf.NewUBLBuilder()
	xmlBytes, err := b.Build(buildInvoice())
	require.NoError(t, err)

	d1, err := anaf.CanonicalDigest(xmlBytes)
	require.NoError(t, err)
	d2, err := anaf.CanonicalDigest(xmlBytes)
	require.NoError(t, err)

	assert.Equal(t, d1, d2)
}

func TestParseUploadResponse_Succes(t *testing.T) {
	resp := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<header xmlns="mfp:anaf:dgti:spv:respUploadFisier:v1" dateResponse="202603101530" ExecutionStatus="0" index_incarcare="5008055"/>`)

	got, err := anaf.ParseUploadResponse(resp)
	require.NoError(t, err)

	assert.Equal(t, "5008055", got.UploadID)
	assert.Equal(t, entity.AnafStatusUploaded, got.Status)
	assert.Empty(t, got.Errors)
}

func TestParseUploadResponse_Respins(t *testing.T) {
	resp := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<header xmlns="mfp:anaf:dgti:spv:respUploadFisier:v1" dateResponse="202603101530" ExecutionStatus="1">
  <Errors errorMessage="CIF invalid"/>
  <Errors errorMessage="Factura duplicata"/>
</header>`)

	got, err := anaf.ParseUploadResponse(resp)
	require.NoError(t, err)

	assert.Equal(t, entity.AnafStatusRejected, got.Status)
	assert.Equal(t, []string{"CIF invalid", "Factura duplicata"}, got.Errors)
}

func TestParseStatusResponse(t *testing.T) {
	cases := map[string]string{
		"ok":            entity.AnafStatusValidated,
		"nok":           entity.AnafStatusRejected,
		"in prelucrare": entity.AnafStatusUploaded,
	}
	for stare, want := range cases {
		resp := []byte(`<header xmlns="mfp:anaf:dgti:spv:stareMesaj:v1" stare="` + stare + `" id_descarcare="1234"/>`)
		got, err := anaf.ParseStatusResponse(resp)
		require.NoError(t, err, "stare %q", stare)
		assert.Equal(t, want, got.Status, "stare %q", stare)
		assert.Equal(t, "1234", got.DownloadID)
	}
}

func TestParseUploadResponse_XMLInvalid(t *testing.T) {
	_, err := anaf.ParseUploadResponse([]byte("nu e xml"))
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "anaf"))
}
