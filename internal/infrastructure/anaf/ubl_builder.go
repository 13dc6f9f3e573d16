// Package anaf pregătește plicul de trimitere către SPV e-Factura:
// construiește XML-ul UBL 2.1 (CIUS-RO) al facturii, calculează amprenta
// canonică a documentului și interpretează răspunsurile ANAF. Transportul
// propriu-zis și semnătura electronică rămân în afara acestui pachet.
package anaf

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pmt-online/magazin-api/internal/domain/efactura"
	"github.com/pmt-online/magazin-api/internal/domain/entity"
)

// Namespace-uri oficiale UBL 2.1.
const (
	NsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"

	// CustomizationID impus de specificația națională CIUS-RO.
	customizationIDRO = "urn:cen.eu:en16931:2017#compliant#urn:efactura.mfinante.ro:CIUS-RO:1.0.1"
)

// Coduri UNTDID 1001 pe tip de document.
var typeCodes = map[entity.InvoiceType]string{
	entity.TypeFactura:  "380", // factură comercială
	entity.TypeStorno:   "381", // credit note
	entity.TypeProforma: "325", // proforma
	entity.TypeAviz:     "780", // document de transport
}

// UBLBuilder construiește documentul Invoice UBL 2.1 pentru SPV.
type UBLBuilder struct{}

// NewUBLBuilder creează builderul.
func NewUBLBuilder() *UBLBuilder { return &UBLBuilder{} }

// Build serializează factura ca XML UBL. Nu validează conținutul: apelantul
// trebuie să fi trecut factura prin efactura.ValidateInvoice înainte.
func (b *UBLBuilder) Build(inv *entity.Invoice) ([]byte, error) {
	if inv == nil {
		return nil, fmt.Errorf("anaf: factură nulă")
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	root := xml.StartElement{
		Name: xml.Name{Local: "Invoice"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns"}, Value: NsInvoice},
			{Name: xml.Name{Local: "xmlns:cac"}, Value: NsCac},
			{Name: xml.Name{Local: "xmlns:cbc"}, Value: NsCbc},
		},
	}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}

	writeCbc(enc, "UBLVersionID", "2.1")
	writeCbc(enc, "CustomizationID", customizationIDRO)
	writeCbc(enc, "ID", efactura.FormatNumber(inv.Series, inv.Number))
	writeCbc(enc, "IssueDate", inv.Date.Format("2006-01-02"))
	writeCbc(enc, "DueDate", inv.DueDate.Format("2006-01-02"))
	writeCbc(enc, "InvoiceTypeCode", typeCodes[inv.Type])
	if inv.Notes != "" {
		writeCbc(enc, "Note", inv.Notes)
	}
	writeCbc(enc, "DocumentCurrencyCode", inv.Currency)

	// Referința facturii stornate (BG-3).
	if inv.StornoRef != "" {
		openCac(enc, "BillingReference")
		openCac(enc, "InvoiceDocumentReference")
		writeCbc(enc, "ID", inv.StornoRef)
		closeCac(enc, "InvoiceDocumentReference")
		closeCac(enc, "BillingReference")
	}

	b.writeSupplier(enc, &inv.Supplier)
	b.writeCustomer(enc, inv.Customer)
	b.writePayment(enc, inv)
	b.writeTaxTotal(enc, inv)
	b.writeMonetaryTotal(enc, inv)
	for i := range inv.Items {
		b.writeLine(enc, inv, i)
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *UBLBuilder) writeSupplier(enc *xml.Encoder, c *entity.CompanyDetails) {
	openCac(enc, "AccountingSupplierParty")
	openCac(enc, "Party")
	b.writeCompanyParty(enc, c)
	closeCac(enc, "Party")
	closeCac(enc, "AccountingSupplierParty")
}

func (b *UBLBuilder) writeCustomer(enc *xml.Encoder, p entity.Party) {
	openCac(enc, "AccountingCustomerParty")
	openCac(enc, "Party")
	if p.IsCompany() {
		b.writeCompanyParty(enc, p.Company)
	} else {
		b.writeAddress(enc, p.Person.Address)
		openCac(enc, "PartyLegalEntity")
		writeCbc(enc, "RegistrationName", p.Person.Name)
		closeCac(enc, "PartyLegalEntity")
	}
	closeCac(enc, "Party")
	closeCac(enc, "AccountingCustomerParty")
}

func (b *UBLBuilder) writeCompanyParty(enc *xml.Encoder, c *entity.CompanyDetails) {
	b.writeAddress(enc, c.Address)
	if c.VATPayer {
		openCac(enc, "PartyTaxScheme")
		writeCbc(enc, "CompanyID", c.CIF)
		openCac(enc, "TaxScheme")
		writeCbc(enc, "ID", "VAT")
		closeCac(enc, "TaxScheme")
		closeCac(enc, "PartyTaxScheme")
	}
	openCac(enc, "PartyLegalEntity")
	writeCbc(enc, "RegistrationName", c.Name)
	writeCbc(enc, "CompanyID", c.CIF)
	if c.RegCom != "" {
		writeCbc(enc, "CompanyLegalForm", c.RegCom)
	}
	closeCac(enc, "PartyLegalEntity")
}

func (b *UBLBuilder) writeAddress(enc *xml.Encoder, a entity.Address) {
	openCac(enc, "PostalAddress")
	writeCbc(enc, "StreetName", a.Street+" "+a.Number)
	writeCbc(enc, "CityName", a.City)
	writeCbc(enc, "PostalZone", a.PostalCode)
	writeCbc(enc, "CountrySubentity", a.County)
	openCac(enc, "Country")
	writeCbc(enc, "IdentificationCode", "RO")
	closeCac(enc, "Country")
	closeCac(enc, "PostalAddress")
}

func (b *UBLBuilder) writePayment(enc *xml.Encoder, inv *entity.Invoice) {
	if len(inv.Supplier.BankAccounts) == 0 {
		return
	}
	openCac(enc, "PaymentMeans")
	writeCbc(enc, "PaymentMeansCode", "31") // transfer creditor
	if inv.PaymentRef != "" {
		writeCbc(enc, "PaymentID", inv.PaymentRef)
	}
	openCac(enc, "PayeeFinancialAccount")
	writeCbc(enc, "ID", inv.Supplier.BankAccounts[0].IBAN)
	closeCac(enc, "PayeeFinancialAccount")
	closeCac(enc, "PaymentMeans")
}

func (b *UBLBuilder) writeTaxTotal(enc *xml.Encoder, inv *entity.Invoice) {
	openCac(enc, "TaxTotal")
	writeAmount(enc, "TaxAmount", inv.TotalVAT, inv.Currency)
	for _, e := range inv.VATBreakdown {
		openCac(enc, "TaxSubtotal")
		writeAmount(enc, "TaxableAmount", e.Base, inv.Currency)
		writeAmount(enc, "TaxAmount", e.Amount, inv.Currency)
		openCac(enc, "TaxCategory")
		if e.Rate.IsZero() {
			writeCbc(enc, "ID", "Z")
		} else {
			writeCbc(enc, "ID", "S")
		}
		writeCbc(enc, "Percent", e.Rate.String())
		openCac(enc, "TaxScheme")
		writeCbc(enc, "ID", "VAT")
		closeCac(enc, "TaxScheme")
		closeCac(enc, "TaxCategory")
		closeCac(enc, "TaxSubtotal")
	}
	closeCac(enc, "TaxTotal")
}

func (b *UBLBuilder) writeMonetaryTotal(enc *xml.Encoder, inv *entity.Invoice) {
	openCac(enc, "LegalMonetaryTotal")
	writeAmount(enc, "LineExtensionAmount", inv.Subtotal, inv.Currency)
	writeAmount(enc, "TaxExclusiveAmount", inv.Subtotal, inv.Currency)
	writeAmount(enc, "TaxInclusiveAmount", inv.Subtotal.Add(inv.TotalVAT), inv.Currency)
	if inv.TotalDiscount.IsPositive() {
		writeAmount(enc, "AllowanceTotalAmount", inv.TotalDiscount, inv.Currency)
	}
	writeAmount(enc, "PayableAmount", inv.Total, inv.Currency)
	closeCac(enc, "LegalMonetaryTotal")
}

func (b *UBLBuilder) writeLine(enc *xml.Encoder, inv *entity.Invoice, i int) {
	it := &inv.Items[i]
	openCac(enc, "InvoiceLine")
	writeCbc(enc, "ID", fmt.Sprintf("%d", i+1))
	writeWithAttr(enc, "cbc:InvoicedQuantity", it.Quantity.String(), "unitCode", it.Unit)
	writeAmount(enc, "LineExtensionAmount", it.Subtotal, inv.Currency)

	openCac(enc, "Item")
	if it.Description != "" {
		writeCbc(enc, "Description", it.Description)
	}
	writeCbc(enc, "Name", it.Name)
	if it.Code != "" {
		openCac(enc, "SellersItemIdentification")
		writeCbc(enc, "ID", it.Code)
		closeCac(enc, "SellersItemIdentification")
	}
	openCac(enc, "ClassifiedTaxCategory")
	writeCbc(enc, "Percent", it.VATRate.String())
	openCac(enc, "TaxScheme")
	writeCbc(enc, "ID", "VAT")
	closeCac(enc, "TaxScheme")
	closeCac(enc, "ClassifiedTaxCategory")
	closeCac(enc, "Item")

	openCac(enc, "Price")
	writeAmount(enc, "PriceAmount", it.UnitPrice, inv.Currency)
	closeCac(enc, "Price")

	closeCac(enc, "InvoiceLine")
}

// ── helpers de serializare ────────────────────────────────────────────────────

func writeCbc(enc *xml.Encoder, local, value string) {
	el := xml.StartElement{Name: xml.Name{Local: "cbc:" + local}}
	_ = enc.EncodeToken(el)
	_ = enc.EncodeToken(xml.CharData(value))
	_ = enc.EncodeToken(el.End())
}

func writeAmount(enc *xml.Encoder, local string, amount decimal.Decimal, currency string) {
	writeWithAttr(enc, "cbc:"+local, amount.StringFixed(2), "currencyID", currency)
}

func writeWithAttr(enc *xml.Encoder, qualified, value, attrName, attrValue string) {
	el := xml.StartElement{
		Name: xml.Name{Local: qualified},
		Attr: []xml.Attr{{Name: xml.Name{Local: attrName}, Value: attrValue}},
	}
	_ = enc.EncodeToken(el)
	_ = enc.EncodeToken(xml.CharData(value))
	_ = enc.EncodeToken(el.End())
}

func openCac(enc *xml.Encoder, local string) {
	_ = enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: "cac:" + local}})
}

func closeCac(enc *xml.Encoder, local string) {
	_ = enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: "cac:" + local}})
}
