// Package pdf implementează randarea facturii ca document A4 cu layout fix,
// folosind Maroto v2.
//
// Layoutul paginii:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  BANDĂ COLORATĂ: Furnizor           │  Nr. factură          │
//	│  TITLU centrat (FACTURĂ / PROFORMĂ / STORNO / AVIZ)         │
//	│  ┌── FURNIZOR ──────────┐  ┌── CLIENT ───────────┐          │
//	│  │ nume, CIF, RegCom,   │  │ nume, CIF/CNP,      │          │
//	│  │ adresă completă      │  │ adresă completă     │          │
//	│  └──────────────────────┘  └─────────────────────┘          │
//	│  Data emiterii / Scadența / (factura stornată)              │
//	│  TABEL LINII: # | Denumire | UM | Cant | PU | Subtot |      │
//	│               TVA% | TVA | Total   (rânduri alternate)      │
//	│  TOTALURI: subtotal, TVA pe cote, discount, TOTAL, litere   │
//	│  PLATĂ: conturi IBAN + modalitate                           │
//	│  SEMNĂTURI: furnizor / client + note + număr de pagină      │
//	└─────────────────────────────────────────────────────────────┘
//
// Randarea nu re-validează factura: desenează exact aritmetica primită.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/pmt-online/magazin-api/internal/domain/efactura"
	"github.com/pmt-online/magazin-api/internal/domain/entity"
	"github.com/pmt-online/magazin-api/pkg/romanian"
)

// ── Paleta de culori ──────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 155, Green: 62, Blue: 38} // teracotă
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite    = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorShading  = &props.Color{Red: 244, Green: 238, Blue: 234}
	colorRuleLine = &props.Color{Red: 155, Green: 62, Blue: 38}
)

// Titlurile localizate pe tip de document.
var titles = map[entity.InvoiceType]string{
	entity.TypeFactura:  "FACTURĂ",
	entity.TypeProforma: "FACTURĂ PROFORMĂ",
	entity.TypeStorno:   "FACTURĂ STORNO",
	entity.TypeAviz:     "AVIZ DE ÎNSOȚIRE",
}

// Etichetele localizate ale modalităților de plată.
var paymentLabels = map[string]string{
	entity.PaymentCash:     "Numerar",
	entity.PaymentTransfer: "Transfer bancar",
	entity.PaymentCard:     "Card",
	entity.PaymentRamburs:  "Ramburs la livrare",
}

const maxItemNameLen = 40

// ── Renderer ──────────────────────────────────────────────────────────────────

// InvoiceRenderer produce documentul PDF al facturii folosind Maroto v2.
// Fără stare: poate fi folosit concurent pe facturi independente.
type InvoiceRenderer struct{}

// NewInvoiceRenderer construiește rendererul.
func NewInvoiceRenderer() *InvoiceRenderer { return &InvoiceRenderer{} }

// GenerateInvoicePDF randează factura și întoarce octeții documentului.
// Nu scrie pe disc; apelantul decide dacă salvează, transmite sau codifică.
func (r *InvoiceRenderer) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithPageNumber(props.PageNumber{Pattern: "Pagina {current} din {total}", Place: props.Bottom, Size: 7}).
		WithTitle(tr(titles[inv.Type])+" "+efactura.FormatNumber(inv.Series, inv.Number), true).
		WithAuthor(tr(inv.Supplier.Name), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerBandRow(inv))
	m.AddRows(titleRows(inv)...)
	m.AddRows(partyPanelsRow(inv))
	m.AddRows(dateBlockRow(inv))
	m.AddRows(line.NewRow(2, props.Line{Color: colorRuleLine, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, itemRow := range itemRows(inv.Items) {
		m.AddRows(itemRow)
	}

	m.AddRows(line.NewRow(2, props.Line{Color: colorRuleLine, Thickness: 0.3}))
	m.AddRows(totalsRows(inv)...)
	m.AddRows(paymentRows(inv)...)
	m.AddRows(signatureRows(inv)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generare document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secțiuni ──────────────────────────────────────────────────────────────────

// headerBandRow: banda colorată cu furnizorul la stânga și numărul complet
// al facturii la dreapta.
func headerBandRow(inv *entity.Invoice) core.Row {
	return row.New(14).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		col.New(7).Add(
			text.New(tr(inv.Supplier.Name), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorWhite, Top: 2, Left: 2,
			}),
			text.New("CIF: "+inv.Supplier.CIF, props.Text{
				Size: 8, Color: colorWhite, Top: 9, Left: 2,
			}),
		),
		col.New(5).Add(
			text.New(efactura.FormatNumber(inv.Series, inv.Number), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: colorWhite, Top: 4, Right: 2,
			}),
		),
	)
}

// titleRows: titlul centrat în funcție de tip, cu seria și numărul dedesubt.
func titleRows(inv *entity.Invoice) []core.Row {
	return []core.Row{
		row.New(10).Add(col.New(12).Add(
			text.New(tr(titles[inv.Type]), props.Text{
				Style: fontstyle.Bold, Size: 14, Align: align.Center, Color: colorPrimary, Top: 2,
			}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Seria %s nr. %06d", inv.Series, inv.Number), props.Text{
				Size: 9, Align: align.Center, Color: colorGray,
			}),
		)),
	}
}

// partyPanelsRow: două panouri încadrate, furnizor și client, unul lângă altul.
func partyPanelsRow(inv *entity.Invoice) core.Row {
	boxed := &props.Cell{BorderType: border.Full, BorderColor: colorGray, BorderThickness: 0.2}

	supplierLines := companyPanelLines(&inv.Supplier)
	customerLines := customerPanelLines(inv.Customer)

	height := float64(10 + 5*max(len(supplierLines), len(customerLines)))

	supplierCol := col.New(6).WithStyle(boxed).Add(
		text.New("FURNIZOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 2}),
	)
	for i, l := range supplierLines {
		supplierCol.Add(text.New(tr(l), props.Text{Size: 8, Top: float64(8 + i*5), Left: 2}))
	}

	customerCol := col.New(6).WithStyle(boxed).Add(
		text.New("CLIENT", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 2}),
	)
	for i, l := range customerLines {
		customerCol.Add(text.New(tr(l), props.Text{Size: 8, Top: float64(8 + i*5), Left: 2}))
	}

	return row.New(height).Add(supplierCol, customerCol)
}

// companyPanelLines: nume, CIF, RegCom (dacă există) și adresa completă.
func companyPanelLines(c *entity.CompanyDetails) []string {
	lines := []string{c.Name, "CIF: " + c.CIF}
	if c.RegCom != "" {
		lines = append(lines, "Reg. Com.: "+c.RegCom)
	}
	return append(lines, addressLines(c.Address)...)
}

func customerPanelLines(p entity.Party) []string {
	if p.IsCompany() {
		return companyPanelLines(p.Company)
	}
	lines := []string{p.Person.Name}
	if p.Person.CNP != "" {
		lines = append(lines, "CNP: "+p.Person.CNP)
	}
	return append(lines, addressLines(p.Person.Address)...)
}

func addressLines(a entity.Address) []string {
	street := a.Street
	if a.Number != "" {
		street += " nr. " + a.Number
	}
	return []string{
		street,
		fmt.Sprintf("%s, jud. %s, %s", a.City, a.County, a.PostalCode),
		a.Country,
	}
}

// dateBlockRow: data emiterii, scadența și, pentru STORNO, factura stornată.
func dateBlockRow(inv *entity.Invoice) core.Row {
	dates := fmt.Sprintf("Data emiterii: %s   |   Scadența: %s",
		inv.Date.Format("02.01.2006"), inv.DueDate.Format("02.01.2006"))
	r := row.New(8).Add(col.New(8).Add(
		text.New(dates, props.Text{Size: 8, Top: 2, Color: colorGray}),
	))
	if inv.Type == entity.TypeStorno {
		r.Add(col.New(4).Add(
			text.New(tr("Stornează factura "+inv.StornoRef), props.Text{
				Size: 8, Top: 2, Align: align.Right, Style: fontstyle.Bold, Color: colorPrimary,
			}),
		))
	} else {
		r.Add(col.New(4))
	}
	return r
}

// tableHeaderRow: capul tabelului de linii, pe fond colorat. Nu se repetă
// pe paginile de continuare.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(tr(label), props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("#", 1, align.Center),
		h("Denumire", 3, align.Left),
		h("UM", 1, align.Center),
		h("Cant.", 1, align.Right),
		h("Preț unitar", 2, align.Right),
		h("Subtotal", 1, align.Right),
		h("TVA%", 1, align.Center),
		h("TVA", 1, align.Right),
		h("Total", 1, align.Right),
	)
}

// itemRows: un rând per linie de factură, cu umbrire alternată și sumele la
// două zecimale. La epuizarea spațiului vertical Maroto mută rândul pe pagina
// următoare, de la marginea de sus.
func itemRows(items []entity.InvoiceItem) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(tr(s), props.Text{
			Size: 7, Align: a, Top: 1.5, Left: 1, Right: 1,
		}))
	}

	rows := make([]core.Row, 0, len(items))
	for i, it := range items {
		r := row.New(6).Add(
			cell(fmt.Sprintf("%d", i+1), 1, align.Center),
			cell(truncate(it.Name, maxItemNameLen), 3, align.Left),
			cell(it.Unit, 1, align.Center),
			cell(it.Quantity.String(), 1, align.Right),
			cell(money(it.UnitPrice), 2, align.Right),
			cell(money(it.Subtotal), 1, align.Right),
			cell(it.VATRate.String()+"%", 1, align.Center),
			cell(money(it.VATAmount), 1, align.Right),
			cell(money(it.Total), 1, align.Right),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorShading})
		}
		rows = append(rows, r)
	}
	return rows
}

// totalsRows: subtotal, câte un rând pe cotă de TVA, discount dacă există,
// linia de total și totalul în litere.
func totalsRows(inv *entity.Invoice) []core.Row {
	label := func(s string) core.Component {
		return text.New(tr(s), props.Text{Size: 8, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 8, Align: align.Right, Right: 1})
	}

	rows := []core.Row{
		row.New(5).Add(
			col.New(8).Add(label("Subtotal:")),
			col.New(4).Add(value(money(inv.Subtotal)+" "+inv.Currency)),
		),
	}

	for _, e := range inv.VATBreakdown {
		rows = append(rows, row.New(5).Add(
			col.New(8).Add(label(fmt.Sprintf("TVA %s%% (bază %s):", e.Rate, money(e.Base)))),
			col.New(4).Add(value(money(e.Amount)+" "+inv.Currency)),
		))
	}

	if inv.TotalDiscount.IsPositive() {
		rows = append(rows, row.New(5).Add(
			col.New(8).Add(label("Discount:")),
			col.New(4).Add(value("-"+money(inv.TotalDiscount)+" "+inv.Currency)),
		))
	}

	rows = append(rows,
		row.New(2).Add(
			col.New(6),
			col.New(6).Add(line.New(props.Line{Color: colorRuleLine, Thickness: 0.5})),
		),
		row.New(7).Add(
			col.New(8).Add(text.New("TOTAL DE PLATĂ:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
			})),
			col.New(4).Add(text.New(money(inv.Total)+" "+inv.Currency, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
			})),
		),
		row.New(6).Add(col.New(12).Add(
			text.New(tr("adică "+romanian.AmountInWords(inv.Total)), props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Right: 1,
			}),
		)),
	)

	return rows
}

// paymentRows: conturile bancare ale furnizorului și modalitatea de plată.
func paymentRows(inv *entity.Invoice) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(tr("DETALII PLATĂ"), props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
		)),
	}

	for _, acc := range inv.Supplier.BankAccounts {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(tr(fmt.Sprintf("%s: %s", acc.Bank, acc.IBAN)), props.Text{Size: 8, Color: colorGray, Left: 2}),
		)))
	}

	if label, ok := paymentLabels[inv.PaymentMethod]; ok {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(tr("Modalitate de plată: "+label), props.Text{Size: 8, Color: colorGray, Left: 2}),
		)))
	}

	return rows
}

// signatureRows: două linii de semnătură (furnizor / client) și notele.
func signatureRows(inv *entity.Invoice) []core.Row {
	rows := []core.Row{
		row.New(6),
		row.New(2).Add(
			col.New(4).Add(line.New(props.Line{Color: colorGray, Thickness: 0.3})),
			col.New(4),
			col.New(4).Add(line.New(props.Line{Color: colorGray, Thickness: 0.3})),
		),
		row.New(5).Add(
			col.New(4).Add(text.New(tr("Semnătură furnizor"), props.Text{Size: 7, Align: align.Center, Color: colorGray})),
			col.New(4),
			col.New(4).Add(text.New(tr("Semnătură client"), props.Text{Size: 7, Align: align.Center, Color: colorGray})),
		),
	}

	if inv.Notes != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(tr("Note: "+inv.Notes), props.Text{Size: 7, Color: colorGray, Top: 2}),
		)))
	}

	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatează o sumă cu două zecimale și separatori românești:
// 1234.5 → "1.234,50".
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)

	negative := false
	if s[0] == '-' {
		negative = true
		s = s[1:]
	}
	intPart, fracPart := s[:len(s)-3], s[len(s)-2:]

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+4)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, intPart[i])
	}

	out := string(buf) + "," + fracPart
	if negative {
		out = "-" + out
	}
	return out
}

// truncate taie denumirea la max n caractere (pe rune, nu pe octeți).
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
