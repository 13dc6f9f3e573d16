// Package efactura conține nucleul de facturare electronică al magazinului:
// nomenclatoare fiscale, validarea structurală și de business a facturii și
// formatarea numărului de factură. Toate funcțiile sunt transformări pure,
// fără stare între apeluri.
package efactura

import "github.com/shopspring/decimal"

// =============================================================================
// Cote de TVA în vigoare (Codul Fiscal, art. 291): 19% standard, 9% și 5%
// reduse, 0% pentru operațiuni scutite cu drept de deducere.
// =============================================================================

var (
	VATRateStandard = decimal.NewFromInt(19)
	VATRateReduced9 = decimal.NewFromInt(9)
	VATRateReduced5 = decimal.NewFromInt(5)
	VATRateZero     = decimal.Zero
)

// ValidVATRates cotele de TVA acceptate, indexate după forma lor canonică.
var ValidVATRates = map[string]bool{
	VATRateStandard.String(): true,
	VATRateReduced9.String(): true,
	VATRateReduced5.String(): true,
	VATRateZero.String():     true,
}

// =============================================================================
// Unități de măsură folosite pe liniile de factură (subset UN/ECE Rec 20 +
// coduri uzuale în comerțul de materiale de construcții).
// =============================================================================

const (
	UnitPiece       = "BUC" // bucată
	UnitSquareMetre = "MTK" // metru pătrat
	UnitLinearMetre = "MTR" // metru liniar
	UnitKilogram    = "KGM" // kilogram
	UnitLitre       = "LTR" // litru
	UnitBox         = "CUT" // cutie
	UnitPallet      = "PAL" // palet
	UnitBag         = "SAC" // sac
	UnitSet         = "SET" // set
	UnitHour        = "ORA" // oră de manoperă
)

// ValidUnits codurile de unitate de măsură acceptate.
var ValidUnits = map[string]bool{
	UnitPiece: true, UnitSquareMetre: true, UnitLinearMetre: true,
	UnitKilogram: true, UnitLitre: true, UnitBox: true,
	UnitPallet: true, UnitBag: true, UnitSet: true, UnitHour: true,
}

// =============================================================================
// Nomenclatorul județelor (inclusiv municipiul București), folosit la
// validarea adreselor structurate.
// =============================================================================

// ValidCounties numele oficiale ale județelor.
var ValidCounties = map[string]bool{
	"Alba": true, "Arad": true, "Argeș": true, "Bacău": true, "Bihor": true,
	"Bistrița-Năsăud": true, "Botoșani": true, "Brașov": true, "Brăila": true,
	"București": true, "Buzău": true, "Caraș-Severin": true, "Călărași": true,
	"Cluj": true, "Constanța": true, "Covasna": true, "Dâmbovița": true,
	"Dolj": true, "Galați": true, "Giurgiu": true, "Gorj": true,
	"Harghita": true, "Hunedoara": true, "Ialomița": true, "Iași": true,
	"Ilfov": true, "Maramureș": true, "Mehedinți": true, "Mureș": true,
	"Neamț": true, "Olt": true, "Prahova": true, "Satu Mare": true,
	"Sălaj": true, "Sibiu": true, "Suceava": true, "Teleorman": true,
	"Timiș": true, "Tulcea": true, "Vaslui": true, "Vâlcea": true,
	"Vrancea": true,
}

// =============================================================================
// Tipuri de document și modalități de plată (validate ca enumerări; etichetele
// localizate pentru PDF stau în infrastructura de randare).
// =============================================================================

// ValidInvoiceTypes tipurile de document acceptate.
var ValidInvoiceTypes = map[string]bool{
	"FACTURA": true, "PROFORMA": true, "STORNO": true, "AVIZ": true,
}

// ValidPaymentMethods modalitățile de plată acceptate.
var ValidPaymentMethods = map[string]bool{
	"NUMERAR": true, "TRANSFER": true, "CARD": true, "RAMBURS": true,
}

// CurrencyRON moneda implicită; orice altă monedă cere curs de schimb.
const CurrencyRON = "RON"
