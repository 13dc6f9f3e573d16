package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorii de produse ale magazinului.
const (
	CategoryGresie    = "gresie"
	CategoryFaianta   = "faianta"
	CategoryParchet   = "parchet"
	CategoryPiatra    = "piatra-naturala"
	CategoryAdeziv    = "adeziv"
	CategoryAccesorii = "accesorii"
)

// Product un articol din catalogul de pardoseli și placări.
// Prețul este de vânzare, fără TVA; pentru plăci vândute la cutie,
// SqmPerBox spune câți metri pătrați acoperă o cutie.
type Product struct {
	ID          string
	Code        string // cod unic de articol (ex. "GR-BEIGE-60")
	Name        string
	Description string
	Category    string
	Finish      string          // mat, lucios, rectificat...
	Unit        string          // cod unitate de măsură (MTK, BUC, CUT...)
	SqmPerBox   decimal.Decimal // zero pentru articole care nu se vând la cutie
	Price       decimal.Decimal // preț de vânzare fără TVA
	VATRate     decimal.Decimal // procent: 0, 5, 9, 19
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
