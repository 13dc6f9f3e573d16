package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pmt-online/magazin-api/internal/application/dto"
	"github.com/pmt-online/magazin-api/internal/domain"
	"github.com/pmt-online/magazin-api/internal/domain/efactura"
	"github.com/pmt-online/magazin-api/internal/domain/entity"
	"github.com/pmt-online/magazin-api/internal/domain/repository"
	"github.com/pmt-online/magazin-api/internal/infrastructure/anaf"
	"github.com/pmt-online/magazin-api/pkg/config"
	"github.com/pmt-online/magazin-api/pkg/logger"
)

// ValidationError eroare purtătoare a rezultatului complet de validare.
// Handlerul HTTP o desface în răspuns 422 cu toate încălcările.
type ValidationError struct {
	Result efactura.ValidationResult
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("factura nu a trecut validarea: %d erori", len(e.Result.Errors))
}

// SupplierDetails construiește snapshot-ul de emitent din configurație.
func SupplierDetails(cfg config.SupplierConfig) entity.CompanyDetails {
	var contact *entity.Contact
	if cfg.Email != "" || cfg.Phone != "" {
		contact = &entity.Contact{Email: cfg.Email, Phone: cfg.Phone}
	}
	var accounts []entity.BankAccount
	if cfg.IBAN != "" {
		accounts = append(accounts, entity.BankAccount{Bank: cfg.Bank, IBAN: cfg.IBAN})
	}
	return entity.CompanyDetails{
		Name:   cfg.Name,
		CIF:    cfg.CIF,
		RegCom: cfg.RegCom,
		Address: entity.Address{
			Street:     cfg.Street,
			Number:     cfg.StreetNo,
			City:       cfg.City,
			County:     cfg.County,
			PostalCode: cfg.PostalCode,
			Country:    "RO",
		},
		Contact:      contact,
		BankAccounts: accounts,
		VATPayer:     cfg.VATPayer,
	}
}

// CreateInvoiceUseCase emite o factură: asamblează liniile din catalog,
// calculează desfășurătorul de TVA și totalurile, alocă numărul din serie,
// validează documentul complet și îl persistă împreună cu XML-ul UBL.
type CreateInvoiceUseCase struct {
	txRunner     BillingTxRunner
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	ublBuilder   UBLGenerator
	supplier     entity.CompanyDetails
	cfg          config.EFacturaConfig
	log          *logger.Logger
}

// NewCreateInvoiceUseCase construiește cazul de utilizare.
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	ublBuilder UBLGenerator,
	supplierCfg config.SupplierConfig,
	efacturaCfg config.EFacturaConfig,
	log *logger.Logger,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		ublBuilder:   ublBuilder,
		supplier:     SupplierDetails(supplierCfg),
		cfg:          efacturaCfg,
		log:          log,
	}
}

// CreateInvoice asamblează și emite factura. Dacă documentul rezultat nu trece
// validarea, nu se persistă nimic și se întoarce *ValidationError.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	invType := entity.InvoiceType(strings.ToUpper(in.Type))
	if in.Type == "" {
		invType = entity.TypeFactura
	}
	if !efactura.ValidInvoiceTypes[string(invType)] {
		return nil, fmt.Errorf("%w: tip de document necunoscut %q", domain.ErrInvalidInput, in.Type)
	}

	series := strings.ToUpper(in.Series)
	if series == "" {
		series = uc.cfg.DefaultSeries
	}
	if !efactura.ValidSeries(series) {
		return nil, fmt.Errorf("%w: serie de facturare invalidă %q", domain.ErrInvalidInput, series)
	}

	// Asamblarea liniilor: prețul din catalog dacă nu e dat, valori rotunjite
	// la 2 zecimale. Stornarea se exprimă prin tipul STORNO și referința la
	// factura stornată, cu cantități pozitive.
	items := make([]entity.InvoiceItem, 0, len(in.Items))
	for i, reqItem := range in.Items {
		if reqItem.ProductID == "" {
			return nil, fmt.Errorf("%w: items[%d].product_id lipsă", domain.ErrInvalidInput, i)
		}
		if !reqItem.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: items[%d].quantity trebuie să fie pozitivă", domain.ErrInvalidInput, i)
		}
		product, err := uc.productRepo.GetByID(reqItem.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: produsul %s", domain.ErrNotFound, reqItem.ProductID)
		}
		unitPrice := reqItem.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.Price
		}
		items = append(items, buildItem(product, reqItem.Quantity, unitPrice, reqItem.DiscountPercent))
	}

	now := time.Now()
	dueDays := in.DueDays
	if dueDays <= 0 {
		dueDays = uc.cfg.PaymentTermDays
	}
	currency := strings.ToUpper(in.Currency)
	if currency == "" {
		currency = efactura.CurrencyRON
	}

	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		Series:        series,
		Date:          now,
		DueDate:       now.AddDate(0, 0, dueDays),
		Type:          invType,
		StornoRef:     in.StornoRef,
		Supplier:      uc.supplier,
		Customer:      customer.Party(),
		Items:         items,
		Currency:      currency,
		ExchangeRate:  in.ExchangeRate,
		PaymentMethod: strings.ToUpper(in.PaymentMethod),
		PaymentStatus: entity.PaymentStatusUnpaid,
		Notes:         in.Notes,
		Anaf:          entity.AnafSubmission{Status: entity.AnafStatusDraft},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	fillTotals(inv)

	// Numărul se alocă în aceeași tranzacție cu persistarea: fără găuri în
	// serie la rollback.
	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		number, err := invoiceRepo.NextNumber(series)
		if err != nil {
			return err
		}
		inv.Number = number

		result := efactura.ValidateInvoice(inv)
		if !result.Valid {
			return &ValidationError{Result: result}
		}
		for _, w := range result.Warnings {
			uc.log.Warn().
				Str("factura", efactura.FormatNumber(inv.Series, inv.Number)).
				Str("camp", w.Field).
				Msg(w.Message)
		}

		xmlBytes, err := uc.ublBuilder.Build(inv)
		if err != nil {
			return fmt.Errorf("generare UBL: %w", err)
		}
		digest, err := anaf.CanonicalDigest(xmlBytes)
		if err != nil {
			return fmt.Errorf("digest canonic: %w", err)
		}
		inv.Anaf.XML = string(xmlBytes)
		inv.Anaf.Digest = digest

		return invoiceRepo.Create(inv)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("factura", efactura.FormatNumber(inv.Series, inv.Number)).
		Str("client", inv.Customer.Name()).
		Str("total", inv.Total.StringFixed(2)).
		Msg("factură emisă")

	resp := InvoiceToResponse(inv)
	return resp, nil
}

// buildItem calculează valorile unei linii din cantitate, preț și discount.
// TVA-ul se calculează pe subtotalul nediscountat; discountul se scade doar
// din totalul facturii.
func buildItem(p *entity.Product, qty, unitPrice, discountPercent decimal.Decimal) entity.InvoiceItem {
	subtotal := qty.Mul(unitPrice).Round(2)
	discount := decimal.Zero
	if !discountPercent.IsZero() {
		discount = subtotal.Mul(discountPercent).Div(decimal.NewFromInt(100)).Round(2)
	}
	vat := subtotal.Mul(p.VATRate).Div(decimal.NewFromInt(100)).Round(2)
	return entity.InvoiceItem{
		Name:            p.Name,
		Code:            p.Code,
		Description:     p.Description,
		Quantity:        qty,
		Unit:            p.Unit,
		UnitPrice:       unitPrice,
		VATRate:         p.VATRate,
		VATAmount:       vat,
		Subtotal:        subtotal,
		Total:           subtotal.Sub(discount).Add(vat),
		DiscountPercent: discountPercent,
		DiscountAmount:  discount,
	}
}

// fillTotals agregă liniile în desfășurătorul de TVA și totalurile facturii.
func fillTotals(inv *entity.Invoice) {
	type agg struct {
		base, amount decimal.Decimal
	}
	byRate := map[string]*agg{}
	var rateOrder []string
	var subtotal, discount, vat decimal.Decimal

	for _, item := range inv.Items {
		subtotal = subtotal.Add(item.Subtotal)
		discount = discount.Add(item.DiscountAmount)
		vat = vat.Add(item.VATAmount)

		key := item.VATRate.String()
		a, ok := byRate[key]
		if !ok {
			a = &agg{}
			byRate[key] = a
			rateOrder = append(rateOrder, key)
		}
		a.base = a.base.Add(item.Subtotal)
		a.amount = a.amount.Add(item.VATAmount)
	}

	inv.VATBreakdown = inv.VATBreakdown[:0]
	for _, key := range rateOrder {
		rate, _ := decimal.NewFromString(key)
		inv.VATBreakdown = append(inv.VATBreakdown, entity.VATSummary{
			Rate:   rate,
			Base:   byRate[key].base,
			Amount: byRate[key].amount,
		})
	}

	inv.Subtotal = subtotal
	inv.TotalDiscount = discount
	inv.TotalVAT = vat
	inv.Total = subtotal.Add(vat).Sub(discount)
}

// InvoiceToResponse mapează agregatul la DTO-ul de răspuns.
func InvoiceToResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	items := make([]dto.InvoiceItemResponse, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, dto.InvoiceItemResponse{
			Name:            it.Name,
			Code:            it.Code,
			Quantity:        it.Quantity,
			Unit:            it.Unit,
			UnitPrice:       it.UnitPrice,
			VATRate:         it.VATRate,
			VATAmount:       it.VATAmount,
			Subtotal:        it.Subtotal,
			Total:           it.Total,
			DiscountPercent: it.DiscountPercent,
			DiscountAmount:  it.DiscountAmount,
		})
	}
	breakdown := make([]dto.VATSummaryResponse, 0, len(inv.VATBreakdown))
	for _, v := range inv.VATBreakdown {
		breakdown = append(breakdown, dto.VATSummaryResponse{Rate: v.Rate, Base: v.Base, Amount: v.Amount})
	}
	return &dto.InvoiceResponse{
		ID:            inv.ID,
		FullNumber:    efactura.FormatNumber(inv.Series, inv.Number),
		Series:        inv.Series,
		Number:        inv.Number,
		Date:          inv.Date.Format("2006-01-02"),
		DueDate:       inv.DueDate.Format("2006-01-02"),
		Type:          string(inv.Type),
		StornoRef:     inv.StornoRef,
		CustomerName:  inv.Customer.Name(),
		Items:         items,
		VATBreakdown:  breakdown,
		Currency:      inv.Currency,
		ExchangeRate:  inv.ExchangeRate,
		Subtotal:      inv.Subtotal,
		TotalDiscount: inv.TotalDiscount,
		TotalVAT:      inv.TotalVAT,
		Total:         inv.Total,
		PaymentMethod: inv.PaymentMethod,
		PaymentStatus: inv.PaymentStatus,
		Notes:         inv.Notes,
		AnafStatus:    inv.Anaf.Status,
		AnafUploadID:  inv.Anaf.UploadID,
		AnafErrors:    inv.Anaf.Errors,
	}
}
