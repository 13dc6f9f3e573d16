package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmt-online/magazin-api/internal/application/billing"
	"github.com/pmt-online/magazin-api/internal/application/dto"
	"github.com/pmt-online/magazin-api/internal/domain"
	"github.com/pmt-online/magazin-api/internal/domain/entity"
	"github.com/pmt-online/magazin-api/internal/domain/repository"
	"github.com/pmt-online/magazin-api/internal/infrastructure/anaf"
	"github.com/pmt-online/magazin-api/pkg/config"
	"github.com/pmt-online/magazin-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repo-uri în memorie
// ──────────────────────────────────────────────────────────────────────────────

type memCustomerRepo struct {
	byID map[string]*entity.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{byID: map[string]*entity.Customer{}}
}

func (r *memCustomerRepo) Create(c *entity.Customer) error {
	r.byID[c.ID] = c
	return nil
}
func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) { return r.byID[id], nil }
func (r *memCustomerRepo) GetByTaxCode(code string) (*entity.Customer, error) {
	for _, c := range r.byID {
		if (c.CIF != "" && c.CIF == code) || (c.CNP != "" && c.CNP == code) {
			return c, nil
		}
	}
	return nil, nil
}
func (r *memCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}
func (r *memCustomerRepo) Update(c *entity.Customer) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}
func (r *memCustomerRepo) Delete(id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type memProductRepo struct {
	byID map[string]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{byID: map[string]*entity.Product{}}
}

func (r *memProductRepo) Create(p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) { return r.byID[id], nil }
func (r *memProductRepo) GetByCode(code string) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}
func (r *memProductRepo) ListByCategory(category string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *memProductRepo) Update(p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}
func (r *memProductRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

type memInvoiceRepo struct {
	byID    map[string]*entity.Invoice
	counter map[string]int
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{byID: map[string]*entity.Invoice{}, counter: map[string]int{}}
}

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	r.byID[inv.ID] = inv
	return nil
}
func (r *memInvoiceRepo) UpdateAnaf(inv *entity.Invoice) error {
	if _, ok := r.byID[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[inv.ID] = inv
	return nil
}
func (r *memInvoiceRepo) UpdatePayment(inv *entity.Invoice) error {
	if _, ok := r.byID[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[inv.ID] = inv
	return nil
}
func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) { return r.byID[id], nil }
func (r *memInvoiceRepo) GetByNumber(series string, number int) (*entity.Invoice, error) {
	for _, inv := range r.byID {
		if inv.Series == series && inv.Number == number {
			return inv, nil
		}
	}
	return nil, nil
}
func (r *memInvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.byID {
		out = append(out, inv)
	}
	return out, nil
}
func (r *memInvoiceRepo) NextNumber(series string) (int, error) {
	r.counter[series]++
	return r.counter[series], nil
}

// memTxRunner execută callback-ul direct, fără tranzacție reală.
type memTxRunner struct {
	customerRepo *memCustomerRepo
	invoiceRepo  *memInvoiceRepo
}

func (r *memTxRunner) RunBilling(_ context.Context, fn func(
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	return fn(r.customerRepo, r.invoiceRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

func validSupplierConfig() config.SupplierConfig {
	return config.SupplierConfig{
		Name:       "Pardoseli Moderne Total SRL",
		CIF:        "RO18547298",
		RegCom:     "J40/1234/2006",
		Street:     "Șos. Pantelimon",
		StreetNo:   "302",
		City:       "București",
		County:     "București",
		PostalCode: "021652",
		Email:      "comenzi@pmt.example",
		Phone:      "+40211234567",
		IBAN:       "RO49AAAA1B31007593840000",
		Bank:       "Banca Exemplu",
		VATPayer:   true,
	}
}

func testEFacturaConfig() config.EFacturaConfig {
	return config.EFacturaConfig{
		DefaultSeries:   "PMT",
		PaymentTermDays: 30,
		Environment:     "test",
	}
}

type fixture struct {
	uc           *billing.CreateInvoiceUseCase
	customerRepo *memCustomerRepo
	productRepo  *memProductRepo
	invoiceRepo  *memInvoiceRepo
}

func newFixture(t *testing.T, supplierCfg config.SupplierConfig) *fixture {
	t.Helper()
	customerRepo := newMemCustomerRepo()
	productRepo := newMemProductRepo()
	invoiceRepo := newMemInvoiceRepo()
	txRunner := &memTxRunner{customerRepo: customerRepo, invoiceRepo: invoiceRepo}
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	uc := billing.NewCreateInvoiceUseCase(
		txRunner, customerRepo, productRepo,
		anaf.NewUBLBuilder(), supplierCfg, testEFacturaConfig(), log,
	)
	return &fixture{uc: uc, customerRepo: customerRepo, productRepo: productRepo, invoiceRepo: invoiceRepo}
}

func (f *fixture) addCompanyCustomer() *entity.Customer {
	c := &entity.Customer{
		ID:       "cust-1",
		Kind:     entity.CustomerKindCompany,
		Name:     "Construct Deco SRL",
		CIF:      "18547298",
		VATPayer: true,
		Address: entity.Address{
			Street:     "Str. Memorandumului",
			Number:     "4",
			City:       "Cluj-Napoca",
			County:     "Cluj",
			PostalCode: "400114",
			Country:    "RO",
		},
	}
	f.customerRepo.byID[c.ID] = c
	return c
}

func (f *fixture) addProduct(id, code string, price, vatRate string) *entity.Product {
	p := &entity.Product{
		ID:       id,
		Code:     code,
		Name:     "Gresie porțelanată " + code,
		Category: entity.CategoryGresie,
		Unit:     "MTK",
		Price:    decimal.RequireFromString(price),
		VATRate:  decimal.RequireFromString(vatRate),
		Active:   true,
	}
	f.productRepo.byID[p.ID] = p
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Teste
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateInvoiceAssemblesAndPersists(t *testing.T) {
	f := newFixture(t, validSupplierConfig())
	f.addCompanyCustomer()
	f.addProduct("prod-1", "GR-BEIGE-60", "100", "19")
	f.addProduct("prod-2", "AD-FLEX-25", "80", "9")

	resp, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID:    "cust-1",
		PaymentMethod: "TRANSFER",
		Items: []dto.InvoiceItemRequest{
			{ProductID: "prod-1", Quantity: decimal.NewFromInt(2)},
			{ProductID: "prod-2", Quantity: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	// Numărul vine din serie, formatat pe 6 cifre
	assert.Equal(t, "PMT000001", resp.FullNumber)
	assert.Equal(t, "PMT", resp.Series)
	assert.Equal(t, 1, resp.Number)

	// 2×100 + 3×80 = 440; TVA 38 + 21.60 = 59.60
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("440")), "subtotal = %s", resp.Subtotal)
	assert.True(t, resp.TotalVAT.Equal(decimal.RequireFromString("59.60")), "totalVAT = %s", resp.TotalVAT)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("499.60")), "total = %s", resp.Total)

	// Desfășurătorul păstrează ordinea primei apariții a cotelor
	require.Len(t, resp.VATBreakdown, 2)
	assert.True(t, resp.VATBreakdown[0].Rate.Equal(decimal.NewFromInt(19)))
	assert.True(t, resp.VATBreakdown[1].Rate.Equal(decimal.NewFromInt(9)))

	// Factura persistată are plicul ANAF completat
	stored, err := f.invoiceRepo.GetByNumber("PMT", 1)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.AnafStatusDraft, stored.Anaf.Status)
	assert.NotEmpty(t, stored.Anaf.XML)
	assert.Len(t, stored.Anaf.Digest, 64)
}

func TestCreateInvoiceNumbersAreSequentialPerSeries(t *testing.T) {
	f := newFixture(t, validSupplierConfig())
	f.addCompanyCustomer()
	f.addProduct("prod-1", "GR-BEIGE-60", "100", "19")

	req := dto.CreateInvoiceRequest{
		CustomerID:    "cust-1",
		PaymentMethod: "CARD",
		Items:         []dto.InvoiceItemRequest{{ProductID: "prod-1", Quantity: decimal.NewFromInt(1)}},
	}
	first, err := f.uc.CreateInvoice(context.Background(), req)
	require.NoError(t, err)
	second, err := f.uc.CreateInvoice(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "PMT000001", first.FullNumber)
	assert.Equal(t, "PMT000002", second.FullNumber)
}

func TestCreateInvoiceUsesCatalogPriceAndTerm(t *testing.T) {
	f := newFixture(t, validSupplierConfig())
	f.addCompanyCustomer()
	f.addProduct("prod-1", "GR-BEIGE-60", "123.45", "19")

	resp, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID:    "cust-1",
		PaymentMethod: "NUMERAR",
		Items:         []dto.InvoiceItemRequest{{ProductID: "prod-1", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.RequireFromString("123.45")))

	date, err := time.Parse("2006-01-02", resp.Date)
	require.NoError(t, err)
	due, err := time.Parse("2006-01-02", resp.DueDate)
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, due.Sub(date))
}

func TestCreateInvoiceDiscountArithmetic(t *testing.T) {
	f := newFixture(t, validSupplierConfig())
	f.addCompanyCustomer()
	f.addProduct("prod-1", "GR-BEIGE-60", "100", "19")

	resp, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID:    "cust-1",
		PaymentMethod: "TRANSFER",
		Items: []dto.InvoiceItemRequest{{
			ProductID:       "prod-1",
			Quantity:        decimal.NewFromInt(2),
			DiscountPercent: decimal.NewFromInt(10),
		}},
	})
	require.NoError(t, err)

	// TVA pe subtotalul nediscountat: 200×19% = 38; total 200 − 20 + 38 = 218
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("200")))
	assert.True(t, resp.TotalDiscount.Equal(decimal.RequireFromString("20")))
	assert.True(t, resp.TotalVAT.Equal(decimal.RequireFromString("38")))
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("218")), "total = %s", resp.Total)
}

func TestCreateInvoiceRejectsUnknownCustomer(t *testing.T) {
	f := newFixture(t, validSupplierConfig())
	f.addProduct("prod-1", "GR-BEIGE-60", "100", "19")

	_, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "nu-exista",
		Items:      []dto.InvoiceItemRequest{{ProductID: "prod-1", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateInvoiceRejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture(t, validSupplierConfig())
	f.addCompanyCustomer()
	f.addProduct("prod-1", "GR-BEIGE-60", "100", "19")

	_, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Items:      []dto.InvoiceItemRequest{{ProductID: "prod-1", Quantity: decimal.NewFromInt(-1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateInvoiceRejectsDigitBearingSeries(t *testing.T) {
	f := newFixture(t, validSupplierConfig())
	f.addCompanyCustomer()
	f.addProduct("prod-1", "GR-BEIGE-60", "100", "19")

	_, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Series:     "A1",
		Items:      []dto.InvoiceItemRequest{{ProductID: "prod-1", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.invoiceRepo.byID)
}

func TestCreateInvoiceRejectsUnknownType(t *testing.T) {
	f := newFixture(t, validSupplierConfig())
	f.addCompanyCustomer()
	f.addProduct("prod-1", "GR-BEIGE-60", "100", "19")

	_, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Type:       "CHITANTA",
		Items:      []dto.InvoiceItemRequest{{ProductID: "prod-1", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateInvoiceValidationFailureDoesNotPersist(t *testing.T) {
	// Emitent cu CIF invalid: documentul asamblat pică validarea de schemă.
	badSupplier := validSupplierConfig()
	badSupplier.CIF = "RO18547290"

	f := newFixture(t, badSupplier)
	f.addCompanyCustomer()
	f.addProduct("prod-1", "GR-BEIGE-60", "100", "19")

	_, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID:    "cust-1",
		PaymentMethod: "TRANSFER",
		Items:         []dto.InvoiceItemRequest{{ProductID: "prod-1", Quantity: decimal.NewFromInt(1)}},
	})

	var vErr *billing.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.False(t, vErr.Result.Valid)
	assert.Empty(t, f.invoiceRepo.byID, "factura invalidă nu trebuie persistată")
}

func TestCreateInvoiceStornoRequiresReference(t *testing.T) {
	f := newFixture(t, validSupplierConfig())
	f.addCompanyCustomer()
	f.addProduct("prod-1", "GR-BEIGE-60", "100", "19")

	_, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID:    "cust-1",
		Type:          "STORNO",
		PaymentMethod: "TRANSFER",
		Items:         []dto.InvoiceItemRequest{{ProductID: "prod-1", Quantity: decimal.NewFromInt(1)}},
	})

	var vErr *billing.ValidationError
	require.ErrorAs(t, err, &vErr)

	resp, err := f.uc.CreateInvoice(context.Background(), dto.CreateInvoiceRequest{
		CustomerID:    "cust-1",
		Type:          "STORNO",
		StornoRef:     "PMT000009",
		PaymentMethod: "TRANSFER",
		Items:         []dto.InvoiceItemRequest{{ProductID: "prod-1", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "STORNO", resp.Type)
}
