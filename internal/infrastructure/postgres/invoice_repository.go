package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pmt-online/magazin-api/internal/domain"
	"github.com/pmt-online/magazin-api/internal/domain/entity"
	"github.com/pmt-online/magazin-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementarea InvoiceRepository (utilizabil cu pool sau tx).
// Factura emisă este un snapshot imuabil: părțile, liniile și desfășurătorul
// de TVA se stochează ca JSONB, nu normalizate.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construiește adaptorul. Se dă pool sau tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `
	id, series, number, date, due_date, type, storno_ref,
	supplier, customer, items, vat_breakdown,
	currency, exchange_rate, subtotal, total_discount, total_vat, total,
	payment_method, payment_status, payment_ref, notes,
	anaf_upload_id, anaf_status, anaf_errors, anaf_xml, anaf_digest,
	created_at, updated_at`

// Create persistează factura completă.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	supplier, customer, items, breakdown, err := marshalSnapshots(invoice)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		        $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)`
	_, err = r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Series, invoice.Number, invoice.Date, invoice.DueDate,
		string(invoice.Type), nullIfEmpty(invoice.StornoRef),
		supplier, customer, items, breakdown,
		invoice.Currency, invoice.ExchangeRate,
		invoice.Subtotal, invoice.TotalDiscount, invoice.TotalVAT, invoice.Total,
		invoice.PaymentMethod, invoice.PaymentStatus, nullIfEmpty(invoice.PaymentRef), invoice.Notes,
		nullIfEmpty(invoice.Anaf.UploadID), invoice.Anaf.Status, nullIfEmpty(invoice.Anaf.Errors),
		nullIfEmpty(invoice.Anaf.XML), nullIfEmpty(invoice.Anaf.Digest),
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// UpdateAnaf actualizează doar plicul ANAF (după generare XML sau după răspuns SPV).
func (r *InvoiceRepo) UpdateAnaf(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET anaf_upload_id = $2, anaf_status = $3, anaf_errors = $4,
		    anaf_xml = $5, anaf_digest = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		invoice.ID,
		nullIfEmpty(invoice.Anaf.UploadID), invoice.Anaf.Status, nullIfEmpty(invoice.Anaf.Errors),
		nullIfEmpty(invoice.Anaf.XML), nullIfEmpty(invoice.Anaf.Digest),
		invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice anaf: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePayment actualizează starea de încasare a facturii.
func (r *InvoiceRepo) UpdatePayment(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET payment_status = $2, payment_ref = $3, updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.PaymentStatus, nullIfEmpty(invoice.PaymentRef), invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obține o factură după ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetByNumber obține o factură după serie și număr.
func (r *InvoiceRepo) GetByNumber(series string, number int) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE series = $1 AND number = $2`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, series, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by number: %w", err)
	}
	return inv, nil
}

// List listează facturile, cele mai recente primele.
func (r *InvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices ORDER BY date DESC, series, number DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// NextNumber alocă atomic următorul număr din serie. Prima factură dintr-o
// serie nouă primește 1.
func (r *InvoiceRepo) NextNumber(series string) (int, error) {
	query := `
		INSERT INTO invoice_series (series, last_number)
		VALUES ($1, 1)
		ON CONFLICT (series) DO UPDATE SET last_number = invoice_series.last_number + 1
		RETURNING last_number`
	var n int
	if err := r.q.QueryRow(context.Background(), query, series).Scan(&n); err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return n, nil
}

func marshalSnapshots(invoice *entity.Invoice) (supplier, customer, items, breakdown []byte, err error) {
	if supplier, err = json.Marshal(invoice.Supplier); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal supplier: %w", err)
	}
	if customer, err = json.Marshal(invoice.Customer); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal customer: %w", err)
	}
	if items, err = json.Marshal(invoice.Items); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal items: %w", err)
	}
	if breakdown, err = json.Marshal(invoice.VATBreakdown); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal vat breakdown: %w", err)
	}
	return supplier, customer, items, breakdown, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var (
		inv                                  entity.Invoice
		invType                              string
		stornoRef, paymentRef                *string
		uploadID, anafErrors, anafXML        *string
		anafDigest                           *string
		supplier, customer, items, breakdown []byte
	)
	err := row.Scan(
		&inv.ID, &inv.Series, &inv.Number, &inv.Date, &inv.DueDate, &invType, &stornoRef,
		&supplier, &customer, &items, &breakdown,
		&inv.Currency, &inv.ExchangeRate, &inv.Subtotal, &inv.TotalDiscount, &inv.TotalVAT, &inv.Total,
		&inv.PaymentMethod, &inv.PaymentStatus, &paymentRef, &inv.Notes,
		&uploadID, &inv.Anaf.Status, &anafErrors, &anafXML, &anafDigest,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Type = entity.InvoiceType(invType)
	inv.StornoRef = deref(stornoRef)
	inv.PaymentRef = deref(paymentRef)
	inv.Anaf.UploadID = deref(uploadID)
	inv.Anaf.Errors = deref(anafErrors)
	inv.Anaf.XML = deref(anafXML)
	inv.Anaf.Digest = deref(anafDigest)

	if err := json.Unmarshal(supplier, &inv.Supplier); err != nil {
		return nil, fmt.Errorf("unmarshal supplier: %w", err)
	}
	if err := json.Unmarshal(customer, &inv.Customer); err != nil {
		return nil, fmt.Errorf("unmarshal customer: %w", err)
	}
	if err := json.Unmarshal(items, &inv.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	if err := json.Unmarshal(breakdown, &inv.VATBreakdown); err != nil {
		return nil, fmt.Errorf("unmarshal vat breakdown: %w", err)
	}
	return &inv, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
