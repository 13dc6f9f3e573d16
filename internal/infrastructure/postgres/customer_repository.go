package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pmt-online/magazin-api/internal/domain"
	"github.com/pmt-online/magazin-api/internal/domain/entity"
	"github.com/pmt-online/magazin-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementarea CustomerRepository (utilizabil cu pool sau tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construiește adaptorul. Se dă pool sau tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `
	id, kind, name, cif, reg_com, cnp, vat_payer,
	street, street_no, city, county, postal_code, country,
	email, phone, created_at, updated_at`

// Create persistează un client nou.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Kind, customer.Name,
		nullIfEmpty(customer.CIF), nullIfEmpty(customer.RegCom), nullIfEmpty(customer.CNP),
		customer.VATPayer,
		customer.Address.Street, customer.Address.Number, customer.Address.City,
		customer.Address.County, customer.Address.PostalCode, customer.Address.Country,
		nullIfEmpty(customer.Email), nullIfEmpty(customer.Phone),
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obține un client după ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetByTaxCode caută după CIF (firme) sau CNP (persoane fizice).
func (r *CustomerRepo) GetByTaxCode(code string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE cif = $1 OR cnp = $1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by tax code: %w", err)
	}
	return c, nil
}

// List listează clienții cu paginare.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Update actualizează datele clientului.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET kind = $2, name = $3, cif = $4, reg_com = $5, cnp = $6, vat_payer = $7,
		    street = $8, street_no = $9, city = $10, county = $11, postal_code = $12, country = $13,
		    email = $14, phone = $15, updated_at = $16
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Kind, customer.Name,
		nullIfEmpty(customer.CIF), nullIfEmpty(customer.RegCom), nullIfEmpty(customer.CNP),
		customer.VATPayer,
		customer.Address.Street, customer.Address.Number, customer.Address.City,
		customer.Address.County, customer.Address.PostalCode, customer.Address.Country,
		nullIfEmpty(customer.Email), nullIfEmpty(customer.Phone),
		customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete șterge un client.
func (r *CustomerRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var (
		c                entity.Customer
		cif, regCom, cnp *string
		email, phone     *string
	)
	err := row.Scan(
		&c.ID, &c.Kind, &c.Name, &cif, &regCom, &cnp, &c.VATPayer,
		&c.Address.Street, &c.Address.Number, &c.Address.City,
		&c.Address.County, &c.Address.PostalCode, &c.Address.Country,
		&email, &phone, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.CIF = deref(cif)
	c.RegCom = deref(regCom)
	c.CNP = deref(cnp)
	c.Email = deref(email)
	c.Phone = deref(phone)
	return &c, nil
}
