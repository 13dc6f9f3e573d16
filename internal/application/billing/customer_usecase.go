package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pmt-online/magazin-api/internal/application/dto"
	"github.com/pmt-online/magazin-api/internal/domain"
	"github.com/pmt-online/magazin-api/internal/domain/efactura"
	"github.com/pmt-online/magazin-api/internal/domain/entity"
	"github.com/pmt-online/magazin-api/internal/domain/repository"
	"github.com/pmt-online/magazin-api/pkg/fiscal"
)

// CustomerUseCase cazuri de utilizare pentru clienți.
// Identificatorii fiscali se verifică aici, la intrare: un CIF sau CNP cu
// cifra de control greșită nu ajunge niciodată în baza de date.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construiește cazul de utilizare.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create creează un client nou.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := validateCustomerInput(in); err != nil {
		return nil, err
	}

	taxCode := in.CIF
	if in.Kind == entity.CustomerKindPerson {
		taxCode = in.CNP
	}
	if taxCode != "" {
		existing, _ := uc.repo.GetByTaxCode(taxCode)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:       uuid.New().String(),
		Kind:     in.Kind,
		Name:     in.Name,
		CIF:      in.CIF,
		RegCom:   in.RegCom,
		CNP:      in.CNP,
		VATPayer: in.VATPayer,
		Address:  addressFromRequest(in.Address),
		Email:    in.Email,
		Phone:    in.Phone,

		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return customerToResponse(customer), nil
}

// Get întoarce un client după ID.
func (uc *CustomerUseCase) Get(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customerToResponse(customer), nil
}

// List listează clienții paginat.
func (uc *CustomerUseCase) List(limit, offset int) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, customerToResponse(c))
	}
	return out, nil
}

// Update actualizează un client existent.
func (uc *CustomerUseCase) Update(id string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := validateCustomerInput(in); err != nil {
		return nil, err
	}
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	customer.Kind = in.Kind
	customer.Name = in.Name
	customer.CIF = in.CIF
	customer.RegCom = in.RegCom
	customer.CNP = in.CNP
	customer.VATPayer = in.VATPayer
	customer.Address = addressFromRequest(in.Address)
	customer.Email = in.Email
	customer.Phone = in.Phone
	customer.UpdatedAt = time.Now()

	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return customerToResponse(customer), nil
}

// Delete șterge un client.
func (uc *CustomerUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func validateCustomerInput(in dto.CreateCustomerRequest) error {
	if in.Name == "" {
		return fmt.Errorf("%w: numele lipsește", domain.ErrInvalidInput)
	}
	switch in.Kind {
	case entity.CustomerKindCompany:
		if !fiscal.ValidCIF(in.CIF) {
			return fmt.Errorf("%w: CIF invalid %q", domain.ErrInvalidInput, in.CIF)
		}
		if in.CNP != "" {
			return fmt.Errorf("%w: o firmă nu are CNP", domain.ErrInvalidInput)
		}
	case entity.CustomerKindPerson:
		if in.CNP != "" && !fiscal.ValidCNP(in.CNP) {
			return fmt.Errorf("%w: CNP invalid", domain.ErrInvalidInput)
		}
		if in.CIF != "" {
			return fmt.Errorf("%w: o persoană fizică nu are CIF", domain.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: kind necunoscut %q", domain.ErrInvalidInput, in.Kind)
	}
	if in.Address.County != "" && !efactura.ValidCounties[in.Address.County] {
		return fmt.Errorf("%w: județ necunoscut %q", domain.ErrInvalidInput, in.Address.County)
	}
	return nil
}

func addressFromRequest(a dto.AddressRequest) entity.Address {
	country := a.Country
	if country == "" {
		country = "RO"
	}
	return entity.Address{
		Street:     a.Street,
		Number:     a.Number,
		City:       a.City,
		County:     a.County,
		PostalCode: a.PostalCode,
		Country:    country,
	}
}

func customerToResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:       c.ID,
		Kind:     c.Kind,
		Name:     c.Name,
		CIF:      c.CIF,
		RegCom:   c.RegCom,
		CNP:      c.CNP,
		VATPayer: c.VATPayer,
		Address: dto.AddressRequest{
			Street:     c.Address.Street,
			Number:     c.Address.Number,
			City:       c.Address.City,
			County:     c.Address.County,
			PostalCode: c.Address.PostalCode,
			Country:    c.Address.Country,
		},
		Email: c.Email,
		Phone: c.Phone,
	}
}
