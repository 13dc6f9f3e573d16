package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pmt-online/magazin-api/internal/application/dto"
	"github.com/pmt-online/magazin-api/internal/domain"
	"github.com/pmt-online/magazin-api/internal/domain/efactura"
	"github.com/pmt-online/magazin-api/internal/domain/entity"
	"github.com/pmt-online/magazin-api/internal/domain/repository"
)

// ProductUseCase cazuri de utilizare pentru catalogul de produse.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construiește cazul de utilizare.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create adaugă un produs în catalog.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	existing, _ := uc.repo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Finish:      in.Finish,
		Unit:        in.Unit,
		SqmPerBox:   in.SqmPerBox,
		Price:       in.Price,
		VATRate:     in.VATRate,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return productToResponse(product), nil
}

// Get întoarce un produs după ID.
func (uc *ProductUseCase) Get(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return productToResponse(product), nil
}

// List listează produsele active, opțional filtrate pe categorie.
func (uc *ProductUseCase) List(category string, limit, offset int) ([]*dto.ProductResponse, error) {
	var (
		list []*entity.Product
		err  error
	)
	if category != "" {
		list, err = uc.repo.ListByCategory(category, limit, offset)
	} else {
		list, err = uc.repo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, productToResponse(p))
	}
	return out, nil
}

// Update actualizează un produs existent.
func (uc *ProductUseCase) Update(id string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	product.Code = in.Code
	product.Name = in.Name
	product.Description = in.Description
	product.Category = in.Category
	product.Finish = in.Finish
	product.Unit = in.Unit
	product.SqmPerBox = in.SqmPerBox
	product.Price = in.Price
	product.VATRate = in.VATRate
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return productToResponse(product), nil
}

// Delete dezactivează un produs (rămâne referențiat de facturile emise).
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func validateProductInput(in dto.CreateProductRequest) error {
	if in.Code == "" || in.Name == "" {
		return fmt.Errorf("%w: cod sau nume lipsă", domain.ErrInvalidInput)
	}
	if !efactura.ValidUnits[in.Unit] {
		return fmt.Errorf("%w: unitate de măsură necunoscută %q", domain.ErrInvalidInput, in.Unit)
	}
	if !efactura.ValidVATRates[in.VATRate.String()] {
		return fmt.Errorf("%w: cotă de TVA nepermisă %s", domain.ErrInvalidInput, in.VATRate)
	}
	if in.Price.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: preț negativ", domain.ErrInvalidInput)
	}
	return nil
}

func productToResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Finish:      p.Finish,
		Unit:        p.Unit,
		SqmPerBox:   p.SqmPerBox,
		Price:       p.Price,
		VATRate:     p.VATRate,
		Active:      p.Active,
	}
}
