package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pmt-online/magazin-api/internal/application/dto"
	"github.com/pmt-online/magazin-api/pkg/fiscal"
)

// FiscalHandler expune validatoarele de identificatori fiscali ca rute
// stateless: utile formularelor din magazin înainte de crearea clientului.
type FiscalHandler struct{}

// NewFiscalHandler construiește handlerul.
func NewFiscalHandler() *FiscalHandler {
	return &FiscalHandler{}
}

// CheckCIF verifică cifra de control a unui CIF.
// GET /api/fiscal/cif/:value
func (h *FiscalHandler) CheckCIF(c *fiber.Ctx) error {
	value := c.Params("value")
	return c.JSON(dto.FiscalCheckResponse{Value: value, Valid: fiscal.ValidCIF(value)})
}

// CheckCNP verifică cifra de control a unui CNP.
// GET /api/fiscal/cnp/:value
func (h *FiscalHandler) CheckCNP(c *fiber.Ctx) error {
	value := c.Params("value")
	return c.JSON(dto.FiscalCheckResponse{Value: value, Valid: fiscal.ValidCNP(value)})
}

// CheckIBAN verifică un IBAN românesc (format și mod 97).
// GET /api/fiscal/iban/:value
func (h *FiscalHandler) CheckIBAN(c *fiber.Ctx) error {
	value := c.Params("value")
	return c.JSON(dto.FiscalCheckResponse{Value: value, Valid: fiscal.ValidIBAN(value)})
}
