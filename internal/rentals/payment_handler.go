package rentals

import (
	"concessionaria-backend/internal/database"
	"concessionaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	Amount        decimal.Decimal `json:"valor"`
	PaymentKind   string          `json:"tipo_pagamento"`
	PaymentMethod string          `json:"forma_pagamento"`
	Notes         string          `json:"observacoes"`
}

// POST /api/alugueis/:id/pagamentos — registro append-only, sem edição
func CreatePaymentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rental models.Rental
		if err := database.DB.First(&rental, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Aluguel não encontrado")
		}

		var body CreatePaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}
		if body.Amount.LessThanOrEqual(decimal.Zero) {
			return fiber.NewError(fiber.StatusBadRequest, "valor deve ser maior que zero")
		}

		payment := models.RentalPayment{
			RentalID:      rental.ID,
			Amount:        body.Amount,
			PaymentKind:   body.PaymentKind,
			PaymentMethod: body.PaymentMethod,
			Notes:         body.Notes,
		}
		if err := database.DB.Create(&payment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível registrar o pagamento")
		}
		return c.Status(fiber.StatusCreated).JSON(payment)
	}
}

// GET /api/alugueis/:id/pagamentos
func ListPaymentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rental models.Rental
		if err := database.DB.First(&rental, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Aluguel não encontrado")
		}

		var payments []models.RentalPayment
		if err := database.DB.Where("rental_id = ?", rental.ID).
			Order("data_pagamento asc").Find(&payments).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os pagamentos")
		}

		total := decimal.Zero
		for _, p := range payments {
			total = total.Add(p.Amount)
		}
		return c.JSON(fiber.Map{
			"pagamentos": payments,
			"total_pago": total,
		})
	}
}
