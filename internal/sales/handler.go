package sales

import (
	"errors"
	"time"

	"concessionaria-backend/internal/database"
	"concessionaria-backend/internal/models"
	"concessionaria-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateSaleRequest struct {
	VehicleID  uint `json:"carro_id"`
	ClientID   uint `json:"cliente_id"`
	EmployeeID uint `json:"funcionario_id"`

	SaleValue      decimal.Decimal `json:"valor_venda"`
	DownPayment    decimal.Decimal `json:"valor_entrada"`
	FinancedAmount decimal.Decimal `json:"valor_financiado"`

	PaymentType   string `json:"tipo_pagamento"`
	PaymentMethod string `json:"forma_pagamento"`
	FinancingBank string `json:"banco_financiamento"`
	Installments  *int   `json:"numero_parcelas"`

	Notes  string `json:"observacoes"`
	Status string `json:"status"`
}

type UpdateSaleRequest struct {
	SaleValue      *decimal.Decimal `json:"valor_venda"`
	DownPayment    *decimal.Decimal `json:"valor_entrada"`
	FinancedAmount *decimal.Decimal `json:"valor_financiado"`

	PaymentType   *string `json:"tipo_pagamento"`
	PaymentMethod *string `json:"forma_pagamento"`
	FinancingBank *string `json:"banco_financiamento"`
	Installments  *int    `json:"numero_parcelas"`

	Notes  *string `json:"observacoes"`
	Status *string `json:"status"`
}

func stockErrorResponse(err error) error {
	switch {
	case errors.Is(err, stock.ErrVehicleNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, stock.ErrUnavailableForSale),
		errors.Is(err, stock.ErrUnavailableForRental):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	var fieldErr *models.FieldError
	if errors.As(err, &fieldErr) {
		return fiber.NewError(fiber.StatusBadRequest, fieldErr.Message)
	}
	return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gravar a venda")
}

func validationResponse(c *fiber.Ctx, err error) error {
	var fieldErr *models.FieldError
	if errors.As(err, &fieldErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fieldErr.Message,
			"campo": fieldErr.Field,
		})
	}
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}

func checkReferences(vehicleID, clientID, employeeID uint) error {
	var vehicle models.Vehicle
	if err := database.DB.First(&vehicle, "id = ?", vehicleID).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Veículo não encontrado")
	}
	var client models.Client
	if err := database.DB.First(&client, "id = ?", clientID).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cliente não encontrado")
	}
	var employee models.Employee
	if err := database.DB.First(&employee, "id = ?", employeeID).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Funcionário não encontrado")
	}
	return nil
}

// GET /api/vendas?status=&cliente_id=&funcionario_id=&carro_id=&inicio=&fim=
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Sale{}).
			Preload("Vehicle").Preload("Vehicle.Model").Preload("Vehicle.Model.Brand").
			Preload("Client").Preload("Employee")

		if status := c.Query("status"); status != "" {
			if !models.SaleStatus(status).Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "status inválido")
			}
			dbq = dbq.Where("status = ?", status)
		}
		if clientID := c.QueryInt("cliente_id"); clientID > 0 {
			dbq = dbq.Where("client_id = ?", clientID)
		}
		if employeeID := c.QueryInt("funcionario_id"); employeeID > 0 {
			dbq = dbq.Where("employee_id = ?", employeeID)
		}
		if vehicleID := c.QueryInt("carro_id"); vehicleID > 0 {
			dbq = dbq.Where("vehicle_id = ?", vehicleID)
		}
		if inicio := c.Query("inicio"); inicio != "" {
			t, err := time.Parse("2006-01-02", inicio)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "inicio inválido, use AAAA-MM-DD")
			}
			dbq = dbq.Where("data_venda >= ?", t)
		}
		if fim := c.Query("fim"); fim != "" {
			t, err := time.Parse("2006-01-02", fim)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "fim inválido, use AAAA-MM-DD")
			}
			dbq = dbq.Where("data_venda < ?", t)
		}

		var list []models.Sale
		if err := dbq.Order("data_venda desc").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as vendas")
		}
		return c.JSON(list)
	}
}

// GET /api/vendas/:id
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sale models.Sale
		err := database.DB.
			Preload("Vehicle").Preload("Vehicle.Model").Preload("Vehicle.Model.Brand").
			Preload("Client").Preload("Employee").Preload("Documents").
			First(&sale, "id = ?", c.Params("id")).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Venda não encontrada")
		}
		return c.JSON(fiber.Map{
			"venda":                sale,
			"status_label":         sale.Status.Label(),
			"tipo_pagamento_label": sale.PaymentType.Label(),
		})
	}
}

// POST /api/vendas
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		if err := checkReferences(body.VehicleID, body.ClientID, body.EmployeeID); err != nil {
			return err
		}

		status := models.SalePending
		if body.Status != "" {
			status = models.SaleStatus(body.Status)
		}

		sale := models.Sale{
			VehicleID:      body.VehicleID,
			ClientID:       body.ClientID,
			EmployeeID:     body.EmployeeID,
			SaleValue:      body.SaleValue,
			DownPayment:    body.DownPayment,
			FinancedAmount: body.FinancedAmount,
			PaymentType:    models.PaymentType(body.PaymentType),
			PaymentMethod:  body.PaymentMethod,
			FinancingBank:  body.FinancingBank,
			Installments:   body.Installments,
			Notes:          body.Notes,
			Status:         status,
		}
		if err := sale.Validate(); err != nil {
			return validationResponse(c, err)
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&sale).Error; err != nil {
				return err
			}
			return stock.ApplySale(tx, &sale, sale.EmployeeID)
		})
		if err != nil {
			return stockErrorResponse(err)
		}

		return c.Status(fiber.StatusCreated).JSON(sale)
	}
}

// PUT /api/vendas/:id — vendas em estado terminal são imutáveis
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sale models.Sale
		if err := database.DB.First(&sale, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Venda não encontrada")
		}

		if sale.Status.Terminal() {
			return fiber.NewError(fiber.StatusBadRequest,
				"Venda "+sale.Status.Label()+" não pode ser alterada")
		}

		var body UpdateSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		if body.SaleValue != nil {
			sale.SaleValue = *body.SaleValue
		}
		if body.DownPayment != nil {
			sale.DownPayment = *body.DownPayment
		}
		if body.FinancedAmount != nil {
			sale.FinancedAmount = *body.FinancedAmount
		}
		if body.PaymentType != nil {
			sale.PaymentType = models.PaymentType(*body.PaymentType)
		}
		if body.PaymentMethod != nil {
			sale.PaymentMethod = *body.PaymentMethod
		}
		if body.FinancingBank != nil {
			sale.FinancingBank = *body.FinancingBank
		}
		if body.Installments != nil {
			if *body.Installments == 0 {
				sale.Installments = nil
			} else {
				sale.Installments = body.Installments
			}
		}
		if body.Notes != nil {
			sale.Notes = *body.Notes
		}
		if body.Status != nil {
			sale.Status = models.SaleStatus(*body.Status)
		}

		if err := sale.Validate(); err != nil {
			return validationResponse(c, err)
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&sale).Error; err != nil {
				return err
			}
			return stock.ApplySale(tx, &sale, sale.EmployeeID)
		})
		if err != nil {
			return stockErrorResponse(err)
		}

		return c.JSON(sale)
	}
}

// DELETE /api/vendas/:id — só vendas pendentes (nunca tocaram o estoque)
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sale models.Sale
		if err := database.DB.First(&sale, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Venda não encontrada")
		}

		if sale.Status != models.SalePending {
			return fiber.NewError(fiber.StatusBadRequest,
				"Somente vendas pendentes podem ser removidas")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.SaleDocument{}).Error; err != nil {
				return err
			}
			return tx.Delete(&sale).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover a venda")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
