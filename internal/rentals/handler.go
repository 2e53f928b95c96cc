package rentals

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

type CreateRentalRequest struct {
	VehicleID  uint `json:"carro_id"`
	ClientID   uint `json:"cliente_id"`
	EmployeeID uint `json:"funcionario_id"`

	StartDate       string `json:"data_inicio"`
	ExpectedEndDate string `json:"data_fim_prevista"`

	DailyRate     decimal.Decimal  `json:"valor_diario"`
	ExpectedTotal *decimal.Decimal `json:"valor_total_previsto"`
	Deposit       decimal.Decimal  `json:"deposito_caucao"`

	MileageOut    *uint  `json:"quilometragem_inicial"`
	DeliveryNotes string `json:"observacoes_entrega"`
}

type UpdateRentalRequest struct {
	ExpectedEndDate *string `json:"data_fim_prevista"`
	ActualEndDate   *string `json:"data_fim_real"`

	DailyRate     *decimal.Decimal `json:"valor_diario"`
	ExpectedTotal *decimal.Decimal `json:"valor_total_previsto"`
	FinalTotal    *decimal.Decimal `json:"valor_total_final"`
	Deposit       *decimal.Decimal `json:"deposito_caucao"`

	MileageOut *uint `json:"quilometragem_inicial"`
	MileageIn  *uint `json:"quilometragem_final"`

	DeliveryNotes *string `json:"observacoes_entrega"`
	ReturnNotes   *string `json:"observacoes_devolucao"`
	Status        *string `json:"status"`
}

func parseRequiredDate(s, field string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, field+" inválida, use AAAA-MM-DD")
	}
	return t, nil
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
	return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gravar o aluguel")
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

// GET /api/alugueis?status=&cliente_id=&funcionario_id=&carro_id=&atrasados=
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Rental{}).
			Preload("Vehicle").Preload("Vehicle.Model").Preload("Vehicle.Model.Brand").
			Preload("Client").Preload("Employee")

		if status := c.Query("status"); status != "" {
			if !models.RentalStatus(status).Valid() {
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
		// aluguéis ativos cuja data prevista já passou
		if c.Query("atrasados") == "true" {
			dbq = dbq.Where("status = ? AND expected_end_date < ?",
				models.RentalActive, time.Now())
		}

		var list []models.Rental
		if err := dbq.Order("data_criacao desc").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os aluguéis")
		}
		return c.JSON(list)
	}
}

// GET /api/alugueis/:id
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rental models.Rental
		err := database.DB.
			Preload("Vehicle").Preload("Vehicle.Model").Preload("Vehicle.Model.Brand").
			Preload("Client").Preload("Employee").
			Preload("Payments", func(db *gorm.DB) *gorm.DB {
				return db.Order("data_pagamento asc")
			}).
			First(&rental, "id = ?", c.Params("id")).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Aluguel não encontrado")
		}

		totalPaid := decimal.Zero
		for _, p := range rental.Payments {
			totalPaid = totalPaid.Add(p.Amount)
		}

		return c.JSON(fiber.Map{
			"aluguel":         rental,
			"status_label":    rental.Status.Label(),
			"diarias":         rental.ExpectedDays(),
			"total_pago":      totalPaid,
		})
	}
}

// POST /api/alugueis — cria sempre com status ativo e ocupa o carro
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateRentalRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		if err := checkReferences(body.VehicleID, body.ClientID, body.EmployeeID); err != nil {
			return err
		}

		startDate, err := parseRequiredDate(body.StartDate, "data_inicio")
		if err != nil {
			return err
		}
		expectedEndDate, err := parseRequiredDate(body.ExpectedEndDate, "data_fim_prevista")
		if err != nil {
			return err
		}

		rental := models.Rental{
			VehicleID:       body.VehicleID,
			ClientID:        body.ClientID,
			EmployeeID:      body.EmployeeID,
			StartDate:       startDate,
			ExpectedEndDate: expectedEndDate,
			DailyRate:       body.DailyRate,
			Deposit:         body.Deposit,
			MileageOut:      body.MileageOut,
			DeliveryNotes:   body.DeliveryNotes,
			Status:          models.RentalActive,
		}
		if body.ExpectedTotal != nil {
			rental.ExpectedTotal = *body.ExpectedTotal
		} else {
			rental.ExpectedTotal = rental.DailyRate.Mul(decimal.NewFromInt(int64(rental.ExpectedDays())))
		}
		if err := rental.Validate(); err != nil {
			return validationResponse(c, err)
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&rental).Error; err != nil {
				return err
			}
			return stock.ApplyRental(tx, &rental, rental.EmployeeID, true)
		})
		if err != nil {
			return stockErrorResponse(err)
		}

		return c.Status(fiber.StatusCreated).JSON(rental)
	}
}

// PUT /api/alugueis/:id — aluguéis finalizados/cancelados são imutáveis
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rental models.Rental
		if err := database.DB.First(&rental, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Aluguel não encontrado")
		}

		if rental.Status == models.RentalFinished || rental.Status == models.RentalCancelled {
			return fiber.NewError(fiber.StatusBadRequest,
				"Aluguel "+rental.Status.Label()+" não pode ser alterado")
		}

		var body UpdateRentalRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		if body.ExpectedEndDate != nil {
			t, err := parseRequiredDate(*body.ExpectedEndDate, "data_fim_prevista")
			if err != nil {
				return err
			}
			rental.ExpectedEndDate = t
		}
		if body.ActualEndDate != nil {
			if *body.ActualEndDate == "" {
				rental.ActualEndDate = nil
			} else {
				t, err := parseRequiredDate(*body.ActualEndDate, "data_fim_real")
				if err != nil {
					return err
				}
				rental.ActualEndDate = &t
			}
		}
		if body.DailyRate != nil {
			rental.DailyRate = *body.DailyRate
		}
		if body.ExpectedTotal != nil {
			rental.ExpectedTotal = *body.ExpectedTotal
		}
		if body.FinalTotal != nil {
			rental.FinalTotal = body.FinalTotal
		}
		if body.Deposit != nil {
			rental.Deposit = *body.Deposit
		}
		if body.MileageOut != nil {
			rental.MileageOut = body.MileageOut
		}
		if body.MileageIn != nil {
			rental.MileageIn = body.MileageIn
		}
		if body.DeliveryNotes != nil {
			rental.DeliveryNotes = *body.DeliveryNotes
		}
		if body.ReturnNotes != nil {
			rental.ReturnNotes = *body.ReturnNotes
		}
		if body.Status != nil {
			rental.Status = models.RentalStatus(*body.Status)
		}

		// devolução sem data explícita recebe o momento atual
		if rental.Status == models.RentalFinished && rental.ActualEndDate == nil {
			now := time.Now()
			rental.ActualEndDate = &now
		}

		if err := rental.Validate(); err != nil {
			return validationResponse(c, err)
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&rental).Error; err != nil {
				return err
			}
			return stock.ApplyRental(tx, &rental, rental.EmployeeID, false)
		})
		if err != nil {
			return stockErrorResponse(err)
		}

		return c.JSON(rental)
	}
}
