package vehicles

import (
	"time"

	"concessionaria-backend/internal/database"
	"concessionaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateMaintenanceRequest struct {
	Type        string           `json:"tipo_manutencao"`
	Description string           `json:"descricao"`
	Cost        *decimal.Decimal `json:"valor"`
	Mileage     *uint            `json:"quilometragem"`
	Workshop    string           `json:"oficina"`
	Date        string           `json:"data_manutencao"` // "2025-08-20"
}

// POST /api/carros/:id/manutencoes
func CreateMaintenanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Veículo não encontrado")
		}

		var body CreateMaintenanceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "data_manutencao inválida, use AAAA-MM-DD")
		}

		maintenance := models.Maintenance{
			VehicleID:   vehicle.ID,
			Type:        models.MaintenanceType(body.Type),
			Description: body.Description,
			Cost:        body.Cost,
			Mileage:     body.Mileage,
			Workshop:    body.Workshop,
			Date:        date,
		}

		if err := maintenance.Validate(); err != nil {
			return fieldErrorResponse(c, err)
		}

		if err := database.DB.Create(&maintenance).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível registrar a manutenção")
		}

		return c.Status(fiber.StatusCreated).JSON(maintenance)
	}
}

// GET /api/carros/:id/manutencoes
func ListMaintenanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Veículo não encontrado")
		}

		var list []models.Maintenance
		if err := database.DB.
			Where("vehicle_id = ?", vehicle.ID).
			Order("data_manutencao desc, data_cadastro desc").
			Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as manutenções")
		}

		return c.JSON(list)
	}
}

// DELETE /api/manutencoes/:id
func DeleteMaintenanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var maintenance models.Maintenance
		if err := database.DB.First(&maintenance, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Manutenção não encontrada")
		}

		if err := database.DB.Delete(&maintenance).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover a manutenção")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
