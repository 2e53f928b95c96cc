package stock

import (
	"errors"
	"fmt"
	"time"

	"concessionaria-backend/internal/database"
	"concessionaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateMovementRequest struct {
	VehicleID  uint                `json:"carro_id"`
	Type       models.MovementType `json:"tipo_movimentacao"`
	EmployeeID uint                `json:"funcionario_id"`
	Notes      string              `json:"observacoes"`
}

type MovementResponse struct {
	ID          uint                `json:"id"`
	VehicleID   uint                `json:"carro_id"`
	Type        models.MovementType `json:"tipo_movimentacao"`
	TypeLabel   string              `json:"tipo_movimentacao_label"`
	EmployeeID  uint                `json:"funcionario_id"`
	Notes       string              `json:"observacoes"`
	SaleID      *uint               `json:"venda_id"`
	RentalID    *uint               `json:"aluguel_id"`
	MovedAt     time.Time           `json:"data_movimentacao"`
}

// POST /api/estoque/movimentacoes — movimentação manual (entrada, transferência, baixa)
func CreateMovementHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMovementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		if !body.Type.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "tipo_movimentacao: tipo de movimentação inválido")
		}

		// Saídas e retornos nascem das vendas/aluguéis, não desta rota
		if body.Type == models.MovementSaleExit || body.Type == models.MovementRentalExit ||
			body.Type == models.MovementRentalReturn {
			return fiber.NewError(fiber.StatusBadRequest, "Este tipo de movimentação é gerado automaticamente pelas vendas e aluguéis")
		}

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, body.VehicleID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Veículo não encontrado")
		}
		var employee models.Employee
		if err := database.DB.First(&employee, body.EmployeeID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Funcionário não encontrado")
		}

		movement := models.StockMovement{
			VehicleID:  body.VehicleID,
			Type:       body.Type,
			EmployeeID: body.EmployeeID,
			Notes:      body.Notes,
		}

		if err := RecordMovement(database.DB, &movement); err != nil {
			var fieldErr *models.FieldError
			if errors.As(err, &fieldErr) {
				return fiber.NewError(fiber.StatusBadRequest, fieldErr.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível registrar a movimentação")
		}

		return c.Status(fiber.StatusCreated).JSON(toMovementResponse(&movement))
	}
}

// GET /api/estoque/movimentacoes?carro_id=&tipo=&inicio=&fim=
func ListMovementsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.StockMovement{})

		if vidStr := c.Query("carro_id"); vidStr != "" {
			var vid uint
			if _, err := fmt.Sscan(vidStr, &vid); err != nil || vid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "carro_id inválido")
			}
			dbq = dbq.Where("vehicle_id = ?", vid)
		}

		if tipo := c.Query("tipo"); tipo != "" {
			if !models.MovementType(tipo).Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "tipo inválido")
			}
			dbq = dbq.Where("type = ?", tipo)
		}

		if inicio := c.Query("inicio"); inicio != "" {
			t, err := time.Parse("2006-01-02", inicio)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "inicio inválido, use AAAA-MM-DD")
			}
			dbq = dbq.Where("data_movimentacao >= ?", t)
		}
		if fim := c.Query("fim"); fim != "" {
			t, err := time.Parse("2006-01-02", fim)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "fim inválido, use AAAA-MM-DD")
			}
			dbq = dbq.Where("data_movimentacao < ?", t)
		}

		var movements []models.StockMovement
		if err := dbq.Order("data_movimentacao desc").Find(&movements).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as movimentações")
		}

		res := make([]MovementResponse, 0, len(movements))
		for i := range movements {
			res = append(res, toMovementResponse(&movements[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/carros/:id/historico-status
func ListStatusHistoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Veículo não encontrado")
		}

		var history []models.StatusHistory
		if err := database.DB.
			Where("vehicle_id = ?", vehicle.ID).
			Order("data_alteracao desc").
			Find(&history).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar o histórico")
		}

		return c.JSON(history)
	}
}

func toMovementResponse(m *models.StockMovement) MovementResponse {
	return MovementResponse{
		ID:         m.ID,
		VehicleID:  m.VehicleID,
		Type:       m.Type,
		TypeLabel:  m.Type.Label(),
		EmployeeID: m.EmployeeID,
		Notes:      m.Notes,
		SaleID:     m.SaleID,
		RentalID:   m.RentalID,
		MovedAt:    m.CreatedAt,
	}
}
