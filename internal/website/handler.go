package website

import (
	"concessionaria-backend/internal/database"
	"concessionaria-backend/internal/models"
	"concessionaria-backend/internal/vehicles"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Loja pública: rotas sem autenticação que expõem somente os carros
// disponíveis para venda.

// GET /api/loja/carros — mesmos filtros do back office, mas sempre
// restrito a disponivel_venda=true
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, err := vehicles.ParseFilter(c)
		if err != nil {
			return err
		}
		filter.Availability = "venda"

		list, total, err := vehicles.Query(database.DB, filter, c.Query("ordem"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os veículos")
		}
		return c.JSON(vehicles.VehicleListResponse{Items: vehicles.ListItems(list), Total: total})
	}
}

// GET /api/loja/carros/:id — 404 quando o carro não está à venda
func DetailHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var vehicle models.Vehicle
		err := database.DB.
			Preload("Model.Brand").
			Preload("Color").
			Preload("Options").
			Preload("Photos", func(db *gorm.DB) *gorm.DB {
				return db.Order("ordem asc, data_upload asc")
			}).
			Where("available_for_sale = ?", true).
			First(&vehicle, "id = ?", c.Params("id")).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Veículo não encontrado")
		}

		return c.JSON(fiber.Map{
			"carro":             vehicle,
			"nome_completo":     vehicle.FullName(),
			"condicao_label":    vehicle.Condition.Label(),
			"combustivel_label": vehicle.Fuel.Label(),
			"transmissao_label": vehicle.Transmission.Label(),
		})
	}
}

type brandHighlight struct {
	ID    uint   `json:"id"`
	Name  string `json:"nome"`
	Count int64  `json:"total_disponiveis"`
}

// GET /api/loja/home — destaques da página inicial
func HomeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var recent []models.Vehicle
		err := database.DB.
			Preload("Model.Brand").
			Preload("Color").
			Preload("Photos", func(db *gorm.DB) *gorm.DB {
				return db.Order("ordem asc, data_upload asc")
			}).
			Where("available_for_sale = ?", true).
			Order("created_at desc").
			Limit(6).
			Find(&recent).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível montar a página inicial")
		}

		var newCount, usedCount int64
		database.DB.Model(&models.Vehicle{}).
			Where("available_for_sale = ? AND condition = ?", true, models.ConditionNew).
			Count(&newCount)
		database.DB.Model(&models.Vehicle{}).
			Where("available_for_sale = ? AND condition = ?", true, models.ConditionUsed).
			Count(&usedCount)

		var brands []brandHighlight
		err = database.DB.Model(&models.Vehicle{}).
			Select("marcas.id, marcas.name, COUNT(*) as count").
			Joins("JOIN modelos ON modelos.id = carros.model_id").
			Joins("JOIN marcas ON marcas.id = modelos.brand_id").
			Where("carros.available_for_sale = ?", true).
			Group("marcas.id, marcas.name").
			Order("count desc").
			Limit(8).
			Scan(&brands).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível montar a página inicial")
		}

		return c.JSON(fiber.Map{
			"destaques":        vehicles.ListItems(recent),
			"total_novos":      newCount,
			"total_usados":     usedCount,
			"marcas_populares": brands,
		})
	}
}
