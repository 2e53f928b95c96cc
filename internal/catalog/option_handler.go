package catalog

import (
	"strings"

	"concessionaria-backend/internal/database"
	"concessionaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateOptionRequest struct {
	Name        string `json:"nome"`
	Category    string `json:"categoria"`
	Description string `json:"descricao"`
}

type UpdateOptionRequest struct {
	Name        *string `json:"nome"`
	Category    *string `json:"categoria"`
	Description *string `json:"descricao"`
	Active      *bool   `json:"ativo"`
}

// GET /api/opcionais?search=&ativo=
func ListOptionsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.OptionItem{})

		if search := c.Query("search"); search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			dbq = dbq.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern)
		}
		if ativo := c.Query("ativo"); ativo == "true" {
			dbq = dbq.Where("active = ?", true)
		} else if ativo == "false" {
			dbq = dbq.Where("active = ?", false)
		}

		var options []models.OptionItem
		if err := dbq.Order("category asc, name asc").Find(&options).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os opcionais")
		}
		return c.JSON(options)
	}
}

// POST /api/opcionais
func CreateOptionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOptionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "nome é obrigatório")
		}

		var count int64
		database.DB.Model(&models.OptionItem{}).Where("name = ?", body.Name).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Já existe um opcional com este nome")
		}

		option := models.OptionItem{
			Name:        body.Name,
			Category:    strings.TrimSpace(body.Category),
			Description: body.Description,
			Active:      true,
		}
		if err := database.DB.Create(&option).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o opcional")
		}
		return c.Status(fiber.StatusCreated).JSON(option)
	}
}

// PUT /api/opcionais/:id
func UpdateOptionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var option models.OptionItem
		if err := database.DB.First(&option, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Opcional não encontrado")
		}

		var body UpdateOptionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "nome não pode ser vazio")
			}
			option.Name = name
		}
		if body.Category != nil {
			option.Category = strings.TrimSpace(*body.Category)
		}
		if body.Description != nil {
			option.Description = *body.Description
		}
		if body.Active != nil {
			option.Active = *body.Active
		}

		if err := database.DB.Save(&option).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o opcional")
		}
		return c.JSON(option)
	}
}

// DELETE /api/opcionais/:id
func DeleteOptionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var option models.OptionItem
		if err := database.DB.First(&option, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Opcional não encontrado")
		}

		if err := database.DB.Delete(&option).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover o opcional")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/catalogo/estatisticas — contagens para a tela de gerenciamento
func StatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stats struct {
			TotalBrands   int64 `json:"total_marcas"`
			ActiveBrands  int64 `json:"marcas_ativas"`
			TotalModels   int64 `json:"total_modelos"`
			ActiveModels  int64 `json:"modelos_ativos"`
			TotalColors   int64 `json:"total_cores"`
			ActiveColors  int64 `json:"cores_ativas"`
			TotalOptions  int64 `json:"total_opcionais"`
			ActiveOptions int64 `json:"opcionais_ativos"`
		}

		database.DB.Model(&models.Brand{}).Count(&stats.TotalBrands)
		database.DB.Model(&models.Brand{}).Where("active = ?", true).Count(&stats.ActiveBrands)
		database.DB.Model(&models.VehicleModel{}).Count(&stats.TotalModels)
		database.DB.Model(&models.VehicleModel{}).Where("active = ?", true).Count(&stats.ActiveModels)
		database.DB.Model(&models.Color{}).Count(&stats.TotalColors)
		database.DB.Model(&models.Color{}).Where("active = ?", true).Count(&stats.ActiveColors)
		database.DB.Model(&models.OptionItem{}).Count(&stats.TotalOptions)
		database.DB.Model(&models.OptionItem{}).Where("active = ?", true).Count(&stats.ActiveOptions)

		return c.JSON(stats)
	}
}
