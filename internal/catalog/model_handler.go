package catalog

import (
	"fmt"
	"strings"

	"concessionaria-backend/internal/database"
	"concessionaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateModelRequest struct {
	BrandID  uint   `json:"marca_id"`
	Name     string `json:"nome"`
	Category string `json:"categoria"`
}

type UpdateModelRequest struct {
	Name     *string `json:"nome"`
	Category *string `json:"categoria"`
	Active   *bool   `json:"ativo"`
}

type ModelResponse struct {
	ID            uint   `json:"id"`
	BrandID       uint   `json:"marca_id"`
	BrandName     string `json:"marca"`
	Name          string `json:"nome"`
	Category      string `json:"categoria"`
	CategoryLabel string `json:"categoria_label"`
	Active        bool   `json:"ativo"`
}

func toModelResponse(m *models.VehicleModel) ModelResponse {
	return ModelResponse{
		ID:            m.ID,
		BrandID:       m.BrandID,
		BrandName:     m.Brand.Name,
		Name:          m.Name,
		Category:      string(m.Category),
		CategoryLabel: m.Category.Label(),
		Active:        m.Active,
	}
}

// GET /api/modelos?marca_id=&search=&ativo=
// marca_id alimenta o select dependente marca→modelo do front
func ListModelsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.VehicleModel{}).
			Joins("JOIN marcas ON marcas.id = modelos.brand_id")

		if bidStr := c.Query("marca_id"); bidStr != "" {
			var bid uint
			if _, err := fmt.Sscan(bidStr, &bid); err != nil || bid == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "marca_id inválido")
			}
			dbq = dbq.Where("modelos.brand_id = ?", bid)
		}
		if search := c.Query("search"); search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			dbq = dbq.Where("LOWER(modelos.name) LIKE ? OR LOWER(marcas.name) LIKE ? OR LOWER(modelos.category) LIKE ?",
				pattern, pattern, pattern)
		}
		if ativo := c.Query("ativo"); ativo == "true" {
			dbq = dbq.Where("modelos.active = ?", true)
		} else if ativo == "false" {
			dbq = dbq.Where("modelos.active = ?", false)
		}

		var list []models.VehicleModel
		if err := dbq.Preload("Brand").Order("marcas.name asc, modelos.name asc").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os modelos")
		}

		res := make([]ModelResponse, 0, len(list))
		for i := range list {
			res = append(res, toModelResponse(&list[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/modelos
func CreateModelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateModelRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "nome é obrigatório")
		}

		category := models.ModelCategory(body.Category)
		if !category.Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "categoria inválida")
		}

		var brand models.Brand
		if err := database.DB.First(&brand, body.BrandID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Marca não encontrada")
		}

		// único por marca+nome
		var count int64
		database.DB.Model(&models.VehicleModel{}).
			Where("brand_id = ? AND name = ?", body.BrandID, body.Name).
			Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Esta marca já possui um modelo com este nome")
		}

		model := models.VehicleModel{
			BrandID:  body.BrandID,
			Name:     body.Name,
			Category: category,
			Active:   true,
		}
		if err := database.DB.Create(&model).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o modelo")
		}

		model.Brand = brand
		return c.Status(fiber.StatusCreated).JSON(toModelResponse(&model))
	}
}

// PUT /api/modelos/:id
func UpdateModelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var model models.VehicleModel
		if err := database.DB.Preload("Brand").First(&model, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Modelo não encontrado")
		}

		var body UpdateModelRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "nome não pode ser vazio")
			}
			model.Name = name
		}
		if body.Category != nil {
			category := models.ModelCategory(*body.Category)
			if !category.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "categoria inválida")
			}
			model.Category = category
		}
		if body.Active != nil {
			model.Active = *body.Active
		}

		if err := database.DB.Save(&model).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o modelo")
		}
		return c.JSON(toModelResponse(&model))
	}
}

// DELETE /api/modelos/:id — bloqueado quando existem carros ligados
func DeleteModelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var model models.VehicleModel
		if err := database.DB.First(&model, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Modelo não encontrado")
		}

		var count int64
		database.DB.Model(&models.Vehicle{}).Where("model_id = ?", model.ID).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Modelo possui veículos cadastrados e não pode ser removido")
		}

		if err := database.DB.Delete(&model).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover o modelo")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
