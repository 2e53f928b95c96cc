package catalog

import (
	"strings"

	"concessionaria-backend/internal/database"
	"concessionaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateColorRequest struct {
	Name    string `json:"nome"`
	HexCode string `json:"codigo_hex"`
}

type UpdateColorRequest struct {
	Name    *string `json:"nome"`
	HexCode *string `json:"codigo_hex"`
	Active  *bool   `json:"ativo"`
}

// GET /api/cores?search=&ativo=
func ListColorsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Color{})

		if search := c.Query("search"); search != "" {
			dbq = dbq.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
		}
		if ativo := c.Query("ativo"); ativo == "true" {
			dbq = dbq.Where("active = ?", true)
		} else if ativo == "false" {
			dbq = dbq.Where("active = ?", false)
		}

		var colors []models.Color
		if err := dbq.Order("name asc").Find(&colors).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as cores")
		}
		return c.JSON(colors)
	}
}

// POST /api/cores
func CreateColorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateColorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "nome é obrigatório")
		}

		color := models.Color{
			Name:    body.Name,
			HexCode: strings.TrimSpace(body.HexCode),
			Active:  true,
		}
		if err := color.Validate(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var count int64
		database.DB.Model(&models.Color{}).Where("name = ?", body.Name).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Já existe uma cor com este nome")
		}

		if err := database.DB.Create(&color).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar a cor")
		}
		return c.Status(fiber.StatusCreated).JSON(color)
	}
}

// PUT /api/cores/:id
func UpdateColorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var color models.Color
		if err := database.DB.First(&color, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cor não encontrada")
		}

		var body UpdateColorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "nome não pode ser vazio")
			}
			color.Name = name
		}
		if body.HexCode != nil {
			color.HexCode = strings.TrimSpace(*body.HexCode)
		}
		if body.Active != nil {
			color.Active = *body.Active
		}

		if err := color.Validate(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := database.DB.Save(&color).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a cor")
		}
		return c.JSON(color)
	}
}

// DELETE /api/cores/:id
func DeleteColorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var color models.Color
		if err := database.DB.First(&color, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cor não encontrada")
		}

		var count int64
		database.DB.Model(&models.Vehicle{}).Where("color_id = ?", color.ID).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Cor possui veículos cadastrados e não pode ser removida")
		}

		if err := database.DB.Delete(&color).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover a cor")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
