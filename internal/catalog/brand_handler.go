package catalog

import (
	"strings"

	"concessionaria-backend/internal/database"
	"concessionaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateBrandRequest struct {
	Name          string `json:"nome"`
	CountryOrigin string `json:"pais_origem"`
}

type UpdateBrandRequest struct {
	Name          *string `json:"nome"`
	CountryOrigin *string `json:"pais_origem"`
	Active        *bool   `json:"ativo"`
}

// GET /api/marcas?search=&ativo=
func ListBrandsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Brand{})

		if search := c.Query("search"); search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			dbq = dbq.Where("LOWER(name) LIKE ? OR LOWER(country_origin) LIKE ?", pattern, pattern)
		}
		if ativo := c.Query("ativo"); ativo == "true" {
			dbq = dbq.Where("active = ?", true)
		} else if ativo == "false" {
			dbq = dbq.Where("active = ?", false)
		}

		var brands []models.Brand
		if err := dbq.Order("name asc").Find(&brands).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as marcas")
		}
		return c.JSON(brands)
	}
}

// POST /api/marcas
func CreateBrandHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateBrandRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "nome é obrigatório")
		}

		var count int64
		database.DB.Model(&models.Brand{}).Where("name = ?", body.Name).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Já existe uma marca com este nome")
		}

		brand := models.Brand{
			Name:          body.Name,
			CountryOrigin: strings.TrimSpace(body.CountryOrigin),
			Active:        true,
		}
		if err := database.DB.Create(&brand).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar a marca")
		}

		return c.Status(fiber.StatusCreated).JSON(brand)
	}
}

// PUT /api/marcas/:id
func UpdateBrandHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var brand models.Brand
		if err := database.DB.First(&brand, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Marca não encontrada")
		}

		var body UpdateBrandRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "nome não pode ser vazio")
			}
			brand.Name = name
		}
		if body.CountryOrigin != nil {
			brand.CountryOrigin = strings.TrimSpace(*body.CountryOrigin)
		}
		if body.Active != nil {
			brand.Active = *body.Active
		}

		if err := database.DB.Save(&brand).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar a marca")
		}
		return c.JSON(brand)
	}
}

// DELETE /api/marcas/:id — bloqueado quando existem modelos ligados
func DeleteBrandHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var brand models.Brand
		if err := database.DB.First(&brand, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Marca não encontrada")
		}

		var count int64
		database.DB.Model(&models.VehicleModel{}).Where("brand_id = ?", brand.ID).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Marca possui modelos cadastrados e não pode ser removida")
		}

		if err := database.DB.Delete(&brand).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover a marca")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
