package photos

import (
	"errors"
	"fmt"

	"concessionaria-backend/internal/config"
	"concessionaria-backend/internal/database"
	"concessionaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PhotoResponse struct {
	ID          uint   `json:"id"`
	VehicleID   uint   `json:"carro_id"`
	FilePath    string `json:"arquivo"`
	Description string `json:"descricao"`
	Order       int    `json:"ordem"`
	IsPrimary   bool   `json:"foto_principal"`
}

type ReorderRequest struct {
	PhotoIDs []uint `json:"foto_ids"`
}

func toResponse(p *models.VehiclePhoto) PhotoResponse {
	return PhotoResponse{
		ID:          p.ID,
		VehicleID:   p.VehicleID,
		FilePath:    p.FilePath,
		Description: p.Description,
		Order:       p.Order,
		IsPrimary:   p.IsPrimary,
	}
}

// POST /api/carros/:id/fotos — multipart com campo "foto" e opcional "descricao"
func UploadHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Veículo não encontrado")
		}

		file, err := c.FormFile("foto")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Selecione uma foto para upload")
		}

		relPath, err := SaveFile(c, file, cfg.MediaPath)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		description := c.FormValue("descricao")

		photo, err := Add(database.DB, vehicle.ID, relPath, description, nil)
		if err != nil {
			DeleteFile(cfg.MediaPath, relPath)
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível adicionar a foto")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(photo))
	}
}

// GET /api/carros/:id/fotos
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Veículo não encontrado")
		}

		var list []models.VehiclePhoto
		if err := database.DB.
			Where("vehicle_id = ?", vehicle.ID).
			Order("ordem asc, data_upload asc").
			Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar as fotos")
		}

		res := make([]PhotoResponse, 0, len(list))
		for i := range list {
			res = append(res, toResponse(&list[i]))
		}
		return c.JSON(res)
	}
}

// PUT /api/fotos/:id/principal
func SetPrimaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var photoID uint
		if _, err := fmt.Sscan(c.Params("id"), &photoID); err != nil || photoID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		if err := SetPrimary(database.DB, photoID); err != nil {
			if errors.Is(err, ErrPhotoNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Foto não encontrada")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível definir a foto principal")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DELETE /api/fotos/:id
func DeleteHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var photoID uint
		if _, err := fmt.Sscan(c.Params("id"), &photoID); err != nil || photoID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "ID inválido")
		}

		removed, err := Remove(database.DB, photoID)
		if err != nil {
			if errors.Is(err, ErrPhotoNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Foto não encontrada")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover a foto")
		}

		DeleteFile(cfg.MediaPath, removed.FilePath)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// PUT /api/carros/:id/fotos/ordem — corpo: {"foto_ids": [3, 1, 2]}
func ReorderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Veículo não encontrado")
		}

		var body ReorderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}
		if len(body.PhotoIDs) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "foto_ids é obrigatório")
		}

		if err := Reorder(database.DB, vehicle.ID, body.PhotoIDs); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível reordenar as fotos")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
