package sales

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"concessionaria-backend/internal/config"
	"concessionaria-backend/internal/database"
	"concessionaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const documentDir = "vendas/documentos"

var allowedDocumentExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// POST /api/vendas/:id/documentos — multipart: arquivo + tipo_documento
func UploadDocumentHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sale models.Sale
		if err := database.DB.First(&sale, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Venda não encontrada")
		}

		documentType := strings.TrimSpace(c.FormValue("tipo_documento"))
		if documentType == "" {
			return fiber.NewError(fiber.StatusBadRequest, "tipo_documento é obrigatório")
		}

		file, err := c.FormFile("arquivo")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Arquivo não enviado")
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedDocumentExtensions[ext] {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Extensão %q não permitida", ext))
		}

		dir := filepath.Join(cfg.MediaPath, documentDir)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível criar o diretório de documentos")
		}

		name := strings.ReplaceAll(uuid.New().String(), "-", "") + ext
		if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível salvar o arquivo")
		}
		relPath := filepath.Join(documentDir, name)

		document := models.SaleDocument{
			SaleID:       sale.ID,
			DocumentType: documentType,
			FilePath:     relPath,
		}
		if err := database.DB.Create(&document).Error; err != nil {
			_ = os.Remove(filepath.Join(cfg.MediaPath, relPath))
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível registrar o documento")
		}

		return c.Status(fiber.StatusCreated).JSON(document)
	}
}

// GET /api/vendas/:id/documentos
func ListDocumentsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sale models.Sale
		if err := database.DB.First(&sale, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Venda não encontrada")
		}

		var documents []models.SaleDocument
		if err := database.DB.Where("sale_id = ?", sale.ID).
			Order("created_at desc").Find(&documents).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os documentos")
		}
		return c.JSON(documents)
	}
}

// DELETE /api/documentos-venda/:id
func DeleteDocumentHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var document models.SaleDocument
		if err := database.DB.First(&document, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Documento não encontrado")
		}

		if err := database.DB.Delete(&document).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover o documento")
		}
		_ = os.Remove(filepath.Join(cfg.MediaPath, document.FilePath))

		return c.SendStatus(fiber.StatusNoContent)
	}
}
