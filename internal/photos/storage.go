package photos

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// subdiretório dentro de MEDIA_PATH
const photoDir = "carros/fotos"

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// SaveFile grava o upload em disco com nome aleatório (uuid hex +
// extensão original) para evitar colisões. Retorna o caminho relativo
// à raiz de mídia, que é o que vai para o banco.
func SaveFile(c *fiber.Ctx, file *multipart.FileHeader, mediaPath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("extensão %q não permitida", ext)
	}

	dir := filepath.Join(mediaPath, photoDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("não foi possível criar o diretório de fotos: %w", err)
	}

	name := strings.ReplaceAll(uuid.New().String(), "-", "") + ext
	if err := c.SaveFile(file, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("não foi possível salvar o arquivo: %w", err)
	}

	return filepath.Join(photoDir, name), nil
}

// DeleteFile apaga o arquivo físico; ausência não é erro (o registro no
// banco é a fonte de verdade).
func DeleteFile(mediaPath, relPath string) {
	if relPath == "" {
		return
	}
	_ = os.Remove(filepath.Join(mediaPath, relPath))
}
