package reports

import (
	"time"

	"concessionaria-backend/internal/database"

	"github.com/gofiber/fiber/v2"
)

// GET /api/relatorios?inicio=&fim=&funcionario_id=
// Sem parâmetros o período é o mês corrente.
func ReportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0)

		if inicio := c.Query("inicio"); inicio != "" {
			t, err := time.Parse("2006-01-02", inicio)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "inicio inválido, use AAAA-MM-DD")
			}
			start = t
		}
		if fim := c.Query("fim"); fim != "" {
			t, err := time.Parse("2006-01-02", fim)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "fim inválido, use AAAA-MM-DD")
			}
			end = t
		}
		if !end.After(start) {
			return fiber.NewError(fiber.StatusBadRequest, "fim deve ser posterior a inicio")
		}

		var employeeID *uint
		if id := c.QueryInt("funcionario_id"); id > 0 {
			value := uint(id)
			employeeID = &value
		}

		report, err := Build(database.DB, start, end, employeeID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível gerar o relatório")
		}
		return c.JSON(report)
	}
}
