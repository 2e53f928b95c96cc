package clients

import (
	"strings"
	"time"

	"concessionaria-backend/internal/database"
	"concessionaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateClientRequest struct {
	PersonType string  `json:"tipo_pessoa"`
	Name       string  `json:"nome"`
	NationalID *string `json:"bilhete_identidade"`
	BirthDate  *string `json:"data_nascimento"` // "1990-05-12"
	Phone      string  `json:"telefone"`
	Mobile     string  `json:"celular"`
	Email      string  `json:"email"`
	Address    string  `json:"endereco"`
	Profession string  `json:"profissao"`
	Notes      string  `json:"observacoes"`
}

type UpdateClientRequest struct {
	PersonType *string `json:"tipo_pessoa"`
	Name       *string `json:"nome"`
	NationalID *string `json:"bilhete_identidade"`
	BirthDate  *string `json:"data_nascimento"`
	Phone      *string `json:"telefone"`
	Mobile     *string `json:"celular"`
	Email      *string `json:"email"`
	Address    *string `json:"endereco"`
	Profession *string `json:"profissao"`
	Notes      *string `json:"observacoes"`
	Active     *bool   `json:"ativo"`
}

func normalizeNationalID(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func checkUniqueNationalID(nationalID *string, excludeID uint) error {
	if nationalID == nil {
		return nil
	}
	var count int64
	database.DB.Model(&models.Client{}).
		Where("national_id = ? AND id <> ?", *nationalID, excludeID).
		Count(&count)
	if count > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Já existe um cliente com este bilhete de identidade")
	}
	return nil
}

func parseDate(s *string, field string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, field+" inválida, use AAAA-MM-DD")
	}
	return &t, nil
}

// GET /api/clientes?search=&ativo=
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Client{})

		if search := c.Query("search"); search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			dbq = dbq.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR national_id LIKE ?",
				pattern, pattern, "%"+search+"%")
		}
		if ativo := c.Query("ativo"); ativo == "true" {
			dbq = dbq.Where("active = ?", true)
		} else if ativo == "false" {
			dbq = dbq.Where("active = ?", false)
		}

		var list []models.Client
		if err := dbq.Order("name asc").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os clientes")
		}
		return c.JSON(list)
	}
}

// GET /api/clientes/:id
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var client models.Client
		if err := database.DB.First(&client, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cliente não encontrado")
		}
		return c.JSON(client)
	}
}

// POST /api/clientes
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateClientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "nome é obrigatório")
		}

		personType := models.PersonPhysical
		if body.PersonType != "" {
			personType = models.PersonType(body.PersonType)
			if !personType.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "tipo_pessoa inválido")
			}
		}

		nationalID := normalizeNationalID(body.NationalID)
		if err := checkUniqueNationalID(nationalID, 0); err != nil {
			return err
		}

		birthDate, err := parseDate(body.BirthDate, "data_nascimento")
		if err != nil {
			return err
		}

		client := models.Client{
			PersonType: personType,
			Name:       body.Name,
			NationalID: nationalID,
			BirthDate:  birthDate,
			Phone:      body.Phone,
			Mobile:     body.Mobile,
			Email:      strings.TrimSpace(strings.ToLower(body.Email)),
			Address:    body.Address,
			Profession: body.Profession,
			Notes:      body.Notes,
			Active:     true,
		}

		if err := database.DB.Create(&client).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível cadastrar o cliente")
		}
		return c.Status(fiber.StatusCreated).JSON(client)
	}
}

// PUT /api/clientes/:id
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var client models.Client
		if err := database.DB.First(&client, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cliente não encontrado")
		}

		var body UpdateClientRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		if body.PersonType != nil {
			personType := models.PersonType(*body.PersonType)
			if !personType.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "tipo_pessoa inválido")
			}
			client.PersonType = personType
		}
		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "nome não pode ser vazio")
			}
			client.Name = name
		}
		if body.NationalID != nil {
			nationalID := normalizeNationalID(body.NationalID)
			if err := checkUniqueNationalID(nationalID, client.ID); err != nil {
				return err
			}
			client.NationalID = nationalID
		}
		if body.BirthDate != nil {
			birthDate, err := parseDate(body.BirthDate, "data_nascimento")
			if err != nil {
				return err
			}
			client.BirthDate = birthDate
		}
		if body.Phone != nil {
			client.Phone = *body.Phone
		}
		if body.Mobile != nil {
			client.Mobile = *body.Mobile
		}
		if body.Email != nil {
			client.Email = strings.TrimSpace(strings.ToLower(*body.Email))
		}
		if body.Address != nil {
			client.Address = *body.Address
		}
		if body.Profession != nil {
			client.Profession = *body.Profession
		}
		if body.Notes != nil {
			client.Notes = *body.Notes
		}
		if body.Active != nil {
			client.Active = *body.Active
		}

		if err := database.DB.Save(&client).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o cliente")
		}
		return c.JSON(client)
	}
}

// DELETE /api/clientes/:id — bloqueado quando existem vendas/aluguéis
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var client models.Client
		if err := database.DB.First(&client, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cliente não encontrado")
		}

		var saleCount, rentalCount int64
		database.DB.Model(&models.Sale{}).Where("client_id = ?", client.ID).Count(&saleCount)
		database.DB.Model(&models.Rental{}).Where("client_id = ?", client.ID).Count(&rentalCount)
		if saleCount > 0 || rentalCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Cliente possui vendas ou aluguéis e não pode ser removido")
		}

		if err := database.DB.Delete(&client).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover o cliente")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
