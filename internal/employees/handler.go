package employees

import (
	"errors"
	"strings"
	"time"

	"concessionaria-backend/internal/database"
	"concessionaria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name           string  `json:"nome"`
	NationalID     *string `json:"bilhete_identidade"`
	Position       string  `json:"cargo"`
	HireDate       *string `json:"data_admissao"`
	Phone          string  `json:"telefone"`
	Email          string  `json:"email"`
	SaleCommission *string `json:"comissao_venda"`
	UserID         *uint   `json:"usuario_id"`
}

type UpdateEmployeeRequest struct {
	Name           *string `json:"nome"`
	NationalID     *string `json:"bilhete_identidade"`
	Position       *string `json:"cargo"`
	HireDate       *string `json:"data_admissao"`
	Phone          *string `json:"telefone"`
	Email          *string `json:"email"`
	SaleCommission *string `json:"comissao_venda"`
	UserID         *uint   `json:"usuario_id"`
	Active         *bool   `json:"ativo"`
}

func parseCommission(s *string) (*decimal.Decimal, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "comissao_venda inválida")
	}
	return &value, nil
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
	database.DB.Model(&models.Employee{}).
		Where("national_id = ? AND id <> ?", *nationalID, excludeID).
		Count(&count)
	if count > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Já existe um funcionário com este bilhete de identidade")
	}
	return nil
}

func validationResponse(c *fiber.Ctx, err error) error {
	var fieldErr *models.FieldError
	if errors.As(err, &fieldErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fieldErr.Message,
			"campo": fieldErr.Field,
		})
	}
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}

// GET /api/funcionarios?search=&ativo=
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Employee{})

		if search := c.Query("search"); search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			dbq = dbq.Where("LOWER(name) LIKE ? OR LOWER(position) LIKE ?", pattern, pattern)
		}
		if ativo := c.Query("ativo"); ativo == "true" {
			dbq = dbq.Where("active = ?", true)
		} else if ativo == "false" {
			dbq = dbq.Where("active = ?", false)
		}

		var list []models.Employee
		if err := dbq.Order("name asc").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os funcionários")
		}
		return c.JSON(list)
	}
}

// GET /api/funcionarios/:id
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var employee models.Employee
		if err := database.DB.First(&employee, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Funcionário não encontrado")
		}
		return c.JSON(employee)
	}
}

// POST /api/funcionarios
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "nome é obrigatório")
		}

		nationalID := normalizeNationalID(body.NationalID)
		if err := checkUniqueNationalID(nationalID, 0); err != nil {
			return err
		}

		hireDate, err := parseDate(body.HireDate, "data_admissao")
		if err != nil {
			return err
		}
		commission, err := parseCommission(body.SaleCommission)
		if err != nil {
			return err
		}

		if body.UserID != nil {
			var user models.User
			if err := database.DB.First(&user, "id = ?", *body.UserID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Usuário não encontrado")
			}
		}

		employee := models.Employee{
			Name:       body.Name,
			NationalID: nationalID,
			Position:   body.Position,
			HireDate:   hireDate,
			Phone:      body.Phone,
			Email:      strings.TrimSpace(strings.ToLower(body.Email)),
			UserID:     body.UserID,
			Active:     true,
		}
		if commission != nil {
			employee.SaleCommission = *commission
		}
		if err := employee.Validate(); err != nil {
			return validationResponse(c, err)
		}

		if err := database.DB.Create(&employee).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível cadastrar o funcionário")
		}
		return c.Status(fiber.StatusCreated).JSON(employee)
	}
}

// PUT /api/funcionarios/:id
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var employee models.Employee
		if err := database.DB.First(&employee, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Funcionário não encontrado")
		}

		var body UpdateEmployeeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "nome não pode ser vazio")
			}
			employee.Name = name
		}
		if body.NationalID != nil {
			nationalID := normalizeNationalID(body.NationalID)
			if err := checkUniqueNationalID(nationalID, employee.ID); err != nil {
				return err
			}
			employee.NationalID = nationalID
		}
		if body.Position != nil {
			employee.Position = *body.Position
		}
		if body.HireDate != nil {
			hireDate, err := parseDate(body.HireDate, "data_admissao")
			if err != nil {
				return err
			}
			employee.HireDate = hireDate
		}
		if body.Phone != nil {
			employee.Phone = *body.Phone
		}
		if body.Email != nil {
			employee.Email = strings.TrimSpace(strings.ToLower(*body.Email))
		}
		if body.SaleCommission != nil {
			commission, err := parseCommission(body.SaleCommission)
			if err != nil {
				return err
			}
			if commission != nil {
				employee.SaleCommission = *commission
			} else {
				employee.SaleCommission = decimal.Zero
			}
		}
		if body.UserID != nil {
			if *body.UserID == 0 {
				employee.UserID = nil
			} else {
				var user models.User
				if err := database.DB.First(&user, "id = ?", *body.UserID).Error; err != nil {
					return fiber.NewError(fiber.StatusBadRequest, "Usuário não encontrado")
				}
				employee.UserID = body.UserID
			}
		}
		if body.Active != nil {
			employee.Active = *body.Active
		}

		if err := employee.Validate(); err != nil {
			return validationResponse(c, err)
		}

		if err := database.DB.Save(&employee).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o funcionário")
		}
		return c.JSON(employee)
	}
}

// DELETE /api/funcionarios/:id
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var employee models.Employee
		if err := database.DB.First(&employee, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Funcionário não encontrado")
		}

		var saleCount, rentalCount int64
		database.DB.Model(&models.Sale{}).Where("employee_id = ?", employee.ID).Count(&saleCount)
		database.DB.Model(&models.Rental{}).Where("employee_id = ?", employee.ID).Count(&rentalCount)
		if saleCount > 0 || rentalCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Funcionário possui vendas ou aluguéis e não pode ser removido")
		}

		if err := database.DB.Delete(&employee).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover o funcionário")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
