package vehicles

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"concessionaria-backend/internal/database"
	"concessionaria-backend/internal/models"
	"concessionaria-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateVehicleRequest struct {
	ModelID uint `json:"modelo_id"`
	ColorID uint `json:"cor_id"`

	YearBuilt    int    `json:"ano_fabricacao"`
	YearModel    int    `json:"ano_modelo"`
	Condition    string `json:"condicao"`
	Fuel         string `json:"combustivel"`
	Transmission string `json:"transmissao"`
	Engine       string `json:"motor"`
	Doors        *int   `json:"numero_portas"`
	Mileage      uint   `json:"quilometragem"`

	SalePrice       *decimal.Decimal `json:"preco_venda"`
	DailyRentalRate *decimal.Decimal `json:"preco_aluguel_diario"`

	Chassis        *string `json:"chassi"`
	Plate          *string `json:"matricula"`
	UniqueDocument string  `json:"documento_unico"`

	Description string `json:"descricao"`
	Notes       string `json:"observacoes"`

	OptionIDs []uint `json:"opcionais"`

	// Funcionário que registra a entrada no estoque
	EmployeeID *uint `json:"funcionario_id"`
}

type UpdateVehicleRequest struct {
	ModelID *uint `json:"modelo_id"`
	ColorID *uint `json:"cor_id"`

	YearBuilt    *int    `json:"ano_fabricacao"`
	YearModel    *int    `json:"ano_modelo"`
	Condition    *string `json:"condicao"`
	Fuel         *string `json:"combustivel"`
	Transmission *string `json:"transmissao"`
	Engine       *string `json:"motor"`
	Doors        *int    `json:"numero_portas"`
	Mileage      *uint   `json:"quilometragem"`

	SalePrice       *decimal.Decimal `json:"preco_venda"`
	DailyRentalRate *decimal.Decimal `json:"preco_aluguel_diario"`

	Chassis        *string `json:"chassi"`
	Plate          *string `json:"matricula"`
	UniqueDocument *string `json:"documento_unico"`

	Description *string `json:"descricao"`
	Notes       *string `json:"observacoes"`
}

type VehicleListItem struct {
	ID                 uint             `json:"id"`
	FullName           string           `json:"nome_completo"`
	Brand              string           `json:"marca"`
	ModelName          string           `json:"modelo"`
	YearModel          int              `json:"ano_modelo"`
	ColorName          string           `json:"cor"`
	Condition          string           `json:"condicao"`
	ConditionLabel     string           `json:"condicao_label"`
	Fuel               string           `json:"combustivel"`
	FuelLabel          string           `json:"combustivel_label"`
	Transmission       string           `json:"transmissao"`
	Mileage            uint             `json:"quilometragem"`
	SalePrice          *decimal.Decimal `json:"preco_venda"`
	DailyRentalRate    *decimal.Decimal `json:"preco_aluguel_diario"`
	AvailableForSale   bool             `json:"disponivel_venda"`
	AvailableForRental bool             `json:"disponivel_aluguel"`
	PrimaryPhoto       string           `json:"foto_principal"`
	EnteredAt          time.Time        `json:"data_entrada"`
}

type VehicleListResponse struct {
	Items []VehicleListItem `json:"carros"`
	Total int64             `json:"total"`
}

func toListItem(v *models.Vehicle) VehicleListItem {
	item := VehicleListItem{
		ID:                 v.ID,
		FullName:           v.FullName(),
		Brand:              v.Model.Brand.Name,
		ModelName:          v.Model.Name,
		YearModel:          v.YearModel,
		ColorName:          v.Color.Name,
		Condition:          string(v.Condition),
		ConditionLabel:     v.Condition.Label(),
		Fuel:               string(v.Fuel),
		FuelLabel:          v.Fuel.Label(),
		Transmission:       string(v.Transmission),
		Mileage:            v.Mileage,
		SalePrice:          v.SalePrice,
		DailyRentalRate:    v.DailyRentalRate,
		AvailableForSale:   v.AvailableForSale,
		AvailableForRental: v.AvailableForRental,
		EnteredAt:          v.CreatedAt,
	}
	for i := range v.Photos {
		if v.Photos[i].IsPrimary {
			item.PrimaryPhoto = v.Photos[i].FilePath
			break
		}
	}
	return item
}

// ListItems projeta os veículos no formato de listagem. Compartilhada
// com a loja pública.
func ListItems(list []models.Vehicle) []VehicleListItem {
	items := make([]VehicleListItem, 0, len(list))
	for i := range list {
		items = append(items, toListItem(&list[i]))
	}
	return items
}

// ParseFilter lê os critérios de busca da query string. Compartilhada
// com a loja pública.
func ParseFilter(c *fiber.Ctx) (Filter, error) {
	var f Filter

	f.Search = c.Query("search")
	f.Condition = models.VehicleCondition(c.Query("condicao"))
	f.Fuel = models.FuelType(c.Query("combustivel"))
	f.Transmission = models.Transmission(c.Query("transmissao"))
	f.Availability = c.Query("disponibilidade")

	if f.Condition != "" && !f.Condition.Valid() {
		return f, fiber.NewError(fiber.StatusBadRequest, "condicao inválida")
	}
	if f.Fuel != "" && !f.Fuel.Valid() {
		return f, fiber.NewError(fiber.StatusBadRequest, "combustivel inválido")
	}
	if f.Transmission != "" && !f.Transmission.Valid() {
		return f, fiber.NewError(fiber.StatusBadRequest, "transmissao inválida")
	}
	if f.Availability != "" && f.Availability != "venda" && f.Availability != "aluguel" {
		return f, fiber.NewError(fiber.StatusBadRequest, "disponibilidade deve ser 'venda' ou 'aluguel'")
	}

	uintParams := map[string]*uint{
		"marca_id":  &f.BrandID,
		"modelo_id": &f.ModelID,
		"cor_id":    &f.ColorID,
	}
	for name, dst := range uintParams {
		if s := c.Query(name); s != "" {
			if _, err := fmt.Sscan(s, dst); err != nil {
				return f, fiber.NewError(fiber.StatusBadRequest, name+" inválido")
			}
		}
	}

	intParams := map[string]*int{
		"ano_min": &f.YearMin,
		"ano_max": &f.YearMax,
	}
	for name, dst := range intParams {
		if s := c.Query(name); s != "" {
			if _, err := fmt.Sscan(s, dst); err != nil {
				return f, fiber.NewError(fiber.StatusBadRequest, name+" inválido")
			}
		}
	}

	if s := c.Query("preco_min"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "preco_min inválido")
		}
		f.PriceMin = &d
	}
	if s := c.Query("preco_max"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "preco_max inválido")
		}
		f.PriceMax = &d
	}

	return f, nil
}

// GET /api/carros?search=&marca_id=&...&ordem=
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, err := ParseFilter(c)
		if err != nil {
			return err
		}

		list, total, err := Query(database.DB, filter, c.Query("ordem"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os veículos")
		}

		return c.JSON(VehicleListResponse{Items: ListItems(list), Total: total})
	}
}

// GET /api/carros/:id
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		err := database.DB.
			Preload("Model.Brand").
			Preload("Color").
			Preload("Options").
			Preload("Photos", func(db *gorm.DB) *gorm.DB {
				return db.Order("ordem asc, data_upload asc")
			}).
			First(&vehicle, "id = ?", id).Error
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Veículo não encontrado")
		}

		return c.JSON(fiber.Map{
			"carro":             vehicle,
			"nome_completo":     vehicle.FullName(),
			"condicao_label":    vehicle.Condition.Label(),
			"combustivel_label": vehicle.Fuel.Label(),
			"transmissao_label": vehicle.Transmission.Label(),
		})
	}
}

func checkUniqueDocuments(db *gorm.DB, chassis, plate *string, excludeID uint) error {
	if chassis != nil && *chassis != "" {
		var count int64
		db.Model(&models.Vehicle{}).
			Where("chassis = ? AND id <> ?", *chassis, excludeID).
			Count(&count)
		if count > 0 {
			return models.NewFieldError("chassi", "já existe um veículo com este chassi")
		}
	}
	if plate != nil && *plate != "" {
		var count int64
		db.Model(&models.Vehicle{}).
			Where("plate = ? AND id <> ?", *plate, excludeID).
			Count(&count)
		if count > 0 {
			return models.NewFieldError("matricula", "já existe um veículo com esta matrícula")
		}
	}
	return nil
}

func fieldErrorResponse(c *fiber.Ctx, err error) error {
	var fieldErr *models.FieldError
	if errors.As(err, &fieldErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fieldErr.Message,
			"campo": fieldErr.Field,
		})
	}
	return fiber.NewError(fiber.StatusInternalServerError, "Erro ao processar a requisição")
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// POST /api/carros
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateVehicleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		var model models.VehicleModel
		if err := database.DB.Preload("Brand").First(&model, body.ModelID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Modelo não encontrado")
		}
		var color models.Color
		if err := database.DB.First(&color, body.ColorID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Cor não encontrada")
		}

		vehicle := models.Vehicle{
			ModelID:            body.ModelID,
			ColorID:            body.ColorID,
			YearBuilt:          body.YearBuilt,
			YearModel:          body.YearModel,
			Condition:          models.VehicleCondition(body.Condition),
			Fuel:               models.FuelType(body.Fuel),
			Transmission:       models.Transmission(body.Transmission),
			Engine:             strings.TrimSpace(body.Engine),
			Doors:              body.Doors,
			Mileage:            body.Mileage,
			SalePrice:          body.SalePrice,
			DailyRentalRate:    body.DailyRentalRate,
			Chassis:            normalizeOptional(body.Chassis),
			Plate:              normalizeOptional(body.Plate),
			UniqueDocument:     strings.TrimSpace(body.UniqueDocument),
			Description:        body.Description,
			Notes:              body.Notes,
			AvailableForSale:   true,
			AvailableForRental: true,
		}

		if err := vehicle.Validate(); err != nil {
			return fieldErrorResponse(c, err)
		}
		if err := checkUniqueDocuments(database.DB, vehicle.Chassis, vehicle.Plate, 0); err != nil {
			return fieldErrorResponse(c, err)
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&vehicle).Error; err != nil {
				return err
			}

			if len(body.OptionIDs) > 0 {
				var options []models.OptionItem
				if err := tx.Where("id IN ? AND active = ?", body.OptionIDs, true).Find(&options).Error; err != nil {
					return err
				}
				if err := tx.Model(&vehicle).Association("Options").Append(options); err != nil {
					return err
				}
			}

			if body.EmployeeID != nil {
				return stock.RecordMovement(tx, &models.StockMovement{
					VehicleID:  vehicle.ID,
					Type:       models.MovementEntry,
					EmployeeID: *body.EmployeeID,
					Notes:      "Entrada no estoque",
				})
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível cadastrar o veículo")
		}

		vehicle.Model = model
		vehicle.Color = color
		return c.Status(fiber.StatusCreated).JSON(toListItem(&vehicle))
	}
}

// PUT /api/carros/:id — atualização parcial; os flags de disponibilidade
// não são editáveis por aqui, só pela regra de vendas/aluguéis.
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Veículo não encontrado")
		}

		var body UpdateVehicleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		if body.ModelID != nil {
			if err := database.DB.First(&models.VehicleModel{}, *body.ModelID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Modelo não encontrado")
			}
			vehicle.ModelID = *body.ModelID
		}
		if body.ColorID != nil {
			if err := database.DB.First(&models.Color{}, *body.ColorID).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Cor não encontrada")
			}
			vehicle.ColorID = *body.ColorID
		}
		if body.YearBuilt != nil {
			vehicle.YearBuilt = *body.YearBuilt
		}
		if body.YearModel != nil {
			vehicle.YearModel = *body.YearModel
		}
		if body.Condition != nil {
			vehicle.Condition = models.VehicleCondition(*body.Condition)
		}
		if body.Fuel != nil {
			vehicle.Fuel = models.FuelType(*body.Fuel)
		}
		if body.Transmission != nil {
			vehicle.Transmission = models.Transmission(*body.Transmission)
		}
		if body.Engine != nil {
			vehicle.Engine = strings.TrimSpace(*body.Engine)
		}
		if body.Doors != nil {
			vehicle.Doors = body.Doors
		}
		if body.Mileage != nil {
			vehicle.Mileage = *body.Mileage
		}
		if body.SalePrice != nil {
			vehicle.SalePrice = body.SalePrice
		}
		if body.DailyRentalRate != nil {
			vehicle.DailyRentalRate = body.DailyRentalRate
		}
		if body.Chassis != nil {
			vehicle.Chassis = normalizeOptional(body.Chassis)
		}
		if body.Plate != nil {
			vehicle.Plate = normalizeOptional(body.Plate)
		}
		if body.UniqueDocument != nil {
			vehicle.UniqueDocument = strings.TrimSpace(*body.UniqueDocument)
		}
		if body.Description != nil {
			vehicle.Description = *body.Description
		}
		if body.Notes != nil {
			vehicle.Notes = *body.Notes
		}

		if err := vehicle.Validate(); err != nil {
			return fieldErrorResponse(c, err)
		}
		if err := checkUniqueDocuments(database.DB, vehicle.Chassis, vehicle.Plate, vehicle.ID); err != nil {
			return fieldErrorResponse(c, err)
		}

		if err := database.DB.Save(&vehicle).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível atualizar o veículo")
		}

		return c.JSON(fiber.Map{"id": vehicle.ID})
	}
}

// DELETE /api/carros/:id — as fotos são removidas em cascata
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Veículo não encontrado")
		}

		// Veículo com vendas ou aluguéis não pode ser removido
		var saleCount, rentalCount int64
		database.DB.Model(&models.Sale{}).Where("vehicle_id = ?", vehicle.ID).Count(&saleCount)
		database.DB.Model(&models.Rental{}).Where("vehicle_id = ?", vehicle.ID).Count(&rentalCount)
		if saleCount > 0 || rentalCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Veículo possui vendas ou aluguéis registrados e não pode ser removido")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("vehicle_id = ?", vehicle.ID).Delete(&models.VehiclePhoto{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&vehicle).Association("Options").Clear(); err != nil {
				return err
			}
			return tx.Delete(&vehicle).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover o veículo")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/carros/:id/opcionais — corpo: {"opcional_id": 3}
func AddOptionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Veículo não encontrado")
		}

		var body struct {
			OptionID uint `json:"opcional_id"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dados inválidos")
		}

		var option models.OptionItem
		if err := database.DB.First(&option, "id = ? AND active = ?", body.OptionID, true).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Opcional não encontrado")
		}

		if err := database.DB.Model(&vehicle).Association("Options").Append(&option); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível adicionar o opcional")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DELETE /api/carros/:id/opcionais/:opcionalId
func RemoveOptionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var vehicle models.Vehicle
		if err := database.DB.First(&vehicle, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Veículo não encontrado")
		}

		var option models.OptionItem
		if err := database.DB.First(&option, "id = ?", c.Params("opcionalId")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Opcional não encontrado")
		}

		if err := database.DB.Model(&vehicle).Association("Options").Delete(&option); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível remover o opcional")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
