package vehicles

import (
	"strings"

	"concessionaria-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Filter: critérios de busca da listagem de veículos. Todos opcionais e
// combinados com AND; campo zero não restringe nada. Usado igualmente
// pelo back office e pela loja pública (que força Availability="venda").
type Filter struct {
	Search       string                  // texto livre: modelo, marca, chassi, matrícula, cor
	BrandID      uint
	ModelID      uint
	ColorID      uint
	Condition    models.VehicleCondition
	Fuel         models.FuelType
	Transmission models.Transmission
	YearMin      int
	YearMax      int
	PriceMin     *decimal.Decimal
	PriceMax     *decimal.Decimal
	Availability string // "venda" | "aluguel" | ""
}

// Ordenações aceitas; qualquer outro valor cai no padrão (mais recente).
var sortColumns = map[string]string{
	"preco_asc":  "carros.sale_price asc",
	"preco_desc": "carros.sale_price desc",
	"ano_asc":    "carros.year_model asc",
	"ano_desc":   "carros.year_model desc",
	"km_asc":     "carros.mileage asc",
	"km_desc":    "carros.mileage desc",
	"recente":    "carros.created_at desc",
	"antigo":     "carros.created_at asc",
}

const defaultSort = "carros.created_at desc"

// Apply monta a query com os filtros presentes. A ordem de aplicação é
// irrelevante: cada filtro vira uma cláusula AND independente.
func (f Filter) Apply(db *gorm.DB) *gorm.DB {
	q := db.Model(&models.Vehicle{}).
		Joins("JOIN modelos ON modelos.id = carros.model_id").
		Joins("JOIN marcas ON marcas.id = modelos.brand_id").
		Joins("JOIN cores ON cores.id = carros.color_id")

	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		q = q.Where(
			"LOWER(modelos.name) LIKE ? OR LOWER(marcas.name) LIKE ? OR LOWER(carros.chassis) LIKE ? OR LOWER(carros.plate) LIKE ? OR LOWER(cores.name) LIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	if f.BrandID != 0 {
		q = q.Where("modelos.brand_id = ?", f.BrandID)
	}
	if f.ModelID != 0 {
		q = q.Where("carros.model_id = ?", f.ModelID)
	}
	if f.ColorID != 0 {
		q = q.Where("carros.color_id = ?", f.ColorID)
	}
	if f.Condition != "" {
		q = q.Where("carros.condition = ?", f.Condition)
	}
	if f.Fuel != "" {
		q = q.Where("carros.fuel = ?", f.Fuel)
	}
	if f.Transmission != "" {
		q = q.Where("carros.transmission = ?", f.Transmission)
	}
	if f.YearMin != 0 {
		q = q.Where("carros.year_model >= ?", f.YearMin)
	}
	if f.YearMax != 0 {
		q = q.Where("carros.year_model <= ?", f.YearMax)
	}
	if f.PriceMin != nil {
		q = q.Where("carros.sale_price >= ?", f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("carros.sale_price <= ?", f.PriceMax)
	}

	switch f.Availability {
	case "venda":
		q = q.Where("carros.available_for_sale = ?", true)
	case "aluguel":
		q = q.Where("carros.available_for_rental = ?", true)
	}

	return q
}

// Query executa o filtro e devolve os veículos ordenados mais o total
// (contado antes da ordenação, sobre o mesmo conjunto).
func Query(db *gorm.DB, f Filter, sort string) ([]models.Vehicle, int64, error) {
	base := f.Apply(db)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := sortColumns[sort]
	if !ok {
		order = defaultSort
	}

	var list []models.Vehicle
	err := base.Session(&gorm.Session{}).
		Preload("Model.Brand").
		Preload("Color").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordem asc, data_upload asc")
		}).
		Order(order).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}

	return list, total, nil
}
