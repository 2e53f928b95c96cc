package vehicles

import (
	"testing"

	"concessionaria-backend/internal/database"
	"concessionaria-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("abrindo banco de teste: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrando banco de teste: %v", err)
	}
	return db
}

type fixture struct {
	toyota, honda       models.Brand
	corolla, civic, hrv models.VehicleModel
	black, white        models.Color
}

func price(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

// três carros: Corolla 2023 preto 9.5M (venda), Civic 2020 branco 7M
// (venda+aluguel), HR-V 2024 preto 12M (só aluguel)
func seedCatalog(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	var f fixture

	f.toyota = models.Brand{Name: "Toyota", Active: true}
	f.honda = models.Brand{Name: "Honda", Active: true}
	for _, b := range []*models.Brand{&f.toyota, &f.honda} {
		if err := db.Create(b).Error; err != nil {
			t.Fatalf("criando marca: %v", err)
		}
	}

	f.corolla = models.VehicleModel{BrandID: f.toyota.ID, Name: "Corolla", Category: models.CategorySedan, Active: true}
	f.civic = models.VehicleModel{BrandID: f.honda.ID, Name: "Civic", Category: models.CategorySedan, Active: true}
	f.hrv = models.VehicleModel{BrandID: f.honda.ID, Name: "HR-V", Category: models.CategorySUV, Active: true}
	for _, m := range []*models.VehicleModel{&f.corolla, &f.civic, &f.hrv} {
		if err := db.Create(m).Error; err != nil {
			t.Fatalf("criando modelo: %v", err)
		}
	}

	f.black = models.Color{Name: "Preto", Active: true}
	f.white = models.Color{Name: "Branco", Active: true}
	for _, c := range []*models.Color{&f.black, &f.white} {
		if err := db.Create(c).Error; err != nil {
			t.Fatalf("criando cor: %v", err)
		}
	}

	cars := []models.Vehicle{
		{
			ModelID: f.corolla.ID, ColorID: f.black.ID,
			YearBuilt: 2023, YearModel: 2023,
			Condition: models.ConditionNew, Fuel: models.FuelGasoline,
			Transmission: models.TransmissionAutomatic, Mileage: 0,
			SalePrice:        price(9500000),
			AvailableForSale: true, AvailableForRental: false,
		},
		{
			ModelID: f.civic.ID, ColorID: f.white.ID,
			YearBuilt: 2020, YearModel: 2020,
			Condition: models.ConditionUsed, Fuel: models.FuelFlex,
			Transmission: models.TransmissionManual, Mileage: 45000,
			SalePrice: price(7000000), DailyRentalRate: price(60000),
			AvailableForSale: true, AvailableForRental: true,
		},
		{
			ModelID: f.hrv.ID, ColorID: f.black.ID,
			YearBuilt: 2024, YearModel: 2024,
			Condition: models.ConditionNew, Fuel: models.FuelHybrid,
			Transmission: models.TransmissionCVT, Mileage: 0,
			SalePrice: price(12000000), DailyRentalRate: price(90000),
			AvailableForSale: false, AvailableForRental: true,
		},
	}
	for i := range cars {
		if err := db.Create(&cars[i]).Error; err != nil {
			t.Fatalf("criando veículo %d: %v", i, err)
		}
	}
	return f
}

func modelNames(list []models.Vehicle) []string {
	names := make([]string, 0, len(list))
	for i := range list {
		names = append(names, list[i].Model.Name)
	}
	return names
}

func TestQueryNoFilterReturnsAll(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	list, total, err := Query(db, Filter{}, "")
	if err != nil {
		t.Fatalf("consultando: %v", err)
	}
	if total != 3 || len(list) != 3 {
		t.Fatalf("esperava 3 carros, veio total=%d len=%d", total, len(list))
	}
}

func TestQuerySearchMatchesBrandAndModel(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	list, _, err := Query(db, Filter{Search: "honda"}, "")
	if err != nil {
		t.Fatalf("consultando por marca: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("busca 'honda': esperava 2, veio %d", len(list))
	}

	list, _, err = Query(db, Filter{Search: "COROLLA"}, "")
	if err != nil {
		t.Fatalf("consultando por modelo: %v", err)
	}
	if len(list) != 1 || list[0].Model.Name != "Corolla" {
		t.Fatalf("busca 'COROLLA': veio %v", modelNames(list))
	}
}

func TestQueryCombinedFilters(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)

	filter := Filter{
		BrandID:   f.honda.ID,
		ColorID:   f.black.ID,
		Condition: models.ConditionNew,
	}
	list, total, err := Query(db, filter, "")
	if err != nil {
		t.Fatalf("consultando: %v", err)
	}
	if total != 1 || list[0].Model.Name != "HR-V" {
		t.Fatalf("filtros combinados: veio %v", modelNames(list))
	}
}

func TestQueryPriceAndYearRange(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	list, _, err := Query(db, Filter{PriceMin: price(8000000), PriceMax: price(10000000)}, "")
	if err != nil {
		t.Fatalf("faixa de preço: %v", err)
	}
	if len(list) != 1 || list[0].Model.Name != "Corolla" {
		t.Fatalf("faixa 8M-10M: veio %v", modelNames(list))
	}

	list, _, err = Query(db, Filter{YearMin: 2023}, "")
	if err != nil {
		t.Fatalf("faixa de ano: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ano >= 2023: esperava 2, veio %d", len(list))
	}
}

func TestQueryAvailabilityChannels(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	list, _, err := Query(db, Filter{Availability: "venda"}, "")
	if err != nil {
		t.Fatalf("canal de venda: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("disponíveis para venda: esperava 2, veio %d", len(list))
	}

	list, _, err = Query(db, Filter{Availability: "aluguel"}, "")
	if err != nil {
		t.Fatalf("canal de aluguel: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("disponíveis para aluguel: esperava 2, veio %d", len(list))
	}
}

func TestQuerySortByPrice(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	list, _, err := Query(db, Filter{}, "preco_asc")
	if err != nil {
		t.Fatalf("ordenando por preço: %v", err)
	}
	got := modelNames(list)
	want := []string{"Civic", "Corolla", "HR-V"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ordem por preço: esperava %v, veio %v", want, got)
		}
	}

	list, _, err = Query(db, Filter{}, "preco_desc")
	if err != nil {
		t.Fatalf("ordenando por preço desc: %v", err)
	}
	if list[0].Model.Name != "HR-V" {
		t.Fatalf("preco_desc: primeiro deveria ser HR-V, veio %s", list[0].Model.Name)
	}
}

func TestQueryUnknownSortFallsBack(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	list, _, err := Query(db, Filter{}, "qualquer_coisa")
	if err != nil {
		t.Fatalf("ordenação desconhecida: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("fallback de ordenação deveria devolver tudo, veio %d", len(list))
	}
}
