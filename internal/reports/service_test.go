package reports

import (
	"testing"
	"time"

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

type reportFixture struct {
	vehicle models.Vehicle
	client  models.Client
	ana     models.Employee // comissão 5%
	bruno   models.Employee // comissão 10%
}

func seedReportData(t *testing.T, db *gorm.DB) reportFixture {
	t.Helper()
	var f reportFixture

	brand := models.Brand{Name: "Toyota", Active: true}
	if err := db.Create(&brand).Error; err != nil {
		t.Fatalf("criando marca: %v", err)
	}
	model := models.VehicleModel{BrandID: brand.ID, Name: "Hilux", Active: true}
	if err := db.Create(&model).Error; err != nil {
		t.Fatalf("criando modelo: %v", err)
	}
	color := models.Color{Name: "Prata", Active: true}
	if err := db.Create(&color).Error; err != nil {
		t.Fatalf("criando cor: %v", err)
	}
	f.vehicle = models.Vehicle{
		ModelID: model.ID, ColorID: color.ID,
		YearBuilt: 2022, YearModel: 2022,
		Condition: models.ConditionUsed, Fuel: models.FuelDiesel,
		Transmission: models.TransmissionManual,
	}
	if err := db.Create(&f.vehicle).Error; err != nil {
		t.Fatalf("criando veículo: %v", err)
	}

	f.client = models.Client{Name: "Carlos", PersonType: models.PersonPhysical, Active: true}
	if err := db.Create(&f.client).Error; err != nil {
		t.Fatalf("criando cliente: %v", err)
	}

	f.ana = models.Employee{Name: "Ana", SaleCommission: decimal.NewFromInt(5), Active: true}
	f.bruno = models.Employee{Name: "Bruno", SaleCommission: decimal.NewFromInt(10), Active: true}
	for _, e := range []*models.Employee{&f.ana, &f.bruno} {
		if err := db.Create(e).Error; err != nil {
			t.Fatalf("criando funcionário: %v", err)
		}
	}
	return f
}

func createSale(t *testing.T, db *gorm.DB, f reportFixture, employeeID uint, value int64, status models.SaleStatus, at time.Time) {
	t.Helper()
	sale := models.Sale{
		VehicleID:   f.vehicle.ID,
		ClientID:    f.client.ID,
		EmployeeID:  employeeID,
		SaleValue:   decimal.NewFromInt(value),
		PaymentType: models.PaymentCash,
		Status:      status,
		CreatedAt:   at,
	}
	if err := db.Create(&sale).Error; err != nil {
		t.Fatalf("criando venda: %v", err)
	}
}

func createRental(t *testing.T, db *gorm.DB, f reportFixture, employeeID uint, expected int64, final *int64, at time.Time) models.Rental {
	t.Helper()
	rental := models.Rental{
		VehicleID:       f.vehicle.ID,
		ClientID:        f.client.ID,
		EmployeeID:      employeeID,
		StartDate:       at,
		ExpectedEndDate: at.AddDate(0, 0, 7),
		DailyRate:       decimal.NewFromInt(50000),
		ExpectedTotal:   decimal.NewFromInt(expected),
		Status:          models.RentalActive,
		CreatedAt:       at,
	}
	if final != nil {
		v := decimal.NewFromInt(*final)
		rental.FinalTotal = &v
		rental.Status = models.RentalFinished
	}
	if err := db.Create(&rental).Error; err != nil {
		t.Fatalf("criando aluguel: %v", err)
	}
	return rental
}

func TestBuildAggregatesPeriod(t *testing.T) {
	db := newTestDB(t)
	f := seedReportData(t, db)

	now := time.Now()
	start := now.AddDate(0, 0, -7)
	end := now.AddDate(0, 0, 1)

	// dentro do período
	createSale(t, db, f, f.ana.ID, 10000000, models.SaleFinalized, now)   // comissão 500.000
	createSale(t, db, f, f.bruno.ID, 8000000, models.SaleFinalized, now)  // comissão 800.000
	createSale(t, db, f, f.ana.ID, 5000000, models.SalePending, now)      // pendente: fora
	createSale(t, db, f, f.ana.ID, 4000000, models.SaleCancelled, now)    // cancelada: fora
	createSale(t, db, f, f.ana.ID, 9999999, models.SaleFinalized, start.AddDate(0, 0, -1)) // antes do período

	finalTotal := int64(400000)
	createRental(t, db, f, f.bruno.ID, 350000, &finalTotal, now) // conta o valor final
	createRental(t, db, f, f.ana.ID, 210000, nil, now)           // conta o previsto

	report, err := Build(db, start, end, nil)
	if err != nil {
		t.Fatalf("gerando relatório: %v", err)
	}

	if report.SalesCount != 2 {
		t.Fatalf("total de vendas: esperava 2, veio %d", report.SalesCount)
	}
	if want := decimal.NewFromInt(18000000); !report.SalesTotal.Equal(want) {
		t.Fatalf("valor das vendas: esperava %s, veio %s", want, report.SalesTotal)
	}
	if want := decimal.NewFromInt(1300000); !report.CommissionTotal.Equal(want) {
		t.Fatalf("comissões: esperava %s, veio %s", want, report.CommissionTotal)
	}

	if report.RentalsCount != 2 {
		t.Fatalf("total de aluguéis: esperava 2, veio %d", report.RentalsCount)
	}
	if want := decimal.NewFromInt(610000); !report.RentalsTotal.Equal(want) {
		t.Fatalf("valor dos aluguéis: esperava %s, veio %s", want, report.RentalsTotal)
	}

	if len(report.ByEmployee) != 2 {
		t.Fatalf("resumo por funcionário: esperava 2 entradas, veio %d", len(report.ByEmployee))
	}
	// ordenado por valor de vendas: Ana (10M) antes de Bruno (8M)
	if report.ByEmployee[0].Name != "Ana" || report.ByEmployee[1].Name != "Bruno" {
		t.Fatalf("ordem do resumo: %s, %s", report.ByEmployee[0].Name, report.ByEmployee[1].Name)
	}
	if want := decimal.NewFromInt(500000); !report.ByEmployee[0].Commission.Equal(want) {
		t.Fatalf("comissão da Ana: esperava %s, veio %s", want, report.ByEmployee[0].Commission)
	}
}

func TestBuildFiltersByEmployee(t *testing.T) {
	db := newTestDB(t)
	f := seedReportData(t, db)

	now := time.Now()
	start := now.AddDate(0, 0, -7)
	end := now.AddDate(0, 0, 1)

	createSale(t, db, f, f.ana.ID, 10000000, models.SaleFinalized, now)
	createSale(t, db, f, f.bruno.ID, 8000000, models.SaleFinalized, now)
	createRental(t, db, f, f.bruno.ID, 350000, nil, now)

	report, err := Build(db, start, end, &f.bruno.ID)
	if err != nil {
		t.Fatalf("gerando relatório filtrado: %v", err)
	}

	if report.SalesCount != 1 {
		t.Fatalf("vendas do Bruno: esperava 1, veio %d", report.SalesCount)
	}
	if want := decimal.NewFromInt(800000); !report.CommissionTotal.Equal(want) {
		t.Fatalf("comissão do Bruno: esperava %s, veio %s", want, report.CommissionTotal)
	}
	if report.RentalsCount != 1 {
		t.Fatalf("aluguéis do Bruno: esperava 1, veio %d", report.RentalsCount)
	}
	if len(report.ByEmployee) != 1 || report.ByEmployee[0].Name != "Bruno" {
		t.Fatal("resumo deveria conter só o Bruno")
	}
}

func TestBuildRentalPayments(t *testing.T) {
	db := newTestDB(t)
	f := seedReportData(t, db)

	now := time.Now()
	start := now.AddDate(0, 0, -7)
	end := now.AddDate(0, 0, 1)

	rental := createRental(t, db, f, f.ana.ID, 350000, nil, now)
	for _, v := range []int64{100000, 150000} {
		payment := models.RentalPayment{
			RentalID:  rental.ID,
			Amount:    decimal.NewFromInt(v),
			CreatedAt: now,
		}
		if err := db.Create(&payment).Error; err != nil {
			t.Fatalf("criando pagamento: %v", err)
		}
	}
	// fora do período
	old := models.RentalPayment{
		RentalID:  rental.ID,
		Amount:    decimal.NewFromInt(999999),
		CreatedAt: start.AddDate(0, 0, -1),
	}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("criando pagamento antigo: %v", err)
	}

	report, err := Build(db, start, end, nil)
	if err != nil {
		t.Fatalf("gerando relatório: %v", err)
	}
	if want := decimal.NewFromInt(250000); !report.PaymentsTotal.Equal(want) {
		t.Fatalf("pagamentos: esperava %s, veio %s", want, report.PaymentsTotal)
	}
}

func TestBuildEmptyPeriod(t *testing.T) {
	db := newTestDB(t)
	seedReportData(t, db)

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	report, err := Build(db, start, end, nil)
	if err != nil {
		t.Fatalf("gerando relatório vazio: %v", err)
	}
	if report.SalesCount != 0 || report.RentalsCount != 0 {
		t.Fatal("período vazio deveria zerar os contadores")
	}
	if !report.SalesTotal.IsZero() || !report.PaymentsTotal.IsZero() {
		t.Fatal("período vazio deveria zerar os totais")
	}
	if len(report.ByEmployee) != 0 {
		t.Fatal("período vazio não tem resumo por funcionário")
	}
}
