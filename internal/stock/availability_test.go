package stock

import (
	"errors"
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

func seedVehicle(t *testing.T, db *gorm.DB) *models.Vehicle {
	t.Helper()

	brand := models.Brand{Name: "Toyota", Active: true}
	if err := db.Create(&brand).Error; err != nil {
		t.Fatalf("criando marca: %v", err)
	}
	model := models.VehicleModel{BrandID: brand.ID, Name: "Corolla", Active: true}
	if err := db.Create(&model).Error; err != nil {
		t.Fatalf("criando modelo: %v", err)
	}
	color := models.Color{Name: "Preto", Active: true}
	if err := db.Create(&color).Error; err != nil {
		t.Fatalf("criando cor: %v", err)
	}

	price := decimal.NewFromInt(9500000)
	vehicle := models.Vehicle{
		ModelID:            model.ID,
		ColorID:            color.ID,
		YearBuilt:          2022,
		YearModel:          2023,
		Condition:          models.ConditionUsed,
		Fuel:               models.FuelGasoline,
		Transmission:       models.TransmissionAutomatic,
		SalePrice:          &price,
		AvailableForSale:   true,
		AvailableForRental: true,
	}
	if err := db.Create(&vehicle).Error; err != nil {
		t.Fatalf("criando veículo: %v", err)
	}
	return &vehicle
}

func seedEmployee(t *testing.T, db *gorm.DB) *models.Employee {
	t.Helper()
	employee := models.Employee{Name: "João Vendedor", Active: true}
	if err := db.Create(&employee).Error; err != nil {
		t.Fatalf("criando funcionário: %v", err)
	}
	return &employee
}

func seedClient(t *testing.T, db *gorm.DB) *models.Client {
	t.Helper()
	client := models.Client{Name: "Maria Cliente", PersonType: models.PersonPhysical, Active: true}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("criando cliente: %v", err)
	}
	return &client
}

func reloadVehicle(t *testing.T, db *gorm.DB, id uint) *models.Vehicle {
	t.Helper()
	var vehicle models.Vehicle
	if err := db.First(&vehicle, id).Error; err != nil {
		t.Fatalf("recarregando veículo: %v", err)
	}
	return &vehicle
}

func TestApplySalePendingDoesNotTouchFlag(t *testing.T) {
	db := newTestDB(t)
	vehicle := seedVehicle(t, db)
	employee := seedEmployee(t, db)
	client := seedClient(t, db)

	sale := models.Sale{
		VehicleID:  vehicle.ID,
		ClientID:   client.ID,
		EmployeeID: employee.ID,
		SaleValue:  decimal.NewFromInt(9000000),
		Status:     models.SalePending,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}
		return ApplySale(tx, &sale, employee.ID)
	})
	if err != nil {
		t.Fatalf("venda pendente: %v", err)
	}

	if got := reloadVehicle(t, db, vehicle.ID); !got.AvailableForSale {
		t.Fatal("venda pendente não deveria ocupar o carro")
	}
}

func TestApplySaleFinalizedOccupiesVehicle(t *testing.T) {
	db := newTestDB(t)
	vehicle := seedVehicle(t, db)
	employee := seedEmployee(t, db)
	client := seedClient(t, db)

	sale := models.Sale{
		VehicleID:  vehicle.ID,
		ClientID:   client.ID,
		EmployeeID: employee.ID,
		SaleValue:  decimal.NewFromInt(9000000),
		Status:     models.SaleFinalized,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}
		return ApplySale(tx, &sale, employee.ID)
	})
	if err != nil {
		t.Fatalf("finalizando venda: %v", err)
	}

	got := reloadVehicle(t, db, vehicle.ID)
	if got.AvailableForSale {
		t.Fatal("venda finalizada deveria marcar disponivel_venda=false")
	}
	if !got.AvailableForRental {
		t.Fatal("canal de aluguel não deveria ser afetado pela venda")
	}

	var movements []models.StockMovement
	if err := db.Where("vehicle_id = ?", vehicle.ID).Find(&movements).Error; err != nil {
		t.Fatalf("lendo movimentações: %v", err)
	}
	if len(movements) != 1 {
		t.Fatalf("esperava 1 movimentação, veio %d", len(movements))
	}
	if movements[0].Type != models.MovementSaleExit {
		t.Fatalf("tipo da movimentação: esperava %s, veio %s", models.MovementSaleExit, movements[0].Type)
	}
	if movements[0].SaleID == nil || *movements[0].SaleID != sale.ID {
		t.Fatal("movimentação deveria referenciar a venda")
	}

	var history []models.StatusHistory
	if err := db.Where("vehicle_id = ?", vehicle.ID).Find(&history).Error; err != nil {
		t.Fatalf("lendo histórico: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("esperava 1 registro de histórico, veio %d", len(history))
	}
}

func TestApplySaleUnavailableVehicleFails(t *testing.T) {
	db := newTestDB(t)
	vehicle := seedVehicle(t, db)
	employee := seedEmployee(t, db)
	client := seedClient(t, db)

	if err := db.Model(&models.Vehicle{}).Where("id = ?", vehicle.ID).
		Update("available_for_sale", false).Error; err != nil {
		t.Fatalf("preparando veículo: %v", err)
	}

	sale := models.Sale{
		VehicleID:  vehicle.ID,
		ClientID:   client.ID,
		EmployeeID: employee.ID,
		SaleValue:  decimal.NewFromInt(9000000),
		Status:     models.SaleFinalized,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}
		return ApplySale(tx, &sale, employee.ID)
	})
	if !errors.Is(err, ErrUnavailableForSale) {
		t.Fatalf("esperava ErrUnavailableForSale, veio %v", err)
	}

	// transação abortada: a venda não pode ter sido gravada
	var count int64
	db.Model(&models.Sale{}).Count(&count)
	if count != 0 {
		t.Fatal("venda não deveria ter sido gravada após o rollback")
	}
}

func TestApplySaleVehicleNotFound(t *testing.T) {
	db := newTestDB(t)
	employee := seedEmployee(t, db)

	sale := models.Sale{
		VehicleID:  999,
		ClientID:   1,
		EmployeeID: employee.ID,
		SaleValue:  decimal.NewFromInt(100),
		Status:     models.SaleFinalized,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		return ApplySale(tx, &sale, employee.ID)
	})
	if !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("esperava ErrVehicleNotFound, veio %v", err)
	}
}

func newRental(vehicle *models.Vehicle, client *models.Client, employee *models.Employee, status models.RentalStatus) *models.Rental {
	return &models.Rental{
		VehicleID:     vehicle.ID,
		ClientID:      client.ID,
		EmployeeID:    employee.ID,
		DailyRate:     decimal.NewFromInt(50000),
		ExpectedTotal: decimal.NewFromInt(350000),
		Status:        status,
	}
}

func TestApplyRentalLifecycle(t *testing.T) {
	db := newTestDB(t)
	vehicle := seedVehicle(t, db)
	employee := seedEmployee(t, db)
	client := seedClient(t, db)

	rental := newRental(vehicle, client, employee, models.RentalActive)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rental).Error; err != nil {
			return err
		}
		return ApplyRental(tx, rental, employee.ID, true)
	})
	if err != nil {
		t.Fatalf("criando aluguel ativo: %v", err)
	}
	if got := reloadVehicle(t, db, vehicle.ID); got.AvailableForRental {
		t.Fatal("aluguel ativo deveria marcar disponivel_aluguel=false")
	}

	// atualização do mesmo aluguel ativo: idempotente, sem erro
	err = db.Transaction(func(tx *gorm.DB) error {
		return ApplyRental(tx, rental, employee.ID, false)
	})
	if err != nil {
		t.Fatalf("reavaliando aluguel ativo: %v", err)
	}
	var movementCount int64
	db.Model(&models.StockMovement{}).Where("vehicle_id = ?", vehicle.ID).Count(&movementCount)
	if movementCount != 1 {
		t.Fatalf("reavaliação idempotente não deveria gerar nova movimentação, total %d", movementCount)
	}

	// devolução libera o carro
	rental.Status = models.RentalFinished
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(rental).Error; err != nil {
			return err
		}
		return ApplyRental(tx, rental, employee.ID, false)
	})
	if err != nil {
		t.Fatalf("finalizando aluguel: %v", err)
	}
	if got := reloadVehicle(t, db, vehicle.ID); !got.AvailableForRental {
		t.Fatal("aluguel finalizado deveria liberar o carro")
	}

	var movements []models.StockMovement
	db.Where("vehicle_id = ?", vehicle.ID).Order("id asc").Find(&movements)
	if len(movements) != 2 {
		t.Fatalf("esperava 2 movimentações (saída e retorno), veio %d", len(movements))
	}
	if movements[0].Type != models.MovementRentalExit || movements[1].Type != models.MovementRentalReturn {
		t.Fatalf("tipos das movimentações: %s, %s", movements[0].Type, movements[1].Type)
	}
}

func TestApplyRentalDoubleBooking(t *testing.T) {
	db := newTestDB(t)
	vehicle := seedVehicle(t, db)
	employee := seedEmployee(t, db)
	client := seedClient(t, db)

	first := newRental(vehicle, client, employee, models.RentalActive)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(first).Error; err != nil {
			return err
		}
		return ApplyRental(tx, first, employee.ID, true)
	})
	if err != nil {
		t.Fatalf("primeiro aluguel: %v", err)
	}

	second := newRental(vehicle, client, employee, models.RentalActive)
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(second).Error; err != nil {
			return err
		}
		return ApplyRental(tx, second, employee.ID, true)
	})
	if !errors.Is(err, ErrUnavailableForRental) {
		t.Fatalf("esperava ErrUnavailableForRental, veio %v", err)
	}

	var count int64
	db.Model(&models.Rental{}).Count(&count)
	if count != 1 {
		t.Fatalf("segundo aluguel deveria ter sido revertido, total %d", count)
	}
}

func TestApplyRentalLateKeepsVehicleOccupied(t *testing.T) {
	db := newTestDB(t)
	vehicle := seedVehicle(t, db)
	employee := seedEmployee(t, db)
	client := seedClient(t, db)

	rental := newRental(vehicle, client, employee, models.RentalActive)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rental).Error; err != nil {
			return err
		}
		return ApplyRental(tx, rental, employee.ID, true)
	})
	if err != nil {
		t.Fatalf("criando aluguel: %v", err)
	}

	rental.Status = models.RentalLate
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(rental).Error; err != nil {
			return err
		}
		return ApplyRental(tx, rental, employee.ID, false)
	})
	if err != nil {
		t.Fatalf("marcando atraso: %v", err)
	}
	if got := reloadVehicle(t, db, vehicle.ID); got.AvailableForRental {
		t.Fatal("aluguel atrasado deveria manter o carro ocupado")
	}
}

func TestRecordMovementRejectsInvalidType(t *testing.T) {
	db := newTestDB(t)
	vehicle := seedVehicle(t, db)
	employee := seedEmployee(t, db)

	err := RecordMovement(db, &models.StockMovement{
		VehicleID:  vehicle.ID,
		EmployeeID: employee.ID,
		Type:       "invalido",
	})
	var fieldErr *models.FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("esperava FieldError, veio %v", err)
	}
	if fieldErr.Field != "tipo_movimentacao" {
		t.Fatalf("campo do erro: %s", fieldErr.Field)
	}
}
