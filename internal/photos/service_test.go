package photos

import (
	"errors"
	"fmt"
	"testing"

	"concessionaria-backend/internal/database"
	"concessionaria-backend/internal/models"

	"github.com/glebarez/sqlite"
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

	brand := models.Brand{Name: "Hyundai", Active: true}
	if err := db.Create(&brand).Error; err != nil {
		t.Fatalf("criando marca: %v", err)
	}
	model := models.VehicleModel{BrandID: brand.ID, Name: "Tucson", Active: true}
	if err := db.Create(&model).Error; err != nil {
		t.Fatalf("criando modelo: %v", err)
	}
	color := models.Color{Name: "Branco", Active: true}
	if err := db.Create(&color).Error; err != nil {
		t.Fatalf("criando cor: %v", err)
	}

	vehicle := models.Vehicle{
		ModelID:      model.ID,
		ColorID:      color.ID,
		YearBuilt:    2021,
		YearModel:    2021,
		Condition:    models.ConditionUsed,
		Fuel:         models.FuelDiesel,
		Transmission: models.TransmissionAutomatic,
	}
	if err := db.Create(&vehicle).Error; err != nil {
		t.Fatalf("criando veículo: %v", err)
	}
	return &vehicle
}

func listPhotos(t *testing.T, db *gorm.DB, vehicleID uint) []models.VehiclePhoto {
	t.Helper()
	var photos []models.VehiclePhoto
	if err := db.Where("vehicle_id = ?", vehicleID).
		Order("ordem asc").Find(&photos).Error; err != nil {
		t.Fatalf("listando fotos: %v", err)
	}
	return photos
}

func primaryCount(photos []models.VehiclePhoto) int {
	n := 0
	for _, p := range photos {
		if p.IsPrimary {
			n++
		}
	}
	return n
}

func TestAddFirstPhotoBecomesPrimary(t *testing.T) {
	db := newTestDB(t)
	vehicle := seedVehicle(t, db)

	first, err := Add(db, vehicle.ID, "carros/fotos/a.jpg", "frente", nil)
	if err != nil {
		t.Fatalf("adicionando primeira foto: %v", err)
	}
	if !first.IsPrimary {
		t.Fatal("primeira foto deveria ser a principal")
	}
	if first.Order != 1 {
		t.Fatalf("ordem da primeira foto: esperava 1, veio %d", first.Order)
	}

	second, err := Add(db, vehicle.ID, "carros/fotos/b.jpg", "traseira", nil)
	if err != nil {
		t.Fatalf("adicionando segunda foto: %v", err)
	}
	if second.IsPrimary {
		t.Fatal("segunda foto não deveria virar principal")
	}
	if second.Order != 2 {
		t.Fatalf("ordem da segunda foto: esperava 2, veio %d", second.Order)
	}

	photos := listPhotos(t, db, vehicle.ID)
	if primaryCount(photos) != 1 {
		t.Fatalf("esperava exatamente 1 principal, veio %d", primaryCount(photos))
	}
}

func TestSetPrimarySwapsInOneStep(t *testing.T) {
	db := newTestDB(t)
	vehicle := seedVehicle(t, db)

	first, _ := Add(db, vehicle.ID, "a.jpg", "", nil)
	second, _ := Add(db, vehicle.ID, "b.jpg", "", nil)

	if err := SetPrimary(db, second.ID); err != nil {
		t.Fatalf("trocando principal: %v", err)
	}

	photos := listPhotos(t, db, vehicle.ID)
	if primaryCount(photos) != 1 {
		t.Fatalf("esperava exatamente 1 principal, veio %d", primaryCount(photos))
	}
	for _, p := range photos {
		if p.ID == first.ID && p.IsPrimary {
			t.Fatal("foto antiga continua principal")
		}
		if p.ID == second.ID && !p.IsPrimary {
			t.Fatal("foto nova não virou principal")
		}
	}
}

func TestSetPrimaryNotFound(t *testing.T) {
	db := newTestDB(t)
	if err := SetPrimary(db, 42); !errors.Is(err, ErrPhotoNotFound) {
		t.Fatalf("esperava ErrPhotoNotFound, veio %v", err)
	}
}

func TestRemovePrimaryPromotesLowestOrder(t *testing.T) {
	db := newTestDB(t)
	vehicle := seedVehicle(t, db)

	first, _ := Add(db, vehicle.ID, "a.jpg", "", nil)  // principal, ordem 1
	second, _ := Add(db, vehicle.ID, "b.jpg", "", nil) // ordem 2
	if _, err := Add(db, vehicle.ID, "c.jpg", "", nil); err != nil {
		t.Fatalf("adicionando terceira foto: %v", err)
	}

	removed, err := Remove(db, first.ID)
	if err != nil {
		t.Fatalf("removendo principal: %v", err)
	}
	if removed.FilePath != "a.jpg" {
		t.Fatalf("arquivo removido: %s", removed.FilePath)
	}

	photos := listPhotos(t, db, vehicle.ID)
	if len(photos) != 2 {
		t.Fatalf("esperava 2 fotos restantes, veio %d", len(photos))
	}
	if primaryCount(photos) != 1 {
		t.Fatalf("esperava exatamente 1 principal, veio %d", primaryCount(photos))
	}
	if !photos[0].IsPrimary || photos[0].ID != second.ID {
		t.Fatal("a sobrevivente de menor ordem deveria ser promovida")
	}
}

func TestRemoveNonPrimaryKeepsPrimary(t *testing.T) {
	db := newTestDB(t)
	vehicle := seedVehicle(t, db)

	first, _ := Add(db, vehicle.ID, "a.jpg", "", nil)
	second, _ := Add(db, vehicle.ID, "b.jpg", "", nil)

	if _, err := Remove(db, second.ID); err != nil {
		t.Fatalf("removendo não-principal: %v", err)
	}

	photos := listPhotos(t, db, vehicle.ID)
	if len(photos) != 1 || !photos[0].IsPrimary || photos[0].ID != first.ID {
		t.Fatal("a principal original deveria permanecer")
	}
}

func TestRemoveLastPhotoLeavesNone(t *testing.T) {
	db := newTestDB(t)
	vehicle := seedVehicle(t, db)

	only, _ := Add(db, vehicle.ID, "a.jpg", "", nil)
	if _, err := Remove(db, only.ID); err != nil {
		t.Fatalf("removendo única foto: %v", err)
	}
	if photos := listPhotos(t, db, vehicle.ID); len(photos) != 0 {
		t.Fatalf("esperava carro sem fotos, veio %d", len(photos))
	}
}

func TestReorderAssignsSequentialOrder(t *testing.T) {
	db := newTestDB(t)
	vehicle := seedVehicle(t, db)
	other := seedVehicleNamed(t, db, "Kia", "Sportage", "Azul")

	var ids []uint
	for i := 0; i < 3; i++ {
		p, err := Add(db, vehicle.ID, fmt.Sprintf("p%d.jpg", i), "", nil)
		if err != nil {
			t.Fatalf("adicionando foto %d: %v", i, err)
		}
		ids = append(ids, p.ID)
	}
	foreign, err := Add(db, other.ID, "outro.jpg", "", nil)
	if err != nil {
		t.Fatalf("adicionando foto de outro carro: %v", err)
	}

	// inverte a ordem e injeta um id de outro carro no meio
	if err := Reorder(db, vehicle.ID, []uint{ids[2], foreign.ID, ids[0], ids[1]}); err != nil {
		t.Fatalf("reordenando: %v", err)
	}

	photos := listPhotos(t, db, vehicle.ID)
	want := []uint{ids[2], ids[0], ids[1]}
	for i, p := range photos {
		if p.ID != want[i] {
			t.Fatalf("posição %d: esperava foto %d, veio %d", i+1, want[i], p.ID)
		}
		if p.Order != i+1 {
			t.Fatalf("foto %d: esperava ordem %d, veio %d", p.ID, i+1, p.Order)
		}
	}

	// a foto do outro carro não pode ter sido tocada
	var untouched models.VehiclePhoto
	if err := db.First(&untouched, foreign.ID).Error; err != nil {
		t.Fatalf("recarregando foto alheia: %v", err)
	}
	if untouched.Order != 1 {
		t.Fatalf("foto de outro carro foi reordenada: ordem %d", untouched.Order)
	}
}

func seedVehicleNamed(t *testing.T, db *gorm.DB, brandName, modelName, colorName string) *models.Vehicle {
	t.Helper()

	brand := models.Brand{Name: brandName, Active: true}
	if err := db.Create(&brand).Error; err != nil {
		t.Fatalf("criando marca: %v", err)
	}
	model := models.VehicleModel{BrandID: brand.ID, Name: modelName, Active: true}
	if err := db.Create(&model).Error; err != nil {
		t.Fatalf("criando modelo: %v", err)
	}
	color := models.Color{Name: colorName, Active: true}
	if err := db.Create(&color).Error; err != nil {
		t.Fatalf("criando cor: %v", err)
	}

	vehicle := models.Vehicle{
		ModelID:      model.ID,
		ColorID:      color.ID,
		YearBuilt:    2020,
		YearModel:    2020,
		Condition:    models.ConditionUsed,
		Fuel:         models.FuelGasoline,
		Transmission: models.TransmissionManual,
	}
	if err := db.Create(&vehicle).Error; err != nil {
		t.Fatalf("criando veículo: %v", err)
	}
	return &vehicle
}
