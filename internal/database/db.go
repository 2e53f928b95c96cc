package database

import (
	"log"

	"concessionaria-backend/internal/config"
	"concessionaria-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Não foi possível conectar ao banco de dados: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("Erro no AutoMigrate: %v", err)
	}

	log.Println("Conexão com o banco de dados estabelecida. Migration concluída.")
}

// Migrate cria/atualiza o schema. Separada de Init para os testes de
// pacote poderem migrar um banco próprio.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Employee{},
		&models.Brand{},
		&models.VehicleModel{},
		&models.Color{},
		&models.OptionItem{},
		&models.Vehicle{},
		&models.VehiclePhoto{},
		&models.Sale{},
		&models.SaleDocument{},
		&models.Rental{},
		&models.RentalPayment{},
		&models.StockMovement{},
		&models.StatusHistory{},
		&models.Maintenance{},
	)
}
