package stock

import (
	"errors"
	"fmt"

	"concessionaria-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrVehicleNotFound      = errors.New("veículo não encontrado")
	ErrUnavailableForSale   = errors.New("veículo não está disponível para venda")
	ErrUnavailableForRental = errors.New("veículo não está disponível para aluguel")
)

// lockVehicle carrega o carro com SELECT ... FOR UPDATE. Duas requisições
// concorrentes sobre o mesmo carro serializam aqui, então nunca duas
// vendas/aluguéis enxergam "disponível" ao mesmo tempo. SQLite (usado nos
// testes) não tem FOR UPDATE e serializa as escritas no banco inteiro.
func lockVehicle(tx *gorm.DB, vehicleID uint) (*models.Vehicle, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var vehicle models.Vehicle
	if err := q.First(&vehicle, vehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// ApplySale sincroniza disponivel_venda do carro com o status da venda.
// Deve ser chamada na MESMA transação que grava a venda; se a escrita do
// carro falhar a transação inteira é abortada pelo chamador.
//
// Venda finalizada ocupa o canal de venda. Venda pendente ou cancelada
// não toca o flag (cancelada só é alcançável a partir de pendente, que
// nunca ocupou o carro). Reavaliar o mesmo status é idempotente: o flag
// recebe sempre o mesmo valor.
func ApplySale(tx *gorm.DB, sale *models.Sale, employeeID uint) error {
	if sale.Status != models.SaleFinalized {
		return nil
	}

	vehicle, err := lockVehicle(tx, sale.VehicleID)
	if err != nil {
		return err
	}

	if !vehicle.AvailableForSale {
		return ErrUnavailableForSale
	}

	if err := tx.Model(&models.Vehicle{}).
		Where("id = ?", vehicle.ID).
		Update("available_for_sale", false).Error; err != nil {
		return fmt.Errorf("não foi possível atualizar a disponibilidade do veículo: %w", err)
	}

	if err := recordStatusChange(tx, vehicle.ID, employeeID,
		"disponivel_venda=true", "disponivel_venda=false",
		fmt.Sprintf("Venda #%d finalizada", sale.ID)); err != nil {
		return err
	}

	return RecordMovement(tx, &models.StockMovement{
		VehicleID:  vehicle.ID,
		Type:       models.MovementSaleExit,
		EmployeeID: employeeID,
		SaleID:     &sale.ID,
		Notes:      fmt.Sprintf("Saída por venda #%d", sale.ID),
	})
}

// ApplyRental sincroniza disponivel_aluguel com o status do aluguel.
// Mesmo contrato transacional de ApplySale. isNew distingue criação de
// atualização: só a criação de um aluguel ativo valida a disponibilidade
// (um aluguel ativo sendo editado já ocupa o próprio carro).
func ApplyRental(tx *gorm.DB, rental *models.Rental, employeeID uint, isNew bool) error {
	vehicle, err := lockVehicle(tx, rental.VehicleID)
	if err != nil {
		return err
	}

	// ativo e atrasado ocupam o carro; finalizado e cancelado liberam
	occupied := rental.Status == models.RentalActive || rental.Status == models.RentalLate
	desired := !occupied

	if isNew && occupied && !vehicle.AvailableForRental {
		return ErrUnavailableForRental
	}

	if vehicle.AvailableForRental == desired {
		return nil // nada a fazer, reavaliação idempotente
	}

	if err := tx.Model(&models.Vehicle{}).
		Where("id = ?", vehicle.ID).
		Update("available_for_rental", desired).Error; err != nil {
		return fmt.Errorf("não foi possível atualizar a disponibilidade do veículo: %w", err)
	}

	if err := recordStatusChange(tx, vehicle.ID, employeeID,
		fmt.Sprintf("disponivel_aluguel=%t", vehicle.AvailableForRental),
		fmt.Sprintf("disponivel_aluguel=%t", desired),
		fmt.Sprintf("Aluguel #%d %s", rental.ID, rental.Status.Label())); err != nil {
		return err
	}

	movementType := models.MovementRentalExit
	notes := fmt.Sprintf("Saída por aluguel #%d", rental.ID)
	if desired {
		movementType = models.MovementRentalReturn
		notes = fmt.Sprintf("Retorno do aluguel #%d (%s)", rental.ID, rental.Status.Label())
	}

	return RecordMovement(tx, &models.StockMovement{
		VehicleID:  vehicle.ID,
		Type:       movementType,
		EmployeeID: employeeID,
		RentalID:   &rental.ID,
		Notes:      notes,
	})
}

func recordStatusChange(tx *gorm.DB, vehicleID, employeeID uint, previous, next, reason string) error {
	history := models.StatusHistory{
		VehicleID:      vehicleID,
		EmployeeID:     employeeID,
		PreviousStatus: previous,
		NewStatus:      next,
		Reason:         reason,
	}
	if err := tx.Create(&history).Error; err != nil {
		return fmt.Errorf("não foi possível gravar o histórico de status: %w", err)
	}
	return nil
}

// RecordMovement grava um registro na trilha de movimentação de estoque.
func RecordMovement(tx *gorm.DB, movement *models.StockMovement) error {
	if !movement.Type.Valid() {
		return models.NewFieldError("tipo_movimentacao", "tipo de movimentação inválido")
	}
	if err := tx.Create(movement).Error; err != nil {
		return fmt.Errorf("não foi possível gravar a movimentação de estoque: %w", err)
	}
	return nil
}
