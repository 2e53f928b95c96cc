package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalActive    RentalStatus = "ativo"
	RentalFinished  RentalStatus = "finalizado"
	RentalCancelled RentalStatus = "cancelado"
	RentalLate      RentalStatus = "atrasado"
)

var rentalStatusLabels = map[RentalStatus]string{
	RentalActive:    "Ativo",
	RentalFinished:  "Finalizado",
	RentalCancelled: "Cancelado",
	RentalLate:      "Atrasado",
}

func (s RentalStatus) Valid() bool { _, ok := rentalStatusLabels[s]; return ok }
func (s RentalStatus) Label() string {
	if l, ok := rentalStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Rental: aluguel de um veículo. O flag disponivel_aluguel do carro é
// derivado do status: ativo/atrasado ocupam o carro, finalizado e
// cancelado liberam.
type Rental struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	VehicleID  uint     `gorm:"index;not null" json:"carro_id"`
	Vehicle    Vehicle  `json:"carro"`
	ClientID   uint     `gorm:"index;not null" json:"cliente_id"`
	Client     Client   `json:"cliente"`
	EmployeeID uint     `gorm:"index;not null" json:"funcionario_id"`
	Employee   Employee `json:"funcionario"`

	StartDate       time.Time  `gorm:"not null" json:"data_inicio"`
	ExpectedEndDate time.Time  `gorm:"not null" json:"data_fim_prevista"`
	ActualEndDate   *time.Time `json:"data_fim_real"`

	// Valores em Kwanza
	DailyRate     decimal.Decimal  `gorm:"type:decimal(8,2);not null" json:"valor_diario"`
	ExpectedTotal decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"valor_total_previsto"`
	FinalTotal    *decimal.Decimal `gorm:"type:decimal(10,2)" json:"valor_total_final"`
	Deposit       decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0" json:"deposito_caucao"`

	MileageOut *uint `json:"quilometragem_inicial"`
	MileageIn  *uint `json:"quilometragem_final"`

	DeliveryNotes string `gorm:"type:text" json:"observacoes_entrega"`
	ReturnNotes   string `gorm:"type:text" json:"observacoes_devolucao"`

	Status    RentalStatus `gorm:"size:20;not null;default:ativo" json:"status"`
	CreatedAt time.Time    `gorm:"column:data_criacao" json:"data_criacao"`
	UpdatedAt time.Time    `json:"-"`

	Payments []RentalPayment `gorm:"constraint:OnDelete:CASCADE" json:"pagamentos,omitempty"`
}

func (Rental) TableName() string { return "alugueis" }

func (r *Rental) Validate() error {
	if r.ExpectedEndDate.Before(r.StartDate) {
		return NewFieldError("data_fim_prevista", "data de fim prevista não pode ser anterior à data de início")
	}
	if r.DailyRate.LessThanOrEqual(decimal.Zero) {
		return NewFieldError("valor_diario", "valor diário deve ser maior que zero")
	}
	if r.Deposit.IsNegative() {
		return NewFieldError("deposito_caucao", "depósito caução não pode ser negativo")
	}
	if !r.Status.Valid() {
		return NewFieldError("status", "status inválido")
	}
	if r.MileageOut != nil && r.MileageIn != nil && *r.MileageIn < *r.MileageOut {
		return NewFieldError("quilometragem_final", "quilometragem final não pode ser menor que a inicial")
	}
	return nil
}

// ExpectedDays: número de diárias previstas (mínimo 1)
func (r *Rental) ExpectedDays() int {
	days := int(r.ExpectedEndDate.Sub(r.StartDate).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// RentalPayment: pagamento de aluguel, registro append-only
type RentalPayment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RentalID uint   `gorm:"index;not null" json:"aluguel_id"`

	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"valor"`
	PaymentKind   string          `gorm:"size:50" json:"tipo_pagamento"`   // Diário, Semanal, Total...
	PaymentMethod string          `gorm:"size:100" json:"forma_pagamento"` // Dinheiro, Transferência...
	Notes         string          `gorm:"type:text" json:"observacoes"`

	CreatedAt time.Time `gorm:"column:data_pagamento" json:"data_pagamento"`
}

func (RentalPayment) TableName() string { return "pagamentos_aluguel" }
