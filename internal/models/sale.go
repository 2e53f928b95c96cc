package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentType string

const (
	PaymentCash      PaymentType = "a_vista"
	PaymentFinanced  PaymentType = "financiado"
	PaymentMixed     PaymentType = "misto"
)

var paymentTypeLabels = map[PaymentType]string{
	PaymentCash:     "À Vista",
	PaymentFinanced: "Financiado",
	PaymentMixed:    "Misto",
}

func (p PaymentType) Valid() bool { _, ok := paymentTypeLabels[p]; return ok }
func (p PaymentType) Label() string {
	if l, ok := paymentTypeLabels[p]; ok {
		return l
	}
	return string(p)
}

type SaleStatus string

const (
	SalePending   SaleStatus = "pendente"
	SaleFinalized SaleStatus = "finalizada"
	SaleCancelled SaleStatus = "cancelada"
)

var saleStatusLabels = map[SaleStatus]string{
	SalePending:   "Pendente",
	SaleFinalized: "Finalizada",
	SaleCancelled: "Cancelada",
}

func (s SaleStatus) Valid() bool { _, ok := saleStatusLabels[s]; return ok }
func (s SaleStatus) Label() string {
	if l, ok := saleStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Terminal informa se o status encerra o ciclo de vida da venda.
func (s SaleStatus) Terminal() bool {
	return s == SaleFinalized || s == SaleCancelled
}

// Sale: venda de um veículo. Toda gravação passa pela regra de
// disponibilidade (pacote stock) dentro da mesma transação.
type Sale struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	VehicleID  uint     `gorm:"index;not null" json:"carro_id"`
	Vehicle    Vehicle  `json:"carro"`
	ClientID   uint     `gorm:"index;not null" json:"cliente_id"`
	Client     Client   `json:"cliente"`
	EmployeeID uint     `gorm:"index;not null" json:"funcionario_id"`
	Employee   Employee `json:"funcionario"`

	// Valores em Kwanza
	SaleValue      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"valor_venda"`
	DownPayment    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"valor_entrada"`
	FinancedAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"valor_financiado"`

	PaymentType   PaymentType `gorm:"size:20;not null" json:"tipo_pagamento"`
	PaymentMethod string      `gorm:"size:100" json:"forma_pagamento"` // Dinheiro, Transferência, Cartão...
	FinancingBank string      `gorm:"size:100" json:"banco_financiamento"`
	Installments  *int        `json:"numero_parcelas"`

	Notes  string     `gorm:"type:text" json:"observacoes"`
	Status SaleStatus `gorm:"size:20;not null;default:pendente" json:"status"`

	CreatedAt time.Time `gorm:"column:data_venda" json:"data_venda"`
	UpdatedAt time.Time `json:"-"`

	Documents []SaleDocument `gorm:"constraint:OnDelete:CASCADE" json:"documentos,omitempty"`
}

func (Sale) TableName() string { return "vendas" }

func (s *Sale) Validate() error {
	if s.SaleValue.LessThanOrEqual(decimal.Zero) {
		return NewFieldError("valor_venda", "valor da venda deve ser maior que zero")
	}
	if s.DownPayment.IsNegative() {
		return NewFieldError("valor_entrada", "valor de entrada não pode ser negativo")
	}
	if s.FinancedAmount.IsNegative() {
		return NewFieldError("valor_financiado", "valor financiado não pode ser negativo")
	}
	if !s.PaymentType.Valid() {
		return NewFieldError("tipo_pagamento", "tipo de pagamento inválido")
	}
	if !s.Status.Valid() {
		return NewFieldError("status", "status inválido")
	}
	if s.Installments != nil && *s.Installments < 1 {
		return NewFieldError("numero_parcelas", "número de parcelas deve ser positivo")
	}
	return nil
}

// SaleDocument: documento anexado à venda (contrato, fatura...)
type SaleDocument struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	SaleID       uint   `gorm:"index;not null" json:"venda_id"`
	DocumentType string `gorm:"size:100;not null" json:"tipo_documento"`
	FilePath     string `gorm:"size:255;not null" json:"arquivo"`
	CreatedAt    time.Time `json:"data_upload"`
}

func (SaleDocument) TableName() string { return "documentos_venda" }
