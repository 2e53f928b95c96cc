package models

import "time"

type MovementType string

const (
	MovementEntry        MovementType = "entrada"
	MovementSaleExit     MovementType = "saida_venda"
	MovementRentalExit   MovementType = "saida_aluguel"
	MovementRentalReturn MovementType = "retorno_aluguel"
	MovementTransfer     MovementType = "transferencia"
	MovementWriteOff     MovementType = "baixa"
)

var movementTypeLabels = map[MovementType]string{
	MovementEntry:        "Entrada",
	MovementSaleExit:     "Saída - Venda",
	MovementRentalExit:   "Saída - Aluguel",
	MovementRentalReturn: "Retorno - Aluguel",
	MovementTransfer:     "Transferência",
	MovementWriteOff:     "Baixa",
}

func (m MovementType) Valid() bool { _, ok := movementTypeLabels[m]; return ok }
func (m MovementType) Label() string {
	if l, ok := movementTypeLabels[m]; ok {
		return l
	}
	return string(m)
}

// StockMovement: trilha append-only de eventos de estoque. Nunca é
// atualizada nem removida pela aplicação.
type StockMovement struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	VehicleID  uint         `gorm:"index;not null" json:"carro_id"`
	Vehicle    Vehicle      `json:"-"`
	Type       MovementType `gorm:"size:20;not null" json:"tipo_movimentacao"`
	EmployeeID uint         `gorm:"index;not null" json:"funcionario_id"`
	Employee   Employee     `json:"-"`

	Notes string `gorm:"type:text" json:"observacoes"`

	// Documentos relacionados, quando o movimento nasce de uma venda/aluguel
	SaleID   *uint `json:"venda_id"`
	RentalID *uint `json:"aluguel_id"`

	CreatedAt time.Time `gorm:"column:data_movimentacao" json:"data_movimentacao"`
}

func (StockMovement) TableName() string { return "movimentacoes_estoque" }

// StatusHistory: histórico de mudanças de disponibilidade do carro,
// gravado sempre que um flag muda de valor.
type StatusHistory struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	VehicleID  uint     `gorm:"index;not null" json:"carro_id"`
	Vehicle    Vehicle  `json:"-"`
	EmployeeID uint     `gorm:"index;not null" json:"funcionario_id"`
	Employee   Employee `json:"-"`

	PreviousStatus string `gorm:"size:50" json:"status_anterior"`
	NewStatus      string `gorm:"size:50" json:"status_novo"`
	Reason         string `gorm:"type:text" json:"motivo"`

	CreatedAt time.Time `gorm:"column:data_alteracao" json:"data_alteracao"`
}

func (StatusHistory) TableName() string { return "historico_status_carros" }
