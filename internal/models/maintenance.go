package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "preventiva"
	MaintenanceCorrective MaintenanceType = "corretiva"
	MaintenanceRevision   MaintenanceType = "revisao"
)

var maintenanceTypeLabels = map[MaintenanceType]string{
	MaintenancePreventive: "Preventiva",
	MaintenanceCorrective: "Corretiva",
	MaintenanceRevision:   "Revisão",
}

func (m MaintenanceType) Valid() bool { _, ok := maintenanceTypeLabels[m]; return ok }
func (m MaintenanceType) Label() string {
	if l, ok := maintenanceTypeLabels[m]; ok {
		return l
	}
	return string(m)
}

// Maintenance: manutenção realizada num veículo
type Maintenance struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	VehicleID uint            `gorm:"index;not null" json:"carro_id"`
	Vehicle   Vehicle         `json:"-"`
	Type      MaintenanceType `gorm:"size:20;not null" json:"tipo_manutencao"`

	Description string           `gorm:"type:text;not null" json:"descricao"`
	Cost        *decimal.Decimal `gorm:"type:decimal(10,2)" json:"valor"` // Kz
	Mileage     *uint            `json:"quilometragem"`
	Workshop    string           `gorm:"size:200" json:"oficina"`

	Date      time.Time `gorm:"column:data_manutencao;not null" json:"data_manutencao"`
	CreatedAt time.Time `gorm:"column:data_cadastro" json:"data_cadastro"`
}

func (Maintenance) TableName() string { return "manutencoes" }

func (m *Maintenance) Validate() error {
	if !m.Type.Valid() {
		return NewFieldError("tipo_manutencao", "tipo de manutenção inválido")
	}
	if m.Description == "" {
		return NewFieldError("descricao", "descrição é obrigatória")
	}
	if m.Cost != nil && m.Cost.IsNegative() {
		return NewFieldError("valor", "valor não pode ser negativo")
	}
	return nil
}
