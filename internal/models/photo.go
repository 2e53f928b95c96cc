package models

import "time"

// VehiclePhoto: foto de um veículo. Invariante mantida pelo pacote photos:
// no máximo uma foto principal por carro; havendo fotos, exatamente uma.
type VehiclePhoto struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	VehicleID uint   `gorm:"index;not null" json:"carro_id"`
	FilePath  string `gorm:"size:255;not null" json:"arquivo"`

	Description string `gorm:"size:200" json:"descricao"`
	Order       int    `gorm:"column:ordem;not null;default:1" json:"ordem"`
	IsPrimary   bool   `gorm:"not null;default:false" json:"foto_principal"`

	CreatedAt time.Time `gorm:"column:data_upload" json:"data_upload"`
}

func (VehiclePhoto) TableName() string { return "fotos_carro" }
