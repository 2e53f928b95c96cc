package models

import (
	"regexp"
	"time"
)

type ModelCategory string

const (
	CategorySedan       ModelCategory = "sedan"
	CategoryHatch       ModelCategory = "hatch"
	CategorySUV         ModelCategory = "suv"
	CategoryPickup      ModelCategory = "pickup"
	CategoryCoupe       ModelCategory = "coupe"
	CategoryConvertible ModelCategory = "conversivel"
	CategoryMinivan     ModelCategory = "minivan"
	CategoryOther       ModelCategory = "outro"
)

var modelCategoryLabels = map[ModelCategory]string{
	CategorySedan:       "Sedan",
	CategoryHatch:       "Hatch",
	CategorySUV:         "SUV",
	CategoryPickup:      "Pickup",
	CategoryCoupe:       "Coupé",
	CategoryConvertible: "Conversível",
	CategoryMinivan:     "Minivan",
	CategoryOther:       "Outro",
}

func (c ModelCategory) Valid() bool {
	_, ok := modelCategoryLabels[c]
	return ok
}

func (c ModelCategory) Label() string {
	if l, ok := modelCategoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Brand: marca de veículo
type Brand struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:100;not null;unique" json:"nome"`
	CountryOrigin string `gorm:"size:50" json:"pais_origem"` // opcional
	Active        bool   `gorm:"not null;default:true" json:"ativo"`
	CreatedAt     time.Time `json:"data_criacao"`

	Models []VehicleModel `json:"-"`
}

func (Brand) TableName() string { return "marcas" }

// VehicleModel: modelo de veículo, único por marca+nome
type VehicleModel struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	BrandID   uint          `gorm:"index;not null;uniqueIndex:idx_marca_nome" json:"marca_id"`
	Brand     Brand         `json:"marca"`
	Name      string        `gorm:"size:100;not null;uniqueIndex:idx_marca_nome" json:"nome"`
	Category  ModelCategory `gorm:"size:20;not null" json:"categoria"`
	Active    bool          `gorm:"not null;default:true" json:"ativo"`
	CreatedAt time.Time     `json:"data_criacao"`
}

func (VehicleModel) TableName() string { return "modelos" }

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Color: cor de veículo
type Color struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:50;not null;unique" json:"nome"`
	HexCode string `gorm:"size:7" json:"codigo_hex"` // formato #RRGGBB, opcional
	Active  bool   `gorm:"not null;default:true" json:"ativo"`
}

func (Color) TableName() string { return "cores" }

func (c *Color) Validate() error {
	if c.HexCode != "" && !hexColorRe.MatchString(c.HexCode) {
		return NewFieldError("codigo_hex", "formato inválido, use #RRGGBB")
	}
	return nil
}

// OptionItem: opcional/equipamento (ex: ar condicionado, teto solar)
type OptionItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null;unique" json:"nome"`
	Category    string `gorm:"size:50" json:"categoria"` // Segurança, Conforto, Tecnologia...
	Description string `gorm:"type:text" json:"descricao"`
	Active      bool   `gorm:"not null;default:true" json:"ativo"`
}

func (OptionItem) TableName() string { return "opcionais" }
