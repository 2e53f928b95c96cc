package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type VehicleCondition string

const (
	ConditionNew  VehicleCondition = "novo"
	ConditionUsed VehicleCondition = "usado"
)

var conditionLabels = map[VehicleCondition]string{
	ConditionNew:  "Novo",
	ConditionUsed: "Usado",
}

func (c VehicleCondition) Valid() bool { _, ok := conditionLabels[c]; return ok }
func (c VehicleCondition) Label() string {
	if l, ok := conditionLabels[c]; ok {
		return l
	}
	return string(c)
}

type FuelType string

const (
	FuelGasoline FuelType = "gasolina"
	FuelEthanol  FuelType = "etanol"
	FuelFlex     FuelType = "flex"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "eletrico"
	FuelHybrid   FuelType = "hibrido"
)

var fuelLabels = map[FuelType]string{
	FuelGasoline: "Gasolina",
	FuelEthanol:  "Etanol",
	FuelFlex:     "Flex",
	FuelDiesel:   "Diesel",
	FuelElectric: "Elétrico",
	FuelHybrid:   "Híbrido",
}

func (f FuelType) Valid() bool { _, ok := fuelLabels[f]; return ok }
func (f FuelType) Label() string {
	if l, ok := fuelLabels[f]; ok {
		return l
	}
	return string(f)
}

type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatico"
	TransmissionCVT       Transmission = "cvt"
	TransmissionAutomated Transmission = "automatizado"
)

var transmissionLabels = map[Transmission]string{
	TransmissionManual:    "Manual",
	TransmissionAutomatic: "Automático",
	TransmissionCVT:       "CVT",
	TransmissionAutomated: "Automatizado",
}

func (t Transmission) Valid() bool { _, ok := transmissionLabels[t]; return ok }
func (t Transmission) Label() string {
	if l, ok := transmissionLabels[t]; ok {
		return l
	}
	return string(t)
}

// Vehicle: entidade central do sistema. Os dois flags de disponibilidade
// são independentes (canal de venda e canal de aluguel) e mantidos pelo
// pacote stock em conjunto com os registos de venda/aluguel.
type Vehicle struct {
	ID      uint         `gorm:"primaryKey" json:"id"`
	ModelID uint         `gorm:"index;not null" json:"modelo_id"`
	Model   VehicleModel `json:"modelo"`
	ColorID uint         `gorm:"index;not null" json:"cor_id"`
	Color   Color        `json:"cor"`
	Options []OptionItem `gorm:"many2many:carro_opcionais" json:"opcionais,omitempty"`

	YearBuilt int              `gorm:"not null" json:"ano_fabricacao"`
	YearModel int              `gorm:"not null" json:"ano_modelo"`
	Condition VehicleCondition `gorm:"size:10;not null" json:"condicao"`

	// Preços em Kwanza; nulos quando o veículo não está nesse canal
	SalePrice       *decimal.Decimal `gorm:"type:decimal(12,2)" json:"preco_venda"`
	DailyRentalRate *decimal.Decimal `gorm:"type:decimal(8,2)" json:"preco_aluguel_diario"`

	Mileage      uint         `gorm:"not null;default:0" json:"quilometragem"`
	Fuel         FuelType     `gorm:"size:20;not null" json:"combustivel"`
	Transmission Transmission `gorm:"size:20;not null" json:"transmissao"`
	Engine       string       `gorm:"size:20" json:"motor"` // ex: 1.0, 1.6, 2.0
	Doors        *int         `json:"numero_portas"`

	// Documentação: únicos quando presentes, por isso ponteiros
	Chassis        *string `gorm:"size:17;uniqueIndex" json:"chassi"`
	Plate          *string `gorm:"size:15;uniqueIndex" json:"matricula"`
	UniqueDocument string  `gorm:"size:20" json:"documento_unico"`

	AvailableForSale   bool `gorm:"not null;default:true" json:"disponivel_venda"`
	AvailableForRental bool `gorm:"not null;default:true" json:"disponivel_aluguel"`

	Description string `gorm:"type:text" json:"descricao"`
	Notes       string `gorm:"type:text" json:"observacoes"` // uso interno

	CreatedAt time.Time `json:"data_entrada"`
	UpdatedAt time.Time `json:"data_atualizacao"`

	Photos []VehiclePhoto `gorm:"constraint:OnDelete:CASCADE" json:"fotos,omitempty"`
}

func (Vehicle) TableName() string { return "carros" }

// Validate verifica as restrições de campo antes de gravar. Retorna
// *FieldError com o nome do campo ofensor.
func (v *Vehicle) Validate() error {
	currentYear := time.Now().Year()

	if v.YearBuilt < 1900 || v.YearBuilt > currentYear+1 {
		return NewFieldError("ano_fabricacao", "ano de fabricação fora do intervalo permitido")
	}
	if v.YearModel < 1900 || v.YearModel > currentYear+2 {
		return NewFieldError("ano_modelo", "ano do modelo fora do intervalo permitido")
	}
	if v.YearBuilt > v.YearModel {
		return NewFieldError("ano_fabricacao", "ano de fabricação não pode ser maior que o ano do modelo")
	}
	if !v.Condition.Valid() {
		return NewFieldError("condicao", "condição inválida")
	}
	if !v.Fuel.Valid() {
		return NewFieldError("combustivel", "combustível inválido")
	}
	if !v.Transmission.Valid() {
		return NewFieldError("transmissao", "transmissão inválida")
	}
	if v.Doors != nil && (*v.Doors < 2 || *v.Doors > 5) {
		return NewFieldError("numero_portas", "número de portas deve estar entre 2 e 5")
	}
	if v.Chassis != nil && len(*v.Chassis) != 17 {
		return NewFieldError("chassi", "chassi deve ter exatamente 17 caracteres")
	}
	if v.SalePrice != nil && v.SalePrice.IsNegative() {
		return NewFieldError("preco_venda", "preço de venda não pode ser negativo")
	}
	if v.DailyRentalRate != nil && v.DailyRentalRate.IsNegative() {
		return NewFieldError("preco_aluguel_diario", "preço de aluguel não pode ser negativo")
	}
	return nil
}

// FullName: "Toyota Corolla 2022", usado em respostas e no histórico
func (v *Vehicle) FullName() string {
	name := v.Model.Brand.Name + " " + v.Model.Name
	if v.YearModel > 0 {
		return name + " " + strconv.Itoa(v.YearModel)
	}
	return name
}
