package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PersonType string

const (
	PersonPhysical PersonType = "fisica"
	PersonLegal    PersonType = "juridica"
)

var personTypeLabels = map[PersonType]string{
	PersonPhysical: "Pessoa Física",
	PersonLegal:    "Pessoa Jurídica",
}

func (p PersonType) Valid() bool { _, ok := personTypeLabels[p]; return ok }
func (p PersonType) Label() string {
	if l, ok := personTypeLabels[p]; ok {
		return l
	}
	return string(p)
}

// Client: cliente da concessionária (comprador ou locatário)
type Client struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `gorm:"uniqueIndex" json:"usuario_id"` // conta de acesso opcional
	User   *User `json:"-"`

	PersonType PersonType `gorm:"size:10;not null;default:fisica" json:"tipo_pessoa"`
	Name       string     `gorm:"size:200;not null" json:"nome"` // nome ou razão social

	// Bilhete de Identidade: único quando presente
	NationalID *string    `gorm:"size:20;uniqueIndex" json:"bilhete_identidade"`
	BirthDate  *time.Time `json:"data_nascimento"`

	Phone      string `gorm:"size:20" json:"telefone"`
	Mobile     string `gorm:"size:20" json:"celular"`
	Email      string `gorm:"size:100" json:"email"`
	Address    string `gorm:"type:text" json:"endereco"`
	Profession string `gorm:"size:100" json:"profissao"`

	Notes  string `gorm:"type:text" json:"observacoes"`
	Active bool   `gorm:"not null;default:true" json:"ativo"`

	CreatedAt time.Time `json:"data_cadastro"`
	UpdatedAt time.Time `json:"data_atualizacao"`
}

func (Client) TableName() string { return "clientes" }

// Employee: funcionário; a comissão incide sobre vendas finalizadas
type Employee struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `gorm:"uniqueIndex" json:"usuario_id"`
	User   *User `json:"-"`

	Name       string  `gorm:"size:200;not null" json:"nome"`
	NationalID *string `gorm:"size:20;uniqueIndex" json:"bilhete_identidade"`
	Position   string  `gorm:"size:100" json:"cargo"`

	Phone string `gorm:"size:20" json:"telefone"`
	Email string `gorm:"size:100" json:"email"`

	// Percentual 0-100
	SaleCommission decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"comissao_venda"`

	HireDate  *time.Time `json:"data_admissao"`
	Active    bool       `gorm:"not null;default:true" json:"ativo"`
	CreatedAt time.Time  `json:"data_cadastro"`
	UpdatedAt time.Time  `json:"-"`
}

func (Employee) TableName() string { return "funcionarios" }

func (e *Employee) Validate() error {
	if e.SaleCommission.IsNegative() || e.SaleCommission.GreaterThan(decimal.NewFromInt(100)) {
		return NewFieldError("comissao_venda", "comissão deve estar entre 0 e 100")
	}
	return nil
}
