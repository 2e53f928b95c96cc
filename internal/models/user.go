package models

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleManager  UserRole = "gerente"
	RoleEmployee UserRole = "funcionario"
	RoleClient   UserRole = "cliente"
)

var userRoleLabels = map[UserRole]string{
	RoleAdmin:    "Administrador",
	RoleManager:  "Gerente",
	RoleEmployee: "Funcionário",
	RoleClient:   "Cliente",
}

func (r UserRole) Valid() bool { _, ok := userRoleLabels[r]; return ok }
func (r UserRole) Label() string {
	if l, ok := userRoleLabels[r]; ok {
		return l
	}
	return string(r)
}

// User: conta de acesso ao sistema. Cliente e Funcionario podem existir
// sem conta ligada (cadastro apenas administrativo).
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:200;not null" json:"nome"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         UserRole  `gorm:"size:20;not null;default:cliente" json:"tipo_usuario"`
	Phone        string    `gorm:"size:20" json:"telefone"`
	Active       bool      `gorm:"not null;default:true" json:"ativo"`
	CreatedAt    time.Time `json:"data_cadastro"`
	UpdatedAt    time.Time `json:"-"`
}

func (User) TableName() string { return "usuarios" }
