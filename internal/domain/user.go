package domain

import (
	"context"
	"time"
)

// User representa a entidade do usuário (adotante ou administrador do abrigo).
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Lastname     string    `json:"lastname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Constantes para os papéis de usuário. Todo usuário registrado recebe RoleUser;
// RoleAdmin é atribuída apenas via fixtures ou manualmente no banco.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// HasRole informa se o usuário possui a role indicada.
func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSummary é o subconjunto de campos devolvido no corpo do 201 de registro.
// Nunca inclui o hash da senha.
type UserSummary struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
}

// UserRepository define o contrato de persistência para a entidade User.
type UserRepository interface {
	Save(ctx context.Context, user User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}

// UserService define o contrato de lógica de negócio para a entidade User.
type UserService interface {
	Register(ctx context.Context, registration UserRegistration) (UserSummary, error)
	Login(ctx context.Context, email string, password string) (string, error)
}
