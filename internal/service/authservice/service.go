package authservice

import (
	"context"
	"errors"
	"html"
	"net/mail"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"catadopt/internal/domain"
	apperror "catadopt/internal/errors"
	"catadopt/internal/pkg/logger"
	"catadopt/internal/pkg/token"
)

// namePattern: apenas letras, espaços e hífens. Aplicado após o escape de HTML,
// então qualquer caractere neutralizado pelo escape também reprova.
var namePattern = regexp.MustCompile(`^[a-zA-Z\s\-]+$`)

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID int64, roles []string) (string, error)
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// AuthService define o serviço de lógica de negócio para registro e login.
type AuthService struct {
	UserRepo domain.UserRepository
	TokenSvc TokenService
	Logger   logger.Logger
}

// NewService cria uma nova instância do AuthService, injetando o Repositório.
func NewService(repo domain.UserRepository, tokenSvc TokenService, log logger.Logger) *AuthService {
	return &AuthService{
		UserRepo: repo,
		TokenSvc: tokenSvc,
		Logger:   log,
	}
}

// Register registra um novo usuário. Todas as checagens são síncronas e a primeira
// falha encerra a requisição; nenhuma escrita acontece antes de todas as validações
// (as leituras precedem o único INSERT).
func (s *AuthService) Register(ctx context.Context, registration domain.UserRegistration) (domain.UserSummary, error) {
	// 1. Campos obrigatórios, na ordem declarada
	required := []struct {
		name  string
		value string
	}{
		{"name", registration.Name},
		{"lastname", registration.Lastname},
		{"email", registration.Email},
		{"password", registration.Password},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return domain.UserSummary{}, apperror.NewValidationError("Field '" + field.name + "' is required")
		}
	}

	// 2. Normalização: trim, lower-case e escape de HTML para nome e sobrenome;
	// o email é apenas trimado e escapado. A senha nunca é normalizada.
	name := html.EscapeString(strings.ToLower(strings.TrimSpace(registration.Name)))
	lastname := html.EscapeString(strings.ToLower(strings.TrimSpace(registration.Lastname)))
	email := html.EscapeString(strings.TrimSpace(registration.Email))

	// 3. Nome e sobrenome: apenas letras, espaços e hífens
	if !namePattern.MatchString(name) || !namePattern.MatchString(lastname) {
		return domain.UserSummary{}, apperror.NewValidationError("Name and lastname must only contain letters, spaces, or hyphens")
	}

	// 4. Formato do email
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return domain.UserSummary{}, apperror.NewValidationError("Invalid email format")
	}

	// 5. Unicidade do email (checagem amigável; a garantia real é a constraint UNIQUE,
	// que o repositório traduz para o mesmo Conflict se esta checagem perder a corrida)
	_, err := s.UserRepo.FindByEmail(ctx, email)
	if err == nil {
		return domain.UserSummary{}, apperror.NewConflictError("Email already registered")
	}
	var notFoundErr *apperror.NotFoundError
	if !errors.As(err, &notFoundErr) {
		return domain.UserSummary{}, err
	}

	// 6. Política de senha, sobre o valor bruto
	if !isPasswordStrong(registration.Password) {
		return domain.UserSummary{}, apperror.NewValidationError(
			"Password must be at least 8 characters long and include at least one uppercase letter, one number, and one special character")
	}

	// 7. Hashing da senha. O bcrypt gera um salt por usuário, então senhas idênticas
	// de usuários diferentes produzem hashes distintos.
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserSummary{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	// 8. Criação e persistência: todo registro nasce com ROLE_USER
	newUser := domain.User{
		Name:         name,
		Lastname:     lastname,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Roles:        []string{domain.RoleUser},
	}

	saved, err := s.UserRepo.Save(ctx, newUser)
	if err != nil {
		return domain.UserSummary{}, err
	}

	s.Logger.Info("Novo usuário registrado.", map[string]interface{}{"user_id": saved.ID, "email": saved.Email})

	// O resumo nunca carrega o hash
	return domain.UserSummary{
		Name:     saved.Name,
		Lastname: saved.Lastname,
		Email:    saved.Email,
	}, nil
}

// isPasswordStrong valida a política: mínimo de 8 caracteres, pelo menos uma
// letra maiúscula, um dígito e um caractere não alfanumérico.
func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r):
			hasSpecial = true
		}
	}

	return hasUpper && hasDigit && hasSpecial
}

// Login autentica um usuário, verifica a senha e gera um JWT com as roles.
func (s *AuthService) Login(ctx context.Context, email string, password string) (string, error) {
	// 1. Validação básica
	if email == "" || password == "" {
		return "", apperror.NewValidationError("Email and password are required")
	}

	// 2. Buscar usuário pelo email
	user, err := s.UserRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		// NotFound vira Unauthorized para não revelar quais emails existem
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return "", apperror.NewUnauthorizedError("Invalid credentials")
		}
		return "", err
	}

	// 3. Comparar a senha informada com o hash salvo
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperror.NewUnauthorizedError("Invalid credentials")
	}

	// 4. Gerar o JWT com as roles do usuário
	tokenString, err := s.TokenSvc.GenerateToken(user.ID, user.Roles)
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	return tokenString, nil
}
