package authservice_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"catadopt/internal/domain"
	apperror "catadopt/internal/errors"
	"catadopt/internal/pkg/logger"
	"catadopt/internal/pkg/token"
	"catadopt/internal/service/authservice"
)

// MockUserRepository é uma implementação mock da interface UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

// MockTokenService é uma implementação mock do serviço de JWT
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken(userID int64, roles []string) (string, error) {
	args := m.Called(userID, roles)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ValidateToken(tokenString string) (*token.CustomClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.CustomClaims), args.Error(1)
}

func newService(repo *MockUserRepository) *authservice.AuthService {
	return authservice.NewService(repo, new(MockTokenService), logger.NewLogger("error"))
}

func validRegistration() domain.UserRegistration {
	return domain.UserRegistration{
		Name:     "John",
		Lastname: "Doe",
		Email:    "john.doe@example.com",
		Password: "Abc123!@",
	}
}

// emailNotRegistered configura o mock para a checagem de unicidade passar.
func emailNotRegistered(mockRepo *MockUserRepository) {
	mockRepo.On("FindByEmail", mock.Anything, mock.AnythingOfType("string")).
		Return(domain.User{}, apperror.NewNotFoundError("User not found"))
}

// TestRegister_MissingFields verifica que cada campo obrigatório ausente
// rejeita o registro de forma independente, com 400 nomeando o campo.
func TestRegister_MissingFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(r *domain.UserRegistration)
	}{
		{"name", func(r *domain.UserRegistration) { r.Name = "" }},
		{"lastname", func(r *domain.UserRegistration) { r.Lastname = "" }},
		{"email", func(r *domain.UserRegistration) { r.Email = "" }},
		{"password", func(r *domain.UserRegistration) { r.Password = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			svc := newService(mockRepo)

			reg := validRegistration()
			tc.mutate(&reg)

			_, err := svc.Register(context.Background(), reg)

			assert.Error(t, err)
			status, _, message := apperror.MapToHTTPStatus(err)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Contains(t, message, tc.field)
			mockRepo.AssertNotCalled(t, "Save")
		})
	}
}

// TestRegister_RejectsDigitsInName verifica a regra de letras, espaços e hífens.
func TestRegister_RejectsDigitsInName(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	reg := validRegistration()
	reg.Name = "John3"

	_, err := svc.Register(context.Background(), reg)

	assert.Error(t, err)
	status, _, message := apperror.MapToHTTPStatus(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, message, "letters, spaces, or hyphens")
	mockRepo.AssertNotCalled(t, "Save")
}

// TestRegister_NormalizesName verifica trim + lower-case na saída persistida.
func TestRegister_NormalizesName(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	emailNotRegistered(mockRepo)

	var saved domain.User
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).
		Return(domain.User{Name: "john doe", Lastname: "doe", Email: "john.doe@example.com"}, nil)

	reg := validRegistration()
	reg.Name = "  John Doe "

	summary, err := svc.Register(context.Background(), reg)

	assert.NoError(t, err)
	assert.Equal(t, "john doe", saved.Name)
	assert.Equal(t, "john doe", summary.Name)
	mockRepo.AssertExpectations(t)
}

// TestRegister_PasswordPolicy cobre a política de senha sobre o valor bruto.
func TestRegister_PasswordPolicy(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"sem maiúscula nem especial", "abc12345", false},
		{"curta demais", "Ab1!", false},
		{"sem dígito", "Abcdefg!", false},
		{"válida", "Abc123!@", true},
		{"underscore conta como especial", "Abc12345_", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			svc := newService(mockRepo)

			emailNotRegistered(mockRepo)
			if tc.wantOK {
				mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.User")).
					Return(domain.User{Email: "john.doe@example.com"}, nil)
			}

			reg := validRegistration()
			reg.Password = tc.password

			_, err := svc.Register(context.Background(), reg)

			if tc.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				status, _, _ := apperror.MapToHTTPStatus(err)
				assert.Equal(t, http.StatusBadRequest, status)
				mockRepo.AssertNotCalled(t, "Save")
			}
		})
	}
}

// TestRegister_DuplicateEmail verifica o 409 quando o email já existe.
func TestRegister_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	mockRepo.On("FindByEmail", mock.Anything, "john.doe@example.com").
		Return(domain.User{ID: 7, Email: "john.doe@example.com"}, nil)

	_, err := svc.Register(context.Background(), validRegistration())

	assert.Error(t, err)
	status, _, _ := apperror.MapToHTTPStatus(err)
	assert.Equal(t, http.StatusConflict, status)
	mockRepo.AssertNotCalled(t, "Save")
}

// TestRegister_HashesPassword verifica que a senha nunca é persistida em texto puro,
// que o hash é verificável via bcrypt e que a role padrão é ROLE_USER.
func TestRegister_HashesPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	emailNotRegistered(mockRepo)

	var saved domain.User
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).
		Return(domain.User{Email: "john.doe@example.com"}, nil)

	_, err := svc.Register(context.Background(), validRegistration())

	assert.NoError(t, err)
	assert.NotEqual(t, "Abc123!@", saved.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("Abc123!@")))
	assert.Equal(t, []string{domain.RoleUser}, saved.Roles)
}

// TestLogin_WrongPassword verifica que senha incorreta vira 401.
func TestLogin_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("Abc123!@"), bcrypt.DefaultCost)
	mockRepo.On("FindByEmail", mock.Anything, "john.doe@example.com").
		Return(domain.User{ID: 1, Email: "john.doe@example.com", PasswordHash: string(hash), Roles: []string{domain.RoleUser}}, nil)

	_, err := svc.Login(context.Background(), "john.doe@example.com", "wrong")

	assert.Error(t, err)
	status, _, _ := apperror.MapToHTTPStatus(err)
	assert.Equal(t, http.StatusUnauthorized, status)
}

// TestLogin_UnknownEmailIsUnauthorized verifica que email inexistente também
// responde 401, sem revelar quais emails existem.
func TestLogin_UnknownEmailIsUnauthorized(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	mockRepo.On("FindByEmail", mock.Anything, "ghost@example.com").
		Return(domain.User{}, apperror.NewNotFoundError("User not found"))

	_, err := svc.Login(context.Background(), "ghost@example.com", "Abc123!@")

	assert.Error(t, err)
	status, _, _ := apperror.MapToHTTPStatus(err)
	assert.Equal(t, http.StatusUnauthorized, status)
}

// TestLogin_Success verifica a emissão do token com as roles do usuário.
func TestLogin_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockToken := new(MockTokenService)
	svc := authservice.NewService(mockRepo, mockToken, logger.NewLogger("error"))

	hash, _ := bcrypt.GenerateFromPassword([]byte("Admin_password123"), bcrypt.DefaultCost)
	mockRepo.On("FindByEmail", mock.Anything, "marion.bailleux@example.com").
		Return(domain.User{ID: 3, Email: "marion.bailleux@example.com", PasswordHash: string(hash), Roles: []string{domain.RoleAdmin}}, nil)
	mockToken.On("GenerateToken", int64(3), []string{domain.RoleAdmin}).Return("signed-token", nil)

	tokenString, err := svc.Login(context.Background(), "marion.bailleux@example.com", "Admin_password123")

	assert.NoError(t, err)
	assert.Equal(t, "signed-token", tokenString)
	mockToken.AssertExpectations(t)
}
