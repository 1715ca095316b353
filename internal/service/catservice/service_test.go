package catservice_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"catadopt/internal/domain"
	apperror "catadopt/internal/errors"
	"catadopt/internal/pkg/logger"
	"catadopt/internal/service/catservice"
)

// MockCatRepository é uma implementação mock da interface CatRepository
type MockCatRepository struct {
	mock.Mock
}

func (m *MockCatRepository) FindAll(ctx context.Context) ([]domain.Cat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Cat), args.Error(1)
}

func (m *MockCatRepository) FindByID(ctx context.Context, id int64) (domain.Cat, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Cat), args.Error(1)
}

func (m *MockCatRepository) Save(ctx context.Context, cat domain.Cat) (domain.Cat, error) {
	args := m.Called(ctx, cat)
	return args.Get(0).(domain.Cat), args.Error(1)
}

func (m *MockCatRepository) Update(ctx context.Context, cat domain.Cat) (domain.Cat, error) {
	args := m.Called(ctx, cat)
	return args.Get(0).(domain.Cat), args.Error(1)
}

func (m *MockCatRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newService(repo *MockCatRepository) *catservice.CatService {
	return catservice.NewService(repo, logger.NewLogger("error"))
}

// validCreateBody devolve um corpo completo e válido de criação.
func validCreateBody() map[string]interface{} {
	return map[string]interface{}{
		"name":              "Rex",
		"short_description": "A friendly cat",
		"long_description":  "Very friendly indeed",
		"age":               "2 months",
		"is_vaccinated":     true,
		"img":               "rex.jpg",
	}
}

func patchOf(t *testing.T, fields map[string]string) domain.CatPatch {
	t.Helper()
	patch := domain.CatPatch{}
	for key, raw := range fields {
		patch[key] = json.RawMessage(raw)
	}
	return patch
}

// TestCreateCat_MissingExpectedField verifica o schema estrito: chave esperada
// ausente rejeita o corpo nomeando o campo.
func TestCreateCat_MissingExpectedField(t *testing.T) {
	mockRepo := new(MockCatRepository)
	svc := newService(mockRepo)

	body := validCreateBody()
	delete(body, "short_description")

	_, err := svc.CreateCat(context.Background(), body)

	assert.Error(t, err)
	status, _, message := apperror.MapToHTTPStatus(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Missing expected fields: short_description", message)
	mockRepo.AssertNotCalled(t, "Save")
}

// TestCreateCat_ExtraField verifica que qualquer chave fora do schema rejeita o corpo.
func TestCreateCat_ExtraField(t *testing.T) {
	mockRepo := new(MockCatRepository)
	svc := newService(mockRepo)

	body := validCreateBody()
	body["color"] = "black"

	_, err := svc.CreateCat(context.Background(), body)

	assert.Error(t, err)
	status, _, message := apperror.MapToHTTPStatus(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "More fields than expected", message)
	mockRepo.AssertNotCalled(t, "Save")
}

// TestCreateCat_EmptyRequiredField verifica que campo obrigatório só com
// espaços em branco é rejeitado.
func TestCreateCat_EmptyRequiredField(t *testing.T) {
	mockRepo := new(MockCatRepository)
	svc := newService(mockRepo)

	body := validCreateBody()
	body["short_description"] = "   "

	_, err := svc.CreateCat(context.Background(), body)

	assert.Error(t, err)
	status, _, message := apperror.MapToHTTPStatus(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Field short_description must not be empty", message)
	mockRepo.AssertNotCalled(t, "Save")
}

// TestCreateCat_EmptyBody verifica a mensagem para corpo vazio.
func TestCreateCat_EmptyBody(t *testing.T) {
	mockRepo := new(MockCatRepository)
	svc := newService(mockRepo)

	_, err := svc.CreateCat(context.Background(), map[string]interface{}{})

	assert.Error(t, err)
	_, _, message := apperror.MapToHTTPStatus(err)
	assert.Equal(t, "No data provided", message)
}

// TestCreateCat_EmptyOptionalBecomesNull verifica a normalização: string vazia
// em campo opcional é persistida como NULL, nunca como string vazia.
func TestCreateCat_EmptyOptionalBecomesNull(t *testing.T) {
	mockRepo := new(MockCatRepository)
	svc := newService(mockRepo)

	var saved domain.Cat
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.Cat")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Cat)
		}).
		Return(domain.Cat{ID: 1, Name: "Rex", ShortDescription: "A friendly cat"}, nil)

	body := validCreateBody()
	body["img"] = ""
	body["long_description"] = "  "

	cat, err := svc.CreateCat(context.Background(), body)

	assert.NoError(t, err)
	assert.Nil(t, saved.Img)
	assert.Nil(t, saved.LongDescription)
	assert.Nil(t, cat.Img)
	mockRepo.AssertExpectations(t)
}

// TestCreateCat_TrimsStrings verifica o trim de todas as strings antes da persistência.
func TestCreateCat_TrimsStrings(t *testing.T) {
	mockRepo := new(MockCatRepository)
	svc := newService(mockRepo)

	var saved domain.Cat
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.Cat")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Cat)
		}).
		Return(domain.Cat{ID: 1}, nil)

	body := validCreateBody()
	body["name"] = "  Rex  "
	body["age"] = " 2 months "

	_, err := svc.CreateCat(context.Background(), body)

	assert.NoError(t, err)
	assert.Equal(t, "Rex", saved.Name)
	if assert.NotNil(t, saved.Age) {
		assert.Equal(t, "2 months", *saved.Age)
	}
}

// TestCreateCat_NumericAge verifica que age numérico é aceito e armazenado
// na forma decimal em texto.
func TestCreateCat_NumericAge(t *testing.T) {
	mockRepo := new(MockCatRepository)
	svc := newService(mockRepo)

	var saved domain.Cat
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.Cat")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Cat)
		}).
		Return(domain.Cat{ID: 1}, nil)

	body := validCreateBody()
	body["age"] = float64(3) // como o encoding/json decodifica números JSON

	_, err := svc.CreateCat(context.Background(), body)

	assert.NoError(t, err)
	if assert.NotNil(t, saved.Age) {
		assert.Equal(t, "3", *saved.Age)
	}
}

// TestGetCatByID_NotFound verifica a propagação do 404.
func TestGetCatByID_NotFound(t *testing.T) {
	mockRepo := new(MockCatRepository)
	svc := newService(mockRepo)

	mockRepo.On("FindByID", mock.Anything, int64(99)).
		Return(domain.Cat{}, apperror.NewNotFoundError("Cat not found"))

	_, err := svc.GetCatByID(context.Background(), 99)

	assert.Error(t, err)
	status, _, _ := apperror.MapToHTTPStatus(err)
	assert.Equal(t, http.StatusNotFound, status)
}

// TestListCats verifica o repasse da listagem na ordem do banco.
func TestListCats(t *testing.T) {
	mockRepo := new(MockCatRepository)
	svc := newService(mockRepo)

	expected := []domain.Cat{
		{ID: 1, Name: "Minty", ShortDescription: "Little princess", CreatedAt: time.Now()},
		{ID: 2, Name: "Mikasa", ShortDescription: "Energetic and fun"},
	}
	mockRepo.On("FindAll", mock.Anything).Return(expected, nil)

	cats, err := svc.ListCats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expected, cats)
}

// TestUpdateCat_UnknownKeyIgnored verifica que chaves fora da tabela de dispatch
// são ignoradas silenciosamente e o restante da atualização prossegue.
func TestUpdateCat_UnknownKeyIgnored(t *testing.T) {
	mockRepo := new(MockCatRepository)
	svc := newService(mockRepo)

	current := domain.Cat{ID: 5, Name: "Tommy", ShortDescription: "Great little pet", IsVaccinated: true}
	mockRepo.On("FindByID", mock.Anything, int64(5)).Return(current, nil)

	var updated domain.Cat
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("domain.Cat")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Cat)
		}).
		Return(domain.Cat{ID: 5, Name: "Timmy", ShortDescription: "Great little pet", IsVaccinated: true}, nil)

	patch := patchOf(t, map[string]string{
		"name": `"Timmy"`,
		"foo":  `"bar"`,
	})

	_, err := svc.UpdateCat(context.Background(), 5, patch)

	assert.NoError(t, err)
	assert.Equal(t, "Timmy", updated.Name)
	assert.Equal(t, "Great little pet", updated.ShortDescription)
	mockRepo.AssertExpectations(t)
}

// TestUpdateCat_TrimsStringsAndAssignsNonStrings verifica o trim em strings e
// a atribuição direta de valores não-string.
func TestUpdateCat_TrimsStringsAndAssignsNonStrings(t *testing.T) {
	mockRepo := new(MockCatRepository)
	svc := newService(mockRepo)

	current := domain.Cat{ID: 5, Name: "Tommy", ShortDescription: "Great little pet"}
	mockRepo.On("FindByID", mock.Anything, int64(5)).Return(current, nil)

	var updated domain.Cat
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("domain.Cat")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Cat)
		}).
		Return(domain.Cat{ID: 5}, nil)

	patch := patchOf(t, map[string]string{
		"name":          `"  Timmy  "`,
		"is_vaccinated": `true`,
		"age":           `"1 year"`,
	})

	_, err := svc.UpdateCat(context.Background(), 5, patch)

	assert.NoError(t, err)
	assert.Equal(t, "Timmy", updated.Name)
	assert.True(t, updated.IsVaccinated)
	if assert.NotNil(t, updated.Age) {
		assert.Equal(t, "1 year", *updated.Age)
	}
}

// TestUpdateCat_EmptyRequiredFieldRejected verifica que não é possível esvaziar
// um campo obrigatório via atualização parcial.
func TestUpdateCat_EmptyRequiredFieldRejected(t *testing.T) {
	mockRepo := new(MockCatRepository)
	svc := newService(mockRepo)

	current := domain.Cat{ID: 5, Name: "Tommy", ShortDescription: "Great little pet"}
	mockRepo.On("FindByID", mock.Anything, int64(5)).Return(current, nil)

	patch := patchOf(t, map[string]string{"name": `"   "`})

	_, err := svc.UpdateCat(context.Background(), 5, patch)

	assert.Error(t, err)
	status, _, message := apperror.MapToHTTPStatus(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Field name must not be empty", message)
	mockRepo.AssertNotCalled(t, "Update")
}

// TestUpdateCat_NullClearsOptionalField verifica que null limpa um campo opcional.
func TestUpdateCat_NullClearsOptionalField(t *testing.T) {
	mockRepo := new(MockCatRepository)
	svc := newService(mockRepo)

	img := "tommy.jpg"
	current := domain.Cat{ID: 5, Name: "Tommy", ShortDescription: "Great little pet", Img: &img}
	mockRepo.On("FindByID", mock.Anything, int64(5)).Return(current, nil)

	var updated domain.Cat
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("domain.Cat")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.Cat)
		}).
		Return(domain.Cat{ID: 5}, nil)

	patch := patchOf(t, map[string]string{"img": `null`})

	_, err := svc.UpdateCat(context.Background(), 5, patch)

	assert.NoError(t, err)
	assert.Nil(t, updated.Img)
}

// TestUpdateCat_NotFound verifica o 404 antes de qualquer aplicação de patch.
func TestUpdateCat_NotFound(t *testing.T) {
	mockRepo := new(MockCatRepository)
	svc := newService(mockRepo)

	mockRepo.On("FindByID", mock.Anything, int64(99)).
		Return(domain.Cat{}, apperror.NewNotFoundError("Cat not found"))

	_, err := svc.UpdateCat(context.Background(), 99, patchOf(t, map[string]string{"name": `"Rex"`}))

	assert.Error(t, err)
	status, _, _ := apperror.MapToHTTPStatus(err)
	assert.Equal(t, http.StatusNotFound, status)
	mockRepo.AssertNotCalled(t, "Update")
}

// TestDeleteCat_Twice verifica o par 204/404: a primeira remoção passa e a
// segunda encontra o registro ausente.
func TestDeleteCat_Twice(t *testing.T) {
	mockRepo := new(MockCatRepository)
	svc := newService(mockRepo)

	mockRepo.On("Delete", mock.Anything, int64(5)).Return(nil).Once()
	mockRepo.On("Delete", mock.Anything, int64(5)).
		Return(apperror.NewNotFoundError("Cat not found")).Once()

	assert.NoError(t, svc.DeleteCat(context.Background(), 5))

	err := svc.DeleteCat(context.Background(), 5)
	assert.Error(t, err)
	status, _, _ := apperror.MapToHTTPStatus(err)
	assert.Equal(t, http.StatusNotFound, status)
	mockRepo.AssertExpectations(t)
}
