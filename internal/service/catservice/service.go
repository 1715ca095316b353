package catservice

import (
	"context"
	"strconv"
	"strings"

	"catadopt/internal/domain"
	apperror "catadopt/internal/errors"
	"catadopt/internal/pkg/logger"
	"catadopt/internal/pkg/validate"
)

// Schema estrito do corpo de criação de gato.
var (
	catExpectedFields = []string{"name", "short_description", "long_description", "age", "is_vaccinated", "img"}
	catRequiredFields = []string{"name", "short_description"}
)

// CatService define o serviço de lógica de negócio para o catálogo de adoção.
type CatService struct {
	CatRepo domain.CatRepository
	Logger  logger.Logger
}

// NewService cria uma nova instância do CatService, injetando o Repositório.
func NewService(repo domain.CatRepository, log logger.Logger) *CatService {
	return &CatService{
		CatRepo: repo,
		Logger:  log,
	}
}

// ListCats retorna todos os gatos na ordem natural do banco.
func (s *CatService) ListCats(ctx context.Context) ([]domain.Cat, error) {
	return s.CatRepo.FindAll(ctx)
}

// GetCatByID busca um gato pelo ID.
func (s *CatService) GetCatByID(ctx context.Context, id int64) (domain.Cat, error) {
	return s.CatRepo.FindByID(ctx, id)
}

// CreateCat valida o corpo bruto contra o schema estrito, normaliza os valores
// (trim em toda string; string vazia vira NULL nos campos opcionais) e persiste.
func (s *CatService) CreateCat(ctx context.Context, body map[string]interface{}) (domain.Cat, error) {
	if err := validate.Body(body, catExpectedFields, catRequiredFields); err != nil {
		return domain.Cat{}, err
	}

	name, err := requiredString(body, "name")
	if err != nil {
		return domain.Cat{}, err
	}
	shortDescription, err := requiredString(body, "short_description")
	if err != nil {
		return domain.Cat{}, err
	}

	longDescription, err := optionalString(body, "long_description")
	if err != nil {
		return domain.Cat{}, err
	}
	img, err := optionalString(body, "img")
	if err != nil {
		return domain.Cat{}, err
	}
	age, err := optionalFreeform(body, "age")
	if err != nil {
		return domain.Cat{}, err
	}

	isVaccinated, err := optionalBool(body, "is_vaccinated")
	if err != nil {
		return domain.Cat{}, err
	}

	cat := domain.Cat{
		Name:             name,
		ShortDescription: shortDescription,
		LongDescription:  longDescription,
		Age:              age,
		IsVaccinated:     isVaccinated,
		Img:              img,
	}

	saved, err := s.CatRepo.Save(ctx, cat)
	if err != nil {
		return domain.Cat{}, err
	}

	s.Logger.Info("Novo gato cadastrado para adoção.", map[string]interface{}{"cat_id": saved.ID, "name": saved.Name})
	return saved, nil
}

// UpdateCat aplica uma atualização parcial: cada chave do corpo é resolvida por uma
// tabela de dispatch explícita (ver patch.go); chaves desconhecidas são ignoradas.
func (s *CatService) UpdateCat(ctx context.Context, id int64, patch domain.CatPatch) (domain.Cat, error) {
	cat, err := s.CatRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Cat{}, err
	}

	if err := applyPatch(&cat, patch); err != nil {
		return domain.Cat{}, err
	}

	return s.CatRepo.Update(ctx, cat)
}

// DeleteCat remove um gato pelo ID.
func (s *CatService) DeleteCat(ctx context.Context, id int64) error {
	return s.CatRepo.Delete(ctx, id)
}

// --- Coerção de valores do corpo bruto ---

// requiredString extrai um campo obrigatório como string trimada.
// O validador já garantiu presença e não-vazio, mas não o tipo.
func requiredString(body map[string]interface{}, field string) (string, error) {
	v, ok := body[field].(string)
	if !ok {
		return "", apperror.NewValidationError("Field " + field + " must be a string")
	}
	return strings.TrimSpace(v), nil
}

// optionalString extrai um campo opcional: nil ou vazio após trim viram NULL.
func optionalString(body map[string]interface{}, field string) (*string, error) {
	switch v := body[field].(type) {
	case nil:
		return nil, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		return &trimmed, nil
	default:
		return nil, apperror.NewValidationError("Field " + field + " must be a string")
	}
}

// optionalFreeform aceita string ou número (o campo age é texto livre nos dados
// reais do abrigo, mas clientes antigos enviavam inteiros).
func optionalFreeform(body map[string]interface{}, field string) (*string, error) {
	switch v := body[field].(type) {
	case float64:
		formatted := strconv.FormatFloat(v, 'f', -1, 64)
		return &formatted, nil
	default:
		return optionalString(body, field)
	}
}

// optionalBool extrai um booleano opcional; ausente ou nulo vale false.
func optionalBool(body map[string]interface{}, field string) (bool, error) {
	switch v := body[field].(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		// String vazia é tratada como não informado, igual aos campos opcionais de texto
		if strings.TrimSpace(v) == "" {
			return false, nil
		}
		return false, apperror.NewValidationError("Field " + field + " must be a boolean")
	default:
		return false, apperror.NewValidationError("Field " + field + " must be a boolean")
	}
}
