package cat

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"catadopt/internal/domain"
	apperror "catadopt/internal/errors"
	"catadopt/internal/pkg/logger"
	"catadopt/internal/pkg/middleware"
)

// CatService define o contrato que o Handler espera da camada de Serviço.
type CatService interface {
	ListCats(ctx context.Context) ([]domain.Cat, error)
	GetCatByID(ctx context.Context, id int64) (domain.Cat, error)
	CreateCat(ctx context.Context, body map[string]interface{}) (domain.Cat, error)
	UpdateCat(ctx context.Context, id int64, patch domain.CatPatch) (domain.Cat, error)
	DeleteCat(ctx context.Context, id int64) error
}

// Handler agrupa todos os métodos de Handler do catálogo de gatos.
type Handler struct {
	Service CatService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc CatService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// catSnapshot é o retrato dos campos persistidos devolvido nos corpos de create/update.
type catSnapshot struct {
	Name             string  `json:"name"`
	ShortDescription string  `json:"short_description"`
	LongDescription  *string `json:"long_description"`
	Age              *string `json:"age"`
	IsVaccinated     bool    `json:"is_vaccinated"`
	Img              *string `json:"img"`
}

func toSnapshot(cat domain.Cat) catSnapshot {
	return catSnapshot{
		Name:             cat.Name,
		ShortDescription: cat.ShortDescription,
		LongDescription:  cat.LongDescription,
		Age:              cat.Age,
		IsVaccinated:     cat.IsVaccinated,
		Img:              cat.Img,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error("Erro interno no serviço de gatos:", err)
	} else {
		h.Logger.Debug("Requisição rejeitada.", map[string]interface{}{
			"path":     r.URL.Path,
			"status":   status,
			"category": category,
		})
	}

	errorResponse := map[string]interface{}{
		"code":     status,
		"category": category,
		"message":  message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse)
}

// parseCatID extrai o ID numérico do último segmento da URL.
// A sintaxe é restrita a inteiros não-negativos: qualquer outra coisa nunca
// chega à consulta e vira 404 direto.
func parseCatID(path string) (int64, bool) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 0 {
		return 0, false
	}

	idStr := segments[len(segments)-1]
	if idStr == "" {
		return 0, false
	}
	for _, c := range idStr {
		if c < '0' || c > '9' {
			return 0, false
		}
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ListCatsHandler lida com a requisição GET /api/cats.
// @Summary Lista todos os gatos para adoção
// @Tags cats
// @Produce json
// @Success 200 {array} domain.Cat "Lista de gatos"
// @Router /cats [get]
func (h *Handler) ListCatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cats, err := h.Service.ListCats(r.Context())
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, cats, nil, http.StatusOK)
}

// GetCatByIDHandler lida com a requisição GET /api/cat/{id}.
// @Summary Busca um gato pelo ID
// @Tags cats
// @Produce json
// @Param id path int true "ID do gato"
// @Success 200 {object} domain.Cat "Gato encontrado"
// @Failure 404 {object} domain.ErrorResponse "Gato não encontrado"
// @Router /cat/{id} [get]
func (h *Handler) GetCatByIDHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := parseCatID(r.URL.Path)
	if !ok {
		h.handleServiceResponse(w, r, nil, apperror.NewNotFoundError("Cat not found"), http.StatusOK)
		return
	}

	cat, err := h.Service.GetCatByID(r.Context(), id)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, cat, nil, http.StatusOK)
}

// CreateCatHandler lida com a requisição POST /api/admin/create_cat.
// Rota acessível apenas a usuários com ROLE_ADMIN.
// @Summary Cadastra um novo gato para adoção
// @Tags admin
// @Accept json
// @Produce json
// @Param cat body object true "Campos do gato (name, short_description, long_description, age, is_vaccinated, img)"
// @Success 201 {object} map[string]interface{} "Gato criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Corpo inválido"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 403 {object} domain.ErrorResponse "Usuário sem permissão"
// @Security BearerAuth
// @Router /admin/create_cat [post]
func (h *Handler) CreateCatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	if claims, ok := middleware.GetUserClaimsFromContext(ctx); ok {
		h.Logger.Info("Cadastro de gato solicitado.", map[string]interface{}{"user_id": claims.UserID})
	}

	// Decodifica para um mapa bruto: o serviço aplica o schema estrito
	// (chaves ausentes E chaves excedentes rejeitam o corpo inteiro).
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Invalid JSON"), http.StatusCreated)
		return
	}

	cat, err := h.Service.CreateCat(ctx, body)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	response := map[string]interface{}{
		"message": "Cat created successfully",
		"data":    toSnapshot(cat),
	}
	h.handleServiceResponse(w, r, response, nil, http.StatusCreated)
}

// UpdateCatHandler lida com a requisição PUT /api/admin/update_cat/{id}.
// Rota acessível apenas a usuários com ROLE_ADMIN. Aceita qualquer subconjunto
// de campos; chaves desconhecidas são ignoradas silenciosamente.
// @Summary Atualiza campos de um gato
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "ID do gato"
// @Param patch body object true "Mapa parcial de campos"
// @Success 200 {object} map[string]interface{} "Gato atualizado com sucesso"
// @Failure 404 {object} domain.ErrorResponse "Gato não encontrado"
// @Security BearerAuth
// @Router /admin/update_cat/{id} [put]
func (h *Handler) UpdateCatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	id, ok := parseCatID(r.URL.Path)
	if !ok {
		h.handleServiceResponse(w, r, nil, apperror.NewNotFoundError("Cat not found"), http.StatusOK)
		return
	}

	// RawMessage preserva o valor original de cada chave para a tabela de
	// dispatch tipada do serviço.
	var patch domain.CatPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Invalid JSON"), http.StatusOK)
		return
	}

	cat, err := h.Service.UpdateCat(ctx, id, patch)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	response := map[string]interface{}{
		"message": "Cat updated successfully",
		"data":    toSnapshot(cat),
	}
	h.handleServiceResponse(w, r, response, nil, http.StatusOK)
}

// DeleteCatHandler lida com a requisição DELETE /api/admin/delete_cat/{id}.
// Rota acessível apenas a usuários com ROLE_ADMIN. Responde 204 sem corpo.
// @Summary Remove um gato do catálogo
// @Tags admin
// @Param id path int true "ID do gato"
// @Success 204 "Gato removido"
// @Failure 404 {object} domain.ErrorResponse "Gato não encontrado"
// @Security BearerAuth
// @Router /admin/delete_cat/{id} [delete]
func (h *Handler) DeleteCatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := parseCatID(r.URL.Path)
	if !ok {
		h.handleServiceResponse(w, r, nil, apperror.NewNotFoundError("Cat not found"), http.StatusOK)
		return
	}

	if err := h.Service.DeleteCat(r.Context(), id); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, nil, nil, http.StatusNoContent)
}
