package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Cat representa um gato anunciado para adoção (a Entidade).
// Os campos opcionais são ponteiros: entrada vazia é normalizada para NULL no banco,
// nunca persistida como string vazia.
type Cat struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	ShortDescription string    `json:"short_description"`
	LongDescription  *string   `json:"long_description"`
	Age              *string   `json:"age"` // Texto livre (e.g., "2 months"), seguindo os dados reais do abrigo
	IsVaccinated     bool      `json:"is_vaccinated"`
	Img              *string   `json:"img"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CatPatch é o conjunto de campos reconhecidos em uma atualização parcial.
// Cada chave presente no corpo bruto é mapeada por uma tabela de dispatch explícita;
// chaves desconhecidas são ignoradas silenciosamente.
type CatPatch map[string]json.RawMessage

// CatService é a interface que a camada de Serviço (Business Logic) DEVE implementar.
// Ela define o que o Handler (Camada API) pode pedir para a camada de Serviço fazer.
type CatService interface {
	ListCats(ctx context.Context) ([]Cat, error)
	GetCatByID(ctx context.Context, id int64) (Cat, error)
	CreateCat(ctx context.Context, body map[string]interface{}) (Cat, error)
	UpdateCat(ctx context.Context, id int64, patch CatPatch) (Cat, error)
	DeleteCat(ctx context.Context, id int64) error
}

// CatRepository é a interface que a camada de Repositório (Data Access) DEVE implementar.
// O banco é o dono exclusivo da identidade: Save devolve a entidade com o ID atribuído.
type CatRepository interface {
	FindAll(ctx context.Context) ([]Cat, error)
	FindByID(ctx context.Context, id int64) (Cat, error)
	Save(ctx context.Context, cat Cat) (Cat, error)
	Update(ctx context.Context, cat Cat) (Cat, error)
	Delete(ctx context.Context, id int64) error
}
