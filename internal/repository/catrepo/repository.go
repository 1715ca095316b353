package catrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"catadopt/internal/domain"
	apperror "catadopt/internal/errors"
	"catadopt/internal/pkg/cache"
	"catadopt/internal/pkg/logger"
)

// Chave de cache para gatos individuais.
const catCacheKey = "cat:%d"

// CatRepository implementa a interface domain.CatRepository sobre o PostgreSQL,
// com cache-aside no Redis para leituras por ID.
type CatRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewCatRepository cria e retorna uma nova instância do Repositório.
// Aqui injetamos as dependências de Infraestrutura (DB e Cache).
func NewCatRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *CatRepository {
	return &CatRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

const catColumns = `id, name, short_description, long_description, age, is_vaccinated, img, created_at, updated_at`

// scanCat mapeia uma linha do resultado para a struct domain.Cat.
// Os campos opcionais são lidos como ponteiros e ficam nil quando a coluna é NULL.
func scanCat(row interface{ Scan(...interface{}) error }) (domain.Cat, error) {
	var cat domain.Cat
	err := row.Scan(
		&cat.ID,
		&cat.Name,
		&cat.ShortDescription,
		&cat.LongDescription,
		&cat.Age,
		&cat.IsVaccinated,
		&cat.Img,
		&cat.CreatedAt,
		&cat.UpdatedAt,
	)
	return cat, err
}

// FindAll retorna todos os gatos na ordem natural do banco (ID crescente).
// Sem paginação: o catálogo do abrigo é pequeno.
func (r *CatRepository) FindAll(ctx context.Context) ([]domain.Cat, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s FROM cats ORDER BY id`, catColumns)

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao listar gatos no DB.", err)
		return nil, apperror.NewDBError("failed to list cats", err)
	}
	defer rows.Close()

	cats := make([]domain.Cat, 0)
	for rows.Next() {
		cat, err := scanCat(rows)
		if err != nil {
			return nil, apperror.NewDBError("failed to scan cat row", err)
		}
		cats = append(cats, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate cat rows", err)
	}

	return cats, nil
}

// FindByID busca um gato pelo ID, utilizando a estratégia Cache-Aside.
func (r *CatRepository) FindByID(ctx context.Context, id int64) (domain.Cat, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(catCacheKey, id)
	var cat domain.Cat

	// 1. Tentar obter do Cache (Redis)
	cachedData, err := r.Cache.Get(ctxTimeout, key)
	if err == nil {
		if json.Unmarshal([]byte(cachedData), &cat) == nil {
			// Cache HIT
			return cat, nil
		}
		// Se a desserialização falhar, segue para o DB
	} else if err != cache.ErrCacheMiss {
		// Erro real de cache (e.g., conexão perdida): degrada para o DB.
		r.logger.Warn("Falha ao ler do cache Redis, consultando DB.", map[string]interface{}{"cat_id": id})
	}

	// 2. Busca no Banco de Dados (PostgreSQL)
	query := fmt.Sprintf(`SELECT %s FROM cats WHERE id = $1`, catColumns)
	cat, err = scanCat(r.DB.QueryRowContext(ctxTimeout, query, id))

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cat{}, apperror.NewNotFoundError("Cat not found")
	}
	if err != nil {
		r.logger.Error("Falha ao buscar gato por ID no DB.", err)
		return domain.Cat{}, apperror.NewDBError("failed to find cat by id", err)
	}

	// 3. Popular o cache para futuras leituras
	if catJSON, marshalErr := json.Marshal(cat); marshalErr == nil {
		r.Cache.Set(ctxTimeout, key, catJSON, r.CacheTTL)
	}

	return cat, nil
}

// Save persiste um novo gato. O ID é atribuído pelo banco e devolvido na entidade.
func (r *CatRepository) Save(ctx context.Context, cat domain.Cat) (domain.Cat, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	cat.CreatedAt = time.Now()
	cat.UpdatedAt = cat.CreatedAt

	const insertSQL = `INSERT INTO cats (name, short_description, long_description, age, is_vaccinated, img, created_at, updated_at)
                       VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                       RETURNING id`

	err := r.DB.QueryRowContext(
		ctxTimeout,
		insertSQL,
		cat.Name,
		cat.ShortDescription,
		cat.LongDescription,
		cat.Age,
		cat.IsVaccinated,
		cat.Img,
		cat.CreatedAt,
		cat.UpdatedAt,
	).Scan(&cat.ID)

	if err != nil {
		r.logger.Error("Falha ao inserir gato no DB.", err)
		return domain.Cat{}, apperror.NewDBError("failed to insert cat", err)
	}

	r.logger.Info("Gato salvo com sucesso no repositório.", map[string]interface{}{"cat_id": cat.ID, "name": cat.Name})
	return cat, nil
}

// Update sobrescreve todos os campos mutáveis do gato e invalida a entrada de cache.
func (r *CatRepository) Update(ctx context.Context, cat domain.Cat) (domain.Cat, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	cat.UpdatedAt = time.Now()

	const updateSQL = `UPDATE cats
                       SET name = $1, short_description = $2, long_description = $3,
                           age = $4, is_vaccinated = $5, img = $6, updated_at = $7
                       WHERE id = $8`

	result, err := r.DB.ExecContext(
		ctxTimeout,
		updateSQL,
		cat.Name,
		cat.ShortDescription,
		cat.LongDescription,
		cat.Age,
		cat.IsVaccinated,
		cat.Img,
		cat.UpdatedAt,
		cat.ID,
	)
	if err != nil {
		r.logger.Error("Falha ao atualizar gato no DB.", err)
		return domain.Cat{}, apperror.NewDBError("failed to update cat", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return domain.Cat{}, apperror.NewDBError("failed to read affected rows", err)
	}
	if rowsAffected == 0 {
		return domain.Cat{}, apperror.NewNotFoundError("Cat not found")
	}

	// Invalida a entrada de cache para que a próxima leitura veja o estado novo.
	r.Cache.Delete(ctxTimeout, fmt.Sprintf(catCacheKey, cat.ID))

	return cat, nil
}

// Delete remove um gato pelo ID e invalida a entrada de cache.
func (r *CatRepository) Delete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM cats WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao remover gato no DB.", err)
		return apperror.NewDBError("failed to delete cat", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.NewDBError("failed to read affected rows", err)
	}
	if rowsAffected == 0 {
		return apperror.NewNotFoundError("Cat not found")
	}

	r.Cache.Delete(ctxTimeout, fmt.Sprintf(catCacheKey, id))
	r.logger.Info("Gato removido do repositório.", map[string]interface{}{"cat_id": id})

	return nil
}
