package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"catadopt/config"
	"catadopt/internal/domain"
	apperror "catadopt/internal/errors"
	"catadopt/internal/pkg/cache"
	"catadopt/internal/pkg/database"
	"catadopt/internal/pkg/logger"
	"catadopt/internal/repository/catrepo"
	"catadopt/internal/repository/userrepo"
)

// Carga de dados de demonstração: 3 gatos do catálogo e 3 usuários
// (2 ROLE_USER, 1 ROLE_ADMIN). Pode ser reexecutada: usuários com email já
// cadastrado são pulados e os gatos só entram em catálogo vazio.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Warning: .env file not found or failed to read. Loading configs from system environment only: %v", err)
	}

	cfg := config.LoadConfig()
	logg := logger.NewLogger(cfg.LogLevel)

	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		logg.Fatal("seed: falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()

	cacheClient := cache.NewRedisClient(cfg.RedisAddr)

	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, logg)
	catRepo := catrepo.NewCatRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, logg)

	ctx := context.Background()

	seedCats(ctx, catRepo, logg)
	seedUsers(ctx, userRepo, logg)

	logg.Info("Seed concluído.", nil)
}

func strPtr(s string) *string { return &s }

func seedCats(ctx context.Context, repo domain.CatRepository, logg logger.Logger) {
	existing, err := repo.FindAll(ctx)
	if err != nil {
		logg.Fatal("seed: falha ao consultar o catálogo.", err)
	}
	if len(existing) > 0 {
		logg.Info("Catálogo já populado, pulando gatos de demonstração.", map[string]interface{}{"count": len(existing)})
		return
	}

	cats := []domain.Cat{
		{
			Name:             "Minty",
			ShortDescription: "Meet our little princess, Mint! She doesn't mind playing or taking long morning walks in the fresh air.",
			Age:              strPtr("2 months"),
			IsVaccinated:     false,
		},
		{
			Name:             "Mikasa",
			ShortDescription: "You'll love him from the second you meet him! His energetic and fun personality.",
			Age:              strPtr("6 months"),
			IsVaccinated:     true,
		},
		{
			Name:             "Tommy",
			ShortDescription: "Meet Timmy!! Timmy will make a great little pet for you. He loves to be out in the grass and loves to be held tight.",
			Age:              strPtr("1 year"),
			IsVaccinated:     true,
		},
	}

	for _, cat := range cats {
		saved, err := repo.Save(ctx, cat)
		if err != nil {
			logg.Fatal("seed: falha ao inserir gato de demonstração.", err)
		}
		logg.Info("Gato de demonstração inserido.", map[string]interface{}{"cat_id": saved.ID, "name": saved.Name})
	}
}

func seedUsers(ctx context.Context, repo domain.UserRepository, logg logger.Logger) {
	users := []struct {
		name     string
		lastname string
		email    string
		password string
		roles    []string
	}{
		{"john", "doe", "john.doe@example.com", "User_password123", []string{domain.RoleUser}},
		{"jane", "smith", "jane.smith@example.com", "User_password123", []string{domain.RoleUser}},
		{"marion", "bailleux", "marion.bailleux@example.com", "Admin_password123", []string{domain.RoleAdmin}},
	}

	for _, u := range users {
		// Pula usuários já cadastrados para permitir reexecução
		if _, err := repo.FindByEmail(ctx, u.email); err == nil {
			logg.Info("Usuário de demonstração já existe, pulando.", map[string]interface{}{"email": u.email})
			continue
		} else {
			var notFoundErr *apperror.NotFoundError
			if !errors.As(err, &notFoundErr) {
				logg.Fatal("seed: falha ao consultar usuário.", err)
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			logg.Fatal("seed: falha ao gerar hash de senha.", err)
		}

		saved, err := repo.Save(ctx, domain.User{
			Name:         u.name,
			Lastname:     u.lastname,
			Email:        u.email,
			PasswordHash: string(hash),
			Roles:        u.roles,
		})
		if err != nil {
			logg.Fatal("seed: falha ao inserir usuário de demonstração.", err)
		}
		logg.Info("Usuário de demonstração inserido.", map[string]interface{}{"user_id": saved.ID, "email": saved.Email})
	}
}
