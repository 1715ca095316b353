package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"catadopt/internal/api/auth"
	"catadopt/internal/api/cat"
	"catadopt/internal/domain"
	"catadopt/internal/pkg/cache"
	"catadopt/internal/pkg/middleware"
)

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
func NewRouter(
	authHandler *auth.Handler,
	catHandler *cat.Handler,
	tokenSvc middleware.TokenService,
	cacheClient cache.Client,
	rateLimitMax int,
	rateLimitPeriod time.Duration,
) http.Handler {

	// Usamos o ServeMux padrão do net/http para roteamento
	mux := http.NewServeMux()

	// Middlewares por rota: todas as rotas /api/admin/* exigem um token
	// válido com ROLE_ADMIN.
	authMw := middleware.NewAuthMiddleware(tokenSvc)
	adminOnly := middleware.PermissionMiddleware(domain.RoleAdmin)

	// --- 1. Health Check ---
	mux.HandleFunc("/ping", PingHandler)

	// --- 2. Rotas Públicas ---
	mux.HandleFunc("/api/register", authHandler.RegisterUserHandler)
	mux.HandleFunc("/api/login", authHandler.LoginUserHandler)
	mux.HandleFunc("/api/cats", catHandler.ListCatsHandler)
	mux.HandleFunc("/api/cat/", catHandler.GetCatByIDHandler)

	// --- 3. Rotas Administrativas (JWT + ROLE_ADMIN) ---
	mux.HandleFunc("/api/admin/create_cat", authMw(adminOnly(catHandler.CreateCatHandler)))
	mux.HandleFunc("/api/admin/update_cat/", authMw(adminOnly(catHandler.UpdateCatHandler)))
	mux.HandleFunc("/api/admin/delete_cat/", authMw(adminOnly(catHandler.DeleteCatHandler)))

	// --- 4. Documentação Swagger ---
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// --- 5. Middlewares Globais ---
	// Request-ID para correlação de logs e rate limiting por IP sobre o Redis.
	var handler http.Handler = mux
	handler = middleware.RateLimiter(cacheClient, rateLimitMax, rateLimitPeriod)(handler)
	handler = middleware.RequestID(handler)

	return handler
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
