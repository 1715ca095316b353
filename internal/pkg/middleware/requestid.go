package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestID anexa um ID de correlação a cada requisição, propagado no contexto
// e devolvido no header X-Request-ID. Se o cliente já enviar um, ele é reaproveitado.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", reqID)
		ctx := context.WithValue(r.Context(), RequestIDKey, reqID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestIDFromContext extrai o ID de correlação do contexto, se presente.
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	reqID, ok := ctx.Value(RequestIDKey).(string)
	return reqID, ok
}
