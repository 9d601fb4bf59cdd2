package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"
)

// NewServer creates an HTTP server with all routes configured.
func NewServer(port string, handler *Handler, adminAPIKey string) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/accounts/{id}", handler.GetAccount)
	mux.HandleFunc("GET /api/v1/accounts/{id}/balances", handler.GetBalances)
	mux.HandleFunc("GET /api/v1/accounts/{id}/reserves", handler.GetReserves)
	mux.HandleFunc("GET /api/v1/accounts/{id}/transactions", handler.GetTransactions)
	mux.HandleFunc("GET /api/v1/accounts/{id}/operations", handler.GetOperations)
	mux.HandleFunc("GET /api/v1/accounts/{id}/effects", handler.GetEffects)
	mux.HandleFunc("GET /api/v1/accounts/{id}/offers", handler.GetOffers)
	mux.HandleFunc("GET /api/v1/accounts/{id}/related/{node}", handler.GetRelated)
	mux.HandleFunc("GET /api/v1/accounts/{id}/send-check", handler.GetSendCheck)
	mux.HandleFunc("GET /api/v1/orderbook", handler.GetOrderbook)

	refreshHandler := http.HandlerFunc(handler.RefreshAccount)
	if adminAPIKey != "" {
		mux.Handle("POST /api/v1/accounts/{id}/refresh", requireAuth(adminAPIKey, refreshHandler))
	} else {
		mux.Handle("POST /api/v1/accounts/{id}/refresh", refreshHandler)
	}

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
