package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/adr1ann32323/restorApp/internal/models"
	"github.com/adr1ann32323/restorApp/internal/store"
)

// NewRouter wires the full API surface. Auth endpoints and product reads
// are public; product mutations require the ADMIN role; everything under
// /orders requires a valid token.
func NewRouter(st *store.Store, secret []byte, tokenTTL time.Duration) *mux.Router {
	authH := &AuthHandler{Store: st, Secret: secret, TokenTTL: tokenTTL}
	productH := &ProductHandler{Store: st}
	orderH := &OrderHandler{Store: st}

	r := mux.NewRouter()

	r.HandleFunc("/auth/login", authH.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", authH.Register).Methods(http.MethodPost)

	r.HandleFunc("/products", productH.List).Methods(http.MethodGet)
	r.HandleFunc("/products/{id:[0-9]+}", productH.Get).Methods(http.MethodGet)

	adminProducts := r.PathPrefix("/products").Subrouter()
	adminProducts.Use(Authenticate(secret), RequireRole(models.RoleAdmin))
	adminProducts.HandleFunc("", productH.Create).Methods(http.MethodPost)
	adminProducts.HandleFunc("/{id:[0-9]+}", productH.Update).Methods(http.MethodPut)
	adminProducts.HandleFunc("/{id:[0-9]+}", productH.Deactivate).Methods(http.MethodDelete)

	orders := r.PathPrefix("/orders").Subrouter()
	orders.Use(Authenticate(secret))
	orders.HandleFunc("", orderH.List).Methods(http.MethodGet)
	orders.HandleFunc("", orderH.Create).Methods(http.MethodPost)
	orders.HandleFunc("/{id:[0-9]+}", orderH.Get).Methods(http.MethodGet)
	orders.HandleFunc("/{id:[0-9]+}/status", orderH.UpdateStatus).Methods(http.MethodPut)
	orders.HandleFunc("/{id:[0-9]+}/cancel", orderH.Cancel).Methods(http.MethodPut)

	return r
}
