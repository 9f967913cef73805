package app

import (
	"credstore/internal/app/deps"
	"credstore/internal/app/services"
	getpasswordentry "credstore/internal/http/handlers/authn/get_password_entry"
	resetpassword "credstore/internal/http/handlers/authn/reset_password"
	savepasswordentry "credstore/internal/http/handlers/authn/save_password_entry"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	return &http.Server{
		Handler:           NewRouter(deps.Config.AllowedOrigins, s),
		Addr:              fmt.Sprintf("0.0.0.0:%d", deps.Config.Port),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func NewRouter(allowedOrigins []string, s *services.Services) http.Handler {
	authnRouter := chi.NewRouter()
	authnRouter.Method(http.MethodPut, "/reset-password", resetpassword.New(s.ResetPassword))
	authnRouter.Method(http.MethodPost, "/password-entries", savepasswordentry.New(s.SavePasswordEntry))
	authnRouter.Method(http.MethodGet, "/password-entries/{entryID}", getpasswordentry.New(s.GetPasswordEntry))

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/authn", authnRouter)

	return router
}
