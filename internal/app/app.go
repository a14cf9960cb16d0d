package app

import (
	"fmt"
	"net/http"
	"regain/internal/app/deps"
	"regain/internal/app/services"
	"regain/internal/http/handlers/auth"
	loginwithemail "regain/internal/http/handlers/auth/log_in_with_email"
	me "regain/internal/http/handlers/auth/me"
	sendrecoverytoken "regain/internal/http/handlers/auth/send_recovery_token"
	setnewpassword "regain/internal/http/handlers/auth/set_new_password"
	signupwithemail "regain/internal/http/handlers/auth/sign_up_with_email"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/signup", signupwithemail.New(s.SignUpWithEmail))
	authRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))
	authRouter.Method(http.MethodPost, "/recover-token", sendrecoverytoken.New(s.SendRecoveryToken, isTestMode))
	authRouter.Method(http.MethodPut, "/new-password", setnewpassword.New(s.SetNewPassword))

	authRouter.Group(func(r chi.Router) {
		r.Use(auth.SetAuthTokenToContext)
		r.Method(http.MethodGet, "/me", me.New(s.GetUserBySessionToken))
	})

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth", authRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
