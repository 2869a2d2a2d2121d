package auth_http

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"inkpost-service/internal/logger"
	auth_service "inkpost-service/internal/service/auth"
)

var validate = validator.New()

type AuthHTTPService struct {
	authService     auth_service.Service
	log             *logger.Logger
	registerHandler *RegisterHandler
	loginHandler    *LoginHandler
}

func NewAuthHTTPService(authService auth_service.Service, log *logger.Logger) *AuthHTTPService {
	return &AuthHTTPService{
		authService:     authService,
		log:             log,
		registerHandler: NewRegisterHandler(authService, validate),
		loginHandler:    NewLoginHandler(authService, validate),
	}
}

func (s *AuthHTTPService) Register(w http.ResponseWriter, r *http.Request) {
	s.registerHandler.Register(w, r)
}

func (s *AuthHTTPService) Login(w http.ResponseWriter, r *http.Request) {
	s.loginHandler.Login(w, r)
}
