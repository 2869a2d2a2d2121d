package auth_http_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inkpost-service/internal/custom_errors"
	auth_http "inkpost-service/internal/delivery/http/auth"
	"inkpost-service/internal/model"
	mockauth "inkpost-service/mocks/auth"
)

func TestRegisterHandler_Register(t *testing.T) {
	validate := validator.New()

	t.Run("Success", func(t *testing.T) {
		mockAuthService := new(mockauth.Service)
		handler := auth_http.NewRegisterHandler(mockAuthService, validate)

		mockAuthService.On("Register", mock.Anything, "alice", "wonderland").
			Return(&model.User{ID: 1, Username: "alice"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"username":"alice","password":"wonderland"}`))
		rec := httptest.NewRecorder()

		handler.Register(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":1,"username":"alice"}`, rec.Body.String())
		mockAuthService.AssertExpectations(t)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		mockAuthService := new(mockauth.Service)
		handler := auth_http.NewRegisterHandler(mockAuthService, validate)

		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{not json`))
		rec := httptest.NewRecorder()

		handler.Register(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		mockAuthService.AssertNotCalled(t, "Register")
	})

	t.Run("ValidationError", func(t *testing.T) {
		mockAuthService := new(mockauth.Service)
		handler := auth_http.NewRegisterHandler(mockAuthService, validate)

		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"username":"","password":"wonderland"}`))
		rec := httptest.NewRecorder()

		handler.Register(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		mockAuthService.AssertNotCalled(t, "Register")
	})

	t.Run("UsernameTaken", func(t *testing.T) {
		mockAuthService := new(mockauth.Service)
		handler := auth_http.NewRegisterHandler(mockAuthService, validate)

		mockAuthService.On("Register", mock.Anything, "alice", "wonderland").
			Return(nil, custom_errors.ErrUsernameExists)

		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"username":"alice","password":"wonderland"}`))
		rec := httptest.NewRecorder()

		handler.Register(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.JSONEq(t, `{"detail":"Username already taken"}`, rec.Body.String())
		mockAuthService.AssertExpectations(t)
	})

	t.Run("InternalError", func(t *testing.T) {
		mockAuthService := new(mockauth.Service)
		handler := auth_http.NewRegisterHandler(mockAuthService, validate)

		mockAuthService.On("Register", mock.Anything, "alice", "wonderland").
			Return(nil, custom_errors.ErrDatabaseQuery)

		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"username":"alice","password":"wonderland"}`))
		rec := httptest.NewRecorder()

		handler.Register(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"detail":"Internal server error"}`, rec.Body.String())
		mockAuthService.AssertExpectations(t)
	})
}

func TestLoginHandler_Login(t *testing.T) {
	validate := validator.New()

	loginRequest := func(form url.Values) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req
	}

	t.Run("Success", func(t *testing.T) {
		mockAuthService := new(mockauth.Service)
		handler := auth_http.NewLoginHandler(mockAuthService, validate)

		mockAuthService.On("Login", mock.Anything, "alice", "wonderland").
			Return(&model.Token{AccessToken: "token-value", TokenType: "bearer"}, nil)

		rec := httptest.NewRecorder()
		handler.Login(rec, loginRequest(url.Values{"username": {"alice"}, "password": {"wonderland"}}))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"access_token":"token-value","token_type":"bearer"}`, rec.Body.String())
		mockAuthService.AssertExpectations(t)
	})

	t.Run("MissingUsername", func(t *testing.T) {
		mockAuthService := new(mockauth.Service)
		handler := auth_http.NewLoginHandler(mockAuthService, validate)

		rec := httptest.NewRecorder()
		handler.Login(rec, loginRequest(url.Values{"password": {"wonderland"}}))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		mockAuthService.AssertNotCalled(t, "Login")
	})

	t.Run("InvalidCredentials", func(t *testing.T) {
		mockAuthService := new(mockauth.Service)
		handler := auth_http.NewLoginHandler(mockAuthService, validate)

		mockAuthService.On("Login", mock.Anything, "alice", "nope").
			Return(nil, custom_errors.ErrInvalidCredentials)

		rec := httptest.NewRecorder()
		handler.Login(rec, loginRequest(url.Values{"username": {"alice"}, "password": {"nope"}}))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		assert.JSONEq(t, `{"detail":"Invalid credentials"}`, rec.Body.String())
		mockAuthService.AssertExpectations(t)
	})
}
