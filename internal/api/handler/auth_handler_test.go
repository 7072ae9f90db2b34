package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/calendarapp/calendar-backend/internal/api"
	"github.com/calendarapp/calendar-backend/internal/api/handler"
	"github.com/calendarapp/calendar-backend/internal/core/domain"
)

type stubAuthService struct {
	registerOK  bool
	registerErr error
	token       string
	loginErr    error
	deleted     bool
	deleteErr   error
}

func (s *stubAuthService) Register(_ context.Context, _, _ string) (bool, error) {
	return s.registerOK, s.registerErr
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, error) {
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return s.token, nil
}

func (s *stubAuthService) DeleteAccount(_ context.Context, _ int64) (bool, error) {
	return s.deleted, s.deleteErr
}

func TestAuthHandler_Register(t *testing.T) {
	h := handler.NewAuthHandler(&stubAuthService{registerOK: true})

	_, c, rec := newAppointmentContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"alice","password":"pass123"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "registered" {
		t.Fatalf("message = %q, want %q", resp["message"], "registered")
	}
}

func TestAuthHandler_Register_UsernameTaken(t *testing.T) {
	h := handler.NewAuthHandler(&stubAuthService{registerOK: false})

	_, c, rec := newAppointmentContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"alice","password":"pass123"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "username already exists" {
		t.Fatalf("message = %q", resp["message"])
	}
}

func TestAuthHandler_Register_BadPayload(t *testing.T) {
	h := handler.NewAuthHandler(&stubAuthService{registerOK: true})

	e, c, rec := newAppointmentContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"al"}`)

	if err := h.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	h := handler.NewAuthHandler(&stubAuthService{token: "signed.jwt.token"})

	_, c, rec := newAppointmentContext(t, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"pass123"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["token"] != "signed.jwt.token" {
		t.Fatalf("token = %q", resp["token"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := handler.NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials})

	e, c, rec := newAppointmentContext(t, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"wrongpw"}`)

	if err := h.Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "invalid credentials" {
		t.Fatalf("message = %q", resp["message"])
	}
}

func TestAuthHandler_DeleteAccount(t *testing.T) {
	h := handler.NewAuthHandler(&stubAuthService{deleted: true})

	_, c, rec := newAppointmentContext(t, http.MethodDelete, "/api/auth/account", "")
	c.Set("user_id", int64(5))

	if err := h.DeleteAccount(c); err != nil {
		t.Fatalf("DeleteAccount error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}

func TestAuthHandler_DeleteAccount_NoIdentity(t *testing.T) {
	h := handler.NewAuthHandler(&stubAuthService{deleted: true})

	e, c, rec := newAppointmentContext(t, http.MethodDelete, "/api/auth/account", "")

	if err := h.DeleteAccount(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

// Unexpected infrastructure errors surface as generic 500s without leaking
// detail.
func TestErrorHandler_Unexpected(t *testing.T) {
	h := handler.NewAuthHandler(&stubAuthService{loginErr: context.DeadlineExceeded})

	e, c, rec := newAppointmentContext(t, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"pass123"}`)
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	if err := h.Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "something went wrong" {
		t.Fatalf("message = %q", resp["message"])
	}
}
