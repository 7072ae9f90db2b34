package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/calendarapp/calendar-backend/internal/core/domain"
)

type stubUserRepo struct {
	byName  map[string]*domain.User
	seq     int64
	deleted []int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byName: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.byName[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byName[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.seq++
	clone := *user
	clone.ID = r.seq
	r.byName[clone.Username] = &clone
	cp := clone
	return &cp, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) (bool, error) {
	for name, u := range r.byName {
		if u.ID == id {
			delete(r.byName, name)
			r.deleted = append(r.deleted, id)
			return true, nil
		}
	}
	return false, nil
}

func newTestAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Register(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	ok, err := svc.Register(context.Background(), "alice", "pass123")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if !ok {
		t.Fatalf("Register = false, want true")
	}

	stored := repo.byName["alice"]
	if stored == nil {
		t.Fatalf("user not persisted")
	}
	if stored.PasswordHash == "pass123" {
		t.Fatalf("password stored unhashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_DuplicateFailsClosed(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if ok, _ := svc.Register(context.Background(), "alice", "pass123"); !ok {
		t.Fatalf("first Register = false, want true")
	}

	ok, err := svc.Register(context.Background(), "alice", "other")
	if err != nil {
		t.Fatalf("duplicate Register returned error: %v", err)
	}
	if ok {
		t.Fatalf("duplicate Register = true, want false")
	}
}

// Empty credentials are a malformed request: the error is a validation
// reason, not the failed-authentication sentinel.
func TestAuthService_Register_EmptyCredentials(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	_, err := svc.Register(context.Background(), "", "pass")
	assertReason(t, err, "username and password required")

	_, err = svc.Register(context.Background(), "alice", "")
	assertReason(t, err, "username and password required")
}

func TestAuthService_Login_TokenClaims(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if ok, _ := svc.Register(context.Background(), "alice", "pass123"); !ok {
		t.Fatalf("Register failed")
	}

	token, err := svc.Login(context.Background(), "alice", "pass123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != repo.byName["alice"].ID {
		t.Fatalf("uid claim = %d, want %d", claims.UserID, repo.byName["alice"].ID)
	}
	if claims.Username != "alice" {
		t.Fatalf("username claim = %q, want %q", claims.Username, "alice")
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("token expiry missing or already passed")
	}
}

func TestAuthService_Login_Failures(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if ok, _ := svc.Register(context.Background(), "alice", "pass123"); !ok {
		t.Fatalf("Register failed")
	}

	// Unknown user.
	if _, err := svc.Login(context.Background(), "bob", "pass123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: error = %v, want ErrInvalidCredentials", err)
	}

	// Wrong password.
	if _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: error = %v, want ErrInvalidCredentials", err)
	}

	// Empty stored hash.
	repo.byName["ghost"] = &domain.User{ID: 99, Username: "ghost"}
	if _, err := svc.Login(context.Background(), "ghost", "anything"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("empty hash: error = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_DeleteAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if ok, _ := svc.Register(context.Background(), "alice", "pass123"); !ok {
		t.Fatalf("Register failed")
	}
	id := repo.byName["alice"].ID

	removed, err := svc.DeleteAccount(context.Background(), id)
	if err != nil {
		t.Fatalf("DeleteAccount error: %v", err)
	}
	if !removed {
		t.Fatalf("DeleteAccount = false, want true")
	}

	if removed, _ := svc.DeleteAccount(context.Background(), id); removed {
		t.Fatalf("second DeleteAccount = true, want false")
	}
	if removed, _ := svc.DeleteAccount(context.Background(), 0); removed {
		t.Fatalf("DeleteAccount(0) = true, want false")
	}
}
