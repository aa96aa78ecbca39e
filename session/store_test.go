package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":          float64(7),
		"full_name":    "Dana Weber",
		"company_id":   float64(3),
		"company_type": CompanyTypeSupplier,
		"is_admin":     false,
		"exp":          testNow.Add(time.Hour).Unix(),
	}
}

type fakeStorage struct {
	token    string
	loadErr  error
	saved    []string
	clears   int
	clearErr error
}

func (f *fakeStorage) Load() (string, error) { return f.token, f.loadErr }
func (f *fakeStorage) Save(token string) error {
	f.saved = append(f.saved, token)
	f.token = token
	return nil
}
func (f *fakeStorage) Clear() error {
	f.clears++
	f.token = ""
	return f.clearErr
}

type fakeLogin struct {
	token string
	err   error
	calls int
}

func (f *fakeLogin) Login(ctx context.Context, email, password string) (string, error) {
	f.calls++
	return f.token, f.err
}

func newTestStore(storage TokenStorage) *Store {
	s := NewStore(storage)
	s.now = func() time.Time { return testNow }
	return s
}

func TestInitializeAdoptsStoredToken(t *testing.T) {
	storage := &fakeStorage{token: mintToken(t, validClaims())}
	store := newTestStore(storage)

	if !store.Initializing() {
		t.Fatal("store must report initializing before Initialize")
	}
	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if store.Initializing() {
		t.Fatal("store still initializing after Initialize")
	}

	sess := store.Current()
	if sess == nil {
		t.Fatal("expected a session")
	}
	if sess.UserID != 7 || sess.FullName != "Dana Weber" || sess.CompanyID != 3 {
		t.Fatalf("session = %+v", sess)
	}
	if !sess.IsSupplier() || sess.IsBuyer() || sess.IsAdmin {
		t.Fatalf("role flags = %+v", sess)
	}
	if store.Token() != storage.token {
		t.Fatal("Token() must return the stored raw token")
	}
}

func TestInitializeDiscardsExpiredToken(t *testing.T) {
	claims := validClaims()
	claims["exp"] = testNow.Add(-time.Minute).Unix()
	storage := &fakeStorage{token: mintToken(t, claims)}
	store := newTestStore(storage)

	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if store.Current() != nil {
		t.Fatal("expired token must not produce a session")
	}
	if store.Token() != "" {
		t.Fatal("expired token must not be retained")
	}
	if storage.clears != 1 {
		t.Fatalf("storage.Clear called %d times, want 1", storage.clears)
	}
}

func TestInitializeDiscardsGarbageToken(t *testing.T) {
	storage := &fakeStorage{token: "not-a-jwt"}
	store := newTestStore(storage)

	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if store.Current() != nil {
		t.Fatal("garbage token must not produce a session")
	}
	if storage.clears != 1 {
		t.Fatalf("storage.Clear called %d times, want 1", storage.clears)
	}
}

func TestInitializeWithEmptyStorage(t *testing.T) {
	storage := &fakeStorage{}
	store := newTestStore(storage)

	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if store.Current() != nil {
		t.Fatal("no stored token must mean no session")
	}
	if store.Initializing() {
		t.Fatal("store still initializing after Initialize")
	}
}

func TestLoginPersistsAndAdopts(t *testing.T) {
	token := mintToken(t, validClaims())
	storage := &fakeStorage{}
	store := newTestStore(storage)
	client := &fakeLogin{token: token}

	sess, err := store.Login(context.Background(), client, "dana@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if client.calls != 1 {
		t.Fatalf("client.Login called %d times, want 1", client.calls)
	}
	if sess.UserID != 7 {
		t.Fatalf("UserID = %d, want 7", sess.UserID)
	}
	if len(storage.saved) != 1 || storage.saved[0] != token {
		t.Fatal("token must be persisted exactly once")
	}
	if store.Token() != token {
		t.Fatal("Token() must return the fresh token")
	}
}

func TestLoginFailureLeavesStoreEmpty(t *testing.T) {
	storage := &fakeStorage{}
	store := newTestStore(storage)
	client := &fakeLogin{err: errors.New("401")}

	if _, err := store.Login(context.Background(), client, "dana@example.com", "wrong"); err == nil {
		t.Fatal("expected error")
	}
	if store.Current() != nil || store.Token() != "" {
		t.Fatal("failed login must not adopt a session")
	}
	if len(storage.saved) != 0 {
		t.Fatal("failed login must not persist anything")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	storage := &fakeStorage{token: mintToken(t, validClaims())}
	store := newTestStore(storage)
	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if err := store.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if store.Current() != nil || store.Token() != "" {
		t.Fatal("logout must drop the session")
	}
	if storage.clears != 1 {
		t.Fatalf("storage.Clear called %d times, want 1", storage.clears)
	}
}

func TestCurrentReturnsACopy(t *testing.T) {
	storage := &fakeStorage{token: mintToken(t, validClaims())}
	store := newTestStore(storage)
	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	first := store.Current()
	first.IsAdmin = true
	if store.Current().IsAdmin {
		t.Fatal("mutating the returned session must not affect the store")
	}
}

func TestDecodeTokenErrors(t *testing.T) {
	expired := validClaims()
	expired["exp"] = testNow.Add(-time.Second).Unix()
	if _, err := decodeToken(mintToken(t, expired), testNow); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expired token: err = %v, want ErrTokenExpired", err)
	}

	noExp := validClaims()
	delete(noExp, "exp")
	if _, err := decodeToken(mintToken(t, noExp), testNow); !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("missing exp: err = %v, want ErrMalformedToken", err)
	}

	noSub := validClaims()
	delete(noSub, "sub")
	if _, err := decodeToken(mintToken(t, noSub), testNow); !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("missing sub: err = %v, want ErrMalformedToken", err)
	}

	if _, err := decodeToken("garbage", testNow); !errors.Is(err, ErrMalformedToken) {
		t.Fatalf("garbage: err = %v, want ErrMalformedToken", err)
	}
}

func TestDecodeTokenAdminClaim(t *testing.T) {
	claims := validClaims()
	claims["is_admin"] = true
	claims["company_type"] = CompanyTypeBuyer

	sess, err := decodeToken(mintToken(t, claims), testNow)
	if err != nil {
		t.Fatalf("decodeToken: %v", err)
	}
	if !sess.IsAdmin || !sess.IsBuyer() {
		t.Fatalf("session = %+v, want admin buyer", sess)
	}
}
