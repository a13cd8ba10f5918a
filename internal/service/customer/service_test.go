package customer

import (
	"context"
	"errors"
	"testing"

	"bookhaven/internal/domain"
	custrepo "bookhaven/internal/repository/customer"
	tokenrepo "bookhaven/internal/repository/token"
)

// memoryRepo is a lightweight in-memory customer repository for tests.
type memoryRepo struct {
	byEmail map[string]domain.Customer
	nextID  int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byEmail: make(map[string]domain.Customer)}
}

func (r *memoryRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	if _, exists := r.byEmail[c.Email]; exists {
		return nil, domain.ErrAlreadyExists
	}
	r.nextID++
	c.ID = string(rune('a' + r.nextID))
	r.byEmail[c.Email] = c
	clone := c
	return &clone, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	for _, c := range r.byEmail {
		if c.ID == id {
			clone := c
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*domain.Customer, error) {
	c, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := c
	return &clone, nil
}

func (r *memoryRepo) UpdateProfile(_ context.Context, id string, in custrepo.ProfileUpdate) (*domain.Customer, error) {
	for email, c := range r.byEmail {
		if c.ID == id {
			c.FirstName = in.FirstName
			c.LastName = in.LastName
			c.Address = in.Address
			r.byEmail[email] = c
			clone := c
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	for email, c := range r.byEmail {
		if c.ID == id {
			c.PasswordHash = hash
			r.byEmail[email] = c
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memoryRepo) AddLoyaltyPoints(_ context.Context, id string, points int) error {
	for email, c := range r.byEmail {
		if c.ID == id {
			c.LoyaltyPoints += points
			r.byEmail[email] = c
			return nil
		}
	}
	return domain.ErrNotFound
}

type memoryTokenRepo struct {
	tokens map[string]tokenrepo.Token
}

func newMemoryTokenRepo() *memoryTokenRepo {
	return &memoryTokenRepo{tokens: make(map[string]tokenrepo.Token)}
}

func (r *memoryTokenRepo) Create(_ context.Context, token tokenrepo.Token) error {
	if _, exists := r.tokens[token.Token]; exists {
		return domain.ErrAlreadyExists
	}
	r.tokens[token.Token] = token
	return nil
}

func (r *memoryTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := r.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := t
	return &clone, nil
}

func (r *memoryTokenRepo) Delete(_ context.Context, token string) error {
	if _, ok := r.tokens[token]; !ok {
		return domain.ErrNotFound
	}
	delete(r.tokens, token)
	return nil
}

func TestSignupAndLogin(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryTokenRepo())

	created, err := svc.Signup(context.Background(), SignupInput{
		Email:     "Reader@Example.com",
		Password:  "Bookworm1",
		FirstName: "Ada",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if created.Email != "reader@example.com" {
		t.Fatalf("expected lowercased email, got %q", created.Email)
	}
	if created.PasswordHash == "Bookworm1" {
		t.Fatalf("password stored in plain text")
	}

	c, access, refresh, err := svc.Login(context.Background(), "reader@example.com", "Bookworm1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if c.ID != created.ID || access == "" || refresh == "" || access == refresh {
		t.Fatalf("unexpected login result customer=%+v access=%q refresh=%q", c, access, refresh)
	}

	fetched, err := svc.LookupByToken(context.Background(), access)
	if err != nil {
		t.Fatalf("lookup by token: %v", err)
	}
	if fetched.ID != created.ID {
		t.Fatalf("token resolved wrong customer %+v", fetched)
	}

	// Refresh tokens must not authenticate requests.
	if _, err := svc.LookupByToken(context.Background(), refresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for refresh token, got %v", err)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryTokenRepo())
	in := SignupInput{Email: "dup@example.com", Password: "Bookworm1"}
	if _, err := svc.Signup(context.Background(), in); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := svc.Signup(context.Background(), in); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestSignupWeakPassword(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryTokenRepo())
	cases := []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"}
	for _, password := range cases {
		if _, err := svc.Signup(context.Background(), SignupInput{Email: "a@b.c", Password: password}); err == nil {
			t.Fatalf("expected rejection of weak password %q", password)
		}
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryTokenRepo())
	if _, err := svc.Signup(context.Background(), SignupInput{Email: "x@y.z", Password: "Bookworm1"}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "x@y.z", "Wrong1password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "nobody@y.z", "Bookworm1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryTokenRepo())
	created, err := svc.Signup(context.Background(), SignupInput{Email: "p@q.r", Password: "Bookworm1"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), created.ID, "Wrong1password", "Newpassword1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), created.ID, "Bookworm1", "weak"); err == nil {
		t.Fatalf("expected weak password rejection")
	}
	if err := svc.ChangePassword(context.Background(), created.ID, "Bookworm1", "Newpassword1"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "p@q.r", "Newpassword1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := New(newMemoryRepo(), newMemoryTokenRepo())
	if _, err := svc.Signup(context.Background(), SignupInput{Email: "l@m.n", Password: "Bookworm1"}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	_, access, _, err := svc.Login(context.Background(), "l@m.n", "Bookworm1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(context.Background(), access); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.LookupByToken(context.Background(), access); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected revoked token to be invalid, got %v", err)
	}
	// Logging out twice is harmless.
	if err := svc.Logout(context.Background(), access); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}

func TestAddLoyaltyPoints(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo, newMemoryTokenRepo())
	created, err := svc.Signup(context.Background(), SignupInput{Email: "pts@b.c", Password: "Bookworm1"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if err := svc.AddLoyaltyPoints(context.Background(), created.ID, 60); err != nil {
		t.Fatalf("add points: %v", err)
	}
	if err := svc.AddLoyaltyPoints(context.Background(), created.ID, 0); err != nil {
		t.Fatalf("zero points should be a no-op, got %v", err)
	}
	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.LoyaltyPoints != 60 {
		t.Fatalf("expected 60 points, got %d", got.LoyaltyPoints)
	}
}
