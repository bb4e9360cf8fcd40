package auth

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/HarvestHub/HH-Backend/internal/store"
	"github.com/HarvestHub/HH-Backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"
)

// Durable keys, unchanged from the original client so an exported store file
// stays readable by it.
const (
	UsersKey   = "agri-ai-users"
	SessionKey = "agri-ai-session"
)

// Service owns the account lifecycle: signup, verification, credentialed and
// federated login, logout, and role selection. All state lives in the store
// accessor passed at construction; the service itself only holds the login
// throttles.
type Service struct {
	store *store.Accessor

	mu         sync.Mutex
	limiters   map[string]*rate.Limiter
	loginLimit rate.Limit
	loginBurst int
}

func NewService(acc *store.Accessor) *Service {
	return &Service{
		store:      acc,
		limiters:   make(map[string]*rate.Limiter),
		loginLimit: rate.Every(2 * time.Second),
		loginBurst: 5,
	}
}

// SetLoginLimit overrides the per-account login throttle.
func (s *Service) SetLoginLimit(limit rate.Limit, burst int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginLimit = limit
	s.loginBurst = burst
	s.limiters = make(map[string]*rate.Limiter)
}

// Signup creates an unverified password account. The duplicate-account error
// tells the user which sign-in method the existing account uses.
func (s *Service) Signup(email, password string) error {
	users, err := s.users()
	if err != nil {
		return err
	}
	if existing, ok := users[email]; ok {
		if existing.AuthMethod == MethodGoogle {
			return fmt.Errorf(`%w: this email is registered with Google, use "Sign in with Google"`, ErrAccountExists)
		}
		return fmt.Errorf("%w: an account with this email already exists, please sign in", ErrAccountExists)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	users[email] = User{
		Email:          email,
		Verified:       false,
		AuthMethod:     MethodEmail,
		HashedPassword: string(hashed),
	}
	if err := s.saveUsers(users); err != nil {
		return err
	}

	// Delivery is out of scope; the verify endpoint stands in for the link.
	log.Printf("verification email sent to %s (simulated)", email)
	return nil
}

// Verify marks a password account as verified. Federated accounts are born
// verified and are not valid targets.
func (s *Service) Verify(email string) error {
	users, err := s.users()
	if err != nil {
		return err
	}
	user, ok := users[email]
	if !ok || user.AuthMethod != MethodEmail {
		return fmt.Errorf("%w: no password account to verify for this email", ErrNotFound)
	}
	user.Verified = true
	users[email] = user
	return s.saveUsers(users)
}

// Login checks credentials against a verified password account and, on
// success, establishes the session pointer. The returned record carries no
// credential hash.
func (s *Service) Login(email, password string) (User, error) {
	if !s.allowLogin(email) {
		return User{}, fmt.Errorf("%w: wait a moment and try again", ErrTooManyAttempts)
	}

	users, err := s.users()
	if err != nil {
		return User{}, err
	}
	user, ok := users[email]
	if !ok {
		return User{}, fmt.Errorf("%w: no account found with this email", ErrNotFound)
	}
	if user.AuthMethod == MethodGoogle {
		return User{}, fmt.Errorf(`%w: this account was created with Google, use "Sign in with Google"`, ErrWrongAuthMethod)
	}
	if !user.Verified {
		return User{}, fmt.Errorf("%w: please verify your email before signing in", ErrNotVerified)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return User{}, ErrBadCredential
	}

	if err := s.setSession(email); err != nil {
		return User{}, err
	}
	return user.Sanitized(), nil
}

// LoginFederated signs in (creating on first use) a federated account. The
// account is auto-verified and gets a display name derived from the email's
// local part.
func (s *Service) LoginFederated(email string) (User, error) {
	users, err := s.users()
	if err != nil {
		return User{}, err
	}
	user, ok := users[email]
	if ok && user.AuthMethod == MethodEmail {
		return User{}, fmt.Errorf("%w: this account was created with an email and password, please sign in normally", ErrWrongAuthMethod)
	}
	if !ok {
		user = User{
			Email:       email,
			Verified:    true,
			AuthMethod:  MethodGoogle,
			DisplayName: displayNameFromEmail(email),
		}
		users[email] = user
		if err := s.saveUsers(users); err != nil {
			return User{}, err
		}
	}

	if err := s.setSession(email); err != nil {
		return User{}, err
	}
	return user.Sanitized(), nil
}

// Logout clears the session pointer. Logging out twice is fine.
func (s *Service) Logout() error {
	return s.store.Delete(SessionKey)
}

// SelectRole assigns a marketplace role to the account. Assigning the same
// role again is a no-op that still succeeds.
func (s *Service) SelectRole(email string, role Role) (User, error) {
	users, err := s.users()
	if err != nil {
		return User{}, err
	}
	user, ok := users[email]
	if !ok {
		return User{}, fmt.Errorf("%w: could not find user to update role", ErrNotFound)
	}
	user.Role = role
	users[email] = user
	if err := s.saveUsers(users); err != nil {
		return User{}, err
	}
	return user.Sanitized(), nil
}

// CurrentSession returns the record behind the session pointer, or nil when
// nobody is logged in. A dangling pointer reads as no session.
func (s *Service) CurrentSession() (*User, error) {
	var email string
	found, err := s.store.GetJSON(SessionKey, &email)
	if err != nil {
		return nil, err
	}
	if !found || email == "" {
		return nil, nil
	}

	users, err := s.users()
	if err != nil {
		return nil, err
	}
	user, ok := users[email]
	if !ok {
		return nil, nil
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// ActiveSession implements middleware.SessionFetcher.
func (s *Service) ActiveSession() (*utils.SessionData, error) {
	user, err := s.CurrentSession()
	if err != nil || user == nil {
		return nil, err
	}
	return &utils.SessionData{Email: user.Email, Role: string(user.Role)}, nil
}

// EnsureAccount creates a verified password account with a role if no record
// exists yet. The demo seeder uses it; existing accounts are left untouched.
func (s *Service) EnsureAccount(email, password string, role Role, displayName string) error {
	users, err := s.users()
	if err != nil {
		return err
	}
	if _, ok := users[email]; ok {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	users[email] = User{
		Email:          email,
		Role:           role,
		Verified:       true,
		DisplayName:    displayName,
		AuthMethod:     MethodEmail,
		HashedPassword: string(hashed),
	}
	return s.saveUsers(users)
}

func (s *Service) users() (map[string]User, error) {
	users := make(map[string]User)
	if _, err := s.store.GetJSON(UsersKey, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) saveUsers(users map[string]User) error {
	return s.store.PutJSON(UsersKey, users)
}

func (s *Service) setSession(email string) error {
	return s.store.PutJSON(SessionKey, email)
}

// maxLoginLimiters bounds the throttle map. Anyone can grow it by probing
// emails, so it cannot be left unbounded.
const maxLoginLimiters = 10000

func (s *Service) allowLogin(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	lim, ok := s.limiters[email]
	if !ok {
		if len(s.limiters) >= maxLoginLimiters {
			s.pruneLimitersLocked()
		}
		lim = rate.NewLimiter(s.loginLimit, s.loginBurst)
		s.limiters[email] = lim
	}
	return lim.Allow()
}

// pruneLimitersLocked drops limiters whose burst has fully replenished. Such
// accounts are indistinguishable from ones that never attempted a login, so
// nothing is lost by recreating their limiter on the next attempt.
func (s *Service) pruneLimitersLocked() {
	for email, lim := range s.limiters {
		if lim.Tokens() >= float64(s.loginBurst) {
			delete(s.limiters, email)
		}
	}
}

var titleCaser = cases.Title(language.English)

// displayNameFromEmail turns "jane.doe@x.com" into "Jane Doe": the local
// part with every non-alphanumeric run collapsed to one space and each word
// capitalized.
func displayNameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return ' '
	}, local)
	return titleCaser.String(strings.Join(strings.Fields(mapped), " "))
}
