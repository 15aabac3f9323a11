package app

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"gophertrophy/internal/model"
	"gophertrophy/internal/pkg/randtoken"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUsernameExists        = errors.New("username already in use")
	ErrUserNotFound          = errors.New("user does not exist")
	ErrInvalidCredential     = errors.New("invalid username or password")
	ErrMissingCredentials    = errors.New("missing authorization header")
	ErrInvalidToken          = errors.New("invalid token in authorization header")
	ErrInsufficientPrivilege = errors.New("admin privilege required")
)

// Level is the privilege a route demands from the authenticated caller.
type Level int

const (
	LevelUser Level = iota
	LevelAdmin
)

type UserStore interface {
	Create(user *model.User) error
	GetByUsername(username string) (*model.User, error)
	GetByID(id uint) (*model.User, error)
}

type TokenStore interface {
	Replace(token *model.Token) error
	GetByToken(token string) (*model.Token, error)
}

type AuthService struct {
	users       UserStore
	tokens      TokenStore
	bcryptCost  int
	tokenLength int
}

type RegisterInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(users UserStore, tokens TokenStore, bcryptCost, tokenLength int) *AuthService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if tokenLength <= 0 {
		tokenLength = 25
	}
	return &AuthService{
		users:       users,
		tokens:      tokens,
		bcryptCost:  bcryptCost,
		tokenLength: tokenLength,
	}
}

func (s *AuthService) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password failed: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

func (s *AuthService) Register(input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	password := input.Password
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:       username,
		HashedPassword: hash,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	password := input.Password
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if !s.VerifyPassword(password, user.HashedPassword) {
		return nil, ErrInvalidCredential
	}

	token, err := s.IssueToken(user.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// IssueToken mints a fresh opaque token and stores it as the single active
// token for the username. Any previous token stops working immediately.
func (s *AuthService) IssueToken(username string) (string, error) {
	token, err := randtoken.New(s.tokenLength)
	if err != nil {
		return "", err
	}

	if err := s.tokens.Replace(&model.Token{
		Username: username,
		Token:    token,
	}); err != nil {
		return "", err
	}
	return token, nil
}

// Authenticate resolves the acting user from a raw Authorization header
// value. The token and user lookups stay separate on purpose: an unknown
// token is a client error, a token whose backing user is gone is a
// data-integrity failure and must surface as an internal error.
func (s *AuthService) Authenticate(authHeader string, level Level) (*model.User, error) {
	raw := strings.TrimSpace(authHeader)
	if raw == "" {
		return nil, ErrMissingCredentials
	}

	// Clients may send either "Bearer <token>" or the bare token.
	token := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))

	row, err := s.tokens.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByUsername(row.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("token references missing user %q", row.Username)
	}

	if level == LevelAdmin && !user.IsAdmin {
		return nil, ErrInsufficientPrivilege
	}
	return user, nil
}
