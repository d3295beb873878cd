package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jonyprachine123/test-2/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for an unknown user or a wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for a malformed, forged or expired token
	ErrInvalidToken = errors.New("invalid token")
)

// Account is a back-office login as configured
type Account struct {
	Username string
	Password string
	Role     string
}

// Config configures token signing and the known accounts
type Config struct {
	Secret   []byte
	TokenTTL time.Duration
	Accounts []Account
}

// Service authenticates admins and issues HS256 tokens
type Service struct {
	secret []byte
	ttl    time.Duration
	users  map[string]*model.User
	now    func() time.Time
}

// NewService hashes the configured passwords and returns a ready Service
func NewService(cfg Config) (*Service, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}

	users := make(map[string]*model.User, len(cfg.Accounts))
	for i, account := range cfg.Accounts {
		if account.Username == "" || account.Password == "" {
			return nil, fmt.Errorf("account %d: username and password are required", i)
		}
		if _, exists := users[account.Username]; exists {
			return nil, fmt.Errorf("account %q is configured twice", account.Username)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %q: %w", account.Username, err)
		}
		role := account.Role
		if role == "" {
			role = model.RoleAdmin
		}
		users[account.Username] = &model.User{
			ID:           strconv.Itoa(i + 1),
			Username:     account.Username,
			PasswordHash: string(hash),
			Role:         role,
		}
	}

	return &Service{
		secret: cfg.Secret,
		ttl:    cfg.TokenTTL,
		users:  users,
		now:    time.Now,
	}, nil
}

// Login checks the credentials and returns a signed token
func (s *Service) Login(username, password string) (*model.LoginResponse, error) {
	user, exists := s.users[username]
	if !exists {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiresAt := s.now().Add(s.ttl)
	token, err := s.generateJWT(user, expiresAt)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		User:      *user,
	}, nil
}

// ValidateToken verifies the token and returns the user it was issued to
func (s *Service) ValidateToken(tokenString string) (*model.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &model.User{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

func (s *Service) generateJWT(user *model.User, expiresAt time.Time) (string, error) {
	claims := &model.JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(s.now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
