package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"

	"novasphere/internal/models"
	"novasphere/internal/repositories"
)

// SessionService holds the current user session. At most one session is
// active at a time; logging in replaces any prior session. The session is
// written through to the session slot on every change.
type SessionService struct {
	mu        sync.RWMutex
	user      *models.User
	repo      repositories.StateRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewSessionService creates a SessionService, restoring any persisted
// session. An unreadable slot restores as logged out.
func NewSessionService(repo repositories.StateRepository, jwtSecret string) *SessionService {
	s := &SessionService{
		repo:      repo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  24 * time.Hour,
	}
	user, err := repo.LoadSession()
	if err != nil {
		log.Printf("Failed to restore session, starting logged out: %v", err)
		return s
	}
	s.user = user
	return s
}

// Login fabricates a session for the given role and persists it. There is no
// credential check; the storefront is a single-user simulation. Ids are
// stable per role so order history survives a logout and re-login. The
// returned token authorizes the admin HTTP surface when the role is ADMIN.
func (s *SessionService) Login(role models.Role) (models.User, string, error) {
	id, username := "u1", "jane_doe"
	if role == models.RoleAdmin {
		id, username = "u2", "admin_boss"
	}
	user := models.User{
		ID:       id,
		Username: username,
		Email:    "user@example.com",
		Role:     role,
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	if err := s.repo.SaveSession(&user); err != nil {
		log.Printf("Failed to persist session: %v", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// Logout clears the session and its persisted copy. The cart is untouched.
func (s *SessionService) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.repo.ClearSession(); err != nil {
		log.Printf("Failed to clear persisted session: %v", err)
	}
}

// Current returns the active user, or nil when logged out.
func (s *SessionService) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

func (s *SessionService) issueToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses and validates a JWT token, returning the claims if
// valid.
func (s *SessionService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
