package authsvc

import (
	"context"
	"strings"
	"sync"
	"taskClient/internal/logger"
	"taskClient/internal/models/user"
	"taskClient/internal/stub/respond"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = respond.NewBusinessError("USERNAME_TAKEN", "Username already exists")
	ErrInvalidCredentials = respond.NewBusinessError("INVALID_CREDENTIALS", "Invalid username or password")
	ErrUserNotFound       = respond.NewBusinessError("UNAUTHORIZED", "User not found")
)

type account struct {
	username     string
	passwordHash []byte
	avatarURL    string
}

type Tokens interface {
	Issue(username string) (string, error)
	Parse(token string) (string, error)
}

// Service сервис авторизации в памяти
type Service struct {
	mtx      sync.RWMutex
	accounts map[string]*account
	tokens   Tokens
	cost     int
}

func NewService(tokens Tokens) *Service {
	return &Service{
		accounts: make(map[string]*account),
		tokens:   tokens,
		cost:     bcrypt.DefaultCost,
	}
}

func validateCredentials(creds user.Credentials) error {
	if strings.TrimSpace(creds.Username) == "" {
		return respond.NewValidationError("username", "must be provided")
	}
	if creds.Password == "" {
		return respond.NewValidationError("password", "must be provided")
	}
	return nil
}

func (s *Service) Register(ctx context.Context, creds user.Credentials) (user.AuthResponse, error) {
	if err := validateCredentials(creds); err != nil {
		return user.AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.cost)
	if err != nil {
		return user.AuthResponse{}, err
	}

	s.mtx.Lock()
	if _, ok := s.accounts[creds.Username]; ok {
		s.mtx.Unlock()
		logger.Warn("Auth: Имя занято", zap.String("username", creds.Username))
		return user.AuthResponse{}, ErrUsernameTaken
	}
	s.accounts[creds.Username] = &account{username: creds.Username, passwordHash: hash}
	s.mtx.Unlock()

	logger.Info("Auth: Пользователь зарегистрирован", zap.String("username", creds.Username))
	return s.issue(creds.Username)
}

func (s *Service) Login(ctx context.Context, creds user.Credentials) (user.AuthResponse, error) {
	s.mtx.RLock()
	acc, ok := s.accounts[creds.Username]
	s.mtx.RUnlock()
	if !ok {
		return user.AuthResponse{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(creds.Password)); err != nil {
		return user.AuthResponse{}, ErrInvalidCredentials
	}
	return s.issue(creds.Username)
}

func (s *Service) issue(username string) (user.AuthResponse, error) {
	signed, err := s.tokens.Issue(username)
	if err != nil {
		return user.AuthResponse{}, err
	}
	return user.AuthResponse{Token: signed, Username: username}, nil
}

func (s *Service) Validate(token string) bool {
	username, err := s.tokens.Parse(token)
	if err != nil {
		return false
	}
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	_, ok := s.accounts[username]
	return ok
}

func (s *Service) Profile(ctx context.Context, username string) (user.Profile, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	acc, ok := s.accounts[username]
	if !ok {
		return user.Profile{}, ErrUserNotFound
	}
	return user.Profile{Username: acc.username, AvatarURL: acc.avatarURL}, nil
}

// UpdateProfile меняет имя, если оно свободно, и аватар, если он передан
func (s *Service) UpdateProfile(ctx context.Context, username string, update user.Profile) (user.Profile, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	acc, ok := s.accounts[username]
	if !ok {
		return user.Profile{}, ErrUserNotFound
	}

	if update.Username != "" && update.Username != acc.username {
		if _, taken := s.accounts[update.Username]; taken {
			return user.Profile{}, ErrUsernameTaken
		}
		delete(s.accounts, acc.username)
		acc.username = update.Username
		s.accounts[acc.username] = acc
		logger.Info("Auth: Пользователь переименован", zap.String("from", username), zap.String("to", acc.username))
	}
	if update.AvatarURL != "" {
		acc.avatarURL = update.AvatarURL
	}

	return user.Profile{Username: acc.username, AvatarURL: acc.avatarURL}, nil
}
