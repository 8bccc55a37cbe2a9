package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"jewelry-store/internal/auth"
	"jewelry-store/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// UserStore is the slice of the user repository the service needs.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByID(ctx context.Context, id int) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
	Delete(ctx context.Context, id int) error
}

type UserService struct {
	repo   UserStore
	signer *auth.Signer
	rdb    *redis.Client
}

// NewUserService creates a new instance of UserService. rdb may be nil; the
// session mirror in redis is then skipped.
func NewUserService(repo UserStore, signer *auth.Signer, rdb *redis.Client) *UserService {
	return &UserService{repo: repo, signer: signer, rdb: rdb}
}

// RegisterDraft carries the self-registration fields. Self-registered
// accounts are always customers.
type RegisterDraft struct {
	Username  string
	FirstName string
	LastName  string
	Password  string
	Email     string
	Phone     string
}

func (s *UserService) Register(ctx context.Context, draft *RegisterDraft) (*entity.User, error) {
	if draft.Username == "" || draft.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", entity.ErrValidation)
	}

	hashed, err := auth.HashPassword(draft.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Error hashing password")
		return nil, err
	}

	user := &entity.User{
		Username:  draft.Username,
		FirstName: draft.FirstName,
		LastName:  draft.LastName,
		Email:     draft.Email,
		Phone:     draft.Phone,
		Password:  hashed,
		Type:      entity.RoleCustomer,
		Status:    entity.StatusActivated,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msgf("Error creating user %s", draft.Username)
		return nil, err
	}
	return created, nil
}

// Login authenticates by username and password and returns the user with a
// freshly issued token. A deactivated account is rejected before the
// password is checked, so the outcome does not depend on the password.
func (s *UserService) Login(ctx context.Context, username, password string) (*entity.User, string, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}

	if user.Status == entity.StatusDeactivated {
		return nil, "", fmt.Errorf("account %q: %w", username, entity.ErrAccountDeactivated)
	}

	if !auth.CheckPassword(password, user.Password) {
		return nil, "", fmt.Errorf("account %q: %w", username, entity.ErrInvalidCredentials)
	}

	token, err := s.signer.Issue(user)
	if err != nil {
		logger.Error().Err(err).Msgf("Error issuing token for %s", username)
		return nil, "", err
	}

	// Mirror the session in redis so tokens can be revoked out of band.
	if s.rdb != nil {
		key := fmt.Sprintf("session:%s", username)
		if err := s.rdb.Set(ctx, key, token, sessionTTL(s.signer.TTL)).Err(); err != nil {
			logger.Error().Err(err).Msgf("Error caching session for %s", username)
		}
	}

	return user, token, nil
}

func (s *UserService) List(ctx context.Context) ([]*entity.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing users")
		return nil, err
	}
	return users, nil
}

// UpdateDraft carries a profile update. An empty Password keeps the current
// hash.
type UpdateDraft struct {
	UserID    int
	Username  string
	FirstName string
	LastName  string
	Password  string
	Email     string
	Phone     string
}

// Update applies a profile update. Customers may only update their own
// record; admins may update anyone's.
func (s *UserService) Update(ctx context.Context, claims *auth.Claims, draft *UpdateDraft) (*entity.User, error) {
	if claims.Role != entity.RoleAdmin && claims.UserID != draft.UserID {
		return nil, fmt.Errorf("user %d may not update user %d: %w", claims.UserID, draft.UserID, entity.ErrForbidden)
	}

	user, err := s.repo.GetByID(ctx, draft.UserID)
	if err != nil {
		return nil, err
	}

	if draft.Username != "" {
		user.Username = draft.Username
	}
	if draft.FirstName != "" {
		user.FirstName = draft.FirstName
	}
	if draft.LastName != "" {
		user.LastName = draft.LastName
	}
	if draft.Email != "" {
		user.Email = draft.Email
	}
	if draft.Phone != "" {
		user.Phone = draft.Phone
	}
	if draft.Password != "" {
		hashed, err := auth.HashPassword(draft.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating user %d", draft.UserID)
		return nil, err
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		logger.Error().Err(err).Msgf("Error deleting user %d", id)
		return err
	}

	if s.rdb != nil {
		// Best effort; the token still expires on its own.
		if err := s.rdb.Del(ctx, fmt.Sprintf("session:%s", user.Username)).Err(); err != nil {
			logger.Warn().Err(err).Msgf("Error dropping session for user %d", id)
		}
	}
	return nil
}

// sessionTTL guards against a zero signer TTL leaving sessions immortal.
func sessionTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 24 * time.Hour
	}
	return ttl
}
