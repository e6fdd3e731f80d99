package services

import (
	"crypto/md5"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/vbreban/accounts-backend/internal/auth"
	"github.com/vbreban/accounts-backend/internal/config"
	"github.com/vbreban/accounts-backend/internal/models"
	"github.com/vbreban/accounts-backend/internal/notifier"
	"github.com/vbreban/accounts-backend/internal/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// Sentinel errors carry the messages returned to API clients. Login failures
// share a single message so a caller cannot tell an unknown email from a
// wrong password; signup, deliberately, does reveal "Email in use".
var (
	ErrEmailPasswordRequired = errors.New("Email and password are required")
	ErrInvalidEmail          = errors.New("Invalid email format")
	ErrPasswordTooShort      = errors.New("Password must be at least 8 characters long")
	ErrEmailTaken            = errors.New("Email in use")
	ErrInvalidCredentials    = errors.New("Email or password is wrong")
	ErrUserNotFound          = errors.New("User not found")
	ErrAlreadyVerified       = errors.New("Verification has already been passed")
	ErrInvalidSubscription   = errors.New("Invalid subscription")
	ErrMissingEmail          = errors.New("Missing required field email")
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserService implements the account credential lifecycle: signup, login,
// bearer-token verification, email verification, logout, subscription
// changes and deletion.
type UserService struct {
	repo     users.Repository
	notifier notifier.Notifier
	cfg      *config.Config
}

func NewUserService(repo users.Repository, n notifier.Notifier, cfg *config.Config) *UserService {
	return &UserService{repo: repo, notifier: n, cfg: cfg}
}

// Signup creates an unverified account and sends the verification link. The
// returned record still carries the password hash internally; handlers must
// project it through dto.UserResponse.
func (s *UserService) Signup(email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrEmailPasswordRequired
	}
	if !emailRegex.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.repo.ByEmail(email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	verificationToken := uuid.NewString()
	user := &models.User{
		ID:                uuid.New(),
		Email:             email,
		Password:          string(hash),
		Subscription:      models.SubscriptionStarter,
		AvatarURL:         gravatarURL(email),
		Verify:            false,
		VerificationToken: &verificationToken,
	}

	if err := s.repo.Create(user); err != nil {
		// A concurrent signup for the same email loses here.
		if errors.Is(err, users.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.sendVerification(email, verificationToken)
	return user, nil
}

// Login verifies credentials, issues a bearer token and persists it on the
// record so logout can clear it later.
func (s *UserService) Login(email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, ErrEmailPasswordRequired
	}

	user, err := s.repo.ByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID.String(), []byte(s.cfg.JWTSecret), s.cfg.JWTExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	user.Token = &token
	if err := s.repo.Update(user); err != nil {
		return "", nil, fmt.Errorf("failed to store token: %w", err)
	}

	return token, user, nil
}

// VerifyToken resolves a bearer token to the user identifier it was issued
// for. Malformed, expired or tampered tokens all come back as ok=false.
func (s *UserService) VerifyToken(token string) (uuid.UUID, bool) {
	userID, ok := auth.ParseUserID(token, []byte(s.cfg.JWTSecret))
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// CurrentUser loads the record behind an authenticated identity.
func (s *UserService) CurrentUser(id uuid.UUID) (*models.User, error) {
	user, err := s.repo.ByID(id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// RequestVerification regenerates the verification token and re-sends the
// link. An already-verified account is never touched.
func (s *UserService) RequestVerification(email string) error {
	if email == "" {
		return ErrMissingEmail
	}

	user, err := s.repo.ByEmail(email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.Verify {
		return ErrAlreadyVerified
	}

	token := uuid.NewString()
	user.VerificationToken = &token
	if err := s.repo.Update(user); err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}

	s.sendVerification(email, token)
	return nil
}

// PendingVerification reports whether token belongs to a record that has not
// completed verification yet. It performs no mutation; ConfirmEmail does.
func (s *UserService) PendingVerification(token string) (bool, error) {
	_, err := s.repo.ByVerificationToken(token, true)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ConfirmEmail marks the record holding token as verified and clears the
// token, keeping the invariant that a verified user has none.
func (s *UserService) ConfirmEmail(token string) error {
	user, err := s.repo.ByVerificationToken(token, false)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	user.Verify = true
	user.VerificationToken = nil
	if err := s.repo.Update(user); err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	return nil
}

// Logout clears the stored bearer token.
func (s *UserService) Logout(id uuid.UUID) error {
	user, err := s.repo.ByID(id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	user.Token = nil
	if err := s.repo.Update(user); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

// UpdateSubscription changes the plan tier and returns the updated record.
func (s *UserService) UpdateSubscription(id uuid.UUID, tier string) (*models.User, error) {
	if !models.ValidSubscription(tier) {
		return nil, ErrInvalidSubscription
	}

	user, err := s.repo.ByID(id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Subscription = tier
	if err := s.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	return user, nil
}

// DeleteByEmail removes the record entirely.
func (s *UserService) DeleteByEmail(email string) error {
	if err := s.repo.DeleteByEmail(email); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// sendVerification is fire-and-forget: a delivery failure is logged and the
// preceding state change stands. The user can recover via POST /verify.
func (s *UserService) sendVerification(email, token string) {
	if err := s.notifier.SendVerification(email, token); err != nil {
		slog.Error("verification email delivery failed", "email", email, "error", err)
	}
}

func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x", sum)
}
