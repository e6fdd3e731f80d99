package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbreban/accounts-backend/internal/config"
	"github.com/vbreban/accounts-backend/internal/models"
	"github.com/vbreban/accounts-backend/internal/repositories/users"
)

type recordingNotifier struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	email string
	token string
}

func (n *recordingNotifier) SendVerification(email, token string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentMail{email: email, token: token})
	return nil
}

func newTestService(expiry time.Duration) (*UserService, *users.InMemoryRepository, *recordingNotifier) {
	repo := users.NewInMemoryRepository()
	rec := &recordingNotifier{}
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: expiry}
	return NewUserService(repo, rec, cfg), repo, rec
}

func TestSignup_ThenLogin(t *testing.T) {
	svc, _, rec := newTestService(time.Hour)

	user, err := svc.Signup("a@b.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStarter, user.Subscription)
	assert.False(t, user.Verify)
	require.NotNil(t, user.VerificationToken)
	assert.NotEmpty(t, user.AvatarURL)
	assert.NotEqual(t, "password1", user.Password, "password must be stored hashed")

	require.Len(t, rec.sent, 1)
	assert.Equal(t, "a@b.com", rec.sent[0].email)
	assert.Equal(t, *user.VerificationToken, rec.sent[0].token)

	token, loggedIn, err := svc.Login("a@b.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	id, ok := svc.VerifyToken(token)
	require.True(t, ok)
	assert.Equal(t, user.ID, id)
}

func TestSignup_Validation(t *testing.T) {
	svc, _, _ := newTestService(time.Hour)

	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"missing email", "", "password1", ErrEmailPasswordRequired},
		{"missing password", "a@b.com", "", ErrEmailPasswordRequired},
		{"bad email shape", "not-an-email", "password1", ErrInvalidEmail},
		{"no tld", "a@b", "password1", ErrInvalidEmail},
		{"short password", "a@b.com", "seven77", ErrPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(tt.email, tt.password)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(time.Hour)

	_, err := svc.Signup("a@b.com", "password1")
	require.NoError(t, err)

	_, err = svc.Signup("a@b.com", "differentpassword")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignup_NotifierFailureDoesNotRollBack(t *testing.T) {
	svc, repo, rec := newTestService(time.Hour)
	rec.err = errors.New("relay unreachable")

	_, err := svc.Signup("a@b.com", "password1")
	require.NoError(t, err)

	stored, err := repo.ByEmail("a@b.com")
	require.NoError(t, err)
	assert.False(t, stored.Verify)
	require.NotNil(t, stored.VerificationToken)

	// Recovery path: a later re-request still works.
	rec.err = nil
	require.NoError(t, svc.RequestVerification("a@b.com"))
	require.Len(t, rec.sent, 1)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestService(time.Hour)

	_, err := svc.Signup("a@b.com", "password1")
	require.NoError(t, err)

	_, _, errWrongPassword := svc.Login("a@b.com", "wrong-password")
	_, _, errUnknownEmail := svc.Login("nobody@b.com", "password1")

	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
	assert.Equal(t, "Email or password is wrong", errWrongPassword.Error())
}

func TestLogin_PersistsToken(t *testing.T) {
	svc, repo, _ := newTestService(time.Hour)

	user, err := svc.Signup("a@b.com", "password1")
	require.NoError(t, err)

	token, _, err := svc.Login("a@b.com", "password1")
	require.NoError(t, err)

	stored, err := repo.ByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Token)
	assert.Equal(t, token, *stored.Token)
}

func TestVerifyToken_Expired(t *testing.T) {
	svc, _, _ := newTestService(-1 * time.Second)

	_, err := svc.Signup("a@b.com", "password1")
	require.NoError(t, err)

	token, _, err := svc.Login("a@b.com", "password1")
	require.NoError(t, err)

	_, ok := svc.VerifyToken(token)
	assert.False(t, ok)
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc, _, _ := newTestService(time.Hour)

	_, ok := svc.VerifyToken("not-a-token")
	assert.False(t, ok)
}

func TestVerificationLifecycle(t *testing.T) {
	svc, repo, rec := newTestService(time.Hour)

	_, err := svc.Signup("a@b.com", "password1")
	require.NoError(t, err)
	token := rec.sent[0].token

	pending, err := svc.PendingVerification(token)
	require.NoError(t, err)
	assert.True(t, pending)

	require.NoError(t, svc.ConfirmEmail(token))

	stored, err := repo.ByEmail("a@b.com")
	require.NoError(t, err)
	assert.True(t, stored.Verify)
	assert.Nil(t, stored.VerificationToken, "verified user must hold no verification token")

	// The same token no longer matches the unverified filter.
	pending, err = svc.PendingVerification(token)
	require.NoError(t, err)
	assert.False(t, pending)

	assert.ErrorIs(t, svc.ConfirmEmail("unknown-token"), ErrUserNotFound)
}

func TestRequestVerification(t *testing.T) {
	svc, repo, rec := newTestService(time.Hour)

	_, err := svc.Signup("a@b.com", "password1")
	require.NoError(t, err)
	first := rec.sent[0].token

	require.NoError(t, svc.RequestVerification("a@b.com"))
	require.Len(t, rec.sent, 2)
	assert.NotEqual(t, first, rec.sent[1].token, "re-request must rotate the token")

	stored, err := repo.ByEmail("a@b.com")
	require.NoError(t, err)
	assert.Equal(t, rec.sent[1].token, *stored.VerificationToken)

	assert.ErrorIs(t, svc.RequestVerification(""), ErrMissingEmail)
	assert.ErrorIs(t, svc.RequestVerification("nobody@b.com"), ErrUserNotFound)
}

func TestRequestVerification_AlreadyVerified(t *testing.T) {
	svc, repo, rec := newTestService(time.Hour)

	_, err := svc.Signup("a@b.com", "password1")
	require.NoError(t, err)
	require.NoError(t, svc.ConfirmEmail(rec.sent[0].token))

	err = svc.RequestVerification("a@b.com")
	assert.ErrorIs(t, err, ErrAlreadyVerified)

	// No mail, no mutation.
	assert.Len(t, rec.sent, 1)
	stored, err := repo.ByEmail("a@b.com")
	require.NoError(t, err)
	assert.True(t, stored.Verify)
	assert.Nil(t, stored.VerificationToken)
}

func TestLogout(t *testing.T) {
	svc, repo, _ := newTestService(time.Hour)

	user, err := svc.Signup("a@b.com", "password1")
	require.NoError(t, err)
	_, _, err = svc.Login("a@b.com", "password1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(user.ID))

	stored, err := repo.ByID(user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Token)

	assert.ErrorIs(t, svc.Logout(uuid.New()), ErrUserNotFound)
}

func TestUpdateSubscription(t *testing.T) {
	svc, _, _ := newTestService(time.Hour)

	user, err := svc.Signup("a@b.com", "password1")
	require.NoError(t, err)

	updated, err := svc.UpdateSubscription(user.ID, models.SubscriptionPro)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionPro, updated.Subscription)

	_, err = svc.UpdateSubscription(user.ID, "platinum")
	assert.ErrorIs(t, err, ErrInvalidSubscription)

	_, err = svc.UpdateSubscription(uuid.New(), models.SubscriptionPro)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteByEmail(t *testing.T) {
	svc, repo, _ := newTestService(time.Hour)

	_, err := svc.Signup("a@b.com", "password1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByEmail("a@b.com"))
	_, err = repo.ByEmail("a@b.com")
	assert.ErrorIs(t, err, users.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteByEmail("a@b.com"), ErrUserNotFound)
}

func TestGravatarURL_Deterministic(t *testing.T) {
	a := gravatarURL("A@B.com ")
	b := gravatarURL("a@b.com")
	assert.Equal(t, a, b, "avatar is derived from the normalized email")
	assert.Equal(t, "https://www.gravatar.com/avatar/357a20e8c56e69d6f9734d23ef9517e8", b)
}
