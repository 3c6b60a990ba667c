package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/RelojeriaCentral/taller-api/internal/audit"
	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/models"
)

// TokenTTL is the reset-token lifetime; a token is valid while it is
// unused and younger than this.
const TokenTTL = 24 * time.Hour

type Repository interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	UpdateUserPassword(ctx context.Context, userID uint, hash string) error

	CreateToken(ctx context.Context, t *models.PasswordResetToken) error
	GetToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	MarkTokenUsed(ctx context.Context, id uint) error
}

type Mailer interface {
	Send(to, subject, body string) error
}

// ======================================================
// USE CASE — password reset
// ======================================================

type PasswordReset struct {
	repo     Repository
	mailer   Mailer
	audit    *audit.Dispatcher
	resetURL string
	now      func() time.Time
}

func NewPasswordReset(
	repo Repository,
	mailer Mailer,
	audit *audit.Dispatcher,
	resetURL string,
) *PasswordReset {
	return &PasswordReset{
		repo:     repo,
		mailer:   mailer,
		audit:    audit,
		resetURL: resetURL,
		now:      time.Now,
	}
}

// Request issues a token and mails the reset link when username and email
// belong to the same account. A mismatch is reported to the caller the same
// way as a match, so the endpoint cannot be used to enumerate accounts.
func (uc *PasswordReset) Request(
	ctx context.Context,
	username, email string,
) error {

	user, err := uc.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return err
	}
	if user == nil || !strings.EqualFold(user.Email, strings.TrimSpace(email)) {
		return nil
	}

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		CreatedAt: uc.now(),
	}
	if err := uc.repo.CreateToken(ctx, token); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Haz clic en el siguiente enlace para cambiar tu contraseña: %s/%s\nEste enlace expirará en 24 horas.",
		uc.resetURL, token.Token,
	)
	if err := uc.mailer.Send(user.Email, "Recuperación de contraseña", body); err != nil {
		return httperr.ErrBusiness("mail_delivery_failed")
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &user.ID,
		Action: "password_reset_requested",
		Entity: "user",
	})

	return nil
}

// Consume validates the token and, in one pass, sets the new password and
// burns the token. Tokens are single use.
func (uc *PasswordReset) Consume(
	ctx context.Context,
	tokenValue, newPassword string,
) error {

	t, err := uc.repo.GetToken(ctx, tokenValue)
	if err != nil {
		return err
	}
	if t == nil {
		return httperr.ErrBusiness("invalid_token")
	}
	if t.Used || uc.now().Sub(t.CreatedAt) >= TokenTTL {
		return httperr.ErrBusiness("expired_token")
	}

	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := uc.repo.UpdateUserPassword(ctx, t.UserID, string(hash)); err != nil {
		return err
	}
	if err := uc.repo.MarkTokenUsed(ctx, t.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &t.UserID,
		Action: "password_reset_completed",
		Entity: "user",
	})

	return nil
}

// ======================================================
// USE CASE — authenticated password change
// ======================================================

type ChangePassword struct {
	repo  Repository
	audit *audit.Dispatcher
}

func NewChangePassword(repo Repository, audit *audit.Dispatcher) *ChangePassword {
	return &ChangePassword{repo: repo, audit: audit}
}

func (uc *ChangePassword) Execute(
	ctx context.Context,
	userID uint,
	current, newPassword string,
) error {

	user, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return httperr.ErrBusiness("user_not_found")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return httperr.ErrBusiness("invalid_credentials")
	}

	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uc.repo.UpdateUserPassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID: &user.ID,
		Action: "password_changed",
		Entity: "user",
	})

	return nil
}

// ValidatePassword applies the account password policy: at least eight
// characters and not purely numeric.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return httperr.ErrBusiness("password_too_short")
	}
	allDigits := true
	for _, r := range password {
		if r < '0' || r > '9' {
			allDigits = false
			break
		}
	}
	if allDigits {
		return httperr.ErrBusiness("password_entirely_numeric")
	}
	return nil
}
