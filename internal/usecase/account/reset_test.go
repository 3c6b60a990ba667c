package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/RelojeriaCentral/taller-api/internal/audit"
	"github.com/RelojeriaCentral/taller-api/internal/httperr"
	"github.com/RelojeriaCentral/taller-api/internal/models"
)

// ======================================================
// Fakes
// ======================================================

type fakeAccountRepo struct {
	users  map[uint]*models.User
	tokens map[string]*models.PasswordResetToken
	nextID uint
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		users:  map[uint]*models.User{},
		tokens: map[string]*models.PasswordResetToken{},
		nextID: 1,
	}
}

func (f *fakeAccountRepo) addUser(username, email, password string) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &models.User{
		ID:           f.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	f.nextID++
	f.users[u.ID] = u
	return u
}

func (f *fakeAccountRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountRepo) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAccountRepo) UpdateUserPassword(_ context.Context, userID uint, hash string) error {
	f.users[userID].PasswordHash = hash
	return nil
}

func (f *fakeAccountRepo) CreateToken(_ context.Context, t *models.PasswordResetToken) error {
	t.ID = f.nextID
	f.nextID++
	cp := *t
	f.tokens[t.Token] = &cp
	return nil
}

func (f *fakeAccountRepo) GetToken(_ context.Context, token string) (*models.PasswordResetToken, error) {
	if t, ok := f.tokens[token]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAccountRepo) MarkTokenUsed(_ context.Context, id uint) error {
	for _, t := range f.tokens {
		if t.ID == id {
			t.Used = true
		}
	}
	return nil
}

var _ Repository = (*fakeAccountRepo)(nil)

type fakeMailer struct {
	sent []string
	fail bool
}

func (m *fakeMailer) Send(to, _, _ string) error {
	if m.fail {
		return errors.New("smtp down")
	}
	m.sent = append(m.sent, to)
	return nil
}

// ======================================================
// REQUEST
// ======================================================

func TestResetRequest(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.addUser("relojero01", "reloj@example.com", "secreta123")
	mail := &fakeMailer{}
	uc := NewPasswordReset(repo, mail, audit.Discard(), "http://x/reset")

	err := uc.Request(context.Background(), "relojero01", "reloj@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"reloj@example.com"}, mail.sent)
	assert.Len(t, repo.tokens, 1)
}

func TestResetRequestIsSilentOnUnknownUser(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.addUser("relojero01", "reloj@example.com", "secreta123")
	mail := &fakeMailer{}
	uc := NewPasswordReset(repo, mail, audit.Discard(), "http://x/reset")

	// unknown username and mismatched email both answer like a success
	require.NoError(t, uc.Request(context.Background(), "nadie", "reloj@example.com"))
	require.NoError(t, uc.Request(context.Background(), "relojero01", "otro@example.com"))

	assert.Empty(t, mail.sent)
	assert.Empty(t, repo.tokens)
}

func TestResetRequestMailFailure(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.addUser("relojero01", "reloj@example.com", "secreta123")
	uc := NewPasswordReset(repo, &fakeMailer{fail: true}, audit.Discard(), "http://x/reset")

	err := uc.Request(context.Background(), "relojero01", "reloj@example.com")
	assert.True(t, httperr.IsBusiness(err, "mail_delivery_failed"))
}

// ======================================================
// CONSUME
// ======================================================

func issueToken(t *testing.T, repo *fakeAccountRepo, uc *PasswordReset) string {
	t.Helper()
	require.NoError(t, uc.Request(context.Background(), "relojero01", "reloj@example.com"))
	for token := range repo.tokens {
		return token
	}
	t.Fatal("no token issued")
	return ""
}

func TestResetConsume(t *testing.T) {
	repo := newFakeAccountRepo()
	u := repo.addUser("relojero01", "reloj@example.com", "secreta123")
	uc := NewPasswordReset(repo, &fakeMailer{}, audit.Discard(), "http://x/reset")

	token := issueToken(t, repo, uc)

	require.NoError(t, uc.Consume(context.Background(), token, "nuevaClave9"))

	err := bcrypt.CompareHashAndPassword(
		[]byte(repo.users[u.ID].PasswordHash), []byte("nuevaClave9"))
	assert.NoError(t, err)
}

func TestResetTokenIsSingleUse(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.addUser("relojero01", "reloj@example.com", "secreta123")
	uc := NewPasswordReset(repo, &fakeMailer{}, audit.Discard(), "http://x/reset")

	token := issueToken(t, repo, uc)

	require.NoError(t, uc.Consume(context.Background(), token, "nuevaClave9"))

	err := uc.Consume(context.Background(), token, "otraClave77")
	assert.True(t, httperr.IsBusiness(err, "expired_token"))
}

func TestResetTokenExpiresAfter24h(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.addUser("relojero01", "reloj@example.com", "secreta123")
	uc := NewPasswordReset(repo, &fakeMailer{}, audit.Discard(), "http://x/reset")

	token := issueToken(t, repo, uc)

	uc.now = func() time.Time { return time.Now().Add(TokenTTL + time.Minute) }
	err := uc.Consume(context.Background(), token, "nuevaClave9")
	assert.True(t, httperr.IsBusiness(err, "expired_token"))
}

func TestResetConsumeUnknownToken(t *testing.T) {
	repo := newFakeAccountRepo()
	uc := NewPasswordReset(repo, &fakeMailer{}, audit.Discard(), "http://x/reset")

	err := uc.Consume(context.Background(), "no-such-token", "nuevaClave9")
	assert.True(t, httperr.IsBusiness(err, "invalid_token"))
}

func TestResetConsumeWeakPassword(t *testing.T) {
	repo := newFakeAccountRepo()
	repo.addUser("relojero01", "reloj@example.com", "secreta123")
	uc := NewPasswordReset(repo, &fakeMailer{}, audit.Discard(), "http://x/reset")

	token := issueToken(t, repo, uc)

	err := uc.Consume(context.Background(), token, "corta")
	assert.True(t, httperr.IsBusiness(err, "password_too_short"))

	// a rejected password must not burn the token
	err = uc.Consume(context.Background(), token, "claveValida8")
	assert.NoError(t, err)
}

// ======================================================
// CHANGE PASSWORD
// ======================================================

func TestChangePassword(t *testing.T) {
	repo := newFakeAccountRepo()
	u := repo.addUser("relojero01", "reloj@example.com", "secreta123")
	uc := NewChangePassword(repo, audit.Discard())

	require.NoError(t, uc.Execute(context.Background(), u.ID, "secreta123", "nuevaClave9"))

	err := bcrypt.CompareHashAndPassword(
		[]byte(repo.users[u.ID].PasswordHash), []byte("nuevaClave9"))
	assert.NoError(t, err)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	repo := newFakeAccountRepo()
	u := repo.addUser("relojero01", "reloj@example.com", "secreta123")
	uc := NewChangePassword(repo, audit.Discard())

	err := uc.Execute(context.Background(), u.ID, "equivocada", "nuevaClave9")
	assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))
}

// ======================================================
// Password policy
// ======================================================

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("claveValida8"))
	assert.True(t, httperr.IsBusiness(ValidatePassword("corta"), "password_too_short"))
	assert.True(t, httperr.IsBusiness(ValidatePassword("123456789"), "password_entirely_numeric"))
}
