package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/app/models/dto"
	"github.com/emre/campushub/internal/pkg/apperrors"
	"github.com/emre/campushub/internal/pkg/auth"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret-key-do-not-use",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campushub-test",
	})
}

func setupAuthService(users []*models.User, departments ...models.Department) (AuthService, *fakeUserStore) {
	userStore := newFakeUserStore(users...)
	departmentStore := newFakeDepartmentStore(departments...)
	svc := NewAuthService(userStore, departmentStore, testJWTService(), zerolog.Nop())
	return svc, userStore
}

func hashedPassword(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

// --------------------- Register ---------------------

func TestRegister_Success(t *testing.T) {
	svc, store := setupAuthService(nil, models.Department{ID: 1, Name: "Computer Engineering", Code: "CENG"})

	departmentID := int64(1)
	profile, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:        "  Ayse.Yilmaz@Campus.edu ",
		Password:     "secret-pass-1",
		FirstName:    "Ayse",
		LastName:     "Yilmaz",
		Role:         "STUDENT",
		DepartmentID: &departmentID,
	})

	assert.NoError(t, err)
	assert.Equal(t, "ayse.yilmaz@campus.edu", profile.Email)
	assert.Equal(t, "Computer Engineering", profile.Department)

	created := store.users[profile.ID]
	assert.NotEqual(t, "secret-pass-1", created.Password)
	assert.True(t, created.IsActive)
}

func TestRegister_AdminRoleRejected(t *testing.T) {
	svc, _ := setupAuthService(nil)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "boss@campus.edu",
		Password:  "secret-pass-1",
		FirstName: "Boss",
		LastName:  "Admin",
		Role:      "ADMIN",
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc, _ := setupAuthService(nil)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "not-an-email",
		Password:  "secret-pass-1",
		FirstName: "A",
		LastName:  "B",
		Role:      "STUDENT",
	})

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	existing := studentUser(1)
	existing.Email = "taken@campus.edu"
	svc, _ := setupAuthService([]*models.User{existing})

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "taken@campus.edu",
		Password:  "secret-pass-1",
		FirstName: "A",
		LastName:  "B",
		Role:      "STUDENT",
	})

	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegister_UnknownDepartment(t *testing.T) {
	svc, _ := setupAuthService(nil)

	departmentID := int64(42)
	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:        "new@campus.edu",
		Password:     "secret-pass-1",
		FirstName:    "A",
		LastName:     "B",
		Role:         "STUDENT",
		DepartmentID: &departmentID,
	})

	assert.ErrorIs(t, err, apperrors.ErrDepartmentNotFound)
}

// --------------------- Login ---------------------

func TestLogin_Success(t *testing.T) {
	user := studentUser(1)
	user.Email = "ayse@campus.edu"
	user.Password = hashedPassword(t, "correct-horse")
	svc, store := setupAuthService([]*models.User{user})

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "Ayse@Campus.edu",
		Password: "correct-horse",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	assert.Equal(t, "Bearer", resp.Tokens.TokenType)
	assert.True(t, resp.User.IsOnline)
	assert.True(t, store.users[1].IsOnline)
}

func TestLogin_WrongPassword(t *testing.T) {
	user := studentUser(1)
	user.Email = "ayse@campus.edu"
	user.Password = hashedPassword(t, "correct-horse")
	svc, _ := setupAuthService([]*models.User{user})

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ayse@campus.edu",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc, _ := setupAuthService(nil)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ghost@campus.edu",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	user := studentUser(1)
	user.Email = "ayse@campus.edu"
	user.Password = hashedPassword(t, "correct-horse")
	user.IsActive = false
	svc, _ := setupAuthService([]*models.User{user})

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ayse@campus.edu",
		Password: "correct-horse",
	})

	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

// --------------------- Logout ---------------------

func TestLogout_FlagsOffline(t *testing.T) {
	user := studentUser(1)
	user.IsOnline = true
	svc, store := setupAuthService([]*models.User{user})

	err := svc.Logout(context.Background(), 1)

	assert.NoError(t, err)
	assert.False(t, store.users[1].IsOnline)
	assert.NotNil(t, store.users[1].LastSeenAt)
}

// --------------------- GetProfile ---------------------

func TestGetProfile_NotFound(t *testing.T) {
	svc, _ := setupAuthService(nil)

	_, err := svc.GetProfile(context.Background(), 42)

	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
