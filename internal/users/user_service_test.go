package users

import (
	"context"
	"errors"
	"testing"

	"github.com/tayothecoder/cornerfield-sub004/internal/security"
	"github.com/tayothecoder/cornerfield-sub004/model"
	"gorm.io/gorm"
)

// fakeUserRepo keeps users in a slice, matching just the query shapes the
// service issues.
type fakeUserRepo struct {
	users []*model.User
}

func (r *fakeUserRepo) WithTx(tx *gorm.DB) UserRepository { return r }

func (r *fakeUserRepo) First(ctx context.Context, conds ...interface{}) (*model.User, error) {
	if len(conds) != 2 {
		return nil, gorm.ErrRecordNotFound
	}
	query, _ := conds[0].(string)
	for _, user := range r.users {
		switch query {
		case "id = ?":
			if id, ok := conds[1].(uint); ok && user.ID == id {
				return user, nil
			}
		case "email = ?":
			if email, ok := conds[1].(string); ok && user.Email == email {
				return user, nil
			}
		case "username = ?":
			if username, ok := conds[1].(string); ok && user.Username == username {
				return user, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Find(ctx context.Context, limit, offset int) ([]*model.User, error) {
	return r.users, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) Updates(ctx context.Context, userID uint, columns map[string]interface{}) (int64, error) {
	for _, user := range r.users {
		if user.ID == userID {
			if password, ok := columns["password"].(string); ok {
				user.Password = password
			}
			return 1, nil
		}
	}
	return 0, nil
}

func newTestService(t *testing.T) (*UserService, *model.User) {
	t.Helper()
	hash, err := security.HashPassword("Correct1pass")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	user := &model.User{ID: 7, Username: "john", Email: "john@example.com", Password: hash}
	repo := &fakeUserRepo{users: []*model.User{user}}
	return NewUserService(repo, "test-master-key"), user
}

func TestAuthenticate(t *testing.T) {
	service, user := newTestService(t)
	ctx := context.Background()

	got, err := service.Authenticate(ctx, "john", "Correct1pass")
	if err != nil {
		t.Fatalf("Authenticate by username = %v, want nil", err)
	}
	if got.ID != user.ID {
		t.Fatalf("Authenticate returned user %d, want %d", got.ID, user.ID)
	}

	if _, err := service.Authenticate(ctx, "john@example.com", "Correct1pass"); err != nil {
		t.Fatalf("Authenticate by email = %v, want nil", err)
	}
}

func TestAuthenticateSameErrorForUnknownAndWrong(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, unknownErr := service.Authenticate(ctx, "nobody", "Correct1pass")
	_, wrongErr := service.Authenticate(ctx, "john", "wrong-password")

	if !errors.Is(unknownErr, ErrWrongCredentials) || !errors.Is(wrongErr, ErrWrongCredentials) {
		t.Fatalf("unknown=%v wrong=%v, both must be ErrWrongCredentials", unknownErr, wrongErr)
	}
}

func TestAuthenticateDisabledAccount(t *testing.T) {
	service, user := newTestService(t)
	user.Disabled = true

	if _, err := service.Authenticate(context.Background(), "john", "Correct1pass"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("Authenticate on disabled account = %v, want ErrUserDisabled", err)
	}
}

func TestResetTokenRoundTrip(t *testing.T) {
	service, user := newTestService(t)
	ctx := context.Background()
	oldHash := user.Password

	token, err := service.GenerateResetToken(ctx, "john@example.com")
	if err != nil {
		t.Fatalf("GenerateResetToken returned error: %v", err)
	}

	if err := service.ResetPassword(ctx, token, "NewSecret1"); err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}
	if user.Password == oldHash {
		t.Fatalf("password hash was not updated")
	}
	if !security.VerifyPassword(user.Password, "NewSecret1") {
		t.Fatalf("new password does not verify")
	}
}

func TestResetTokenRejectsTampering(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	token, err := service.GenerateResetToken(ctx, "john@example.com")
	if err != nil {
		t.Fatalf("GenerateResetToken returned error: %v", err)
	}

	if err := service.ResetPassword(ctx, token+"x", "NewSecret1"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("tampered token error = %v, want ErrResetTokenInvalid", err)
	}
	if err := service.ResetPassword(ctx, "not-a-token", "NewSecret1"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("garbage token error = %v, want ErrResetTokenInvalid", err)
	}
}

func TestResetTokenUnknownEmail(t *testing.T) {
	service, _ := newTestService(t)

	if _, err := service.GenerateResetToken(context.Background(), "ghost@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("GenerateResetToken for unknown email = %v, want ErrUserNotFound", err)
	}
}

func TestResetTokenInvalidAfterEmailChange(t *testing.T) {
	service, user := newTestService(t)
	ctx := context.Background()

	token, err := service.GenerateResetToken(ctx, "john@example.com")
	if err != nil {
		t.Fatalf("GenerateResetToken returned error: %v", err)
	}

	user.Email = "new@example.com"
	if err := service.ResetPassword(ctx, token, "NewSecret1"); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("token after email change = %v, want ErrResetTokenInvalid", err)
	}
}
