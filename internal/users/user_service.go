package users

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/tayothecoder/cornerfield-sub004/internal/security"
	"github.com/tayothecoder/cornerfield-sub004/model"
	"gorm.io/gorm"
)

type CreateUserOptions struct {
	Username string
	FullName string
	Email    string
	Password string
	Role     string
}

type UserService struct {
	userRepo  UserRepository
	masterKey string
}

func NewUserService(userRepo UserRepository, masterKey string) *UserService {
	return &UserService{
		userRepo:  userRepo,
		masterKey: masterKey,
	}
}

func (s *UserService) GetUserByID(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.First(ctx, "id = ?", userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.First(ctx, "email = ?", email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *UserService) GetUserByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	var (
		user *model.User
		err  error
	)
	if _, mailErr := mail.ParseAddress(identifier); mailErr == nil {
		user, err = s.userRepo.First(ctx, "email = ?", identifier)
	} else {
		user, err = s.userRepo.First(ctx, "username = ?", identifier)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]*model.User, error) {
	return s.userRepo.Find(ctx, limit, offset)
}

// CreateUser registers a new account. Duplicate username/email surfaces as a
// domain error via the MySQL duplicate-key code.
func (s *UserService) CreateUser(ctx context.Context, opts CreateUserOptions) (*model.User, error) {
	passwordHash, err := security.HashPassword(opts.Password)
	if err != nil {
		return nil, err
	}

	role := opts.Role
	if role == "" {
		role = model.RoleUser
	}
	user := model.User{
		Username: strings.ToLower(opts.Username),
		FullName: opts.FullName,
		Email:    strings.ToLower(opts.Email),
		Password: passwordHash,
		Role:     role,
	}

	var mysqlErr *mysql.MySQLError
	if err := s.userRepo.Create(ctx, &user); errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		if strings.Contains(mysqlErr.Message, "username") {
			return nil, ErrUsernameTaken
		}
		return nil, ErrEmailRegistered
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies credentials and returns the matching user. The same
// error is returned for unknown accounts and wrong passwords.
func (s *UserService) Authenticate(ctx context.Context, identifier, password string) (*model.User, error) {
	user, err := s.GetUserByUsernameOrEmail(ctx, identifier)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrWrongCredentials
	}
	if err != nil {
		return nil, err
	}
	if !security.VerifyPassword(user.Password, password) {
		return nil, ErrWrongCredentials
	}
	if user.Disabled {
		return nil, ErrUserDisabled
	}
	return user, nil
}

func (s *UserService) RecordLogin(ctx context.Context, userID uint, ip string) error {
	_, err := s.userRepo.Updates(ctx, userID, map[string]interface{}{
		"last_login_at": time.Now(),
		"last_login_ip": ip,
	})
	return err
}

func (s *UserService) UpdatePassword(ctx context.Context, userID uint, newPassword string) error {
	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}
	affected, err := s.userRepo.Updates(ctx, userID, map[string]interface{}{
		"password": passwordHash,
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
