package web

import (
	"context"

	"github.com/tayothecoder/cornerfield-sub004/internal/users"
	"github.com/tayothecoder/cornerfield-sub004/model"
)

type UserService interface {
	GetUserByID(ctx context.Context, userID uint) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*model.User, error)
	CreateUser(ctx context.Context, opts users.CreateUserOptions) (*model.User, error)
	Authenticate(ctx context.Context, identifier, password string) (*model.User, error)
	RecordLogin(ctx context.Context, userID uint, ip string) error
	UpdatePassword(ctx context.Context, userID uint, newPassword string) error
	GenerateResetToken(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type InvestService interface {
	ActivePlans(ctx context.Context) ([]*model.Plan, error)
	UserInvestments(ctx context.Context, userID uint) ([]*model.Investment, error)
	UserTransactions(ctx context.Context, userID uint, limit int) ([]*model.Transaction, error)
	Deposit(ctx context.Context, userID uint, amount float64, currency string) (*model.Transaction, error)
	Invest(ctx context.Context, userID uint, planID uint, amount float64) (*model.Investment, error)
	Withdraw(ctx context.Context, userID uint, amount float64, currency, network, walletAddress string) (*model.Transaction, error)
}
