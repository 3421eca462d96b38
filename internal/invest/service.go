package invest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tayothecoder/cornerfield-sub004/model"
	"gorm.io/gorm"
)

// Service owns balance mutations. Every balance change is paired with a
// transaction row inside a single database transaction.
type Service struct {
	db             *gorm.DB
	planRepo       PlanRepository
	investmentRepo InvestmentRepository
	txRepo         TransactionRepository
}

func NewService(db *gorm.DB, planRepo PlanRepository, investmentRepo InvestmentRepository, txRepo TransactionRepository) *Service {
	return &Service{
		db:             db,
		planRepo:       planRepo,
		investmentRepo: investmentRepo,
		txRepo:         txRepo,
	}
}

func (s *Service) ActivePlans(ctx context.Context) ([]*model.Plan, error) {
	return s.planRepo.FindActive(ctx)
}

func (s *Service) UserInvestments(ctx context.Context, userID uint) ([]*model.Investment, error) {
	return s.investmentRepo.FindByUser(ctx, userID)
}

func (s *Service) UserTransactions(ctx context.Context, userID uint, limit int) ([]*model.Transaction, error) {
	return s.txRepo.FindByUser(ctx, userID, limit)
}

// debitBalance subtracts amount from the user's balance, failing on
// overdraft. The guarded UPDATE keeps the check atomic under concurrency.
func debitBalance(tx *gorm.DB, userID uint, amount float64) error {
	ret := tx.Model(&model.User{}).
		Where("id = ? AND balance >= ?", userID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))
	if ret.Error != nil {
		return ret.Error
	}
	if ret.RowsAffected == 0 {
		return ErrInsufficientBalance
	}
	return nil
}

func creditBalance(tx *gorm.DB, userID uint, amount float64) error {
	return tx.Model(&model.User{}).
		Where("id = ?", userID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount)).Error
}

// Deposit credits the user's balance and records a completed deposit entry.
func (s *Service) Deposit(ctx context.Context, userID uint, amount float64, currency string) (*model.Transaction, error) {
	entry := &model.Transaction{
		UserID:    userID,
		Type:      model.TxTypeDeposit,
		Amount:    amount,
		Currency:  currency,
		Status:    model.TxStatusCompleted,
		Reference: uuid.NewString(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := creditBalance(tx, userID, amount); err != nil {
			return err
		}
		return s.txRepo.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Invest stakes amount into a plan: validates the plan limits, debits the
// balance, creates the investment and its ledger entry atomically.
func (s *Service) Invest(ctx context.Context, userID uint, planID uint, amount float64) (*model.Investment, error) {
	plan, err := s.planRepo.First(ctx, planID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	if !plan.Active {
		return nil, ErrPlanInactive
	}
	if amount < plan.MinAmount || amount > plan.MaxAmount {
		return nil, ErrAmountOutOfRange
	}

	now := time.Now()
	investment := &model.Investment{
		UserID:         userID,
		PlanID:         plan.ID,
		Amount:         amount,
		ExpectedProfit: amount * plan.ROIPercent / 100,
		Status:         model.InvestmentStatusActive,
		StartAt:        now,
		EndAt:          now.AddDate(0, 0, plan.DurationDays),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := debitBalance(tx, userID, amount); err != nil {
			return err
		}
		if err := s.investmentRepo.WithTx(tx).Create(ctx, investment); err != nil {
			return err
		}
		return s.txRepo.WithTx(tx).Create(ctx, &model.Transaction{
			UserID:    userID,
			Type:      model.TxTypeInvestment,
			Amount:    amount,
			Status:    model.TxStatusCompleted,
			Reference: uuid.NewString(),
			Detail:    plan.Name,
		})
	})
	if err != nil {
		return nil, err
	}
	return investment, nil
}

// Withdraw debits the balance and records a pending withdrawal for admin
// review. Wallet address validation happens at the handler layer before this
// is called; the debit itself is the atomicity boundary.
func (s *Service) Withdraw(ctx context.Context, userID uint, amount float64, currency, network, walletAddress string) (*model.Transaction, error) {
	entry := &model.Transaction{
		UserID:        userID,
		Type:          model.TxTypeWithdrawal,
		Amount:        amount,
		Currency:      currency,
		Network:       network,
		WalletAddress: walletAddress,
		Status:        model.TxStatusPending,
		Reference:     uuid.NewString(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := debitBalance(tx, userID, amount); err != nil {
			return err
		}
		return s.txRepo.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}
