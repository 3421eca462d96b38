package invest

import (
	"context"

	"github.com/tayothecoder/cornerfield-sub004/model"
	"gorm.io/gorm"
)

type PlanRepository interface {
	First(ctx context.Context, planID uint) (*model.Plan, error)
	FindActive(ctx context.Context) ([]*model.Plan, error)
	Create(ctx context.Context, plan *model.Plan) error
}

type planRepository struct {
	db *gorm.DB
}

func (r *planRepository) First(ctx context.Context, planID uint) (*model.Plan, error) {
	var plan model.Plan
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", planID).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) FindActive(ctx context.Context) ([]*model.Plan, error) {
	var plans []*model.Plan
	err := r.db.WithContext(ctx).Where("active = ?", true).Order("min_amount ASC").Find(&plans).Error
	return plans, err
}

func (r *planRepository) Create(ctx context.Context, plan *model.Plan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db}
}

type InvestmentRepository interface {
	WithTx(tx *gorm.DB) InvestmentRepository
	Create(ctx context.Context, investment *model.Investment) error
	FindByUser(ctx context.Context, userID uint, statuses ...string) ([]*model.Investment, error)
}

type investmentRepository struct {
	db *gorm.DB
}

func (r *investmentRepository) Create(ctx context.Context, investment *model.Investment) error {
	return r.db.WithContext(ctx).Create(investment).Error
}

func (r *investmentRepository) FindByUser(ctx context.Context, userID uint, statuses ...string) ([]*model.Investment, error) {
	var list []*model.Investment
	query := r.db.WithContext(ctx).Preload("Plan").Where("user_id = ?", userID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *investmentRepository) WithTx(tx *gorm.DB) InvestmentRepository {
	return NewInvestmentRepository(tx)
}

func NewInvestmentRepository(db *gorm.DB) InvestmentRepository {
	return &investmentRepository{db}
}

type TransactionRepository interface {
	WithTx(tx *gorm.DB) TransactionRepository
	Create(ctx context.Context, transaction *model.Transaction) error
	FindByUser(ctx context.Context, userID uint, limit int) ([]*model.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func (r *transactionRepository) Create(ctx context.Context, transaction *model.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *transactionRepository) FindByUser(ctx context.Context, userID uint, limit int) ([]*model.Transaction, error) {
	var list []*model.Transaction
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

func (r *transactionRepository) WithTx(tx *gorm.DB) TransactionRepository {
	return NewTransactionRepository(tx)
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db}
}
