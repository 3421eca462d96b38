package invest

import "errors"

var (
	ErrPlanNotFound        = errors.New("plan not found")
	ErrPlanInactive        = errors.New("plan is not open for investment")
	ErrAmountOutOfRange    = errors.New("amount is outside the plan limits")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvestmentNotFound  = errors.New("investment not found")
)
