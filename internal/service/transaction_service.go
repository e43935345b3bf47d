package service

import (
	"context"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type TransactionListFilter struct {
	Type   string
	Status string
	Page   int
	Limit  int
}

// --- Interface ---

type TransactionService interface {
	List(ctx context.Context, tenantID uuid.UUID, filter TransactionListFilter) ([]model.Transaction, int64, error)
}

type transactionService struct {
	txns repository.TransactionRepository
}

func NewTransactionService(txns repository.TransactionRepository) TransactionService {
	return &transactionService{txns: txns}
}

// --- Implementation ---

var validTxTypes = map[string]bool{
	model.TxTypeSale:         true,
	model.TxTypeRefund:       true,
	model.TxTypePayout:       true,
	model.TxTypeFee:          true,
	model.TxTypeSubscription: true,
}

var validTxStatuses = map[string]bool{
	model.TxStatusPending:   true,
	model.TxStatusCompleted: true,
	model.TxStatusFailed:    true,
	model.TxStatusReversed:  true,
}

func (s *transactionService) List(ctx context.Context, tenantID uuid.UUID, filter TransactionListFilter) ([]model.Transaction, int64, error) {
	if filter.Type != "" && !validTxTypes[filter.Type] {
		return nil, 0, fmt.Errorf("%w: unknown transaction type %q", ErrValidation, filter.Type)
	}
	if filter.Status != "" && !validTxStatuses[filter.Status] {
		return nil, 0, fmt.Errorf("%w: unknown transaction status %q", ErrValidation, filter.Status)
	}

	txns, total, err := s.txns.List(ctx, tenantID, filter.Type, filter.Status, filter.Page, filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, total, nil
}
