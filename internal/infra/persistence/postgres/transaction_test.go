package postgres

import (
	"context"
	"testing"
	"time"

	"identity/internal/domain/entity"
	"identity/internal/domain/repository"
	"identity/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionManager_CommitsAndRollsBack(t *testing.T) {
	db := newTestDB(t)
	txManager := NewTransactionManager(db)
	accounts := NewAccountRepository(db)
	ctx := context.Background()

	err := txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		account := &entity.Account{Email: "commit@example.com", PasswordHash: "h"}
		if err := factory.AccountRepo().Create(ctx, account); err != nil {
			return err
		}

		return factory.RefreshSessionRepo().Create(ctx, &entity.RefreshSession{
			TokenHash: "commit-hash",
			AccountID: account.ID,
			IssuedAt:  time.Now(),
			ExpiresAt: time.Now().Add(time.Hour),
		})
	})
	require.NoError(t, err)

	_, err = accounts.FindByEmail(ctx, "commit@example.com")
	require.NoError(t, err)

	boom := errors.New("boom")
	err = txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.AccountRepo().Create(ctx, &entity.Account{Email: "rollback@example.com", PasswordHash: "h"}); err != nil {
			return err
		}

		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = accounts.FindByEmail(ctx, "rollback@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestTransactionManager_RollsBackOnPanic(t *testing.T) {
	db := newTestDB(t)
	txManager := NewTransactionManager(db)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
			_ = factory.AccountRepo().Create(ctx, &entity.Account{Email: "panic@example.com", PasswordHash: "h"})
			panic("boom")
		})
	})

	_, err := NewAccountRepository(db).FindByEmail(ctx, "panic@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}
