// Package postgres contains the concrete implementation of the persistence layer using GORM.
// PostgreSQL is the production database; SQLite is supported for development and tests.
package postgres

import (
	"context"
	"time"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/errors"
	"identity/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// accountRepository implements repository.AccountRepository using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create persists a new account. The ID is assigned here when the caller left it empty.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if account.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate account id")
		}
		account.ID = id
	}

	accountM := fromAccountDomain(account)
	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return accountConflict(err)
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// accountConflict maps a unique violation to the domain error for the index it hit.
func accountConflict(err error) error {
	if violatesAccountIdentity(err) {
		return domainerrors.ErrSocialIdentityInUse.WrapMessage("provider identity already linked")
	}

	return domainerrors.ErrEmailAlreadyInUse.WrapMessage("email already exists")
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return repo.findByID(repo.db.WithContext(ctx), id)
}

// LockByID takes a FOR UPDATE lock on the account row. Writers that replace the
// account's tickets take it first, so they queue behind each other.
func (repo *accountRepository) LockByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return repo.findByID(repo.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (repo *accountRepository) findByID(db *gorm.DB, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := db.Where("id = ?", id).First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM), nil
}

// FindByEmail retrieves a single account by its normalized email address.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).Where("email = ?", entity.NormalizeEmail(email)).First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// Update saves the profile and provider fields of an existing account.
// Credentials and role have dedicated methods and are not touched here.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	result := repo.db.WithContext(ctx).Model(&model.AccountModel{}).
		Where("id = ?", account.ID).
		Updates(map[string]any{
			"email":          accountM.Email,
			"email_verified": accountM.EmailVerified,
			"provider":       accountM.Provider,
			"provider_id":    accountM.ProviderID,
			"first_name":     accountM.FirstName,
			"last_name":      accountM.LastName,
			"avatar_url":     accountM.AvatarURL,
			"phone":          accountM.Phone,
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return accountConflict(result.Error)
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// UpdatePassword replaces the password hash and stamps the change time.
func (repo *accountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, changedAt time.Time) error {
	return repo.updateColumns(ctx, id, map[string]any{
		"password_hash":         passwordHash,
		"password_last_changed": changedAt.UTC(),
	}, "failed to update password")
}

// UpdateRole changes the role of an account.
func (repo *accountRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role) error {
	return repo.updateColumns(ctx, id, map[string]any{"role": role.String()}, "failed to update role")
}

// MarkEmailVerified flips the email-verified flag on.
func (repo *accountRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	return repo.updateColumns(ctx, id, map[string]any{"email_verified": true}, "failed to mark email verified")
}

// Delete removes an account permanently.
func (repo *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AccountModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// List returns a page of accounts ordered by creation time and the total count.
func (repo *accountRepository) List(ctx context.Context, offset, limit int) ([]*entity.Account, int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.AccountModel{}).Count(&total).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count accounts")
	}

	var accountMs []model.AccountModel
	if err := repo.db.WithContext(ctx).
		Order("created_at ASC").Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&accountMs).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list accounts")
	}

	accounts := make([]*entity.Account, 0, len(accountMs))
	for i := range accountMs {
		accounts = append(accounts, toAccountDomain(&accountMs[i]))
	}

	return accounts, total, nil
}

func (repo *accountRepository) updateColumns(ctx context.Context, id uuid.UUID, columns map[string]any, msg string) error {
	columns["updated_at"] = time.Now().UTC()

	result := repo.db.WithContext(ctx).Model(&model.AccountModel{}).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, msg)
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

func fromAccountDomain(account *entity.Account) *model.AccountModel {
	var providerID *string
	if account.ProviderID != "" {
		id := account.ProviderID
		providerID = &id
	}

	provider := account.Provider
	if provider == "" {
		provider = entity.ProviderTypeLocal
	}

	role := account.Role
	if !role.IsValid() {
		role = entity.RoleUser
	}

	return &model.AccountModel{
		ID:                  account.ID,
		Email:               entity.NormalizeEmail(account.Email),
		PasswordHash:        account.PasswordHash,
		Role:                role.String(),
		EmailVerified:       account.EmailVerified,
		Provider:            provider.String(),
		ProviderID:          providerID,
		FirstName:           account.FirstName,
		LastName:            account.LastName,
		AvatarURL:           account.AvatarURL,
		Phone:               account.Phone,
		PasswordLastChanged: utcPtr(account.PasswordLastChanged),
		EmailLastChanged:    utcPtr(account.EmailLastChanged),
		CreatedAt:           account.CreatedAt,
		UpdatedAt:           account.UpdatedAt,
	}
}

func toAccountDomain(accountM *model.AccountModel) *entity.Account {
	role, ok := entity.ParseRole(accountM.Role)
	if !ok {
		role = entity.RoleUser
	}

	account := &entity.Account{
		ID:                  accountM.ID,
		Email:               accountM.Email,
		PasswordHash:        accountM.PasswordHash,
		Role:                role,
		EmailVerified:       accountM.EmailVerified,
		Provider:            entity.ParseProviderType(accountM.Provider),
		FirstName:           accountM.FirstName,
		LastName:            accountM.LastName,
		AvatarURL:           accountM.AvatarURL,
		Phone:               accountM.Phone,
		PasswordLastChanged: accountM.PasswordLastChanged,
		EmailLastChanged:    accountM.EmailLastChanged,
		CreatedAt:           accountM.CreatedAt,
		UpdatedAt:           accountM.UpdatedAt,
	}
	if accountM.ProviderID != nil {
		account.ProviderID = *accountM.ProviderID
	}

	return account
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()

	return &utc
}
