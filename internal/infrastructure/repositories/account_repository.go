package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/you/coursefinder/domain"
	"gorm.io/gorm"
)

// AccountRepositoryImpl implements domain.AccountRepository using GORM
type AccountRepositoryImpl struct {
	db *gorm.DB
}

// DBAccount represents the database model for Account (with GORM tags).
// Pending code columns are NULL while no code is outstanding.
type DBAccount struct {
	ID                       string  `gorm:"primaryKey;size:36"`
	Username                 string  `gorm:"uniqueIndex;size:64;not null"`
	Email                    string  `gorm:"uniqueIndex;size:255;not null"`
	FullName                 string  `gorm:"size:255"`
	PasswordHash             string  `gorm:"column:password_hash;not null"`
	IsEmailVerified          bool    `gorm:"index;not null;default:false"`
	EmailVerificationCode    *string `gorm:"size:6"`
	EmailVerificationExpires *time.Time
	PasswordResetCode        *string `gorm:"size:6"`
	PasswordResetExpires     *time.Time
	PreferredDark            *bool
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// TableName returns the table name for GORM
func (DBAccount) TableName() string {
	return "accounts"
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) domain.AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

// Create implements domain.AccountRepository
func (r *AccountRepositoryImpl) Create(ctx context.Context, account *domain.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	dbAccount := r.domainToDB(account)
	if err := r.db.WithContext(ctx).Create(dbAccount).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	account.CreatedAt = dbAccount.CreatedAt
	account.UpdatedAt = dbAccount.UpdatedAt
	return nil
}

// FindByID implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByUsername implements domain.AccountRepository
func (r *AccountRepositoryImpl) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.findOne(ctx, "username = ?", username)
}

// Update implements domain.AccountRepository. Every column is written,
// so cleared pending codes become NULL.
func (r *AccountRepositoryImpl) Update(ctx context.Context, account *domain.Account) error {
	dbAccount := r.domainToDB(account)
	dbAccount.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&DBAccount{}).
		Where("id = ?", account.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(dbAccount)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("failed to update account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	account.UpdatedAt = dbAccount.UpdatedAt
	return nil
}

func (r *AccountRepositoryImpl) findOne(ctx context.Context, query string, arg string) (*domain.Account, error) {
	var dbAccount DBAccount
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbAccount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return r.dbToDomain(&dbAccount), nil
}

// domainToDB converts domain account to database account
func (r *AccountRepositoryImpl) domainToDB(account *domain.Account) *DBAccount {
	dbAccount := &DBAccount{
		ID:              account.ID,
		Username:        account.Username,
		Email:           account.Email,
		FullName:        account.FullName,
		PasswordHash:    account.PasswordHash,
		IsEmailVerified: account.IsEmailVerified,
		PreferredDark:   account.PreferredDark,
		CreatedAt:       account.CreatedAt,
	}
	dbAccount.EmailVerificationCode, dbAccount.EmailVerificationExpires = pendingToColumns(account.EmailVerification)
	dbAccount.PasswordResetCode, dbAccount.PasswordResetExpires = pendingToColumns(account.PasswordReset)
	return dbAccount
}

// dbToDomain converts database account to domain account
func (r *AccountRepositoryImpl) dbToDomain(dbAccount *DBAccount) *domain.Account {
	return &domain.Account{
		ID:                dbAccount.ID,
		Username:          dbAccount.Username,
		Email:             dbAccount.Email,
		FullName:          dbAccount.FullName,
		PasswordHash:      dbAccount.PasswordHash,
		IsEmailVerified:   dbAccount.IsEmailVerified,
		EmailVerification: columnsToPending(dbAccount.EmailVerificationCode, dbAccount.EmailVerificationExpires),
		PasswordReset:     columnsToPending(dbAccount.PasswordResetCode, dbAccount.PasswordResetExpires),
		PreferredDark:     dbAccount.PreferredDark,
		CreatedAt:         dbAccount.CreatedAt,
		UpdatedAt:         dbAccount.UpdatedAt,
	}
}

func pendingToColumns(p *domain.PendingCode) (*string, *time.Time) {
	if p == nil {
		return nil, nil
	}
	code := p.Code
	expires := p.ExpiresAt.UTC()
	return &code, &expires
}

// columnsToPending treats a half-populated pair as no pending code
func columnsToPending(code *string, expires *time.Time) *domain.PendingCode {
	if code == nil || expires == nil {
		return nil
	}
	return &domain.PendingCode{Code: *code, ExpiresAt: expires.UTC()}
}
