package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/you/coursefinder/domain"
)

// MockAccountRepository implements domain.AccountRepository interface for testing.
// Without overrides it behaves as an in-memory store that enforces unique
// email and username.
type MockAccountRepository struct {
	CreateFunc         func(ctx context.Context, account *domain.Account) error
	FindByIDFunc       func(ctx context.Context, id string) (*domain.Account, error)
	FindByEmailFunc    func(ctx context.Context, email string) (*domain.Account, error)
	FindByUsernameFunc func(ctx context.Context, username string) (*domain.Account, error)
	UpdateFunc         func(ctx context.Context, account *domain.Account) error

	mu       sync.Mutex
	accounts map[string]domain.Account
	nextID   int
	updates  int
}

// NewMockAccountRepository creates a new MockAccountRepository with default behaviors
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]domain.Account)}
}

// Create stores a copy of the account, assigning an id when empty
func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.accounts {
		if existing.Email == account.Email || existing.Username == account.Username {
			return domain.ErrAccountExists
		}
	}
	if account.ID == "" {
		m.nextID++
		account.ID = fmt.Sprintf("acc-%d", m.nextID)
	}
	m.accounts[account.ID] = cloneAccount(*account)
	return nil
}

// FindByID finds an account by id
func (m *MockAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return m.find(func(a domain.Account) bool { return a.ID == id })
}

// FindByEmail finds an account by email
func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return m.find(func(a domain.Account) bool { return a.Email == email })
}

// FindByUsername finds an account by username
func (m *MockAccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return m.find(func(a domain.Account) bool { return a.Username == username })
}

// Update replaces the stored account
func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	for id, existing := range m.accounts {
		if id != account.ID && (existing.Email == account.Email || existing.Username == account.Username) {
			return domain.ErrAccountExists
		}
	}
	m.accounts[account.ID] = cloneAccount(*account)
	m.updates++
	return nil
}

// Put seeds an account directly
func (m *MockAccountRepository) Put(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = cloneAccount(*account)
}

// Updates returns how many successful default Update calls were made
func (m *MockAccountRepository) Updates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updates
}

func (m *MockAccountRepository) find(match func(domain.Account) bool) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if match(a) {
			found := cloneAccount(a)
			return &found, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

// cloneAccount copies pointer fields so callers cannot mutate stored state
func cloneAccount(a domain.Account) domain.Account {
	if a.EmailVerification != nil {
		p := *a.EmailVerification
		a.EmailVerification = &p
	}
	if a.PasswordReset != nil {
		p := *a.PasswordReset
		a.PasswordReset = &p
	}
	if a.PreferredDark != nil {
		d := *a.PreferredDark
		a.PreferredDark = &d
	}
	return a
}

// Compile-time interface compliance verification
var _ domain.AccountRepository = (*MockAccountRepository)(nil)
