package mocks

import "github.com/you/coursefinder/domain"

// MockPolicyService implements domain.PolicyService interface for testing
type MockPolicyService struct {
	AddPolicyFunc       func(subject, object, action string) error
	RemovePolicyFunc    func(subject, object, action string) error
	CheckPermissionFunc func(subject, object, action string) (bool, error)
	GetPoliciesFunc     func() ([][]string, error)

	Added [][]string
}

// NewMockPolicyService creates a new MockPolicyService with default behaviors
func NewMockPolicyService() *MockPolicyService {
	return &MockPolicyService{}
}

// AddPolicy records the rule
func (m *MockPolicyService) AddPolicy(subject, object, action string) error {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(subject, object, action)
	}
	m.Added = append(m.Added, []string{subject, object, action})
	return nil
}

// RemovePolicy removes an authorization policy
func (m *MockPolicyService) RemovePolicy(subject, object, action string) error {
	if m.RemovePolicyFunc != nil {
		return m.RemovePolicyFunc(subject, object, action)
	}
	return nil
}

// CheckPermission allows everything unless CheckPermissionFunc is set
func (m *MockPolicyService) CheckPermission(subject, object, action string) (bool, error) {
	if m.CheckPermissionFunc != nil {
		return m.CheckPermissionFunc(subject, object, action)
	}
	return true, nil
}

// GetPolicies returns the rules added so far
func (m *MockPolicyService) GetPolicies() ([][]string, error) {
	if m.GetPoliciesFunc != nil {
		return m.GetPoliciesFunc()
	}
	return m.Added, nil
}

// Compile-time interface compliance verification
var _ domain.PolicyService = (*MockPolicyService)(nil)
