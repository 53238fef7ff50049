package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"github.com/you/coursefinder/domain"
	"gorm.io/gorm"
)

// policyModel is an ACL over request paths: objects use keyMatch2 patterns
// (/api/courses/:id) and actions are regular expressions over HTTP methods.
const policyModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// DefaultPolicies are the route grants the service needs to operate
var DefaultPolicies = [][]string{
	{domain.SubjectAnonymous, "/api/courses", "GET"},
	{domain.SubjectAnonymous, "/api/courses/:id", "GET"},
	{domain.SubjectMember, "/api/courses", "GET"},
	{domain.SubjectMember, "/api/courses/:id", "GET"},
	{domain.SubjectMember, "/api/profile", "(GET)|(PUT)"},
	{domain.SubjectMember, "/api/enroll/:courseId", "POST"},
}

// NewEnforcer builds an enforcer whose policies are persisted in the
// casbin_rule table through the gorm adapter.
func NewEnforcer(db *gorm.DB) (*casbin.Enforcer, error) {
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}
	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}
	e, err := casbin.NewEnforcer(m, adp)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	if err := e.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load casbin policy: %w", err)
	}
	return e, nil
}

// NewMemoryEnforcer builds an enforcer without persistence
func NewMemoryEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	return e, nil
}
