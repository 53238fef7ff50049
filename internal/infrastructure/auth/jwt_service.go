package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/you/coursefinder/domain"
)

// SessionClaims is the payload of a session token. The account id is carried
// both as the custom "id" claim and as the registered subject.
type SessionClaims struct {
	AccountID string `json:"id,omitempty"`
	Email     string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey []byte
	issuer    string
	audience  string
	ttl       time.Duration
	now       func() time.Time
	parser    *jwt.Parser
}

// JWTOption customises a JWTServiceImpl
type JWTOption func(*JWTServiceImpl)

// WithClock overrides the time source used for issuing and validating tokens
func WithClock(now func() time.Time) JWTOption {
	return func(j *JWTServiceImpl) {
		j.now = now
	}
}

// NewJWTService creates a new session token codec
func NewJWTService(secretKey, issuer, audience string, ttl time.Duration, opts ...JWTOption) domain.TokenService {
	j := &JWTServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		audience:  audience,
		ttl:       ttl,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	j.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return j.now() }),
	)
	return j
}

// Issue implements domain.TokenService
func (j *JWTServiceImpl) Issue(account *domain.Account) (string, time.Time, error) {
	if account == nil || account.ID == "" {
		return "", time.Time{}, errors.New("failed to issue token: account id is required")
	}

	now := j.now().UTC()
	expiresAt := now.Add(j.ttl)
	claims := SessionClaims{
		AccountID: account.ID,
		Email:     account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			Issuer:    j.issuer,
			Audience:  jwt.ClaimStrings{j.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate implements domain.TokenService
func (j *JWTServiceImpl) Validate(tokenString string) (string, error) {
	claims := &SessionClaims{}
	token, err := j.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !token.Valid {
		return "", domain.ErrTokenInvalid
	}

	accountID := claims.AccountID
	if accountID == "" {
		accountID = claims.Subject
	}
	if accountID == "" {
		return "", domain.ErrTokenInvalid
	}
	return accountID, nil
}
