package services

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/you/coursefinder/domain"
)

const (
	codeMin  = 100000
	codeSpan = 900000 // codes are drawn from [100000, 999999]
)

// CodeGeneratorImpl implements domain.CodeGenerator
type CodeGeneratorImpl struct {
	random io.Reader
	now    func() time.Time
	ttl    time.Duration
}

// NewCodeGenerator creates a generator issuing six-digit codes valid for domain.CodeTTL
func NewCodeGenerator() domain.CodeGenerator {
	return NewCodeGeneratorWith(rand.Reader, time.Now)
}

// NewCodeGeneratorWith creates a generator with an explicit entropy source and clock
func NewCodeGeneratorWith(random io.Reader, now func() time.Time) domain.CodeGenerator {
	return &CodeGeneratorImpl{
		random: random,
		now:    now,
		ttl:    domain.CodeTTL,
	}
}

// Generate implements domain.CodeGenerator
func (g *CodeGeneratorImpl) Generate() (*domain.PendingCode, error) {
	n, err := rand.Int(g.random, big.NewInt(codeSpan))
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	return &domain.PendingCode{
		Code:      fmt.Sprintf("%06d", codeMin+n.Int64()),
		ExpiresAt: g.now().UTC().Add(g.ttl),
	}, nil
}
