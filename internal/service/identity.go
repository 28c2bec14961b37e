// Package service provides business logic for identity resolution and
// reminder management, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyIdentifier is returned when identity resolution is attempted
// with no usable identifier.
var ErrEmptyIdentifier = errors.New("identifier must not be empty")

// UserRepository defines the persistence operations needed by the
// IdentityService.
type UserRepository interface {
	// UserExists returns true if a user with the given dni exists.
	UserExists(ctx context.Context, dni string) (bool, error)
	// CreateUser creates a new user record keyed by dni.
	CreateUser(ctx context.Context, dni string) error
}

// IdentityService resolves the opaque identifier that scopes a user's
// reminders and upserts the backing user record.
type IdentityService struct {
	repo UserRepository
}

// NewIdentityService constructs an IdentityService with the provided repository.
func NewIdentityService(repo UserRepository) *IdentityService {
	return &IdentityService{repo: repo}
}

// Resolve combines a country code and a document id into the scoping
// identifier. Non-digit characters in the document are stripped, mirroring
// how the entry form filters them as the user types.
func Resolve(country, document string) (string, error) {
	var digits strings.Builder
	for _, r := range document {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return "", ErrEmptyIdentifier
	}
	return strings.TrimSpace(country) + digits.String(), nil
}

// ResolveFree resolves the free-text identifier variant: the trimmed
// string itself is the identifier; empty is rejected.
func ResolveFree(raw string) (string, error) {
	dni := strings.TrimSpace(raw)
	if dni == "" {
		return "", ErrEmptyIdentifier
	}
	return dni, nil
}

// ResolveOrCreate looks the identifier up in the users collection and
// inserts a record if none exists. The returned flag is true when this
// session created a new account, so the caller can greet accordingly.
func (s *IdentityService) ResolveOrCreate(ctx context.Context, dni string) (created bool, err error) {
	if dni == "" {
		return false, ErrEmptyIdentifier
	}

	exists, err := s.repo.UserExists(ctx, dni)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := s.repo.CreateUser(ctx, dni); err != nil {
		return false, err
	}
	return true, nil
}
