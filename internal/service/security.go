package service

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/jdesmond91/trading-backend/internal/domain"
	"github.com/jdesmond91/trading-backend/internal/store"
)

var (
	securityNameRegex   = regexp.MustCompile(`^.{1,100}$`)
	securityTickerRegex = regexp.MustCompile(`^[A-Z.]{1,10}$`)
)

// CreateSecurityRequest is the input for security creation.
type CreateSecurityRequest struct {
	Name   string
	Ticker string
	Kind   domain.SecurityKind
}

// SecurityService handles the administrative security catalog:
// creation, listing and deletion.
type SecurityService struct {
	securities *store.SecurityStore
	positions  *store.PositionStore
}

// NewSecurityService creates a new SecurityService.
func NewSecurityService(securities *store.SecurityStore, positions *store.PositionStore) *SecurityService {
	return &SecurityService{
		securities: securities,
		positions:  positions,
	}
}

// Create validates and stores a new security. At most one CASH
// security may exist; the store enforces that rule.
func (s *SecurityService) Create(req CreateSecurityRequest) (*domain.Security, error) {
	if !securityNameRegex.MatchString(req.Name) {
		return nil, &domain.ValidationError{
			Message: "name must be between 1 and 100 characters",
		}
	}
	if !securityTickerRegex.MatchString(req.Ticker) {
		return nil, &domain.ValidationError{
			Message: "ticker must match ^[A-Z.]{1,10}$",
		}
	}
	if req.Kind != domain.SecurityKindCash && req.Kind != domain.SecurityKindEquity {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("unknown security type: %s. Must be one of: CASH, EQUITY", req.Kind),
		}
	}

	sec := domain.Security{
		ID:     uuid.NewString(),
		Name:   req.Name,
		Ticker: req.Ticker,
		Kind:   req.Kind,
	}
	if err := s.securities.Create(sec); err != nil {
		return nil, err
	}
	return &sec, nil
}

// List returns all securities.
func (s *SecurityService) List() []domain.Security {
	return s.securities.List()
}

// Delete removes a security by id. A security still referenced by a
// position cannot be deleted; that would orphan the position.
func (s *SecurityService) Delete(id string) error {
	if _, err := s.securities.Get(id); err != nil {
		return err
	}
	if _, held := s.positions.FindBySecurity(id); held {
		return domain.ErrSecurityInUse
	}
	return s.securities.Delete(id)
}
