package sendpost

import (
	"context"
	"time"

	"github.com/sendpost/sendpost-go/internal/api"
)

// DKIM holds the DNS TXT record a sending domain must publish before
// it can verify.
type DKIM struct {
	Selector  string
	TextValue string
}

// Domain represents a sending domain registered under a sub-account.
// Verification happens out of band: the domain owner publishes the DKIM
// record and the API flips Verified once DNS checks pass.
type Domain struct {
	ID       int64
	Name     string
	Verified bool
	DKIM     *DKIM
	Created  time.Time
}

// AddDomain registers a sending domain under the sub-account.
func (s *SubAccount) AddDomain(ctx context.Context, name string) (*Domain, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := s.client.apiClient.CreateDomain(ctx, s.apiKey, &api.CreateDomainRequest{Name: name})
	if err != nil {
		return nil, wrapError(err)
	}
	return domainFromDTO(dto), nil
}

// ListDomains returns all sending domains of the sub-account.
func (s *SubAccount) ListDomains(ctx context.Context) ([]Domain, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	dtos, err := s.client.apiClient.ListDomains(ctx, s.apiKey)
	if err != nil {
		return nil, wrapError(err)
	}

	domains := make([]Domain, len(dtos))
	for i, dto := range dtos {
		domains[i] = *domainFromDTO(&dto)
	}
	return domains, nil
}

// GetDomain returns a sending domain by id.
func (s *SubAccount) GetDomain(ctx context.Context, id int64) (*Domain, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := s.client.apiClient.GetDomain(ctx, s.apiKey, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return domainFromDTO(dto), nil
}

// DeleteDomain removes a sending domain from the sub-account.
func (s *SubAccount) DeleteDomain(ctx context.Context, id int64) error {
	if err := s.client.checkClosed(); err != nil {
		return err
	}
	return wrapError(s.client.apiClient.DeleteDomain(ctx, s.apiKey, id))
}

// VerifyDomain triggers a server-side DNS check for the domain and
// returns its current verification state.
func (s *SubAccount) VerifyDomain(ctx context.Context, id int64) (*Domain, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := s.client.apiClient.VerifyDomain(ctx, s.apiKey, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return domainFromDTO(dto), nil
}

// domainFromDTO converts an API DTO to a public Domain.
func domainFromDTO(dto *api.DomainDTO) *Domain {
	d := &Domain{
		ID:       dto.ID,
		Name:     dto.Name,
		Verified: dto.Verified,
		Created:  dto.Created,
	}
	if dto.DKIM != nil {
		d.DKIM = &DKIM{
			Selector:  dto.DKIM.Selector,
			TextValue: dto.DKIM.TextValue,
		}
	}
	return d
}
