package sendpost

import (
	"context"
	"time"

	"github.com/sendpost/sendpost-go/internal/api"
)

// SubAccountType distinguishes billing tiers of a sub-account.
type SubAccountType int

const (
	// SubAccountRegular is the standard sub-account type.
	SubAccountRegular SubAccountType = 0
	// SubAccountPlus is the upgraded sub-account type.
	SubAccountPlus SubAccountType = 1
)

// SubAccountInfo describes a sub-account as returned by the API.
type SubAccountInfo struct {
	ID      int64
	Name    string
	APIKey  string
	Type    SubAccountType
	Blocked bool
	Created time.Time
}

// SubAccount is a handle bound to one sub-account's id and API key.
// Domain management, email sending and sub-account statistics
// authenticate with the handle's key.
type SubAccount struct {
	id     int64
	apiKey string
	client *Client
}

// ID returns the sub-account id the handle is bound to.
func (s *SubAccount) ID() int64 {
	return s.id
}

// APIKey returns the sub-account API key the handle authenticates with.
func (s *SubAccount) APIKey() string {
	return s.apiKey
}

// ListSubAccounts returns all sub-accounts of the account.
func (c *Client) ListSubAccounts(ctx context.Context) ([]SubAccountInfo, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dtos, err := c.apiClient.ListSubAccounts(ctx)
	if err != nil {
		return nil, wrapError(err)
	}

	subs := make([]SubAccountInfo, len(dtos))
	for i, dto := range dtos {
		subs[i] = subAccountFromDTO(&dto)
	}
	return subs, nil
}

// CreateSubAccount creates a new sub-account with the given name.
// The response carries the sub-account's freshly issued API key.
func (c *Client) CreateSubAccount(ctx context.Context, name string) (*SubAccountInfo, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := c.apiClient.CreateSubAccount(ctx, &api.CreateSubAccountRequest{Name: name})
	if err != nil {
		return nil, wrapError(err)
	}

	sub := subAccountFromDTO(dto)
	return &sub, nil
}

// GetSubAccount returns a sub-account by id.
func (c *Client) GetSubAccount(ctx context.Context, id int64) (*SubAccountInfo, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := c.apiClient.GetSubAccount(ctx, id)
	if err != nil {
		return nil, wrapError(err)
	}

	sub := subAccountFromDTO(dto)
	return &sub, nil
}

// UpdateSubAccount renames a sub-account.
func (c *Client) UpdateSubAccount(ctx context.Context, id int64, name string) (*SubAccountInfo, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := c.apiClient.UpdateSubAccount(ctx, id, &api.UpdateSubAccountRequest{Name: name})
	if err != nil {
		return nil, wrapError(err)
	}

	sub := subAccountFromDTO(dto)
	return &sub, nil
}

// DeleteSubAccount deletes a sub-account by id.
func (c *Client) DeleteSubAccount(ctx context.Context, id int64) error {
	if err := c.checkClosed(); err != nil {
		return err
	}
	return wrapError(c.apiClient.DeleteSubAccount(ctx, id))
}

// subAccountFromDTO converts an API DTO to a public SubAccountInfo.
func subAccountFromDTO(dto *api.SubAccountDTO) SubAccountInfo {
	return SubAccountInfo{
		ID:      dto.ID,
		Name:    dto.Name,
		APIKey:  dto.APIKey,
		Type:    SubAccountType(dto.Type),
		Blocked: dto.Blocked,
		Created: dto.Created,
	}
}
