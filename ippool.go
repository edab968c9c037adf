package sendpost

import (
	"context"

	"github.com/sendpost/sendpost-go/internal/api"
)

// RoutingStrategy determines how an IP pool picks the sending IP for a
// message.
type RoutingStrategy int

const (
	// RoutingRoundRobin rotates through the pool's IPs.
	RoutingRoundRobin RoutingStrategy = 0
	// RoutingEmailProvider pins recipients of one mailbox provider to
	// one IP.
	RoutingEmailProvider RoutingStrategy = 1
)

// IPPool groups sending IPs under a named routing policy.
type IPPool struct {
	ID              int64
	Name            string
	RoutingStrategy RoutingStrategy
	IPs             []IP
}

// ipPoolUpdateConfig holds configuration for updating an IP pool.
type ipPoolUpdateConfig struct {
	name     *string
	strategy *RoutingStrategy
	ips      []string
}

// IPPoolUpdateOption configures an IP pool update.
type IPPoolUpdateOption func(*ipPoolUpdateConfig)

// WithPoolName renames the pool.
func WithPoolName(name string) IPPoolUpdateOption {
	return func(c *ipPoolUpdateConfig) {
		c.name = &name
	}
}

// WithPoolRouting changes the pool's routing strategy.
func WithPoolRouting(strategy RoutingStrategy) IPPoolUpdateOption {
	return func(c *ipPoolUpdateConfig) {
		c.strategy = &strategy
	}
}

// WithPoolIPs replaces the pool's member IPs, given by public address.
func WithPoolIPs(publicIPs ...string) IPPoolUpdateOption {
	return func(c *ipPoolUpdateConfig) {
		c.ips = publicIPs
	}
}

// CreateIPPool creates a named pool containing the given IPs, listed by
// public address.
func (c *Client) CreateIPPool(ctx context.Context, name string, strategy RoutingStrategy, publicIPs []string) (*IPPool, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	req := &api.CreateIPPoolRequest{
		Name:            name,
		RoutingStrategy: int(strategy),
		IPs:             poolIPsToDTO(publicIPs),
	}

	dto, err := c.apiClient.CreateIPPool(ctx, req)
	if err != nil {
		return nil, wrapError(err)
	}
	return ipPoolFromDTO(dto), nil
}

// ListIPPools returns all IP pools of the account.
func (c *Client) ListIPPools(ctx context.Context) ([]IPPool, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dtos, err := c.apiClient.ListIPPools(ctx)
	if err != nil {
		return nil, wrapError(err)
	}

	pools := make([]IPPool, len(dtos))
	for i, dto := range dtos {
		pools[i] = *ipPoolFromDTO(&dto)
	}
	return pools, nil
}

// GetIPPool returns an IP pool by id.
func (c *Client) GetIPPool(ctx context.Context, id int64) (*IPPool, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := c.apiClient.GetIPPool(ctx, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return ipPoolFromDTO(dto), nil
}

// UpdateIPPool applies the given changes to an IP pool.
func (c *Client) UpdateIPPool(ctx context.Context, id int64, opts ...IPPoolUpdateOption) (*IPPool, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &ipPoolUpdateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	req := &api.UpdateIPPoolRequest{
		Name: cfg.name,
	}
	if cfg.strategy != nil {
		strategy := int(*cfg.strategy)
		req.RoutingStrategy = &strategy
	}
	if cfg.ips != nil {
		req.IPs = poolIPsToDTO(cfg.ips)
	}

	dto, err := c.apiClient.UpdateIPPool(ctx, id, req)
	if err != nil {
		return nil, wrapError(err)
	}
	return ipPoolFromDTO(dto), nil
}

// DeleteIPPool deletes an IP pool by id.
func (c *Client) DeleteIPPool(ctx context.Context, id int64) error {
	if err := c.checkClosed(); err != nil {
		return err
	}
	return wrapError(c.apiClient.DeleteIPPool(ctx, id))
}

// poolIPsToDTO converts public IP addresses to pool member DTOs.
func poolIPsToDTO(publicIPs []string) []api.PoolIPDTO {
	ips := make([]api.PoolIPDTO, len(publicIPs))
	for i, ip := range publicIPs {
		ips[i] = api.PoolIPDTO{PublicIP: ip}
	}
	return ips
}

// ipPoolFromDTO converts an API DTO to a public IPPool.
func ipPoolFromDTO(dto *api.IPPoolDTO) *IPPool {
	pool := &IPPool{
		ID:              dto.ID,
		Name:            dto.Name,
		RoutingStrategy: RoutingStrategy(dto.RoutingStrategy),
	}
	if len(dto.IPs) > 0 {
		pool.IPs = make([]IP, len(dto.IPs))
		for i, ip := range dto.IPs {
			pool.IPs[i] = ipFromDTO(&ip)
		}
	}
	return pool
}
