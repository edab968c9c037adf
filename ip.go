package sendpost

import (
	"context"
	"time"

	"github.com/sendpost/sendpost-go/internal/api"
)

// IP is a sending IP provisioned on the account.
type IP struct {
	ID                 int64
	PublicIP           string
	ReverseDNSHostname string
	Created            time.Time
}

// ListIPs returns all sending IPs provisioned on the account.
func (c *Client) ListIPs(ctx context.Context) ([]IP, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dtos, err := c.apiClient.ListIPs(ctx)
	if err != nil {
		return nil, wrapError(err)
	}

	ips := make([]IP, len(dtos))
	for i, dto := range dtos {
		ips[i] = ipFromDTO(&dto)
	}
	return ips, nil
}

// ipFromDTO converts an API DTO to a public IP.
func ipFromDTO(dto *api.IPDTO) IP {
	return IP{
		ID:                 dto.ID,
		PublicIP:           dto.PublicIP,
		ReverseDNSHostname: dto.ReverseDNSHostname,
		Created:            dto.Created,
	}
}
