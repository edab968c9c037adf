package api

import "time"

// IPDTO represents a sending IP from the API.
type IPDTO struct {
	ID                 int64     `json:"id"`
	PublicIP           string    `json:"public_ip"`
	ReverseDNSHostname string    `json:"reverse_dns_hostname,omitempty"`
	Created            time.Time `json:"created"`
}

// PoolIPDTO identifies an IP being attached to a pool.
type PoolIPDTO struct {
	PublicIP string `json:"public_ip"`
}

// CreateIPPoolRequest is the request body for creating an IP pool.
// RoutingStrategy is 0 for round robin, 1 for email-provider routing.
type CreateIPPoolRequest struct {
	Name            string      `json:"name"`
	RoutingStrategy int         `json:"routing_strategy"`
	IPs             []PoolIPDTO `json:"ips"`
}

// UpdateIPPoolRequest is the request body for updating an IP pool.
// All fields are optional - only provided fields will be updated.
type UpdateIPPoolRequest struct {
	Name            *string     `json:"name,omitempty"`
	RoutingStrategy *int        `json:"routing_strategy,omitempty"`
	IPs             []PoolIPDTO `json:"ips,omitempty"`
}

// IPPoolDTO represents an IP pool from the API.
type IPPoolDTO struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	RoutingStrategy int     `json:"routing_strategy"`
	IPs             []IPDTO `json:"ips,omitempty"`
}
