package sandbox

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed preloads sandbox state from a YAML file.
type Seed struct {
	SubAccounts []SeedSubAccount `yaml:"sub_accounts"`
	IPs         []SeedIP         `yaml:"ips"`
	Webhooks    []SeedWebhook    `yaml:"webhooks"`
}

// SeedSubAccount creates a sub-account at startup. An empty APIKey gets
// a generated one.
type SeedSubAccount struct {
	Name   string `yaml:"name"`
	APIKey string `yaml:"api_key"`
}

// SeedIP adds an IP beyond the two defaults.
type SeedIP struct {
	PublicIP   string `yaml:"public_ip"`
	ReverseDNS string `yaml:"reverse_dns"`
}

// SeedWebhook creates a webhook subscribed to every event type.
// Enabled defaults to true when omitted.
type SeedWebhook struct {
	URL     string `yaml:"url"`
	Enabled *bool  `yaml:"enabled"`
}

// LoadSeed reads a YAML seed file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed %s: %w", path, err)
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed %s: %w", path, err)
	}
	return &seed, nil
}

func (st *memoryStore) applySeed(seed *Seed) {
	for _, sa := range seed.SubAccounts {
		key := sa.APIKey
		if key == "" {
			key = newSubAccountKey()
		}
		st.mu.Lock()
		id := st.allocID()
		st.subAccounts[id] = subAccount{
			ID:      id,
			Name:    sa.Name,
			APIKey:  key,
			Created: st.now(),
		}
		st.mu.Unlock()
	}

	for _, ip := range seed.IPs {
		st.addIP(ip.PublicIP, ip.ReverseDNS)
	}

	for _, wh := range seed.Webhooks {
		enabled := true
		if wh.Enabled != nil {
			enabled = *wh.Enabled
		}
		st.mu.Lock()
		id := st.allocID()
		now := st.now()
		st.webhooks[id] = webhook{
			ID:           id,
			URL:          wh.URL,
			Enabled:      enabled,
			Secret:       newWebhookSecret(),
			Processed:    true,
			Delivered:    true,
			Dropped:      true,
			SoftBounced:  true,
			HardBounced:  true,
			Opened:       true,
			Clicked:      true,
			Unsubscribed: true,
			Spam:         true,
			Created:      now,
			Updated:      now,
		}
		st.mu.Unlock()
	}
}
