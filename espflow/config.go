package espflow

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the workflow's fixed inputs. Zero values fall back to
// the demonstration defaults, which target placeholder addresses and
// must be replaced with verified values before sends can succeed.
type Config struct {
	// BaseURL overrides the SendPost API base URL. Empty keeps the
	// client's default.
	BaseURL string `yaml:"base_url"`
	// FromEmail is the sender address on a verified domain.
	FromEmail string `yaml:"from_email"`
	// ToEmail is the recipient of both workflow sends.
	ToEmail string `yaml:"to_email"`
	// DomainName is the sending domain added in the domain steps.
	DomainName string `yaml:"domain"`
	// WebhookURL receives event notifications for the created webhook.
	WebhookURL string `yaml:"webhook_url"`
}

// DefaultConfig returns the demonstration defaults.
func DefaultConfig() Config {
	return Config{
		FromEmail:  "sender@yourdomain.com",
		ToEmail:    "recipient@example.com",
		DomainName: "yourdomain.com",
		WebhookURL: "https://your-webhook-endpoint.com/webhook",
	}
}

// LoadConfig reads a YAML workflow config. Fields absent from the file
// keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
