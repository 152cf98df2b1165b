package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Port the HTTP server listens on
	Port string `env:"PORT" envDefault:"8000"`

	// RentCast valuation API
	RentCast struct {
		APIKey  string `env:"RENTCAST_API_KEY"`
		BaseURL string `env:"RENTCAST_BASE_URL" envDefault:"https://api.rentcast.io/v1"`

		// Request timeout in seconds
		Timeout int `env:"RENTCAST_TIMEOUT" envDefault:"30"`
	}

	// OpenAI SEO analysis
	OpenAI struct {
		APIKey  string `env:"OPENAI_API_KEY"`
		BaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
		Model   string `env:"OPENAI_MODEL" envDefault:"gpt-4.1-mini"`
		Timeout int    `env:"OPENAI_TIMEOUT" envDefault:"60"`
	}

	// ShowMojo report export API
	ShowMojo struct {
		Email    string `env:"SHOWMOJO_EMAIL"`
		Password string `env:"SHOWMOJO_PASSWORD"`
		BaseURL  string `env:"SHOWMOJO_BASE_URL" envDefault:"https://showmojo.com/api/v3"`
		Timeout  int    `env:"SHOWMOJO_TIMEOUT" envDefault:"60"`
	}

	// Lovable webhook delivery
	Webhook struct {
		MarketURL      string `env:"LOVABLE_MARKET_DATA_WEBHOOK"`
		SyndicationURL string `env:"LOVABLE_SYNDICATION_WEBHOOK"`

		// Falls back to MarketURL when unset
		ShowingsURL string `env:"LOVABLE_SHOWINGS_WEBHOOK"`

		AuthToken string `env:"LOVABLE_AUTH_TOKEN"`
		Timeout   int    `env:"WEBHOOK_TIMEOUT" envDefault:"60"`
	}

	// Background task dispatch
	Dispatch struct {
		// Number of concurrent task workers
		WorkerCount int `env:"DISPATCH_WORKER_COUNT" envDefault:"4"`

		// Maximum number of queued tasks before Push fails
		QueueSize int `env:"DISPATCH_QUEUE_SIZE" envDefault:"64"`
	}
}

// ShowingsWebhookURL returns the showings webhook target, falling back to the
// market webhook when no dedicated URL is configured.
func (c *Config) ShowingsWebhookURL() string {
	if c.Webhook.ShowingsURL != "" {
		return c.Webhook.ShowingsURL
	}
	return c.Webhook.MarketURL
}

func LoadConfig() (*Config, error) {
	// System environment wins when no .env file exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
