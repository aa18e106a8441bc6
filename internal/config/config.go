package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Service holds the agent's own runtime settings
type Service struct {
	Environment string `envconfig:"SERVICE_ENVIRONMENT" required:"true"`
	APIPort     string `envconfig:"SERVICE_API_PORT" default:"8080"`
}

// CRM holds the outbound collection API settings. Token is required: the
// legacy placeholder default was replaced with fail-fast startup.
type CRM struct {
	BaseURL              string `envconfig:"CRM_BASE_URL" default:"https://api.threadcommunication.com"`
	Token                string `envconfig:"CRM_TOKEN" required:"true"`
	RequestTimeoutSec    int    `envconfig:"CRM_REQUEST_TIMEOUT_SEC" default:"10"`
	DispatchBufferSize   int    `envconfig:"CRM_DISPATCH_BUFFER_SIZE" default:"100"`
	DispatchMaxRetries   int    `envconfig:"CRM_DISPATCH_MAX_RETRIES" default:"0"`
	DispatchRetryDelayMs int    `envconfig:"CRM_DISPATCH_RETRY_DELAY_MS" default:"500"`
}

// Storage holds the durable store settings
type Storage struct {
	DBPath string `envconfig:"STORAGE_DB_PATH" default:"tracking.db"`
}

// Forms holds the form pipeline settings
type Forms struct {
	DebounceMs int `envconfig:"FORMS_DEBOUNCE_MS" default:"300"`
}

type Config struct {
	Service Service
	CRM     CRM
	Storage Storage
	Forms   Forms
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
