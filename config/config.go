package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	// Wallet provider API
	ProviderAPIKey  string
	ProviderBaseURL string

	// Attestation bridge API
	AttestationBaseURL string

	// Default network for the CLI session
	DefaultNetwork string

	// Per-transaction ceiling for transfer/swap amounts, in asset units
	MaxTransactionAmount string

	// Confirmation gate
	ConfirmWindow time.Duration
	SweepInterval time.Duration

	// Burn fee tunable: maxFee = amount / MaxFeeDivisor
	MaxFeeDivisor int64

	// Wallet handle directory file ("" = default in home directory)
	WalletStorePath string
}

var globalConfig *Config

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetConfigName(".stable-wallet")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Set default values
	viper.SetDefault("provider_base_url", "https://api.wallets.example.com")
	viper.SetDefault("attestation_base_url", "https://iris-api-sandbox.circle.com")
	viper.SetDefault("default_network", "ethereum-sepolia")
	viper.SetDefault("max_transaction_amount", "1000")
	viper.SetDefault("confirm_window_seconds", 30)
	viper.SetDefault("sweep_interval_seconds", 60)
	viper.SetDefault("max_fee_divisor", 5000)

	// Read from environment variables
	viper.SetEnvPrefix("STABLE_WALLET")
	viper.AutomaticEnv()

	// Read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		ProviderAPIKey:       viper.GetString("provider_api_key"),
		ProviderBaseURL:      viper.GetString("provider_base_url"),
		AttestationBaseURL:   viper.GetString("attestation_base_url"),
		DefaultNetwork:       viper.GetString("default_network"),
		MaxTransactionAmount: viper.GetString("max_transaction_amount"),
		ConfirmWindow:        time.Duration(viper.GetInt("confirm_window_seconds")) * time.Second,
		SweepInterval:        time.Duration(viper.GetInt("sweep_interval_seconds")) * time.Second,
		MaxFeeDivisor:        viper.GetInt64("max_fee_divisor"),
		WalletStorePath:      viper.GetString("wallet_store_path"),
	}

	// Validate provider API key
	if cfg.ProviderAPIKey == "" {
		return nil, fmt.Errorf("provider API key not found. Please set STABLE_WALLET_PROVIDER_API_KEY environment variable or create a .stable-wallet.yaml config file")
	}

	if cfg.MaxFeeDivisor <= 0 {
		return nil, fmt.Errorf("max_fee_divisor must be greater than 0")
	}

	globalConfig = cfg
	return cfg, nil
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}
	return globalConfig
}

// Set updates the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}
