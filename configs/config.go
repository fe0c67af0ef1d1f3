package configs

import (
	"errors"
	"fmt"
)

var Values Config

type (
	NetworkName string

	Config struct {
		Networks  map[NetworkName]Network `mapstructure:"networks"`
		Wallet    Wallet                  `mapstructure:"wallet"`
		Whitelist Whitelist               `mapstructure:"whitelist"`
	}

	// Network describes one chain the CLI can operate on.
	Network struct {
		RPCURL    string `mapstructure:"rpc-url"`
		Diamond   string `mapstructure:"diamond"`
		Multicall string `mapstructure:"multicall"`
	}

	Wallet struct {
		PrivateKey string `mapstructure:"private-key"`
	}

	Whitelist struct {
		File      string `mapstructure:"file"`
		Namespace string `mapstructure:"namespace"`
	}
)

// Network resolves a named network from the configuration.
func (c Config) Network(name string) (Network, error) {
	network, ok := c.Networks[NetworkName(name)]
	if !ok {
		return Network{}, fmt.Errorf("network %q is not configured", name)
	}

	return network, nil
}

func (w Wallet) Validate() error {
	var errs []error

	if w.PrivateKey == "" {
		errs = append(errs, errors.New("wallet.private-key is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("wallet configuration validation failed: %w", errors.Join(errs...))
	}

	return nil
}

func (w Whitelist) Validate() error {
	var errs []error

	if w.File == "" {
		errs = append(errs, errors.New("whitelist.file is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("whitelist configuration validation failed: %w", errors.Join(errs...))
	}

	return nil
}
