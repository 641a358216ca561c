package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level finbook.yaml configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Store      StoreConfig      `yaml:"store"`
	Accounts   WellKnownCodes   `yaml:"accounts"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StoreConfig locates the bolt database file.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// WellKnownCodes maps posting roles to chart-of-accounts codes.
// Auto-posting refuses to run when a required code is missing from
// the chart.
type WellKnownCodes struct {
	CashOnHand    string `yaml:"cash_on_hand"`
	BankDeposit   string `yaml:"bank_deposit"`
	Receivable    string `yaml:"receivable"`
	Inventory     string `yaml:"inventory"`
	Payable       string `yaml:"payable"`
	SalaryPayable string `yaml:"salary_payable"`
	SalesRevenue  string `yaml:"sales_revenue"`
}

// ThresholdsConfig carries posting tolerances.
type ThresholdsConfig struct {
	// BalanceTolerance is the largest allowed |debits - credits| on a
	// manually entered voucher, as a decimal string (e.g. "0.01").
	BalanceTolerance string `yaml:"balance_tolerance"`
}

// Tolerance parses the balance tolerance, falling back to 0.01 when
// unset or malformed.
func (t ThresholdsConfig) Tolerance() decimal.Decimal {
	d, err := decimal.NewFromString(t.BalanceTolerance)
	if err != nil || d.IsNegative() {
		return decimal.New(1, -2)
	}
	return d
}

// Load reads a finbook.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new book.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Store:  StoreConfig{Path: "finbook.db"},
		Accounts: WellKnownCodes{
			CashOnHand:    "1001",
			BankDeposit:   "1002",
			Receivable:    "1122",
			Inventory:     "1405",
			Payable:       "2202",
			SalaryPayable: "2211",
			SalesRevenue:  "6001",
		},
		Thresholds: ThresholdsConfig{BalanceTolerance: "0.01"},
	}
}
