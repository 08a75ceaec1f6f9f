// Package config provides configuration management.
//
// Configuration is layered: built-in defaults, then an optional config
// file (JSON or HCL, chosen by extension), then environment variables.
// A .env file in the working directory is honored for the environment
// layer, which is where the Stuller credentials normally live.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"bangler/internal/errors"
	"bangler/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Stuller contains supplier API settings
	Stuller StullerConfig `json:"stuller"`

	// Pricing contains business pricing settings
	Pricing PricingConfig `json:"pricing"`

	// Material contains strip-length calculation settings
	Material MaterialConfig `json:"material"`

	// Catalog contains catalog source settings
	Catalog CatalogConfig `json:"catalog"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// StullerConfig contains Stuller API settings
type StullerConfig struct {
	// BaseURL is the API root
	BaseURL string `json:"base_url"`

	// Username for HTTP basic auth
	Username string `json:"username"`

	// Password for HTTP basic auth
	Password string `json:"password"`

	// TimeoutSeconds bounds each API call
	TimeoutSeconds int `json:"timeout_seconds"`

	// MaxFailures opens the circuit breaker after this many
	// consecutive failures
	MaxFailures int `json:"max_failures"`
}

// HasCredentials reports whether supplier credentials are configured
func (s StullerConfig) HasCredentials() bool {
	return s.Username != "" && s.Password != ""
}

// PricingConfig contains business pricing settings
type PricingConfig struct {
	// BaseFeeUSD is the flat fabrication fee added to material cost,
	// as a decimal string so no binary float touches money
	BaseFeeUSD string `json:"base_fee_usd"`
}

// BaseFee returns the base fee as a decimal
func (p PricingConfig) BaseFee() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(p.BaseFeeUSD)
	if err != nil {
		return decimal.Zero, errors.Config("invalid base fee", err).
			WithDetail("base_fee_usd=%q", p.BaseFeeUSD)
	}
	return d, nil
}

// MaterialConfig contains strip-length calculation settings
type MaterialConfig struct {
	// KFactor is the neutral-axis factor (0.5 = bend line at mid-thickness)
	KFactor float64 `json:"k_factor"`

	// SeamAllowanceIn is added for the cut and join
	SeamAllowanceIn float64 `json:"seam_allowance_in"`

	// RoundIncrementIn is the purchasable length increment
	RoundIncrementIn float64 `json:"round_increment_in"`
}

// CatalogConfig contains catalog source settings
type CatalogConfig struct {
	// InventoryPath is the saved sizing-stock inventory JSON
	InventoryPath string `json:"inventory_path"`

	// LengthClass is the stock length class quoted against
	LengthClass string `json:"length_class"`

	// PageSize for paginated supplier searches
	PageSize int `json:"page_size"`

	// MaxPages caps a discovery run (0 = no cap)
	MaxPages int `json:"max_pages"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	inventoryPath := filepath.Join(homeDir, ".bangler", "sizing_stock_inventory.json")

	return &Config{
		Version: "1.0",
		Stuller: StullerConfig{
			BaseURL:        "https://api.stuller.com/v2",
			TimeoutSeconds: 30,
			MaxFailures:    5,
		},
		Pricing: PricingConfig{
			BaseFeeUSD: "475.00",
		},
		Material: MaterialConfig{
			KFactor:          0.5,
			SeamAllowanceIn:  0.04,
			RoundIncrementIn: 0.25,
		},
		Catalog: CatalogConfig{
			InventoryPath: inventoryPath,
			LengthClass:   "Bulk",
			PageSize:      500,
			MaxPages:      0,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file, layered over defaults.
// JSON and HCL files are supported; a missing file yields defaults.
// Environment variables are applied last.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		if err := loadFile(path, config); err != nil {
			return nil, err
		}
	}

	config.applyEnv()
	return config, nil
}

func loadFile(path string, config *Config) error {
	switch filepath.Ext(path) {
	case ".hcl":
		return loadHCL(path, config)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return errors.Config("cannot read config file", err).WithDetail("path=%s", path)
		}
		if err := json.Unmarshal(data, config); err != nil {
			return errors.Config("cannot parse config file", err).WithDetail("path=%s", path)
		}
		return nil
	}
}

// hclConfig mirrors Config for HCL decoding. Blocks are pointers so an
// HCL file can set only the sections it cares about.
type hclConfig struct {
	Version  string          `hcl:"version,optional"`
	Stuller  *hclStuller     `hcl:"stuller,block"`
	Pricing  *hclPricing     `hcl:"pricing,block"`
	Material *hclMaterial    `hcl:"material,block"`
	Catalog  *hclCatalog     `hcl:"catalog,block"`
	Logging  *logging.Config `hcl:"logging,block"`
}

type hclStuller struct {
	BaseURL        string `hcl:"base_url,optional"`
	Username       string `hcl:"username,optional"`
	Password       string `hcl:"password,optional"`
	TimeoutSeconds int    `hcl:"timeout_seconds,optional"`
	MaxFailures    int    `hcl:"max_failures,optional"`
}

type hclPricing struct {
	BaseFeeUSD string `hcl:"base_fee_usd,optional"`
}

type hclMaterial struct {
	KFactor          float64 `hcl:"k_factor,optional"`
	SeamAllowanceIn  float64 `hcl:"seam_allowance_in,optional"`
	RoundIncrementIn float64 `hcl:"round_increment_in,optional"`
}

type hclCatalog struct {
	InventoryPath string `hcl:"inventory_path,optional"`
	LengthClass   string `hcl:"length_class,optional"`
	PageSize      int    `hcl:"page_size,optional"`
	MaxPages      int    `hcl:"max_pages,optional"`
}

func loadHCL(path string, config *Config) error {
	var raw hclConfig
	if err := hclsimple.DecodeFile(path, nil, &raw); err != nil {
		return errors.Config("cannot parse HCL config file", err).WithDetail("path=%s", path)
	}

	if raw.Version != "" {
		config.Version = raw.Version
	}
	if s := raw.Stuller; s != nil {
		setString(&config.Stuller.BaseURL, s.BaseURL)
		setString(&config.Stuller.Username, s.Username)
		setString(&config.Stuller.Password, s.Password)
		setInt(&config.Stuller.TimeoutSeconds, s.TimeoutSeconds)
		setInt(&config.Stuller.MaxFailures, s.MaxFailures)
	}
	if p := raw.Pricing; p != nil {
		setString(&config.Pricing.BaseFeeUSD, p.BaseFeeUSD)
	}
	if m := raw.Material; m != nil {
		setFloat(&config.Material.KFactor, m.KFactor)
		setFloat(&config.Material.SeamAllowanceIn, m.SeamAllowanceIn)
		setFloat(&config.Material.RoundIncrementIn, m.RoundIncrementIn)
	}
	if c := raw.Catalog; c != nil {
		setString(&config.Catalog.InventoryPath, c.InventoryPath)
		setString(&config.Catalog.LengthClass, c.LengthClass)
		setInt(&config.Catalog.PageSize, c.PageSize)
		setInt(&config.Catalog.MaxPages, c.MaxPages)
	}
	if l := raw.Logging; l != nil {
		setString(&config.Logging.Level, l.Level)
		setString(&config.Logging.Format, l.Format)
		setString(&config.Logging.Output, l.Output)
		if l.Development {
			config.Logging.Development = true
		}
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

// applyEnv overlays environment variables. A .env file is loaded
// first, best effort; real environment always wins over the file.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	setString(&c.Stuller.Username, os.Getenv("STULLER_USERNAME"))
	setString(&c.Stuller.Password, os.Getenv("STULLER_PASSWORD"))
	setString(&c.Stuller.BaseURL, os.Getenv("STULLER_API_URL"))
	if v, err := strconv.Atoi(os.Getenv("STULLER_TIMEOUT_SECONDS")); err == nil && v > 0 {
		c.Stuller.TimeoutSeconds = v
	}
	setString(&c.Pricing.BaseFeeUSD, os.Getenv("BASE_PRICE"))
	setString(&c.Catalog.InventoryPath, os.Getenv("BANGLER_INVENTORY"))
	setString(&c.Logging.Level, os.Getenv("LOG_LEVEL"))
	if os.Getenv("DEBUG") == "true" {
		c.Logging.Level = "debug"
		c.Logging.Development = true
	}
}

// Validate returns configuration problems as a list of messages
func (c *Config) Validate() []string {
	var problems []string

	if !c.Stuller.HasCredentials() {
		problems = append(problems, "Stuller credentials not configured. Set STULLER_USERNAME and STULLER_PASSWORD.")
	}
	if fee, err := c.Pricing.BaseFee(); err != nil {
		problems = append(problems, "BASE_PRICE is not a valid decimal amount")
	} else if fee.Sign() <= 0 {
		problems = append(problems, "BASE_PRICE must be greater than 0")
	}
	if c.Material.RoundIncrementIn <= 0 {
		problems = append(problems, "material round_increment_in must be greater than 0")
	}
	return problems
}

// Save saves configuration to a JSON file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
