package domain

import "time"

// ImportFrequency controls when the scheduler triggers an automatic sync.
type ImportFrequency string

const (
	FrequencyManual ImportFrequency = "manual"
	FrequencyHourly ImportFrequency = "hourly"
	FrequencyDaily  ImportFrequency = "daily"
)

// Valid reports whether the frequency is one of the accepted values.
func (f ImportFrequency) Valid() bool {
	switch f {
	case FrequencyManual, FrequencyHourly, FrequencyDaily:
		return true
	}
	return false
}

// Interval returns the time between automatic runs, or zero for manual.
func (f ImportFrequency) Interval() time.Duration {
	switch f {
	case FrequencyHourly:
		return time.Hour
	case FrequencyDaily:
		return 24 * time.Hour
	}
	return 0
}

// PriceAdjustment selects the direction of the percentage price adjustment.
type PriceAdjustment string

const (
	PriceIncrease PriceAdjustment = "price_increase"
	PriceDecrease PriceAdjustment = "price_decrease"
)

// Valid reports whether the adjustment is one of the accepted values.
// The empty string is valid and means no adjustment.
func (a PriceAdjustment) Valid() bool {
	switch a {
	case "", PriceIncrease, PriceDecrease:
		return true
	}
	return false
}

// Configuration holds the per-shop Quotiza settings, one document per shop.
type Configuration struct {
	ID              string          `json:"id"`
	Shop            string          `json:"shop"`
	APIKey          string          `json:"api_key"`
	AccountID       string          `json:"account_id"`
	ImportFrequency ImportFrequency `json:"import_frequency"`
	PriceAdjustment PriceAdjustment `json:"price_adjustment,omitempty"`
	// Percentage is kept as the raw string the merchant typed; parsing
	// happens at transform time and falls back to no adjustment.
	Percentage string    `json:"percentage,omitempty"`
	Language   string    `json:"language,omitempty"`
	NextRunAt  time.Time `json:"next_run_at,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// HasCredentials reports whether both partner credentials are present.
// A sync attempt is not allowed without them.
func (c *Configuration) HasCredentials() bool {
	return c != nil && c.APIKey != "" && c.AccountID != ""
}

// Credentials carries the partner API credentials for one shop.
type Credentials struct {
	APIKey    string
	AccountID string
}

// Credentials extracts the partner credentials from the configuration.
func (c *Configuration) Credentials() Credentials {
	return Credentials{APIKey: c.APIKey, AccountID: c.AccountID}
}
