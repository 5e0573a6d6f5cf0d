package scheduling

import "fmt"

// Config defines slot search parameters loaded from configuration.
type Config struct {
	HorizonDays int `json:"horizon_days" yaml:"horizon_days"`
	// DayStartHour and DayEndHour bound the hourly slot anchors within a
	// working day. DayEndHour is the last anchor, inclusive.
	DayStartHour          int `json:"day_start_hour" yaml:"day_start_hour"`
	DayEndHour            int `json:"day_end_hour" yaml:"day_end_hour"`
	MaxResults            int `json:"max_results" yaml:"max_results"`
	DefaultMinAdvanceDays int `json:"default_min_advance_days" yaml:"default_min_advance_days"`
}

// SetDefaults applies the standard listing window: a 30-day horizon of hourly
// anchors between 09:00 and 16:00, top 10 results, 7 days minimum notice.
func (c *Config) SetDefaults() {
	if c.HorizonDays == 0 {
		c.HorizonDays = 30
	}
	if c.DayStartHour == 0 {
		c.DayStartHour = 9
	}
	if c.DayEndHour == 0 {
		c.DayEndHour = 16
	}
	if c.MaxResults == 0 {
		c.MaxResults = 10
	}
	if c.DefaultMinAdvanceDays == 0 {
		c.DefaultMinAdvanceDays = 7
	}
}

// Validate checks that the configuration is coherent.
func (c Config) Validate() error {
	if c.HorizonDays <= 0 {
		return fmt.Errorf("horizon_days must be positive")
	}
	if c.DayStartHour < 0 || c.DayStartHour > 23 {
		return fmt.Errorf("day_start_hour out of range")
	}
	if c.DayEndHour < c.DayStartHour || c.DayEndHour > 23 {
		return fmt.Errorf("day_end_hour must be within the day and not precede day_start_hour")
	}
	if c.MaxResults <= 0 {
		return fmt.Errorf("max_results must be positive")
	}
	if c.DefaultMinAdvanceDays < 0 {
		return fmt.Errorf("default_min_advance_days must not be negative")
	}
	return nil
}
