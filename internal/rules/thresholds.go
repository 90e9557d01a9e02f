package rules

import "fmt"

// Thresholds are the business constants of the alert rules.
type Thresholds struct {
	// A mismatch triggers when |variance| >= MismatchMinVariance
	// or variance percent > MismatchMinPercent.
	MismatchMinVariance float64 `mapstructure:"mismatch_min_variance"`
	MismatchMinPercent  float64 `mapstructure:"mismatch_min_percent"`

	CriticalPercent  float64 `mapstructure:"critical_percent"`
	CriticalVariance float64 `mapstructure:"critical_variance"`
	ErrorPercent     float64 `mapstructure:"error_percent"`
	ErrorVariance    float64 `mapstructure:"error_variance"`

	// Low stock is 0 < quantity <= LowStockLevel, critical at or below LowStockCritical.
	LowStockLevel    float64 `mapstructure:"low_stock_level"`
	LowStockCritical float64 `mapstructure:"low_stock_critical"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		MismatchMinVariance: 1,
		MismatchMinPercent:  1,
		CriticalPercent:     20,
		CriticalVariance:    100,
		ErrorPercent:        10,
		ErrorVariance:       50,
		LowStockLevel:       10,
		LowStockCritical:    5,
	}
}

func (t Thresholds) Validate() error {
	if t.MismatchMinVariance < 0 || t.MismatchMinPercent < 0 {
		return fmt.Errorf("mismatch thresholds must be >= 0")
	}
	if t.ErrorPercent > t.CriticalPercent || t.ErrorVariance > t.CriticalVariance {
		return fmt.Errorf("error thresholds must not exceed critical thresholds")
	}
	if t.LowStockCritical > t.LowStockLevel || t.LowStockLevel < 0 {
		return fmt.Errorf("low stock critical level must be within [0, low stock level]")
	}
	return nil
}
