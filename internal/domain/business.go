package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaxConfig holds jurisdiction-specific settings for a business, e.g.
// {"state": "NY"} for a US business. Stored as JSONB.
type TaxConfig map[string]string

func (c TaxConfig) Value() (driver.Value, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("TaxConfig.Value: %w", err)
	}
	return b, nil
}

func (c *TaxConfig) Scan(src any) error {
	if src == nil {
		*c = TaxConfig{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("TaxConfig.Scan: expected []byte, got %T", src)
	}
	if err := json.Unmarshal(b, c); err != nil {
		return fmt.Errorf("TaxConfig.Scan: %w", err)
	}
	return nil
}

type Business struct {
	ID          uuid.UUID
	Name        string
	CountryCode string
	TaxConfig   TaxConfig
	CreatedAt   time.Time
}
