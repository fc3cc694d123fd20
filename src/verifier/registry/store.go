package registry

import (
	"fmt"

	"github.com/trustmesh/newsverify/src/verifier/types"
	"gorm.io/gorm"
)

// TrustedSource is the database row for one allowlisted outlet.
type TrustedSource struct {
	ID     uint32 `gorm:"primaryKey"`
	Domain string `gorm:"size:128;unique;not null"`
	Name   string `gorm:"size:64;not null"`
	Tier   string `gorm:"size:16;not null"`
	Active bool   `gorm:"default:true"`
}

// Load reads the active trusted sources from the database. Returns an error
// when the table is empty so callers can fall back to Builtin.
func Load(db *gorm.DB) (*Registry, error) {
	var rows []TrustedSource
	if err := db.Where("active = ?", true).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no active trusted sources configured")
	}

	outlets := make([]Outlet, 0, len(rows))
	for _, row := range rows {
		tier := types.TrustTier(row.Tier)
		switch tier {
		case types.TierHigh, types.TierMedium, types.TierLow:
		default:
			tier = types.TierLow
		}
		outlets = append(outlets, Outlet{Domain: row.Domain, Name: row.Name, Tier: tier})
	}
	return New(outlets), nil
}
