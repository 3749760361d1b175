package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// GlobalSnapshotID is the constant primary key of the singleton row.
const GlobalSnapshotID = 1

// GlobalSnapshot is the latest market-wide aggregate. Exactly zero or one row
// exists; every refresh overwrites it (last writer wins).
type GlobalSnapshot struct {
	ID                    int             `gorm:"primaryKey" json:"id"`
	TotalMarketCap        decimal.Decimal `gorm:"type:numeric(30,10);not null" json:"total_market_cap"`
	TotalVolume           decimal.Decimal `gorm:"type:numeric(30,10);not null" json:"total_volume"`
	BTCDominance          float64         `gorm:"not null;default:0" json:"btc_dominance"`
	ETHDominance          float64         `gorm:"not null;default:0" json:"eth_dominance"`
	MarketCapChangePct24h float64         `gorm:"column:market_cap_change_24h;not null;default:0" json:"market_cap_change_24h"`
	Extra                 datatypes.JSON  `gorm:"type:jsonb;not null" json:"extra"`
	LastUpdated           time.Time       `gorm:"not null" json:"last_updated"`
	LastFetched           time.Time       `gorm:"not null" json:"last_fetched"`
}

func (GlobalSnapshot) TableName() string {
	return "global_snapshots"
}
