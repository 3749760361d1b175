package models

import (
	"time"

	"gorm.io/datatypes"
)

// Coin is the latest known snapshot for one tracked market entity. A refresh
// fully replaces every column; there is no partial-field merge.
type Coin struct {
	ID                string         `gorm:"primaryKey;type:text" json:"id"`
	Name              string         `gorm:"type:text" json:"name"`
	Symbol            string         `gorm:"type:text" json:"symbol"`
	Image             string         `gorm:"type:text" json:"image"`
	CurrentPrice      float64        `gorm:"not null;default:0" json:"current_price"`
	PriceChangePct24h float64        `gorm:"column:price_change_percentage_24h;not null;default:0" json:"price_change_percentage_24h"`
	MarketCap         float64        `gorm:"not null;default:0" json:"market_cap"`
	TotalVolume       float64        `gorm:"not null;default:0" json:"total_volume"`
	CirculatingSupply float64        `gorm:"not null;default:0" json:"circulating_supply"`
	MaxSupply         float64        `gorm:"not null;default:0" json:"max_supply"`
	Derived           datatypes.JSON `gorm:"type:jsonb;not null" json:"derived"`
	LastUpdated       time.Time      `gorm:"not null;index" json:"last_updated"`
}

func (Coin) TableName() string {
	return "coins"
}
