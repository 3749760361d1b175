package models

import "time"

// Ranking names accepted by the refresh pipeline.
const (
	RankingTop100   = "top100"
	RankingTrending = "trending"
	RankingGainers  = "gainers"
	RankingLosers   = "losers"
)

// RankingNames lists every known ranking in presentation order.
var RankingNames = []string{RankingTop100, RankingTrending, RankingGainers, RankingLosers}

// RankingEntry is one position in a named ranking. After a reconcile the
// entry set for a ranking is exactly the new membership with dense ranks 1..N.
type RankingEntry struct {
	Ranking   string    `gorm:"primaryKey;type:text" json:"ranking"`
	CoinID    string    `gorm:"primaryKey;type:text;index" json:"coin_id"`
	Rank      int       `gorm:"not null" json:"rank"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (RankingEntry) TableName() string {
	return "ranking_entries"
}

// KnownRanking reports whether name is one of the refreshable rankings.
func KnownRanking(name string) bool {
	for _, n := range RankingNames {
		if n == name {
			return true
		}
	}
	return false
}
