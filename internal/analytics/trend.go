package analytics

import (
	"time"

	"github.com/Spok95/inventory-tracker/internal/domain/inventory"
)

const dayLayout = "2006-01-02"

type DayPoint struct {
	Date      string `json:"date"`
	Receiving int    `json:"receiving"`
	Issuance  int    `json:"issuance"`
}

// DailyTrend returns exactly days points, oldest first, the last one being
// today in loc. Days without movements are zero. A nil loc means time.Local.
func DailyTrend(txs []inventory.Transaction, days int, now time.Time, loc *time.Location) []DayPoint {
	if days <= 0 {
		return []DayPoint{}
	}
	if loc == nil {
		loc = time.Local
	}

	local := now.In(loc)
	// noon keeps AddDate away from DST edges
	today := time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, loc)

	out := make([]DayPoint, days)
	idx := make(map[string]int, days)
	for i := 0; i < days; i++ {
		d := today.AddDate(0, 0, i-days+1).Format(dayLayout)
		out[i].Date = d
		idx[d] = i
	}

	for _, t := range txs {
		i, ok := idx[t.Date.In(loc).Format(dayLayout)]
		if !ok {
			continue
		}
		switch t.Type {
		case inventory.MoveReceiving:
			out[i].Receiving++
		case inventory.MoveIssuance:
			out[i].Issuance++
		}
	}
	return out
}
