package analytics

import (
	"sort"

	"github.com/Spok95/inventory-tracker/internal/domain/inventory"
	"github.com/Spok95/inventory-tracker/internal/domain/materials"
)

// Uncategorized labels materials with an empty category.
const Uncategorized = "Uncategorized"

type TypeCounts struct {
	Receiving int `json:"receiving"`
	Issuance  int `json:"issuance"`
	Total     int `json:"total"`
}

func CountsByType(txs []inventory.Transaction) TypeCounts {
	var c TypeCounts
	for _, t := range txs {
		switch t.Type {
		case inventory.MoveReceiving:
			c.Receiving++
		case inventory.MoveIssuance:
			c.Issuance++
		}
		c.Total++
	}
	return c
}

// Share is a bucket count with its percentage of the whole.
type Share struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// CategoryDistribution counts materials per category, largest first.
// Ties are ordered by name so the result is stable.
func CategoryDistribution(mats []materials.Material) []Share {
	counts := make(map[string]int)
	for _, m := range mats {
		cat := m.Category
		if cat == "" {
			cat = Uncategorized
		}
		counts[cat]++
	}

	out := make([]Share, 0, len(counts))
	for k, n := range counts {
		out = append(out, Share{Key: k, Count: n, Percent: percent(n, len(mats))})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// SeverityDistribution reports every level in the given order, including
// levels with no items. Percentages are relative to len(items).
func SeverityDistribution[T any, S ~string](items []T, severityOf func(T) S, levels []S) []Share {
	counts := make(map[S]int, len(levels))
	for _, it := range items {
		counts[severityOf(it)]++
	}
	out := make([]Share, 0, len(levels))
	for _, l := range levels {
		n := counts[l]
		out = append(out, Share{Key: string(l), Count: n, Percent: percent(n, len(items))})
	}
	return out
}
