package main

import (
	"sort"
	"time"
)

type analyticsPayload struct {
	Event        string              `json:"event"`
	Searches     []searchAnalyticDTO `json:"searches"`
	CacheEntries map[string]int      `json:"cache_entries"`
	UpdatedAt    int64               `json:"updated_at_ms"`
}

type searchAnalyticDTO struct {
	Seat        string  `json:"seat"`
	Depth       int     `json:"depth"`
	StartedAtMs int64   `json:"started_at_ms"`
	ElapsedMs   int64   `json:"elapsed_ms"`
	Nodes       int64   `json:"nodes"`
	TTProbes    int64   `json:"tt_probes"`
	TTHits      int64   `json:"tt_hits"`
	TTHitRate   float64 `json:"tt_hit_rate"`
	TTStores    int64   `json:"tt_stores"`
	Cutoffs     int64   `json:"cutoffs"`
	Terminals   int64   `json:"terminals"`
	Passes      int64   `json:"passes"`
}

func searchAnalytics(controller *GameController, event string) analyticsPayload {
	searches, entries := controller.SearchAnalytics()
	return analyticsPayload{
		Event:        event,
		Searches:     searches,
		CacheEntries: entries,
		UpdatedAt:    time.Now().UnixMilli(),
	}
}

// searchAnalyticsFromGame lists the seats whose Minmax strategy has searched
// at least once, player first.
func searchAnalyticsFromGame(g *Game) []searchAnalyticDTO {
	seats := map[Seat]*MinmaxStrategy{}
	if minmax, ok := g.human.Strategy().(*MinmaxStrategy); ok {
		seats[SeatPlayer] = minmax
	}
	if minmax, ok := g.cpu.(*MinmaxStrategy); ok {
		seats[SeatCpu] = minmax
	}
	result := make([]searchAnalyticDTO, 0, len(seats))
	for seat, minmax := range seats {
		stats := minmax.LastStats()
		if stats.Start.IsZero() {
			continue
		}
		result = append(result, searchStatsToDTO(seat, minmax.Depth(), stats))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Seat > result[j].Seat })
	return result
}

func searchStatsToDTO(seat Seat, depth int, stats SearchStats) searchAnalyticDTO {
	hitRate := 0.0
	if stats.TTProbes > 0 {
		hitRate = float64(stats.TTHits) * 100.0 / float64(stats.TTProbes)
	}
	return searchAnalyticDTO{
		Seat:        seat.String(),
		Depth:       depth,
		StartedAtMs: stats.Start.UnixMilli(),
		ElapsedMs:   stats.Elapsed.Milliseconds(),
		Nodes:       stats.Nodes,
		TTProbes:    stats.TTProbes,
		TTHits:      stats.TTHits,
		TTHitRate:   hitRate,
		TTStores:    stats.TTStores,
		Cutoffs:     stats.Cutoffs,
		Terminals:   stats.Terminals,
		Passes:      stats.Passes,
	}
}
