package citegraph

import "sort"

// YearCount is the number of graph papers published in one year.
type YearCount struct {
	Year         int `json:"year"`
	Publications int `json:"publications"`
}

// PublicationTrend buckets the graph's papers by publication year,
// ascending. Papers with an unset year are excluded.
func PublicationTrend(g *Graph) []YearCount {
	counts := make(map[int]int)
	for _, node := range g.Nodes {
		if node.Year == 0 {
			continue
		}
		counts[node.Year]++
	}

	trend := make([]YearCount, 0, len(counts))
	for year, count := range counts {
		trend = append(trend, YearCount{Year: year, Publications: count})
	}
	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Year < trend[j].Year
	})
	return trend
}
