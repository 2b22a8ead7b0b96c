package checkin

import "sort"

// RankEntry is one leaderboard row.
type RankEntry struct {
	Nickname string `json:"nickname"`
	Count    int    `json:"count"`
}

// Leaderboard is the ranking view derived from a record sequence: cumulative
// counts and per-punch-date counts, passed records only.
type Leaderboard struct {
	Cumulative []RankEntry            `json:"cumulative"`
	PerDate    map[string][]RankEntry `json:"per_date"`
	Dates      []string               `json:"dates"` // punch dates with passed records, newest first
}

// Aggregate ranks passed records by nickname. It is a pure function of the
// record sequence. Per-date grouping keys on the exact punch-date string, the
// same strictness as date validation.
func Aggregate(records []Record) Leaderboard {
	cumulative := map[string]int{}
	byDate := map[string]map[string]int{}
	for _, r := range records {
		if !r.Passed {
			continue
		}
		cumulative[r.Nickname]++
		if byDate[r.PunchDate] == nil {
			byDate[r.PunchDate] = map[string]int{}
		}
		byDate[r.PunchDate][r.Nickname]++
	}

	lb := Leaderboard{
		Cumulative: rank(cumulative),
		PerDate:    make(map[string][]RankEntry, len(byDate)),
		Dates:      make([]string, 0, len(byDate)),
	}
	for date, counts := range byDate {
		lb.PerDate[date] = rank(counts)
		lb.Dates = append(lb.Dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(lb.Dates)))
	return lb
}

// rank sorts descending by count, ties broken by nickname ascending so the
// order is deterministic.
func rank(counts map[string]int) []RankEntry {
	out := make([]RankEntry, 0, len(counts))
	for nick, count := range counts {
		out = append(out, RankEntry{Nickname: nick, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Nickname < out[j].Nickname
	})
	return out
}
