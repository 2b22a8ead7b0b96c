package checkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func passed(nick, date string) Record {
	return Record{Nickname: nick, PunchDate: date, Passed: true}
}

func TestAggregateEmpty(t *testing.T) {
	lb := Aggregate(nil)
	assert.Empty(t, lb.Cumulative)
	assert.Empty(t, lb.PerDate)
	assert.Empty(t, lb.Dates)
}

func TestAggregateCountsPassedOnly(t *testing.T) {
	lb := Aggregate([]Record{
		passed("小明", "2026/3/5"),
		passed("小明", "2026/3/6"),
		{Nickname: "小明", PunchDate: "2026/3/7", Passed: false},
	})
	require.Len(t, lb.Cumulative, 1)
	assert.Equal(t, RankEntry{Nickname: "小明", Count: 2}, lb.Cumulative[0])
}

func TestAggregateOrderingAndTies(t *testing.T) {
	lb := Aggregate([]Record{
		passed("乙", "2026/3/5"),
		passed("甲", "2026/3/5"),
		passed("丙", "2026/3/5"),
		passed("丙", "2026/3/6"),
	})
	// Descending by count, ties by nickname ascending.
	assert.Equal(t, []RankEntry{
		{Nickname: "丙", Count: 2},
		{Nickname: "乙", Count: 1},
		{Nickname: "甲", Count: 1},
	}, lb.Cumulative)
}

func TestAggregatePerDateUsesExactString(t *testing.T) {
	lb := Aggregate([]Record{
		passed("小明", "2026/3/5"),
		passed("小明", "2026/03/05"), // padded string is a different key
	})
	require.Len(t, lb.PerDate, 2)
	assert.Equal(t, []RankEntry{{Nickname: "小明", Count: 1}}, lb.PerDate["2026/3/5"])
	assert.Equal(t, []RankEntry{{Nickname: "小明", Count: 1}}, lb.PerDate["2026/03/05"])
}

func TestAggregateDatesNewestFirst(t *testing.T) {
	lb := Aggregate([]Record{
		passed("甲", "2026/3/5"),
		passed("乙", "2026/3/7"),
		passed("丙", "2026/3/6"),
	})
	assert.Equal(t, []string{"2026/3/7", "2026/3/6", "2026/3/5"}, lb.Dates)
}

func TestAggregateIsPure(t *testing.T) {
	in := []Record{passed("小明", "2026/3/5")}
	before := in[0]
	Aggregate(in)
	assert.Equal(t, before, in[0])
}
