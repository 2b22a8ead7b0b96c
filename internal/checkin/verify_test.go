package checkin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testVerifier(today time.Time) *Verifier {
	v := NewVerifier(DefaultThreshold)
	v.Now = func() time.Time { return today }
	return v
}

var march5 = time.Date(2026, 3, 5, 10, 0, 0, 0, time.Local)

func TestTodayStringNoZeroPadding(t *testing.T) {
	assert.Equal(t, "2026/3/5", TodayString(march5))
	assert.Equal(t, "2026/12/31", TodayString(time.Date(2026, 12, 31, 0, 0, 0, 0, time.Local)))
}

func TestEvaluateAllChecksPass(t *testing.T) {
	v := testVerifier(march5)
	rec := v.Evaluate(
		Entry{Nickname: "小明", PunchTime: "2026/3/5", Excerpt: "这是一句摘录。"},
		"摘要：这是一句摘录。",
		nil,
	)
	assert.True(t, rec.DateValid)
	assert.True(t, rec.SimilarityValid)
	assert.GreaterOrEqual(t, rec.Similarity, 0.75)
	assert.True(t, rec.NicknameValid)
	assert.True(t, rec.Passed)
}

func TestEvaluateWrongDayFails(t *testing.T) {
	v := testVerifier(time.Date(2026, 3, 6, 10, 0, 0, 0, time.Local))
	rec := v.Evaluate(
		Entry{Nickname: "小明", PunchTime: "2026/3/5", Excerpt: "这是一句摘录。"},
		"摘要：这是一句摘录。",
		nil,
	)
	assert.False(t, rec.DateValid)
	assert.False(t, rec.Passed)
	// Similarity is still computed and recorded; the checks are independent.
	assert.True(t, rec.SimilarityValid)
	assert.GreaterOrEqual(t, rec.Similarity, 0.75)
}

func TestEvaluateZeroPaddedDateIsStrict(t *testing.T) {
	v := testVerifier(march5)
	rec := v.Evaluate(Entry{Nickname: "小明", PunchTime: "2026/03/05", Excerpt: "x"}, "x", nil)
	assert.False(t, rec.DateValid, "string comparison, not calendar comparison")
}

func TestEvaluateEmptyAbstract(t *testing.T) {
	v := testVerifier(march5)
	rec := v.Evaluate(Entry{Nickname: "小明", PunchTime: "2026/3/5", Excerpt: "任何内容"}, "", nil)
	assert.True(t, rec.DateValid)
	assert.Equal(t, 0.0, rec.Similarity)
	assert.False(t, rec.SimilarityValid)
	assert.False(t, rec.Passed)
}

func TestEvaluateBelowThreshold(t *testing.T) {
	v := testVerifier(march5)
	rec := v.Evaluate(Entry{Nickname: "小明", PunchTime: "2026/3/5", Excerpt: "完全无关的内容"},
		"这篇论文研究了图神经网络在推荐系统中的应用，并给出了系统的实验评估。", nil)
	assert.True(t, rec.DateValid)
	assert.False(t, rec.SimilarityValid)
	assert.False(t, rec.Passed)
}

func TestNicknameRoster(t *testing.T) {
	tests := []struct {
		name   string
		nick   string
		roster []string
		want   bool
	}{
		{"no roster passes everyone", "小明", nil, true},
		{"exact member", "小明", []string{"小明"}, true},
		{"nick inside member", "小明", []string{"小明同学"}, true},
		{"member inside nick", "小明同学", []string{"小明"}, true},
		{"unknown nick", "小明", []string{"张三"}, false},
		{"case sensitive", "alice", []string{"Alice"}, false},
		{"trimmed before matching", " 小明 ", []string{"小明"}, true},
	}
	v := testVerifier(march5)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := v.Evaluate(Entry{Nickname: tt.nick, PunchTime: "2026/3/5", Excerpt: "x"}, "x", tt.roster)
			assert.Equal(t, tt.want, rec.NicknameValid)
		})
	}
}

func TestNewVerifierDefaultsThreshold(t *testing.T) {
	assert.Equal(t, DefaultThreshold, NewVerifier(0).Threshold)
	assert.Equal(t, 0.9, NewVerifier(0.9).Threshold)
}
