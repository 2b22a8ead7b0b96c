package checkin

import (
	"strings"
	"time"
)

// DefaultThreshold is the similarity ratio an excerpt must reach against the
// day's abstract.
const DefaultThreshold = 0.75

// Verifier adjudicates parsed entries against the day's reference abstract
// and the member roster. Now is replaceable for tests.
type Verifier struct {
	Threshold float64
	Now       func() time.Time
}

func NewVerifier(threshold float64) *Verifier {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Verifier{Threshold: threshold, Now: time.Now}
}

// TodayString formats a date the way punch timestamps are compared:
// YYYY/M/D without zero padding.
func TodayString(t time.Time) string {
	return t.Format("2006/1/2")
}

// dateMatches is a strict string comparison, not calendar equality: a padded
// "2026/3/05" does not match "2026/3/5". Kept in one place so a future switch
// to numeric year/month/day comparison is a one-line change.
func dateMatches(punch, today string) bool {
	return punch == today
}

// nicknameKnown reports whether nick matches any roster name by substring
// containment in either direction, case-sensitive, after trimming. An empty
// roster disables the check and passes everyone.
func nicknameKnown(nick string, roster []string) bool {
	if len(roster) == 0 {
		return true
	}
	nick = strings.TrimSpace(nick)
	for _, m := range roster {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if strings.Contains(m, nick) || strings.Contains(nick, m) {
			return true
		}
	}
	return false
}

// Evaluate produces the verdict for one entry. All three checks run
// unconditionally, so every verdict carries a similarity score even when the
// date or nickname already failed. An empty abstract forces the similarity
// check to fail with a score of 0.
func (v *Verifier) Evaluate(e Entry, abstract string, roster []string) Record {
	rec := Record{
		Nickname:  e.Nickname,
		PunchDate: e.PunchTime,
		Excerpt:   e.Excerpt,
		DateValid: dateMatches(e.PunchTime, TodayString(v.Now())),
	}
	if abstract != "" {
		rec.Similarity = Ratio(e.Excerpt, abstract)
		rec.SimilarityValid = rec.Similarity >= v.Threshold
	}
	rec.NicknameValid = nicknameKnown(e.Nickname, roster)
	rec.Passed = rec.DateValid && rec.SimilarityValid && rec.NicknameValid
	return rec
}
