package checkin

import (
	"regexp"
	"strings"
)

// The three-line post template, as rendered by the community's 小红书 check-in
// card: a nickname line, a punch-time line, and an excerpt line. Labels may be
// followed by a half-width or full-width colon.
var (
	nicknameRe = regexp.MustCompile(`^昵称.*?[:：]\s*(.*?)$`)
	punchRe    = regexp.MustCompile(`^打卡时间.*?[:：]\s*(\d{4}/\d{1,2}/\d{1,2})`)
	excerptRe  = regexp.MustCompile(`^论文(原文)?摘要的随机一句话.*?[:：]`)
)

// Parse scans recognized text lines for complete three-line check-in
// triplets. A full match emits one Entry and advances past the triplet; any
// partial or failed match advances a single line, so a malformed triplet
// never hides a valid one that starts later. An empty result is not an error.
func Parse(lines []string) []Entry {
	var entries []Entry
	i := 0
	for i < len(lines) {
		line := strings.TrimSpace(lines[i])
		if m := nicknameRe.FindStringSubmatch(line); m != nil && i+1 < len(lines) {
			punchLine := strings.TrimSpace(lines[i+1])
			if t := punchRe.FindStringSubmatch(punchLine); t != nil && i+2 < len(lines) {
				excerptLine := strings.TrimSpace(lines[i+2])
				excerpt := strings.TrimSpace(excerptRe.ReplaceAllString(excerptLine, ""))
				entries = append(entries, Entry{
					Nickname:  strings.TrimSpace(m[1]),
					PunchTime: t[1],
					Excerpt:   excerpt,
				})
				i += 3
				continue
			}
		}
		i++
	}
	return entries
}
