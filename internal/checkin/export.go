package checkin

import (
	"bytes"
	"fmt"
	"strings"
)

// Column order is stable; these match the record fields shown to admins.
var csvHeader = []string{"昵称", "打卡日期", "摘录句子", "相似度", "日期有效", "相似度达标", "昵称有效", "通过"}

// ExportCSV renders records as CSV, one row per record with a header row.
// The output is UTF-8 with a BOM so spreadsheet tools open the Chinese
// columns correctly.
func ExportCSV(records []Record) []byte {
	var buf bytes.Buffer
	buf.WriteString("\xef\xbb\xbf")
	buf.WriteString(strings.Join(csvHeader, ","))
	buf.WriteByte('\n')
	for _, r := range records {
		fmt.Fprintf(&buf, "%s,%s,%s,%.2f,%t,%t,%t,%t\n",
			esc(r.Nickname), esc(r.PunchDate), esc(r.Excerpt),
			r.Similarity, r.DateValid, r.SimilarityValid, r.NicknameValid, r.Passed)
	}
	return buf.Bytes()
}

func esc(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
