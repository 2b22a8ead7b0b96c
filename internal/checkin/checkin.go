package checkin

// Entry is one structured check-in extracted from the recognized text of a
// screenshot: who punched, the date printed on the post, and the sentence the
// member copied from the day's abstract.
type Entry struct {
	Nickname  string `json:"nickname"`
	PunchTime string `json:"punch_time"` // verbatim YYYY/M/D token, never reformatted
	Excerpt   string `json:"excerpt"`
}

// Record is the verdict for one Entry. The three checks are independent and
// all recorded; Passed is their conjunction. After creation only the
// administrative bulk override may flip Passed.
type Record struct {
	Nickname        string  `json:"nickname"`
	PunchDate       string  `json:"punch_date"`
	Excerpt         string  `json:"excerpt"`
	Similarity      float64 `json:"similarity"`
	DateValid       bool    `json:"date_valid"`
	SimilarityValid bool    `json:"similarity_valid"`
	NicknameValid   bool    `json:"nickname_valid"`
	Passed          bool    `json:"passed"`
}
