package entities

// ReportRow is a result log entry tagged as correct or incorrect.
type ReportRow struct {
	QuestionRecord
	Correct bool
}

// Report is the summary of a finished quiz session.
type Report struct {
	FinalScore     int
	TotalQuestions int // size of the configured subset
	Rows           []ReportRow
}

// CorrectCount returns the number of rows tagged as correct.
func (r Report) CorrectCount() int {
	n := 0
	for _, row := range r.Rows {
		if row.Correct {
			n++
		}
	}
	return n
}

// Percentage returns the final score as a share of the total questions.
func (r Report) Percentage() float64 {
	if r.TotalQuestions == 0 {
		return 0
	}
	return float64(r.FinalScore) / float64(r.TotalQuestions) * 100
}
