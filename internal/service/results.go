package service

import "github.com/aliskhannn/quran-fahras-bot/internal/domain/entities"

// BuildReport projects a result log into a summary. Each row is tagged by
// exact comparison of the player's answer with the correct one; total is the
// size of the configured subset, not the number of answered questions.
func BuildReport(log []entities.QuestionRecord, score, total int) entities.Report {
	rows := make([]entities.ReportRow, 0, len(log))
	for _, rec := range log {
		rows = append(rows, entities.ReportRow{
			QuestionRecord: rec,
			Correct:        rec.Matches(),
		})
	}

	return entities.Report{
		FinalScore:     score,
		TotalQuestions: total,
		Rows:           rows,
	}
}
