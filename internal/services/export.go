package services

import (
	"bytes"
	"encoding/csv"
)

// ExportResponsesCSV renders rows into a long-format CSV.
func ExportResponsesCSV(rows []ResponseRow) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"response_id", "respondent_id", "question_id", "answer", "submitted_at"})
	for _, r := range rows {
		rec := []string{
			r.ResponseID,
			r.RespondentID,
			r.QuestionID,
			r.Answer,
			r.SubmittedAt,
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
