package services

import (
	"encoding/json"
	"strconv"
	"time"
)

type ResultsStore interface {
	GetSurvey(id string) (*Survey, error)
	ListQuestions(surveyID string) ([]*Question, error)
	ListResponses(surveyID string) ([]*Response, error)
}

// ResultsService builds the owner's aggregate view over stored responses.
// Answers were persisted verbatim, so aggregation decodes them best-effort by
// the question's current type and skips payloads that do not fit.
type ResultsService struct {
	store ResultsStore
}

type QuestionResult struct {
	QuestionID   string         `json:"question_id"`
	Type         string         `json:"type"`
	Text         string         `json:"text"`
	Answered     int            `json:"answered"`
	OptionCounts map[string]int `json:"option_counts,omitempty"`
	Average      float64        `json:"average,omitempty"`
	Distribution map[string]int `json:"distribution,omitempty"`
}

type SurveyResults struct {
	SurveyID      string           `json:"survey_id"`
	ResponseCount int              `json:"response_count"`
	Questions     []QuestionResult `json:"questions"`
}

func NewResultsService(store ResultsStore) *ResultsService {
	return &ResultsService{store: store}
}

func (s *ResultsService) Aggregate(callerID, surveyID string) (*SurveyResults, error) {
	sv, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(callerID, sv); err != nil {
		return nil, err
	}
	questions, err := s.store.ListQuestions(surveyID)
	if err != nil {
		return nil, err
	}
	sortQuestions(questions)
	responses, err := s.store.ListResponses(surveyID)
	if err != nil {
		return nil, err
	}
	out := &SurveyResults{SurveyID: surveyID, ResponseCount: len(responses)}
	for _, q := range questions {
		out.Questions = append(out.Questions, aggregateQuestion(q, responses))
	}
	return out, nil
}

func aggregateQuestion(q *Question, responses []*Response) QuestionResult {
	res := QuestionResult{QuestionID: q.ID, Type: q.Type, Text: q.Text}
	if ChoiceType(q.Type) {
		res.OptionCounts = map[string]int{}
		for _, opt := range q.Options {
			res.OptionCounts[opt] = 0
		}
	}
	ratingSum := 0.0
	ratingN := 0
	if q.Type == QuestionRating {
		res.Distribution = map[string]int{}
	}
	for _, r := range responses {
		raw, ok := r.Answers[q.ID]
		if !ok || len(raw) == 0 {
			continue
		}
		res.Answered++
		switch q.Type {
		case QuestionSingleChoice, QuestionDropdown:
			var choice string
			if err := json.Unmarshal(raw, &choice); err == nil && choice != "" {
				res.OptionCounts[choice]++
			}
		case QuestionMultiChoice:
			var choices []string
			if err := json.Unmarshal(raw, &choices); err == nil {
				for _, c := range choices {
					if c != "" {
						res.OptionCounts[c]++
					}
				}
			}
		case QuestionRating:
			var v float64
			if err := json.Unmarshal(raw, &v); err == nil {
				ratingSum += v
				ratingN++
				res.Distribution[strconv.Itoa(int(v))]++
			}
		}
	}
	if ratingN > 0 {
		res.Average = ratingSum / float64(ratingN)
	}
	return res
}

// ResponseRow is one answer flattened for CSV export (long format).
type ResponseRow struct {
	ResponseID   string
	RespondentID string
	QuestionID   string
	Answer       string
	SubmittedAt  string
}

// ExportCSV renders the survey's responses as a long-format CSV, one row per
// answered question, answers emitted as their raw JSON encoding.
func (s *ResultsService) ExportCSV(callerID, surveyID string) ([]byte, error) {
	sv, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(callerID, sv); err != nil {
		return nil, err
	}
	questions, err := s.store.ListQuestions(surveyID)
	if err != nil {
		return nil, err
	}
	sortQuestions(questions)
	responses, err := s.store.ListResponses(surveyID)
	if err != nil {
		return nil, err
	}
	rows := make([]ResponseRow, 0, len(responses)*len(questions))
	for _, r := range responses {
		for _, q := range questions {
			raw, ok := r.Answers[q.ID]
			if !ok {
				continue
			}
			rows = append(rows, ResponseRow{
				ResponseID:   r.ID,
				RespondentID: r.RespondentID,
				QuestionID:   q.ID,
				Answer:       string(raw),
				SubmittedAt:  r.SubmittedAt.Format(time.RFC3339),
			})
		}
	}
	return ExportResponsesCSV(rows)
}
