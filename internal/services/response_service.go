package services

import (
	"encoding/json"
	"time"
)

type ResponseStore interface {
	GetSurvey(id string) (*Survey, error)
	InsertResponse(r *Response) (*Response, error)
	ListResponses(surveyID string) ([]*Response, error)
}

// ResponseService accepts submissions against active surveys. Submissions are
// append-only: there is no update or delete path for a stored response.
type ResponseService struct {
	store ResponseStore
	now   func() time.Time
	idGen func() string
}

// SubmitRequest carries a sanitized submission into the service layer.
// RespondentID is empty for anonymous submissions.
type SubmitRequest struct {
	SurveyID     string
	RespondentID string
	Answers      map[string]json.RawMessage
}

// SubmitResult returns the new response's identifier only; the stored payload
// is not echoed back.
type SubmitResult struct {
	ResponseID string `json:"id"`
}

func NewResponseService(store ResponseStore) *ResponseService {
	return &ResponseService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(12) },
	}
}

// Submit requires only that the survey exists and is active; the submitting
// party need not be authenticated and is never the ownership guard's concern.
// Answer payloads are stored verbatim, keyed by question id, without per-type
// shape validation.
func (s *ResponseService) Submit(req SubmitRequest) (*SubmitResult, error) {
	sv, err := s.store.GetSurvey(req.SurveyID)
	if err != nil {
		return nil, err
	}
	if sv == nil {
		return nil, NewNotFoundError("survey not found")
	}
	if sv.Status != StatusActive {
		return nil, NewInvalidStateError("survey is not accepting responses")
	}
	answers := req.Answers
	if answers == nil {
		answers = map[string]json.RawMessage{}
	}
	r := &Response{
		ID:           s.idGen(),
		SurveyID:     req.SurveyID,
		RespondentID: req.RespondentID,
		Answers:      answers,
		SubmittedAt:  s.now(),
	}
	stored, err := s.store.InsertResponse(r)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		r = stored
	}
	return &SubmitResult{ResponseID: r.ID}, nil
}

// ListBySurvey returns the stored submissions for the owner's review.
func (s *ResponseService) ListBySurvey(callerID, surveyID string) ([]*Response, error) {
	sv, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(callerID, sv); err != nil {
		return nil, err
	}
	return s.store.ListResponses(surveyID)
}
