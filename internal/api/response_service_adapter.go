package api

import "github.com/surveycraft/surveycraft/internal/services"

type responseStoreAdapter struct {
	store Store
}

func newResponseStoreAdapter(store Store) services.ResponseStore {
	return &responseStoreAdapter{store: store}
}

func toServiceResponse(r *Response) *services.Response {
	if r == nil {
		return nil
	}
	return &services.Response{
		ID:           r.ID,
		SurveyID:     r.SurveyID,
		RespondentID: r.RespondentID,
		Answers:      r.Answers,
		SubmittedAt:  r.SubmittedAt,
	}
}

func toServiceResponses(rs []*Response) []*services.Response {
	out := make([]*services.Response, 0, len(rs))
	for _, r := range rs {
		out = append(out, toServiceResponse(r))
	}
	return out
}

func (a *responseStoreAdapter) GetSurvey(id string) (*services.Survey, error) {
	return toServiceSurvey(a.store.GetSurvey(id)), nil
}

func (a *responseStoreAdapter) InsertResponse(r *services.Response) (*services.Response, error) {
	if r == nil {
		return nil, services.NewInvalidError("response required")
	}
	a.store.AddResponse(&Response{
		ID:           r.ID,
		SurveyID:     r.SurveyID,
		RespondentID: r.RespondentID,
		Answers:      r.Answers,
		SubmittedAt:  r.SubmittedAt,
	})
	return r, nil
}

func (a *responseStoreAdapter) ListResponses(surveyID string) ([]*services.Response, error) {
	return toServiceResponses(a.store.ListResponses(surveyID)), nil
}

var _ services.ResponseStore = (*responseStoreAdapter)(nil)
