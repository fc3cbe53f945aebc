package api

import "github.com/surveycraft/surveycraft/internal/services"

type resultsStoreAdapter struct {
	store Store
}

func newResultsStoreAdapter(store Store) services.ResultsStore {
	return &resultsStoreAdapter{store: store}
}

func (a *resultsStoreAdapter) GetSurvey(id string) (*services.Survey, error) {
	return toServiceSurvey(a.store.GetSurvey(id)), nil
}

func (a *resultsStoreAdapter) ListQuestions(surveyID string) ([]*services.Question, error) {
	return toServiceQuestions(a.store.ListQuestions(surveyID)), nil
}

func (a *resultsStoreAdapter) ListResponses(surveyID string) ([]*services.Response, error) {
	return toServiceResponses(a.store.ListResponses(surveyID)), nil
}

var _ services.ResultsStore = (*resultsStoreAdapter)(nil)
