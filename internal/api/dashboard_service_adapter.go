package api

import "github.com/surveycraft/surveycraft/internal/services"

type dashboardStoreAdapter struct {
	store Store
}

func newDashboardStoreAdapter(store Store) services.DashboardStore {
	return &dashboardStoreAdapter{store: store}
}

func (a *dashboardStoreAdapter) ListSurveysByOwner(ownerID string) ([]*services.Survey, error) {
	rows := a.store.ListSurveysByOwner(ownerID)
	out := make([]*services.Survey, 0, len(rows))
	for _, sv := range rows {
		out = append(out, toServiceSurvey(sv))
	}
	return out, nil
}

func (a *dashboardStoreAdapter) ListQuestions(surveyID string) ([]*services.Question, error) {
	return toServiceQuestions(a.store.ListQuestions(surveyID)), nil
}

func (a *dashboardStoreAdapter) ListResponses(surveyID string) ([]*services.Response, error) {
	return toServiceResponses(a.store.ListResponses(surveyID)), nil
}

var _ services.DashboardStore = (*dashboardStoreAdapter)(nil)
