package api

import "github.com/surveycraft/surveycraft/internal/services"

type surveyStoreAdapter struct {
	store Store
}

func newSurveyStoreAdapter(store Store) services.SurveyStore {
	return &surveyStoreAdapter{store: store}
}

func toServiceSurvey(sv *Survey) *services.Survey {
	if sv == nil {
		return nil
	}
	return &services.Survey{
		ID:          sv.ID,
		OwnerID:     sv.OwnerID,
		Title:       sv.Title,
		Description: sv.Description,
		Status:      sv.Status,
		CreatedAt:   sv.CreatedAt,
		UpdatedAt:   sv.UpdatedAt,
	}
}

func fromServiceSurvey(sv *services.Survey) *Survey {
	return &Survey{
		ID:          sv.ID,
		OwnerID:     sv.OwnerID,
		Title:       sv.Title,
		Description: sv.Description,
		Status:      sv.Status,
		CreatedAt:   sv.CreatedAt,
		UpdatedAt:   sv.UpdatedAt,
	}
}

func (a *surveyStoreAdapter) InsertSurvey(sv *services.Survey) (*services.Survey, error) {
	if sv == nil {
		return nil, services.NewInvalidError("survey required")
	}
	a.store.AddSurvey(fromServiceSurvey(sv))
	return sv, nil
}

func (a *surveyStoreAdapter) GetSurvey(id string) (*services.Survey, error) {
	return toServiceSurvey(a.store.GetSurvey(id)), nil
}

func (a *surveyStoreAdapter) ListSurveysByOwner(ownerID string) ([]*services.Survey, error) {
	rows := a.store.ListSurveysByOwner(ownerID)
	out := make([]*services.Survey, 0, len(rows))
	for _, sv := range rows {
		out = append(out, toServiceSurvey(sv))
	}
	return out, nil
}

func (a *surveyStoreAdapter) UpdateSurvey(sv *services.Survey) error {
	if sv == nil {
		return services.NewInvalidError("survey required")
	}
	if !a.store.UpdateSurvey(fromServiceSurvey(sv)) {
		return services.NewNotFoundError("survey not found")
	}
	return nil
}

func (a *surveyStoreAdapter) DeleteSurvey(id string) error {
	if !a.store.DeleteSurvey(id) {
		return services.NewNotFoundError("survey not found")
	}
	return nil
}

func (a *surveyStoreAdapter) ListQuestions(surveyID string) ([]*services.Question, error) {
	return toServiceQuestions(a.store.ListQuestions(surveyID)), nil
}

func (a *surveyStoreAdapter) CountResponses(surveyID string) (int, error) {
	return a.store.CountResponses(surveyID), nil
}

var _ services.SurveyStore = (*surveyStoreAdapter)(nil)
