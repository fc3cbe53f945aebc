package api

import "github.com/surveycraft/surveycraft/internal/services"

type questionStoreAdapter struct {
	store Store
}

func newQuestionStoreAdapter(store Store) services.QuestionStore {
	return &questionStoreAdapter{store: store}
}

func toServiceQuestion(q *Question) *services.Question {
	if q == nil {
		return nil
	}
	return &services.Question{
		ID:          q.ID,
		SurveyID:    q.SurveyID,
		Type:        q.Type,
		Text:        q.Text,
		Description: q.Description,
		Required:    q.Required,
		Options:     q.Options,
		Order:       q.Order,
	}
}

func toServiceQuestions(qs []*Question) []*services.Question {
	out := make([]*services.Question, 0, len(qs))
	for _, q := range qs {
		out = append(out, toServiceQuestion(q))
	}
	return out
}

func fromServiceQuestion(q *services.Question) *Question {
	return &Question{
		ID:          q.ID,
		SurveyID:    q.SurveyID,
		Type:        q.Type,
		Text:        q.Text,
		Description: q.Description,
		Required:    q.Required,
		Options:     q.Options,
		Order:       q.Order,
	}
}

func (a *questionStoreAdapter) GetSurvey(id string) (*services.Survey, error) {
	return toServiceSurvey(a.store.GetSurvey(id)), nil
}

func (a *questionStoreAdapter) InsertQuestion(q *services.Question) (*services.Question, error) {
	if q == nil {
		return nil, services.NewInvalidError("question required")
	}
	a.store.AddQuestion(fromServiceQuestion(q))
	return q, nil
}

func (a *questionStoreAdapter) GetQuestion(id string) (*services.Question, error) {
	return toServiceQuestion(a.store.GetQuestion(id)), nil
}

func (a *questionStoreAdapter) UpdateQuestion(q *services.Question) error {
	if q == nil {
		return services.NewInvalidError("question required")
	}
	if !a.store.UpdateQuestion(fromServiceQuestion(q)) {
		return services.NewNotFoundError("question not found")
	}
	return nil
}

func (a *questionStoreAdapter) DeleteQuestion(id string) error {
	if !a.store.DeleteQuestion(id) {
		return services.NewNotFoundError("question not found")
	}
	return nil
}

func (a *questionStoreAdapter) ListQuestions(surveyID string) ([]*services.Question, error) {
	return toServiceQuestions(a.store.ListQuestions(surveyID)), nil
}

var _ services.QuestionStore = (*questionStoreAdapter)(nil)
