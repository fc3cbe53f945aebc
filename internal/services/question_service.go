package services

import "strings"

type QuestionStore interface {
	GetSurvey(id string) (*Survey, error)
	InsertQuestion(q *Question) (*Question, error)
	GetQuestion(id string) (*Question, error)
	UpdateQuestion(q *Question) error
	DeleteQuestion(id string) error
	ListQuestions(surveyID string) ([]*Question, error)
}

type QuestionService struct {
	store QuestionStore
	idGen func() string
}

// QuestionInput carries the fields a caller may set when adding a question.
type QuestionInput struct {
	Type        string   `json:"type"`
	Text        string   `json:"text"`
	Description string   `json:"description"`
	Required    bool     `json:"required"`
	Options     []string `json:"options"`
	Order       int      `json:"order"`
}

func NewQuestionService(store QuestionStore) *QuestionService {
	return &QuestionService{
		store: store,
		idGen: func() string { return shortID(8) },
	}
}

// Add appends a question to the survey. Order values are taken as given; no
// renumbering of siblings happens here or on delete.
func (s *QuestionService) Add(callerID, surveyID string, in QuestionInput) (*Question, error) {
	sv, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(callerID, sv); err != nil {
		return nil, err
	}
	q := &Question{
		ID:          s.idGen(),
		SurveyID:    surveyID,
		Type:        in.Type,
		Text:        strings.TrimSpace(in.Text),
		Description: strings.TrimSpace(in.Description),
		Required:    in.Required,
		Options:     in.Options,
		Order:       in.Order,
	}
	if err := validateQuestion(q); err != nil {
		return nil, err
	}
	created, err := s.store.InsertQuestion(q)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return q, nil
	}
	return created, nil
}

// Update merges the supplied fields over the stored question and re-validates
// the merged result, so a type change to a choice kind still demands options.
func (s *QuestionService) Update(callerID, questionID string, raw map[string]any) (*Question, error) {
	q, err := s.store.GetQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, NewNotFoundError("question not found")
	}
	sv, err := s.store.GetSurvey(q.SurveyID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(callerID, sv); err != nil {
		return nil, err
	}
	updated := *q
	if v, ok := raw["type"]; ok {
		updated.Type = toString(v)
	}
	if v, ok := raw["text"]; ok {
		updated.Text = strings.TrimSpace(toString(v))
	}
	if v, ok := raw["description"]; ok {
		updated.Description = strings.TrimSpace(toString(v))
	}
	if v, ok := raw["required"].(bool); ok {
		updated.Required = v
	}
	if v, ok := raw["options"]; ok {
		updated.Options = parseStringSlice(v)
	}
	if v, ok := raw["order"].(float64); ok {
		updated.Order = int(v)
	}
	if err := validateQuestion(&updated); err != nil {
		return nil, err
	}
	if err := s.store.UpdateQuestion(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the question only. Previously stored responses keep any
// answer entries referencing the deleted id verbatim.
func (s *QuestionService) Delete(callerID, questionID string) error {
	q, err := s.store.GetQuestion(questionID)
	if err != nil {
		return err
	}
	if q == nil {
		return NewNotFoundError("question not found")
	}
	sv, err := s.store.GetSurvey(q.SurveyID)
	if err != nil {
		return err
	}
	if err := requireOwner(callerID, sv); err != nil {
		return err
	}
	return s.store.DeleteQuestion(questionID)
}

// List returns the survey's questions ordered by (order, id) ascending.
func (s *QuestionService) List(callerID, surveyID string) ([]*Question, error) {
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
	return questions, nil
}

func parseStringSlice(raw any) []string {
	arr, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
