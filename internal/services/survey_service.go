package services

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type SurveyStore interface {
	InsertSurvey(sv *Survey) (*Survey, error)
	GetSurvey(id string) (*Survey, error)
	ListSurveysByOwner(ownerID string) ([]*Survey, error)
	UpdateSurvey(sv *Survey) error
	DeleteSurvey(id string) error
	ListQuestions(surveyID string) ([]*Question, error)
	CountResponses(surveyID string) (int, error)
}

type SurveyService struct {
	store SurveyStore
	now   func() time.Time
	idGen func() string
}

// SurveySummary is the listing row: the survey plus its response count.
type SurveySummary struct {
	Survey
	ResponseCount int `json:"responses_count"`
}

// SurveyDetail is the single-survey view including the ordered question list.
type SurveyDetail struct {
	Survey
	Questions []*Question `json:"questions"`
}

func NewSurveyService(store SurveyStore) *SurveyService {
	return &SurveyService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: func() string { return shortID(8) },
	}
}

func (s *SurveyService) Create(callerID, title, description string) (*Survey, error) {
	if callerID == "" {
		return nil, NewUnauthorizedError("authentication required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, NewInvalidError("title required")
	}
	now := s.now()
	sv := &Survey{
		ID:          s.idGen(),
		OwnerID:     callerID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := s.store.InsertSurvey(sv)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return sv, nil
	}
	return created, nil
}

// List returns only the caller's surveys; filtering happens at the store query,
// never after loading other owners' rows. Archived surveys are excluded unless
// requested.
func (s *SurveyService) List(callerID string, includeArchived bool) ([]*SurveySummary, error) {
	if callerID == "" {
		return nil, NewUnauthorizedError("authentication required")
	}
	surveys, err := s.store.ListSurveysByOwner(callerID)
	if err != nil {
		return nil, err
	}
	out := make([]*SurveySummary, 0, len(surveys))
	for _, sv := range surveys {
		if sv.Status == StatusArchived && !includeArchived {
			continue
		}
		n, err := s.store.CountResponses(sv.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &SurveySummary{Survey: *sv, ResponseCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *SurveyService) Get(callerID, id string) (*SurveyDetail, error) {
	sv, err := s.store.GetSurvey(id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(callerID, sv); err != nil {
		return nil, err
	}
	questions, err := s.store.ListQuestions(id)
	if err != nil {
		return nil, err
	}
	sortQuestions(questions)
	return &SurveyDetail{Survey: *sv, Questions: questions}, nil
}

// Update merges the supplied title/description/status over the current values.
// Status may move to any of the four states; there is no transition graph.
func (s *SurveyService) Update(callerID, id string, raw map[string]any) (*Survey, error) {
	sv, err := s.store.GetSurvey(id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(callerID, sv); err != nil {
		return nil, err
	}
	updated := *sv
	if v, ok := raw["title"]; ok {
		t := strings.TrimSpace(toString(v))
		if t == "" {
			return nil, NewInvalidError("title required")
		}
		updated.Title = t
	}
	if v, ok := raw["description"]; ok {
		updated.Description = strings.TrimSpace(toString(v))
	}
	if v, ok := raw["status"]; ok {
		st := toString(v)
		if !ValidStatus(st) {
			return nil, NewInvalidError("invalid status: " + st)
		}
		updated.Status = st
	}
	updated.UpdatedAt = s.now()
	if err := s.store.UpdateSurvey(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the survey along with all of its questions and responses.
func (s *SurveyService) Delete(callerID, id string) error {
	sv, err := s.store.GetSurvey(id)
	if err != nil {
		return err
	}
	if err := requireOwner(callerID, sv); err != nil {
		return err
	}
	return s.store.DeleteSurvey(id)
}

func sortQuestions(qs []*Question) {
	sort.SliceStable(qs, func(i, j int) bool {
		if qs[i].Order != qs[j].Order {
			return qs[i].Order < qs[j].Order
		}
		return qs[i].ID < qs[j].ID
	})
}

func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
