package api

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	PassHash  []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Survey struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Question struct {
	ID          string   `json:"id"`
	SurveyID    string   `json:"survey_id"`
	Type        string   `json:"type"`
	Text        string   `json:"text"`
	Description string   `json:"description,omitempty"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
	Order       int      `json:"order"`
}

type Response struct {
	ID           string                     `json:"id"`
	SurveyID     string                     `json:"survey_id"`
	RespondentID string                     `json:"respondent_id,omitempty"`
	Answers      map[string]json.RawMessage `json:"answers"`
	SubmittedAt  time.Time                  `json:"submitted_at"`
}

type memoryStore struct {
	mu           sync.RWMutex
	usersByEmail map[string]*User
	surveys      map[string]*Survey
	questions    map[string]*Question
	responses    []*Response
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		usersByEmail: map[string]*User{},
		surveys:      map[string]*Survey{},
		questions:    map[string]*Question{},
		responses:    []*Response{},
	}
}

// NewMemoryStore returns an in-memory Store, used for tests and local runs
// without a database file.
func NewMemoryStore() Store { return newMemoryStore() }

func (s *memoryStore) AddUser(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usersByEmail[strings.ToLower(u.Email)] = u
}

func (s *memoryStore) FindUserByEmail(email string) *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usersByEmail[strings.ToLower(email)]
}

func (s *memoryStore) AddSurvey(sv *Survey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surveys[sv.ID] = sv
}

func (s *memoryStore) GetSurvey(id string) *Survey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.surveys[id]
}

func (s *memoryStore) ListSurveysByOwner(ownerID string) []*Survey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*Survey{}
	for _, sv := range s.surveys {
		if sv.OwnerID == ownerID {
			out = append(out, sv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memoryStore) UpdateSurvey(sv *Survey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.surveys[sv.ID]; !ok {
		return false
	}
	s.surveys[sv.ID] = sv
	return true
}

// DeleteSurvey removes the survey and cascades to its questions and responses.
func (s *memoryStore) DeleteSurvey(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.surveys[id]; !ok {
		return false
	}
	delete(s.surveys, id)
	for qid, q := range s.questions {
		if q.SurveyID == id {
			delete(s.questions, qid)
		}
	}
	nr := make([]*Response, 0, len(s.responses))
	for _, r := range s.responses {
		if r.SurveyID != id {
			nr = append(nr, r)
		}
	}
	s.responses = nr
	return true
}

func (s *memoryStore) CountResponses(surveyID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, r := range s.responses {
		if r.SurveyID == surveyID {
			n++
		}
	}
	return n
}

func (s *memoryStore) AddQuestion(q *Question) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[q.ID] = q
}

func (s *memoryStore) GetQuestion(id string) *Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.questions[id]
}

func (s *memoryStore) UpdateQuestion(q *Question) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[q.ID]; !ok {
		return false
	}
	s.questions[q.ID] = q
	return true
}

func (s *memoryStore) DeleteQuestion(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.questions[id]; !ok {
		return false
	}
	delete(s.questions, id)
	return true
}

func (s *memoryStore) ListQuestions(surveyID string) []*Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*Question{}
	for _, q := range s.questions {
		if q.SurveyID == surveyID {
			out = append(out, q)
		}
	}
	// keep stable order by (order, id)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *memoryStore) AddResponse(r *Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, r)
}

func (s *memoryStore) ListResponses(surveyID string) []*Response {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*Response{}
	for _, r := range s.responses {
		if r.SurveyID == surveyID {
			out = append(out, r)
		}
	}
	return out
}
