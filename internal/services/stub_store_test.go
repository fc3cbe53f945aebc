package services

import (
	"sort"
	"strings"
)

// stubStore backs the service tests with plain maps. Questions are returned in
// insertion order on purpose, so ordering guarantees are proven in the
// services rather than inherited from the stub.
type stubStore struct {
	surveys       map[string]*Survey
	questions     map[string]*Question
	questionOrder []string
	responses     []*Response
	usersByEmail  map[string]*User

	listedOwners []string
}

func newStubStore() *stubStore {
	return &stubStore{
		surveys:      map[string]*Survey{},
		questions:    map[string]*Question{},
		usersByEmail: map[string]*User{},
	}
}

var (
	_ SurveyStore    = (*stubStore)(nil)
	_ QuestionStore  = (*stubStore)(nil)
	_ ResponseStore  = (*stubStore)(nil)
	_ AuthStore      = (*stubStore)(nil)
	_ DashboardStore = (*stubStore)(nil)
	_ ResultsStore   = (*stubStore)(nil)
)

func (s *stubStore) InsertSurvey(sv *Survey) (*Survey, error) {
	cp := *sv
	s.surveys[sv.ID] = &cp
	return &cp, nil
}

func (s *stubStore) GetSurvey(id string) (*Survey, error) {
	if sv, ok := s.surveys[id]; ok {
		cp := *sv
		return &cp, nil
	}
	return nil, nil
}

func (s *stubStore) ListSurveysByOwner(ownerID string) ([]*Survey, error) {
	s.listedOwners = append(s.listedOwners, ownerID)
	out := []*Survey{}
	for _, sv := range s.surveys {
		if sv.OwnerID == ownerID {
			cp := *sv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *stubStore) UpdateSurvey(sv *Survey) error {
	if _, ok := s.surveys[sv.ID]; !ok {
		return NewNotFoundError("survey not found")
	}
	cp := *sv
	s.surveys[sv.ID] = &cp
	return nil
}

func (s *stubStore) DeleteSurvey(id string) error {
	if _, ok := s.surveys[id]; !ok {
		return NewNotFoundError("survey not found")
	}
	delete(s.surveys, id)
	remaining := make([]string, 0, len(s.questionOrder))
	for _, qid := range s.questionOrder {
		if s.questions[qid].SurveyID == id {
			delete(s.questions, qid)
			continue
		}
		remaining = append(remaining, qid)
	}
	s.questionOrder = remaining
	kept := s.responses[:0]
	for _, r := range s.responses {
		if r.SurveyID != id {
			kept = append(kept, r)
		}
	}
	s.responses = kept
	return nil
}

func (s *stubStore) CountResponses(surveyID string) (int, error) {
	n := 0
	for _, r := range s.responses {
		if r.SurveyID == surveyID {
			n++
		}
	}
	return n, nil
}

func (s *stubStore) InsertQuestion(q *Question) (*Question, error) {
	cp := *q
	s.questions[q.ID] = &cp
	s.questionOrder = append(s.questionOrder, q.ID)
	return &cp, nil
}

func (s *stubStore) GetQuestion(id string) (*Question, error) {
	if q, ok := s.questions[id]; ok {
		cp := *q
		return &cp, nil
	}
	return nil, nil
}

func (s *stubStore) UpdateQuestion(q *Question) error {
	if _, ok := s.questions[q.ID]; !ok {
		return NewNotFoundError("question not found")
	}
	cp := *q
	s.questions[q.ID] = &cp
	return nil
}

func (s *stubStore) DeleteQuestion(id string) error {
	if _, ok := s.questions[id]; !ok {
		return NewNotFoundError("question not found")
	}
	delete(s.questions, id)
	for i, qid := range s.questionOrder {
		if qid == id {
			s.questionOrder = append(s.questionOrder[:i], s.questionOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *stubStore) ListQuestions(surveyID string) ([]*Question, error) {
	out := []*Question{}
	for _, qid := range s.questionOrder {
		q := s.questions[qid]
		if q.SurveyID == surveyID {
			cp := *q
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubStore) InsertResponse(r *Response) (*Response, error) {
	cp := *r
	s.responses = append(s.responses, &cp)
	return &cp, nil
}

func (s *stubStore) ListResponses(surveyID string) ([]*Response, error) {
	out := []*Response{}
	for _, r := range s.responses {
		if r.SurveyID == surveyID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubStore) FindUserByEmail(email string) (*User, error) {
	if u, ok := s.usersByEmail[strings.ToLower(email)]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *stubStore) AddUser(u *User) error {
	cp := *u
	s.usersByEmail[strings.ToLower(u.Email)] = &cp
	return nil
}
