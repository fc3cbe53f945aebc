package api

// Store is the persistence boundary shared by the in-memory and sqlite
// implementations. Mutations on a single entity are atomic; DeleteSurvey
// cascades to the survey's questions and responses.
type Store interface {
	AddUser(u *User)
	FindUserByEmail(email string) *User

	AddSurvey(sv *Survey)
	GetSurvey(id string) *Survey
	ListSurveysByOwner(ownerID string) []*Survey
	UpdateSurvey(sv *Survey) bool
	DeleteSurvey(id string) bool
	CountResponses(surveyID string) int

	AddQuestion(q *Question)
	GetQuestion(id string) *Question
	UpdateQuestion(q *Question) bool
	DeleteQuestion(id string) bool
	ListQuestions(surveyID string) []*Question

	AddResponse(r *Response)
	ListResponses(surveyID string) []*Response
}

var _ Store = (*memoryStore)(nil)
