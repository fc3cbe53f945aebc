package services

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func rawAnswers(t *testing.T, in map[string]any) map[string]json.RawMessage {
	t.Helper()
	out := make(map[string]json.RawMessage, len(in))
	for k, v := range in {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal answer %s: %v", k, err)
		}
		out[k] = b
	}
	return out
}

func activeSurvey(t *testing.T, store *stubStore, ownerID string) *Survey {
	t.Helper()
	sv := seedSurvey(t, store, ownerID)
	if _, err := newTestSurveyService(store).Update(ownerID, sv.ID, map[string]any{"status": StatusActive}); err != nil {
		t.Fatalf("activate: %v", err)
	}
	sv.Status = StatusActive
	return sv
}

func TestSubmitRequiresActiveSurvey(t *testing.T) {
	store := newStubStore()
	svc := NewResponseService(store)
	ssvc := newTestSurveyService(store)
	sv := seedSurvey(t, store, "u1")

	answers := rawAnswers(t, map[string]any{"q1": "Yes"})
	for _, st := range []string{StatusDraft, StatusClosed, StatusArchived} {
		if _, err := ssvc.Update("u1", sv.ID, map[string]any{"status": st}); err != nil {
			t.Fatalf("set status %s: %v", st, err)
		}
		_, err := svc.Submit(SubmitRequest{SurveyID: sv.ID, Answers: answers})
		se, ok := AsServiceError(err)
		if !ok || se.Code != ErrorInvalidState {
			t.Fatalf("submission to %s survey should fail with invalid_state, got %v", st, err)
		}
	}
	if rs, _ := store.ListResponses(sv.ID); len(rs) != 0 {
		t.Fatalf("no response should have been written, got %d", len(rs))
	}
}

func TestSubmitUnknownSurvey(t *testing.T) {
	store := newStubStore()
	svc := NewResponseService(store)

	_, err := svc.Submit(SubmitRequest{SurveyID: "missing"})
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorNotFound {
		t.Fatalf("unknown survey should be not found, got %v", err)
	}
}

func TestSubmitStoresAnswersVerbatim(t *testing.T) {
	store := newStubStore()
	svc := NewResponseService(store)
	sv := activeSurvey(t, store, "u1")

	submitted := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return submitted }

	// Heterogeneous and even orphaned answer shapes are accepted as-is; the
	// collector performs no per-type validation.
	answers := rawAnswers(t, map[string]any{
		"q1":      "Yes",
		"q2":      []string{"a", "b"},
		"q3":      4,
		"deleted": map[string]any{"nested": true},
	})
	res, err := svc.Submit(SubmitRequest{SurveyID: sv.ID, Answers: answers})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.ResponseID == "" {
		t.Fatal("expected a response id")
	}

	rs, err := svc.ListBySurvey("u1", sv.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rs) != 1 || rs[0].ID != res.ResponseID {
		t.Fatalf("expected the stored response, got %+v", rs)
	}
	if !reflect.DeepEqual(rs[0].Answers, answers) {
		t.Fatalf("answers must round-trip exactly:\n got %v\nwant %v", rs[0].Answers, answers)
	}
	if !rs[0].SubmittedAt.Equal(submitted) {
		t.Fatalf("submitted_at: got %v", rs[0].SubmittedAt)
	}
	if rs[0].RespondentID != "" {
		t.Fatalf("anonymous submission should carry no respondent id, got %q", rs[0].RespondentID)
	}
}

func TestSubmitRecordsRespondentWhenAuthenticated(t *testing.T) {
	store := newStubStore()
	svc := NewResponseService(store)
	sv := activeSurvey(t, store, "u1")

	// Any authenticated caller may submit, owner or not.
	if _, err := svc.Submit(SubmitRequest{SurveyID: sv.ID, RespondentID: "u9"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	rs, _ := store.ListResponses(sv.ID)
	if len(rs) != 1 || rs[0].RespondentID != "u9" {
		t.Fatalf("respondent id not recorded: %+v", rs)
	}
	if rs[0].Answers == nil {
		t.Fatal("nil answers should be stored as an empty map")
	}
}

func TestListResponsesAuthorization(t *testing.T) {
	store := newStubStore()
	svc := NewResponseService(store)
	sv := activeSurvey(t, store, "u1")

	_, err := svc.ListBySurvey("u2", sv.ID)
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorForbidden {
		t.Fatalf("non-owner list should be forbidden, got %v", err)
	}
	_, err = svc.ListBySurvey("", sv.ID)
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorUnauthorized {
		t.Fatalf("anonymous list should be unauthorized, got %v", err)
	}
	_, err = svc.ListBySurvey("u1", "missing")
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorNotFound {
		t.Fatalf("unknown survey should be not found, got %v", err)
	}
}
