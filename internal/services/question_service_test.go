package services

import (
	"reflect"
	"testing"
)

func seedSurvey(t *testing.T, store *stubStore, ownerID string) *Survey {
	t.Helper()
	sv, err := newTestSurveyService(store).Create(ownerID, "Seed", "")
	if err != nil {
		t.Fatalf("seed survey: %v", err)
	}
	return sv
}

func TestAddQuestionNormalizesOptions(t *testing.T) {
	store := newStubStore()
	svc := NewQuestionService(store)
	sv := seedSurvey(t, store, "u1")

	q, err := svc.Add("u1", sv.ID, QuestionInput{
		Type:    QuestionSingleChoice,
		Text:    "Satisfied?",
		Options: []string{" Yes ", "", "No"},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !reflect.DeepEqual(q.Options, []string{"Yes", "No"}) {
		t.Fatalf("options not normalized: %v", q.Options)
	}
	if q.SurveyID != sv.ID || q.Order != 0 || q.Required {
		t.Fatalf("unexpected defaults: %+v", q)
	}
}

func TestAddQuestionChoiceWithoutOptionsFails(t *testing.T) {
	store := newStubStore()
	svc := NewQuestionService(store)
	sv := seedSurvey(t, store, "u1")

	for _, typ := range []string{QuestionSingleChoice, QuestionMultiChoice, QuestionDropdown} {
		_, err := svc.Add("u1", sv.ID, QuestionInput{Type: typ, Text: "Pick one"})
		if se, ok := AsServiceError(err); !ok || se.Code != ErrorInvalid {
			t.Fatalf("%s without options should fail validation, got %v", typ, err)
		}
	}
	// The failed adds must leave the question list untouched.
	qs, err := svc.List("u1", sv.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(qs) != 0 {
		t.Fatalf("question list should be unchanged after failed adds, got %d", len(qs))
	}
}

func TestAddQuestionValidation(t *testing.T) {
	store := newStubStore()
	svc := NewQuestionService(store)
	sv := seedSurvey(t, store, "u1")

	cases := []struct {
		name string
		in   QuestionInput
	}{
		{"unknown type", QuestionInput{Type: "likert", Text: "t"}},
		{"empty text", QuestionInput{Type: QuestionText, Text: "  "}},
		{"negative order", QuestionInput{Type: QuestionText, Text: "t", Order: -1}},
	}
	for _, tc := range cases {
		_, err := svc.Add("u1", sv.ID, tc.in)
		if se, ok := AsServiceError(err); !ok || se.Code != ErrorInvalid {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestAddQuestionDropsOptionsForFreeTypes(t *testing.T) {
	store := newStubStore()
	svc := NewQuestionService(store)
	sv := seedSurvey(t, store, "u1")

	q, err := svc.Add("u1", sv.ID, QuestionInput{Type: QuestionRating, Text: "Rate it", Options: []string{"1", "2"}})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if q.Options != nil {
		t.Fatalf("non-choice question should carry no options, got %v", q.Options)
	}
}

func TestAddQuestionAuthorization(t *testing.T) {
	store := newStubStore()
	svc := NewQuestionService(store)
	sv := seedSurvey(t, store, "u1")
	in := QuestionInput{Type: QuestionText, Text: "t"}

	_, err := svc.Add("u2", sv.ID, in)
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorForbidden {
		t.Fatalf("non-owner add should be forbidden, got %v", err)
	}
	_, err = svc.Add("", sv.ID, in)
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorUnauthorized {
		t.Fatalf("anonymous add should be unauthorized, got %v", err)
	}
	_, err = svc.Add("u1", "missing", in)
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorNotFound {
		t.Fatalf("unknown survey should be not found, got %v", err)
	}
}

func TestUpdateQuestionMergesPartialFields(t *testing.T) {
	store := newStubStore()
	svc := NewQuestionService(store)
	sv := seedSurvey(t, store, "u1")

	q, err := svc.Add("u1", sv.ID, QuestionInput{
		Type:        QuestionSingleChoice,
		Text:        "Satisfied?",
		Description: "pick one",
		Required:    true,
		Options:     []string{"Yes", "No"},
		Order:       3,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	updated, err := svc.Update("u1", q.ID, map[string]any{"text": "Happy?"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Text != "Happy?" {
		t.Fatalf("text not applied: %+v", updated)
	}
	if updated.Description != "pick one" || !updated.Required || updated.Order != 3 {
		t.Fatalf("unsupplied fields must be retained: %+v", updated)
	}
	if !reflect.DeepEqual(updated.Options, []string{"Yes", "No"}) {
		t.Fatalf("options must be retained: %v", updated.Options)
	}
}

func TestUpdateQuestionRevalidatesMergedResult(t *testing.T) {
	store := newStubStore()
	svc := NewQuestionService(store)
	sv := seedSurvey(t, store, "u1")

	q, err := svc.Add("u1", sv.ID, QuestionInput{Type: QuestionText, Text: "Comments?"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	// Switching a free-text question to a choice type without supplying
	// options must fail against the merged result.
	_, err = svc.Update("u1", q.ID, map[string]any{"type": QuestionDropdown})
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorInvalid {
		t.Fatalf("merged result should fail option validation, got %v", err)
	}
	// Supplying options alongside the type change succeeds.
	updated, err := svc.Update("u1", q.ID, map[string]any{
		"type":    QuestionDropdown,
		"options": []any{"A", "B"},
	})
	if err != nil {
		t.Fatalf("update with options: %v", err)
	}
	if !reflect.DeepEqual(updated.Options, []string{"A", "B"}) {
		t.Fatalf("options not applied: %v", updated.Options)
	}
}

func TestUpdateQuestionAuthorization(t *testing.T) {
	store := newStubStore()
	svc := NewQuestionService(store)
	sv := seedSurvey(t, store, "u1")

	q, err := svc.Add("u1", sv.ID, QuestionInput{Type: QuestionText, Text: "t"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	_, err = svc.Update("u2", q.ID, map[string]any{"text": "x"})
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorForbidden {
		t.Fatalf("non-owner update should be forbidden, got %v", err)
	}
	_, err = svc.Update("u1", "missing", map[string]any{"text": "x"})
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorNotFound {
		t.Fatalf("unknown question should be not found, got %v", err)
	}
}

func TestDeleteQuestionLeavesSiblingsAndResponses(t *testing.T) {
	store := newStubStore()
	svc := NewQuestionService(store)
	rsvc := NewResponseService(store)
	ssvc := newTestSurveyService(store)
	sv := seedSurvey(t, store, "u1")

	q1, err := svc.Add("u1", sv.ID, QuestionInput{Type: QuestionText, Text: "one", Order: 5})
	if err != nil {
		t.Fatalf("add q1: %v", err)
	}
	q2, err := svc.Add("u1", sv.ID, QuestionInput{Type: QuestionText, Text: "two", Order: 9})
	if err != nil {
		t.Fatalf("add q2: %v", err)
	}
	if _, err := ssvc.Update("u1", sv.ID, map[string]any{"status": StatusActive}); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if _, err := rsvc.Submit(SubmitRequest{SurveyID: sv.ID, Answers: rawAnswers(t, map[string]any{q1.ID: "hello"})}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := svc.Delete("u1", q1.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	qs, err := svc.List("u1", sv.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(qs) != 1 || qs[0].ID != q2.ID || qs[0].Order != 9 {
		t.Fatalf("sibling order must not be renumbered: %+v", qs)
	}
	// The stored response keeps its now-orphaned answer entry verbatim.
	rs, _ := store.ListResponses(sv.ID)
	if len(rs) != 1 {
		t.Fatalf("responses must survive question deletion, got %d", len(rs))
	}
	if _, ok := rs[0].Answers[q1.ID]; !ok {
		t.Fatal("orphaned answer entry must be preserved")
	}
}

func TestListQuestionsStableOrdering(t *testing.T) {
	store := newStubStore()
	svc := NewQuestionService(store)
	sv := seedSurvey(t, store, "u1")

	// Insert out of order with duplicate order values; ties break by id.
	specs := []struct {
		id    string
		order int
	}{
		{"qc", 1},
		{"qa", 2},
		{"qb", 1},
	}
	for _, sp := range specs {
		id := sp.id
		svc.idGen = func() string { return id }
		if _, err := svc.Add("u1", sv.ID, QuestionInput{Type: QuestionText, Text: "t", Order: sp.order}); err != nil {
			t.Fatalf("add %s: %v", sp.id, err)
		}
	}

	want := []string{"qb", "qc", "qa"}
	for i := 0; i < 3; i++ {
		qs, err := svc.List("u1", sv.ID)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		got := make([]string, 0, len(qs))
		for _, q := range qs {
			got = append(got, q.ID)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("call %d: got %v want %v", i, got, want)
		}
	}
}
