package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/surveycraft/surveycraft/internal/api"
)

// Open opens the sqlite database at path with WAL journaling and foreign key
// enforcement enabled. Cascading deletes rely on the foreign keys pragma.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000", path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	return conn, nil
}

// SQLiteStore persists the platform's entities in a single sqlite file.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(conn *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: conn}
}

func logErr(op string, err error) {
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Printf("sqlite %s: %v", op, err)
	}
}

func encodeTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func decodeTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func encodeOptions(opts []string) any {
	if opts == nil {
		return nil
	}
	b, err := json.Marshal(opts)
	if err != nil {
		return nil
	}
	return string(b)
}

func decodeOptions(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var opts []string
	if err := json.Unmarshal([]byte(raw.String), &opts); err != nil {
		return nil
	}
	return opts
}

func (s *SQLiteStore) AddUser(u *api.User) {
	_, err := s.db.Exec(
		`INSERT INTO users (id, email, name, pass_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, strings.ToLower(u.Email), u.Name, u.PassHash, encodeTime(u.CreatedAt),
	)
	logErr("add user", err)
}

func (s *SQLiteStore) FindUserByEmail(email string) *api.User {
	row := s.db.QueryRow(
		`SELECT id, email, name, pass_hash, created_at FROM users WHERE email = ?`,
		strings.ToLower(email),
	)
	var u api.User
	var created string
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PassHash, &created); err != nil {
		logErr("find user", err)
		return nil
	}
	u.CreatedAt = decodeTime(created)
	return &u
}

func (s *SQLiteStore) AddSurvey(sv *api.Survey) {
	_, err := s.db.Exec(
		`INSERT INTO surveys (id, owner_id, title, description, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sv.ID, sv.OwnerID, sv.Title, sv.Description, sv.Status, encodeTime(sv.CreatedAt), encodeTime(sv.UpdatedAt),
	)
	logErr("add survey", err)
}

func (s *SQLiteStore) GetSurvey(id string) *api.Survey {
	row := s.db.QueryRow(
		`SELECT id, owner_id, title, description, status, created_at, updated_at FROM surveys WHERE id = ?`, id,
	)
	return scanSurvey(row.Scan)
}

func scanSurvey(scan func(dest ...any) error) *api.Survey {
	var sv api.Survey
	var created, updated string
	if err := scan(&sv.ID, &sv.OwnerID, &sv.Title, &sv.Description, &sv.Status, &created, &updated); err != nil {
		logErr("scan survey", err)
		return nil
	}
	sv.CreatedAt = decodeTime(created)
	sv.UpdatedAt = decodeTime(updated)
	return &sv
}

func (s *SQLiteStore) ListSurveysByOwner(ownerID string) []*api.Survey {
	rows, err := s.db.Query(
		`SELECT id, owner_id, title, description, status, created_at, updated_at
		 FROM surveys WHERE owner_id = ? ORDER BY id`, ownerID,
	)
	if err != nil {
		logErr("list surveys", err)
		return nil
	}
	defer rows.Close()
	out := []*api.Survey{}
	for rows.Next() {
		if sv := scanSurvey(rows.Scan); sv != nil {
			out = append(out, sv)
		}
	}
	logErr("list surveys", rows.Err())
	return out
}

func (s *SQLiteStore) UpdateSurvey(sv *api.Survey) bool {
	res, err := s.db.Exec(
		`UPDATE surveys SET title = ?, description = ?, status = ?, updated_at = ? WHERE id = ?`,
		sv.Title, sv.Description, sv.Status, encodeTime(sv.UpdatedAt), sv.ID,
	)
	if err != nil {
		logErr("update survey", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) DeleteSurvey(id string) bool {
	// Questions and responses go with it via ON DELETE CASCADE.
	res, err := s.db.Exec(`DELETE FROM surveys WHERE id = ?`, id)
	if err != nil {
		logErr("delete survey", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) CountResponses(surveyID string) int {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM responses WHERE survey_id = ?`, surveyID).Scan(&n)
	logErr("count responses", err)
	return n
}

func (s *SQLiteStore) AddQuestion(q *api.Question) {
	_, err := s.db.Exec(
		`INSERT INTO questions (id, survey_id, type, text, description, required, options, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.SurveyID, q.Type, q.Text, q.Description, q.Required, encodeOptions(q.Options), q.Order,
	)
	logErr("add question", err)
}

func (s *SQLiteStore) GetQuestion(id string) *api.Question {
	row := s.db.QueryRow(
		`SELECT id, survey_id, type, text, description, required, options, position FROM questions WHERE id = ?`, id,
	)
	return scanQuestion(row.Scan)
}

func scanQuestion(scan func(dest ...any) error) *api.Question {
	var q api.Question
	var opts sql.NullString
	if err := scan(&q.ID, &q.SurveyID, &q.Type, &q.Text, &q.Description, &q.Required, &opts, &q.Order); err != nil {
		logErr("scan question", err)
		return nil
	}
	q.Options = decodeOptions(opts)
	return &q
}

func (s *SQLiteStore) UpdateQuestion(q *api.Question) bool {
	res, err := s.db.Exec(
		`UPDATE questions SET type = ?, text = ?, description = ?, required = ?, options = ?, position = ? WHERE id = ?`,
		q.Type, q.Text, q.Description, q.Required, encodeOptions(q.Options), q.Order, q.ID,
	)
	if err != nil {
		logErr("update question", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) DeleteQuestion(id string) bool {
	res, err := s.db.Exec(`DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		logErr("delete question", err)
		return false
	}
	n, _ := res.RowsAffected()
	return n > 0
}

func (s *SQLiteStore) ListQuestions(surveyID string) []*api.Question {
	rows, err := s.db.Query(
		`SELECT id, survey_id, type, text, description, required, options, position
		 FROM questions WHERE survey_id = ? ORDER BY position, id`, surveyID,
	)
	if err != nil {
		logErr("list questions", err)
		return nil
	}
	defer rows.Close()
	out := []*api.Question{}
	for rows.Next() {
		if q := scanQuestion(rows.Scan); q != nil {
			out = append(out, q)
		}
	}
	logErr("list questions", rows.Err())
	return out
}

func (s *SQLiteStore) AddResponse(r *api.Response) {
	answers, err := json.Marshal(r.Answers)
	if err != nil {
		logErr("encode answers", err)
		return
	}
	_, err = s.db.Exec(
		`INSERT INTO responses (id, survey_id, respondent_id, answers, submitted_at) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.SurveyID, r.RespondentID, string(answers), encodeTime(r.SubmittedAt),
	)
	logErr("add response", err)
}

func (s *SQLiteStore) ListResponses(surveyID string) []*api.Response {
	rows, err := s.db.Query(
		`SELECT id, survey_id, respondent_id, answers, submitted_at
		 FROM responses WHERE survey_id = ? ORDER BY submitted_at, id`, surveyID,
	)
	if err != nil {
		logErr("list responses", err)
		return nil
	}
	defer rows.Close()
	out := []*api.Response{}
	for rows.Next() {
		var r api.Response
		var answers, submitted string
		if err := rows.Scan(&r.ID, &r.SurveyID, &r.RespondentID, &answers, &submitted); err != nil {
			logErr("scan response", err)
			continue
		}
		if err := json.Unmarshal([]byte(answers), &r.Answers); err != nil {
			logErr("decode answers", err)
			r.Answers = map[string]json.RawMessage{}
		}
		r.SubmittedAt = decodeTime(submitted)
		out = append(out, &r)
	}
	logErr("list responses", rows.Err())
	return out
}

var _ api.Store = (*SQLiteStore)(nil)
