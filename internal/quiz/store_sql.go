package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/persona-lab/archetype-engine/internal/archetype"
	"github.com/persona-lab/archetype-engine/internal/scoring"
	syncx "github.com/persona-lab/archetype-engine/internal/sync"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
	events *syncx.EventRepo
}

// NewSQLStore wraps db for the given driver. events may be nil; when
// set, uploads, deletes and submissions are appended to the event log.
func NewSQLStore(db *sql.DB, driver string, events *syncx.EventRepo) *SQLStore {
	return &SQLStore{db: db, driver: driver, events: events}
}

func (s *SQLStore) PutQuiz(q Quiz) error {
	if q.Edition != "" {
		if _, ok := archetype.Lookup(q.Edition); !ok {
			return ErrUnknownEdition
		}
	}
	qj, err := json.Marshal(q.Questions)
	if err != nil {
		return err
	}
	createdAt := q.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().Unix()
	}
	_, err = s.db.Exec(`INSERT INTO quizzes (id,title,edition,questions_json,created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, edition=EXCLUDED.edition, questions_json=EXCLUDED.questions_json`,
		q.ID, q.Title, q.Edition, string(qj), createdAt)
	if err != nil {
		return err
	}
	if s.events != nil {
		_ = s.events.Append(context.Background(), syncx.TypeQuizUploaded, q.ID, map[string]any{
			"title":   q.Title,
			"edition": q.Edition,
		})
	}
	return nil
}

func (s *SQLStore) GetQuiz(id string) (Quiz, error) {
	q, err := s.GetQuizFull(context.Background(), id)
	if err != nil {
		return Quiz{}, err
	}
	return stripAnswerPoints(q), nil
}

func (s *SQLStore) GetQuizFull(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,title,edition,questions_json,created_at FROM quizzes WHERE id=$1`, id)
	var q Quiz
	var qjson string
	if err := row.Scan(&q.ID, &q.Title, &q.Edition, &qjson, &q.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, ErrQuizNotFound
		}
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &q.Questions); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

func (s *SQLStore) DeleteQuiz(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// attempts first: sqlite does not enforce the FK cascade on every
	// pooled connection
	if _, err := tx.ExecContext(ctx, `DELETE FROM attempts WHERE quiz_id=$1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM quizzes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrQuizNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	if s.events != nil {
		_ = s.events.Append(ctx, syncx.TypeQuizDeleted, id, nil)
	}
	return nil
}

func (s *SQLStore) ListQuizzes(ctx context.Context, opts ListOpts) ([]Summary, error) {
	query := `SELECT id,title,edition,questions_json,created_at FROM quizzes`
	args := []any{}
	param := 1
	if q := strings.TrimSpace(opts.Q); q != "" {
		if s.driver == "postgres" {
			query += fmt.Sprintf(` WHERE title ILIKE $%d`, param)
		} else {
			query += fmt.Sprintf(` WHERE title LIKE $%d COLLATE NOCASE`, param)
		}
		args = append(args, "%"+q+"%")
		param++
	}
	query += ` ORDER BY created_at DESC, id ASC`
	query, args = appendPage(query, args, param, opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sm Summary
		var qjson string
		if err := rows.Scan(&sm.ID, &sm.Title, &sm.Edition, &qjson, &sm.CreatedAt); err != nil {
			return nil, err
		}
		var questions []scoring.Question
		if err := json.Unmarshal([]byte(qjson), &questions); err == nil {
			sm.QuestionCount = len(questions)
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

func (s *SQLStore) NewAttempt(quizID, userID string) (Attempt, error) {
	var exist int
	if err := s.db.QueryRow(`SELECT 1 FROM quizzes WHERE id=$1`, quizID).Scan(&exist); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Attempt{}, ErrQuizNotFound
		}
		return Attempt{}, err
	}
	a := Attempt{
		ID:        uuid.NewString(),
		QuizID:    quizID,
		UserID:    userID,
		Status:    StatusInProgress,
		Responses: []scoring.Response{},
		StartedAt: time.Now().Unix(),
	}
	respJSON, _ := json.Marshal(a.Responses)
	_, err := s.db.Exec(`INSERT INTO attempts (id,quiz_id,user_id,status,responses_json,started_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.QuizID, a.UserID, a.Status, string(respJSON), a.StartedAt)
	if err != nil {
		return Attempt{}, err
	}
	return a, nil
}

func (s *SQLStore) SaveResponses(attemptID string, responses []scoring.Response) (Attempt, error) {
	a, err := s.GetAttempt(attemptID)
	if err != nil {
		return Attempt{}, err
	}
	if a.Status == StatusSubmitted {
		return Attempt{}, ErrAttemptSubmitted
	}
	a.Responses = mergeResponses(a.Responses, responses)
	buf, _ := json.Marshal(a.Responses)
	if _, err := s.db.Exec(`UPDATE attempts SET responses_json=$1 WHERE id=$2`, string(buf), attemptID); err != nil {
		return Attempt{}, err
	}
	return s.GetAttempt(attemptID)
}

func (s *SQLStore) Submit(attemptID string) (Attempt, error) {
	a, err := s.GetAttempt(attemptID)
	if err != nil {
		return Attempt{}, err
	}
	if a.Status == StatusSubmitted {
		return a, nil
	}

	ctx := context.Background()
	q, err := s.GetQuizFull(ctx, a.QuizID)
	if err != nil {
		return Attempt{}, err
	}

	eng := scoring.NewEngine(catalogueFor(q.Edition))
	res, err := eng.Score(q.Quiz, a.Responses, scoring.DefaultOptions())
	if err != nil {
		return Attempt{}, err
	}

	rj, err := json.Marshal(res)
	if err != nil {
		return Attempt{}, err
	}
	buf, _ := json.Marshal(a.Responses)
	_, err = s.db.Exec(`UPDATE attempts SET status=$1, responses_json=$2, result_json=$3, submitted_at=$4 WHERE id=$5`,
		StatusSubmitted, string(buf), string(rj), time.Now().Unix(), attemptID)
	if err != nil {
		return Attempt{}, err
	}

	if s.events != nil {
		_ = s.events.Append(ctx, syncx.TypeAttemptSubmitted, attemptID, map[string]any{
			"quiz_id":    a.QuizID,
			"user_id":    a.UserID,
			"primary":    res.Primary,
			"confidence": res.Confidence.Score,
		})
	}
	return s.GetAttempt(attemptID)
}

func (s *SQLStore) GetAttempt(id string) (Attempt, error) {
	row := s.db.QueryRow(
		`SELECT id,quiz_id,user_id,status,responses_json,result_json,started_at,submitted_at FROM attempts WHERE id=$1`, id)
	var a Attempt
	var rjson string
	var resJSON sql.NullString
	var submittedAt sql.NullInt64
	if err := row.Scan(&a.ID, &a.QuizID, &a.UserID, &a.Status, &rjson, &resJSON, &a.StartedAt, &submittedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Attempt{}, ErrAttemptNotFound
		}
		return Attempt{}, err
	}
	if err := json.Unmarshal([]byte(rjson), &a.Responses); err != nil {
		a.Responses = []scoring.Response{}
	}
	if resJSON.Valid && resJSON.String != "" {
		var res scoring.Result
		if err := json.Unmarshal([]byte(resJSON.String), &res); err == nil {
			a.Result = &res
		}
	}
	if submittedAt.Valid {
		a.SubmittedAt = submittedAt.Int64
	}
	return a, nil
}

func (s *SQLStore) ListAttempts(ctx context.Context, opts AttemptListOpts) ([]Attempt, error) {
	query := `SELECT id,quiz_id,user_id,status,responses_json,result_json,started_at,submitted_at FROM attempts`
	clauses := []string{}
	args := []any{}
	param := 1
	if opts.QuizID != "" {
		clauses = append(clauses, fmt.Sprintf(`quiz_id=$%d`, param))
		args = append(args, opts.QuizID)
		param++
	}
	if opts.UserID != "" {
		clauses = append(clauses, fmt.Sprintf(`user_id=$%d`, param))
		args = append(args, opts.UserID)
		param++
	}
	if opts.Status != "" {
		clauses = append(clauses, fmt.Sprintf(`status=$%d`, param))
		args = append(args, opts.Status)
		param++
	}
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, ` AND `)
	}
	query += ` ORDER BY started_at DESC, id ASC`
	query, args = appendPage(query, args, param, opts.Limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Attempt{}
	for rows.Next() {
		var a Attempt
		var rjson string
		var resJSON sql.NullString
		var submittedAt sql.NullInt64
		if err := rows.Scan(&a.ID, &a.QuizID, &a.UserID, &a.Status, &rjson, &resJSON, &a.StartedAt, &submittedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(rjson), &a.Responses); err != nil {
			a.Responses = []scoring.Response{}
		}
		if resJSON.Valid && resJSON.String != "" {
			var res scoring.Result
			if err := json.Unmarshal([]byte(resJSON.String), &res); err == nil {
				a.Result = &res
			}
		}
		if submittedAt.Valid {
			a.SubmittedAt = submittedAt.Int64
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// appendPage adds LIMIT/OFFSET placeholders. sqlite rejects OFFSET
// without LIMIT, so an offset-only request gets an unbounded cap.
func appendPage(query string, args []any, param, limit, offset int) (string, []any) {
	if limit <= 0 && offset > 0 {
		limit = math.MaxInt32
	}
	if limit <= 0 {
		return query, args
	}
	query += fmt.Sprintf(` LIMIT $%d`, param)
	args = append(args, limit)
	param++
	if offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, param)
		args = append(args, offset)
	}
	return query, args
}
