package syncx

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// Event types recorded by the gateway.
const (
	TypeQuizUploaded     = "quiz_uploaded"
	TypeQuizDeleted      = "quiz_deleted"
	TypeAttemptSubmitted = "attempt_submitted"
)

type Event struct {
	Offset    int64
	SiteID    string
	Type      string
	Key       string
	DataJSON  string
	CreatedAt int64
}

type EventRepo struct {
	db     *sql.DB
	siteID string
}

func NewEventRepo(db *sql.DB, siteID string) *EventRepo {
	if siteID == "" {
		siteID = "local"
	}
	return &EventRepo{db: db, siteID: siteID}
}

// Append records an event. payload is marshaled to JSON; nil stores "{}".
func (r *EventRepo) Append(ctx context.Context, typ, key string, payload any) error {
	data := "{}"
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		data = string(b)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (site_id, typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		r.siteID, typ, key, data, time.Now().Unix())
	return err
}

// Since returns events after the given offset, oldest first.
func (r *EventRepo) Since(ctx context.Context, offset int64, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT offset_id, site_id, typ, key, data, created_at
		 FROM event_log WHERE offset_id > $1
		 ORDER BY offset_id ASC LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Offset, &e.SiteID, &e.Type, &e.Key, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
