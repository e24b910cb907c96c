package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"lunarai-web/pkg/eventlog"

	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of *pgxpool.Pool the repositories use
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// EventRepository handles persistence of operator events to database
type EventRepository struct {
	db DBTX
}

// NewEventRepository creates a new repository for operator events
func NewEventRepository(db DBTX) *EventRepository {
	return &EventRepository{db: db}
}

const insertEventQuery = `
		INSERT INTO operator_events (
			event_type, service, environment, level,
			subject_type, subject_value, ip_address, user_agent,
			request_id, details, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

// PersistEvent inserts an operator event into the database
func (r *EventRepository) PersistEvent(ctx context.Context, event eventlog.Event) error {
	var detailsJSON []byte
	if len(event.Details) > 0 {
		var err error
		if detailsJSON, err = json.Marshal(event.Details); err != nil {
			return fmt.Errorf("failed to encode operator event details: %w", err)
		}
	} else {
		detailsJSON = []byte("null") // Valid JSON null for empty details
	}

	// inet column: NULL rather than ''
	var ipAddr interface{}
	if event.IP != "" {
		ipAddr = event.IP
	}

	_, err := r.db.Exec(ctx, insertEventQuery,
		string(event.Event),
		event.Service,
		event.Environment,
		event.Level,
		event.SubjectType,
		event.SubjectValue,
		ipAddr,
		event.UserAgent,
		event.RequestID,
		detailsJSON,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to persist operator event: %w", err)
	}

	return nil
}

// PersistFunc adapts the repository for eventlog.Logger.SetPersistFunc
func (r *EventRepository) PersistFunc() eventlog.PersistFunc {
	return r.PersistEvent
}
