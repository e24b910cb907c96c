package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"lunarai-web/pkg/eventlog"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistEvent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ts := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	event := eventlog.Event{
		Timestamp:    ts,
		Service:      "lunarai-web",
		Environment:  "production",
		Level:        "error",
		Event:        eventlog.EventSubmissionFailed,
		SubjectType:  "email",
		SubjectValue: "j***@company.com",
		IP:           "10.0.0.1",
		RequestID:    "req-1",
		Details:      map[string]interface{}{"submission_id": "abc"},
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO operator_events")).
		WithArgs("submission_failed", "lunarai-web", "production", "error",
			"email", "j***@company.com", "10.0.0.1", "", "req-1",
			[]byte(`{"submission_id":"abc"}`), ts).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewEventRepository(mock)
	require.NoError(t, repo.PersistEvent(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersistEventEmptyIPAndDetails(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO operator_events")).
		WithArgs("csrf_violation", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			"", "", nil, pgxmock.AnyArg(), pgxmock.AnyArg(), []byte("null"), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewEventRepository(mock)
	err = repo.PersistFunc()(context.Background(), eventlog.Event{Event: eventlog.EventCSRFViolation})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersistEventError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO operator_events")).
		WithArgs(anyArgs(11)...).
		WillReturnError(errors.New("connection reset"))

	repo := NewEventRepository(mock)
	err = repo.PersistEvent(context.Background(), eventlog.Event{Event: eventlog.EventValidationFailed})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPersistEventUnencodableDetails(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEventRepository(mock)
	err = repo.PersistEvent(context.Background(), eventlog.Event{
		Event:   eventlog.EventSubmissionFailed,
		Details: map[string]interface{}{"cause": make(chan int)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode operator event details")
	assert.NoError(t, mock.ExpectationsWereMet(), "nothing is written")
}

func anyArgs(n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}
