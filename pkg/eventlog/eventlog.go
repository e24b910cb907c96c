package eventlog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of operator event
type EventType string

const (
	EventSubmissionSucceeded EventType = "submission_succeeded"
	EventSubmissionFailed    EventType = "submission_failed"
	EventValidationFailed    EventType = "validation_failed"
	EventRateLimitTriggered  EventType = "rate_limit_triggered"
	EventCSRFViolation       EventType = "csrf_violation"
)

// Event is an operator-facing record. Never shown to site visitors.
type Event struct {
	Timestamp    time.Time              `json:"timestamp"`
	Service      string                 `json:"service"`
	Environment  string                 `json:"env"`
	Level        string                 `json:"level"`
	Event        EventType              `json:"event"`
	SubjectType  string                 `json:"subject_type,omitempty"`  // "email", "ip"
	SubjectValue string                 `json:"subject_value,omitempty"` // Masked or hashed for PII
	IP           string                 `json:"ip,omitempty"`
	UserAgent    string                 `json:"user_agent,omitempty"`
	RequestID    string                 `json:"request_id,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// PersistFunc stores an event; called asynchronously
type PersistFunc func(ctx context.Context, event Event) error

// Logger writes operator events through zap
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
	persistFunc PersistFunc
}

// New initializes the operator logger with a production zap config on stdout
func New(serviceName, environment string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"

	// Containers collect stdout
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	return NewWithZap(logger, serviceName, environment)
}

// NewWithZap wraps an existing zap logger
func NewWithZap(logger *zap.Logger, serviceName, environment string) *Logger {
	return &Logger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return NewWithZap(zap.NewNop(), "", "")
}

// SetPersistFunc sets the function to persist events to database
func (l *Logger) SetPersistFunc(f PersistFunc) {
	l.persistFunc = f
}

// Log writes an event and, when configured, persists it in the background
func (l *Logger) Log(ctx context.Context, event Event) {
	if l == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = l.serviceName
	event.Environment = l.environment

	level := levelFor(event.Event)
	event.Level = level.String()

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	l.zapLogger.Log(level, string(event.Event), fields...)

	if l.persistFunc != nil {
		go func(e Event) {
			// Request context may already be canceled
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := l.persistFunc(ctx, e); err != nil {
				l.zapLogger.Error("Failed to persist operator event", zap.Error(err))
			}
		}(event)
	}
}

func levelFor(t EventType) zapcore.Level {
	switch t {
	case EventSubmissionSucceeded:
		return zapcore.InfoLevel
	case EventSubmissionFailed:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// LogSubmissionSucceeded records a delivered inquiry
func (l *Logger) LogSubmissionSucceeded(ctx context.Context, submissionID, email, service, ip, requestID string, elapsed time.Duration) {
	l.Log(ctx, Event{
		Event:        EventSubmissionSucceeded,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		IP:           ip,
		RequestID:    requestID,
		Details: map[string]interface{}{
			"submission_id": submissionID,
			"service":       service,
			"elapsed_ms":    elapsed.Milliseconds(),
		},
	})
}

// LogSubmissionFailed records a dispatch failure. This is the only place the cause is reported.
func (l *Logger) LogSubmissionFailed(ctx context.Context, submissionID, email, ip, requestID string, cause error) {
	details := map[string]interface{}{"submission_id": submissionID}
	if cause != nil {
		details["error"] = cause.Error()
	}
	l.Log(ctx, Event{
		Event:        EventSubmissionFailed,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		IP:           ip,
		RequestID:    requestID,
		Details:      details,
	})
}

// LogValidationFailed records which fields were rejected
func (l *Logger) LogValidationFailed(ctx context.Context, fields []string, ip, requestID string) {
	l.Log(ctx, Event{
		Event:     EventValidationFailed,
		IP:        ip,
		RequestID: requestID,
		Details:   map[string]interface{}{"fields": fields},
	})
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (l *Logger) LogRateLimitTriggered(ctx context.Context, ip, userAgent, requestID, endpoint string) {
	l.Log(ctx, Event{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]interface{}{"endpoint": endpoint},
	})
}

// LogCSRFViolation logs a rejected state-changing request
func (l *Logger) LogCSRFViolation(ctx context.Context, ip, userAgent, requestID, reason string) {
	l.Log(ctx, Event{
		Event:     EventCSRFViolation,
		IP:        ip,
		UserAgent: userAgent,
		RequestID: requestID,
		Details:   map[string]interface{}{"reason": reason},
	})
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}

// --- Helper Functions ---

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	atIndex := -1
	for i, c := range email {
		if c == '@' {
			atIndex = i
			break
		}
	}
	if atIndex < 0 {
		return HashValue(email)
	}
	if atIndex <= 1 {
		return "***" + email[atIndex:]
	}
	return string(email[0]) + "***" + email[atIndex:]
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}
