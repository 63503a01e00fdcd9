package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of audit event
type EventType string

const (
	EventLoginFailed        EventType = "login_failed"
	EventLoginSuccess       EventType = "login_success"
	EventAccountRegistered  EventType = "account_registered"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventAccessDenied       EventType = "access_denied"
	EventStatusChanged      EventType = "application_status_changed"
	EventMatchesCalculated  EventType = "matches_calculated"
)

// Event is one audit record. SubjectValue is hashed for usernames.
type Event struct {
	Timestamp    time.Time
	Event        EventType
	UserID       int64
	SubjectType  string // "username", "ip", "application", "job"
	SubjectValue string
	IP           string
	RequestID    string
	Details      map[string]interface{}
}

type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// New builds a JSON audit logger writing to stdout
func New(serviceName, environment string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return NewWithCore(logger, serviceName, environment)
}

// NewWithCore wraps an existing zap logger
func NewWithCore(logger *zap.Logger, serviceName, environment string) *Logger {
	return &Logger{zapLogger: logger, serviceName: serviceName, environment: environment}
}

// NewNop returns a logger that discards every event
func NewNop() *Logger {
	return NewWithCore(zap.NewNop(), "", "")
}

func levelFor(e EventType) zapcore.Level {
	switch e {
	case EventLoginSuccess, EventAccountRegistered, EventStatusChanged, EventMatchesCalculated:
		return zapcore.InfoLevel
	case EventUnauthorizedAccess:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

func (l *Logger) Log(ctx context.Context, event Event) {
	if l == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.SubjectType == "username" && event.SubjectValue != "" {
		event.SubjectValue = HashValue(event.SubjectValue)
	}

	fields := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("event", string(event.Event)),
		zap.Time("occurred_at", event.Timestamp),
	}
	if event.UserID > 0 {
		fields = append(fields, zap.Int64("user_id", event.UserID))
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
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}

	l.zapLogger.Log(levelFor(event.Event), string(event.Event), fields...)
}

func (l *Logger) LogLoginFailed(ctx context.Context, username, reason string) {
	l.Log(ctx, Event{
		Event:        EventLoginFailed,
		SubjectType:  "username",
		SubjectValue: username,
		Details:      map[string]interface{}{"reason": reason},
	})
}

func (l *Logger) LogRateLimitTriggered(ctx context.Context, ip, requestID, endpoint string) {
	l.Log(ctx, Event{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]interface{}{"endpoint": endpoint},
	})
}

func (l *Logger) LogAccessDenied(ctx context.Context, userID int64, resource string, id int64) {
	l.Log(ctx, Event{
		Event:        EventAccessDenied,
		UserID:       userID,
		SubjectType:  resource,
		SubjectValue: strconv.FormatInt(id, 10),
	})
}

func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	return l.zapLogger.Sync()
}

// HashValue returns a truncated SHA-256 hex digest
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}
