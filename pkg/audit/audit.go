// Package audit records privileged admin actions. When a Redis address is
// configured, events are additionally pushed onto a daily list for
// external inspection; either way they are logged structurally so an
// operator always has a trail even without Redis.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// auditLogRetention is how long Redis keeps a day's worth of admin-action
// events before they expire.
const auditLogRetention = 90 * 24 * time.Hour

// Event is a single admin-surface action: who hit it, what it was, and
// whether it succeeded.
type Event struct {
	EventID   uuid.UUID `json:"event_id"`
	Action    string    `json:"action"`
	RemoteIP  string    `json:"remote_ip,omitempty"`
	Success   bool      `json:"success"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Logger records admin-action events to Redis (if configured) and to the
// structured logger (always).
type Logger struct {
	redis *redis.Client
	log   *zap.Logger
}

// New returns a Logger. redisClient may be nil, in which case events are
// only written to log.
func New(redisClient *redis.Client, log *zap.Logger) *Logger {
	return &Logger{redis: redisClient, log: log}
}

// Log records action, stamping the event with a fresh ID and the current
// time. Redis failures are logged but never fail the admin request itself
// — the audit trail is best-effort, not a transactional guarantee.
func (l *Logger) Log(ctx context.Context, action, remoteIP string, success bool, detail string) {
	event := Event{
		EventID:   uuid.New(),
		Action:    action,
		RemoteIP:  remoteIP,
		Success:   success,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	}

	l.log.Info("admin action",
		zap.String("action", event.Action),
		zap.Bool("success", event.Success),
		zap.String("remote_ip", event.RemoteIP),
		zap.String("detail", event.Detail),
	)

	if l.redis == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		l.log.Warn("failed to marshal audit event", zap.Error(err))
		return
	}

	key := fmt.Sprintf("audit:admin:%s", event.Timestamp.Format("2006-01-02"))
	if err := l.redis.LPush(ctx, key, data).Err(); err != nil {
		l.log.Warn("failed to push audit event to redis", zap.Error(err))
		return
	}
	if err := l.redis.Expire(ctx, key, auditLogRetention).Err(); err != nil {
		l.log.Warn("failed to set audit log expiry", zap.Error(err))
	}
}
