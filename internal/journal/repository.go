// Package journal persists hub events to the event_log table and provides
// query access to the recorded history.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Default and maximum page sizes for List queries.
const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Entry represents one recorded hub event.
type Entry struct {
	ID        string         `json:"id"`
	Event     string         `json:"event"`
	DeviceID  *int           `json:"device_id,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Filter controls which journal entries to return.
type Filter struct {
	Event    string // optional: filter by event name (turn_on, lock, ...)
	DeviceID *int   // optional: filter by device ID
	Limit    int    // default 50, max 200
	Offset   int    // pagination offset
}

// ListResult contains the paginated journal results.
type ListResult struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
}

// Repository defines the interface for journal operations.
type Repository interface {
	Record(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter Filter) (*ListResult, error)
}

// SQLiteRepository stores journal entries in SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new journal repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Record inserts one journal entry. The ID and CreatedAt are generated if
// empty.
func (r *SQLiteRepository) Record(ctx context.Context, entry *Entry) error {
	if entry.ID == "" {
		entry.ID = "evt-" + uuid.NewString()[:8]
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	var payloadJSON *string
	if entry.Payload != nil {
		b, err := json.Marshal(entry.Payload)
		if err != nil {
			return fmt.Errorf("marshalling event payload: %w", err)
		}
		s := string(b)
		payloadJSON = &s
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (id, event, device_id, payload, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.Event,
		nullableInt(entry.DeviceID), payloadJSON,
		entry.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting journal entry: %w", err)
	}

	return nil
}

// nullableInt returns nil for a nil pointer, or the int value otherwise.
// Used for nullable INTEGER columns in SQLite.
func nullableInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

// List returns journal entries matching the filter, most recent first.
func (r *SQLiteRepository) List(ctx context.Context, filter Filter) (*ListResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	// Build WHERE clause dynamically.
	var conditions []string
	var args []any

	if filter.Event != "" {
		conditions = append(conditions, "event = ?")
		args = append(args, filter.Event)
	}
	if filter.DeviceID != nil {
		conditions = append(conditions, "device_id = ?")
		args = append(args, *filter.DeviceID)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// WHERE is assembled from fixed fragments with ? placeholders only.
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM event_log %s", where) //nolint:gosec // parameterised conditions, not user input
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting journal entries: %w", err)
	}

	// Secondary sort on id keeps ordering stable when several events share
	// one RFC3339 second.
	query := fmt.Sprintf( //nolint:gosec // parameterised conditions, not user input
		"SELECT id, event, device_id, payload, created_at FROM event_log %s ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?",
		where,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var deviceID sql.NullInt64
		var payloadJSON sql.NullString
		var createdAt string

		if err := rows.Scan(&entry.ID, &entry.Event, &deviceID, &payloadJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}

		if deviceID.Valid {
			id := int(deviceID.Int64)
			entry.DeviceID = &id
		}
		if payloadJSON.Valid && payloadJSON.String != "" {
			var payload map[string]any
			if json.Unmarshal([]byte(payloadJSON.String), &payload) == nil {
				entry.Payload = payload
			}
		}

		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing journal timestamp %q: %w", createdAt, err)
		}
		entry.CreatedAt = t

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal entries: %w", err)
	}

	if entries == nil {
		entries = []Entry{}
	}

	return &ListResult{
		Entries: entries,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, nil
}
