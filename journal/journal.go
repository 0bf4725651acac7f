// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-ballot/ballot"
)

var ErrAdministratorMismatch = errors.New("journal belongs to a different administrator")

// CommitTimeout bounds a single append made on behalf of an engine command.
const CommitTimeout = 5 * time.Second

// Record is one persisted engine event.
type Record struct {
	Seq        uint64
	ID         string
	Kind       ballot.EventKind
	Actor      ballot.Account
	Event      ballot.Event
	RecordedAt time.Time
}

// Journal appends engine events to SQL and reads them back in order.
type Journal struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time

	mu sync.Mutex
	// highest seq already stored when the journal was loaded
	loadedSeq uint64
}

func New(db *sql.DB, logger *slog.Logger) *Journal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Journal{db: db, logger: logger, now: time.Now}
}

// Init binds an empty journal to admin, or checks that an existing journal was
// written for admin.
func (j *Journal) Init(ctx context.Context, admin ballot.Account) error {
	var existing string
	err := j.db.QueryRowContext(ctx, `SELECT administrator FROM ballot_meta WHERE id = 1`).Scan(&existing)
	if errors.Is(err, sql.ErrNoRows) {
		_, err = j.db.ExecContext(ctx, `
			INSERT INTO ballot_meta (id, administrator, created_at)
			VALUES (1, $1, $2)
		`, string(admin), j.now())
		if err != nil {
			return fmt.Errorf("failed to write ballot meta: %w", err)
		}
		j.logger.Info("journal initialized", "administrator", admin)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read ballot meta: %w", err)
	}
	if ballot.Account(existing) != admin {
		return fmt.Errorf("%w: journal has %q, configured %q", ErrAdministratorMismatch, existing, admin)
	}
	return nil
}

func (j *Journal) Append(ctx context.Context, evt ballot.Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode event %d: %w", evt.Seq, err)
	}
	_, err = j.db.ExecContext(ctx, `
		INSERT INTO journal_event (seq, id, kind, actor, payload, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, int64(evt.Seq), uuid.NewString(), string(evt.Kind), string(evt.Actor), string(payload), j.now())
	if err != nil {
		return fmt.Errorf("failed to append event %d: %w", evt.Seq, err)
	}
	return nil
}

// Load returns every record ordered by sequence number.
func (j *Journal) Load(ctx context.Context) ([]Record, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, id, kind, actor, payload, recorded_at
		FROM journal_event
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec     Record
			seq     int64
			kind    string
			actor   string
			payload string
		)
		if err := rows.Scan(&seq, &rec.ID, &kind, &actor, &payload, &rec.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &rec.Event); err != nil {
			return nil, fmt.Errorf("failed to decode event %d: %w", seq, err)
		}
		rec.Seq = uint64(seq)
		rec.Kind = ballot.EventKind(kind)
		rec.Actor = ballot.Account(actor)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	return records, nil
}

// Commit implements ballot.Committer. Events at or below the sequence the
// journal was loaded with are the ones Open is replaying, and are already
// stored.
func (j *Journal) Commit(evt ballot.Event) error {
	j.mu.Lock()
	replayed := evt.Seq <= j.loadedSeq
	j.mu.Unlock()
	if replayed {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), CommitTimeout)
	defer cancel()
	return j.Append(ctx, evt)
}
