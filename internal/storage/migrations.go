package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Constraint and index names that the error mapping relies on.
const (
	usersPointsCheck   = "users_points_check"
	swapsOpenPairIndex = "swaps_open_pair_idx"
)

// migrations is applied in order by Migrate. Each statement must be idempotent. Append new statements at the end.
var migrations = []string{
	`CREATE SCHEMA IF NOT EXISTS content`,

	`CREATE TABLE IF NOT EXISTS content.users (
		id            SERIAL PRIMARY KEY,
		username      VARCHAR(64) NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		points        INTEGER NOT NULL DEFAULT 0 CONSTRAINT users_points_check CHECK (points >= 0),
		is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS content.items (
		id              SERIAL PRIMARY KEY,
		title           VARCHAR(100) NOT NULL,
		description     VARCHAR(1000) NOT NULL,
		category        VARCHAR(32) NOT NULL,
		type            VARCHAR(32) NOT NULL,
		size            VARCHAR(16) NOT NULL,
		condition       VARCHAR(16) NOT NULL,
		tags            JSONB NOT NULL DEFAULT '[]',
		images          JSONB NOT NULL,
		points_value    INTEGER NOT NULL CHECK (points_value BETWEEN 1 AND 1000),
		uploader_id     INTEGER NOT NULL REFERENCES content.users(id),
		status          VARCHAR(16) NOT NULL DEFAULT 'pending'
		                CHECK (status IN ('pending', 'approved', 'rejected', 'available', 'swapped', 'redeemed')),
		is_available    BOOLEAN NOT NULL DEFAULT TRUE,
		approved_by     INTEGER REFERENCES content.users(id),
		approved_at     TIMESTAMPTZ,
		rejected_reason VARCHAR(500),
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS items_uploader_idx ON content.items (uploader_id)`,
	`CREATE INDEX IF NOT EXISTS items_status_idx ON content.items (status, is_available)`,

	`CREATE TABLE IF NOT EXISTS content.swaps (
		id                SERIAL PRIMARY KEY,
		requester_id      INTEGER NOT NULL REFERENCES content.users(id),
		item_requested_id INTEGER NOT NULL REFERENCES content.items(id),
		swap_type         VARCHAR(16) NOT NULL CHECK (swap_type IN ('direct', 'points')),
		item_offered_id   INTEGER REFERENCES content.items(id),
		points_offered    INTEGER,
		status            VARCHAR(16) NOT NULL DEFAULT 'pending'
		                  CHECK (status IN ('pending', 'accepted', 'rejected', 'completed', 'cancelled')),
		message           VARCHAR(500),
		accepted_at       TIMESTAMPTZ,
		completed_at      TIMESTAMPTZ,
		cancelled_at      TIMESTAMPTZ,
		cancelled_by      INTEGER REFERENCES content.users(id),
		cancelled_reason  VARCHAR(200),
		created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT swaps_terms_check CHECK (
			(swap_type = 'direct' AND item_offered_id IS NOT NULL AND points_offered IS NULL) OR
			(swap_type = 'points' AND points_offered > 0 AND item_offered_id IS NULL)
		)
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS swaps_open_pair_idx
		ON content.swaps (requester_id, item_requested_id) WHERE status IN ('pending', 'accepted')`,
	`CREATE INDEX IF NOT EXISTS swaps_item_requested_idx ON content.swaps (item_requested_id)`,

	`CREATE TABLE IF NOT EXISTS content.points_ledger (
		id         BIGSERIAL PRIMARY KEY,
		user_id    INTEGER NOT NULL REFERENCES content.users(id),
		swap_id    INTEGER REFERENCES content.swaps(id),
		delta      INTEGER NOT NULL CHECK (delta <> 0),
		reason     VARCHAR(32) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS points_ledger_user_idx ON content.points_ledger (user_id, created_at DESC)`,
}

// Migrate brings the database schema up to date.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}
	return nil
}
