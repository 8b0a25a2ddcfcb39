package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/udisondev/dinomarathon/internal/config"
	"github.com/udisondev/dinomarathon/internal/model"
	"github.com/udisondev/dinomarathon/internal/race"
)

// DB stores player progression and race history in SQLite or PostgreSQL.
type DB struct {
	dialect string
	db      *sql.DB
}

// HistoryEntry is one recorded race.
type HistoryEntry struct {
	Level                    int
	Distance                 int
	Won                      bool
	CompletionTime           time.Duration
	StaminaRemainingFraction float64
	DistanceCovered          float64
}

// Open connects to the configured store and applies migrations.
func Open(ctx context.Context, cfg config.Store) (*DB, error) {
	var driver string
	switch cfg.Dialect {
	case config.DialectSQLite:
		driver = "sqlite"
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("creating sqlite directory: %w", err)
		}
	case config.DialectPostgres:
		driver = "pgx"
	default:
		return nil, fmt.Errorf("unsupported dialect %q", cfg.Dialect)
	}

	sqlDB, err := sql.Open(driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", cfg.Dialect, err)
	}
	if cfg.Dialect == config.DialectSQLite {
		// SQLite allows one writer; campaigns saving in parallel queue up on the pool.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("pinging %s database: %w", cfg.Dialect, err)
	}

	d := &DB{dialect: cfg.Dialect, db: sqlDB}
	if err := d.migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	slog.Info("database opened", "dialect", cfg.Dialect)
	return d, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// bind rewrites ? placeholders to $N for PostgreSQL.
func (d *DB) bind(query string) string {
	if d.dialect != config.DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SaveProgression inserts or replaces the progression stored in slot.
func (d *DB) SaveProgression(ctx context.Context, slot string, p *model.Progression) error {
	roster, err := json.Marshal(p.Roster)
	if err != nil {
		return fmt.Errorf("encoding roster: %w", err)
	}
	consumables, err := json.Marshal(p.Consumables)
	if err != nil {
		return fmt.Errorf("encoding consumables: %w", err)
	}

	_, err = d.db.ExecContext(ctx, d.bind(
		`INSERT INTO progression
		   (slot, max_stamina, permanent_speed_bonus, roster, max_slots, money, wins, level,
		    consumables, weight, intox, well_rested, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (slot) DO UPDATE SET
		   max_stamina = excluded.max_stamina,
		   permanent_speed_bonus = excluded.permanent_speed_bonus,
		   roster = excluded.roster,
		   max_slots = excluded.max_slots,
		   money = excluded.money,
		   wins = excluded.wins,
		   level = excluded.level,
		   consumables = excluded.consumables,
		   weight = excluded.weight,
		   intox = excluded.intox,
		   well_rested = excluded.well_rested,
		   updated_at = excluded.updated_at`),
		slot, p.MaxStamina, p.PermanentSpeedBonus, string(roster), p.MaxSlots, p.Money, p.Wins, p.Level,
		string(consumables), p.Weight, p.Intox, p.WellRested,
	)
	if err != nil {
		return fmt.Errorf("saving progression %q: %w", slot, err)
	}
	return nil
}

// LoadProgression reads the progression stored in slot.
// Returns nil, nil if the slot is empty.
func (d *DB) LoadProgression(ctx context.Context, slot string) (*model.Progression, error) {
	var (
		p                   model.Progression
		roster, consumables string
	)
	err := d.db.QueryRowContext(ctx, d.bind(
		`SELECT max_stamina, permanent_speed_bonus, roster, max_slots, money, wins, level,
		        consumables, weight, intox, well_rested
		 FROM progression WHERE slot = ?`), slot,
	).Scan(&p.MaxStamina, &p.PermanentSpeedBonus, &roster, &p.MaxSlots, &p.Money, &p.Wins, &p.Level,
		&consumables, &p.Weight, &p.Intox, &p.WellRested)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading progression %q: %w", slot, err)
	}

	if err := json.Unmarshal([]byte(roster), &p.Roster); err != nil {
		return nil, fmt.Errorf("decoding roster of %q: %w", slot, err)
	}
	if err := json.Unmarshal([]byte(consumables), &p.Consumables); err != nil {
		return nil, fmt.Errorf("decoding consumables of %q: %w", slot, err)
	}
	return &p, nil
}

// RecordRace appends a finished race to the history of runID.
func (d *DB) RecordRace(ctx context.Context, runID uuid.UUID, level, distance int, s race.Summary) error {
	_, err := d.db.ExecContext(ctx, d.bind(
		`INSERT INTO race_history
		   (run_id, level, distance, won, completion_ms, stamina_fraction, distance_covered)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		runID, level, distance, s.Won, s.CompletionTime.Milliseconds(), s.StaminaRemainingFraction, s.DistanceCovered,
	)
	if err != nil {
		return fmt.Errorf("recording race %d of run %s: %w", level, runID, err)
	}
	return nil
}

// RaceHistory returns the races of runID in the order they were recorded.
func (d *DB) RaceHistory(ctx context.Context, runID uuid.UUID) ([]HistoryEntry, error) {
	rows, err := d.db.QueryContext(ctx, d.bind(
		`SELECT level, distance, won, completion_ms, stamina_fraction, distance_covered
		 FROM race_history WHERE run_id = ? ORDER BY id`), runID)
	if err != nil {
		return nil, fmt.Errorf("querying history of run %s: %w", runID, err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var (
			e  HistoryEntry
			ms int64
		)
		if err := rows.Scan(&e.Level, &e.Distance, &e.Won, &ms, &e.StaminaRemainingFraction, &e.DistanceCovered); err != nil {
			return nil, fmt.Errorf("scanning history of run %s: %w", runID, err)
		}
		e.CompletionTime = time.Duration(ms) * time.Millisecond
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history of run %s: %w", runID, err)
	}
	return out, nil
}
