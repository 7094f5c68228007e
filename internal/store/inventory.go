package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/soyeahso/enlight/internal/hooks"
)

// Record is one plugin instantiation.
type Record struct {
	ID        string    `json:"id"`
	Namespace string    `json:"namespace"`
	Name      string    `json:"name"`
	Class     string    `json:"class"`
	Prefix    string    `json:"prefix,omitempty"`
	File      string    `json:"file"`
	LoadedAt  time.Time `json:"loadedAt"`
}

// timeFormat sorts lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNoRecord is returned by Latest when a plugin was never recorded.
var ErrNoRecord = errors.New("no plugin record")

// Inventory records which plugins were loaded, from where and when.
type Inventory struct {
	db  *DB
	now func() time.Time
}

func NewInventory(db *DB) *Inventory {
	return &Inventory{db: db, now: time.Now}
}

// Record stores r, filling in ID and LoadedAt when empty.
func (inv *Inventory) Record(ctx context.Context, r Record) (Record, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.LoadedAt.IsZero() {
		r.LoadedAt = inv.now()
	}
	r.LoadedAt = r.LoadedAt.UTC()

	_, err := inv.db.sql.ExecContext(ctx, `
		INSERT INTO plugin_loads (id, namespace, name, class, prefix, file, loaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Namespace, r.Name, r.Class, r.Prefix, r.File, r.LoadedAt.Format(timeFormat),
	)
	if err != nil {
		return Record{}, fmt.Errorf("record plugin %s/%s: %w", r.Namespace, r.Name, err)
	}
	return r, nil
}

// List returns the records of namespace, or of all namespaces when
// namespace is empty, oldest first.
func (inv *Inventory) List(ctx context.Context, namespace string) ([]Record, error) {
	query := `SELECT id, namespace, name, class, prefix, file, loaded_at FROM plugin_loads`
	var args []any
	if namespace != "" {
		query += ` WHERE namespace = ?`
		args = append(args, namespace)
	}
	query += ` ORDER BY loaded_at, rowid`

	rows, err := inv.db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list plugin records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Latest returns the most recent record of a plugin.
func (inv *Inventory) Latest(ctx context.Context, namespace, name string) (Record, error) {
	row := inv.db.sql.QueryRowContext(ctx, `
		SELECT id, namespace, name, class, prefix, file, loaded_at
		FROM plugin_loads
		WHERE namespace = ? AND name = ?
		ORDER BY loaded_at DESC, rowid DESC
		LIMIT 1`, namespace, name)

	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %s/%s", ErrNoRecord, namespace, name)
	}
	return r, err
}

// Attach records every plugin_loaded event published on hm.
func (inv *Inventory) Attach(hm *hooks.Manager) {
	hm.On(hooks.EventPluginLoaded, "inventory", func(ctx context.Context, p hooks.Payload) error {
		_, err := inv.Record(ctx, Record{
			Namespace: p.Namespace,
			Name:      p.Plugin,
			Class:     p.String("class"),
			Prefix:    p.String("prefix"),
			File:      p.String("file"),
		})
		return err
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var (
		r        Record
		loadedAt string
	)
	if err := s.Scan(&r.ID, &r.Namespace, &r.Name, &r.Class, &r.Prefix, &r.File, &loadedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("scan plugin record: %w", err)
	}
	t, err := time.Parse(timeFormat, loadedAt)
	if err != nil {
		return Record{}, fmt.Errorf("parse loaded_at %q: %w", loadedAt, err)
	}
	r.LoadedAt = t
	return r, nil
}
