package db

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Machine is one managed virtual machine know to berth.
type Machine struct {
	ID        string // UUID of this machine
	Name      string // user-facing machine name, unique
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UpsertMachine saves a machine, keeping the original ID when the
// name already exists.
func UpsertMachine(ctx context.Context, berthDB *sql.DB, machine *Machine) error {
	query := `
		INSERT INTO machines (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET updated_at = excluded.updated_at
	`
	now := time.Now().Unix()
	_, err := berthDB.ExecContext(ctx, query, machine.ID, machine.Name, now, now)
	return err
}

// GetMachineByName retrieves a machine by its user-facing name.
// Returns nil when no machine with that name exists.
func GetMachineByName(ctx context.Context, berthDB *sql.DB, name string) (*Machine, error) {
	query := `SELECT id, name, created_at, updated_at FROM machines WHERE name = ?`
	row := berthDB.QueryRowContext(ctx, query, name)

	var createdAt, updatedAt int64
	machine := &Machine{}
	err := row.Scan(&machine.ID, &machine.Name, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	machine.CreatedAt = time.Unix(createdAt, 0)
	machine.UpdatedAt = time.Unix(updatedAt, 0)
	return machine, nil
}
