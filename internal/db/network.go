package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/maxdollinger/berth/pkg/network"
)

// NetworkRecord is one resolved adapter slot of a machine as stored
// after a successful resolution pass.
type NetworkRecord struct {
	MachineID       string
	Slot            int
	Kind            network.AdapterKind
	Bridge          string
	HostOnly        string
	InterfaceNumber int // -1 until the post-boot phase assigned one
	Guest           network.GuestConfig
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ReplaceNetworks swaps the stored assignments of a machine for the
// given set in one transaction.
func ReplaceNetworks(ctx context.Context, berthDB *sql.DB, machineID string, records []NetworkRecord) error {
	tx, err := berthDB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM machine_networks WHERE machine_id = ?`, machineID); err != nil {
		return fmt.Errorf("clear networks: %w", err)
	}

	query := `
		INSERT INTO machine_networks
			(machine_id, slot, kind, bridge, hostonly, interface_number, guest_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now().Unix()
	for _, rec := range records {
		guestJSON, err := json.Marshal(rec.Guest)
		if err != nil {
			return fmt.Errorf("encode guest config: %w", err)
		}

		_, err = tx.ExecContext(ctx, query,
			machineID, rec.Slot, string(rec.Kind), rec.Bridge, rec.HostOnly,
			rec.InterfaceNumber, string(guestJSON), now, now)
		if err != nil {
			return fmt.Errorf("insert network slot %d: %w", rec.Slot, err)
		}
	}

	return tx.Commit()
}

// GetNetworks returns the stored assignments of a machine ordered by
// slot.
func GetNetworks(ctx context.Context, berthDB *sql.DB, machineID string) ([]NetworkRecord, error) {
	query := `
		SELECT machine_id, slot, kind, bridge, hostonly, interface_number, guest_json, created_at, updated_at
		FROM machine_networks WHERE machine_id = ? ORDER BY slot
	`
	rows, err := berthDB.QueryContext(ctx, query, machineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []NetworkRecord
	for rows.Next() {
		var rec NetworkRecord
		var kind, guestJSON string
		var createdAt, updatedAt int64

		err := rows.Scan(&rec.MachineID, &rec.Slot, &kind, &rec.Bridge, &rec.HostOnly,
			&rec.InterfaceNumber, &guestJSON, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(guestJSON), &rec.Guest); err != nil {
			return nil, fmt.Errorf("decode guest config for slot %d: %w", rec.Slot, err)
		}

		rec.Kind = network.AdapterKind(kind)
		rec.CreatedAt = time.Unix(createdAt, 0)
		rec.UpdatedAt = time.Unix(updatedAt, 0)
		records = append(records, rec)
	}

	return records, rows.Err()
}
