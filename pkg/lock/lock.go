package lock

import "context"

// Locker serializes access to one machine's network configuration. A
// resolution pass holds the lock from slot allocation until the guest
// configuration has been pushed.
// Blocks until the lock is acquired or the context is cancelled.
type Locker interface {
	AcquireLock(ctx context.Context, machineID string) (Lock, error)
}

// Lock represents an acquired lock that must be released
type Lock interface {
	Release() error
}
