package contracts

import (
	"context"
	"time"
)

// LockerService is a distributed lock used to keep the payment worker single
// flight across replicas. TryLock returns the opaque lock value that must be
// presented back to Unlock so a replica cannot release a lock it lost.
type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, lockValue string) error
}
