// internal/store/store.go
package store

import (
	"context"
	"errors"
)

// Keys for the persisted entity blobs. Every collection is one JSON blob,
// fully overwritten on each mutation; there is no transactional boundary
// across keys.
const (
	KeyWorkOrders     = "mx_workorders"
	KeyPartRequests   = "mx_requests"
	KeyAnnualRequests = "mx_annual_requests"
	KeyInventory      = "mx_inventory"
	KeyAssets         = "mx_assets"
	KeyMasterData     = "mx_masterdata"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("blob not found")

// BlobStore persists opaque JSON blobs under fixed string keys.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Close() error
}
