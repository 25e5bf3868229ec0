// internal/repo/repo.go
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ahmedelhofy-1/Maintenance-App/internal/models"
	"github.com/ahmedelhofy-1/Maintenance-App/internal/store"
)

// Repo loads and saves whole entity collections as keyed JSON blobs. Each
// load deserializes the full blob and each save overwrites it; record-level
// addressing happens in memory. Blobs that were never written are seeded on
// first read.
type Repo struct {
	store store.BlobStore
}

func New(s store.BlobStore) *Repo {
	return &Repo{store: s}
}

func load[T any](ctx context.Context, r *Repo, key string, seed T) (T, error) {
	var out T
	b, err := r.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		if err := save(ctx, r, key, seed); err != nil {
			return out, err
		}
		return seed, nil
	}
	if err != nil {
		return out, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

func save[T any](ctx context.Context, r *Repo, key string, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.store.Put(ctx, key, b); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (r *Repo) WorkOrders(ctx context.Context) ([]models.WorkOrder, error) {
	return load(ctx, r, store.KeyWorkOrders, SeedWorkOrders())
}

func (r *Repo) SaveWorkOrders(ctx context.Context, wos []models.WorkOrder) error {
	return save(ctx, r, store.KeyWorkOrders, wos)
}

func (r *Repo) GetWorkOrder(ctx context.Context, id string) (models.WorkOrder, error) {
	wos, err := r.WorkOrders(ctx)
	if err != nil {
		return models.WorkOrder{}, err
	}
	for _, wo := range wos {
		if wo.ID == id {
			return wo, nil
		}
	}
	return models.WorkOrder{}, models.ErrWorkOrderNotFound
}

// UpdateWorkOrder replaces the record in place and rewrites the blob.
func (r *Repo) UpdateWorkOrder(ctx context.Context, wo models.WorkOrder) error {
	wos, err := r.WorkOrders(ctx)
	if err != nil {
		return err
	}
	for i := range wos {
		if wos[i].ID == wo.ID {
			wos[i] = wo
			return r.SaveWorkOrders(ctx, wos)
		}
	}
	return models.ErrWorkOrderNotFound
}

func (r *Repo) PartRequests(ctx context.Context) ([]models.PartRequest, error) {
	return load(ctx, r, store.KeyPartRequests, SeedPartRequests())
}

func (r *Repo) SavePartRequests(ctx context.Context, reqs []models.PartRequest) error {
	return save(ctx, r, store.KeyPartRequests, reqs)
}

func (r *Repo) GetPartRequest(ctx context.Context, id string) (models.PartRequest, error) {
	reqs, err := r.PartRequests(ctx)
	if err != nil {
		return models.PartRequest{}, err
	}
	for _, req := range reqs {
		if req.ID == id {
			return req, nil
		}
	}
	return models.PartRequest{}, models.ErrRequestNotFound
}

func (r *Repo) UpdatePartRequest(ctx context.Context, req models.PartRequest) error {
	reqs, err := r.PartRequests(ctx)
	if err != nil {
		return err
	}
	for i := range reqs {
		if reqs[i].ID == req.ID {
			reqs[i] = req
			return r.SavePartRequests(ctx, reqs)
		}
	}
	return models.ErrRequestNotFound
}

func (r *Repo) AnnualRequests(ctx context.Context) ([]models.AnnualPartRequest, error) {
	return load(ctx, r, store.KeyAnnualRequests, []models.AnnualPartRequest{})
}

func (r *Repo) SaveAnnualRequests(ctx context.Context, reqs []models.AnnualPartRequest) error {
	return save(ctx, r, store.KeyAnnualRequests, reqs)
}

func (r *Repo) GetAnnualRequest(ctx context.Context, id string) (models.AnnualPartRequest, error) {
	reqs, err := r.AnnualRequests(ctx)
	if err != nil {
		return models.AnnualPartRequest{}, err
	}
	for _, req := range reqs {
		if req.ID == id {
			return req, nil
		}
	}
	return models.AnnualPartRequest{}, models.ErrRequestNotFound
}

func (r *Repo) UpdateAnnualRequest(ctx context.Context, req models.AnnualPartRequest) error {
	reqs, err := r.AnnualRequests(ctx)
	if err != nil {
		return err
	}
	for i := range reqs {
		if reqs[i].ID == req.ID {
			reqs[i] = req
			return r.SaveAnnualRequests(ctx, reqs)
		}
	}
	return models.ErrRequestNotFound
}

// Ledger is the live inventory; it is seeded from the master catalog and
// independently mutable afterwards.
func (r *Repo) Ledger(ctx context.Context) ([]models.Part, error) {
	return load(ctx, r, store.KeyInventory, SeedParts())
}

func (r *Repo) SaveLedger(ctx context.Context, parts []models.Part) error {
	return save(ctx, r, store.KeyInventory, parts)
}

func (r *Repo) Assets(ctx context.Context) ([]models.Asset, error) {
	return load(ctx, r, store.KeyAssets, SeedAssets())
}

func (r *Repo) SaveAssets(ctx context.Context, assets []models.Asset) error {
	return save(ctx, r, store.KeyAssets, assets)
}

func (r *Repo) GetAsset(ctx context.Context, id string) (models.Asset, error) {
	assets, err := r.Assets(ctx)
	if err != nil {
		return models.Asset{}, err
	}
	for _, a := range assets {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Asset{}, models.ErrAssetNotFound
}

func (r *Repo) UpdateAsset(ctx context.Context, asset models.Asset) error {
	assets, err := r.Assets(ctx)
	if err != nil {
		return err
	}
	for i := range assets {
		if assets[i].ID == asset.ID {
			assets[i] = asset
			return r.SaveAssets(ctx, assets)
		}
	}
	return models.ErrAssetNotFound
}

func (r *Repo) Master(ctx context.Context) (models.MasterData, error) {
	return load(ctx, r, store.KeyMasterData, SeedMasterData())
}

func (r *Repo) SaveMaster(ctx context.Context, md models.MasterData) error {
	return save(ctx, r, store.KeyMasterData, md)
}

func (r *Repo) GetUserByID(ctx context.Context, id string) (models.User, error) {
	md, err := r.Master(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range md.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, models.ErrUserNotFound
}

func (r *Repo) Roles(ctx context.Context) ([]models.Role, error) {
	md, err := r.Master(ctx)
	if err != nil {
		return nil, err
	}
	return md.Roles, nil
}
