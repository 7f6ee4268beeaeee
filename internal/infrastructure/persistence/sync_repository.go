package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockflow/backend/internal/domain/sync"
	"github.com/stockflow/backend/internal/infrastructure/persistence/models"
)

// DefaultBatchSize is the number of rows per upsert statement.
const DefaultBatchSize = 100

// SyncRepository writes transformed records into the destination
// tables. Each batch is its own implicit transaction: a failing batch
// aborts the remaining ones but earlier batches stay committed, an
// explicit trade-off favoring progress over atomicity for a
// re-runnable periodic job.
type SyncRepository struct {
	db        *gorm.DB
	batchSize int
}

// SyncRepositoryOption configures a SyncRepository
type SyncRepositoryOption func(*SyncRepository)

// WithBatchSize overrides the default upsert batch size.
func WithBatchSize(n int) SyncRepositoryOption {
	return func(r *SyncRepository) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

// NewSyncRepository creates a repository over the given gorm handle.
func NewSyncRepository(db *gorm.DB, opts ...SyncRepositoryOption) *SyncRepository {
	r := &SyncRepository{db: db, batchSize: DefaultBatchSize}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// upsertInBatches splits rows into fixed-size batches and issues one
// upsert-on-conflict per batch, sequentially. The first failing batch
// aborts the rest and propagates the storage error.
func upsertInBatches[T any](ctx context.Context, db *gorm.DB, rows []*T, conflict []clause.Column, updates []string, batchSize int) error {
	for start := 0; start < len(rows); start += batchSize {
		end := min(start+batchSize, len(rows))
		batch := rows[start:end]
		err := db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   conflict,
				DoUpdates: clause.AssignmentColumns(updates),
			}).
			Create(&batch).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// UpsertProducts writes canonical product rows, conflict-keyed on the
// ERP source URL.
func (r *SyncRepository) UpsertProducts(ctx context.Context, records []*sync.ProductRecord) error {
	syncedAt := time.Now()
	rows := make([]*models.ERPProductModel, 0, len(records))
	for _, rec := range records {
		rows = append(rows, models.ERPProductModelFromRecord(rec, syncedAt))
	}
	return upsertInBatches(ctx, r.db, rows,
		[]clause.Column{{Name: "source_url"}},
		[]string{
			"erp_product_id", "sku", "name", "description", "category",
			"cost", "price", "reorder_point", "reorder_qty",
			"stock_warehouse", "stock_showroom", "stock_annex",
			"stock_returns", "stock_overflow", "effective_stock",
			"status", "last_modified", "synced_at", "updated_at",
		},
		r.batchSize)
}

// UpsertAppProducts writes app-facing product rows, conflict-keyed on
// SKU. Records without a SKU are skipped since they cannot satisfy the
// conflict key.
func (r *SyncRepository) UpsertAppProducts(ctx context.Context, records []*sync.ProductRecord) error {
	syncedAt := time.Now()
	rows := make([]*models.AppProductModel, 0, len(records))
	for _, rec := range records {
		if rec.SKU == "" {
			continue
		}
		rows = append(rows, models.AppProductModelFromRecord(rec, syncedAt))
	}
	return upsertInBatches(ctx, r.db, rows,
		[]clause.Column{{Name: "sku"}},
		[]string{
			"name", "description", "category", "cost", "price", "stock",
			"reorder_point", "reorder_qty", "synced_at", "updated_at",
		},
		r.batchSize)
}

// UpsertVendors writes canonical vendor rows, conflict-keyed on the
// ERP source URL.
func (r *SyncRepository) UpsertVendors(ctx context.Context, records []*sync.VendorRecord) error {
	syncedAt := time.Now()
	rows := make([]*models.ERPVendorModel, 0, len(records))
	for _, rec := range records {
		rows = append(rows, models.ERPVendorModelFromRecord(rec, syncedAt))
	}
	return upsertInBatches(ctx, r.db, rows,
		[]clause.Column{{Name: "source_url"}},
		[]string{
			"erp_vendor_id", "name", "email", "phone", "lead_time_days",
			"payment_terms", "status", "last_modified", "synced_at", "updated_at",
		},
		r.batchSize)
}

// UpsertLegacyVendors writes the denormalized name-keyed vendor rows.
func (r *SyncRepository) UpsertLegacyVendors(ctx context.Context, records []*sync.LegacyVendorRecord) error {
	syncedAt := time.Now()
	rows := make([]*models.LegacyVendorModel, 0, len(records))
	for _, rec := range records {
		if rec.Name == "" {
			continue
		}
		rows = append(rows, models.LegacyVendorModelFromRecord(rec, syncedAt))
	}
	return upsertInBatches(ctx, r.db, rows,
		[]clause.Column{{Name: "name"}},
		[]string{"email", "phone", "terms", "synced_at", "updated_at"},
		r.batchSize)
}

// UpsertPurchaseOrders writes purchase-order rows, conflict-keyed on
// the ERP source URL. The jsonb line-item column is replaced wholesale.
func (r *SyncRepository) UpsertPurchaseOrders(ctx context.Context, records []*sync.PurchaseOrderRecord) error {
	syncedAt := time.Now()
	rows := make([]*models.PurchaseOrderModel, 0, len(records))
	for _, rec := range records {
		rows = append(rows, models.PurchaseOrderModelFromRecord(rec, syncedAt))
	}
	return upsertInBatches(ctx, r.db, rows,
		[]clause.Column{{Name: "source_url"}},
		[]string{
			"order_number", "order_type", "status", "vendor_url",
			"vendor_name", "order_date", "expected_date", "subtotal",
			"tax", "total", "line_items", "is_dropship", "is_active",
			"synced_at", "updated_at",
		},
		r.batchSize)
}

// DeactivateStalePurchaseOrders marks every purchase order with an
// order date strictly older than cutoff as inactive. The cutoff is
// exclusive: an order dated exactly at cutoff stays active. Purely
// age-based; whether a row was touched this run does not matter.
func (r *SyncRepository) DeactivateStalePurchaseOrders(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PurchaseOrderModel{}).
		Where("order_date < ? AND is_active = ?", cutoff, true).
		Updates(map[string]any{"is_active": false, "updated_at": time.Now()})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
