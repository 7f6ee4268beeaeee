package sync

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	domain "github.com/stockflow/backend/internal/domain/sync"
	"github.com/stockflow/backend/internal/infrastructure/erp"
)

// retentionMonths is the purchase-order retention window. Orders whose
// order date falls strictly before now minus this window are marked
// inactive after each successful purchase-order upsert.
const retentionMonths = 24

// Store is the persistence surface the orchestrator writes through.
// persistence.SyncRepository implements it.
type Store interface {
	UpsertVendors(ctx context.Context, records []*domain.VendorRecord) error
	UpsertLegacyVendors(ctx context.Context, records []*domain.LegacyVendorRecord) error
	UpsertProducts(ctx context.Context, records []*domain.ProductRecord) error
	UpsertAppProducts(ctx context.Context, records []*domain.ProductRecord) error
	UpsertPurchaseOrders(ctx context.Context, records []*domain.PurchaseOrderRecord) error
	DeactivateStalePurchaseOrders(ctx context.Context, cutoff time.Time) (int64, error)
}

// Locker guards against overlapping runs. cache.SyncLock implements
// it; a nil lock always acquires.
type Locker interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

// noopLock is used when no Redis lock is configured.
type noopLock struct{}

func (noopLock) Acquire(context.Context) (bool, error) { return true, nil }
func (noopLock) Release(context.Context) error         { return nil }

// Options bound each pagination loop and the purchase-order query window.
type Options struct {
	PageSize          int
	VendorCap         int
	ProductCap        int
	PurchaseOrderCap  int
	OrderWindowMonths int
}

// applyDefaults fills zero options with the documented defaults.
func (o *Options) applyDefaults() {
	if o.PageSize <= 0 {
		o.PageSize = 100
	}
	if o.VendorCap <= 0 {
		o.VendorCap = 1000
	}
	if o.ProductCap <= 0 {
		o.ProductCap = 2000
	}
	if o.PurchaseOrderCap <= 0 {
		o.PurchaseOrderCap = 5000
	}
	if o.OrderWindowMonths <= 0 {
		o.OrderWindowMonths = retentionMonths
	}
}

// Service sequences the three sync stages. Stages run strictly
// sequentially in a fixed order because products and purchase orders
// reference vendor identity; each stage's failure is isolated into its
// result and never suppresses the other stages.
type Service struct {
	client erp.Executor
	store  Store
	lock   Locker
	logger *zap.Logger
	opts   Options
	now    func() time.Time
}

// NewService wires the orchestrator. lock may be nil.
func NewService(client erp.Executor, store Store, lock Locker, logger *zap.Logger, opts Options) *Service {
	opts.applyDefaults()
	if lock == nil {
		lock = noopLock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		store:  store,
		lock:   lock,
		logger: logger.Named("sync"),
		opts:   opts,
		now:    time.Now,
	}
}

// Run executes the requested sync stages and always returns a report;
// callers must inspect the per-type Success flags, not just the fact
// that a report exists.
func (s *Service) Run(ctx context.Context, types []domain.DataType) *domain.Report {
	start := s.now()
	requested := s.selectTypes(types)

	report := &domain.Report{
		Results: make([]domain.Result, 0, len(requested)),
	}

	acquired, err := s.lock.Acquire(ctx)
	if err == nil && !acquired {
		err = domain.ErrSyncInProgress
	}
	if err != nil {
		for _, dt := range requested {
			report.Results = append(report.Results, domain.NewResult(dt, 0, 0, err))
		}
		report.TotalDuration = s.now().Sub(start).Milliseconds()
		report.Timestamp = s.now()
		return report
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("failed to release sync lock", zap.Error(err))
		}
	}()

	for _, dt := range requested {
		stageStart := s.now()
		var count int
		var stageErr error

		switch dt {
		case domain.DataTypeVendors:
			count, stageErr = s.syncVendors(ctx)
		case domain.DataTypeProducts:
			count, stageErr = s.syncProducts(ctx)
		case domain.DataTypePurchaseOrders:
			count, stageErr = s.syncPurchaseOrders(ctx)
		}

		elapsed := s.now().Sub(stageStart)
		result := domain.NewResult(dt, count, elapsed, stageErr)
		report.Results = append(report.Results, result)

		if stageErr != nil {
			s.logger.Error("sync stage failed",
				zap.String("data_type", string(dt)),
				zap.Error(stageErr),
			)
			continue
		}
		s.logger.Info("sync stage completed",
			zap.String("data_type", string(dt)),
			zap.Int("item_count", count),
			zap.Duration("elapsed", elapsed),
		)
	}

	report.TotalDuration = s.now().Sub(start).Milliseconds()
	report.Timestamp = s.now()
	return report
}

// selectTypes filters the requested subset while preserving the fixed
// vendor -> product -> purchase-order execution order.
func (s *Service) selectTypes(types []domain.DataType) []domain.DataType {
	if len(types) == 0 {
		return domain.AllDataTypes
	}
	requested := make(map[domain.DataType]bool, len(types))
	for _, dt := range types {
		requested[dt] = true
	}
	ordered := make([]domain.DataType, 0, len(requested))
	for _, dt := range domain.AllDataTypes {
		if requested[dt] {
			ordered = append(ordered, dt)
		}
	}
	return ordered
}

func (s *Service) syncVendors(ctx context.Context) (int, error) {
	pager := erp.NewPager(s.client, erp.VendorsQuery, erp.VendorsField, s.opts.PageSize, s.opts.VendorCap)
	nodes, err := pager.FetchAll(ctx)
	if err != nil {
		return 0, err
	}

	canonical := make([]*domain.VendorRecord, 0, len(nodes))
	legacy := make([]*domain.LegacyVendorRecord, 0, len(nodes))
	for _, node := range nodes {
		var raw erp.RawVendor
		if err := json.Unmarshal(node, &raw); err != nil {
			s.logger.Debug("skipping unparseable vendor node", zap.Error(err))
			continue
		}
		vendor, legacyVendor, ok := erp.TransformVendor(&raw)
		if !ok {
			continue
		}
		canonical = append(canonical, vendor)
		legacy = append(legacy, legacyVendor)
	}

	if err := s.store.UpsertVendors(ctx, canonical); err != nil {
		return 0, err
	}
	if err := s.store.UpsertLegacyVendors(ctx, legacy); err != nil {
		return 0, err
	}
	return len(canonical), nil
}

func (s *Service) syncProducts(ctx context.Context) (int, error) {
	pager := erp.NewPager(s.client, erp.ProductsQuery, erp.ProductsField, s.opts.PageSize, s.opts.ProductCap)
	nodes, err := pager.FetchAll(ctx)
	if err != nil {
		return 0, err
	}

	records := make([]*domain.ProductRecord, 0, len(nodes))
	excluded := 0
	for _, node := range nodes {
		var raw erp.RawProduct
		if err := json.Unmarshal(node, &raw); err != nil {
			s.logger.Debug("skipping unparseable product node", zap.Error(err))
			continue
		}
		record, ok := erp.TransformProduct(&raw)
		if !ok {
			excluded++
			continue
		}
		records = append(records, record)
	}
	if excluded > 0 {
		s.logger.Info("excluded inactive or deprecating products", zap.Int("count", excluded))
	}

	if err := s.store.UpsertProducts(ctx, records); err != nil {
		return 0, err
	}
	if err := s.store.UpsertAppProducts(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *Service) syncPurchaseOrders(ctx context.Context) (int, error) {
	now := s.now()
	from := now.AddDate(0, -s.opts.OrderWindowMonths, 0)

	pager := erp.NewPager(s.client, erp.PurchaseOrdersQuery, erp.PurchaseOrdersField,
		s.opts.PageSize, s.opts.PurchaseOrderCap,
		erp.WithFilters(map[string]any{
			"fromDate": erp.FormatDate(from),
			"toDate":   erp.FormatDate(now),
		}),
	)
	nodes, err := pager.FetchAll(ctx)
	if err != nil {
		return 0, err
	}

	records := make([]*domain.PurchaseOrderRecord, 0, len(nodes))
	for _, node := range nodes {
		var raw erp.RawPurchaseOrder
		if err := json.Unmarshal(node, &raw); err != nil {
			s.logger.Debug("skipping unparseable purchase order node", zap.Error(err))
			continue
		}
		record, ok := erp.TransformPurchaseOrder(&raw)
		if !ok {
			continue
		}
		records = append(records, record)
	}

	if err := s.store.UpsertPurchaseOrders(ctx, records); err != nil {
		return 0, err
	}

	// Stale deactivation is best effort: a failure here is logged and
	// never fails the purchase-order stage.
	cutoff := now.AddDate(0, -retentionMonths, 0)
	if n, err := s.store.DeactivateStalePurchaseOrders(ctx, cutoff); err != nil {
		s.logger.Warn("failed to deactivate stale purchase orders", zap.Error(err))
	} else if n > 0 {
		s.logger.Info("deactivated stale purchase orders",
			zap.Int64("count", n),
			zap.Time("cutoff", cutoff),
		)
	}

	return len(records), nil
}
