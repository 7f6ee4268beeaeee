package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockflow/backend/internal/domain/sync"
)

// ERPProductModel is the canonical product table, keyed by the ERP
// source URL. Rows are written only by the sync pipeline.
type ERPProductModel struct {
	ID           uint   `gorm:"primaryKey"`
	ERPProductID string `gorm:"type:varchar(50);not null;index"`
	SourceURL    string `gorm:"type:varchar(500);not null;uniqueIndex:idx_erp_products_source_url"`
	SKU          string `gorm:"type:varchar(100);index"`
	Name         string `gorm:"type:varchar(200)"`
	Description  string `gorm:"type:text"`
	Category     string `gorm:"type:varchar(100)"`

	Cost         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Price        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReorderPoint int             `gorm:"not null;default:0"`
	ReorderQty   int             `gorm:"not null;default:0"`

	StockWarehouse float64 `gorm:"type:numeric;not null;default:0"`
	StockShowroom  float64 `gorm:"type:numeric;not null;default:0"`
	StockAnnex     float64 `gorm:"type:numeric;not null;default:0"`
	StockReturns   float64 `gorm:"type:numeric;not null;default:0"`
	StockOverflow  float64 `gorm:"type:numeric;not null;default:0"`
	EffectiveStock float64 `gorm:"type:numeric;not null;default:0"`

	Status       string     `gorm:"type:varchar(50)"`
	LastModified *time.Time `gorm:""`
	SyncedAt     time.Time  `gorm:"not null"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ERPProductModel) TableName() string {
	return "erp_products"
}

// ERPProductModelFromRecord creates a persistence model from a canonical record.
func ERPProductModelFromRecord(r *sync.ProductRecord, syncedAt time.Time) *ERPProductModel {
	return &ERPProductModel{
		ERPProductID:   r.ERPProductID,
		SourceURL:      r.SourceURL,
		SKU:            r.SKU,
		Name:           r.Name,
		Description:    r.Description,
		Category:       r.Category,
		Cost:           r.Cost,
		Price:          r.Price,
		ReorderPoint:   r.ReorderPoint,
		ReorderQty:     r.ReorderQty,
		StockWarehouse: r.StockWarehouse,
		StockShowroom:  r.StockShowroom,
		StockAnnex:     r.StockAnnex,
		StockReturns:   r.StockReturns,
		StockOverflow:  r.StockOverflow,
		EffectiveStock: r.EffectiveStock,
		Status:         r.Status,
		LastModified:   r.LastModified,
		SyncedAt:       syncedAt,
	}
}

// AppProductModel is the app-facing product table the UI reads, keyed
// by SKU. It carries the derived effective stock rather than the
// per-facility breakdown.
type AppProductModel struct {
	ID           uint            `gorm:"primaryKey"`
	SKU          string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_products_sku"`
	Name         string          `gorm:"type:varchar(200)"`
	Description  string          `gorm:"type:text"`
	Category     string          `gorm:"type:varchar(100)"`
	Cost         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Price        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Stock        float64         `gorm:"type:numeric;not null;default:0"`
	ReorderPoint int             `gorm:"not null;default:0"`
	ReorderQty   int             `gorm:"not null;default:0"`
	SyncedAt     time.Time       `gorm:"not null"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AppProductModel) TableName() string {
	return "products"
}

// AppProductModelFromRecord creates an app-facing row from a canonical record.
func AppProductModelFromRecord(r *sync.ProductRecord, syncedAt time.Time) *AppProductModel {
	return &AppProductModel{
		SKU:          r.SKU,
		Name:         r.Name,
		Description:  r.Description,
		Category:     r.Category,
		Cost:         r.Cost,
		Price:        r.Price,
		Stock:        r.EffectiveStock,
		ReorderPoint: r.ReorderPoint,
		ReorderQty:   r.ReorderQty,
		SyncedAt:     syncedAt,
	}
}

// ERPVendorModel is the canonical vendor table, keyed by source URL.
type ERPVendorModel struct {
	ID           uint       `gorm:"primaryKey"`
	ERPVendorID  string     `gorm:"type:varchar(50);not null;index"`
	SourceURL    string     `gorm:"type:varchar(500);not null;uniqueIndex:idx_erp_vendors_source_url"`
	Name         string     `gorm:"type:varchar(200)"`
	Email        string     `gorm:"type:varchar(200)"`
	Phone        string     `gorm:"type:varchar(50)"`
	LeadTimeDays int        `gorm:"not null;default:0"`
	PaymentTerms string     `gorm:"type:varchar(100)"`
	Status       string     `gorm:"type:varchar(50)"`
	LastModified *time.Time `gorm:""`
	SyncedAt     time.Time  `gorm:"not null"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ERPVendorModel) TableName() string {
	return "erp_vendors"
}

// ERPVendorModelFromRecord creates a persistence model from a canonical record.
func ERPVendorModelFromRecord(r *sync.VendorRecord, syncedAt time.Time) *ERPVendorModel {
	return &ERPVendorModel{
		ERPVendorID:  r.ERPVendorID,
		SourceURL:    r.SourceURL,
		Name:         r.Name,
		Email:        r.Email,
		Phone:        r.Phone,
		LeadTimeDays: r.LeadTimeDays,
		PaymentTerms: r.PaymentTerms,
		Status:       r.Status,
		LastModified: r.LastModified,
		SyncedAt:     syncedAt,
	}
}

// LegacyVendorModel is the denormalized name-keyed vendor table that
// older parts of the application still join on. Kept by design.
type LegacyVendorModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_vendors_name"`
	Email     string    `gorm:"type:varchar(200)"`
	Phone     string    `gorm:"type:varchar(50)"`
	Terms     string    `gorm:"type:varchar(100)"`
	SyncedAt  time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LegacyVendorModel) TableName() string {
	return "vendors"
}

// LegacyVendorModelFromRecord creates a legacy row from a simplified record.
func LegacyVendorModelFromRecord(r *sync.LegacyVendorRecord, syncedAt time.Time) *LegacyVendorModel {
	return &LegacyVendorModel{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Terms:    r.Terms,
		SyncedAt: syncedAt,
	}
}

// PurchaseOrderModel is the purchase-order table, keyed by source URL.
// Line items are embedded as jsonb and fully replaced on every upsert.
type PurchaseOrderModel struct {
	ID           uint            `gorm:"primaryKey"`
	OrderNumber  string          `gorm:"type:varchar(100);not null;index"`
	SourceURL    string          `gorm:"type:varchar(500);not null;uniqueIndex:idx_purchase_orders_source_url"`
	OrderType    string          `gorm:"type:varchar(50)"`
	Status       string          `gorm:"type:varchar(50)"`
	VendorURL    string          `gorm:"type:varchar(500);index"`
	VendorName   string          `gorm:"type:varchar(200)"`
	OrderDate    *time.Time      `gorm:"index"`
	ExpectedDate *time.Time      `gorm:""`
	Subtotal     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Tax          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LineItems    string          `gorm:"type:jsonb;not null;default:'[]'"`
	IsDropship   bool            `gorm:"not null;default:false"`
	IsActive     bool            `gorm:"not null;default:true;index"`
	SyncedAt     time.Time       `gorm:"not null"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderModelFromRecord creates a persistence model from a canonical record.
func PurchaseOrderModelFromRecord(r *sync.PurchaseOrderRecord, syncedAt time.Time) *PurchaseOrderModel {
	m := &PurchaseOrderModel{
		OrderNumber:  r.OrderNumber,
		SourceURL:    r.SourceURL,
		OrderType:    r.OrderType,
		Status:       r.Status,
		VendorURL:    r.VendorURL,
		VendorName:   r.VendorName,
		OrderDate:    r.OrderDate,
		ExpectedDate: r.ExpectedDate,
		Subtotal:     r.Subtotal,
		Tax:          r.Tax,
		Total:        r.Total,
		LineItems:    "[]",
		IsDropship:   r.IsDropship,
		IsActive:     r.IsActive,
		SyncedAt:     syncedAt,
	}
	if raw, err := json.Marshal(r.LineItems); err == nil && len(r.LineItems) > 0 {
		m.LineItems = string(raw)
	}
	return m
}

// Lines decodes the embedded line-item array.
func (m *PurchaseOrderModel) Lines() ([]sync.LineItem, error) {
	var lines []sync.LineItem
	if err := json.Unmarshal([]byte(m.LineItems), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}
