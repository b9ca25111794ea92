// internal/services/metrics_service.go
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shopyangu/backend/internal/models"
)

// MetricsService produces the dashboard reporting snapshot: totals for now and
// 30 days ago, a stock-status histogram, and the top shops by stock.
type MetricsService struct {
	db *gorm.DB
}

type PeriodTotals struct {
	TotalShops    int64   `json:"totalShops"`
	TotalProducts int64   `json:"totalProducts"`
	TotalStock    int64   `json:"totalStock"`
	TotalValue    float64 `json:"totalValue"`
}

type StockBucket struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type TopShop struct {
	ShopName   string `json:"shopName"`
	TotalStock int64  `json:"totalStock"`
}

type GrowthRates struct {
	TotalShops    float64 `json:"totalShops"`
	TotalProducts float64 `json:"totalProducts"`
	TotalStock    float64 `json:"totalStock"`
	TotalValue    float64 `json:"totalValue"`
}

type MetricsSnapshot struct {
	Current           PeriodTotals  `json:"current"`
	Previous          PeriodTotals  `json:"previous"`
	Growth            GrowthRates   `json:"growth"`
	StockDistribution []StockBucket `json:"stockDistribution"`
	TopShops          []TopShop     `json:"topShops"`
}

const comparisonWindow = 30 * 24 * time.Hour

func NewMetricsService(db *gorm.DB) *MetricsService {
	return &MetricsService{db: db}
}

func (s *MetricsService) ComputeMetrics(ctx context.Context) (*MetricsSnapshot, error) {
	now := time.Now()

	current, err := s.TotalsAsOf(ctx, now)
	if err != nil {
		return nil, err
	}

	previous, err := s.TotalsAsOf(ctx, now.Add(-comparisonWindow))
	if err != nil {
		return nil, err
	}

	distribution, err := s.stockDistribution(ctx)
	if err != nil {
		return nil, err
	}

	topShops, err := s.topShops(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &MetricsSnapshot{
		Current:  current,
		Previous: previous,
		Growth: GrowthRates{
			TotalShops:    percentChange(float64(current.TotalShops), float64(previous.TotalShops)),
			TotalProducts: percentChange(float64(current.TotalProducts), float64(previous.TotalProducts)),
			TotalStock:    percentChange(float64(current.TotalStock), float64(previous.TotalStock)),
			TotalValue:    percentChange(current.TotalValue, previous.TotalValue),
		},
		StockDistribution: distribution,
		TopShops:          topShops,
	}, nil
}

// TotalsAsOf counts shops and products created on or before asOf and sums
// stock and stock value over the matching products. Empty collections yield
// zeroes, never nulls.
func (s *MetricsService) TotalsAsOf(ctx context.Context, asOf time.Time) (PeriodTotals, error) {
	var totals PeriodTotals
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Shop{}).
		Where("created_at <= ?", asOf).
		Count(&totals.TotalShops).Error; err != nil {
		return PeriodTotals{}, storeError("failed to count shops", err)
	}

	if err := db.Model(&models.Product{}).
		Where("created_at <= ?", asOf).
		Count(&totals.TotalProducts).Error; err != nil {
		return PeriodTotals{}, storeError("failed to count products", err)
	}

	var sums struct {
		TotalStock int64
		TotalValue float64
	}
	if err := db.Model(&models.Product{}).
		Where("created_at <= ?", asOf).
		Select("COALESCE(SUM(stock_level), 0) AS total_stock, COALESCE(SUM(price * stock_level), 0) AS total_value").
		Scan(&sums).Error; err != nil {
		return PeriodTotals{}, storeError("failed to sum product stock", err)
	}

	totals.TotalStock = sums.TotalStock
	totals.TotalValue = sums.TotalValue
	return totals, nil
}

// stockDistribution classifies every product into exactly one bucket:
// stock_level >= 6 in stock, 1..5 low stock, otherwise out of stock. Buckets
// with no members are not emitted.
func (s *MetricsService) stockDistribution(ctx context.Context) ([]StockBucket, error) {
	buckets := []StockBucket{}
	err := s.db.WithContext(ctx).Model(&models.Product{}).
		Select("CASE WHEN stock_level >= 6 THEN 'In Stock' WHEN stock_level >= 1 THEN 'Low Stock' ELSE 'Out of Stock' END AS status, COUNT(*) AS count").
		Group("status").
		Scan(&buckets).Error
	if err != nil {
		return nil, storeError("failed to compute stock distribution", err)
	}
	return buckets, nil
}

// topShops ranks shops by total stock across their products. The join is kept
// loose on purpose: a product whose shop was removed still counts, under the
// "deleted shop" label.
func (s *MetricsService) topShops(ctx context.Context, limit int) ([]TopShop, error) {
	var rows []struct {
		ShopName   *string
		TotalStock int64
	}
	err := s.db.WithContext(ctx).Model(&models.Product{}).
		Select("shops.name AS shop_name, SUM(products.stock_level) AS total_stock").
		Joins("LEFT JOIN shops ON shops.id = products.shop_id").
		Group("products.shop_id, shops.name").
		Order("total_stock DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, storeError("failed to rank shops by stock", err)
	}

	topShops := make([]TopShop, 0, len(rows))
	for _, row := range rows {
		name := "deleted shop"
		if row.ShopName != nil && *row.ShopName != "" {
			name = *row.ShopName
		}
		topShops = append(topShops, TopShop{ShopName: name, TotalStock: row.TotalStock})
	}
	return topShops, nil
}

// percentChange is the dashboard's period-over-period display rule: a zero
// previous value reads as 100% growth.
func percentChange(current, previous float64) float64 {
	if previous == 0 {
		return 100
	}
	return (current - previous) / previous * 100
}
