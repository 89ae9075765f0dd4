// Package gateway is the unified market data access layer. The scoring core
// only sees this interface; where the numbers come from is this package's
// problem.
package gateway

import (
	"errors"

	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/modules/rotation"
)

var (
	// ErrNotFound means the symbol is not in the tracked universe
	ErrNotFound = errors.New("symbol not found")
	// ErrUnavailable means the upstream data source failed
	ErrUnavailable = errors.New("market data unavailable")
)

// MarketDataGateway supplies everything the scoring engine consumes.
// GetHistory and GetBenchmarkHistory signal "no data" with an empty series,
// never an error.
type MarketDataGateway interface {
	GetSnapshot(code string) (domain.SymbolSnapshot, error)
	GetHistory(code string, days int) (domain.PriceHistory, error)
	GetBenchmarkHistory(days int) (domain.PriceHistory, error)
	GetSectorRotation() map[string]rotation.Entry
}
