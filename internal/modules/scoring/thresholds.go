package scoring

import "strings"

// ThresholdPair is an (excellent, good) pair for "higher is better" metrics
type ThresholdPair struct {
	Excellent float64
	Good      float64
}

// InversePair is a (goodUpper, fairUpper) pair for "lower is better" metrics
type InversePair struct {
	GoodUpper float64
	FairUpper float64
}

// SectorTable resolves sector-conditional thresholds by fuzzy label match
// (substring either direction), falling back to a default pair. Entries are
// ordered: the first match wins.
type SectorTable[T any] struct {
	entries []sectorEntry[T]
	def     T
}

type sectorEntry[T any] struct {
	key string
	val T
}

// Resolve returns the thresholds for a sector label
func (t SectorTable[T]) Resolve(sector string) T {
	if sector == "" {
		return t.def
	}
	for _, e := range t.entries {
		if strings.Contains(sector, e.key) || strings.Contains(e.key, sector) {
			return e.val
		}
	}
	return t.def
}

func newSectorTable[T any](def T, entries ...sectorEntry[T]) SectorTable[T] {
	return SectorTable[T]{entries: entries, def: def}
}

// KR sector thresholds, percent units. Korean market levels run below the
// global defaults, hence the lowered bars for utilities/shipbuilding.
var (
	ROEThresholds = newSectorTable(ThresholdPair{12, 6},
		sectorEntry[ThresholdPair]{"전기,전자", ThresholdPair{15, 8}},
		sectorEntry[ThresholdPair]{"전기전자", ThresholdPair{15, 8}},
		sectorEntry[ThresholdPair]{"반도체", ThresholdPair{15, 8}},
		sectorEntry[ThresholdPair]{"금융업", ThresholdPair{10, 6}},
		sectorEntry[ThresholdPair]{"은행", ThresholdPair{10, 6}},
		sectorEntry[ThresholdPair]{"보험", ThresholdPair{10, 6}},
		sectorEntry[ThresholdPair]{"증권", ThresholdPair{10, 6}},
		sectorEntry[ThresholdPair]{"유틸리티", ThresholdPair{5, 2}},
		sectorEntry[ThresholdPair]{"전기가스업", ThresholdPair{5, 2}},
		sectorEntry[ThresholdPair]{"전력", ThresholdPair{5, 2}},
		sectorEntry[ThresholdPair]{"조선", ThresholdPair{10, 5}},
		sectorEntry[ThresholdPair]{"운수장비", ThresholdPair{10, 5}},
		sectorEntry[ThresholdPair]{"건설업", ThresholdPair{10, 5}},
		sectorEntry[ThresholdPair]{"화학", ThresholdPair{12, 6}},
		sectorEntry[ThresholdPair]{"의약품", ThresholdPair{12, 6}},
		sectorEntry[ThresholdPair]{"바이오", ThresholdPair{12, 6}},
		sectorEntry[ThresholdPair]{"통신업", ThresholdPair{10, 5}},
		sectorEntry[ThresholdPair]{"서비스업", ThresholdPair{12, 6}},
		sectorEntry[ThresholdPair]{"음식료품", ThresholdPair{12, 6}},
		sectorEntry[ThresholdPair]{"유통업", ThresholdPair{10, 5}},
	)

	OPMThresholds = newSectorTable(ThresholdPair{10, 5},
		sectorEntry[ThresholdPair]{"전기,전자", ThresholdPair{15, 8}},
		sectorEntry[ThresholdPair]{"전기전자", ThresholdPair{15, 8}},
		sectorEntry[ThresholdPair]{"반도체", ThresholdPair{20, 10}},
		sectorEntry[ThresholdPair]{"금융업", ThresholdPair{20, 10}},
		sectorEntry[ThresholdPair]{"은행", ThresholdPair{20, 10}},
		sectorEntry[ThresholdPair]{"유틸리티", ThresholdPair{5, 1}},
		sectorEntry[ThresholdPair]{"전기가스업", ThresholdPair{3, 0}},
		sectorEntry[ThresholdPair]{"전력", ThresholdPair{3, 0}},
		sectorEntry[ThresholdPair]{"조선", ThresholdPair{5, 2}},
		sectorEntry[ThresholdPair]{"운수장비", ThresholdPair{8, 3}},
		sectorEntry[ThresholdPair]{"건설업", ThresholdPair{5, 2}},
		sectorEntry[ThresholdPair]{"화학", ThresholdPair{10, 5}},
		sectorEntry[ThresholdPair]{"의약품", ThresholdPair{15, 8}},
		sectorEntry[ThresholdPair]{"바이오", ThresholdPair{15, 8}},
		sectorEntry[ThresholdPair]{"통신업", ThresholdPair{15, 8}},
		sectorEntry[ThresholdPair]{"음식료품", ThresholdPair{8, 3}},
		sectorEntry[ThresholdPair]{"유통업", ThresholdPair{5, 2}},
	)

	RevenueGrowthThresholds = newSectorTable(ThresholdPair{10, 5},
		sectorEntry[ThresholdPair]{"전기,전자", ThresholdPair{20, 10}},
		sectorEntry[ThresholdPair]{"전기전자", ThresholdPair{20, 10}},
		sectorEntry[ThresholdPair]{"금융업", ThresholdPair{8, 3}},
		sectorEntry[ThresholdPair]{"은행", ThresholdPair{8, 3}},
		sectorEntry[ThresholdPair]{"유틸리티", ThresholdPair{5, 2}},
		sectorEntry[ThresholdPair]{"전기가스업", ThresholdPair{5, 2}},
		sectorEntry[ThresholdPair]{"조선", ThresholdPair{10, 5}},
		sectorEntry[ThresholdPair]{"건설업", ThresholdPair{10, 5}},
		sectorEntry[ThresholdPair]{"화학", ThresholdPair{10, 5}},
		sectorEntry[ThresholdPair]{"의약품", ThresholdPair{15, 8}},
		sectorEntry[ThresholdPair]{"바이오", ThresholdPair{20, 10}},
		sectorEntry[ThresholdPair]{"통신업", ThresholdPair{5, 2}},
		sectorEntry[ThresholdPair]{"음식료품", ThresholdPair{8, 3}},
	)

	// Free-cash-flow margin (FCF/revenue), percent. Capital-light sectors
	// are held to a higher bar.
	FCFMarginThresholds = newSectorTable(ThresholdPair{8, 4},
		sectorEntry[ThresholdPair]{"반도체", ThresholdPair{12, 6}},
		sectorEntry[ThresholdPair]{"전기전자", ThresholdPair{12, 6}},
		sectorEntry[ThresholdPair]{"소프트웨어", ThresholdPair{15, 8}},
		sectorEntry[ThresholdPair]{"바이오", ThresholdPair{10, 5}},
		sectorEntry[ThresholdPair]{"의약품", ThresholdPair{10, 5}},
		sectorEntry[ThresholdPair]{"통신업", ThresholdPair{10, 5}},
	)

	// Dividend yield, percent
	DividendYieldThresholds = newSectorTable(ThresholdPair{4, 2},
		sectorEntry[ThresholdPair]{"금융업", ThresholdPair{5, 3}},
		sectorEntry[ThresholdPair]{"은행", ThresholdPair{5, 3}},
		sectorEntry[ThresholdPair]{"보험", ThresholdPair{5, 3}},
		sectorEntry[ThresholdPair]{"증권", ThresholdPair{5, 3}},
		sectorEntry[ThresholdPair]{"통신업", ThresholdPair{4.5, 3}},
		sectorEntry[ThresholdPair]{"유틸리티", ThresholdPair{4, 2.5}},
		sectorEntry[ThresholdPair]{"전기가스업", ThresholdPair{4, 2.5}},
	)

	// Trailing PER (lower is better)
	PERThresholds = newSectorTable(InversePair{12, 20},
		sectorEntry[InversePair]{"금융업", InversePair{6, 10}},
		sectorEntry[InversePair]{"은행", InversePair{5, 8}},
		sectorEntry[InversePair]{"보험", InversePair{7, 11}},
		sectorEntry[InversePair]{"증권", InversePair{7, 11}},
		sectorEntry[InversePair]{"유틸리티", InversePair{8, 14}},
		sectorEntry[InversePair]{"건설업", InversePair{7, 12}},
		sectorEntry[InversePair]{"통신업", InversePair{9, 14}},
		sectorEntry[InversePair]{"반도체", InversePair{14, 25}},
		sectorEntry[InversePair]{"바이오", InversePair{25, 45}},
	)

	// EV/EBITDA (lower is better); not meaningful for financials
	EVEBITDAThresholds = newSectorTable(InversePair{7, 12},
		sectorEntry[InversePair]{"유틸리티", InversePair{5, 9}},
		sectorEntry[InversePair]{"건설업", InversePair{5, 9}},
		sectorEntry[InversePair]{"통신업", InversePair{4, 8}},
		sectorEntry[InversePair]{"반도체", InversePair{8, 14}},
		sectorEntry[InversePair]{"화학", InversePair{6, 11}},
	)

	// Price-to-book (lower is better); used for financials and materials
	PBThresholds = newSectorTable(InversePair{0.7, 1.3},
		sectorEntry[InversePair]{"금융업", InversePair{0.5, 0.9}},
		sectorEntry[InversePair]{"은행", InversePair{0.45, 0.8}},
		sectorEntry[InversePair]{"보험", InversePair{0.5, 0.9}},
		sectorEntry[InversePair]{"증권", InversePair{0.55, 1.0}},
		sectorEntry[InversePair]{"철강", InversePair{0.5, 0.9}},
		sectorEntry[InversePair]{"화학", InversePair{0.7, 1.2}},
	)

	// Debt-to-equity, percent (lower is better)
	DebtEquityThresholds = newSectorTable(InversePair{100, 200},
		sectorEntry[InversePair]{"건설업", InversePair{150, 250}},
		sectorEntry[InversePair]{"조선", InversePair{150, 250}},
		sectorEntry[InversePair]{"유틸리티", InversePair{130, 220}},
		sectorEntry[InversePair]{"운수장비", InversePair{120, 220}},
	)
)
