package universe

import (
	"github.com/rs/zerolog"

	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/modules/scoring"
)

// Service serves the symbol universe and applies the stage-1 screen
type Service struct {
	log zerolog.Logger
}

// NewService creates a new universe service
func NewService(log zerolog.Logger) *Service {
	return &Service{
		log: log.With().Str("component", "universe").Logger(),
	}
}

// Symbols returns the tracked universe for an analysis mode
func (s *Service) Symbols(mode domain.AnalysisMode) []Symbol {
	return Symbols(mode)
}

// Screen applies the stage-1 liquidity and size filter to a snapshot.
// Returns false with a reason when the symbol should be skipped.
func (s *Service) Screen(snap domain.SymbolSnapshot) (bool, string) {
	switch {
	case snap.MarketCap < scoring.MinMarketCap:
		return false, "시가총액 미달"
	case snap.Price < scoring.MinPrice:
		return false, "저가주 제외"
	case snap.AvgVolume < scoring.MinAvgVolume:
		return false, "거래량 미달"
	}
	return true, ""
}

// ScreenAll filters snapshots, logging each drop
func (s *Service) ScreenAll(snaps []domain.SymbolSnapshot) []domain.SymbolSnapshot {
	out := make([]domain.SymbolSnapshot, 0, len(snaps))
	for _, snap := range snaps {
		ok, reason := s.Screen(snap)
		if !ok {
			s.log.Debug().Str("code", snap.Code).Str("reason", reason).Msg("Screened out")
			continue
		}
		out = append(out, snap)
	}
	return out
}
