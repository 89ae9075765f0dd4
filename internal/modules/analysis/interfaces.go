package analysis

import (
	"github.com/redchoeng/titan-kr/internal/domain"
	"github.com/redchoeng/titan-kr/internal/modules/universe"
)

// Universe supplies the symbol list and the stage-one screen
type Universe interface {
	Symbols(mode domain.AnalysisMode) []universe.Symbol
	Screen(snap domain.SymbolSnapshot) (bool, string)
}
