package tui

import (
	"time"

	"github.com/Veraticus/pocket-ledger/internal/model"
)

// monthLoadedMsg carries everything needed to draw one month.
type monthLoadedMsg struct {
	month      time.Time
	err        error
	settings   *model.Settings
	expenses   []model.Expense
	categories []model.Category
}
