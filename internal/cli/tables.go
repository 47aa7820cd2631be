package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/pocket-ledger/internal/insights"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/money"
)

const maxNoteWidth = 40

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers(headers...)
}

// cellStyle styles one table cell: header cells take TableHeaderStyle and
// amount cells below the header are right aligned.
func cellStyle(row int, amount bool) lipgloss.Style {
	switch {
	case row == table.HeaderRow:
		return TableCellStyle.Inherit(TableHeaderStyle)
	case amount:
		return TableCellStyle.Inherit(AmountStyle)
	default:
		return TableCellStyle
	}
}

func amountColumnStyle(amountCol int) func(row, col int) lipgloss.Style {
	return func(row, col int) lipgloss.Style {
		return cellStyle(row, col == amountCol)
	}
}

// RenderExpenses draws expenses with their category names and a total row.
func RenderExpenses(expenses []model.Expense, categories []model.Category) string {
	if len(expenses) == 0 {
		return SubtleStyle.Render("No expenses.")
	}

	names := categoryNames(categories)
	t := newTable("Date", "Category", "Amount", "Note", "ID").
		StyleFunc(amountColumnStyle(2))

	var total int64
	for _, e := range expenses {
		total += e.AmountCents
		t.Row(e.Date, names.lookup(e.CategoryID), money.FormatCentsToUSD(e.AmountCents), truncate(e.NoteText(), maxNoteWidth), e.ID)
	}
	t.Row("", BoldStyle.Render("Total"), BoldStyle.Render(money.FormatCentsToUSD(total)), "", "")

	return t.Render()
}

// RenderCategories draws categories in list order with a color swatch, the
// usage count and how many expenses currently reference each one.
func RenderCategories(categories []model.Category, expenseCounts map[string]int) string {
	if len(categories) == 0 {
		return SubtleStyle.Render("No categories.")
	}

	t := newTable("ID", "Name", "Color", "Uses", "Expenses").
		StyleFunc(func(row, col int) lipgloss.Style {
			return cellStyle(row, col >= 3)
		})

	for _, c := range categories {
		swatch := SwatchStyle(c.Color).Render("●") + " " + c.Color
		t.Row(c.ID, c.Name, swatch, fmt.Sprint(c.UsageCount), fmt.Sprint(expenseCounts[c.ID]))
	}
	return t.Render()
}

// RenderBreakdown draws the insights summary: the period total followed by
// each category's share.
func RenderBreakdown(label string, shares []insights.CategoryShare, totalCents int64, count int) string {
	var b strings.Builder
	b.WriteString(FormatTitle(label))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n",
		BoldStyle.Render(money.FormatCentsToUSD(totalCents)),
		SubtleStyle.Render(fmt.Sprintf("across %d expense%s", count, plural(count)))))

	if len(shares) == 0 {
		b.WriteString(SubtleStyle.Render("No spending in this period."))
		return b.String()
	}

	t := newTable("Category", "Amount", "Share", "").
		StyleFunc(amountColumnStyle(1))
	for _, s := range shares {
		t.Row(s.Name, money.FormatCentsToUSD(s.AmountCents), fmt.Sprintf("%d%%", s.Percent), bar(s.Percent, s.Color))
	}
	b.WriteString(t.Render())
	return b.String()
}

// RenderSettings shows the current settings.
func RenderSettings(s model.Settings) string {
	content := fmt.Sprintf("%s %s\n%s %s",
		BoldStyle.Render("Week starts on:"), s.WeekStartsOn.String(),
		BoldStyle.Render("Theme:         "), string(s.Theme))
	return RenderBox("Settings", content)
}

// RenderExpense shows a single expense in detail.
func RenderExpense(e model.Expense, category *model.Category) string {
	name := UnknownCategory
	if category != nil {
		name = category.Name
	}
	lines := []string{
		fmt.Sprintf("%s %s", BoldStyle.Render("Amount:  "), money.FormatCentsToUSD(e.AmountCents)),
		fmt.Sprintf("%s %s", BoldStyle.Render("Date:    "), e.Date),
		fmt.Sprintf("%s %s", BoldStyle.Render("Category:"), name),
	}
	if note := e.NoteText(); note != "" {
		lines = append(lines, fmt.Sprintf("%s %s", BoldStyle.Render("Note:    "), note))
	}
	return RenderBox("Expense "+e.ID, strings.Join(lines, "\n"))
}

// UnknownCategory labels expenses whose category was removed.
const UnknownCategory = insights.UnknownCategoryName

type nameIndex map[string]string

func categoryNames(categories []model.Category) nameIndex {
	idx := make(nameIndex, len(categories))
	for _, c := range categories {
		idx[c.ID] = c.Name
	}
	return idx
}

func (n nameIndex) lookup(id string) string {
	if name, ok := n[id]; ok {
		return name
	}
	return UnknownCategory
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

func bar(percent int, color string) string {
	const width = 20
	filled := percent * width / 100
	style := ProgressStyle
	if color != "" {
		style = SwatchStyle(color)
	}
	return style.Render(strings.Repeat("█", filled)) + SubtleStyle.Render(strings.Repeat("░", width-filled))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
