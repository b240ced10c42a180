// Package display renders the dashboard to the terminal.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/3550453790cl-arch/lhb-dashboard/internal/models"
	"github.com/3550453790cl-arch/lhb-dashboard/internal/processing"
	"github.com/3550453790cl-arch/lhb-dashboard/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Padding(0, 1).
		MarginBottom(1)

	dateStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")).
		Bold(true)

	metricStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(0, 2).
		Width(24).
		Align(lipgloss.Center)

	metricLabelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	topCardStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#F59E0B")).
		Padding(1, 2).
		Width(76)

	sectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6")).
		MarginTop(1)

	captionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true).
		MarginTop(1)

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)

	commentaryStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#10B981")).
		Padding(1, 2).
		Width(76)
)

// table column widths (display cells, CJK-aware via lipgloss)
var (
	nameCell   = lipgloss.NewStyle().Width(14)
	codeCell   = lipgloss.NewStyle().Width(8)
	numberCell = lipgloss.NewStyle().Width(10).Align(lipgloss.Right)
	amountCell = lipgloss.NewStyle().Width(12).Align(lipgloss.Right)
)

// BoardDisplay renders one resolved trading day.
type BoardDisplay struct {
	dateDisplay string
}

func NewBoardDisplay(dateDisplay string) *BoardDisplay {
	return &BoardDisplay{dateDisplay: dateDisplay}
}

// DisplayBoard prints the full dashboard: header, market overview metrics,
// top-entry card and the top-10 table.
func (d *BoardDisplay) DisplayBoard(day *models.BillboardDay, ranked []models.DisclosureRecord) {
	d.showHeader()
	d.showMetrics(day)
	d.showTopEntry(ranked)
	d.showTopTable(ranked)
	d.showFooter()
}

func (d *BoardDisplay) showHeader() {
	fmt.Println(titleStyle.Render("📈 东方财富龙虎榜分析看板"))
	fmt.Printf("当前展示数据日期：%s\n\n", dateStyle.Render(d.dateDisplay))
}

func (d *BoardDisplay) showMetrics(day *models.BillboardDay) {
	fmt.Println(sectionStyle.Render("📊 市场概览"))
	boxes := lipgloss.JoinHorizontal(lipgloss.Top,
		metricBox("上榜个股", fmt.Sprintf("%d 只", day.DistinctStockCount())),
		metricBox("机构买入", utils.FormatAmount(day.InstitutionalBuyTotal())),
		metricBox("外资买入", utils.FormatAmount(day.ForeignBuyTotal())),
	)
	fmt.Println(boxes)
}

func metricBox(label, value string) string {
	return metricStyle.Render(metricLabelStyle.Render(label) + "\n" + value)
}

func (d *BoardDisplay) showTopEntry(ranked []models.DisclosureRecord) {
	fmt.Println(sectionStyle.Render("👑 榜一大哥"))
	top, ok := processing.TopEntry(ranked)
	if !ok {
		fmt.Println(topCardStyle.Render("（今日无可排名的净买入数据）"))
		return
	}
	card := fmt.Sprintf("%s (%s)\n\n💰 净买入：%s\n📈 涨跌幅：%s%%\n📝 上榜原因：%s",
		top.Name, top.Code,
		utils.FormatNullAmount(top.NetBuy),
		top.ChangeRate.StringFixed(2),
		top.Reason)
	fmt.Println(topCardStyle.Render(card))
}

func (d *BoardDisplay) showTopTable(ranked []models.DisclosureRecord) {
	fmt.Println(sectionStyle.Render(fmt.Sprintf("📋 净买入 TOP %d", processing.TopN)))
	fmt.Println(tableRow("名称", "代码", "收盘价", "涨幅", "净买入"))
	fmt.Println(strings.Repeat("─", 54))
	for _, r := range processing.Top(ranked, processing.TopN) {
		fmt.Println(tableRow(
			r.Name,
			r.Code,
			r.ClosePrice.StringFixed(2),
			r.ChangeRate.StringFixed(2)+"%",
			utils.FormatNullAmount(r.NetBuy),
		))
	}
}

func tableRow(name, code, closePrice, change, netBuy string) string {
	return nameCell.Render(name) +
		codeCell.Render(code) +
		numberCell.Render(closePrice) +
		numberCell.Render(change) +
		amountCell.Render(netBuy)
}

func (d *BoardDisplay) showFooter() {
	fmt.Println(captionStyle.Render("数据来源：东方财富网 | 数据更新可能有延迟"))
}

// DisplayCommentary prints the AI result panel.
func (d *BoardDisplay) DisplayCommentary(text string) {
	fmt.Println(sectionStyle.Render("🧠 资深游资点评"))
	fmt.Println(commentaryStyle.Render(text))
}

// DisplayError prints a non-fatal user-visible failure.
func DisplayError(format string, args ...any) {
	fmt.Println(errorStyle.Render("❌ " + fmt.Sprintf(format, args...)))
}
