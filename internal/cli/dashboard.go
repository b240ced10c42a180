package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/3550453790cl-arch/lhb-dashboard/internal/agents"
	"github.com/3550453790cl-arch/lhb-dashboard/internal/cache"
	"github.com/3550453790cl-arch/lhb-dashboard/internal/config"
	"github.com/3550453790cl-arch/lhb-dashboard/internal/dataflows"
	"github.com/3550453790cl-arch/lhb-dashboard/internal/display"
	"github.com/3550453790cl-arch/lhb-dashboard/internal/models"
	"github.com/3550453790cl-arch/lhb-dashboard/internal/processing"
	"github.com/3550453790cl-arch/lhb-dashboard/internal/utils"
)

func newAggregator(cfg *config.Config, client *dataflows.EastmoneyClient) *dataflows.Aggregator {
	agg := dataflows.NewAggregator(client)
	if !cfg.CacheEnabled {
		agg.WithCache(cache.NewDayCache(0))
	}
	return agg
}

// resolveDay picks the day to render: an explicit --date wins, otherwise
// the backward scan finds the latest day with data.
func resolveDay(ctx context.Context, cfg *config.Config, client dataflows.DayProber, dateKey string) (time.Time, string, bool) {
	if dateKey != "" {
		day, err := time.ParseInLocation(dataflows.DateKey, dateKey, time.Local)
		if err != nil {
			display.DisplayError("无效的日期 %q，请使用 YYYYMMDD 格式。", dateKey)
			return time.Time{}, "", false
		}
		return day, dataflows.DisplayDate(day), true
	}

	fmt.Println("正在寻找最近的交易日数据...")
	day, displayStr, ok := dataflows.FindLatestTradingDay(ctx, client, time.Now(), cfg.ScanHorizonDays)
	if !ok {
		display.DisplayError("最近%d天没有找到龙虎榜数据，请检查网络或稍后再试。", cfg.ScanHorizonDays)
		return time.Time{}, "", false
	}
	return day, displayStr, true
}

// runDashboard is the main flow: resolve -> load -> rank -> render, then
// the optional AI step.
func runDashboard(cfg *config.Config, dateKey string, withAI, noPrompt bool) error {
	ctx := context.Background()
	client := dataflows.NewEastmoneyClient()
	agg := newAggregator(cfg, client)

	day, displayStr, ok := resolveDay(ctx, cfg, client, dateKey)
	if !ok {
		return nil
	}

	data, err := agg.LoadDayData(ctx, day)
	if err != nil {
		if errors.Is(err, dataflows.ErrNoData) {
			display.DisplayError("无法获取 %s 的龙虎榜详细数据。", displayStr)
		} else {
			display.DisplayError("获取数据时出错: %v", err)
		}
		return nil
	}

	ranked := processing.RankByNetBuy(data.Records)
	board := display.NewBoardDisplay(displayStr)
	board.DisplayBoard(data, ranked)

	if !withAI && !noPrompt {
		withAI = ConfirmAIAnalysis()
	}
	if withAI {
		runCommentary(ctx, cfg, board, ranked, day)
	}
	return nil
}

// runCommentaryOnly backs the `lhb ai` subcommand.
func runCommentaryOnly(cfg *config.Config, dateKey string) error {
	ctx := context.Background()
	client := dataflows.NewEastmoneyClient()

	day, displayStr, ok := resolveDay(ctx, cfg, client, dateKey)
	if !ok {
		return nil
	}

	data, err := newAggregator(cfg, client).LoadDayData(ctx, day)
	if err != nil {
		if errors.Is(err, dataflows.ErrNoData) {
			display.DisplayError("无法获取 %s 的龙虎榜详细数据。", displayStr)
		} else {
			display.DisplayError("获取数据时出错: %v", err)
		}
		return nil
	}

	board := display.NewBoardDisplay(displayStr)
	runCommentary(ctx, cfg, board, processing.RankByNetBuy(data.Records), day)
	return nil
}

// runCommentary sends the top slice to the LLM and renders the answer. All
// failures stay local to the AI panel; the board above is already printed.
func runCommentary(ctx context.Context, cfg *config.Config, board *display.BoardDisplay, ranked []models.DisclosureRecord, day time.Time) {
	commentator, err := agents.NewCommentator(ctx, cfg)
	if err != nil {
		if errors.Is(err, agents.ErrNoCredentials) {
			display.DisplayError("请先配置 AI 密钥！")
			fmt.Println(cfg.SetupInstructions())
		} else {
			display.DisplayError("AI 初始化失败: %v", err)
		}
		return
	}

	fmt.Println("AI 正在分析龙虎榜数据，请稍候...")
	text, err := commentator.Generate(ctx, processing.Top(ranked, processing.TopN))
	if err != nil {
		display.DisplayError("%v", err)
		return
	}

	board.DisplayCommentary(text)
	if path, err := utils.SaveReport(cfg.ResultsDir, day.Format(dataflows.DateKey), text); err == nil {
		fmt.Printf("分析报告已保存: %s\n", path)
	}
}
