// Package agents wraps the chat-completion call that turns the day's top
// net-buy list into a short narrative commentary.
package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/3550453790cl-arch/lhb-dashboard/internal/config"
	"github.com/3550453790cl-arch/lhb-dashboard/internal/models"
	"github.com/3550453790cl-arch/lhb-dashboard/internal/utils"
)

// ErrNoCredentials is returned before any network call when the AI
// configuration is incomplete.
var ErrNoCredentials = errors.New("AI credentials not configured")

const (
	defaultDeepSeekModel = "deepseek-chat"

	temperature   = 0.7
	maxTokens     = 2048
	generateLimit = 60 * time.Second
)

const systemPrompt = `你是一位拥有 20 年经验的 A 股资深游资分析师。
请根据提供的龙虎榜净买入前 10 名数据，对每只上榜股票进行简短点评，并在最后给出市场总结。

要求：
1. 逐个点评：对每一只股票，用一句话点评其资金性质（机构/游资/散户）、板块地位或技术形态。
2. 市场总结：在点评完所有股票后，总结今日市场情绪（情绪高潮/分歧/退潮）和主线热点。
3. 风格犀利、简练、不要说废话。
4. 使用 Markdown 格式输出。`

// Commentator holds a ready chat model.
type Commentator struct {
	model model.BaseChatModel
}

// NewCommentator builds the chat model for the configured provider. Missing
// credentials fail fast with ErrNoCredentials instead of a doomed API call.
func NewCommentator(ctx context.Context, cfg *config.Config) (*Commentator, error) {
	if !cfg.HasAICredentials() {
		return nil, ErrNoCredentials
	}

	if cfg.LLMProvider == "deepseek" {
		modelName := cfg.Model
		if modelName == "" || modelName == config.DefaultModel {
			modelName = defaultDeepSeekModel
		}
		chatModel, err := deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:      cfg.DeepSeekAPIKey,
			BaseURL:     cfg.BaseURL,
			Model:       modelName,
			MaxTokens:   maxTokens,
			Temperature: temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create deepseek chat model: %w", err)
		}
		return &Commentator{model: chatModel}, nil
	}

	temp := float32(temperature)
	tokens := maxTokens
	modelName := cfg.Model
	if modelName == "" {
		modelName = config.DefaultModel
	}
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       modelName,
		Temperature: &temp,
		MaxTokens:   &tokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return &Commentator{model: chatModel}, nil
}

// Generate runs one synchronous chat completion over the top net-buy slice
// and returns the raw text. No retry; transport and API errors go straight
// back to the caller.
func (c *Commentator) Generate(ctx context.Context, topRecords []models.DisclosureRecord) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generateLimit)
	defer cancel()

	resp, err := c.model.Generate(ctx, buildMessages(topRecords))
	if err != nil {
		return "", fmt.Errorf("AI 分析请求失败: %w", err)
	}
	return resp.Content, nil
}

func buildMessages(topRecords []models.DisclosureRecord) []*schema.Message {
	userPrompt := fmt.Sprintf(`这是今日龙虎榜净买入前 10 名的数据：
%s

请开始你的分析：`, renderTopTable(topRecords))

	return []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(userPrompt),
	}
}

// renderTopTable serializes the slice as a markdown table with short column
// labels to keep the prompt small.
func renderTopTable(records []models.DisclosureRecord) string {
	var b strings.Builder
	b.WriteString("| 股票名 | 代码 | 净买入 | 涨幅 | 换手率 |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, r := range records {
		turnover := "-"
		if r.TurnoverRate.Valid {
			turnover = r.TurnoverRate.Decimal.StringFixed(2) + "%"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s%% | %s |\n",
			r.Name, r.Code,
			utils.FormatNullAmount(r.NetBuy),
			r.ChangeRate.StringFixed(2),
			turnover)
	}
	return b.String()
}
