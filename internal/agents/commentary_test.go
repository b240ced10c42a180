package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/shopspring/decimal"

	"github.com/3550453790cl-arch/lhb-dashboard/internal/config"
	"github.com/3550453790cl-arch/lhb-dashboard/internal/models"
)

func TestNewCommentatorMissingCredentials(t *testing.T) {
	_, err := NewCommentator(context.Background(), &config.Config{LLMProvider: "openai"})
	if !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
}

func TestBuildMessages(t *testing.T) {
	records := []models.DisclosureRecord{
		{
			Code:         "600519",
			Name:         "贵州茅台",
			NetBuy:       decimal.NullDecimal{Decimal: decimal.NewFromInt(120000000), Valid: true},
			ChangeRate:   decimal.NewFromFloat(3.25),
			TurnoverRate: decimal.NullDecimal{Decimal: decimal.NewFromFloat(0.85), Valid: true},
		},
		{Code: "000001", Name: "平安银行"},
	}

	msgs := buildMessages(records)
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want system + user", len(msgs))
	}
	if msgs[0].Role != schema.System || msgs[1].Role != schema.User {
		t.Fatalf("roles = %s, %s", msgs[0].Role, msgs[1].Role)
	}
	if !strings.Contains(msgs[0].Content, "游资分析师") {
		t.Error("system prompt lost the analyst persona")
	}

	table := msgs[1].Content
	for _, want := range []string{"| 股票名 |", "贵州茅台", "1.20亿", "3.25%", "0.85%"} {
		if !strings.Contains(table, want) {
			t.Errorf("user prompt missing %q:\n%s", want, table)
		}
	}
	// Missing turnover renders a placeholder, not an error.
	if !strings.Contains(table, "| 平安银行 | 000001 | 0 | 0.00% | - |") {
		t.Errorf("row for record without amounts malformed:\n%s", table)
	}
}
