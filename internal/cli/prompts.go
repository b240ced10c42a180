package cli

import (
	"github.com/AlecAivazis/survey/v2"
)

// ConfirmAIAnalysis asks whether to run the AI step after the board is
// rendered. Any prompt failure (no TTY, Ctrl-C) counts as "no".
func ConfirmAIAnalysis() bool {
	confirmed := false
	prompt := &survey.Confirm{
		Message: "开始 AI 深度分析？",
		Help:    "将净买入前 10 名发送给配置的 LLM，生成逐股点评和市场总结",
		Default: false,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false
	}
	return confirmed
}
