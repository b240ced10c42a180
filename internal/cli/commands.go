package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/3550453790cl-arch/lhb-dashboard/internal/config"
)

// NewRootCmd creates the root command. Running without a subcommand
// renders the dashboard for the latest trading day.
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "lhb",
		Short: "龙虎榜分析看板 - Eastmoney dragon-tiger list dashboard",
		Long: `lhb fetches the latest dragon-tiger list (top-movers disclosure) from the
Eastmoney datacenter, renders market metrics and the net-buy top 10, and can
ask an LLM for a short commentary on the day's list.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			withAI, _ := cmd.Flags().GetBool("ai")
			noPrompt, _ := cmd.Flags().GetBool("no-prompt")
			return runDashboard(cfg, date, withAI, noPrompt)
		},
	}

	rootCmd.Flags().String("date", "", "Render a specific day (YYYYMMDD) instead of scanning for the latest")
	rootCmd.Flags().Bool("ai", false, "Run the AI commentary without asking")
	rootCmd.Flags().Bool("no-prompt", false, "Never ask about AI commentary (for scripts)")

	rootCmd.AddCommand(newAICmd(cfg))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(cfg))

	return rootCmd
}

// newAICmd creates the standalone commentary command.
func newAICmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "AI commentary on the latest day's net-buy top 10",
		Long: `Resolve the latest trading day, load its dragon-tiger list and send the
net-buy top 10 to the configured chat-completion endpoint.
Example: lhb ai --date=20240115`,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, _ := cmd.Flags().GetString("date")
			return runCommentaryOnly(cfg, date)
		},
	}
	cmd.Flags().String("date", "", "Day to analyze (YYYYMMDD), latest trading day if not provided")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("lhb v1.0.0")
			fmt.Println("东方财富龙虎榜分析看板")
		},
	}
}

func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			shown := *cfg
			if shown.APIKey != "" {
				shown.APIKey = "***"
			}
			if shown.DeepSeekAPIKey != "" {
				shown.DeepSeekAPIKey = "***"
			}
			data, _ := json.MarshalIndent(shown, "", "  ")
			fmt.Println(string(data))
		},
	})

	return configCmd
}
