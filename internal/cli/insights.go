package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/research-hub/internal/insights"
)

func init() {
	insCmd := &cobra.Command{
		Use:   "insights",
		Short: "AI summaries across the catalog",
	}

	summaryCmd := &cobra.Command{
		Use:   "summary <country>",
		Short: "Key themes, patterns and recommendations for one country",
		Args:  cobra.ExactArgs(1),
		Run:   runInsightsSummary,
	}

	compareCmd := &cobra.Command{
		Use:   "compare <country> <country> [country...]",
		Short: "Compare findings across countries",
		Args:  cobra.MinimumNArgs(1),
		Run:   runInsightsCompare,
	}
	compareCmd.Flags().String("topic", "", "Focus the comparison on a topic")

	for _, c := range []*cobra.Command{summaryCmd, compareCmd} {
		c.Flags().IntP("budget", "b", insights.DefaultBudget, "Max characters of research context")
	}

	insCmd.AddCommand(summaryCmd, compareCmd)
	RootCmd.AddCommand(insCmd)
}

type insightResult struct {
	Countries []string `json:"countries" yaml:"countries"`
	Topic     string   `json:"topic,omitempty" yaml:"topic,omitempty"`
	Markdown  string   `json:"markdown" yaml:"markdown"`
}

func (a *app) analyst(ctx context.Context, budget int) *insights.Analyst {
	return insights.New(a.repo, a.generator(ctx, a.cfg.AI.InsightsModel), budget, a.logger)
}

func runInsightsSummary(cmd *cobra.Command, args []string) {
	budget, _ := cmd.Flags().GetInt("budget")
	country := parseCountries(args)[0]

	a := mustOpen(cmd)
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.AI.Timeout)
	defer cancel()

	md, err := a.analyst(ctx, budget).Summary(ctx, country)
	if err != nil {
		exitErr("insights summary", err)
	}
	printInsight(insightResult{Countries: []string{country.Label()}, Markdown: md})
}

func runInsightsCompare(cmd *cobra.Command, args []string) {
	budget, _ := cmd.Flags().GetInt("budget")
	topic, _ := cmd.Flags().GetString("topic")
	countries := parseCountries(args)

	a := mustOpen(cmd)
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.AI.Timeout)
	defer cancel()

	md, err := a.analyst(ctx, budget).Compare(ctx, countries, topic)
	if err != nil {
		exitErr("insights compare", err)
	}
	res := insightResult{Topic: strings.TrimSpace(topic), Markdown: md}
	for _, c := range countries {
		res.Countries = append(res.Countries, c.Label())
	}
	printInsight(res)
}

func printInsight(res insightResult) {
	out(res, func(w io.Writer) { fmt.Fprintln(w, res.Markdown) })
}
