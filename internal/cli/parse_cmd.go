package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"smart-todo/internal/cli/formatter"
	"smart-todo/internal/llmparse"
	"smart-todo/internal/task"
)

// newParseCmd parses one sentence and prints the draft. With --create the task is stored
// when the draft reaches the auto-create threshold.
func newParseCmd(app *App, g *globalOpts) *cobra.Command {
	var (
		mode   string
		nowStr string
		create bool
	)

	cmd := &cobra.Command{
		Use:   "parse <text>",
		Short: "Extract a task draft from one sentence",
		Long: `Extract a task draft from one sentence.

Examples:
  smarttodo parse 明天下午3点开会
  smarttodo parse --mode rules --now 2025-03-04T10:00:00+08:00 下周一交报告
  smarttodo parse --create 今晚8点跑步30分钟`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := task.ParseInput{
				Text:       strings.Join(args, " "),
				Mode:       task.ParseMode(mode),
				AutoCreate: create,
			}
			// --now pins relative dates for reproducible output
			if nowStr != "" {
				now, err := time.Parse(time.RFC3339, nowStr)
				if err != nil {
					return fmt.Errorf("--now: %w", err)
				}
				input.Now = &now
			}

			out, err := app.Tasks.Parse(cmd.Context(), g.scope(), input)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if g.jsonOut {
				return writeJSON(w, out)
			}

			fmt.Fprintln(w, formatter.RenderDraft(out.Draft, app.Location))
			// A degraded or rule fallback is still printed, with a warning
			if out.Outcome != llmparse.OutcomeSuccess {
				fmt.Fprintln(w, formatter.StyleYellow.Render(fmt.Sprintf("模型解析失败（%s），以上为备用结果", out.Outcome)))
			}
			switch {
			case out.Task != nil:
				fmt.Fprintln(w, formatter.StyleGreen.Render("✓ 已创建任务 "+out.Task.ID))
			case create:
				fmt.Fprintln(w, formatter.StyleDim.Render("置信度不足，未自动创建"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "parser to use: model or rules (default: model when configured)")
	cmd.Flags().StringVar(&nowStr, "now", "", "reference time in RFC3339, defaults to the current time")
	cmd.Flags().BoolVar(&create, "create", false, "store the task when the draft is confident enough")
	return cmd
}
