package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"smart-todo/internal/cli/formatter"
	"smart-todo/internal/dialogue"
)

const chatHelp = "直接输入任务描述，和助手对话完善草稿。/cancel 清空草稿，/quit 退出。"

// newChatCmd runs a line based REPL over the dialogue machine. The conversation is keyed by
// the --user flag, so two terminals with the same user share one draft.
func newChatCmd(app *App, g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Build a task through a conversation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sc := g.scope()
			chatKey := "cli:" + sc.UserID
			w := cmd.OutOrStdout()
			interactive := app.IsInteractive != nil && app.IsInteractive()

			// Piped input gets no banner and no prompt
			if interactive {
				fmt.Fprintln(w, formatter.StyleDim.Render(chatHelp))
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				if interactive {
					fmt.Fprint(w, formatter.StyleHeader.Render("你> "))
				}
				// EOF ends the session like /quit
				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				switch line {
				case "":
					continue
				case "/quit", "/exit":
					return nil
				case "/cancel":
					app.Tasks.ResetChat(ctx, sc, chatKey)
					fmt.Fprintln(w, formatter.StyleDim.Render("已清空当前对话"))
					continue
				}

				res, err := app.Tasks.Chat(ctx, sc, chatKey, line)
				if err != nil {
					return err
				}
				if g.jsonOut {
					if err := writeJSON(w, res); err != nil {
						return err
					}
					continue
				}
				printTurn(w, app, res)
			}
			return scanner.Err()
		},
	}
}

// printTurn shows the reply, then either the created task id or the pending draft.
func printTurn(w io.Writer, app *App, res dialogue.TurnResult) {
	fmt.Fprintln(w, formatter.StyleBlue.Render("助手> ")+res.ReplyText)
	switch {
	case res.Created:
		fmt.Fprintln(w, formatter.StyleGreen.Render("✓ 已创建任务 "+res.TaskID))
	case res.Draft != nil:
		fmt.Fprintln(w, formatter.RenderDraft(*res.Draft, app.Location))
	}
}
