package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"smart-todo/internal/cli/formatter"
	"smart-todo/internal/task"
)

// newListCmd lists the tasks of --user with the same filters as GET /api/v1/tasks.
func newListCmd(app *App, g *globalOpts) *cobra.Command {
	var input task.ListInput

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored tasks, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := app.Tasks.List(cmd.Context(), g.scope(), input)
			if err != nil {
				return err
			}
			if g.jsonOut {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderTaskList(out.Tasks, out.Total, out.Page, app.Location))
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&input.Status, "status", "", "pending, in_progress, completed or cancelled")
	fs.StringVar(&input.Priority, "priority", "", "urgent, high, medium or low")
	fs.StringVar(&input.Category, "category", "", "category label")
	fs.IntVar(&input.Page, "page", 1, "page number")
	fs.IntVar(&input.Limit, "limit", 20, "page size (max 100)")
	return cmd
}

// newDoneCmd completes one task by id.
func newDoneCmd(app *App, g *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Tasks.Complete(cmd.Context(), g.scope(), args[0])
			if err != nil {
				return err
			}
			if g.jsonOut {
				return writeJSON(cmd.OutOrStdout(), t)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.TaskLine(t, app.Location))
			return nil
		},
	}
}
