package cli

import (
	"encoding/json"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"smart-todo/internal/model"
	"smart-todo/internal/task"
)

// App holds what the commands need.
type App struct {
	Tasks    task.UseCase
	Location *time.Location

	// Google Calendar OAuth files, used by gcal-auth.
	CredentialsPath string
	TokenPath       string

	// IsInteractive reports whether stdin is a terminal; chat prints a prompt only then.
	IsInteractive func() bool
}

// globalOpts are the persistent flags shared by every subcommand.
type globalOpts struct {
	user    string
	jsonOut bool
}

func (g *globalOpts) scope() model.Scope {
	return model.NewScope(g.user)
}

func (g *globalOpts) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&g.user, "user", "u", "local", "owner of the tasks")
	fs.BoolVar(&g.jsonOut, "json", false, "print JSON instead of formatted text")
}

// NewRootCmd creates the top-level "smarttodo" command.
func NewRootCmd(app *App) *cobra.Command {
	if app.Location == nil {
		app.Location = time.Local
	}

	g := &globalOpts{}
	root := &cobra.Command{
		Use:           "smarttodo",
		Short:         "Turn Chinese sentences into tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	g.bind(root.PersistentFlags())

	root.AddCommand(
		newParseCmd(app, g),
		newChatCmd(app, g),
		newListCmd(app, g),
		newDoneCmd(app, g),
		newGcalAuthCmd(app),
	)
	return root
}

// writeJSON prints v as indented JSON for --json.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
