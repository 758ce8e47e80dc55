package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"smart-todo/internal/cli/formatter"
	"smart-todo/pkg/gcalendar"
)

// newGcalAuthCmd runs the OAuth desktop flow by hand: print the consent URL, read the code
// back from stdin and save the token where the server looks for it.
func newGcalAuthCmd(app *App) *cobra.Command {
	var credsPath, tokenPath string

	cmd := &cobra.Command{
		Use:   "gcal-auth",
		Short: "Authorize Google Calendar access and save the OAuth token",
		Long: `Authorize Google Calendar access for OAuth desktop credentials.

Open the printed URL, sign in, then paste the authorization code. The token is
saved to --token and picked up by the server on its next start. Service account
credentials do not need this step.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(credsPath)
			if err != nil {
				return fmt.Errorf("read credentials %q: %w", credsPath, err)
			}
			cfg, err := gcalendar.OAuthConfigFromJSON(data)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, formatter.StyleHeader.Render("1. 在浏览器中打开以下链接并登录 Google 账号："))
			fmt.Fprintln(w, cfg.AuthCodeURL("smart-todo", oauth2.AccessTypeOffline))
			fmt.Fprint(w, formatter.StyleHeader.Render("2. 粘贴授权码后回车："))

			// A code pasted without a trailing newline still counts
			code, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && strings.TrimSpace(code) == "" {
				return fmt.Errorf("read authorization code: %w", err)
			}

			tok, err := exchange(cmd.Context(), cfg, strings.TrimSpace(code))
			if err != nil {
				return err
			}
			if err := gcalendar.SaveToken(tokenPath, tok); err != nil {
				return err
			}
			fmt.Fprintln(w, formatter.StyleGreen.Render("✓ token 已保存到 "+tokenPath))
			return nil
		},
	}

	cmd.Flags().StringVar(&credsPath, "credentials", app.CredentialsPath, "OAuth desktop credentials JSON")
	cmd.Flags().StringVar(&tokenPath, "token", app.TokenPath, "where to save the token")
	return cmd
}

func exchange(ctx context.Context, cfg *oauth2.Config, code string) (*oauth2.Token, error) {
	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}
