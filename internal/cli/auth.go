package cli

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/matzehuels/sheetprint/pkg/errors"
	"github.com/matzehuels/sheetprint/pkg/session"
	"github.com/matzehuels/sheetprint/pkg/source/sheets"
)

// loginTimeout bounds the wait for the browser consent.
const loginTimeout = 5 * time.Minute

// authCommand creates the auth command with subcommands.
func (c *CLI) authCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Google account authorization",
		Long: `Authorize sheetprint to read your Google spreadsheets.

The consent page opens in the browser and redirects back to a temporary
local server. The token is stored in ~/.config/sheetprint/token.json and
refreshed automatically.`,
	}

	cmd.AddCommand(c.authLoginCommand())
	cmd.AddCommand(c.authLogoutCommand())
	cmd.AddCommand(c.authStatusCommand())

	return cmd
}

// authLoginCommand creates the login subcommand.
func (c *CLI) authLoginCommand() *cobra.Command {
	secret := defaultSecret
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authorize with Google in the browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := errors.ValidateFile(secret); err != nil {
				return err
			}
			cfg, err := sheets.LoadConfig(secret)
			if err != nil {
				return err
			}
			store, err := session.NewFileStore("")
			if err != nil {
				return fmt.Errorf("open token store: %w", err)
			}

			tok, err := c.login(ctx, cfg)
			if err != nil {
				return err
			}
			if err := store.Save(ctx, tok); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			printSuccess("Logged in")
			printDetail("Token: %s", store.Path())
			return nil
		},
	}
	cmd.Flags().StringVarP(&secret, "secret", "s", defaultSecret, "path to the Google OAuth client secret")
	return cmd
}

// authLogoutCommand creates the logout subcommand.
func (c *CLI) authLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored Google token",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.NewFileStore("")
			if err != nil {
				return fmt.Errorf("open token store: %w", err)
			}
			if err := store.Delete(cmd.Context()); err != nil {
				return fmt.Errorf("delete token: %w", err)
			}
			printSuccess("Logged out")
			return nil
		},
	}
}

// authStatusCommand creates the status subcommand.
func (c *CLI) authStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a Google token is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.NewFileStore("")
			if err != nil {
				return fmt.Errorf("open token store: %w", err)
			}
			tok, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			if tok == nil {
				printInfo("Not logged in")
				printNextStep("Authorize with", appName+" auth login")
				return nil
			}

			printSuccess("Google token")
			printKeyValue("File", store.Path())
			printKeyValue("Refreshable", fmt.Sprint(tok.RefreshToken != ""))
			if !tok.Expiry.IsZero() {
				printKeyValue("Expires", tok.Expiry.Local().Format("Jan 2, 2006 15:04"))
			}
			return nil
		},
	}
}

// login runs the consent flow in the browser and waits for the callback.
func (c *CLI) login(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	loginCtx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	printNewline()
	fmt.Println(StyleTitle.Render("Google Authorization"))
	printNewline()

	tok, err := sheets.Authorize(loginCtx, cfg, func(authURL string) error {
		printKeyValue("URL", StyleLink.Render(authURL))
		printNewline()
		if err := openBrowser(authURL); err != nil {
			c.Logger.Debug("open browser", "error", err)
			printDetail("Copy the URL above and paste it in your browser")
		} else {
			printDetail("Opening browser...")
		}
		printInline("Waiting for authorization...")
		return nil
	})
	fmt.Println()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnauthorized, err, "authorization failed")
	}
	return tok, nil
}

func openBrowser(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return fmt.Errorf("URL scheme must be http or https, got %q", parsed.Scheme)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "linux":
		cmd = exec.Command("xdg-open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
