package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aegislabs/aegis/internal/browser"
	"github.com/aegislabs/aegis/internal/config"
)

var (
	importBrowserFlag string
	importListFlag    bool
)

var importSessionCmd = &cobra.Command{
	Use:   "import-session",
	Short: "Import an Aegis session from a browser",
	Long: `Extract the Aegis session cookie from a local browser profile and
store it as the CLI's access token. Useful when you are already logged
in to the web app and do not want to type credentials again.

By default all supported browsers are searched. Use --browser to limit
the search, and --list to see which browsers have cookie stores on this
machine.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if importListFlag {
			return runListBrowsers()
		}
		return runImportSession(importBrowserFlag)
	},
}

func init() {
	importSessionCmd.Flags().StringVarP(&importBrowserFlag, "browser", "b", "auto", "browser to search (auto, chrome, chromium, firefox, edge, opera)")
	importSessionCmd.Flags().BoolVarP(&importListFlag, "list", "l", false, "list browsers with cookie stores on this machine")
}

func runListBrowsers() error {
	browsers := browser.ListAvailableBrowsers()
	if len(browsers) == 0 {
		fmt.Println("No browser cookie stores found.")
		return nil
	}
	fmt.Println("Available browsers:")
	for _, name := range browsers {
		fmt.Printf("  - %s\n", name)
	}
	return nil
}

func runImportSession(browserName string) error {
	selected, err := browser.ParseBrowser(browserName)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	baseURL := cfg.ResolveBaseURL()
	if apiURLFlag != "" {
		baseURL = apiURLFlag
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	spin := newSpinner("Searching browser cookie stores")
	spin.start()

	result, err := browser.ExtractSession(ctx, selected, baseURL)
	if err != nil {
		spin.stopWithError()
		fmt.Fprintf(os.Stderr, "No session found: %v\n", err)
		fmt.Fprintln(os.Stderr, "Log in to the Aegis web app first, or use 'aegis login'.")
		return fmt.Errorf("session import failed: %w", err)
	}
	spin.stopWithSuccess(fmt.Sprintf("Found session in %s", result.BrowserName))

	if err := saveSession(result.AccessToken); err != nil {
		return err
	}

	printSuccess("Session imported")
	return nil
}
