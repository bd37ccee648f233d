package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Scan a URL for threats",
	Long: `Submit a URL to the Aegis scanning service and print the verdict.

The target is analyzed server-side; the verdict covers reputation,
categorization and risk indicators.

Examples:
  aegis scan https://example.com
  aegis scan example.com/login`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(args[0])
	},
}

func runScan(target string) error {
	client, err := clientFactory()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	spin := newSpinner(fmt.Sprintf("Scanning %s", target))
	spin.start()

	resp, err := client.Analyze(ctx, target)
	if err != nil {
		spin.stopWithError()
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Scan failed"))
		return fmt.Errorf("scan failed: %w", err)
	}
	spin.stopWithSuccess("Scan complete")

	fmt.Println()
	printScanReport(target, resp.ScannedOutput)

	if verboseFlag {
		fmt.Fprintf(os.Stderr, "[verbose] Conversation: %s\n", resp.ConversationID)
	}
	return nil
}

// printScanReport prints the backend's verdict. The payload shape is owned
// by the backend so top-level fields are listed generically.
func printScanReport(target, results string) {
	labelStyle := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	fmt.Println(labelStyle.Render(fmt.Sprintf("Scan results for %s", target)))

	parsed := gjson.Parse(results)
	if !parsed.IsObject() {
		fmt.Println(results)
		return
	}

	parsed.ForEach(func(key, value gjson.Result) bool {
		v := value.String()
		if value.IsObject() || value.IsArray() {
			v = value.Raw
		}
		fmt.Printf("  %s %s\n", keyStyle.Render(key.String()+":"), v)
		return true
	})
}
