package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aegislabs/aegis/internal/models"
)

var scanFileCmd = &cobra.Command{
	Use:   "scan-file <path>",
	Short: "Scan a local file for threats",
	Long: `Upload a local file to the Aegis scanning service.

The file is checked for malware signatures, content-type mismatches and
prompt-injection payloads. Files up to 50 MB are accepted.

Examples:
  aegis scan-file ./invoice.pdf
  aegis scan-file ~/Downloads/setup.exe`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScanFile(args[0])
	},
}

func runScanFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot read file: %w", err)
	}

	client, err := clientFactory()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	spin := newSpinner(fmt.Sprintf("Scanning %s", path))
	spin.start()

	report, err := client.ScanFile(ctx, path)
	if err != nil {
		spin.stopWithError()
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "File scan failed"))
		return fmt.Errorf("file scan failed: %w", err)
	}
	spin.stopWithSuccess("Scan complete")

	fmt.Println()
	printFileReport(path, report)
	return nil
}

// printFileReport prints a file scan verdict.
func printFileReport(path string, report *models.FileScanReport) {
	labelStyle := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(colorTextDim)
	okStyle := lipgloss.NewStyle().Foreground(colorSuccess)
	badStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))

	fmt.Println(labelStyle.Render(fmt.Sprintf("Scan results for %s", path)))

	verdict := okStyle.Render("clean")
	if !report.Clean() {
		verdict = badStyle.Render("findings detected")
	}
	fmt.Printf("  %s %s\n", keyStyle.Render("verdict:"), verdict)
	fmt.Printf("  %s %s\n", keyStyle.Render("status:"), report.Status)

	mime := report.MimeInfo.Detected
	if report.MimeInfo.Declared != "" && !report.MimeInfo.Match {
		mime += badStyle.Render(fmt.Sprintf(" (declared %s)", report.MimeInfo.Declared))
	}
	fmt.Printf("  %s %s\n", keyStyle.Render("type:"), mime)

	if report.ClamAV.Infected {
		fmt.Printf("  %s %s\n", keyStyle.Render("malware:"), badStyle.Render(report.ClamAV.Signature))
	} else {
		fmt.Printf("  %s %s\n", keyStyle.Render("malware:"), okStyle.Render("none"))
	}

	if report.Prompt.Suspicious {
		fmt.Printf("  %s\n", keyStyle.Render("prompt injection:"))
		for _, finding := range report.Prompt.Findings {
			fmt.Printf("    - %s\n", badStyle.Render(finding))
		}
	}

	if report.Metadata.SHA256 != "" {
		fmt.Printf("  %s %s\n", keyStyle.Render("sha256:"), report.Metadata.SHA256)
	}
	if report.Metadata.Size > 0 {
		fmt.Printf("  %s %d bytes\n", keyStyle.Render("size:"), report.Metadata.Size)
	}
}
