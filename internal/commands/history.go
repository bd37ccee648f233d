package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aegislabs/aegis/internal/history"
	"github.com/aegislabs/aegis/internal/models"
	"github.com/aegislabs/aegis/internal/render"
)

var (
	historyExportFormat string
	historyExportOutput string
	historyLocalOnly    bool
	historyClearYes     bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage saved conversations",
	Long: `List, inspect, rename, export and delete conversations.

Conversations can be referenced by index ("1" is the most recent), by
"@last" or "@first", by a title substring, or by their full ID.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryList()
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conversations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryList()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <ref>",
	Short: "Print a conversation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryShow(args[0])
	},
}

var historyRenameCmd = &cobra.Command{
	Use:   "rename <ref> <title>",
	Short: "Rename a conversation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryRename(args[0], args[1])
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export <ref>",
	Short: "Export a conversation as markdown or JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryExport(args[0])
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <ref>",
	Short: "Remove a conversation from the local cache",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryDelete(args[0])
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached conversations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistoryClear()
	},
}

func init() {
	historyCmd.PersistentFlags().BoolVar(&historyLocalOnly, "local", false, "use the local cache only, skip the backend")
	historyExportCmd.Flags().StringVarP(&historyExportFormat, "format", "f", "markdown", "export format (markdown, json)")
	historyExportCmd.Flags().StringVarP(&historyExportOutput, "output", "o", "", "write to file instead of stdout")
	historyClearCmd.Flags().BoolVarP(&historyClearYes, "yes", "y", false, "skip the confirmation prompt")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyRenameCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)
}

func runHistoryList() error {
	store, err := history.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open history cache: %w", err)
	}

	if !historyLocalOnly {
		if err := refreshHistoryCache(store); err != nil {
			// Listing still works from the cache when the backend is down.
			fmt.Fprintf(os.Stderr, "! Could not reach the service, showing cached conversations: %v\n", err)
		}
	}

	entries, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to list conversations: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No conversations yet. Start one with 'aegis chat'.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tTITLE\tUPDATED\tID")
	for i, entry := range entries {
		title := entry.Summary.Title
		if title == "" {
			title = models.DefaultTitle
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			i+1, title, entry.Summary.UpdatedAt.Format("2006-01-02 15:04"), entry.Summary.ID)
	}
	return w.Flush()
}

// refreshHistoryCache pulls the conversation registry into the cache.
// Existing cached messages for each conversation are preserved.
func refreshHistoryCache(store *history.Store) error {
	client, err := clientFactory()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	summaries, err := client.Conversations(ctx)
	if err != nil {
		return err
	}

	for _, summary := range summaries {
		var messages []models.StoredMessage
		if cached, err := store.Get(summary.ID); err == nil {
			messages = cached.Messages
		}
		if err := store.Put(summary, messages); err != nil {
			return err
		}
	}
	return nil
}

func runHistoryShow(ref string) error {
	store, entry, err := resolveEntry(ref)
	if err != nil {
		return err
	}

	messages := entry.Messages
	if !historyLocalOnly {
		if fetched, err := fetchHistory(entry.Summary.ID); err == nil && len(fetched) > 0 {
			messages = fetched
			_ = store.Put(entry.Summary, fetched)
		}
	}

	title := entry.Summary.Title
	if title == "" {
		title = models.DefaultTitle
	}
	fmt.Println(lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render(title))
	fmt.Println()

	if len(messages) == 0 {
		fmt.Println("No cached messages for this conversation.")
		return nil
	}

	labelUser := lipgloss.NewStyle().Foreground(colorTextDim).Bold(true).Render("You")
	labelAssistant := assistantLabelStyle.Render("Aegis")
	renderOpts := render.LoadOptionsFromConfigWithWidth(getTerminalWidth() - 4)

	for _, msg := range messages {
		if msg.Role == "user" {
			fmt.Println(labelUser)
			fmt.Println(msg.Content)
		} else {
			fmt.Println(labelAssistant)
			rendered, err := render.Markdown(msg.Content, renderOpts)
			if err != nil {
				rendered = msg.Content
			}
			fmt.Print(rendered)
		}
		fmt.Println()
	}
	return nil
}

func fetchHistory(id string) ([]models.StoredMessage, error) {
	client, err := clientFactory()
	if err != nil {
		return nil, err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return client.ConversationHistory(ctx, id)
}

func runHistoryRename(ref, title string) error {
	store, entry, err := resolveEntry(ref)
	if err != nil {
		return err
	}

	if !historyLocalOnly {
		client, err := clientFactory()
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		applied, err := client.RenameConversation(ctx, entry.Summary.ID, title)
		if err != nil {
			fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Rename failed"))
			return fmt.Errorf("rename failed: %w", err)
		}
		title = applied
	}

	if err := store.SetTitle(entry.Summary.ID, title); err != nil {
		return fmt.Errorf("failed to update cache: %w", err)
	}
	printSuccess(fmt.Sprintf("Renamed to %q", title))
	return nil
}

func runHistoryExport(ref string) error {
	store, entry, err := resolveEntry(ref)
	if err != nil {
		return err
	}

	// Fill the message cache before exporting a conversation that was only
	// ever listed.
	if len(entry.Messages) == 0 && !historyLocalOnly {
		if fetched, err := fetchHistory(entry.Summary.ID); err == nil && len(fetched) > 0 {
			_ = store.Put(entry.Summary, fetched)
		}
	}

	out, err := store.Export(entry.Summary.ID, history.ExportFormat(historyExportFormat))
	if err != nil {
		return err
	}

	if historyExportOutput != "" {
		if err := os.WriteFile(historyExportOutput, []byte(out), 0o644); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}
		printSuccess(fmt.Sprintf("Exported to %s", historyExportOutput))
		return nil
	}

	fmt.Print(out)
	return nil
}

func runHistoryDelete(ref string) error {
	store, entry, err := resolveEntry(ref)
	if err != nil {
		return err
	}

	if err := store.Delete(entry.Summary.ID); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	printSuccess("Removed from local cache")
	return nil
}

func runHistoryClear() error {
	store, err := history.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open history cache: %w", err)
	}

	if !historyClearYes {
		fmt.Print("Remove all cached conversations? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	printSuccess("History cleared")
	return nil
}

// resolveEntry maps a user reference to its cached entry.
func resolveEntry(ref string) (*history.Store, *history.Entry, error) {
	store, err := history.DefaultStore()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history cache: %w", err)
	}

	id, err := history.NewResolver(store).Resolve(ref)
	if err != nil {
		return nil, nil, err
	}

	entry, err := store.Get(id)
	if err != nil {
		return nil, nil, err
	}
	return store, entry, nil
}
