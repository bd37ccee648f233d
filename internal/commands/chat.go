package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aegislabs/aegis/internal/chat"
	"github.com/aegislabs/aegis/internal/history"
	"github.com/aegislabs/aegis/internal/models"
	"github.com/aegislabs/aegis/internal/tui"
)

var chatResumeFlag bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with the Aegis assistant.

The chat maintains conversation context across messages. Inside the chat,
/scan <url> runs a URL scan and /quiz starts a practice quiz.
Type 'exit', 'quit', or press Ctrl+C to end the session.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(chatResumeFlag)
	},
}

func init() {
	chatCmd.Flags().BoolVarP(&chatResumeFlag, "resume", "r", false,
		"Pick a cached conversation to resume before entering the chat")
}

func runChat(resume bool) error {
	client, err := clientFactory()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	store, err := history.DefaultStore()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}

	notifier := tui.NewNotifier()
	controller := chat.NewController(client, notifier)

	if resume {
		result, err := tui.RunHistorySelector(store)
		if err != nil {
			return fmt.Errorf("history selector failed: %w", err)
		}
		if !result.Confirmed {
			return nil
		}
		if result.Entry != nil {
			if err := resumeConversation(controller, client, result.Entry); err != nil {
				return err
			}
		}
	}

	return tui.RunChatWithController(controller, notifier, store)
}

// conversationFetcher is the slice of the API client resume needs.
type conversationFetcher interface {
	ConversationHistory(ctx context.Context, id string) ([]models.StoredMessage, error)
}

// resumeConversation seeds the controller with the persisted turns,
// preferring the backend's copy over the local cache.
func resumeConversation(controller *chat.Controller, client conversationFetcher, entry *history.Entry) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	stored, err := client.ConversationHistory(ctx, entry.Summary.ID)
	if err != nil {
		// Fall back to the cached copy when the backend is unreachable.
		stored = entry.Messages
	}

	controller.SetConversation(entry.Summary.ID, fromStored(stored))
	return nil
}

// fromStored rebuilds display messages from persisted turns.
func fromStored(stored []models.StoredMessage) []models.Message {
	var out []models.Message
	for _, s := range stored {
		switch s.Role {
		case "user":
			out = append(out, models.NewUserMessage(s.Content))
		default:
			m := models.NewAssistantPlaceholder()
			m.Content = s.Content
			m.State = models.StateDone
			out = append(out, m)
		}
	}
	return out
}
