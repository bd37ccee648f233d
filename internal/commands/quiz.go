package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aegislabs/aegis/internal/quiz"
)

var (
	quizTopicFlag      string
	quizDifficultyFlag string
)

var quizCmd = &cobra.Command{
	Use:   "quiz [question]",
	Short: "Take a security quiz or ask a quiz-style question",
	Long: `Without arguments, runs an interactive multiple-choice quiz from the
built-in question bank. With a question argument, the question is sent
to the tutoring endpoint and the answer is streamed back.

Examples:
  aegis quiz
  aegis quiz --topic phishing --difficulty advanced
  aegis quiz "What makes a passphrase stronger than a password?"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return runQuizQuestion(args[0])
		}
		return runQuizInteractive(quizTopicFlag, quizDifficultyFlag)
	},
}

func init() {
	quizCmd.Flags().StringVarP(&quizTopicFlag, "topic", "t", "", "quiz topic (skips the topic prompt)")
	quizCmd.Flags().StringVarP(&quizDifficultyFlag, "difficulty", "d", "", "quiz difficulty (beginner, intermediate, advanced)")
}

// runQuizQuestion streams one tutoring answer from the backend.
func runQuizQuestion(question string) error {
	client, err := clientFactory()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	spin := newSpinner("Asking Aegis")
	spin.start()

	var once sync.Once
	answer, _, err := client.QuizStream(ctx, question, func(chunk string) {
		once.Do(func() { spin.stopWithSuccess("Streaming") })
	})
	if err != nil {
		spin.stopWithError()
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Quiz request failed"))
		return fmt.Errorf("quiz request failed: %w", err)
	}
	once.Do(func() { spin.stopWithSuccess("Done") })

	printAssistantMarkdown(answer)
	return nil
}

// runQuizInteractive drives quiz rounds on stdin/stdout.
func runQuizInteractive(topic, difficulty string) error {
	session := quiz.NewSession()
	reader := bufio.NewReader(os.Stdin)

	titleStyle := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	promptStyle := lipgloss.NewStyle().Foreground(colorText).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)
	okStyle := lipgloss.NewStyle().Foreground(colorSuccess)
	badStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e"))

	fmt.Println(titleStyle.Render("Aegis Security Quiz"))

	for {
		if topic == "" {
			picked, err := pickOption(reader, "Pick a topic", quiz.Topics())
			if err != nil {
				return err
			}
			if picked == "" {
				return nil
			}
			topic = picked
		}
		if difficulty == "" {
			levels := make([]string, 0, len(quiz.Difficulties()))
			for _, d := range quiz.Difficulties() {
				levels = append(levels, string(d))
			}
			picked, err := pickOption(reader, "Pick a difficulty", levels)
			if err != nil {
				return err
			}
			if picked == "" {
				return nil
			}
			difficulty = picked
		}

		session.SelectTopic(topic)
		session.SelectDifficulty(quiz.Difficulty(difficulty))
		if err := session.Start(); err != nil {
			return err
		}

		var summary *quiz.Summary
		for session.Phase() == quiz.PhaseInProgress {
			question, position, total := session.Current()

			fmt.Println()
			fmt.Println(promptStyle.Render(fmt.Sprintf("Question %d/%d: %s", position, total, question.Prompt)))
			for i, option := range question.Options {
				fmt.Printf("  %d) %s\n", i+1, option)
			}

			choice, err := readChoice(reader, len(question.Options))
			if err != nil {
				return err
			}
			if choice < 0 {
				session.Abort()
				fmt.Println(dimStyle.Render("Quiz aborted."))
				return nil
			}

			correct, done := session.Answer(choice)
			if correct {
				fmt.Println(okStyle.Render("Correct!"))
			} else {
				fmt.Println(badStyle.Render("Not quite. ") + question.Explanation)
			}
			summary = done
		}

		if summary != nil {
			sessionCorrect, sessionAsked := session.CumulativeScore()
			fmt.Println()
			fmt.Println(titleStyle.Render(fmt.Sprintf(
				"Score: %d/%d (%d%%) - %s", summary.Correct, summary.Total, summary.Percent, summary.Band)))
			if sessionAsked > summary.Total {
				fmt.Println(dimStyle.Render(fmt.Sprintf("Session total: %d/%d", sessionCorrect, sessionAsked)))
			}
		}

		fmt.Print(dimStyle.Render("Play again? [y/N] "))
		line, err := reader.ReadString('\n')
		if err != nil || !strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y") {
			return nil
		}
		topic, difficulty = "", ""
	}
}

// pickOption prints a numbered menu and reads one selection. An empty
// line or EOF cancels with an empty result.
func pickOption(reader *bufio.Reader, title string, options []string) (string, error) {
	fmt.Println()
	fmt.Println(title + ":")
	for i, option := range options {
		fmt.Printf("  %d) %s\n", i+1, option)
	}

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", nil
		}
		line = strings.TrimSpace(line)
		if line == "" || line == "q" {
			return "", nil
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		fmt.Printf("Enter a number between 1 and %d, or q to quit.\n", len(options))
	}
}

// readChoice reads a 1-based answer selection. Returns -1 on quit.
func readChoice(reader *bufio.Reader, count int) (int, error) {
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return -1, nil
		}
		line = strings.TrimSpace(line)
		if line == "q" || line == "quit" {
			return -1, nil
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= count {
			return n - 1, nil
		}
		fmt.Printf("Enter a number between 1 and %d, or q to quit.\n", count)
	}
}
