package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aegislabs/aegis/internal/config"
	apierrors "github.com/aegislabs/aegis/internal/errors"
	"github.com/aegislabs/aegis/internal/models"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the Aegis service",
	Long: `Log in with your email and password. The issued access token is
stored under the config directory and attached to subsequent requests.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogin()
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new Aegis account",
	Long: `Create an account on the Aegis service. Expertise and learning style
tune how the assistant phrases its answers; both can be left empty.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRegister()
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogout()
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWhoami()
	},
}

func runLogin() error {
	reader := bufio.NewReader(os.Stdin)

	email, err := promptLine(reader, "Email")
	if err != nil {
		return err
	}
	password, err := promptPassword("Password")
	if err != nil {
		return err
	}

	client, err := clientFactory()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Login failed"))
		return fmt.Errorf("login failed: %w", err)
	}

	if err := saveSession(resp.AccessToken); err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("Logged in as %s", email))
	return nil
}

func runRegister() error {
	reader := bufio.NewReader(os.Stdin)

	username, err := promptLine(reader, "Username")
	if err != nil {
		return err
	}
	email, err := promptLine(reader, "Email")
	if err != nil {
		return err
	}
	expertise, err := promptOptional(reader, "Expertise (beginner/intermediate/advanced)")
	if err != nil {
		return err
	}
	learningStyle, err := promptOptional(reader, "Learning style (visual/textual/hands-on)")
	if err != nil {
		return err
	}
	password, err := promptPassword("Password")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	client, err := clientFactory()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := client.Register(ctx, models.RegisterRequest{
		Username:      username,
		Email:         email,
		Expertise:     expertise,
		LearningStyle: learningStyle,
		Password:      password,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Registration failed"))
		return fmt.Errorf("registration failed: %w", err)
	}

	if err := saveSession(resp.AccessToken); err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("Account created, logged in as %s", username))
	return nil
}

func runLogout() error {
	if err := config.ClearToken(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	printSuccess("Logged out")
	return nil
}

func runWhoami() error {
	token, err := config.LoadToken()
	if err != nil || token.Empty() {
		fmt.Println("Not logged in. Run 'aegis login' or 'aegis import-session'.")
		return nil
	}

	client, err := clientFactory()
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	profile, err := client.Me(ctx)
	if err != nil {
		if apierrors.IsAuthError(err) {
			// The stored token no longer works; drop it so the next
			// command starts unauthenticated.
			_ = config.ClearToken()
			fmt.Println("Session expired. Run 'aegis login' or 'aegis import-session'.")
			return nil
		}
		fmt.Fprintln(os.Stderr, formatErrorMessage(err, "Could not fetch profile"))
		return fmt.Errorf("could not fetch profile: %w", err)
	}

	keyStyle := lipgloss.NewStyle().Foreground(colorTextDim)
	fmt.Printf("%s %s\n", keyStyle.Render("username:"), profile.Username)
	fmt.Printf("%s %s\n", keyStyle.Render("email:"), profile.Email)
	if profile.Expertise != "" {
		fmt.Printf("%s %s\n", keyStyle.Render("expertise:"), profile.Expertise)
	}
	if profile.LearningStyle != "" {
		fmt.Printf("%s %s\n", keyStyle.Render("learning style:"), profile.LearningStyle)
	}
	return nil
}

// saveSession persists a freshly issued access token.
func saveSession(accessToken string) error {
	token := &config.Token{}
	token.Set(accessToken)
	if err := config.SaveToken(token); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func promptLine(reader *bufio.Reader, label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("input aborted")
		}
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
	}
}

func promptOptional(reader *bufio.Reader, label string) (string, error) {
	fmt.Printf("%s: ", label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("input aborted")
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when stdin is a terminal.
func promptPassword(label string) (string, error) {
	fmt.Printf("%s: ", label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func printSuccess(message string) {
	fmt.Println(lipgloss.NewStyle().Foreground(colorSuccess).Render("+ " + message))
}
