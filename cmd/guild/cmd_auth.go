package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"guild/internal/api"
)

var (
	loginEmail    string
	loginPassword string

	registerName  string
	registerEmail string
	registerTitle string
)

// loginCmd exchanges credentials for a bearer token and persists it.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store a session token",
	Long: `Authenticates against the guild service and stores the bearer token
under the config directory. Subsequent commands and the dashboard reuse
the stored token until it expires or you run 'guild logout'.

Credentials can be passed as flags or entered interactively; the
password prompt never echoes.`,
	RunE: runLogin,
}

// registerCmd creates a new account.
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new guild account",
	RunE:  runRegister,
}

// logoutCmd drops the stored session.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session token",
	RunE:  runLogout,
}

// whoamiCmd prints the current session user.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (prompted if omitted)")

	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerTitle, "title", "", "Professional title")
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	email := loginEmail
	if email == "" {
		var err error
		email, err = promptLine("Email: ")
		if err != nil {
			return err
		}
	}
	password := loginPassword
	if password == "" {
		var err error
		password, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	token, err := store.Client().Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			return fmt.Errorf("invalid email or password")
		}
		return fmt.Errorf("login: %s", api.Detail(err))
	}
	if err := store.Login(ctx, token); err != nil {
		return fmt.Errorf("establish session: %w", err)
	}

	user := store.User()
	fmt.Printf("Logged in as %s (%s).\n", user.Name, user.Role)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	name := registerName
	email := registerEmail
	var err error
	if name == "" {
		if name, err = promptLine("Name: "); err != nil {
			return err
		}
	}
	if email == "" {
		if email, err = promptLine("Email: "); err != nil {
			return err
		}
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	user, err := store.Client().Register(ctx, api.RegisterPayload{
		Email:    email,
		Password: password,
		Name:     name,
		Title:    registerTitle,
	})
	if err != nil {
		return fmt.Errorf("register: %s", api.Detail(err))
	}

	fmt.Printf("Account created for %s. Run 'guild login' to start a session.\n", user.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	store.Logout()
	fmt.Printf("Logged out. Removed %s.\n", tokenAbsPath())
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	if err := requireSession(cmd); err != nil {
		return err
	}
	user := store.User()
	fmt.Printf("%s <%s>\nRole: %s\n", user.Name, user.Email, user.Role)
	if len(user.Skills) > 0 {
		var skills []string
		for _, s := range user.Skills {
			skills = append(skills, fmt.Sprintf("%s (%s)", s.Skill.Name, s.Proficiency))
		}
		fmt.Printf("Skills: %s\n", strings.Join(skills, ", "))
	}
	return nil
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(prompt string) (string, error) {
	// No-echo read needs a terminal; piped stdin falls back to a plain
	// line read so scripted logins keep working.
	if !term.IsTerminal(int(syscall.Stdin)) {
		return promptLine(prompt)
	}
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
