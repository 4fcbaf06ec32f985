package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login USER",
		Short: "Sign in so the cart can be used",
		Long: `Sign in to the storefront. The password is read from the terminal
without echo, or from the first line of stdin when stdin is not a terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.TrimSpace(args[0])
			if username == "" {
				return errors.New("username must not be empty")
			}
			password, err := readPassword(cmd, "Password: ")
			if err != nil {
				return err
			}

			tokens, err := a.client.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if err := a.session.Save(username, tokens); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", username)
			return nil
		},
	}
}

func newSignupCommand(a *app) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "signup USER",
		Short: "Create a storefront account",
		Long: `Create an account, then sign in with pantry login. On a terminal the
password is asked for twice; otherwise it is the first line of stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.TrimSpace(args[0])
			if username == "" {
				return errors.New("username must not be empty")
			}
			if strings.TrimSpace(email) == "" {
				return errors.New("--email must not be empty")
			}
			password, err := readNewPassword(cmd)
			if err != nil {
				return err
			}
			if password == "" {
				return errors.New("password must not be empty")
			}

			if err := a.client.Signup(cmd.Context(), username, strings.TrimSpace(email), password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created account %s. Run `pantry login %s` to sign in.\n", username, username)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address for the account")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

// readNewPassword asks twice on a terminal
func readNewPassword(cmd *cobra.Command) (string, error) {
	password, err := readPassword(cmd, "Password: ")
	if err != nil || !stdinIsTerminal(cmd) {
		return password, err
	}
	confirm, err := readPassword(cmd, "Confirm password: ")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}

func stdinIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	if stdinIsTerminal(cmd) {
		f := cmd.InOrStdin().(*os.File)
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(pw), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("no password on stdin")
	}
	return strings.TrimRight(line, "\r\n"), nil
}
