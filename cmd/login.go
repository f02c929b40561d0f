package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/praktik-cli/praktik/pkg/validation"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// loginCmd creates a new cobra.Command for logging in to the platform.
func loginCmd() *cobra.Command {
	var register bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the platform",
		Long:  "Log in to the platform using your email and password",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			email := promptForInput("Email: ")
			password := promptForPassword("Password: ")

			if err := validation.ValidateNonEmptyString("email", email); err != nil {
				cmd.PrintErrln("Error: Email and password cannot be empty.")
				return
			}
			if err := validation.ValidateNonEmptyString("password", password); err != nil {
				cmd.PrintErrln("Error: Email and password cannot be empty.")
				return
			}

			_, cli, service := newAnonSession(ctx)

			var err error
			if register {
				err = cli.Register(ctx, email, password)
			} else {
				err = cli.Login(ctx, email, password)
			}
			if err != nil {
				printAPIError(cmd, err)
				return
			}

			// Hydrate progress right away so the snapshot flags are persisted.
			state, err := service.InitializeAuth(ctx)
			if err != nil {
				printAPIError(cmd, err)
				return
			}

			if register {
				cmd.Println("Registration was successful. Welcome!")
			} else {
				cmd.Printf("Login was successful. You have %d points.\n", state.Progress.Points)
			}
		},
	}

	cmd.Flags().BoolVarP(&register, "register", "r", false, "Create a new account instead of logging in")

	return cmd
}

// logoutCmd clears the stored session.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the stored session",
		Run: func(cmd *cobra.Command, args []string) {
			_, _, service := newAnonSession(context.Background())
			service.Logout(context.Background())
			cmd.Println("Logged out.")
		},
	}
}

// promptForInput prompts the user for input and returns the trimmed string.
func promptForInput(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println("Error: Failed to read input.")
		os.Exit(1)
	}
	return strings.TrimSpace(input)
}

// promptForPassword prompts the user for a password securely and returns the trimmed string.
func promptForPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Println("Error: Failed to read password.")
		os.Exit(1)
	}
	fmt.Println() // Print a newline for better formatting
	return strings.TrimSpace(string(password))
}
