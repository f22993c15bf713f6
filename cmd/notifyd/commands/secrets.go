package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tyhdefu/rnotifyd/pkg/notifyd/secrets"
)

func newSecretsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secrets",
		Short: "Manage secrets stored in the OS keyring",
	}
	cmd.AddCommand(newSecretsSetCmd(), newSecretsDeleteCmd())
	return cmd
}

func newSecretsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name>",
		Short: "Store a secret in the OS keyring, prompting for its value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := readSecretValue(fmt.Sprintf("Value for %s: ", args[0]))
			if err != nil {
				return err
			}
			if err := secrets.Store(args[0], value); err != nil {
				return fmt.Errorf("storing secret: %w", err)
			}
			fmt.Printf("Stored %s in the OS keyring.\n", args[0])
			return nil
		},
	}
}

func newSecretsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a secret from the OS keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := secrets.Delete(args[0]); err != nil {
				return fmt.Errorf("deleting secret: %w", err)
			}
			fmt.Printf("Deleted %s from the OS keyring.\n", args[0])
			return nil
		},
	}
}

// readSecretValue prompts on a terminal without echoing input, falling
// back to a plain line read when stdin isn't a TTY (piped input, CI).
func readSecretValue(prompt string) (string, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading value: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading value: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
