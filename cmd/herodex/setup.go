package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/herodex/internal/config"
	"github.com/mmcdole/herodex/internal/domain"
	"github.com/mmcdole/herodex/internal/marvel"
	"github.com/mmcdole/herodex/internal/tui/styles"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

const verifyTimeout = 15 * time.Second

func newSetupCmd(path func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Configure Marvel API keys",
		Long: `Prompt for a Marvel API key pair, verify it against the API and
save it to the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(path())
			if err != nil {
				return err
			}
			return runSetupFlow(cmd.Context(), cfg, logger, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runSetupFlow asks for the API keys until a pair is accepted by the API
func runSetupFlow(ctx context.Context, cfg *config.Config, logger *slog.Logger, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Welcome to Herodex!")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "You need a Marvel API key pair from https://developer.marvel.com")
	fmt.Fprintln(out)

	reader := bufio.NewReader(in)

	for {
		publicKey, err := prompt(reader, out, "Public key: ")
		if err != nil {
			return err
		}
		privateKey, err := promptSecret(reader, in, out, "Private key: ")
		if err != nil {
			return err
		}

		if publicKey == "" || privateKey == "" {
			fmt.Fprintln(out, "Both keys are required. Please try again.")
			continue
		}

		fmt.Fprintln(out)
		client := marvel.NewClient(cfg.API.BaseURL, publicKey, privateKey, logger)
		client.SetTimeout(cfg.API.Timeout)

		if err := verifyWithSpinner(ctx, client, out); err != nil {
			fmt.Fprintf(out, "✗ Could not verify keys: %v\n", err)
			if errors.Is(err, domain.ErrAuthFailed) {
				fmt.Fprintln(out, "Please check the keys and try again.")
				fmt.Fprintln(out)
				continue
			}
			return err
		}

		cfg.API.PublicKey = publicKey
		cfg.API.PrivateKey = privateKey
		break
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.SuccessStyle.Render("✓ Configuration saved to "+cfg.Path()))
	return nil
}

func prompt(reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	input, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(input), nil
}

// promptSecret reads without echo when in is a terminal
func promptSecret(reader *bufio.Reader, in io.Reader, out io.Writer, label string) (string, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return prompt(reader, out, label)
	}

	fmt.Fprint(out, label)
	secret, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}

// verifyWithSpinner requests one hero with the keys while animating a spinner
func verifyWithSpinner(ctx context.Context, client domain.CatalogClient, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		_, err := client.Search(ctx, 1, 0, "")
		resultCh <- err
	}()

	frame := 0
	fmt.Fprintf(out, "\r%s Verifying keys...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Fprint(out, clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, styles.SuccessStyle.Render("✓ Keys verified"))
			return nil

		case <-ticker.C:
			frame++
			fmt.Fprintf(out, "\r%s Verifying keys...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Fprint(out, clearSpinnerLine)
			return fmt.Errorf("verification timed out")
		}
	}
}
