package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopintent/backend/internal/usecase"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const (
	defaultServerURL = "http://localhost:8080"
	parsePath        = "/api/v1/intent/parse"
)

// Execute runs the root command
func Execute() error {
	// Load .env early so SHOPINTENT_SERVER_URL is available as a flag default
	_ = godotenv.Load()

	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "intentctl",
		Short:         "Talk to the shopping intent backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(
		newParseCmd(),
		newExtractCmd(),
		newVersionCmd(),
	)

	return root
}

// newParseCmd creates the parse command.
func newParseCmd() *cobra.Command {
	var (
		serverURL string
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "parse <text>",
		Short: "Send a message to a running server",
		Long: `Send a user message to POST /api/v1/intent/parse on a running server
and print the JSON response.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := &http.Client{Timeout: timeout}
			body, err := postParse(cmd.Context(), client, serverURL, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return writeIndented(cmd.OutOrStdout(), body)
		},
	}

	defaultURL := os.Getenv("SHOPINTENT_SERVER_URL")
	if defaultURL == "" {
		defaultURL = defaultServerURL
	}
	cmd.Flags().StringVar(&serverURL, "server", defaultURL, "base URL of the backend (env SHOPINTENT_SERVER_URL)")
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "request timeout")

	return cmd
}

// newExtractCmd creates the extract command.
func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <text>",
		Short: "Show the links and platforms found in a message",
		Long: `Run the URL and platform extractor locally, without contacting the server
or any upstream API.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := usecase.NewPreprocessor(nil).Extract(strings.Join(args, " "))
			body, err := json.Marshal(input)
			if err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			return writeIndented(cmd.OutOrStdout(), body)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "intentctl version %s\n", version)
		},
	}
}

func postParse(ctx context.Context, client *http.Client, serverURL, text string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{"userInput": text})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	endpoint := strings.TrimSuffix(serverURL, "/") + parsePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

func writeIndented(w io.Writer, body []byte) error {
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		return fmt.Errorf("format response: %w", err)
	}
	out.WriteByte('\n')
	_, err := w.Write(out.Bytes())
	return err
}
