// Package commands provides the CLI commands for celora.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	modelFlag  string
	imageFlag  string
	outputFlag string
	fileFlag   string

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "celora [prompt]",
	Short: "Branded terminal chat for a hosted generative-AI endpoint",
	Long: `celora is a terminal chat client. Conversations are kept locally as
chat sessions; each message is forwarded with its history to the hosted
generation service.

Examples:
  celora login                      Sign in (locally, no verification)
  celora chat                       Start the interactive chat view
  celora "What is Go?"              Send a single prompt
  celora "What is this?" -i pic.png Ask about an image
  celora sessions list              List saved conversations`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("celora %s (built %s)\n", Version, BuildTime)
			return nil
		}

		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runQuery(string(data))
		}

		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runQuery(string(data))
		}

		if len(args) > 0 {
			return runQuery(args[0])
		}

		if imageFlag != "" {
			// Image with no text becomes a describe-this-image exchange.
			return runQuery("")
		}

		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "Generation model to use")
	rootCmd.Flags().StringVarP(&imageFlag, "image", "i", "", "Path to an image file to include")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save response to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read prompt from file")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(settingsCmd)
}
