package commands

import (
	"github.com/spf13/cobra"

	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/chat"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive chat view",
	Long: `Start the interactive chat view.

Messages are appended to the active session and persisted locally before
each generation call. Press ctrl+n for a fresh conversation, ctrl+y to
copy the last reply, esc to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func runChat() error {
	st, err := openStore()
	if err != nil {
		return err
	}

	user, err := requireUser(st)
	if err != nil {
		return err
	}

	gen, modelName, err := newGenerator()
	if err != nil {
		return err
	}

	ex := chat.NewExchange(st, gen)
	return tui.Run(ex, st, user, modelName)
}
