package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/models"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/render"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved chat sessions",
	Long:  `View and manage the locally persisted chat sessions.`,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sessions",
	RunE:  runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a session transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

var sessionsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all sessions",
	RunE:  runSessionsClear,
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsCmd.AddCommand(sessionsClearCmd)
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	sessions := st.Load().Sessions
	if len(sessions) == 0 {
		fmt.Println("No sessions found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tMESSAGES\tUPDATED")
	_, _ = fmt.Fprintln(w, "--\t-----\t--------\t-------")

	for _, s := range sessions {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			s.ID, truncateTitle(s.Title, 40), len(s.Messages), s.UpdatedAt.Format("2006-01-02 15:04"))
	}

	return w.Flush()
}

// truncateTitle shortens a title for the listing. Truncation is rune-based
// so multi-byte titles are never cut mid-character.
func truncateTitle(title string, limit int) string {
	runes := []rune(title)
	if len(runes) <= limit {
		return title
	}
	return string(runes[:limit]) + "..."
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	session, ok := st.FindSession(args[0])
	if !ok {
		return fmt.Errorf("session not found: %s", args[0])
	}

	fmt.Printf("ID: %s\n", session.ID)
	fmt.Printf("Title: %s\n", session.Title)
	fmt.Printf("Updated: %s\n", session.UpdatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Messages: %d\n\n", len(session.Messages))

	opts := render.LoadOptionsFromConfig().WithWidth(terminalWidth())
	for _, msg := range session.Messages {
		switch msg.Role {
		case models.RoleUser:
			fmt.Printf("── You ──\n%s\n", msg.Content)
			if msg.Image != "" {
				fmt.Println("[image attached]")
			}
		case models.RoleModel:
			fmt.Println("── Celora ──")
			if rendered, rerr := render.Markdown(msg.Content, opts); rerr == nil {
				fmt.Print(rendered)
			} else {
				fmt.Println(msg.Content)
			}
		}
		fmt.Println()
	}

	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	if _, ok := st.FindSession(args[0]); !ok {
		return fmt.Errorf("session not found: %s", args[0])
	}
	if err := st.DeleteSession(args[0]); err != nil {
		return err
	}

	fmt.Println("Session deleted.")
	return nil
}

func runSessionsClear(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	if err := st.ClearSessions(); err != nil {
		return err
	}

	fmt.Println("All sessions deleted.")
	return nil
}
