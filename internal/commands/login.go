package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/auth"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/models"
)

var providerFlag string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to celora",
	Long: `Sign in to celora.

The login is local only: no credentials are verified and nothing leaves
the machine. Social providers are simulated.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored account",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		if err := auth.NewService(st).Logout(); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&providerFlag, "provider", "email", "Sign-in provider (email, google, apple)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	svc := auth.NewService(st)

	provider := models.Provider(providerFlag)
	if !models.ValidProvider(provider) {
		return fmt.Errorf("unknown provider %q (want email, google or apple)", providerFlag)
	}

	var user models.User
	if provider == models.ProviderEmail {
		user, err = emailLogin(svc)
	} else {
		user, err = svc.LoginSocial(provider)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Welcome, %s!\n", user.Name)
	return nil
}

func emailLogin(svc *auth.Service) (models.User, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Name (optional): ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	// Read the password without echo, then discard it: the login flow
	// fabricates a local account either way.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Print("Password: ")
		_, _ = term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
	}

	return svc.Login(name, email)
}
