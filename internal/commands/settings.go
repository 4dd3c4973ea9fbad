package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/models"
)

var (
	themeFlag string
	langFlag  string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change theme and language",
	RunE:  runSettings,
}

func init() {
	settingsCmd.Flags().StringVar(&themeFlag, "theme", "", "Color theme (dark, light)")
	settingsCmd.Flags().StringVar(&langFlag, "lang", "", "UI language (en, ru, uz)")
}

func runSettings(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}

	changed := false

	if themeFlag != "" {
		theme := models.Theme(themeFlag)
		if !models.ValidTheme(theme) {
			return fmt.Errorf("unknown theme %q (want dark or light)", themeFlag)
		}
		if err := st.SaveTheme(theme); err != nil {
			return err
		}
		changed = true
	}

	if langFlag != "" {
		lang := models.Language(langFlag)
		if !models.ValidLanguage(lang) {
			return fmt.Errorf("unknown language %q (want en, ru or uz)", langFlag)
		}
		if err := st.SaveLanguage(lang); err != nil {
			return err
		}
		changed = true
	}

	state := st.Load()
	if changed {
		fmt.Println("Settings updated.")
	}
	fmt.Printf("Theme:    %s\n", state.Theme)
	fmt.Printf("Language: %s\n", state.Language)
	return nil
}
