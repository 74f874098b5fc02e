package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/research-hub/internal/model"
)

func init() {
	setCmd := &cobra.Command{
		Use:   "settings",
		Short: "Squads, countries, researchers and API keys",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Run:   runSettingsShow,
	}

	saveCmd := &cobra.Command{
		Use:   "save <file>",
		Short: "Replace the settings from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		Run:   runSettingsSave,
	}

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Run:   runSettingsReset,
	}

	keyCmd := &cobra.Command{
		Use:   "api-key <key>",
		Short: "Store the Gemini API key",
		Args:  cobra.ExactArgs(1),
		Run:   runSettingsAPIKey,
	}

	setCmd.AddCommand(showCmd, saveCmd, resetCmd, keyCmd)
	RootCmd.AddCommand(setCmd)
}

// masked hides all but the last four characters of a secret.
func masked(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

func runSettingsShow(cmd *cobra.Command, args []string) {
	a := mustOpen(cmd)
	defer a.Close()

	ctx := cmd.Context()
	s := a.settings.Load(ctx)
	s.GeminiAPIKey = masked(a.settings.GeminiKey(ctx))
	s.GooglePickerAPIKey = masked(s.GooglePickerAPIKey)

	out(s, func(w io.Writer) {
		fmt.Fprintf(w, "GBA squads:      %s\n", strings.Join(a.settings.GBASquads(ctx), ", "))
		fmt.Fprintf(w, "External squads: %s\n", strings.Join(a.settings.ExternalSquads(ctx), ", "))
		var countries []string
		for _, c := range s.Countries {
			countries = append(countries, strings.TrimSpace(c.Flag+" "+c.Name))
		}
		fmt.Fprintf(w, "Countries:       %s\n", strings.Join(countries, ", "))
		fmt.Fprintf(w, "Researchers:     %s\n", strings.Join(s.Researchers, ", "))
		fmt.Fprintf(w, "Methodologies:   %s\n", strings.Join(s.Methodologies, ", "))
		fmt.Fprintf(w, "Gemini API key:  %s\n", s.GeminiAPIKey)
		if pc := a.settings.PickerConfig(ctx); pc != nil {
			fmt.Fprintf(w, "Drive picker:    %s\n", pc.ClientID)
		} else {
			fmt.Fprintln(w, "Drive picker:    not configured")
		}
	})
}

func runSettingsSave(cmd *cobra.Command, args []string) {
	b, err := os.ReadFile(args[0])
	if err != nil {
		exitErr("read "+args[0], err)
	}
	var s model.Settings
	switch strings.ToLower(filepath.Ext(args[0])) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &s)
	default:
		err = json.Unmarshal(b, &s)
	}
	if err != nil {
		exitErr("parse settings", err)
	}

	a := mustOpen(cmd)
	defer a.Close()
	a.requireEditor()

	if !a.settings.Save(cmd.Context(), s) {
		exitErr("settings save", fmt.Errorf("could not persist settings (see log)"))
	}
	ok(map[string]any{"saved": args[0]})
}

func runSettingsReset(cmd *cobra.Command, args []string) {
	a := mustOpen(cmd)
	defer a.Close()
	a.requireEditor()

	s := a.settings.Reset(cmd.Context())
	out(s, nil)
}

func runSettingsAPIKey(cmd *cobra.Command, args []string) {
	a := mustOpen(cmd)
	defer a.Close()
	a.requireEditor()

	if !a.settings.SetAPIKey(cmd.Context(), args[0]) {
		exitErr("settings api-key", fmt.Errorf("could not persist key (see log)"))
	}
	ok(map[string]any{"gemini_api_key": masked(strings.TrimSpace(args[0]))})
}
