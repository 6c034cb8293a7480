package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or reset stored preferences",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the stored preferences",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				s := app.Prefs.Load(ctx)
				out := cmd.OutOrStdout()

				if s.Location != nil {
					fmt.Fprintf(out, "Location:   %s (%.2f, %.2f)\n", s.Location.City, s.Location.Lat, s.Location.Lon)
				} else {
					fmt.Fprintln(out, "Location:   not set")
				}
				if s.Birthday != nil {
					fmt.Fprintf(out, "Birthday:   %02d/%02d/%04d\n", s.Birthday.Day, s.Birthday.Month, s.Birthday.Year)
				} else {
					fmt.Fprintln(out, "Birthday:   not set")
				}
				fmt.Fprintf(out, "Unit:       %s\n", s.TemperatureUnit)
				fmt.Fprintf(out, "Theme:      %s\n", s.Theme)
				fmt.Fprintf(out, "Sound:      %s\n", onOffWord(s.SoundEnabled))
				fmt.Fprintf(out, "Scanlines:  %s\n", onOffWord(s.ScanlinesEnabled))

				if tm := app.Prefs.TimeMachine(ctx); tm.Active {
					fmt.Fprintf(out, "Time machine: %s\n", tm.Date.Format("2006-01-02"))
				} else {
					fmt.Fprintln(out, "Time machine: off")
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore the default preferences",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Prefs.Reset(cmd.Context()); err != nil {
					return fmt.Errorf("reset settings: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Settings restored to defaults")
				return nil
			},
		},
		newTimeMachineCmd(app),
	)

	return cmd
}

func newTimeMachineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timemachine [date|off]",
		Short: "Set or clear the time machine date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if args[0] == "off" {
				if err := app.Prefs.ClearTimeMachine(ctx); err != nil {
					return fmt.Errorf("clear time machine: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Time machine off")
				return nil
			}
			d, err := time.Parse("2006-01-02", args[0])
			if err != nil {
				return fmt.Errorf("parse date %q: expected YYYY-MM-DD", args[0])
			}
			if err := app.Prefs.SetTimeMachine(ctx, d); err != nil {
				return fmt.Errorf("set time machine: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Time machine set to %s\n", d.Format("2006-01-02"))
			return nil
		},
	}
	return cmd
}

func onOffWord(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
