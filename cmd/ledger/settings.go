package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/form"
	"github.com/Veraticus/pocket-ledger/internal/model"
	"github.com/Veraticus/pocket-ledger/internal/storage"
)

func (a *app) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change preferences",
	}
	cmd.AddCommand(a.showSettingsCmd())
	cmd.AddCommand(a.setSettingsCmd())
	return cmd
}

func (a *app) showSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStorage(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				settings, err := store.GetSettings(ctx)
				if err != nil {
					return err
				}
				writeln(cmd.OutOrStdout(), cli.RenderSettings(*settings))
				return nil
			})
		},
	}
}

func (a *app) setSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the week start or theme",
		Example: `  ledger settings set --week-start monday
  ledger settings set --theme dark`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var patch model.SettingsPatch
			if raw := changedString(cmd, "week-start"); raw != nil {
				ws, err := form.ParseWeekStart(*raw)
				if err != nil {
					return common.NewUserError(capitalize(err.Error()), err)
				}
				patch.WeekStartsOn = &ws
			}
			if raw := changedString(cmd, "theme"); raw != nil {
				theme, err := form.ParseTheme(*raw)
				if err != nil {
					return common.NewUserError(capitalize(err.Error()), err)
				}
				patch.Theme = &theme
			}
			if patch.WeekStartsOn == nil && patch.Theme == nil {
				return common.NewUserError("Nothing to change; pass --week-start or --theme", nil)
			}

			return a.withStorage(cmd, func(ctx context.Context, store *storage.SQLiteStorage) error {
				settings, err := store.UpdateSettings(ctx, patch)
				if err != nil {
					return err
				}
				writeln(cmd.OutOrStdout(), cli.FormatSuccess("Settings saved"))
				writeln(cmd.OutOrStdout(), cli.RenderSettings(*settings))
				return nil
			})
		},
	}

	cmd.Flags().String("week-start", "", "sunday or monday")
	cmd.Flags().String("theme", "", "light, dark or system")

	return cmd
}
