package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/lightpack/internal/db"
	"github.com/ziadkadry99/lightpack/internal/theme"
)

var themeClient string

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Inspect or change a stored theme preference",
}

func init() {
	themeCmd.PersistentFlags().StringVar(&themeClient, "client", "", "client id (the lightpack_client cookie value)")
	themeCmd.MarkPersistentFlagRequired("client")

	themeCmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the stored theme",
		Args:  cobra.NoArgs,
		RunE: withThemeStore(func(ctx context.Context, s theme.Store) error {
			v, err := s.Get(ctx, themeClient)
			if err != nil {
				return err
			}
			fmt.Println(displayTheme(v))
			return nil
		}),
	})
	themeCmd.AddCommand(&cobra.Command{
		Use:   "set <theme>",
		Short: "Store a theme (theme-dark, anything else clears it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withThemeStore(func(ctx context.Context, s theme.Store) error {
				return s.Set(ctx, themeClient, args[0])
			})(cmd, args)
		},
	})
	themeCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove the stored theme",
		Args:  cobra.NoArgs,
		RunE: withThemeStore(func(ctx context.Context, s theme.Store) error {
			return s.Clear(ctx, themeClient)
		}),
	})
	themeCmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between dark and light",
		Args:  cobra.NoArgs,
		RunE: withThemeStore(func(ctx context.Context, s theme.Store) error {
			v, err := theme.Toggle(ctx, s, themeClient)
			if err != nil {
				return err
			}
			fmt.Println(displayTheme(v))
			return nil
		}),
	})

	rootCmd.AddCommand(themeCmd)
}

// withThemeStore opens the configured database for the duration of fn.
func withThemeStore(fn func(context.Context, theme.Store) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		return fn(cmd.Context(), theme.NewSQLStore(database))
	}
}

func displayTheme(v string) string {
	if v == "" {
		return "light"
	}
	return v
}
