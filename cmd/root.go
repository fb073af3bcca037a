package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nps-soundscapes/activespace/cmd/score"
	"github.com/nps-soundscapes/activespace/cmd/segment"
	"github.com/nps-soundscapes/activespace/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "activespace",
		Short: "Acoustic active space analytics for park soundscapes",
	}

	rootCmd.PersistentFlags().BoolVar(&settings.Debug, "debug", settings.Debug, "Enable debug output")

	subcommands := []*cobra.Command{
		segment.Command(settings),
		score.Command(settings),
		configCommand(settings),
	}
	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// configCommand prints the effective configuration as YAML.
func configCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := settings.DumpYAML()
			if err != nil {
				return err
			}
			cmd.Print(string(out))
			return nil
		},
	}
}
