package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/splinch/internal/config"
	"github.com/idelchi/splinch/internal/logic"
)

// NewRootCommand creates the root command.
// Flags are bound through viper, so each one can also be set as SPLINCH_<FLAG> or in the config file.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "splinch -i FILE [flags]",
		Short: "Split a file into two XOR-complementary parts, or combine them back",
		Long: `Split a file into two parts that are each indistinguishable from random noise.
XOR-ing <file>.xor1 with <file>.xor2 restores the original.

Use --combine with either part to restore the original next to it.
An existing file with the restored name is kept; a numeric suffix is added instead.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(v, cmd.Flags())
			if err != nil {
				return err
			}

			*cfg = *loaded

			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return logic.Run(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	root.Flags().StringP("input", "i", "", "Path to the input file to split or a .xor1/.xor2 file to combine")
	root.Flags().BoolP("verify", "v", false, "Verify the split files against the original after splitting")
	root.Flags().BoolP("combine", "c", false, "Combine two XOR files back into the original")
	root.Flags().
		BoolP("secure-delete", "s", false, "Securely delete the original file after splitting (overwrite with random data)")
	root.Flags().IntP("passes", "p", 1, "Number of overwrite passes for secure delete")

	root.Flags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.Flags().Bool("stats", false, "Print sizes and duration after the run")
	root.Flags().Bool("debug", false, "Enable debug logging")
	root.Flags().String("config", "", "Path to a JSONC file with default flag values")

	return root
}
