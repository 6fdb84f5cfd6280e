// Command barcodec reads, writes, and converts BAR archives and their
// DDT texture / encoded-WAV payloads.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.StandardLogger()

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("panic: %v", r)
			os.Exit(1)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "barcodec [path]",
		Short: "Read, write, and convert BAR archives, DDT textures, and encoded WAV audio",
		Long: `barcodec inspects a single path and dispatches automatically:
a directory is packed into a new Definitive Edition archive; a file is
classified by its leading signature and handled accordingly (BAR
archive extraction, DDT-to-TGA conversion, WAV deobfuscation). Use the
explicit subcommands below to script a specific operation instead.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return dispatch(args[0])
		},
	}

	root.AddCommand(
		newExtractCmd(),
		newCreateCmd(),
		newDDT2TGACmd(),
		newTGA2DDTCmd(),
		newWavCmd(),
	)
	return root
}
