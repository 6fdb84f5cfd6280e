package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/barcodec/barcodec/bar"
	"github.com/barcodec/barcodec/ddt"
	"github.com/barcodec/barcodec/internal/reveal"
	"github.com/barcodec/barcodec/sound"
	"github.com/spf13/cobra"
)

func timed(action func() error) error {
	start := time.Now()
	err := action()
	log.Infof("finished in %s", time.Since(start))
	return err
}

func newExtractCmd() *cobra.Command {
	var outRoot string
	cmd := &cobra.Command{
		Use:   "extract <archive.bar>",
		Short: "Extract a BAR archive's entries, converting DDT/WAV payloads along the way",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return timed(func() error {
				archive, err := bar.Open(args[0])
				if err != nil {
					return err
				}
				layout := resolveLayout(args[0], outRoot)
				if err := archive.Extract(layout, reveal.Open); err != nil {
					return err
				}
				log.Infof("extracted %d entries to %s", len(archive.Entries), layout.Root)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&outRoot, "out", "", "output root (default: <archive>.out next to the archive)")
	return cmd
}

func newCreateCmd() *cobra.Command {
	var outRoot string
	var legacy bool
	cmd := &cobra.Command{
		Use:   "create <directory>",
		Short: "Build a BAR archive from a directory tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return timed(func() error {
				version := bar.VersionDE
				if legacy {
					version = bar.VersionLegacy
				}
				layout := resolveLayout(args[0], outRoot)
				archive, err := bar.Create(args[0], version, layout)
				if err != nil {
					return err
				}
				log.Infof("created archive with %d entries in %s", archive.FileCount, layout.Root)
				return reveal.Open(layout.Root)
			})
		},
	}
	cmd.Flags().StringVar(&outRoot, "out", "", "output root (default: <directory>.out next to the source)")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "write the Legacy (v2) dialect instead of Definitive Edition (v6)")
	return cmd
}

func newDDT2TGACmd() *cobra.Command {
	var outRoot string
	cmd := &cobra.Command{
		Use:   "ddt2tga <texture.ddt>",
		Short: "Decode a DDT texture to its TGA carrier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return timed(func() error {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				texture, err := ddt.Read(data)
				if err != nil {
					return err
				}
				t, err := texture.ToTGA()
				if err != nil {
					return err
				}
				layout := resolveLayout(args[0], outRoot)
				outDir := filepath.Join(layout.Root, "converted")
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}
				outPath := filepath.Join(outDir, t.SuffixedName(args[0]))
				if err := os.WriteFile(outPath, t.Bytes(), 0o644); err != nil {
					return err
				}
				log.Infof("wrote %s", outPath)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&outRoot, "out", "", "output root (default: <texture>.out next to the source)")
	return cmd
}

func newTGA2DDTCmd() *cobra.Command {
	var outRoot string
	cmd := &cobra.Command{
		Use:   "tga2ddt <texture.(u,a,f,m).tga>",
		Short: "Re-encode a TGA carrier back into a DDT texture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return timed(func() error {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				texture, err := ddt.FromTGA(args[0], data)
				if err != nil {
					return err
				}
				layout := resolveLayout(args[0], outRoot)
				outDir := filepath.Join(layout.Root, "converted")
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}
				name := trimExt(filepath.Base(args[0])) + ".ddt"
				outPath := filepath.Join(outDir, name)
				if err := os.WriteFile(outPath, texture.Bytes(), 0o644); err != nil {
					return err
				}
				log.Infof("wrote %s", outPath)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&outRoot, "out", "", "output root (default: <texture>.out next to the source)")
	return cmd
}

func newWavCmd() *cobra.Command {
	var outRoot string
	cmd := &cobra.Command{
		Use:   "wav <encoded.bin>",
		Short: "Deobfuscate an encoded WAV payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return timed(func() error {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				decoded, err := sound.Decode(data)
				if err != nil {
					return err
				}
				layout := resolveLayout(args[0], outRoot)
				outDir := filepath.Join(layout.Root, "converted")
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return err
				}
				outPath := filepath.Join(outDir, trimExt(filepath.Base(args[0]))+".wav")
				if err := os.WriteFile(outPath, decoded, 0o644); err != nil {
					return err
				}
				log.Infof("wrote %s", outPath)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&outRoot, "out", "", "output root (default: <file>.out next to the source)")
	return cmd
}

func resolveLayout(path, outRoot string) bar.OutputLayout {
	if outRoot != "" {
		return bar.OutputLayout{Root: outRoot}
	}
	return outputLayoutFor(path)
}
