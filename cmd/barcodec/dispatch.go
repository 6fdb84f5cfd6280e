package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/barcodec/barcodec/bar"
	"github.com/barcodec/barcodec/ddt"
	"github.com/barcodec/barcodec/internal/reveal"
	"github.com/barcodec/barcodec/sound"
)

const (
	signatureALZ4 uint32 = 0x347A6C61
	signatureL33T uint32 = 0x6C333374
)

// dispatch implements the root command's single-positional-argument
// auto-detection: a directory is archived, a file is classified by
// its leading signature and routed to the matching operation; a file
// with an unrecognised signature prints the help banner.
func dispatch(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("barcodec: %w", err)
	}

	start := time.Now()
	defer func() {
		log.Infof("done in %s", time.Since(start))
	}()

	if info.IsDir() {
		return createArchive(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("barcodec: %w", err)
	}

	switch leadingSignature(data) {
	case bar.Signature:
		return extractArchive(path)
	case ddt.Signature:
		return convertDDTToTGA(path, data)
	case sound.EncodedSignature:
		return decodeWav(path, data)
	case signatureALZ4, signatureL33T:
		log.Warnf("%s: compressed stream payload, decompression is out of scope", path)
		return nil
	default:
		log.Warnf("%s: unrecognized signature", path)
		return newRootCmd().Help()
	}
}

func leadingSignature(data []byte) uint32 {
	if len(data) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(data[:4])
}

func outputLayoutFor(path string) bar.OutputLayout {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	return bar.OutputLayout{Root: filepath.Join(dir, base+".out")}
}

func createArchive(dir string) error {
	layout := outputLayoutFor(dir)
	archive, err := bar.Create(dir, bar.VersionDE, layout)
	if err != nil {
		return err
	}
	log.Infof("created archive with %d entries", archive.FileCount)
	return reveal.Open(layout.Root)
}

func extractArchive(path string) error {
	archive, err := bar.Open(path)
	if err != nil {
		return err
	}
	layout := outputLayoutFor(path)
	if err := archive.Extract(layout, reveal.Open); err != nil {
		return err
	}
	log.Infof("extracted %d entries", len(archive.Entries))
	return nil
}

func convertDDTToTGA(path string, data []byte) error {
	texture, err := ddt.Read(data)
	if err != nil {
		return err
	}
	t, err := texture.ToTGA()
	if err != nil {
		return err
	}
	layout := outputLayoutFor(path)
	outDir := filepath.Join(layout.Root, "converted")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	outPath := filepath.Join(outDir, t.SuffixedName(path))
	if err := os.WriteFile(outPath, t.Bytes(), 0o644); err != nil {
		return err
	}
	log.Infof("wrote %s", outPath)
	return reveal.Open(layout.Root)
}

func decodeWav(path string, data []byte) error {
	decoded, err := sound.Decode(data)
	if err != nil {
		return err
	}
	layout := outputLayoutFor(path)
	outDir := filepath.Join(layout.Root, "converted")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	outPath := filepath.Join(outDir, trimExt(filepath.Base(path))+".wav")
	if err := os.WriteFile(outPath, decoded, 0o644); err != nil {
		return err
	}
	log.Infof("wrote %s", outPath)
	return reveal.Open(layout.Root)
}

func trimExt(name string) string {
	ext := filepath.Ext(name)
	return name[:len(name)-len(ext)]
}
