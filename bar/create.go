package bar

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/barcodec/barcodec/internal/bcerr"
	"github.com/barcodec/barcodec/internal/binio"
)

const (
	deHeaderSize     = 304
	legacyHeaderSize = 292
)

type walkedFile struct {
	path string // absolute path on disk
	rel  string // wire-format relative path, backslash-separated
	size int64
}

// walkDirSorted collects every regular file under dir, recursively,
// sorted lexically by its wire-format relative path. A stable sort
// order isn't part of the original wire format, but it makes archive
// creation reproducible across platforms and across dialects.
func walkDirSorted(dir string) ([]walkedFile, error) {
	var files []walkedFile
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = strings.ReplaceAll(filepath.ToSlash(rel), "/", `\`)
		files = append(files, walkedFile{path: path, rel: rel, size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].rel < files[j].rel })
	return files, nil
}

// Create walks dir, builds an in-memory archive of the given dialect,
// and writes it to layout's created tree as "<basename of dir>.bar"
// alongside its manifest.
func Create(dir string, version Version, layout OutputLayout) (*Archive, error) {
	files, err := walkDirSorted(dir)
	if err != nil {
		return nil, bcerr.Wrap("bar: walk source directory", err)
	}

	var totalSize uint64
	for _, f := range files {
		totalSize += uint64(f.size)
	}

	w := binio.NewWriter()
	w.WriteUint32(Signature)
	w.WriteUint32(uint32(version))
	w.WriteUint32(Magic)
	w.WriteZeros(unk1Size)
	w.WriteZeros(4) // unk2

	fileCount := uint32(len(files))
	w.WriteUint32(fileCount)

	var filesTableOffset uint64
	if version == VersionDE {
		w.WriteZeros(4) // unk3
		filesTableOffset = totalSize + deHeaderSize
		w.WriteUint64(filesTableOffset)
	} else {
		filesTableOffset = totalSize + legacyHeaderSize
		w.WriteUint32(uint32(filesTableOffset))
	}
	w.WriteZeros(4) // unk4
	if version == VersionDE {
		w.WriteZeros(4) // unk5
	}

	startOffset := uint64(w.Len())
	encodingClasses := make([]EncodingClass, len(files))
	for i, f := range files {
		data, err := os.ReadFile(f.path)
		if err != nil {
			return nil, bcerr.Wrap("bar: read source file", err)
		}
		encodingClasses[i] = classifyPayload(data)
		w.WriteBytes(data)
	}

	rootPath := filepath.Base(dir) + `\`
	rootPathBytes := binio.EncodeUTF16LE(rootPath)
	w.WriteUint32(uint32(len(rootPathBytes) / 2))
	w.WriteBytes(rootPathBytes)
	w.WriteUint32(fileCount)

	offset := startOffset
	entries := make([]Entry, 0, len(files))
	for i, f := range files {
		size := uint32(f.size)

		if version == VersionLegacy {
			w.WriteUint32(uint32(offset))
			w.WriteZeros(4) // file_size1 placeholder
			w.WriteUint32(size)
			w.WriteZeros(16) // 8x u16 timestamp, zeroed placeholder
		} else {
			w.WriteUint64(offset)
			w.WriteZeros(4) // file_size1 placeholder
			w.WriteUint32(size)
			w.WriteUint32(size)
		}

		nameBytes := binio.EncodeUTF16LE(f.rel)
		w.WriteUint32(uint32(len(nameBytes) / 2))
		w.WriteBytes(nameBytes)
		if version == VersionDE {
			w.WriteUint32(uint32(encodingClasses[i]))
		}

		entries = append(entries, Entry{
			Offset: offset, Size1: 0, Size2: size, Size3: size,
			Name: f.rel, EncodingClass: encodingClasses[i],
		})
		offset += uint64(size)
	}

	data := w.Bytes()
	createdDir := layout.createdDir()
	if err := os.MkdirAll(createdDir, 0o755); err != nil {
		return nil, bcerr.Wrap("bar: create output dir", err)
	}

	barPath := filepath.Join(createdDir, filepath.Base(dir)+".bar")
	if err := os.WriteFile(barPath, data, 0o644); err != nil {
		return nil, bcerr.Wrap("bar: write archive", err)
	}
	log.WithField("path", barPath).WithField("entries", fileCount).Info("archive created")

	if err := writeManifest(createdDir, entries); err != nil {
		return nil, err
	}

	return &Archive{
		Version: version, FileCount: fileCount, FilesTableOffset: filesTableOffset,
		RootPath: rootPath, Entries: entries, data: data, path: barPath,
	}, nil
}
