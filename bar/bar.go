// Package bar implements the two-dialect BAR archive container: a
// fixed header, a table of contents located via a trailing offset, and
// an ordered list of entries each carrying a payload offset/size and a
// UTF-16LE relative name.
package bar

import (
	"fmt"
	"os"

	"github.com/barcodec/barcodec/internal/bcerr"
	"github.com/barcodec/barcodec/internal/binio"
	"github.com/barcodec/barcodec/sound"
	"github.com/sirupsen/logrus"
)

// Version identifies which of the two on-wire dialects an archive
// uses; the dialects share one logical schema but differ in field
// widths and which fields exist at all.
type Version uint32

const (
	VersionLegacy Version = 2
	VersionDE     Version = 6
)

// EncodingClass classifies a DE entry's payload; Legacy archives never
// declare one and are always treated as None.
type EncodingClass uint32

const (
	EncodingNone             EncodingClass = 0
	EncodingCompressedStream EncodingClass = 1
	EncodingSound            EncodingClass = 2
)

const (
	// Signature is the archive magic, the ASCII-like bytes "ESPN"
	// read as a little-endian u32.
	Signature uint32 = 0x4E505345
	// Magic is the fixed secondary magic every dialect carries right
	// after the version field.
	Magic uint32 = 0x44332211

	signatureALZ4 uint32 = 0x347A6C61
	signatureL33T uint32 = 0x6C333374
)

const (
	unk1Size = 264 // fixed zero region between the magic and unk2
)

// Entry is one TOC record: where its payload lives, its declared and
// on-disk sizes, its name, and (DE only) its encoding classification.
type Entry struct {
	Offset uint64
	Size1  uint32 // declared uncompressed size
	Size2  uint32 // on-disk size
	Size3  uint32 // DE duplicate of Size2

	// Timestamp holds the Legacy-only 8xu16 fields in wire order:
	// year, month, day-of-week, day, hour, minute, second, msecond.
	Timestamp [8]uint16

	Name          string
	EncodingClass EncodingClass
}

// Archive is a fully parsed (or freshly built) BAR container. A
// parsed Archive keeps the whole file's bytes in memory so entry
// payloads can be sliced out on demand without re-opening the file.
type Archive struct {
	Version          Version
	FileCount        uint32
	FilesTableOffset uint64
	RootPath         string
	Entries          []Entry

	data []byte
	path string
}

// Open reads and parses a BAR archive from disk.
func Open(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, bcerr.ErrBarNotFound
		}
		return nil, bcerr.Wrap("bar: open", err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*Archive, error) {
	r := binio.NewReader(data)

	signature := r.ReadUint32()
	if r.Err() != nil {
		return nil, bcerr.Wrap("bar: read signature", r.Err())
	}
	if signature != Signature {
		return nil, bcerr.ErrNotValidBarSignature
	}

	version := Version(r.ReadUint32())
	if version != VersionLegacy && version != VersionDE {
		return nil, bcerr.ErrUnsupportedBarVersion
	}

	magic := r.ReadUint32()
	if r.Err() != nil {
		return nil, bcerr.Wrap("bar: read magic", r.Err())
	}
	if magic != Magic {
		return nil, bcerr.ErrNotValidBarMagic
	}

	r.ReadBytes(unk1Size) // fixed zero region
	r.ReadUint32()         // unk2, reserved

	fileCount := r.ReadUint32()

	var filesTableOffset uint64
	if version == VersionLegacy {
		filesTableOffset = uint64(r.ReadUint32())
	} else {
		r.ReadUint32() // unk3, reserved
		filesTableOffset = r.ReadUint64()
	}
	r.ReadUint32() // unk4, reserved
	if version == VersionDE {
		r.ReadUint32() // unk5, reserved
	}
	if r.Err() != nil {
		return nil, bcerr.Wrap("bar: read header", r.Err())
	}

	r.Seek(int64(filesTableOffset))
	rootPathLen := r.ReadUint32()
	rootPathBytes := r.ReadBytes(int(rootPathLen) * 2)
	rootFileCount := r.ReadUint32()
	if r.Err() != nil {
		return nil, bcerr.Wrap("bar: read toc header", r.Err())
	}
	if fileCount != rootFileCount {
		return nil, bcerr.ErrEntryCountMismatch
	}

	rootPath, err := binio.DecodeUTF16LE(rootPathBytes)
	if err != nil {
		return nil, bcerr.Wrap("bar: decode root path", err)
	}

	entries := make([]Entry, 0, rootFileCount)
	for i := uint32(0); i < rootFileCount; i++ {
		var offset uint64
		if version == VersionLegacy {
			offset = uint64(r.ReadUint32())
		} else {
			offset = r.ReadUint64()
		}
		size1 := r.ReadUint32()
		size2 := r.ReadUint32()

		var size3 uint32
		var timestamp [8]uint16
		if version == VersionDE {
			size3 = r.ReadUint32()
		} else {
			for k := range timestamp {
				timestamp[k] = r.ReadUint16()
			}
		}

		nameLen := r.ReadUint32()
		nameBytes := r.ReadBytes(int(nameLen) * 2)

		var encodingClass EncodingClass
		if version == VersionDE {
			encodingClass = EncodingClass(r.ReadUint32())
		}
		if r.Err() != nil {
			return nil, bcerr.Wrap("bar: read entry", r.Err())
		}

		name, err := binio.DecodeUTF16LE(nameBytes)
		if err != nil {
			return nil, bcerr.Wrap("bar: decode entry name", err)
		}

		entries = append(entries, Entry{
			Offset: offset, Size1: size1, Size2: size2, Size3: size3,
			Timestamp: timestamp, Name: name, EncodingClass: encodingClass,
		})
	}

	return &Archive{
		Version: version, FileCount: fileCount, FilesTableOffset: filesTableOffset,
		RootPath: rootPath, Entries: entries, data: data, path: path,
	}, nil
}

// Payload returns entry's raw on-disk bytes, sliced out of the
// in-memory archive buffer.
func (a *Archive) Payload(e Entry) ([]byte, error) {
	end := e.Offset + uint64(e.Size2)
	if end > uint64(len(a.data)) || e.Offset > end {
		return nil, fmt.Errorf("bar: entry %q payload out of bounds", e.Name)
	}
	return a.data[e.Offset:end], nil
}

func classifyPayload(data []byte) EncodingClass {
	sig := leadingSignature(data)
	switch sig {
	case signatureALZ4, signatureL33T:
		return EncodingCompressedStream
	case sound.EncodedSignature:
		return EncodingSound
	default:
		return EncodingNone
	}
}

func leadingSignature(data []byte) uint32 {
	if len(data) < 4 {
		return 0
	}
	return uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
}

var log = logrus.WithField("pkg", "bar")
