package bar

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/barcodec/barcodec/ddt"
	"github.com/barcodec/barcodec/sound"
)

// OutputLayout fixes the three subtrees extraction and creation write
// into, all rooted at a single directory a caller chooses (typically
// next to the source archive).
type OutputLayout struct {
	Root string
}

func (o OutputLayout) extractedDir() string { return filepath.Join(o.Root, "extracted") }
func (o OutputLayout) convertedDir() string { return filepath.Join(o.Root, "converted") }
func (o OutputLayout) createdDir() string   { return filepath.Join(o.Root, "created") }

// Opener is invoked by Extract with the output root once extraction
// has finished, so a caller can reveal it in a file browser; nil skips
// the step entirely. Create does not take an Opener.
type Opener func(path string) error

// toOSPath turns a BAR wire path (backslash-separated) into an
// OS-native relative path.
func toOSPath(s string) string {
	return filepath.FromSlash(strings.ReplaceAll(s, `\`, "/"))
}

// Extract writes every entry's raw payload under layout's extracted
// tree, a tab-separated manifest alongside it, and — for payloads
// whose leading signature identifies them as an encoded WAV or a DDT
// texture — a converted counterpart (decoded WAV / TGA) under layout's
// converted tree. DDT conversion is keyed off the payload's own
// signature alone, whatever the declared EncodingClass; sound
// conversion needs both the encoded-WAV signature and
// EncodingClass == EncodingSound, so Legacy entries (always
// EncodingNone) are never sound-decoded.
func (a *Archive) Extract(layout OutputLayout, opener Opener) error {
	extractedRoot := layout.extractedDir()
	if err := writeManifest(extractedRoot, a.Entries); err != nil {
		return err
	}

	for _, e := range a.Entries {
		payload, err := a.Payload(e)
		if err != nil {
			log.WithField("entry", e.Name).WithError(err).Error("skipping entry: payload out of bounds")
			continue
		}

		relPath := filepath.Join(toOSPath(a.RootPath), toOSPath(e.Name))
		rawPath := filepath.Join(extractedRoot, relPath)
		if err := os.MkdirAll(filepath.Dir(rawPath), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(rawPath, payload, 0o644); err != nil {
			return err
		}
		log.WithField("entry", e.Name).Debug("extracted")

		sig := leadingSignature(payload)
		convertedPath := filepath.Join(layout.convertedDir(), relPath)

		if e.EncodingClass == EncodingSound && sig == sound.EncodedSignature {
			decoded, err := sound.Decode(payload)
			if err != nil {
				log.WithField("entry", e.Name).WithError(err).Warn("sound decode failed")
			} else if err := writeConverted(convertedPath, decoded); err != nil {
				return err
			}
		}

		if sig == ddt.Signature {
			if err := convertDDT(payload, convertedPath); err != nil {
				log.WithField("entry", e.Name).WithError(err).Warn("ddt conversion failed")
			}
		}
	}

	if opener != nil {
		return opener(layout.Root)
	}
	return nil
}

func convertDDT(payload []byte, convertedPath string) error {
	texture, err := ddt.Read(payload)
	if err != nil {
		return err
	}
	t, err := texture.ToTGA()
	if err != nil {
		return err
	}
	name := t.SuffixedName(convertedPath)
	return writeConverted(filepath.Join(filepath.Dir(convertedPath), name), t.Bytes())
}

func writeConverted(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
