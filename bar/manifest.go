package bar

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/barcodec/barcodec/internal/bcerr"
)

const manifestName = "__entries.csv"

// writeManifest writes a tab-separated `#, file_name, file_size`
// listing of entries into dir/__entries.csv.
func writeManifest(dir string, entries []Entry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return bcerr.Wrap("bar: create manifest dir", err)
	}

	f, err := os.Create(filepath.Join(dir, manifestName))
	if err != nil {
		return bcerr.Wrap("bar: create manifest", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write([]string{"#", "file_name", "file_size"}); err != nil {
		return bcerr.Wrap("bar: write manifest header", err)
	}
	for i, e := range entries {
		row := []string{
			strconv.Itoa(i + 1),
			e.Name,
			strconv.FormatUint(uint64(e.Size2), 10),
		}
		if err := w.Write(row); err != nil {
			return bcerr.Wrap("bar: write manifest row", err)
		}
	}
	w.Flush()
	return w.Error()
}
