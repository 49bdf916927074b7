package render

import (
	"archive/zip"
	"os"
	"sort"

	"github.com/rotisserie/eris"
)

// WriteArchive writes the named artifacts into a ZIP at path. Entries are
// written in sorted name order so the archive is reproducible.
func WriteArchive(path string, artifacts map[string][]byte) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "archive: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := zip.NewWriter(f)

	names := make([]string, 0, len(artifacts))
	for name := range artifacts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry, err := w.Create(name)
		if err != nil {
			return eris.Wrapf(err, "archive: create entry %s", name)
		}
		if _, err := entry.Write(artifacts[name]); err != nil {
			return eris.Wrapf(err, "archive: write entry %s", name)
		}
	}

	if err := w.Close(); err != nil {
		return eris.Wrap(err, "archive: finalize")
	}

	return nil
}
