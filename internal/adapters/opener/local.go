package opener

import (
	"context"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"

	"fivec_analysis/internal/ports"
)

// LocalOpener serves dataset files from a directory on disk, the way a
// standalone analysis session runs against CSVs next to the binary.
type LocalOpener struct{ Dir string }

func NewLocalOpener(dir string) *LocalOpener {
	if dir == "" {
		dir = "."
	}
	return &LocalOpener{Dir: dir}
}

func (l *LocalOpener) Open(_ context.Context, path string) (io.ReadCloser, ports.Meta, error) {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(l.Dir, path)
	}
	log.Printf("[OPENER][LOCAL][START] path=%q", full)
	f, err := os.Open(full)
	if err != nil {
		return nil, ports.Meta{}, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ports.Meta{}, err
	}
	return f, ports.Meta{
		Source:      "local",
		ContentType: mime.TypeByExtension(filepath.Ext(full)),
		Size:        st.Size(),
		Key:         path,
	}, nil
}

// List returns file names in the directory, for filename-based role
// detection over an unlabeled drop of datasets.
func (l *LocalOpener) List() ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
