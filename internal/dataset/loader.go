package dataset

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Loader resolves dataset names to Tables. Load is fail-open: a missing or
// unreadable source degrades to an empty table so one bad dataset zeroes a
// single agent's summary instead of aborting the run. Schema problems are
// only surfaced by Verify, which the datasets command and tests call.
type Loader struct {
	dir      string
	manifest Manifest
}

// NewLoader creates a Loader over a data directory. A nil manifest falls
// back to the built-in default.
func NewLoader(dir string, manifest Manifest) *Loader {
	if manifest == nil {
		manifest = DefaultManifest()
	}
	return &Loader{dir: dir, manifest: manifest}
}

// Names returns the manifest's dataset names, sorted for stable output.
func (l *Loader) Names() []string {
	names := make([]string, 0, len(l.manifest))
	for name := range l.manifest {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load returns the named dataset. It never fails: unknown names, missing
// files, and parse errors are logged and yield an empty table.
func (l *Loader) Load(name string) Table {
	src, ok := l.manifest[name]
	if !ok {
		zap.L().Warn("dataset: unknown dataset", zap.String("name", name))
		return Table{}
	}

	path := filepath.Join(l.dir, src.File)
	t, err := l.read(path)
	if err != nil {
		if os.IsNotExist(eris.Cause(err)) {
			zap.L().Warn("dataset: file not found",
				zap.String("name", name),
				zap.String("path", path),
			)
		} else {
			zap.L().Error("dataset: load failed",
				zap.String("name", name),
				zap.String("path", path),
				zap.Error(err),
			)
		}
		return Table{}
	}
	return t
}

// Verify checks that the named dataset exists and carries its expected
// columns. Unlike Load it fails loudly, so schema drift is caught in tests
// and the datasets command rather than masked by the fail-open path.
func (l *Loader) Verify(name string) error {
	src, ok := l.manifest[name]
	if !ok {
		return eris.Errorf("dataset: unknown dataset %q", name)
	}

	path := filepath.Join(l.dir, src.File)
	t, err := l.read(path)
	if err != nil {
		return eris.Wrapf(err, "dataset: %s", name)
	}

	var missing []string
	for _, col := range src.Columns {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return eris.Errorf("dataset: %s is missing columns %s", name, strings.Join(missing, ", "))
	}
	return nil
}

func (l *Loader) read(path string) (Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return Table{}, eris.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close()

	return ReadCSV(f)
}
