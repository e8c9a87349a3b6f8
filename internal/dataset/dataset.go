// Package dataset loads client rosters from disk into the (id, raw text)
// pairs the reconciliation engine consumes. It is the upstream collaborator
// responsible for tabular shape: locating columns, composing display names,
// and rejecting files the engine should never see. The engine itself does
// no I/O.
package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/BLewisDesDev/ADMINify/pkg/errors"
	"github.com/BLewisDesDev/ADMINify/pkg/reconcile"
)

// Column names tried, in order, when no explicit mapping is given. The
// defaults follow the client-roster exports this tool is pointed at.
var (
	defaultIDColumns    = []string{"ACN", "ID", "Id", "id"}
	defaultNameColumns  = []string{"Name", "FullName", "ClientName"}
	defaultGivenColumns = []string{"GivenName", "FirstName"}
	defaultFamilyCols   = []string{"FamilyName", "LastName", "Surname"}
)

// Options configures how a roster file is interpreted.
type Options struct {
	// IDColumn names the CSV column holding the record identifier.
	// Empty means try the default candidates.
	IDColumn string

	// NameColumn names a single CSV column holding the full name.
	// Empty means try the defaults, then fall back to composing
	// given + family name columns.
	NameColumn string
}

// Load reads a roster file and returns its records as input pairs, in file
// order. The format is chosen by extension: .csv, .json, .yaml/.yml.
func Load(path string, opts Options) ([]reconcile.Pair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return parseCSV(data, path, opts)
	case ".json":
		return parseJSON(data, path)
	case ".yaml", ".yml":
		return parseYAML(data, path)
	default:
		return nil, fmt.Errorf("%s: %w", path, errors.ErrUnsupportedFormat)
	}
}

// rosterRow is one record in a JSON or YAML roster.
type rosterRow struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

func parseJSON(data []byte, path string) ([]reconcile.Pair, error) {
	var rows []rosterRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return rowsToPairs(rows), nil
}

func parseYAML(data []byte, path string) ([]reconcile.Pair, error) {
	var rows []rosterRow
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return rowsToPairs(rows), nil
}

func rowsToPairs(rows []rosterRow) []reconcile.Pair {
	pairs := make([]reconcile.Pair, 0, len(rows))
	for i, row := range rows {
		id := row.ID
		if id == "" {
			id = fmt.Sprintf("row-%d", i+1)
		}
		pairs = append(pairs, reconcile.Pair{ID: reconcile.RecordID(id), Text: row.Name})
	}
	return pairs
}

func parseCSV(data []byte, path string, opts Options) ([]reconcile.Pair, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}
	if len(records) == 0 {
		return nil, errors.NewParseError("csv", path, "no header row", nil)
	}

	header := records[0]
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	idCol, err := resolveIDColumn(cols, opts, path)
	if err != nil {
		return nil, err
	}
	name, err := resolveNameColumns(cols, opts, path)
	if err != nil {
		return nil, err
	}

	pairs := make([]reconcile.Pair, 0, len(records)-1)
	for i, row := range records[1:] {
		id := field(row, idCol)
		if id == "" {
			id = fmt.Sprintf("row-%d", i+2)
		}
		pairs = append(pairs, reconcile.Pair{
			ID:   reconcile.RecordID(id),
			Text: name.compose(row),
		})
	}
	return pairs, nil
}

// nameSource reads a display name from a CSV row, either a single column
// or a given + family composition.
type nameSource struct {
	single int
	given  int
	family int
}

func (n nameSource) compose(row []string) string {
	if n.single >= 0 {
		return field(row, n.single)
	}
	given := field(row, n.given)
	family := field(row, n.family)
	switch {
	case given != "" && family != "":
		return given + " " + family
	case family != "":
		return family
	default:
		return given
	}
}

func resolveIDColumn(cols map[string]int, opts Options, path string) (int, error) {
	if opts.IDColumn != "" {
		if i, ok := cols[opts.IDColumn]; ok {
			return i, nil
		}
		return 0, errors.NewParseError("csv", path,
			fmt.Sprintf("id column %q not found", opts.IDColumn), nil)
	}
	for _, cand := range defaultIDColumns {
		if i, ok := cols[cand]; ok {
			return i, nil
		}
	}
	return 0, errors.NewParseError("csv", path, "no id column found", nil)
}

func resolveNameColumns(cols map[string]int, opts Options, path string) (nameSource, error) {
	if opts.NameColumn != "" {
		if i, ok := cols[opts.NameColumn]; ok {
			return nameSource{single: i, given: -1, family: -1}, nil
		}
		return nameSource{}, errors.NewParseError("csv", path,
			fmt.Sprintf("name column %q not found", opts.NameColumn), nil)
	}
	for _, cand := range defaultNameColumns {
		if i, ok := cols[cand]; ok {
			return nameSource{single: i, given: -1, family: -1}, nil
		}
	}
	// Fall back to composing given + family name columns.
	given, family := -1, -1
	for _, cand := range defaultGivenColumns {
		if i, ok := cols[cand]; ok {
			given = i
			break
		}
	}
	for _, cand := range defaultFamilyCols {
		if i, ok := cols[cand]; ok {
			family = i
			break
		}
	}
	if given < 0 && family < 0 {
		return nameSource{}, errors.NewParseError("csv", path, "no name column found", nil)
	}
	return nameSource{single: -1, given: given, family: family}, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
