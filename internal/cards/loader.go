package cards

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/youruser/cardsheet/internal/errs"
)

// Columns every input CSV must carry. Center may be blank per row.
var Columns = []string{"type", "url", "top", "center", "bottom"}

// FindCSV picks the input file in dataDir. With name set, that file is used;
// otherwise the directory must hold exactly one .csv file.
func FindCSV(dataDir, name string) (string, error) {
	if name != "" {
		if filepath.IsAbs(name) || strings.ContainsRune(name, filepath.Separator) {
			return name, nil
		}
		return filepath.Join(dataDir, name), nil
	}
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", dataDir, err)
	}
	var found []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			found = append(found, e.Name())
		}
	}
	sort.Strings(found)
	switch len(found) {
	case 0:
		return "", fmt.Errorf("no csv files found in %s, please put a csv file in the data directory", dataDir)
	case 1:
		return filepath.Join(dataDir, found[0]), nil
	default:
		return "", fmt.Errorf("%d csv files found in %s (%s), choose one by name", len(found), dataDir, strings.Join(found, ", "))
	}
}

// LoadCardsFromDataDir loads the deck CSV chosen by FindCSV.
func LoadCardsFromDataDir(dataDir, name string) ([]Card, string, error) {
	path, err := FindCSV(dataDir, name)
	if err != nil {
		return nil, "", err
	}
	fp, err := os.Open(path)
	if err != nil {
		return nil, path, err
	}
	defer fp.Close()

	cs, err := LoadCards(fp)
	if err != nil {
		return nil, path, fmt.Errorf("loading %s: %w", path, err)
	}
	return cs, path, nil
}

// LoadCards parses a CSV deck. The delimiter (comma, semicolon or tab) is
// sniffed from the header line. Rows are validated with Validate.
func LoadCards(r io.Reader) ([]Card, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, err
	}

	cr := csv.NewReader(br)
	cr.Comma = sniffDelimiter(head)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errs.Input(errs.NoRecord, "csv", nil, err)
	}
	if len(rows) < 1 {
		return nil, errs.Input(errs.NoRecord, "csv", nil, errors.New("csv has no header"))
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	var missing []string
	for _, c := range Columns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, errs.Input(errs.NoRecord, "columns", strings.Join(missing, ","), errors.New("missing required columns"))
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	out := make([]Card, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		out = append(out, Card{
			Type:   get(row, "type"),
			URL:    get(row, "url"),
			Top:    get(row, "top"),
			Center: get(row, "center"),
			Bottom: get(row, "bottom"),
		})
	}
	if err := Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks the required fields of every record.
func Validate(cs []Card) error {
	if len(cs) == 0 {
		return errs.Input(errs.NoRecord, "records", 0, errors.New("deck has no cards"))
	}
	for i, c := range cs {
		for _, f := range []struct{ name, value string }{
			{"type", c.Type},
			{"url", c.URL},
			{"top", c.Top},
			{"bottom", c.Bottom},
		} {
			if strings.TrimSpace(f.value) == "" {
				return errs.Input(i, f.name, nil, fmt.Errorf("%s column cannot contain empty values", f.name))
			}
		}
	}
	return nil
}

func sniffDelimiter(head []byte) rune {
	line := head
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		line = head[:i]
	}
	best, bestN := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
