// JSONL interchange: a plain-text dump and restore of the five relations,
// one file per table, one JSON object per line. Useful for inspection,
// version control, and moving a workspace between machines.
package sqlite

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// exportTables maps JSONL filenames to tables and column lists. Order
// matters on import: tables with foreign keys load after their referenced
// tables.
var exportTables = []struct {
	file    string
	table   string
	columns []string
}{
	{"databases.jsonl", "databases", []string{"id", "title", "icon", "cover_url", "parent_page_id", "created_at", "updated_at"}},
	{"pages.jsonl", "pages", []string{"id", "parent_id", "parent_type", "title", "icon", "cover_image", "content", "is_archived", "is_favorite", "created_at", "updated_at"}},
	{"database_properties.jsonl", "database_properties", []string{"id", "database_id", "name", "type", "config", "order_index", "visible", "created_at"}},
	{"database_views.jsonl", "database_views", []string{"id", "database_id", "name", "type", "config", "order_index", "created_at"}},
	{"page_properties.jsonl", "page_properties", []string{"id", "page_id", "property_id", "value"}},
}

// ExportJSONL dumps every table to dir as JSONL, one file per table, using
// an atomic temp-file, fsync, rename write per file.
func (s *Store) ExportJSONL(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range exportTables {
		records, err := s.dumpTable(t.table, t.columns)
		if err != nil {
			return fmt.Errorf("dumping %s: %w", t.table, err)
		}
		if err := writeJSONL(filepath.Join(dir, t.file), records); err != nil {
			return fmt.Errorf("writing %s: %w", t.file, err)
		}
	}
	return nil
}

// dumpTable reads all rows of a table into JSONL records, ordered by rowid
// so export output is stable.
func (s *Store) dumpTable(table string, columns []string) ([]json.RawMessage, error) {
	query := "SELECT " + strings.Join(columns, ", ") + " FROM " + table + " ORDER BY rowid ASC"
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		rec := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				rec[col] = string(b)
			} else {
				rec[col] = values[i]
			}
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s row: %w", table, err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", table, err)
	}
	return records, nil
}

// ImportJSONL loads JSONL files from dir into the store inside one
// transaction: all tables load or none do. Missing files are skipped;
// malformed lines are skipped; unknown fields in a record are ignored.
// Tables load in dependency order so foreign keys hold throughout.
func (s *Store) ImportJSONL(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback()

	for _, t := range exportTables {
		records, err := readJSONL(filepath.Join(dir, t.file))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("reading %s: %w", t.file, err)
		}
		if len(records) == 0 {
			continue
		}
		if err := insertRecords(tx, t.table, t.columns, records); err != nil {
			return fmt.Errorf("loading %s into %s: %w", t.file, t.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	return nil
}

// insertRecords inserts parsed JSONL records into a table. Only the listed
// columns are extracted; extra fields from newer generations do not cause
// errors.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) error {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}
		args := make([]any, len(columns))
		for i, col := range columns {
			val, ok := obj[col]
			if !ok {
				args[i] = nil
				continue
			}
			switch v := val.(type) {
			case map[string]any, []any:
				// Nested JSON (config, content, value) is re-serialized to
				// its stored text form.
				b, err := json.Marshal(v)
				if err != nil {
					args[i] = nil
					continue
				}
				args[i] = string(b)
			default:
				args[i] = v
			}
		}
		if _, err := tx.Exec(insertSQL, args...); err != nil {
			return fmt.Errorf("inserting into %s: %w", table, err)
		}
	}
	return nil
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line.
// Malformed lines are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the
// temp-file, fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
