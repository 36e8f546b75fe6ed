// Package filestore implements the repositories interfaces with one JSON file
// per record, grouped in one directory per entity type. It is a pure keyed-blob
// layer: no auto-increment, no uniqueness enforcement beyond overwrite-by-key,
// and no coordination between concurrent writers.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/DYBInh2k5/He-Thong-Lam-Cham-Trac-Nghiem/internal/repositories"
)

const (
	dirExams       = "exams"
	dirSubmissions = "submissions"
	dirResults     = "results"
	dirUsers       = "users"
)

// Store is the shared file-per-record store. All four entity directories are
// created eagerly so the first save or load never races directory creation.
type Store struct {
	basePath string
	logger   *slog.Logger
}

// New creates the base path and the four entity directories if absent.
func New(basePath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, dir := range []string{dirExams, dirSubmissions, dirResults, dirUsers} {
		if err := os.MkdirAll(filepath.Join(basePath, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory %s: %w", dir, err)
		}
	}
	return &Store{basePath: basePath, logger: logger}, nil
}

func (s *Store) Exam() repositories.ExamRepository             { return &examFileStore{store: s} }
func (s *Store) Submission() repositories.SubmissionRepository { return &submissionFileStore{store: s} }
func (s *Store) Result() repositories.ResultRepository         { return &resultFileStore{store: s} }
func (s *Store) User() repositories.UserRepository             { return &userFileStore{store: s} }

var _ repositories.Repository = (*Store)(nil)

func (s *Store) recordPath(dir, id string) string {
	return filepath.Join(s.basePath, dir, id+".json")
}

// validRecordID rejects empty ids and anything that could escape the entity
// directory. Generated ids never trip this; adapter-supplied lookup keys can.
func validRecordID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && id != "." && id != ".."
}

// writeRecord serializes v as indented UTF-8 JSON and overwrites any existing
// record with the same id. encoding/json leaves non-ASCII text unescaped, so
// Vietnamese content is stored losslessly and stays readable on disk.
func (s *Store) writeRecord(dir, id string, v any) error {
	if !validRecordID(id) {
		return fmt.Errorf("invalid record id %q", id)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record %s/%s: %w", dir, id, err)
	}
	if err := os.WriteFile(s.recordPath(dir, id), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write record %s/%s: %w", dir, id, err)
	}
	return nil
}

// readRecord loads one record. A missing file maps to ErrNotFound; a file that
// exists but cannot be read or decoded maps to ErrCorruptRecord.
func readRecord[T any](s *Store, dir, id string) (*T, error) {
	if !validRecordID(id) {
		return nil, repositories.ErrNotFound
	}
	data, err := os.ReadFile(s.recordPath(dir, id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", repositories.ErrCorruptRecord, dir, id, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %v", repositories.ErrCorruptRecord, dir, id, err)
	}
	return &v, nil
}

// scanRecords lists every decodable record in the entity directory. Records
// that fail to decode are skipped, not fatal: listing is best-effort.
func scanRecords[T any](s *Store, dir string) ([]*T, error) {
	entries, err := os.ReadDir(filepath.Join(s.basePath, dir))
	if errors.Is(err, fs.ErrNotExist) {
		return []*T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	records := make([]*T, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		record, err := readRecord[T](s, dir, strings.TrimSuffix(name, ".json"))
		if err != nil {
			s.logger.Warn("skipping undecodable record", "dir", dir, "file", name, "error", err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// deleteRecord removes a record file, reporting ErrNotFound if it is absent.
func (s *Store) deleteRecord(dir, id string) error {
	if !validRecordID(id) {
		return repositories.ErrNotFound
	}
	err := os.Remove(s.recordPath(dir, id))
	if errors.Is(err, fs.ErrNotExist) {
		return repositories.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete record %s/%s: %w", dir, id, err)
	}
	return nil
}
