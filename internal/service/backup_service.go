package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"gugudan/internal/repository"
	"gugudan/internal/store"
	"gugudan/internal/validation"
)

// BackupVersion is written into every export
const BackupVersion = "1.0"

// BackupData represents the complete backup structure
type BackupData struct {
	Version    string                     `json:"version"`
	ExportedAt time.Time                  `json:"exported_at"`
	Records    map[string]json.RawMessage `json:"records"`
}

// bulkSetter is implemented by stores that can write many keys atomically
type bulkSetter interface {
	SetAll(ctx context.Context, values map[string][]byte) error
}

// recordCheck validates the raw record stored under each key
var recordCheck = map[string]func([]byte) error{
	repository.KeySettings:      func(raw []byte) error { _, err := validation.Settings(raw); return err },
	repository.KeyLastResult:    func(raw []byte) error { _, err := validation.Result(raw); return err },
	repository.KeyRecentResults: func(raw []byte) error { _, err := validation.Results(raw); return err },
	repository.KeyItemStats:     func(raw []byte) error { _, err := validation.ItemStats(raw); return err },
	repository.KeyRewards:       func(raw []byte) error { _, err := validation.RewardState(raw); return err },
	repository.KeyActiveSession: func(raw []byte) error { _, err := validation.QuizSession(raw); return err },
	repository.KeyDaily:         func(raw []byte) error { _, err := validation.DailyStats(raw); return err },
}

// BackupService handles backup and restore of every stored record
type BackupService struct {
	store store.Store
	now   func() time.Time
}

// NewBackupService creates a new backup service
func NewBackupService(s store.Store) *BackupService {
	return &BackupService{store: s, now: time.Now}
}

// Export writes a backup to a file
func (s *BackupService) Export(ctx context.Context, outputPath string) error {
	log.Println("Starting export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(ctx, file); err != nil {
		return err
	}
	log.Printf("Exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter writes a backup of every present record to w
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) error {
	backup := &BackupData{
		Version:    BackupVersion,
		ExportedAt: s.now(),
		Records:    make(map[string]json.RawMessage),
	}

	for _, key := range repository.AllKeys {
		raw, err := s.store.Get(ctx, key)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to export %s: %w", key, err)
		}
		if !json.Valid(raw) {
			log.Printf("Skipping corrupt record %s", key)
			continue
		}
		backup.Records[key] = json.RawMessage(raw)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	log.Printf("Exported %d records", len(backup.Records))
	return nil
}

// Import restores a backup from a file
func (s *BackupService) Import(ctx context.Context, inputPath string, clear bool) error {
	log.Printf("Starting import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(ctx, file, clear)
}

// ImportFromReader restores a backup. Unknown keys and records that fail
// validation are skipped. With clear set, every owned key is deleted first.
func (s *BackupService) ImportFromReader(ctx context.Context, r io.Reader, clear bool) error {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	values := make(map[string][]byte, len(backup.Records))
	for key, raw := range backup.Records {
		check, known := recordCheck[key]
		if !known {
			log.Printf("Skipping unknown key %s", key)
			continue
		}
		if err := check(raw); err != nil {
			log.Printf("Skipping invalid record %s: %v", key, err)
			continue
		}
		values[key] = raw
	}

	if clear {
		for _, key := range repository.AllKeys {
			if err := s.store.Delete(ctx, key); err != nil {
				return fmt.Errorf("failed to clear %s: %w", key, err)
			}
		}
	}

	if bulk, ok := s.store.(bulkSetter); ok {
		if err := bulk.SetAll(ctx, values); err != nil {
			return fmt.Errorf("failed to import records: %w", err)
		}
	} else {
		for key, raw := range values {
			if err := s.store.Set(ctx, key, raw); err != nil {
				return fmt.Errorf("failed to import %s: %w", key, err)
			}
		}
	}

	log.Printf("Import completed successfully: %d records", len(values))
	return nil
}
