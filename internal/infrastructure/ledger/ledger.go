// Package ledger persists generation history, the free-credit counter and
// user credentials in a local sqlite database. It is the source of truth
// across sessions; there is no in-memory cache layer.
//
// Reads fail soft by contract: stored state predates the current session,
// and a malformed value must degrade to an empty/default result instead
// of stranding the user on startup.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	domain "thumbforge/internal/domain/thumbnail"
	"thumbforge/internal/utils/platformerrors"
)

// Ledger is the sqlite-backed implementation of the domain Ledger.
type Ledger struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open opens (creating if needed) the ledger database and applies the
// schema.
func Open(path string, log zerolog.Logger) (*Ledger, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	l := &Ledger{
		db:  db,
		log: log.With().Str("component", "ledger").Logger(),
	}
	l.log.Info().Str("path", path).Msg("ledger opened")
	return l, nil
}

// LoadHistory returns persisted generations, newest first. Corrupt stored
// history degrades to empty.
func (l *Ledger) LoadHistory(ctx context.Context) []domain.GenerationRecord {
	raw, ok := l.get(ctx, keyHistory)
	if !ok {
		return nil
	}
	var records []domain.GenerationRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		l.log.Warn().Err(err).Msg("stored history is malformed, treating as empty")
		return nil
	}
	if len(records) > domain.HistoryLimit {
		records = records[:domain.HistoryLimit]
	}
	return records
}

// GetRecord returns one persisted generation by id.
func (l *Ledger) GetRecord(ctx context.Context, id string) (*domain.GenerationRecord, error) {
	for _, record := range l.LoadHistory(ctx) {
		if record.ID == id {
			return &record, nil
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerLedger,
		platformerrors.ErrorTypeNotFound,
		"generation "+id+" not found",
		nil, "f3c8b1a6-2d70-4e59-b84f-9a6e0d3c7b25")
}

// LoadCredits returns the free-credit balance, initialising the stored
// counter to the full allotment on first run or when the stored value is
// unreadable.
func (l *Ledger) LoadCredits(ctx context.Context) int {
	raw, ok := l.get(ctx, keyCredits)
	if ok {
		credits, err := strconv.Atoi(raw)
		if err == nil && credits >= 0 {
			return credits
		}
		l.log.Warn().Str("value", raw).Msg("stored credit counter is malformed, resetting")
	}
	if err := l.set(ctx, l.db, keyCredits, strconv.Itoa(domain.MaxFreeCredits)); err != nil {
		l.log.Warn().Err(err).Msg("failed to initialise credit counter")
	}
	return domain.MaxFreeCredits
}

// SetCredits overwrites the credit balance.
func (l *Ledger) SetCredits(ctx context.Context, credits int) error {
	if credits < 0 {
		credits = 0
	}
	if err := l.set(ctx, l.db, keyCredits, strconv.Itoa(credits)); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerLedger,
			platformerrors.ErrorTypeDatabaseError,
			"failed to store credit counter",
			err, "a94e2c57-6b18-4f3d-850a-1e7c4b9f6d32")
	}
	return nil
}

// LoadCredential returns the stored user credentials, absent fields empty.
func (l *Ledger) LoadCredential(ctx context.Context) domain.CredentialSet {
	creds := domain.CredentialSet{}
	if v, ok := l.get(ctx, keyAPIKey); ok {
		creds.APIKey = v
	}
	if v, ok := l.get(ctx, keyImageToken); ok {
		creds.ImageToken = v
	}
	return creds
}

// SaveCredential stores the credential set, removing fields that are empty.
func (l *Ledger) SaveCredential(ctx context.Context, creds domain.CredentialSet) error {
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := l.setOrDelete(ctx, tx, keyAPIKey, creds.APIKey); err != nil {
			return err
		}
		return l.setOrDelete(ctx, tx, keyImageToken, creds.ImageToken)
	})
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerLedger,
			platformerrors.ErrorTypeDatabaseError,
			"failed to store credential",
			err, "c61f8d24-0a93-4b57-9e68-2f5b7a1c4d80")
	}
	return nil
}

// ClearCredential removes all stored credentials and restores the free
// credit allotment, as one atomic update.
func (l *Ledger) ClearCredential(ctx context.Context) error {
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&Entry{}, "key IN ?", []string{keyAPIKey, keyImageToken}).Error; err != nil {
			return err
		}
		return l.set(ctx, tx, keyCredits, strconv.Itoa(domain.MaxFreeCredits))
	})
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerLedger,
			platformerrors.ErrorTypeDatabaseError,
			"failed to clear credential",
			err, "58b3e7f1-9c42-4d06-a7b5-3e0d8f2a6c91")
	}
	return nil
}

// Commit appends a record to history (newest first, truncated to the
// retention limit) and optionally decrements the credit balance. Both
// mutations happen in one transaction: a failure leaves the ledger
// untouched.
func (l *Ledger) Commit(ctx context.Context, record domain.GenerationRecord, spendCredit bool) error {
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		history := l.loadHistoryTx(ctx, tx)
		history = append([]domain.GenerationRecord{record}, history...)
		if len(history) > domain.HistoryLimit {
			history = history[:domain.HistoryLimit]
		}
		raw, err := json.Marshal(history)
		if err != nil {
			return err
		}
		if err := l.set(ctx, tx, keyHistory, string(raw)); err != nil {
			return err
		}

		if !spendCredit {
			return nil
		}
		credits := domain.MaxFreeCredits
		if v, ok := l.getTx(ctx, tx, keyCredits); ok {
			if parsed, perr := strconv.Atoi(v); perr == nil {
				credits = parsed
			}
		}
		if credits > 0 {
			credits--
		}
		return l.set(ctx, tx, keyCredits, strconv.Itoa(credits))
	})
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerLedger,
			platformerrors.ErrorTypeDatabaseError,
			"failed to commit generation",
			err, "1d7a4f83-6e29-4c50-b1d8-9f3e5a2c7b64")
	}
	return nil
}

func (l *Ledger) loadHistoryTx(ctx context.Context, tx *gorm.DB) []domain.GenerationRecord {
	raw, ok := l.getTx(ctx, tx, keyHistory)
	if !ok {
		return nil
	}
	var records []domain.GenerationRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		l.log.Warn().Err(err).Msg("stored history is malformed, starting fresh")
		return nil
	}
	return records
}

func (l *Ledger) get(ctx context.Context, key string) (string, bool) {
	return l.getTx(ctx, l.db, key)
}

func (l *Ledger) getTx(ctx context.Context, tx *gorm.DB, key string) (string, bool) {
	var entry Entry
	err := tx.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			l.log.Warn().Err(err).Str("key", key).Msg("ledger read failed, treating as absent")
		}
		return "", false
	}
	return entry.Value, true
}

func (l *Ledger) set(ctx context.Context, tx *gorm.DB, key, value string) error {
	entry := Entry{Key: key, Value: value}
	return tx.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"})}).
		Create(&entry).Error
}

func (l *Ledger) setOrDelete(ctx context.Context, tx *gorm.DB, key, value string) error {
	if value == "" {
		return tx.WithContext(ctx).Delete(&Entry{}, "key = ?", key).Error
	}
	return l.set(ctx, tx, key, value)
}
