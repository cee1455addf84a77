package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"estimator/models"
	"estimator/utils"

	"github.com/google/uuid"
)

// Quote persistence over raw SQL. The working copy of a quote always lives
// in the version row flagged is_current; locked versions are never edited
// again. If two sessions race on the same quote, the last write wins — the
// service does not coordinate concurrent editors.

// EnsureSchema creates the quote tables when they do not exist yet.
// Catalog tables are migrated separately by GORM.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS quote (
			id TEXT PRIMARY KEY,
			base_number TEXT NOT NULL,
			job_name TEXT NOT NULL DEFAULT '',
			job_address TEXT NOT NULL DEFAULT '',
			client_name TEXT NOT NULL DEFAULT '',
			client_email TEXT NOT NULL DEFAULT '',
			client_phone TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'draft',
			is_locked BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS quote_version (
			id TEXT PRIMARY KEY,
			quote_id TEXT NOT NULL REFERENCES quote(id),
			version_number INTEGER NOT NULL,
			total NUMERIC NOT NULL DEFAULT 0,
			is_current BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS quote_section (
			id TEXT PRIMARY KEY,
			version_id TEXT NOT NULL REFERENCES quote_version(id),
			name TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS quote_line_item (
			id TEXT PRIMARY KEY,
			version_id TEXT NOT NULL REFERENCES quote_version(id),
			section_id TEXT,
			description TEXT NOT NULL DEFAULT '',
			quantity NUMERIC NOT NULL DEFAULT 0,
			unit TEXT NOT NULL DEFAULT '',
			unit_cost NUMERIC NOT NULL DEFAULT 0,
			unit_price NUMERIC NOT NULL DEFAULT 0,
			is_excluded BOOLEAN NOT NULL DEFAULT FALSE,
			notes TEXT NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS quote_change (
			id TEXT PRIMARY KEY,
			version_id TEXT NOT NULL REFERENCES quote_version(id),
			change_type TEXT NOT NULL,
			line_item_id TEXT NOT NULL,
			field TEXT,
			previous_value JSONB,
			new_value JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS quote_amendment (
			quote_id TEXT PRIMARY KEY REFERENCES quote(id),
			snapshot JSONB NOT NULL,
			started_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to ensure quote schema: %w", err)
		}
	}
	return nil
}

// GenerateBaseNumber builds the next estimate number in YYMMDDnn form,
// where nn is the per-day sequence.
func GenerateBaseNumber(db *sql.DB) (string, error) {
	var countToday int
	err := db.QueryRow(`SELECT COUNT(*) FROM quote WHERE created_at::date = CURRENT_DATE`).Scan(&countToday)
	if err != nil {
		return "", fmt.Errorf("failed to count today's quotes: %w", err)
	}
	return time.Now().Format("060102") + fmt.Sprintf("%02d", countToday+1), nil
}

// CreateQuote persists a new draft quote with its first (current) version,
// sections and line items in one transaction.
func CreateQuote(db *sql.DB, handoff models.TakeoffHandoff, sections []models.QuoteSection, items []models.QuoteLineItem) (models.Quote, error) {
	baseNumber, err := GenerateBaseNumber(db)
	if err != nil {
		return models.Quote{}, err
	}

	tx, err := db.Begin()
	if err != nil {
		return models.Quote{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	quote := models.Quote{
		ID:          uuid.NewString(),
		BaseNumber:  baseNumber,
		JobName:     handoff.JobName,
		JobAddress:  handoff.JobAddress,
		ClientName:  handoff.ClientName,
		ClientEmail: handoff.ClientEmail,
		ClientPhone: handoff.ClientPhone,
		Notes:       handoff.Notes,
		Sections:    sections,
		LineItems:   items,
	}

	_, err = tx.Exec(`
		INSERT INTO quote (id, base_number, job_name, job_address, client_name, client_email, client_phone, notes, status, is_locked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE)`,
		quote.ID, quote.BaseNumber, quote.JobName, quote.JobAddress,
		quote.ClientName, quote.ClientEmail, quote.ClientPhone, quote.Notes,
		models.QuoteStatusDraft,
	)
	if err != nil {
		return models.Quote{}, fmt.Errorf("failed to insert quote: %w", err)
	}

	versionID := uuid.NewString()
	_, err = tx.Exec(`
		INSERT INTO quote_version (id, quote_id, version_number, total, is_current)
		VALUES ($1, $2, 1, $3, TRUE)`,
		versionID, quote.ID, quote.Total(),
	)
	if err != nil {
		return models.Quote{}, fmt.Errorf("failed to insert quote version: %w", err)
	}

	if err := insertContentsTx(tx, versionID, sections, items); err != nil {
		return models.Quote{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Quote{}, fmt.Errorf("failed to commit quote: %w", err)
	}
	return quote, nil
}

func insertContentsTx(tx *sql.Tx, versionID string, sections []models.QuoteSection, items []models.QuoteLineItem) error {
	for _, s := range sections {
		_, err := tx.Exec(`
			INSERT INTO quote_section (id, version_id, name, sort_order)
			VALUES ($1, $2, $3, $4)`,
			s.ID, versionID, s.Name, s.SortOrder,
		)
		if err != nil {
			return fmt.Errorf("failed to insert quote section: %w", err)
		}
	}
	for _, li := range items {
		var sectionID interface{}
		if li.SectionID != nil {
			sectionID = *li.SectionID
		}
		_, err := tx.Exec(`
			INSERT INTO quote_line_item (id, version_id, section_id, description, quantity, unit, unit_cost, unit_price, is_excluded, notes, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			li.ID, versionID, sectionID, li.Description, li.Quantity, li.Unit,
			li.UnitCost, li.UnitPrice, li.IsExcluded, li.Notes, li.SortOrder,
		)
		if err != nil {
			return fmt.Errorf("failed to insert quote line item: %w", err)
		}
	}
	return nil
}

// GetQuoteRecord fetches one quote table row.
func GetQuoteRecord(db *sql.DB, quoteID string) (*models.QuoteRecord, error) {
	ctx, cancel := utils.GetDefaultQueryContext(nil)
	defer cancel()

	var rec models.QuoteRecord
	err := db.QueryRowContext(ctx, `
		SELECT id, base_number, job_name, job_address, client_name, client_email, client_phone, notes, status, is_locked, created_at, updated_at
		FROM quote WHERE id = $1`, quoteID).Scan(
		&rec.ID, &rec.BaseNumber, &rec.JobName, &rec.JobAddress,
		&rec.ClientName, &rec.ClientEmail, &rec.ClientPhone, &rec.Notes,
		&rec.Status, &rec.IsLocked, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("quote %s not found", quoteID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote: %w", err)
	}
	return &rec, nil
}

// ListQuotes returns all quote rows, newest first.
func ListQuotes(db *sql.DB) ([]models.QuoteRecord, error) {
	ctx, cancel := utils.GetDefaultQueryContext(nil)
	defer cancel()

	rows, err := db.QueryContext(ctx, `
		SELECT id, base_number, job_name, job_address, client_name, client_email, client_phone, notes, status, is_locked, created_at, updated_at
		FROM quote ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	var records []models.QuoteRecord
	for rows.Next() {
		var rec models.QuoteRecord
		if err := rows.Scan(
			&rec.ID, &rec.BaseNumber, &rec.JobName, &rec.JobAddress,
			&rec.ClientName, &rec.ClientEmail, &rec.ClientPhone, &rec.Notes,
			&rec.Status, &rec.IsLocked, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quote row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetCurrentVersion fetches the version row flagged is_current for a quote.
func GetCurrentVersion(db *sql.DB, quoteID string) (*models.QuoteVersionRecord, error) {
	var rec models.QuoteVersionRecord
	err := db.QueryRow(`
		SELECT id, quote_id, version_number, total, is_current, created_at
		FROM quote_version WHERE quote_id = $1 AND is_current = TRUE`, quoteID).Scan(
		&rec.ID, &rec.QuoteID, &rec.VersionNumber, &rec.Total, &rec.IsCurrent, &rec.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("quote %s has no current version", quoteID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current version: %w", err)
	}
	return &rec, nil
}

// LoadVersionContents assembles the sections and line items of one version.
func LoadVersionContents(db *sql.DB, versionID string) ([]models.QuoteSection, []models.QuoteLineItem, error) {
	sectionRows, err := db.Query(`
		SELECT id, name, sort_order FROM quote_section
		WHERE version_id = $1 ORDER BY sort_order`, versionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch sections: %w", err)
	}
	defer sectionRows.Close()

	var sections []models.QuoteSection
	for sectionRows.Next() {
		var s models.QuoteSection
		if err := sectionRows.Scan(&s.ID, &s.Name, &s.SortOrder); err != nil {
			return nil, nil, fmt.Errorf("failed to scan section row: %w", err)
		}
		sections = append(sections, s)
	}

	itemRows, err := db.Query(`
		SELECT id, section_id, description, quantity, unit, unit_cost, unit_price, is_excluded, notes, sort_order
		FROM quote_line_item WHERE version_id = $1 ORDER BY sort_order, id`, versionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch line items: %w", err)
	}
	defer itemRows.Close()

	var items []models.QuoteLineItem
	for itemRows.Next() {
		var li models.QuoteLineItem
		var sectionID sql.NullString
		if err := itemRows.Scan(&li.ID, &sectionID, &li.Description, &li.Quantity, &li.Unit,
			&li.UnitCost, &li.UnitPrice, &li.IsExcluded, &li.Notes, &li.SortOrder); err != nil {
			return nil, nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		if sectionID.Valid {
			sid := sectionID.String
			li.SectionID = &sid
		}
		items = append(items, li)
	}
	return sections, items, nil
}

// LoadQuote assembles the full editable quote value (current version
// contents) along with its lifecycle status.
func LoadQuote(db *sql.DB, quoteID string) (models.Quote, string, error) {
	rec, err := GetQuoteRecord(db, quoteID)
	if err != nil {
		return models.Quote{}, "", err
	}
	version, err := GetCurrentVersion(db, quoteID)
	if err != nil {
		return models.Quote{}, "", err
	}
	sections, items, err := LoadVersionContents(db, version.ID)
	if err != nil {
		return models.Quote{}, "", err
	}

	return models.Quote{
		ID:          rec.ID,
		BaseNumber:  rec.BaseNumber,
		JobName:     rec.JobName,
		JobAddress:  rec.JobAddress,
		ClientName:  rec.ClientName,
		ClientEmail: rec.ClientEmail,
		ClientPhone: rec.ClientPhone,
		Notes:       rec.Notes,
		Sections:    sections,
		LineItems:   items,
	}, rec.Status, nil
}

// ReplaceVersionContents rewrites the sections and line items of a working
// version in one transaction and refreshes the stored total.
func ReplaceVersionContents(db *sql.DB, versionID string, sections []models.QuoteSection, items []models.QuoteLineItem, total float64) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM quote_line_item WHERE version_id = $1`, versionID); err != nil {
		return fmt.Errorf("failed to clear line items: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM quote_section WHERE version_id = $1`, versionID); err != nil {
		return fmt.Errorf("failed to clear sections: %w", err)
	}
	if err := insertContentsTx(tx, versionID, sections, items); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE quote_version SET total = $1 WHERE id = $2`, total, versionID); err != nil {
		return fmt.Errorf("failed to update version total: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit version contents: %w", err)
	}
	return nil
}

// BeginWorkingVersion creates the next version row as the current working
// copy, carrying over the given contents. Used when an amendment starts.
func BeginWorkingVersion(db *sql.DB, quoteID string, sections []models.QuoteSection, items []models.QuoteLineItem, total float64) (string, error) {
	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var lastNumber int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(version_number), 0) FROM quote_version WHERE quote_id = $1`, quoteID).Scan(&lastNumber); err != nil {
		return "", fmt.Errorf("failed to read last version number: %w", err)
	}

	if _, err := tx.Exec(`UPDATE quote_version SET is_current = FALSE WHERE quote_id = $1`, quoteID); err != nil {
		return "", fmt.Errorf("failed to clear current version flag: %w", err)
	}

	versionID := uuid.NewString()
	_, err = tx.Exec(`
		INSERT INTO quote_version (id, quote_id, version_number, total, is_current)
		VALUES ($1, $2, $3, $4, TRUE)`,
		versionID, quoteID, lastNumber+1, total,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert working version: %w", err)
	}

	if err := insertContentsTx(tx, versionID, sections, items); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit working version: %w", err)
	}
	return versionID, nil
}

// DropWorkingVersion deletes an abandoned working version and restores the
// previous version as current. Used when an amendment is discarded.
func DropWorkingVersion(db *sql.DB, quoteID, versionID string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM quote_change WHERE version_id = $1`, versionID); err != nil {
		return fmt.Errorf("failed to delete change records: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM quote_line_item WHERE version_id = $1`, versionID); err != nil {
		return fmt.Errorf("failed to delete line items: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM quote_section WHERE version_id = $1`, versionID); err != nil {
		return fmt.Errorf("failed to delete sections: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM quote_version WHERE id = $1`, versionID); err != nil {
		return fmt.Errorf("failed to delete working version: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE quote_version SET is_current = TRUE
		WHERE quote_id = $1 AND version_number = (
			SELECT MAX(version_number) FROM quote_version WHERE quote_id = $1
		)`, quoteID)
	if err != nil {
		return fmt.Errorf("failed to restore previous version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit working version drop: %w", err)
	}
	return nil
}

// SetQuoteStatus updates the lifecycle status and lock flag of a quote.
func SetQuoteStatus(db *sql.DB, quoteID, status string, isLocked bool) error {
	result, err := db.Exec(`
		UPDATE quote SET status = $1, is_locked = $2, updated_at = NOW() WHERE id = $3`,
		status, isLocked, quoteID)
	if err != nil {
		return fmt.Errorf("failed to update quote status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return fmt.Errorf("quote %s not found", quoteID)
	}
	return nil
}

// SaveAmendmentSnapshot stores the pre-edit snapshot captured when an
// amendment starts. One snapshot per quote at most.
func SaveAmendmentSnapshot(db *sql.DB, quoteID string, quote models.Quote) error {
	payload, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("failed to marshal amendment snapshot: %w", err)
	}
	_, err = db.Exec(`
		INSERT INTO quote_amendment (quote_id, snapshot, started_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (quote_id) DO UPDATE SET snapshot = $2, started_at = NOW()`,
		quoteID, payload)
	if err != nil {
		return fmt.Errorf("failed to save amendment snapshot: %w", err)
	}
	return nil
}

// LoadAmendmentSnapshot returns the pre-edit snapshot of the active
// amendment, or nil when no amendment is in progress.
func LoadAmendmentSnapshot(db *sql.DB, quoteID string) (*models.Quote, error) {
	var payload []byte
	err := db.QueryRow(`SELECT snapshot FROM quote_amendment WHERE quote_id = $1`, quoteID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load amendment snapshot: %w", err)
	}

	var quote models.Quote
	if err := json.Unmarshal(payload, &quote); err != nil {
		return nil, fmt.Errorf("failed to unmarshal amendment snapshot: %w", err)
	}
	return &quote, nil
}

// DeleteAmendmentSnapshot removes the stored snapshot once the amendment
// is finalized or discarded.
func DeleteAmendmentSnapshot(db *sql.DB, quoteID string) error {
	if _, err := db.Exec(`DELETE FROM quote_amendment WHERE quote_id = $1`, quoteID); err != nil {
		return fmt.Errorf("failed to delete amendment snapshot: %w", err)
	}
	return nil
}

// InsertChangeRecords attaches finalized change records to a version.
func InsertChangeRecords(db *sql.DB, versionID string, changes []models.ChangeRecord) error {
	for _, c := range changes {
		prev, err := json.Marshal(c.PreviousValue)
		if err != nil {
			return fmt.Errorf("failed to marshal previous value: %w", err)
		}
		next, err := json.Marshal(c.NewValue)
		if err != nil {
			return fmt.Errorf("failed to marshal new value: %w", err)
		}
		_, err = db.Exec(`
			INSERT INTO quote_change (id, version_id, change_type, line_item_id, field, previous_value, new_value, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.NewString(), versionID, c.Type, c.LineItemID, c.Field, prev, next, c.Timestamp)
		if err != nil {
			return fmt.Errorf("failed to insert change record: %w", err)
		}
	}
	return nil
}

// ListVersions returns all version rows of a quote, oldest first.
func ListVersions(db *sql.DB, quoteID string) ([]models.QuoteVersionRecord, error) {
	rows, err := db.Query(`
		SELECT id, quote_id, version_number, total, is_current, created_at
		FROM quote_version WHERE quote_id = $1 ORDER BY version_number`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	defer rows.Close()

	var records []models.QuoteVersionRecord
	for rows.Next() {
		var rec models.QuoteVersionRecord
		if err := rows.Scan(&rec.ID, &rec.QuoteID, &rec.VersionNumber, &rec.Total, &rec.IsCurrent, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan version row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListChanges returns the change records recorded against a version.
func ListChanges(db *sql.DB, versionID string) ([]models.ChangeRecord, error) {
	rows, err := db.Query(`
		SELECT change_type, line_item_id, COALESCE(field, ''), previous_value, new_value, created_at
		FROM quote_change WHERE version_id = $1 ORDER BY created_at, id`, versionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list change records: %w", err)
	}
	defer rows.Close()

	var changes []models.ChangeRecord
	for rows.Next() {
		var c models.ChangeRecord
		var prev, next []byte
		if err := rows.Scan(&c.Type, &c.LineItemID, &c.Field, &prev, &next, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan change row: %w", err)
		}
		if len(prev) > 0 {
			json.Unmarshal(prev, &c.PreviousValue)
		}
		if len(next) > 0 {
			json.Unmarshal(next, &c.NewValue)
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}

// ArchiveStaleDrafts flags draft quotes untouched for the given number of
// days. Run nightly from the maintenance cron.
func ArchiveStaleDrafts(db *sql.DB, days int) (int64, error) {
	ctx, cancel := utils.GetQueryContext(nil, utils.SlowQueryTimeout)
	defer cancel()

	result, err := db.ExecContext(ctx, `
		UPDATE quote SET status = $1, updated_at = NOW()
		WHERE status = $2 AND updated_at < NOW() - ($3 || ' days')::interval`,
		models.QuoteStatusArchived, models.QuoteStatusDraft, fmt.Sprint(days))
	if err != nil {
		return 0, fmt.Errorf("failed to archive stale drafts: %w", err)
	}
	return result.RowsAffected()
}
