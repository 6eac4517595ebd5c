package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"lear/internal/filing/models"
	"lear/internal/rules"
	"lear/pkg/platform/sentinel"
	txcontext "lear/pkg/platform/tx"
)

// PostgresStore persists filings. Calls join the transaction carried by the context.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const filingColumns = `id, business_id, temp_reg_id, filing_type, filing_sub_type, status, source,
	payment_token, payment_status_code, payment_completion_date, filing_date, effective_date,
	deletion_locked, withdrawn_filing_id, withdrawal_pending, colin_event_ids, content,
	submitter_id, submitter_roles, review_comment, last_modified`

func (s *PostgresStore) Create(ctx context.Context, f *models.Filing) error {
	content, err := json.Marshal(f.Content)
	if err != nil {
		return fmt.Errorf("encode filing content: %w", err)
	}
	query := `
		INSERT INTO filings (business_id, temp_reg_id, filing_type, filing_sub_type, status, source,
			payment_token, payment_status_code, payment_completion_date, filing_date, effective_date,
			deletion_locked, withdrawn_filing_id, withdrawal_pending, colin_event_ids, content,
			submitter_id, submitter_roles, review_comment, last_modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id
	`
	err = txcontext.Exec(ctx, s.db).QueryRowContext(ctx, query,
		f.BusinessID, f.TempRegID, string(f.FilingType), f.FilingSubType, string(f.Status), string(f.Source),
		f.PaymentToken, f.PaymentStatusCode, f.PaymentCompletionDate, f.FilingDate, f.EffectiveDate,
		f.DeletionLocked, f.WithdrawnFilingID, f.WithdrawalPending, pq.Array(colinIDs(f)), content,
		f.SubmitterID, pq.Array(roles(f)), f.ReviewComment, f.LastModified,
	).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("create filing: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, f *models.Filing) error {
	content, err := json.Marshal(f.Content)
	if err != nil {
		return fmt.Errorf("encode filing content: %w", err)
	}
	query := `
		UPDATE filings SET
			business_id = $2, temp_reg_id = $3, filing_type = $4, filing_sub_type = $5, status = $6,
			source = $7, payment_token = $8, payment_status_code = $9, payment_completion_date = $10,
			filing_date = $11, effective_date = $12, deletion_locked = $13, withdrawn_filing_id = $14,
			withdrawal_pending = $15, colin_event_ids = $16, content = $17, submitter_id = $18,
			submitter_roles = $19, review_comment = $20, last_modified = $21
		WHERE id = $1
	`
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, query, f.ID,
		f.BusinessID, f.TempRegID, string(f.FilingType), f.FilingSubType, string(f.Status),
		string(f.Source), f.PaymentToken, f.PaymentStatusCode, f.PaymentCompletionDate,
		f.FilingDate, f.EffectiveDate, f.DeletionLocked, f.WithdrawnFilingID,
		f.WithdrawalPending, pq.Array(colinIDs(f)), content, f.SubmitterID,
		pq.Array(roles(f)), f.ReviewComment, f.LastModified,
	)
	if err != nil {
		return fmt.Errorf("update filing: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `DELETE FROM filings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete filing: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.Filing, error) {
	return s.findOne(ctx, `SELECT `+filingColumns+` FROM filings WHERE id = $1`, id)
}

// FindByIDForUpdate locks the row until the surrounding transaction ends.
func (s *PostgresStore) FindByIDForUpdate(ctx context.Context, id int64) (*models.Filing, error) {
	return s.findOne(ctx, `SELECT `+filingColumns+` FROM filings WHERE id = $1 FOR UPDATE`, id)
}

// ListByBusiness returns filings in any of statuses (all when empty), oldest first.
func (s *PostgresStore) ListByBusiness(ctx context.Context, businessID int64, statuses []models.Status) ([]*models.Filing, error) {
	if len(statuses) == 0 {
		return s.findMany(ctx, `SELECT `+filingColumns+` FROM filings WHERE business_id = $1 ORDER BY id`, businessID)
	}
	names := make([]string, len(statuses))
	for i, st := range statuses {
		names[i] = string(st)
	}
	return s.findMany(ctx,
		`SELECT `+filingColumns+` FROM filings WHERE business_id = $1 AND status = ANY($2) ORDER BY id`,
		businessID, pq.Array(names))
}

func (s *PostgresStore) ListByTempReg(ctx context.Context, tempRegID string) ([]*models.Filing, error) {
	return s.findMany(ctx, `SELECT `+filingColumns+` FROM filings WHERE temp_reg_id = $1 ORDER BY id`, tempRegID)
}

func (s *PostgresStore) ListCompletedRefs(ctx context.Context, businessID int64) ([]rules.FilingRef, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT filing_type, filing_sub_type FROM filings
		WHERE business_id = $1 AND status IN ('COMPLETED', 'CORRECTED')
		ORDER BY id
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list completed filings: %w", err)
	}
	defer rows.Close()

	var refs []rules.FilingRef
	for rows.Next() {
		var ft, sub string
		if err := rows.Scan(&ft, &sub); err != nil {
			return nil, fmt.Errorf("scan completed filing: %w", err)
		}
		refs = append(refs, rules.FilingRef{Type: rules.FilingType(ft), SubType: sub})
	}
	return refs, rows.Err()
}

// FindActiveWithdrawal returns the open notice of withdrawal targeting targetID.
func (s *PostgresStore) FindActiveWithdrawal(ctx context.Context, targetID int64) (*models.Filing, error) {
	open := make([]string, len(models.OpenStatuses))
	for i, st := range models.OpenStatuses {
		open[i] = string(st)
	}
	return s.findOne(ctx, `
		SELECT `+filingColumns+` FROM filings
		WHERE filing_type = $1 AND withdrawn_filing_id = $2 AND status = ANY($3)
		ORDER BY id LIMIT 1
	`, string(rules.NoticeOfWithdrawal), targetID, pq.Array(open))
}

func (s *PostgresStore) findOne(ctx context.Context, query string, args ...any) (*models.Filing, error) {
	f, err := scanFiling(txcontext.Exec(ctx, s.db).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find filing: %w", err)
	}
	return f, nil
}

func (s *PostgresStore) findMany(ctx context.Context, query string, args ...any) ([]*models.Filing, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list filings: %w", err)
	}
	defer rows.Close()

	var out []*models.Filing
	for rows.Next() {
		f, err := scanFiling(rows)
		if err != nil {
			return nil, fmt.Errorf("scan filing: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFiling(row scanner) (*models.Filing, error) {
	var (
		f           models.Filing
		businessID  sql.NullInt64
		tempRegID   sql.NullString
		filingType  string
		status      string
		source      string
		completedAt sql.NullTime
		withdrawnID sql.NullInt64
		colinIDs    pq.Int64Array
		submitRoles pq.StringArray
		content     []byte
	)
	err := row.Scan(&f.ID, &businessID, &tempRegID, &filingType, &f.FilingSubType, &status, &source,
		&f.PaymentToken, &f.PaymentStatusCode, &completedAt, &f.FilingDate, &f.EffectiveDate,
		&f.DeletionLocked, &withdrawnID, &f.WithdrawalPending, &colinIDs, &content,
		&f.SubmitterID, &submitRoles, &f.ReviewComment, &f.LastModified)
	if err != nil {
		return nil, err
	}
	f.FilingType = rules.FilingType(filingType)
	f.Status = models.Status(status)
	f.Source = models.Source(strings.ToUpper(source))
	if businessID.Valid {
		id := businessID.Int64
		f.BusinessID = &id
	}
	if tempRegID.Valid {
		t := tempRegID.String
		f.TempRegID = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		f.PaymentCompletionDate = &t
	}
	if withdrawnID.Valid {
		id := withdrawnID.Int64
		f.WithdrawnFilingID = &id
	}
	if len(colinIDs) > 0 {
		f.ColinEventIDs = []int64(colinIDs)
	}
	if len(submitRoles) > 0 {
		f.SubmitterRoles = []string(submitRoles)
	}
	if err := json.Unmarshal(content, &f.Content); err != nil {
		return nil, fmt.Errorf("decode filing content: %w", err)
	}
	return &f, nil
}

func colinIDs(f *models.Filing) []int64 {
	if f.ColinEventIDs == nil {
		return []int64{}
	}
	return f.ColinEventIDs
}

func roles(f *models.Filing) []string {
	if f.SubmitterRoles == nil {
		return []string{}
	}
	return f.SubmitterRoles
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
