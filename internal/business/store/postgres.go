package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"lear/internal/business/models"
	"lear/pkg/platform/sentinel"
	txcontext "lear/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists businesses and bootstraps. Calls join the transaction
// carried by the context, if any.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const businessColumns = `id, identifier, legal_name, legal_type, state, admin_freeze, founding_date,
	last_ar_date, last_ar_year, state_filing_id, in_dissolution, last_modified`

func (s *PostgresStore) Create(ctx context.Context, b *models.Business) error {
	query := `
		INSERT INTO businesses (identifier, legal_name, legal_type, state, admin_freeze, founding_date,
			last_ar_date, last_ar_year, state_filing_id, in_dissolution, last_modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, query,
		b.Identifier, b.LegalName, string(b.LegalType), string(b.State), b.AdminFreeze, b.FoundingDate,
		b.LastARDate, b.LastARYear, b.StateFilingID, b.InDissolution, b.LastModified,
	).Scan(&b.ID)
	if isUniqueViolation(err) {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("create business: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByIdentifier(ctx context.Context, identifier string) (*models.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE identifier = $1`
	b, err := scanBusiness(txcontext.Exec(ctx, s.db).QueryRowContext(ctx, query, identifier))
	if err != nil {
		return nil, notFound(err, "find business")
	}
	return b, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1`
	b, err := scanBusiness(txcontext.Exec(ctx, s.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "find business by id")
	}
	return b, nil
}

// Save writes every mutable column of b.
func (s *PostgresStore) Save(ctx context.Context, b *models.Business) error {
	query := `
		UPDATE businesses SET
			legal_name = $2, legal_type = $3, state = $4, admin_freeze = $5, last_ar_date = $6,
			last_ar_year = $7, state_filing_id = $8, in_dissolution = $9, last_modified = $10
		WHERE identifier = $1
	`
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, query,
		b.Identifier, b.LegalName, string(b.LegalType), string(b.State), b.AdminFreeze, b.LastARDate,
		b.LastARYear, b.StateFilingID, b.InDissolution, b.LastModified,
	)
	if err != nil {
		return fmt.Errorf("save business: %w", err)
	}
	return requireRow(res)
}

func (s *PostgresStore) CreateBootstrap(ctx context.Context, bs *models.RegistrationBootstrap) error {
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx,
		`INSERT INTO registration_bootstraps (identifier, account_id, last_modified) VALUES ($1, $2, $3)`,
		bs.Identifier, bs.AccountID, bs.LastModified,
	)
	if isUniqueViolation(err) {
		return sentinel.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("create bootstrap: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindBootstrap(ctx context.Context, identifier string) (*models.RegistrationBootstrap, error) {
	var bs models.RegistrationBootstrap
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT identifier, account_id, last_modified FROM registration_bootstraps WHERE identifier = $1`,
		identifier,
	).Scan(&bs.Identifier, &bs.AccountID, &bs.LastModified)
	if err != nil {
		return nil, notFound(err, "find bootstrap")
	}
	return &bs, nil
}

func (s *PostgresStore) DeleteBootstrap(ctx context.Context, identifier string) error {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx,
		`DELETE FROM registration_bootstraps WHERE identifier = $1`, identifier)
	if err != nil {
		return fmt.Errorf("delete bootstrap: %w", err)
	}
	return requireRow(res)
}

func scanBusiness(row *sql.Row) (*models.Business, error) {
	var (
		b         models.Business
		legalType string
		state     string
		lastAR    sql.NullTime
		stateID   sql.NullInt64
	)
	err := row.Scan(&b.ID, &b.Identifier, &b.LegalName, &legalType, &state, &b.AdminFreeze, &b.FoundingDate,
		&lastAR, &b.LastARYear, &stateID, &b.InDissolution, &b.LastModified)
	if err != nil {
		return nil, err
	}
	b.LegalType = models.LegalType(legalType)
	b.State = models.State(state)
	if lastAR.Valid {
		t := lastAR.Time
		b.LastARDate = &t
	}
	if stateID.Valid {
		id := stateID.Int64
		b.StateFilingID = &id
	}
	return &b, nil
}

func notFound(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
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

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
