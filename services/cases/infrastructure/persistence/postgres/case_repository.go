package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/casedesk/pkg/database"
	"github.com/ghuser/casedesk/pkg/events"
	casedomain "github.com/ghuser/casedesk/services/cases/domain"
	domainevents "github.com/ghuser/casedesk/services/cases/domain/events"
	"github.com/ghuser/casedesk/services/cases/domain/models"
	"github.com/ghuser/casedesk/services/cases/domain/repositories"
)

const pgUniqueViolation = "23505"

// CaseRepository implements repositories.CaseRepository against PostgreSQL.
// It also serves as the uniqueness guard's ActiveCaseLookup.
type CaseRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewCaseRepository returns a CaseRepository backed by the given connection
// pool and event bus. The bus is used to publish lifecycle events in the same
// transaction as the row change (outbox pattern).
func NewCaseRepository(db *database.Database, bus *events.EventBus) *CaseRepository {
	return &CaseRepository{db: db, bus: bus}
}

// Save persists a new Case and publishes a CaseOpenedEvent within the same
// transaction. A violation of the one-active-case-per-customer partial unique
// index is mapped to domain.ErrActiveCaseExists: two racing creates both pass
// the guard's pre-check, but only one survives the commit, and the loser gets
// the same business-rule rejection.
func (r *CaseRepository) Save(ctx context.Context, c *models.Case) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cases (id, org_id, customer_kind, customer_id, subject, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			c.ID, c.OrgID, string(c.Customer.Kind), c.Customer.ID,
			c.Subject.String(), c.Status.String(), c.CreatedAt, c.UpdatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return casedomain.ErrActiveCaseExists
			}
			return fmt.Errorf("insert case: %w", err)
		}

		if r.bus != nil {
			if err := r.publishOpened(tx, c); err != nil {
				return fmt.Errorf("publish case opened: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a Case by ID scoped to the given org.
// Returns ErrCaseNotFound if no matching row exists.
func (r *CaseRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*models.Case, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT id, org_id, customer_kind, customer_id, subject, status, created_at, updated_at
		FROM cases
		WHERE id = $1 AND org_id = $2`,
		id, orgID,
	)
	c, err := scanCase(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, casedomain.ErrCaseNotFound
		}
		return nil, fmt.Errorf("query case: %w", err)
	}
	return c, nil
}

// FindByOrgID retrieves a paginated list of cases and total count for the org.
func (r *CaseRepository) FindByOrgID(ctx context.Context, orgID uuid.UUID, opts repositories.QueryOpts) ([]*models.Case, int, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, org_id, customer_kind, customer_id, subject, status, created_at, updated_at
		FROM cases
		WHERE org_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		orgID, opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("query cases: %w", err)
	}
	cases, err := collectCases(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cases WHERE org_id = $1`, orgID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count cases: %w", err)
	}
	return cases, total, nil
}

// FindByCustomer retrieves cases referencing the given customer identity,
// newest first. The customer kind column is not part of the filter.
func (r *CaseRepository) FindByCustomer(ctx context.Context, orgID, customerID uuid.UUID, opts repositories.QueryOpts) ([]*models.Case, int, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, org_id, customer_kind, customer_id, subject, status, created_at, updated_at
		FROM cases
		WHERE org_id = $1 AND customer_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		orgID, customerID, opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("query cases by customer: %w", err)
	}
	cases, err := collectCases(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.DB().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cases WHERE org_id = $1 AND customer_id = $2`,
		orgID, customerID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count cases by customer: %w", err)
	}
	return cases, total, nil
}

// UpdateStatus persists a lifecycle change and, when the case left the active
// status, publishes a CaseClosedEvent in the same transaction.
func (r *CaseRepository) UpdateStatus(ctx context.Context, c *models.Case) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE cases SET status = $1, updated_at = $2
			WHERE id = $3 AND org_id = $4`,
			c.Status.String(), c.UpdatedAt, c.ID, c.OrgID,
		)
		if err != nil {
			return fmt.Errorf("update case status: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update case status: rows affected: %w", err)
		}
		if n == 0 {
			return casedomain.ErrCaseNotFound
		}

		if r.bus != nil && !c.Status.IsActive() {
			if err := r.publishClosed(tx, c); err != nil {
				return fmt.Errorf("publish case closed: %w", err)
			}
		}
		return nil
	})
}

// HasActiveCase reports whether any active case references the given customer
// identity. The EXISTS query stops at the first match, satisfying the
// result-set cap of one.
func (r *CaseRepository) HasActiveCase(ctx context.Context, orgID, customerID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM cases
			WHERE org_id = $1 AND customer_id = $2 AND status = 'active'
		)`,
		orgID, customerID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check active case: %w", err)
	}
	return exists, nil
}

func (r *CaseRepository) publishOpened(tx *sql.Tx, c *models.Case) error {
	event := domainevents.CaseOpenedEvent{
		EventID:      uuid.New(),
		Version:      1,
		CaseID:       c.ID,
		OrgID:        c.OrgID,
		CustomerKind: string(c.Customer.Kind),
		CustomerID:   c.Customer.ID,
		Subject:      c.Subject.String(),
		OccurredAt:   c.CreatedAt,
	}
	return r.publish(tx, domainevents.TopicCaseOpened, event.EventID, event)
}

func (r *CaseRepository) publishClosed(tx *sql.Tx, c *models.Case) error {
	event := domainevents.CaseClosedEvent{
		EventID:    uuid.New(),
		Version:    1,
		CaseID:     c.ID,
		OrgID:      c.OrgID,
		CustomerID: c.Customer.ID,
		Status:     c.Status.String(),
		OccurredAt: c.UpdatedAt,
	}
	return r.publish(tx, domainevents.TopicCaseClosed, event.EventID, event)
}

func (r *CaseRepository) publish(tx *sql.Tx, topic string, eventID uuid.UUID, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCase(row rowScanner) (*models.Case, error) {
	var (
		c            models.Case
		customerKind string
		subject      string
		status       string
	)
	if err := row.Scan(&c.ID, &c.OrgID, &customerKind, &c.Customer.ID,
		&subject, &status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Customer.Kind = models.CustomerKind(customerKind)
	c.Subject = models.CaseSubject(subject)
	c.Status = models.CaseStatus(status)
	return &c, nil
}

func collectCases(rows *sql.Rows) ([]*models.Case, error) {
	defer rows.Close() //nolint:errcheck
	var cases []*models.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan case: %w", err)
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cases: %w", err)
	}
	return cases, nil
}
