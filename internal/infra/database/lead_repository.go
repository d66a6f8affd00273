package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/xavierca1/leadrunner/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, name, company, title, email, phone, industry, company_size,
	country, status, contact_count, last_contact_at, last_inbound_at,
	notes, source, version, created_at, updated_at`

// Upsert por email: lead reimportado do provedor atualiza os dados de
// contato mas não volta pra New nem perde o histórico de cadência.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, company, title, email, phone, industry, company_size,
			country, status, contact_count, notes, source, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, $11, $12, 1, NOW(), NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			name = COALESCE(NULLIF(EXCLUDED.name, ''), leads.name),
			company = COALESCE(NULLIF(EXCLUDED.company, ''), leads.company),
			title = COALESCE(NULLIF(EXCLUDED.title, ''), leads.title),
			phone = COALESCE(NULLIF(EXCLUDED.phone, ''), leads.phone),
			industry = COALESCE(NULLIF(EXCLUDED.industry, ''), leads.industry),
			company_size = EXCLUDED.company_size,
			updated_at = NOW()
		RETURNING ` + leadColumns

	row := r.DB.QueryRowContext(ctx, query,
		lead.ID,
		lead.Name,
		lead.Company,
		lead.Title,
		lead.Email,
		lead.Phone,
		lead.Industry,
		lead.CompanySize,
		lead.Country,
		lead.Status,
		lead.Notes,
		lead.Source,
	)

	return scanLead(row, lead)
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead := &entity.Lead{}
	if err := scanLead(r.DB.QueryRowContext(ctx, query, id), lead); err != nil {
		if err == sql.ErrNoRows {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}
	return lead, nil
}

func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	var conds []string
	var args []any

	if filter.Country != "" {
		args = append(args, filter.Country)
		conds = append(conds, fmt.Sprintf("country = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(filter.IDs) > 0 {
		args = append(args, pq.Array(filter.IDs))
		conds = append(conds, fmt.Sprintf("id = ANY($%d)", len(args)))
	}

	query := `SELECT ` + leadColumns + ` FROM leads`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeads(rows)
}

func (r *LeadRepository) ListCadenceActive(ctx context.Context) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + `
		FROM leads
		WHERE status IN ($1, $2, $3)
		ORDER BY last_contact_at NULLS FIRST`

	rows, err := r.DB.QueryContext(ctx, query,
		entity.StatusNew, entity.StatusInitialContact, entity.StatusFollowUp)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeads(rows)
}

// Save com lock otimista: o WHERE version garante que dois sweeps
// concorrentes não gravam o mesmo follow-up duas vezes.
func (r *LeadRepository) Save(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET
			status = $1,
			contact_count = $2,
			last_contact_at = $3,
			last_inbound_at = $4,
			notes = $5,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $6 AND version = $7`

	res, err := r.DB.ExecContext(ctx, query,
		lead.Status,
		lead.ContactCount,
		lead.LastContactAt,
		lead.LastInboundAt,
		lead.Notes,
		lead.ID,
		lead.Version,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrVersionConflict
	}

	lead.Version++
	return nil
}

func (r *LeadRepository) StatusCounts(ctx context.Context) ([]entity.StatusCount, error) {
	query := `SELECT country, status, COUNT(*) FROM leads GROUP BY country, status`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.StatusCount
	for rows.Next() {
		var c entity.StatusCount
		if err := rows.Scan(&c.Country, &c.Status, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner, lead *entity.Lead) error {
	var lastContact, lastInbound sql.NullTime

	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Company,
		&lead.Title,
		&lead.Email,
		&lead.Phone,
		&lead.Industry,
		&lead.CompanySize,
		&lead.Country,
		&lead.Status,
		&lead.ContactCount,
		&lastContact,
		&lastInbound,
		&lead.Notes,
		&lead.Source,
		&lead.Version,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if lastContact.Valid {
		t := lastContact.Time
		lead.LastContactAt = &t
	}
	if lastInbound.Valid {
		t := lastInbound.Time
		lead.LastInboundAt = &t
	}
	return nil
}

func collectLeads(rows *sql.Rows) ([]*entity.Lead, error) {
	var out []*entity.Lead
	for rows.Next() {
		lead := &entity.Lead{}
		if err := scanLead(rows, lead); err != nil {
			return nil, err
		}
		out = append(out, lead)
	}
	return out, rows.Err()
}
