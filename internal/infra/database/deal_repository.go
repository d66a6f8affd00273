package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/leadrunner/internal/entity"
)

type DealRepository struct {
	DB *sql.DB
}

func NewDealRepository(db *sql.DB) *DealRepository {
	return &DealRepository{DB: db}
}

func (r *DealRepository) Create(ctx context.Context, deal *entity.Deal) error {
	query := `
		INSERT INTO deals (id, lead_id, amount, currency, provider, provider_ref,
			payment_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.DB.ExecContext(ctx, query,
		deal.ID,
		deal.LeadID,
		deal.Amount,
		deal.Currency,
		deal.Provider,
		deal.ProviderRef,
		deal.PaymentURL,
		deal.Status,
		deal.CreatedAt,
		deal.UpdatedAt,
	)
	return err
}

func (r *DealRepository) FindByLeadID(ctx context.Context, leadID string) ([]*entity.Deal, error) {
	query := `
		SELECT id, lead_id, amount, currency, provider, provider_ref,
			payment_url, status, created_at, updated_at
		FROM deals
		WHERE lead_id = $1
		ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Deal
	for rows.Next() {
		deal := &entity.Deal{}
		err := rows.Scan(
			&deal.ID,
			&deal.LeadID,
			&deal.Amount,
			&deal.Currency,
			&deal.Provider,
			&deal.ProviderRef,
			&deal.PaymentURL,
			&deal.Status,
			&deal.CreatedAt,
			&deal.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, deal)
	}
	return out, rows.Err()
}

// MarkPaid liquida os deals pendentes do lead. Reentrega de webhook
// não muda nada (já está PAID).
func (r *DealRepository) MarkPaid(ctx context.Context, leadID string) error {
	query := `
		UPDATE deals SET status = $1, updated_at = NOW()
		WHERE lead_id = $2 AND status = $3`

	_, err := r.DB.ExecContext(ctx, query, entity.DealStatusPaid, leadID, entity.DealStatusPending)
	return err
}

func (r *DealRepository) Revenue(ctx context.Context) ([]entity.RevenueByCurrency, error) {
	query := `
		SELECT currency, COALESCE(SUM(amount), 0)
		FROM deals
		WHERE status = $1
		GROUP BY currency`

	rows, err := r.DB.QueryContext(ctx, query, entity.DealStatusPaid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.RevenueByCurrency
	for rows.Next() {
		var r entity.RevenueByCurrency
		if err := rows.Scan(&r.Currency, &r.Total); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
