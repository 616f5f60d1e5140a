package repositories

import (
	"context"
	"time"

	"github.com/topheroes-tools/redeembot/redeembot/database/models"
	"github.com/uptrace/bun"
)

// AccountRepository is the PostgreSQL roster. It satisfies roster.Store.
type AccountRepository struct {
	*BaseRepository
	now func() time.Time
}

func NewAccountRepository(db *bun.DB) *AccountRepository {
	return &AccountRepository{BaseRepository: NewBaseRepository(db, "roster_accounts"), now: time.Now}
}

func (r *AccountRepository) Add(ctx context.Context, accountID string) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewInsert().
		Model(&models.RosterAccount{AccountID: accountID, AddedAt: r.now()}).
		On("CONFLICT (account_id) DO NOTHING").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		return false, r.HandleError("add", accountID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, r.HandleError("add", accountID, err)
	}
	return n > 0, nil
}

func (r *AccountRepository) Remove(ctx context.Context, accountID string) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewDelete().
		Model((*models.RosterAccount)(nil)).
		Where("account_id = ?", accountID).
		Exec(ctx)
	if err != nil {
		return false, r.HandleError("remove", accountID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, r.HandleError("remove", accountID, err)
	}
	return n > 0, nil
}

func (r *AccountRepository) Clear(ctx context.Context) (int, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewDelete().
		Model((*models.RosterAccount)(nil)).
		Where("TRUE").
		Exec(ctx)
	if err != nil {
		return 0, r.HandleError("clear", "", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, r.HandleError("clear", "", err)
	}
	return int(n), nil
}

func (r *AccountRepository) List(ctx context.Context) ([]string, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var ids []string
	err := r.db.NewSelect().
		Model((*models.RosterAccount)(nil)).
		Column("account_id").
		Order("added_at ASC", "account_id ASC").
		Scan(ctx, &ids)
	if err != nil {
		return nil, r.HandleError("list", "", err)
	}
	return ids, nil
}

func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	n, err := r.db.NewSelect().
		Model((*models.RosterAccount)(nil)).
		Count(ctx)
	if err != nil {
		return 0, r.HandleError("count", "", err)
	}
	return n, nil
}

func (r *AccountRepository) Has(ctx context.Context, accountID string) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	exists, err := r.db.NewSelect().
		Model((*models.RosterAccount)(nil)).
		Where("account_id = ?", accountID).
		Exists(ctx)
	if err != nil {
		return false, r.HandleError("has", accountID, err)
	}
	return exists, nil
}
