package store

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/bots-empire/campaign-bot/internal/model"
)

const dateLayout = "2006-01-02"

// Withdraw debits the balance and appends a pending withdrawal record in
// one transaction. The conditional debit keeps the balance non-negative:
// when the balance is short nothing is written and ErrInsufficientBalance
// comes back.
func (s *Store) Withdraw(userID int64, amount int) (*model.Withdrawal, error) {
	tx, err := s.bot.GetDataBase().Begin()
	if err != nil {
		return nil, errors.Wrap(err, "failed begin withdrawal tx")
	}
	defer tx.Rollback()

	withdrawal := &model.Withdrawal{
		UserID:      userID,
		Amount:      amount,
		RequestedAt: time.Now().UTC().Format(dateLayout),
		Status:      model.WithdrawalPending,
	}

	err = tx.QueryRow(`
UPDATE campaign.users
	SET balance = balance - $1,
	    total_withdrawn = total_withdrawn + $1
WHERE id = $2
	AND balance >= $1
RETURNING bank, account_number, account_name;`,
		amount,
		userID).Scan(&withdrawal.Bank, &withdrawal.AccountNumber, &withdrawal.AccountName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrInsufficientBalance
		}
		return nil, errors.Wrap(err, "failed debit balance")
	}

	err = tx.QueryRow(`
INSERT INTO campaign.withdrawals (user_id, amount, requested_at, status, bank, account_number, account_name)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id;`,
		withdrawal.UserID,
		withdrawal.Amount,
		withdrawal.RequestedAt,
		withdrawal.Status,
		withdrawal.Bank,
		withdrawal.AccountNumber,
		withdrawal.AccountName).Scan(&withdrawal.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed append withdrawal")
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "failed commit withdrawal tx")
	}

	return withdrawal, nil
}

func (s *Store) Withdrawals(userID int64) ([]*model.Withdrawal, error) {
	rows, err := s.bot.GetDataBase().Query(`
SELECT id, user_id, amount, requested_at, status, bank, account_number, account_name
	FROM campaign.withdrawals
WHERE user_id = $1
ORDER BY id;`,
		userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed get withdrawals")
	}
	defer rows.Close()

	var withdrawals []*model.Withdrawal
	for rows.Next() {
		w := &model.Withdrawal{}

		if err := rows.Scan(
			&w.ID,
			&w.UserID,
			&w.Amount,
			&w.RequestedAt,
			&w.Status,
			&w.Bank,
			&w.AccountNumber,
			&w.AccountName); err != nil {
			return nil, model.ErrScanSqlRow
		}

		withdrawals = append(withdrawals, w)
	}

	return withdrawals, rows.Err()
}
