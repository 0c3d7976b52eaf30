package store

import (
	"github.com/pkg/errors"

	"github.com/bots-empire/campaign-bot/internal/model"
)

// AdvanceState moves the campaign state from -> to and reports whether the
// transition happened. The WHERE clause makes the transition conditional,
// so a verified user can never be regressed by a replayed update.
func (s *Store) AdvanceState(userID int64, from, to string) (bool, error) {
	res, err := s.bot.GetDataBase().Exec(`
UPDATE campaign.users
	SET campaign_state = $1
WHERE id = $2
	AND campaign_state = $3;`,
		to,
		userID,
		from)
	if err != nil {
		return false, errors.Wrap(err, "failed advance campaign state")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed get affected rows")
	}

	return affected == 1, nil
}

// CompleteTasks marks the one-time tasks as done, verifies the user and
// credits the reward. The tasks_done guard keeps the credit exactly-once:
// a resubmitted proof changes nothing.
func (s *Store) CompleteTasks(userID int64, reward int) (bool, error) {
	res, err := s.bot.GetDataBase().Exec(`
UPDATE campaign.users
	SET tasks_done = true,
	    campaign_state = $1,
	    balance = balance + $2,
	    total_earned = total_earned + $2
WHERE id = $3
	AND tasks_done = false;`,
		model.StateVerified,
		reward,
		userID)
	if err != nil {
		return false, errors.Wrap(err, "failed complete tasks")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed get affected rows")
	}

	return affected == 1, nil
}

// ClaimDailyBonus credits the bonus unless the stored claim date already
// equals today's UTC date.
func (s *Store) ClaimDailyBonus(userID int64, amount int, date string) (bool, error) {
	res, err := s.bot.GetDataBase().Exec(`
UPDATE campaign.users
	SET balance = balance + $1,
	    total_earned = total_earned + $1,
	    daily_bonus_at = $2
WHERE id = $3
	AND daily_bonus_at <> $2;`,
		amount,
		date,
		userID)
	if err != nil {
		return false, errors.Wrap(err, "failed claim daily bonus")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed get affected rows")
	}

	return affected == 1, nil
}

func (s *Store) SetAccount(userID int64, bank, number, name string) error {
	_, err := s.bot.GetDataBase().Exec(`
UPDATE campaign.users
	SET bank = $1,
	    account_number = $2,
	    account_name = $3
WHERE id = $4;`,
		bank,
		number,
		name,
		userID)

	return errors.Wrap(err, "failed set account")
}
