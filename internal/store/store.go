package store

import (
	"database/sql"

	"github.com/pkg/errors"

	"github.com/bots-empire/campaign-bot/internal/model"
)

// Store is the campaign ledger. Every balance mutation happens inside a
// single conditional statement or transaction, so a gating condition and
// its credit/debit can never be observed apart.
type Store struct {
	bot *model.GlobalBot
}

func NewStore(bot *model.GlobalBot) *Store {
	return &Store{
		bot: bot,
	}
}

func (s *Store) GetUser(userID int64) (*model.User, error) {
	rows, err := s.bot.GetDataBase().Query(`
SELECT id, balance, total_earned, total_withdrawn, campaign_state, tasks_done, daily_bonus_at,
       bank, account_number, account_name, referral_count, language, status
	FROM campaign.users
WHERE id = $1;`,
		userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed get user")
	}

	users, err := readUsers(rows)
	if err != nil {
		return nil, errors.Wrap(err, "failed read user")
	}

	if len(users) == 0 {
		return nil, model.ErrUserNotFound
	}

	return users[0], nil
}

// CreateUser persists a fresh record with default zero values. Replayed
// /start commands are harmless: an existing record is left untouched.
func (s *Store) CreateUser(user *model.User) error {
	_, err := s.bot.GetDataBase().Exec(`
INSERT INTO campaign.users (id, campaign_state, language, status)
	VALUES ($1, $2, $3, 'active')
ON CONFLICT (id) DO NOTHING;`,
		user.ID,
		model.StateUnverified,
		user.Language)

	return errors.Wrap(err, "failed create user")
}

func (s *Store) SetLanguage(userID int64, lang string) error {
	_, err := s.bot.GetDataBase().Exec(`
UPDATE campaign.users
	SET language = $1
WHERE id = $2;`,
		lang,
		userID)

	return errors.Wrap(err, "failed set language")
}

func (s *Store) TopUsersByBalance(limit int) ([]*model.User, error) {
	rows, err := s.bot.GetDataBase().Query(`
SELECT id, balance, total_earned, total_withdrawn, campaign_state, tasks_done, daily_bonus_at,
       bank, account_number, account_name, referral_count, language, status
	FROM campaign.users
ORDER BY balance DESC
LIMIT $1;`,
		limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed get top users")
	}

	return readUsers(rows)
}

// BalanceRank returns the user's 1-based position when ordered by balance.
func (s *Store) BalanceRank(userID int64) (int, error) {
	var rank int
	err := s.bot.GetDataBase().QueryRow(`
SELECT COUNT(*) + 1
	FROM campaign.users
WHERE balance > (SELECT balance FROM campaign.users WHERE id = $1);`,
		userID).Scan(&rank)
	if err != nil {
		return 0, errors.Wrap(err, "failed get balance rank")
	}

	return rank, nil
}

func readUsers(rows *sql.Rows) ([]*model.User, error) {
	defer rows.Close()

	var users []*model.User

	for rows.Next() {
		user := &model.User{}

		if err := rows.Scan(
			&user.ID,
			&user.Balance,
			&user.TotalEarned,
			&user.TotalWithdrawn,
			&user.CampaignState,
			&user.TasksDone,
			&user.DailyBonusAt,
			&user.Bank,
			&user.AccountNumber,
			&user.AccountName,
			&user.ReferralCount,
			&user.Language,
			&user.Status); err != nil {
			return nil, model.ErrScanSqlRow
		}

		users = append(users, user)
	}

	return users, rows.Err()
}
