package store

import (
	"database/sql"

	"github.com/pkg/errors"

	"github.com/bots-empire/campaign-bot/internal/model"
)

// AddReferral records the referred user under the referrer. The referred
// id is the primary key, so a replayed /start can never record the same
// user twice or under a second referrer.
func (s *Store) AddReferral(referrerID, referredID int64) (bool, error) {
	tx, err := s.bot.GetDataBase().Begin()
	if err != nil {
		return false, errors.Wrap(err, "failed begin referral tx")
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
INSERT INTO campaign.referrals (referred_id, referrer_id, rewarded)
	VALUES ($1, $2, false)
ON CONFLICT (referred_id) DO NOTHING;`,
		referredID,
		referrerID)
	if err != nil {
		return false, errors.Wrap(err, "failed insert referral")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed get affected rows")
	}

	if affected == 0 {
		return false, nil
	}

	_, err = tx.Exec(`
UPDATE campaign.users
	SET referral_count = referral_count + 1
WHERE id = $1;`,
		referrerID)
	if err != nil {
		return false, errors.Wrap(err, "failed count referral")
	}

	return true, errors.Wrap(tx.Commit(), "failed commit referral tx")
}

// RewardReferral pays the referrer for the given referred user, once. The
// rewarded flag is flipped and the referrer credited in one transaction;
// a second call for the same referred id is a no-op.
func (s *Store) RewardReferral(referredID int64, amount int) (int64, bool, error) {
	tx, err := s.bot.GetDataBase().Begin()
	if err != nil {
		return 0, false, errors.Wrap(err, "failed begin reward tx")
	}
	defer tx.Rollback()

	var referrerID int64
	err = tx.QueryRow(`
UPDATE campaign.referrals
	SET rewarded = true
WHERE referred_id = $1
	AND rewarded = false
RETURNING referrer_id;`,
		referredID).Scan(&referrerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, errors.Wrap(err, "failed mark referral rewarded")
	}

	_, err = tx.Exec(`
UPDATE campaign.users
	SET balance = balance + $1,
	    total_earned = total_earned + $1
WHERE id = $2;`,
		amount,
		referrerID)
	if err != nil {
		return 0, false, errors.Wrap(err, "failed credit referrer")
	}

	if err := tx.Commit(); err != nil {
		return 0, false, errors.Wrap(err, "failed commit reward tx")
	}

	return referrerID, true, nil
}

// ReferrerOf returns the id of the user that referred the given user, or
// zero when the user joined without a referral code.
func (s *Store) ReferrerOf(referredID int64) (int64, error) {
	var referrerID int64
	err := s.bot.GetDataBase().QueryRow(`
SELECT referrer_id
	FROM campaign.referrals
WHERE referred_id = $1;`,
		referredID).Scan(&referrerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "failed get referrer")
	}

	return referrerID, nil
}

func (s *Store) ReferralsOf(referrerID int64) ([]*model.Referral, error) {
	rows, err := s.bot.GetDataBase().Query(`
SELECT referrer_id, referred_id, rewarded
	FROM campaign.referrals
WHERE referrer_id = $1;`,
		referrerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed get referrals")
	}
	defer rows.Close()

	var referrals []*model.Referral
	for rows.Next() {
		ref := &model.Referral{}
		if err := rows.Scan(&ref.ReferrerID, &ref.ReferredID, &ref.Rewarded); err != nil {
			return nil, model.ErrScanSqlRow
		}

		referrals = append(referrals, ref)
	}

	return referrals, rows.Err()
}
