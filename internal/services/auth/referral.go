package auth

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/bots-empire/campaign-bot/internal/model"
)

// ProcessReferralStart records the /start payload. The referred id is the
// primary key in the referrals table, so a replayed deep link can never
// attach the same user twice or to a second referrer.
func (a *Auth) ProcessReferralStart(s *model.Situation, payload string) error {
	referrerID, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return nil
	}

	if referrerID == s.User.ID {
		return nil
	}

	if _, err := a.ledger.GetUser(referrerID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil
		}
		return errors.Wrap(err, "failed get referrer")
	}

	added, err := a.ledger.AddReferral(referrerID, s.User.ID)
	if err != nil {
		return errors.Wrap(err, "failed add referral")
	}
	if !added {
		return nil
	}

	// An already verified user never passes through the task flow again,
	// so the deferred payout happens at record time for them.
	if model.AdminSettings.GetParams(s.BotLang).ReferralPolicy == model.PolicyImmediate || s.User.Verified() {
		a.rewardReferrer(s)
	}

	return nil
}

func (a *Auth) SendReferralLink(s *model.Situation) error {
	text := a.bot.LangText(s.User.Language, "referral_text",
		model.EncodeLink(s.BotLang, s.User.ID),
		model.AdminSettings.GetParams(s.BotLang).ReferralAmount,
		model.AdminSettings.GetCurrency(s.BotLang),
		s.User.ReferralCount)

	return a.msgs.NewParseMessage(s.User.ID, text)
}

// GetDailyBonus credits the daily bonus at most once per UTC day. The
// date guard lives in the ledger, so replayed taps are harmless.
func (a *Auth) GetDailyBonus(s *model.Situation) error {
	if !s.User.Verified() {
		return a.msgs.SendSimpleMsg(s.User.ID, a.bot.LangText(s.User.Language, "verify_first"))
	}

	amount := model.AdminSettings.GetParams(s.BotLang).DailyBonusAmount
	claimed, err := a.ledger.ClaimDailyBonus(s.User.ID, amount, todayUTC())
	if err != nil {
		return errors.Wrap(err, "failed claim daily bonus")
	}
	if !claimed {
		return a.msgs.SendSimpleMsg(s.User.ID, a.bot.LangText(s.User.Language, "daily_bonus_already_claimed"))
	}

	model.BonusClaims.WithLabelValues(s.BotLang).Inc()

	text := a.bot.LangText(s.User.Language, "daily_bonus_received",
		amount,
		model.AdminSettings.GetCurrency(s.BotLang))

	return a.msgs.NewParseMessage(s.User.ID, text)
}

func (a *Auth) SendUserLevel(s *model.Situation) error {
	level := model.CalcLevel(s.User.ReferralCount, s.User.TotalEarned)

	text := a.bot.LangText(s.User.Language, "level_text",
		level,
		s.User.ReferralCount,
		s.User.TotalEarned,
		model.AdminSettings.GetCurrency(s.BotLang),
		nextLevelHint(s.User))

	return a.msgs.NewParseMessage(s.User.ID, text)
}

func nextLevelHint(u *model.User) string {
	var next *model.CampaignLevel
	for i := range model.LevelScale {
		level := &model.LevelScale[i]
		if u.ReferralCount >= level.MinReferrals && u.TotalEarned >= level.MinEarned {
			break
		}
		next = level
	}

	if next == nil {
		return "-"
	}
	return fmt.Sprintf("%s (%d / %d)", next.Name, next.MinReferrals, next.MinEarned)
}
