package auth

import (
	"fmt"

	"github.com/bots-empire/base-bot/msgs"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/bots-empire/campaign-bot/internal/model"
)

// CheckChannelMembership re-checks the user against the campaign channel.
// Any API error is treated as "not a member": the campaign never unlocks
// on a failed check.
func (a *Auth) CheckChannelMembership(s *model.Situation, source string) bool {
	model.CheckMembership.WithLabelValues(
		a.bot.BotLink,
		s.BotLang,
		source,
	).Inc()

	member, err := a.bot.Bot.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: model.AdminSettings.GetAdvertChannelID(s.BotLang, model.CampaignChannel),
			UserID: s.User.ID,
		},
	})
	if err != nil {
		a.msgs.SendNotificationToDeveloper(
			fmt.Sprintf("%s // %s // error in check membership: %s", a.bot.BotLang, a.bot.BotLink, err.Error()),
			false)
		return false
	}

	return checkMemberStatus(member)
}

func checkMemberStatus(member tgbotapi.ChatMember) bool {
	if member.IsAdministrator() {
		return true
	}
	if member.IsCreator() {
		return true
	}
	if member.Status == "member" {
		return true
	}
	return false
}

// VerifyMembershipCommand handles the "I joined" callback. Moves the user
// from unverified to channel_ok when the membership check passes.
func (a *Auth) VerifyMembershipCommand(s *model.Situation) error {
	if s.User.Verified() {
		return a.msgs.SendSimpleMsg(s.User.ID, a.bot.LangText(s.User.Language, "tasks_already_completed"))
	}

	if !a.CheckChannelMembership(s, "verify_membership") {
		return a.sendJoinChannelInvitation(s)
	}

	if _, err := a.ledger.AdvanceState(s.User.ID, model.StateUnverified, model.StateChannelOK); err != nil {
		return errors.Wrap(err, "failed advance state to channel_ok")
	}

	return a.sendSocialInvitation(s)
}

// ConfirmSocialCommand handles the "I followed" callback. The social
// follow cannot be checked through the API, so the transition is taken on
// the user's word and the proof step follows.
func (a *Auth) ConfirmSocialCommand(s *model.Situation) error {
	if s.User.Verified() {
		return a.msgs.SendSimpleMsg(s.User.ID, a.bot.LangText(s.User.Language, "tasks_already_completed"))
	}

	if s.User.CampaignState == model.StateUnverified {
		return a.needCompletePrevious(s)
	}

	if _, err := a.ledger.AdvanceState(s.User.ID, model.StateChannelOK, model.StateSocialPending); err != nil {
		return errors.Wrap(err, "failed advance state to social_pending")
	}

	text := a.bot.LangText(s.User.Language, "send_proof_text")

	msg := tgbotapi.NewMessage(s.User.ID, text)
	msg.ReplyMarkup = msgs.NewIlMarkUp(
		msgs.NewIlRow(msgs.NewIlDataButton("verify_tasks_button", "/complete_verification")),
	).Build(a.bot.Language[s.User.Language])

	return a.msgs.SendMsgToUser(msg, s.User.ID)
}

// CompleteVerification finishes the task flow: the channel membership is
// re-checked, the one-time task reward is credited and, under the
// deferred policy, the referrer gets paid.
func (a *Auth) CompleteVerification(s *model.Situation) error {
	if s.User.Verified() {
		return a.msgs.SendSimpleMsg(s.User.ID, a.bot.LangText(s.User.Language, "tasks_already_completed"))
	}

	if s.User.CampaignState != model.StateSocialPending {
		return a.needCompletePrevious(s)
	}

	if !a.CheckChannelMembership(s, "complete_verification") {
		return a.sendJoinChannelInvitation(s)
	}

	reward := model.AdminSettings.GetParams(s.BotLang).TaskReward
	credited, err := a.ledger.CompleteTasks(s.User.ID, reward)
	if err != nil {
		return errors.Wrap(err, "failed complete tasks")
	}
	if !credited {
		return a.msgs.SendSimpleMsg(s.User.ID, a.bot.LangText(s.User.Language, "tasks_already_completed"))
	}

	if model.AdminSettings.GetParams(s.BotLang).ReferralPolicy == model.PolicyDeferred {
		a.rewardReferrer(s)
	}

	text := a.bot.LangText(s.User.Language, "verification_success",
		reward,
		model.AdminSettings.GetCurrency(s.BotLang))

	return a.msgs.NewParseMessage(s.User.ID, text)
}

func (a *Auth) rewardReferrer(s *model.Situation) {
	amount := model.AdminSettings.GetParams(s.BotLang).ReferralAmount

	referrerID, rewarded, err := a.ledger.RewardReferral(s.User.ID, amount)
	if err != nil {
		a.msgs.SendNotificationToDeveloper(
			fmt.Sprintf("%s // %s // error in reward referrer: %s", a.bot.BotLang, a.bot.BotLink, err.Error()),
			false)
		return
	}
	if !rewarded {
		return
	}

	model.ReferralsCredited.WithLabelValues(s.BotLang).Inc()

	referrer, err := a.ledger.GetUser(referrerID)
	if err != nil {
		return
	}

	text := a.bot.LangText(referrer.Language, "referral_verified_reward",
		amount,
		model.AdminSettings.GetCurrency(s.BotLang))

	_ = a.msgs.NewParseMessage(referrerID, text)
}

func (a *Auth) sendJoinChannelInvitation(s *model.Situation) error {
	text := a.bot.LangText(s.User.Language, "need_join_channel")

	msg := tgbotapi.NewMessage(s.User.ID, text)
	msg.ReplyMarkup = msgs.NewIlMarkUp(
		msgs.NewIlRow(msgs.NewIlURLButton("join_channel_button",
			model.AdminSettings.GetAdvertUrl(s.BotLang, model.CampaignChannel))),
		msgs.NewIlRow(msgs.NewIlDataButton("verify_tasks_button", "/verify_membership")),
	).Build(a.bot.Language[s.User.Language])

	return a.msgs.SendMsgToUser(msg, s.User.ID)
}

func (a *Auth) sendSocialInvitation(s *model.Situation) error {
	text := a.bot.LangText(s.User.Language, "social_confirm_text")

	msg := tgbotapi.NewMessage(s.User.ID, text)
	msg.ReplyMarkup = msgs.NewIlMarkUp(
		msgs.NewIlRow(msgs.NewIlURLButton("follow_social_button",
			model.AdminSettings.GetSocialURL(s.BotLang))),
		msgs.NewIlRow(msgs.NewIlDataButton("social_confirm_button", "/confirm_social")),
	).Build(a.bot.Language[s.User.Language])

	return a.msgs.SendMsgToUser(msg, s.User.ID)
}

func (a *Auth) needCompletePrevious(s *model.Situation) error {
	return a.msgs.SendSimpleMsg(s.User.ID, a.bot.LangText(s.User.Language, "need_complete_previous"))
}
