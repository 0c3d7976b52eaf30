package administrator

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bots-empire/base-bot/msgs"

	"github.com/bots-empire/campaign-bot/internal/db"
	"github.com/bots-empire/campaign-bot/internal/model"
)

const (
	referralAmount      = "referral_amount"
	referralPolicy      = "referral_policy"
	taskReward          = "task_reward"
	dailyBonusAmount    = "daily_bonus_amount"
	minWithdrawalAmount = "min_withdrawal_amount"
	currencyType        = "currency"
)

type AdminMessagesHandlers struct {
	Handlers map[string]model.Handler
}

func (h *AdminMessagesHandlers) GetHandler(command string) model.Handler {
	return h.Handlers[command]
}

func (h *AdminMessagesHandlers) Init(adminSrv *Admin) {
	//Delete Admin command
	h.OnCommand("/delete_admin", adminSrv.RemoveAdminCommand)

	//Change campaign parameters command
	h.OnCommand("/campaign_setting", adminSrv.UpdateParameterCommand)
	h.OnCommand("/change_text_url", adminSrv.SetNewChannelCommand)
	h.OnCommand("/set_social_url", adminSrv.SetSocialURLCommand)
	h.OnCommand("/set_operator_chat", adminSrv.SetOperatorChatCommand)

	//Mailing command
	h.OnCommand("/set_advert_text", adminSrv.GetAdvertTextCommand)
}

func (h *AdminMessagesHandlers) OnCommand(command string, handler model.Handler) {
	h.Handlers[command] = handler
}

type AdminCallbackHandlers struct {
	Handlers map[string]model.Handler
}

func (h *AdminCallbackHandlers) GetHandler(command string) model.Handler {
	return h.Handlers[command]
}

func (h *AdminCallbackHandlers) Init(adminSrv *Admin) {
	//Main admin command
	h.OnCommand("/send_menu", adminSrv.AdminMenuCommand)
	h.OnCommand("/admin_list", adminSrv.AdminListCommand)
	h.OnCommand("/add_admin_msg", adminSrv.NewAdminToListCommand)
	h.OnCommand("/delete_admin", adminSrv.DeleteAdminCommand)

	//Campaign setting command
	h.OnCommand("/campaign_setting", adminSrv.CampaignSettingCommand)
	h.OnCommand("/change_parameter", adminSrv.ChangeParameterCommand)
	h.OnCommand("/set_policy", adminSrv.SetReferralPolicyCommand)

	//Channel setting command
	h.OnCommand("/channel_setting", adminSrv.ChannelSettingCommand)
	h.OnCommand("/change_channel", adminSrv.ChangeChannelCommand)
	h.OnCommand("/change_social", adminSrv.ChangeSocialCommand)
	h.OnCommand("/change_operator", adminSrv.ChangeOperatorCommand)

	//Mailing command
	h.OnCommand("/mailing_menu", adminSrv.MailingMenuCommand)
	h.OnCommand("/change_advert_text", adminSrv.ChangeAdvertTextCommand)
	h.OnCommand("/start_mailing", adminSrv.StartMailingCommand)

	//Statistic command
	h.OnCommand("/send_statistic", adminSrv.SendStatisticCommand)
}

func (h *AdminCallbackHandlers) OnCommand(command string, handler model.Handler) {
	h.Handlers[command] = handler
}

func (a *Admin) CheckAdminMessage(s *model.Situation) error {
	if !ContainsInAdmin(s.User.ID) {
		return a.notAdmin(s.User)
	}

	s.Command, s.Err = a.bot.GetCommandFromText(s.Message, s.User.Language, s.User.ID)
	if s.Err == nil {
		Handler := model.Bots[s.BotLang].AdminMessageHandler.
			GetHandler(s.Command)

		if Handler != nil {
			return Handler(s)
		}
	}

	s.Command = strings.TrimLeft(strings.Split(s.Params.Level, "?")[0], "admin")

	Handler := model.Bots[s.BotLang].AdminMessageHandler.
		GetHandler(s.Command)

	if Handler != nil {
		return Handler(s)
	}

	return model.ErrCommandNotConverted
}

func (a *Admin) CheckAdminCallback(s *model.Situation) error {
	if !ContainsInAdmin(s.User.ID) {
		return a.notAdmin(s.User)
	}

	s.Command = strings.TrimLeft(s.Command, "admin")

	Handler := model.Bots[s.BotLang].AdminCallBackHandler.
		GetHandler(s.Command)

	if Handler != nil {
		return Handler(s)
	}

	return model.ErrCommandNotConverted
}

func (a *Admin) RemoveAdminCommand(s *model.Situation) error {
	lang := model.AdminLang(s.User.ID)
	adminId, err := strconv.ParseInt(s.Message.Text, 10, 64)
	if err != nil {
		text := a.bot.AdminText(lang, "incorrect_admin_id_text")
		return a.msgs.NewParseMessage(s.User.ID, text)
	}

	if !checkAdminIDInTheList(adminId) {
		text := a.bot.AdminText(lang, "incorrect_admin_id_text")
		return a.msgs.NewParseMessage(s.User.ID, text)
	}

	delete(model.AdminSettings.AdminID, adminId)
	model.SaveAdminSettings()
	if err := a.setAdminBackButton(s.User.ID, "admin_removed_status"); err != nil {
		return err
	}
	db.DeleteOldAdminMsg(s.BotLang, s.User.ID)

	s.Command = "admin/admin_list"
	s.CallbackQuery = &tgbotapi.CallbackQuery{Data: "admin/admin_list"}
	return a.AdminListCommand(s)
}

func checkAdminIDInTheList(adminID int64) bool {
	_, inMap := model.AdminSettings.AdminID[adminID]
	return inMap
}

func (a *Admin) CampaignSettingCommand(s *model.Situation) error {
	lang := model.AdminLang(s.User.ID)
	text := a.adminFormatText(lang, "campaign_setting_text",
		model.AdminSettings.GetParams(s.BotLang).ReferralAmount,
		model.AdminSettings.GetParams(s.BotLang).ReferralPolicy,
		model.AdminSettings.GetParams(s.BotLang).TaskReward,
		model.AdminSettings.GetParams(s.BotLang).DailyBonusAmount,
		model.AdminSettings.GetParams(s.BotLang).MinWithdrawalAmount,
		model.AdminSettings.GetCurrency(s.BotLang))

	markUp := msgs.NewIlMarkUp(
		msgs.NewIlRow(msgs.NewIlAdminButton("change_referral_amount_button", "admin/change_parameter?"+referralAmount)),
		msgs.NewIlRow(msgs.NewIlAdminButton("change_referral_policy_button", "admin/change_parameter?"+referralPolicy)),
		msgs.NewIlRow(msgs.NewIlAdminButton("change_task_reward_button", "admin/change_parameter?"+taskReward)),
		msgs.NewIlRow(msgs.NewIlAdminButton("change_daily_bonus_button", "admin/change_parameter?"+dailyBonusAmount)),
		msgs.NewIlRow(msgs.NewIlAdminButton("change_min_withdrawal_button", "admin/change_parameter?"+minWithdrawalAmount)),
		msgs.NewIlRow(msgs.NewIlAdminButton("change_currency_button", "admin/change_parameter?"+currencyType)),
		msgs.NewIlRow(msgs.NewIlAdminButton("back_to_main_menu", "admin/send_menu")),
	).Build(a.bot.AdminLibrary[lang])

	return a.sendMsgAdnAnswerCallback(s, &markUp, text)
}

func (a *Admin) ChangeParameterCommand(s *model.Situation) error {
	lang := model.AdminLang(s.User.ID)
	partition := strings.Split(s.CallbackQuery.Data, "?")[1]

	if partition == referralPolicy {
		return a.sendPolicyMenu(s, lang)
	}

	db.RdbSetUser(s.BotLang, s.User.ID, "admin/campaign_setting?"+partition)

	text := a.bot.AdminText(lang, "type_new_"+partition)
	markUp := msgs.NewMarkUp(
		msgs.NewRow(msgs.NewAdminButton("back_to_main_menu")),
		msgs.NewRow(msgs.NewAdminButton("admin_log_out_text")),
	).Build(a.bot.AdminLibrary[lang])

	_ = a.msgs.SendAdminAnswerCallback(s.CallbackQuery, "type_the_text")
	return a.msgs.NewParseMarkUpMessage(s.User.ID, &markUp, text)
}

func (a *Admin) sendPolicyMenu(s *model.Situation, lang string) error {
	text := a.adminFormatText(lang, "referral_policy_text",
		model.AdminSettings.GetParams(s.BotLang).ReferralPolicy)

	markUp := msgs.NewIlMarkUp(
		msgs.NewIlRow(msgs.NewIlAdminButton("policy_immediate_button", "admin/set_policy?"+model.PolicyImmediate)),
		msgs.NewIlRow(msgs.NewIlAdminButton("policy_deferred_button", "admin/set_policy?"+model.PolicyDeferred)),
		msgs.NewIlRow(msgs.NewIlAdminButton("back_to_main_menu", "admin/send_menu")),
	).Build(a.bot.AdminLibrary[lang])

	return a.sendMsgAdnAnswerCallback(s, &markUp, text)
}

func (a *Admin) SetReferralPolicyCommand(s *model.Situation) error {
	policy := strings.Split(s.CallbackQuery.Data, "?")[1]
	if policy != model.PolicyImmediate && policy != model.PolicyDeferred {
		return model.ErrCommandNotConverted
	}

	model.AdminSettings.UpdateReferralPolicy(s.BotLang, policy)
	model.SaveAdminSettings()

	if err := a.msgs.SendAdminAnswerCallback(s.CallbackQuery, "operation_completed"); err != nil {
		return err
	}

	return a.CampaignSettingCommand(s)
}

// UpdateParameterCommand consumes the typed value for the parameter
// packed into the redis level by ChangeParameterCommand.
func (a *Admin) UpdateParameterCommand(s *model.Situation) error {
	partition := strings.Split(s.Params.Level, "?")[1]

	if partition == currencyType {
		model.AdminSettings.UpdateCurrency(s.BotLang, s.Message.Text)
	} else {
		err := a.setNewIntParameter(s, partition)
		if err != nil {
			return err
		}
	}

	model.SaveAdminSettings()
	err := a.setAdminBackButton(s.User.ID, "operation_completed")
	if err != nil {
		return nil
	}
	db.DeleteOldAdminMsg(s.BotLang, s.User.ID)
	s.Command = "admin/campaign_setting"

	return a.CampaignSettingCommand(s)
}

func (a *Admin) setNewIntParameter(s *model.Situation, partition string) error {
	lang := model.AdminLang(s.User.ID)

	newAmount, err := strconv.Atoi(s.Message.Text)
	if err != nil || newAmount <= 0 {
		text := a.bot.AdminText(lang, "incorrect_parameter_change_input")
		return a.msgs.NewParseMessage(s.User.ID, text)
	}

	switch partition {
	case referralAmount:
		model.AdminSettings.UpdateReferralAmount(s.BotLang, newAmount)
	case taskReward:
		model.AdminSettings.UpdateTaskReward(s.BotLang, newAmount)
	case dailyBonusAmount:
		model.AdminSettings.UpdateDailyBonusAmount(s.BotLang, newAmount)
	case minWithdrawalAmount:
		model.AdminSettings.UpdateMinWithdrawalAmount(s.BotLang, newAmount)
	}

	return nil
}

func (a *Admin) ChannelSettingCommand(s *model.Situation) error {
	lang := model.AdminLang(s.User.ID)
	text := a.adminFormatText(lang, "channel_setting_text",
		model.AdminSettings.GetAdvertUrl(s.BotLang, model.CampaignChannel),
		model.AdminSettings.GetAdvertChannelID(s.BotLang, model.CampaignChannel),
		model.AdminSettings.GetSocialURL(s.BotLang),
		model.AdminSettings.GetOperatorChatID(s.BotLang))

	markUp := msgs.NewIlMarkUp(
		msgs.NewIlRow(msgs.NewIlAdminButton("change_channel_button", "admin/change_channel")),
		msgs.NewIlRow(msgs.NewIlAdminButton("change_social_button", "admin/change_social")),
		msgs.NewIlRow(msgs.NewIlAdminButton("change_operator_button", "admin/change_operator")),
		msgs.NewIlRow(msgs.NewIlAdminButton("back_to_main_menu", "admin/send_menu")),
	).Build(a.bot.AdminLibrary[lang])

	return a.sendMsgAdnAnswerCallback(s, &markUp, text)
}

func (a *Admin) ChangeChannelCommand(s *model.Situation) error {
	lang := model.AdminLang(s.User.ID)
	db.RdbSetUser(s.BotLang, s.User.ID, "admin/change_text_url?change_url?"+strconv.Itoa(model.CampaignChannel))

	_ = a.msgs.SendAdminAnswerCallback(s.CallbackQuery, "type_the_text")
	return a.msgs.NewParseMessage(s.User.ID, a.bot.AdminText(lang, "type_channel_url"))
}

func (a *Admin) ChangeSocialCommand(s *model.Situation) error {
	lang := model.AdminLang(s.User.ID)
	db.RdbSetUser(s.BotLang, s.User.ID, "admin/set_social_url")

	_ = a.msgs.SendAdminAnswerCallback(s.CallbackQuery, "type_the_text")
	return a.msgs.NewParseMessage(s.User.ID, a.bot.AdminText(lang, "type_social_url"))
}

func (a *Admin) ChangeOperatorCommand(s *model.Situation) error {
	lang := model.AdminLang(s.User.ID)
	db.RdbSetUser(s.BotLang, s.User.ID, "admin/set_operator_chat")

	_ = a.msgs.SendAdminAnswerCallback(s.CallbackQuery, "type_the_text")
	return a.msgs.NewParseMessage(s.User.ID, a.bot.AdminText(lang, "type_operator_chat"))
}

// SetNewChannelCommand expects two lines: the channel chat id and the
// public invite url.
func (a *Admin) SetNewChannelCommand(s *model.Situation) error {
	lang := model.AdminLang(s.User.ID)
	channel, _ := strconv.Atoi(strings.Split(s.Params.Level, "?")[2])

	url, chatID := getUrlAndChatID(s.Message)
	if chatID == 0 {
		text := a.bot.AdminText(lang, "chat_id_not_update")
		return a.msgs.NewParseMessage(s.User.ID, text)
	}

	model.AdminSettings.UpdateAdvertChannelID(s.BotLang, chatID, channel)
	model.AdminSettings.UpdateAdvertUrl(s.BotLang, channel, url)
	model.SaveAdminSettings()

	if err := a.setAdminBackButton(s.User.ID, "operation_completed"); err != nil {
		return err
	}
	db.RdbSetUser(s.BotLang, s.User.ID, "admin")
	db.DeleteOldAdminMsg(s.BotLang, s.User.ID)

	s.Command = "admin/channel_setting"
	return a.ChannelSettingCommand(s)
}

func (a *Admin) SetSocialURLCommand(s *model.Situation) error {
	model.AdminSettings.UpdateSocialURL(s.BotLang, strings.TrimSpace(s.Message.Text))
	model.SaveAdminSettings()

	if err := a.setAdminBackButton(s.User.ID, "operation_completed"); err != nil {
		return err
	}
	db.RdbSetUser(s.BotLang, s.User.ID, "admin")

	s.Command = "admin/channel_setting"
	return a.ChannelSettingCommand(s)
}

func (a *Admin) SetOperatorChatCommand(s *model.Situation) error {
	lang := model.AdminLang(s.User.ID)

	chatID, err := strconv.ParseInt(strings.TrimSpace(s.Message.Text), 10, 64)
	if err != nil {
		text := a.bot.AdminText(lang, "chat_id_not_update")
		return a.msgs.NewParseMessage(s.User.ID, text)
	}

	model.AdminSettings.UpdateOperatorChatID(s.BotLang, chatID)
	model.SaveAdminSettings()

	if err := a.setAdminBackButton(s.User.ID, "operation_completed"); err != nil {
		return err
	}
	db.RdbSetUser(s.BotLang, s.User.ID, "admin")

	s.Command = "admin/channel_setting"
	return a.ChannelSettingCommand(s)
}

func getUrlAndChatID(message *tgbotapi.Message) (string, int64) {
	data := strings.Split(message.Text, "\n")
	if len(data) != 2 {
		return "", 0
	}

	chatId, err := strconv.Atoi(data[0])
	if err != nil {
		return "", 0
	}

	return data[1], int64(chatId)
}
