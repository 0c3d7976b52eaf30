package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/roylee0704/gron"

	"github.com/bots-empire/base-bot/msgs"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bots-empire/campaign-bot/internal/db"
	"github.com/bots-empire/campaign-bot/internal/log"
	"github.com/bots-empire/campaign-bot/internal/model"
	"github.com/bots-empire/campaign-bot/internal/services/administrator"
	"github.com/bots-empire/campaign-bot/internal/utils"
)

const (
	updateCounterHeader = "Today Update's counter: %d"
	updatePrintHeader   = "update number: %d    // campaign-bot-update:  %s %s"
	godUserID           = 1418862576

	defaultTimeInServiceMod = time.Hour * 24
)

type MessagesHandlers struct {
	Handlers map[string]model.Handler
}

func (h *MessagesHandlers) GetHandler(command string) model.Handler {
	return h.Handlers[command]
}

func (h *MessagesHandlers) Init(userSrv *Users, adminSrv *administrator.Admin) {
	//Start command
	h.OnCommand("/select_language", userSrv.SelectLangCommand)
	h.OnCommand("/start", userSrv.StartCommand)
	h.OnCommand("/admin", adminSrv.AdminLoginCommand)

	//Main command
	h.OnCommand("/main_balance", userSrv.SendBalanceCommand)
	h.OnCommand("/main_tasks", userSrv.SendTasksCommand)
	h.OnCommand("/main_referral", userSrv.ReferralLinkCommand)
	h.OnCommand("/main_daily_bonus", userSrv.DailyBonusCommand)
	h.OnCommand("/main_level", userSrv.UserLevelCommand)
	h.OnCommand("/main_top_players", userSrv.TopPlayersCommand)

	//Payout command
	h.OnCommand("/main_set_account", userSrv.SetAccountCommand)
	h.OnCommand("/set_account_bank", userSrv.AccountBankCommand)
	h.OnCommand("/set_account_number", userSrv.AccountNumberCommand)
	h.OnCommand("/set_account_name", userSrv.AccountNameCommand)
	h.OnCommand("/main_withdrawal", userSrv.ReqWithdrawalAmountCommand)
	h.OnCommand("/withdrawal_amount", userSrv.WithdrawalAmountCommand)
	h.OnCommand("/main_withdrawal_history", userSrv.WithdrawalHistoryCommand)

	//Proof command
	h.OnCommand("/submit_proof", userSrv.SubmitProofCommand)

	//Log out command
	h.OnCommand("/admin_log_out", userSrv.AdminLogOutCommand)

	//Tech command
	h.OnCommand("/mmon", userSrv.MaintenanceModeOnCommand)
	h.OnCommand("/mmoff", userSrv.MaintenanceModeOffCommand)
}

func (h *MessagesHandlers) OnCommand(command string, handler model.Handler) {
	h.Handlers[command] = handler
}

func (u *Users) ActionsWithUpdates(logger log.Logger, sortCentre *utils.Spreader, cron *gron.Cron) {
	for update := range u.bot.Chanel {
		localUpdate := update

		go u.checkUpdate(&localUpdate, logger, sortCentre)
	}
}

func (u *Users) checkUpdate(update *tgbotapi.Update, logger log.Logger, sortCentre *utils.Spreader) {
	defer u.panicCather(update)

	if update.Message == nil && update.CallbackQuery == nil {
		return
	}

	if update.Message != nil && update.Message.PinnedMessage != nil {
		return
	}

	u.printNewUpdate(update, logger)
	if update.Message != nil {
		var command string
		user, err := u.auth.CheckingTheUser(update.Message)
		if err == model.ErrNotSelectedLanguage {
			command = "/select_language"
		} else if err != nil {
			u.smthWentWrong(update.Message.Chat.ID, u.bot.BotLang)
			logger.Warn("err with check user: %s", err.Error())
			return
		}

		situation := createSituationFromMsg(u.bot.BotLang, update.Message, user)
		situation.Command = command

		u.checkMessage(&situation, logger, sortCentre)
		return
	}

	if update.CallbackQuery != nil {
		if strings.Contains(update.CallbackQuery.Data, "/language") {
			err := u.auth.SetStartLanguage(update.CallbackQuery)
			if err != nil {
				u.smthWentWrong(update.CallbackQuery.Message.Chat.ID, u.bot.BotLang)
				logger.Warn("err with set start language: %s", err.Error())
			}
		}
		situation, err := u.createSituationFromCallback(u.bot.BotLang, update.CallbackQuery)
		if err != nil {
			u.smthWentWrong(update.CallbackQuery.Message.Chat.ID, u.bot.BotLang)
			logger.Warn("err with create situation from callback: %s", err.Error())
			return
		}

		u.checkCallbackQuery(situation, logger, sortCentre)
		return
	}
}

func (u *Users) printNewUpdate(update *tgbotapi.Update, logger log.Logger) {
	model.UpdateStatistic.Mu.Lock()
	defer model.UpdateStatistic.Mu.Unlock()

	if (time.Now().Unix())/86400 > int64(model.UpdateStatistic.Day) {
		u.sendTodayUpdateMsg()
	}

	model.UpdateStatistic.Counter++
	model.SaveUpdateStatistic()

	model.HandleUpdates.WithLabelValues(
		u.bot.BotLink,
		u.bot.BotLang,
	).Inc()

	if update.Message != nil {
		if update.Message.Text != "" {
			logger.Info(updatePrintHeader, model.UpdateStatistic.Counter, u.bot.BotLang, update.Message.Text)
			return
		}
	}

	if update.CallbackQuery != nil {
		logger.Info(updatePrintHeader, model.UpdateStatistic.Counter, u.bot.BotLang, update.CallbackQuery.Data)
		return
	}
}

func (u *Users) sendTodayUpdateMsg() {
	text := fmt.Sprintf(updateCounterHeader, model.UpdateStatistic.Counter)
	u.Msgs.SendNotificationToDeveloper(text, true)

	model.ResetUpdateStatistic()
}

func createSituationFromMsg(botLang string, message *tgbotapi.Message, user *model.User) model.Situation {
	return model.Situation{
		Message: message,
		BotLang: botLang,
		User:    user,
		Params: &model.Parameters{
			Level: db.GetLevel(botLang, message.From.ID),
		},
	}
}

func (u *Users) createSituationFromCallback(botLang string, callbackQuery *tgbotapi.CallbackQuery) (*model.Situation, error) {
	user, err := u.auth.GetUser(callbackQuery.From.ID)
	if err != nil {
		return &model.Situation{}, err
	}

	return &model.Situation{
		CallbackQuery: callbackQuery,
		BotLang:       botLang,
		User:          user,
		Command:       strings.Split(callbackQuery.Data, "?")[0],
		Params: &model.Parameters{
			Level: db.GetLevel(botLang, callbackQuery.From.ID),
		},
	}, nil
}

func (u *Users) checkMessage(situation *model.Situation, logger log.Logger, sortCentre *utils.Spreader) {
	maintenanceMode := model.AdminSettings.UnderMaintenance(situation.BotLang)

	if situation.Command == "" && situation.Message != nil && len(situation.Message.Photo) != 0 {
		situation.Command = "/submit_proof"
	}

	if situation.Command == "" {
		situation.Command, situation.Err = u.bot.GetCommandFromText(
			situation.Message, situation.User.Language, situation.User.ID)
	}

	if situation.Err == nil && (!maintenanceMode || isTechCommand(situation.Command)) {
		handler := model.Bots[situation.BotLang].MessageHandler.
			GetHandler(situation.Command)

		if handler != nil {
			sortCentre.ServeHandler(handler, situation, func(err error) {
				text := fmt.Sprintf("%s // %s // error with serve user msg command: %s\ncommand = '%s'",
					u.bot.BotLang,
					u.bot.BotLink,
					err.Error(),
					situation.Command,
				)
				u.Msgs.SendNotificationToDeveloper(text, false)

				logger.Warn(text)
				u.smthWentWrong(situation.Message.Chat.ID, situation.User.Language)
			})
			return
		}
	}

	situation.Command = strings.Split(situation.Params.Level, "?")[0]

	handler := model.Bots[situation.BotLang].MessageHandler.
		GetHandler(situation.Command)

	if handler != nil {
		sortCentre.ServeHandler(handler, situation, func(err error) {
			text := fmt.Sprintf("%s // %s // error with serve user level command: %s\ncommand = '%s'",
				u.bot.BotLang,
				u.bot.BotLink,
				err.Error(),
				situation.Command,
			)
			u.Msgs.SendNotificationToDeveloper(text, false)

			logger.Warn(text)
			u.smthWentWrong(situation.Message.Chat.ID, situation.User.Language)
		})
		return
	}

	if err := u.admin.CheckAdminMessage(situation); err != nil {
		if err != model.ErrCommandNotConverted {
			text := fmt.Sprintf(
				"%s // %s // error with serve admin level command: %s\ncommand = '%s'",
				u.bot.BotLang,
				u.bot.BotLink,
				err,
				situation.Command,
			)
			u.Msgs.SendNotificationToDeveloper(text, false)

			return
		}
	}

	if maintenanceMode {
		model.LossUserMessages.WithLabelValues(situation.BotLang).Inc()
		return
	}

	u.smthWentWrong(situation.Message.Chat.ID, situation.User.Language)
	if situation.Err != nil {
		logger.Info(situation.Err.Error())
	}
}

var (
	techCommands = []string{"/mmoff", "/mmon", "/admin", "/admin_log_out"}
)

func isTechCommand(command string) bool {
	for _, techCommand := range techCommands {
		if command == techCommand {
			return true
		}
	}

	return false
}

func (u *Users) SendTodayUpdateMsg() {
	model.UpdateStatistic.Mu.Lock()
	defer model.UpdateStatistic.Mu.Unlock()

	text := fmt.Sprintf(updateCounterHeader, model.UpdateStatistic.Counter)
	u.Msgs.SendNotificationToDeveloper(text, true)

	model.ResetUpdateStatistic()
}

func (u *Users) smthWentWrong(chatID int64, lang string) {
	msg := tgbotapi.NewMessage(chatID, u.bot.LangText(lang, "user_level_not_defined"))
	_ = u.Msgs.SendMsgToUser(msg, chatID)
}

func createMainMenu() msgs.MarkUp {
	return msgs.NewMarkUp(
		msgs.NewRow(msgs.NewDataButton("main_tasks")),
		msgs.NewRow(msgs.NewDataButton("main_balance"),
			msgs.NewDataButton("main_level")),
		msgs.NewRow(msgs.NewDataButton("main_referral"),
			msgs.NewDataButton("main_daily_bonus")),
		msgs.NewRow(msgs.NewDataButton("main_withdrawal"),
			msgs.NewDataButton("main_set_account")),
		msgs.NewRow(msgs.NewDataButton("main_withdrawal_history"),
			msgs.NewDataButton("main_top_players")),
	)
}

func (u *Users) SelectLangCommand(s *model.Situation) error {
	var text string
	for _, lang := range model.GetGlobalBot(s.BotLang).LanguageInBot {
		text += u.bot.LangText(lang, "select_lang_menu") + "\n"
	}
	db.RdbSetUser(s.BotLang, s.User.ID, "main")

	msg := tgbotapi.NewMessage(s.User.ID, text)
	msg.ReplyMarkup = u.createLangMenu(model.GetGlobalBot(s.BotLang).LanguageInBot)

	return u.Msgs.SendMsgToUser(msg, s.User.ID)
}

func (u *Users) createLangMenu(languages []string) tgbotapi.InlineKeyboardMarkup {
	var markup tgbotapi.InlineKeyboardMarkup

	for _, lang := range languages {
		markup.InlineKeyboard = append(markup.InlineKeyboard, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(u.bot.LangText(lang, "lang_button"), "/language?"+lang),
		})
	}

	return markup
}

// StartCommand greets the user and, on a deep link, records the referral.
// A verified user goes straight to the main menu, the state never rolls
// back on a repeated /start.
func (u *Users) StartCommand(s *model.Situation) error {
	if s.Message != nil {
		if strings.Contains(s.Message.Text, "new_admin") {
			s.Command = s.Message.Text
			return u.admin.CheckNewAdmin(s)
		}

		if payload := s.Message.CommandArguments(); payload != "" {
			if err := u.auth.ProcessReferralStart(s, payload); err != nil {
				return err
			}
		}
	}

	db.RdbSetUser(s.BotLang, s.User.ID, "main")

	if !s.User.Verified() {
		return u.sendWelcomeWithTasks(s)
	}

	text := u.bot.LangText(s.User.Language, "main_select_menu")

	msg := tgbotapi.NewMessage(s.User.ID, text)
	msg.ReplyMarkup = createMainMenu().Build(u.bot.Language[s.User.Language])

	return u.Msgs.SendMsgToUser(msg, s.User.ID)
}

func (u *Users) sendWelcomeWithTasks(s *model.Situation) error {
	text := u.bot.LangText(s.User.Language, "welcome_text",
		model.AdminSettings.GetParams(s.BotLang).TaskReward,
		model.AdminSettings.GetCurrency(s.BotLang))

	msg := tgbotapi.NewMessage(s.User.ID, text)
	msg.ReplyMarkup = msgs.NewIlMarkUp(
		msgs.NewIlRow(msgs.NewIlURLButton("join_channel_button",
			model.AdminSettings.GetAdvertUrl(s.BotLang, model.CampaignChannel))),
		msgs.NewIlRow(msgs.NewIlDataButton("verify_tasks_button", "/verify_membership")),
	).Build(u.bot.Language[s.User.Language])

	return u.Msgs.SendMsgToUser(msg, s.User.ID)
}

func (u *Users) SendBalanceCommand(s *model.Situation) error {
	db.RdbSetUser(s.BotLang, s.User.ID, "main")

	rank, err := u.store.BalanceRank(s.User.ID)
	if err != nil {
		return err
	}

	text := u.bot.LangText(s.User.Language, "balance_text",
		s.User.Balance,
		model.AdminSettings.GetCurrency(s.BotLang),
		s.User.TotalEarned,
		s.User.TotalWithdrawn,
		rank)

	return u.Msgs.NewParseMessage(s.User.ID, text)
}

func (u *Users) SendTasksCommand(s *model.Situation) error {
	db.RdbSetUser(s.BotLang, s.User.ID, "main")

	if s.User.Verified() {
		return u.Msgs.SendSimpleMsg(s.User.ID, u.bot.LangText(s.User.Language, "tasks_already_completed"))
	}

	return u.sendWelcomeWithTasks(s)
}

func (u *Users) ReferralLinkCommand(s *model.Situation) error {
	db.RdbSetUser(s.BotLang, s.User.ID, "main")

	return u.auth.SendReferralLink(s)
}

func (u *Users) DailyBonusCommand(s *model.Situation) error {
	db.RdbSetUser(s.BotLang, s.User.ID, "main")

	return u.auth.GetDailyBonus(s)
}

func (u *Users) UserLevelCommand(s *model.Situation) error {
	db.RdbSetUser(s.BotLang, s.User.ID, "main")

	return u.auth.SendUserLevel(s)
}

func (u *Users) TopPlayersCommand(s *model.Situation) error {
	db.RdbSetUser(s.BotLang, s.User.ID, "main")

	return u.sendTopPlayers(s)
}

func (u *Users) SetAccountCommand(s *model.Situation) error {
	return u.auth.StartAccountSetup(s)
}

func (u *Users) AccountBankCommand(s *model.Situation) error {
	return u.auth.SetAccountBank(s)
}

func (u *Users) AccountNumberCommand(s *model.Situation) error {
	return u.auth.SetAccountNumber(s)
}

func (u *Users) AccountNameCommand(s *model.Situation) error {
	return u.auth.SetAccountName(s)
}

func (u *Users) ReqWithdrawalAmountCommand(s *model.Situation) error {
	if !s.User.Verified() {
		return u.Msgs.SendSimpleMsg(s.User.ID, u.bot.LangText(s.User.Language, "verify_first"))
	}

	if !s.User.HasAccount() {
		return u.Msgs.SendSimpleMsg(s.User.ID, u.bot.LangText(s.User.Language, "account_not_set"))
	}

	db.RdbSetUser(s.BotLang, s.User.ID, "/withdrawal_amount")

	msg := tgbotapi.NewMessage(s.User.ID, u.bot.LangText(s.User.Language, "withdrawal_ask_amount"))
	msg.ReplyMarkup = msgs.NewMarkUp(
		msgs.NewRow(msgs.NewDataButton("withdraw_cancel")),
	).Build(u.bot.Language[s.User.Language])

	return u.Msgs.SendMsgToUser(msg, s.User.ID)
}

func (u *Users) WithdrawalAmountCommand(s *model.Situation) error {
	if s.Message.Text == u.bot.LangText(s.User.Language, "withdraw_cancel") {
		return u.StartCommand(s)
	}

	db.RdbSetUser(s.BotLang, s.User.ID, "main")

	return u.auth.WithdrawMoneyFromBalance(s, s.Message.Text)
}

func (u *Users) WithdrawalHistoryCommand(s *model.Situation) error {
	db.RdbSetUser(s.BotLang, s.User.ID, "main")

	return u.auth.SendWithdrawalHistory(s)
}

// SubmitProofCommand accepts a screenshot as the social follow proof.
// Outside the social_pending state the photo means nothing and gets a
// plain reminder instead.
func (u *Users) SubmitProofCommand(s *model.Situation) error {
	if s.User.Verified() {
		return u.Msgs.SendSimpleMsg(s.User.ID, u.bot.LangText(s.User.Language, "tasks_already_completed"))
	}

	if s.User.CampaignState != model.StateSocialPending {
		return u.Msgs.SendSimpleMsg(s.User.ID, u.bot.LangText(s.User.Language, "need_complete_previous"))
	}

	return u.auth.CompleteVerification(s)
}

func (u *Users) AdminLogOutCommand(s *model.Situation) error {
	db.DeleteOldAdminMsg(s.BotLang, s.User.ID)
	if err := u.simpleAdminMsg(s, "admin_log_out"); err != nil {
		return err
	}

	return u.StartCommand(s)
}

func (u *Users) MaintenanceModeOnCommand(s *model.Situation) error {
	if s.User.ID != godUserID {
		return model.ErrNotAdminUser
	}

	model.AdminSettings.GlobalParameters[s.BotLang].MaintenanceMode = true

	msg := tgbotapi.NewMessage(s.User.ID, "Maintenance mode is on")
	go func() {
		time.Sleep(defaultTimeInServiceMod)
		_ = u.MaintenanceModeOffCommand(s)
	}()
	return u.Msgs.SendMsgToUser(msg, s.User.ID)
}

func (u *Users) MaintenanceModeOffCommand(s *model.Situation) error {
	if s.User.ID != godUserID {
		return model.ErrNotAdminUser
	}

	model.AdminSettings.GlobalParameters[s.BotLang].MaintenanceMode = false

	msg := tgbotapi.NewMessage(s.User.ID, "Maintenance mode is off")
	return u.Msgs.SendMsgToUser(msg, s.User.ID)
}

func (u *Users) simpleAdminMsg(s *model.Situation, key string) error {
	lang := model.AdminLang(s.User.ID)
	text := u.bot.AdminText(lang, key)
	msg := tgbotapi.NewMessage(s.User.ID, text)

	return u.Msgs.SendMsgToUser(msg, s.User.ID)
}
