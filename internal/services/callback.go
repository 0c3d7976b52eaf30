package services

import (
	"fmt"
	"strings"

	"github.com/bots-empire/campaign-bot/internal/db"
	"github.com/bots-empire/campaign-bot/internal/log"
	"github.com/bots-empire/campaign-bot/internal/model"
	"github.com/bots-empire/campaign-bot/internal/utils"
)

type CallBackHandlers struct {
	Handlers map[string]model.Handler
}

func (h *CallBackHandlers) GetHandler(command string) model.Handler {
	return h.Handlers[command]
}

func (h *CallBackHandlers) Init(userSrv *Users) {
	//Verification command
	h.OnCommand("/verify_membership", userSrv.VerifyMembershipCommand)
	h.OnCommand("/confirm_social", userSrv.ConfirmSocialCommand)
	h.OnCommand("/complete_verification", userSrv.CompleteVerificationCommand)

	//Main command
	h.OnCommand("/main_menu", userSrv.RestartCommand)
	h.OnCommand("/language", userSrv.LanguageCommand)
}

func (h *CallBackHandlers) OnCommand(command string, handler model.Handler) {
	h.Handlers[command] = handler
}

func (u *Users) checkCallbackQuery(s *model.Situation, logger log.Logger, sortCentre *utils.Spreader) {
	if strings.Contains(s.Params.Level, "admin") {
		if err := u.admin.CheckAdminCallback(s); err != nil {
			text := fmt.Sprintf("%s // error with serve admin callback command: %s\ncommand = '%s'",
				u.bot.BotLink,
				err,
				s.Command,
			)
			u.Msgs.SendNotificationToDeveloper(text, false)

			logger.Warn(text)
		}
		return
	}

	maintenanceMode := model.AdminSettings.UnderMaintenance(s.BotLang)

	handler := model.Bots[s.BotLang].CallbackHandler.
		GetHandler(s.Command)

	if handler != nil && !maintenanceMode {
		sortCentre.ServeHandler(handler, s, func(err error) {
			text := fmt.Sprintf("%s // error with serve user callback command: %s\ncommand = '%s'",
				u.bot.BotLink,
				err,
				s.Command,
			)
			u.Msgs.SendNotificationToDeveloper(text, false)

			logger.Warn(text)
			u.smthWentWrong(s.CallbackQuery.Message.Chat.ID, s.User.Language)
		})

		return
	}

	if maintenanceMode {
		model.LossUserMessages.WithLabelValues(s.BotLang).Inc()
		return
	}

	text := fmt.Sprintf("%s // get callback data='%s', but they didn't react in any way",
		u.bot.BotLink,
		s.CallbackQuery.Data,
	)
	u.Msgs.SendNotificationToDeveloper(text, false)

	logger.Warn(text)
}

func (u *Users) VerifyMembershipCommand(s *model.Situation) error {
	if err := u.Msgs.SendAnswerCallback(s.CallbackQuery, u.bot.LangText(s.User.Language, "checking_membership")); err != nil {
		return err
	}

	return u.auth.VerifyMembershipCommand(s)
}

func (u *Users) ConfirmSocialCommand(s *model.Situation) error {
	return u.auth.ConfirmSocialCommand(s)
}

func (u *Users) CompleteVerificationCommand(s *model.Situation) error {
	return u.auth.CompleteVerification(s)
}

func (u *Users) RestartCommand(s *model.Situation) error {
	db.RdbSetUser(s.BotLang, s.User.ID, "main")

	return u.StartCommand(s)
}

func (u *Users) LanguageCommand(s *model.Situation) error {
	lang := strings.Split(s.CallbackQuery.Data, "?")[1]

	level := db.GetLevel(s.BotLang, s.User.ID)
	if strings.Contains(level, "admin") {
		return nil
	}

	s.User.Language = lang

	return u.StartCommand(s)
}
