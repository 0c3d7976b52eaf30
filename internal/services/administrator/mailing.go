package administrator

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bots-empire/base-bot/msgs"

	"github.com/bots-empire/campaign-bot/internal/db"
	"github.com/bots-empire/campaign-bot/internal/model"
)

func (a *Admin) MailingMenuCommand(s *model.Situation) error {
	lang := model.AdminLang(s.User.ID)

	advertText := model.AdminSettings.GetAdvertText(s.BotLang, model.GlobalMailing)
	if advertText == "" {
		advertText = a.bot.AdminText(lang, "advert_text_not_set")
	}
	text := a.adminFormatText(lang, "mailing_menu_text", advertText)

	markUp := msgs.NewIlMarkUp(
		msgs.NewIlRow(msgs.NewIlAdminButton("change_advert_text_button", "admin/change_advert_text")),
		msgs.NewIlRow(msgs.NewIlAdminButton("start_mailing_button", "admin/start_mailing")),
		msgs.NewIlRow(msgs.NewIlAdminButton("back_to_main_menu", "admin/send_menu")),
	).Build(a.bot.AdminLibrary[lang])

	return a.sendMsgAdnAnswerCallback(s, &markUp, text)
}

func (a *Admin) ChangeAdvertTextCommand(s *model.Situation) error {
	lang := model.AdminLang(s.User.ID)
	db.RdbSetUser(s.BotLang, s.User.ID, "admin/set_advert_text")

	_ = a.msgs.SendAdminAnswerCallback(s.CallbackQuery, "type_the_text")
	return a.msgs.NewParseMessage(s.User.ID, a.bot.AdminText(lang, "type_advert_text"))
}

func (a *Admin) GetAdvertTextCommand(s *model.Situation) error {
	model.AdminSettings.UpdateAdvertText(s.BotLang, s.Message.Text, model.GlobalMailing)
	model.SaveAdminSettings()

	if err := a.setAdminBackButton(s.User.ID, "operation_completed"); err != nil {
		return err
	}
	db.RdbSetUser(s.BotLang, s.User.ID, "admin")

	s.Command = "admin/mailing_menu"
	return a.MailingMenuCommand(s)
}

// StartMailingCommand pushes the stored advert text to every known user.
// The loop runs detached, a blocked user is marked and skipped, the rest
// of the run is unaffected.
func (a *Admin) StartMailingCommand(s *model.Situation) error {
	advertText := model.AdminSettings.GetAdvertText(s.BotLang, model.GlobalMailing)
	if advertText == "" {
		return a.msgs.SendAdminAnswerCallback(s.CallbackQuery, "advert_text_not_set")
	}

	if err := a.msgs.SendAdminAnswerCallback(s.CallbackQuery, "mailing_started"); err != nil {
		return err
	}

	go a.mailToAllUsers(s.BotLang, advertText)

	s.Command = "admin/mailing_menu"
	return a.MailingMenuCommand(s)
}

func (a *Admin) mailToAllUsers(botLang, text string) {
	rows, err := a.bot.GetDataBase().Query(`
SELECT id FROM campaign.users WHERE status != 'deleted';`)
	if err != nil {
		a.msgs.SendNotificationToDeveloper("error in start mailing: "+err.Error(), false)
		return
	}
	defer rows.Close()

	var blocked int
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			log.Println(err)
			continue
		}

		msg := tgbotapi.NewMessage(userID, text)
		if model.AdminSettings.GetParams(botLang).ButtonUnderAdvert {
			msg.ReplyMarkup = msgs.NewIlMarkUp(
				msgs.NewIlRow(msgs.NewIlURLButton("advertising_button",
					model.AdminSettings.GetAdvertUrl(botLang, model.GlobalMailing))),
			).Build(a.bot.Language[botLang])
		}

		if err := a.msgs.SendMsgToUser(msg, userID); err != nil {
			model.BlockUser.WithLabelValues(a.bot.BotLink, botLang).Inc()
			_ = a.bot.BlockUser(userID)
			blocked++
			continue
		}

		model.MailToUser.WithLabelValues(a.bot.BotLink, botLang).Inc()
	}

	a.msgs.SendNotificationToDeveloper("mailing finished", false)
	if blocked > 0 {
		a.bot.UpdateBlockedUsers(model.GlobalMailing)
	}
}
