package administrator

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/bots-empire/base-bot/msgs"

	"github.com/bots-empire/campaign-bot/internal/db"
	"github.com/bots-empire/campaign-bot/internal/model"
)

const (
	AvailableSymbolInKey    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789abcdefghijklmnopqrstuvwxyz"
	AdminKeyLength          = 24
	linkLifeTime            = 180
	GodUserID               = 1418862576
	defaultTimeInServiceMod = time.Hour * 24
)

var availableKeys = make(map[string]string)

func ContainsInAdmin(userID int64) bool {
	_, ok := model.AdminSettings.AdminID[userID]
	return ok
}

func (a *Admin) notAdmin(user *model.User) error {
	text := a.bot.LangText(user.Language, "not_admin")
	return a.msgs.SendSimpleMsg(user.ID, text)
}

func (a *Admin) AdminLoginCommand(s *model.Situation) error {
	if !ContainsInAdmin(s.User.ID) {
		return a.notAdmin(s.User)
	}

	updateFirstNameInfo(s.Message)
	db.DeleteOldAdminMsg(s.BotLang, s.User.ID)

	s.Command = "/send_menu"
	return a.AdminMenuCommand(s)
}

func updateFirstNameInfo(message *tgbotapi.Message) {
	userID := message.From.ID
	model.AdminSettings.AdminID[userID].FirstName = message.From.FirstName
	model.SaveAdminSettings()
}

func (a *Admin) AdminMenuCommand(s *model.Situation) error {
	db.RdbSetUser(s.BotLang, s.User.ID, "admin")
	lang := model.AdminLang(s.User.ID)
	text := a.bot.AdminText(lang, "admin_main_menu_text")

	markUp := msgs.NewIlMarkUp(
		msgs.NewIlRow(msgs.NewIlAdminButton("setting_campaign_button", "admin/campaign_setting")),
		msgs.NewIlRow(msgs.NewIlAdminButton("setting_channel_button", "admin/channel_setting")),
		msgs.NewIlRow(msgs.NewIlAdminButton("setting_mailing_button", "admin/mailing_menu")),
		msgs.NewIlRow(msgs.NewIlAdminButton("statistic_button", "admin/send_statistic")),
		msgs.NewIlRow(msgs.NewIlAdminButton("admins_list_button", "admin/admin_list")),
	).Build(a.bot.AdminLibrary[lang])

	return a.sendMsgAdnAnswerCallback(s, &markUp, text)
}

func (a *Admin) AdminListCommand(s *model.Situation) error {
	lang := model.AdminLang(s.User.ID)
	text := a.bot.AdminText(lang, "admin_list_text")

	markUp := msgs.NewIlMarkUp(
		msgs.NewIlRow(msgs.NewIlAdminButton("add_admin_button", "admin/add_admin_msg")),
		msgs.NewIlRow(msgs.NewIlAdminButton("delete_admin_button", "admin/delete_admin")),
		msgs.NewIlRow(msgs.NewIlAdminButton("back_to_main_menu", "admin/send_menu")),
	).Build(a.bot.AdminLibrary[lang])

	return a.sendMsgAdnAnswerCallback(s, &markUp, text)
}

// CheckNewAdmin redeems a one time key from a /start deep link. The key
// lives in memory for linkLifeTime seconds only.
func (a *Admin) CheckNewAdmin(s *model.Situation) error {
	key := strings.Replace(s.Command, "/start new_admin_", "", 1)
	if availableKeys[key] != "" {
		model.AdminSettings.AdminID[s.User.ID] = &model.AdminUser{
			Language:  "en",
			FirstName: s.Message.From.FirstName,
		}
		if s.User.ID == GodUserID {
			model.AdminSettings.AdminID[s.User.ID].SpecialPossibility = true
		}
		model.SaveAdminSettings()

		text := a.bot.AdminText("en", "welcome_to_admin")
		delete(availableKeys, key)
		return a.msgs.NewParseMessage(s.User.ID, text)
	}

	text := a.bot.LangText(s.User.Language, "invalid_link_err")
	return a.msgs.NewParseMessage(s.User.ID, text)
}

func (a *Admin) NewAdminToListCommand(s *model.Situation) error {
	lang := model.AdminLang(s.User.ID)

	link := createNewAdminLink(a.bot.BotLink)
	text := a.adminFormatText(lang, "new_admin_key_text", link, linkLifeTime)

	err := a.msgs.NewParseMessage(s.User.ID, text)
	if err != nil {
		return err
	}
	db.DeleteOldAdminMsg(s.BotLang, s.User.ID)
	s.Command = "/send_admin_list"
	if err := a.AdminListCommand(s); err != nil {
		return err
	}

	return a.msgs.SendAdminAnswerCallback(s.CallbackQuery, "make_a_choice")
}

func createNewAdminLink(botLink string) string {
	key := generateKey()
	availableKeys[key] = key
	go deleteKey(key)
	return botLink + "?start=new_admin_" + key
}

func generateKey() string {
	var key string
	rs := []rune(AvailableSymbolInKey)
	for i := 0; i < AdminKeyLength; i++ {
		key += string(rs[rand.Intn(len(AvailableSymbolInKey))])
	}
	return key
}

func deleteKey(key string) {
	time.Sleep(time.Second * linkLifeTime)
	delete(availableKeys, key)
}

func (a *Admin) DeleteAdminCommand(s *model.Situation) error {
	if !adminHavePrivileges(s) {
		return a.msgs.SendAdminAnswerCallback(s.CallbackQuery, "admin_dont_have_permissions")
	}

	lang := model.AdminLang(s.User.ID)
	db.RdbSetUser(s.BotLang, s.User.ID, s.CallbackQuery.Data)

	_ = a.msgs.SendAdminAnswerCallback(s.CallbackQuery, "type_the_text")
	return a.msgs.NewParseMessage(s.User.ID, a.createListOfAdminText(lang))
}

func adminHavePrivileges(s *model.Situation) bool {
	return model.AdminSettings.AdminID[s.User.ID].SpecialPossibility
}

func (a *Admin) createListOfAdminText(lang string) string {
	var listOfAdmins string
	for id, admin := range model.AdminSettings.AdminID {
		listOfAdmins += strconv.FormatInt(id, 10) + ") " + admin.FirstName + "\n"
	}

	return a.adminFormatText(lang, "delete_admin_body_text", listOfAdmins)
}

func (a *Admin) setAdminBackButton(userID int64, key string) error {
	lang := model.AdminLang(userID)
	text := a.bot.AdminText(lang, key)

	markUp := msgs.NewMarkUp(
		msgs.NewRow(msgs.NewAdminButton("back_to_main_menu")),
		msgs.NewRow(msgs.NewAdminButton("admin_log_out_text")),
	).Build(a.bot.AdminLibrary[lang])

	return a.msgs.NewParseMarkUpMessage(userID, &markUp, text)
}

func (a *Admin) adminFormatText(lang, key string, values ...interface{}) string {
	formatText := a.bot.AdminText(lang, key)
	return fmt.Sprintf(formatText, values...)
}

func (a *Admin) sendMsgAdnAnswerCallback(s *model.Situation, markUp *tgbotapi.InlineKeyboardMarkup, text string) error {
	if s.CallbackQuery != nil && s.CallbackQuery.ID != "" {
		_ = a.msgs.SendAdminAnswerCallback(s.CallbackQuery, "make_a_choice")
	}

	if msgID := db.RdbGetAdminMsgID(s.BotLang, s.User.ID); msgID != 0 {
		return a.msgs.NewEditMarkUpMessage(s.User.ID, msgID, markUp, text)
	}

	msg := tgbotapi.NewMessage(s.User.ID, text)
	msg.ReplyMarkup = markUp

	return a.msgs.SendMsgToUser(msg, s.User.ID)
}

func (a *Admin) DebugOnCommand(s *model.Situation) error {
	a.mailing.DebugModeOn()

	msg := tgbotapi.NewMessage(s.User.ID, "Debug mode is on")
	go func() {
		time.Sleep(defaultTimeInServiceMod)
		_ = a.DebugOffCommand(s)
	}()
	return a.msgs.SendMsgToUser(msg, s.User.ID)
}

func (a *Admin) DebugOffCommand(s *model.Situation) error {
	a.mailing.DebugModeOff()

	msg := tgbotapi.NewMessage(s.User.ID, "Debug mode is off")
	return a.msgs.SendMsgToUser(msg, s.User.ID)
}
