package administrator

import (
	"database/sql"
	"log"
	"strconv"

	"github.com/pkg/errors"

	"github.com/bots-empire/campaign-bot/internal/model"
)

func (a *Admin) CountUsers() int {
	rows, err := a.bot.GetDataBase().Query(`
SELECT COUNT(*) FROM campaign.users;`)
	if err != nil {
		log.Println(err)
		return 0
	}
	count, err := readRows(rows)
	if err != nil {
		a.msgs.SendNotificationToDeveloper(err.Error(), false)
	}

	return count
}

func readRows(rows *sql.Rows) (int, error) {
	defer rows.Close()

	var count int

	for rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, errors.Wrap(err, "failed to scan row")
		}
	}

	return count, nil
}

func (a *Admin) countAllUsers() int {
	var sum int
	for _, handler := range model.Bots {
		rows, err := handler.DataBase.Query(`
SELECT COUNT(*) FROM campaign.users;`)
		if err != nil {
			log.Println(err.Error())
			continue
		}
		count, err := readRows(rows)
		if err != nil {
			a.msgs.SendNotificationToDeveloper(err.Error(), false)
		}

		sum += count
	}
	return sum
}

func (a *Admin) countVerifiedUsers(botLang string) int {
	rows, err := model.Bots[botLang].DataBase.Query(`
SELECT COUNT(*) FROM campaign.users WHERE campaign_state = $1;`,
		model.StateVerified)
	if err != nil {
		a.msgs.SendNotificationToDeveloper(err.Error(), false)
		return 0
	}

	count, err := readRows(rows)
	if err != nil {
		a.msgs.SendNotificationToDeveloper(err.Error(), false)
	}
	return count
}

func (a *Admin) countReferrals(botLang string, amountUsers int) string {
	var refText string
	rows, err := model.Bots[botLang].DataBase.Query(`
SELECT COUNT(*) FROM campaign.referrals;`)
	if err != nil {
		log.Println(err.Error())
		return ""
	}

	count, err := readRows(rows)
	if err != nil {
		a.msgs.SendNotificationToDeveloper(err.Error(), false)
	}

	if amountUsers == 0 {
		return strconv.Itoa(count)
	}

	refText = strconv.Itoa(count) + " (" + strconv.Itoa(int(float32(count)*100.0/float32(amountUsers))) + "%)"
	return refText
}

func (a *Admin) countBlockedUsers(botLang string) int {
	rows, err := model.Bots[botLang].DataBase.Query(`
SELECT COUNT(DISTINCT id) FROM campaign.users WHERE status = 'deleted';`)
	if err != nil {
		a.msgs.SendNotificationToDeveloper(err.Error(), false)
		return 0
	}

	count, err := readRows(rows)
	if err != nil {
		a.msgs.SendNotificationToDeveloper(err.Error(), false)
	}
	return count
}

func (a *Admin) countPendingWithdrawals(botLang string) int {
	rows, err := model.Bots[botLang].DataBase.Query(`
SELECT COUNT(*) FROM campaign.withdrawals WHERE status = $1;`,
		model.WithdrawalPending)
	if err != nil {
		a.msgs.SendNotificationToDeveloper(err.Error(), false)
		return 0
	}

	count, err := readRows(rows)
	if err != nil {
		a.msgs.SendNotificationToDeveloper(err.Error(), false)
	}
	return count
}

func (a *Admin) SendStatisticCommand(s *model.Situation) error {
	lang := model.AdminLang(s.User.ID)

	amountUsers := a.CountUsers()
	text := a.adminFormatText(lang, "statistic_text",
		amountUsers,
		a.countAllUsers(),
		a.countVerifiedUsers(s.BotLang),
		a.countReferrals(s.BotLang, amountUsers),
		a.countBlockedUsers(s.BotLang),
		a.countPendingWithdrawals(s.BotLang))

	if err := a.msgs.NewParseMessage(s.User.ID, text); err != nil {
		return err
	}

	s.Command = "admin/send_menu"
	return a.AdminMenuCommand(s)
}
