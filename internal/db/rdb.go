package db

import (
	"log"
	"strconv"

	"github.com/bots-empire/campaign-bot/internal/model"
)

const emptyLevelName = "empty"

// RdbSetUser stores the user's current conversation level. The level is a
// single string, so the multi-step flows (account setup, withdrawal
// amount) can never hold contradictory "awaiting" flags.
func RdbSetUser(botLang string, ID int64, level string) {
	userID := userIDToRdb(ID)
	_, err := model.Bots[botLang].Rdb.Set(userID, level, 0).Result()
	if err != nil {
		log.Println(err)
	}
}

func userIDToRdb(userID int64) string {
	return "user:" + strconv.FormatInt(userID, 10)
}

func GetLevel(botLang string, id int64) string {
	userID := userIDToRdb(id)
	have, err := model.Bots[botLang].Rdb.Exists(userID).Result()
	if err != nil || have == 0 {
		return emptyLevelName
	}

	level, err := model.Bots[botLang].Rdb.Get(userID).Result()
	if err != nil {
		return emptyLevelName
	}
	return level
}

func RdbSetAdminMsgID(botLang string, userID int64, msgID int) {
	adminMsgID := adminMsgIDToRdb(userID)
	_, err := model.Bots[botLang].Rdb.Set(adminMsgID, msgID, 0).Result()
	if err != nil {
		log.Println(err)
	}
}

func adminMsgIDToRdb(userID int64) string {
	return "admin_msg_id:" + strconv.FormatInt(userID, 10)
}

func RdbGetAdminMsgID(botLang string, userID int64) int {
	adminMsgID := adminMsgIDToRdb(userID)
	result, err := model.Bots[botLang].Rdb.Get(adminMsgID).Result()
	if err != nil {
		return 0
	}

	msgID, _ := strconv.Atoi(result)
	return msgID
}

func DeleteOldAdminMsg(botLang string, userID int64) {
	adminMsgID := adminMsgIDToRdb(userID)
	_, err := model.Bots[botLang].Rdb.Del(adminMsgID).Result()
	if err != nil {
		log.Println(err)
	}
}
