package model

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	adminPath      = "assets/admin"
	jsonFormatName = ".json"

	// Advert channel slots. CampaignChannel is the channel users must
	// join before the campaign unlocks; the rest are mailing slots.
	CampaignChannel = 1
	GlobalMailing   = 4
	MainAdvert      = 5

	mainLang = "en"
)

// Referral credit timing. The variants of this bot disagreed on when the
// referrer gets paid; the policy is configuration now, deferred by default.
const (
	PolicyImmediate = "immediate"
	PolicyDeferred  = "deferred"
)

type Admin struct {
	AdminID          map[int64]*AdminUser         `json:"admin_id,omitempty"`
	GlobalParameters map[string]*GlobalParameters `json:"global_parameters,omitempty"`
}

type GlobalParameters struct {
	Parameters        *Params         `json:"parameters,omitempty"`
	AdvertisingChan   *AdvertChannel  `json:"advertising_chan,omitempty"`
	SocialURL         string          `json:"social_url,omitempty"`
	OperatorChatID    int64           `json:"operator_chat_id,omitempty"`
	MaintenanceMode   bool            `json:"maintenance_mode,omitempty"`
	BlockedUsers      int             `json:"blocked_users,omitempty"`
	LangSelectedMap   map[string]bool `json:"lang_selected_map,omitempty"`
	AdvertisingText   map[int]string  `json:"advertising_text,omitempty"`
	AdvertisingPhoto  map[int]string  `json:"advertising_photo,omitempty"`
	AdvertisingVideo  map[int]string  `json:"advertising_video,omitempty"`
	AdvertisingChoice map[int]string  `json:"advertising_choice,omitempty"`
}

type AdminUser struct {
	Language           string `json:"language,omitempty"`
	FirstName          string `json:"first_name,omitempty"`
	SpecialPossibility bool   `json:"special_possibility,omitempty"`
}

type Params struct {
	ReferralAmount      int    `json:"referral_amount,omitempty"`
	ReferralPolicy      string `json:"referral_policy,omitempty"`
	TaskReward          int    `json:"task_reward,omitempty"`
	DailyBonusAmount    int    `json:"daily_bonus_amount,omitempty"`
	MinWithdrawalAmount int    `json:"min_withdrawal_amount,omitempty"`

	ButtonUnderAdvert bool `json:"button_under_advert,omitempty"`

	Currency string `json:"currency,omitempty"`
}

type AdvertChannel struct {
	Url       map[int]string `json:"url"`
	ChannelID map[int]int64  `json:"channel_id"`
}

var AdminSettings *Admin

func UploadAdminSettings() {
	settings := &Admin{}
	data, err := os.ReadFile(adminPath + jsonFormatName)
	if err != nil {
		fmt.Println(err)
	}

	if err == nil {
		if err := json.Unmarshal(data, settings); err != nil {
			fmt.Println(err)
		}
	}

	for lang, globalBot := range Bots {
		nilSettings(settings, lang)
		for _, lang = range globalBot.LanguageInBot {
			nilSettings(settings, lang)
		}
	}

	AdminSettings = settings
	SaveAdminSettings()
}

func nilSettings(settings *Admin, lang string) {
	if settings.AdminID == nil {
		settings.AdminID = make(map[int64]*AdminUser)
	}

	if settings.GlobalParameters == nil {
		settings.GlobalParameters = make(map[string]*GlobalParameters)
	}

	if settings.GlobalParameters[lang] == nil {
		settings.GlobalParameters[lang] = &GlobalParameters{}
	}

	if settings.GlobalParameters[lang].Parameters == nil {
		settings.GlobalParameters[lang].Parameters = &Params{
			ReferralAmount:      70,
			ReferralPolicy:      PolicyDeferred,
			TaskReward:          50,
			DailyBonusAmount:    25,
			MinWithdrawalAmount: 1000,
			Currency:            "₦",
		}
	}

	if settings.GlobalParameters[lang].Parameters.ReferralPolicy == "" {
		settings.GlobalParameters[lang].Parameters.ReferralPolicy = PolicyDeferred
	}

	if settings.GlobalParameters[lang].AdvertisingChan == nil {
		settings.GlobalParameters[lang].AdvertisingChan = &AdvertChannel{
			Url: map[int]string{
				CampaignChannel: "https://t.me/campaign_channel",
				GlobalMailing:   "https://google.com",
				MainAdvert:      "https://google.com",
			},
			ChannelID: make(map[int]int64),
		}
	}

	if settings.GlobalParameters[lang].AdvertisingChoice == nil {
		settings.GlobalParameters[lang].AdvertisingChoice = make(map[int]string)
	}

	if settings.GlobalParameters[lang].AdvertisingText == nil {
		settings.GlobalParameters[lang].AdvertisingText = make(map[int]string)
	}

	if settings.GlobalParameters[lang].AdvertisingPhoto == nil {
		settings.GlobalParameters[lang].AdvertisingPhoto = make(map[int]string)
	}

	if settings.GlobalParameters[lang].AdvertisingVideo == nil {
		settings.GlobalParameters[lang].AdvertisingVideo = make(map[int]string)
	}
}

func SaveAdminSettings() {
	data, err := json.MarshalIndent(AdminSettings, "", "  ")
	if err != nil {
		panic(err)
	}

	if err = os.WriteFile(adminPath+jsonFormatName, data, 0600); err != nil {
		panic(err)
	}
}

// ----------------------------------------------------
//
// Update Statistic
//
// ----------------------------------------------------

type UpdateInfo struct {
	Mu      *sync.Mutex
	Counter int
	Day     int
}

var UpdateStatistic *UpdateInfo

func UploadUpdateStatistic() {
	info := &UpdateInfo{}
	info.Mu = new(sync.Mutex)
	strStatistic, err := Bots[mainLang].Rdb.Get("update_statistic").Result()
	if err != nil {
		UpdateStatistic = info
		return
	}

	data := strings.Split(strStatistic, "?")
	if len(data) != 2 {
		UpdateStatistic = info
		return
	}
	info.Counter, _ = strconv.Atoi(data[0])
	info.Day, _ = strconv.Atoi(data[1])
	UpdateStatistic = info
}

// ResetUpdateStatistic zeroes the counter and stamps the current epoch
// day, so the rollover check does not fire again until tomorrow. The
// caller holds UpdateStatistic.Mu.
func ResetUpdateStatistic() {
	UpdateStatistic.Counter = 0
	UpdateStatistic.Day = int(time.Now().Unix()) / 86400
}

func SaveUpdateStatistic() {
	strStatistic := strconv.Itoa(UpdateStatistic.Counter) + "?" + strconv.Itoa(UpdateStatistic.Day)
	_, err := Bots[mainLang].Rdb.Set("update_statistic", strStatistic, 0).Result()
	if err != nil {
		log.Println(err)
	}
}

func AdminLang(userID int64) string {
	admin := AdminSettings.AdminID[userID]
	if admin == nil {
		return mainLang
	}

	return admin.Language
}

///////////////////
//Get Parameters
///////////////////

func (a *Admin) GetCurrency(lang string) string {
	return a.GlobalParameters[lang].Parameters.Currency
}

func (a *Admin) GetParams(lang string) *Params {
	return a.GlobalParameters[lang].Parameters
}

func (a *Admin) GetAdvertText(lang string, channel int) string {
	return a.GlobalParameters[lang].AdvertisingText[channel]
}

func (a *Admin) GetAdvertUrl(lang string, channel int) string {
	return a.GlobalParameters[lang].AdvertisingChan.Url[channel]
}

func (a *Admin) GetAdvertChannelID(lang string, channel int) int64 {
	return a.GlobalParameters[lang].AdvertisingChan.ChannelID[channel]
}

func (a *Admin) GetSocialURL(lang string) string {
	return a.GlobalParameters[lang].SocialURL
}

func (a *Admin) GetOperatorChatID(lang string) int64 {
	return a.GlobalParameters[lang].OperatorChatID
}

func (a *Admin) UnderMaintenance(lang string) bool {
	return a.GlobalParameters[lang].MaintenanceMode
}

///////////////////
//Update Parameters
///////////////////

func (a *Admin) UpdateAdvertUrl(lang string, channel int, value string) {
	a.GlobalParameters[lang].AdvertisingChan.Url[channel] = value
}

func (a *Admin) UpdateAdvertChannelID(lang string, value int64, channel int) {
	a.GlobalParameters[lang].AdvertisingChan.ChannelID[channel] = value
}

func (a *Admin) UpdateAdvertText(lang string, value string, channel int) {
	a.GlobalParameters[lang].AdvertisingText[channel] = value
}

func (a *Admin) UpdateSocialURL(lang string, value string) {
	a.GlobalParameters[lang].SocialURL = value
}

func (a *Admin) UpdateOperatorChatID(lang string, value int64) {
	a.GlobalParameters[lang].OperatorChatID = value
}

func (a *Admin) UpdateCurrency(lang string, value string) {
	a.GlobalParameters[lang].Parameters.Currency = value
}

func (a *Admin) UpdateReferralAmount(lang string, value int) {
	a.GlobalParameters[lang].Parameters.ReferralAmount = value
}

func (a *Admin) UpdateReferralPolicy(lang string, value string) {
	a.GlobalParameters[lang].Parameters.ReferralPolicy = value
}

func (a *Admin) UpdateTaskReward(lang string, value int) {
	a.GlobalParameters[lang].Parameters.TaskReward = value
}

func (a *Admin) UpdateDailyBonusAmount(lang string, value int) {
	a.GlobalParameters[lang].Parameters.DailyBonusAmount = value
}

func (a *Admin) UpdateMinWithdrawalAmount(lang string, value int) {
	a.GlobalParameters[lang].Parameters.MinWithdrawalAmount = value
}
