package model

import "github.com/prometheus/client_golang/prometheus"

var HandleUpdates = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "campaign_bot_handle_updates_total",
	Help: "Count of updates received from the transport.",
}, []string{"bot_link", "bot_lang"})

var CheckMembership = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "campaign_bot_check_membership_total",
	Help: "Count of channel membership lookups.",
}, []string{"bot_link", "bot_lang", "source"})

var WithdrawalRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "campaign_bot_withdrawal_requests_total",
	Help: "Count of accepted withdrawal requests.",
}, []string{"bot_lang"})

var ReferralsCredited = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "campaign_bot_referrals_credited_total",
	Help: "Count of paid referral rewards.",
}, []string{"bot_lang"})

var BonusClaims = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "campaign_bot_bonus_claims_total",
	Help: "Count of accepted daily bonus claims.",
}, []string{"bot_lang"})

var LossUserMessages = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "campaign_bot_loss_user_messages_total",
	Help: "Count of user messages dropped in maintenance mode.",
}, []string{"bot_lang"})

var MailToUser = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "campaign_bot_mail_to_user_total",
	Help: "Count of mailing messages sent to users.",
}, []string{"bot_link", "bot_lang"})

var BlockUser = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "campaign_bot_block_user_total",
	Help: "Count of users that blocked the bot.",
}, []string{"bot_link", "bot_lang"})

func init() {
	prometheus.MustRegister(
		HandleUpdates,
		CheckMembership,
		WithdrawalRequests,
		ReferralsCredited,
		BonusClaims,
		LossUserMessages,
		MailToUser,
		BlockUser,
	)
}
