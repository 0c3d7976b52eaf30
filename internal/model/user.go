package model

// Campaign verification states. StateVerified is terminal: once a user
// reaches it, no handler may move the state back.
const (
	StateUnverified    = "unverified"
	StateChannelOK     = "channel_ok"
	StateSocialPending = "social_pending"
	StateVerified      = "verified"
)

// Withdrawal request statuses. Requests are paid out manually, so the
// only transition made on a recorded request is pending -> processed,
// and it happens outside the bot.
const (
	WithdrawalPending   = "pending"
	WithdrawalProcessed = "processed"
)

type User struct {
	ID             int64  `json:"id"`
	Balance        int    `json:"balance"`
	TotalEarned    int    `json:"total_earned"`
	TotalWithdrawn int    `json:"total_withdrawn"`
	CampaignState  string `json:"campaign_state"`
	TasksDone      bool   `json:"tasks_done"`
	DailyBonusAt   string `json:"daily_bonus_at"`
	Bank           string `json:"bank"`
	AccountNumber  string `json:"account_number"`
	AccountName    string `json:"account_name"`
	ReferralCount  int    `json:"referral_count"`
	Language       string `json:"language"`
	Status         string `json:"status"`
}

func (u *User) Verified() bool {
	return u.CampaignState == StateVerified
}

// HasAccount reports whether the payout account is fully set. All three
// fields are required before a withdrawal may be requested.
func (u *User) HasAccount() bool {
	return u.Bank != "" && u.AccountNumber != "" && u.AccountName != ""
}

type Withdrawal struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"user_id"`
	Amount        int    `json:"amount"`
	RequestedAt   string `json:"requested_at"`
	Status        string `json:"status"`
	Bank          string `json:"bank"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

type Referral struct {
	ReferrerID int64 `json:"referrer_id"`
	ReferredID int64 `json:"referred_id"`
	Rewarded   bool  `json:"rewarded"`
}
