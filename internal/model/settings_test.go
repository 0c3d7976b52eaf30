package model

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResetUpdateStatistic(t *testing.T) {
	UpdateStatistic = &UpdateInfo{Mu: new(sync.Mutex), Counter: 42, Day: 0}

	today := int(time.Now().Unix()) / 86400
	ResetUpdateStatistic()

	assert.Zero(t, UpdateStatistic.Counter)
	// The stamped day keeps the daily rollover check quiet until tomorrow.
	assert.GreaterOrEqual(t, UpdateStatistic.Day, today)
}
