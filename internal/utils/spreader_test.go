package utils

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/bots-empire/campaign-bot/internal/model"
)

func TestServeHandler(t *testing.T) {
	spreader := NewSpreader(time.Minute)

	var served *model.Situation
	handler := func(s *model.Situation) error {
		served = s
		return nil
	}

	situation := &model.Situation{Command: "/start"}
	spreader.ServeHandler(handler, situation, func(err error) {
		t.Fatalf("errFunc called: %v", err)
	})

	assert.Same(t, situation, served)
	assert.False(t, served.StartTime.IsZero())
	assert.Equal(t, 1, spreader.ServedInWindow())
}

func TestServeHandlerError(t *testing.T) {
	spreader := NewSpreader(time.Minute)

	handlerErr := errors.New("handler broke")
	var got error
	spreader.ServeHandler(func(*model.Situation) error {
		return handlerErr
	}, &model.Situation{}, func(err error) {
		got = err
	})

	assert.Equal(t, handlerErr, got)
}

func TestServedInWindowResets(t *testing.T) {
	spreader := NewSpreader(10 * time.Millisecond)

	noop := func(*model.Situation) error { return nil }
	spreader.ServeHandler(noop, &model.Situation{}, nil)
	spreader.ServeHandler(noop, &model.Situation{}, nil)
	assert.Equal(t, 2, spreader.ServedInWindow())

	time.Sleep(20 * time.Millisecond)

	spreader.ServeHandler(noop, &model.Situation{}, nil)
	assert.Equal(t, 1, spreader.ServedInWindow())
}
