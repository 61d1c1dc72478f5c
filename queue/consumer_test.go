package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-storefront/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyMailer struct {
	failures int
	sent     []utils.Email
}

func (m *flakyMailer) SendEmail(_ context.Context, email utils.Email) error {
	if m.failures > 0 {
		m.failures--
		return errors.New("provider unavailable")
	}
	m.sent = append(m.sent, email)
	return nil
}

func encode(t *testing.T, job NotificationJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestProcessDelivers(t *testing.T) {
	mailer := &flakyMailer{}
	c := NewConsumer("", "q", mailer, 3, time.Millisecond)

	email := utils.Email{To: "ana@example.com", Subject: utils.WelcomeSubject, HTMLBody: "<h2>hi</h2>"}
	retry, err := c.process(context.Background(), encode(t, NotificationJob{Email: email}))
	require.NoError(t, err)
	assert.Nil(t, retry)
	assert.Equal(t, []utils.Email{email}, mailer.sent)
}

func TestProcessRetriesThenGivesUp(t *testing.T) {
	mailer := &flakyMailer{failures: 10}
	c := NewConsumer("", "q", mailer, 3, time.Millisecond)
	job := NotificationJob{Email: utils.Email{To: "ana@example.com", Subject: "s", TextBody: "b"}}

	retry, err := c.process(context.Background(), encode(t, job))
	require.NoError(t, err)
	require.NotNil(t, retry)
	assert.Equal(t, 1, retry.Attempts)

	retry, err = c.process(context.Background(), encode(t, *retry))
	require.NoError(t, err)
	require.NotNil(t, retry)
	assert.Equal(t, 2, retry.Attempts)

	retry, err = c.process(context.Background(), encode(t, *retry))
	require.NoError(t, err)
	assert.Nil(t, retry)
	assert.Empty(t, mailer.sent)
}

func TestProcessRejectsGarbage(t *testing.T) {
	c := NewConsumer("", "q", &flakyMailer{}, 3, time.Millisecond)

	_, err := c.process(context.Background(), []byte("{not json"))
	assert.Error(t, err)

	_, err = c.process(context.Background(), encode(t, NotificationJob{}))
	assert.Error(t, err)
}
