package telegram

import (
	"errors"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/placement-portal/internal/domain/events"
	"github.com/maxaizer/placement-portal/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	messages []botApi.MessageConfig
	err      error
}

func (m *mockSender) Send(c botApi.Chattable) (botApi.Message, error) {
	if msg, ok := c.(botApi.MessageConfig); ok {
		m.messages = append(m.messages, msg)
	}
	return botApi.Message{}, m.err
}

func Test_Announcer_PostsNewJobs(t *testing.T) {
	bus := EventBus.New()
	sender := &mockSender{}
	_, err := newAnnouncer(sender, -100123, "https://portal.example.com/", bus)
	require.NoError(t, err)

	bus.Publish(events.JobPostedTopic, events.JobPosted{Job: models.Job{
		ID: "job-1", Title: "R&D Intern", Company: "Acme <Labs>", Type: models.Internship,
		Salary: models.Salary{Stipend: "40k"}, Skills: []string{"go", "sql"},
	}})
	bus.WaitAsync()

	require.Len(t, sender.messages, 1)
	msg := sender.messages[0]
	assert.Equal(t, int64(-100123), msg.ChatID)
	assert.Equal(t, botApi.ModeHTML, msg.ParseMode)
	assert.Equal(t, "<b>R&amp;D Intern</b> at <b>Acme &lt;Labs&gt;</b>\nType: internship\nStipend: 40k\n"+
		"Skills: go, sql\nhttps://portal.example.com/jobs/job-1", msg.Text)
}

func Test_Announcer_PostsJobUpdates(t *testing.T) {
	bus := EventBus.New()
	sender := &mockSender{}
	_, err := newAnnouncer(sender, 1, "", bus)
	require.NoError(t, err)

	bus.Publish(events.JobAnnouncedTopic, events.JobAnnounced{
		Job:    models.Job{ID: "job-1", Title: "SDE", Company: "Acme"},
		Update: models.JobUpdate{Summary: "Shortlist released"},
	})
	bus.WaitAsync()

	require.Len(t, sender.messages, 1)
	assert.Equal(t, "<b>Update: SDE at Acme</b>\nShortlist released", sender.messages[0].Text)
}

func Test_Announcer_SendFailureDoesNotPanic(t *testing.T) {
	bus := EventBus.New()
	sender := &mockSender{err: errors.New("chat not found")}
	_, err := newAnnouncer(sender, 1, "", bus)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		bus.Publish(events.JobPostedTopic, events.JobPosted{Job: models.Job{Title: "SDE", Company: "Acme"}})
		bus.WaitAsync()
	})
}

func Test_NewAnnouncer_RequiresBus(t *testing.T) {
	_, err := newAnnouncer(&mockSender{}, 1, "", nil)
	assert.Error(t, err)
}

type blockingSender struct {
	release chan struct{}
	sent    chan string
}

func (b *blockingSender) Send(c botApi.Chattable) (botApi.Message, error) {
	<-b.release
	if msg, ok := c.(botApi.MessageConfig); ok {
		b.sent <- msg.Text
	}
	return botApi.Message{}, nil
}

func Test_Announcer_SlowTelegramDoesNotBlockPublisher(t *testing.T) {
	bus := EventBus.New()
	sender := &blockingSender{release: make(chan struct{}), sent: make(chan string, 2)}
	_, err := newAnnouncer(sender, 1, "", bus)
	require.NoError(t, err)

	published := make(chan struct{})
	go func() {
		bus.Publish(events.JobPostedTopic, events.JobPosted{Job: models.Job{ID: "job-1", Title: "First", Company: "Acme"}})
		bus.Publish(events.JobPostedTopic, events.JobPosted{Job: models.Job{ID: "job-2", Title: "Second", Company: "Acme"}})
		close(published)
	}()

	select {
	case <-published:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher waited for telegram")
	}

	close(sender.release)
	bus.WaitAsync()

	texts := []string{<-sender.sent, <-sender.sent}
	assert.ElementsMatch(t, []string{"<b>First</b> at <b>Acme</b>", "<b>Second</b> at <b>Acme</b>"}, texts)
}
