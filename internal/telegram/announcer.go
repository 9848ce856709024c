package telegram

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/placement-portal/internal/domain/events"
	"github.com/maxaizer/placement-portal/internal/domain/models"
	"github.com/maxaizer/placement-portal/internal/logger"
	log "github.com/sirupsen/logrus"
)

type sender interface {
	Send(c botApi.Chattable) (botApi.Message, error)
}

// Announcer posts new jobs and job updates to a Telegram channel.
type Announcer struct {
	api       sender
	channelID int64
	portalURL string
}

func NewAnnouncer(token string, channelID int64, portalURL string, bus EventBus.Bus) (*Announcer, error) {

	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	if err = botApi.SetLogger(log.StandardLogger()); err != nil {
		return nil, err
	}

	return newAnnouncer(api, channelID, portalURL, bus)
}

func newAnnouncer(api sender, channelID int64, portalURL string, bus EventBus.Bus) (*Announcer, error) {
	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	a := &Announcer{api: api, channelID: channelID, portalURL: strings.TrimRight(portalURL, "/")}

	// posts run off the request path. Non-transactional, a transactional handler would make the next Publish wait.
	if err := bus.SubscribeAsync(events.JobPostedTopic, a.onJobPosted, false); err != nil {
		return nil, err
	}
	if err := bus.SubscribeAsync(events.JobAnnouncedTopic, a.onJobAnnounced, false); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Announcer) onJobPosted(event events.JobPosted) {
	a.send(formatJob(event.Job, a.jobLink(event.Job.ID)))
}

func (a *Announcer) onJobAnnounced(event events.JobAnnounced) {
	text := fmt.Sprintf("<b>Update: %s at %s</b>\n%s",
		html.EscapeString(event.Job.Title), html.EscapeString(event.Job.Company), html.EscapeString(event.Update.Summary))
	if link := a.jobLink(event.Job.ID); link != "" {
		text += "\n" + link
	}
	a.send(text)
}

func (a *Announcer) send(text string) {
	msg := botApi.NewMessage(a.channelID, text)
	msg.ParseMode = botApi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := a.api.Send(msg); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).Errorf("error occured while sending message: %v", err)
	}
}

func (a *Announcer) jobLink(jobID string) string {
	if a.portalURL == "" {
		return ""
	}
	return a.portalURL + "/jobs/" + jobID
}

func formatJob(job models.Job, link string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b> at <b>%s</b>\n", html.EscapeString(job.Title), html.EscapeString(job.Company))

	details := []struct{ name, value string }{
		{"Type", string(job.Type)},
		{"Location", job.Location},
		{"Stipend", job.Salary.Stipend},
		{"CTC", job.Salary.CTC},
		{"Deadline", job.Deadline},
	}
	for _, d := range details {
		if d.value != "" {
			fmt.Fprintf(&b, "%s: %s\n", d.name, html.EscapeString(d.value))
		}
	}
	if len(job.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", html.EscapeString(strings.Join(job.Skills, ", ")))
	}
	if link != "" {
		b.WriteString(link)
	}
	return strings.TrimRight(b.String(), "\n")
}
