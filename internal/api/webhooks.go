package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxaizer/placement-portal/internal/apperr"
	"github.com/maxaizer/placement-portal/internal/metrics"
	"github.com/maxaizer/placement-portal/internal/services"
	"github.com/samber/lo"
)

type attachmentLink struct {
	WebViewLink string `json:"webViewLink"`
}

type uploadAttachmentsRequest struct {
	MailID          string           `json:"mailId"`
	AttachmentLinks []attachmentLink `json:"attachmentLinks"`
}

func (s *Server) saveMail(c *gin.Context) {
	var req services.MailInput
	if !bindWebhook(c, &req) {
		return
	}

	mail, err := s.services.Mails.Save(c.Request.Context(), req)
	if err != nil {
		webhookError(c, err)
		return
	}
	webhookSuccess(c, gin.H{"mailId": mail.ID})
}

func (s *Server) createJob(c *gin.Context) {
	var req services.JobInput
	if !bindWebhook(c, &req) {
		return
	}

	job, created, err := s.services.Jobs.UpsertFromMail(c.Request.Context(), req)
	if err != nil {
		webhookError(c, err)
		return
	}
	webhookSuccess(c, gin.H{"jobId": job.ID, "created": created})
}

func (s *Server) jobUpdate(c *gin.Context) {
	var req services.MailJobUpdateInput
	if !bindWebhook(c, &req) {
		return
	}

	update, err := s.services.JobUpdates.CreateFromMail(c.Request.Context(), req)
	if err != nil {
		webhookError(c, err)
		return
	}
	webhookSuccess(c, gin.H{"jobUpdateId": update.ID, "jobId": update.JobID})
}

func (s *Server) getActiveCompanies(c *gin.Context) {
	companies, err := s.services.Jobs.ActiveCompanies(c.Request.Context())
	if err != nil {
		webhookError(c, err)
		return
	}
	webhookSuccess(c, gin.H{"companies": companies})
}

func (s *Server) uploadAttachments(c *gin.Context) {
	var req uploadAttachmentsRequest
	if !bindWebhook(c, &req) {
		return
	}

	links := lo.Map(req.AttachmentLinks, func(l attachmentLink, _ int) string { return l.WebViewLink })
	mail, err := s.services.Mails.UploadAttachments(c.Request.Context(), req.MailID, links)
	if err != nil {
		webhookError(c, err)
		return
	}
	webhookSuccess(c, gin.H{"mailId": mail.ID, "attachmentLinks": mail.AttachmentLinks})
}

func bindWebhook(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		webhookError(c, apperr.Wrap(apperr.KindValidation, err, "invalid request body"))
		return false
	}
	return true
}

func webhookSuccess(c *gin.Context, body gin.H) {
	metrics.WebhookCallsCounter.WithLabelValues(c.FullPath(), "success").Inc()
	body["success"] = true
	c.JSON(http.StatusOK, body)
}

func webhookError(c *gin.Context, err error) {
	logIfInternal(err, c.FullPath())
	metrics.WebhookCallsCounter.WithLabelValues(c.FullPath(), apperr.KindOf(err).String()).Inc()

	status := apperr.HTTPStatus(err)
	if status == http.StatusForbidden {
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"success": false, "error": apperr.PublicMessage(err)})
}
