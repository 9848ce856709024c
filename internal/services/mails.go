package services

import (
	"context"

	"github.com/maxaizer/placement-portal/internal/apperr"
	"github.com/maxaizer/placement-portal/internal/domain/models"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type MailInput struct {
	Subject         string   `json:"subject" validate:"required"`
	MailContent     string   `json:"mailContent" validate:"required"`
	AttachmentLinks []string `json:"attachmentLinks" validate:"required"`
	Classification  string   `json:"classification" validate:"required"`
	Reason          string   `json:"reason" validate:"required"`
	IsApproved      bool     `json:"isApproved"`
}

type MailsService struct {
	accessControl
	mails mailRepository
}

func NewMailsService(mails mailRepository, profiles profileReader) *MailsService {
	return &MailsService{
		accessControl: accessControl{profiles: profiles},
		mails:         mails,
	}
}

func (s *MailsService) Create(ctx context.Context, userID string, input MailInput) (*models.Mail, error) {
	if err := s.requireAdmin(ctx, userID); err != nil {
		return nil, err
	}
	return s.Save(ctx, input)
}

// Save stores an ingested mail with its plain text rendition and the links found in its body.
func (s *MailsService) Save(ctx context.Context, input MailInput) (*models.Mail, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	text, links, err := renderMailContent(input.MailContent)
	if err != nil {
		log.Warnf("failed to parse mail content, storing it as is: %v", err)
		text = input.MailContent
	}

	mail := &models.Mail{
		Subject:         input.Subject,
		MailContent:     input.MailContent,
		PlainText:       text,
		Links:           links,
		AttachmentLinks: input.AttachmentLinks,
		Classification:  input.Classification,
		Reason:          input.Reason,
		IsApproved:      input.IsApproved,
	}
	if err = s.mails.Add(ctx, mail); err != nil {
		return nil, err
	}

	log.Infof("mail %v saved, classification: %v", mail.ID, mail.Classification)
	return mail, nil
}

func (s *MailsService) UploadAttachments(ctx context.Context, mailID string, links []string) (*models.Mail, error) {
	if mailID == "" {
		return nil, apperr.Validation("mailId is required")
	}

	links = lo.Compact(links)
	mail, err := s.mails.AppendAttachmentLinks(ctx, mailID, links)
	if err != nil {
		return nil, err
	}
	if mail == nil {
		return nil, apperr.NotFound("Mail not found")
	}
	return mail, nil
}
