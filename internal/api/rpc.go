package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxaizer/placement-portal/internal/apperr"
	"github.com/maxaizer/placement-portal/internal/services"
)

const maxArgsSize = 1 << 20

type rpcHandler func(ctx context.Context, userID string, args []byte) (any, error)

type idArgs struct {
	ID string `json:"id"`
}

type updateJobArgs struct {
	ID string `json:"id"`
	services.JobPatch
}

type listJobsArgs struct {
	OnlyActive bool `json:"onlyActive"`
}

type mailIDArgs struct {
	MailID string `json:"mailId"`
}

type jobIDArgs struct {
	JobID string `json:"jobId"`
}

type updateStatusArgs struct {
	ApplicationID string `json:"applicationId"`
	Status        string `json:"status"`
}

type studentIDArgs struct {
	StudentID string `json:"studentId"`
}

type userIDArgs struct {
	UserID string `json:"userId"`
}

type limitArgs struct {
	Limit int `json:"limit"`
}

type notificationIDArgs struct {
	NotificationID string `json:"notificationId"`
}

type noArgs struct{}

// handle decodes the call arguments into T before invoking fn.
func handle[T any](fn func(ctx context.Context, userID string, args T) (any, error)) rpcHandler {
	return func(ctx context.Context, userID string, raw []byte) (any, error) {
		var args T
		if len(bytes.TrimSpace(raw)) > 0 {
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, apperr.Wrap(apperr.KindValidation, err, "invalid arguments")
			}
		}
		return fn(ctx, userID, args)
	}
}

func (s *Server) rpcHandlers() map[string]rpcHandler {
	jobs := s.services.Jobs
	applications := s.services.Applications
	users := s.services.Users
	notifications := s.services.Notifications
	mails := s.services.Mails
	jobUpdates := s.services.JobUpdates
	resumes := s.services.Resumes

	return map[string]rpcHandler{
		"jobs.create": handle(func(ctx context.Context, userID string, args services.JobInput) (any, error) {
			return jobs.Create(ctx, userID, args)
		}),
		"jobs.update": handle(func(ctx context.Context, userID string, args updateJobArgs) (any, error) {
			return jobs.Update(ctx, userID, args.ID, args.JobPatch)
		}),
		"jobs.list": handle(func(ctx context.Context, userID string, args listJobsArgs) (any, error) {
			return jobs.List(ctx, userID, args.OnlyActive)
		}),
		"jobs.getById": handle(func(ctx context.Context, userID string, args idArgs) (any, error) {
			return jobs.GetByID(ctx, userID, args.ID)
		}),
		"jobs.deleteJob": handle(func(ctx context.Context, userID string, args idArgs) (any, error) {
			return nil, jobs.Delete(ctx, userID, args.ID)
		}),
		"jobs.listActiveJobs": handle(func(ctx context.Context, userID string, _ noArgs) (any, error) {
			return jobs.ListActiveJobs(ctx, userID)
		}),
		"jobs.listActiveCompanies": handle(func(ctx context.Context, userID string, _ noArgs) (any, error) {
			return jobs.ListActiveCompanies(ctx, userID)
		}),
		"jobs.getJobByMailId": handle(func(ctx context.Context, userID string, args mailIDArgs) (any, error) {
			return jobs.GetByMailID(ctx, userID, args.MailID)
		}),

		"applications.apply": handle(func(ctx context.Context, userID string, args jobIDArgs) (any, error) {
			return applications.Apply(ctx, userID, args.JobID)
		}),
		"applications.updateStatus": handle(func(ctx context.Context, userID string, args updateStatusArgs) (any, error) {
			return applications.UpdateStatus(ctx, userID, args.ApplicationID, args.Status)
		}),
		"applications.listByStudent": handle(func(ctx context.Context, userID string, args studentIDArgs) (any, error) {
			return applications.ListByStudent(ctx, userID, args.StudentID)
		}),
		"applications.getById": handle(func(ctx context.Context, userID string, args idArgs) (any, error) {
			return applications.GetByID(ctx, userID, args.ID)
		}),

		"users.createProfile": handle(func(ctx context.Context, userID string, args services.ProfileInput) (any, error) {
			return users.CreateProfile(ctx, userID, args)
		}),
		"users.getProfile": handle(func(ctx context.Context, userID string, _ noArgs) (any, error) {
			return users.GetProfile(ctx, userID)
		}),
		"users.editProfile": handle(func(ctx context.Context, userID string, args services.ProfilePatch) (any, error) {
			return users.EditProfile(ctx, userID, args)
		}),
		"users.isAdmin": handle(func(ctx context.Context, userID string, _ noArgs) (any, error) {
			return users.IsAdmin(ctx, userID)
		}),
		"users.getById": handle(func(ctx context.Context, userID string, args userIDArgs) (any, error) {
			return users.GetByID(ctx, userID, args.UserID)
		}),

		"notifications.getNotifications": handle(func(ctx context.Context, userID string, args limitArgs) (any, error) {
			return notifications.GetNotifications(ctx, userID, args.Limit)
		}),
		"notifications.createNotification": handle(func(ctx context.Context, userID string, args services.NotificationInput) (any, error) {
			return notifications.CreateNotification(ctx, userID, args)
		}),
		"notifications.markAsRead": handle(func(ctx context.Context, userID string, args notificationIDArgs) (any, error) {
			return nil, notifications.MarkAsRead(ctx, userID, args.NotificationID)
		}),
		"notifications.markAllAsRead": handle(func(ctx context.Context, userID string, _ noArgs) (any, error) {
			return notifications.MarkAllAsRead(ctx, userID)
		}),
		"notifications.getUnreadCount": handle(func(ctx context.Context, userID string, _ noArgs) (any, error) {
			return notifications.GetUnreadCount(ctx, userID)
		}),

		"mails.create": handle(func(ctx context.Context, userID string, args services.MailInput) (any, error) {
			return mails.Create(ctx, userID, args)
		}),

		"jobUpdates.create": handle(func(ctx context.Context, userID string, args services.JobUpdateInput) (any, error) {
			return jobUpdates.Create(ctx, userID, args)
		}),
		"jobUpdates.listByJob": handle(func(ctx context.Context, userID string, args jobIDArgs) (any, error) {
			return jobUpdates.ListByJob(ctx, userID, args.JobID)
		}),

		"resume.analyze": handle(func(ctx context.Context, userID string, args services.AnalyzeInput) (any, error) {
			return resumes.Analyze(ctx, userID, args)
		}),
	}
}

func (s *Server) callFunction(c *gin.Context) {
	name := c.Param("module") + "." + c.Param("function")
	handler, ok := s.rpc[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown function " + name})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxArgsSize))
	if err != nil {
		rpcError(c, name, apperr.Wrap(apperr.KindValidation, err, "failed to read arguments"))
		return
	}

	value, err := handler(c.Request.Context(), callerID(c), body)
	if err != nil {
		rpcError(c, name, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": value})
}

func rpcError(c *gin.Context, name string, err error) {
	logIfInternal(err, name)
	c.JSON(apperr.HTTPStatus(err), gin.H{"error": apperr.PublicMessage(err)})
}
