package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxaizer/placement-portal/internal/apperr"
)

func (s *Server) uploadResume(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		rpcError(c, "resume.upload", apperr.Wrap(apperr.KindValidation, err, "file is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		rpcError(c, "resume.upload", apperr.Wrap(apperr.KindValidation, err, "failed to open file"))
		return
	}
	defer file.Close()

	// one extra byte so the service can tell an oversized upload apart
	data, err := io.ReadAll(io.LimitReader(file, s.maxUploadBytes()+1))
	if err != nil {
		rpcError(c, "resume.upload", apperr.Wrap(apperr.KindValidation, err, "failed to read file"))
		return
	}

	profile, err := s.services.Resumes.Upload(c.Request.Context(), callerID(c), data)
	if err != nil {
		rpcError(c, "resume.upload", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": profile})
}

func (s *Server) maxUploadBytes() int64 {
	return int64(s.services.Resumes.MaxBytes())
}
