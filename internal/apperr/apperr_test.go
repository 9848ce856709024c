package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_HTTPStatus_MapsEveryKind(t *testing.T) {
	cases := map[Kind]int{
		KindInternal:       http.StatusInternalServerError,
		KindAuthentication: http.StatusUnauthorized,
		KindAuthorization:  http.StatusForbidden,
		KindNotFound:       http.StatusNotFound,
		KindValidation:     http.StatusBadRequest,
		KindConflict:       http.StatusConflict,
		KindDownload:       http.StatusBadGateway,
		KindExtraction:     http.StatusUnprocessableEntity,
		KindGeneration:     http.StatusBadGateway,
	}
	for kind, status := range cases {
		assert.Equal(t, status, HTTPStatus(New(kind, "x")), kind.String())
	}
}

func Test_KindOf_FollowsWrappedChain(t *testing.T) {
	err := fmt.Errorf("apply: %w", NotFound("Job not found"))

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, Is(err, KindNotFound))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, KindInternal))
}

func Test_PublicMessage_HidesPlainErrors(t *testing.T) {
	assert.Equal(t, "Internal error", PublicMessage(errors.New("dial tcp: refused")))
	assert.Equal(t, "Already applied", PublicMessage(Conflict("Already applied")))
	assert.Equal(t, "analysis failed: quota exceeded",
		PublicMessage(Wrap(KindGeneration, errors.New("quota exceeded"), "analysis failed")))
}

func Test_PublicMessage_HidesPipelineCauses(t *testing.T) {
	parserErr := errors.New("pdfcpu: validateXRefTable: corrupt object 12")
	assert.Equal(t, "failed to load resume",
		PublicMessage(Wrap(KindExtraction, parserErr, "failed to load resume")))
	assert.Equal(t, "failed to download resume",
		PublicMessage(Wrap(KindDownload, errors.New("dial tcp 10.0.0.1:80: refused"), "failed to download resume")))
	assert.Equal(t, "failed to download resume: 404 Not Found",
		PublicMessage(New(KindDownload, "failed to download resume: 404 Not Found")))
}
