package resume

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/maxaizer/placement-portal/internal/apperr"
	"github.com/maxaizer/placement-portal/internal/logger"
	"github.com/maxaizer/placement-portal/internal/metrics"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	UnreadableResumeText = "The resume could not be processed. The PDF may be scanned, image-based or empty."
	minResumeTextLength  = 50
)

type Extractor struct {
	load        documentLoader
	pageTimeout time.Duration
	loadTimeout time.Duration
}

func NewExtractor(pageTimeout, loadTimeout time.Duration) *Extractor {
	return &Extractor{load: loadPDF, pageTimeout: pageTimeout, loadTimeout: loadTimeout}
}

// Extract returns the text of every page in page order. Pages that fail or time out are replaced
// by an error marker. A document with almost no text yields UnreadableResumeText instead of an error.
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	doc, err := e.loadDocument(ctx, data)
	if err != nil {
		return "", err
	}

	pages := make([]string, doc.NumPages())

	var group errgroup.Group
	for i := range pages {
		group.Go(func() error {
			pages[i] = e.extractPage(doc, i)
			return nil
		})
	}
	_ = group.Wait()

	text := strings.TrimSpace(strings.Join(pages, "\n"))
	if utf8.RuneCountInString(text) < minResumeTextLength {
		log.Infof("resume text is too short (%d chars), using placeholder", utf8.RuneCountInString(text))
		return UnreadableResumeText, nil
	}
	return text, nil
}

func (e *Extractor) loadDocument(ctx context.Context, data []byte) (document, error) {
	type loadResult struct {
		doc document
		err error
	}

	done := make(chan loadResult, 1)
	go func() {
		doc, err := e.load(data)
		done <- loadResult{doc, err}
	}()

	timer := time.NewTimer(e.loadTimeout)
	defer timer.Stop()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, apperr.Wrap(apperr.KindExtraction, res.err, "failed to read resume")
		}
		return res.doc, nil
	case <-timer.C:
		return nil, apperr.New(apperr.KindExtraction, fmt.Sprintf("loading the resume took longer than %v", e.loadTimeout))
	case <-ctx.Done():
		return nil, apperr.Wrap(apperr.KindExtraction, ctx.Err(), "resume extraction cancelled")
	}
}

// extractPage is not cancelled by the caller. A page that outlives its timeout keeps running in the background.
func (e *Extractor) extractPage(doc document, index int) string {
	type pageResult struct {
		text string
		err  error
	}

	done := make(chan pageResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- pageResult{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		text, err := doc.PageText(index)
		done <- pageResult{text: text, err: err}
	}()

	timer := time.NewTimer(e.pageTimeout)
	defer timer.Stop()

	select {
	case res := <-done:
		if res.err != nil {
			logPageFailure(index, res.err)
			return pageErrorMarker(index)
		}
		return normalizeWhitespace(res.text)
	case <-timer.C:
		logPageFailure(index, fmt.Errorf("timed out after %v", e.pageTimeout))
		return pageErrorMarker(index)
	}
}

func logPageFailure(index int, err error) {
	metrics.ResumePageFailuresCounter.Inc()
	log.WithField(logger.ErrorTypeField, logger.ErrorTypePdf).Warnf("failed to extract page %d: %v", index+1, err)
}

func pageErrorMarker(index int) string {
	return fmt.Sprintf("[Page %d Extraction Error]", index+1)
}

func normalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
