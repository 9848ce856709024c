package resume

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/maxaizer/placement-portal/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePage struct {
	text  string
	err   error
	delay time.Duration
	panic bool
}

type fakeDocument struct {
	pages []fakePage
}

func (d fakeDocument) NumPages() int {
	return len(d.pages)
}

func (d fakeDocument) PageText(index int) (string, error) {
	page := d.pages[index]
	time.Sleep(page.delay)
	if page.panic {
		panic("broken content stream")
	}
	return page.text, page.err
}

func newTestExtractor(doc document, loadErr error) *Extractor {
	e := NewExtractor(200*time.Millisecond, time.Second)
	e.load = func([]byte) (document, error) {
		return doc, loadErr
	}
	return e
}

func Test_Extractor_JoinsPagesInIndexOrder(t *testing.T) {
	doc := fakeDocument{pages: []fakePage{
		{text: "Page one   talks about\n Go   services", delay: 60 * time.Millisecond},
		{text: "Page two covers Kubernetes", delay: 30 * time.Millisecond},
		{text: "Page three lists open source work"},
	}}

	text, err := newTestExtractor(doc, nil).Extract(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Page one talks about Go services\nPage two covers Kubernetes\nPage three lists open source work", text)
}

func Test_Extractor_FailedPageIsReplacedByMarker(t *testing.T) {
	cases := map[string]fakePage{
		"error":   {err: errors.New("bad font")},
		"panic":   {panic: true},
		"timeout": {text: "too slow", delay: time.Second},
	}

	for name, failing := range cases {
		t.Run(name, func(t *testing.T) {
			doc := fakeDocument{pages: []fakePage{
				{text: "Experienced backend engineer"},
				{text: "Built payment systems in Go"},
				failing,
				{text: "Education: B.Tech Computer Science"},
			}}

			text, err := newTestExtractor(doc, nil).Extract(context.Background(), nil)
			require.NoError(t, err)

			lines := strings.Split(text, "\n")
			assert.Equal(t, []string{
				"Experienced backend engineer",
				"Built payment systems in Go",
				"[Page 3 Extraction Error]",
				"Education: B.Tech Computer Science",
			}, lines)
		})
	}
}

func Test_Extractor_ShortTextYieldsPlaceholder(t *testing.T) {
	doc := fakeDocument{pages: []fakePage{{text: "  John Doe  "}}}

	text, err := newTestExtractor(doc, nil).Extract(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, UnreadableResumeText, text)

	text, err = newTestExtractor(fakeDocument{}, nil).Extract(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, UnreadableResumeText, text)
}

func Test_Extractor_LoadFailureFailsExtraction(t *testing.T) {
	_, err := newTestExtractor(nil, errors.New("not a pdf")).Extract(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindExtraction))
}

func Test_Extractor_LoadTimeoutFailsExtraction(t *testing.T) {
	e := NewExtractor(time.Second, 50*time.Millisecond)
	e.load = func([]byte) (document, error) {
		time.Sleep(300 * time.Millisecond)
		return fakeDocument{}, nil
	}

	_, err := e.Extract(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindExtraction))
	assert.Contains(t, err.Error(), "took longer than")
}

func Test_LoadPDF_RejectsGarbage(t *testing.T) {
	_, err := loadPDF([]byte("definitely not a pdf"))
	assert.Error(t, err)
}
