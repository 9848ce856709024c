package services

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"
)

var bareURLPattern = regexp.MustCompile(`https?://[^\s"'<>]+`)

// renderMailContent returns the readable text of an html or plain mail body and the http links it contains.
func renderMailContent(content string) (string, []string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", nil, err
	}

	doc.Find("script, style, head").Remove()

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			links = append(links, href)
		}
	})

	doc.Find("br, p, div, li, tr, h1, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	text := normalizeText(doc.Text())
	links = append(links, bareURLPattern.FindAllString(text, -1)...)

	return text, lo.Uniq(links), nil
}

func normalizeText(text string) string {
	lines := strings.Split(text, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
