package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/recycleflux/adminbot/internal/config"
)

// LinkPreview is the metadata shown while an operator drafts a task
// with a content URL, so they can confirm the link before submitting.
type LinkPreview struct {
	Title       string
	Description string
	ImageURL    string
}

type PreviewService struct {
	httpClient *http.Client
}

func NewPreviewService() *PreviewService {
	return &PreviewService{
		httpClient: &http.Client{Timeout: config.PreviewTimeout},
	}
}

// Fetch loads the page and extracts Open Graph metadata, falling back
// to the document title and description meta tag.
func (s *PreviewService) Fetch(ctx context.Context, pageURL string) (*LinkPreview, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	preview := &LinkPreview{}

	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		preview.Title = strings.TrimSpace(og)
	}
	if preview.Title == "" {
		preview.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	if og, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		preview.Description = strings.TrimSpace(og)
	}
	if preview.Description == "" {
		if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
			preview.Description = strings.TrimSpace(desc)
		}
	}

	if img, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
		preview.ImageURL = strings.TrimSpace(img)
	}

	return preview, nil
}
