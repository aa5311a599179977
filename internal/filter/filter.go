// Package filter pre-screens posts before extraction.
package filter

import (
	"net/url"
	"strings"
	"time"

	"github.com/wonny/vulture/internal/contracts"
	"github.com/wonny/vulture/pkg/config"
)

// RejectReason explains why a post was not admitted
type RejectReason string

const (
	Admitted      RejectReason = ""
	InvalidURL    RejectReason = "invalid_url"
	MediaLink     RejectReason = "media_link"
	HostedVideo   RejectReason = "hosted_video"
	ForeignDomain RejectReason = "foreign_domain"
	StalePost     RejectReason = "stale"
)

// Filter admits text posts on the content domain
// ⭐ SSOT: 게시글 사전 필터는 여기서만
type Filter struct {
	contentScheme    string
	contentHost      string
	mediaExtensions  []string
	videoHosts       []string
	stalenessEnabled bool
	stalenessWindow  time.Duration
	now              func() time.Time
}

// New creates a filter from config. The clock defaults to time.Now in UTC.
func New(cfg config.FilterConfig) *Filter {
	f := &Filter{
		stalenessEnabled: cfg.StalenessEnabled,
		stalenessWindow:  cfg.StalenessWindow,
		now:              func() time.Time { return time.Now().UTC() },
	}

	if u, err := url.Parse(cfg.ContentDomain); err == nil {
		f.contentScheme = strings.ToLower(u.Scheme)
		f.contentHost = strings.ToLower(u.Host)
	}
	for _, ext := range cfg.MediaExtensions {
		f.mediaExtensions = append(f.mediaExtensions, strings.ToLower(ext))
	}
	for _, host := range cfg.VideoHosts {
		f.videoHosts = append(f.videoHosts, strings.ToLower(host))
	}

	return f
}

// WithClock replaces the clock used for staleness
func (f *Filter) WithClock(now func() time.Time) *Filter {
	f.now = now
	return f
}

// Admit reports whether the post should be processed
func (f *Filter) Admit(post contracts.Post) bool {
	return f.Reason(post) == Admitted
}

// Reason returns the first rule the post fails, or Admitted
func (f *Filter) Reason(post contracts.Post) RejectReason {
	u, err := url.Parse(strings.TrimSpace(post.URL))
	if err != nil || u.Host == "" {
		return InvalidURL
	}
	host := strings.ToLower(u.Hostname())

	// 1. 이미지 링크
	path := strings.ToLower(u.Path)
	for _, ext := range f.mediaExtensions {
		if strings.HasSuffix(path, ext) {
			return MediaLink
		}
	}

	// 2. 동영상 호스트
	for _, vh := range f.videoHosts {
		if host == vh || strings.HasSuffix(host, "."+vh) {
			return HostedVideo
		}
	}

	// 3. 콘텐츠 도메인
	if f.contentHost != "" {
		if strings.ToLower(u.Scheme) != f.contentScheme || strings.ToLower(u.Host) != f.contentHost {
			return ForeignDomain
		}
	}

	// 4. 오래된 게시글
	if f.stalenessEnabled && f.now().Sub(post.CreatedAt) > f.stalenessWindow {
		return StalePost
	}

	return Admitted
}
