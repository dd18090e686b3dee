package bearreader

import (
	"context"
	"fmt"
	"strings"
)

// Default settings values.
const (
	DefaultServiceURL = "https://bearblog.dev/discover/"
	DefaultUserAgent  = "BearReader/1.0 (https://github.com/fwojciec/bearreader)"
)

// Selectors holds the CSS selectors used to scrape listing and post pages.
// They are user-editable because blog themes vary.
type Selectors struct {
	PostsList   string `json:"postsList" yaml:"postsList"`
	PostTitle   string `json:"postTitle" yaml:"postTitle"`
	PostAge     string `json:"postAge" yaml:"postAge"`
	PostRating  string `json:"postRating" yaml:"postRating"`
	MainContent string `json:"mainContent" yaml:"mainContent"`
}

// DefaultSelectors returns the selectors matching the platform's default theme.
func DefaultSelectors() Selectors {
	return Selectors{
		PostsList:   "ul > li",
		PostTitle:   "div > a",
		PostAge:     "div small > small:first-of-type",
		PostRating:  "div small > small:last-child",
		MainContent: "main",
	}
}

// Validate returns an error naming the first blank selector.
func (s Selectors) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"posts list", s.PostsList},
		{"post title", s.PostTitle},
		{"post age", s.PostAge},
		{"post rating", s.PostRating},
		{"main content", s.MainContent},
	} {
		if strings.TrimSpace(f.value) == "" {
			return Errorf(EINVALID, "%s selector required", f.name)
		}
	}
	return nil
}

// Settings is the user-editable application configuration.
type Settings struct {
	ServiceURL string    `json:"serviceUrl" yaml:"serviceUrl"`
	UserAgent  string    `json:"userAgent" yaml:"userAgent"`
	Selectors  Selectors `json:"selectors" yaml:"selectors"`
}

// DefaultSettings returns the settings used until the user changes them.
func DefaultSettings() *Settings {
	return &Settings{
		ServiceURL: DefaultServiceURL,
		UserAgent:  DefaultUserAgent,
		Selectors:  DefaultSelectors(),
	}
}

// Validate returns an error if the settings contain invalid fields.
func (s *Settings) Validate() error {
	if s.ServiceURL == "" {
		return Errorf(EINVALID, "service URL required")
	}
	return s.Selectors.Validate()
}

// TrendingURL returns the discovery page listing trending posts.
func (s *Settings) TrendingURL(page int) string {
	return fmt.Sprintf("%s?page=%d", strings.TrimSuffix(s.ServiceURL, "/"), page)
}

// RecentURL returns the discovery page listing the newest posts.
func (s *Settings) RecentURL(page int) string {
	return fmt.Sprintf("%s?newest=true&page=%d", strings.TrimSuffix(s.ServiceURL, "/"), page)
}

// SettingsUpdate represents fields that can be updated in Settings.
type SettingsUpdate struct {
	ServiceURL  *string `json:"serviceUrl"`
	UserAgent   *string `json:"userAgent"`
	PostsList   *string `json:"postsList"`
	PostTitle   *string `json:"postTitle"`
	PostAge     *string `json:"postAge"`
	PostRating  *string `json:"postRating"`
	MainContent *string `json:"mainContent"`
}

// Apply copies the set fields of the update onto s.
func (u SettingsUpdate) Apply(s *Settings) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&s.ServiceURL, u.ServiceURL)
	set(&s.UserAgent, u.UserAgent)
	set(&s.Selectors.PostsList, u.PostsList)
	set(&s.Selectors.PostTitle, u.PostTitle)
	set(&s.Selectors.PostAge, u.PostAge)
	set(&s.Selectors.PostRating, u.PostRating)
	set(&s.Selectors.MainContent, u.MainContent)
}

// SettingsService represents a service for reading and editing settings.
type SettingsService interface {
	// Settings returns the current settings, falling back to defaults for
	// values never set.
	Settings(ctx context.Context) (*Settings, error)

	// UpdateSettings applies the update and returns the new settings.
	UpdateSettings(ctx context.Context, upd SettingsUpdate) (*Settings, error)

	// ResetSettings restores all defaults.
	ResetSettings(ctx context.Context) error
}

// SelectorPreview reports what a CSS selector matches on a page.
type SelectorPreview struct {
	MatchCount int
	Matches    []string
	Valid      bool
	Error      string
}

// SelectorPreviewer evaluates selectors against a page so users can tune
// them before saving.
type SelectorPreviewer interface {
	PreviewSelector(html string, selector string) SelectorPreview
}
