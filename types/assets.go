package types

import (
	"fmt"
)

// SchemaVersion tags the response contract the model must conform to.
// Version 2 is the extended schema: campaign/SEO strategy plus per-asset
// rationale, postType and visualSuggestion fields. Responses that do not
// match this shape are rejected, never silently downgraded.
const SchemaVersion = 2

// InputType classifies a submitted piece of content.
type InputType string

const (
	InputYouTube InputType = "YouTube"
	InputAudio   InputType = "Audio File"
	InputBlog    InputType = "Blog Post"
	InputUnknown InputType = "Unknown"
)

// Social platforms the model may target.
const (
	PlatformLinkedIn  = "LinkedIn"
	PlatformX         = "X"
	PlatformInstagram = "Instagram"
)

// CampaignStrategy is the high-level marketing strategy derived from the content.
type CampaignStrategy struct {
	TargetAudience  string   `json:"targetAudience"`
	BrandVoice      string   `json:"brandVoice"`
	ContentPillars  []string `json:"contentPillars"`
	PostingSchedule string   `json:"postingSchedule"`
}

// SeoStrategy is the SEO and discoverability strategy.
type SeoStrategy struct {
	PrimaryKeyword    string   `json:"primaryKeyword"`
	SecondaryKeywords []string `json:"secondaryKeywords"`
	SuggestedTags     []string `json:"suggestedTags"`
	MetaDescription   string   `json:"metaDescription"`
}

// VideoClip is editing metadata for a short-form clip. Timestamps are
// seconds into the source; a clip is valid only when 0 <= start < end.
type VideoClip struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Hook          string  `json:"hook"`
	StartTime     float64 `json:"startTime"`
	EndTime       float64 `json:"endTime"`
	ViralityScore float64 `json:"viralityScore"`
	Rationale     string  `json:"rationale,omitempty"`
}

// Audiogram is an audio-only highlight segment with descriptive metadata.
type Audiogram struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Summary   string  `json:"summary"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Rationale string  `json:"rationale,omitempty"`
}

// SocialPost is a drafted post for one platform.
type SocialPost struct {
	ID               string `json:"id"`
	Platform         string `json:"platform"`
	PostType         string `json:"postType,omitempty"`
	Content          string `json:"content"`
	VisualSuggestion string `json:"visualSuggestion,omitempty"`
	Rationale        string `json:"rationale,omitempty"`
}

// GeneratedAssets is the full result of one content-analysis request.
// It is immutable once stored and replaced wholesale by the next request.
// InputType and Source are stamped by the caller, never by the model.
type GeneratedAssets struct {
	InputType        InputType         `json:"inputType"`
	Source           string            `json:"source"`
	CampaignStrategy *CampaignStrategy `json:"campaignStrategy,omitempty"`
	SeoStrategy      *SeoStrategy      `json:"seoStrategy,omitempty"`
	Summary          string            `json:"summary,omitempty"`
	Transcript       string            `json:"transcript,omitempty"`
	KeyTakeaways     []string          `json:"keyTakeaways,omitempty"`
	VideoClips       []VideoClip       `json:"videoClips,omitempty"`
	Audiograms       []Audiogram       `json:"audiograms,omitempty"`
	SocialPosts      []SocialPost      `json:"socialPosts,omitempty"`
	EmailDraft       string            `json:"emailDraft,omitempty"`
}

// Validate checks the invariants the model is contractually bound to:
// clip and audiogram time ranges, and known social platforms.
func (a *GeneratedAssets) Validate() error {
	for i, c := range a.VideoClips {
		if c.StartTime < 0 || c.StartTime >= c.EndTime {
			return fmt.Errorf("video clip %d: invalid time range [%.2f, %.2f]", i, c.StartTime, c.EndTime)
		}
	}
	for i, g := range a.Audiograms {
		if g.StartTime < 0 || g.StartTime >= g.EndTime {
			return fmt.Errorf("audiogram %d: invalid time range [%.2f, %.2f]", i, g.StartTime, g.EndTime)
		}
	}
	for i, p := range a.SocialPosts {
		switch p.Platform {
		case PlatformLinkedIn, PlatformX, PlatformInstagram:
		default:
			return fmt.Errorf("social post %d: unknown platform %q", i, p.Platform)
		}
	}
	return nil
}
