package generate

import (
	"errors"

	"echochamber/types"
)

// The strict output-shape declaration sent with every request. This is
// schema version types.SchemaVersion; changing the shape means bumping
// the version, not editing fields in place.

func stringProp(desc string) map[string]any {
	p := map[string]any{"type": "STRING"}
	if desc != "" {
		p["description"] = desc
	}
	return p
}

func numberProp(desc string) map[string]any {
	p := map[string]any{"type": "NUMBER"}
	if desc != "" {
		p["description"] = desc
	}
	return p
}

func stringArrayProp(desc string) map[string]any {
	return map[string]any{
		"type":        "ARRAY",
		"items":       map[string]any{"type": "STRING"},
		"description": desc,
	}
}

// ResponseSchema returns the full structured-output schema for the
// generated-assets payload, in the subset-of-OpenAPI dialect the Gemini
// API consumes. inputType and source are deliberately absent: the caller
// stamps those, the model never supplies them.
func ResponseSchema() map[string]any {
	videoClip := map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"id":            stringProp(""),
			"title":         stringProp("A catchy, viral-style title for the clip."),
			"hook":          stringProp("A compelling one-sentence hook for the clip."),
			"startTime":     numberProp(""),
			"endTime":       numberProp(""),
			"viralityScore": numberProp("A score from 70-100 indicating viral potential."),
			"rationale":     stringProp("A brief explanation of why this clip was chosen."),
		},
		"required": []string{"id", "title", "hook", "startTime", "endTime", "viralityScore", "rationale"},
	}

	audiogram := map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"id":        stringProp(""),
			"title":     stringProp(""),
			"summary":   stringProp(""),
			"startTime": numberProp(""),
			"endTime":   numberProp(""),
			"rationale": stringProp("A brief explanation of why this audio segment is engaging."),
		},
		"required": []string{"id", "title", "summary", "startTime", "endTime", "rationale"},
	}

	socialPost := map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"id":               stringProp(""),
			"platform":         map[string]any{"type": "STRING", "enum": []string{"LinkedIn", "X", "Instagram"}},
			"postType":         stringProp("The strategic type of post (e.g., 'Hook & Teaser', 'Key Takeaway', 'Discussion Starter')."),
			"content":          stringProp(""),
			"visualSuggestion": stringProp("A suggestion for the visual element."),
			"rationale":        stringProp("The strategic reason for this post's angle and format."),
		},
		"required": []string{"id", "platform", "postType", "content", "visualSuggestion", "rationale"},
	}

	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"campaignStrategy": map[string]any{
				"type":        "OBJECT",
				"description": "High-level marketing strategy derived from the content.",
				"properties": map[string]any{
					"targetAudience":  stringProp("A detailed description of the ideal target audience for this content."),
					"brandVoice":      stringProp("An analysis of the speaker's tone and brand voice."),
					"contentPillars":  stringArrayProp("The 3 main topics or themes that can be used as content pillars."),
					"postingSchedule": stringProp("A suggested 3-day posting schedule to maximize engagement."),
				},
				"required": []string{"targetAudience", "brandVoice", "contentPillars", "postingSchedule"},
			},
			"seoStrategy": map[string]any{
				"type":        "OBJECT",
				"description": "An SEO and discoverability strategy.",
				"properties": map[string]any{
					"primaryKeyword":    stringProp("The single most important keyword for this content."),
					"secondaryKeywords": stringArrayProp("A list of 5-7 related secondary keywords."),
					"suggestedTags":     stringArrayProp("Relevant hashtags or tags for social media and blogs."),
					"metaDescription":   stringProp("An SEO-optimized meta description (155-160 characters)."),
				},
				"required": []string{"primaryKeyword", "secondaryKeywords", "suggestedTags", "metaDescription"},
			},
			"summary":      stringProp("A comprehensive, well-structured summary or show notes for the content."),
			"keyTakeaways": stringArrayProp("The 5 most important takeaways or quotable moments."),
			"videoClips": map[string]any{
				"type":        "ARRAY",
				"description": "4 potential short-form video clips if the source is video. Otherwise, empty.",
				"items":       videoClip,
			},
			"audiograms": map[string]any{
				"type":        "ARRAY",
				"description": "3 potential audiogram clips if the source is audio. Otherwise, empty.",
				"items":       audiogram,
			},
			"socialPosts": map[string]any{
				"type":  "ARRAY",
				"items": socialPost,
			},
			"emailDraft": stringProp("A promotional email newsletter draft."),
			"transcript": stringProp("A full transcript. For blog posts, this field should be null."),
		},
		"required": []string{"campaignStrategy", "seoStrategy", "summary", "keyTakeaways", "videoClips", "audiograms", "socialPosts", "emailDraft"},
	}
}

// checkRequired enforces the schema's required members after decoding.
// A reply that drops any of them is from an older contract and is
// rejected, not downgraded. The clip arrays may be empty (a blog post
// has no cuttable media) but must be present.
func checkRequired(a *types.GeneratedAssets) error {
	switch {
	case a.CampaignStrategy == nil:
		return errors.New("missing required member campaignStrategy")
	case a.SeoStrategy == nil:
		return errors.New("missing required member seoStrategy")
	case a.Summary == "":
		return errors.New("missing required member summary")
	case a.KeyTakeaways == nil:
		return errors.New("missing required member keyTakeaways")
	case a.VideoClips == nil:
		return errors.New("missing required member videoClips")
	case a.Audiograms == nil:
		return errors.New("missing required member audiograms")
	case a.SocialPosts == nil:
		return errors.New("missing required member socialPosts")
	case a.EmailDraft == "":
		return errors.New("missing required member emailDraft")
	}
	return nil
}
