// Package classify assigns an input type to submitted content. It is a
// pure, total function over the submitted text and an optional file MIME
// type: no network access, no I/O, never errors.
package classify

import (
	"net/url"
	"strings"

	"echochamber/types"
)

// Classify determines the input type for a submission. fileMIME is the
// MIME type of an uploaded file, or empty when no file was provided.
//
// Policy: uploaded video files take the YouTube prompting path. They are
// a distinct modality, but downstream prompting treats both as video
// content with clip potential, so they classify identically.
func Classify(text string, fileMIME string) types.InputType {
	if fileMIME != "" {
		if strings.HasPrefix(fileMIME, "audio/") {
			return types.InputAudio
		}
		if strings.HasPrefix(fileMIME, "video/") {
			return types.InputYouTube
		}
	}

	if strings.Contains(text, "youtube.com") || strings.Contains(text, "youtu.be") {
		return types.InputYouTube
	}

	// Anything that parses as an absolute URL is treated as a blog post.
	if u, err := url.Parse(strings.TrimSpace(text)); err == nil && u.Scheme != "" && u.Host != "" {
		return types.InputBlog
	}

	return types.InputUnknown
}
