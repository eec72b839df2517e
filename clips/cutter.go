// Package clips cuts physical media segments out of an uploaded file
// using the clip and audiogram metadata the model produced. It is a
// convenience for uploaded-file workflows; URL inputs have no local
// media to cut.
package clips

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"echochamber/types"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// slugify turns a model-supplied title into a safe filename fragment.
func slugify(title string) string {
	s := unsafeChars.ReplaceAllString(strings.TrimSpace(title), "_")
	s = strings.Trim(s, "_")
	if len(s) > 60 {
		s = s[:60]
	}
	if s == "" {
		s = "clip"
	}
	return s
}

// CutVideoClips extracts each clip from mediaPath into outDir as an mp4,
// copying codecs to avoid a re-encode. Returns the written paths.
func CutVideoClips(mediaPath, outDir string, cs []types.VideoClip) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(cs))
	for i, c := range cs {
		out := filepath.Join(outDir, fmt.Sprintf("%02d_%s.mp4", i+1, slugify(c.Title)))
		err := ffmpeg.Input(mediaPath, ffmpeg.KwArgs{"ss": fmt.Sprintf("%.2f", c.StartTime)}).
			Output(out, ffmpeg.KwArgs{
				"t": fmt.Sprintf("%.2f", c.EndTime-c.StartTime),
				"c": "copy",
			}).
			OverWriteOutput().
			Run()
		if err != nil {
			return paths, fmt.Errorf("cut clip %q: %w", c.Title, err)
		}
		paths = append(paths, out)
	}
	return paths, nil
}

// CutAudiograms extracts each audiogram as an mp3, dropping any video
// stream from the source.
func CutAudiograms(mediaPath, outDir string, gs []types.Audiogram) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(gs))
	for i, g := range gs {
		out := filepath.Join(outDir, fmt.Sprintf("%02d_%s.mp3", i+1, slugify(g.Title)))
		err := ffmpeg.Input(mediaPath, ffmpeg.KwArgs{"ss": fmt.Sprintf("%.2f", g.StartTime)}).
			Output(out, ffmpeg.KwArgs{
				"t":   fmt.Sprintf("%.2f", g.EndTime-g.StartTime),
				"vn":  "",
				"c:a": "libmp3lame",
				"b:a": "192k",
			}).
			OverWriteOutput().
			Run()
		if err != nil {
			return paths, fmt.Errorf("cut audiogram %q: %w", g.Title, err)
		}
		paths = append(paths, out)
	}
	return paths, nil
}
