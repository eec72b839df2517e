package bundle

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"echochamber/types"
)

func testAssets() *types.GeneratedAssets {
	return &types.GeneratedAssets{
		InputType:    types.InputYouTube,
		Source:       "https://youtu.be/abc",
		Summary:      "A summary.",
		Transcript:   "Full transcript.",
		EmailDraft:   "Hello subscribers,",
		KeyTakeaways: []string{"first", "second"},
		VideoClips: []types.VideoClip{
			{ID: "c1", Title: "Clip", Hook: "Hook", StartTime: 1, EndTime: 30, ViralityScore: 85},
		},
		SocialPosts: []types.SocialPost{
			{ID: "p1", Platform: types.PlatformX, Content: "Short and punchy."},
		},
	}
}

func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		files[f.Name] = string(content)
	}
	return files
}

func TestWriteArchiveLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, testAssets()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	files := readArchive(t, buf.Bytes())

	want := []string{
		"echochamber_assets/summary.txt",
		"echochamber_assets/transcript.txt",
		"echochamber_assets/email_draft.txt",
		"echochamber_assets/key_takeaways.txt",
		"echochamber_assets/social_posts.md",
		"echochamber_assets/video_clips_metadata.json",
	}
	for _, name := range want {
		if _, ok := files[name]; !ok {
			t.Errorf("archive missing %s", name)
		}
	}
	if _, ok := files["echochamber_assets/audiograms_metadata.json"]; ok {
		t.Error("empty audiograms category should be omitted")
	}

	if got := files["echochamber_assets/key_takeaways.txt"]; got != "- first\n- second" {
		t.Errorf("key_takeaways.txt = %q", got)
	}
	if got := files["echochamber_assets/social_posts.md"]; !strings.Contains(got, "--- X POST ---") {
		t.Errorf("social_posts.md = %q", got)
	}

	var clips []types.VideoClip
	if err := json.Unmarshal([]byte(files["echochamber_assets/video_clips_metadata.json"]), &clips); err != nil {
		t.Fatalf("clip metadata not valid JSON: %v", err)
	}
	if len(clips) != 1 || clips[0].ID != "c1" {
		t.Errorf("clip metadata = %+v", clips)
	}
}

func TestFilenameIsDated(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	if got := Filename(now); got != "echochamber_assets_2026-03-14.zip" {
		t.Errorf("Filename = %q", got)
	}
}
