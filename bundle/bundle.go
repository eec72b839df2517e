// Package bundle serializes a generated-assets result into a multi-file
// zip archive: plain-text files per prose asset and JSON metadata files
// per clip category. Export-only; the archive is never read back.
package bundle

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"echochamber/common"
	"echochamber/types"
)

const folderName = "echochamber_assets"

// Filename returns the dated archive name for a download.
func Filename(now time.Time) string {
	return fmt.Sprintf("%s_%s.zip", folderName, now.Format("2006-01-02"))
}

// Write serializes assets into a zip archive on w. Empty asset
// categories are omitted rather than written as empty files.
func Write(w io.Writer, assets *types.GeneratedAssets) error {
	zw := zip.NewWriter(w)

	addText := func(name, content string) error {
		if content == "" {
			return nil
		}
		f, err := zw.Create(folderName + "/" + name)
		if err != nil {
			return err
		}
		_, err = f.Write([]byte(content))
		return err
	}

	addJSON := func(name string, v any) error {
		f, err := zw.Create(folderName + "/" + name)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	if err := addText("summary.txt", assets.Summary); err != nil {
		return err
	}
	if err := addText("transcript.txt", assets.Transcript); err != nil {
		return err
	}
	if err := addText("email_draft.txt", assets.EmailDraft); err != nil {
		return err
	}
	if len(assets.KeyTakeaways) > 0 {
		takeaways := "- " + strings.Join(assets.KeyTakeaways, "\n- ")
		if err := addText("key_takeaways.txt", takeaways); err != nil {
			return err
		}
	}
	if len(assets.SocialPosts) > 0 {
		var sb strings.Builder
		for _, p := range assets.SocialPosts {
			fmt.Fprintf(&sb, "--- %s POST ---\n\n%s\n\n", strings.ToUpper(p.Platform), p.Content)
		}
		if err := addText("social_posts.md", sb.String()); err != nil {
			return err
		}
	}
	if len(assets.VideoClips) > 0 {
		if err := addJSON("video_clips_metadata.json", assets.VideoClips); err != nil {
			return err
		}
	}
	if len(assets.Audiograms) > 0 {
		if err := addJSON("audiograms_metadata.json", assets.Audiograms); err != nil {
			return err
		}
	}

	return zw.Close()
}

// Publish writes the archive and uploads it to S3, returning the object
// key. Used when an artifact store is configured; downloads work without
// one.
func Publish(ctx context.Context, s3c *common.S3, bucket, prefix string, assets *types.GeneratedAssets, now time.Time) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, assets); err != nil {
		return "", fmt.Errorf("build bundle: %w", err)
	}

	key := prefix + "bundles/" + Filename(now)
	if err := s3c.Put(ctx, bucket, key, bytes.NewReader(buf.Bytes()), "application/zip"); err != nil {
		return "", fmt.Errorf("upload bundle: %w", err)
	}
	return key, nil
}
