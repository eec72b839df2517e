package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"echochamber/clips"
	"echochamber/types"
)

func main() {
	mediaPath := flag.String("media", "", "Path to the source audio/video file")
	assetsPath := flag.String("assets", "", "Path to the generated assets JSON (from /api/generate/result)")
	outDir := flag.String("out", "cuts", "Directory to write the cut segments into")
	videoOnly := flag.Bool("video-only", false, "Cut only video clips, skip audiograms")
	audioOnly := flag.Bool("audio-only", false, "Cut only audiograms, skip video clips")

	flag.Parse()

	if *mediaPath == "" || *assetsPath == "" {
		flag.Usage()
		log.Fatal("--media and --assets are required")
	}
	if _, err := os.Stat(*mediaPath); err != nil {
		log.Fatalf("invalid media path: %v", err)
	}

	assets, err := loadAssets(*assetsPath)
	if err != nil {
		log.Fatalf("failed to load assets: %v", err)
	}

	if !*audioOnly {
		if len(assets.VideoClips) == 0 {
			log.Println("No video clips in the assets file")
		} else {
			paths, err := clips.CutVideoClips(*mediaPath, *outDir, assets.VideoClips)
			reportCuts("video clip", paths, err)
		}
	}

	if !*videoOnly {
		if len(assets.Audiograms) == 0 {
			log.Println("No audiograms in the assets file")
		} else {
			paths, err := clips.CutAudiograms(*mediaPath, *outDir, assets.Audiograms)
			reportCuts("audiogram", paths, err)
		}
	}
}

func loadAssets(path string) (*types.GeneratedAssets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var assets types.GeneratedAssets
	if err := json.Unmarshal(data, &assets); err != nil {
		return nil, err
	}
	if err := assets.Validate(); err != nil {
		return nil, err
	}
	return &assets, nil
}

func reportCuts(kind string, paths []string, err error) {
	for _, p := range paths {
		log.Printf("Wrote %s: %s", kind, p)
	}
	if err != nil {
		log.Fatalf("cutting %ss failed: %v", kind, err)
	}
}
