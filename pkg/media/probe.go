package media

import (
	"encoding/json"
	"fmt"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// probeDuration reads the container duration (seconds) via ffprobe
func probeDuration(localPath string) (float64, error) {
	raw, err := ffmpeg.Probe(localPath)
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}
	return parseProbeDuration(raw)
}

// parseProbeDuration extracts format.duration from ffprobe JSON output.
// ffprobe reports the duration as a decimal string.
func parseProbeDuration(raw string) (float64, error) {
	var probe struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return 0, fmt.Errorf("failed to decode ffprobe output: %w", err)
	}
	if probe.Format.Duration == "" {
		return 0, fmt.Errorf("ffprobe output carries no duration")
	}
	duration, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", probe.Format.Duration, err)
	}
	return duration, nil
}
