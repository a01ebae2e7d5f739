/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package dl

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// spyVideo records fetch attempts and serves a pre-written artifact.
type spyVideo struct {
	downloads int
	artifact  string
}

func (s *spyVideo) GetMetadata(ctx context.Context, url string) (VideoMetadata, error) {
	return VideoMetadata{URL: url}, nil
}

func (s *spyVideo) Download(ctx context.Context, url, quality string, audioOnly bool) (string, error) {
	s.downloads++
	return s.artifact, nil
}

func writeArtifact(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artifact.mp4")
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFetchVideoDurationGateRunsFirst(t *testing.T) {
	spy := &spyVideo{artifact: writeArtifact(t, 10)}
	p := &Pipeline{Video: spy, MaxFileSize: 1024, MaxDuration: 600}

	meta := VideoMetadata{URL: "https://youtu.be/abc", Duration: 601}
	_, err := p.FetchVideo(context.Background(), meta, "best", false)

	if !errors.Is(err, ErrTooLong) {
		t.Fatalf("err = %v, want ErrTooLong", err)
	}
	if !errors.Is(err, ErrPolicyRejected) {
		t.Error("ErrTooLong does not wrap ErrPolicyRejected")
	}
	if spy.downloads != 0 {
		t.Errorf("rejected request still reached the engine %d times", spy.downloads)
	}
}

func TestFetchVideoOversizedArtifactDeleted(t *testing.T) {
	artifact := writeArtifact(t, 2048)
	spy := &spyVideo{artifact: artifact}
	p := &Pipeline{Video: spy, MaxFileSize: 1024, MaxDuration: 600}

	meta := VideoMetadata{URL: "https://youtu.be/abc", Duration: 300}
	_, err := p.FetchVideo(context.Background(), meta, "best", false)

	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}
	if _, statErr := os.Stat(artifact); !os.IsNotExist(statErr) {
		t.Error("oversized artifact survived the size gate")
	}
}

func TestFetchVideoWithinLimits(t *testing.T) {
	artifact := writeArtifact(t, 100)
	spy := &spyVideo{artifact: artifact}
	p := &Pipeline{Video: spy, MaxFileSize: 1024, MaxDuration: 600}

	meta := VideoMetadata{URL: "https://youtu.be/abc", Duration: 300}
	path, err := p.FetchVideo(context.Background(), meta, "720", false)
	if err != nil {
		t.Fatal(err)
	}
	if path != artifact {
		t.Errorf("path = %q, want %q", path, artifact)
	}
	if spy.downloads != 1 {
		t.Errorf("engine invoked %d times, want 1", spy.downloads)
	}
}

func TestCheckDurationUnlimited(t *testing.T) {
	p := &Pipeline{MaxDuration: 0}
	if err := p.CheckDuration(VideoMetadata{Duration: 99999}); err != nil {
		t.Errorf("zero MaxDuration should disable the gate, got %v", err)
	}
}
