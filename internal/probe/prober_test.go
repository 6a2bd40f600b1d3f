package probe

import (
	"math"
	"testing"
)

func TestParseMetadata_PicksFirstVideoStream(t *testing.T) {
	data := []byte(`{
		"streams": [
			{"codec_name": "aac", "codec_type": "audio", "channels": 2},
			{"codec_name": "h264", "codec_type": "video", "width": 640, "height": 360, "r_frame_rate": "30/1"},
			{"codec_name": "vp9", "codec_type": "video", "width": 1920, "height": 1080, "r_frame_rate": "60/1"}
		],
		"format": {"duration": "12.480000"}
	}`)

	meta, err := parseMetadata(data)
	if err != nil {
		t.Fatalf("parseMetadata: %v", err)
	}
	if meta.Codec != "h264" {
		t.Fatalf("expected first video stream, got codec %s", meta.Codec)
	}
	if meta.Width != 640 || meta.Height != 360 {
		t.Fatalf("unexpected dimensions %dx%d", meta.Width, meta.Height)
	}
	if meta.FrameRate != 30 {
		t.Fatalf("unexpected frame rate %v", meta.FrameRate)
	}
	if meta.Duration != 12.48 {
		t.Fatalf("unexpected duration %v", meta.Duration)
	}
}

func TestParseMetadata_NoVideoStream(t *testing.T) {
	data := []byte(`{"streams": [{"codec_name": "mp3", "codec_type": "audio"}], "format": {}}`)

	meta, err := parseMetadata(data)
	if err != nil {
		t.Fatalf("parseMetadata: %v", err)
	}
	if meta.Width != 0 || meta.Height != 0 || meta.FrameRate != 0 {
		t.Fatalf("expected zero video metadata, got %+v", meta)
	}
}

func TestParseMetadata_InvalidJSON(t *testing.T) {
	if _, err := parseMetadata([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid json")
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"30000/1001", 29.97},
		{"0/0", 0},
		{"", 0},
		{"30", 0},
		{"a/b", 0},
	}

	for _, tt := range tests {
		got := parseFrameRate(tt.in)
		if math.Abs(got-tt.want) > 0.01 {
			t.Errorf("parseFrameRate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
