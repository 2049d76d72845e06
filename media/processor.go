package media

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	CaptureJpegQuality   = 90
	CaptureFileExtension = ".jpg"
)

// Processor archives enrollment captures. It relies on a Store implementation
// for saving the results.
type Processor struct {
	store Store
}

func NewProcessor(store Store) *Processor {
	return &Processor{store: store}
}

// ArchiveCapture decodes a base64 still frame and stores it as a JPEG with a
// generated filename. returns relative path to the saved capture or error.
func (p *Processor) ArchiveCapture(imageData string) (string, error) {
	payload := imageData
	if idx := strings.IndexByte(payload, ','); idx >= 0 {
		payload = payload[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("failed to decode capture payload: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to decode capture image: %w", err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(CaptureJpegQuality)); err != nil {
		return "", fmt.Errorf("failed to encode capture as JPEG: %w", err)
	}

	relPath, err := p.store.Save(AssetTypeCapture, "", CaptureFileExtension, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to save capture: %w", err)
	}
	return relPath, nil
}
