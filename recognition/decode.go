package recognition

import (
	"encoding/base64"
	"fmt"
	"strings"

	"gocv.io/x/gocv"
)

// decodeFrame turns a base64-encoded still frame (optionally carrying a
// "data:image/...;base64," prefix) into a BGR Mat.
func decodeFrame(imageData string) (gocv.Mat, error) {
	payload := imageData
	if idx := strings.IndexByte(payload, ','); idx >= 0 {
		payload = payload[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	frame, err := gocv.IMDecode(raw, gocv.IMReadColor)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if frame.Empty() {
		frame.Close()
		return gocv.Mat{}, fmt.Errorf("%w: decoded frame is empty", ErrInvalidImage)
	}
	return frame, nil
}
