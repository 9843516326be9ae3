package validation

import (
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/username/parsegbx/src/logger"
)

// AllowedReportContentTypes lists the detected content types a backtest
// report may have.
var AllowedReportContentTypes = map[string]bool{
	"text/html":             true,
	"application/xhtml+xml": true,
	"text/plain":            true, // fragments without a recognisable root tag
	"text/xml":              true,
}

// ValidateReportContent sniffs the start of file and reports whether it looks
// like an HTML or text report. The read position is reset afterwards.
func ValidateReportContent(file io.ReadSeeker) (string, error) {
	if file == nil {
		return "", fmt.Errorf("file is nil")
	}

	buffer := make([]byte, 3072)
	n, err := io.ReadFull(file, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("failed to read file for content type checking: %w", err)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to reset file read pointer: %w", err)
	}

	detected := mimetype.Detect(buffer[:n]).String()
	detected = strings.ToLower(strings.TrimSpace(strings.Split(detected, ";")[0]))

	if !AllowedReportContentTypes[detected] {
		logger.L.Warn("Unexpected report content type", "detectedContentType", detected)
		return detected, fmt.Errorf("detected file content type '%s' is not consistent with an HTML report", detected)
	}

	logger.L.Debug("Report content type validated", "detectedContentType", detected)
	return detected, nil
}
