package errors

import (
	"fmt"
	"strings"
)

// UserFriendlyError provides user-friendly error messages with context and hints
type UserFriendlyError struct {
	Message string
	Reason  string
	Hint    string
	Try     string
	Err     error
}

func (e UserFriendlyError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Message)
	if e.Reason != "" {
		buf.WriteString("\n  Reason: " + e.Reason)
	}
	if e.Hint != "" {
		buf.WriteString("\n  Hint: " + e.Hint)
	}
	if e.Try != "" {
		buf.WriteString("\n  Try: " + e.Try)
	}
	if e.Err != nil {
		buf.WriteString("\n  Details: " + e.Err.Error())
	}
	return buf.String()
}

func (e UserFriendlyError) Unwrap() error {
	return e.Err
}

// WrapCaptureError wraps capture-file errors with user-friendly context
func WrapCaptureError(err error, path string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Failed to read capture file %s", path),
		Reason:  extractCaptureReason(err),
		Hint:    "The file must be a pcap/pcapng capture readable by libpcap",
		Try:     fmt.Sprintf("tcpdump -r %s -c 1", path),
		Err:     err,
	}
}

// WrapLayoutError wraps layout-file errors with user-friendly context
func WrapLayoutError(err error, path string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Layout file error in %s", path),
		Reason:  err.Error(),
		Hint:    "Layout files list flows (src, dst, frame_id) with their ordered subframes",
		Try:     "Check MAC address and frame_id syntax; frame IDs accept hex like \"0x8000\"",
		Err:     err,
	}
}

func extractCaptureReason(err error) string {
	errStr := err.Error()

	if strings.Contains(errStr, "no such file") {
		return "File not found"
	}
	if strings.Contains(errStr, "permission denied") {
		return "Permission denied reading the file"
	}
	if strings.Contains(errStr, "bad dump file format") || strings.Contains(errStr, "unknown file format") {
		return "Not a recognized capture file format"
	}

	return "Capture file could not be opened"
}
