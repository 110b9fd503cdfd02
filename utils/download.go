package utils

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// sniffLen is the number of leading bytes http.DetectContentType looks at.
const sniffLen = 512

// DownloadImage downloads the image from the internet and saves it into a temporary file.
// The caller owns the returned file and is responsible for removing it.
func DownloadImage(ctx context.Context, uri string) (*os.File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid image URI %q: %w", uri, err)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to download image file from URI %q: %w", uri, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to download image file from URI %q: status %s", uri, res.Status)
	}

	tmpfile, err := os.CreateTemp("", "imalgo-*")
	if err != nil {
		return nil, fmt.Errorf("unable to create temporary file: %w", err)
	}
	discard := func() {
		if err := tmpfile.Close(); err != nil {
			slog.Warn("could not close temporary file", "file", tmpfile.Name(), "error", err)
		}
		os.Remove(tmpfile.Name())
	}

	if _, err := io.Copy(tmpfile, res.Body); err != nil {
		discard()
		return nil, fmt.Errorf("unable to copy the source URI into the destination file: %w", err)
	}

	ctype, err := DetectContentType(tmpfile)
	if err != nil {
		discard()
		return nil, err
	}
	if !strings.HasPrefix(ctype, "image/") {
		discard()
		return nil, fmt.Errorf("the downloaded file is not a valid image type: %s", ctype)
	}

	return tmpfile, nil
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	if _, err := url.ParseRequestURI(uri); err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	return true
}

// DetectContentType sniffs the MIME type of a seekable stream and
// rewinds it to the beginning afterwards.
func DetectContentType(rs io.ReadSeeker) (string, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	buffer := make([]byte, sniffLen)
	n, err := io.ReadFull(rs, buffer)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	// Always returns a valid content-type and "application/octet-stream" if no others seemed to match.
	return http.DetectContentType(buffer[:n]), nil
}
