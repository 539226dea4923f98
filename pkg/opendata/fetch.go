package opendata

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Open resolves src as an http(s) URL or a local path. The open-data portal
// serves the CSV directly, so tools accept either form.
func Open(src string) (io.ReadCloser, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return fetch(src)
	}
	r, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("error opening %s for reading: %v", src, err)
	}
	return r, nil
}

func fetch(url string) (io.ReadCloser, error) {
	res, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("error getting %s: %v", url, err)
	}
	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("unexpected status fetching %s: %s", url, res.Status)
	}
	return res.Body, nil
}
