package resources

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/respath/respath/properties"
)

// ConnectError indicates that a direct URL connection could not be opened.
type ConnectError struct {
	URL string
	Err error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("could not connect to %s: %v", e.URL, e.Err)
}

// Cause returns the underlying transport error.
func (e *ConnectError) Cause() error {
	return e.Err
}

// GetURLStream opens a connection to an arbitrary URL, bypassing the loader
// chain, and returns its content.  File URLs are opened directly; http and
// https go over the network, with any non-2xx response treated as a
// connection failure.  The caller owns the returned stream.
func GetURLStream(urlString string) (io.ReadCloser, error) {
	u, err := url.Parse(urlString)
	if err != nil {
		return nil, &ConnectError{URL: urlString, Err: err}
	}

	switch u.Scheme {
	case "file":
		f, err := os.Open(filepath.FromSlash(u.Path))
		if err != nil {
			return nil, &ConnectError{URL: urlString, Err: err}
		}
		return f, nil
	case "http", "https":
		resp, err := http.Get(urlString)
		if err != nil {
			return nil, &ConnectError{URL: urlString, Err: err}
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			_ = resp.Body.Close()
			return nil, &ConnectError{URL: urlString, Err: errors.Errorf("server responded %s", resp.Status)}
		}
		return resp.Body, nil
	default:
		return nil, &ConnectError{URL: urlString, Err: errors.Errorf("unsupported scheme %q", u.Scheme)}
	}
}

// GetURLReader returns the content of a URL as text, decoded the same way as
// GetReader.
func GetURLReader(urlString string) (io.ReadCloser, error) {
	rc, err := GetURLStream(urlString)
	if err != nil {
		return nil, err
	}
	return decode(rc), nil
}

// GetURLProperties parses the content of a URL as a property set, closing the
// connection before it returns.
func GetURLProperties(urlString string) (*properties.Properties, error) {
	rc, err := GetURLStream(urlString)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	props, err := properties.Load(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse property data from %s", urlString)
	}
	return props, nil
}
