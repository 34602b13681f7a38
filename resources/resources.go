// Package resources is the entry point for resource lookup: it resolves
// relative resource names through the loader chain and layers typed views
// (URL, byte stream, decoded text, property set, local file path) on top.
//
// The package holds two pieces of process wide configuration, the default
// loader and the text charset.  Both are guarded by a read-mostly lock, so
// concurrent configuration and lookup are safe, but the usual pattern is to
// configure once at startup.  Resolved resources are never cached; every call
// hands back a fresh handle owned by the caller.
package resources

import (
	"io"
	"net/url"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/respath/respath"
	"github.com/respath/respath/chain"
	"github.com/respath/respath/properties"
)

var (
	loaders = chain.New()

	charsetMu   sync.RWMutex
	charsetEnc  encoding.Encoding
	charsetName string
)

// SetDefaultLoader installs the loader consulted right after any explicitly
// supplied one.  A nil loader clears it.
func SetDefaultLoader(l respath.Loader) {
	loaders.SetDefault(l)
}

// DefaultLoader returns the configured default loader, or nil.
func DefaultLoader() respath.Loader {
	return loaders.Default()
}

// SetCharset selects the charset, by IANA name, used when resources are read
// as text.  An empty name restores the default behavior of passing bytes
// through undecoded (i.e. UTF-8 in, UTF-8 out).
func SetCharset(name string) error {
	if name == "" {
		charsetMu.Lock()
		charsetEnc, charsetName = nil, ""
		charsetMu.Unlock()
		return nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return errors.Wrapf(err, "unknown charset %s", name)
	}
	if enc == nil {
		return errors.Errorf("charset %s has no decoder", name)
	}

	charsetMu.Lock()
	charsetEnc, charsetName = enc, name
	charsetMu.Unlock()
	return nil
}

// Charset returns the name of the configured text charset, or "" when unset.
func Charset() string {
	charsetMu.RLock()
	defer charsetMu.RUnlock()
	return charsetName
}

// GetURL returns the address of the named resource.
func GetURL(name string) (*url.URL, error) {
	return GetURLFrom(nil, name)
}

// GetURLFrom is GetURL with a loader to try before the rest of the chain.
func GetURLFrom(l respath.Loader, name string) (*url.URL, error) {
	u, ok := loaders.URL(name, l)
	if !ok {
		return nil, &respath.NotFoundError{Name: name}
	}
	return u, nil
}

// GetStream returns the content of the named resource.  The caller owns the
// returned stream and must close it.
func GetStream(name string) (io.ReadCloser, error) {
	return GetStreamFrom(nil, name)
}

// GetStreamFrom is GetStream with a loader to try before the rest of the
// chain.
func GetStreamFrom(l respath.Loader, name string) (io.ReadCloser, error) {
	rc, ok := loaders.Stream(name, l)
	if !ok {
		return nil, &respath.NotFoundError{Name: name}
	}
	return rc, nil
}

// GetProperties parses the named resource as a property set.  The underlying
// stream is closed before GetProperties returns, on every path.
func GetProperties(name string) (*properties.Properties, error) {
	return GetPropertiesFrom(nil, name)
}

// GetPropertiesFrom is GetProperties with a loader to try before the rest of
// the chain.
func GetPropertiesFrom(l respath.Loader, name string) (*properties.Properties, error) {
	rc, err := GetStreamFrom(l, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	props, err := properties.Load(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse property resource %s", name)
	}
	return props, nil
}

// GetReader returns the content of the named resource as text, decoded with
// the configured charset if one is set.  Ownership of the underlying stream
// transfers to the returned reader; closing it closes the stream.
func GetReader(name string) (io.ReadCloser, error) {
	return GetReaderFrom(nil, name)
}

// GetReaderFrom is GetReader with a loader to try before the rest of the
// chain.
func GetReaderFrom(l respath.Loader, name string) (io.ReadCloser, error) {
	rc, err := GetStreamFrom(l, name)
	if err != nil {
		return nil, err
	}
	return decode(rc), nil
}

// GetFile returns the local filesystem path of the named resource.  This is
// only meaningful when the resource resolves to a file URL; addresses inside
// archives or embedded filesystems come back as-is and need not name a real
// file (a limitation inherited from the lookup model, not a defect).
func GetFile(name string) (string, error) {
	return GetFileFrom(nil, name)
}

// GetFileFrom is GetFile with a loader to try before the rest of the chain.
func GetFileFrom(l respath.Loader, name string) (string, error) {
	u, err := GetURLFrom(l, name)
	if err != nil {
		return "", err
	}
	if u.Opaque != "" {
		return u.Opaque, nil
	}
	return filepath.FromSlash(u.Path), nil
}

// decode wraps a stream in the configured charset decoder.  With no charset
// set, the stream is returned unchanged.
func decode(rc io.ReadCloser) io.ReadCloser {
	charsetMu.RLock()
	enc := charsetEnc
	charsetMu.RUnlock()

	if enc == nil {
		return rc
	}
	return &decoded{Reader: transform.NewReader(rc, enc.NewDecoder()), stream: rc}
}

type decoded struct {
	io.Reader
	stream io.Closer
}

func (d *decoded) Close() error {
	return d.stream.Close()
}
