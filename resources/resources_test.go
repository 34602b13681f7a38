package resources_test

import (
	"io"
	"io/ioutil"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/go-test/deep"
	"github.com/respath/respath"
	"github.com/respath/respath/chain"
	"github.com/respath/respath/resources"
)

// tracking is a loader stub that counts how often each returned stream is
// closed.
type tracking struct {
	entries map[string]string
	closes  map[string]int
}

func newTracking(entries map[string]string) *tracking {
	return &tracking{entries: entries, closes: map[string]int{}}
}

func (l *tracking) Open(name string) (io.ReadCloser, error) {
	v, ok := l.entries[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return &counted{Reader: strings.NewReader(v), name: name, loader: l}, nil
}

func (l *tracking) URL(name string) (*url.URL, error) {
	if _, ok := l.entries[name]; !ok {
		return nil, os.ErrNotExist
	}
	return &url.URL{Scheme: "stub", Opaque: name}, nil
}

type counted struct {
	io.Reader
	name   string
	loader *tracking
}

func (c *counted) Close() error {
	c.loader.closes[c.name]++
	return nil
}

func reset(t *testing.T) {
	t.Helper()
	t.Setenv(chain.EnvPath, "")
	t.Cleanup(func() {
		resources.SetDefaultLoader(nil)
		_ = resources.SetCharset("")
	})
}

func TestGetProperties(t *testing.T) {
	reset(t)
	t.Setenv(chain.EnvPath, "testdata")

	props, err := resources.GetProperties("app.properties")
	if err != nil {
		t.Fatalf("could not load app.properties: %s", err)
	}
	if diff := deep.Equal(map[string]string{"k": "v"}, props.Map()); diff != nil {
		t.Error(diff)
	}

	_, err = resources.GetProperties("missing.properties")
	if !respath.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "missing.properties") {
		t.Errorf("failure should carry the resource name: %s", err)
	}
}

func TestExplicitLoaderOverridesDefault(t *testing.T) {
	reset(t)

	explicit := newTracking(map[string]string{"res.properties": "who=explicit\n"})
	resources.SetDefaultLoader(newTracking(map[string]string{"res.properties": "who=default\n"}))

	props, err := resources.GetPropertiesFrom(explicit, "res.properties")
	if err != nil {
		t.Fatalf("could not load: %s", err)
	}
	if v, _ := props.Get("who"); v != "explicit" {
		t.Errorf("expected the explicit loader's content, got %s", v)
	}

	props, err = resources.GetProperties("res.properties")
	if err != nil {
		t.Fatalf("could not load: %s", err)
	}
	if v, _ := props.Get("who"); v != "default" {
		t.Errorf("expected the default loader's content, got %s", v)
	}
}

func TestScopedRelease(t *testing.T) {
	reset(t)

	l := newTracking(map[string]string{
		"good.properties": "a=1\n",
		"bad.properties":  "a=\\uZZZZ\n",
	})
	resources.SetDefaultLoader(l)

	if _, err := resources.GetProperties("good.properties"); err != nil {
		t.Fatalf("could not load: %s", err)
	}
	if n := l.closes["good.properties"]; n != 1 {
		t.Errorf("expected exactly one close after success, got %d", n)
	}

	if _, err := resources.GetProperties("bad.properties"); err == nil {
		t.Fatalf("expected a decode error")
	}
	if n := l.closes["bad.properties"]; n != 1 {
		t.Errorf("expected exactly one close after decode failure, got %d", n)
	}
}

func TestGetReaderOwnership(t *testing.T) {
	reset(t)

	l := newTracking(map[string]string{"doc.txt": "hello"})
	resources.SetDefaultLoader(l)

	r, err := resources.GetReader("doc.txt")
	if err != nil {
		t.Fatalf("could not open reader: %s", err)
	}
	content, err := ioutil.ReadAll(r)
	if err != nil {
		t.Fatalf("could not read: %s", err)
	}
	if string(content) != "hello" {
		t.Errorf("unexpected content %q", content)
	}
	if n := l.closes["doc.txt"]; n != 0 {
		t.Errorf("stream must stay open until the reader is closed, saw %d closes", n)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("could not close reader: %s", err)
	}
	if n := l.closes["doc.txt"]; n != 1 {
		t.Errorf("expected exactly one close, got %d", n)
	}
}

func TestCharsetDecoding(t *testing.T) {
	reset(t)

	// caf\xe9 is "café" in ISO-8859-1 and malformed UTF-8
	l := newTracking(map[string]string{"text.txt": "caf\xe9"})
	resources.SetDefaultLoader(l)

	if err := resources.SetCharset("ISO-8859-1"); err != nil {
		t.Fatalf("could not set charset: %s", err)
	}
	if got := resources.Charset(); got != "ISO-8859-1" {
		t.Errorf("unexpected charset name %s", got)
	}

	r, err := resources.GetReader("text.txt")
	if err != nil {
		t.Fatalf("could not open reader: %s", err)
	}
	decoded, _ := ioutil.ReadAll(r)
	_ = r.Close()
	if string(decoded) != "café" {
		t.Errorf("expected café, got %q", decoded)
	}

	// with the charset unset, bytes pass through unchanged
	if err := resources.SetCharset(""); err != nil {
		t.Fatalf("could not clear charset: %s", err)
	}
	r, err = resources.GetReader("text.txt")
	if err != nil {
		t.Fatalf("could not open reader: %s", err)
	}
	raw, _ := ioutil.ReadAll(r)
	_ = r.Close()
	if string(raw) != "caf\xe9" {
		t.Errorf("expected raw bytes, got %q", raw)
	}
}

func TestUnknownCharset(t *testing.T) {
	reset(t)

	if err := resources.SetCharset("no-such-charset"); err == nil {
		t.Errorf("expected an error for an unknown charset")
	}
	if got := resources.Charset(); got != "" {
		t.Errorf("failed SetCharset must not change the configuration, got %s", got)
	}
}

func TestGetURLAndFile(t *testing.T) {
	reset(t)
	t.Setenv(chain.EnvPath, "testdata")

	u, err := resources.GetURL("app.properties")
	if err != nil {
		t.Fatalf("could not resolve URL: %s", err)
	}
	if u.Scheme != "file" || !strings.HasSuffix(u.Path, "/testdata/app.properties") {
		t.Errorf("unexpected URL %s", u)
	}

	p, err := resources.GetFile("app.properties")
	if err != nil {
		t.Fatalf("could not resolve file: %s", err)
	}
	if _, err := os.Stat(p); err != nil {
		t.Errorf("resolved path %s is not a real file: %s", p, err)
	}

	if _, err := resources.GetURL("missing.bin"); !respath.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}
