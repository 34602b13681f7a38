package xmlent_test

import (
	"io/ioutil"
	"strings"
	"testing"

	"github.com/respath/respath/xmlent"
)

func TestResolve(t *testing.T) {
	r := xmlent.New()

	cases := []struct {
		name     string
		systemID string
		resolved bool
	}{
		{"knownDTD", "http://respath.example/dtd/respath-config.dtd", true},
		{"caseInsensitive", "HTTP://RESPATH.EXAMPLE/DTD/RESPATH-CONFIG.DTD", true},
		{"unknownDTD", "http://respath.example/dtd/other.dtd", false},
		{"emptySystemID", "", false},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			rc, err := r.Resolve("", c.systemID)
			if err != nil {
				t.Fatalf("entity resolution must not fail the parse: %s", err)
			}
			if (rc != nil) != c.resolved {
				t.Fatalf("expected resolved=%t for %q", c.resolved, c.systemID)
			}
			if rc == nil {
				return
			}
			defer rc.Close()
			content, err := ioutil.ReadAll(rc)
			if err != nil {
				t.Fatalf("could not read local copy: %s", err)
			}
			if !strings.Contains(string(content), "<!ELEMENT respath") {
				t.Errorf("local copy does not look like the config DTD")
			}
		})
	}
}

func TestRegister(t *testing.T) {
	r := xmlent.New()
	r.Register("custom.dtd", "dtd/respath-config.dtd")

	rc, err := r.Resolve("", "file:///somewhere/custom.dtd")
	if err != nil {
		t.Fatalf("entity resolution must not fail the parse: %s", err)
	}
	if rc == nil {
		t.Fatalf("expected the registered suffix to resolve")
	}
	_ = rc.Close()
}

func TestUnreadableLocalCopy(t *testing.T) {
	r := xmlent.New()
	r.Register("ghost.dtd", "dtd/does-not-exist.dtd")

	rc, err := r.Resolve("", "http://respath.example/ghost.dtd")
	if err != nil {
		t.Fatalf("entity resolution must not fail the parse: %s", err)
	}
	if rc != nil {
		_ = rc.Close()
		t.Errorf("a missing local copy must resolve to the declared location")
	}
}
