package properties

import (
	"bufio"
	"io"
	"time"

	"github.com/pkg/errors"
)

// Store writes the property set in the canonical format, one key=value line
// per pair in insertion order, preceded by the optional comment and a
// timestamp line.  Output produced by Store parses back with Load to an
// identical set.
func (p *Properties) Store(w io.Writer, comment string) error {
	bw := bufio.NewWriter(w)

	if comment != "" {
		if _, err := bw.WriteString("#" + comment + "\n"); err != nil {
			return errors.Wrap(err, "could not write property data")
		}
	}
	if _, err := bw.WriteString("#" + time.Now().Format(time.ANSIC) + "\n"); err != nil {
		return errors.Wrap(err, "could not write property data")
	}

	for _, k := range p.keys {
		line := escape(k, true) + "=" + escape(p.values[k], false) + "\n"
		if _, err := bw.WriteString(line); err != nil {
			return errors.Wrap(err, "could not write property data")
		}
	}
	return errors.Wrap(bw.Flush(), "could not write property data")
}
