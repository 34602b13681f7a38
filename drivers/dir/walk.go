package dir

import (
	"path/filepath"

	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
)

// Walk visits every resource under the root, in lexical order, passing each
// name (relative to the root, solidus delimited) to fn.  Any error from fn
// terminates the walk.
func (l *Loader) Walk(fn func(name string) error) error {
	root, err := filepath.Abs(l.root)
	if err != nil {
		return errors.Wrapf(err, "could not make absolute %s", l.root)
	}

	return godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(ospath string, e *godirwalk.Dirent) error {
			if e.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(root, ospath)
			if err != nil {
				return errors.Wrapf(err, "could not relativize %s", ospath)
			}
			return fn(filepath.ToSlash(rel))
		},
	})
}
