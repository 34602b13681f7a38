// Package respath defines the capability interface and error types shared by
// the resource lookup machinery in this module.
//
// A resource is an opaque byte stream addressed by a relative path (e.g.
// "config/app.properties").  Loaders locate resources; the chain package tries
// an ordered list of loaders and takes the first hit; the resources package is
// the entry point most code should use.  There is no dynamic class loading in
// Go, so the class lookup side of the original facade has no counterpart here.
package respath
