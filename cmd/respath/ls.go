package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/respath/respath"
	"github.com/respath/respath/chain"
	"github.com/respath/respath/resources"
	"github.com/urfave/cli"
)

var ls = cli.Command{
	Name:  "ls",
	Usage: "List resource names available on the search path",
	Description: `Enumerate the names indexed by the loaders on the search
	path, optionally restricted to a name prefix.  Names appear once per
	loader that has them, in search path order; the first occurrence is
	the one a lookup would win.`,
	ArgsUsage: "[prefix]",
	Action: func(c *cli.Context) error {
		return lsAction(c.Args().First())
	},
}

func lsAction(prefix string) error {
	l := resources.DefaultLoader()
	if l == nil {
		l = chain.FromEnv()
	}
	if l == nil {
		return errors.New("no search path configured (use -path or " + chain.EnvPath + ")")
	}

	w, ok := l.(respath.Walker)
	if !ok {
		return errors.Errorf("the configured loader cannot enumerate its resources")
	}

	return w.Walk(func(name string) error {
		if prefix == "" || strings.HasPrefix(name, prefix) {
			fmt.Println(name)
		}
		return nil
	})
}
