package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/respath/respath/resources"
	"github.com/urfave/cli"
)

var props = cli.Command{
	Name:  "props",
	Usage: "Parse a property resource and print its pairs",
	Description: `Resolve a resource through the search path, parse it as a
	property file, and print one key=value line per pair in file order.`,
	ArgsUsage: "name",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return errors.New("props takes exactly one resource name")
		}
		return propsAction(c.Args().First())
	},
}

func propsAction(name string) error {
	p, err := resources.GetProperties(name)
	if err != nil {
		return err
	}

	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		fmt.Printf("%s=%s\n", k, v)
	}
	return nil
}
