package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/respath/respath/resources"
	"github.com/urfave/cli"
)

var catOpts = struct {
	raw bool
}{}

var cat = cli.Command{
	Name:  "cat",
	Usage: "Resolve resources and copy their content to stdout",
	Description: `Given resource names, resolve each one through the search
	path and print its content.  Content is decoded with the configured
	charset unless -raw is given.

	  respath -p conf:lib/bundle.zip cat app.properties`,
	ArgsUsage: "name ...",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:        "raw, r",
			Usage:       "copy bytes without charset decoding",
			Destination: &catOpts.raw,
		},
	},
	Action: func(c *cli.Context) error {
		return catAction(c.Args())
	},
}

func catAction(names []string) error {
	for _, name := range names {
		if err := catOne(name); err != nil {
			return err
		}
	}
	return nil
}

func catOne(name string) (err error) {
	var rc io.ReadCloser
	if catOpts.raw {
		rc, err = resources.GetStream(name)
	} else {
		rc, err = resources.GetReader(name)
	}
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "error closing %s", name)
		}
	}()

	_, err = io.Copy(os.Stdout, rc)
	return errors.Wrapf(err, "could not read %s", name)
}
