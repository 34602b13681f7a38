package main

import (
	"log"
	"os"

	"github.com/respath/respath/chain"
	"github.com/respath/respath/resources"
	"github.com/urfave/cli"
)

var mainOpts = struct {
	path    string
	charset string
}{}

func main() {
	app := cli.NewApp()
	app.Name = "respath"
	app.Usage = "resource search path utilities"
	app.EnableBashCompletion = true
	app.Commands = []cli.Command{
		cat,
		props,
		ls,
		fetch,
	}
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "path, p",
			Usage:       "search path of directories and zip/jar archives",
			EnvVar:      chain.EnvPath,
			Destination: &mainOpts.path,
		},
		cli.StringFlag{
			Name:        "charset, c",
			Usage:       "charset (IANA name) for reading resources as text",
			Destination: &mainOpts.charset,
		},
	}
	app.Before = func(c *cli.Context) error {
		return configure()
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

// configure applies the global flags to the process wide resource config.
func configure() error {
	if mainOpts.charset != "" {
		if err := resources.SetCharset(mainOpts.charset); err != nil {
			return err
		}
	}
	if mainOpts.path != "" {
		resources.SetDefaultLoader(chain.SearchPath(mainOpts.path))
	}
	return nil
}
