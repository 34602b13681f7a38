package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/respath/respath/resources"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
)

var fetchOpts = struct {
	out     string
	workers int
}{}

var fetch = cli.Command{
	Name:  "fetch",
	Usage: "Download resources from URLs",
	Description: `Open a direct connection to each URL (bypassing the search
	path) and save the content to a local file named after the last URL
	segment.  Downloads run concurrently.`,
	ArgsUsage: "url ...",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:        "out, o",
			Usage:       "directory to save downloads into",
			Value:       ".",
			Destination: &fetchOpts.out,
		},
		cli.IntFlag{
			Name:        "workers, w",
			Usage:       "number of concurrent downloads",
			Value:       4,
			Destination: &fetchOpts.workers,
		},
	},
	Action: func(c *cli.Context) error {
		return fetchAction(c.Args())
	},
}

func fetchAction(urls []string) error {
	q := make(chan string, len(urls))
	for _, u := range urls {
		q <- u
	}
	close(q)

	workers := fetchOpts.workers
	if workers < 1 {
		workers = 1
	}

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for u := range q {
				if err := fetchOne(u); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func fetchOne(urlString string) (err error) {
	rc, err := resources.GetURLStream(urlString)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "error closing connection to %s", urlString)
		}
	}()

	dest := filepath.Join(fetchOpts.out, destName(urlString))
	f, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", dest)
	}

	_, err = io.Copy(f, rc)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return errors.Wrapf(err, "could not fetch %s", urlString)
	}

	fmt.Println(dest)
	return nil
}

// destName picks a local file name for a download from the last URL segment.
func destName(urlString string) string {
	u, err := url.Parse(urlString)
	if err != nil {
		return "download"
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "download"
	}
	return name
}
