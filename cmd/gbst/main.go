package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/gbst"
	"github.com/bodgit/gbst/catalog"
	"github.com/urfave/cli/v2"
)

const defaultDB = "gbst.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newExtractor(c *cli.Context) (*gbst.Extractor, error) {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	db, err := catalog.New(c.String("db"))
	if err != nil {
		return nil, err
	}

	return gbst.New(db, logger), nil
}

func main() {
	app := cli.NewApp()

	app.Name = "gbst"
	app.Usage = "GBST style file extraction utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"GBST_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to the asset catalog",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "extract",
			Usage:       "Extract tiles, sprites and delta frames as PNG images",
			Description: "",
			ArgsUsage:   "FILE DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				e, err := newExtractor(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer e.Close()

				if err := e.Extract(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "sheet",
			Usage:       "Write every tile as one montage image",
			Description: "",
			ArgsUsage:   "FILE IMAGE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				e, err := newExtractor(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer e.Close()

				s, err := gbst.ReadFile(c.Args().Get(0))
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := e.Sheet(s, c.Args().Get(1)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "info",
			Usage:       "Print a summary of a style file",
			Description: "",
			ArgsUsage:   "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				s, err := gbst.ReadFile(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				frames := 0
				for _, d := range s.Deltas {
					frames += len(d.Sizes)
				}

				fmt.Printf("version:          %d\n", s.Version)
				fmt.Printf("physical palettes: %d\n", len(s.Palettes))
				fmt.Printf("tiles:            %d\n", len(s.Tiles))
				fmt.Printf("sprites:          %d\n", len(s.Sprites))
				fmt.Printf("delta frames:     %d\n", frames)
				fmt.Printf("fonts:            %d\n", s.FontBase.NumFonts())
				fmt.Printf("cars:             %d\n", len(s.Cars))
				fmt.Printf("map objects:      %d\n", len(s.Objects))
				fmt.Printf("recyclable cars:  %d\n", len(s.RecyclableCars))

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
