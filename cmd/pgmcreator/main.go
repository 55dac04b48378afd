package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/pgmcreator"
	"github.com/bodgit/pgmcreator/pattern"
	"github.com/bodgit/pgmcreator/raster"
	"github.com/urfave/cli/v2"
)

const (
	defaultDB     = "pgmcreator.db"
	defaultOutput = "imageout.pgm"
)

var errFileAndPattern = errors.New("--file and --pattern cannot be used together")

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func openDB(c *cli.Context) (*pgmcreator.PatternDB, error) {
	return pgmcreator.NewPatternDB(c.String("db"))
}

func generate(c *cli.Context) error {
	logger := newLogger(c)

	var (
		p   *pattern.Pattern
		err error
	)

	switch {
	case c.IsSet("file") && c.IsSet("pattern"):
		return cli.NewExitError(errFileAndPattern, 1)
	case c.IsSet("file"):
		p, err = pattern.Load(c.String("file"))
	case c.IsSet("pattern"):
		var db *pgmcreator.PatternDB
		if db, err = openDB(c); err != nil {
			return cli.NewExitError(err, 1)
		}
		defer db.Close()

		p, err = pgmcreator.New(db, logger).Pattern(c.String("pattern"))
	default:
		p = pattern.Default()
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	// Failing to open the output is reported with a non-zero exit status
	if err := pgmcreator.New(nil, logger).Create(c.String("output"), p, c.Int("width"), c.Int("height")); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "pgmcreator"
	app.Usage = "Render coordinate patterns as binary PGM images"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PGMCREATOR_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to pattern database, created if missing",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			EnvVars: []string{"PGMCREATOR_OUTPUT"},
			Value:   defaultOutput,
			Usage:   "image to write",
		},
		&cli.IntFlag{
			Name:  "width",
			Value: raster.DefaultWidth,
			Usage: "image width in pixels",
		},
		&cli.IntFlag{
			Name:  "height",
			Value: raster.DefaultHeight,
			Usage: "image height in pixels",
		},
		&cli.StringFlag{
			Name:  "pattern",
			Usage: "name of a pattern in the database (opening the database creates it if missing)",
		},
		&cli.StringFlag{
			Name:  "file",
			Usage: "read the pattern from a YAML `FILE`",
		},
	}

	// Any arguments are ignored, with nothing else given the built-in
	// pattern is written to imageout.pgm
	app.Action = generate

	app.Commands = []*cli.Command{
		{
			Name:        "import",
			Usage:       "Import a pattern from YAML or an image",
			Description: "YAML files (.yml, .yaml) are imported as-is, anything else is decoded as an image and reduced to two levels",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "name",
					Usage: "pattern name for an imported image",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				logger := newLogger(c)

				db, err := openDB(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				file := c.Args().First()

				var p *pattern.Pattern
				switch strings.ToLower(filepath.Ext(file)) {
				case ".yml", ".yaml":
					p, err = db.ImportYAML(file)
				default:
					p, err = db.ImportImage(c.String("name"), file)
				}
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				logger.Printf("Imported \"%s\" with %d points\n", p.Name, len(p.Points))

				return nil
			},
		},
		{
			Name:        "export",
			Usage:       "Write a pattern as YAML to stdout",
			Description: "",
			ArgsUsage:   "NAME",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := openDB(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				p, err := pgmcreator.New(db, newLogger(c)).Pattern(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				b, err := p.MarshalYAML()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if _, err := c.App.Writer.Write(b); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "list",
			Usage:       "List patterns in the database",
			Description: "",
			Action: func(c *cli.Context) error {
				db, err := openDB(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				names, err := db.Names()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, name := range names {
					fmt.Fprintln(c.App.Writer, name)
				}

				return nil
			},
		},
		{
			Name:        "render",
			Usage:       "Render every pattern in the database",
			Description: "Each pattern is written to DIRECTORY as NAME.pgm",
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				db, err := openDB(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				if err := pgmcreator.New(db, newLogger(c)).RenderAll(c.Args().First(), c.Int("width"), c.Int("height")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
