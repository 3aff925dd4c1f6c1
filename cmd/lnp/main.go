package main

import (
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/urfave/cli/v2"

	"github.com/dfort/lnp"
	"github.com/dfort/lnp/colors"
	"github.com/dfort/lnp/config"
	"github.com/dfort/lnp/preview"
	"github.com/dfort/lnp/screenshot"
)

const defaultDB = "mods.db"

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

func newPaths(c *cli.Context) *config.Paths {
	return config.NewPaths(c.String("pack"), c.String("df"))
}

func newLNP(c *cli.Context) (*lnp.LNP, error) {
	paths := newPaths(c)

	cfg, err := config.LoadUserConfig(filepath.Join(paths.Root, config.UserConfigFilename))
	if err != nil {
		return nil, err
	}

	db, err := lnp.NewModDB(filepath.Join(paths.Root, defaultDB))
	if err != nil {
		return nil, err
	}

	return lnp.New(paths, cfg, db, newLogger(c)), nil
}

func writeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".gif") {
		return gif.Encode(f, img, &gif.Options{
			NumColors: 256,
			Quantizer: quantize.MedianCutQuantizer{},
		})
	}
	return png.Encode(f, img)
}

func previewCommand() *cli.Command {
	return &cli.Command{
		Name:      "preview",
		Usage:     "Render the screenshot snapshot to an image file",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "snapshot",
				Value: screenshot.Filename,
				Usage: "path to the snapshot file",
			},
			&cli.StringFlag{
				Name:  "font",
				Usage: "override the normal font tileset",
			},
			&cli.StringFlag{
				Name:  "gfx-font",
				Usage: "override the graphics font tileset",
			},
			&cli.StringFlag{
				Name:  "colors",
				Usage: "color scheme name (defaults to the installed colors)",
			},
			&cli.StringFlag{
				Name:  "print-mode",
				Usage: "override the PRINT_MODE setting",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Value:   "preview.png",
				Usage:   "output image file (.png or .gif)",
			},
		},
		Action: func(c *cli.Context) error {
			paths := newPaths(c)
			ctrl := preview.NewController(paths, newLogger(c),
				preview.WithSnapshotPath(c.String("snapshot")))

			err := ctrl.LoadFromInit()
			if err != nil && c.String("font") == "" {
				return cli.NewExitError(err, 1)
			}

			if font := c.String("font"); font != "" {
				if err := ctrl.SetFont(font); err != nil {
					return cli.NewExitError(err, 1)
				}
			}
			if font := c.String("gfx-font"); font != "" {
				if err := ctrl.SetGraphicsFont(font); err != nil {
					return cli.NewExitError(err, 1)
				}
			}
			if scheme := c.String("colors"); scheme != "" {
				if err := ctrl.SetColorScheme(scheme); err != nil {
					return cli.NewExitError(err, 1)
				}
			}
			if mode := c.String("print-mode"); mode != "" {
				if err := ctrl.SetPrintMode(mode); err != nil {
					return cli.NewExitError(err, 1)
				}
			}

			img := ctrl.Image()
			if img == nil {
				return cli.NewExitError("nothing rendered", 1)
			}

			if err := writeImage(c.String("out"), img); err != nil {
				return cli.NewExitError(err, 1)
			}
			return nil
		},
	}
}

func launchCommand() *cli.Command {
	return &cli.Command{
		Name:  "launch",
		Usage: "Launch the game",
		Action: func(c *cli.Context) error {
			l, err := newLNP(c)
			if err != nil {
				return cli.NewExitError(err, 1)
			}
			defer l.Mods().Close()

			if err := l.RunDF(); err != nil {
				return cli.NewExitError(err, 1)
			}
			return nil
		},
	}
}

func colorsCommand() *cli.Command {
	return &cli.Command{
		Name:  "colors",
		Usage: "Manage color schemes",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the pack's color schemes",
				Action: func(c *cli.Context) error {
					paths := newPaths(c)
					names, err := colors.ReadSchemes(paths)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					installed, _ := colors.Installed(paths)
					for _, name := range names {
						if name == installed {
							fmt.Printf("%s *\n", name)
						} else {
							fmt.Println(name)
						}
					}
					return nil
				},
			},
			{
				Name:      "install",
				Usage:     "Make a scheme the game's active colors",
				ArgsUsage: "NAME",
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						cli.ShowSubcommandHelpAndExit(c, 1)
					}
					if err := colors.Install(newPaths(c), c.Args().First()); err != nil {
						return cli.NewExitError(err, 1)
					}
					return nil
				},
			},
			{
				Name:      "export",
				Usage:     "Export the game's active colors to a scheme file",
				ArgsUsage: "NAME",
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						cli.ShowSubcommandHelpAndExit(c, 1)
					}
					paths := newPaths(c)
					name := c.Args().First()
					if colors.Exists(paths, name) {
						return cli.NewExitError(fmt.Sprintf("scheme %q already exists", name), 1)
					}
					if err := colors.Save(paths, name); err != nil {
						return cli.NewExitError(err, 1)
					}
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a scheme from the pack",
				ArgsUsage: "NAME",
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						cli.ShowSubcommandHelpAndExit(c, 1)
					}
					if err := colors.Delete(newPaths(c), c.Args().First()); err != nil {
						return cli.NewExitError(err, 1)
					}
					return nil
				},
			},
			{
				Name:  "which",
				Usage: "Identify the currently installed scheme",
				Action: func(c *cli.Context) error {
					name, err := colors.Installed(newPaths(c))
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					fmt.Println(name)
					return nil
				},
			},
		},
	}
}

func modsCommand() *cli.Command {
	return &cli.Command{
		Name:  "mods",
		Usage: "Manage the pack's mods",
		Subcommands: []*cli.Command{
			{
				Name:  "scan",
				Usage: "Scan the mods directory and refresh the mod store",
				Action: func(c *cli.Context) error {
					l, err := newLNP(c)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					defer l.Mods().Close()

					if err := l.ScanMods(); err != nil {
						return cli.NewExitError(err, 1)
					}
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List mods in merge order",
				Action: func(c *cli.Context) error {
					l, err := newLNP(c)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					defer l.Mods().Close()

					mods, err := l.Mods().List()
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					for _, m := range mods {
						fmt.Printf("%2d %-40s %s\n", m.Position, m.Name, m.Status)
					}
					return nil
				},
			},
			{
				Name:      "up",
				Usage:     "Move mods earlier in the merge order",
				ArgsUsage: "NAME...",
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						cli.ShowSubcommandHelpAndExit(c, 1)
					}
					l, err := newLNP(c)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					defer l.Mods().Close()

					if err := l.MoveModsUp(c.Args().Slice()); err != nil {
						return cli.NewExitError(err, 1)
					}
					return nil
				},
			},
			{
				Name:      "down",
				Usage:     "Move mods later in the merge order",
				ArgsUsage: "NAME...",
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						cli.ShowSubcommandHelpAndExit(c, 1)
					}
					l, err := newLNP(c)
					if err != nil {
						return cli.NewExitError(err, 1)
					}
					defer l.Mods().Close()

					if err := l.MoveModsDown(c.Args().Slice()); err != nil {
						return cli.NewExitError(err, 1)
					}
					return nil
				},
			},
		},
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "lnp"
	app.Usage = "Dwarf Fortress pack management utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "pack",
			EnvVars: []string{"LNP_PACK"},
			Value:   cwd,
			Usage:   "path to the pack root",
		},
		&cli.StringFlag{
			Name:  "df",
			Usage: "path to the game directory (defaults to <pack>/df)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		previewCommand(),
		launchCommand(),
		colorsCommand(),
		modsCommand(),
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
