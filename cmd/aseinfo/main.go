// Command aseinfo prints what is inside Aseprite files and exports their
// frames as PNG.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/urfave/cli/v3"

	"github.com/retroblast-engine/asemation"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "aseinfo",
		Usage: "inspect Aseprite sprites and export their frames",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML config file"},
			&cli.BoolFlag{Name: "strict", Usage: "fail on magic number mismatches"},
			&cli.BoolFlag{Name: "best-effort", Usage: "skip cels with an unsupported color depth or cel type"},
			&cli.BoolFlag{Name: "skip-corrupt", Usage: "leave cels that fail to decompress transparent"},
			&cli.BoolFlag{Name: "clamp-tags", Usage: "clamp tag ranges to the frame count"},
			&cli.IntFlag{Name: "concurrency", Usage: "cel decompression workers"},
		},
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "print header, frames, tags and warnings",
				ArgsUsage: "FILE...",
				Action:    infoAction,
			},
			{
				Name:      "export",
				Usage:     "write frames as PNG files",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "output directory"},
					&cli.IntFlag{Name: "scale", Usage: "integer upscale factor"},
					&cli.StringFlag{Name: "tag", Usage: "only export the frames of this tag"},
				},
				Action: exportAction,
			},
		},
	}
}

func loadConfig(cmd *cli.Command) (Config, error) {
	cfg, err := readConfig(cmd.String("config"))
	if err != nil {
		return cfg, err
	}
	cfg.applyFlags(cmd)
	return cfg, nil
}

func decode(path string, cfg Config) (*asemation.Document, error) {
	doc, err := asemation.DecodeFile(path, cfg.Options())
	if err != nil {
		return nil, err
	}
	for _, w := range doc.Warnings {
		glog.Warningf("%s: %s", path, w)
	}
	return doc, nil
}

func infoAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return errors.New("info: no files given")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	for _, path := range cmd.Args().Slice() {
		doc, err := decode(path, cfg)
		if err != nil {
			return err
		}
		printDocument(cmd.Root().Writer, path, doc)
	}
	return nil
}

func exportAction(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return errors.New("export: no file given")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.IsSet("out") {
		cfg.Export.Dir = cmd.String("out")
	}
	if cmd.IsSet("scale") {
		cfg.Export.Scale = int(cmd.Int("scale"))
	}

	doc, err := decode(path, cfg)
	if err != nil {
		return err
	}
	from, to := 0, len(doc.Frames)-1
	if name := cmd.String("tag"); name != "" {
		tag, ok := doc.Tag(name)
		if !ok {
			return errors.New("export: no tag named " + name)
		}
		from, to = tag.From, tag.To
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	paths, err := exportFrames(doc, cfg.Export.Dir, base, cfg.Export.Scale, from, to)
	for _, p := range paths {
		glog.Infof("wrote %s", p)
	}
	return err
}

func main() {
	flag.Set("logtostderr", "true")
	defer glog.Flush()

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		glog.Exit(err)
	}
}
