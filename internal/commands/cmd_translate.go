package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/lawsimplify/internal/api"
	"github.com/colonyops/lawsimplify/internal/app"
	"github.com/colonyops/lawsimplify/internal/core/analysis"
	"github.com/colonyops/lawsimplify/internal/printer"
	"github.com/colonyops/lawsimplify/pkg/iojson"
)

type TranslateCmd struct {
	flags   *Flags
	app     *app.App
	to      string
	section string
	json    bool
}

// NewTranslateCmd creates a new translate command
func NewTranslateCmd(flags *Flags, app *app.App) *TranslateCmd {
	return &TranslateCmd{flags: flags, app: app}
}

// Register adds the translate command to the application
func (cmd *TranslateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "translate",
		Usage:     "Translate text with the analysis service",
		UsageText: "lawsimplify translate [options] [text]",
		Description: `Translates text given as arguments, or piped on stdin, into the target
language. Defaults to the configured translation target.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "to",
				Aliases:     []string{"t"},
				Usage:       "target language code (defaults to languages.target)",
				Destination: &cmd.to,
			},
			&cli.StringFlag{
				Name:        "section",
				Usage:       "section identifier sent with the request",
				Value:       "text",
				Destination: &cmd.section,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output result as JSON",
				Destination: &cmd.json,
			},
		},
		Action: cmd.run,
	})

	return app
}

type translateJSON struct {
	Section    string `json:"section"`
	Target     string `json:"target"`
	Translated string `json:"translated"`
}

func (cmd *TranslateCmd) run(ctx context.Context, c *cli.Command) error {
	text, err := readText(c)
	if err != nil {
		return err
	}

	target := cmd.target()

	out, err := cmd.app.Client.Translate(ctx, cmd.section, text, target)
	if err != nil {
		printer.Ctx(ctx).Errorf("translation failed: %s", api.Message(err))
		return cli.Exit("", 1)
	}

	if cmd.json {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, translateJSON{
			Section:    cmd.section,
			Target:     string(target),
			Translated: out,
		})
	}

	_, err = fmt.Fprintln(c.Root().Writer, out)
	return err
}

func (cmd *TranslateCmd) target() analysis.Lang {
	if cmd.to != "" {
		return analysis.Lang(cmd.to)
	}
	return cmd.app.Presenter.Languages().Target
}
