package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/lawsimplify/internal/app"
	"github.com/colonyops/lawsimplify/internal/core/doctor"
	"github.com/colonyops/lawsimplify/internal/core/styles"
	"github.com/colonyops/lawsimplify/internal/printer"
	"github.com/colonyops/lawsimplify/pkg/iojson"
)

type DoctorCmd struct {
	flags  *Flags
	app    *app.App
	format string
}

func NewDoctorCmd(flags *Flags, app *app.App) *DoctorCmd {
	return &DoctorCmd{flags: flags, app: app}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your lawsimplify setup",
		UsageText:   "lawsimplify doctor [options]",
		Description: "Checks configuration, the analysis service, audio storage and the audio player.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) checks() []doctor.Check {
	cfg := cmd.app.Config
	return []doctor.Check{
		doctor.NewConfigCheck(cfg, cmd.flags.ConfigPath),
		doctor.NewServiceCheck(cmd.app.Client.BaseURL(), nil),
		doctor.NewStorageCheck(cmd.app.Audio.Dir()),
		doctor.NewPlayerCheck(cfg.Audio.Player),
	}
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	results := doctor.RunAll(ctx, cmd.checks())
	_, _, failed := doctor.Summary(results)

	if cmd.format == "json" {
		if err := cmd.outputJSON(c, results); err != nil {
			return err
		}
	} else {
		cmd.outputText(printer.Ctx(ctx), results)
	}

	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out)
}

func (cmd *DoctorCmd) outputText(p *printer.Printer, results []doctor.Result) {
	p.Printf("%s", styles.BannerStyle.Render("lawsimplify doctor"))

	for _, result := range results {
		p.Section(result.Name)
		for _, item := range result.Items {
			switch item.Status {
			case doctor.StatusPass:
				p.CheckItem(item.Label, item.Detail)
			case doctor.StatusWarn:
				p.WarnItem(item.Label, item.Detail)
			case doctor.StatusFail:
				p.FailItem(item.Label, item.Detail)
			}
		}
	}

	passed, warned, failed := doctor.Summary(results)
	p.Printf("")
	p.Printf("%s  %s  %s",
		styles.AllClearStyle.Render(fmt.Sprintf("%d passed", passed)),
		styles.StatusActiveStyle.Render(fmt.Sprintf("%d warnings", warned)),
		styles.StatusErrorStyle.Render(fmt.Sprintf("%d failed", failed)),
	)
}
