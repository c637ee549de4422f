package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/lawsimplify/internal/api"
	"github.com/colonyops/lawsimplify/internal/app"
	"github.com/colonyops/lawsimplify/internal/core/analysis"
	"github.com/colonyops/lawsimplify/internal/core/styles"
	"github.com/colonyops/lawsimplify/internal/core/upload"
	"github.com/colonyops/lawsimplify/internal/printer"
	"github.com/colonyops/lawsimplify/pkg/iojson"
)

type CompareCmd struct {
	flags *Flags
	app   *app.App
	json  bool
}

// NewCompareCmd creates a new compare command
func NewCompareCmd(flags *Flags, app *app.App) *CompareCmd {
	return &CompareCmd{flags: flags, app: app}
}

// Register adds the compare command to the application
func (cmd *CompareCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "compare",
		Usage:       "Compare two versions of a document",
		UsageText:   "lawsimplify compare [options] <old.pdf> <new.pdf>",
		Description: "Uploads both versions and reports new, removed and modified clauses with an overall risk rating.",
		Flags: []cli.Flag{
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

func (cmd *CompareCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("expected 2 documents, got %d", c.Args().Len())
	}

	oldDoc, err := openPDF(c.Args().Get(0))
	if err != nil {
		return err
	}
	newDoc, err := openPDF(c.Args().Get(1))
	if err != nil {
		return err
	}

	cmp, err := cmd.app.Client.Compare(ctx, oldDoc, newDoc)
	if err != nil {
		printer.Ctx(ctx).Errorf("comparison failed: %s", api.Message(err))
		return cli.Exit("", 1)
	}

	if cmd.json {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, cmp)
	}

	printComparison(printer.New(c.Root().Writer), oldDoc.Name, newDoc.Name, cmp)
	return nil
}

func openPDF(path string) (*upload.File, error) {
	f, err := upload.Open(path)
	if err != nil {
		return nil, err
	}
	if !upload.IsValidPDF(f) {
		return nil, fmt.Errorf("%s is not a PDF (%s)", f.Name, f.ContentType)
	}
	return f, nil
}

func printComparison(p *printer.Printer, oldName, newName string, cmp analysis.Comparison) {
	p.Section(fmt.Sprintf("%s → %s", oldName, newName))

	risk := cmp.OverallRiskAssessment
	if risk.Rating != "" {
		p.Printf("%s %s", styles.SectionHeaderStyle.Render("Risk:"), styles.FlagTitleStyle.Render(risk.Rating))
	}
	if risk.Summary != "" {
		p.Printf("%s", risk.Summary)
	}

	if cmp.Unchanged() {
		p.Printf("")
		p.Success("No clause changes", "")
		return
	}

	printClauses(p, "New Clauses", "+", cmp.NewClauses)
	printClauses(p, "Removed Clauses", "-", cmp.RemovedClauses)

	if len(cmp.ModifiedClauses) > 0 {
		p.Printf("")
		p.Printf("%s", styles.SectionHeaderStyle.Render("Modified Clauses"))
		for _, m := range cmp.ModifiedClauses {
			p.Printf("~ %s", styles.ClauseTitleStyle.Render(m.ClauseTitle))
			p.Printf("  %s %s", styles.StatusMutedStyle.Render("was:"), m.OldTextSummary)
			p.Printf("  %s %s", styles.StatusMutedStyle.Render("now:"), m.NewTextSummary)
			if m.RiskAnalysis != "" {
				p.Printf("  %s %s", styles.StatusActiveStyle.Render("risk:"), m.RiskAnalysis)
			}
		}
	}
}
