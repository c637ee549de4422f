package commands

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/lawsimplify/internal/api"
	"github.com/colonyops/lawsimplify/internal/app"
	"github.com/colonyops/lawsimplify/internal/core/analysis"
	"github.com/colonyops/lawsimplify/internal/core/styles"
	"github.com/colonyops/lawsimplify/internal/core/upload"
	"github.com/colonyops/lawsimplify/internal/printer"
	"github.com/colonyops/lawsimplify/pkg/iojson"
)

type AnalyzeCmd struct {
	flags *Flags
	app   *app.App
	json  bool
}

// NewAnalyzeCmd creates a new analyze command
func NewAnalyzeCmd(flags *Flags, app *app.App) *AnalyzeCmd {
	return &AnalyzeCmd{flags: flags, app: app}
}

// Register adds the analyze command to the application
func (cmd *AnalyzeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "analyze",
		Usage:     "Analyze one or more PDF documents",
		UsageText: "lawsimplify analyze [options] [path|glob...]",
		Description: `Uploads each document to the analysis service and prints its summary,
key clauses and red flags.

Arguments may be paths or glob patterns such as 'contracts/**/*.pdf'.
Files that are not PDFs are skipped. With no arguments a file picker opens.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output results as JSON",
				Destination: &cmd.json,
			},
		},
		Action: cmd.run,
	})

	return app
}

// analyzeReport is the outcome of one document.
type analyzeReport struct {
	File   string           `json:"file"`
	Size   string           `json:"size"`
	Pages  int              `json:"pages,omitempty"`
	Stats  analysis.Stats   `json:"stats"`
	Result *analysis.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

func (cmd *AnalyzeCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	patterns := c.Args().Slice()
	if len(patterns) == 0 {
		path, err := pickDocument()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		patterns = []string{path}
	}

	paths, unmatched, err := expandPaths(patterns)
	if err != nil {
		return err
	}
	for _, pattern := range unmatched {
		p.Warnf("no files match %s", pattern)
	}

	var (
		out     = printer.New(c.Root().Writer)
		reports []analyzeReport
		failed  int
	)

	for _, path := range paths {
		f, err := upload.Open(path)
		if err != nil {
			p.Warnf("skipping %s: %v", path, err)
			continue
		}
		if !upload.IsValidPDF(f) {
			log.Info().Str("file", f.Name).Str("content_type", f.ContentType).Msg("skipping non-pdf file")
			p.Warnf("skipping %s: not a PDF (%s)", f.Name, f.ContentType)
			continue
		}

		report := cmd.analyze(ctx, f)
		if report.Error != "" {
			failed++
		}
		reports = append(reports, report)

		if !cmd.json {
			printReport(out, report)
		}
	}

	if cmd.json {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, reports); err != nil {
			return err
		}
	}

	if len(reports) == 0 {
		p.Errorf("no PDF documents to analyze")
		return cli.Exit("", 1)
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *AnalyzeCmd) analyze(ctx context.Context, f *upload.File) analyzeReport {
	report := analyzeReport{File: f.Path, Size: f.HumanSize()}

	info, err := upload.Inspect(f)
	if err != nil {
		log.Debug().Err(err).Str("file", f.Name).Msg("local pdf inspection failed")
	}
	report.Pages = info.Pages

	res, err := cmd.app.Upload.Submit(ctx, cmd.app.Client, f)
	if err != nil {
		report.Error = api.Message(err)
		return report
	}

	report.Stats = res.Stats()
	report.Result = &res
	return report
}

func printReport(p *printer.Printer, r analyzeReport) {
	title := styles.IconDocument + " " + r.File
	p.Section(title)

	meta := r.Size
	if r.Pages > 0 {
		meta = fmt.Sprintf("%d pages, %s", r.Pages, r.Size)
	}
	p.Printf("%s", styles.SubtitleStyle.Render(meta))

	if r.Error != "" {
		p.Errorf("%s", r.Error)
		return
	}

	res := r.Result
	p.Printf("")
	p.Printf("%s", styles.SectionHeaderStyle.Render("Summary"))
	p.Printf("%s", res.Summary)

	printClauses(p, "Key Clauses", styles.IconClause, res.KeyClauses)

	if r.Stats.AllClear() {
		p.Printf("")
		p.Success("All Clear", "no red flags found")
	} else {
		printClauses(p, "Red Flags", styles.IconFlag, res.RedFlags)
	}

	p.Printf("")
	p.Infof("%d clauses, %d red flags", r.Stats.Clauses, r.Stats.RedFlags)
}

func printClauses(p *printer.Printer, header, icon string, clauses []analysis.Clause) {
	if len(clauses) == 0 {
		return
	}
	p.Printf("")
	p.Printf("%s", styles.SectionHeaderStyle.Render(header))
	for _, cl := range clauses {
		p.Printf("%s %s", icon, styles.ClauseTitleStyle.Render(cl.Title))
		p.Printf("  %s", cl.Detail)
	}
}

// expandPaths resolves glob patterns to files. Literal paths pass through
// so missing files are reported by the caller. Duplicates are dropped.
func expandPaths(patterns []string) (paths, unmatched []string, err error) {
	seen := map[string]bool{}
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, pattern := range patterns {
		if !isGlob(pattern) {
			add(pattern)
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			unmatched = append(unmatched, pattern)
			continue
		}

		slices.Sort(matches)
		for _, m := range matches {
			add(m)
		}
	}

	return paths, unmatched, nil
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func pickDocument() (string, error) {
	var path string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewFilePicker().
				Title("Document").
				Description("Choose a PDF to analyze").
				AllowedTypes([]string{".pdf"}).
				Picking(true).
				Value(&path),
		),
	).WithTheme(styles.FormTheme()).Run()
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", fmt.Errorf("no document selected")
	}
	return path, nil
}
