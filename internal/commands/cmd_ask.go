package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/lawsimplify/internal/app"
	"github.com/colonyops/lawsimplify/internal/core/chat"
	"github.com/colonyops/lawsimplify/internal/core/styles"
	"github.com/colonyops/lawsimplify/internal/core/validate"
	"github.com/colonyops/lawsimplify/internal/printer"
	"github.com/colonyops/lawsimplify/pkg/iojson"
)

type AskCmd struct {
	flags *Flags
	app   *app.App
	json  bool
	input iojson.FileReader[[]string]
}

// NewAskCmd creates a new ask command
func NewAskCmd(flags *Flags, app *app.App) *AskCmd {
	return &AskCmd{flags: flags, app: app}
}

// Register adds the ask command to the application
func (cmd *AskCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ask",
		Usage:     "Ask a question about the last analyzed document",
		UsageText: "lawsimplify ask [options] [question]",
		Description: `Sends a question to the analysis service. Answers refer to the document
the service analyzed most recently.

Questions may also be piped as a JSON array of strings or read from a file
with --file. With no input a prompt opens.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output answers as JSON",
				Destination: &cmd.json,
			},
			cmd.input.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AskCmd) run(ctx context.Context, c *cli.Command) error {
	questions, err := cmd.questions(c)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	var (
		answers []chat.Message
		failed  bool
	)
	for _, q := range questions {
		msg, ok := cmd.app.Chat.Ask(ctx, cmd.app.Client, q)
		if !ok {
			continue
		}
		if msg.Status == chat.StatusFailed {
			failed = true
		}
		answers = append(answers, msg)
	}

	if cmd.json {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, answersJSON(answers)); err != nil {
			return err
		}
	} else {
		printAnswers(printer.New(c.Root().Writer), answers)
	}

	if failed {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *AskCmd) questions(c *cli.Command) ([]string, error) {
	if c.Args().Len() > 0 {
		return []string{strings.Join(c.Args().Slice(), " ")}, nil
	}

	if cmd.input.Provided() {
		qs, err := cmd.input.Read()
		if err != nil {
			return nil, err
		}
		if len(qs) == 0 {
			return nil, fmt.Errorf("no questions in input")
		}
		return qs, nil
	}

	q, err := promptQuestion(cmd.app.Chat.Suggestions())
	if err != nil {
		return nil, err
	}
	return []string{q}, nil
}

type answerJSON struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	Failed   bool      `json:"failed,omitempty"`
	Time     time.Time `json:"time"`
}

func answersJSON(msgs []chat.Message) []answerJSON {
	out := make([]answerJSON, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, answerJSON{
			Question: m.User,
			Answer:   m.AI,
			Failed:   m.Status == chat.StatusFailed,
			Time:     m.Timestamp,
		})
	}
	return out
}

func printAnswers(p *printer.Printer, answers []chat.Message) {
	for i, msg := range answers {
		if i > 0 {
			p.Printf("")
		}
		p.Printf("%s %s", styles.ChatUserStyle.Render("Q:"), msg.User)
		if msg.Status == chat.StatusFailed {
			p.Errorf("%s", msg.AI)
			continue
		}
		p.Printf("%s %s", styles.ChatAIStyle.Render("A:"), msg.AI)
	}
}

func promptQuestion(suggestions []string) (string, error) {
	var question string

	desc := "Ask anything about the analyzed document"
	if len(suggestions) > 0 {
		desc = "e.g. " + suggestions[0]
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Question").
				Description(desc).
				Suggestions(suggestions).
				Validate(validate.Question).
				Value(&question),
		),
	).WithTheme(styles.FormTheme()).Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(question), nil
}
