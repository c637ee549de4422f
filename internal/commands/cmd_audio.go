package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/lawsimplify/internal/api"
	"github.com/colonyops/lawsimplify/internal/app"
	"github.com/colonyops/lawsimplify/internal/core/analysis"
	"github.com/colonyops/lawsimplify/internal/printer"
)

// audioKey identifies audio synthesized from the command line.
const audioKey analysis.Key = "cli"

type AudioCmd struct {
	flags *Flags
	app   *app.App
	lang  string
	out   string
	play  bool
}

// NewAudioCmd creates a new audio command
func NewAudioCmd(flags *Flags, app *app.App) *AudioCmd {
	return &AudioCmd{flags: flags, app: app}
}

// Register adds the audio command to the application
func (cmd *AudioCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "audio",
		Usage:     "Synthesize speech for text",
		UsageText: "lawsimplify audio [options] [text]",
		Description: `Converts text given as arguments, or piped on stdin, to speech. The audio
is written to --out, played with the configured player (--play), or both.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "lang",
				Aliases:     []string{"l"},
				Usage:       "language code of the text (defaults to languages.source)",
				Destination: &cmd.lang,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "file to write the audio to",
				Destination: &cmd.out,
			},
			&cli.BoolFlag{
				Name:        "play",
				Usage:       "play the audio and wait for it to finish",
				Destination: &cmd.play,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AudioCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.out == "" && !cmd.play {
		return fmt.Errorf("nothing to do; use --out, --play or both")
	}

	text, err := readText(c)
	if err != nil {
		return err
	}

	p := printer.Ctx(ctx)
	lang := cmd.language()

	h, err := cmd.app.Audio.Synthesize(ctx, cmd.app.Client, audioKey, lang, text)
	if err != nil {
		p.Errorf("audio conversion failed: %s", api.Message(err))
		return cli.Exit("", 1)
	}
	defer func() {
		if err := cmd.app.Audio.Release(h); err != nil {
			log.Warn().Err(err).Msg("failed to release audio")
		}
	}()

	if cmd.out != "" {
		data, err := os.ReadFile(h.Path)
		if err != nil {
			return fmt.Errorf("read audio: %w", err)
		}
		if err := os.WriteFile(cmd.out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", cmd.out, err)
		}
		p.Success("Audio saved", cmd.out)
	}

	if cmd.play {
		pb, err := cmd.app.Player.Play(ctx, h)
		if err != nil {
			p.Errorf("could not start the audio player: %v", err)
			return cli.Exit("", 1)
		}
		done := pb.Wait()
		cmd.app.Player.Finished(done.Gen)
		if done.Err != nil {
			log.Warn().Err(done.Err).Msg("player exited with error")
		}
	}

	return nil
}

func (cmd *AudioCmd) language() analysis.Lang {
	if cmd.lang != "" {
		return analysis.Lang(cmd.lang)
	}
	return cmd.app.Presenter.Languages().Source
}
