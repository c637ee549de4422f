package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader decodes a T from the file named by its flag, or from stdin
// when the flag is unset.
type FileReader[T any] struct {
	path  string
	stdin io.Reader
	isTTY func() bool
}

// Flag returns the --file flag bound to the reader.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &fr.path,
	}
}

// Provided reports whether input is available without prompting: a file
// was named or stdin is piped.
func (fr *FileReader[T]) Provided() bool {
	return fr.path != "" || !fr.terminal()
}

// Read decodes the input.
func (fr *FileReader[T]) Read() (T, error) {
	var input T

	var r io.Reader
	switch {
	case fr.path != "":
		f, err := os.Open(fr.path)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	case fr.terminal():
		return input, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
	default:
		r = fr.input()
	}

	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}
	return input, nil
}

func (fr *FileReader[T]) input() io.Reader {
	if fr.stdin != nil {
		return fr.stdin
	}
	return os.Stdin
}

func (fr *FileReader[T]) terminal() bool {
	if fr.isTTY != nil {
		return fr.isTTY()
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}
