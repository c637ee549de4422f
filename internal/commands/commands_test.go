package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/lawsimplify/internal/app"
	"github.com/colonyops/lawsimplify/internal/core/config"
	"github.com/colonyops/lawsimplify/internal/printer"
	"github.com/colonyops/lawsimplify/pkg/executil"
)

const samplePDF = "%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n"

type testEnv struct {
	app    *app.App
	flags  *Flags
	exec   *executil.RecordingExecutor
	stdin  io.Reader
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newTestEnv(t *testing.T, h http.Handler) *testEnv {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)
	cfg.API.BaseURL = srv.URL
	cfg.Audio.Prefetch = false

	exec := &executil.RecordingExecutor{}
	a, err := app.New(app.Deps{Config: cfg, Executor: exec, Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(a.Close)

	return &testEnv{
		app:   a,
		flags: &Flags{Config: cfg},
		exec:  exec,
		stdin: strings.NewReader(""),
	}
}

func (e *testEnv) run(args ...string) error {
	root := &cli.Command{
		Name:           "lawsimplify",
		Reader:         e.stdin,
		Writer:         &e.stdout,
		ErrWriter:      &e.stderr,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	root = NewAnalyzeCmd(e.flags, e.app).Register(root)
	root = NewAskCmd(e.flags, e.app).Register(root)
	root = NewTranslateCmd(e.flags, e.app).Register(root)
	root = NewAudioCmd(e.flags, e.app).Register(root)
	root = NewCompareCmd(e.flags, e.app).Register(root)
	root = NewConfigCmd(e.flags).Register(root)
	root = NewDoctorCmd(e.flags, e.app).Register(root)

	ctx := printer.NewContext(context.Background(), printer.New(&e.stderr))
	return root.Run(ctx, append([]string{"lawsimplify"}, args...))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func analyzeHandler(calls *[]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, hdr, err := r.FormFile("document")
		if err != nil {
			http.Error(w, `{"error":"No document file provided"}`, http.StatusBadRequest)
			return
		}
		*calls = append(*calls, hdr.Filename)
		_, _ = w.Write([]byte(`{
			"summary": "A lease for ` + hdr.Filename + `",
			"keyClauses": [{"title": "Rent", "detail": "Due monthly"}],
			"redFlags": [{"title": "Penalty", "detail": "10% late fee"}]
		}`))
	}
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.pdf", samplePDF)
	b := writeFile(t, dir, "nested/b.pdf", samplePDF)
	writeFile(t, dir, "notes.txt", "hello")

	paths, unmatched, err := expandPaths([]string{
		filepath.Join(dir, "**", "*.pdf"),
		a,
		filepath.Join(dir, "*.docx"),
		filepath.Join(dir, "missing.pdf"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{a, b, filepath.Join(dir, "missing.pdf")}, paths)
	assert.Equal(t, []string{filepath.Join(dir, "*.docx")}, unmatched)
}

func TestExpandPaths_InvalidPattern(t *testing.T) {
	_, _, err := expandPaths([]string{"[.pdf"})
	assert.Error(t, err)
}

func TestAnalyzeCmd_JSON(t *testing.T) {
	var calls []string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", analyzeHandler(&calls))

	env := newTestEnv(t, mux)
	dir := t.TempDir()
	writeFile(t, dir, "lease.pdf", samplePDF)
	writeFile(t, dir, "photo.png", "\x89PNG\r\n\x1a\n")

	err := env.run("analyze", "--json", filepath.Join(dir, "*"))
	require.NoError(t, err)

	assert.Equal(t, []string{"lease.pdf"}, calls)
	assert.Contains(t, env.stderr.String(), "skipping photo.png")

	var reports []analyzeReport
	require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, 1, reports[0].Stats.Clauses)
	assert.Equal(t, 1, reports[0].Stats.RedFlags)
	require.NotNil(t, reports[0].Result)
	assert.Equal(t, "A lease for lease.pdf", reports[0].Result.Summary)
}

func TestAnalyzeCmd_Text(t *testing.T) {
	var calls []string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", analyzeHandler(&calls))

	env := newTestEnv(t, mux)
	path := writeFile(t, t.TempDir(), "lease.pdf", samplePDF)

	require.NoError(t, env.run("analyze", path))

	out := env.stdout.String()
	assert.Contains(t, out, "A lease for lease.pdf")
	assert.Contains(t, out, "Rent")
	assert.Contains(t, out, "10% late fee")
}

func TestAnalyzeCmd_NothingToAnalyze(t *testing.T) {
	env := newTestEnv(t, http.NotFoundHandler())
	path := writeFile(t, t.TempDir(), "notes.txt", "plain text")

	err := env.run("analyze", path)
	require.Error(t, err)
	assert.Contains(t, env.stderr.String(), "no PDF documents to analyze")
}

func TestAnalyzeCmd_RemoteFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Could not extract text"}`))
	})

	env := newTestEnv(t, mux)
	path := writeFile(t, t.TempDir(), "scan.pdf", samplePDF)

	err := env.run("analyze", "--json", path)
	require.Error(t, err)

	var reports []analyzeReport
	require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "Could not extract text", reports[0].Error)
	assert.Nil(t, reports[0].Result)
}

func TestAskCmd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ask", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Question string `json:"question"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		_, _ = w.Write([]byte(`{"answer":"30 days for: ` + req.Question + `"}`))
	})

	env := newTestEnv(t, mux)
	require.NoError(t, env.run("ask", "--json", "notice", "period?"))

	var answers []answerJSON
	require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &answers))
	require.Len(t, answers, 1)
	assert.Equal(t, "notice period?", answers[0].Question)
	assert.Equal(t, "30 days for: notice period?", answers[0].Answer)
	assert.False(t, answers[0].Failed)
}

func TestAskCmd_PipedQuestions(t *testing.T) {
	var asked []string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ask", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Question string `json:"question"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		asked = append(asked, req.Question)
		_, _ = w.Write([]byte(`{"answer":"ok"}`))
	})

	env := newTestEnv(t, mux)
	file := writeFile(t, t.TempDir(), "questions.json", `["first?","second?"]`)

	require.NoError(t, env.run("ask", "--file", file))

	assert.Equal(t, []string{"first?", "second?"}, asked)
	assert.Contains(t, env.stdout.String(), "second?")
}

func TestAskCmd_Failure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ask", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"No document has been analyzed yet"}`))
	})

	env := newTestEnv(t, mux)
	err := env.run("ask", "anything?")
	require.Error(t, err)

	assert.Contains(t, env.stdout.String(), "Sorry, I encountered an error")
}

func TestTranslateCmd(t *testing.T) {
	var got struct {
		Section    string `json:"section"`
		Text       string `json:"text"`
		TargetLang string `json:"target_lang"`
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /translate", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"translated":"किराया"}`))
	})

	t.Run("args default target", func(t *testing.T) {
		env := newTestEnv(t, mux)
		require.NoError(t, env.run("translate", "Rent", "is", "due"))

		assert.Equal(t, "किराया\n", env.stdout.String())
		assert.Equal(t, "Rent is due", got.Text)
		assert.Equal(t, "hi", got.TargetLang)
		assert.Equal(t, "text", got.Section)
	})

	t.Run("stdin with explicit target", func(t *testing.T) {
		env := newTestEnv(t, mux)
		env.stdin = strings.NewReader("  Rent is due\n")

		require.NoError(t, env.run("translate", "--to", "en", "--section", "clause-0", "--json"))

		var out translateJSON
		require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &out))
		assert.Equal(t, translateJSON{Section: "clause-0", Target: "en", Translated: "किराया"}, out)
		assert.Equal(t, "Rent is due", got.Text)
	})

	t.Run("no text", func(t *testing.T) {
		env := newTestEnv(t, mux)
		err := env.run("translate")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no text provided")
	})
}

func TestAudioCmd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /audio", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3\x03\x00\x00\x00\x00\x00\x00speech"))
	})

	t.Run("writes file", func(t *testing.T) {
		env := newTestEnv(t, mux)
		out := filepath.Join(t.TempDir(), "summary.mp3")

		require.NoError(t, env.run("audio", "--out", out, "Rent", "is", "due"))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "ID3\x03\x00\x00\x00\x00\x00\x00speech", string(data))

		entries, err := os.ReadDir(env.app.Audio.Dir())
		require.NoError(t, err)
		assert.Empty(t, entries, "temporary audio is released")
	})

	t.Run("requires an output", func(t *testing.T) {
		env := newTestEnv(t, mux)
		err := env.run("audio", "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--out")
	})
}

func TestAudioCmd_Play(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /audio", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ID3speech"))
	})

	env := newTestEnv(t, mux)

	done := make(chan error, 1)
	go func() { done <- env.run("audio", "--play", "--lang", "hi", "text") }()

	require.Eventually(t, func() bool { return env.exec.Last() != nil }, time.Second, 5*time.Millisecond)
	proc := env.exec.Last()
	assert.Contains(t, proc.Cmd, "mpv")
	assert.Contains(t, proc.Cmd, "cli-hi-")
	proc.Finish(nil)

	require.NoError(t, <-done)
}

func TestCompareCmd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /compare", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"overallRiskAssessment": {"rating": "High", "summary": "Termination got harder"},
			"newClauses": [{"title": "Arbitration", "detail": "Disputes go to arbitration"}],
			"removedClauses": [],
			"modifiedClauses": [{"clauseTitle": "Notice", "oldTextSummary": "30 days", "newTextSummary": "90 days", "riskAnalysis": "Longer lock-in"}]
		}`))
	})

	dir := t.TempDir()
	v1 := writeFile(t, dir, "v1.pdf", samplePDF)
	v2 := writeFile(t, dir, "v2.pdf", samplePDF)

	t.Run("text", func(t *testing.T) {
		env := newTestEnv(t, mux)
		require.NoError(t, env.run("compare", v1, v2))

		out := env.stdout.String()
		assert.Contains(t, out, "High")
		assert.Contains(t, out, "Arbitration")
		assert.Contains(t, out, "90 days")
		assert.Contains(t, out, "Longer lock-in")
	})

	t.Run("json", func(t *testing.T) {
		env := newTestEnv(t, mux)
		require.NoError(t, env.run("compare", "--json", v1, v2))
		assert.Contains(t, env.stdout.String(), `"rating": "High"`)
	})

	t.Run("needs two documents", func(t *testing.T) {
		env := newTestEnv(t, mux)
		err := env.run("compare", v1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected 2 documents")
	})
}

func TestConfigValidateCmd(t *testing.T) {
	env := newTestEnv(t, http.NotFoundHandler())
	require.NoError(t, env.run("config", "validate", "--format", "json"))

	var out struct {
		Valid bool `json:"valid"`
	}
	require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &out))
	assert.True(t, out.Valid)
}

func TestConfigValidateCmd_Invalid(t *testing.T) {
	env := newTestEnv(t, http.NotFoundHandler())
	env.flags.Config.Audio.Player = "mpv {{ .Path"

	err := env.run("config", "validate")
	require.Error(t, err)
	assert.Contains(t, env.stderr.String(), "audio.player")
	assert.Contains(t, env.stderr.String(), "1 error(s) found")
}

func TestDoctorCmd_JSON(t *testing.T) {
	env := newTestEnv(t, http.NotFoundHandler())
	env.flags.Config.Audio.Player = "sh -c true {{ .Path }}"

	require.NoError(t, env.run("doctor", "--format", "json"))

	var out struct {
		Healthy bool `json:"healthy"`
		Checks  []struct {
			Name string `json:"name"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(env.stdout.Bytes(), &out))
	assert.True(t, out.Healthy)
	require.Len(t, out.Checks, 4)
	assert.Equal(t, "Analysis Service", out.Checks[1].Name)
}
