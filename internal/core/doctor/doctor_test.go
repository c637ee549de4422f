package doctor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/lawsimplify/internal/core/config"
)

type staticCheck struct {
	name  string
	items []CheckItem
}

func (s staticCheck) Name() string { return s.name }

func (s staticCheck) Run(context.Context) Result {
	return Result{Name: s.name, Items: s.items}
}

func TestRunAllAndSummary(t *testing.T) {
	results := RunAll(context.Background(), []Check{
		staticCheck{name: "a", items: []CheckItem{pass("x", ""), warn("y", "")}},
		staticCheck{name: "b", items: []CheckItem{fail("z", ""), pass("w", "")}},
	})

	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Name)

	passed, warned, failed := Summary(results)
	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, warned)
	assert.Equal(t, 1, failed)
}

func TestPlayerCheck(t *testing.T) {
	orig := lookPathFunc
	t.Cleanup(func() { lookPathFunc = orig })

	tests := []struct {
		name    string
		command string
		found   bool
		status  Status
	}{
		{name: "found", command: "mpv --really-quiet {{ .Path }}", found: true, status: StatusPass},
		{name: "missing", command: "mpv {{ .Path }}", found: false, status: StatusWarn},
		{name: "empty", command: "  ", found: true, status: StatusFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookPathFunc = func(file string) (string, error) {
				if !tt.found {
					return "", &exec.Error{Name: file, Err: fmt.Errorf("not found")}
				}
				return "/usr/bin/" + file, nil
			}

			result := NewPlayerCheck(tt.command).Run(context.Background())
			require.Len(t, result.Items, 1)
			assert.Equal(t, tt.status, result.Items[0].Status)
		})
	}
}

func TestStorageCheck(t *testing.T) {
	dir := t.TempDir()

	result := NewStorageCheck(dir).Run(context.Background())
	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe file is removed")

	result = NewStorageCheck(filepath.Join(dir, "missing")).Run(context.Background())
	assert.Equal(t, StatusWarn, result.Items[0].Status)

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	result = NewStorageCheck(file).Run(context.Background())
	assert.Equal(t, StatusFail, result.Items[0].Status)
}

func TestServiceCheck(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())

	result := NewServiceCheck(srv.URL, nil).Run(context.Background())
	require.Len(t, result.Items, 1)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Contains(t, result.Items[0].Detail, "HTTP 404")

	srv.Close()

	result = NewServiceCheck(srv.URL, nil).Run(context.Background())
	assert.Equal(t, StatusFail, result.Items[0].Status)
	assert.Equal(t, "unreachable", result.Items[0].Detail)
}

func TestConfigCheck(t *testing.T) {
	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)

	result := NewConfigCheck(cfg, "").Run(context.Background())
	require.NotEmpty(t, result.Items)
	assert.Equal(t, StatusPass, result.Items[0].Status)

	cfg.API.BaseURL = "ftp://files.example.com"
	result = NewConfigCheck(cfg, "").Run(context.Background())
	assert.Equal(t, StatusFail, result.Items[0].Status)
	assert.Equal(t, "api.base_url", result.Items[0].Label)
}
