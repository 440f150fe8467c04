package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/afero"

	"envboot/internal/model"
	"envboot/internal/platform"
)

type recordingLoader struct {
	ran   []string
	fail  map[string]error
	after func(name string)
}

func (l *recordingLoader) Load(_ context.Context, m model.SetupModule) error {
	l.ran = append(l.ran, m.Name)
	if l.after != nil {
		l.after(m.Name)
	}
	return l.fail[m.Name]
}

func newFS(t *testing.T, env string, files ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	dir := filepath.Join(env, Dir)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		if err := afero.WriteFile(fs, filepath.Join(dir, f), []byte("elf"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return fs
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestList_FiltersAndSorts(t *testing.T) {
	fs := newFS(t, "/env/foo", "20_b.rpx", "_skip.rpx", "readme.txt", "10_a.rpx", ".hidden.rpx")
	_ = fs.MkdirAll("/env/foo/modules/setup/nested.rpx", 0o755)

	modules, err := List(fs, "/env/foo", ".rpx")
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	var skipped []string
	for _, m := range modules {
		names = append(names, m.Name)
		if m.Skip {
			skipped = append(skipped, m.Name)
		}
	}
	wantNames := []string{".hidden.rpx", "10_a.rpx", "20_b.rpx", "_skip.rpx"}
	if !reflect.DeepEqual(names, wantNames) {
		t.Errorf("names = %v, want %v", names, wantNames)
	}
	if !reflect.DeepEqual(skipped, []string{".hidden.rpx", "_skip.rpx"}) {
		t.Errorf("skipped = %v", skipped)
	}
	if modules[1].Path != "/env/foo/modules/setup/10_a.rpx" {
		t.Errorf("Path = %q", modules[1].Path)
	}
}

func TestList_MissingDirectory(t *testing.T) {
	modules, err := List(afero.NewMemMapFs(), "/env/none", "")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(modules) != 0 {
		t.Errorf("modules = %v, want none", modules)
	}
}

func TestDispatch_RunsUnskippedInOrder(t *testing.T) {
	fs := newFS(t, "/env/foo", ".hidden.rpx", "_skip.rpx", "10_a.rpx", "20_b.rpx")
	loader := &recordingLoader{}

	report, err := NewDispatcher(fs, ".rpx", loader, discard()).Dispatch(context.Background(), "/env/foo")
	if err != nil {
		t.Fatalf("Dispatch() error: %v", err)
	}

	want := []string{"10_a.rpx", "20_b.rpx"}
	if !reflect.DeepEqual(loader.ran, want) {
		t.Errorf("ran %v, want %v", loader.ran, want)
	}
	if !reflect.DeepEqual(report.Executed, want) {
		t.Errorf("Executed = %v, want %v", report.Executed, want)
	}
	if !reflect.DeepEqual(report.Skipped, []string{".hidden.rpx", "_skip.rpx"}) {
		t.Errorf("Skipped = %v", report.Skipped)
	}
}

func TestDispatch_FailurePolicy(t *testing.T) {
	tests := []struct {
		name     string
		fail     map[string]error
		wantRan  []string
		wantErr  bool
		wantFail []string
	}{
		{
			name:     "plain failure continues",
			fail:     map[string]error{"10_a.rpx": errors.New("bad elf")},
			wantRan:  []string{"10_a.rpx", "20_b.rpx", "30_c.rpx"},
			wantFail: []string{"10_a.rpx"},
		},
		{
			name:     "halt stops",
			fail:     map[string]error{"20_b.rpx": fmt.Errorf("kernel patch: %w", platform.ErrHalt)},
			wantRan:  []string{"10_a.rpx", "20_b.rpx"},
			wantErr:  true,
			wantFail: []string{"20_b.rpx"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFS(t, "/env/foo", "10_a.rpx", "20_b.rpx", "30_c.rpx")
			loader := &recordingLoader{fail: tt.fail}

			report, err := NewDispatcher(fs, ".rpx", loader, discard()).Dispatch(context.Background(), "/env/foo")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Dispatch() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, platform.ErrHalt) {
				t.Errorf("error %v does not wrap ErrHalt", err)
			}
			if !reflect.DeepEqual(loader.ran, tt.wantRan) {
				t.Errorf("ran %v, want %v", loader.ran, tt.wantRan)
			}
			if !reflect.DeepEqual(report.Failed, tt.wantFail) {
				t.Errorf("Failed = %v, want %v", report.Failed, tt.wantFail)
			}
		})
	}
}

func TestDispatch_StopsOnCancel(t *testing.T) {
	fs := newFS(t, "/env/foo", "10_a.rpx", "20_b.rpx")
	ctx, cancel := context.WithCancel(context.Background())
	loader := &recordingLoader{after: func(string) { cancel() }}

	_, err := NewDispatcher(fs, ".rpx", loader, discard()).Dispatch(ctx, "/env/foo")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Dispatch() error = %v, want context.Canceled", err)
	}
	if !reflect.DeepEqual(loader.ran, []string{"10_a.rpx"}) {
		t.Errorf("ran %v, want only the first module", loader.ran)
	}
}
