package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/muxinfo/internal/config"
	"github.com/backmassage/muxinfo/internal/cpucaps"
	"github.com/backmassage/muxinfo/internal/display"
	"github.com/backmassage/muxinfo/internal/ffmpeg"
	"github.com/backmassage/muxinfo/internal/probe"
	"github.com/backmassage/muxinfo/internal/registry"
)

type mockLogger struct {
	infos, warns, errs []string
}

func (m *mockLogger) Info(f string, a ...interface{})  { m.infos = append(m.infos, fmt.Sprintf(f, a...)) }
func (m *mockLogger) Warn(f string, a ...interface{})  { m.warns = append(m.warns, fmt.Sprintf(f, a...)) }
func (m *mockLogger) Error(f string, a ...interface{}) { m.errs = append(m.errs, fmt.Sprintf(f, a...)) }

type versionRunner struct {
	err error
}

func (r versionRunner) Run(context.Context, ...string) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("ffmpeg version 6.1\n"), nil
}

type staticSource struct {
	cat *probe.Catalog
	err error
}

func (s staticSource) Load(context.Context) (*probe.Catalog, error) { return s.cat, s.err }

func smallCatalog() *probe.Catalog {
	return &probe.Catalog{
		Muxers: registry.NewList(
			registry.Entry{Name: "mp4", Category: registry.CategoryMuxer},
			registry.Entry{Name: "alsa", Category: registry.CategoryOutputDevice},
		),
		Demuxers: registry.NewList(registry.Entry{Name: "mov", Category: registry.CategoryDemuxer}),
		Codecs:   registry.NewDescriptorList(registry.Descriptor{ID: "h264", Name: "h264"}),
	}
}

func fieldValue(fields []display.Field, key string) (string, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

func TestRunCheck_LiveFFmpeg(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CPUCount = 4
	log := &mockLogger{}

	fields, err := RunCheck(context.Background(), Env{
		Config: &cfg,
		Runner: versionRunner{},
		Source: staticSource{cat: smallCatalog()},
		CPU:    cpucaps.SSE2 | cpucaps.AVX,
	}, log)
	if err != nil {
		t.Fatalf("RunCheck: %v", err)
	}

	want := map[string]string{
		"ffmpeg":    "ffmpeg version 6.1",
		"muxers":    "2",
		"demuxers":  "1",
		"devices":   "1",
		"codecs":    "1",
		"encoders":  "0",
		"cpu flags": "+sse2+avx",
		"cpu count": "4",
	}
	for k, v := range want {
		got, ok := fieldValue(fields, k)
		if !ok || got != v {
			t.Errorf("field %q = %q (present %v), want %q", k, got, ok, v)
		}
	}
	if fields[0].Status != display.StatusOK {
		t.Errorf("ffmpeg status = %v, want OK", fields[0].Status)
	}
	if len(log.errs) != 0 {
		t.Errorf("unexpected errors: %v", log.errs)
	}
}

func TestRunCheck_Catalog(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CatalogFile = "caps.yaml"

	fields, err := RunCheck(context.Background(), Env{
		Config: &cfg,
		Runner: versionRunner{err: errors.New("must not run")},
		Source: staticSource{cat: &probe.Catalog{}},
	}, &mockLogger{})
	if err != nil {
		t.Fatalf("RunCheck: %v", err)
	}
	if v, _ := fieldValue(fields, "catalog"); v != "caps.yaml" {
		t.Errorf("catalog field = %q", v)
	}
	if _, ok := fieldValue(fields, "ffmpeg"); ok {
		t.Error("ffmpeg must not be probed when a catalog is configured")
	}
}

func TestRunCheck_Failures(t *testing.T) {
	boom := errors.New("boom")

	t.Run("ffmpeg", func(t *testing.T) {
		cfg := config.DefaultConfig()
		log := &mockLogger{}
		fields, err := RunCheck(context.Background(), Env{Config: &cfg, Runner: versionRunner{err: boom}}, log)
		if !errors.Is(err, boom) {
			t.Fatalf("err = %v, want boom", err)
		}
		if len(fields) != 1 || fields[0].Status != display.StatusFail || fields[0].Value != "not usable" {
			t.Errorf("fields = %+v", fields)
		}
		if len(log.errs) != 1 {
			t.Errorf("errors logged = %v", log.errs)
		}
	})

	t.Run("missing shared library", func(t *testing.T) {
		cfg := config.DefaultConfig()
		log := &mockLogger{}
		exitErr := &ffmpeg.ExitError{
			Args:   []string{"-hide_banner", "-version"},
			Code:   127,
			Stderr: "ffmpeg: error while loading shared libraries: libavdevice.so.61: cannot open shared object file",
		}
		fields, err := RunCheck(context.Background(), Env{Config: &cfg, Runner: versionRunner{err: exitErr}}, log)
		if !errors.Is(err, exitErr) {
			t.Fatalf("err = %v, want the exit error", err)
		}
		if v, _ := fieldValue(fields, "ffmpeg"); v != "missing shared library" {
			t.Errorf("ffmpeg field = %q", v)
		}
		if len(log.errs) != 1 || !strings.Contains(log.errs[0], "shared library is missing") {
			t.Errorf("errors logged = %v", log.errs)
		}
	})

	t.Run("registries", func(t *testing.T) {
		cfg := config.DefaultConfig()
		_, err := RunCheck(context.Background(), Env{
			Config: &cfg,
			Runner: versionRunner{},
			Source: staticSource{err: boom},
		}, &mockLogger{})
		if !errors.Is(err, boom) {
			t.Fatalf("err = %v, want boom", err)
		}
	})

	t.Run("empty catalog warns", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.CatalogFile = "x.yaml"
		log := &mockLogger{}
		if _, err := RunCheck(context.Background(), Env{Config: &cfg, Source: staticSource{cat: &probe.Catalog{}}}, log); err != nil {
			t.Fatal(err)
		}
		if len(log.warns) != 1 {
			t.Errorf("warnings = %v", log.warns)
		}
	})
}

func TestCheckDeps(t *testing.T) {
	dir := t.TempDir()
	catalog := filepath.Join(dir, "caps.yaml")
	if err := os.WriteFile(catalog, []byte("muxers: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{"catalog present", func(c *config.Config) { c.CatalogFile = catalog }, nil},
		{"catalog missing", func(c *config.Config) { c.CatalogFile = filepath.Join(dir, "nope.yaml") }, ErrCatalogNotFound},
		{"ffmpeg missing", func(c *config.Config) { c.FFmpegPath = filepath.Join(dir, "no-ffmpeg") }, ErrFfmpegNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(&cfg)
			err := CheckDeps(&cfg)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("CheckDeps() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckDeps() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
