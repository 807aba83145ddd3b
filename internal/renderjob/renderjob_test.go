package renderjob_test

import (
	"errors"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	"demobatch/internal/clipspan"
	"demobatch/internal/demolog"
	"demobatch/internal/renderjob"
	"demobatch/internal/testsupport"
)

func TestCommandFormat(t *testing.T) {
	job := renderjob.RenderJob{
		HL2Path:    `C:\TF2\hl2.exe`,
		DemoPath:   `demos\match`,
		StartTick:  0,
		EndTick:    1990,
		ExportPath: `recordings\match_0.avi`,
	}

	want := `renderdemo -exepath "C:\TF2\hl2.exe" -demo "demos\match" -start 0 -end 1990 -out "recordings\match_0.avi"`
	if got := job.Command(""); got != want {
		t.Fatalf("Command = %q\nwant      %q", got, want)
	}

	job.LaunchOptions = "-novid -w 1920"
	job.PreRecordCommand = "exec movie"
	want += ` -launch "-novid -w 1920" -cmd "exec movie"`
	if got := job.Command("renderdemo"); got != want {
		t.Fatalf("Command = %q\nwant      %q", got, want)
	}
}

func TestCommandOmitsBlankOptionalSegments(t *testing.T) {
	cases := []struct {
		name    string
		launch  string
		cmd     string
		present []string
		absent  []string
	}{
		{name: "both blank", launch: "", cmd: "", absent: []string{"-launch", "-cmd"}},
		{name: "whitespace only", launch: "  ", cmd: "\t", absent: []string{"-launch", "-cmd"}},
		{name: "launch only", launch: "-dxlevel 95", present: []string{`-launch "-dxlevel 95"`}, absent: []string{"-cmd"}},
		{name: "cmd only", cmd: "exec rec", present: []string{`-cmd "exec rec"`}, absent: []string{"-launch"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			job := renderjob.RenderJob{HL2Path: "hl2.exe", DemoPath: "d", EndTick: 10, ExportPath: "o.avi", LaunchOptions: tc.launch, PreRecordCommand: tc.cmd}
			line := job.Command("")
			for _, want := range tc.present {
				if !strings.Contains(line, want) {
					t.Fatalf("expected %q in %q", want, line)
				}
			}
			for _, unwanted := range tc.absent {
				if strings.Contains(line, unwanted) {
					t.Fatalf("did not expect %q in %q", unwanted, line)
				}
			}
		})
	}
}

func TestCommandQuotesExecutableWithSpaces(t *testing.T) {
	job := renderjob.RenderJob{HL2Path: "hl2.exe", DemoPath: "d", EndTick: 10, ExportPath: "o.avi"}
	line := job.Command(`C:\Tools\render demo.exe`)
	if !strings.HasPrefix(line, `"C:\Tools\render demo.exe" -exepath`) {
		t.Fatalf("expected quoted executable, got %q", line)
	}
	if _, err := renderjob.ParseCommand(line); err != nil {
		t.Fatalf("ParseCommand: %v", err)
	}
}

func TestCommandRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	pieces := []string{"", "a", "demo", `C:\TF2`, "two words", "-flag", "x/y", "κ", "\t"}
	pick := func() string {
		var parts []string
		for n := rng.IntN(3); n >= 0; n-- {
			parts = append(parts, pieces[rng.IntN(len(pieces))])
		}
		return strings.Join(parts, "")
	}

	for iter := 0; iter < 500; iter++ {
		job := renderjob.RenderJob{
			HL2Path:          pick(),
			DemoPath:         pick(),
			StartTick:        rng.IntN(100000),
			EndTick:          rng.IntN(100000),
			ExportPath:       pick(),
			LaunchOptions:    pick(),
			PreRecordCommand: pick(),
		}
		got, err := renderjob.ParseCommand(job.Command(""))
		if err != nil {
			t.Fatalf("ParseCommand(%q): %v", job.Command(""), err)
		}

		want := job
		if strings.TrimSpace(want.LaunchOptions) == "" {
			want.LaunchOptions = ""
		}
		if strings.TrimSpace(want.PreRecordCommand) == "" {
			want.PreRecordCommand = ""
		}
		if got != want {
			t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", got, want)
		}
	}
}

func TestParseCommandRejectsMalformedLines(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"unterminated": `renderdemo -exepath "hl2.exe -demo "d" -start 0 -end 1 -out "o"`,
		"missing out":  `renderdemo -exepath "hl2.exe" -demo "d" -start 0 -end 1`,
		"bad tick":     `renderdemo -exepath "hl2.exe" -demo "d" -start zero -end 1 -out "o"`,
		"unknown":      `renderdemo -exepath "hl2.exe" -demo "d" -start 0 -end 1 -out "o" -fps 60`,
		"dangling":     `renderdemo -exepath "hl2.exe" -demo "d" -start 0 -end 1 -out`,
		"repeated":     `renderdemo -exepath "a" -exepath "b" -demo "d" -start 0 -end 1 -out "o"`,
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := renderjob.ParseCommand(line); !errors.Is(err, renderjob.ErrMalformedCommand) {
				t.Fatalf("expected ErrMalformedCommand, got %v", err)
			}
		})
	}
}

func TestPlanAssignsExportPaths(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithRendererOptions("-novid", ""))
	defaults := renderjob.DefaultsFromConfig(cfg)

	log := demolog.EventLog{Key: filepath.Join(cfg.DemoDirectory, "2024-05-01_koth")}
	spans := []clipspan.Span{{StartTick: 0, EndTick: 1990}, {StartTick: 8020, EndTick: 10990}}
	jobs := renderjob.Plan(log, spans, defaults)

	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	for i, job := range jobs {
		if job.DemoPath != log.Key {
			t.Fatalf("job %d demo path = %q", i, job.DemoPath)
		}
		if job.Span() != spans[i] {
			t.Fatalf("job %d span = %v, want %v", i, job.Span(), spans[i])
		}
		if job.HL2Path != cfg.HL2Path || job.LaunchOptions != "-novid" {
			t.Fatalf("job %d did not inherit defaults: %+v", i, job)
		}
		if job.Profile != "both" || job.Overwrite != "yes" || job.WindowState != "broken" {
			t.Fatalf("job %d enum options = %q/%q/%q", i, job.Profile, job.Overwrite, job.WindowState)
		}
	}
	if jobs[0].ExportPath != filepath.Join("recordings", "2024-05-01_koth_0.avi") {
		t.Fatalf("unexpected export path: %q", jobs[0].ExportPath)
	}
	if jobs[1].ExportPath != filepath.Join("recordings", "2024-05-01_koth_1.avi") {
		t.Fatalf("unexpected export path: %q", jobs[1].ExportPath)
	}
}

func TestPlanExportPathSeparators(t *testing.T) {
	cases := []struct {
		prefix string
		key    string
		ext    string
		want   string
	}{
		{prefix: `D:\clips`, key: "demos/match", want: `D:\clips\match_0.avi`},
		{prefix: `D:\clips\`, key: "demos/match", want: `D:\clips\match_0.avi`},
		{prefix: "D:", key: "match", want: `D:\match_0.avi`},
		{prefix: "out/clips", key: `demos\match.v2`, ext: ".mp4", want: "out/clips/match_0.mp4"},
		{prefix: "", key: "match", want: "match_0.avi"},
	}
	for _, tc := range cases {
		jobs := renderjob.Plan(demolog.EventLog{Key: tc.key}, []clipspan.Span{{EndTick: 1}},
			renderjob.Defaults{ExportPrefix: tc.prefix, ClipExtension: tc.ext})
		if jobs[0].ExportPath != tc.want {
			t.Errorf("prefix %q key %q: got %q, want %q", tc.prefix, tc.key, jobs[0].ExportPath, tc.want)
		}
	}
}

func TestPlanWithoutSpans(t *testing.T) {
	if jobs := renderjob.Plan(demolog.EventLog{Key: "empty"}, nil, renderjob.Defaults{}); len(jobs) != 0 {
		t.Fatalf("expected no jobs, got %+v", jobs)
	}
}
