package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/fpgaflow"
	"github.com/aretw0/fpgaflow/internal/presentation/tui"
	"github.com/aretw0/fpgaflow/pkg/domain"
	"github.com/aretw0/fpgaflow/pkg/project"
)

// ToolStatus describes one resolved tool on disk.
type ToolStatus struct {
	Tool   domain.Tool
	Path   string
	Found  bool
	Detail string
}

// DoctorReport is the result of inspecting a project and its toolchain.
type DoctorReport struct {
	Dir        string
	ConfigPath string
	Toolchain  domain.ToolchainLocation
	Tools      []ToolStatus
	Missing    []string
}

// Healthy reports whether every tool and every project input exists.
func (r DoctorReport) Healthy() bool {
	if len(r.Missing) > 0 {
		return false
	}
	for _, t := range r.Tools {
		if !t.Found {
			return false
		}
	}
	return true
}

// Diagnose inspects the toolchain and the project inputs without running anything.
func Diagnose(orch *fpgaflow.Orchestrator, stat func(string) (os.FileInfo, error)) DoctorReport {
	if stat == nil {
		stat = os.Stat
	}
	report := DoctorReport{
		Dir:        orch.Dir,
		ConfigPath: orch.ConfigPath(),
		Toolchain:  orch.Toolchain(),
	}

	for _, t := range domain.RequiredTools {
		st := ToolStatus{Tool: t, Path: report.Toolchain.Path(t)}
		info, err := stat(st.Path)
		switch {
		case err != nil:
			st.Detail = "not found"
		case info.IsDir():
			st.Detail = "is a directory"
		default:
			st.Found = true
			st.Detail = "ok"
		}
		report.Tools = append(report.Tools, st)
	}

	cfg := orch.Config()
	inputs := append(project.NewArtifactSet(cfg).SourceFiles(), cfg.PinFile, cfg.ProgrammerConfig)
	for _, in := range inputs {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(orch.Dir, p)
		}
		if _, err := stat(p); err != nil {
			report.Missing = append(report.Missing, in)
		}
	}
	return report
}

// Markdown renders the report as a Markdown document.
func (r DoctorReport) Markdown() string {
	var b strings.Builder
	b.WriteString("# fpgaflow doctor\n\n")
	fmt.Fprintf(&b, "- **Project**: `%s`\n", r.Dir)
	if r.ConfigPath != "" {
		fmt.Fprintf(&b, "- **Config**: `%s`\n", r.ConfigPath)
	} else {
		b.WriteString("- **Config**: built-in defaults\n")
	}
	fmt.Fprintf(&b, "- **Platform**: %s\n", r.Toolchain.Platform)
	fmt.Fprintf(&b, "- **Toolchain**: `%s`\n\n", r.Toolchain.BaseDir)

	b.WriteString("## Tools\n\n| Tool | Path | Status |\n|---|---|---|\n")
	for _, t := range r.Tools {
		mark := "✔"
		if !t.Found {
			mark = "✘"
		}
		fmt.Fprintf(&b, "| %s | `%s` | %s %s |\n", t.Tool, t.Path, mark, t.Detail)
	}

	b.WriteString("\n## Project inputs\n\n")
	if len(r.Missing) == 0 {
		b.WriteString("All source, pin and programmer files are present.\n")
	} else {
		for _, m := range r.Missing {
			fmt.Fprintf(&b, "- ✘ `%s` is missing\n", m)
		}
	}
	return b.String()
}

// RunDoctor prints the rendered report and fails when something is missing.
func RunDoctor(opts RunOptions) error {
	opts.setDefaults()
	logger, err := createLogger(opts.Stderr, opts.Debug, opts.LogFormat)
	if err != nil {
		return err
	}
	if _, err := loadEnv(opts.Dir); err != nil {
		return err
	}

	orchOpts, err := baseOptions(opts, logger)
	if err != nil {
		return err
	}
	orch, err := fpgaflow.New(opts.Dir, orchOpts...)
	if err != nil {
		return err
	}

	report := Diagnose(orch, nil)
	render := tui.NewRenderer(tui.IsTerminal(opts.Stdout))
	out, err := render(report.Markdown())
	if err != nil {
		return err
	}
	fmt.Fprint(opts.Stdout, out)

	if !report.Healthy() {
		return fmt.Errorf("doctor found problems in %s", report.Dir)
	}
	return nil
}
