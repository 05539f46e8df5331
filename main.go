/**
 * Copyright 2025 ByteDance Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/cloudwego/abwriter/internal/pipeline"
	"github.com/cloudwego/abwriter/internal/pipeline/steps"
	"github.com/cloudwego/abwriter/internal/render"
	"github.com/cloudwego/abwriter/internal/source"
	"github.com/cloudwego/abwriter/internal/utils"
	"github.com/cloudwego/abwriter/llm"
	"github.com/cloudwego/abwriter/llm/log"
	"github.com/cloudwego/abwriter/llm/mcp"
	"github.com/cloudwego/abwriter/llm/role"
	"github.com/cloudwego/abwriter/version"
)

const Usage = `abwriter <Action> [Path] [Flags]
Action:
   edit         polish the text of Path (or piped stdin, or the clipboard) and print the result
   watch        re-run edit on Path every time the file is saved
   mcp          run as a MCP server exposing the improve_writing and diff_text tools
   roles        manage role definitions (list, show <name>)
   version      print the version of abwriter
Steps (run in the fixed order grammar, clarity, tone; grammar if none is given):
   --grammar    fix grammar, spelling and punctuation
   --clarity    rewrite confusing, wordy or ambiguous sentences
   --tone       adjust the tone: ` + "formal, casual, professional, friendly, technical, simple, persuasive, empathetic, humorous, inspirational" + `
`

type options struct {
	verbose    bool
	config     string
	rolesDir   string
	modelType  string
	model      string
	grammar    bool
	clarity    bool
	tone       string
	steps      []string
	clipboard  bool
	format     string
	output     string
	copy       bool
	noDiff     bool
	plain      bool
	toneChosen bool
}

func newFlags(opts *options) *flag.FlagSet {
	flags := flag.NewFlagSet("abwriter", flag.ExitOnError)
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose mode.")
	flags.StringVarP(&opts.config, "config", "c", "", "Model config file (YAML or JSON).")
	flags.StringVar(&opts.rolesDir, "roles-dir", "", "Directory of local ROLE.md overrides (default ~/.abwriter/roles if it exists).")
	flags.StringVar(&opts.modelType, "model-type", "", "Model provider: openai, claude, ark, ollama, dashscope, deepseek.")
	flags.StringVar(&opts.model, "model", "", "Model name, e.g. gpt-4o-mini.")
	flags.BoolVar(&opts.grammar, "grammar", false, "Run the grammar pass.")
	flags.BoolVar(&opts.clarity, "clarity", false, "Run the clarity pass.")
	flags.StringVar(&opts.tone, "tone", "", "Run the tone pass with this tone.")
	flags.StringSliceVarP(&opts.steps, "steps", "s", nil, "Passes to run, comma separated (grammar,clarity,tone).")
	flags.BoolVar(&opts.clipboard, "clipboard", false, "Read the text from the clipboard.")
	flags.StringVarP(&opts.format, "format", "f", "text", "Output format: text, html or json.")
	flags.StringVarP(&opts.output, "output", "o", "", "Output path.")
	flags.BoolVar(&opts.copy, "copy", false, "Copy the final text to the clipboard.")
	flags.BoolVar(&opts.noDiff, "no-diff", false, "Do not show the diff.")
	flags.BoolVar(&opts.plain, "plain", false, "No colors; mark the diff with [-removed-] and {+added+}.")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, Usage)
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flags.PrintDefaults()
	}
	return flags
}

func main() {
	var opts options
	flags := newFlags(&opts)

	if len(os.Args) < 2 {
		flags.Usage()
		os.Exit(1)
	}
	action := strings.ToLower(os.Args[1])
	if action == "-h" || action == "--help" || action == "help" {
		flags.Usage()
		return
	}
	if err := flags.Parse(os.Args[2:]); err != nil {
		log.Error("Failed to parse flags: %v", err)
		os.Exit(1)
	}
	opts.toneChosen = flags.Changed("tone")
	if opts.verbose {
		log.SetLogLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch action {
	case "version":
		fmt.Fprintf(os.Stdout, "%s\n", version.Version)

	case "edit":
		if err := runEdit(ctx, &opts, flags.Arg(0)); err != nil {
			log.Error("Failed to edit: %v", err)
			os.Exit(1)
		}

	case "watch":
		path := flags.Arg(0)
		if path == "" {
			log.Error("Argument Path is required")
			os.Exit(1)
		}
		if err := runWatch(ctx, &opts, path); err != nil {
			log.Error("Failed to watch: %v", err)
			os.Exit(1)
		}

	case "mcp":
		roles, err := loadRoles(opts.rolesDir)
		if err != nil {
			log.Error("Failed to load roles: %v", err)
			os.Exit(1)
		}
		editor, err := loadEditor(ctx, &opts)
		if err != nil {
			log.Error("No model available, improve_writing is disabled: %v", err)
		}
		svr := mcp.NewServer(mcp.ServerOptions{
			ServerName:    "abwriter",
			ServerVersion: version.Version,
			Verbose:       opts.verbose,
			Editor:        editor,
			Roles:         roles,
		})
		if err := svr.ServeStdio(); err != nil {
			log.Error("Failed to run MCP server: %v", err)
			os.Exit(1)
		}

	case "roles":
		handleRolesCommand(&opts, flags.Args())

	default:
		log.Error("Unsupported action: %s", action)
		flags.Usage()
		os.Exit(1)
	}
}

// selectedSteps collects the passes chosen on the command line.
func selectedSteps(opts *options) ([]pipeline.Kind, error) {
	var kinds []pipeline.Kind
	if opts.grammar {
		kinds = append(kinds, pipeline.KindGrammar)
	}
	if opts.clarity {
		kinds = append(kinds, pipeline.KindClarity)
	}
	if opts.toneChosen {
		kinds = append(kinds, pipeline.KindTone)
	}
	for _, s := range opts.steps {
		k, err := pipeline.ParseKind(s)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	if len(kinds) == 0 {
		kinds = append(kinds, pipeline.KindGrammar)
	}
	return pipeline.Plan(kinds), nil
}

func defaultRolesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(home, ".abwriter", "roles")
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return ""
	}
	return dir
}

func loadRoles(dir string) (*role.Registry, error) {
	if dir == "" {
		dir = defaultRolesDir()
	}
	reg := role.NewRegistry()
	if dir != "" {
		reg.SetLocalDir(dir)
	}
	if err := reg.Initialize(); err != nil {
		return nil, err
	}
	return reg, nil
}

func loadEditor(ctx context.Context, opts *options) (llm.Editor, error) {
	var cfg llm.ModelConfig
	if opts.config != "" {
		c, err := llm.LoadModelConfig(opts.config)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	if opts.modelType != "" {
		cfg.APIType = llm.NewModelType(opts.modelType)
	}
	if opts.model != "" {
		cfg.ModelName = opts.model
	}
	cfg = cfg.ApplyEnv()
	if cfg.APIType == llm.ModelTypeUnknown {
		return nil, fmt.Errorf("model type is not set (use --model-type, --config or %s)", llm.EnvAPIType)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("model name is not set (use --model, --config or %s)", llm.EnvModel)
	}
	return llm.NewEditorFromConfig(ctx, cfg)
}

// editor is a single edit run bound to its collaborators.
type editor struct {
	opts    *options
	format  render.Format
	kinds   []pipeline.Kind
	builder pipeline.StepBuilder
	src     *source.Provider
}

func newEditor(ctx context.Context, opts *options) (*editor, error) {
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	kinds, err := selectedSteps(opts)
	if err != nil {
		return nil, err
	}
	if opts.toneChosen {
		if _, err := steps.ParseTone(opts.tone); err != nil {
			return nil, err
		}
	}
	roles, err := loadRoles(opts.rolesDir)
	if err != nil {
		return nil, utils.WrapError(err, "load roles")
	}
	ed, err := loadEditor(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &editor{
		opts:    opts,
		format:  format,
		kinds:   kinds,
		builder: steps.NewBuilder(ed, roles),
		src:     source.New(),
	}, nil
}

func (e *editor) run(ctx context.Context, path string) error {
	text, origin, err := e.src.Read(path, e.opts.clipboard)
	if err != nil {
		return err
	}
	log.Debug("Editing %d bytes from %s with steps %v", len(text), origin, e.kinds)

	req := pipeline.Request{Text: text, Steps: e.kinds, Tone: e.opts.tone}
	progress := &render.ProgressPrinter{W: os.Stderr, Plain: e.opts.plain}
	res, err := pipeline.Run(ctx, req, e.builder, progress)
	if err != nil {
		return err
	}

	rep := render.NewReport(text, res)
	var w io.Writer = os.Stdout
	plain := e.opts.plain
	if e.opts.output != "" {
		f, err := os.Create(e.opts.output)
		if err != nil {
			return utils.WrapError(err, "create output %s", e.opts.output)
		}
		defer f.Close()
		w = f
		plain = true
	}
	if err := render.Write(w, rep, render.Options{Format: e.format, Plain: plain, NoDiff: e.opts.noDiff}); err != nil {
		return err
	}
	if e.opts.copy {
		if err := e.src.Copy(rep.Final); err != nil {
			return err
		}
		log.Info("Copied the edited text to the clipboard")
	}
	return nil
}

func runEdit(ctx context.Context, opts *options, path string) error {
	e, err := newEditor(ctx, opts)
	if err != nil {
		return err
	}
	return e.run(ctx, path)
}

func runWatch(ctx context.Context, opts *options, path string) error {
	e, err := newEditor(ctx, opts)
	if err != nil {
		return err
	}
	once := func(file string) {
		if err := e.run(ctx, file); err != nil {
			log.Error("Failed to edit %s: %v", file, err)
		}
	}
	once(path)
	log.Info("Watching %s, press Ctrl-C to stop", path)
	return utils.WatchFile(ctx, path, 300*time.Millisecond, once)
}
