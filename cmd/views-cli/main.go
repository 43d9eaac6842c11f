package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-views/components/timezones"
	"github.com/goliatone/go-views/pkg/engine"
	"github.com/goliatone/go-views/pkg/markup"
)

func main() {
	templatesDir := flag.String("templates", "templates", "directory holding template sources")
	templateName := flag.String("template", "", "logical template name to render")
	varsPath := flag.String("vars", "", "YAML file with template variables")
	output := flag.String("output", "", "output file (stdout if empty)")
	timezone := flag.String("timezone", "", "IANA zone stored as the _timeZone global")
	prompt := flag.String("prompt", "", "comma-separated variable names to prompt for")
	interactive := flag.Bool("interactive", false, "pick the template interactively")
	minify := flag.Bool("minify", false, "minify rendered HTML output")
	flag.Parse()

	registry := engine.NewRegistry()
	if err := loadTemplates(registry, *templatesDir); err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	opts := []engine.Option{}
	if *minify {
		opts = append(opts, engine.WithMinify())
	}
	eng, err := engine.New(registry, opts...)
	if err != nil {
		log.Fatalf("Failed to configure engine: %v", err)
	}

	if *timezone != "" {
		if !timezones.Valid(*timezone) {
			log.Fatalf("Unknown timezone %q", *timezone)
		}
		eng.Set(engine.TimeZoneVar, *timezone)
	}

	vars, err := loadVars(*varsPath)
	if err != nil {
		log.Fatalf("Failed to load variables: %v", err)
	}
	if err := promptVars(vars, *prompt); err != nil {
		log.Fatalf("Prompt aborted: %v", err)
	}

	name := strings.TrimSpace(*templateName)
	if name == "" {
		if !*interactive {
			log.Fatalf("No template given; pass -template or -interactive")
		}
		name, err = pickTemplate(registry)
		if err != nil {
			log.Fatalf("Template selection aborted: %v", err)
		}
	}

	rendered, err := eng.Render(name, vars)
	if err != nil {
		log.Fatalf("Failed to render %q: %v", name, err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(rendered), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Rendered output written to %s\n", *output)
	} else {
		fmt.Println(rendered)
	}
}

// loadTemplates registers every recognized source under dir as a markup body,
// keyed by its slash-separated relative path.
func loadTemplates(registry *engine.Registry, dir string) error {
	root := os.DirFS(dir)
	return fs.WalkDir(root, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !recognized(path) {
			return nil
		}
		src, err := fs.ReadFile(root, path)
		if err != nil {
			return err
		}
		markup.Register(registry, filepath.ToSlash(path), string(src))
		return nil
	})
}

func recognized(path string) bool {
	switch {
	case strings.HasSuffix(path, ".tpl.html"), strings.HasSuffix(path, ".html"), strings.HasSuffix(path, ".txt"):
		return true
	default:
		return false
	}
}

func loadVars(path string) (map[string]any, error) {
	vars := map[string]any{}
	if strings.TrimSpace(path) == "" {
		return vars, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, &vars); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return vars, nil
}

// promptVars asks for each named variable and stores the answer, overriding
// any value loaded from the vars file.
func promptVars(vars map[string]any, names string) error {
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		answer := ""
		question := &survey.Input{Message: fmt.Sprintf("Value for %q:", name)}
		if err := survey.AskOne(question, &answer); err != nil {
			return err
		}
		vars[name] = answer
	}
	return nil
}

func pickTemplate(registry *engine.Registry) (string, error) {
	names := registry.Names()
	if len(names) == 0 {
		return "", fmt.Errorf("no templates registered")
	}
	choice := ""
	question := &survey.Select{Message: "Template to render:", Options: names}
	if err := survey.AskOne(question, &choice); err != nil {
		return "", err
	}
	return choice, nil
}
