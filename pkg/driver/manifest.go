package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"brewin/interpreter-go/pkg/interpreter"
)

// SuiteFileName is the manifest looked up inside a suite directory.
const SuiteFileName = "suite.yml"

// Suite represents the parsed contents of suite.yml.
type Suite struct {
	Path     string
	Dir      string
	Name     string
	Trace    bool
	Fixtures []*Fixture
}

// Fixture is one program run with canned input and expected results.
type Fixture struct {
	Name    string
	Program string
	Input   []string
	Stdout  []string
	// Error is the expected fatal error kind, if any.
	Error string
}

// ExpectsError reports whether the fixture expects a fatal error.
func (f *Fixture) ExpectsError() bool {
	return f.Error != ""
}

// ProgramPath resolves the fixture's program relative to the suite directory.
func (s *Suite) ProgramPath(f *Fixture) string {
	if filepath.IsAbs(f.Program) {
		return f.Program
	}
	return filepath.Join(s.Dir, filepath.FromSlash(f.Program))
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "suite: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("suite validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type suiteFile struct {
	Name     string        `yaml:"name"`
	Trace    bool          `yaml:"trace"`
	Fixtures []fixtureFile `yaml:"fixtures"`
}

type fixtureFile struct {
	Name    string   `yaml:"name"`
	Program string   `yaml:"program"`
	Input   []string `yaml:"input"`
	Stdout  []string `yaml:"stdout"`
	Error   string   `yaml:"error"`
}

// LoadSuite parses suite.yml from disk, returning a validated suite. path may
// name the manifest itself or the directory holding it.
func LoadSuite(path string) (*Suite, error) {
	if path == "" {
		return nil, fmt.Errorf("suite: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("suite: resolve %s: %w", path, err)
	}
	if info, err := os.Stat(absPath); err == nil && info.IsDir() {
		absPath = filepath.Join(absPath, SuiteFileName)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("suite: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw suiteFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("suite: %s is empty", absPath)
		}
		return nil, fmt.Errorf("suite: parse %s: %w", absPath, err)
	}

	suite := raw.toSuite(absPath)
	if err := suite.validate(); err != nil {
		return nil, err
	}
	return suite, nil
}

func (raw suiteFile) toSuite(path string) *Suite {
	suite := &Suite{
		Path:  path,
		Dir:   filepath.Dir(path),
		Name:  strings.TrimSpace(raw.Name),
		Trace: raw.Trace,
	}
	for _, entry := range raw.Fixtures {
		name := strings.TrimSpace(entry.Name)
		program := strings.TrimSpace(entry.Program)
		if name == "" && program != "" {
			base := filepath.Base(program)
			name = strings.TrimSuffix(base, filepath.Ext(base))
		}
		suite.Fixtures = append(suite.Fixtures, &Fixture{
			Name:    name,
			Program: program,
			Input:   entry.Input,
			Stdout:  entry.Stdout,
			Error:   strings.ToUpper(strings.TrimSpace(entry.Error)),
		})
	}
	return suite
}

func (s *Suite) validate() error {
	var errs ValidationError
	if s.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if len(s.Fixtures) == 0 {
		errs.Issues = append(errs.Issues, "fixtures must list at least one program")
	}
	seen := make(map[string]int, len(s.Fixtures))
	for idx, fixture := range s.Fixtures {
		if fixture.Program == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("fixtures[%d] missing program", idx))
			continue
		}
		if prev, exists := seen[fixture.Name]; exists {
			errs.Issues = append(errs.Issues, fmt.Sprintf("fixtures[%d] and fixtures[%d] share the name %q", prev, idx, fixture.Name))
		} else {
			seen[fixture.Name] = idx
		}
		if fixture.ExpectsError() {
			if _, ok := interpreter.ParseErrorKind(fixture.Error); !ok {
				errs.Issues = append(errs.Issues, fmt.Sprintf("fixture %q has unsupported error kind %q", fixture.Name, fixture.Error))
			}
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
