package bank

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

//go:embed schema.json
var schemaJSON []byte

//go:embed default.json
var defaultJSON []byte

// SupportedMajor is the bank file format major version this build reads.
const SupportedMajor = "v1"

// ValidationError lists every problem found in a bank file.
type ValidationError struct {
	Source   string
	Problems []string
	Err      error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid question bank %s", e.Source)
	if len(e.Problems) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Problems, "; "))
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return e.Err }

type fileQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Hint       string `json:"hint,omitempty"`
	Difficulty string `json:"difficulty"`
}

type fileCategory struct {
	Name      string         `json:"name"`
	Questions []fileQuestion `json:"questions"`
}

type file struct {
	Version    string         `json:"version"`
	Categories []fileCategory `json:"categories"`
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func bankSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://bank.json", doc); err != nil {
			compileErr = fmt.Errorf("add bank schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile("schema://bank.json")
	})
	return compiled, compileErr
}

// Load parses and validates a bank document. source names the document in errors.
func Load(source string, data []byte) (*StaticBank, error) {
	sch, err := bankSchema()
	if err != nil {
		return nil, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &ValidationError{Source: source, Problems: []string{"malformed JSON"}, Err: err}
	}
	if err := sch.Validate(inst); err != nil {
		return nil, &ValidationError{Source: source, Problems: []string{"does not match schema"}, Err: err}
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &ValidationError{Source: source, Problems: []string{"malformed JSON"}, Err: err}
	}

	var problems []string
	if !semver.IsValid(f.Version) {
		problems = append(problems, fmt.Sprintf("version %q is not a semantic version", f.Version))
	} else if semver.Major(f.Version) != SupportedMajor {
		problems = append(problems, fmt.Sprintf("version %s is not supported (want %s.x.x)", f.Version, SupportedMajor))
	}

	seen := make(map[string]bool, len(f.Categories))
	cats := make([]Category, 0, len(f.Categories))
	for _, fc := range f.Categories {
		if seen[fc.Name] {
			problems = append(problems, fmt.Sprintf("duplicate category %q", fc.Name))
			continue
		}
		seen[fc.Name] = true

		c := Category{Name: fc.Name, Questions: make([]Question, 0, len(fc.Questions))}
		for _, fq := range fc.Questions {
			d, err := ParseDifficulty(fq.Difficulty)
			if err != nil {
				problems = append(problems, fmt.Sprintf("category %q: %v", fc.Name, err))
				continue
			}
			c.Questions = append(c.Questions, Question{
				Text:       fq.Question,
				Answer:     fq.Answer,
				Hint:       fq.Hint,
				Difficulty: d,
			})
		}
		cats = append(cats, c)
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Source: source, Problems: problems}
	}
	return NewStatic(cats...), nil
}

// LoadFile reads and validates a bank file from disk.
func LoadFile(path string) (*StaticBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return Load(path, data)
}

// Default returns the bank compiled into the binary.
// It panics if the embedded document is invalid.
func Default() *StaticBank {
	b, err := Load("(embedded)", defaultJSON)
	if err != nil {
		panic(fmt.Sprintf("bank: embedded default: %v", err))
	}
	return b
}
