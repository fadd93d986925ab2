package summary

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules drives the filter and prioritizer stages. The zero value is not
// useful; start from DefaultRules and override fields as needed, or load
// overrides from a YAML file with LoadRules.
type Rules struct {
	// Exclude holds gitignore-style patterns; any matching path is dropped
	// before prioritization.
	Exclude []string `yaml:"exclude"`
	// KeyFiles are exact final-segment names selected first (tier 1).
	// Any file whose lower-cased name contains "readme" is tier 1 too.
	KeyFiles []string `yaml:"keyFiles"`
	// EntrypointNames are exact final-segment names selected second
	// (tier 2) when the path is at most MaxEntrypointDepth segments deep.
	EntrypointNames []string `yaml:"entrypointNames"`
	// SourceExtensions fill the remaining budget (tier 3).
	SourceExtensions []string `yaml:"sourceExtensions"`

	// MaxFiles bounds the prioritized selection.
	MaxFiles int `yaml:"maxFiles"`
	// MaxEntrypointDepth bounds tier-2 path depth (segment count).
	MaxEntrypointDepth int `yaml:"maxEntrypointDepth"`
	// MaxContextChars bounds the assembled content blob.
	MaxContextChars int `yaml:"maxContextChars"`
	// FetchConcurrency caps the content-fetch fan-out.
	FetchConcurrency int `yaml:"fetchConcurrency"`
}

// DefaultRules returns the built-in rule set.
func DefaultRules() Rules {
	return Rules{
		Exclude: []string{
			// Binaries / media
			"*.png", "*.jpg", "*.jpeg", "*.gif", "*.ico", "*.pdf", "*.eot", "*.svg", "*.ttf", "*.woff", "*.woff2",
			"*.mp4", "*.webm", "*.mp3", "*.wav", "*.zip", "*.tar", "*.gz", "*.7z", "*.exe", "*.dll", "*.so", "*.dylib",

			// Build output / dependency dirs / virtual envs
			"node_modules/", "venv/", ".venv/", "env/", ".env", "build/", "dist/", "target/", "out/", "__pycache__/", "*.pyc",
			".next/", ".nuxt/", ".cache/",

			// VCS / IDE
			".git/", ".github/", ".vscode/", ".idea/", "*.iml",

			// Lockfiles
			"package-lock.json", "yarn.lock", "pnpm-lock.yaml", "poetry.lock", "Pipfile.lock", "Gemfile.lock", "Cargo.lock",

			// Boilerplate module markers
			"__init__.py",
		},
		KeyFiles: []string{
			"README.md", "README", "package.json", "pyproject.toml", "requirements.txt",
			"Dockerfile", "docker-compose.yml", "setup.py", "go.mod", "Cargo.toml",
		},
		EntrypointNames: []string{
			"main.py", "app.py", "index.js", "index.ts", "app.js", "app.ts", "main.go", "main.rs",
		},
		SourceExtensions: []string{
			".py", ".js", ".ts", ".go", ".rs", ".java", ".cpp", ".c", ".h", ".cs", ".rb", ".php",
		},
		MaxFiles:           10,
		MaxEntrypointDepth: 3,
		MaxContextChars:    300_000,
		FetchConcurrency:   8,
	}
}

// LoadRules reads a YAML overrides file on top of DefaultRules. Only fields
// present in the file replace the defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse rules file %s: %w", path, err)
	}
	return rules, nil
}
