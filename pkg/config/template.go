package config

// Template is the commented configuration written by `marky init`.
const Template = `# marky configuration
# See: https://github.com/yaklabco/marky

render:
  # Drop newlines and indentation between elements.
  minify: false

  # Tag code blocks with class="language-X" when the language is recognised.
  detect_language: false

  # Treat '+' runs like '*' and '_' for emphasis.
  plus_emphasis: false

build:
  # Directory that receives the generated pages.
  output_dir: public

  # File extensions treated as markup sources.
  extensions:
    - .md
    - .markdown

  # File patterns to skip (glob patterns).
  # ignore:
  #   - "vendor/**"
  #   - "drafts/**"

  # Number of parallel workers (0 = auto).
  jobs: 0

  # Write front matter next to each page: "", yaml, or json.
  front_matter: ""
`
