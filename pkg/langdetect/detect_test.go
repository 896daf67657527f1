package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/marky/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{name: "shebang bash", content: "#!/bin/bash\necho hello", expected: "bash"},
		{name: "shebang python", content: "#!/usr/bin/env python3\nprint('hello')", expected: "python"},
		{name: "go", content: "package main\n\nfunc main() {}\n", expected: "go"},
		{name: "python def", content: "def foo():\n    pass\n", expected: "python"},
		{name: "json", content: `{"key": "value"}`, expected: "json"},
		{name: "sql", content: "select * from users", expected: "sql"},
		{name: "rust", content: "fn main() {\n    let mut x = 1;\n}", expected: "rust"},
		{name: "javascript", content: "const x = () => 42;\nconsole.log(x());", expected: "javascript"},
		{name: "html", content: "<!DOCTYPE html>\n<html></html>", expected: "html"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			lang, ok := langdetect.Detect([]byte(testCase.content))
			assert.True(t, ok)
			assert.Equal(t, testCase.expected, lang)
		})
	}
}

func TestDetect_Empty(t *testing.T) {
	t.Parallel()

	for _, content := range []string{"", "   ", "\n\n"} {
		lang, ok := langdetect.Detect([]byte(content))
		assert.False(t, ok)
		assert.Empty(t, lang)
	}
}
