package markup_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/marky/pkg/markup"
)

const benchDocument = `---
title: Benchmark
author: Ann
---
# Benchmark Document

A paragraph with *emphasis*, **strong text**, ` + "`code`" + ` and a [link](http://example.com).

- first item
- second item with __bold__
- third item

1. one
2. two

> quoted line
> another quoted line

` + "```\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n```" + `

![diagram](img/diagram.png)

---
`

var benchInput = strings.Repeat(benchDocument[strings.Index(benchDocument, "# "):], 20)

// Benchmark scanning alone.
func BenchmarkScan(b *testing.B) {
	for range b.N {
		if _, err := markup.Scan(benchInput); err != nil {
			b.Fatal(err)
		}
	}
}

// Benchmark the full pipeline from text to HTML.
func BenchmarkHTML(b *testing.B) {
	b.SetBytes(int64(len(benchInput)))
	for range b.N {
		if _, err := markup.HTML(benchInput); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHTMLWithFrontMatter(b *testing.B) {
	for range b.N {
		if _, err := markup.HTML(benchDocument, markup.WithCompact()); err != nil {
			b.Fatal(err)
		}
	}
}
