// Command relight prints a source file to the terminal with ANSI syntax
// highlighting, picking a grammar by file extension.
//
// Usage:
//
//	relight [-lang name] [-theme config.toml] [-o outfile] [-folds] [-watch] file
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dpinela/relight/config"
	"github.com/dpinela/relight/grammar"
	"github.com/dpinela/relight/highlight"
	"github.com/dpinela/relight/internal/atomicwrite"
	"github.com/dpinela/relight/internal/pathwatch"
	"github.com/dpinela/relight/internal/sgr"
	"github.com/dpinela/relight/textbuf"

	"github.com/mattn/go-runewidth"
)

func main() {
	lang := flag.String("lang", "", "language name (overrides the file extension)")
	theme := flag.String("theme", "", "path to a config.toml with styles")
	out := flag.String("o", "", "write output to this file instead of stdout")
	folds := flag.Bool("folds", false, "list the file's folds instead of highlighting")
	watch := flag.Bool("watch", false, "re-render whenever the file changes")
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	name := flag.Arg(0)

	var cfg *config.Config
	var err error
	if *theme != "" {
		cfg, err = config.LoadPath(*theme)
	} else {
		cfg, err = config.Load()
	}
	if err != nil && (*theme != "" || !errors.Is(err, fs.ErrNotExist)) {
		fmt.Fprintln(os.Stderr, "relight:", err)
	}

	g := pickGrammar(*lang, name)
	if g == nil {
		fmt.Fprintln(os.Stderr, "relight: no grammar for", name)
		os.Exit(1)
	}

	render := func() error {
		h := highlight.New(g)
		cfg.Configure(h)
		if err := h.Err(); err != nil {
			fmt.Fprintln(os.Stderr, "relight:", err)
		}
		data, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		buf := textbuf.New(string(data))
		doc := highlight.NewDocument(h, buf)
		emit := func(w io.Writer) error {
			if *folds {
				return writeFolds(w, doc, buf)
			}
			return writeANSI(w, doc, buf)
		}
		if *out != "" {
			return atomicwrite.Write(*out, emit)
		}
		return emit(os.Stdout)
	}

	if err := render(); err != nil {
		fmt.Fprintln(os.Stderr, "relight:", err)
		os.Exit(1)
	}
	if !*watch {
		return
	}
	w, err := pathwatch.NewWatcher()
	if err != nil {
		fmt.Fprintln(os.Stderr, "relight:", err)
		os.Exit(1)
	}
	defer w.Close()
	changes := make(chan struct{}, 1)
	w.Add(name, changes)
	if *theme != "" {
		w.Add(*theme, changes)
	}
	for {
		select {
		case <-changes:
			if err := render(); err != nil {
				fmt.Fprintln(os.Stderr, "relight:", err)
			}
		case err := <-w.Errors():
			fmt.Fprintln(os.Stderr, "relight: watch:", err)
		}
	}
}

func pickGrammar(lang, filename string) *grammar.Grammar {
	if lang != "" {
		return grammar.ByName(lang)
	}
	return grammar.ForExtension(filepath.Ext(filename))
}

// writeANSI renders the document with a line-number gutter. Styles come out
// as 24-bit SGR attributes.
func writeANSI(w io.Writer, doc *highlight.Document, buf *textbuf.Buffer) error {
	n := buf.LineCount()
	regions := doc.Regions(0, n)
	gutterLen := runewidth.StringWidth(strconv.Itoa(n))
	ri := 0
	for i := 0; i < n; i++ {
		line := buf.Line(i)
		if k := len(line); k > 0 && line[k-1] == '\n' {
			line = line[:k-1]
		}
		if _, err := fmt.Fprintf(w, "%*d ", gutterLen, i+1); err != nil {
			return err
		}
		pos := 0
		for ri < len(regions) && regions[ri].Line == i {
			r := regions[ri]
			ri++
			if r.Start > pos {
				io.WriteString(w, line[pos:r.Start])
			}
			io.WriteString(w, styleSequence(r.Style))
			io.WriteString(w, line[r.Start:r.End])
			io.WriteString(w, sgr.Reset)
			pos = r.End
		}
		if pos < len(line) {
			io.WriteString(w, line[pos:])
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func styleSequence(s *highlight.Style) string {
	var attrs []sgr.GraphicAttribute
	if s.Bold {
		attrs = append(attrs, sgr.StyleBold)
	}
	if s.Italic {
		attrs = append(attrs, sgr.StyleItalic)
	}
	if s.Underline {
		attrs = append(attrs, sgr.StyleUnderline)
	}
	if s.Foreground.Alpha {
		attrs = append(attrs, sgr.TrueColor{R: s.Foreground.R, G: s.Foreground.G, B: s.Foreground.B})
	}
	if s.Background.Alpha {
		attrs = append(attrs, sgr.TrueColor{R: s.Background.R, G: s.Background.G, B: s.Background.B, Background: true})
	}
	if len(attrs) == 0 {
		return ""
	}
	return sgr.SetGraphicAttributes(attrs...)
}

func writeFolds(w io.Writer, doc *highlight.Document, buf *textbuf.Buffer) error {
	for _, f := range doc.Folds(buf.LineCount()) {
		if _, err := fmt.Fprintf(w, "%s\t%d-%d\n", f.Name, f.From+1, f.To+1); err != nil {
			return err
		}
	}
	return nil
}
