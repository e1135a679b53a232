// Command queryjson is the driver described in spec.md §6: it reads a
// JSON document, evaluates a query expression against it, and prints
// the rendered result. It generalizes the teacher's main.go, which only
// ever read a fixed data.json into the bubbletea browser; here the
// browser becomes an opt-in -inspect flag and the document/query come
// from argv, per spec.md's documented driver contract.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adijmbt/queryjson/internal/browser"
	"github.com/adijmbt/queryjson/internal/diag"
	"github.com/adijmbt/queryjson/internal/diagrender"
	"github.com/adijmbt/queryjson/internal/jsonlexer"
	"github.com/adijmbt/queryjson/internal/jsonparser"
	"github.com/adijmbt/queryjson/internal/jsonvalue"
	"github.com/adijmbt/queryjson/internal/query/intrinsics"
	"github.com/adijmbt/queryjson/internal/query/querylexer"
	"github.com/adijmbt/queryjson/internal/query/queryeval"
	"github.com/adijmbt/queryjson/internal/query/queryparser"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: queryjson [-inspect] [-expand-nested] <path-to-json> <query>")
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("queryjson", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	inspect := fs.Bool("inspect", false, "browse the result interactively instead of printing it")
	expandNested := fs.Bool("expand-nested", false, "recursively re-parse string values that look like embedded JSON")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	rest := fs.Args()
	if len(rest) != 2 {
		usage()
		return 1
	}
	path, query := rest[0], rest[1]

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open %s: %v\n", path, err)
		return 1
	}

	document, ok := parseDocument(data)
	if !ok {
		return 1
	}

	if *expandNested {
		document = expandNestedJSON(document)
	}

	ev := queryeval.New(document)
	intrinsics.Register(ev)

	result, ok := evaluate(ev, document, query)
	if !ok {
		return 1
	}

	if *inspect {
		if _, err := tea.NewProgram(browser.NewModel(result)).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "browser error: %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Println(jsonvalue.Render(result))
	return 0
}

func parseDocument(data []byte) (jsonvalue.Value, bool) {
	tokens, lexErrs := jsonlexer.Tokens(data)
	if len(lexErrs) != 0 {
		diagrender.Fprint(os.Stderr, lexErrs)
		return jsonvalue.Value{}, false
	}

	value, parseErrs := jsonparser.Parse(tokens)
	if len(parseErrs) != 0 {
		diagrender.Fprint(os.Stderr, parseErrs)
		return jsonvalue.Value{}, false
	}

	return value, true
}

// evaluate runs query against document via ev. An empty query prints
// the whole document unchanged, per spec.md §6.
func evaluate(ev *queryeval.Evaluator, document jsonvalue.Value, query string) (jsonvalue.Value, bool) {
	if query == "" {
		return document, true
	}

	tokens, lexErrs := querylexer.Tokens([]byte(query))
	if len(lexErrs) != 0 {
		diagrender.Fprint(os.Stderr, lexErrs)
		return jsonvalue.Value{}, false
	}

	expr, parseErrs := queryparser.Parse(tokens)
	if len(parseErrs) != 0 {
		diagrender.Fprint(os.Stderr, parseErrs)
		return jsonvalue.Value{}, false
	}

	value, err := ev.Evaluate(expr)
	if err != nil {
		diagrender.Fprint(os.Stderr, []diag.Error{*err})
		return jsonvalue.Value{}, false
	}
	return value, true
}
