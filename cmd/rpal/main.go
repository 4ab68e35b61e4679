// Command rpal is the interpreter's CLI entry point: read a source file,
// run it through lex -> parse -> [dump] -> standardize -> [dump] ->
// execute, and print the outcome. Grounded on the teacher's
// cmd/vm_translator and cmd/jack_compiler (teris-io/cli wiring, one
// Handler function, phase-by-phase "ERROR: ..." early return), adapted to
// spec.md §6's flag set and output format.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fernandonpa/cs3513-rpal/pkg/ast"
	"github.com/fernandonpa/cs3513-rpal/pkg/cse"
	"github.com/fernandonpa/cs3513-rpal/pkg/parser"
	"github.com/fernandonpa/cs3513-rpal/pkg/standardizer"

	"github.com/teris-io/cli"
)

// executionTimeout is spec.md §5's recommended wall-clock budget for the
// CSE machine loop.
const executionTimeout = 1500 * time.Millisecond

var Description = strings.ReplaceAll(`
The RPAL interpreter lexes, parses and standardizes an RPAL source program,
then executes it on a control-stack-environment abstract machine and prints
its single result.
`, "\n", " ")

var RpalInterpreter = cli.New(Description).
	WithArg(cli.NewArg("input", "The RPAL source (.rpal) file to run")).
	WithOption(cli.NewOption("ast", "Print the parser's dotted-indent AST and exit").
		WithType(cli.TypeBool)).
	WithOption(cli.NewOption("sast", "Standardize and print the standardized tree, then exit").
		WithType(cli.TypeBool)).
	WithOption(cli.NewOption("pretty", "Print a tuple result as a brace-wrapped list of leaf integers").
		WithType(cli.TypeBool)).
	WithOption(cli.NewOption("legacy-timeout-output", "On timeout, print the single character '1' instead of 'Error: Timeout'").
		WithType(cli.TypeBool)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	if len(args) < 1 {
		fmt.Println("Error: missing input file, use --help")
		return 1
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Printf("Error: unable to open input file: %s\n", err)
		return 1
	}

	p := parser.NewParser(bytes.NewReader(content))
	tree, err := p.Parse()
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		return 1
	}

	if _, enabled := options["ast"]; enabled {
		fmt.Print(ast.Print(tree))
		return 0
	}

	if err := standardizer.Standardize(tree); err != nil {
		fmt.Printf("Error: %s\n", err)
		return 1
	}

	if _, enabled := options["sast"]; enabled {
		fmt.Print(ast.Print(tree))
		return 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), executionTimeout)
	defer cancel()

	result, err := cse.Evaluate(ctx, tree)
	if err != nil {
		if ctx.Err() != nil {
			if _, legacy := options["legacy-timeout-output"]; legacy {
				fmt.Print("1")
				return 1
			}
		}
		fmt.Printf("Error: %s\n", err)
		return 1
	}

	fmt.Println("Output of the above program is:")
	_, pretty := options["pretty"]
	fmt.Println(formatResult(result, pretty))
	return 0
}

// formatResult renders the machine's final value. With -pretty, a tuple
// result is rendered as a brace-wrapped list of its leaf integers (spec.md
// §6); anything else, and every non-pretty result, uses cse.Format.
func formatResult(v cse.Value, pretty bool) string {
	if !pretty {
		return cse.Format(v)
	}
	tuple, ok := v.(*cse.TupleValue)
	if !ok {
		return cse.Format(v)
	}
	var leaves []string
	collectLeafInts(tuple, &leaves)
	return "{" + strings.Join(leaves, ", ") + "}"
}

func collectLeafInts(t *cse.TupleValue, out *[]string) {
	for _, elem := range t.Elements {
		switch e := elem.(type) {
		case *cse.TupleValue:
			collectLeafInts(e, out)
		default:
			*out = append(*out, cse.Format(e))
		}
	}
}

func main() { os.Exit(RpalInterpreter.Run(os.Args, os.Stdout)) }
