package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/spf13/cobra"
	"github.com/willibrandon/gocordova/cmd/gocordova/cli"
	"github.com/willibrandon/gocordova/cmd/gocordova/output"
	"github.com/willibrandon/gocordova/observability"
)

// NewQueryCommand creates the "query" command
func NewQueryCommand(env *cli.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "query <xpath>",
		Short: "Evaluate an XPath expression against config.xml",
		Long: `Evaluate an XPath 1.0 expression against the migrated document and print
the result. Elements are printed as XML, attributes and text as their
value, and numeric, string or boolean expressions as a single value.

The Cordova namespace is bound to the cdv prefix.

Examples:
  gocordova query '//plugin/@name'
  gocordova query 'count(//platform)'
  gocordova query '//platform[@name="ios"]/preference'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), env, args[0])
		},
	}
}

func runQuery(ctx context.Context, env *cli.Runtime, expression string) error {
	start := time.Now()
	expr, err := xpath.CompileWithNS(expression, map[string]string{"cdv": "http://cordova.apache.org/ns/1.0"})
	if err != nil {
		return fmt.Errorf("invalid xpath %q: %w", expression, err)
	}

	ws, err := openWorkspace(ctx, env)
	if err != nil {
		return err
	}

	ctx, span := observability.StartQuerySpan(ctx, expression)
	matches, err := evaluate(ws, expr)
	if err == nil {
		observability.SetAttributes(ctx, observability.AttrMatchCount.Int(len(matches)))
	}
	observability.EndSpanWithError(span, err)
	if err != nil {
		return err
	}

	if jsonOutput(env) {
		return output.WriteJSON(env.Console.Out(), output.QueryOutput{
			SchemaVersion: output.CurrentSchemaVersion,
			Expression:    expression,
			Matches:       matches,
			ElapsedMs:     output.MeasureElapsed(start),
		})
	}
	for _, m := range matches {
		env.Console.Println(m)
	}
	if len(matches) == 0 {
		env.Console.Detail("no matches")
	}
	return nil
}

// evaluate runs expr over the serialized document. xmlquery builds its own
// read-only tree, so queries see exactly what would be saved.
func evaluate(ws *workspace, expr *xpath.Expr) ([]string, error) {
	text, err := ws.cfg.XML()
	if err != nil {
		return nil, err
	}
	doc, err := xmlquery.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("parse %s for query: %w", ws.path, err)
	}

	matches := []string{}
	switch v := expr.Evaluate(xmlquery.CreateXPathNavigator(doc)).(type) {
	case *xpath.NodeIterator:
		for v.MoveNext() {
			nav, ok := v.Current().(*xmlquery.NodeNavigator)
			if !ok {
				matches = append(matches, v.Current().Value())
				continue
			}
			if nav.NodeType() == xpath.ElementNode {
				matches = append(matches, nav.Current().OutputXML(true))
			} else {
				matches = append(matches, nav.Value())
			}
		}
	case float64:
		matches = append(matches, strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		matches = append(matches, strconv.FormatBool(v))
	case string:
		matches = append(matches, v)
	default:
		matches = append(matches, fmt.Sprint(v))
	}
	return matches, nil
}
