package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/delaneyj/rerender/element"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

func builtinPairs() []element.Pair {
	return []element.Pair{
		{Name: "null vs false", Prev: nil, Next: element.Empty{}},
		{Name: "null vs composite", Prev: nil, Next: element.New("a")},
		{Name: "string vs number", Prev: element.Text("x"), Next: element.Number(5)},
		{Name: "string vs composite", Prev: element.Text("x"), Next: element.New("a")},
		{Name: "key ignored", Prev: element.New("a").WithKey("k1"), Next: element.New("a").WithKey("k2")},
		{Name: "types differ", Prev: element.New("a"), Next: element.New("b")},
		{Name: "composite vs empty", Prev: element.New("a"), Next: element.Empty{}},
	}
}

func identity(ctx context.Context, cmd *cli.Command) error {
	log := loggerFor(cmd)

	pairs := builtinPairs()
	if path := cmd.String(fileKey); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening pairs: %w", err)
		}
		defer f.Close()

		if pairs, err = element.DecodePairs(f); err != nil {
			return err
		}
		log.Debug().Str("file", path).Int("pairs", len(pairs)).Msg("loaded pairs")
	}

	renderIdentity(os.Stdout, pairs)
	return nil
}

func renderIdentity(w io.Writer, pairs []element.Pair) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"case", "prev", "next", "should update"})
	for _, p := range pairs {
		table.Append([]string{
			p.Name,
			element.String(p.Prev),
			element.String(p.Next),
			strconv.FormatBool(element.ShouldUpdate(p.Prev, p.Next)),
		})
	}
	table.Render()
}
