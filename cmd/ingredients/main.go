// ingredients formats recipe ingredient lines from the command line.
//
// Usage:
//
//	ingredients format --scale 2 --metric "1 1/2 cups flour" "2 tbsp sugar"
//	cat ingredients.txt | ingredients format --scale 0.5
//	ingredients units
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"recipehub/internal/ingredient"
)

func main() {
	app := newApp(os.Stdin, os.Stdout)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	return &cli.App{
		Name:   "ingredients",
		Usage:  "Scale and convert recipe ingredient lines",
		Reader: in,
		Writer: out,
		Commands: []*cli.Command{
			formatCommand(),
			unitsCommand(),
		},
	}
}

func formatCommand() *cli.Command {
	return &cli.Command{
		Name:      "format",
		Usage:     "Format ingredient lines given as arguments, or one per line on stdin",
		ArgsUsage: "[LINE...]",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:    "scale",
				Aliases: []string{"s"},
				Value:   1,
				Usage:   "Batch multiplier",
			},
			&cli.BoolFlag{
				Name:    "metric",
				Aliases: []string{"m"},
				Usage:   "Convert cups, spoons, ounces and pounds to metric",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print a JSON array instead of one line per ingredient",
			},
		},
		Action: runFormat,
	}
}

func runFormat(c *cli.Context) error {
	scale := c.Float64("scale")
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return errors.New("scale must be a positive number")
	}

	lines := c.Args().Slice()
	if len(lines) == 0 {
		var err error
		lines, err = readLines(c.App.Reader)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	formatted := ingredient.FormatAll(lines, scale, c.Bool("metric"))

	out := c.App.Writer
	if c.Bool("json") {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		return enc.Encode(formatted)
	}
	for _, line := range formatted {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func unitsCommand() *cli.Command {
	return &cli.Command{
		Name:  "units",
		Usage: "List the units converted by --metric",
		Action: func(c *cli.Context) error {
			w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "UNIT\tMETRIC")
			for _, u := range ingredient.Units() {
				fmt.Fprintf(w, "%s\t%s %s\n", u.Name, strconv.FormatFloat(u.Factor, 'f', -1, 64), u.Target)
			}
			return w.Flush()
		},
	}
}
