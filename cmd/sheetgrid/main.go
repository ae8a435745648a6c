// Package main provides the CLI entry point for sheetgrid.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/address"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/grid"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/models"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/output"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/parser"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/store"
	"github.com/ukaji3/sheetgrid-go/pkg/sheetgrid/value"
)

var (
	sheetName  string
	strict     bool
	pretty     bool
	logLevel   string
	dateLayout string

	outputPath  string
	valuesJSON  string
	cutTo       string
	scanFrom    string
	sheetsDir   string
	withKinds   bool
	tableParams = parser.DefaultTableParams()
)

var log = logrus.New()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetgrid",
		Short: "Read, paste, cut and navigate spreadsheet ranges",
		Long: `sheetgrid reads and edits rectangular ranges of xlsx workbooks
and reports navigation results as JSON. Legacy xls files can be read
and saved as xlsx.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %s", logLevel)
			}
			log.SetOutput(os.Stderr)
			log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			log.SetLevel(level)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&sheetName, "sheet", "s", "", "Sheet name (default: first sheet)")
	flags.BoolVar(&strict, "strict", false, "Fail when the sheet does not exist instead of using the first sheet")
	flags.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	flags.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	flags.StringVar(&dateLayout, "date-layout", value.DefaultDateLayout, "Layout used to display dates")

	rootCmd.AddCommand(
		newGetCmd(),
		newCellCmd(),
		newPasteCmd(),
		newCutCmd(),
		newScanToEndCmd(),
		newScanCmd(),
		newColumnCmd(),
		newExtractCmd(),
	)
	return rootCmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [file] [range[,range...]]",
		Short: "Print the decoded values of one or more ranges",
		Long:  "Print the decoded values of each range in a comma-separated list, one JSON view per line.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := openWorkbook(args[0])
			if err != nil {
				return err
			}
			ranges, err := parser.ParseRangeList(args[1])
			if err != nil {
				return err
			}
			for _, r := range ranges {
				sheet, err := sheetgrid.ResolveSheet(wb, targetSheet(r), rangeOptions()...)
				if err != nil {
					return err
				}
				values, err := sheetgrid.ReadRange(sheet, r.Start, r.End, codec())
				if err != nil {
					return err
				}
				if err := printRange(cmd, args[0], sheet.Name(), r, values); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newCellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cell [file] [address]",
		Short: "Print the decoded value of one cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := openWorkbook(args[0])
			if err != nil {
				return err
			}
			addr, err := address.Parse(args[1])
			if err != nil {
				return err
			}
			v, err := sheetgrid.GetCell(wb, sheetName, addr, rangeOptions()...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func newPasteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paste [file] [start]",
		Short: "Paste a JSON array of rows at a cell and save the workbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var values [][]string
			if err := json.Unmarshal([]byte(valuesJSON), &values); err != nil {
				return fmt.Errorf("invalid --values: %w", err)
			}
			target, err := saveTarget(args[0])
			if err != nil {
				return err
			}
			wb, err := openWorkbook(args[0])
			if err != nil {
				return err
			}
			start, err := address.Parse(args[1])
			if err != nil {
				return err
			}
			if err := sheetgrid.PasteRange(wb, sheetName, start, values, rangeOptions()...); err != nil {
				return err
			}
			return store.Save(wb, target, storeOptions()...)
		},
	}
	cmd.Flags().StringVar(&valuesJSON, "values", "", `Rows to paste as JSON, e.g. [["a","1"],["b","2"]]`)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output xlsx path (default: overwrite input)")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}

func newCutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cut [file] [range]",
		Short: "Cut a range, optionally paste it elsewhere, and save the workbook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := saveTarget(args[0])
			if err != nil {
				return err
			}
			wb, err := openWorkbook(args[0])
			if err != nil {
				return err
			}
			r, err := parser.ParseRange(args[1])
			if err != nil {
				return err
			}
			sheet, err := sheetgrid.ResolveSheet(wb, targetSheet(r), rangeOptions()...)
			if err != nil {
				return err
			}
			values, err := sheetgrid.TakeRange(sheet, r.Start, r.End, codec())
			if err != nil {
				return err
			}
			if cutTo != "" {
				to, err := address.Parse(cutTo)
				if err != nil {
					return fmt.Errorf("invalid --to: %w", err)
				}
				sheetgrid.WriteRange(sheet, to, values, codec())
			}
			if err := store.Save(wb, target, storeOptions()...); err != nil {
				return err
			}
			return printRange(cmd, args[0], sheet.Name(), r, values)
		},
	}
	cmd.Flags().StringVar(&cutTo, "to", "", "Paste the cut values starting at this cell")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output xlsx path (default: overwrite input)")
	return cmd
}

func newScanToEndCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan-to-end [file] [direction]",
		Short: "Print the last occupied cell reached from a start cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := openWorkbook(args[0])
			if err != nil {
				return err
			}
			dir, err := address.ParseDirection(args[1])
			if err != nil {
				return err
			}
			start, err := address.Parse(scanFrom)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			sheet, err := sheetgrid.ResolveSheet(wb, sheetName, rangeOptions()...)
			if err != nil {
				return err
			}
			end := sheetgrid.ScanSheetToEnd(sheet, dir, start)
			return printLocation(cmd, sheet.Name(), end)
		},
	}
	cmd.Flags().StringVar(&scanFrom, "from", sheetgrid.DefaultScanStart.String(), "Start cell")
	return cmd
}

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [start] [direction] [count]",
		Short: "Print the cell count steps away from start",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := address.Parse(args[0])
			if err != nil {
				return err
			}
			dir, err := address.ParseDirection(args[1])
			if err != nil {
				return err
			}
			count, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid count: %s", args[2])
			}
			return printLocation(cmd, "", sheetgrid.Scan(dir, start, count))
		},
	}
}

func newColumnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "column [name|number]",
		Short: "Convert between column names and 0-based column numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if n, err := strconv.Atoi(args[0]); err == nil {
				if n < 0 {
					return fmt.Errorf("invalid column number: %d", n)
				}
				fmt.Fprintln(cmd.OutOrStdout(), address.ColumnNumberToName(n))
				return nil
			}
			n, err := address.ColumnNameToNumber(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

func newExtractCmd() *cobra.Command {
	tableParams = parser.DefaultTableParams()
	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Extract structured data from a workbook as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := openWorkbook(args[0])
			if err != nil {
				return err
			}
			opts := parser.ExtractOptions{
				Codec:        codec(),
				IncludeKinds: withKinds,
				Tables:       tableParams,
			}
			data, err := parser.ExtractWorkbook(wb, filepath.Base(args[0]), opts)
			if err != nil {
				return fmt.Errorf("extraction failed: %w", err)
			}

			// Serialize to JSON
			jsonData, err := output.ToJSON(data, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}

			// Write output
			if outputPath != "" {
				if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			} else if sheetsDir == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			}

			// Write per-sheet files
			if sheetsDir != "" {
				if err := writeSheetFiles(data, sheetsDir); err != nil {
					return fmt.Errorf("failed to write sheet files: %w", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	cmd.Flags().BoolVar(&withKinds, "kinds", false, "Include the value kind of every cell")
	cmd.Flags().Float64Var(&tableParams.DensityMin, "table-density", tableParams.DensityMin, "Minimum occupied ratio of a table candidate")
	cmd.Flags().IntVar(&tableParams.MinNonemptyCells, "table-min-cells", tableParams.MinNonemptyCells, "Minimum occupied cells of a table candidate")
	return cmd
}

func writeSheetFiles(wb *models.WorkbookData, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for name, sheet := range wb.Sheets {
		jsonData, err := output.SheetToJSON(&sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheetFileName(name)+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}

// sheetFileName replaces path separators, which sheet names may contain.
func sheetFileName(name string) string {
	return strings.NewReplacer("/", "_", `\`, "_").Replace(name)
}

func openWorkbook(path string) (*grid.Workbook, error) {
	// Validate input file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return store.Open(path, storeOptions()...)
}

// saveTarget returns where an edited workbook is written. xls inputs cannot
// be overwritten in place.
func saveTarget(input string) (string, error) {
	target := outputPath
	if target == "" {
		target = input
	}
	if ext := strings.ToLower(filepath.Ext(target)); ext != ".xlsx" && ext != ".xlsm" {
		return "", fmt.Errorf("cannot save to %s: use --output with an .xlsx path", target)
	}
	return target, nil
}

// targetSheet prefers a sheet named in the range reference over --sheet.
func targetSheet(r parser.Range) string {
	if r.Sheet != "" {
		return r.Sheet
	}
	return sheetName
}

func codec() *value.Codec {
	return value.NewCodec(value.WithDateLayout(dateLayout))
}

func rangeOptions() []sheetgrid.Option {
	opts := []sheetgrid.Option{
		sheetgrid.WithCodec(codec()),
		sheetgrid.WithLogger(log),
	}
	if strict {
		opts = append(opts, sheetgrid.WithStrictSheet())
	}
	return opts
}

func storeOptions() []store.Option {
	return []store.Option{
		store.WithLogger(log),
		store.WithCodec(codec()),
	}
}

func printRange(cmd *cobra.Command, path, sheet string, r parser.Range, values [][]string) error {
	view := models.RangeView{
		BookName:  filepath.Base(path),
		SheetName: sheet,
		Ref:       parser.Range{Start: r.Start, End: r.End}.String(),
		Area:      r.Area(),
		Values:    values,
	}
	jsonData, err := output.RangeToJSON(&view, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}

func printLocation(cmd *cobra.Command, sheet string, addr address.Address) error {
	loc := models.Location{
		SheetName: sheet,
		Cell:      addr.String(),
		Row:       addr.Row,
		Column:    addr.Column + 1,
	}
	jsonData, err := output.LocationToJSON(&loc, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	return nil
}
