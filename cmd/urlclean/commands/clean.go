package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/urlclean/internal/clipboard"
	"github.com/jmylchreest/urlclean/internal/input"
	"github.com/jmylchreest/urlclean/internal/logger"
	"github.com/jmylchreest/urlclean/internal/output"
	"github.com/jmylchreest/urlclean/pkg/cleaner"
)

// cleanOptions holds the resolved flags of the clean command.
type cleanOptions struct {
	URL         string `validate:"required_without_all=File Clipboard,excluded_with=File"`
	File        string `validate:"omitempty,file"`
	Clipboard   bool   `validate:"excluded_with=URL File"`
	Output      string
	Copy        bool
	Compact     bool
	Format      string `validate:"oneof=text json jsonl yaml"`
	InputFormat string `validate:"oneof=lines html"`
}

var validate = validator.New()

func registerCleanFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	// Input sources
	flags.StringP("url", "u", "", "URL to clean")
	flags.StringP("file", "f", "", "file containing URLs (one per line)")
	flags.BoolP("clipboard", "c", false, "clean the URL on the clipboard")
	flags.String("input-format", "lines", "file input format: lines, html (links of a saved page or bookmarks export)")

	// Output settings
	flags.StringP("output", "o", "", "write cleaned URLs to this file instead of stdout")
	flags.Bool("copy", false, "copy the result to the clipboard")
	flags.String("format", "text", "report format: text, json, jsonl, yaml")
	flags.Bool("compact", false, "write JSON reports on a single line")

	cmd.MarkFlagsMutuallyExclusive("url", "file", "clipboard")
	cmd.MarkFlagsOneRequired("url", "file", "clipboard")

	_ = viper.BindPFlag("format", flags.Lookup("format"))
	_ = viper.BindPFlag("input_format", flags.Lookup("input-format"))
	_ = viper.BindPFlag("compact", flags.Lookup("compact"))
}

func runCleanCommand(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	opts := cleanOptions{
		Compact:     viper.GetBool("compact"),
		Format:      viper.GetString("format"),
		InputFormat: viper.GetString("input_format"),
	}
	opts.URL, _ = flags.GetString("url")
	opts.File, _ = flags.GetString("file")
	opts.Clipboard, _ = flags.GetBool("clipboard")
	opts.Output, _ = flags.GetString("output")
	opts.Copy, _ = flags.GetBool("copy")

	return runClean(opts, cmd.OutOrStdout())
}

// runClean reads the input, cleans every URL and writes the results.
func runClean(opts cleanOptions, stdout io.Writer) error {
	if err := opts.validate(); err != nil {
		return err
	}

	urls, err := opts.readInput()
	if err != nil {
		return err
	}
	log := logger.With("source", opts.source())

	c := cleaner.New(nil)
	log.Debug("URLs to process",
		"count", len(urls),
		"tracking_names", c.Rules().NameCount(),
		"tracking_patterns", len(c.Rules().Patterns()),
	)

	reports := make([]output.Report, len(urls))
	cleaned := make([]string, len(urls))
	var changed, removed, failed int64
	for i, u := range urls {
		res := c.Inspect(u)
		reports[i] = output.NewReport(res)
		cleaned[i] = res.Cleaned
		if res.Changed() {
			changed++
		}
		if res.Err != nil {
			failed++
		}
		removed += int64(len(res.Removed))
	}
	log.Debug("cleaning complete",
		"urls", humanize.Comma(int64(len(urls))),
		"changed", humanize.Comma(changed),
		"parameters_removed", humanize.Comma(removed),
	)
	if failed > 0 {
		log.Warn("some URLs were left unchanged", "count", humanize.Comma(failed))
	}

	pretty := output.WithPretty(!opts.Compact)
	if opts.Output != "" {
		if err := writeOutputFile(opts.Output, opts.fileFormat(), reports, pretty); err != nil {
			return err
		}
	} else if err := writeReports(stdout, output.Format(opts.Format), reports, pretty); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	if opts.Copy && len(cleaned) > 0 {
		if err := clipboard.Write(clipboard.JoinForCopy(cleaned)); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Result copied to clipboard!")
	}

	return nil
}

func (o cleanOptions) validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatValidationError(e))
	}
	return fmt.Errorf("invalid options: %s", strings.Join(msgs, "; "))
}

func (o cleanOptions) readInput() ([]string, error) {
	switch {
	case o.URL != "":
		return input.FromArgument(o.URL)
	case o.File != "":
		return input.FromFile(o.File, input.FileFormat(o.InputFormat))
	default:
		return input.FromClipboard()
	}
}

func (o cleanOptions) source() string {
	switch {
	case o.URL != "":
		return "argument"
	case o.File != "":
		return o.File
	default:
		return "clipboard"
	}
}

// fileFormat is the format used for --output: plain text reports become a
// list of cleaned URLs.
func (o cleanOptions) fileFormat() output.Format {
	if o.Format == string(output.FormatText) {
		return output.FormatLines
	}
	return output.Format(o.Format)
}

func writeReports(w io.Writer, format output.Format, reports []output.Report, opts ...output.WriterOption) error {
	writer, err := output.NewWriter(w, format, opts...)
	if err != nil {
		return err
	}
	if err := writer.WriteAll(reports); err != nil {
		return err
	}
	return writer.Close()
}

func writeOutputFile(path string, format output.Format, reports []output.Report, opts ...output.WriterOption) error {
	f, err := os.Create(path) //#nosec G304 -- CLI tool writes to user-specified output file
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if err := writeReports(f, format, reports, opts...); err != nil {
		_ = f.Close()
		return fmt.Errorf("write output file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file %s: %w", path, err)
	}

	if fi, err := os.Stat(path); err == nil {
		logger.Info("results written", "path", path, "urls", len(reports), "size", humanize.Bytes(uint64(fi.Size())))
	}
	return nil
}

// formatValidationError creates a human-readable error message.
func formatValidationError(e validator.FieldError) string {
	flag := flagName(e.Field())
	switch e.Tag() {
	case "required_without_all":
		return "one of --url, --file or --clipboard is required"
	case "excluded_with":
		return fmt.Sprintf("--%s cannot be combined with another input source", flag)
	case "file":
		return fmt.Sprintf("--%s: %q is not a readable file", flag, e.Value())
	case "oneof":
		return fmt.Sprintf("--%s must be one of: %s", flag, strings.ReplaceAll(e.Param(), " ", ", "))
	default:
		return fmt.Sprintf("--%s failed validation '%s'", flag, e.Tag())
	}
}

// flagName maps an option field to its command-line flag.
func flagName(field string) string {
	switch field {
	case "InputFormat":
		return "input-format"
	default:
		return strings.ToLower(field)
	}
}
