package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/composer/internal/core/domain"
)

var convertCmd = &cobra.Command{
	Use:   "convert [value]",
	Short: "Convert a stored message between formats",
	Long: `Convert a stored message value to canonical JSON, legacy markup or
plain text. The source format is detected: canonical JSON first, then
markup, then plain text.

The value is read from the argument, or from stdin when it is piped.

Examples:
  composer convert '<p>hi <b>there</b></p>'
  composer convert --to markup < message.json
  composer convert --detect '[{"type":"paragraph","children":[{"text":"x"}]}]'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

var (
	convertTo     string
	convertDetect bool
	convertCopy   bool
)

func init() {
	convertCmd.Flags().StringVarP(&convertTo, "to", "t", "plain", "target format: canonical, markup or plain")
	convertCmd.Flags().BoolVar(&convertDetect, "detect", false, "print the detected source format and exit")
	convertCmd.Flags().BoolVar(&convertCopy, "copy", false, "also copy the result to the clipboard")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if conversionService == nil {
		return errors.New("conversion service not configured")
	}

	value, err := readValue(cmd, args)
	if err != nil {
		return err
	}

	if convertDetect {
		fmt.Fprintln(cmd.OutOrStdout(), conversionService.Detect(value))
		return nil
	}

	to, err := domain.ParseFormat(convertTo)
	if err != nil {
		return err
	}

	out, err := conversionService.Convert(value, to)
	if err != nil {
		return fmt.Errorf("failed to convert: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)

	if convertCopy {
		if clipboardPort == nil {
			return errors.New("clipboard not available")
		}
		if err := clipboardPort.WriteText(out); err != nil {
			return fmt.Errorf("failed to copy: %w", err)
		}
	}
	return nil
}

// readValue returns the value argument, or stdin when it is not a terminal.
// A single trailing newline from stdin is dropped.
func readValue(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errors.New("no value given: pass it as an argument or pipe it on stdin")
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	value := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(value, "\r"), nil
}
