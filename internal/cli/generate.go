package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"doxy2man/config"
	"doxy2man/internal/adapter/fs"
	"doxy2man/internal/adapter/troff"
	"doxy2man/internal/usecase"
)

func runGenerate(cmd *cobra.Command, args []string) error {
	c := mergedConfig(cmd)

	files, err := expandInputs(c.Input.XMLDir, args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no XML files matched %s", strings.Join(args, " "))
	}

	params := usecase.Params{
		Troff:              buildOptions(c),
		PrintAscii:         flagPrintAscii,
		PrintMan:           flagPrintMan,
		OutputDir:          c.Output.Dir,
		HeaderFile:         c.Input.HeaderFile,
		UseHeaderCopyright: c.Page.UseHeaderCopyright,
		HeaderSrcDir:       c.Input.HeaderSrcDir,
	}

	locator := fs.NewXMLDir(c.Input.XMLDir)
	uc := usecase.NewGenerateUseCase(locator, params, os.Stdout, logger)

	var bar *progressbar.ProgressBar
	if !flagQuiet && !flagPrintAscii && len(files) > 1 {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowBytes(false),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription("[cyan]Converting[reset]"),
			progressbar.OptionOnCompletion(func() {
				fmt.Println()
			}),
		)
	}

	result := uc.Run(files, func(done, total int) {
		if bar != nil {
			bar.Set(done)
		}
	})

	if !flagQuiet {
		fmt.Printf("\nConversion complete:\n")
		fmt.Printf("  Files processed: %d\n", len(files)-result.FilesFailed)
		fmt.Printf("  Pages written:   %d\n", result.PagesWritten)
		if result.PagesSkipped > 0 {
			fmt.Printf("  Pages skipped:   %d (general page, pass -g to print)\n", result.PagesSkipped)
		}
		if len(result.Errors) > 0 {
			fmt.Printf("\nWarnings:\n")
			for _, e := range result.Errors {
				fmt.Printf("  - %s\n", e)
			}
		}
	}

	if result.FilesFailed == len(files) {
		return fmt.Errorf("no input file could be processed")
	}
	return nil
}

// buildOptions turns the merged config into the formatting options the
// renderer consumes. Date and year default to today when left unset, and
// the synthesized copyright line is dropped entirely without a company
// name.
func buildOptions(c *config.Config) troff.Options {
	now := time.Now()

	date := c.Page.Date
	if date == "" {
		date = fmt.Sprintf("%d-%d-%d", now.Year(), int(now.Month()), now.Day())
	}

	year := c.Page.Year
	if year == 0 {
		year = now.Year()
	}

	copyright := ""
	if !c.Page.UseHeaderCopyright && c.Page.Company != "" {
		copyright = fmt.Sprintf("Copyright (C) %d-%d %s, All rights reserved",
			c.Page.StartYear, year, c.Page.Company)
	}

	return troff.Options{
		PrintParams:  c.Output.PrintParams,
		PrintGeneral: c.Output.PrintGeneral,
		Section:      c.Output.Section,
		Header:       c.Page.Header,
		Package:      c.Page.Package,
		HeaderPrefix: c.Input.HeaderPrefix,
		Date:         date,
		Copyright:    copyright,
	}
}

// expandInputs resolves the positional arguments against the XML
// directory, expanding globs like '*_8h.xml'.
func expandInputs(xmlDir string, args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		pattern := arg
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(xmlDir, pattern)
		}
		if !strings.ContainsAny(arg, "*?[{") {
			files = append(files, pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files, nil
}
