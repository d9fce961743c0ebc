package usecase

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"doxy2man/internal/adapter/doxygen"
	"doxy2man/internal/adapter/fs"
	"doxy2man/internal/adapter/troff"
	"doxy2man/internal/domain"
	"doxy2man/internal/port"
)

// Params is the resolved configuration for one generation run.
type Params struct {
	Troff      troff.Options
	PrintAscii bool
	PrintMan   bool
	OutputDir  string
	// HeaderFile, when non-empty, overrides the include file name that
	// would otherwise be read from each source's compoundname.
	HeaderFile string
	// UseHeaderCopyright scans the original header under HeaderSrcDir
	// for a copyright line instead of using Troff.Copyright.
	UseHeaderCopyright bool
	HeaderSrcDir       string
}

// Result tallies one run over a batch of input files.
type Result struct {
	PagesWritten int
	PagesSkipped int
	FilesFailed  int
	Errors       []string
}

// GenerateUseCase runs the build → resolve → emit pipeline once per
// input file. Failures are confined to the unit they occur in: a parse
// failure skips that file, an output failure skips that page.
type GenerateUseCase struct {
	locator port.StructureLocator
	params  Params
	stdout  io.Writer
	log     zerolog.Logger
}

// NewGenerateUseCase creates a generate use case. stdout receives the
// ASCII dumps when Params.PrintAscii is set.
func NewGenerateUseCase(locator port.StructureLocator, params Params, stdout io.Writer, log zerolog.Logger) *GenerateUseCase {
	return &GenerateUseCase{
		locator: locator,
		params:  params,
		stdout:  stdout,
		log:     log,
	}
}

// Run processes each input file to completion in order. progress, if
// non-nil, is called after each file.
func (u *GenerateUseCase) Run(paths []string, progress func(done, total int)) *Result {
	result := &Result{}

	for i, path := range paths {
		if err := u.processFile(path, result); err != nil {
			result.FilesFailed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", path, err))
			u.log.Error().Str("file", path).Err(err).Msg("skipping input file")
		}
		if progress != nil {
			progress(i+1, len(paths))
		}
	}
	return result
}

// processFile runs the full pipeline for one compound-documentation
// source. A returned error means the file produced nothing.
func (u *GenerateUseCase) processFile(path string, result *Result) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	builder := doxygen.NewBuilder(doxygen.NewEventSource(f))
	compound, err := builder.ReadCompound(u.params.HeaderFile)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	structures := doxygen.Resolve(compound.Structures, u.locator, u.log)

	opts := u.params.Troff
	opts.HeaderFile = compound.Header
	if u.params.UseHeaderCopyright {
		opts.Copyright = u.headerCopyright(compound.Header)
	}

	for _, page := range compound.Pages {
		if u.params.PrintAscii {
			troff.RenderText(u.stdout, page, structures)
		}
		if !u.params.PrintMan {
			continue
		}
		if page.Name == opts.HeaderFile && !opts.PrintGeneral {
			result.PagesSkipped++
			continue
		}
		if err := u.writePage(page, compound.Pages, structures, opts); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", page.Name, err))
			u.log.Error().Str("page", page.Name).Err(err).Msg("skipping page")
			continue
		}
		result.PagesWritten++
	}
	return nil
}

// writePage emits one man page file under the output directory.
func (u *GenerateUseCase) writePage(page domain.Page, all []domain.Page, structures map[string]domain.Structure, opts troff.Options) error {
	name := fmt.Sprintf("%s.%d", page.Name, opts.Section)
	f, err := os.Create(filepath.Join(u.params.OutputDir, name))
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	troff.RenderPage(w, page, all, structures, opts)
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// headerCopyright fetches the copyright line from the original header
// source; when none can be found the page simply gets no copyright
// section.
func (u *GenerateUseCase) headerCopyright(header string) string {
	path := filepath.Join(u.params.HeaderSrcDir, header)
	line, err := fs.CopyrightFromHeader(path)
	if err != nil {
		u.log.Debug().Str("header", path).Err(err).Msg("no header copyright found")
		return ""
	}
	return line
}
