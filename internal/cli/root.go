package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"doxy2man/config"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	flagPrintAscii         bool
	flagPrintMan           bool
	flagPrintParams        bool
	flagPrintGeneral       bool
	flagQuiet              bool
	flagUseHeaderCopyright bool
	flagHeaderFile         string
	flagHeaderPrefix       string
	flagSection            int
	flagStartYear          int
	flagXMLDir             string
	flagDate               string
	flagYear               int
	flagPackage            string
	flagHeader             string
	flagOutputDir          string
	flagHeaderSrcDir       string
	flagCompany            string
)

var rootCmd = &cobra.Command{
	Use:   "doxy2man [flags] <xml-file>...",
	Short: "Generate man pages from doxygen XML files",
	Long: `doxy2man generates API man pages from a doxygen-annotated header file.
Run doxygen on the header first, then point doxy2man at the main XML file
it produced and the directory holding the ancillary files; one man page is
written per documented function.

Doxygen names the main file after the header, usually something like
<header>_8h.xml (e.g. qbipcs_8h.xml). Several XML files, or a glob such as
'*_8h.xml', can be given on one command line.

Example usage:
  doxy2man -m -d ./xml qblog_8h.xml          # write qb*.3 pages to .
  doxy2man -m -P -g -o man3 '*_8h.xml'       # all headers, PARAMS + general page
  doxy2man -a qblog_8h.xml                   # ASCII dump to stdout`,
	Args: cobra.MinimumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(".")
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger = newLogger(cfg.Logging.Level, flagQuiet)
		return nil
	},
	RunE:          runGenerate,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./doxy2man.yaml)")

	flags := rootCmd.Flags()
	flags.BoolVarP(&flagPrintAscii, "print-ascii", "a", false, "print ASCII dump of man page data to stdout")
	flags.BoolVarP(&flagPrintMan, "print-man", "m", false, "write man page files to <output-dir>")
	flags.BoolVarP(&flagPrintParams, "print-params", "P", false, "print PARAMETERS section")
	flags.BoolVarP(&flagPrintGeneral, "print-general", "g", false, "print general man page for the whole header file")
	flags.BoolVarP(&flagQuiet, "quiet", "q", false, "run quietly, no progress info printed")
	flags.BoolVarP(&flagUseHeaderCopyright, "use-header-copyright", "c", false, "use the copyright line from the header file (if one can be found)")
	flags.StringVarP(&flagHeaderFile, "headerfile", "I", "", "set include filename (default taken from XML)")
	flags.StringVarP(&flagHeaderPrefix, "header-prefix", "i", "", "prefix for include file, e.g. qb/")
	flags.IntVarP(&flagSection, "section", "s", 3, "write man pages into section <section>")
	flags.IntVarP(&flagStartYear, "start-year", "S", 2010, "start year to print at end of copyright line")
	flags.StringVarP(&flagXMLDir, "xml-dir", "d", "./xml/", "directory for XML files")
	flags.StringVarP(&flagDate, "manpage-date", "D", "", "date to print at top of man pages (default today)")
	flags.IntVarP(&flagYear, "manpage-year", "Y", 0, "year to print at end of copyright line (default current year)")
	flags.StringVarP(&flagPackage, "package-name", "p", "", "name of package for these man pages")
	flags.StringVarP(&flagHeader, "header-name", "H", "", "header text")
	flags.StringVarP(&flagOutputDir, "output-dir", "o", "", "write all man pages to <dir>")
	flags.StringVarP(&flagHeaderSrcDir, "header-src-dir", "O", "", "directory for the original header files (often needed by -c)")
	flags.StringVarP(&flagCompany, "company", "C", "", "company name in copyright")
}

// mergedConfig applies explicitly set flags over the loaded config.
func mergedConfig(cmd *cobra.Command) *config.Config {
	c := *cfg
	flags := cmd.Flags()

	if flags.Changed("headerfile") {
		c.Input.HeaderFile = flagHeaderFile
	}
	if flags.Changed("header-prefix") {
		c.Input.HeaderPrefix = flagHeaderPrefix
	}
	if flags.Changed("xml-dir") {
		c.Input.XMLDir = flagXMLDir
	}
	if flags.Changed("header-src-dir") {
		c.Input.HeaderSrcDir = flagHeaderSrcDir
	}
	if flags.Changed("output-dir") {
		c.Output.Dir = flagOutputDir
	}
	if flags.Changed("section") {
		c.Output.Section = flagSection
	}
	if flags.Changed("print-params") {
		c.Output.PrintParams = flagPrintParams
	}
	if flags.Changed("print-general") {
		c.Output.PrintGeneral = flagPrintGeneral
	}
	if flags.Changed("package-name") {
		c.Page.Package = flagPackage
	}
	if flags.Changed("header-name") {
		c.Page.Header = flagHeader
	}
	if flags.Changed("company") {
		c.Page.Company = flagCompany
	}
	if flags.Changed("start-year") {
		c.Page.StartYear = flagStartYear
	}
	if flags.Changed("manpage-year") {
		c.Page.Year = flagYear
	}
	if flags.Changed("manpage-date") {
		c.Page.Date = flagDate
	}
	if flags.Changed("use-header-copyright") {
		c.Page.UseHeaderCopyright = flagUseHeaderCopyright
	}
	return &c
}

func newLogger(level string, quiet bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if quiet {
		lvl = zerolog.ErrorLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
