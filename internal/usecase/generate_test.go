package usecase

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"doxy2man/internal/adapter/fs"
	"doxy2man/internal/adapter/troff"
)

const mainXML = `<?xml version="1.0" encoding="UTF-8"?>
<doxygen>
<compounddef id="qbtest_8h" kind="file">
  <compoundname>qbtest.h</compoundname>
  <sectiondef kind="func">
    <memberdef kind="function" id="qbtest_8h_1start">
      <type>int</type>
      <definition>int qb_test_start</definition>
      <argsstring>(struct qb_conn *conn, int count)</argsstring>
      <name>qb_test_start</name>
      <param>
        <type><ref refid="structqb__conn" kindref="compound">struct qb_conn</ref> *</type>
        <declname>conn</declname>
      </param>
      <param>
        <type>int</type>
        <declname>count</declname>
      </param>
      <briefdescription><para>Start a test run.</para></briefdescription>
      <detaileddescription>
        <para>Runs the configured scenario to completion.</para>
        <para><parameterlist kind="param">
          <parameteritem>
            <parameternamelist><parametername>conn</parametername></parameternamelist>
            <parameterdescription><para>connection to use</para></parameterdescription>
          </parameteritem>
        </parameterlist></para>
        <para><simplesect kind="return"><para>0 on success</para></simplesect></para>
      </detaileddescription>
    </memberdef>
  </sectiondef>
  <briefdescription><para>Test harness library.</para></briefdescription>
  <detaileddescription><para>Drives scenarios against a live cluster.</para></detaileddescription>
</compounddef>
</doxygen>`

const structXML = `<?xml version="1.0" encoding="UTF-8"?>
<doxygen>
<compounddef id="structqb__conn" kind="struct">
  <compoundname>qb_conn</compoundname>
  <briefdescription><para>One live connection.</para></briefdescription>
  <detaileddescription></detaileddescription>
  <sectiondef kind="public-attrib">
    <memberdef kind="variable" id="structqb__conn_1fd">
      <type>int</type>
      <name>fd</name>
      <argsstring></argsstring>
      <briefdescription></briefdescription>
      <detaileddescription><para>socket descriptor</para></detaileddescription>
    </memberdef>
  </sectiondef>
</compounddef>
</doxygen>`

// writeInputs lays out an xml directory in the shape doxygen produces
// and returns its path plus the main file path.
func writeInputs(t *testing.T, withStruct bool) (xmlDir, mainPath string) {
	t.Helper()
	xmlDir = t.TempDir()
	mainPath = filepath.Join(xmlDir, "qbtest_8h.xml")
	if err := os.WriteFile(mainPath, []byte(mainXML), 0o644); err != nil {
		t.Fatal(err)
	}
	if withStruct {
		if err := os.WriteFile(filepath.Join(xmlDir, "structqb__conn.xml"), []byte(structXML), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return xmlDir, mainPath
}

func testParams(outDir string) Params {
	return Params{
		Troff: troff.Options{
			PrintParams: true,
			Section:     3,
			Header:      "Programmer's Manual",
			Package:     "libqb",
			Date:        "2026-08-26",
		},
		PrintMan:  true,
		OutputDir: outDir,
	}
}

func TestRun_WritesManPages(t *testing.T) {
	xmlDir, mainPath := writeInputs(t, true)
	outDir := t.TempDir()

	uc := NewGenerateUseCase(fs.NewXMLDir(xmlDir), testParams(outDir), os.Stdout, zerolog.Nop())
	result := uc.Run([]string{mainPath}, nil)

	if result.FilesFailed != 0 {
		t.Fatalf("unexpected failures: %v", result.Errors)
	}
	if result.PagesWritten != 1 {
		t.Errorf("expected 1 page written, got %d", result.PagesWritten)
	}
	if result.PagesSkipped != 1 {
		t.Errorf("expected general page skipped, got %d", result.PagesSkipped)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "qb_test_start.3"))
	if err != nil {
		t.Fatalf("expected man page on disk: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, ".TH QB_TEST_START 3") {
		t.Error("expected page title")
	}
	if !strings.Contains(out, ".B #include <qbtest.h>") {
		t.Error("expected include taken from compoundname")
	}
	if !strings.Contains(out, "struct qb_conn {") {
		t.Error("expected referenced structure resolved and rendered")
	}
	if !strings.Contains(out, "/* socket descriptor */") {
		t.Error("expected member comment from structure source")
	}
	if !strings.Contains(out, ".SH RETURN VALUE") {
		t.Error("expected return section")
	}
}

func TestRun_GeneralPageOnRequest(t *testing.T) {
	xmlDir, mainPath := writeInputs(t, false)
	outDir := t.TempDir()
	params := testParams(outDir)
	params.Troff.PrintGeneral = true

	uc := NewGenerateUseCase(fs.NewXMLDir(xmlDir), params, os.Stdout, zerolog.Nop())
	result := uc.Run([]string{mainPath}, nil)

	if result.PagesWritten != 2 {
		t.Fatalf("expected function and general page, got %d (%v)", result.PagesWritten, result.Errors)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "qbtest.h.3"))
	if err != nil {
		t.Fatalf("expected general page on disk: %v", err)
	}
	if !strings.Contains(string(data), "qbtest.h \\- Test harness library.") {
		t.Error("expected file brief on general page")
	}
}

func TestRun_MissingStructureSourceTolerated(t *testing.T) {
	xmlDir, mainPath := writeInputs(t, false)
	outDir := t.TempDir()

	uc := NewGenerateUseCase(fs.NewXMLDir(xmlDir), testParams(outDir), os.Stdout, zerolog.Nop())
	result := uc.Run([]string{mainPath}, nil)

	if result.FilesFailed != 0 {
		t.Fatalf("missing structure source must not fail the file: %v", result.Errors)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "qb_test_start.3"))
	if err != nil {
		t.Fatalf("expected man page on disk: %v", err)
	}
	if strings.Contains(string(data), ".SH STRUCTURES") {
		t.Error("unresolvable structure must leave no section behind")
	}
}

func TestRun_BadFileDoesNotAbortBatch(t *testing.T) {
	xmlDir, mainPath := writeInputs(t, false)
	outDir := t.TempDir()
	badPath := filepath.Join(xmlDir, "broken_8h.xml")
	if err := os.WriteFile(badPath, []byte("<doxygen><compounddef><name>cut"), 0o644); err != nil {
		t.Fatal(err)
	}

	uc := NewGenerateUseCase(fs.NewXMLDir(xmlDir), testParams(outDir), os.Stdout, zerolog.Nop())

	var calls int
	result := uc.Run([]string{badPath, mainPath}, func(done, total int) {
		calls++
		if total != 2 {
			t.Errorf("expected total 2, got %d", total)
		}
	})

	if result.FilesFailed != 1 {
		t.Errorf("expected 1 failed file, got %d", result.FilesFailed)
	}
	if len(result.Errors) == 0 {
		t.Error("expected failure recorded")
	}
	if result.PagesWritten != 1 {
		t.Errorf("expected good sibling still processed, got %d pages", result.PagesWritten)
	}
	if calls != 2 {
		t.Errorf("expected progress after each file, got %d calls", calls)
	}
}

func TestRun_HeaderOverrideAndCopyright(t *testing.T) {
	xmlDir, mainPath := writeInputs(t, false)
	outDir := t.TempDir()
	srcDir := t.TempDir()
	header := "/*\n * Copyright (C) 2010-2020 Example Corp\n */\n"
	if err := os.WriteFile(filepath.Join(srcDir, "custom.h"), []byte(header), 0o644); err != nil {
		t.Fatal(err)
	}

	params := testParams(outDir)
	params.HeaderFile = "custom.h"
	params.UseHeaderCopyright = true
	params.HeaderSrcDir = srcDir

	uc := NewGenerateUseCase(fs.NewXMLDir(xmlDir), params, os.Stdout, zerolog.Nop())
	if result := uc.Run([]string{mainPath}, nil); result.FilesFailed != 0 {
		t.Fatalf("unexpected failures: %v", result.Errors)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "qb_test_start.3"))
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, ".B #include <custom.h>") {
		t.Error("expected overridden header in include line")
	}
	if !strings.Contains(out, "Copyright (C) 2010-2020 Example Corp") {
		t.Error("expected copyright scanned from header source")
	}
}

func TestRun_AsciiDump(t *testing.T) {
	xmlDir, mainPath := writeInputs(t, false)
	params := testParams(t.TempDir())
	params.PrintAscii = true
	params.PrintMan = false

	var buf strings.Builder
	uc := NewGenerateUseCase(fs.NewXMLDir(xmlDir), params, &buf, zerolog.Nop())
	result := uc.Run([]string{mainPath}, nil)

	if result.PagesWritten != 0 {
		t.Errorf("ascii mode must write no files, got %d", result.PagesWritten)
	}
	if !strings.Contains(buf.String(), "FUNCTION int qb_test_start") {
		t.Errorf("expected ascii dump on stdout, got %q", buf.String())
	}
}
