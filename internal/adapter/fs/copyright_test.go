package fs

import (
	"os"
	"path/filepath"
	"testing"
)

const headerWithLicense = `/*
 * Copyright (C) 2010-2020 Example Corp
 *
 * All rights reserved.
 */
#ifndef QB_TEST_H
#define QB_TEST_H
#endif
`

func TestCopyrightFromHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qbtest.h")
	if err := os.WriteFile(path, []byte(headerWithLicense), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := CopyrightFromHeader(path)
	if err != nil {
		t.Fatalf("CopyrightFromHeader: %v", err)
	}
	if got != "Copyright (C) 2010-2020 Example Corp" {
		t.Errorf("unexpected copyright %q", got)
	}
}

func TestCopyrightFromHeader_NoNotice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.h")
	if err := os.WriteFile(path, []byte("#pragma once\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := CopyrightFromHeader(path); err == nil {
		t.Error("expected error when no copyright line present")
	}
}

func TestCopyrightFromHeader_MissingFile(t *testing.T) {
	if _, err := CopyrightFromHeader(filepath.Join(t.TempDir(), "nope.h")); err == nil {
		t.Error("expected error for missing file")
	}
}
