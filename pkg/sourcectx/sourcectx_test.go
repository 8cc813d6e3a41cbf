/*
tokenflow - A static analysis token-stream and value-flow engine
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package sourcectx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "src.c")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestGetCodeMarksOffendingLine(t *testing.T) {
	path := writeTemp(t, "int a;\nint b;\nint c;\nint d;\nint e;\n")

	out, err := GetCode(path, 3, 1, "utf8")
	if err != nil {
		t.Fatalf("GetCode: %v", err)
	}
	if !strings.Contains(out, "> 3| int c;") {
		t.Fatalf("GetCode output missing marked offending line, got:\n%s", out)
	}
	if !strings.Contains(out, "2| int b;") || !strings.Contains(out, "4| int d;") {
		t.Fatalf("GetCode output missing context lines, got:\n%s", out)
	}
	if strings.Contains(out, "int a;") || strings.Contains(out, "int e;") {
		t.Fatalf("GetCode output should not include lines outside the context window, got:\n%s", out)
	}
}

func TestGetCodeMissingFile(t *testing.T) {
	if _, err := GetCode(filepath.Join(t.TempDir(), "missing.c"), 1, 0, "utf8"); err == nil {
		t.Fatal("GetCode on a missing file should return an error")
	}
}
