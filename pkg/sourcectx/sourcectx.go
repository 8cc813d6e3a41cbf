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

// Package sourcectx extracts charset-aware source context around a
// diagnostic line for rendering alongside a pkg/results.Result.
// Generalizes naive.systems/analyzer's rulesets.GetCode/convertCharset off
// MISRA-specific message formatting.
package sourcectx

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

func convertCharset(b []byte, charset string) string {
	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		glog.Warning("ianaindex.MIME.Encoding err, treating source as UTF-8")
		return string(b)
	}
	if e == nil {
		glog.Warning("charset not found, treating source as UTF-8")
		return string(b)
	}
	reader := transform.NewReader(bytes.NewReader(b), e.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		glog.Warning("charset decode failed, treating source as UTF-8")
		return string(b)
	}
	return string(decoded)
}

// GetCode returns the lines [line-context, line+context] of path, each
// prefixed with its line number, the offending line additionally marked
// with "> ". charset "utf8" (or "") skips decoding.
func GetCode(path string, line int32, context int32, charset string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lower := line - context
	upper := line + context
	var lineCount int32
	var output string
	for scanner.Scan() {
		lineCount++
		if lineCount < lower {
			continue
		} else if lineCount > upper {
			break
		}
		var text string
		if charset == "" || charset == "utf8" {
			text = scanner.Text()
		} else {
			text = convertCharset(scanner.Bytes(), charset)
		}
		if lineCount == line {
			output += fmt.Sprintf("> %d| %s\n", lineCount, text)
		} else {
			output += fmt.Sprintf("%d| %s\n", lineCount, text)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return output, nil
}
