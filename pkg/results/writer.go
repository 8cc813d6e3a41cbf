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

package results

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"

	"github.com/golang/glog"
)

// WriteXML serializes list as XML to path, generalizing the teacher's
// WriteResults (which used proto.Marshal; the core's own persisted format
// is XML per spec §6, so encoding/xml replaces protobuf here rather than
// the other way around).
func WriteXML(list *ResultsList, path string) error {
	out, err := xml.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results xml: %v", err)
	}
	return os.WriteFile(path, out, os.ModePerm)
}

// WriteJSON serializes list as JSON to path, generalizing the teacher's
// WriteJsonResults off protojson onto encoding/json.
func WriteJSON(list *ResultsList, path string) error {
	out, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results json: %v", err)
	}
	return os.WriteFile(path, out, os.ModePerm)
}

// PrintResults logs every result at Info level, sorted, matching the
// teacher's PrintResults.
func PrintResults(list *ResultsList) {
	SortResults(list)
	for _, r := range list.Results {
		glog.Infof("%s:%d: %s", r.Path, r.LineNumber, r.ErrorMessage)
	}
}
