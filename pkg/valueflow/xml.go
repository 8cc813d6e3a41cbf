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

package valueflow

import (
	"encoding/xml"
	"fmt"

	"naive.systems/tokenflow/pkg/token"
)

type xmlValue struct {
	XMLName       xml.Name `xml:"value"`
	IntValue      *int64   `xml:"intvalue,attr,omitempty"`
	FloatValue    *float64 `xml:"floatvalue,attr,omitempty"`
	ConditionLine int      `xml:"condition-line,attr,omitempty"`
	Known         bool     `xml:"known,attr,omitempty"`
	Possible      bool     `xml:"possible,attr,omitempty"`
	Inconclusive  bool     `xml:"inconclusive,attr,omitempty"`
}

type xmlValues struct {
	XMLName xml.Name    `xml:"values"`
	ID      string      `xml:"id,attr"`
	Value   []*xmlValue `xml:"value"`
}

type xmlValueFlow struct {
	XMLName xml.Name     `xml:"valueflow"`
	Values  []*xmlValues `xml:"values"`
}

func toXMLValue(v *Value) *xmlValue {
	x := &xmlValue{
		Known:        v.Kind == Known,
		Possible:     v.Kind == Possible,
		Inconclusive: v.Kind == Inconclusive,
	}
	switch v.ValueType {
	case Int, ContainerSize, BufferSize:
		iv := v.IntValue
		x.IntValue = &iv
	case Float:
		fv := v.FloatValue
		x.FloatValue = &fv
	}
	if v.Condition != nil {
		x.ConditionLine = v.Condition.LineNumber
	}
	return x
}

// DumpValueFlow renders every token in [start, end] that carries values as
// the <valueflow> fragment described in spec §6, one <values id="..."> per
// token keyed by the token's address.
func DumpValueFlow(start, end *token.Token) (string, error) {
	doc := xmlValueFlow{}
	for t := start; t != nil; t = t.Next() {
		vs := values(t)
		if len(vs) > 0 {
			entry := &xmlValues{ID: fmt.Sprintf("%p", t)}
			for _, v := range vs {
				entry.Value = append(entry.Value, toXMLValue(v))
			}
			doc.Values = append(doc.Values, entry)
		}
		if t == end {
			break
		}
	}
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
