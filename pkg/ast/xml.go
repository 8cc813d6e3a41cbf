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

package ast

import (
	"encoding/xml"

	"naive.systems/tokenflow/pkg/token"
)

// xmlToken mirrors the <token> element from spec §6's dump format
// contract. Matches the struct-tag style of misra/checker_integration/
// cppcheck's CppCheckXMLReport family: plain field tags, optional
// attributes only populated when non-empty.
type xmlToken struct {
	XMLName  xml.Name    `xml:"token"`
	Str      string      `xml:"str,attr"`
	VarID    uint32      `xml:"varId,attr,omitempty"`
	Variable string      `xml:"variable,attr,omitempty"`
	Function string      `xml:"function,attr,omitempty"`
	Children []*xmlToken `xml:",omitempty"`
}

type xmlAST struct {
	XMLName   xml.Name `xml:"ast"`
	FileIndex int      `xml:"fileIndex,attr"`
	LineNr    int      `xml:"linenr,attr"`
	Col       int      `xml:"col,attr"`
	Root      *xmlToken
}

func toXMLToken(tok *token.Token) *xmlToken {
	if tok == nil {
		return nil
	}
	x := &xmlToken{Str: tok.Str(), VarID: tok.VarID()}
	if v := tok.Variable(); v != nil {
		x.Variable = v.Name
	}
	if f := tok.Function(); f != nil {
		x.Function = f.Name
	}
	if op1 := toXMLToken(tok.AstOperand1()); op1 != nil {
		x.Children = append(x.Children, op1)
	}
	if op2 := toXMLToken(tok.AstOperand2()); op2 != nil {
		x.Children = append(x.Children, op2)
	}
	return x
}

// AstStringXML renders ast as the XML fragment described in spec §6.
func AstStringXML(ast *token.Token) (string, error) {
	if ast == nil {
		return "", nil
	}
	doc := xmlAST{
		FileIndex: ast.FileIndex,
		LineNr:    ast.LineNumber,
		Col:       ast.Column,
		Root:      toXMLToken(ast),
	}
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
