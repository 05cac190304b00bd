// Copyright (c) 2025 Tablepad
// Licensed under the MIT License. See LICENSE file in the project root for details.

package ui

import (
	"encoding/csv"
	"errors"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoTable is returned when a viewer page holds no tabular data.
var ErrNoTable = errors.New("no table found")

// RenderResource turns a fetched viewer page into a text table. HTML pages are
// read from their first <table>; anything else is parsed as CSV.
func RenderResource(body string) (string, error) {
	var (
		rows [][]string
		err  error
	)
	if strings.Contains(strings.ToLower(body), "<table") {
		rows, err = htmlRows(body)
	} else {
		rows, err = csvRows(body)
	}
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", ErrNoTable
	}
	return renderRows(rows), nil
}

func renderRows(rows [][]string) string {
	var b strings.Builder
	table := tablewriter.NewWriter(&b)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(rows[0])
	table.AppendBulk(normalizeWidth(rows[1:], len(rows[0])))
	table.Render()
	return b.String()
}

// normalizeWidth pads or truncates rows to n cells.
func normalizeWidth(rows [][]string, n int) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		switch {
		case len(r) == n:
			out = append(out, r)
		case len(r) > n:
			out = append(out, r[:n])
		default:
			padded := make([]string, n)
			copy(padded, r)
			out = append(out, padded)
		}
	}
	return out
}

func csvRows(body string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(body))
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func htmlRows(body string) ([][]string, error) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	table := find(doc, atom.Table)
	if table == nil {
		return nil, ErrNoTable
	}

	var rows [][]string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
					cells = append(cells, strings.TrimSpace(textOf(c)))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return rows, nil
}

func find(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, a); found != nil {
			return found
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textOf(c))
	}
	return b.String()
}
