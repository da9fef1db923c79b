// Package parser reads workbook cells through excelize and recovers
// merge topology directly from the OOXML container.
package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
)

// ErrPartNotFound indicates a required part is missing from the container.
var ErrPartNotFound = errors.New("part not found in workbook container")

// ErrSheetPartNotFound indicates the named sheet has no worksheet part.
var ErrSheetPartNotFound = errors.New("worksheet part not found")

const (
	workbookPart     = "xl/workbook.xml"
	workbookRelsPart = "xl/_rels/workbook.xml.rels"

	worksheetRelType = "/relationships/worksheet"
)

// readZipFile returns the content of the named part.
func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	f, err := r.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// resolveRelativePath resolves a relationship target against the directory
// of the part that owns the relationship. Absolute targets start at the
// package root.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return path.Clean(path.Join(baseDir, target))
}

// scanElements calls visit for every start element of data. parent is the
// local name of the enclosing element, empty at the root.
func scanElements(data []byte, visit func(parent string, se xml.StartElement) error) error {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var stack []string
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			parent := ""
			if n := len(stack); n > 0 {
				parent = stack[n-1]
			}
			if err := visit(parent, t); err != nil {
				return err
			}
			stack = append(stack, t.Name.Local)
		case xml.EndElement:
			if n := len(stack); n > 0 {
				stack = stack[:n-1]
			}
		}
	}
}

// attr returns the value of the attribute with the given local name.
func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// parseWorkbookSheets maps relationship ids to sheet names.
func parseWorkbookSheets(data []byte) (map[string]string, error) {
	sheets := make(map[string]string)
	err := scanElements(data, func(parent string, se xml.StartElement) error {
		if parent != "sheets" || se.Name.Local != "sheet" {
			return nil
		}
		if name, rID := attr(se, "name"), attr(se, "id"); name != "" && rID != "" {
			sheets[rID] = name
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sheets, nil
}

// parseWorkbookRels maps sheet names to worksheet part paths.
func parseWorkbookRels(data []byte, sheets map[string]string) (map[string]string, error) {
	parts := make(map[string]string)
	err := scanElements(data, func(_ string, se xml.StartElement) error {
		if se.Name.Local != "Relationship" || !strings.HasSuffix(attr(se, "Type"), worksheetRelType) {
			return nil
		}
		if name, ok := sheets[attr(se, "Id")]; ok {
			parts[name] = resolveRelativePath(attr(se, "Target"), "xl")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return parts, nil
}

// sheetPartPath locates the worksheet part for sheetName.
func sheetPartPath(r *zip.Reader, sheetName string) (string, error) {
	workbookXML, err := readZipFile(r, workbookPart)
	if err != nil {
		return "", err
	}
	sheets, err := parseWorkbookSheets(workbookXML)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", workbookPart, err)
	}

	relsXML, err := readZipFile(r, workbookRelsPart)
	if err != nil {
		return "", err
	}
	parts, err := parseWorkbookRels(relsXML, sheets)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", workbookRelsPart, err)
	}

	partPath, ok := parts[sheetName]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrSheetPartNotFound, sheetName)
	}
	return partPath, nil
}
