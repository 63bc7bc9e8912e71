package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// No maintained Go library reads pptx, but the format is just a zip of
// DrawingML parts: every visible run sits in an <a:t> element inside
// ppt/slides/slideN.xml.

var slidePattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

func extractPPTX(path string) (string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pptx: %w", err)
	}
	defer archive.Close()

	type slideFile struct {
		number int
		file   *zip.File
	}
	var slides []slideFile
	for _, f := range archive.File {
		m := slidePattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slides = append(slides, slideFile{number: n, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].number < slides[j].number })

	var text strings.Builder
	for _, slide := range slides {
		content, err := slideText(slide.file)
		if err != nil {
			// Same policy as pdf pages: a broken slide doesn't sink the deck
			logger.Error("Error parsing slide", "slide", slide.number, "error", err)
			continue
		}
		text.WriteString(content)
	}
	return text.String(), nil
}

func slideText(f *zip.File) (string, error) {
	reader, err := f.Open()
	if err != nil {
		return "", err
	}
	defer reader.Close()

	var text strings.Builder
	decoder := xml.NewDecoder(reader)
	inRun := false
	for {
		token, err := decoder.Token()
		if err != nil {
			break //io.EOF or malformed tail, keep what we have
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inRun = true
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inRun = false
				text.WriteString("\n")
			}
		case xml.CharData:
			if inRun {
				text.Write(t)
			}
		}
	}
	return text.String(), nil
}
