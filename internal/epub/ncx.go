package epub

import (
	"encoding/xml"
	"path/filepath"
	"strings"
)

// ncxDocument represents the NCX navigation XML structure
type ncxDocument struct {
	XMLName xml.Name      `xml:"ncx"`
	NavMap  []ncxNavPoint `xml:"navMap>navPoint"`
}

type ncxNavPoint struct {
	Label   string        `xml:"navLabel>text"`
	Content ncxContent    `xml:"content"`
	Points  []ncxNavPoint `xml:"navPoint"`
}

type ncxContent struct {
	Src string `xml:"src,attr"`
}

// ParseNCXTitles parses an NCX document and returns a map from a
// fragment-free content path to its navigation label. When several nav
// points reference the same file (fragments within one chapter), the
// first label wins. ncxDir is the directory containing the NCX file.
func ParseNCXTitles(content []byte, ncxDir string) (map[string]string, error) {
	var doc ncxDocument
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}

	titles := make(map[string]string)
	collectNavTitles(doc.NavMap, ncxDir, titles)
	return titles, nil
}

func collectNavTitles(points []ncxNavPoint, dir string, titles map[string]string) {
	for _, p := range points {
		path := splitFragment(p.Content.Src)
		if path != "" {
			resolved := joinPath(dir, path)
			if _, seen := titles[resolved]; !seen {
				titles[resolved] = strings.TrimSpace(p.Label)
			}
		}
		collectNavTitles(p.Points, dir, titles)
	}
}

// splitFragment strips the fragment identifier from a content src
func splitFragment(src string) string {
	if i := strings.IndexByte(src, '#'); i >= 0 {
		return src[:i]
	}
	return src
}

// ncxDirOf returns the directory of an NCX path within the container
func ncxDirOf(ncxPath string) string {
	dir := filepath.ToSlash(filepath.Dir(ncxPath))
	if dir == "." {
		return ""
	}
	return dir
}
