package epub

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"
)

// OPF represents the parsed Open Package Format document
type OPF struct {
	Metadata      Metadata
	Manifest      map[string]ManifestItem // id -> item
	ManifestOrder []string                // manifest ids in document order
	Spine         []SpineItem
	NCXPath       string
}

// opfPackage represents the OPF XML structure
type opfPackage struct {
	XMLName  xml.Name    `xml:"package"`
	Version  string      `xml:"version,attr"`
	Metadata opfMetadata `xml:"metadata"`
	Manifest opfManifest `xml:"manifest"`
	Spine    opfSpine    `xml:"spine"`
}

// opfMetadata represents the metadata section
type opfMetadata struct {
	Title    []string  `xml:"http://purl.org/dc/elements/1.1/ title"`
	Creator  []string  `xml:"http://purl.org/dc/elements/1.1/ creator"`
	Language []string  `xml:"http://purl.org/dc/elements/1.1/ language"`
	Meta     []opfMeta `xml:"meta"`
}

// opfMeta represents a meta element (EPUB 2.0 and 3.0)
type opfMeta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

// opfManifest represents the manifest section
type opfManifest struct {
	Items []opfManifestItem `xml:"item"`
}

// opfManifestItem represents an item in the manifest
type opfManifestItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr"`
}

// opfSpine represents the spine section
type opfSpine struct {
	Toc      string       `xml:"toc,attr"`
	ItemRefs []opfItemRef `xml:"itemref"`
}

// opfItemRef represents an itemref in the spine
type opfItemRef struct {
	IDRef  string `xml:"idref,attr"`
	Linear string `xml:"linear,attr"`
}

// ParseOPF parses an OPF file content and returns the OPF structure.
// opfDir is the directory containing the OPF file (e.g., "OEBPS");
// manifest hrefs are joined against it so they address container files
// directly.
func ParseOPF(content []byte, opfDir string) (*OPF, error) {
	var pkg opfPackage
	if err := xml.Unmarshal(content, &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse OPF XML: %w", err)
	}

	opf := &OPF{
		Manifest: make(map[string]ManifestItem),
	}

	// Metadata (use first occurrence of each element)
	if len(pkg.Metadata.Title) > 0 {
		opf.Metadata.Title = pkg.Metadata.Title[0]
	}
	if len(pkg.Metadata.Creator) > 0 {
		opf.Metadata.Creator = pkg.Metadata.Creator[0]
	}
	if len(pkg.Metadata.Language) > 0 {
		opf.Metadata.Language = pkg.Metadata.Language[0]
	}
	for _, m := range pkg.Metadata.Meta {
		if m.Name == "cover" && m.Content != "" {
			opf.Metadata.CoverID = m.Content
			break
		}
	}

	// Parse manifest
	for _, item := range pkg.Manifest.Items {
		manifestItem := ManifestItem{
			ID:        item.ID,
			Href:      joinPath(opfDir, item.Href),
			MediaType: item.MediaType,
		}

		// Parse properties (space-separated)
		if item.Properties != "" {
			manifestItem.Properties = strings.Fields(item.Properties)
		}

		opf.Manifest[item.ID] = manifestItem
		opf.ManifestOrder = append(opf.ManifestOrder, item.ID)
	}

	// Parse spine
	for _, itemRef := range pkg.Spine.ItemRefs {
		opf.Spine = append(opf.Spine, SpineItem{
			IDRef:  itemRef.IDRef,
			Linear: itemRef.Linear != "no",
		})
	}

	// Resolve NCX path from toc attribute
	if pkg.Spine.Toc != "" {
		if ncxItem, ok := opf.Manifest[pkg.Spine.Toc]; ok {
			opf.NCXPath = ncxItem.Href
		}
	}

	return opf, nil
}

// joinPath joins the OPF directory with a relative href and normalizes
// the result to forward slashes
func joinPath(dir, href string) string {
	if dir == "" || dir == "." {
		return filepath.ToSlash(filepath.Clean(href))
	}
	return filepath.ToSlash(filepath.Clean(filepath.Join(dir, href)))
}
