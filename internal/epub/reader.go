package epub

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Reader provides access to EPUB file contents: the linear reading
// order (flow), the resource manifest, book metadata, and raw bytes of
// chapters and resources.
type Reader struct {
	zipReader *zip.ReadCloser
	files     map[string]*zip.File
	opfPath   string
	opf       *OPF
	titles    map[string]string // chapter href -> NCX label
}

// container.xml structure
type container struct {
	Rootfiles struct {
		Rootfile []struct {
			FullPath  string `xml:"full-path,attr"`
			MediaType string `xml:"media-type,attr"`
		} `xml:"rootfile"`
	} `xml:"rootfiles"`
}

var (
	ErrInvalidMimetype    = errors.New("invalid mimetype: must be 'application/epub+zip'")
	ErrMimetypeCompressed = errors.New("mimetype must not be compressed")
	ErrMimetypeNotFound   = errors.New("mimetype file not found")
	ErrContainerNotFound  = errors.New("META-INF/container.xml not found")
	ErrOPFPathNotFound    = errors.New("OPF path not found in container.xml")
	ErrItemNotFound       = errors.New("manifest item not found")
)

// Open opens an EPUB file, validates its structure and parses the
// package document. A missing or broken NCX is tolerated: chapters then
// carry no titles.
func Open(path string) (*Reader, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open EPUB: %w", err)
	}

	reader := &Reader{
		zipReader: zr,
		files:     make(map[string]*zip.File),
		titles:    make(map[string]string),
	}

	// Build file map with normalized paths
	for _, f := range zr.File {
		name := normalizePath(f.Name)
		reader.files[name] = f
	}

	// Validate mimetype
	if err := reader.validateMimetype(); err != nil {
		zr.Close()
		return nil, err
	}

	// Parse container.xml to get OPF path
	if err := reader.parseContainer(); err != nil {
		zr.Close()
		return nil, err
	}

	opfData, err := reader.ReadFile(reader.opfPath)
	if err != nil {
		zr.Close()
		return nil, fmt.Errorf("failed to read OPF: %w", err)
	}

	opfDir := ncxDirOf(reader.opfPath)
	opf, err := ParseOPF(opfData, opfDir)
	if err != nil {
		zr.Close()
		return nil, err
	}
	reader.opf = opf

	if opf.NCXPath != "" {
		if ncxData, err := reader.ReadFile(opf.NCXPath); err == nil {
			if titles, err := ParseNCXTitles(ncxData, ncxDirOf(opf.NCXPath)); err == nil {
				reader.titles = titles
			}
		}
	}

	return reader, nil
}

// Close closes the EPUB reader
func (r *Reader) Close() error {
	return r.zipReader.Close()
}

// Metadata returns the book metadata from the OPF.
func (r *Reader) Metadata() Metadata {
	return r.opf.Metadata
}

// Manifest returns the resource manifest keyed by item id.
func (r *Reader) Manifest() map[string]ManifestItem {
	return r.opf.Manifest
}

// ManifestOrder returns manifest ids in package document order.
func (r *Reader) ManifestOrder() []string {
	return r.opf.ManifestOrder
}

// Flow returns the linear reading order: one entry per linear spine
// itemref whose manifest item is an (X)HTML content document.
func (r *Reader) Flow() []FlowEntry {
	var flow []FlowEntry
	for _, s := range r.opf.Spine {
		if !s.Linear {
			continue
		}
		item, ok := r.opf.Manifest[s.IDRef]
		if !ok || !isContentDocument(item.MediaType) {
			continue
		}
		flow = append(flow, FlowEntry{
			ID:    item.ID,
			Href:  item.Href,
			Title: r.titles[item.Href],
		})
	}
	return flow
}

// ReadChapter returns the raw bytes of a chapter by manifest id.
func (r *Reader) ReadChapter(id string) ([]byte, error) {
	return r.readItem(id)
}

// ReadResource returns the raw bytes of a manifest resource (e.g. an
// image) by manifest id.
func (r *Reader) ReadResource(id string) ([]byte, error) {
	return r.readItem(id)
}

func (r *Reader) readItem(id string) ([]byte, error) {
	item, ok := r.opf.Manifest[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return r.ReadFile(item.Href)
}

// ReadFile reads the contents of a file from the EPUB by container path
func (r *Reader) ReadFile(path string) ([]byte, error) {
	path = normalizePath(path)
	f, ok := r.files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// validateMimetype checks that the mimetype file exists and is valid
func (r *Reader) validateMimetype() error {
	f, ok := r.files["mimetype"]
	if !ok {
		return ErrMimetypeNotFound
	}

	// Check that mimetype is not compressed
	if f.Method != zip.Store {
		return ErrMimetypeCompressed
	}

	// Read and validate content
	content, err := r.ReadFile("mimetype")
	if err != nil {
		return fmt.Errorf("failed to read mimetype: %w", err)
	}

	if string(content) != "application/epub+zip" {
		return ErrInvalidMimetype
	}

	return nil
}

// parseContainer parses container.xml to extract OPF path
func (r *Reader) parseContainer() error {
	content, err := r.ReadFile("META-INF/container.xml")
	if err != nil {
		return ErrContainerNotFound
	}

	var c container
	if err := xml.Unmarshal(content, &c); err != nil {
		return fmt.Errorf("failed to parse container.xml: %w", err)
	}

	// Find the OPF file path
	for _, rf := range c.Rootfiles.Rootfile {
		if rf.MediaType == "application/oebps-package+xml" || rf.MediaType == "" {
			r.opfPath = normalizePath(rf.FullPath)
			return nil
		}
	}

	// If no media-type match, use the first one
	if len(c.Rootfiles.Rootfile) > 0 {
		r.opfPath = normalizePath(c.Rootfiles.Rootfile[0].FullPath)
		return nil
	}

	return ErrOPFPathNotFound
}

// isContentDocument checks if a media type indicates an (X)HTML file
func isContentDocument(mediaType string) bool {
	return strings.Contains(mediaType, "html")
}

// normalizePath normalizes file paths (removes ./ prefix)
func normalizePath(path string) string {
	path = strings.TrimPrefix(path, "./")
	return path
}
