package ingest

// MinWordsPerPage is the default token threshold at which a page is
// considered full.
const MinWordsPerPage = 250

// PageWriter persists one finished page at a global page index.
type PageWriter interface {
	WritePage(pageIndex int, blocks []Block) error
}

// Span is the inclusive page range a chapter occupies. A chapter that
// produced no blocks yields End = Start-1 and advances nothing.
type Span struct {
	Start int
	End   int
}

// Paginator packs ordered content blocks into pages. Blocks accumulate
// in a buffer until their token count reaches the threshold, at which
// point the buffer is flushed as one page. A block is never split
// across pages, and a page never spans two chapters: the trailing
// buffer of each chapter is flushed even when under the threshold.
// The page index runs contiguously across the whole book.
type Paginator struct {
	writer    PageWriter
	threshold int
	pageIndex int
}

// NewPaginator creates a paginator writing through w. A non-positive
// threshold selects MinWordsPerPage.
func NewPaginator(w PageWriter, threshold int) *Paginator {
	if threshold <= 0 {
		threshold = MinWordsPerPage
	}
	return &Paginator{writer: w, threshold: threshold}
}

// PageCount returns the number of pages written so far.
func (p *Paginator) PageCount() int {
	return p.pageIndex
}

// AppendChapter packs one chapter's blocks into pages, carrying the
// global page counter forward, and returns the chapter's span.
func (p *Paginator) AppendChapter(blocks []Block) (Span, error) {
	start := p.pageIndex

	var buffer []Block
	tokens := 0
	for _, b := range blocks {
		buffer = append(buffer, b)
		tokens += TokenCount(b)

		if tokens >= p.threshold {
			if err := p.flush(buffer); err != nil {
				return Span{}, err
			}
			buffer = nil
			tokens = 0
		}
	}

	// Final, possibly under-threshold page
	if len(buffer) > 0 {
		if err := p.flush(buffer); err != nil {
			return Span{}, err
		}
	}

	return Span{Start: start, End: p.pageIndex - 1}, nil
}

func (p *Paginator) flush(blocks []Block) error {
	if err := p.writer.WritePage(p.pageIndex, blocks); err != nil {
		return err
	}
	p.pageIndex++
	return nil
}
