package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lexibook/lexibook/internal/dict"
	"github.com/lexibook/lexibook/internal/ingest"
	"github.com/lexibook/lexibook/internal/vocab"
)

type handlers struct {
	dataDir string
	vocab   *vocab.Store
	dict    *dict.Dictionary
}

// listBooks returns the identifiers of fully processed books. A
// missing index means no books yet, not an error.
func (h *handlers) listBooks(c *gin.Context) {
	index, err := ingest.LoadIndex(filepath.Join(h.dataDir, "index.json"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read book index"})
		return
	}
	c.JSON(http.StatusOK, index.IDs())
}

func (h *handlers) bookMetadata(c *gin.Context) {
	book := c.Param("book")
	if !safeName(book) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book identifier"})
		return
	}

	path := filepath.Join(h.dataDir, book, "metadata.json")
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "metadata not found"})
		return
	}
	c.File(path)
}

func (h *handlers) bookPage(c *gin.Context) {
	book := c.Param("book")
	if !safeName(book) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book identifier"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page index"})
		return
	}

	path := filepath.Join(h.dataDir, book, "pages", ingest.PageFileName(index))
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return
	}
	c.File(path)
}

func (h *handlers) bookImage(c *gin.Context) {
	book := c.Param("book")
	file := strings.TrimPrefix(c.Param("file"), "/")
	if !safeName(book) || !safeName(file) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image path"})
		return
	}

	path := filepath.Join(h.dataDir, book, "images", file)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}
	c.File(path)
}

func (h *handlers) vocabList(c *gin.Context) {
	c.JSON(http.StatusOK, h.vocab.Words())
}

func (h *handlers) vocabToggle(c *gin.Context) {
	var body struct {
		Word string `json:"word"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Word == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid word"})
		return
	}

	added, err := h.vocab.Toggle(body.Word)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update vocabulary"})
		return
	}

	status := "removed"
	if added {
		status = "added"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "word": body.Word})
}

// translateWord returns the dictionary entry for one word. Unknown
// words get the not-found placeholder, never an error status.
func (h *handlers) translateWord(c *gin.Context) {
	c.JSON(http.StatusOK, h.dict.Lookup(c.Param("word")))
}

func (h *handlers) translateBatch(c *gin.Context) {
	var body struct {
		Words *[]string `json:"words"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Words == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "words must be an array"})
		return
	}
	c.JSON(http.StatusOK, h.dict.LookupBatch(*body.Words))
}

// safeName rejects path components that could escape the data root.
func safeName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\") && !strings.Contains(name, "..")
}
