// Package segmenter splits a stream of tag and text events into content
// chunks and save chunks without building a tree.
//
// A content chunk starts at the innermost open element the first time
// non-whitespace text appears outside any removed element, and ends when that
// element closes. Elements are written into a content chunk lazily, so
// structural wrappers that never hold text leave no trace. A save chunk starts
// at the outermost open element whose name is in the save set and ends when
// it closes; it is collected even inside removed elements.
package segmenter

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/mrjoshuak/htmltext/internal/errs"
	"github.com/mrjoshuak/htmltext/internal/simplifiers"
	"github.com/mrjoshuak/htmltext/internal/tokenizer"
)

// Config configures a Segmenter.
type Config struct {
	// TagsToSave names elements whose markup is collected into the save map.
	TagsToSave []string
	// TagsToRemove names elements dropped with their whole subtree.
	TagsToRemove []string
	// Format controls whether open tags keep their attributes.
	Format TagFormat
}

// Segmenter is the chunking state machine. It implements tokenizer.Handler.
// A Segmenter is not safe for concurrent use.
type Segmenter struct {
	save   map[string]bool
	remove map[string]bool
	format TagFormat

	stack       []*Tag
	saveDepth   int
	removeDepth int

	chunkBuf  []string
	chunkOpen bool

	saveBuf  []string
	saveOpen bool

	chunks []string
	saved  map[string][]string
}

var _ tokenizer.Handler = (*Segmenter)(nil)

// New creates a Segmenter ready for its first pass.
func New(cfg Config) *Segmenter {
	s := &Segmenter{
		save:   toSet(cfg.TagsToSave),
		remove: toSet(cfg.TagsToRemove),
		format: cfg.Format,
	}
	s.Reset()
	return s
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(strings.TrimSpace(n))] = true
	}
	return set
}

// Reset discards all pass state and outputs. Slices returned by earlier calls
// to Chunks and SavedChunks are not modified.
func (s *Segmenter) Reset() {
	s.stack = nil
	s.saveDepth = 0
	s.removeDepth = 0
	s.chunkBuf = nil
	s.chunkOpen = false
	s.saveBuf = nil
	s.saveOpen = false
	s.chunks = nil
	s.saved = make(map[string][]string)
}

// StartTag handles an opening element.
func (s *Segmenter) StartTag(name string, attrs []html.Attribute) error {
	tag := NewTag(name, attrs)
	s.stack = append(s.stack, tag)

	inSave := s.save[name]
	if inSave {
		s.saveDepth++
	}
	if s.remove[name] {
		s.removeDepth++
	}

	if s.removeDepth == 0 && s.chunkOpen {
		s.chunkBuf = append(s.chunkBuf, tag.StartTagString(s.format))
		tag.written = true
	}

	// Save regions are written eagerly and never consult the written flag,
	// which belongs to the content chunk.
	if s.saveDepth > 0 {
		s.saveBuf = append(s.saveBuf, tag.StartTagString(s.format))
		if !s.saveOpen && inSave {
			tag.isSaveChunkStart = true
			s.saveOpen = true
		}
	}
	return nil
}

// EndTag handles a closing element. The name must match the innermost open
// element; anything else is a malformed-input fault.
func (s *Segmenter) EndTag(name string) error {
	if len(s.stack) == 0 {
		return errs.WrapSegmentationError(errs.ErrUnbalancedTag, "EndTag",
			fmt.Sprintf("</%s> with no open element", name))
	}

	tag := s.stack[len(s.stack)-1]
	if tag.name != name {
		return errs.WrapSegmentationError(errs.ErrUnbalancedTag, "EndTag",
			fmt.Sprintf("</%s> closes <%s>", name, tag.name))
	}
	s.stack = s.stack[:len(s.stack)-1]

	if s.removeDepth == 0 {
		if s.chunkOpen {
			s.chunkBuf = append(s.chunkBuf, tag.EndTagString())
		}
		if tag.isChunkStart {
			s.finishChunk()
		}
	}

	if s.saveDepth > 0 {
		s.saveBuf = append(s.saveBuf, tag.EndTagString())
	}
	// Checked regardless of removal so a <title> inside a removed <head> is kept.
	if tag.isSaveChunkStart {
		s.finishSaveChunk(tag.name)
	}

	if s.save[name] {
		s.saveDepth--
	}
	if s.remove[name] {
		s.removeDepth--
	}
	return nil
}

// Text handles character data. Whitespace-only data never opens a content
// chunk but is kept inside save regions.
func (s *Segmenter) Text(data string) error {
	if strings.TrimSpace(data) == "" {
		if s.saveDepth > 0 {
			s.saveBuf = append(s.saveBuf, s.escape(data))
		}
		return nil
	}

	if len(s.stack) == 0 {
		return errs.WrapSegmentationError(errs.ErrUnbalancedTag, "Text", "text outside any element")
	}

	tag := s.stack[len(s.stack)-1]
	text := s.escape(data)

	if s.removeDepth == 0 {
		if !s.chunkOpen {
			tag.isChunkStart = true
			s.chunkOpen = true
		}
		if !tag.written {
			s.chunkBuf = append(s.chunkBuf, tag.StartTagString(s.format))
			tag.written = true
		}
		s.chunkBuf = append(s.chunkBuf, text)
	}

	if s.saveDepth > 0 {
		s.saveBuf = append(s.saveBuf, text)
	}
	return nil
}

// escape prepares text for chunk markup. Content of raw-text elements is not
// entity-decoded by the tokenizer, so it is written back untouched.
func (s *Segmenter) escape(data string) string {
	if n := len(s.stack); n > 0 && tokenizer.IsRawText(s.stack[n-1].name) {
		return data
	}
	return EscapeText(data)
}

func (s *Segmenter) finishChunk() {
	s.chunks = append(s.chunks, simplifiers.NormalizeWhitespace(strings.Join(s.chunkBuf, "")))
	s.chunkBuf = s.chunkBuf[:0]
	s.chunkOpen = false
}

func (s *Segmenter) finishSaveChunk(name string) {
	s.saved[name] = append(s.saved[name], simplifiers.NormalizeWhitespace(strings.Join(s.saveBuf, "")))
	s.saveBuf = s.saveBuf[:0]
	s.saveOpen = false
}

// Finish ends the pass. Elements still open at the end of input are a
// malformed-input fault.
func (s *Segmenter) Finish() error {
	if n := len(s.stack); n > 0 {
		return errs.WrapSegmentationError(errs.ErrUnbalancedTag, "Finish",
			fmt.Sprintf("%d element(s) left open, innermost <%s>", n, s.stack[n-1].name))
	}
	return nil
}

// Depth returns the number of currently open elements.
func (s *Segmenter) Depth() int { return len(s.stack) }

// Chunks returns the finalized content chunk markup in document order.
func (s *Segmenter) Chunks() []string { return s.chunks }

// SavedChunks returns the finalized save chunk markup keyed by element name.
func (s *Segmenter) SavedChunks() map[string][]string { return s.saved }
