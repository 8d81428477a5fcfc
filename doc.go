/*
Package htmltext extracts the main text of an HTML document and discards the
boilerplate around it: navigation, scripts, styles and markup noise. Text of
selected elements, such as the document title, is collected separately even
when those elements sit inside discarded regions.

The document is split into chunks, each bounded by the element that encloses
a run of text. Every chunk gets a weight from its text density, link density
and punctuation density; chunks at or above the configured minimum weight make
up the content.

Basic Usage:

    import "github.com/mrjoshuak/htmltext"

    // Create a new extractor
    ext := htmltext.New()

    // Extract from HTML string
    result, err := ext.ExtractFromHTML(htmlString, nil)
    if err != nil {
        // Handle error
    }

    fmt.Println(result.SavedTags["title"])
    fmt.Println(result.Content)

Advanced Usage with Options:

    ext := htmltext.New(
        htmltext.WithTagsToSave("title", "h1"),
        htmltext.WithMinAllowedWeight(1.5),
        htmltext.WithRemoveSelectors("nav", ".sidebar"),
        htmltext.WithTimeout(time.Second*10),
    )

    // Extract from a reader (like a file or HTTP response)
    result, err := ext.ExtractFromReader(reader, nil)

Stateful Usage:

A Parser runs one document at a time and keeps the outcome until the next
Feed:

    p, err := htmltext.NewParser(htmltext.DefaultOptions())
    if err != nil {
        // Handle error
    }
    if err := p.Feed(htmlString); err != nil {
        // Handle error
    }
    fmt.Println(p.Content(), p.SavedTags())

A Parser is not safe for concurrent use. ExtractAll processes many documents
in parallel with one parser per document.
*/
package htmltext
