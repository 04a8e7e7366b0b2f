// Package collection turns a multi-page invoice PDF into parsed invoices.
// Pages that do not parse as an invoice are skipped; a document from the
// wrong application or an unreadable one fails the whole load.
package collection

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gstbook/internal/invoice"
	"gstbook/internal/logger"
)

// DefaultCreatorMarker must appear in the PDF Creator entry.
const DefaultCreatorMarker = "Vyaparapp"

// Collection is the set of invoices read from one document, in page order.
type Collection struct {
	name     string
	invoices []*invoice.Invoice
	skipped  []int
}

// Option configures Load.
type Option func(*loader)

type loader struct {
	workers      int
	marker       string
	parseOptions []invoice.Option
	log          zerolog.Logger
}

// Workers parses pages on n goroutines. Values below 1 mean 1.
func Workers(n int) Option {
	return func(l *loader) { l.workers = n }
}

// WithCreatorMarker replaces DefaultCreatorMarker. An empty marker disables
// the check.
func WithCreatorMarker(marker string) Option {
	return func(l *loader) { l.marker = marker }
}

// WithParseOptions passes options to every invoice.Parse call.
func WithParseOptions(opts ...invoice.Option) Option {
	return func(l *loader) { l.parseOptions = append(l.parseOptions, opts...) }
}

type pageJob struct {
	page int
	text string
}

type pageResult struct {
	invoice *invoice.Invoice
	err     error
}

// Load reads every page of src and parses it. Pages that fail to parse,
// including pages whose tax or item lines do not add up, are recorded in
// Skipped and the remaining pages still load.
func Load(ctx context.Context, src PageSource, opts ...Option) (*Collection, error) {
	l := &loader{
		workers: 1,
		marker:  DefaultCreatorMarker,
		log:     logger.ForSource("collection", src.Name()),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.workers < 1 {
		l.workers = 1
	}

	if l.marker != "" && !strings.Contains(src.Creator(), l.marker) {
		return nil, &SourceError{Op: "load", Path: src.Name(), Err: ErrSourceMismatch}
	}

	jobs, err := l.readPages(ctx, src)
	if err != nil {
		return nil, err
	}

	results := l.parsePages(ctx, jobs)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := &Collection{name: src.Name()}
	for i, res := range results {
		page := jobs[i].page
		if res.err != nil {
			l.log.Debug().
				Int("page", page).
				Err(res.err).
				Msg("Skipping page that is not an invoice")
			c.skipped = append(c.skipped, page)
			continue
		}
		c.invoices = append(c.invoices, res.invoice)
	}

	l.log.Info().
		Int("pages", len(jobs)).
		Int("invoices", len(c.invoices)).
		Int("skipped", len(c.skipped)).
		Msg("Loaded invoice collection")

	return c, nil
}

// readPages extracts all page text up front; the pdf reader is not safe for
// concurrent use.
func (l *loader) readPages(ctx context.Context, src PageSource) ([]pageJob, error) {
	n := src.NumPages()
	jobs := make([]pageJob, 0, n)
	for page := 1; page <= n; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := src.PageText(page)
		if err != nil {
			return nil, readError("read page", src.Name(), err)
		}
		jobs = append(jobs, pageJob{page: page, text: text})
	}
	return jobs, nil
}

// parsePages fans pages out to the workers and stores each result at the
// page's index so order is preserved.
func (l *loader) parsePages(ctx context.Context, pages []pageJob) []pageResult {
	jobs := make(chan int, len(pages))
	results := make([]pageResult, len(pages))

	var wg sync.WaitGroup
	for w := 0; w < min(l.workers, max(len(pages), 1)); w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for i := range jobs {
				if err := ctx.Err(); err != nil {
					results[i] = pageResult{err: err}
					continue
				}

				l.log.Trace().
					Int("worker", workerID).
					Int("page", pages[i].page).
					Msg("Worker parsing page")

				inv, err := invoice.Parse(pages[i].text, l.parseOptions...)
				results[i] = pageResult{invoice: inv, err: err}
			}
		}(w)
	}

	for i := range pages {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

func (c *Collection) Name() string { return c.name }

// Invoices returns the parsed invoices in page order.
func (c *Collection) Invoices() []*invoice.Invoice { return c.invoices }

// Skipped returns the page numbers that did not parse.
func (c *Collection) Skipped() []int { return c.skipped }

func (c *Collection) Len() int { return len(c.invoices) }
