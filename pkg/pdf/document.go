package pdf

import (
	"errors"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrDecode is wrapped by every error caused by an unreadable or corrupt source file
var ErrDecode = errors.New("pdf decode error")

// OpenOption is a function that modifies how a document is opened
type OpenOption func(*openConfig)

type openConfig struct {
	Backend  Backend
	Password string
}

// WithBackend forces a single parsing library instead of the fallback chain
func WithBackend(backend Backend) OpenOption {
	return func(c *openConfig) {
		c.Backend = backend
	}
}

// WithPassword sets the password for encrypted documents
func WithPassword(password string) OpenOption {
	return func(c *openConfig) {
		c.Password = password
	}
}

func newOpenConfig(opts ...OpenOption) *openConfig {
	config := &openConfig{Backend: BackendAuto}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

// OpenPassword returns the password set by opts, if any
func OpenPassword(opts ...OpenOption) string {
	return newOpenConfig(opts...).Password
}

type opener func(filepath, password string) (Document, error)

// fallbackChain lists the backends tried by BackendAuto, most accurate first
var fallbackChain = []Backend{BackendLedongthuc, BackendDslipak, BackendPDFCPU}

var openers = map[Backend]opener{
	BackendLedongthuc: OpenWithLedongthuc,
	BackendDslipak:    OpenWithDslipak,
	BackendPDFCPU:     OpenWithPDFCPU,
}

// Open opens a PDF file and returns a Document. With the default BackendAuto
// each library is tried in turn and the first one that decodes every page wins.
func Open(filepath string, opts ...OpenOption) (Document, error) {
	config := newOpenConfig(opts...)

	if _, err := os.Stat(filepath); err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	if config.Backend != BackendAuto {
		open, ok := openers[config.Backend]
		if !ok {
			return nil, fmt.Errorf("unknown backend %q", config.Backend)
		}
		return open(filepath, config.Password)
	}

	var errs []error
	for _, backend := range fallbackChain {
		doc, err := openers[backend](filepath, config.Password)
		if err == nil {
			return doc, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// ParseBackend validates a backend name
func ParseBackend(name string) (Backend, error) {
	b := Backend(name)
	if b == BackendAuto {
		return b, nil
	}
	if _, ok := openers[b]; ok {
		return b, nil
	}
	return "", fmt.Errorf("unknown backend %q", name)
}

// Inspect reads and validates the document with pdfcpu and returns its
// info dictionary metadata without decoding page content
func Inspect(filepath string, password string) (Metadata, error) {
	ctx, err := readPDFCPUContext(filepath, password)
	if err != nil {
		return Metadata{}, err
	}
	return pdfcpuMetadata(ctx), nil
}

func readPDFCPUContext(filepath, password string) (*model.Context, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
		conf.OwnerPW = password
	}

	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: pdfcpu: %v", ErrDecode, err)
	}
	return ctx, nil
}

func pdfcpuMetadata(ctx *model.Context) Metadata {
	return Metadata{
		Title:     ctx.Title,
		Author:    ctx.Author,
		Subject:   ctx.Subject,
		Creator:   ctx.Creator,
		Producer:  ctx.Producer,
		PageCount: ctx.PageCount,
	}
}

// recoverDecode turns a panic raised by a parsing library while reading the
// document structure into an ErrDecode error
func recoverDecode(backend Backend, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %s: panic: %v", ErrDecode, backend, r)
	}
}

func pageAt(pages []Page, index int) (Page, error) {
	if index < 0 || index >= len(pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(pages))
	}
	return pages[index], nil
}
