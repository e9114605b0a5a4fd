package manifest

import (
	"errors"
	"path/filepath"

	"github.com/spf13/afero"
)

// Sink receives the records leaving the pipeline.
type Sink interface {
	Push(f *File) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(f *File) error

// Push calls fn(f).
func (fn SinkFunc) Push(f *File) error {
	return fn(f)
}

// Collector is a Sink that keeps every record it receives.
type Collector struct {
	Files []*File
}

// Push appends f.
func (c *Collector) Push(f *File) error {
	c.Files = append(c.Files, f)
	return nil
}

// Pipeline drives one run: every input record is scanned for image
// references and passed through, and a manifest record is emitted at the
// end. Records and the references within them are processed strictly one
// after another.
type Pipeline struct {
	config   Config
	fs       afero.Fs
	log      *Logger
	resolver *Resolver
	scanner  *Scanner
	builder  *Builder
	lastBase string
	flushed  bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFs sets the filesystem images are resolved and read from.
func WithFs(fs afero.Fs) Option {
	return func(p *Pipeline) {
		p.fs = fs
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *Logger) Option {
	return func(p *Pipeline) {
		p.log = l
	}
}

// NewPipeline validates cfg and prepares a run.
func NewPipeline(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	p := &Pipeline{config: cfg}
	for _, opt := range opts {
		opt(p)
	}
	if p.fs == nil {
		p.fs = afero.NewOsFs()
	}
	if p.log == nil {
		p.log = NewLogger(LoggerOptions{Verbose: cfg.Verbose})
	}

	p.resolver = NewResolver(p.fs, cfg.BaseDir)
	p.scanner = NewScanner(p.fs)
	p.builder = NewBuilder(cfg.BaseDir, cfg.AllowedExtensions)
	return p, nil
}

// Config returns the effective configuration.
func (p *Pipeline) Config() Config {
	return p.config
}

// Transform processes a single record. Records without contents pass
// through; streamed records are rejected with an ErrStreamNotSupported
// plugin error and are not forwarded.
func (p *Pipeline) Transform(f *File, sink Sink) error {
	p.lastBase = f.Base

	switch f.Kind() {
	case ContentNull:
		return sink.Push(f)
	case ContentStream:
		err := newStreamError(f.Path)
		p.log.Error().Err(err).Str("file", f.Path).Msg("skipping file")
		return err
	}

	p.scan(f)
	return sink.Push(f)
}

// scan records every reference in f, in document order.
func (p *Pipeline) scan(f *File) {
	src := string(f.Contents)
	log := p.log.WithFile(f.Path)

	ex := NewExtractor(src)
	for {
		m, ok := ex.Next()
		if !ok {
			return
		}
		p.process(m, f, src, log)
	}
}

// process runs one reference through classification, dedup, filtering,
// resolution, reading and recording. Every path ends with either an entry
// or a logged skip.
func (p *Pipeline) process(m Match, f *File, src string, log *Logger) {
	if kind := Classify(m.URL); kind != KindLocal {
		log.skip(m, src, kind.skipReason()).Msg("Ignores reference")
		return
	}

	if p.builder.Seen(m.URL) {
		log.skip(m, src, SkipDuplicate).Msg("Ignores reference")
		return
	}

	if !p.builder.Allowed(m.URL) {
		log.skip(m, src, SkipExtension).Str("ext", Extension(m.URL)).Msg("Ignores reference")
		return
	}

	res, err := p.resolver.Resolve(m.URL, f.Path)
	if err != nil {
		log.skip(m, src, SkipNotFound).Str("location", res.Location).Err(err).Msg("Error")
		return
	}

	desc, err := p.scanner.Scan(res.Location)
	if err != nil {
		log.skip(m, src, SkipNotFound).Str("location", res.Location).Err(err).Msg("Error")
		return
	}

	if reason := p.builder.Record(m.URL, m.Tags, desc); reason != SkipNone {
		log.skip(m, src, reason).Msg("Ignores reference")
		return
	}
	log.Debug().
		Str("url", m.URL).
		Str("location", desc.Path).
		Int64("size", desc.Size).
		Msg("Recorded")
}

// Flush finalizes the manifest and pushes it as a new record. It may be
// called once per pipeline.
func (p *Pipeline) Flush(sink Sink) (*File, error) {
	if p.flushed {
		return nil, &PluginError{Plugin: PluginName, Msg: "manifest already emitted"}
	}
	p.flushed = true

	m := p.builder.Finalize()
	data, err := Encode(m)
	if err != nil {
		return nil, &PluginError{Plugin: PluginName, Msg: "encoding manifest", Err: err}
	}

	base := filepath.Join(p.lastBase, p.config.BaseDir)
	out := &File{
		Base:      base,
		Path:      filepath.Join(base, FileName),
		Contents:  data,
		Generated: true,
	}

	p.log.Debug().
		Str("path", out.Path).
		Int("files", len(m.Files)).
		Msg("Emitting manifest")

	if err := sink.Push(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Manifest returns the manifest as it would be emitted now.
func (p *Pipeline) Manifest() Manifest {
	return p.builder.Finalize()
}

// Run transforms every record in order and then emits the manifest.
// Rejected records do not stop the run; their errors are joined and
// returned after the manifest has been pushed. A sink failure aborts.
func (p *Pipeline) Run(files []*File, sink Sink) error {
	var errs []error
	for _, f := range files {
		if err := p.Transform(f, sink); err != nil {
			var pe *PluginError
			if !errors.As(err, &pe) {
				return err
			}
			errs = append(errs, err)
		}
	}

	if _, err := p.Flush(sink); err != nil {
		return err
	}
	return errors.Join(errs...)
}
