// Package pipeline wires the registry, extraction, cache, master and
// summary stages into the full batch run.
package pipeline

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/a3tai/tncutoffs/internal/cache"
	"github.com/a3tai/tncutoffs/internal/config"
	"github.com/a3tai/tncutoffs/internal/extract"
	"github.com/a3tai/tncutoffs/internal/master"
	"github.com/a3tai/tncutoffs/internal/pdfdoc"
	"github.com/a3tai/tncutoffs/internal/records"
	"github.com/a3tai/tncutoffs/internal/registry"
	"github.com/a3tai/tncutoffs/internal/summary"
	"github.com/a3tai/tncutoffs/internal/tables"
)

// Pipeline runs the complete document-to-summaries batch.
type Pipeline struct {
	cfg    *config.Config
	loader *cache.Loader
}

// New assembles a pipeline from the configuration: geometric table
// detection, validated PDF access, and a filesystem-backed parse cache.
func New(cfg *config.Config) *Pipeline {
	opener := pdfdoc.Opener{MaxFileSize: cfg.MaxFileSize}
	parser := extract.NewParser(
		tables.NewGeometricEngine(),
		extract.OpenFunc(func(path string) (extract.Document, error) {
			return opener.Open(path)
		}),
	)
	return &Pipeline{
		cfg:    cfg,
		loader: cache.NewLoader(cache.NewFSStore(cfg.CacheDirectory), parser),
	}
}

// BuildMaster parses every registered document (through the cache) and
// merges the results into the master dataset. Any document-level failure
// aborts the run with the offending dataset named.
func (p *Pipeline) BuildMaster() ([]records.Record, error) {
	var perDocument [][]records.Record
	for _, ds := range registry.Datasets() {
		log.Println(ds.Label)
		path := filepath.Join(p.cfg.DocumentsDirectory, ds.File)
		rows, err := p.loader.LoadOrParse(path, ds.Round, ds.Style, ds.Quota)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ds.Label, err)
		}
		perDocument = append(perDocument, rows)
	}
	return master.Build(perDocument), nil
}

// Run builds the master dataset and reduces it to summary records.
func (p *Pipeline) Run() ([]summary.Record, error) {
	rows, err := p.BuildMaster()
	if err != nil {
		return nil, err
	}
	log.Printf("Built master dataset rows: %d", len(rows))
	return summary.Aggregate(rows), nil
}

// RunAndWrite runs the pipeline and writes the JSON artifact. Nothing is
// written when any stage fails.
func (p *Pipeline) RunAndWrite() error {
	recs, err := p.Run()
	if err != nil {
		return err
	}
	if err := summary.WriteJSON(p.cfg.OutputPath, recs); err != nil {
		return err
	}
	log.Printf("Wrote %d combination summaries to %s", len(recs), p.cfg.OutputPath)
	return nil
}
