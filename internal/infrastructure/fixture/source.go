package fixture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"ContentDesk/internal/config"
	"ContentDesk/internal/domain"
	"ContentDesk/internal/ports"
)

var decodableExts = []string{".yaml", ".yml", ".json"}

// Source implements ports.RequestSource over configured fixture sets.
type Source struct {
	baseDir string
	sets    []config.FixtureSet
	logger  *slog.Logger
}

var _ ports.RequestSource = (*Source)(nil)

// NewSource wires fixture sets from config.
func NewSource(cfg config.FixtureConfig, log *slog.Logger) *Source {
	return &Source{
		baseDir: cfg.BaseDir,
		sets:    cfg.Sets,
		logger:  log,
	}
}

// Load expands every set and decodes the matching files. Requests come back
// ordered by set, then by path. A file matched by more than one set is only
// loaded for the first.
func (s *Source) Load(ctx context.Context) ([]domain.Request, error) {
	base := s.baseDir
	if base == "" {
		base = "."
	}

	s.debug("load fixtures", "base", base, "sets", len(s.sets))

	seen := map[string]struct{}{}
	var aggregated []domain.Request
	for _, set := range s.sets {
		matches, err := doublestar.Glob(os.DirFS(base), set.Pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("set %s: %w", set.Name, err)
		}
		slices.Sort(matches)
		s.debug("process set", "set", set.Name, "pattern", set.Pattern, "matches", len(matches))

		for _, rel := range matches {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if !Decodable(rel) {
				s.debug("skip non-request file", "set", set.Name, "path", rel)
				continue
			}
			if _, ok := seen[rel]; ok {
				continue
			}
			seen[rel] = struct{}{}

			reqs, err := DecodeFile(filepath.Join(base, filepath.FromSlash(rel)))
			if err != nil {
				return nil, fmt.Errorf("set %s: %w", set.Name, err)
			}
			for i := range reqs {
				reqs[i].Origin = set.Name + ":" + rel
			}
			aggregated = append(aggregated, reqs...)
		}
	}

	s.debug("fixture source done", "total_requests", len(aggregated))
	return aggregated, nil
}

// LoadFiles decodes explicit paths in the order given.
func LoadFiles(ctx context.Context, paths ...string) ([]domain.Request, error) {
	var out []domain.Request
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		reqs, err := DecodeFile(p)
		if err != nil {
			return nil, err
		}
		for i := range reqs {
			reqs[i].Origin = p
		}
		out = append(out, reqs...)
	}
	return out, nil
}

// Decodable reports whether path has a request fixture extension.
func Decodable(path string) bool {
	return slices.Contains(decodableExts, strings.ToLower(filepath.Ext(path)))
}

// DecodeFile reads one YAML or JSON fixture.
func DecodeFile(path string) ([]domain.Request, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &domain.OpError{Op: "fixture.read", Kind: domain.KindNotFound, Path: path, Err: domain.ErrNotFound}
		}
		return nil, &domain.OpError{Op: "fixture.read", Kind: domain.KindInvalidInput, Path: path, Err: err}
	}
	return Decode(path, raw)
}

// Decode parses fixture bytes. JSON is accepted as the YAML subset it is.
// Requests without an id get a random UUID.
func Decode(path string, raw []byte) ([]domain.Request, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var file YAMLFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &domain.OpError{Op: "fixture.decode", Kind: domain.KindInvalidInput, Path: path, Err: fmt.Errorf("empty fixture: %w", domain.ErrInvalidInput)}
		}
		return nil, &domain.OpError{Op: "fixture.decode", Kind: domain.KindInvalidInput, Path: path, Err: fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)}
	}

	var dtos []YAMLRequest
	var prefix func(int) string
	switch {
	case len(file.Requests) > 0 && !file.YAMLRequest.empty():
		return nil, &domain.OpError{Op: "fixture.decode", Kind: domain.KindInvalidInput, Path: path,
			Err: fmt.Errorf("top-level request fields cannot be mixed with requests: %w", domain.ErrInvalidInput)}
	case len(file.Requests) > 0:
		dtos = file.Requests
		prefix = func(i int) string { return fmt.Sprintf("requests[%d]", i) }
	case !file.YAMLRequest.empty():
		dtos = []YAMLRequest{file.YAMLRequest}
		prefix = func(int) string { return "" }
	default:
		return nil, &domain.OpError{Op: "fixture.decode", Kind: domain.KindInvalidInput, Path: path, Err: fmt.Errorf("no requests: %w", domain.ErrInvalidInput)}
	}

	out := make([]domain.Request, 0, len(dtos))
	for i, dto := range dtos {
		req, err := MapRequest(path, prefix(i), dto)
		if err != nil {
			return nil, err
		}
		if req.ID == "" {
			req.ID = uuid.NewString()
		}
		out = append(out, req)
	}
	return out, nil
}

func (s *Source) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
