// SPDX-License-Identifier: MIT

package pabulib

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/lvpb/election"
)

// Sentinel errors returned by the parser.
var (
	// ErrMissingBudget indicates a META section without a budget entry.
	ErrMissingBudget = errors.New("pabulib: meta budget missing")

	// ErrMissingColumn indicates a required column absent from a header.
	ErrMissingColumn = errors.New("pabulib: required column missing")

	// ErrBadNumber indicates an unparsable budget or cost.
	ErrBadNumber = errors.New("pabulib: malformed number")

	// ErrBadResources indicates a resource count below one (raised via panic).
	ErrBadResources = errors.New("pabulib: resource count must be at least 1")
)

// Options configures parsing.
type Options struct {
	Resources int
	Seed      uint64
	Logger    logr.Logger
}

// Option is a functional option for Parse.
type Option func(*Options)

// DefaultOptions returns one resource, seed 1 and a discarding logger.
func DefaultOptions() Options {
	return Options{Resources: 1, Seed: 1, Logger: logr.Discard()}
}

// WithResources sets the number of budget dimensions to produce.
// Panics with ErrBadResources if n < 1.
func WithResources(n int) Option {
	return func(o *Options) {
		if n < 1 {
			panic(ErrBadResources.Error())
		}
		o.Resources = n
	}
}

// WithSeed fixes the cost-splitting weights.
func WithSeed(seed uint64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithLogger routes diagnostics to l; it is also handed to the Instance.
func WithLogger(l logr.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// section is one parsed block: its header and data rows.
type section struct {
	header []string
	rows   [][]string
}

func (s *section) column(name string) int {
	return slices.Index(s.header, name)
}

// ParseFile opens path and parses it; the instance is named after path.
func ParseFile(path string, opts ...Option) (*election.Instance, *election.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("pabulib: %w", err)
	}
	defer f.Close()

	return parse(f, path, opts)
}

// Parse reads a pabulib election from r. The instance is named after the
// meta description, if any.
//
// Errors: ErrMissingBudget, ErrMissingColumn, ErrBadNumber,
// election.ErrUnknownProject for votes naming undeclared projects, and
// read errors from r.
func Parse(r io.Reader, opts ...Option) (*election.Instance, *election.Profile, error) {
	return parse(r, "", opts)
}

func parse(r io.Reader, name string, opts []Option) (*election.Instance, *election.Profile, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	sections, err := readSections(r)
	if err != nil {
		return nil, nil, err
	}

	meta := make(map[string]string)
	if s, ok := sections["meta"]; ok {
		for _, row := range s.rows {
			if len(row) >= 2 {
				meta[row[0]] = row[1]
			}
		}
	}
	raw, ok := meta["budget"]
	if !ok {
		return nil, nil, ErrMissingBudget
	}
	total, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: budget %q", ErrBadNumber, raw)
	}
	if name == "" {
		name = meta["description"]
	}

	projects, categories, targets, err := readProjects(sections["projects"], cfg)
	if err != nil {
		return nil, nil, err
	}
	budget := make([]float64, cfg.Resources)
	for i := range budget {
		budget[i] = total / float64(cfg.Resources)
	}

	inst, err := election.NewInstance(projects, budget,
		election.WithName(name),
		election.WithCategories(categories...),
		election.WithTargets(targets...),
		election.WithLogger(cfg.Logger),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("pabulib: %w", err)
	}

	ballots, err := readVotes(sections["votes"], inst)
	if err != nil {
		return nil, nil, err
	}
	prof, err := election.NewProfile(inst, ballots...)
	if err != nil {
		return nil, nil, fmt.Errorf("pabulib: %w", err)
	}
	cfg.Logger.V(1).Info("parsed election", "name", name, "projects", inst.Len(), "voters", prof.Len(), "resources", cfg.Resources)

	return inst, prof, nil
}

func readSections(r io.Reader) (map[string]*section, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	sections := make(map[string]*section)
	var cur *section
	expectHeader := false
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("pabulib: %w", err)
		}
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}

		switch key := strings.ToLower(row[0]); {
		case key == "meta" || key == "projects" || key == "votes":
			cur = &section{}
			sections[key] = cur
			expectHeader = true
		case cur == nil:
			// rows before the first section are ignored
		case expectHeader:
			cur.header = row
			expectHeader = false
		default:
			cur.rows = append(cur.rows, row)
		}
	}

	return sections, nil
}

func readProjects(s *section, cfg Options) ([]election.Project, []string, []string, error) {
	if s == nil {
		return nil, nil, nil, nil
	}
	costCol := s.column("cost")
	if costCol < 0 {
		return nil, nil, nil, fmt.Errorf("%w: cost", ErrMissingColumn)
	}
	catCol, tgtCol := s.column("category"), s.column("target")

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	var cats, tgts []string
	projects := make([]election.Project, 0, len(s.rows))
	for _, row := range s.rows {
		if costCol >= len(row) {
			return nil, nil, nil, fmt.Errorf("%w: cost of project %q", ErrMissingColumn, row[0])
		}
		c, err := strconv.ParseFloat(row[costCol], 64)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: cost %q of project %q", ErrBadNumber, row[costCol], row[0])
		}
		p := election.Project{Name: row[0], Cost: split(c, cfg.Resources, rng)}
		if catCol >= 0 && catCol < len(row) {
			p.Categories = labels(row[catCol])
			cats = append(cats, p.Categories...)
		}
		if tgtCol >= 0 && tgtCol < len(row) {
			p.Targets = labels(row[tgtCol])
			tgts = append(tgts, p.Targets...)
		}
		projects = append(projects, p)
	}
	slices.Sort(cats)
	slices.Sort(tgts)

	return projects, slices.Compact(cats), slices.Compact(tgts), nil
}

// split divides c into n parts by random weights summing to one.
func split(c float64, n int, rng *rand.Rand) []float64 {
	switch n {
	case 1:
		return []float64{c}
	case 2:
		u := rng.Float64()
		return []float64{c * u, c * (1 - u)}
	}

	w := make([]float64, n)
	var sum float64
	for i := range w {
		w[i] = rng.Float64()
		sum += w[i]
	}
	for i := range w {
		if sum == 0 {
			w[i] = c / float64(n)
			continue
		}
		w[i] = c * w[i] / sum
	}

	return w
}

func labels(field string) []string {
	var out []string
	for _, l := range strings.Split(field, ",") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}

	return out
}

func readVotes(s *section, inst *election.Instance) ([]election.Ballot, error) {
	if s == nil {
		return nil, nil
	}
	voteCol := s.column("vote")
	if voteCol < 0 {
		return nil, fmt.Errorf("%w: vote", ErrMissingColumn)
	}

	ballots := make([]election.Ballot, 0, len(s.rows))
	for _, row := range s.rows {
		var names []string
		if voteCol < len(row) {
			names = labels(row[voteCol])
		}
		b, err := election.NewBallot(inst, names...)
		if err != nil {
			return nil, fmt.Errorf("pabulib: voter %q: %w", row[0], err)
		}
		ballots = append(ballots, b)
	}

	return ballots, nil
}
