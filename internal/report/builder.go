package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"reportiq/internal/dataset"
	"reportiq/internal/engine"
	"reportiq/internal/visuals"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Section is one rendered unit of the report: a localized title, a payload
// shaped by Kind, and the Mermaid chart text when the section is chartable.
// An empty aggregate keeps its section with a note so renderers can draw a
// placeholder instead of erroring.
type Section struct {
	ID    SectionID `json:"id"`
	Title string    `json:"title"`
	Kind  Kind      `json:"kind"`

	Table  []engine.CountEntry     `json:"table,omitempty"`
	Series []engine.MonthCount     `json:"series,omitempty"`
	Stats  *engine.ResolutionStats `json:"stats,omitempty"`
	Values []float64               `json:"values,omitempty"`
	Vulns  []engine.VulnEntry      `json:"vulnerabilities,omitempty"`

	Chart string `json:"chart,omitempty"`
	Note  string `json:"note,omitempty"`
}

// Report is the complete data handed to document assembly.
type Report struct {
	GeneratedAt   time.Time      `json:"generated_at"`
	Language      string         `json:"language"`
	Source        string         `json:"source,omitempty"`
	Filters       map[string]any `json:"filters"`
	TotalCount    int            `json:"total_count"`
	FilteredCount int            `json:"filtered_count"`
	Sections      []Section      `json:"sections"`
}

// Config carries the report parameters; language is explicit, never global.
type Config struct {
	Language Language
	TopN     int
}

// Builder turns the engine's current filtered view into report sections.
type Builder struct {
	loader *dataset.Loader
	eng    *engine.Engine
	cfg    Config
}

// NewBuilder creates a Builder over a loader/engine pair.
func NewBuilder(loader *dataset.Loader, eng *engine.Engine, cfg Config) *Builder {
	if cfg.TopN <= 0 {
		cfg.TopN = 10
	}
	return &Builder{loader: loader, eng: eng, cfg: cfg}
}

// sectionBuilders statically maps each section to its builder. Adding a
// section means adding a constant, a title, and an entry here.
var sectionBuilders = map[SectionID]func(*Builder) Section{
	SectionYearlyOpen:     (*Builder).buildYearlyOpen,
	SectionPriorityDist:   (*Builder).buildPriorityDist,
	SectionLineManager:    (*Builder).buildLineManager,
	SectionDepartment:     (*Builder).buildDepartment,
	SectionTool:           (*Builder).buildTool,
	SectionSLA:            (*Builder).buildSLA,
	SectionTrend:          (*Builder).buildTrend,
	SectionTop10:          (*Builder).buildTop10,
	SectionIPDensity:      (*Builder).buildIPDensity,
	SectionResolutionTime: (*Builder).buildResolutionTime,
	SectionSLABreach:      (*Builder).buildSLABreach,
}

// Build assembles the requested sections against the current filtered
// view. Unknown section ids are skipped with a warning. Aggregation runs
// serially: the engine is single-owner and not locked.
func (b *Builder) Build(ids []SectionID) *Report {
	if len(ids) == 0 {
		ids = AllSections()
	}

	rep := &Report{
		GeneratedAt:   time.Now(),
		Language:      b.cfg.Language.Code,
		Source:        b.loader.SourceName(),
		Filters:       b.eng.Filters(),
		TotalCount:    b.eng.TotalCount(),
		FilteredCount: b.eng.FilteredCount(),
	}

	for _, id := range ids {
		build, ok := sectionBuilders[id]
		if !ok {
			log.Warn().Str("section", string(id)).Msg("Unknown report section requested, skipping")
			continue
		}
		rep.Sections = append(rep.Sections, build(b))
	}
	return rep
}

// Write emits report.json plus one .mmd chart file per chartable section.
// Section artifacts are independent, so they are written concurrently.
func (r *Report) Write(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	reportPath := filepath.Join(dir, "report.json")
	if err := os.WriteFile(reportPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", reportPath, err)
	}
	written := []string{reportPath}

	var g errgroup.Group
	paths := make([]string, len(r.Sections))
	for i, section := range r.Sections {
		if section.Chart == "" {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("%s.mmd", section.ID))
		chart := section.Chart
		g.Go(func() error {
			return os.WriteFile(path, []byte(chart), 0644)
		})
		paths[i] = path
	}
	if err := g.Wait(); err != nil {
		return written, fmt.Errorf("failed to write chart artifacts: %w", err)
	}

	for _, p := range paths {
		if p != "" {
			written = append(written, p)
		}
	}

	log.Info().Int("artifacts", len(written)).Str("dir", dir).Msg("Report written")
	return written, nil
}

func (b *Builder) noDataNote() string {
	return b.cfg.Language.Label("Seçilen filtreler için veri bulunamadı", "No data for the selected filters")
}

func (b *Builder) countSection(id SectionID, kind Kind, entries []engine.CountEntry, yLabelTR, yLabelEN string) Section {
	s := Section{ID: id, Title: Title(id, b.cfg.Language), Kind: kind, Table: entries}
	if len(entries) == 0 {
		s.Note = b.noDataNote()
		return s
	}
	switch kind {
	case KindPie:
		s.Chart = visuals.PieChart(s.Title, entries)
	default:
		s.Chart = visuals.BarChart(s.Title, b.cfg.Language.Label(yLabelTR, yLabelEN), entries)
	}
	return s
}

func (b *Builder) buildYearlyOpen() Section {
	years := b.eng.CountByYear()
	entries := make([]engine.CountEntry, 0, len(years))
	for _, y := range years {
		entries = append(entries, engine.CountEntry{Value: fmt.Sprintf("%d", y.Year), Count: y.Count})
	}
	return b.countSection(SectionYearlyOpen, KindBar, entries, "Zafiyet Sayısı", "Vulnerability Count")
}

func (b *Builder) buildPriorityDist() Section {
	return b.countSection(SectionPriorityDist, KindPie,
		b.eng.CountByField(dataset.FieldPriority), "", "")
}

func (b *Builder) buildLineManager() Section {
	return b.countSection(SectionLineManager, KindBar,
		b.eng.CountByField(dataset.FieldLineManager), "Zafiyet Sayısı", "Vulnerability Count")
}

func (b *Builder) buildDepartment() Section {
	return b.countSection(SectionDepartment, KindBar,
		b.eng.CountByField(dataset.FieldDepartment), "Zafiyet Sayısı", "Vulnerability Count")
}

func (b *Builder) buildTool() Section {
	return b.countSection(SectionTool, KindBar,
		b.eng.CountByField(dataset.FieldTool), "Zafiyet Sayısı", "Vulnerability Count")
}

func (b *Builder) buildSLA() Section {
	summary := b.eng.SLASummary()
	entries := []engine.CountEntry{
		{Value: b.cfg.Language.Label("SLA İçinde", "In SLA"), Count: summary.InSLA},
		{Value: b.cfg.Language.Label("SLA Dışında", "Out of SLA"), Count: summary.OutOfSLA},
		{Value: b.cfg.Language.Label("Bilinmiyor", "Unknown"), Count: summary.Unknown},
	}
	s := b.countSection(SectionSLA, KindPie, entries, "", "")
	if summary.InSLA+summary.OutOfSLA+summary.Unknown == 0 {
		s.Table = nil
		s.Chart = ""
		s.Note = b.noDataNote()
	}
	return s
}

func (b *Builder) buildTrend() Section {
	series := b.eng.CountByMonth()
	s := Section{ID: SectionTrend, Title: Title(SectionTrend, b.cfg.Language), Kind: KindLine, Series: series}
	if len(series) < 2 {
		s.Note = b.cfg.Language.Label("Trend verisi yetersiz", "Insufficient trend data")
		return s
	}
	s.Chart = visuals.LineChart(s.Title, b.cfg.Language.Label("Zafiyet Sayısı", "Vulnerability Count"), series)
	return s
}

func (b *Builder) buildTop10() Section {
	vulns := b.eng.TopVulnerabilities(b.cfg.TopN)
	s := Section{ID: SectionTop10, Title: Title(SectionTop10, b.cfg.Language), Kind: KindTable, Vulns: vulns}
	if len(vulns) == 0 {
		s.Note = b.noDataNote()
		return s
	}

	entries := make([]engine.CountEntry, 0, len(vulns))
	for _, v := range vulns {
		entries = append(entries, engine.CountEntry{Value: v.Name, Count: v.Count})
	}
	s.Chart = visuals.BarChart(s.Title, b.cfg.Language.Label("Tespit Sayısı", "Detection Count"), entries)
	return s
}

func (b *Builder) buildIPDensity() Section {
	return b.countSection(SectionIPDensity, KindBar,
		b.eng.IPDensity(b.cfg.TopN), "Zafiyet Sayısı", "Vulnerability Count")
}

func (b *Builder) buildResolutionTime() Section {
	stats := b.eng.ResolutionTimeStats()
	s := Section{ID: SectionResolutionTime, Title: Title(SectionResolutionTime, b.cfg.Language), Kind: KindStats, Stats: &stats}
	chart := visuals.StatsChart(s.Title, b.cfg.Language.Label("Gün", "Days"), stats)
	if chart == "" {
		s.Note = b.noDataNote()
		return s
	}
	s.Chart = chart
	return s
}

func (b *Builder) buildSLABreach() Section {
	values := b.eng.SLABreachDistribution()
	s := Section{ID: SectionSLABreach, Title: Title(SectionSLABreach, b.cfg.Language), Kind: KindHist, Values: values}
	if len(values) == 0 {
		s.Note = b.noDataNote()
		return s
	}
	s.Chart = visuals.Histogram(s.Title, b.cfg.Language.Label("Kayıt Sayısı", "Record Count"), values, 10)
	return s
}
