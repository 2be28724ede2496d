package mcp

import (
	"encoding/json"
	"fmt"

	"reportiq/internal/dataset"
	"reportiq/internal/report"

	"github.com/rs/zerolog/log"
)

func (s *Server) callTool(params json.RawMessage) (interface{}, interface{}) {
	var call struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, map[string]interface{}{"code": -32602, "message": "Invalid params"}
	}

	var data interface{}
	var err error

	switch call.Name {
	case "load_dataset":
		data, err = s.handleLoadDataset(asString(call.Arguments["path"]))
	case "clear_dataset":
		data, err = s.handleClearDataset()
	case "get_dataset_info":
		data, err = s.handleDatasetInfo()
	case "get_unique_values":
		data, err = s.handleUniqueValues(asString(call.Arguments["field"]))
	case "set_column_mapping":
		data, err = s.handleSetColumnMapping(asString(call.Arguments["field"]), asString(call.Arguments["column"]))
	case "set_filter":
		data, err = s.handleSetFilter(asString(call.Arguments["key"]), call.Arguments["value"])
	case "clear_filters":
		s.eng.ClearFilters()
		data = map[string]interface{}{"filters": s.eng.Filters()}
	case "get_filters":
		data = s.filterState()
	case "get_summary":
		data = s.handleSummary()
	case "aggregate":
		data, err = s.handleAggregate(call.Arguments)
	case "preview_data":
		data = s.eng.Preview(asInt(call.Arguments["rows"], 10))
	case "generate_report":
		data, err = s.handleGenerateReport(call.Arguments)
	default:
		return nil, map[string]interface{}{"code": -32601, "message": "Tool not found"}
	}

	if err != nil {
		return nil, map[string]interface{}{"code": -32000, "message": err.Error()}
	}

	return map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": s.formatResult(data),
			},
		},
	}, nil
}

func (s *Server) handleLoadDataset(path string) (interface{}, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}

	message, err := s.loader.Load(path)
	if err != nil {
		// The previous dataset, if any, is still loaded.
		return nil, err
	}

	// A fresh dataset invalidates whatever the user had filtered before.
	s.eng.ClearFilters()

	return map[string]interface{}{
		"message":  message,
		"records":  s.loader.RecordCount(),
		"mapped":   s.loader.Mapping(),
		"unmapped": s.loader.UnmappedFields(),
	}, nil
}

func (s *Server) handleClearDataset() (interface{}, error) {
	s.loader.Clear()
	s.eng.ClearFilters()
	return map[string]interface{}{"message": "Dataset cleared"}, nil
}

func (s *Server) handleDatasetInfo() (interface{}, error) {
	if !s.loader.IsLoaded() {
		return nil, fmt.Errorf("no dataset loaded")
	}
	return map[string]interface{}{
		"source":   s.loader.SourceName(),
		"records":  s.loader.RecordCount(),
		"columns":  s.loader.RawColumns(),
		"mapping":  s.loader.Mapping(),
		"unmapped": s.loader.UnmappedFields(),
		"years":    s.loader.Years(),
	}, nil
}

func (s *Server) handleUniqueValues(field string) (interface{}, error) {
	f := dataset.Field(field)
	if !dataset.IsField(f) {
		return nil, fmt.Errorf("unknown canonical field: %s", field)
	}
	values := s.loader.UniqueValues(f)
	return map[string]interface{}{
		"field":  field,
		"values": values,
		"count":  len(values),
	}, nil
}

func (s *Server) handleSetColumnMapping(field, column string) (interface{}, error) {
	f := dataset.Field(field)
	if !dataset.IsField(f) {
		return nil, fmt.Errorf("unknown canonical field: %s", field)
	}
	if !s.loader.IsLoaded() {
		return nil, fmt.Errorf("no dataset loaded")
	}

	s.loader.SetMapping(f, column)
	if s.loader.Column(f) != column {
		return nil, fmt.Errorf("column %q does not exist in the dataset", column)
	}

	// The mapping feeds the generic field filters, so the view must be rebuilt.
	s.eng.Invalidate()

	return map[string]interface{}{"mapping": s.loader.Mapping()}, nil
}

func (s *Server) handleSetFilter(key string, value interface{}) (interface{}, error) {
	if key == "" {
		return nil, fmt.Errorf("key is required")
	}
	s.eng.SetFilter(key, value)
	return s.filterState(), nil
}

func (s *Server) filterState() map[string]interface{} {
	return map[string]interface{}{
		"filters":        s.eng.Filters(),
		"total_count":    s.eng.TotalCount(),
		"filtered_count": s.eng.FilteredCount(),
	}
}

func (s *Server) handleSummary() map[string]interface{} {
	return map[string]interface{}{
		"total_count":    s.eng.TotalCount(),
		"filtered_count": s.eng.FilteredCount(),
		"sla":            s.eng.SLASummary(),
		"priority":       s.eng.PrioritySummary(),
	}
}

func (s *Server) handleAggregate(args map[string]interface{}) (interface{}, error) {
	query := asString(args["query"])
	topN := asInt(args["top_n"], 10)

	switch query {
	case "count_by_field":
		field := dataset.Field(asString(args["field"]))
		if !dataset.IsField(field) {
			return nil, fmt.Errorf("count_by_field needs a canonical 'field'")
		}
		return s.eng.CountByField(field), nil
	case "count_by_year":
		return s.eng.CountByYear(), nil
	case "count_by_month":
		return map[string]interface{}{
			"series":      s.eng.CountByMonth(),
			"trend_ready": s.eng.TrendReady(),
		}, nil
	case "top_vulnerabilities":
		return s.eng.TopVulnerabilities(topN), nil
	case "sla_summary":
		return s.eng.SLASummary(), nil
	case "priority_summary":
		return s.eng.PrioritySummary(), nil
	case "resolution_time_stats":
		return s.eng.ResolutionTimeStats(), nil
	case "sla_breach_distribution":
		return s.eng.SLABreachDistribution(), nil
	case "ip_density":
		return s.eng.IPDensity(topN), nil
	default:
		return nil, fmt.Errorf("unknown query: %s", query)
	}
}

func (s *Server) handleGenerateReport(args map[string]interface{}) (interface{}, error) {
	if !s.loader.IsLoaded() {
		return nil, fmt.Errorf("no dataset loaded")
	}

	language := asString(args["language"])
	if language == "" {
		language = s.cfg.Language
	}

	outputDir := asString(args["output_dir"])
	if outputDir == "" {
		outputDir = s.cfg.OutputDir
	}

	var ids []report.SectionID
	if raw, ok := args["sections"].([]interface{}); ok {
		for _, item := range raw {
			id := report.SectionID(asString(item))
			if !report.IsSection(id) {
				log.Warn().Str("section", string(id)).Msg("Ignoring unknown report section")
				continue
			}
			ids = append(ids, id)
		}
	}

	builder := report.NewBuilder(s.loader, s.eng, report.Config{
		Language: report.Language{Code: language},
		TopN:     asInt(args["top_n"], 10),
	})

	rep := builder.Build(ids)
	written, err := rep.Write(outputDir)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"report":   rep,
		"written":  written,
		"sections": len(rep.Sections),
	}, nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asInt(v interface{}, fallback int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return fallback
	}
}
