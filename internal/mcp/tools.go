package mcp

func (s *Server) listTools() interface{} {
	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name":        "load_dataset",
				"description": "Load a vulnerability-scan spreadsheet (.xlsx, .xlsm or .csv) and auto-map its columns onto the canonical fields. A failed load leaves any previously loaded dataset in place.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"path": map[string]interface{}{"type": "string", "description": "Path to the spreadsheet file"},
					},
					"required": []string{"path"},
				},
			},
			map[string]interface{}{
				"name":        "clear_dataset",
				"description": "Discard the loaded dataset, its column mapping, and all active filters.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "get_dataset_info",
				"description": "Describe the loaded dataset: record count, raw columns, the resolved column mapping, canonical fields left unmapped, and the creation-date years present.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "get_unique_values",
				"description": "List the sorted distinct values of a canonical field (e.g. status, priority, department). Empty for unmapped fields.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"field": map[string]interface{}{"type": "string", "description": "Canonical field name, e.g. 'priority'"},
					},
					"required": []string{"field"},
				},
			},
			map[string]interface{}{
				"name":        "set_column_mapping",
				"description": "Manually map a canonical field to a raw column, overriding the automatic mapping. No-op if the column does not exist.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"field":  map[string]interface{}{"type": "string", "description": "Canonical field name"},
						"column": map[string]interface{}{"type": "string", "description": "Raw column name as it appears in the source"},
					},
					"required": []string{"field", "column"},
				},
			},
			map[string]interface{}{
				"name": "set_filter",
				"description": "Set or remove one filter. Keys are canonical field names (exact/multi-select match) or the synthetic keys 'year' (list of years), 'year_range' ([start, end] inclusive), 'open_only' and 'out_of_sla_only' (booleans). " +
					"A null or empty-list value removes the key. All filters combine with AND.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"key":   map[string]interface{}{"type": "string", "description": "Filter key"},
						"value": map[string]interface{}{"description": "Scalar, list, [start, end] pair, boolean, or null to remove"},
					},
					"required": []string{"key"},
				},
			},
			map[string]interface{}{
				"name":        "clear_filters",
				"description": "Remove every active filter.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "get_filters",
				"description": "Return the active filter set together with total and filtered record counts.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "get_summary",
				"description": "Return the headline numbers for the current filtered view: total vs filtered counts, SLA summary, and priority distribution.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name": "aggregate",
				"description": "Run one aggregation against the current filtered view. Queries: count_by_field (needs 'field'), count_by_year, count_by_month, top_vulnerabilities, sla_summary, priority_summary, resolution_time_stats, sla_breach_distribution, ip_density. " +
					"Aggregations over unmapped fields return empty results, never errors.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"query": map[string]interface{}{"type": "string", "enum": []string{
							"count_by_field", "count_by_year", "count_by_month", "top_vulnerabilities",
							"sla_summary", "priority_summary", "resolution_time_stats",
							"sla_breach_distribution", "ip_density",
						}},
						"field": map[string]interface{}{"type": "string", "description": "Canonical field (count_by_field only)"},
						"top_n": map[string]interface{}{"type": "integer", "description": "Row limit for top_vulnerabilities / ip_density (default 10)"},
					},
					"required": []string{"query"},
				},
			},
			map[string]interface{}{
				"name":        "preview_data",
				"description": "Return the first rows of the filtered view as column-keyed records.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"rows": map[string]interface{}{"type": "integer", "description": "Number of rows (default 10)"},
					},
				},
			},
			map[string]interface{}{
				"name":        "generate_report",
				"description": "Build the report over the current filtered view and write report.json plus Mermaid chart artifacts. Omitting 'sections' builds every section in canonical order.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"sections":   map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}, "description": "Section ids, e.g. ['yearly_open', 'trend', 'top10']"},
						"language":   map[string]interface{}{"type": "string", "enum": []string{"TR", "EN"}, "description": "Report language (default: configured REPORT_LANGUAGE)"},
						"output_dir": map[string]interface{}{"type": "string", "description": "Artifact directory (default: configured OUTPUT_DIR)"},
						"top_n":      map[string]interface{}{"type": "integer", "description": "Row limit for the top-vulnerability and IP sections (default 10)"},
					},
				},
			},
		},
	}
}
