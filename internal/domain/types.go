package domain

import (
	"time"

	json "github.com/goccy/go-json"
)

// Blueprint declares one export: its tables, total byte budget and output
// file count. Blueprints live as YAML or JSON files on disk.
type Blueprint struct {
	ID            string      `json:"id" yaml:"id"`
	Name          string      `json:"name" yaml:"name"`
	Description   string      `json:"description,omitempty" yaml:"description,omitempty"`
	DataSizeBytes uint64      `json:"data_size_bytes" yaml:"data_size_bytes"`
	NumberOfFiles uint64      `json:"number_of_files" yaml:"number_of_files"`
	Tables        []TableSpec `json:"tables" yaml:"tables"`
}

type TableSpec struct {
	ID        string `json:"id" yaml:"id"`
	Delimiter string `json:"delimiter" yaml:"delimiter"`
	// PercentSize stays a string so the exact decimal fraction survives
	// parsing; float64 would not.
	PercentSize string       `json:"percent_size" yaml:"percent_size"`
	Columns     []ColumnSpec `json:"columns" yaml:"columns"`
}

type ColumnSpec struct {
	Name      string        `json:"name" yaml:"name"`
	Size      uint64        `json:"size" yaml:"size"`
	SQLType   string        `json:"sql_type" yaml:"sql_type"`
	Generator GeneratorSpec `json:"generator" yaml:"generator"`
}

type GeneratorSpec struct {
	Type   string                 `json:"type" yaml:"type"`
	Params map[string]interface{} `json:"params,omitempty" yaml:"params,omitempty"`
}

type Run struct {
	ID            string          `json:"id"`
	BlueprintID   string          `json:"blueprint_id"`
	BlueprintName string          `json:"blueprint_name"`
	OutDir        string          `json:"out_dir"`
	DataSizeBytes uint64          `json:"data_size_bytes"`
	NumberOfFiles uint64          `json:"number_of_files"`
	Status        RunStatus       `json:"status"`
	StartedAt     time.Time       `json:"started_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
	Stats         json.RawMessage `json:"stats,omitempty"`
	Error         string          `json:"error,omitempty"`
}

type RunStatus string

const (
	RunStatusRunning RunStatus = "running"
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

type RunStats struct {
	FilesWritten    uint64  `json:"files_written"`
	FileSizeBytes   uint64  `json:"file_size_bytes"`
	TablesPerFile   int     `json:"tables_per_file"`
	DurationSeconds float64 `json:"duration_seconds"`
}
