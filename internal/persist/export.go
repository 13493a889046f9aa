package persist

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dori/tsuzuki/internal/model"
)

// Document is a full export of the user's data
type Document struct {
	SeedVersion int              `json:"seedVersion" yaml:"seedVersion"`
	UserName    string           `json:"userName" yaml:"userName"`
	Tasks       []TaskRecord     `json:"tasks" yaml:"tasks"`
	Categories  []CategoryRecord `json:"categories" yaml:"categories"`
}

// NewDocument builds an export document
func NewDocument(userName string, tasks []model.Task, categories []model.Category) Document {
	return Document{
		SeedVersion: SeedVersion,
		UserName:    userName,
		Tasks:       TaskRecords(tasks),
		Categories:  CategoryRecords(categories),
	}
}

// Write encodes the document to w as "json" or "yaml"
func (d Document) Write(w io.Writer, format string) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown export format %q (want json or yaml)", format)
	}
}
