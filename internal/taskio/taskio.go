// Package taskio reads task collections and timetables from YAML or JSON files.
package taskio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/me/taskplan/pkg/model"
	"gopkg.in/yaml.v3"
)

// LoadTasks reads a task collection from path. The document is either a bare
// list of tasks or an object with a task_list key; JSON is accepted as YAML.
func LoadTasks(path string) ([]model.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	tasks, err := ParseTasks(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tasks, nil
}

// ParseTasks decodes a task document from data.
func ParseTasks(data []byte) ([]model.Task, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	if len(doc.Content) == 0 {
		return []model.Task{}, nil
	}

	root := doc.Content[0]
	tasks := []model.Task{}
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&tasks); err != nil {
			return nil, fmt.Errorf("decode task list: %w", err)
		}
	case yaml.MappingNode:
		var wrapped struct {
			Tasks []model.Task `yaml:"task_list"`
		}
		if err := root.Decode(&wrapped); err != nil {
			return nil, fmt.Errorf("decode task_list: %w", err)
		}
		if wrapped.Tasks != nil {
			tasks = wrapped.Tasks
		}
	default:
		return nil, model.NewValidationError("task document must be a list or contain task_list")
	}
	return tasks, nil
}

// LoadSchedule reads a list of schedule entries from path.
func LoadSchedule(path string) ([]model.ScheduleEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}
	entries := []model.ScheduleEntry{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse schedule %s: %w", path, err)
	}
	return entries, nil
}

// WriteJSON writes v to w as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
