package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"edu_analytics_backend/internal/model"
	"edu_analytics_backend/internal/validation"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errInvalidBatch = errors.New("question batch is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a JSON or YAML question batch offline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		batch, err := parseBatch(args[0], raw)
		if err != nil {
			return err
		}
		return report(cmd.OutOrStdout(), validation.Validate(batch))
	},
}

// questionFile accepts either a bare list or {"questions": [...]}.
type questionFile struct {
	Questions []model.GeneratedQuestion `json:"questions" yaml:"questions"`
}

func parseBatch(name string, raw []byte) ([]model.GeneratedQuestion, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return parseYAML(raw)
	default:
		return parseJSON(raw)
	}
}

func parseJSON(raw []byte) ([]model.GeneratedQuestion, error) {
	trimmed := bytes.TrimSpace(raw)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var list []model.GeneratedQuestion
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("parse json batch: %w", err)
		}
		return list, nil
	}
	var f questionFile
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, fmt.Errorf("parse json batch: %w", err)
	}
	return f.Questions, nil
}

func parseYAML(raw []byte) ([]model.GeneratedQuestion, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("parse yaml batch: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	doc := node.Content[0]
	if doc.Kind == yaml.SequenceNode {
		var list []model.GeneratedQuestion
		if err := doc.Decode(&list); err != nil {
			return nil, fmt.Errorf("parse yaml batch: %w", err)
		}
		return list, nil
	}
	var f questionFile
	if err := doc.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse yaml batch: %w", err)
	}
	return f.Questions, nil
}

// report prints the result and returns errInvalidBatch when it failed.
func report(w io.Writer, result model.QuestionValidationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}
	if !result.IsValid {
		return errInvalidBatch
	}
	return nil
}
