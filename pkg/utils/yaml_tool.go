package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

// SplitYAMLDocuments splits a multi-document YAML file on "---" lines. A
// "---" inside a string or block scalar is not a separator.
var SplitYAMLDocuments = func(content string) []string {
	lines := strings.Split(content, "\n")
	docs := make([]string, 0)
	var currentDoc []string

	flush := func() {
		if len(currentDoc) == 0 {
			return
		}
		docStr := strings.TrimSpace(strings.Join(currentDoc, "\n"))
		if docStr != "" {
			docs = append(docs, docStr)
		}
		currentDoc = nil
	}

	for _, line := range lines {
		trimmedLine := strings.TrimSpace(line)
		if (trimmedLine == "---" || strings.HasPrefix(trimmedLine, "--- ")) && !strings.HasPrefix(line, " ") {
			flush()
			continue
		}
		currentDoc = append(currentDoc, line)
	}
	flush()

	return docs
}

// YAMLToJSON converts one YAML document to indented JSON.
var YAMLToJSON = func(yamlContent string) (string, error) {
	var yamlObj interface{}
	err := yaml.Unmarshal([]byte(yamlContent), &yamlObj)
	if err != nil {
		return "", err
	}

	jsonReady := convertToStringKeys(yamlObj)

	jsonBytes, err := json.MarshalIndent(jsonReady, "", "  ")
	if err != nil {
		return "", err
	}

	return string(jsonBytes), nil
}

func convertToStringKeys(v interface{}) interface{} {
	switch x := v.(type) {
	case map[interface{}]interface{}:
		m2 := make(map[string]interface{})
		for k, v2 := range x {
			m2[fmt.Sprint(k)] = convertToStringKeys(v2)
		}
		return m2
	case []interface{}:
		for i, v2 := range x {
			x[i] = convertToStringKeys(v2)
		}
	}
	return v
}
