package main

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// yamlFrontMatter decodes "---" delimited blocks into a yaml.Node tree.
var yamlFrontMatter = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// ExtractKey returns the string value stored under field in the leading
// front matter block of content. found is false when there is no block,
// the block is not a mapping, or the field is absent or null.
func ExtractKey(content []byte, field string) (string, bool, error) {
	var doc yaml.Node
	if _, err := frontmatter.Parse(bytes.NewReader(content), &doc, yamlFrontMatter); err != nil {
		return "", false, fmt.Errorf("parse front matter: %w", err)
	}

	root := resolveAlias(&doc)
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return "", false, nil
		}
		root = resolveAlias(root.Content[0])
	}
	if root.Kind != yaml.MappingNode {
		return "", false, nil
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		if key.Kind != yaml.ScalarNode || key.Value != field {
			continue
		}

		value := resolveAlias(root.Content[i+1])
		tag := value.ShortTag()
		switch {
		case value.Kind == yaml.ScalarNode && tag == "!!null":
			return "", false, nil
		case value.Kind == yaml.ScalarNode && tag == "!!str":
			return value.Value, true, nil
		default:
			return "", false, &FieldTypeError{Field: field, Tag: tag}
		}
	}

	return "", false, nil
}

// ReadDocument reads a Markdown file and extracts its key. Files that are not
// valid UTF-8 are rejected as unreadable.
func ReadDocument(path, field string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("failed to read %s: file is not valid UTF-8", path)
	}

	url, ok, err := ExtractKey(content, field)
	if err != nil {
		return nil, fmt.Errorf("reading front matter of %s: %w", path, err)
	}

	return &Document{Path: path, SourceURL: url, HasKey: ok}, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
