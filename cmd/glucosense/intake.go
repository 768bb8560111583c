package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/domain"
)

// intakeKey 字段名归一化：忽略大小写、下划线和连字符（skin_thickness == SkinThickness）
func intakeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, "-", "")
}

func lookupField(name string) (domain.FieldID, bool) {
	key := intakeKey(name)
	for _, id := range domain.FieldOrder {
		if intakeKey(string(id)) == key {
			return id, true
		}
	}
	return "", false
}

// parseIntake 解析 YAML 录入文件：字段名 -> 值
//
//	age: 45
//	gender: female
//	skin_thickness: 25
func parseIntake(data []byte) (domain.RawRecord, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse intake file: %w", err)
	}
	if len(root.Content) == 0 {
		return domain.RawRecord{}, nil
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("failed to parse intake file: line %d: expected a mapping of field names to values", doc.Line)
	}

	raw := make(domain.RawRecord, len(doc.Content)/2)
	seen := make(map[domain.FieldID]string, len(doc.Content)/2)
	// 按文档顺序遍历键值对，归一化后同名的字段视为重复
	for i := 0; i+1 < len(doc.Content); i += 2 {
		name := doc.Content[i].Value
		id, ok := lookupField(name)
		if !ok {
			return nil, fmt.Errorf("unknown intake field %q", name)
		}
		if first, dup := seen[id]; dup {
			return nil, fmt.Errorf("duplicate intake field %q (also given as %q)", name, first)
		}
		var value string
		if err := doc.Content[i+1].Decode(&value); err != nil {
			return nil, fmt.Errorf("failed to parse intake field %q: %w", name, err)
		}
		seen[id] = name
		raw[id] = value
	}
	return raw, nil
}

func loadIntakeFile(path string) (domain.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read intake file: %w", err)
	}
	return parseIntake(data)
}

// flagName 字段对应的命令行参数名（SkinThickness -> skin-thickness）
func flagName(id domain.FieldID) string {
	var b strings.Builder
	for i, r := range string(id) {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
