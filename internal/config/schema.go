package config

import (
	"fmt"
	"sort"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeString
	TypeEnum
	TypeList
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	case TypeList:
		return "list"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type and validation rules.
type ConfigKeySchema struct {
	Path          string          // Dotted key path (e.g., "template.issue")
	Type          ConfigValueType // Expected value type for validation
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
	Default       interface{}     // Default value
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"token": {
		Path:        "token",
		Type:        TypeString,
		Description: "GitHub token (prefer RELNOTES_TOKEN or GITHUB_TOKEN)",
		Default:     "",
	},
	"username": {
		Path:        "username",
		Type:        TypeString,
		Description: "Repository owner (detected from the origin remote when empty)",
		Default:     "",
	},
	"repo": {
		Path:        "repo",
		Type:        TypeString,
		Description: "Repository name (detected from the origin remote when empty)",
		Default:     "",
	},
	"api_url": {
		Path:        "api_url",
		Type:        TypeString,
		Description: "GitHub API endpoint",
		Default:     "https://api.github.com",
	},
	"tags": {
		Path:        "tags",
		Type:        TypeList,
		Description: "Tags to process, or \"all\" (empty means the latest two)",
		Default:     []string{},
	},
	"ignore_tags_with": {
		Path:        "ignore_tags_with",
		Type:        TypeList,
		Description: "Skip tags whose name contains any of these substrings",
		Default:     []string{},
	},
	"data_source": {
		Path:          "data_source",
		Type:          TypeEnum,
		AllowedValues: []string{"issues", "commits", "milestones"},
		Description:   "Where release notes come from",
		Default:       "issues",
	},
	"only_milestones": {
		Path:        "only_milestones",
		Type:        TypeBool,
		Description: "Only include issues attached to a milestone",
		Default:     false,
	},
	"milestone_match": {
		Path:        "milestone_match",
		Type:        TypeString,
		Description: "Milestone title for a release; {{tag_name}} is replaced by the tag",
		Default:     "Release {{tag_name}}",
	},
	"draft": {
		Path:        "draft",
		Type:        TypeBool,
		Description: "Create releases as drafts",
		Default:     false,
	},
	"prerelease": {
		Path:        "prerelease",
		Type:        TypeBool,
		Description: "Mark every created release as a pre-release",
		Default:     false,
	},
	"force": {
		Path:        "force",
		Type:        TypeBool,
		Description: "Allow tags: all when creating releases",
		Default:     false,
	},
	"prefix": {
		Path:        "prefix",
		Type:        TypeString,
		Description: "Text prepended to release names",
		Default:     "",
	},
	"include_messages": {
		Path:          "include_messages",
		Type:          TypeEnum,
		AllowedValues: []string{"commits", "merges", "all"},
		Description:   "Commit messages kept in commit mode",
		Default:       "commits",
	},
	"ignore_commits_with": {
		Path:        "ignore_commits_with",
		Type:        TypeList,
		Description: "Skip commits whose message contains any of these substrings",
		Default:     []string{},
	},
	"generate": {
		Path:        "generate",
		Type:        TypeBool,
		Description: "Build the changelog from history instead of existing releases",
		Default:     false,
	},
	"override": {
		Path:        "override",
		Type:        TypeBool,
		Description: "Replace existing release notes and changelog files",
		Default:     false,
	},
	"ignore_labels": {
		Path:        "ignore_labels",
		Type:        TypeList,
		Description: "Labels hidden from rendered issue lines",
		Default:     []string{},
	},
	"ignore_issues_with": {
		Path:        "ignore_issues_with",
		Type:        TypeList,
		Description: "Skip issues carrying any of these labels",
		Default:     []string{},
	},
	"group_by": {
		Path:        "group_by",
		Type:        TypeString,
		Description: "false, \"label\", or a mapping of group names to labels (mapping in file only)",
		Default:     false,
	},
	"changelog_filename": {
		Path:        "changelog_filename",
		Type:        TypeString,
		Description: "Changelog file written by the changelog command",
		Default:     "CHANGELOG.md",
	},
	"date_format": {
		Path:        "date_format",
		Type:        TypeString,
		Description: "Go time layout for {{date}} in the release template",
		Default:     "2006-01-02",
	},
	"template.commit": {
		Path:        "template.commit",
		Type:        TypeString,
		Description: "Commit line ({{message}}, {{url}}, {{author}}, {{name}})",
	},
	"template.label": {
		Path:        "template.label",
		Type:        TypeString,
		Description: "Label rendering ({{label}})",
	},
	"template.issue": {
		Path:        "template.issue",
		Type:        TypeString,
		Description: "Issue line ({{labels}}, {{name}}, {{text}}, {{url}}, {{body}}, {{user_login}}, {{user_url}})",
	},
	"template.group": {
		Path:        "template.group",
		Type:        TypeString,
		Description: "Group heading ({{heading}})",
	},
	"template.release": {
		Path:        "template.release",
		Type:        TypeString,
		Description: "Changelog release section ({{release}}, {{date}}, {{body}})",
	},
	"template.release_separator": {
		Path:        "template.release_separator",
		Type:        TypeString,
		Description: "Text between changelog release sections",
	},
	"template.changelog_title": {
		Path:        "template.changelog_title",
		Type:        TypeString,
		Description: "Text at the top of the changelog file",
	},
	"template.no_label": {
		Path:        "template.no_label",
		Type:        TypeString,
		Description: "Label shown for issues without labels (empty disables it)",
	},
}

// SortedKeys returns the known key paths in lexicographic order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// ParsedValue represents a configuration value after type inference and validation.
type ParsedValue struct {
	Raw    string      // Original string input from user
	Parsed interface{} // Value converted to correct type
	Type   ConfigValueType
}

// ValidateValue validates a value against the schema for a given key.
// Returns the parsed value or an error with details about what's wrong.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}
	return validateAgainstSchema(schema, value)
}

func validateAgainstSchema(schema ConfigKeySchema, value string) (ParsedValue, error) {
	switch schema.Type {
	case TypeBool:
		return parseBoolValue(value)
	case TypeEnum:
		return parseEnumValue(schema, value)
	case TypeList:
		return ParsedValue{Raw: value, Parsed: SplitList(value), Type: TypeList}, nil
	case TypeString:
		return ParsedValue{Raw: value, Parsed: value, Type: TypeString}, nil
	default:
		return ParsedValue{}, fmt.Errorf("unsupported type: %v", schema.Type)
	}
}

func parseBoolValue(value string) (ParsedValue, error) {
	switch strings.ToLower(value) {
	case "true":
		return ParsedValue{Raw: value, Parsed: true, Type: TypeBool}, nil
	case "false":
		return ParsedValue{Raw: value, Parsed: false, Type: TypeBool}, nil
	default:
		return ParsedValue{}, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
	}
}

func parseEnumValue(schema ConfigKeySchema, value string) (ParsedValue, error) {
	for _, allowed := range schema.AllowedValues {
		if value == allowed {
			return ParsedValue{Raw: value, Parsed: value, Type: TypeEnum}, nil
		}
	}
	return ParsedValue{}, fmt.Errorf(
		"invalid value: %q (valid options: %s)",
		value,
		strings.Join(schema.AllowedValues, ", "),
	)
}

// SplitList splits a comma-separated value, trimming blanks and dropping
// empty items.
func SplitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
