package knowledge

import (
	"fmt"
	"strings"
)

// Flatten walks the record and emits one passage per leaf value.
// Object keys extend a breadcrumb path ("parent > key"); list items
// that are objects recurse under their "name" field (or a positional
// placeholder); list items that are primitives become passages under
// the current breadcrumb. The passage category is the first breadcrumb
// segment, or the key itself when the leaf sits at the root.
func Flatten(root Node) []Passage {
	return flatten(root, "")
}

func flatten(n Node, prefix string) []Passage {
	var passages []Passage

	switch v := n.(type) {
	case *Object:
		for _, key := range v.Keys {
			newPrefix := key
			if prefix != "" {
				newPrefix = prefix + " > " + key
			}
			switch child := v.Values[key].(type) {
			case *Object, *Array:
				passages = append(passages, flatten(child, newPrefix)...)
			case Scalar:
				category := key
				if prefix != "" {
					category = firstSegment(prefix)
				}
				passages = append(passages, Passage{
					Content:  fmt.Sprintf("Topic: %s\nInformation: %s", newPrefix, string(child)),
					Category: category,
					Source:   SourceKnowledgeBase,
				})
			}
		}
	case *Array:
		for i, item := range v.Items {
			if obj, ok := item.(*Object); ok {
				itemName := obj.Text("name")
				if itemName == "" {
					itemName = fmt.Sprintf("Item %d", i+1)
				}
				passages = append(passages, flatten(obj, prefix+" > "+itemName)...)
				continue
			}
			category := "general"
			if prefix != "" {
				category = firstSegment(prefix)
			}
			var value string
			switch leaf := item.(type) {
			case Scalar:
				value = string(leaf)
			case *Array:
				passages = append(passages, flatten(leaf, prefix)...)
				continue
			}
			passages = append(passages, Passage{
				Content:  fmt.Sprintf("Topic: %s\nInformation: %s", prefix, value),
				Category: category,
				Source:   SourceKnowledgeBase,
			})
		}
	}

	return passages
}

func firstSegment(path string) string {
	if idx := strings.Index(path, " > "); idx >= 0 {
		return path[:idx]
	}
	return path
}
