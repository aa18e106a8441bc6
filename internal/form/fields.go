package form

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/Gordoburrito/tracking-script/internal/domain"
	"github.com/Gordoburrito/tracking-script/internal/dto"
	"github.com/Gordoburrito/tracking-script/internal/normalize"
)

// BuildFields turns submitted entries into the field set the matcher runs
// over. Each entry's key is the text of the <label for=…> associated with
// the entry's control in markup, falling back to the raw field name when no
// label exists; keys are normalized, values pass through untouched.
func BuildFields(markup string, entries []dto.FormEntry) []domain.FormField {
	labels := labelsByName(markup)

	fields := make([]domain.FormField, 0, len(entries))
	for _, entry := range entries {
		key := entry.Name
		if label, ok := labels[entry.Name]; ok {
			key = label
		}
		fields = append(fields, domain.FormField{
			Key:   normalize.CleanLabel(key),
			Value: entry.Value,
		})
	}

	return fields
}

// labelsByName maps control names to their label text: controls contribute
// name→id, labels contribute for→text, and the two are joined on the id.
func labelsByName(markup string) map[string]string {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	idByName := make(map[string]string)
	textByID := make(map[string]string)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "input", "select", "textarea":
				name := attr(n, "name")
				id := attr(n, "id")
				if name != "" && id != "" {
					idByName[name] = id
				}
			case "label":
				if forID := attr(n, "for"); forID != "" {
					textByID[forID] = strings.TrimSpace(nodeText(n))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	labels := make(map[string]string, len(idByName))
	for name, id := range idByName {
		if text, ok := textByID[id]; ok && text != "" {
			labels[name] = text
		}
	}

	return labels
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
