package notion

import "strings"

// Page is a single record returned by a database query.
type Page struct {
	ID         string              `json:"id"`
	Properties map[string]Property `json:"properties"`
}

// Property is the union of the property shapes this pipeline reads. Only the
// field matching the property's type is populated.
type Property struct {
	Title       []RichText      `json:"title,omitempty"`
	RichText    []RichText      `json:"rich_text,omitempty"`
	Select      *SelectOption   `json:"select,omitempty"`
	Status      *SelectOption   `json:"status,omitempty"`
	MultiSelect []SelectOption  `json:"multi_select,omitempty"`
	Relation    []RelationRef   `json:"relation,omitempty"`
	Date        *DateValue      `json:"date,omitempty"`
	Files       []FileReference `json:"files,omitempty"`
	Checkbox    bool            `json:"checkbox,omitempty"`
}

// RichText is a single rich-text block; only plain content is used.
type RichText struct {
	Text TextContent `json:"text"`
}

// TextContent holds the plain content of a rich-text block.
type TextContent struct {
	Content string `json:"content"`
}

// SelectOption is a select/status/multi-select option.
type SelectOption struct {
	Name string `json:"name"`
}

// RelationRef references a related page.
type RelationRef struct {
	ID string `json:"id"`
}

// DateValue is a date property value.
type DateValue struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// FileReference is an attachment on a page.
type FileReference struct {
	Name string `json:"name"`
}

// Title returns the concatenated title text of the named property, or "".
func (p Page) Title(name string) string {
	return joinRichText(p.Properties[name].Title)
}

// Text returns the concatenated rich text of the named property, or "".
func (p Page) Text(name string) string {
	return joinRichText(p.Properties[name].RichText)
}

// Select returns the select option name, or "" when unset.
func (p Page) Select(name string) string {
	if s := p.Properties[name].Select; s != nil {
		return s.Name
	}
	return ""
}

// SelectPtr returns the select option name, or nil when unset. Used where the
// output format distinguishes null from empty.
func (p Page) SelectPtr(name string) *string {
	if s := p.Properties[name].Select; s != nil {
		v := s.Name
		return &v
	}
	return nil
}

// MultiSelect returns the option names of a multi-select property.
func (p Page) MultiSelect(name string) []string {
	opts := p.Properties[name].MultiSelect
	if len(opts) == 0 {
		return nil
	}
	names := make([]string, len(opts))
	for i, o := range opts {
		names[i] = o.Name
	}
	return names
}

// RelationIDs returns the related page IDs of a relation property.
func (p Page) RelationIDs(name string) []string {
	rels := p.Properties[name].Relation
	if len(rels) == 0 {
		return nil
	}
	ids := make([]string, len(rels))
	for i, r := range rels {
		ids[i] = r.ID
	}
	return ids
}

// DateStart returns the start of a date property, or nil when unset.
func (p Page) DateStart(name string) *string {
	if d := p.Properties[name].Date; d != nil {
		return d.Start
	}
	return nil
}

// FileNames returns the attachment names of a files property.
func (p Page) FileNames(name string) []string {
	files := p.Properties[name].Files
	if len(files) == 0 {
		return nil
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}

func joinRichText(blocks []RichText) string {
	if len(blocks) == 0 {
		return ""
	}
	var b strings.Builder
	for _, block := range blocks {
		b.WriteString(block.Text.Content)
	}
	return b.String()
}

// Property value builders for page creation. These produce the API's write
// shapes; keeping them here means callers never hand-build nested maps.

// TitleProp builds a title property value.
func TitleProp(content string) map[string]any {
	return map[string]any{
		"title": []map[string]any{{"text": map[string]any{"content": content}}},
	}
}

// RichTextProp builds a rich_text property value.
func RichTextProp(content string) map[string]any {
	return map[string]any{
		"rich_text": []map[string]any{{"text": map[string]any{"content": content}}},
	}
}

// SelectProp builds a select property value.
func SelectProp(name string) map[string]any {
	return map[string]any{"select": map[string]any{"name": name}}
}

// StatusProp builds a status property value.
func StatusProp(name string) map[string]any {
	return map[string]any{"status": map[string]any{"name": name}}
}

// DateProp builds a date property value from a start date string.
func DateProp(start string) map[string]any {
	return map[string]any{"date": map[string]any{"start": start}}
}

// RelationProp builds a relation property value from page IDs.
func RelationProp(ids ...string) map[string]any {
	refs := make([]map[string]any, len(ids))
	for i, id := range ids {
		refs[i] = map[string]any{"id": id}
	}
	return map[string]any{"relation": refs}
}

// MultiSelectProp builds a multi_select property value from option names.
func MultiSelectProp(names []string) map[string]any {
	opts := make([]map[string]any, len(names))
	for i, n := range names {
		opts[i] = map[string]any{"name": n}
	}
	return map[string]any{"multi_select": opts}
}

// SelectEquals builds a filter clause matching a select property value.
func SelectEquals(property, value string) map[string]any {
	return map[string]any{
		"property": property,
		"select":   map[string]any{"equals": value},
	}
}

// StatusEquals builds a filter clause matching a status property value.
func StatusEquals(property, value string) map[string]any {
	return map[string]any{
		"property": property,
		"status":   map[string]any{"equals": value},
	}
}

// Or combines filter clauses with an "or".
func Or(clauses ...map[string]any) map[string]any {
	return map[string]any{"or": clauses}
}

// And combines filter clauses with an "and".
func And(clauses ...map[string]any) map[string]any {
	return map[string]any{"and": clauses}
}
