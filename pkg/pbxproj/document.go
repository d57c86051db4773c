package pbxproj

import (
	"regexp"
	"strings"
)

// Section names used by the patcher
const (
	SectionBuildFile         = "PBXBuildFile"
	SectionFileReference     = "PBXFileReference"
	SectionGroup             = "PBXGroup"
	SectionNativeTarget      = "PBXNativeTarget"
	SectionSourcesBuildPhase = "PBXSourcesBuildPhase"
)

var (
	beginMarker = regexp.MustCompile(`^/\*\s*Begin (\S+) section\s*\*/$`)
	endMarker   = regexp.MustCompile(`^/\*\s*End (\S+) section\s*\*/$`)
)

// Section is a `/* Begin X section */ ... /* End X section */` span
type Section struct {
	Name string

	// Begin is the offset of the begin marker, BodyStart the offset just past it
	Begin     int
	BodyStart int

	// BodyEnd is the offset of the end marker
	BodyEnd int
}

// Document is an in-memory manifest. Every query looks at the current text,
// so edits made earlier are visible to later lookups.
type Document struct {
	text string
	toks []token
}

// Parse loads a manifest and checks that it tokenizes with balanced brackets
func Parse(data []byte) (*Document, error) {
	d := &Document{text: string(data)}
	toks, err := d.tokens()
	if err != nil {
		return nil, err
	}
	if err := checkBalance(d.text, toks); err != nil {
		return nil, err
	}
	return d, nil
}

// String returns the current text
func (d *Document) String() string {
	return d.text
}

// Bytes returns the current text as bytes
func (d *Document) Bytes() []byte {
	return []byte(d.text)
}

// Contains reports whether s occurs anywhere in the text
func (d *Document) Contains(s string) bool {
	return strings.Contains(d.text, s)
}

func (d *Document) tokens() ([]token, error) {
	if d.toks != nil {
		return d.toks, nil
	}
	toks, err := tokenize(d.text)
	if err != nil {
		return nil, err
	}
	d.toks = toks
	return toks, nil
}

// Sections returns every complete section in document order
func (d *Document) Sections() ([]Section, error) {
	toks, err := d.tokens()
	if err != nil {
		return nil, err
	}

	var sections []Section
	open := map[string]int{}
	var order []string
	for _, t := range toks {
		if t.kind != tokComment {
			continue
		}
		if m := beginMarker.FindStringSubmatch(t.text); m != nil {
			if _, ok := open[m[1]]; !ok {
				open[m[1]] = len(sections)
				order = append(order, m[1])
				sections = append(sections, Section{Name: m[1], Begin: t.start, BodyStart: t.end, BodyEnd: -1})
			}
			continue
		}
		if m := endMarker.FindStringSubmatch(t.text); m != nil {
			if idx, ok := open[m[1]]; ok {
				sections[idx].BodyEnd = t.start
				delete(open, m[1])
			}
		}
	}

	complete := sections[:0]
	for _, s := range sections {
		if s.BodyEnd >= 0 {
			complete = append(complete, s)
		}
	}
	return complete, nil
}

// Section returns the first complete section called name
func (d *Document) Section(name string) (Section, bool, error) {
	sections, err := d.Sections()
	if err != nil {
		return Section{}, false, err
	}
	for _, s := range sections {
		if s.Name == name {
			return s, true, nil
		}
	}
	return Section{}, false, nil
}

// Objects parses the entries of the first section called name. A missing
// section yields no objects.
func (d *Document) Objects(name string) ([]Object, error) {
	sec, ok, err := d.Section(name)
	if err != nil || !ok {
		return nil, err
	}
	return d.objectsIn(sec)
}

func (d *Document) objectsIn(sec Section) ([]Object, error) {
	toks, err := d.tokens()
	if err != nil {
		return nil, err
	}
	var body []token
	for _, t := range toks {
		if t.start >= sec.BodyStart && t.end <= sec.BodyEnd {
			body = append(body, t)
		}
	}
	p := &parser{src: d.text, toks: body}
	return p.objects()
}

// FindObject returns the first object of section whose annotation equals comment
func (d *Document) FindObject(section, comment string) (Object, bool, error) {
	objs, err := d.Objects(section)
	if err != nil {
		return Object{}, false, err
	}
	for _, o := range objs {
		if o.Comment == comment {
			return o, true, nil
		}
	}
	return Object{}, false, nil
}

// ObjectByID searches every section for the object with the given identifier
func (d *Document) ObjectByID(id string) (Object, bool, error) {
	sections, err := d.Sections()
	if err != nil {
		return Object{}, false, err
	}
	for _, sec := range sections {
		objs, err := d.objectsIn(sec)
		if err != nil {
			return Object{}, false, err
		}
		for _, o := range objs {
			if o.ID == id {
				return o, true, nil
			}
		}
	}
	return Object{}, false, nil
}

// SourcesPhase returns the Sources build phase to register build files in.
// With an empty target it is the first object of the PBXSourcesBuildPhase
// section; otherwise it is the Sources phase listed in the buildPhases of the
// native target annotated with target.
func (d *Document) SourcesPhase(target string) (Object, bool, error) {
	if target == "" {
		objs, err := d.Objects(SectionSourcesBuildPhase)
		if err != nil || len(objs) == 0 {
			return Object{}, false, err
		}
		return objs[0], true, nil
	}

	tgt, ok, err := d.FindObject(SectionNativeTarget, target)
	if err != nil || !ok {
		return Object{}, false, err
	}
	phases, ok := tgt.Field("buildPhases")
	if !ok || phases.Kind != ValueList {
		return Object{}, false, nil
	}
	for _, item := range phases.Items {
		obj, ok, err := d.ObjectByID(item.Text)
		if err != nil {
			return Object{}, false, err
		}
		if ok && obj.ISA() == SectionSourcesBuildPhase {
			return obj, true, nil
		}
	}
	return Object{}, false, nil
}

// AppendToSection inserts line as the last line of the first section called
// name. It reports false when the section does not exist.
func (d *Document) AppendToSection(name, line string) (bool, error) {
	sec, ok, err := d.Section(name)
	if err != nil || !ok {
		return false, err
	}

	lineStart := strings.LastIndexByte(d.text[:sec.BodyEnd], '\n') + 1
	if strings.TrimSpace(d.text[lineStart:sec.BodyEnd]) == "" {
		d.insert(lineStart, line+"\n")
	} else {
		d.insert(sec.BodyEnd, "\n"+line+"\n")
	}
	return true, nil
}

// AppendToList adds item as the last element of the list stored under key in
// obj. obj must come from a lookup on the current text. It reports false when
// the object has no such list.
func (d *Document) AppendToList(obj Object, key, item string) (bool, error) {
	list, ok := obj.Field(key)
	if !ok || list.Kind != ValueList {
		return false, nil
	}

	closing := list.End
	keyIndent := indentOf(d.text, list.Start)

	// Keep the list well formed when the last element lacks its comma
	if n := len(list.Items); n > 0 && !list.TrailingComma {
		d.insert(list.Items[n-1].Tail, ",")
		closing++
	}

	lineStart := strings.LastIndexByte(d.text[:closing], '\n') + 1
	if lineStart > list.Start && strings.TrimSpace(d.text[lineStart:closing]) == "" {
		indent := d.text[lineStart:closing]
		d.insert(lineStart, indent+"\t"+item+",\n")
	} else {
		d.insert(closing, "\n"+keyIndent+"\t"+item+",\n"+keyIndent)
	}
	return true, nil
}

func (d *Document) insert(offset int, s string) {
	d.text = d.text[:offset] + s + d.text[offset:]
	d.toks = nil
}

// indentOf returns the leading whitespace of the line holding offset
func indentOf(text string, offset int) string {
	start := strings.LastIndexByte(text[:offset], '\n') + 1
	end := start
	for end < len(text) && (text[end] == ' ' || text[end] == '\t') {
		end++
	}
	return text[start:end]
}
