package testutil

import (
	"fmt"
	"strings"
)

type fixtureFile struct {
	name    string
	group   string
	fileRef string
	build   string
}

type fixtureTarget struct {
	name  string
	id    string
	phase string
}

// ManifestBuilder builds synthetic project.pbxproj documents
type ManifestBuilder struct {
	groups  []string
	files   []fixtureFile
	targets []fixtureTarget
	omit    map[string]bool
	ids     int
}

// NewManifest returns a builder with the Views and Services groups and one
// target called App
func NewManifest() *ManifestBuilder {
	b := &ManifestBuilder{omit: map[string]bool{}}
	b.WithGroup("Views").WithGroup("Services").WithTarget("App")
	return b
}

func (b *ManifestBuilder) nextID() string {
	b.ids++
	return fmt.Sprintf("F1%022X", b.ids)
}

// WithGroup adds an empty logical group
func (b *ManifestBuilder) WithGroup(name string) *ManifestBuilder {
	b.groups = append(b.groups, name)
	return b
}

// WithTarget adds a native target with its own Sources phase
func (b *ManifestBuilder) WithTarget(name string) *ManifestBuilder {
	b.targets = append(b.targets, fixtureTarget{name: name, id: b.nextID(), phase: b.nextID()})
	return b
}

// WithFile registers an existing Swift file in group and in the first
// target's Sources phase
func (b *ManifestBuilder) WithFile(name, group string) *ManifestBuilder {
	b.files = append(b.files, fixtureFile{name: name, group: group, fileRef: b.nextID(), build: b.nextID()})
	return b
}

// WithoutSection drops the named section (for example "PBXBuildFile")
func (b *ManifestBuilder) WithoutSection(name string) *ManifestBuilder {
	b.omit[name] = true
	return b
}

// Build renders the document
func (b *ManifestBuilder) Build() string {
	var s strings.Builder
	s.WriteString("// !$*UTF8*$!\n{\n\tarchiveVersion = 1;\n\tclasses = {\n\t};\n\tobjectVersion = 56;\n\tobjects = {\n")

	b.section(&s, "PBXBuildFile", func() {
		for _, f := range b.files {
			fmt.Fprintf(&s, "\t\t%s /* %s in Sources */ = {isa = PBXBuildFile; fileRef = %s /* %s */; };\n",
				f.build, f.name, f.fileRef, f.name)
		}
	})

	b.section(&s, "PBXFileReference", func() {
		for _, f := range b.files {
			fmt.Fprintf(&s, "\t\t%s /* %s */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; path = %s; sourceTree = \"<group>\"; };\n",
				f.fileRef, f.name, f.name)
		}
	})

	groupIDs := make([]string, len(b.groups))
	for i := range b.groups {
		groupIDs[i] = fmt.Sprintf("F2%022X", i+1)
	}
	b.section(&s, "PBXGroup", func() {
		s.WriteString("\t\tF20000000000000000000000 = {\n\t\t\tisa = PBXGroup;\n\t\t\tchildren = (\n")
		for i, g := range b.groups {
			fmt.Fprintf(&s, "\t\t\t\t%s /* %s */,\n", groupIDs[i], g)
		}
		s.WriteString("\t\t\t);\n\t\t\tsourceTree = \"<group>\";\n\t\t};\n")
		for i, g := range b.groups {
			fmt.Fprintf(&s, "\t\t%s /* %s */ = {\n\t\t\tisa = PBXGroup;\n\t\t\tchildren = (\n", groupIDs[i], g)
			for _, f := range b.files {
				if f.group == g {
					fmt.Fprintf(&s, "\t\t\t\t%s /* %s */,\n", f.fileRef, f.name)
				}
			}
			fmt.Fprintf(&s, "\t\t\t);\n\t\t\tpath = %s;\n\t\t\tsourceTree = \"<group>\";\n\t\t};\n", g)
		}
	})

	b.section(&s, "PBXNativeTarget", func() {
		for _, t := range b.targets {
			fmt.Fprintf(&s, "\t\t%s /* %s */ = {\n\t\t\tisa = PBXNativeTarget;\n\t\t\tbuildPhases = (\n\t\t\t\t%s /* Sources */,\n\t\t\t);\n\t\t\tname = %s;\n\t\t\tproductType = \"com.apple.product-type.application\";\n\t\t};\n",
				t.id, t.name, t.phase, t.name)
		}
	})

	b.section(&s, "PBXSourcesBuildPhase", func() {
		for i, t := range b.targets {
			fmt.Fprintf(&s, "\t\t%s /* Sources */ = {\n\t\t\tisa = PBXSourcesBuildPhase;\n\t\t\tbuildActionMask = 2147483647;\n\t\t\tfiles = (\n", t.phase)
			if i == 0 {
				for _, f := range b.files {
					fmt.Fprintf(&s, "\t\t\t\t%s /* %s in Sources */,\n", f.build, f.name)
				}
			}
			s.WriteString("\t\t\t);\n\t\t\trunOnlyForDeploymentPostprocessing = 0;\n\t\t};\n")
		}
	})

	s.WriteString("\t};\n\trootObject = F30000000000000000000000 /* Project object */;\n}\n")
	return s.String()
}

func (b *ManifestBuilder) section(s *strings.Builder, name string, body func()) {
	if b.omit[name] {
		return
	}
	fmt.Fprintf(s, "\n/* Begin %s section */\n", name)
	body()
	fmt.Fprintf(s, "/* End %s section */\n", name)
}
