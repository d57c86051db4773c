package pbxproj

import (
	"fmt"
	"path"
	"strings"
)

// DefaultFileType is used for extensions missing from every table
const DefaultFileType = "text"

// DefaultFileTypes maps lower-case extensions to Xcode's lastKnownFileType
var DefaultFileTypes = map[string]string{
	"swift":        "sourcecode.swift",
	"m":            "sourcecode.c.objc",
	"mm":           "sourcecode.cpp.objcpp",
	"h":            "sourcecode.c.h",
	"hpp":          "sourcecode.cpp.h",
	"c":            "sourcecode.c.c",
	"cc":           "sourcecode.cpp.cpp",
	"cpp":          "sourcecode.cpp.cpp",
	"metal":        "sourcecode.metal",
	"storyboard":   "file.storyboard",
	"xib":          "file.xib",
	"plist":        "text.plist.xml",
	"strings":      "text.plist.strings",
	"json":         "text.json",
	"xcassets":     "folder.assetcatalog",
	"entitlements": "text.plist.entitlements",
}

// FileTypeFor returns the lastKnownFileType for name. overrides is consulted
// before DefaultFileTypes.
func FileTypeFor(name string, overrides map[string]string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if t, ok := overrides[ext]; ok && t != "" {
		return t
	}
	if t, ok := DefaultFileTypes[ext]; ok {
		return t
	}
	return DefaultFileType
}

// Quote renders s as a property list string, adding quotes only when needed
func Quote(s string) string {
	if s != "" && isBareString(s) {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func isBareString(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '$', c == '.', c == '/':
		default:
			return false
		}
	}
	return !strings.Contains(s, "//")
}

// Reference renders `ID /* comment */`, the form used inside lists and fields
func Reference(id, comment string) string {
	return fmt.Sprintf("%s /* %s */", id, comment)
}

// BuildFileComment is the annotation Xcode puts on a build file in Sources
func BuildFileComment(name string) string {
	return name + " in Sources"
}

// FileReferenceLine renders a PBXFileReference entry
func FileReferenceLine(id, name, fileType string) string {
	return fmt.Sprintf("\t\t%s = {isa = PBXFileReference; lastKnownFileType = %s; path = %s; sourceTree = \"<group>\"; };",
		Reference(id, name), Quote(fileType), Quote(name))
}

// BuildFileLine renders a PBXBuildFile entry pointing at fileRefID
func BuildFileLine(id, fileRefID, name string) string {
	return fmt.Sprintf("\t\t%s = {isa = PBXBuildFile; fileRef = %s; };",
		Reference(id, BuildFileComment(name)), Reference(fileRefID, name))
}
