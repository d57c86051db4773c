// Package output renders command results for the terminal or for machines.
//
// Text output goes through Go templates (templates/*.tmpl) whose XML-like
// style tags are expanded by lipbalm with the styles package registry:
//
//	Adding <FileName>{{.Descriptor.Name | esc}}</FileName> to project...
//
// JSON and YAML output encode the result structs directly, so their field
// names are the json and yaml tags of pkg/types.
//
// Color is used only when the writer is a terminal, NO_COLOR is unset and
// termenv reports color support.
package output
